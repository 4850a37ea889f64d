package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/lexai/internal/core/domain"
	"github.com/custodia-labs/lexai/internal/core/ports/driving"
)

// ErrMissingService is returned when a required driving port is nil.
var ErrMissingService = errors.New("httpapi: search, quota and subscription services are required")

// Handler serves the API routes.
type Handler struct {
	search       driving.SearchService
	quota        driving.QuotaService
	subscription driving.SubscriptionService
}

// NewHandler creates a handler over the driving ports.
func NewHandler(
	search driving.SearchService,
	quota driving.QuotaService,
	subscription driving.SubscriptionService,
) (*Handler, error) {
	if search == nil || quota == nil || subscription == nil {
		return nil, ErrMissingService
	}
	return &Handler{search: search, quota: quota, subscription: subscription}, nil
}

// SearchRequest is the body of POST /api/search.
type SearchRequest struct {
	Query  string `json:"query"`
	Source string `json:"source"`
	Court  string `json:"court"`
	Year   string `json:"year"`
	Topic  string `json:"topic"`
}

// UpgradeRequest is the body of POST /api/upgrade.
type UpgradeRequest struct {
	Email string `json:"email" binding:"required"`
}

// QuotaResponse is the JSON form of the quota ledger.
type QuotaResponse struct {
	Count       int    `json:"count"`
	Limit       int    `json:"limit"`
	Remaining   int    `json:"remaining"`
	IsPremium   bool   `json:"isPremium"`
	WindowStart string `json:"windowStart"`
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Search handles POST /api/search.
func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, domain.CodeInvalidInput, err.Error())
		return
	}

	searchReq := domain.SearchRequest{
		Query: domain.SearchQuery{Query: req.Query, Court: req.Court, Year: req.Year, Topic: req.Topic},
	}
	if req.Source != "" {
		kind, err := domain.ParseSourceKind(req.Source)
		if err != nil {
			respondError(c, http.StatusBadRequest, domain.CodeUnsupportedSource, err.Error())
			return
		}
		searchReq.Source = kind
	}

	outcome, err := h.search.Search(c.Request.Context(), searchReq)
	if err != nil {
		respondError(c, http.StatusInternalServerError, domain.ErrorCode(err), err.Error())
		return
	}

	if outcome.Blocked {
		c.JSON(http.StatusPaymentRequired, gin.H{
			"success": false,
			"error": gin.H{
				"code":    domain.CodeQuotaBlocked,
				"message": domain.ErrQuotaBlocked.Error(),
			},
			"quota": quotaResponse(outcome.Quota),
		})
		return
	}

	if outcome.Err != nil {
		respondError(c, statusFor(outcome.Err), domain.ErrorCode(outcome.Err), outcome.Err.Error())
		return
	}

	results := outcome.Results
	if results == nil {
		results = []domain.CaseResult{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"source":  outcome.Source,
			"count":   len(results),
			"results": results,
			"quota":   quotaResponse(outcome.Quota),
		},
	})
}

// Quota handles GET /api/quota.
func (h *Handler) Quota(c *gin.Context) {
	state := h.quota.ReadState(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true, "data": quotaResponse(state)})
}

// Upgrade handles POST /api/upgrade. Payment confirms asynchronously, so
// a successful call returns 202 with the payment reference.
func (h *Handler) Upgrade(c *gin.Context) {
	var req UpgradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, domain.CodeInvalidInput, err.Error())
		return
	}

	payment, err := h.subscription.Upgrade(c.Request.Context(), req.Email)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, domain.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		respondError(c, status, domain.ErrorCode(err), err.Error())
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"data": gin.H{
			"reference": payment.Reference,
			"amount":    payment.FormatAmount(),
			"currency":  payment.Currency,
			"email":     payment.Email,
		},
	})
}

// Downgrade handles POST /api/downgrade.
func (h *Handler) Downgrade(c *gin.Context) {
	state := h.subscription.Downgrade(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true, "data": quotaResponse(state)})
}

// statusFor maps a source error onto an HTTP status. Bad selections are
// the caller's fault; everything else is an upstream failure.
func statusFor(err error) int {
	switch domain.ErrorCode(err) {
	case domain.CodeUnsupportedSource, domain.CodeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func quotaResponse(state domain.QuotaState) QuotaResponse {
	return QuotaResponse{
		Count:       state.Count,
		Limit:       domain.DailyLimit,
		Remaining:   state.Remaining(),
		IsPremium:   state.IsPremium,
		WindowStart: state.Date.Format(time.RFC3339),
	}
}
