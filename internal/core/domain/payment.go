package domain

import (
	"fmt"
	"net/mail"
	"time"
)

// Premium subscription pricing.
const (
	// PremiumAmountCents is R299.99 per month.
	PremiumAmountCents = 29999

	// PremiumCurrency is the ISO currency code for payments.
	PremiumCurrency = "ZAR"
)

// PaymentRequest describes a premium upgrade payment.
type PaymentRequest struct {
	// AmountCents is the amount in the smallest currency unit.
	AmountCents int `json:"amount"`

	// Currency is the ISO 4217 code.
	Currency string `json:"currency"`

	// Email identifies the paying customer.
	Email string `json:"email"`

	// Reference is unique per payment attempt.
	Reference string `json:"reference"`
}

// NewPaymentRequest builds a premium payment request.
// nonce should be in [0, 1000).
func NewPaymentRequest(email string, now time.Time, nonce int) (PaymentRequest, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return PaymentRequest{}, fmt.Errorf("%w: email %q", ErrInvalidInput, email)
	}
	return PaymentRequest{
		AmountCents: PremiumAmountCents,
		Currency:    PremiumCurrency,
		Email:       email,
		Reference:   fmt.Sprintf("lexai-sub-%d-%d", now.UnixMilli(), nonce%1000),
	}, nil
}

// FormatAmount renders the amount as a display string, e.g. "R299.99".
func (p PaymentRequest) FormatAmount() string {
	return fmt.Sprintf("R%d.%02d", p.AmountCents/100, p.AmountCents%100)
}
