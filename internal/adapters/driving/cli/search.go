package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexai/internal/core/domain"
)

var (
	searchSource string
	searchCourt  string
	searchYear   string
	searchTopic  string
	searchJSON   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search South African case law",
	Long: `Searches case law from the selected source. Each search counts
against the daily free quota unless the account is premium.

Sources:
  static  - built-in landmark judgments (default)
  scrape  - SAFLII case law database, falls back to static when unreachable
  ai      - Precedence AI (needs an OpenAI API key or test mode)

Filters are matched against the court, date and tags of each result.`,
	Example: `  lexai search "right to housing"
  lexai search --source scrape --court "Constitutional Court" eviction
  lexai search --source ai --topic "labour law" --year 2019 dismissal`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchSource, "source", "s", "", "source to search (static, scrape, ai)")
	searchCmd.Flags().StringVar(&searchCourt, "court", "", "filter by court")
	searchCmd.Flags().StringVar(&searchYear, "year", "", "filter by year")
	searchCmd.Flags().StringVar(&searchTopic, "topic", "", "filter by topic")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

// searchOutput is the JSON form of a search outcome.
type searchOutput struct {
	Source    domain.SourceKind   `json:"source"`
	Blocked   bool                `json:"blocked"`
	Results   []domain.CaseResult `json:"results"`
	Remaining int                 `json:"remaining"`
	IsPremium bool                `json:"isPremium"`
	Error     *errorOutput        `json:"error,omitempty"`
}

type errorOutput struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	req, err := buildSearchRequest(strings.Join(args, " "))
	if err != nil {
		return err
	}

	outcome, err := searchService.Search(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		if err := outputSearchJSON(cmd, outcome); err != nil {
			return err
		}
		return outcomeError(outcome)
	}

	switch {
	case outcome.Blocked:
		outputBlocked(cmd, outcome.Quota)
	case outcome.Err != nil:
		cmd.PrintErrln(searchNotice(outcome.Err))
	default:
		outputSearchTable(cmd, outcome)
	}
	return outcomeError(outcome)
}

func buildSearchRequest(query string) (domain.SearchRequest, error) {
	req := domain.SearchRequest{
		Query: domain.SearchQuery{
			Query: strings.TrimSpace(query),
			Court: strings.TrimSpace(searchCourt),
			Year:  strings.TrimSpace(searchYear),
			Topic: strings.TrimSpace(searchTopic),
		},
	}
	if req.Query.Query == "" {
		return req, fmt.Errorf("empty query: %w", domain.ErrInvalidInput)
	}
	if searchSource != "" {
		kind, err := domain.ParseSourceKind(searchSource)
		if err != nil {
			return req, err
		}
		req.Source = kind
	}
	return req, nil
}

// outcomeError maps a failed outcome to the command's exit error.
func outcomeError(outcome *domain.SearchOutcome) error {
	if outcome.Blocked {
		return domain.ErrQuotaBlocked
	}
	if outcome.Err != nil {
		return fmt.Errorf("search failed [%s]: %w", domain.ErrorCode(outcome.Err), outcome.Err)
	}
	return nil
}

// searchNotice is the user-facing message for a failed search.
func searchNotice(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingCredential):
		return "Precedence AI needs an OpenAI API key. Run 'lexai settings apikey' or enable test mode."
	case domain.IsRetryable(err):
		return "Something went wrong while searching. Please try again."
	default:
		return fmt.Sprintf("Search failed: %v", err)
	}
}

func outputBlocked(cmd *cobra.Command, state domain.QuotaState) {
	cmd.Printf("Daily search limit reached (%d of %d used).\n", state.Count, domain.DailyLimit)
	cmd.Println("Upgrade to Premium for unlimited searches: lexai upgrade --email you@example.com")
}

func outputSearchJSON(cmd *cobra.Command, outcome *domain.SearchOutcome) error {
	out := searchOutput{
		Source:    outcome.Source,
		Blocked:   outcome.Blocked,
		Results:   outcome.Results,
		Remaining: outcome.Quota.Remaining(),
		IsPremium: outcome.Quota.IsPremium,
	}
	if out.Results == nil {
		out.Results = []domain.CaseResult{}
	}
	if outcome.Err != nil {
		out.Error = &errorOutput{
			Code:    domain.ErrorCode(outcome.Err),
			Message: outcome.Err.Error(),
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, outcome *domain.SearchOutcome) {
	results := outcome.Results
	if len(results) == 0 {
		cmd.Println("No results found.")
		outputQuotaLine(cmd, outcome.Quota)
		return
	}

	cmd.Printf("Results from %s:\n\n", outcome.Source.Description())
	for i := range results {
		r := &results[i]
		title := r.Title
		if r.Suggested {
			title += " (suggested)"
		}
		cmd.Printf("[%d] %s\n", i+1, title)
		cmd.Printf("    %s\n", joinNonEmpty(" · ", r.Citation, r.Court, r.Date))
		if r.ConfidenceScore != nil {
			cmd.Printf("    Confidence: %d%%\n", *r.ConfidenceScore)
		}
		if r.Summary != "" {
			cmd.Printf("    %s\n", truncate(r.Summary, 200))
		}
		if r.SourceLink != "" {
			cmd.Printf("    %s\n", r.SourceLink)
		}
		cmd.Println()
	}
	outputQuotaLine(cmd, outcome.Quota)
}

func outputQuotaLine(cmd *cobra.Command, state domain.QuotaState) {
	if state.IsPremium {
		cmd.Println("Premium: unlimited searches")
		return
	}
	cmd.Printf("%d of %d free searches left today\n", state.Remaining(), domain.DailyLimit)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
