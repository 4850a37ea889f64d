package completion

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/custodia-labs/lexai/internal/core/domain"
	"github.com/custodia-labs/lexai/internal/core/ports/driven"
	"github.com/custodia-labs/lexai/internal/logger"
)

// PartialMatchCount is how many cases are offered when nothing matches.
const PartialMatchCount = 2

// Tags added to generated results.
const (
	TagAnalyzed     = "AI Analyzed"
	TagSuggested    = "AI Suggested"
	TagPartialMatch = "Partial Match"
)

var legalPrinciples = []string{
	"stare decisis",
	"burden of proof",
	"reasonable person standard",
	"duty of care",
	"beyond reasonable doubt",
	"presumption of innocence",
	"balancing of interests",
}

// Ensure MockGenerator implements the interface.
var _ driven.SearchClient = (*MockGenerator)(nil)

// MockGenerator produces AI-style results locally from a case dataset.
// It serves test mode and the rate-limit fallback.
type MockGenerator struct {
	cases []domain.CaseResult

	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockGenerator creates a generator over cases. A nil rng uses a
// randomly seeded source.
func NewMockGenerator(cases []domain.CaseResult, rng *rand.Rand) *MockGenerator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &MockGenerator{cases: cases, rng: rng}
}

// Kind returns domain.SourceAI.
func (g *MockGenerator) Kind() domain.SourceKind {
	return domain.SourceAI
}

// Search annotates the matching cases with a relevance sentence, extra tags
// and a confidence of 80-99. With no match, the first PartialMatchCount
// cases are returned as suggestions with a confidence of 50-79.
func (g *MockGenerator) Search(_ context.Context, query domain.SearchQuery) ([]domain.CaseResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	q := strings.TrimSpace(query.Query)
	results := []domain.CaseResult{}
	for i := range g.cases {
		if !g.cases[i].MatchesText(q) {
			continue
		}
		c := g.cases[i].Clone()
		c.Summary = fmt.Sprintf(
			"%s Our AI analysis indicates this case has %d%% relevance to your query on %q. Key legal principles include %s.",
			c.Summary, 50+g.rng.IntN(50), q, legalPrinciples[g.rng.IntN(len(legalPrinciples))],
		)
		c.AddTags(TagAnalyzed, "Related to: "+firstWord(q))
		c.ConfidenceScore = domain.Score(80 + g.rng.IntN(20))
		c.Source = SourceLabel
		results = append(results, c)
	}

	if len(results) > 0 {
		logger.Debug("Generated %d AI results", len(results))
		return results, nil
	}

	n := min(PartialMatchCount, len(g.cases))
	for i := 0; i < n; i++ {
		c := g.cases[i].Clone()
		c.Summary = fmt.Sprintf(
			"While this case doesn't directly match your query %q, it may contain relevant legal principles. %s",
			q, c.Summary,
		)
		c.AddTags(TagSuggested, TagPartialMatch)
		c.ConfidenceScore = domain.Score(50 + g.rng.IntN(30))
		c.Source = SourceLabel
		c.Suggested = true
		results = append(results, c)
	}
	logger.Debug("No AI match, suggesting %d partial matches", len(results))
	return results, nil
}

func firstWord(s string) string {
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}
	return ""
}
