package saflii

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/custodia-labs/lexai/internal/core/domain"
	"github.com/custodia-labs/lexai/internal/logger"
)

// CSS classes of the SAFLII result markup.
const (
	classResult = "search-result"
	classMeta   = "search-result-meta"
	classText   = "search-result-text"
)

// Parser turns a SAFLII result page into case results.
type Parser struct {
	base *url.URL
	now  func() time.Time
}

// NewParser creates a parser resolving relative links against base.
// A nil base leaves links as found.
func NewParser(base *url.URL) *Parser {
	return &Parser{base: base, now: time.Now}
}

// Parse reads a result page. Items that fail to parse are skipped. An
// unreadable document, or a page whose every item fails, wraps
// domain.ErrMalformedResponse. A page without items is an empty result.
func (p *Parser) Parse(r io.Reader) ([]domain.CaseResult, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("saflii: parse html: %w: %v", domain.ErrMalformedResponse, err)
	}

	now := p.now()
	items := findAll(doc, func(n *html.Node) bool { return hasClass(n, classResult) })

	results := make([]domain.CaseResult, 0, len(items))
	for i, item := range items {
		c, err := p.parseItem(item, i, now)
		if err != nil {
			logger.Warn("Skipping SAFLII result %d: %v", i, err)
			continue
		}
		results = append(results, c)
	}

	logger.Debug("Parsed %d of %d SAFLII results", len(results), len(items))
	if len(items) > 0 && len(results) == 0 {
		return nil, fmt.Errorf("saflii: no parsable results: %w", domain.ErrMalformedResponse)
	}
	return results, nil
}

func (p *Parser) parseItem(item *html.Node, index int, now time.Time) (c domain.CaseResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", domain.ErrMalformedResponse, r)
		}
	}()

	title := domain.UnknownTitle
	link := ""
	if h3 := findFirst(item, isElement("h3")); h3 != nil {
		if a := findFirst(h3, isElement("a")); a != nil {
			if text := textContent(a); text != "" {
				title = text
			}
			link = p.resolve(attr(a, "href"))
		}
	}

	meta := ""
	if n := findFirst(item, func(n *html.Node) bool { return hasClass(n, classMeta) }); n != nil {
		meta = textContent(n)
	}

	summary := ""
	if n := findFirst(item, func(n *html.Node) bool { return hasClass(n, classText) }); n != nil {
		summary = textContent(n)
	}

	if link == "" && title == domain.UnknownTitle && summary == "" {
		return c, fmt.Errorf("%w: empty result item", domain.ErrMalformedResponse)
	}

	court := ExtractCourt(meta)
	return domain.CaseResult{
		ID:         fmt.Sprintf("saflii-%d-%d", now.UnixMilli(), index),
		Title:      title,
		Citation:   ExtractCitation(meta),
		Court:      court,
		Date:       ExtractDate(meta, now),
		Summary:    summary,
		Tags:       ExtractTags(title, court, summary),
		SourceLink: link,
		Judge:      ExtractJudge(meta),
	}, nil
}

func (p *Parser) resolve(href string) string {
	if href == "" || p.base == nil {
		return href
	}
	resolved, err := p.base.Parse(href)
	if err != nil {
		return href
	}
	return resolved.String()
}

// DOM helpers.

func isElement(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// findAll returns matching nodes in document order. Matches are not
// searched for nested matches.
func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if match(n) {
			found = append(found, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return found
}

// findFirst returns the first matching descendant of root, or nil.
func findFirst(root *html.Node, match func(*html.Node) bool) *html.Node {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if match(c) {
			return c
		}
		if n := findFirst(c, match); n != nil {
			return n
		}
	}
	return nil
}

// textContent concatenates descendant text with whitespace collapsed.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
