package saflii

import (
	"regexp"
	"strings"
	"time"

	"github.com/custodia-labs/lexai/internal/core/domain"
)

// DisplayDateLayout is used for dates synthesised when none is found.
const DisplayDateLayout = "2 January 2006"

var (
	citationPattern = regexp.MustCompile(`\[\d{4}\]\s[A-Z]+\s\d+`)
	datePattern     = regexp.MustCompile(`(?i)\b\d{1,2}\s(?:January|February|March|April|May|June|July|August|September|October|November|December)\s\d{4}\b|\d{4}-\d{2}-\d{2}`)
	judgePattern    = regexp.MustCompile(`\b[A-Z][a-z]+ (?:CJ|J|AJ|JA|JP)\b`)
)

// courtCodes maps SAFLII reporter codes to court names, checked in order.
var courtCodes = []struct {
	code  string
	court string
}{
	{"ZACC", "Constitutional Court"},
	{"ZASCA", "Supreme Court of Appeal"},
	{"ZAGPPHC", "Gauteng High Court"},
	{"ZAWCHC", "Western Cape High Court"},
	{"ZAKZPHC", "KwaZulu-Natal High Court"},
	{"ZALAC", "Labour Appeal Court"},
	{"ZALC", "Labour Court"},
}

// legalTopics is the vocabulary used for tag inference.
var legalTopics = []string{
	"Constitutional Law", "Criminal Law", "Civil Procedure",
	"Contract Law", "Property Law", "Administrative Law",
	"Labour Law", "Family Law", "Tax Law", "Commercial Law",
}

// ExtractCitation finds a neutral citation such as "[2023] ZACC 12".
func ExtractCitation(text string) string {
	if m := citationPattern.FindString(text); m != "" {
		return m
	}
	return domain.CitationNotAvailable
}

// ExtractDate finds a "15 May 2023" or "2023-05-15" date, defaulting to now.
func ExtractDate(text string, now time.Time) string {
	if m := datePattern.FindString(text); m != "" {
		return m
	}
	return now.Format(DisplayDateLayout)
}

// ExtractCourt maps the first known reporter code in text to a court name.
func ExtractCourt(text string) string {
	for _, c := range courtCodes {
		if strings.Contains(text, c.code) {
			return c.court
		}
	}
	return domain.UnknownCourt
}

// ExtractTags infers tags from the court and any legal topic named in the
// title or summary. "Legal Case" is appended when fewer than two tags result.
func ExtractTags(title, court, summary string) []string {
	var tags []string
	tags = domain.AppendUnique(tags, court)

	fullText := strings.ToLower(title + " " + summary)
	for _, topic := range legalTopics {
		if strings.Contains(fullText, strings.ToLower(topic)) {
			tags = domain.AppendUnique(tags, topic)
		}
	}

	if len(tags) < 2 {
		tags = domain.AppendUnique(tags, domain.DefaultTag)
	}
	return tags
}

// ExtractJudge finds a name followed by a judicial suffix, e.g. "Mogoeng CJ".
func ExtractJudge(text string) string {
	return judgePattern.FindString(text)
}
