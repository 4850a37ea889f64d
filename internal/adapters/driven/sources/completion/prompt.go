package completion

import "fmt"

// Completion parameters.
const (
	Temperature = 0.7
	MaxTokens   = 2000
)

// SystemPrompt constrains the model to South African case law in the
// CaseResult shape.
const SystemPrompt = `You are Precedence AI, a specialized legal assistant for South African law.
Analyze queries about South African case law, statutes, and legal principles using the SAFLII database.
Format your responses as legal case results with the following structure:
title, citation, court, date, summary, tags, and confidence score.`

// UserPrompt builds the user message for query.
func UserPrompt(query string) string {
	return fmt.Sprintf(`Search for South African legal cases about: %s.
Return a JSON object of the form {"cases": [...]} where each case has the properties:
id, title, citation, court, date, summary, tags (array of strings), judge, url, and confidenceScore (number 0-100).`, query)
}
