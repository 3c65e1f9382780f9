// Package expand broadens a residual query with curated domain synonyms before it is embedded.
package expand

import "strings"

// synonyms maps an exact trigger token to the phrases appended after it.
var synonyms = map[string][]string{
	"programming": {"coding", "development", "software engineering"},
	"math":        {"mathematics", "calculus", "algebra"},
	"stats":       {"statistics", "probability", "data analysis"},
	"ai":          {"artificial intelligence", "machine learning"},
	"systems":     {"operating systems", "computer systems", "architecture"},
	"gender":      {"gender studies", "gwst", "women studies"},
}

// Tokens lower-cases and whitespace-tokenizes a query.
func Tokens(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// Expand returns the query tokens with each trigger token followed by its expansions.
func Expand(query string) string {
	tokens := Tokens(query)
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok)
		out = append(out, synonyms[tok]...)
	}
	return strings.Join(out, " ")
}
