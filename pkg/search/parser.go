package search

import (
	"strings"
)

// queryReplacer strips the characters that carry syntax meaning in
// full-text query parsers (quotes, question marks), so user input can
// never produce a malformed query downstream.
var queryReplacer = strings.NewReplacer(
	`"`, " ",
	"'", " ",
	"?", " ",
)

// SanitizeQuery normalizes a raw user query for the retrieval store:
// syntax-significant characters are stripped and whitespace is collapsed.
// An empty result means the query has no searchable content.
func SanitizeQuery(raw string) string {
	cleaned := queryReplacer.Replace(raw)
	return strings.Join(strings.Fields(cleaned), " ")
}

// Tokenize splits a sanitized query into lowercase tokens.
func Tokenize(raw string) []string {
	sanitized := strings.ToLower(SanitizeQuery(raw))
	if sanitized == "" {
		return nil
	}
	return strings.Fields(sanitized)
}
