package search

import (
	"regexp"
	"strconv"
	"strings"
)

// Per-field match weights. A candidate's relevance is the sum over all
// query tokens of every field weight that token matches.
const (
	weightName        = 3
	weightDescription = 2
	weightCategory    = 2
	weightArrayElem   = 1
	weightNumeric     = 2
)

// token is one query term, compiled once as a case-insensitive substring
// matcher. Regex metacharacters in user input are neutralized, not rejected.
type token struct {
	pattern *regexp.Regexp
	number  *float64
}

// tokenize lowercases the query, splits on whitespace runs and drops empty
// terms. Terms that parse as numbers additionally match numeric fields
// exactly.
func tokenize(query string) []token {
	var tokens []token
	for _, raw := range strings.Fields(strings.ToLower(query)) {
		t := token{
			pattern: regexp.MustCompile("(?i)" + regexp.QuoteMeta(raw)),
		}
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			value := n
			t.number = &value
		}
		tokens = append(tokens, t)
	}
	return tokens
}

// fieldSet is the searchable projection of a catalog record, independent of
// how the record is stored.
type fieldSet struct {
	name        string
	description string
	category    string
	elements    []string
	numbers     []float64
}

// score sums the weighted matches of every token against every field.
// Each matching array element contributes its own weight; there is no cap.
func score(tokens []token, f fieldSet) int {
	total := 0
	for _, tok := range tokens {
		if tok.pattern.MatchString(f.name) {
			total += weightName
		}
		if f.description != "" && tok.pattern.MatchString(f.description) {
			total += weightDescription
		}
		if f.category != "" && tok.pattern.MatchString(f.category) {
			total += weightCategory
		}
		for _, element := range f.elements {
			if tok.pattern.MatchString(element) {
				total += weightArrayElem
			}
		}
		if tok.number != nil {
			for _, n := range f.numbers {
				if n == *tok.number {
					total += weightNumeric
				}
			}
		}
	}
	return total
}
