// Package textutil provides the text normalization and string
// similarity primitives used by deduplication and keyword scoring.
// All functions are pure and allocate only on their return values.
package textutil

import (
	"strings"
	"unicode"
)

// NormalizeURL canonicalizes a URL for exact-match comparison:
// trimmed, lowercased, trailing slash stripped. It deliberately does
// not touch query strings: two URLs differing only in tracking
// parameters are still distinct sources.
func NormalizeURL(raw string) string {
	u := strings.ToLower(strings.TrimSpace(raw))
	return strings.TrimSuffix(u, "/")
}

// NormalizeText lowercases, trims, and collapses internal whitespace.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Tokenize splits text into a set of lowercase word tokens. Tokens are
// runs of letters and digits; single-character tokens are dropped as
// noise. The returned set is suitable for TokenSetSimilarity.
func Tokenize(s string) map[string]bool {
	tokens := make(map[string]bool)
	var b strings.Builder
	flush := func() {
		if b.Len() >= 2 {
			tokens[b.String()] = true
		}
		b.Reset()
	}
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return tokens
}

// TokenSetSimilarity computes the Jaccard similarity between the token
// sets of two strings: |A∩B| / |A∪B|, in [0,1]. Identical token sets
// score 1.0 regardless of word order; disjoint sets score 0. Empty
// input on either side scores 0; an empty title never matches.
func TokenSetSimilarity(a, b string) float64 {
	ta, tb := Tokenize(a), Tokenize(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	inter := 0
	for tok := range ta {
		if tb[tok] {
			inter++
		}
	}
	union := len(ta) + len(tb) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// ContainsAny reports whether the normalized text contains any of the
// given terms, returning the first matching term. Terms are matched as
// substrings of the normalized text, so multi-word terms work.
func ContainsAny(text string, terms []string) (string, bool) {
	norm := NormalizeText(text)
	for _, term := range terms {
		t := NormalizeText(term)
		if t != "" && strings.Contains(norm, t) {
			return term, true
		}
	}
	return "", false
}
