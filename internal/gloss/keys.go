package gloss

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// minKeyLength is the shortest token worth indexing. French function words
// shorter than three letters carry no sign of their own.
const minKeyLength = 3

// stopWords lists short French function words excluded from index keys.
// Entries are stored in folded (uppercase, accent-free) form.
var stopWords = map[string]struct{}{
	"LES":   {},
	"DES":   {},
	"UNE":   {},
	"POUR":  {},
	"AVEC":  {},
	"DANS":  {},
	"SUR":   {},
	"PAS":   {},
	"QUE":   {},
	"QUI":   {},
	"EST":   {},
	"SONT":  {},
	"NOUS":  {},
	"VOUS":  {},
	"MAIS":  {},
	"PLUS":  {},
	"CETTE": {},
	"COMME": {},
	"TOUT":  {},
	"AUSSI": {},
}

// foldTransform decomposes to NFD, removes combining marks, and recomposes.
// "été" becomes "ete".
var foldTransform = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func stripDiacritics(text string) string {
	folded, _, err := transform.String(foldTransform, text)
	if err != nil {
		return text
	}
	return folded
}

// tokenize is the shared canonical pipeline: fold diacritics, uppercase,
// treat every non-alphanumeric rune as a separator, and split. Keeping
// extraction and query-time normalization on this one function is what keeps
// index writes and lookups agreeing on key shape.
func tokenize(text string) []string {
	folded := stripDiacritics(text)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Fields(b.String())
}

// NormalizeKey derives the canonical index key for a display-form gloss:
// accents removed, punctuation treated as a separator, uppercased.
// Single-letter fragments — the elided French articles in "l'été" or
// "d'accord" — are dropped, so NormalizeKey("L'été") == "ETE". The empty
// result means the input carried nothing indexable.
func NormalizeKey(text string) string {
	tokens := tokenize(text)
	var b strings.Builder
	for _, token := range tokens {
		if len([]rune(token)) < 2 {
			continue
		}
		b.WriteString(token)
	}
	return b.String()
}

// ExtractKeys derives index keys from caption text. The text runs through
// the shared canonical pipeline, then tokens shorter than three characters
// and stop words are discarded. Duplicates are preserved: each occurrence
// contributes its own index candidate.
//
// Every returned key is already in canonical form, so
// NormalizeKey(key) == key for all keys.
func ExtractKeys(text string) []string {
	tokens := tokenize(text)
	keys := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if len([]rune(token)) < minKeyLength {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		keys = append(keys, token)
	}
	return keys
}
