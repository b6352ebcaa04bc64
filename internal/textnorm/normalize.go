package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenSet is an unordered set of normalized tokens.
type TokenSet map[string]struct{}

// Has reports whether the set contains the exact token.
func (s TokenSet) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// Union returns a new set containing the tokens of both sets.
func (s TokenSet) Union(other TokenSet) TokenSet {
	merged := make(TokenSet, len(s)+len(other))
	for tok := range s {
		merged[tok] = struct{}{}
	}
	for tok := range other {
		merged[tok] = struct{}{}
	}
	return merged
}

// foldTable maps Turkish letters to their base Latin equivalents.
// A fixed table rather than Unicode decomposition: decomposition would
// also alter letters the domain wants kept as distinct ASCII letters,
// and Go's generic case mapping turns 'İ' into 'i' plus a combining
// dot, which breaks substring matching.
var foldTable = map[rune]rune{
	'ı': 'i', 'İ': 'i',
	'ş': 's', 'Ş': 's',
	'ğ': 'g', 'Ğ': 'g',
	'ü': 'u', 'Ü': 'u',
	'ö': 'o', 'Ö': 'o',
	'ç': 'c', 'Ç': 'c',
}

// Normalize lowercases text and folds Turkish letters to their base
// Latin equivalents. Normalize(Normalize(s)) == Normalize(s) for all s.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if folded, ok := foldTable[r]; ok {
			b.WriteRune(folded)
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// minTokenLen is the shortest fragment kept by Tokenize.
const minTokenLen = 2

// Tokenize normalizes text and splits it into a set of unique word
// fragments. Whitespace, punctuation and digits all act as separators,
// so tokens never contain digits. Fragments shorter than two
// characters are discarded.
func Tokenize(text string) TokenSet {
	fragments := strings.FieldsFunc(Normalize(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	tokens := make(TokenSet, len(fragments))
	for _, f := range fragments {
		if utf8.RuneCountInString(f) < minTokenLen {
			continue
		}
		tokens[f] = struct{}{}
	}
	return tokens
}

// corporateSuffixes are legal-entity abbreviations stripped from
// merchant names. Keys are compared after normalization with
// surrounding dots removed, so "A.Ş." and "AS" both match.
var corporateSuffixes = map[string]struct{}{
	"a.s":     {},
	"as":      {},
	"ltd":     {},
	"sti":     {},
	"ltd.sti": {},
	"tic":     {},
	"ticaret": {},
	"san":     {},
	"sanayi":  {},
	"ve":      {},
	"sirketi": {},
	"anonim":  {},
}

// NormalizeMerchant normalizes a merchant name and strips corporate
// suffix tokens, trimming any residual whitespace.
func NormalizeMerchant(text string) string {
	fields := strings.Fields(Normalize(text))
	kept := fields[:0]
	for _, f := range fields {
		if _, drop := corporateSuffixes[strings.Trim(f, ".")]; drop {
			continue
		}
		kept = append(kept, f)
	}
	return strings.TrimSpace(strings.Join(kept, " "))
}
