// Package namematch provides deterministic person-name matching
// Pipeline order for folding
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKD decomposition so marks become separable runes
// 3 Case folding
// 4 Remove zero-width and combining marks
// 5 Width fold fullwidth to ASCII
// 6 NFC recomposition
// 7 Collapse whitespace to single spaces and trim
//
// On top of folding it offers an exact rule and a deliberately loose fuzzy
// rule (same last token, same first two characters of the first token) that
// trades precision for recall when reconciling self-reported names against
// a seeded directory
package namematch

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Kind classifies how two names matched
type Kind uint8

const (
	// None means the names do not match
	None Kind = iota
	// Exact means the folded forms are equal
	Exact
	// Fuzzy means the loose first/last token rule fired
	Fuzzy
)

// String returns the wire label for a match kind
func (k Kind) String() string {
	switch k {
	case Exact:
		return "exact"
	case Fuzzy:
		return "fuzzy"
	default:
		return "none"
	}
}

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// order matters and mirrors the documented pipeline
		// NFKD first: precomposed accents carry no separable Mn rune,
		// so mark stripping only works on decomposed text
		return transform.Chain(
			norm.NFKD,
			cases.Fold(),                       // unicode case folding
			runes.Remove(runes.In(unicode.Mn)), // strip combining marks
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			width.Fold,                         // map fullwidth forms to ASCII
			norm.NFC,                           // recompose what survives
		)
	},
}

// Fold returns the folded comparison form of a name
func Fold(s string) string {
	if s == "" {
		return ""
	}

	// 1 repair UTF-8 drop invalid bytes
	s = strings.ToValidUTF8(s, "")

	// 2-5 transform via pooled chain then reset and return it
	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	// 6 collapse whitespace and trim
	return collapseSpaces(ns)
}

// Tokens splits a name into folded whitespace tokens
func Tokens(s string) []string {
	f := Fold(s)
	if f == "" {
		return nil
	}
	return strings.Fields(f)
}

// EqualExact reports whether two names fold to the same string
func EqualExact(a, b string) bool {
	fa, fb := Fold(a), Fold(b)
	return fa != "" && fa == fb
}

// EqualFuzzy reports whether two names satisfy the loose match rule:
// last tokens equal, and the first two characters of the first tokens equal,
// with both first tokens at least two characters long
// Single-token names never fuzzy match
func EqualFuzzy(a, b string) bool {
	ta, tb := Tokens(a), Tokens(b)
	if len(ta) < 2 || len(tb) < 2 {
		return false
	}
	if ta[len(ta)-1] != tb[len(tb)-1] {
		return false
	}
	fa := []rune(ta[0])
	fb := []rune(tb[0])
	if len(fa) < 2 || len(fb) < 2 {
		return false
	}
	return fa[0] == fb[0] && fa[1] == fb[1]
}

// Match classifies how a and b relate, preferring exact over fuzzy
func Match(a, b string) Kind {
	if EqualExact(a, b) {
		return Exact
	}
	if EqualFuzzy(a, b) {
		return Fuzzy
	}
	return None
}

// collapseSpaces converts whitespace runs to a single ASCII space and trims the edges
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
