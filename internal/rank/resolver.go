// Package rank resolves a team's league position from a standings table
// whose team names do not exactly match the FPL names.
package rank

import (
	"strings"
	"unicode"

	"github.com/samber/lo"
)

// Entry is one row of a standings table.
type Entry struct {
	Team  string `json:"team"`
	Short string `json:"short,omitempty"`
	Rank  int    `json:"rank"`
}

// aliases map normalised abbreviations to normalised full names.
var aliases = map[string]string{
	"man city":      "manchester city",
	"man utd":       "manchester united",
	"man united":    "manchester united",
	"spurs":         "tottenham hotspur",
	"tottenham":     "tottenham hotspur",
	"nottm forest":  "nottingham forest",
	"forest":        "nottingham forest",
	"wolves":        "wolverhampton wanderers",
	"newcastle":     "newcastle united",
	"west ham":      "west ham united",
	"brighton":      "brighton hove albion",
	"sheffield utd": "sheffield united",
	"leeds":         "leeds united",
	"leicester":     "leicester city",
	"ipswich":       "ipswich town",
	"luton":         "luton town",
}

var dropWords = map[string]bool{"fc": true, "afc": true, "and": true, "the": true}

// normalize lower-cases, strips punctuation and club suffixes, and applies
// the alias table.
func normalize(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '&':
			b.WriteRune(' ')
		case r == '\'' || r == '.':
		default:
			b.WriteRune(' ')
		}
	}
	words := lo.Filter(strings.Fields(b.String()), func(w string, _ int) bool { return !dropWords[w] })
	n := strings.Join(words, " ")
	if full, ok := aliases[n]; ok {
		return full
	}
	return n
}

// Resolver matches names against a fixed standings table.
type Resolver struct {
	byName  map[string]int
	byShort map[string]int
}

// minFuzzyLen keeps short fragments ("che", "ham") from matching inside
// unrelated names.
const minFuzzyLen = 4

func NewResolver(entries []Entry) *Resolver {
	r := &Resolver{
		byName:  make(map[string]int, len(entries)),
		byShort: make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if e.Rank <= 0 {
			continue
		}
		r.byName[normalize(e.Team)] = e.Rank
		if e.Short != "" {
			r.byShort[strings.ToLower(strings.TrimSpace(e.Short))] = e.Rank
		}
	}
	return r
}

// ResolveOpponentRank tries an exact normalised match, then a short-code
// match, then a unique substring match in either direction. Ambiguous or
// empty names miss.
func (r *Resolver) ResolveOpponentRank(name string) (int, bool) {
	if r == nil {
		return 0, false
	}
	n := normalize(name)
	if n == "" {
		return 0, false
	}
	if rank, ok := r.byName[n]; ok {
		return rank, true
	}
	if rank, ok := r.byShort[strings.ToLower(strings.TrimSpace(name))]; ok {
		return rank, true
	}

	found, matches := 0, 0
	seen := map[int]bool{}
	for key, rank := range r.byName {
		if !fuzzyContains(key, n) {
			continue
		}
		if seen[rank] {
			continue
		}
		seen[rank] = true
		found = rank
		matches++
	}
	if matches != 1 {
		return 0, false
	}
	return found, true
}

func fuzzyContains(a, b string) bool {
	if len(a) < len(b) {
		a, b = b, a
	}
	return len(b) >= minFuzzyLen && strings.Contains(a, b)
}
