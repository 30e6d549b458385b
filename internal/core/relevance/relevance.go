// Package relevance scores search results against a person description
//
// The scorer is additive and word based. Name evidence weighs most, an exact
// company mention outranks scattered company words, and job-title words fill
// in the middle. Scores are only comparable within one query
package relevance

import "strings"

// Candidate is one search result under consideration
type Candidate struct {
	Title   string
	URL     string
	Snippet string
}

// Query describes the person being searched for
type Query struct {
	Name     string
	JobTitle string
	Company  string
}

// scoring weights
const (
	nameTokenPts    = 10
	titleTokenPts   = 5
	companyExactPts = 15
	companyTokenPts = 3
	minNameTokenLen = 3
)

// Score computes the additive relevance of c for q
// Matching is case-insensitive over the candidate title plus snippet
func Score(q Query, c Candidate) int {
	hay := strings.ToLower(c.Title + " " + c.Snippet)
	score := 0

	for _, tok := range tokens(q.Name) {
		if len(tok) < minNameTokenLen {
			continue
		}
		if strings.Contains(hay, tok) {
			score += nameTokenPts
		}
	}

	for _, tok := range tokens(q.JobTitle) {
		if strings.Contains(hay, tok) {
			score += titleTokenPts
		}
	}

	if company := strings.ToLower(strings.TrimSpace(q.Company)); company != "" {
		if strings.Contains(hay, company) {
			score += companyExactPts
		} else {
			for _, tok := range tokens(q.Company) {
				if strings.Contains(hay, tok) {
					score += companyTokenPts
				}
			}
		}
	}

	return score
}

// Best returns the highest scoring candidate and its score
// Ties keep the earliest candidate so input order is a stable tiebreak
// ok is false when candidates is empty
func Best(q Query, candidates []Candidate) (best Candidate, score int, ok bool) {
	if len(candidates) == 0 {
		return Candidate{}, 0, false
	}
	best = candidates[0]
	score = Score(q, best)
	for _, c := range candidates[1:] {
		if s := Score(q, c); s > score {
			best, score = c, s
		}
	}
	return best, score, true
}

// IsProfileURL reports whether rawURL looks like a personal profile page
// rather than a company page, directory, or post
func IsProfileURL(rawURL string) bool {
	u := strings.ToLower(rawURL)
	return strings.Contains(u, "linkedin.com/in/")
}

// FilterProfiles keeps only personal-profile candidates, preserving order
func FilterProfiles(candidates []Candidate) []Candidate {
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if IsProfileURL(c.URL) {
			out = append(out, c)
		}
	}
	return out
}

func tokens(s string) []string {
	return strings.Fields(strings.ToLower(s))
}
