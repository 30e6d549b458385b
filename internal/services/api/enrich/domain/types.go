// Package domain holds enrichment core types independent of transport
package domain

// Vocabulary is the closed set of industry tags the generator may emit
// Tags outside this list survive recovery paths but the prompt forbids them
var Vocabulary = []string{
	"Technology & Software",
	"Finance & Banking",
	"Healthcare & Medicine",
	"Education & Research",
	"Marketing & Advertising",
	"Media & Entertainment",
	"Retail & E-commerce",
	"Manufacturing & Industrial",
	"Energy & Utilities",
	"Real Estate & Construction",
	"Transportation & Logistics",
	"Hospitality & Tourism",
	"Legal & Compliance",
	"Human Resources & Recruiting",
	"Consulting & Strategy",
	"Government & Public Sector",
	"Nonprofit & Social Impact",
	"Agriculture & Food",
	"Telecommunications",
	"Aerospace & Defense",
	"Sports & Fitness",
	"Arts & Design",
	"Business Services",
	"Professional Services",
}

// DefaultTags are the generic fallbacks used when the model returns no
// usable tags at all
func DefaultTags() []string {
	return []string{"Technology & Software", "Business Services", "Professional Services"}
}

// DefaultSummary is the guaranteed-shape fallback when nothing could be
// recovered from the model output
func DefaultSummary() []string {
	return []string{
		"An experienced professional attending the event.",
		"Additional background details were not available from public sources.",
		"Open to meeting and connecting with fellow attendees.",
	}
}

// IsApprovedTag reports whether t is in the closed vocabulary
func IsApprovedTag(t string) bool {
	for _, v := range Vocabulary {
		if v == t {
			return true
		}
	}
	return false
}
