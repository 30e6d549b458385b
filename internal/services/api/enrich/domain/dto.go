// Package domain holds DTOs for enrich http and service contracts
package domain

// EnrichInput carries identifying details for one attendee
// Name is the only required field; everything else sharpens the search
type EnrichInput struct {
	Name        string `json:"name"         validate:"required,min=1,max=200" example:"Jane Doe"`
	JobTitle    string `json:"job_title"    validate:"omitempty,max=200" example:"Staff Engineer"`
	Company     string `json:"company"      validate:"omitempty,max=200" example:"Acme Corp"`
	LinkedinURL string `json:"linkedin_url" validate:"omitempty,url,max=500" example:"https://linkedin.com/in/janedoe"`
	About       string `json:"about"        validate:"omitempty,max=2000" example:"I build data platforms."`
}

// EnrichOutput is the bounded enrichment result
// Summary always has exactly 3 entries and IndustryTags 1 to 3
// LimitedContext surfaces that search found little and the text is generic
type EnrichOutput struct {
	Summary        []string `json:"summary"`
	IndustryTags   []string `json:"industry_tags"`
	SourcesFound   int      `json:"sources_found" example:"4"`
	LimitedContext bool     `json:"limited_context" example:"false"`
}

// ProfileInput asks for the best public profile URL for a person
type ProfileInput struct {
	Name     string `json:"name"      validate:"required,min=1,max=200" example:"Jane Doe"`
	JobTitle string `json:"job_title" validate:"omitempty,max=200" example:"Staff Engineer"`
	Company  string `json:"company"   validate:"omitempty,max=200" example:"Acme Corp"`
}

// ProfileOutput is the best-scoring profile candidate, if any
type ProfileOutput struct {
	Found        bool   `json:"found" example:"true"`
	URL          string `json:"profile_url,omitempty" example:"https://linkedin.com/in/janedoe"`
	Score        int    `json:"score,omitempty" example:"35"`
	SourcesFound int    `json:"sources_found" example:"7"`
}
