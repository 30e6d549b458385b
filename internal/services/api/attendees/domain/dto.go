// Package domain holds DTOs for attendees http and service contracts
package domain

// LookupInput asks the service to find an unclaimed record by self-reported name
type LookupInput struct {
	Name string `json:"name" validate:"required,min=1,max=200" example:"Jane Doe"`
}

// LookupOutput is the resolution result
// Match is "exact", "fuzzy", or "none"; AttendeeID is empty when Found is false
type LookupOutput struct {
	Found      bool   `json:"found" example:"true"`
	AttendeeID string `json:"attendee_id,omitempty" example:"6b2f3a1e-9c4d-4f7a-8a1b-2c3d4e5f6a7b"`
	Name       string `json:"name,omitempty" example:"Jane Doe"`
	Match      string `json:"match" example:"exact"`
}

// ClaimInput binds an unclaimed record to the authenticated user
// Name is re-checked against the record so a stale attendee_id from an old
// lookup cannot claim someone else's entry
type ClaimInput struct {
	AttendeeID string `json:"attendee_id" validate:"required,uuid4" example:"6b2f3a1e-9c4d-4f7a-8a1b-2c3d4e5f6a7b"`
	Name       string `json:"name"  validate:"required,min=1,max=200" example:"Jane Doe"`
	Email      string `json:"email" validate:"required,email,max=320" example:"jane@example.com"`
}

// CreateInput seeds an unclaimed directory record
type CreateInput struct {
	Name     string `json:"name"      validate:"required,min=1,max=200" example:"Jane Doe"`
	Email    string `json:"email"     validate:"omitempty,email,max=320" example:"jane@example.com"`
	Company  string `json:"company"   validate:"omitempty,max=200" example:"Acme Corp"`
	JobTitle string `json:"job_title" validate:"omitempty,max=200" example:"Staff Engineer"`
}

// GetInput fetches one record by id
type GetInput struct {
	AttendeeID string `json:"attendee_id" validate:"required,uuid4"`
}
