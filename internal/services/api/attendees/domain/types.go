// Package domain holds attendee core types independent of transport or storage
package domain

import "time"

// Attendee is one directory record
// UserID is nil while the record is unclaimed
type Attendee struct {
	ID        string     `json:"id"         example:"6b2f3a1e-9c4d-4f7a-8a1b-2c3d4e5f6a7b"`
	Name      string     `json:"name"       example:"Jane Doe"`
	Email     string     `json:"email,omitempty" example:"jane@example.com"`
	Company   string     `json:"company,omitempty" example:"Acme Corp"`
	JobTitle  string     `json:"job_title,omitempty" example:"Staff Engineer"`
	UserID    *string    `json:"user_id,omitempty" example:"usr_01hx"`
	CreatedAt time.Time  `json:"created_at"`
	ClaimedAt *time.Time `json:"claimed_at,omitempty"`
}

// Claimed reports whether the record has been taken by a registrant
func (a Attendee) Claimed() bool { return a.UserID != nil && *a.UserID != "" }
