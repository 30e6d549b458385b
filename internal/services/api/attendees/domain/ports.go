package domain

import "context"

// ServicePort is the interface implemented by the attendees service
type ServicePort interface {
	Lookup(ctx context.Context, in LookupInput) (LookupOutput, error)
	Claim(ctx context.Context, userID string, in ClaimInput) (Attendee, error)
	Create(ctx context.Context, in CreateInput) (Attendee, error)
	Get(ctx context.Context, id string) (Attendee, error)
}
