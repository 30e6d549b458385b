package domain

import "context"

// ServicePort is the interface implemented by the enrich service
type ServicePort interface {
	Enrich(ctx context.Context, in EnrichInput) (EnrichOutput, error)
	FindProfile(ctx context.Context, in ProfileInput) (ProfileOutput, error)
}
