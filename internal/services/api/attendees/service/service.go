// Package service contains attendees workflows
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"mingle/internal/core/namematch"
	"mingle/internal/modkit/repokit"
	perrs "mingle/internal/platform/errors"
	"mingle/internal/platform/logger"
	"mingle/internal/services/api/attendees/domain"
	"mingle/internal/services/api/attendees/repo"
)

// fuzzyScanLimit caps how many unclaimed rows are pulled for in-process matching
// the directory is event sized, not internet sized
const fuzzyScanLimit = 500

// Service is the public service port
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	log    logger.Logger
}

// New creates a new attendees service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("attendees.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("attendees.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
		log:    *logger.Named("attendees"),
	}
}

// Lookup resolves a self-reported name against unclaimed records
// Exact match is tried in SQL first; only then does the looser in-process
// rule run over a bounded candidate set, newest record winning
func (s *Svc) Lookup(ctx context.Context, in domain.LookupInput) (domain.LookupOutput, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.LookupOutput{}, perrs.Validationf("name is required")
	}

	a, ok, err := s.Repo.FindUnclaimedExact(ctx, name)
	if err != nil {
		return domain.LookupOutput{}, perrs.WithOp(perrs.FromPostgres(err), "attendees.lookup")
	}
	if ok {
		return domain.LookupOutput{
			Found:      true,
			AttendeeID: a.ID,
			Name:       a.Name,
			Match:      namematch.Exact.String(),
		}, nil
	}

	candidates, err := s.Repo.ListUnclaimed(ctx, fuzzyScanLimit)
	if err != nil {
		return domain.LookupOutput{}, perrs.WithOp(perrs.FromPostgres(err), "attendees.lookup")
	}
	// candidates arrive newest first, so the first hit is the winner
	for _, c := range candidates {
		if kind := namematch.Match(name, c.Name); kind != namematch.None {
			s.log.Debug().Str("attendee_id", c.ID).Str("kind", kind.String()).Msg("fuzzy lookup hit")
			return domain.LookupOutput{
				Found:      true,
				AttendeeID: c.ID,
				Name:       c.Name,
				Match:      kind.String(),
			}, nil
		}
	}

	return domain.LookupOutput{Match: namematch.None.String()}, nil
}

// Claim binds the record to the authenticated user
// The record is read first so a missing id and a stale name can be rejected
// cleanly, but the conditional update carries the race: zero rows affected
// on a record we just saw means someone else won
func (s *Svc) Claim(ctx context.Context, userID string, in domain.ClaimInput) (domain.Attendee, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.Attendee{}, perrs.Unauthorizedf("missing user identity")
	}

	rec, exists, err := s.Repo.GetByID(ctx, in.AttendeeID)
	if err != nil {
		return domain.Attendee{}, perrs.WithOp(perrs.FromPostgres(err), "attendees.claim")
	}
	if !exists {
		return domain.Attendee{}, perrs.NotFoundf("attendee not found")
	}
	if namematch.Match(in.Name, rec.Name) == namematch.None {
		return domain.Attendee{}, perrs.Validationf("name does not match attendee record")
	}

	affected, err := s.Repo.Claim(ctx, in.AttendeeID, userID, in.Email)
	if err != nil {
		return domain.Attendee{}, perrs.WithOp(perrs.FromPostgres(err), "attendees.claim")
	}
	if affected == 0 {
		return domain.Attendee{}, perrs.Conflictf("attendee already registered")
	}

	a, _, err := s.Repo.GetByID(ctx, in.AttendeeID)
	if err != nil {
		return domain.Attendee{}, perrs.WithOp(perrs.FromPostgres(err), "attendees.claim")
	}
	return a, nil
}

// Create seeds an unclaimed directory record
func (s *Svc) Create(ctx context.Context, in domain.CreateInput) (domain.Attendee, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Attendee{}, perrs.Validationf("name is required")
	}

	a := domain.Attendee{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    strings.TrimSpace(in.Email),
		Company:  strings.TrimSpace(in.Company),
		JobTitle: strings.TrimSpace(in.JobTitle),
	}
	if err := s.Repo.Insert(ctx, a); err != nil {
		return domain.Attendee{}, perrs.WithOp(perrs.FromPostgres(err), "attendees.create")
	}

	out, _, err := s.Repo.GetByID(ctx, a.ID)
	if err != nil {
		return domain.Attendee{}, perrs.WithOp(perrs.FromPostgres(err), "attendees.create")
	}
	return out, nil
}

// Get fetches one record by id
func (s *Svc) Get(ctx context.Context, id string) (domain.Attendee, error) {
	a, ok, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return domain.Attendee{}, perrs.WithOp(perrs.FromPostgres(err), "attendees.get")
	}
	if !ok {
		return domain.Attendee{}, perrs.NotFoundf("attendee not found")
	}
	return a, nil
}
