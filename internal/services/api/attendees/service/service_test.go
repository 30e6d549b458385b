package service

import (
	"context"
	"testing"
	"time"

	perrs "mingle/internal/platform/errors"
	"mingle/internal/services/api/attendees/domain"
)

type fakeRepo struct {
	exact     *domain.Attendee
	unclaimed []domain.Attendee

	byID     map[string]domain.Attendee
	affected int64

	inserted []domain.Attendee
	claims   []string
}

func (f *fakeRepo) FindUnclaimedExact(_ context.Context, _ string) (domain.Attendee, bool, error) {
	if f.exact == nil {
		return domain.Attendee{}, false, nil
	}
	return *f.exact, true, nil
}

func (f *fakeRepo) ListUnclaimed(_ context.Context, _ int) ([]domain.Attendee, error) {
	return f.unclaimed, nil
}

func (f *fakeRepo) Claim(_ context.Context, id, userID, _ string) (int64, error) {
	f.claims = append(f.claims, id+":"+userID)
	return f.affected, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (domain.Attendee, bool, error) {
	a, ok := f.byID[id]
	return a, ok, nil
}

func (f *fakeRepo) Insert(_ context.Context, a domain.Attendee) error {
	f.inserted = append(f.inserted, a)
	if f.byID == nil {
		f.byID = map[string]domain.Attendee{}
	}
	f.byID[a.ID] = a
	return nil
}

func newTestSvc(r *fakeRepo) *Svc { return &Svc{Repo: r} }

func TestLookupExactWins(t *testing.T) {
	r := &fakeRepo{
		exact: &domain.Attendee{ID: "id-exact", Name: "Jane Doe"},
		unclaimed: []domain.Attendee{
			{ID: "id-fuzzy", Name: "Jane Doe"},
		},
	}
	out, err := newTestSvc(r).Lookup(context.Background(), domain.LookupInput{Name: "jane doe"})
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !out.Found || out.AttendeeID != "id-exact" || out.Match != "exact" {
		t.Fatalf("unexpected result: %+v", out)
	}
}

func TestLookupFuzzyNewestWins(t *testing.T) {
	// list is newest first; both fuzzy-match "Rob Smith"
	r := &fakeRepo{unclaimed: []domain.Attendee{
		{ID: "newer", Name: "Robert Smith", CreatedAt: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "older", Name: "Robert Smith", CreatedAt: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)},
	}}
	out, err := newTestSvc(r).Lookup(context.Background(), domain.LookupInput{Name: "Rob Smith"})
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !out.Found || out.AttendeeID != "newer" {
		t.Fatalf("newest candidate should win: %+v", out)
	}
	if out.Match != "fuzzy" {
		t.Fatalf("want fuzzy match, got %q", out.Match)
	}
}

func TestLookupNoMatch(t *testing.T) {
	r := &fakeRepo{unclaimed: []domain.Attendee{{ID: "x", Name: "Alice Jones"}}}
	out, err := newTestSvc(r).Lookup(context.Background(), domain.LookupInput{Name: "Bob Brown"})
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if out.Found || out.AttendeeID != "" || out.Match != "none" {
		t.Fatalf("want negative result, got %+v", out)
	}
}

func TestLookupBlankName(t *testing.T) {
	_, err := newTestSvc(&fakeRepo{}).Lookup(context.Background(), domain.LookupInput{Name: "  "})
	if !perrs.IsCode(err, perrs.ErrorCodeValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestClaimSuccess(t *testing.T) {
	r := &fakeRepo{
		byID:     map[string]domain.Attendee{"a1": {ID: "a1", Name: "Jane Doe"}},
		affected: 1,
	}
	out, err := newTestSvc(r).Claim(context.Background(), "usr1", domain.ClaimInput{
		AttendeeID: "a1", Name: "Jane Doe", Email: "jane@example.com",
	})
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if out.ID != "a1" {
		t.Fatalf("unexpected record: %+v", out)
	}
	if len(r.claims) != 1 || r.claims[0] != "a1:usr1" {
		t.Fatalf("unexpected claim call: %v", r.claims)
	}
}

func TestClaimMissingRecordIsNotFound(t *testing.T) {
	r := &fakeRepo{byID: map[string]domain.Attendee{}}
	_, err := newTestSvc(r).Claim(context.Background(), "usr1", domain.ClaimInput{
		AttendeeID: "nope", Name: "Jane Doe", Email: "jane@example.com",
	})
	if !perrs.IsCode(err, perrs.ErrorCodeNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
	if len(r.claims) != 0 {
		t.Fatal("missing record must not reach the update")
	}
}

func TestClaimRaceLostIsConflict(t *testing.T) {
	r := &fakeRepo{
		byID:     map[string]domain.Attendee{"a1": {ID: "a1", Name: "Jane Doe"}},
		affected: 0, // someone else won between read and update
	}
	_, err := newTestSvc(r).Claim(context.Background(), "usr1", domain.ClaimInput{
		AttendeeID: "a1", Name: "Jane Doe", Email: "jane@example.com",
	})
	if !perrs.IsCode(err, perrs.ErrorCodeConflict) {
		t.Fatalf("want conflict, got %v", err)
	}
}

func TestClaimNameMismatchRejected(t *testing.T) {
	r := &fakeRepo{
		byID:     map[string]domain.Attendee{"a1": {ID: "a1", Name: "Jane Doe"}},
		affected: 1,
	}
	_, err := newTestSvc(r).Claim(context.Background(), "usr1", domain.ClaimInput{
		AttendeeID: "a1", Name: "Completely Different", Email: "jane@example.com",
	})
	if !perrs.IsCode(err, perrs.ErrorCodeValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
	if len(r.claims) != 0 {
		t.Fatal("mismatched name must not reach the update")
	}
}

func TestClaimWithoutIdentity(t *testing.T) {
	_, err := newTestSvc(&fakeRepo{}).Claim(context.Background(), "", domain.ClaimInput{AttendeeID: "a1"})
	if !perrs.IsCode(err, perrs.ErrorCodeUnauthorized) {
		t.Fatalf("want unauthorized, got %v", err)
	}
}

func TestCreateAssignsID(t *testing.T) {
	r := &fakeRepo{}
	out, err := newTestSvc(r).Create(context.Background(), domain.CreateInput{
		Name: "  Jane Doe ", Company: "Acme",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if out.ID == "" {
		t.Fatal("want generated id")
	}
	if out.Name != "Jane Doe" {
		t.Fatalf("name should be trimmed, got %q", out.Name)
	}
	if len(r.inserted) != 1 {
		t.Fatalf("want 1 insert, got %d", len(r.inserted))
	}
}

func TestGetMissing(t *testing.T) {
	_, err := newTestSvc(&fakeRepo{byID: map[string]domain.Attendee{}}).Get(context.Background(), "nope")
	if !perrs.IsCode(err, perrs.ErrorCodeNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}
