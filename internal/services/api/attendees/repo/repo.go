// Package repo provides the attendees repository implementation
package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"mingle/internal/modkit/repokit"
	str "mingle/internal/platform/strings"
	"mingle/internal/services/api/attendees/domain"
)

// Repo is the attendees persistence surface used by the service layer
type Repo interface {
	// FindUnclaimedExact returns the newest unclaimed record whose name matches
	// case-insensitively. ok is false when no row matches
	FindUnclaimedExact(ctx context.Context, name string) (domain.Attendee, bool, error)

	// ListUnclaimed returns unclaimed records newest first, capped at limit
	ListUnclaimed(ctx context.Context, limit int) ([]domain.Attendee, error)

	// Claim binds the record to userID in a single conditional update and
	// returns the number of rows affected. Zero rows means the record was
	// missing or already claimed; the caller disambiguates
	Claim(ctx context.Context, id, userID, email string) (int64, error)

	// GetByID returns the record; ok is false when it does not exist
	GetByID(ctx context.Context, id string) (domain.Attendee, bool, error)

	// Insert seeds a new record
	Insert(ctx context.Context, a domain.Attendee) error
}

type (
	// PG is a Postgres implementation of the attendees repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const attendeeCols = `id, name, COALESCE(email, ''), COALESCE(company, ''), COALESCE(job_title, ''),
	user_id, created_at, claimed_at`

func scanAttendee(row repokit.Row) (domain.Attendee, error) {
	var a domain.Attendee
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Company, &a.JobTitle, &a.UserID, &a.CreatedAt, &a.ClaimedAt)
	return a, err
}

// FindUnclaimedExact prefers the newest record so re-seeded names win
func (r *queries) FindUnclaimedExact(ctx context.Context, name string) (domain.Attendee, bool, error) {
	const sql = `
		SELECT ` + attendeeCols + `
		FROM attendees
		WHERE user_id IS NULL
		  AND lower(name) = lower($1)
		ORDER BY created_at DESC
		LIMIT 1
	`
	a, err := scanAttendee(r.q.QueryRow(ctx, sql, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Attendee{}, false, nil
		}
		return domain.Attendee{}, false, err
	}
	return a, true, nil
}

func (r *queries) ListUnclaimed(ctx context.Context, limit int) ([]domain.Attendee, error) {
	const sql = `
		SELECT ` + attendeeCols + `
		FROM attendees
		WHERE user_id IS NULL
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.q.Query(ctx, sql, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Attendee
	for rows.Next() {
		a, err := scanAttendee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Claim is the atomicity point of the whole flow; the WHERE clause loses the
// race for us so no explicit locking is needed
func (r *queries) Claim(ctx context.Context, id, userID, email string) (int64, error) {
	const sql = `
		UPDATE attendees
		SET user_id = $2,
		    email = COALESCE(NULLIF($3, ''), email),
		    claimed_at = NOW()
		WHERE id = $1
		  AND user_id IS NULL
	`
	tag, err := r.q.Exec(ctx, sql, id, userID, email)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *queries) GetByID(ctx context.Context, id string) (domain.Attendee, bool, error) {
	const sql = `SELECT ` + attendeeCols + ` FROM attendees WHERE id = $1`
	a, err := scanAttendee(r.q.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Attendee{}, false, nil
		}
		return domain.Attendee{}, false, err
	}
	return a, true, nil
}

func (r *queries) Insert(ctx context.Context, a domain.Attendee) error {
	const sql = `
		INSERT INTO attendees (id, name, email, company, job_title, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.q.Exec(ctx, sql, a.ID, a.Name, str.SQLNull(a.Email), str.SQLNull(a.Company), str.SQLNull(a.JobTitle))
	return err
}
