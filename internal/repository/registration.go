package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Gifford23/youth-xtreme-checkin/internal/domain"
	"github.com/lib/pq"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

type RegistrationRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewRegistrationRepo(db *dbpg.DB) *RegistrationRepository {
	return &RegistrationRepository{
		db: db,
		strategy: retry.Strategy{
			Attempts: 3,
			Delay:    500 * time.Millisecond,
			Backoff:  2,
		},
	}
}

func (r *RegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	query := `INSERT INTO registrations
			  (id, event_id, identity, display_name, contact_phone, party_size, notes, status, origin, checked_in_at, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.ExecWithRetry(
		ctx, r.strategy, query,
		reg.ID, reg.EventID, reg.Identity, reg.DisplayName, reg.ContactPhone,
		reg.PartySize, reg.Notes, reg.Status, reg.Origin, reg.CheckedInAt,
		reg.CreatedAt, reg.UpdatedAt,
	)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return domain.ErrDuplicateIdentity
			case "23503":
				return domain.ErrEventNotFound
			}
		}
		return fmt.Errorf("insert registration: %w", err)
	}

	return nil
}

const registrationColumns = `id, event_id, identity, display_name, contact_phone,
	party_size, notes, status, origin, checked_in_at, created_at, updated_at`

func scanRegistration(row interface{ Scan(...any) error }) (*domain.Registration, error) {
	var reg domain.Registration
	err := row.Scan(
		&reg.ID, &reg.EventID, &reg.Identity, &reg.DisplayName, &reg.ContactPhone,
		&reg.PartySize, &reg.Notes, &reg.Status, &reg.Origin, &reg.CheckedInAt,
		&reg.CreatedAt, &reg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *RegistrationRepository) GetByID(ctx context.Context, eventID, id string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + `
			  FROM registrations
			  WHERE event_id=$1 AND id=$2`
	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, eventID, id)
	if err != nil {
		return nil, fmt.Errorf("get registration: %w", err)
	}

	reg, err := scanRegistration(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("scan registration: %w", err)
	}

	return reg, nil
}

func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + `
			  FROM registrations
			  WHERE event_id=$1
			  ORDER BY created_at`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var res []*domain.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		res = append(res, reg)
	}

	return res, rows.Err()
}

// SetStatus writes the target status absolutely, never relative to what a client
// read earlier. Concurrent scanners racing the same badge both land on
// checked-in, which keeps the cross-device race benign. checked_in_at is kept
// from the first arrival and cleared when an admin toggles back to pending.
func (r *RegistrationRepository) SetStatus(ctx context.Context, eventID, id string, status domain.RegistrationStatus) (*domain.Registration, error) {
	query := `UPDATE registrations
			  SET status = $3,
			      checked_in_at = CASE WHEN $3 = $4 THEN COALESCE(checked_in_at, now()) END,
			      updated_at = now()
			  WHERE event_id = $1 AND id = $2
			  RETURNING ` + registrationColumns
	row, err := r.db.QueryRowWithRetry(
		ctx, r.strategy, query,
		eventID, id, status, domain.StatusCheckedIn,
	)
	if err != nil {
		return nil, fmt.Errorf("set status: %w", err)
	}

	reg, err := scanRegistration(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("scan registration: %w", err)
	}

	return reg, nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, eventID, id string) error {
	query := `DELETE FROM registrations WHERE event_id=$1 AND id=$2`
	res, err := r.db.ExecWithRetry(ctx, r.strategy, query, eventID, id)
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrRegistrationNotFound
	}

	return nil
}

func (r *RegistrationRepository) Summary(ctx context.Context, eventID string) (*domain.AttendanceSummary, error) {
	query := `SELECT
				COUNT(*),
				COUNT(*) FILTER (WHERE status = $2),
				COALESCE(SUM(party_size), 0),
				COALESCE(SUM(party_size) FILTER (WHERE status = $2), 0)
			  FROM registrations
			  WHERE event_id = $1`
	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, eventID, domain.StatusCheckedIn)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}

	var s domain.AttendanceSummary
	if err = row.Scan(&s.Registered, &s.CheckedIn, &s.ExpectedHeads, &s.ArrivedHeads); err != nil {
		return nil, fmt.Errorf("scan summary: %w", err)
	}

	return &s, nil
}
