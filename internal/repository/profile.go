package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Gifford23/youth-xtreme-checkin/internal/domain"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

type ProfileRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewProfileRepo(db *dbpg.DB) *ProfileRepository {
	return &ProfileRepository{
		db: db,
		strategy: retry.Strategy{
			Attempts: 3,
			Delay:    500 * time.Millisecond,
			Backoff:  2,
		},
	}
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	query := `INSERT INTO profiles (id, display_name, email, is_volunteer, role, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecWithRetry(
		ctx, r.strategy, query,
		p.ID, p.DisplayName, p.Email, p.IsVolunteer, p.Role, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}

	return nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT id, display_name, email, is_volunteer, role, created_at
			  FROM profiles
			  WHERE id=$1`
	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, id)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	var p domain.Profile
	if err = row.Scan(&p.ID, &p.DisplayName, &p.Email, &p.IsVolunteer, &p.Role, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}

	return &p, nil
}

func (r *ProfileRepository) SetVolunteer(ctx context.Context, id string, volunteer bool) error {
	role := domain.RoleMember
	if volunteer {
		role = domain.RoleVolunteer
	}

	query := `UPDATE profiles SET is_volunteer=$2, role=$3 WHERE id=$1`
	res, err := r.db.ExecWithRetry(ctx, r.strategy, query, id, volunteer, role)
	if err != nil {
		return fmt.Errorf("set volunteer: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set volunteer rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}

	return nil
}
