package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Adarsha-Hegade/data-entry1/internal/models"
)

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

// Any reports whether at least one profile exists. The query is
// limited to one row; it backs the first-user check.
func (r *ProfileRepo) Any(ctx context.Context) (bool, error) {
	const query = `SELECT id FROM profiles LIMIT 1;`

	var id string
	if err := r.pool.QueryRow(ctx, query).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("any profile: %w", err)
	}
	return true, nil
}

func (r *ProfileRepo) FindByEmail(ctx context.Context, email string) (*models.Profile, error) {
	const query = `
	SELECT id, email, password_hash, full_name, role, created_at, updated_at
	FROM profiles WHERE email = $1;`

	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *ProfileRepo) FindByID(ctx context.Context, id string) (*models.Profile, error) {
	const query = `
	SELECT id, email, password_hash, full_name, role, created_at, updated_at
	FROM profiles WHERE id = $1;`

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *ProfileRepo) Create(ctx context.Context, p *models.Profile) error {
	const query = `
	INSERT INTO profiles (id, email, password_hash, full_name, role)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at, updated_at;`

	row := r.pool.QueryRow(ctx, query, p.ID, p.Email, p.PasswordHash, p.FullName, p.Role)
	if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

func (r *ProfileRepo) List(ctx context.Context) ([]models.Profile, error) {
	const query = `
	SELECT id, email, password_hash, full_name, role, created_at, updated_at
	FROM profiles ORDER BY created_at DESC;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.FullName, &p.Role, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *ProfileRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM profiles WHERE id = $1;`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ProfileRepo) scanOne(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.FullName, &p.Role, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	return &p, nil
}
