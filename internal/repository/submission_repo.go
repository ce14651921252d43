package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Adarsha-Hegade/data-entry1/internal/models"
)

type SubmissionRepo struct {
	pool *pgxpool.Pool
}

func NewSubmissionRepo(pool *pgxpool.Pool) *SubmissionRepo {
	return &SubmissionRepo{pool: pool}
}

// Upsert inserts or replaces the submission for (task_id, user_id).
// The content and status always reflect the incoming record; the row
// id and created_at of an existing submission survive.
func (r *SubmissionRepo) Upsert(ctx context.Context, s *models.Submission) error {
	const query = `
	INSERT INTO submissions (id, task_id, user_id, content, status)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT ON CONSTRAINT submissions_task_user_key
	DO UPDATE SET content = EXCLUDED.content, status = EXCLUDED.status, updated_at = now()
	RETURNING id, created_at, updated_at;`

	row := r.pool.QueryRow(ctx, query, s.ID, s.TaskID, s.UserID, s.Content, s.Status)
	if err := row.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return fmt.Errorf("upsert submission: %w", err)
	}
	return nil
}

func (r *SubmissionRepo) FindByID(ctx context.Context, id string) (*models.Submission, error) {
	query := selectSubmissions + ` WHERE id = $1;`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *SubmissionRepo) FindByTaskAndUser(ctx context.Context, taskID, userID string) (*models.Submission, error) {
	query := selectSubmissions + ` WHERE task_id = $1 AND user_id = $2;`
	return r.scanOne(r.pool.QueryRow(ctx, query, taskID, userID))
}

func (r *SubmissionRepo) ListByUser(ctx context.Context, userID string) ([]models.Submission, error) {
	query := selectSubmissions + ` WHERE user_id = $1 ORDER BY created_at DESC;`
	return r.querySubmissions(ctx, query, userID)
}

func (r *SubmissionRepo) ListByTask(ctx context.Context, taskID string) ([]models.Submission, error) {
	query := selectSubmissions + ` WHERE task_id = $1 ORDER BY created_at DESC;`
	return r.querySubmissions(ctx, query, taskID)
}

// Review records a score and marks the submission reviewed. This is
// the only path that leaves the pending status.
func (r *SubmissionRepo) Review(ctx context.Context, id string, score float64, reviewerID string) error {
	const query = `
	UPDATE submissions
	SET score = $2, status = $3, reviewed_by = $4, updated_at = now()
	WHERE id = $1;`

	tag, err := r.pool.Exec(ctx, query, id, score, models.SubmissionStatusReviewed, reviewerID)
	if err != nil {
		return fmt.Errorf("review submission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *SubmissionRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM submissions WHERE id = $1;`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete submission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const selectSubmissions = `
	SELECT id, task_id, user_id, content, score, status,
	       COALESCE(reviewed_by, ''), created_at, updated_at
	FROM submissions`

func (r *SubmissionRepo) scanOne(row pgx.Row) (*models.Submission, error) {
	var s models.Submission
	err := row.Scan(&s.ID, &s.TaskID, &s.UserID, &s.Content, &s.Score, &s.Status, &s.ReviewedBy, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan submission: %w", err)
	}
	return &s, nil
}

func (r *SubmissionRepo) querySubmissions(ctx context.Context, query string, args ...any) ([]models.Submission, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var subs []models.Submission
	for rows.Next() {
		var s models.Submission
		if err := rows.Scan(&s.ID, &s.TaskID, &s.UserID, &s.Content, &s.Score, &s.Status, &s.ReviewedBy, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
