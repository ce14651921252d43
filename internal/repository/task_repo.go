package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Adarsha-Hegade/data-entry1/internal/models"
)

type TaskRepo struct {
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{pool: pool}
}

func (r *TaskRepo) Create(ctx context.Context, t *models.Task) error {
	const query = `
	INSERT INTO tasks (id, title, description, document_url, status, assigned_to, created_by)
	VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, NULLIF($6, ''), $7)
	RETURNING created_at, updated_at;`

	row := r.pool.QueryRow(ctx, query, t.ID, t.Title, t.Description, t.DocumentURL, t.Status, t.AssignedTo, t.CreatedBy)
	if err := row.Scan(&t.CreatedAt, &t.UpdatedAt); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepo) FindByID(ctx context.Context, id string) (*models.Task, error) {
	query := selectTasks + ` WHERE id = $1;`

	var t models.Task
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.DocumentURL, &t.Status,
		&t.AssignedTo, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &t, nil
}

func (r *TaskRepo) List(ctx context.Context) ([]models.Task, error) {
	query := selectTasks + ` ORDER BY created_at DESC;`
	return r.queryTasks(ctx, query)
}

// ListByAssignee returns the user's active tasks, newest first.
func (r *TaskRepo) ListByAssignee(ctx context.Context, userID string) ([]models.Task, error) {
	query := selectTasks + ` WHERE assigned_to = $1 AND status = $2 ORDER BY created_at DESC;`
	return r.queryTasks(ctx, query, userID, models.TaskStatusActive)
}

func (r *TaskRepo) Update(ctx context.Context, t *models.Task) error {
	const query = `
	UPDATE tasks
	SET title = $2, description = NULLIF($3, ''), document_url = NULLIF($4, ''),
	    status = $5, assigned_to = NULLIF($6, ''), updated_at = now()
	WHERE id = $1
	RETURNING updated_at;`

	row := r.pool.QueryRow(ctx, query, t.ID, t.Title, t.Description, t.DocumentURL, t.Status, t.AssignedTo)
	if err := row.Scan(&t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return pgx.ErrNoRows
		}
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1;`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const selectTasks = `
	SELECT id, title, COALESCE(description, ''), COALESCE(document_url, ''), status,
	       COALESCE(assigned_to, ''), created_by, created_at, updated_at
	FROM tasks`

func (r *TaskRepo) queryTasks(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.DocumentURL, &t.Status,
			&t.AssignedTo, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
