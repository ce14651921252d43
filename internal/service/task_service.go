package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Adarsha-Hegade/data-entry1/internal/models"
)

// TaskStore is what TaskService needs from the record store.
type TaskStore interface {
	Create(ctx context.Context, t *models.Task) error
	FindByID(ctx context.Context, id string) (*models.Task, error)
	List(ctx context.Context) ([]models.Task, error)
	ListByAssignee(ctx context.Context, userID string) ([]models.Task, error)
	Update(ctx context.Context, t *models.Task) error
	Delete(ctx context.Context, id string) error
}

// BlobStore holds task documents.
type BlobStore interface {
	Upload(ctx context.Context, name string, data []byte, contentType string) error
	Delete(ctx context.Context, name string) error
	PublicURL(name string) string
}

type TaskService struct {
	tasks TaskStore
	blobs BlobStore
}

func NewTaskService(tasks TaskStore, blobs BlobStore) *TaskService {
	return &TaskService{tasks: tasks, blobs: blobs}
}

type CreateTaskInput struct {
	Title        string
	Description  string
	AssignedTo   string
	CreatedBy    string
	Document     []byte
	DocumentName string
}

// Create stores the optional document first, then the task carrying
// its public URL.
func (s *TaskService) Create(ctx context.Context, in CreateTaskInput) (*models.Task, error) {
	if in.Title == "" {
		return nil, errors.New("title is required")
	}

	var documentURL string
	if len(in.Document) > 0 {
		name := uuid.NewString() + strings.ToLower(filepath.Ext(in.DocumentName))
		if err := s.blobs.Upload(ctx, name, in.Document, "application/pdf"); err != nil {
			return nil, fmt.Errorf("upload document: %w", err)
		}
		documentURL = s.blobs.PublicURL(name)
	}

	task := &models.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		DocumentURL: documentURL,
		Status:      models.TaskStatusActive,
		AssignedTo:  in.AssignedTo,
		CreatedBy:   in.CreatedBy,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Get(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}
	return task, nil
}

func (s *TaskService) List(ctx context.Context) ([]models.Task, error) {
	return s.tasks.List(ctx)
}

// ListAssigned returns the user's active tasks, newest first.
func (s *TaskService) ListAssigned(ctx context.Context, userID string) ([]models.Task, error) {
	return s.tasks.ListByAssignee(ctx, userID)
}

type UpdateTaskInput struct {
	Title       string
	Description string
	Status      string
	AssignedTo  string
}

func (s *TaskService) Update(ctx context.Context, id string, in UpdateTaskInput) (*models.Task, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		task.Title = in.Title
	}
	task.Description = in.Description
	if in.Status != "" {
		if !models.ValidTaskStatus(in.Status) {
			return nil, errors.New("unknown status: " + in.Status)
		}
		task.Status = in.Status
	}
	task.AssignedTo = in.AssignedTo

	if err := s.tasks.Update(ctx, task); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	task, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if task.DocumentURL != "" {
		// Best effort; an orphaned blob is not worth failing the delete.
		if err := s.blobs.Delete(ctx, path.Base(task.DocumentURL)); err != nil {
			slog.Warn("deleting task document failed", "task_id", id, "error", err)
		}
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
