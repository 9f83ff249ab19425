package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/emberstudio/ember/pkg/models"
)

// ErrProjectNotFound is returned when a saved project does not exist.
var ErrProjectNotFound = errors.New("project not found")

// Repository provides database operations over the saved-project library.
// A saved project is a named snapshot stored as JSONB.
type Repository struct {
	db *DB
}

// NewRepository creates a new repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// CreateProject stores a new saved project.
func (r *Repository) CreateProject(ctx context.Context, project *models.SavedProject) error {
	if project.ID == "" {
		project.ID = uuid.New().String()
	}

	snapshot, err := json.Marshal(project.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	query := `
		INSERT INTO projects (id, name, snapshot)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`

	err = r.db.Pool.QueryRow(ctx, query,
		project.ID, project.Name, snapshot,
	).Scan(&project.CreatedAt, &project.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// GetProject retrieves a saved project by ID.
func (r *Repository) GetProject(ctx context.Context, id string) (*models.SavedProject, error) {
	var project models.SavedProject
	var snapshot []byte

	query := `
		SELECT id, name, snapshot, created_at, updated_at
		FROM projects
		WHERE id = $1
	`

	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&project.ID, &project.Name, &snapshot, &project.CreatedAt, &project.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if err := json.Unmarshal(snapshot, &project.Snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &project, nil
}

// UpdateProject replaces the name and snapshot of a saved project.
func (r *Repository) UpdateProject(ctx context.Context, project *models.SavedProject) error {
	snapshot, err := json.Marshal(project.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	query := `
		UPDATE projects
		SET name = $2, snapshot = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query, project.ID, project.Name, snapshot)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProjectNotFound
	}

	return nil
}

// ListProjects retrieves saved projects with pagination, newest first. The
// snapshot column is skipped: listings only need metadata.
func (r *Repository) ListProjects(ctx context.Context, limit, offset int) ([]*models.SavedProject, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM projects
		ORDER BY updated_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.SavedProject
	for rows.Next() {
		var project models.SavedProject
		err := rows.Scan(&project.ID, &project.Name, &project.CreatedAt, &project.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, &project)
	}

	return projects, rows.Err()
}

// DeleteProject removes a saved project.
func (r *Repository) DeleteProject(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProjectNotFound
	}

	return nil
}

// Health checks repository health.
func (r *Repository) Health(ctx context.Context) error {
	return r.db.Health(ctx)
}
