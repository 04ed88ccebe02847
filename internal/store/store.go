// Package store is the persistence adapter for saved PRDs and project
// folders, backed by Postgres. The core never retries store operations;
// every failure surfaces as a *StoreError.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/vibespecs/vibespecs/internal/prd"
)

// ErrNotFound is returned when the targeted row does not exist.
var ErrNotFound = errors.New("not found")

// StoreError wraps a persistence failure with the operation that caused it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// Project is a folder that groups saved PRDs.
type Project struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SavedPRD is a persisted PRD row. Content is a deep copy of the document
// that was saved; the in-memory value the UI renders stays authoritative.
type SavedPRD struct {
	ID        string        `json:"id"`
	OwnerID   string        `json:"owner_id"`
	Title     string        `json:"title"`
	UserInput string        `json:"user_input"`
	Content   *prd.Document `json:"content"`
	ProjectID *string       `json:"project_id"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// PRDFilter selects saved PRDs by project membership. A nil ProjectID
// with Unfiled=true selects rows outside any project.
type PRDFilter struct {
	OwnerID   string
	ProjectID *string
	Unfiled   bool
}

// Store provides row-store operations over *sql.DB.
type Store struct {
	db *sql.DB
}

// New creates a store around an open database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the tables if they do not exist. Deleting a
// project unfiles its PRDs instead of deleting them.
func (s *Store) EnsureSchema(ctx context.Context) error {
	const projects = `
CREATE TABLE IF NOT EXISTS projects (
	id UUID PRIMARY KEY,
	owner_id TEXT NOT NULL,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`
	if _, err := s.db.ExecContext(ctx, projects); err != nil {
		return storeErr("ensure projects table", err)
	}

	const savedPRDs = `
CREATE TABLE IF NOT EXISTS saved_prds (
	id UUID PRIMARY KEY,
	owner_id TEXT NOT NULL,
	title TEXT NOT NULL,
	user_input TEXT NOT NULL,
	prd_content JSONB NOT NULL,
	project_id UUID REFERENCES projects(id) ON DELETE SET NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`
	if _, err := s.db.ExecContext(ctx, savedPRDs); err != nil {
		return storeErr("ensure saved_prds table", err)
	}

	const index = `CREATE INDEX IF NOT EXISTS idx_saved_prds_owner ON saved_prds(owner_id, project_id);`
	if _, err := s.db.ExecContext(ctx, index); err != nil {
		return storeErr("ensure saved_prds index", err)
	}
	return nil
}

// InsertSavedPRD stores a deep copy of the document under the given title.
func (s *Store) InsertSavedPRD(ctx context.Context, ownerID, title, userInput string, content *prd.Document) (*SavedPRD, error) {
	if title == "" {
		return nil, storeErr("insert saved prd", errors.New("title required"))
	}
	if ownerID == "" {
		return nil, storeErr("insert saved prd", errors.New("owner id required"))
	}

	copied, err := content.Clone()
	if err != nil {
		return nil, storeErr("insert saved prd", err)
	}
	contentJSON, err := json.Marshal(copied)
	if err != nil {
		return nil, storeErr("insert saved prd", err)
	}

	const q = `
INSERT INTO saved_prds (id, owner_id, title, user_input, prd_content)
VALUES ($1, $2, $3, $4, $5)
RETURNING created_at, updated_at;`

	row := SavedPRD{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Title:     title,
		UserInput: userInput,
		Content:   copied,
	}
	err = s.db.QueryRowContext(ctx, q, row.ID, ownerID, title, userInput, contentJSON).
		Scan(&row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		return nil, storeErr("insert saved prd", err)
	}
	return &row, nil
}

// ListSavedPRDs returns saved PRDs for the filter, newest first.
func (s *Store) ListSavedPRDs(ctx context.Context, filter PRDFilter) ([]SavedPRD, error) {
	const base = `
SELECT id, owner_id, title, user_input, prd_content, project_id, created_at, updated_at
FROM saved_prds
WHERE owner_id = $1`

	var (
		rows *sql.Rows
		err  error
	)
	switch {
	case filter.ProjectID != nil:
		rows, err = s.db.QueryContext(ctx, base+` AND project_id = $2 ORDER BY updated_at DESC;`, filter.OwnerID, *filter.ProjectID)
	case filter.Unfiled:
		rows, err = s.db.QueryContext(ctx, base+` AND project_id IS NULL ORDER BY updated_at DESC;`, filter.OwnerID)
	default:
		rows, err = s.db.QueryContext(ctx, base+` ORDER BY updated_at DESC;`, filter.OwnerID)
	}
	if err != nil {
		return nil, storeErr("list saved prds", err)
	}
	defer rows.Close()

	out := make([]SavedPRD, 0, 16)
	for rows.Next() {
		var (
			row         SavedPRD
			contentJSON []byte
			projectID   sql.NullString
		)
		if err := rows.Scan(&row.ID, &row.OwnerID, &row.Title, &row.UserInput, &contentJSON, &projectID, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, storeErr("list saved prds", err)
		}
		if projectID.Valid {
			row.ProjectID = &projectID.String
		}
		doc, err := prd.Decode(contentJSON)
		if err != nil {
			return nil, storeErr("list saved prds", err)
		}
		row.Content = doc
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list saved prds", err)
	}
	return out, nil
}

// GetSavedPRD fetches one saved PRD by id.
func (s *Store) GetSavedPRD(ctx context.Context, ownerID, id string) (*SavedPRD, error) {
	const q = `
SELECT id, owner_id, title, user_input, prd_content, project_id, created_at, updated_at
FROM saved_prds
WHERE owner_id = $1 AND id = $2;`

	var (
		row         SavedPRD
		contentJSON []byte
		projectID   sql.NullString
	)
	err := s.db.QueryRowContext(ctx, q, ownerID, id).
		Scan(&row.ID, &row.OwnerID, &row.Title, &row.UserInput, &contentJSON, &projectID, &row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storeErr("get saved prd", ErrNotFound)
		}
		return nil, storeErr("get saved prd", err)
	}
	if projectID.Valid {
		row.ProjectID = &projectID.String
	}
	doc, err := prd.Decode(contentJSON)
	if err != nil {
		return nil, storeErr("get saved prd", err)
	}
	row.Content = doc
	return &row, nil
}

// UpdateSavedPRDProject moves a saved PRD into a project, or unfiles it
// when projectID is nil.
func (s *Store) UpdateSavedPRDProject(ctx context.Context, ownerID, id string, projectID *string) error {
	const q = `
UPDATE saved_prds
SET project_id = $3, updated_at = now()
WHERE owner_id = $1 AND id = $2;`

	var arg interface{}
	if projectID != nil {
		arg = *projectID
	}
	result, err := s.db.ExecContext(ctx, q, ownerID, id, arg)
	if err != nil {
		return storeErr("update saved prd project", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return storeErr("update saved prd project", err)
	}
	if affected == 0 {
		return storeErr("update saved prd project", ErrNotFound)
	}
	return nil
}

// DeleteSavedPRD removes a saved PRD.
func (s *Store) DeleteSavedPRD(ctx context.Context, ownerID, id string) error {
	const q = `DELETE FROM saved_prds WHERE owner_id = $1 AND id = $2;`
	result, err := s.db.ExecContext(ctx, q, ownerID, id)
	if err != nil {
		return storeErr("delete saved prd", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return storeErr("delete saved prd", err)
	}
	if affected == 0 {
		return storeErr("delete saved prd", ErrNotFound)
	}
	return nil
}

// InsertProject creates a project folder.
func (s *Store) InsertProject(ctx context.Context, ownerID, name, description string) (*Project, error) {
	if name == "" {
		return nil, storeErr("insert project", errors.New("name required"))
	}
	if ownerID == "" {
		return nil, storeErr("insert project", errors.New("owner id required"))
	}

	const q = `
INSERT INTO projects (id, owner_id, name, description)
VALUES ($1, $2, $3, $4)
RETURNING created_at, updated_at;`

	p := Project{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
	}
	err := s.db.QueryRowContext(ctx, q, p.ID, ownerID, name, description).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, storeErr("insert project", fmt.Errorf("duplicate project id: %w", err))
		}
		return nil, storeErr("insert project", err)
	}
	return &p, nil
}

// ListProjects returns the owner's projects, most recently updated first.
func (s *Store) ListProjects(ctx context.Context, ownerID string) ([]Project, error) {
	const q = `
SELECT id, owner_id, name, description, created_at, updated_at
FROM projects
WHERE owner_id = $1
ORDER BY updated_at DESC;`

	rows, err := s.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, storeErr("list projects", err)
	}
	defer rows.Close()

	out := make([]Project, 0, 8)
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, storeErr("list projects", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list projects", err)
	}
	return out, nil
}

// DeleteProject removes a project. Its saved PRDs are unfiled by the
// ON DELETE SET NULL reference, not deleted.
func (s *Store) DeleteProject(ctx context.Context, ownerID, id string) error {
	const q = `DELETE FROM projects WHERE owner_id = $1 AND id = $2;`
	result, err := s.db.ExecContext(ctx, q, ownerID, id)
	if err != nil {
		return storeErr("delete project", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return storeErr("delete project", err)
	}
	if affected == 0 {
		return storeErr("delete project", ErrNotFound)
	}
	return nil
}
