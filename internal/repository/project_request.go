package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/skillswap/skillswap/internal/model"
)

type ProjectRequestRepository interface {
	Create(ctx context.Context, req *model.ProjectRequest) error
	List(ctx context.Context) ([]*model.ProjectRequest, error)
}

type projectRequestRepository struct {
	db sqlx.ExtContext
}

func NewProjectRequestRepository(db sqlx.ExtContext) ProjectRequestRepository {
	return &projectRequestRepository{db: db}
}

func (r *projectRequestRepository) Create(ctx context.Context, req *model.ProjectRequest) error {
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}

	query := r.db.Rebind(`INSERT INTO projects_requests (poster_id, title, description, skill_needed, created_at)
		VALUES (?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query, req.PosterID, req.Title, req.Description, req.SkillNeeded, req.CreatedAt)
	return err
}

// List returns every request with its poster's name, newest first.
func (r *projectRequestRepository) List(ctx context.Context) ([]*model.ProjectRequest, error) {
	query := `
		SELECT pr.id, pr.poster_id, pr.title, pr.description, pr.skill_needed, pr.created_at, u.name AS poster_name
		FROM projects_requests pr
		JOIN users u ON pr.poster_id = u.id
		ORDER BY pr.created_at DESC, pr.id DESC`

	requests := []*model.ProjectRequest{}
	err := sqlx.SelectContext(ctx, r.db, &requests, query)
	if err != nil {
		return nil, err
	}
	return requests, nil
}
