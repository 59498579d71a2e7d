package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"instiwise-api/internal/model"
)

const projectColumns = `p.id, p.user_id, p.title, p.description, p.img, p.category, p.problem,
		           p.collaborators, p.duration, p.goals, p.resources, p.budget, p.scope,
		           p.plan, p.challenges,
		           (SELECT COUNT(*) FROM project_likes pl WHERE pl.project_id = p.id),
		           p.created_at, p.updated_at`

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

func (r *ProjectRepository) Create(ctx context.Context, p *model.Project) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO projects (id, user_id, title, description, img, category, problem, collaborators,
		                       duration, goals, resources, budget, scope, plan, challenges, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		p.ID, p.UserID, p.Title, p.Description, p.Img, p.Category, p.Problem, p.Collaborators,
		p.Duration, p.Goals, p.Resources, p.Budget, p.Scope, p.Plan, p.Challenges, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if _, ok := uniqueConstraint(err); ok {
			return model.ErrProjectTitleTaken
		}
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]model.Project, error) {
	return r.list(ctx, `SELECT `+projectColumns+` FROM projects p ORDER BY p.created_at DESC`)
}

func (r *ProjectRepository) ListByUser(ctx context.Context, userID string) ([]model.Project, error) {
	return r.list(ctx,
		`SELECT `+projectColumns+` FROM projects p WHERE p.user_id = $1 ORDER BY p.created_at DESC`, userID)
}

func (r *ProjectRepository) list(ctx context.Context, query string, args ...any) ([]model.Project, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]model.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (model.Project, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects p WHERE p.id = $1`, id)
	p, err := scanProject(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Project{}, model.ErrProjectNotFound
	}
	if err != nil {
		return model.Project{}, err
	}
	return p, nil
}

func (r *ProjectRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM projects WHERE lower(title) = lower($1))`,
		strings.TrimSpace(title)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check project title: %w", err)
	}
	return exists, nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *model.Project) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE projects SET description = $2, img = $3, category = $4, problem = $5, collaborators = $6,
		                     duration = $7, goals = $8, resources = $9, budget = $10, scope = $11,
		                     plan = $12, challenges = $13, updated_at = $14
		 WHERE id = $1`,
		p.ID, p.Description, p.Img, p.Category, p.Problem, p.Collaborators,
		p.Duration, p.Goals, p.Resources, p.Budget, p.Scope, p.Plan, p.Challenges, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) HasLiked(ctx context.Context, projectID string, userID string) (bool, error) {
	var liked bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM project_likes WHERE project_id = $1 AND user_id = $2)`,
		projectID, userID).Scan(&liked)
	if err != nil {
		return false, fmt.Errorf("check project like: %w", err)
	}
	return liked, nil
}

func (r *ProjectRepository) AddLike(ctx context.Context, projectID string, userID string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO project_likes (project_id, user_id) VALUES ($1, $2)
		 ON CONFLICT (project_id, user_id) DO NOTHING`,
		projectID, userID)
	if err != nil {
		return fmt.Errorf("add project like: %w", err)
	}
	return nil
}

func (r *ProjectRepository) RemoveLike(ctx context.Context, projectID string, userID string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM project_likes WHERE project_id = $1 AND user_id = $2`, projectID, userID)
	if err != nil {
		return fmt.Errorf("remove project like: %w", err)
	}
	return nil
}

func (r *ProjectRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM projects`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return count, nil
}

func (r *ProjectRepository) CountCreatedBetween(ctx context.Context, from time.Time, to time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM projects WHERE created_at >= $1 AND created_at < $2`, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count projects in range: %w", err)
	}
	return count, nil
}

func scanProject(row pgx.Row) (model.Project, error) {
	var p model.Project
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.Img, &p.Category, &p.Problem,
		&p.Collaborators, &p.Duration, &p.Goals, &p.Resources, &p.Budget, &p.Scope,
		&p.Plan, &p.Challenges, &p.LikeCount, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Project{}, err
	}
	if err != nil {
		return model.Project{}, fmt.Errorf("scan project: %w", err)
	}
	return p, nil
}
