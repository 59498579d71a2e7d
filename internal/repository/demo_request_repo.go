package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"instiwise-api/internal/model"
)

const demoRequestColumns = `id, full_name, email, institute_name, phone, designation,
		               student_strength, message, status, responded_by, created_at, updated_at`

type DemoRequestRepository struct {
	pool *pgxpool.Pool
}

func NewDemoRequestRepository(pool *pgxpool.Pool) *DemoRequestRepository {
	return &DemoRequestRepository{pool: pool}
}

func (r *DemoRequestRepository) Create(ctx context.Context, d *model.DemoRequest) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO demo_requests (id, full_name, email, institute_name, phone, designation,
		                            student_strength, message, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		d.ID, d.FullName, d.Email, d.InstituteName, d.Phone, d.Designation,
		d.StudentStrength, d.Message, d.Status, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create demo request: %w", err)
	}
	return nil
}

// RecentExists reports whether the same institute already asked for a
// demo from this email since the cutoff. Backs the intake dedupe.
func (r *DemoRequestRepository) RecentExists(ctx context.Context, email string, instituteName string, since time.Time) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(
		     SELECT 1 FROM demo_requests
		     WHERE lower(email) = lower($1) AND lower(institute_name) = lower($2) AND created_at >= $3)`,
		email, instituteName, since).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check recent demo request: %w", err)
	}
	return exists, nil
}

// List returns a page of requests plus the total matching count.
// An empty status means no filter.
func (r *DemoRequestRepository) List(ctx context.Context, status string, limit int, offset int) ([]model.DemoRequest, int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM demo_requests WHERE ($1 = '' OR status = $1)`, status).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count demo requests: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+demoRequestColumns+` FROM demo_requests
		 WHERE ($1 = '' OR status = $1)
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list demo requests: %w", err)
	}
	defer rows.Close()

	requests := make([]model.DemoRequest, 0, limit)
	for rows.Next() {
		d, err := scanDemoRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, d)
	}
	return requests, total, rows.Err()
}

func (r *DemoRequestRepository) FindByID(ctx context.Context, id string) (model.DemoRequest, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+demoRequestColumns+` FROM demo_requests WHERE id = $1`, id)
	d, err := scanDemoRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.DemoRequest{}, model.ErrDemoRequestNotFound
	}
	if err != nil {
		return model.DemoRequest{}, err
	}
	return d, nil
}

func (r *DemoRequestRepository) Update(ctx context.Context, d *model.DemoRequest) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE demo_requests SET status = $2, responded_by = $3, updated_at = $4 WHERE id = $1`,
		d.ID, d.Status, d.RespondedBy, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update demo request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrDemoRequestNotFound
	}
	return nil
}

func (r *DemoRequestRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM demo_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete demo request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrDemoRequestNotFound
	}
	return nil
}

func (r *DemoRequestRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM demo_requests`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count demo requests: %w", err)
	}
	return count, nil
}

func (r *DemoRequestRepository) CountCreatedBetween(ctx context.Context, from time.Time, to time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM demo_requests WHERE created_at >= $1 AND created_at < $2`, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count demo requests in range: %w", err)
	}
	return count, nil
}

func scanDemoRequest(row pgx.Row) (model.DemoRequest, error) {
	var d model.DemoRequest
	err := row.Scan(&d.ID, &d.FullName, &d.Email, &d.InstituteName, &d.Phone, &d.Designation,
		&d.StudentStrength, &d.Message, &d.Status, &d.RespondedBy, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.DemoRequest{}, err
	}
	if err != nil {
		return model.DemoRequest{}, fmt.Errorf("scan demo request: %w", err)
	}
	return d, nil
}
