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

const eventColumns = `id, user_id, header, location, category, event_date, start_time, end_time,
		         img, description, is_favorite, date_time, created_at, updated_at`

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) Create(ctx context.Context, e *model.Event) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO events (id, user_id, header, location, category, event_date, start_time, end_time,
		                     img, description, is_favorite, date_time, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		e.ID, e.UserID, e.Header, e.Location, e.Category, e.Date, e.Start, e.End,
		e.Img, e.Description, e.IsFavorite, e.DateTime, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *EventRepository) ListByUser(ctx context.Context, userID string) ([]model.Event, error) {
	return r.list(ctx,
		`SELECT `+eventColumns+` FROM events WHERE user_id = $1 ORDER BY date_time ASC`, userID)
}

func (r *EventRepository) ListFavorites(ctx context.Context, userID string) ([]model.Event, error) {
	return r.list(ctx,
		`SELECT `+eventColumns+` FROM events WHERE user_id = $1 AND is_favorite ORDER BY date_time ASC`, userID)
}

func (r *EventRepository) list(ctx context.Context, query string, args ...any) ([]model.Event, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := make([]model.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (model.Event, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	e, err := scanEvent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Event{}, model.ErrEventNotFound
	}
	if err != nil {
		return model.Event{}, err
	}
	return e, nil
}

func (r *EventRepository) Update(ctx context.Context, e *model.Event) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE events SET header = $2, location = $3, category = $4, event_date = $5, start_time = $6,
		                   end_time = $7, img = $8, description = $9, date_time = $10, updated_at = $11
		 WHERE id = $1`,
		e.ID, e.Header, e.Location, e.Category, e.Date, e.Start,
		e.End, e.Img, e.Description, e.DateTime, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) SetFavorite(ctx context.Context, id string, favorite bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE events SET is_favorite = $2, updated_at = now() WHERE id = $1`, id, favorite)
	if err != nil {
		return fmt.Errorf("set event favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}

func (r *EventRepository) CountCreatedBetween(ctx context.Context, from time.Time, to time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM events WHERE created_at >= $1 AND created_at < $2`, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count events in range: %w", err)
	}
	return count, nil
}

func (r *EventRepository) Upcoming(ctx context.Context, after time.Time, limit int) ([]model.UpcomingEvent, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT header, event_date FROM events WHERE date_time >= $1 ORDER BY date_time ASC LIMIT $2`,
		after, limit)
	if err != nil {
		return nil, fmt.Errorf("upcoming events: %w", err)
	}
	defer rows.Close()

	events := make([]model.UpcomingEvent, 0, limit)
	for rows.Next() {
		var e model.UpcomingEvent
		if err := rows.Scan(&e.Header, &e.Date); err != nil {
			return nil, fmt.Errorf("scan upcoming event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func scanEvent(row pgx.Row) (model.Event, error) {
	var e model.Event
	err := row.Scan(&e.ID, &e.UserID, &e.Header, &e.Location, &e.Category, &e.Date, &e.Start, &e.End,
		&e.Img, &e.Description, &e.IsFavorite, &e.DateTime, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Event{}, err
	}
	if err != nil {
		return model.Event{}, fmt.Errorf("scan event: %w", err)
	}
	return e, nil
}
