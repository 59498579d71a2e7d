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

const newsColumns = `n.id, n.user_id, n.header, n.img, n.description,
		        (SELECT COUNT(*) FROM news_reactions r WHERE r.news_id = n.id AND r.kind = 'like'),
		        (SELECT COUNT(*) FROM news_reactions r WHERE r.news_id = n.id AND r.kind = 'dislike'),
		        (SELECT COUNT(*) FROM news_views v WHERE v.news_id = n.id),
		        n.created_at, n.updated_at`

type NewsRepository struct {
	pool *pgxpool.Pool
}

func NewNewsRepository(pool *pgxpool.Pool) *NewsRepository {
	return &NewsRepository{pool: pool}
}

func (r *NewsRepository) Create(ctx context.Context, n *model.News) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO news (id, user_id, header, img, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		n.ID, n.UserID, n.Header, n.Img, n.Description, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create news: %w", err)
	}
	return nil
}

func (r *NewsRepository) List(ctx context.Context) ([]model.News, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+newsColumns+` FROM news n ORDER BY n.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	defer rows.Close()

	items := make([]model.News, 0)
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

func (r *NewsRepository) FindByID(ctx context.Context, id string) (model.News, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+newsColumns+` FROM news n WHERE n.id = $1`, id)
	n, err := scanNews(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.News{}, model.ErrNewsNotFound
	}
	if err != nil {
		return model.News{}, err
	}
	return n, nil
}

func (r *NewsRepository) Update(ctx context.Context, n *model.News) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE news SET header = $2, img = $3, description = $4, updated_at = $5 WHERE id = $1`,
		n.ID, n.Header, n.Img, n.Description, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update news: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNewsNotFound
	}
	return nil
}

func (r *NewsRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete news: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNewsNotFound
	}
	return nil
}

// GetReaction returns the user's standing reaction kind, or "" when
// there is none.
func (r *NewsRepository) GetReaction(ctx context.Context, newsID string, userID string) (string, error) {
	var kind string
	err := r.pool.QueryRow(ctx,
		`SELECT kind FROM news_reactions WHERE news_id = $1 AND user_id = $2`, newsID, userID).Scan(&kind)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get news reaction: %w", err)
	}
	return kind, nil
}

// SetReaction upserts on the (news_id, user_id) key, so a like
// replaces a standing dislike in one statement.
func (r *NewsRepository) SetReaction(ctx context.Context, newsID string, userID string, kind string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO news_reactions (news_id, user_id, kind) VALUES ($1, $2, $3)
		 ON CONFLICT (news_id, user_id) DO UPDATE SET kind = EXCLUDED.kind`,
		newsID, userID, kind)
	if err != nil {
		return fmt.Errorf("set news reaction: %w", err)
	}
	return nil
}

func (r *NewsRepository) RemoveReaction(ctx context.Context, newsID string, userID string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM news_reactions WHERE news_id = $1 AND user_id = $2`, newsID, userID)
	if err != nil {
		return fmt.Errorf("remove news reaction: %w", err)
	}
	return nil
}

func (r *NewsRepository) MarkViewed(ctx context.Context, newsID string, userID string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO news_views (news_id, user_id) VALUES ($1, $2)
		 ON CONFLICT (news_id, user_id) DO NOTHING`,
		newsID, userID)
	if err != nil {
		return fmt.Errorf("mark news viewed: %w", err)
	}
	return nil
}

func (r *NewsRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM news`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count news: %w", err)
	}
	return count, nil
}

func (r *NewsRepository) CountCreatedBetween(ctx context.Context, from time.Time, to time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM news WHERE created_at >= $1 AND created_at < $2`, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count news in range: %w", err)
	}
	return count, nil
}

func (r *NewsRepository) Recent(ctx context.Context, limit int) ([]model.RecentNews, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT header, img, created_at FROM news ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent news: %w", err)
	}
	defer rows.Close()

	items := make([]model.RecentNews, 0, limit)
	for rows.Next() {
		var n model.RecentNews
		if err := rows.Scan(&n.Header, &n.Img, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recent news: %w", err)
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

func scanNews(row pgx.Row) (model.News, error) {
	var n model.News
	err := row.Scan(&n.ID, &n.UserID, &n.Header, &n.Img, &n.Description,
		&n.LikeCount, &n.DislikeCount, &n.ViewCount, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.News{}, err
	}
	if err != nil {
		return model.News{}, fmt.Errorf("scan news: %w", err)
	}
	return n, nil
}
