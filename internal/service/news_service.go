package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"instiwise-api/internal/model"
)

type NewsStore interface {
	Create(ctx context.Context, news *model.News) error
	List(ctx context.Context) ([]model.News, error)
	FindByID(ctx context.Context, id string) (model.News, error)
	Update(ctx context.Context, news *model.News) error
	Delete(ctx context.Context, id string) error
	GetReaction(ctx context.Context, newsID string, userID string) (string, error)
	SetReaction(ctx context.Context, newsID string, userID string, kind string) error
	RemoveReaction(ctx context.Context, newsID string, userID string) error
	MarkViewed(ctx context.Context, newsID string, userID string) error
}

// NewsService manages the campus news feed. Articles are written by
// admins; likes, dislikes and views come from everyone.
type NewsService struct {
	news NewsStore
	now  func() time.Time
}

func NewNewsService(news NewsStore) *NewsService {
	return &NewsService{news: news, now: time.Now}
}

func (s *NewsService) Create(ctx context.Context, userID string, req model.CreateNewsRequest) (model.News, error) {
	if strings.TrimSpace(req.Header) == "" || strings.TrimSpace(req.Description) == "" {
		return model.News{}, model.ErrInvalidInput
	}

	now := s.now().UTC()
	news := model.News{
		ID:          uuid.NewString(),
		UserID:      userID,
		Header:      req.Header,
		Img:         req.Img,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.news.Create(ctx, &news); err != nil {
		return model.News{}, err
	}
	return news, nil
}

func (s *NewsService) List(ctx context.Context) ([]model.News, error) {
	return s.news.List(ctx)
}

func (s *NewsService) Get(ctx context.Context, id string) (model.News, error) {
	return s.news.FindByID(ctx, id)
}

func (s *NewsService) Update(ctx context.Context, id string, updates model.NewsUpdate) (model.News, error) {
	news, err := s.news.FindByID(ctx, id)
	if err != nil {
		return model.News{}, err
	}

	if updates.Header != nil {
		news.Header = *updates.Header
	}
	if updates.Img != nil {
		news.Img = *updates.Img
	}
	if updates.Description != nil {
		news.Description = *updates.Description
	}

	news.UpdatedAt = s.now().UTC()
	if err := s.news.Update(ctx, &news); err != nil {
		return model.News{}, err
	}
	return news, nil
}

func (s *NewsService) Delete(ctx context.Context, id string) error {
	if _, err := s.news.FindByID(ctx, id); err != nil {
		return err
	}
	return s.news.Delete(ctx, id)
}

// Like toggles the caller's like. A standing dislike is replaced, a
// standing like is withdrawn. The returned message mirrors the action
// taken.
func (s *NewsService) Like(ctx context.Context, userID string, id string) (string, error) {
	return s.react(ctx, userID, id, model.ReactionLike,
		"You liked the news", "You unliked the news")
}

// Dislike is the mirror of Like.
func (s *NewsService) Dislike(ctx context.Context, userID string, id string) (string, error) {
	return s.react(ctx, userID, id, model.ReactionDislike,
		"You disliked the news", "You removed your dislike")
}

func (s *NewsService) react(ctx context.Context, userID string, id string, kind string, setMsg string, unsetMsg string) (string, error) {
	if _, err := s.news.FindByID(ctx, id); err != nil {
		return "", err
	}

	current, err := s.news.GetReaction(ctx, id, userID)
	if err != nil {
		return "", err
	}

	if current == kind {
		if err := s.news.RemoveReaction(ctx, id, userID); err != nil {
			return "", err
		}
		return unsetMsg, nil
	}

	// either no reaction yet, or flipping the opposite one
	if err := s.news.SetReaction(ctx, id, userID, kind); err != nil {
		return "", err
	}
	return setMsg, nil
}

// View records that the caller saw the article; repeated views of the
// same article by the same user are a no-op.
func (s *NewsService) View(ctx context.Context, userID string, id string) (model.News, error) {
	news, err := s.news.FindByID(ctx, id)
	if err != nil {
		return model.News{}, err
	}

	if err := s.news.MarkViewed(ctx, id, userID); err != nil {
		return model.News{}, err
	}
	return news, nil
}
