package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"instiwise-api/internal/model"
)

type reactionKey struct {
	newsID string
	userID string
}

type memNewsStore struct {
	mu        sync.Mutex
	news      map[string]model.News
	reactions map[reactionKey]string
	views     map[reactionKey]bool
}

func newMemNewsStore() *memNewsStore {
	return &memNewsStore{
		news:      map[string]model.News{},
		reactions: map[reactionKey]string{},
		views:     map[reactionKey]bool{},
	}
}

func (s *memNewsStore) Create(_ context.Context, n *model.News) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.news[n.ID] = *n
	return nil
}

func (s *memNewsStore) List(_ context.Context) ([]model.News, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.News{}
	for _, n := range s.news {
		out = append(out, s.withCountsLocked(n))
	}
	return out, nil
}

func (s *memNewsStore) FindByID(_ context.Context, id string) (model.News, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.news[id]
	if !ok {
		return model.News{}, model.ErrNewsNotFound
	}
	return s.withCountsLocked(n), nil
}

func (s *memNewsStore) withCountsLocked(n model.News) model.News {
	n.LikeCount, n.DislikeCount, n.ViewCount = 0, 0, 0
	for key, kind := range s.reactions {
		if key.newsID != n.ID {
			continue
		}
		if kind == model.ReactionLike {
			n.LikeCount++
		} else {
			n.DislikeCount++
		}
	}
	for key := range s.views {
		if key.newsID == n.ID {
			n.ViewCount++
		}
	}
	return n
}

func (s *memNewsStore) Update(_ context.Context, n *model.News) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.news[n.ID]; !ok {
		return model.ErrNewsNotFound
	}
	s.news[n.ID] = *n
	return nil
}

func (s *memNewsStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.news[id]; !ok {
		return model.ErrNewsNotFound
	}
	delete(s.news, id)
	return nil
}

func (s *memNewsStore) GetReaction(_ context.Context, newsID string, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reactions[reactionKey{newsID, userID}], nil
}

func (s *memNewsStore) SetReaction(_ context.Context, newsID string, userID string, kind string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reactions[reactionKey{newsID, userID}] = kind
	return nil
}

func (s *memNewsStore) RemoveReaction(_ context.Context, newsID string, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reactions, reactionKey{newsID, userID})
	return nil
}

func (s *memNewsStore) MarkViewed(_ context.Context, newsID string, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views[reactionKey{newsID, userID}] = true
	return nil
}

func TestNewsReactionsAreMutuallyExclusive(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMemNewsStore()
	svc := NewNewsService(store)

	news, err := svc.Create(ctx, "admin", model.CreateNewsRequest{
		Header:      "Campus fest announced",
		Description: "Details inside",
	})
	require.NoError(t, err)

	msg, err := svc.Like(ctx, "reader", news.ID)
	require.NoError(t, err)
	require.Equal(t, "You liked the news", msg)

	got, err := svc.Get(ctx, news.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.LikeCount)
	require.Equal(t, 0, got.DislikeCount)

	// Disliking replaces the like in one step.
	msg, err = svc.Dislike(ctx, "reader", news.ID)
	require.NoError(t, err)
	require.Equal(t, "You disliked the news", msg)

	got, err = svc.Get(ctx, news.ID)
	require.NoError(t, err)
	require.Equal(t, 0, got.LikeCount)
	require.Equal(t, 1, got.DislikeCount)

	// Disliking again withdraws it.
	msg, err = svc.Dislike(ctx, "reader", news.ID)
	require.NoError(t, err)
	require.Equal(t, "You removed your dislike", msg)

	got, err = svc.Get(ctx, news.ID)
	require.NoError(t, err)
	require.Equal(t, 0, got.DislikeCount)
}

func TestNewsLikeToggle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewNewsService(newMemNewsStore())

	news, err := svc.Create(ctx, "admin", model.CreateNewsRequest{
		Header:      "Library hours extended",
		Description: "Open till midnight",
	})
	require.NoError(t, err)

	_, err = svc.Like(ctx, "reader", news.ID)
	require.NoError(t, err)

	msg, err := svc.Like(ctx, "reader", news.ID)
	require.NoError(t, err)
	require.Equal(t, "You unliked the news", msg)

	_, err = svc.Like(ctx, "reader", "missing-id")
	require.ErrorIs(t, err, model.ErrNewsNotFound)
}

func TestNewsViewIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewNewsService(newMemNewsStore())

	news, err := svc.Create(ctx, "admin", model.CreateNewsRequest{
		Header:      "Results published",
		Description: "Check the portal",
	})
	require.NoError(t, err)

	_, err = svc.View(ctx, "reader", news.ID)
	require.NoError(t, err)
	_, err = svc.View(ctx, "reader", news.ID)
	require.NoError(t, err)

	got, err := svc.Get(ctx, news.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.ViewCount)

	_, err = svc.View(ctx, "other", news.ID)
	require.NoError(t, err)

	got, err = svc.Get(ctx, news.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.ViewCount)
}

func TestNewsCreateValidationAndUpdate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewNewsService(newMemNewsStore())

	_, err := svc.Create(ctx, "admin", model.CreateNewsRequest{Header: "No body"})
	require.ErrorIs(t, err, model.ErrInvalidInput)

	news, err := svc.Create(ctx, "admin", model.CreateNewsRequest{
		Header:      "Original",
		Description: "Text",
	})
	require.NoError(t, err)

	header := "Corrected"
	updated, err := svc.Update(ctx, news.ID, model.NewsUpdate{Header: &header})
	require.NoError(t, err)
	require.Equal(t, "Corrected", updated.Header)
	require.Equal(t, "Text", updated.Description)

	err = svc.Delete(ctx, news.ID)
	require.NoError(t, err)
	err = svc.Delete(ctx, news.ID)
	require.ErrorIs(t, err, model.ErrNewsNotFound)
}
