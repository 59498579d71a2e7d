package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"instiwise-api/internal/model"
)

type memDemoStore struct {
	mu       sync.Mutex
	requests map[string]model.DemoRequest
}

func newMemDemoStore() *memDemoStore {
	return &memDemoStore{requests: map[string]model.DemoRequest{}}
}

func (s *memDemoStore) Create(_ context.Context, d *model.DemoRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[d.ID] = *d
	return nil
}

func (s *memDemoStore) RecentExists(_ context.Context, email string, instituteName string, since time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.requests {
		if strings.EqualFold(d.Email, email) && strings.EqualFold(d.InstituteName, instituteName) && !d.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (s *memDemoStore) List(_ context.Context, status string, limit int, offset int) ([]model.DemoRequest, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := []model.DemoRequest{}
	for _, d := range s.requests {
		if status == "" || d.Status == status {
			matched = append(matched, d)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if offset >= total {
		return []model.DemoRequest{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (s *memDemoStore) FindByID(_ context.Context, id string) (model.DemoRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.requests[id]
	if !ok {
		return model.DemoRequest{}, model.ErrDemoRequestNotFound
	}
	return d, nil
}

func (s *memDemoStore) Update(_ context.Context, d *model.DemoRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.requests[d.ID]; !ok {
		return model.ErrDemoRequestNotFound
	}
	s.requests[d.ID] = *d
	return nil
}

func (s *memDemoStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.requests[id]; !ok {
		return model.ErrDemoRequestNotFound
	}
	delete(s.requests, id)
	return nil
}

func TestDemoCreateSuppressesRepeats(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewDemoService(newMemDemoStore())

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return base })

	intake := model.CreateDemoRequestRequest{
		FullName:      "Dean Richards",
		Email:         "dean@institute.edu",
		InstituteName: "Springfield Institute",
	}

	created, err := svc.Create(ctx, intake)
	require.NoError(t, err)
	require.Equal(t, model.DemoStatusPending, created.Status)
	require.Equal(t, "dean@institute.edu", created.Email)

	// Same pair inside the window, case differences included.
	intake.Email = "DEAN@institute.edu"
	_, err = svc.Create(ctx, intake)
	require.ErrorIs(t, err, model.ErrDuplicateDemoRequest)

	// A different institute is fine.
	other := intake
	other.InstituteName = "Shelbyville College"
	_, err = svc.Create(ctx, other)
	require.NoError(t, err)

	// Past the window the same pair goes through again.
	svc.SetClock(func() time.Time { return base.Add(25 * time.Hour) })
	_, err = svc.Create(ctx, intake)
	require.NoError(t, err)
}

func TestDemoCreateValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewDemoService(newMemDemoStore())

	_, err := svc.Create(ctx, model.CreateDemoRequestRequest{FullName: "No contact"})
	require.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestDemoListPaginationAndFilter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMemDemoStore()
	svc := NewDemoService(store)

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		offset := time.Duration(i) * 25 * time.Hour
		svc.SetClock(func() time.Time { return base.Add(offset) })
		_, err := svc.Create(ctx, model.CreateDemoRequestRequest{
			FullName:      "Applicant",
			Email:         "contact@institute.edu",
			InstituteName: "Institute " + string(rune('A'+i)),
		})
		require.NoError(t, err)
	}

	requests, meta, err := svc.List(ctx, "", 1, 10)
	require.NoError(t, err)
	require.Len(t, requests, 10)
	require.Equal(t, 25, meta.Total)
	require.Equal(t, 3, meta.TotalPages)

	requests, _, err = svc.List(ctx, "", 3, 10)
	require.NoError(t, err)
	require.Len(t, requests, 5)

	// Status filter and validation.
	_, _, err = svc.List(ctx, "bogus", 1, 10)
	require.ErrorIs(t, err, model.ErrInvalidInput)

	requests, meta, err = svc.List(ctx, model.DemoStatusContacted, 1, 10)
	require.NoError(t, err)
	require.Empty(t, requests)
	require.Equal(t, 0, meta.Total)
}

func TestDemoStatusTransitions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewDemoService(newMemDemoStore())

	created, err := svc.Create(ctx, model.CreateDemoRequestRequest{
		FullName:      "Dean Richards",
		Email:         "dean@institute.edu",
		InstituteName: "Springfield Institute",
	})
	require.NoError(t, err)

	contacted := model.DemoStatusContacted
	admin := "admin-id"
	updated, err := svc.Update(ctx, created.ID, model.UpdateDemoRequestRequest{
		Status:      &contacted,
		RespondedBy: &admin,
	})
	require.NoError(t, err)
	require.Equal(t, model.DemoStatusContacted, updated.Status)
	require.NotNil(t, updated.RespondedBy)

	bogus := "bogus"
	_, err = svc.Update(ctx, created.ID, model.UpdateDemoRequestRequest{Status: &bogus})
	require.ErrorIs(t, err, model.ErrInvalidInput)

	err = svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	_, err = svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, model.ErrDemoRequestNotFound)
}
