package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"instiwise-api/internal/model"
)

type memEventStore struct {
	mu     sync.Mutex
	events map[string]model.Event
}

func newMemEventStore() *memEventStore {
	return &memEventStore{events: map[string]model.Event{}}
}

func (s *memEventStore) Create(_ context.Context, e *model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[e.ID] = *e
	return nil
}

func (s *memEventStore) ListByUser(_ context.Context, userID string) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Event{}
	for _, e := range s.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memEventStore) FindByID(_ context.Context, id string) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[id]
	if !ok {
		return model.Event{}, model.ErrEventNotFound
	}
	return e, nil
}

func (s *memEventStore) Update(_ context.Context, e *model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[e.ID]; !ok {
		return model.ErrEventNotFound
	}
	s.events[e.ID] = *e
	return nil
}

func (s *memEventStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return model.ErrEventNotFound
	}
	delete(s.events, id)
	return nil
}

func (s *memEventStore) SetFavorite(_ context.Context, id string, favorite bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[id]
	if !ok {
		return model.ErrEventNotFound
	}
	e.IsFavorite = favorite
	s.events[id] = e
	return nil
}

func (s *memEventStore) ListFavorites(_ context.Context, userID string) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Event{}
	for _, e := range s.events {
		if e.UserID == userID && e.IsFavorite {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestClassifyEvent(t *testing.T) {
	t.Parallel()

	// Midday on 15 June 2025.
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		date  string
		start string
		end   string
		want  string
	}{
		{"previous day", "14/06/2025", "09:00 AM", "05:00 PM", model.EventPast},
		{"next day", "16/06/2025", "09:00 AM", "05:00 PM", model.EventUpcoming},
		{"today before start", "15/06/2025", "02:00 PM", "05:00 PM", model.EventUpcoming},
		{"today inside window", "15/06/2025", "09:00 AM", "05:00 PM", model.EventOngoing},
		{"today after end", "15/06/2025", "08:00 AM", "11:00 AM", model.EventPast},
		{"window edge at start", "15/06/2025", "12:00 PM", "05:00 PM", model.EventOngoing},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			event := model.Event{Date: tc.date, Start: tc.start, End: tc.end}
			require.Equal(t, tc.want, ClassifyEvent(event, now))
		})
	}
}

func TestClassifyEventFallsBackToDerivedTimestamp(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	past := model.Event{Date: "junk", DateTime: now.Add(-time.Hour)}
	require.Equal(t, model.EventPast, ClassifyEvent(past, now))

	future := model.Event{Date: "junk", DateTime: now.Add(time.Hour)}
	require.Equal(t, model.EventUpcoming, ClassifyEvent(future, now))
}

func TestDeriveDateTime(t *testing.T) {
	t.Parallel()

	derived, err := DeriveDateTime("24/10/2025", "09:30 AM")
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 10, 24, 9, 30, 0, 0, time.UTC), derived)

	_, err = DeriveDateTime("2025-10-24", "09:30 AM")
	require.ErrorIs(t, err, model.ErrBadEventTime)

	_, err = DeriveDateTime("24/10/2025", "25:00")
	require.ErrorIs(t, err, model.ErrBadEventTime)
}

func TestEventCreateAndOwnership(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewEventService(newMemEventStore())

	created, err := svc.Create(ctx, "owner", model.CreateEventRequest{
		Header:      "Tech Fest",
		Location:    "Main Auditorium",
		Category:    "technical",
		Date:        "24/10/2025",
		Start:       "09:00 AM",
		End:         "05:00 PM",
		Description: "Annual tech festival",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.False(t, created.DateTime.IsZero())
	require.NotEmpty(t, created.Status)

	// Another user cannot see, update, or delete it; the failure is
	// indistinguishable from a missing ID.
	_, err = svc.Get(ctx, "intruder", created.ID)
	require.ErrorIs(t, err, model.ErrEventNotFound)

	_, err = svc.Update(ctx, "intruder", created.ID, model.EventUpdate{})
	require.ErrorIs(t, err, model.ErrEventNotFound)

	err = svc.Delete(ctx, "intruder", created.ID)
	require.ErrorIs(t, err, model.ErrEventNotFound)

	mine, err := svc.List(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, mine, 1)
}

func TestEventCreateValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewEventService(newMemEventStore())

	_, err := svc.Create(ctx, "owner", model.CreateEventRequest{
		Header: "Missing fields",
	})
	require.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = svc.Create(ctx, "owner", model.CreateEventRequest{
		Header:      "Bad date",
		Location:    "Hall",
		Category:    "cultural",
		Date:        "not-a-date",
		Start:       "09:00 AM",
		End:         "05:00 PM",
		Description: "x",
	})
	require.ErrorIs(t, err, model.ErrBadEventTime)
}

func TestEventUpdateRederivesDateTime(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewEventService(newMemEventStore())

	created, err := svc.Create(ctx, "owner", model.CreateEventRequest{
		Header:      "Workshop",
		Location:    "Lab 2",
		Category:    "technical",
		Date:        "24/10/2025",
		Start:       "09:00 AM",
		End:         "11:00 AM",
		Description: "Hands-on session",
	})
	require.NoError(t, err)

	newDate := "25/10/2025"
	updated, err := svc.Update(ctx, "owner", created.ID, model.EventUpdate{Date: &newDate})
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 10, 25, 9, 0, 0, 0, time.UTC), updated.DateTime)
}

func TestEventToggleFavorite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewEventService(newMemEventStore())

	created, err := svc.Create(ctx, "owner", model.CreateEventRequest{
		Header:      "Seminar",
		Location:    "Room 101",
		Category:    "academic",
		Date:        "24/10/2025",
		Start:       "09:00 AM",
		End:         "11:00 AM",
		Description: "Guest lecture",
	})
	require.NoError(t, err)

	favorite, err := svc.ToggleFavorite(ctx, "owner", created.ID)
	require.NoError(t, err)
	require.True(t, favorite)

	favorites, err := svc.Favorites(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, favorites, 1)

	favorite, err = svc.ToggleFavorite(ctx, "owner", created.ID)
	require.NoError(t, err)
	require.False(t, favorite)

	favorites, err = svc.Favorites(ctx, "owner")
	require.NoError(t, err)
	require.Empty(t, favorites)
}
