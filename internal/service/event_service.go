package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"instiwise-api/internal/model"
)

// Wire formats the campus clients send: "24/10/2025" and "09:00 AM".
const (
	eventDateLayout = "02/01/2006"
	eventTimeLayout = "3:04 PM"
)

type EventStore interface {
	Create(ctx context.Context, event *model.Event) error
	ListByUser(ctx context.Context, userID string) ([]model.Event, error)
	FindByID(ctx context.Context, id string) (model.Event, error)
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id string) error
	SetFavorite(ctx context.Context, id string, favorite bool) error
	ListFavorites(ctx context.Context, userID string) ([]model.Event, error)
}

// EventService manages creator-scoped events. Every event a caller can
// see is their own; ownership failures surface as not-found so the
// endpoint does not reveal which IDs exist.
type EventService struct {
	events EventStore
	now    func() time.Time
}

func NewEventService(events EventStore) *EventService {
	return &EventService{events: events, now: time.Now}
}

func (s *EventService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *EventService) Create(ctx context.Context, userID string, req model.CreateEventRequest) (model.Event, error) {
	if strings.TrimSpace(req.Header) == "" || strings.TrimSpace(req.Location) == "" ||
		strings.TrimSpace(req.Category) == "" || strings.TrimSpace(req.Description) == "" {
		return model.Event{}, model.ErrInvalidInput
	}

	dateTime, err := DeriveDateTime(req.Date, req.Start)
	if err != nil {
		return model.Event{}, err
	}
	if _, err := parseEventTime(req.End); err != nil {
		return model.Event{}, err
	}

	now := s.now().UTC()
	event := model.Event{
		ID:          uuid.NewString(),
		UserID:      userID,
		Header:      req.Header,
		Location:    req.Location,
		Category:    req.Category,
		Date:        req.Date,
		Start:       req.Start,
		End:         req.End,
		Img:         req.Img,
		Description: req.Description,
		DateTime:    dateTime,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.events.Create(ctx, &event); err != nil {
		return model.Event{}, err
	}

	event.Status = ClassifyEvent(event, s.now())
	return event, nil
}

func (s *EventService) List(ctx context.Context, userID string) ([]model.Event, error) {
	events, err := s.events.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range events {
		events[i].Status = ClassifyEvent(events[i], now)
	}
	return events, nil
}

func (s *EventService) Get(ctx context.Context, userID string, id string) (model.Event, error) {
	event, err := s.owned(ctx, userID, id)
	if err != nil {
		return model.Event{}, err
	}

	event.Status = ClassifyEvent(event, s.now())
	return event, nil
}

func (s *EventService) Update(ctx context.Context, userID string, id string, updates model.EventUpdate) (model.Event, error) {
	event, err := s.owned(ctx, userID, id)
	if err != nil {
		return model.Event{}, err
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&event.Header, updates.Header)
	apply(&event.Location, updates.Location)
	apply(&event.Category, updates.Category)
	apply(&event.Date, updates.Date)
	apply(&event.Start, updates.Start)
	apply(&event.End, updates.End)
	apply(&event.Img, updates.Img)
	apply(&event.Description, updates.Description)

	// date_time is derived, never client-supplied
	event.DateTime, err = DeriveDateTime(event.Date, event.Start)
	if err != nil {
		return model.Event{}, err
	}
	if _, err := parseEventTime(event.End); err != nil {
		return model.Event{}, err
	}

	event.UpdatedAt = s.now().UTC()
	if err := s.events.Update(ctx, &event); err != nil {
		return model.Event{}, err
	}

	event.Status = ClassifyEvent(event, s.now())
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, userID string, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.events.Delete(ctx, id)
}

func (s *EventService) ToggleFavorite(ctx context.Context, userID string, id string) (bool, error) {
	event, err := s.owned(ctx, userID, id)
	if err != nil {
		return false, err
	}

	favorite := !event.IsFavorite
	if err := s.events.SetFavorite(ctx, id, favorite); err != nil {
		return false, err
	}
	return favorite, nil
}

func (s *EventService) Favorites(ctx context.Context, userID string) ([]model.Event, error) {
	events, err := s.events.ListFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range events {
		events[i].Status = ClassifyEvent(events[i], now)
	}
	return events, nil
}

func (s *EventService) owned(ctx context.Context, userID string, id string) (model.Event, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return model.Event{}, err
	}
	if event.UserID != userID {
		return model.Event{}, model.ErrEventNotFound
	}
	return event, nil
}

// ClassifyEvent buckets an event relative to now: a past day is
// "past", a future day "upcoming", and on the event's own day the
// start/end window decides.
func ClassifyEvent(event model.Event, now time.Time) string {
	day, err := parseEventDate(event.Date)
	if err != nil {
		// unparseable display date, fall back to the derived timestamp
		if event.DateTime.Before(now) {
			return model.EventPast
		}
		return model.EventUpcoming
	}

	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch {
	case day.Before(today):
		return model.EventPast
	case day.After(today):
		return model.EventUpcoming
	}

	start, startErr := combineDateTime(day, event.Start)
	end, endErr := combineDateTime(day, event.End)
	if startErr != nil || endErr != nil {
		return model.EventPast
	}

	switch {
	case now.Before(start):
		return model.EventUpcoming
	case now.After(end):
		return model.EventPast
	default:
		return model.EventOngoing
	}
}

// DeriveDateTime combines the display date and start time into the
// sortable timestamp stored alongside them.
func DeriveDateTime(date string, start string) (time.Time, error) {
	day, err := parseEventDate(date)
	if err != nil {
		return time.Time{}, err
	}
	return combineDateTime(day, start)
}

func parseEventDate(date string) (time.Time, error) {
	parsed, err := time.ParseInLocation(eventDateLayout, strings.TrimSpace(date), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", model.ErrBadEventTime, date)
	}
	return parsed, nil
}

func parseEventTime(value string) (time.Time, error) {
	parsed, err := time.Parse(eventTimeLayout, strings.ToUpper(strings.TrimSpace(value)))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", model.ErrBadEventTime, value)
	}
	return parsed, nil
}

func combineDateTime(day time.Time, clock string) (time.Time, error) {
	t, err := parseEventTime(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}
