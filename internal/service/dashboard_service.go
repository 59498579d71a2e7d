package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"instiwise-api/internal/model"
)

const dashboardRecentLimit = 5

// MetricsStore is the read-side counting surface each repository
// exposes for the dashboard.
type MetricsStore interface {
	Count(ctx context.Context) (int, error)
	CountCreatedBetween(ctx context.Context, from time.Time, to time.Time) (int, error)
}

type DashboardNewsStore interface {
	MetricsStore
	Recent(ctx context.Context, limit int) ([]model.RecentNews, error)
}

type DashboardEventStore interface {
	MetricsStore
	Upcoming(ctx context.Context, after time.Time, limit int) ([]model.UpcomingEvent, error)
}

type DashboardUserStore interface {
	MetricsStore
	Recent(ctx context.Context, limit int) ([]model.RecentUser, error)
}

// DashboardService aggregates the admin metrics: all-time totals with
// month-over-month growth, plus small recency lists. Pure read-side
// arithmetic over the repositories.
type DashboardService struct {
	news     DashboardNewsStore
	projects MetricsStore
	events   DashboardEventStore
	users    DashboardUserStore
	demos    MetricsStore
	now      func() time.Time
}

func NewDashboardService(
	news DashboardNewsStore,
	projects MetricsStore,
	events DashboardEventStore,
	users DashboardUserStore,
	demos MetricsStore,
) *DashboardService {
	return &DashboardService{
		news:     news,
		projects: projects,
		events:   events,
		users:    users,
		demos:    demos,
		now:      time.Now,
	}
}

func (s *DashboardService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *DashboardService) Metrics(ctx context.Context) (model.DashboardMetrics, error) {
	now := s.now().UTC()
	thisMonthStart := startOfMonth(now)
	lastMonthStart := startOfMonth(thisMonthStart.Add(-time.Hour))

	total := func(name string, store MetricsStore) (model.MetricTotal, error) {
		all, err := store.Count(ctx)
		if err != nil {
			return model.MetricTotal{}, fmt.Errorf("count %s: %w", name, err)
		}
		thisMonth, err := store.CountCreatedBetween(ctx, thisMonthStart, now)
		if err != nil {
			return model.MetricTotal{}, fmt.Errorf("count %s this month: %w", name, err)
		}
		lastMonth, err := store.CountCreatedBetween(ctx, lastMonthStart, thisMonthStart)
		if err != nil {
			return model.MetricTotal{}, fmt.Errorf("count %s last month: %w", name, err)
		}
		return model.MetricTotal{Total: all, Growth: PercentChange(thisMonth, lastMonth)}, nil
	}

	var metrics model.DashboardMetrics
	var err error

	if metrics.Totals.News, err = total("news", s.news); err != nil {
		return model.DashboardMetrics{}, err
	}
	if metrics.Totals.Projects, err = total("projects", s.projects); err != nil {
		return model.DashboardMetrics{}, err
	}
	if metrics.Totals.Events, err = total("events", s.events); err != nil {
		return model.DashboardMetrics{}, err
	}
	if metrics.Totals.Users, err = total("users", s.users); err != nil {
		return model.DashboardMetrics{}, err
	}
	if metrics.Totals.DemoRequests, err = total("demo requests", s.demos); err != nil {
		return model.DashboardMetrics{}, err
	}

	if metrics.Recent.News, err = s.news.Recent(ctx, dashboardRecentLimit); err != nil {
		return model.DashboardMetrics{}, fmt.Errorf("recent news: %w", err)
	}
	if metrics.Recent.UpcomingEvents, err = s.events.Upcoming(ctx, now, dashboardRecentLimit); err != nil {
		return model.DashboardMetrics{}, fmt.Errorf("upcoming events: %w", err)
	}
	if metrics.Recent.NewUsers, err = s.users.Recent(ctx, dashboardRecentLimit); err != nil {
		return model.DashboardMetrics{}, fmt.Errorf("recent users: %w", err)
	}

	metrics.GeneratedAt = now
	return metrics, nil
}

// PercentChange is the rounded month-over-month growth. A zero
// previous month reads as 100% growth when anything was added, 0%
// otherwise.
func PercentChange(current int, previous int) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round(float64(current-previous) / float64(previous) * 100))
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
