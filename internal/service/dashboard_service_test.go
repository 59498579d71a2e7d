package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"instiwise-api/internal/model"
)

// fakeMetrics answers counts from a fixed set of creation timestamps.
type fakeMetrics struct {
	created []time.Time
}

func (f fakeMetrics) Count(_ context.Context) (int, error) {
	return len(f.created), nil
}

func (f fakeMetrics) CountCreatedBetween(_ context.Context, from time.Time, to time.Time) (int, error) {
	count := 0
	for _, ts := range f.created {
		if !ts.Before(from) && ts.Before(to) {
			count++
		}
	}
	return count, nil
}

type fakeNewsMetrics struct {
	fakeMetrics
	recent []model.RecentNews
}

func (f fakeNewsMetrics) Recent(_ context.Context, limit int) ([]model.RecentNews, error) {
	if len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

type fakeEventMetrics struct {
	fakeMetrics
	upcoming []model.UpcomingEvent
}

func (f fakeEventMetrics) Upcoming(_ context.Context, _ time.Time, limit int) ([]model.UpcomingEvent, error) {
	if len(f.upcoming) > limit {
		return f.upcoming[:limit], nil
	}
	return f.upcoming, nil
}

type fakeUserMetrics struct {
	fakeMetrics
	recent []model.RecentUser
}

func (f fakeUserMetrics) Recent(_ context.Context, limit int) ([]model.RecentUser, error) {
	if len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func TestPercentChange(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		current  int
		previous int
		want     int
	}{
		{"growth", 15, 10, 50},
		{"decline", 5, 10, -50},
		{"flat", 10, 10, 0},
		{"from zero with additions", 7, 0, 100},
		{"from zero with nothing", 0, 0, 0},
		{"rounding up", 2, 3, -33},
		{"rounding half", 1, 8, -88},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, PercentChange(tc.current, tc.previous))
		})
	}
}

func TestDashboardMetrics(t *testing.T) {
	t.Parallel()

	// Fixed clock: 15 June 2025. This month starts 1 June, last month
	// 1 May.
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	may := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	june := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	april := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	news := fakeNewsMetrics{
		fakeMetrics: fakeMetrics{created: []time.Time{april, may, may, june, june, june}},
		recent:      []model.RecentNews{{Header: "Fresh headline", CreatedAt: june}},
	}
	projects := fakeMetrics{created: []time.Time{may, june}}
	events := fakeEventMetrics{
		fakeMetrics: fakeMetrics{created: []time.Time{june}},
		upcoming:    []model.UpcomingEvent{{Header: "Convocation", Date: "20/06/2025"}},
	}
	users := fakeUserMetrics{
		fakeMetrics: fakeMetrics{created: []time.Time{april, april, may}},
		recent:      []model.RecentUser{{Username: "newest", CreatedAt: may}},
	}
	demos := fakeMetrics{}

	svc := NewDashboardService(news, projects, events, users, demos)
	svc.SetClock(func() time.Time { return now })

	metrics, err := svc.Metrics(context.Background())
	require.NoError(t, err)

	// News: 6 all-time, 3 this month vs 2 last month.
	require.Equal(t, 6, metrics.Totals.News.Total)
	require.Equal(t, 50, metrics.Totals.News.Growth)

	// Projects: 1 vs 1 is flat.
	require.Equal(t, 2, metrics.Totals.Projects.Total)
	require.Equal(t, 0, metrics.Totals.Projects.Growth)

	// Events: 1 this month, none last month.
	require.Equal(t, 100, metrics.Totals.Events.Growth)

	// Users: 0 this month vs 1 last month.
	require.Equal(t, -100, metrics.Totals.Users.Growth)

	require.Equal(t, 0, metrics.Totals.DemoRequests.Total)

	require.Len(t, metrics.Recent.News, 1)
	require.Len(t, metrics.Recent.UpcomingEvents, 1)
	require.Len(t, metrics.Recent.NewUsers, 1)
	require.Equal(t, now, metrics.GeneratedAt)
}
