package model

import "time"

// DashboardMetrics is the admin analytics payload: totals with
// month-over-month growth plus a few recency lists.
type DashboardMetrics struct {
	Totals      DashboardTotals `json:"totals"`
	Recent      DashboardRecent `json:"recent"`
	GeneratedAt time.Time       `json:"generated_at"`
}

type DashboardTotals struct {
	News         MetricTotal `json:"news"`
	Projects     MetricTotal `json:"projects"`
	Events       MetricTotal `json:"events"`
	Users        MetricTotal `json:"users"`
	DemoRequests MetricTotal `json:"demo_requests"`
}

// MetricTotal pairs an all-time count with the percent change of this
// month's additions against last month's.
type MetricTotal struct {
	Total  int `json:"total"`
	Growth int `json:"growth"`
}

type DashboardRecent struct {
	News           []RecentNews    `json:"news"`
	UpcomingEvents []UpcomingEvent `json:"upcoming_events"`
	NewUsers       []RecentUser    `json:"new_users"`
}

type RecentNews struct {
	Header    string    `json:"header"`
	Img       string    `json:"img,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type UpcomingEvent struct {
	Header string `json:"header"`
	Date   string `json:"date"`
}

type RecentUser struct {
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
