package model

import "time"

// Event keeps the display fields the campus clients send ("24/10/2025",
// "09:00 AM") alongside DateTime, a combined timestamp derived on every
// write and used for sorting and the dashboard's upcoming list.
type Event struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Header      string    `json:"header"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	Date        string    `json:"date"`
	Start       string    `json:"start"`
	End         string    `json:"end"`
	Img         string    `json:"img,omitempty"`
	Description string    `json:"description"`
	IsFavorite  bool      `json:"is_favorite"`
	DateTime    time.Time `json:"date_time"`
	Status      string    `json:"status,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Event classification relative to the wall clock.
const (
	EventPast     = "past"
	EventOngoing  = "ongoing"
	EventUpcoming = "upcoming"
)

type EventUpdate struct {
	Header      *string `json:"header"`
	Location    *string `json:"location"`
	Category    *string `json:"category"`
	Date        *string `json:"date"`
	Start       *string `json:"start"`
	End         *string `json:"end"`
	Img         *string `json:"img"`
	Description *string `json:"description"`
}
