package model

import "time"

type News struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Header       string    `json:"header"`
	Img          string    `json:"img,omitempty"`
	Description  string    `json:"description"`
	LikeCount    int       `json:"like_count"`
	DislikeCount int       `json:"dislike_count"`
	ViewCount    int       `json:"view_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// News reaction kinds. A user holds at most one reaction per article;
// liking removes a standing dislike and vice versa.
const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

type NewsUpdate struct {
	Header      *string `json:"header"`
	Img         *string `json:"img"`
	Description *string `json:"description"`
}
