package model

import "time"

type Project struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Img           string    `json:"img,omitempty"`
	Category      string    `json:"category,omitempty"`
	Problem       string    `json:"problem,omitempty"`
	Collaborators string    `json:"collaborators,omitempty"`
	Duration      string    `json:"duration,omitempty"`
	Goals         string    `json:"goals,omitempty"`
	Resources     string    `json:"resources,omitempty"`
	Budget        string    `json:"budget,omitempty"`
	Scope         string    `json:"scope,omitempty"`
	Plan          string    `json:"plan,omitempty"`
	Challenges    string    `json:"challenges,omitempty"`
	LikeCount     int       `json:"like_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ProjectUpdate struct {
	Description   *string `json:"description"`
	Img           *string `json:"img"`
	Category      *string `json:"category"`
	Problem       *string `json:"problem"`
	Collaborators *string `json:"collaborators"`
	Duration      *string `json:"duration"`
	Goals         *string `json:"goals"`
	Resources     *string `json:"resources"`
	Budget        *string `json:"budget"`
	Scope         *string `json:"scope"`
	Plan          *string `json:"plan"`
	Challenges    *string `json:"challenges"`
}
