package model

import "time"

type DemoRequest struct {
	ID              string    `json:"id"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email"`
	InstituteName   string    `json:"institute_name"`
	Phone           string    `json:"phone,omitempty"`
	Designation     string    `json:"designation,omitempty"`
	StudentStrength string    `json:"student_strength,omitempty"`
	Message         string    `json:"message,omitempty"`
	Status          string    `json:"status"`
	RespondedBy     *string   `json:"responded_by,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

const (
	DemoStatusPending   = "pending"
	DemoStatusContacted = "contacted"
	DemoStatusClosed    = "closed"
)

func ValidDemoStatus(status string) bool {
	switch status {
	case DemoStatusPending, DemoStatusContacted, DemoStatusClosed:
		return true
	}

	return false
}
