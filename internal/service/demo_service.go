package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"instiwise-api/internal/model"
)

// demoDedupeWindow is how long a repeat submission from the same
// email + institute pair is treated as a duplicate.
const demoDedupeWindow = 24 * time.Hour

const (
	demoDefaultLimit = 20
	demoMaxLimit     = 100
)

type DemoRequestStore interface {
	Create(ctx context.Context, request *model.DemoRequest) error
	RecentExists(ctx context.Context, email string, instituteName string, since time.Time) (bool, error)
	List(ctx context.Context, status string, limit int, offset int) ([]model.DemoRequest, int, error)
	FindByID(ctx context.Context, id string) (model.DemoRequest, error)
	Update(ctx context.Context, request *model.DemoRequest) error
	Delete(ctx context.Context, id string) error
}

// DemoService handles the public landing-page intake and its admin
// review queue.
type DemoService struct {
	requests DemoRequestStore
	now      func() time.Time
}

func NewDemoService(requests DemoRequestStore) *DemoService {
	return &DemoService{requests: requests, now: time.Now}
}

func (s *DemoService) SetClock(now func() time.Time) {
	s.now = now
}

// Create accepts a public submission, suppressing repeats from the
// same email and institute within the dedupe window.
func (s *DemoService) Create(ctx context.Context, req model.CreateDemoRequestRequest) (model.DemoRequest, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	institute := strings.TrimSpace(req.InstituteName)

	if fullName == "" || email == "" || institute == "" {
		return model.DemoRequest{}, model.ErrInvalidInput
	}

	now := s.now().UTC()
	recent, err := s.requests.RecentExists(ctx, email, institute, now.Add(-demoDedupeWindow))
	if err != nil {
		return model.DemoRequest{}, err
	}
	if recent {
		return model.DemoRequest{}, model.ErrDuplicateDemoRequest
	}

	request := model.DemoRequest{
		ID:              uuid.NewString(),
		FullName:        fullName,
		Email:           email,
		InstituteName:   institute,
		Phone:           req.Phone,
		Designation:     req.Designation,
		StudentStrength: req.StudentStrength,
		Message:         req.Message,
		Status:          model.DemoStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.requests.Create(ctx, &request); err != nil {
		return model.DemoRequest{}, err
	}
	return request, nil
}

// List returns a page of requests, optionally filtered by status,
// newest first.
func (s *DemoService) List(ctx context.Context, status string, page int, limit int) ([]model.DemoRequest, model.Meta, error) {
	if status != "" && !model.ValidDemoStatus(status) {
		return nil, model.Meta{}, model.ErrInvalidInput
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = demoDefaultLimit
	}
	if limit > demoMaxLimit {
		limit = demoMaxLimit
	}

	requests, total, err := s.requests.List(ctx, status, limit, (page-1)*limit)
	if err != nil {
		return nil, model.Meta{}, err
	}

	meta := model.Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}
	return requests, meta, nil
}

func (s *DemoService) Get(ctx context.Context, id string) (model.DemoRequest, error) {
	return s.requests.FindByID(ctx, id)
}

func (s *DemoService) Update(ctx context.Context, id string, updates model.UpdateDemoRequestRequest) (model.DemoRequest, error) {
	request, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return model.DemoRequest{}, err
	}

	if updates.Status != nil {
		if !model.ValidDemoStatus(*updates.Status) {
			return model.DemoRequest{}, model.ErrInvalidInput
		}
		request.Status = *updates.Status
	}
	if updates.RespondedBy != nil {
		request.RespondedBy = updates.RespondedBy
	}

	request.UpdatedAt = s.now().UTC()
	if err := s.requests.Update(ctx, &request); err != nil {
		return model.DemoRequest{}, err
	}
	return request, nil
}

func (s *DemoService) Delete(ctx context.Context, id string) error {
	if _, err := s.requests.FindByID(ctx, id); err != nil {
		return err
	}
	return s.requests.Delete(ctx, id)
}
