package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"instiwise-api/internal/model"
)

type ProjectStore interface {
	Create(ctx context.Context, project *model.Project) error
	List(ctx context.Context) ([]model.Project, error)
	ListByUser(ctx context.Context, userID string) ([]model.Project, error)
	FindByID(ctx context.Context, id string) (model.Project, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id string) error
	HasLiked(ctx context.Context, projectID string, userID string) (bool, error)
	AddLike(ctx context.Context, projectID string, userID string) error
	RemoveLike(ctx context.Context, projectID string, userID string) error
}

type ProjectService struct {
	projects ProjectStore
	now      func() time.Time
}

func NewProjectService(projects ProjectStore) *ProjectService {
	return &ProjectService{projects: projects, now: time.Now}
}

func (s *ProjectService) Create(ctx context.Context, userID string, req model.CreateProjectRequest) (model.Project, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || strings.TrimSpace(req.Description) == "" {
		return model.Project{}, model.ErrInvalidInput
	}

	// fast path only; the unique index on title is authoritative
	if taken, err := s.projects.ExistsByTitle(ctx, title); err == nil && taken {
		return model.Project{}, model.ErrProjectTitleTaken
	}

	now := s.now().UTC()
	project := model.Project{
		ID:            uuid.NewString(),
		UserID:        userID,
		Title:         title,
		Description:   req.Description,
		Img:           req.Img,
		Category:      req.Category,
		Problem:       req.Problem,
		Collaborators: req.Collaborators,
		Duration:      req.Duration,
		Goals:         req.Goals,
		Resources:     req.Resources,
		Budget:        req.Budget,
		Scope:         req.Scope,
		Plan:          req.Plan,
		Challenges:    req.Challenges,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.projects.Create(ctx, &project); err != nil {
		return model.Project{}, err
	}
	return project, nil
}

func (s *ProjectService) List(ctx context.Context) ([]model.Project, error) {
	return s.projects.List(ctx)
}

func (s *ProjectService) ListByUser(ctx context.Context, userID string) ([]model.Project, error) {
	return s.projects.ListByUser(ctx, userID)
}

func (s *ProjectService) Get(ctx context.Context, id string) (model.Project, error) {
	return s.projects.FindByID(ctx, id)
}

// Update applies partial changes to an owned project. The owner check
// lives here rather than in a route guard so every write path shares
// it.
func (s *ProjectService) Update(ctx context.Context, userID string, id string, updates model.ProjectUpdate) (model.Project, error) {
	project, err := s.owned(ctx, userID, id)
	if err != nil {
		return model.Project{}, err
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&project.Description, updates.Description)
	apply(&project.Img, updates.Img)
	apply(&project.Category, updates.Category)
	apply(&project.Problem, updates.Problem)
	apply(&project.Collaborators, updates.Collaborators)
	apply(&project.Duration, updates.Duration)
	apply(&project.Goals, updates.Goals)
	apply(&project.Resources, updates.Resources)
	apply(&project.Budget, updates.Budget)
	apply(&project.Scope, updates.Scope)
	apply(&project.Plan, updates.Plan)
	apply(&project.Challenges, updates.Challenges)

	project.UpdatedAt = s.now().UTC()
	if err := s.projects.Update(ctx, &project); err != nil {
		return model.Project{}, err
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, userID string, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.projects.Delete(ctx, id)
}

// ToggleLike flips the caller's like on a project and reports the new
// state.
func (s *ProjectService) ToggleLike(ctx context.Context, userID string, id string) (bool, error) {
	if _, err := s.projects.FindByID(ctx, id); err != nil {
		return false, err
	}

	liked, err := s.projects.HasLiked(ctx, id, userID)
	if err != nil {
		return false, err
	}

	if liked {
		if err := s.projects.RemoveLike(ctx, id, userID); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := s.projects.AddLike(ctx, id, userID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *ProjectService) owned(ctx context.Context, userID string, id string) (model.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return model.Project{}, err
	}
	if project.UserID != userID {
		return model.Project{}, model.ErrForbidden
	}
	return project, nil
}
