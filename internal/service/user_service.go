package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"instiwise-api/internal/model"
)

// UserAdminStore is the wider store surface behind the user-management
// endpoints; the same pgx repository satisfies both it and UserStore.
type UserAdminStore interface {
	List(ctx context.Context) ([]model.User, error)
	FindByID(ctx context.Context, id string) (model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	UpdateProfile(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, id string, passwordHash string, validAfter time.Time) error
	SetAdmin(ctx context.Context, id string, isAdmin bool) error
	Delete(ctx context.Context, id string) error
}

type UserService struct {
	users UserAdminStore
	now   func() time.Time
}

func NewUserService(users UserAdminStore) *UserService {
	return &UserService{users: users, now: time.Now}
}

func (s *UserService) List(ctx context.Context) ([]model.PublicUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

func (s *UserService) Get(ctx context.Context, id string) (model.PublicUser, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return model.PublicUser{}, err
	}
	return user.Public(), nil
}

// Update changes profile fields only. Password and admin status have
// their own endpoints and are never writable here.
func (s *UserService) Update(ctx context.Context, id string, updates model.UpdateUserRequest) (model.PublicUser, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return model.PublicUser{}, err
	}

	if updates.Username != nil {
		username := strings.TrimSpace(*updates.Username)
		if len(username) < minUsernameLen {
			return model.PublicUser{}, model.ErrUsernameTooShort
		}
		if user.Username == nil || *user.Username != username {
			if taken, err := s.users.ExistsByUsername(ctx, username); err == nil && taken {
				return model.PublicUser{}, model.ErrUsernameTaken
			}
			user.Username = &username
		}
	}
	if updates.Img != nil {
		user.Img = *updates.Img
	}
	if updates.Bio != nil {
		user.Bio = *updates.Bio
	}
	if updates.Gender != nil {
		user.Gender = *updates.Gender
	}
	if updates.Course != nil {
		user.Course = *updates.Course
	}
	if updates.Phone != nil {
		user.Phone = *updates.Phone
	}

	user.UpdatedAt = s.now().UTC()
	if err := s.users.UpdateProfile(ctx, &user); err != nil {
		return model.PublicUser{}, err
	}
	return user.Public(), nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}

// ToggleAdmin flips the role flag and reports the new state.
func (s *UserService) ToggleAdmin(ctx context.Context, id string) (bool, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return false, err
	}

	isAdmin := !user.IsAdmin
	if err := s.users.SetAdmin(ctx, id, isAdmin); err != nil {
		return false, err
	}
	return isAdmin, nil
}

// SetPassword is the admin reset path. Like a self-service password
// change it bumps token-valid-after, cutting off sessions issued
// before the reset.
func (s *UserService) SetPassword(ctx context.Context, id string, newPassword string) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}

	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.users.UpdatePassword(ctx, id, hash, s.now().UTC())
}
