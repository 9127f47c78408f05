package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbella/transvoyages/internal/auth"
	"github.com/mbella/transvoyages/internal/model"
)

type UserRepo interface {
	List(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, u model.User) (*model.User, error)
	Update(ctx context.Context, u model.User) (*model.User, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.UserStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PersonnelService struct {
	users  UserRepo
	events ChangePublisher
}

func NewPersonnelService(users UserRepo, events ChangePublisher) *PersonnelService {
	return &PersonnelService{users: users, events: events}
}

// List is open to every authenticated user; the directory doubles as the
// chat contact list.
func (s *PersonnelService) List(ctx context.Context, caller model.Principal) ([]model.User, error) {
	return s.users.List(ctx)
}

type CreateUserInput struct {
	Email    string
	FullName string
	Role     model.Role
	Phone    *string
	AgencyID *uuid.UUID
	Password string
}

func (s *PersonnelService) Create(ctx context.Context, caller model.Principal, input CreateUserInput) (*model.User, error) {
	if !caller.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	input.Email = strings.TrimSpace(input.Email)
	input.FullName = strings.TrimSpace(input.FullName)
	if input.Email == "" || input.FullName == "" {
		return nil, fmt.Errorf("%w: email and full name are required", ErrInvalidInput)
	}
	if !input.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role", ErrInvalidInput)
	}
	if len(input.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, model.User{
		Email:        input.Email,
		FullName:     input.FullName,
		Role:         input.Role,
		Phone:        input.Phone,
		AgencyID:     input.AgencyID,
		Status:       model.UserStatusActive,
		JoinDate:     time.Now(),
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}
	s.events.Publish("users", "insert", user.ID)
	return user, nil
}

type UpdateUserInput struct {
	FullName string
	Role     model.Role
	Phone    *string
	AgencyID *uuid.UUID
	Status   model.UserStatus
}

func (s *PersonnelService) Update(ctx context.Context, caller model.Principal, id uuid.UUID, input UpdateUserInput) (*model.User, error) {
	if !caller.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	if !input.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role", ErrInvalidInput)
	}

	existing, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	existing.FullName = strings.TrimSpace(input.FullName)
	existing.Role = input.Role
	existing.Phone = input.Phone
	existing.AgencyID = input.AgencyID
	existing.Status = input.Status

	saved, err := s.users.Update(ctx, *existing)
	if err != nil {
		return nil, err
	}
	s.events.Publish("users", "update", saved.ID)
	return saved, nil
}

// SetStatus toggles an account between active and inactive. Admins cannot
// deactivate themselves.
func (s *PersonnelService) SetStatus(ctx context.Context, caller model.Principal, id uuid.UUID, status model.UserStatus) error {
	if !caller.IsAdmin() {
		return ErrPermissionDenied
	}
	if id == caller.UserID && status == model.UserStatusInactive {
		return fmt.Errorf("%w: cannot deactivate own account", ErrInvalidInput)
	}
	if err := s.users.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.events.Publish("users", "update", id)
	return nil
}

func (s *PersonnelService) Delete(ctx context.Context, caller model.Principal, id uuid.UUID) error {
	if !caller.IsAdmin() {
		return ErrPermissionDenied
	}
	if id == caller.UserID {
		return fmt.Errorf("%w: cannot delete own account", ErrInvalidInput)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.events.Publish("users", "delete", id)
	return nil
}
