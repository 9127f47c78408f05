package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mbella/transvoyages/internal/auth"
	"github.com/mbella/transvoyages/internal/model"
)

type AuthUserRepo interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, u model.User) (*model.User, error)
}

type AuthService struct {
	users  AuthUserRepo
	tokens *auth.Manager
}

func NewAuthService(users AuthUserRepo, tokens *auth.Manager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

type Session struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if user.Status == model.UserStatusInactive {
		return nil, fmt.Errorf("%w: account disabled", ErrPermissionDenied)
	}

	token, err := s.tokens.Issue(*user)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, User: *user}, nil
}

// Register creates a pending accountant account and signs it in. Role and
// status upgrades go through personnel management.
func (s *AuthService) Register(ctx context.Context, fullName, email, password string) (*Session, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)
	if fullName == "" || email == "" {
		return nil, fmt.Errorf("%w: full name and email are required", ErrInvalidInput)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, model.User{
		Email:        email,
		FullName:     fullName,
		Role:         model.RoleAccountant,
		Status:       model.UserStatusPending,
		JoinDate:     time.Now(),
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(*user)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, User: *user}, nil
}
