package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbella/transvoyages/internal/auth"
	"github.com/mbella/transvoyages/internal/model"
)

type stubUserRepo struct {
	users []model.User
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) Create(ctx context.Context, u model.User) (*model.User, error) {
	u.ID = uuid.New()
	s.users = append(s.users, u)
	return &u, nil
}

func testAuthService(t *testing.T, users ...model.User) (*AuthService, *auth.Manager) {
	t.Helper()
	manager := auth.NewManager("test-secret", time.Hour)
	return NewAuthService(&stubUserRepo{users: users}, manager), manager
}

func activeUser(t *testing.T, email, password string) model.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatal(err)
	}
	return model.User{
		ID:           uuid.New(),
		Email:        email,
		FullName:     "Paul Essomba",
		Role:         model.RoleAccountant,
		Status:       model.UserStatusActive,
		PasswordHash: hash,
	}
}

func TestLogin(t *testing.T) {
	user := activeUser(t, "paul@transvoyages.cm", "motdepasse")
	svc, manager := testAuthService(t, user)

	session, err := svc.Login(context.Background(), "paul@transvoyages.cm", "motdepasse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if session.User.ID != user.ID {
		t.Errorf("session user = %s, want %s", session.User.ID, user.ID)
	}

	principal, err := manager.Parse(session.Token)
	if err != nil {
		t.Fatalf("Parse issued token: %v", err)
	}
	if principal.UserID != user.ID || principal.Role != model.RoleAccountant {
		t.Errorf("principal = %+v", principal)
	}
}

func TestLoginRejects(t *testing.T) {
	user := activeUser(t, "paul@transvoyages.cm", "motdepasse")
	disabled := activeUser(t, "inactif@transvoyages.cm", "motdepasse")
	disabled.Status = model.UserStatusInactive
	svc, _ := testAuthService(t, user, disabled)

	if _, err := svc.Login(context.Background(), "paul@transvoyages.cm", "faux"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(context.Background(), "inconnu@transvoyages.cm", "motdepasse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(context.Background(), "inactif@transvoyages.cm", "motdepasse"); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("disabled account: err = %v, want ErrPermissionDenied", err)
	}
}

func TestRegister(t *testing.T) {
	svc, _ := testAuthService(t)

	session, err := svc.Register(context.Background(), "Marie Ngo", "marie@transvoyages.cm", "secret123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if session.User.Role != model.RoleAccountant {
		t.Errorf("role = %s, want agent_comptable", session.User.Role)
	}
	if session.User.Status != model.UserStatusPending {
		t.Errorf("status = %s, want pending", session.User.Status)
	}
	if session.User.PasswordHash == "secret123" {
		t.Error("password stored in clear")
	}
	if session.Token == "" {
		t.Error("no token issued")
	}
}

func TestRegisterValidation(t *testing.T) {
	existing := activeUser(t, "prise@transvoyages.cm", "motdepasse")
	svc, _ := testAuthService(t, existing)

	if _, err := svc.Register(context.Background(), "", "x@y.cm", "secret123"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty name: err = %v", err)
	}
	if _, err := svc.Register(context.Background(), "X", "x@y.cm", "abc"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("short password: err = %v", err)
	}
	if _, err := svc.Register(context.Background(), "X", "prise@transvoyages.cm", "secret123"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("taken email: err = %v, want ErrEmailTaken", err)
	}
}
