package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mbella/transvoyages/internal/model"
)

func TestIssueAndParse(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	user := model.User{
		ID:    uuid.New(),
		Email: "agent@transvoyages.cm",
		Role:  model.RoleAccountant,
	}

	raw, err := m.Issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	principal, err := m.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if principal.UserID != user.ID || principal.Email != user.Email || principal.Role != model.RoleAccountant {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestParseRejects(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	other := NewManager("other-secret", time.Hour)
	expired := NewManager("test-secret", -time.Minute)

	user := model.User{ID: uuid.New(), Email: "x@y.z", Role: model.RoleAdmin}

	cases := []struct {
		name string
		raw  func() string
	}{
		{name: "garbage", raw: func() string { return "not-a-token" }},
		{name: "wrong secret", raw: func() string { s, _ := other.Issue(user); return s }},
		{name: "expired", raw: func() string { s, _ := expired.Issue(user); return s }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := m.Parse(tc.raw()); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(hash, "s3cret") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("wrong password accepted")
	}
}
