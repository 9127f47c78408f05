package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbella/transvoyages/internal/model"
)

type AgencyRepo interface {
	List(ctx context.Context) ([]model.Agency, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Agency, error)
	Create(ctx context.Context, a model.Agency) (*model.Agency, error)
	Update(ctx context.Context, a model.Agency) (*model.Agency, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type AgencyService struct {
	repo   AgencyRepo
	events ChangePublisher
}

func NewAgencyService(repo AgencyRepo, events ChangePublisher) *AgencyService {
	return &AgencyService{repo: repo, events: events}
}

func (s *AgencyService) List(ctx context.Context) ([]model.Agency, error) {
	return s.repo.List(ctx)
}

type AgencyInput struct {
	Name    string
	Address string
	Phone   string
	Email   *string
	Manager string
}

func (s *AgencyService) Create(ctx context.Context, caller model.Principal, input AgencyInput) (*model.Agency, error) {
	if !caller.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	agency, err := s.repo.Create(ctx, model.Agency{
		Name:    strings.TrimSpace(input.Name),
		Address: strings.TrimSpace(input.Address),
		Phone:   strings.TrimSpace(input.Phone),
		Email:   input.Email,
		Manager: strings.TrimSpace(input.Manager),
	})
	if err != nil {
		return nil, err
	}
	s.events.Publish("agencies", "insert", agency.ID)
	return agency, nil
}

func (s *AgencyService) Update(ctx context.Context, caller model.Principal, id uuid.UUID, input AgencyInput) (*model.Agency, error) {
	if !caller.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	agency, err := s.repo.Update(ctx, model.Agency{
		ID:      id,
		Name:    strings.TrimSpace(input.Name),
		Address: strings.TrimSpace(input.Address),
		Phone:   strings.TrimSpace(input.Phone),
		Email:   input.Email,
		Manager: strings.TrimSpace(input.Manager),
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.events.Publish("agencies", "update", agency.ID)
	return agency, nil
}

func (s *AgencyService) Delete(ctx context.Context, caller model.Principal, id uuid.UUID) error {
	if !caller.IsAdmin() {
		return ErrPermissionDenied
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.events.Publish("agencies", "delete", id)
	return nil
}
