package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbella/transvoyages/internal/model"
	"github.com/mbella/transvoyages/internal/stats"
)

type VoyageRepo interface {
	ListAll(ctx context.Context) ([]model.Voyage, error)
	ListByAgent(ctx context.Context, agentID uuid.UUID) ([]model.Voyage, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Voyage, error)
	Create(ctx context.Context, v model.Voyage) (*model.Voyage, error)
	Update(ctx context.Context, v model.Voyage) (*model.Voyage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type VoyageService struct {
	repo   VoyageRepo
	events ChangePublisher
}

func NewVoyageService(repo VoyageRepo, events ChangePublisher) *VoyageService {
	return &VoyageService{repo: repo, events: events}
}

// VoyageInput carries a create/update request. Date is the raw JJ/MM/AAAA
// string from the client; it is parsed strictly, never coerced.
type VoyageInput struct {
	DriverName      string
	VehicleNumber   string
	BordereauNumber string
	GrossRevenue    float64
	Deduction       float64
	SeatCount       int
	Date            string
	AgencyID        uuid.UUID
	City            string
}

// List returns the caller's visible snapshot: everything for admins, own
// records for everyone else.
func (s *VoyageService) List(ctx context.Context, caller model.Principal) ([]model.Voyage, error) {
	if caller.IsAdmin() {
		return s.repo.ListAll(ctx)
	}
	return s.repo.ListByAgent(ctx, caller.UserID)
}

func (s *VoyageService) Get(ctx context.Context, caller model.Principal, id uuid.UUID) (*model.Voyage, error) {
	voyage, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !caller.IsAdmin() && voyage.AgentID != caller.UserID {
		return nil, ErrPermissionDenied
	}
	return voyage, nil
}

func (s *VoyageService) Create(ctx context.Context, caller model.Principal, input VoyageInput) (*model.Voyage, error) {
	voyage, err := s.validate(input)
	if err != nil {
		return nil, err
	}
	voyage.AgentID = caller.UserID

	saved, err := s.repo.Create(ctx, *voyage)
	if err != nil {
		return nil, err
	}
	s.events.Publish("voyages", "insert", saved.ID)
	return saved, nil
}

func (s *VoyageService) Update(ctx context.Context, caller model.Principal, id uuid.UUID, input VoyageInput) (*model.Voyage, error) {
	existing, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	voyage, err := s.validate(input)
	if err != nil {
		return nil, err
	}
	voyage.ID = existing.ID
	voyage.AgentID = existing.AgentID

	saved, err := s.repo.Update(ctx, *voyage)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.events.Publish("voyages", "update", saved.ID)
	return saved, nil
}

func (s *VoyageService) Delete(ctx context.Context, caller model.Principal, id uuid.UUID) error {
	if _, err := s.Get(ctx, caller, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.events.Publish("voyages", "delete", id)
	return nil
}

// validate checks the write-time invariants. A deduction above the gross
// revenue is rejected so net revenue can never go negative.
func (s *VoyageService) validate(input VoyageInput) (*model.Voyage, error) {
	if strings.TrimSpace(input.DriverName) == "" {
		return nil, fmt.Errorf("%w: nom_chauffeur is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.VehicleNumber) == "" {
		return nil, fmt.Errorf("%w: numero_vehicule is required", ErrInvalidInput)
	}
	if input.AgencyID == uuid.Nil {
		return nil, fmt.Errorf("%w: agence is required", ErrInvalidInput)
	}
	if input.GrossRevenue < 0 {
		return nil, fmt.Errorf("%w: recette_brute must be >= 0", ErrInvalidInput)
	}
	if input.Deduction < 0 {
		return nil, fmt.Errorf("%w: retenue must be >= 0", ErrInvalidInput)
	}
	if input.Deduction > input.GrossRevenue {
		return nil, fmt.Errorf("%w: retenue cannot exceed recette_brute", ErrInvalidInput)
	}
	if input.SeatCount < 0 {
		return nil, fmt.Errorf("%w: nombre_places must be >= 0", ErrInvalidInput)
	}

	date, err := stats.ParseDate(input.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be JJ/MM/AAAA", ErrInvalidInput)
	}

	return &model.Voyage{
		DriverName:      strings.TrimSpace(input.DriverName),
		VehicleNumber:   strings.TrimSpace(input.VehicleNumber),
		BordereauNumber: strings.TrimSpace(input.BordereauNumber),
		GrossRevenue:    input.GrossRevenue,
		Deduction:       input.Deduction,
		SeatCount:       input.SeatCount,
		Date:            date,
		AgencyID:        input.AgencyID,
		City:            strings.TrimSpace(input.City),
	}, nil
}
