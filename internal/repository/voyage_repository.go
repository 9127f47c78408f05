package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbella/transvoyages/internal/model"
)

type VoyageRepository struct {
	db *gorm.DB
}

func NewVoyageRepository(db *gorm.DB) *VoyageRepository {
	return &VoyageRepository{db: db}
}

const voyageColumns = `
	id,
	nom_chauffeur,
	numero_vehicule,
	numero_bordereau,
	recette_brute,
	retenue,
	nombre_places,
	date,
	agence,
	ville,
	agent_id,
	created_at,
	updated_at
`

// ListAll returns the full snapshot, newest first.
func (r *VoyageRepository) ListAll(ctx context.Context) ([]model.Voyage, error) {
	var voyages []model.Voyage
	if err := r.db.WithContext(ctx).Raw(`
		SELECT ` + voyageColumns + `
		FROM voyages
		ORDER BY date DESC, created_at DESC
	`).Scan(&voyages).Error; err != nil {
		return nil, err
	}
	return voyages, nil
}

// ListByAgent scopes the snapshot to one recording agent.
func (r *VoyageRepository) ListByAgent(ctx context.Context, agentID uuid.UUID) ([]model.Voyage, error) {
	var voyages []model.Voyage
	if err := r.db.WithContext(ctx).Raw(`
		SELECT `+voyageColumns+`
		FROM voyages
		WHERE agent_id = ?
		ORDER BY date DESC, created_at DESC
	`, agentID).Scan(&voyages).Error; err != nil {
		return nil, err
	}
	return voyages, nil
}

func (r *VoyageRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Voyage, error) {
	var voyage model.Voyage
	if err := r.db.WithContext(ctx).Raw(`
		SELECT `+voyageColumns+`
		FROM voyages
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&voyage).Error; err != nil {
		return nil, err
	}
	if voyage.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &voyage, nil
}

func (r *VoyageRepository) Create(ctx context.Context, v model.Voyage) (*model.Voyage, error) {
	var saved model.Voyage
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO voyages (
			nom_chauffeur,
			numero_vehicule,
			numero_bordereau,
			recette_brute,
			retenue,
			nombre_places,
			date,
			agence,
			ville,
			agent_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+voyageColumns+`
	`,
		v.DriverName,
		v.VehicleNumber,
		v.BordereauNumber,
		v.GrossRevenue,
		v.Deduction,
		v.SeatCount,
		v.Date,
		v.AgencyID,
		v.City,
		v.AgentID,
	).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *VoyageRepository) Update(ctx context.Context, v model.Voyage) (*model.Voyage, error) {
	var saved model.Voyage
	err := r.db.WithContext(ctx).Raw(`
		UPDATE voyages
		SET
			nom_chauffeur = ?,
			numero_vehicule = ?,
			numero_bordereau = ?,
			recette_brute = ?,
			retenue = ?,
			nombre_places = ?,
			date = ?,
			agence = ?,
			ville = ?,
			updated_at = ?
		WHERE id = ?
		RETURNING `+voyageColumns+`
	`,
		v.DriverName,
		v.VehicleNumber,
		v.BordereauNumber,
		v.GrossRevenue,
		v.Deduction,
		v.SeatCount,
		v.Date,
		v.AgencyID,
		v.City,
		time.Now(),
		v.ID,
	).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	if saved.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &saved, nil
}

func (r *VoyageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM voyages WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
