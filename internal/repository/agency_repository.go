package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbella/transvoyages/internal/model"
)

type AgencyRepository struct {
	db *gorm.DB
}

func NewAgencyRepository(db *gorm.DB) *AgencyRepository {
	return &AgencyRepository{db: db}
}

func (r *AgencyRepository) List(ctx context.Context) ([]model.Agency, error) {
	var agencies []model.Agency
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, address, phone, email, manager, created_at, updated_at
		FROM agencies
		ORDER BY name ASC
	`).Scan(&agencies).Error; err != nil {
		return nil, err
	}
	return agencies, nil
}

func (r *AgencyRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Agency, error) {
	var agency model.Agency
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, address, phone, email, manager, created_at, updated_at
		FROM agencies
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&agency).Error; err != nil {
		return nil, err
	}
	if agency.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &agency, nil
}

func (r *AgencyRepository) Create(ctx context.Context, a model.Agency) (*model.Agency, error) {
	var saved model.Agency
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO agencies (name, address, phone, email, manager)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, name, address, phone, email, manager, created_at, updated_at
	`, a.Name, a.Address, a.Phone, a.Email, a.Manager).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *AgencyRepository) Update(ctx context.Context, a model.Agency) (*model.Agency, error) {
	var saved model.Agency
	err := r.db.WithContext(ctx).Raw(`
		UPDATE agencies
		SET name = ?, address = ?, phone = ?, email = ?, manager = ?, updated_at = ?
		WHERE id = ?
		RETURNING id, name, address, phone, email, manager, created_at, updated_at
	`, a.Name, a.Address, a.Phone, a.Email, a.Manager, time.Now(), a.ID).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	if saved.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &saved, nil
}

func (r *AgencyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM agencies WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
