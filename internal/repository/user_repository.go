package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbella/transvoyages/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `
	id,
	email,
	full_name,
	role,
	phone,
	agency,
	status,
	join_date,
	password_hash,
	created_at,
	updated_at
`

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Raw(`
		SELECT ` + userColumns + `
		FROM users
		ORDER BY full_name ASC
	`).Scan(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Raw(`
		SELECT `+userColumns+`
		FROM users
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&user).Error; err != nil {
		return nil, err
	}
	if user.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Raw(`
		SELECT `+userColumns+`
		FROM users
		WHERE LOWER(email) = LOWER(?)
		LIMIT 1
	`, email).Scan(&user).Error; err != nil {
		return nil, err
	}
	if user.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, u model.User) (*model.User, error) {
	var saved model.User
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO users (email, full_name, role, phone, agency, status, join_date, password_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+userColumns+`
	`,
		u.Email,
		u.FullName,
		u.Role,
		u.Phone,
		u.AgencyID,
		u.Status,
		u.JoinDate,
		u.PasswordHash,
	).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *UserRepository) Update(ctx context.Context, u model.User) (*model.User, error) {
	var saved model.User
	err := r.db.WithContext(ctx).Raw(`
		UPDATE users
		SET
			full_name = ?,
			role = ?,
			phone = ?,
			agency = ?,
			status = ?,
			updated_at = ?
		WHERE id = ?
		RETURNING `+userColumns+`
	`,
		u.FullName,
		u.Role,
		u.Phone,
		u.AgencyID,
		u.Status,
		time.Now(),
		u.ID,
	).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	if saved.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &saved, nil
}

func (r *UserRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.UserStatus) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE users SET status = ?, updated_at = NOW() WHERE id = ?
	`, status, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM users WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
