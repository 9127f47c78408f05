package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleAccountant Role = "agent_comptable"
	RoleAgencyHead Role = "chef_agence"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAccountant, RoleAgencyHead:
		return true
	}
	return false
}

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
	UserStatusPending  UserStatus = "pending"
)

type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	FullName     string     `gorm:"column:full_name" json:"full_name"`
	Role         Role       `json:"role"`
	Phone        *string    `json:"phone,omitempty"`
	AgencyID     *uuid.UUID `gorm:"column:agency" json:"agency,omitempty"`
	Status       UserStatus `json:"status"`
	JoinDate     time.Time  `gorm:"column:join_date" json:"join_date"`
	PasswordHash string     `gorm:"column:password_hash" json:"-"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string { return "users" }
