package model

import (
	"time"

	"github.com/google/uuid"
)

type Agency struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     *string   `json:"email,omitempty"`
	Manager   string    `json:"manager"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Agency) TableName() string { return "agencies" }
