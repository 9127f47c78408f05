package model

import (
	"time"

	"github.com/google/uuid"
)

// Voyage is one recorded bus departure. Column names follow the mobile
// client's schema (French); Go field names are the canonical ones.
type Voyage struct {
	ID              uuid.UUID `json:"id"`
	DriverName      string    `gorm:"column:nom_chauffeur" json:"nom_chauffeur"`
	VehicleNumber   string    `gorm:"column:numero_vehicule" json:"numero_vehicule"`
	BordereauNumber string    `gorm:"column:numero_bordereau" json:"numero_bordereau"`
	GrossRevenue    float64   `gorm:"column:recette_brute" json:"recette_brute"`
	Deduction       float64   `gorm:"column:retenue" json:"retenue"`
	SeatCount       int       `gorm:"column:nombre_places" json:"nombre_places"`
	Date            time.Time `gorm:"column:date" json:"date"`
	AgencyID        uuid.UUID `gorm:"column:agence" json:"agence"`
	City            string    `gorm:"column:ville" json:"ville"`
	AgentID         uuid.UUID `gorm:"column:agent_id" json:"agent_id"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Voyage) TableName() string { return "voyages" }

// NetRevenue is always derived, never stored.
func (v Voyage) NetRevenue() float64 { return v.GrossRevenue - v.Deduction }
