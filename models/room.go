package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"hotel-ops/availability"
)

type Room struct {
	Base

	Number       string          `gorm:"column:number;type:varchar(50);not null;uniqueIndex:idx_room_property_number" json:"number"`
	PropertyName string          `gorm:"column:property_name;type:varchar(150);not null;uniqueIndex:idx_room_property_number" json:"property_name"`
	Type         string          `gorm:"size:100" json:"type"`
	Floor        string          `gorm:"type:varchar(10)" json:"floor"`
	MaxOccupancy int             `gorm:"column:max_occupancy;default:2" json:"max_occupancy"`
	BaseRate     decimal.Decimal `gorm:"column:base_rate;type:decimal(12,2)" json:"base_rate"`
	Status       string          `gorm:"size:32;default:available;index" json:"status"`
	Amenities    datatypes.JSON  `gorm:"column:amenities" json:"amenities,omitempty"`
	Description  string          `gorm:"type:text" json:"description"`

	OwnerID       *string    `gorm:"column:owner_id;type:varchar(36);index" json:"owner_id,omitempty"`
	LastCleanedAt *time.Time `gorm:"column:last_cleaned_at" json:"last_cleaned_at,omitempty"`
}

// Unit is the availability view of the room.
func (r Room) Unit() availability.Unit {
	return availability.Unit{
		ID:           r.ID,
		Number:       r.Number,
		Property:     r.PropertyName,
		MaxOccupancy: r.MaxOccupancy,
		BaseRate:     r.BaseRate.StringFixed(2),
		Status:       availability.UnitStatus(r.Status),
	}
}

func RoomUnits(rooms []Room) []availability.Unit {
	units := make([]availability.Unit, 0, len(rooms))
	for _, r := range rooms {
		units = append(units, r.Unit())
	}
	return units
}
