package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// DefaultOwnerCommission is the management commission, in percent, for
// owners created without one.
var DefaultOwnerCommission = decimal.NewFromInt(10)

type Owner struct {
	Base

	Name           string          `gorm:"size:255;not null" json:"name"`
	Email          string          `gorm:"size:150;uniqueIndex" json:"email"`
	Phone          string          `gorm:"size:50" json:"phone"`
	Address        string          `gorm:"type:text" json:"address"`
	City           string          `gorm:"size:100" json:"city"`
	Country        string          `gorm:"size:100" json:"country"`
	CommissionRate decimal.Decimal `gorm:"column:commission_rate;type:decimal(5,2);default:10" json:"commission_rate"`
	PaymentDetails datatypes.JSON  `gorm:"column:payment_details" json:"payment_details,omitempty"`
	PasswordHash   *string         `gorm:"column:password_hash;size:255" json:"-"`

	Rooms []Room `gorm:"foreignKey:OwnerID" json:"rooms,omitempty"`
}

// PropertyOwnership records an owner's share of a room.
type PropertyOwnership struct {
	Base

	OwnerID         string          `gorm:"column:owner_id;type:varchar(36);not null;uniqueIndex:idx_ownership" json:"owner_id"`
	RoomID          string          `gorm:"column:room_id;type:varchar(36);not null;uniqueIndex:idx_ownership" json:"room_id"`
	SharePercentage decimal.Decimal `gorm:"column:share_percentage;type:decimal(5,2);default:100" json:"share_percentage"`
}
