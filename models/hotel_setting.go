package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type HotelSetting struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"size:255" json:"name"`
	Address      string          `gorm:"type:text" json:"address"`
	Phone        string          `gorm:"size:50" json:"phone"`
	Email        string          `gorm:"size:150" json:"email"`
	Website      string          `gorm:"size:255" json:"website"`
	Logo         string          `gorm:"size:255" json:"logo"`
	DateFormat   string          `gorm:"column:date_format;size:32;default:YYYY-MM-DD" json:"date_format"`
	Currency     string          `gorm:"size:8;default:USD" json:"currency"`
	Timezone     string          `gorm:"size:64;default:UTC" json:"timezone"`
	TaxRate      decimal.Decimal `gorm:"column:tax_rate;type:decimal(5,2);default:5" json:"tax_rate"`
	CheckInTime  string          `gorm:"column:check_in_time;size:8;default:14:00" json:"check_in_time"`
	CheckOutTime string          `gorm:"column:check_out_time;size:8;default:12:00" json:"check_out_time"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
