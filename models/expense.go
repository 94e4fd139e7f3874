package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ExpensePaid    = "paid"
	ExpensePending = "pending"
)

type Expense struct {
	Base

	Description   string          `gorm:"size:255;not null" json:"description"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Category      string          `gorm:"size:100;index:idx_expense_property_category" json:"category"`
	Date          string          `gorm:"type:date;index" json:"date"`
	Property      string          `gorm:"size:150;index:idx_expense_property_category" json:"property"`
	Vendor        string          `gorm:"size:150" json:"vendor"`
	PaymentMethod string          `gorm:"column:payment_method;size:50" json:"payment_method"`
	Notes         string          `gorm:"type:text" json:"notes"`
	ReceiptURL    string          `gorm:"column:receipt_url;size:255" json:"receipt_url"`

	Status string `gorm:"-" json:"status"`
}

// AfterFind derives Status: an expense with a payment method has been paid.
func (e *Expense) AfterFind(tx *gorm.DB) error {
	e.Date = normaliseDate(e.Date)
	e.Status = ExpenseStatus(e.PaymentMethod)
	return nil
}

func ExpenseStatus(paymentMethod string) string {
	if strings.TrimSpace(paymentMethod) != "" {
		return ExpensePaid
	}
	return ExpensePending
}
