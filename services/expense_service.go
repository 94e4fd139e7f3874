package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hotel-ops/availability"
	"hotel-ops/models"
)

type ExpenseService struct {
	DB *gorm.DB
}

func NewExpenseService(db *gorm.DB) *ExpenseService {
	return &ExpenseService{DB: db}
}

type ExpenseFilter struct {
	Property string
	Category string
	From     string
	To       string
}

func (f ExpenseFilter) apply(db *gorm.DB) *gorm.DB {
	if f.Property != "" {
		db = db.Where("property = ?", f.Property)
	}
	if f.Category != "" {
		db = db.Where("category = ?", f.Category)
	}
	if f.From != "" {
		db = db.Where("date >= ?", f.From)
	}
	if f.To != "" {
		db = db.Where("date <= ?", f.To)
	}
	return db
}

const relatedExpenseLimit = 5

var expenseTextColumns = map[string][]string{
	"description":    {"description"},
	"category":       {"category"},
	"property":       {"property"},
	"vendor":         {"vendor"},
	"payment_method": {"payment_method", "paymentMethod"},
	"notes":          {"notes"},
	"receipt_url":    {"receipt_url", "receiptUrl"},
}

func (s *ExpenseService) List(ctx context.Context, f ExpenseFilter) ([]models.Expense, error) {
	expenses := []models.Expense{}
	if err := f.apply(s.DB.WithContext(ctx)).Order("date DESC, created_at DESC").Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

func (s *ExpenseService) Get(ctx context.Context, id string) (models.Expense, error) {
	var e models.Expense
	if err := s.DB.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return models.Expense{}, translateDBError(err, "expense")
	}
	return e, nil
}

// Related returns the most recent expenses sharing the property and category
// of id.
func (s *ExpenseService) Related(ctx context.Context, id string) ([]models.Expense, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	related := []models.Expense{}
	err = s.DB.WithContext(ctx).
		Where("property = ? AND category = ? AND id <> ?", e.Property, e.Category, e.ID).
		Order("date DESC, created_at DESC").
		Limit(relatedExpenseLimit).
		Find(&related).Error
	if err != nil {
		return nil, fmt.Errorf("related expenses: %w", err)
	}
	return related, nil
}

func expenseFromMap(m map[string]interface{}) (models.Expense, error) {
	e := models.Expense{
		Description:   getStringFromMap(m, "description"),
		Category:      getStringFromMap(m, "category"),
		Property:      getStringFromMap(m, "property"),
		Vendor:        getStringFromMap(m, "vendor"),
		PaymentMethod: getStringFromMap(m, "payment_method", "paymentMethod"),
		Notes:         getStringFromMap(m, "notes"),
		ReceiptURL:    getStringFromMap(m, "receipt_url", "receiptUrl"),
	}
	if e.Description == "" {
		return models.Expense{}, validationf("description is required")
	}
	amount := decimalPtrFromMap(m, "amount")
	if amount == nil || amount.IsNegative() {
		return models.Expense{}, validationf("amount must be a non-negative number")
	}
	e.Amount = *amount

	date, err := availability.ParseDate(getStringFromMap(m, "date"))
	if err != nil {
		return models.Expense{}, validationf("date: %v", err)
	}
	e.Date = availability.FormatDate(date)
	e.Status = models.ExpenseStatus(e.PaymentMethod)
	return e, nil
}

func (s *ExpenseService) Create(ctx context.Context, m map[string]interface{}) (models.Expense, error) {
	e, err := expenseFromMap(m)
	if err != nil {
		return models.Expense{}, err
	}
	if err := s.DB.WithContext(ctx).Create(&e).Error; err != nil {
		return models.Expense{}, translateDBError(err, "expense")
	}
	return e, nil
}

func (s *ExpenseService) Update(ctx context.Context, id string, m map[string]interface{}) (models.Expense, error) {
	updates := map[string]interface{}{}
	for col, keys := range expenseTextColumns {
		if hasAnyKey(m, keys...) {
			updates[col] = getStringFromMap(m, keys...)
		}
	}
	if hasAnyKey(m, "amount") {
		amount := decimalPtrFromMap(m, "amount")
		if amount == nil || amount.IsNegative() {
			return models.Expense{}, validationf("amount must be a non-negative number")
		}
		updates["amount"] = *amount
	}
	if hasAnyKey(m, "date") {
		date, err := availability.ParseDate(getStringFromMap(m, "date"))
		if err != nil {
			return models.Expense{}, validationf("date: %v", err)
		}
		updates["date"] = availability.FormatDate(date)
	}

	e, err := s.Get(ctx, id)
	if err != nil {
		return models.Expense{}, err
	}
	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(&e).Updates(updates).Error; err != nil {
			return models.Expense{}, translateDBError(err, "expense")
		}
	}
	return s.Get(ctx, id)
}

func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Expense{})
	if res.Error != nil {
		return translateDBError(res.Error, "expense")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("expense %w", ErrNotFound)
	}
	return nil
}

// Total sums the expenses matching f.
func (s *ExpenseService) Total(ctx context.Context, f ExpenseFilter) (decimal.Decimal, error) {
	expenses, err := s.List(ctx, f)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total, nil
}
