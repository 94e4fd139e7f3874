package services

import (
	"errors"
	"testing"

	"hotel-ops/models"
)

func TestExpenseFromMap(t *testing.T) {
	t.Parallel()

	e, err := expenseFromMap(map[string]interface{}{
		"description":   "Pool chemicals",
		"amount":        "120.50",
		"category":      "maintenance",
		"property":      "Marina",
		"date":          "2024-05-01",
		"paymentMethod": "card",
	})
	if err != nil {
		t.Fatalf("expenseFromMap: %v", err)
	}
	if e.Amount.StringFixed(2) != "120.50" || e.Status != models.ExpensePaid || e.Date != "2024-05-01" {
		t.Fatalf("unexpected expense %+v", e)
	}

	pending, err := expenseFromMap(map[string]interface{}{"description": "Linen", "amount": 10, "date": "2024-05-02"})
	if err != nil || pending.Status != models.ExpensePending {
		t.Fatalf("expected pending expense, got %+v %v", pending, err)
	}

	bad := []map[string]interface{}{
		{"amount": 1, "date": "2024-05-01"},
		{"description": "x", "amount": -1, "date": "2024-05-01"},
		{"description": "x", "date": "2024-05-01"},
		{"description": "x", "amount": 1, "date": "May"},
	}
	for _, m := range bad {
		if _, err := expenseFromMap(m); !errors.Is(err, ErrValidation) {
			t.Fatalf("%v: expected ErrValidation, got %v", m, err)
		}
	}
}
