package services

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"hotel-ops/models"
)

func TestWriteBookingsXLSX(t *testing.T) {
	t.Parallel()

	b := models.Booking{
		BookingNumber: "BK-0000ABCD",
		GuestName:     "Ada Lovelace",
		Property:      "Marina",
		RoomNumber:    "101",
		CheckIn:       "2024-03-10",
		CheckOut:      "2024-03-12",
		Status:        "confirmed",
		Amount:        decimal.NewFromInt(1000),
	}

	var buf bytes.Buffer
	if err := WriteBookingsXLSX(&buf, []models.BookingView{b.View()}); err != nil {
		t.Fatalf("WriteBookingsXLSX: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Bookings")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header and one row, got %d rows", len(rows))
	}
	if rows[0][0] != "Booking Number" || rows[1][0] != "BK-0000ABCD" {
		t.Fatalf("unexpected first column %q %q", rows[0][0], rows[1][0])
	}
	if rows[1][10] != "100" || rows[1][13] != "820" {
		t.Fatalf("unexpected derived cells commission=%q net=%q", rows[1][10], rows[1][13])
	}
}

func TestWriteExpensesXLSX(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := WriteExpensesXLSX(&buf, []models.Expense{
		{Date: "2024-05-01", Description: "Linen", Amount: decimal.NewFromInt(40)},
		{Date: "2024-05-02", Description: "Paint", Amount: decimal.NewFromInt(90), PaymentMethod: "cash"},
	})
	if err != nil {
		t.Fatalf("WriteExpensesXLSX: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Expenses")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 || rows[1][6] != "pending" || rows[2][6] != "paid" {
		t.Fatalf("unexpected rows %v", rows)
	}
}
