package services

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"hotel-ops/models"
)

type ExportService struct {
	Bookings *BookingService
	Expenses *ExpenseService
}

func NewExportService(bookings *BookingService, expenses *ExpenseService) *ExportService {
	return &ExportService{Bookings: bookings, Expenses: expenses}
}

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var bookingHeaders = []string{
	"Booking Number", "Guest", "Email", "Property", "Room", "Check In", "Check Out", "Status",
	"Payment Status", "Amount", "Commission", "Tourism Fee", "VAT", "Net To Owner",
	"Security Deposit", "Amount Paid", "Remaining",
}

var expenseHeaders = []string{
	"Date", "Description", "Category", "Property", "Vendor", "Payment Method", "Status", "Amount",
}

func writeSheet(w io.Writer, sheet string, headers []string, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}

	head := make([]any, len(headers))
	for i, h := range headers {
		head[i] = h
	}
	if err := sw.SetRow("A1", head); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	_, err = f.WriteTo(w)
	return err
}

// WriteBookingsXLSX writes one row per booking with its derived financials.
func WriteBookingsXLSX(w io.Writer, bookings []models.BookingView) error {
	rows := make([][]any, 0, len(bookings))
	for _, b := range bookings {
		bd := b.Breakdown
		rows = append(rows, []any{
			b.BookingNumber, b.GuestName, b.GuestEmail, b.Property, b.RoomNumber,
			b.CheckIn, b.CheckOut, b.Status, b.PaymentStatus,
			b.Amount.InexactFloat64(), bd.Commission.InexactFloat64(), bd.TourismFee.InexactFloat64(),
			bd.VAT.InexactFloat64(), bd.NetToOwner.InexactFloat64(), bd.SecurityDeposit.InexactFloat64(),
			bd.AmountPaid.InexactFloat64(), bd.RemainingBalance.InexactFloat64(),
		})
	}
	return writeSheet(w, "Bookings", bookingHeaders, rows)
}

func WriteExpensesXLSX(w io.Writer, expenses []models.Expense) error {
	rows := make([][]any, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, []any{
			e.Date, e.Description, e.Category, e.Property, e.Vendor, e.PaymentMethod,
			models.ExpenseStatus(e.PaymentMethod), e.Amount.InexactFloat64(),
		})
	}
	return writeSheet(w, "Expenses", expenseHeaders, rows)
}

func (s *ExportService) BookingsXLSX(ctx context.Context, w io.Writer, f BookingFilter) error {
	bookings, err := s.Bookings.List(ctx, f)
	if err != nil {
		return err
	}
	if err := WriteBookingsXLSX(w, bookings); err != nil {
		return fmt.Errorf("export bookings: %w", err)
	}
	return nil
}

func (s *ExportService) ExpensesXLSX(ctx context.Context, w io.Writer, f ExpenseFilter) error {
	expenses, err := s.Expenses.List(ctx, f)
	if err != nil {
		return err
	}
	if err := WriteExpensesXLSX(w, expenses); err != nil {
		return fmt.Errorf("export expenses: %w", err)
	}
	return nil
}
