package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hotel-ops/availability"
	"hotel-ops/finance"
)

// Booking is a guest reservation. Monetary fields other than Amount are
// nullable so that "never supplied" stays distinguishable from zero; the
// derived values are exposed through BookingView.
type Booking struct {
	Base

	BookingNumber string  `gorm:"column:booking_number;size:32;uniqueIndex" json:"booking_number"`
	RoomID        *string `gorm:"column:room_id;type:varchar(36);index" json:"room_id,omitempty"`
	RoomNumber    string  `gorm:"column:room_number;size:50;index:idx_booking_room_property" json:"room_number"`
	Property      string  `gorm:"column:property;size:150;index:idx_booking_room_property" json:"property"`

	GuestName     string `gorm:"column:guest_name;size:255" json:"guest_name"`
	GuestEmail    string `gorm:"column:guest_email;size:150" json:"guest_email"`
	GuestPhone    string `gorm:"column:guest_phone;size:50" json:"guest_phone"`
	GuestDocument string `gorm:"column:guest_document;size:100" json:"guest_document"`
	Adults        int    `gorm:"column:adults;default:1" json:"adults"`
	Children      int    `gorm:"column:children;default:0" json:"children"`

	CheckIn  string `gorm:"column:check_in;type:date;index" json:"check_in"`
	CheckOut string `gorm:"column:check_out;type:date;index" json:"check_out"`

	Status        string `gorm:"column:status;size:32;default:confirmed;index" json:"status"`
	PaymentStatus string `gorm:"column:payment_status;size:32;default:pending" json:"payment_status"`

	Amount          decimal.Decimal  `gorm:"column:amount;type:decimal(12,2)" json:"amount"`
	AmountPaid      *decimal.Decimal `gorm:"column:amount_paid;type:decimal(12,2)" json:"-"`
	BaseRate        *decimal.Decimal `gorm:"column:base_rate;type:decimal(12,2)" json:"-"`
	RemainingAmount *decimal.Decimal `gorm:"column:remaining_amount;type:decimal(12,2)" json:"-"`
	SecurityDeposit *decimal.Decimal `gorm:"column:security_deposit;type:decimal(12,2)" json:"-"`
	Commission      *decimal.Decimal `gorm:"column:commission;type:decimal(12,2)" json:"-"`
	TourismFee      *decimal.Decimal `gorm:"column:tourism_fee;type:decimal(12,2)" json:"-"`
	VAT             *decimal.Decimal `gorm:"column:vat;type:decimal(12,2)" json:"-"`
	NetToOwner      *decimal.Decimal `gorm:"column:net_to_owner;type:decimal(12,2)" json:"-"`

	SpecialRequests string `gorm:"column:special_requests;type:text" json:"special_requests"`
	Notes           string `gorm:"column:notes;type:text" json:"notes"`
}

// AfterFind trims driver-formatted dates (e.g. "2024-03-10T00:00:00Z") back
// to calendar dates.
func (b *Booking) AfterFind(tx *gorm.DB) error {
	b.CheckIn = normaliseDate(b.CheckIn)
	b.CheckOut = normaliseDate(b.CheckOut)
	return nil
}

func normaliseDate(raw string) string {
	t, err := availability.ParseDate(raw)
	if err != nil {
		return raw
	}
	return availability.FormatDate(t)
}

func (b Booking) Reservation() availability.Reservation {
	r := availability.Reservation{
		ID:            b.ID,
		BookingNumber: b.BookingNumber,
		RoomNumber:    b.RoomNumber,
		Property:      b.Property,
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
		Status:        availability.ReservationStatus(b.Status),
	}
	if b.RoomID != nil {
		r.UnitID = *b.RoomID
	}
	return r
}

func BookingReservations(bookings []Booking) []availability.Reservation {
	out := make([]availability.Reservation, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.Reservation())
	}
	return out
}

func (b Booking) FinanceInput() finance.Input {
	return finance.Input{
		Amount:           b.Amount,
		Commission:       b.Commission,
		TourismFee:       b.TourismFee,
		VAT:              b.VAT,
		NetToOwner:       b.NetToOwner,
		BaseRate:         b.BaseRate,
		SecurityDeposit:  b.SecurityDeposit,
		AmountPaid:       b.AmountPaid,
		RemainingBalance: b.RemainingAmount,
	}
}

// BookingView is a booking with every monetary field populated.
type BookingView struct {
	Booking
	finance.Breakdown
}

func (b Booking) View() BookingView {
	return BookingView{Booking: b, Breakdown: finance.Derive(b.FinanceInput())}
}
