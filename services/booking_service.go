package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-ops/availability"
	"hotel-ops/clock"
	"hotel-ops/finance"
	"hotel-ops/models"
)

type BookingService struct {
	DB    *gorm.DB
	Clock clock.Clock
	Log   *zap.Logger
}

func NewBookingService(db *gorm.DB, clk clock.Clock, log *zap.Logger) *BookingService {
	return &BookingService{DB: db, Clock: clk, Log: log}
}

// BookingInput is a reservation request. Money keeps absent fields nil so
// only explicitly supplied values are stored.
type BookingInput struct {
	RoomID     string
	RoomNumber string
	Property   string

	GuestName     string
	GuestEmail    string
	GuestPhone    string
	GuestDocument string
	Adults        int
	Children      int

	CheckIn  string
	CheckOut string
	Status   string

	SpecialRequests string
	Notes           string

	Money finance.Input
}

// BookingInputFromMap reads a loosely typed request body. Both camelCase and
// snake_case keys are accepted.
func BookingInputFromMap(m map[string]interface{}) BookingInput {
	return BookingInput{
		RoomID:          getStringFromMap(m, "room_id", "roomId"),
		RoomNumber:      getStringFromMap(m, "room_number", "roomNumber", "room"),
		Property:        getStringFromMap(m, "property", "property_name", "propertyName"),
		GuestName:       getStringFromMap(m, "guest_name", "guestName"),
		GuestEmail:      getStringFromMap(m, "guest_email", "guestEmail", "email"),
		GuestPhone:      getStringFromMap(m, "guest_phone", "guestPhone", "phone"),
		GuestDocument:   getStringFromMap(m, "guest_document", "guestDocument", "document"),
		Adults:          getIntFromMap(m, 1, "adults"),
		Children:        getIntFromMap(m, 0, "children"),
		CheckIn:         getStringFromMap(m, "check_in", "checkIn"),
		CheckOut:        getStringFromMap(m, "check_out", "checkOut"),
		Status:          getStringFromMap(m, "status"),
		SpecialRequests: getStringFromMap(m, "special_requests", "specialRequests"),
		Notes:           getStringFromMap(m, "notes"),
		Money:           finance.FromMap(m),
	}
}

type BookingFilter struct {
	Status   string
	Property string
	RoomIDs  []string
	// From and To bound the stay: bookings overlapping [From, To] match.
	From string
	To   string

	CheckInOn  string
	CheckOutOn string
}

func (f BookingFilter) apply(db *gorm.DB) *gorm.DB {
	if f.Status != "" {
		db = db.Where("status = ?", strings.ToLower(f.Status))
	}
	if f.Property != "" {
		db = db.Where("property = ?", f.Property)
	}
	if f.RoomIDs != nil {
		db = db.Where("room_id IN ?", nonEmpty(f.RoomIDs))
	}
	if f.From != "" {
		db = db.Where("check_out > ?", f.From)
	}
	if f.To != "" {
		db = db.Where("check_in <= ?", f.To)
	}
	if f.CheckInOn != "" {
		db = db.Where("check_in = ?", f.CheckInOn)
	}
	if f.CheckOutOn != "" {
		db = db.Where("check_out = ?", f.CheckOutOn)
	}
	return db
}

// nonEmpty keeps IN clauses valid for an empty id set.
func nonEmpty(ids []string) []string {
	if len(ids) == 0 {
		return []string{""}
	}
	return ids
}

func views(bookings []models.Booking) []models.BookingView {
	out := make([]models.BookingView, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.View())
	}
	return out
}

// List returns bookings newest first with derived financials.
func (s *BookingService) List(ctx context.Context, f BookingFilter) ([]models.BookingView, error) {
	var bookings []models.Booking
	if err := f.apply(s.DB.WithContext(ctx)).Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return views(bookings), nil
}

func (s *BookingService) Recent(ctx context.Context, limit int) ([]models.BookingView, error) {
	if limit <= 0 || limit > 100 {
		limit = 5
	}
	var bookings []models.Booking
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("recent bookings: %w", err)
	}
	return views(bookings), nil
}

func (s *BookingService) Get(ctx context.Context, id string) (models.BookingView, error) {
	var b models.Booking
	if err := s.DB.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return models.BookingView{}, translateDBError(err, "booking")
	}
	return b.View(), nil
}

func (s *BookingService) GetByNumber(ctx context.Context, number string) (models.BookingView, error) {
	var b models.Booking
	err := s.DB.WithContext(ctx).First(&b, "booking_number = ?", strings.ToUpper(strings.TrimSpace(number))).Error
	if err != nil {
		return models.BookingView{}, translateDBError(err, "booking")
	}
	return b.View(), nil
}

func newBookingNumber() string {
	id := uuid.New()
	return "BK-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}

func parseStay(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := availability.ParseDate(checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, validationf("check_in: %v", err)
	}
	out, err := availability.ParseDate(checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, validationf("check_out: %v", err)
	}
	if !out.After(in) {
		return time.Time{}, time.Time{}, validationf("check_out must be after check_in")
	}
	return in, out, nil
}

func parseBookingStatus(raw string, def availability.ReservationStatus) (availability.ReservationStatus, error) {
	if strings.TrimSpace(raw) == "" {
		return def, nil
	}
	st, ok := availability.ParseReservationStatus(raw)
	if !ok {
		return "", fmt.Errorf("%w: booking status %q", ErrInvalidStatus, raw)
	}
	return st, nil
}

// lockRoom resolves the target room by id, or by property and number, and
// takes a row lock so concurrent bookings for it serialise.
func lockRoom(tx *gorm.DB, roomID, property, number string) (models.Room, error) {
	var room models.Room
	q := tx.Clauses(clause.Locking{Strength: "UPDATE"})
	var err error
	switch {
	case roomID != "":
		err = q.First(&room, "id = ?", roomID).Error
	case property != "" && number != "":
		err = q.Where("property_name = ? AND number = ?", property, number).First(&room).Error
	default:
		return models.Room{}, validationf("room_id or property and room_number are required")
	}
	if err != nil {
		return models.Room{}, translateDBError(err, "room")
	}
	return room, nil
}

// conflictingDates reports the nights of [in, out) on which room is already
// occupied by bookings other than excludeID.
func conflictingDates(room models.Room, bookings []models.Booking, in, out time.Time, excludeID string, log *zap.Logger) ([]string, error) {
	others := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.ID != excludeID {
			others = append(others, b)
		}
	}
	w, err := availability.ComputeUnitAvailability(
		room.Unit(),
		models.BookingReservations(others),
		in,
		out.AddDate(0, 0, -1),
		availability.WithSkipHandler(logSkipped(log)),
	)
	if err != nil {
		return nil, err
	}
	return w.OccupiedDates, nil
}

func logSkipped(log *zap.Logger) func(availability.MalformedReservation) {
	return func(m availability.MalformedReservation) {
		log.Warn("skipping malformed reservation",
			zap.String("id", m.Reservation.ID),
			zap.String("booking_number", m.Reservation.BookingNumber),
			zap.String("reason", m.Reason),
			zap.Error(m.Err),
		)
	}
}

func (s *BookingService) ensureAvailable(tx *gorm.DB, room models.Room, in, out time.Time, excludeID string) error {
	var existing []models.Booking
	err := tx.Where("(room_id = ? OR (room_id IS NULL AND room_number = ? AND property = ?))", room.ID, room.Number, room.PropertyName).
		Where("check_in < ? AND check_out > ?", availability.FormatDate(out), availability.FormatDate(in)).
		Find(&existing).Error
	if err != nil {
		return fmt.Errorf("load overlapping bookings: %w", err)
	}
	dates, err := conflictingDates(room, existing, in, out, excludeID, s.Log)
	if err != nil {
		return err
	}
	if len(dates) > 0 {
		return &UnavailableError{RoomID: room.ID, Dates: dates}
	}
	return nil
}

func paymentStatusFor(money finance.Input) string {
	b := finance.Derive(money)
	return finance.PaymentStatus(money.Amount, b.AmountPaid)
}

// Create books a room. Dates that overlap an existing non-cancelled stay on
// the same room are rejected with an UnavailableError.
func (s *BookingService) Create(ctx context.Context, in BookingInput) (models.BookingView, error) {
	if strings.TrimSpace(in.GuestName) == "" {
		return models.BookingView{}, validationf("guest_name is required")
	}
	checkIn, checkOut, err := parseStay(in.CheckIn, in.CheckOut)
	if err != nil {
		return models.BookingView{}, err
	}
	status, err := parseBookingStatus(in.Status, availability.StatusConfirmed)
	if err != nil {
		return models.BookingView{}, err
	}
	if in.Money.Amount.IsNegative() {
		return models.BookingView{}, validationf("amount must not be negative")
	}
	if in.Adults <= 0 {
		in.Adults = 1
	}

	booking := models.Booking{
		GuestName:       strings.TrimSpace(in.GuestName),
		GuestEmail:      in.GuestEmail,
		GuestPhone:      in.GuestPhone,
		GuestDocument:   in.GuestDocument,
		Adults:          in.Adults,
		Children:        in.Children,
		CheckIn:         availability.FormatDate(checkIn),
		CheckOut:        availability.FormatDate(checkOut),
		Status:          string(status),
		PaymentStatus:   paymentStatusFor(in.Money),
		Amount:          in.Money.Amount,
		AmountPaid:      in.Money.AmountPaid,
		BaseRate:        in.Money.BaseRate,
		RemainingAmount: in.Money.RemainingBalance,
		SecurityDeposit: in.Money.SecurityDeposit,
		Commission:      in.Money.Commission,
		TourismFee:      in.Money.TourismFee,
		VAT:             in.Money.VAT,
		NetToOwner:      in.Money.NetToOwner,
		SpecialRequests: in.SpecialRequests,
		Notes:           in.Notes,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room, err := lockRoom(tx, in.RoomID, in.Property, in.RoomNumber)
		if err != nil {
			return err
		}
		booking.RoomID = &room.ID
		booking.RoomNumber = room.Number
		booking.Property = room.PropertyName

		if status.Occupies() {
			if err := s.ensureAvailable(tx, room, checkIn, checkOut, ""); err != nil {
				return err
			}
		}

		booking.BookingNumber = newBookingNumber()
		if err := tx.Create(&booking).Error; err != nil {
			return translateDBError(err, "booking")
		}
		return nil
	})
	if err != nil {
		return models.BookingView{}, err
	}

	s.Log.Info("booking created",
		zap.String("booking_number", booking.BookingNumber),
		zap.String("room_id", *booking.RoomID),
		zap.String("check_in", booking.CheckIn),
		zap.String("check_out", booking.CheckOut),
	)
	return booking.View(), nil
}

var bookingMoneyColumns = map[string][]string{
	"amount":           {"amount"},
	"amount_paid":      {"amount_paid", "amountPaid"},
	"base_rate":        {"base_rate", "baseRate"},
	"remaining_amount": {"remaining_amount", "remainingAmount", "pendingAmount"},
	"security_deposit": {"security_deposit", "securityDeposit"},
	"commission":       {"commission"},
	"tourism_fee":      {"tourism_fee", "tourismFee"},
	"vat":              {"vat"},
	"net_to_owner":     {"net_to_owner", "netToOwner"},
}

var bookingTextColumns = map[string][]string{
	"guest_name":       {"guest_name", "guestName"},
	"guest_email":      {"guest_email", "guestEmail"},
	"guest_phone":      {"guest_phone", "guestPhone"},
	"guest_document":   {"guest_document", "guestDocument"},
	"special_requests": {"special_requests", "specialRequests"},
	"notes":            {"notes"},
}

// Update applies a partial update. Changing dates or room re-runs the
// availability check against the room's other bookings.
func (s *BookingService) Update(ctx context.Context, id string, m map[string]interface{}) (models.BookingView, error) {
	var out models.Booking
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Booking
		if err := tx.First(&b, "id = ?", id).Error; err != nil {
			return translateDBError(err, "booking")
		}

		updates := map[string]interface{}{}
		for col, keys := range bookingTextColumns {
			if hasAnyKey(m, keys...) {
				updates[col] = getStringFromMap(m, keys...)
			}
		}
		if hasAnyKey(m, "adults") {
			updates["adults"] = getIntFromMap(m, b.Adults, "adults")
		}
		if hasAnyKey(m, "children") {
			updates["children"] = getIntFromMap(m, b.Children, "children")
		}
		money := b.FinanceInput()
		for col, keys := range bookingMoneyColumns {
			if !hasAnyKey(m, keys...) {
				continue
			}
			v := decimalPtrFromMap(m, keys...)
			if col == "amount" {
				if v == nil || v.IsNegative() {
					return validationf("amount must be a non-negative number")
				}
				money.Amount = *v
				updates[col] = *v
				continue
			}
			updates[col] = v
			setMoneyField(&money, col, v)
		}

		status, err := parseBookingStatus(getStringFromMap(m, "status"), availability.ReservationStatus(b.Status))
		if err != nil {
			return err
		}
		if hasAnyKey(m, "status") {
			updates["status"] = string(status)
		}

		checkIn := getStringFromMap(m, "check_in", "checkIn")
		if checkIn == "" {
			checkIn = b.CheckIn
		}
		checkOut := getStringFromMap(m, "check_out", "checkOut")
		if checkOut == "" {
			checkOut = b.CheckOut
		}
		roomID := getStringFromMap(m, "room_id", "roomId")
		currentRoom := ""
		if b.RoomID != nil {
			currentRoom = *b.RoomID
		}
		if roomID == "" {
			roomID = currentRoom
		}

		datesChanged := checkIn != b.CheckIn || checkOut != b.CheckOut
		roomChanged := roomID != currentRoom
		reactivated := !availability.ReservationStatus(b.Status).Occupies() && status.Occupies()
		if datesChanged || roomChanged || reactivated {
			inDate, outDate, err := parseStay(checkIn, checkOut)
			if err != nil {
				return err
			}
			room, err := lockRoom(tx, roomID, b.Property, b.RoomNumber)
			if err != nil {
				return err
			}
			if status.Occupies() {
				if err := s.ensureAvailable(tx, room, inDate, outDate, b.ID); err != nil {
					return err
				}
			}
			updates["check_in"] = availability.FormatDate(inDate)
			updates["check_out"] = availability.FormatDate(outDate)
			updates["room_id"] = room.ID
			updates["room_number"] = room.Number
			updates["property"] = room.PropertyName
		}

		updates["payment_status"] = paymentStatusFor(money)
		if err := tx.Model(&b).Updates(updates).Error; err != nil {
			return translateDBError(err, "booking")
		}
		if err := tx.First(&out, "id = ?", id).Error; err != nil {
			return err
		}
		if hasAnyKey(m, "status") && status != availability.ReservationStatus(b.Status) {
			return s.applyRoomStatus(tx, out.RoomID, status)
		}
		return nil
	})
	if err != nil {
		return models.BookingView{}, err
	}
	return out.View(), nil
}

func setMoneyField(in *finance.Input, col string, v *decimal.Decimal) {
	switch col {
	case "amount_paid":
		in.AmountPaid = v
	case "base_rate":
		in.BaseRate = v
	case "remaining_amount":
		in.RemainingBalance = v
	case "security_deposit":
		in.SecurityDeposit = v
	case "commission":
		in.Commission = v
	case "tourism_fee":
		in.TourismFee = v
	case "vat":
		in.VAT = v
	case "net_to_owner":
		in.NetToOwner = v
	}
}

// roomStatusAfter is the room status implied by a booking entering status,
// if any.
func roomStatusAfter(status availability.ReservationStatus) (availability.UnitStatus, bool) {
	switch status {
	case availability.StatusCheckedIn:
		return availability.UnitOccupied, true
	case availability.StatusCheckedOut:
		return availability.UnitMaintenance, true
	}
	return "", false
}

// applyRoomStatus updates the booked room when status implies a room state.
// A room that no longer exists is ignored.
func (s *BookingService) applyRoomStatus(tx *gorm.DB, roomID *string, status availability.ReservationStatus) error {
	roomStatus, ok := roomStatusAfter(status)
	if !ok || roomID == nil {
		return nil
	}
	if err := setRoomStatus(tx, *roomID, string(roomStatus), s.Clock); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

// UpdateStatus moves a booking through its lifecycle. Checking in marks the
// room occupied; checking out leaves it for housekeeping.
func (s *BookingService) UpdateStatus(ctx context.Context, id, raw string) (models.BookingView, error) {
	status, ok := availability.ParseReservationStatus(raw)
	if !ok {
		return models.BookingView{}, fmt.Errorf("%w: booking status %q", ErrInvalidStatus, raw)
	}

	var out models.Booking
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Booking
		if err := tx.First(&b, "id = ?", id).Error; err != nil {
			return translateDBError(err, "booking")
		}

		if !availability.ReservationStatus(b.Status).Occupies() && status.Occupies() && b.RoomID != nil {
			in, outDate, err := parseStay(b.CheckIn, b.CheckOut)
			if err != nil {
				return err
			}
			room, err := lockRoom(tx, *b.RoomID, "", "")
			if err != nil {
				return err
			}
			if err := s.ensureAvailable(tx, room, in, outDate, b.ID); err != nil {
				return err
			}
		}

		if err := tx.Model(&b).Update("status", string(status)).Error; err != nil {
			return fmt.Errorf("update booking status: %w", err)
		}
		if err := s.applyRoomStatus(tx, b.RoomID, status); err != nil {
			return err
		}
		return tx.First(&out, "id = ?", id).Error
	})
	if err != nil {
		return models.BookingView{}, err
	}

	s.Log.Info("booking status changed", zap.String("booking_number", out.BookingNumber), zap.String("status", out.Status))
	return out.View(), nil
}

func (s *BookingService) Delete(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Booking{})
	if res.Error != nil {
		return translateDBError(res.Error, "booking")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("booking %w", ErrNotFound)
	}
	return nil
}

func (s *BookingService) today() string {
	return availability.FormatDate(clock.Today(s.Clock))
}

// TodayCheckIns lists confirmed bookings arriving today. A nil roomIDs
// means every room.
func (s *BookingService) TodayCheckIns(ctx context.Context, roomIDs []string) ([]models.BookingView, error) {
	return s.List(ctx, BookingFilter{
		Status:    string(availability.StatusConfirmed),
		RoomIDs:   roomIDs,
		CheckInOn: s.today(),
	})
}

// TodayCheckOuts lists checked-in bookings departing today.
func (s *BookingService) TodayCheckOuts(ctx context.Context, roomIDs []string) ([]models.BookingView, error) {
	return s.List(ctx, BookingFilter{
		Status:     string(availability.StatusCheckedIn),
		RoomIDs:    roomIDs,
		CheckOutOn: s.today(),
	})
}
