package services

import (
	"errors"
	"fmt"
	"strings"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionExpired     = errors.New("session expired")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicate          = errors.New("already exists")
	ErrValidation         = errors.New("validation failed")
	ErrUnavailable        = errors.New("room is not available for the requested dates")
	ErrInUse              = errors.New("still in use")
)

// UnavailableError lists the requested dates that are already occupied.
type UnavailableError struct {
	RoomID string
	Dates  []string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("room %s is occupied on %s", e.RoomID, strings.Join(e.Dates, ", "))
}

func (e *UnavailableError) Unwrap() error { return ErrUnavailable }

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

const (
	mysqlDuplicateEntry   = 1062
	postgresUniqueViolate = "23505"
)

// translateDBError maps driver and gorm errors onto the package sentinels.
// what names the entity for the message.
func translateDBError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", what, ErrNotFound)
	}
	if isDuplicate(err) {
		return fmt.Errorf("%s %w", what, ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", what, err)
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == postgresUniqueViolate {
		return true
	}
	return false
}
