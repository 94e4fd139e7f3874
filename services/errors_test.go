package services

import (
	"errors"
	"fmt"
	"testing"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestTranslateDBError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "not found", in: gorm.ErrRecordNotFound, want: ErrNotFound},
		{name: "mysql duplicate", in: fmt.Errorf("insert: %w", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}), want: ErrDuplicate},
		{name: "postgres duplicate", in: &pgconn.PgError{Code: "23505"}, want: ErrDuplicate},
		{name: "gorm duplicate", in: gorm.ErrDuplicatedKey, want: ErrDuplicate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := translateDBError(tt.in, "room"); !errors.Is(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}

	other := errors.New("connection refused")
	got := translateDBError(other, "room")
	if !errors.Is(got, other) || errors.Is(got, ErrNotFound) || errors.Is(got, ErrDuplicate) {
		t.Fatalf("unexpected translation %v", got)
	}
	if translateDBError(nil, "room") != nil {
		t.Fatalf("nil must stay nil")
	}
	if isDuplicate(&mysql.MySQLError{Number: 1452}) {
		t.Fatalf("foreign key failure is not a duplicate")
	}
}

func TestUnavailableError(t *testing.T) {
	t.Parallel()

	err := error(&UnavailableError{RoomID: "r1", Dates: []string{"2024-03-10", "2024-03-11"}})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable")
	}
	if err.Error() != "room r1 is occupied on 2024-03-10, 2024-03-11" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestSubjectGone(t *testing.T) {
	t.Parallel()

	if got := subjectGone(fmt.Errorf("first: %w", gorm.ErrRecordNotFound), "user"); !errors.Is(got, ErrSessionExpired) {
		t.Fatalf("missing subject must expire the session, got %v", got)
	}

	outage := errors.New("connection refused")
	got := subjectGone(outage, "owner")
	if errors.Is(got, ErrSessionExpired) {
		t.Fatalf("database failure must not look like an expired session")
	}
	if !errors.Is(got, outage) {
		t.Fatalf("expected cause to be kept, got %v", got)
	}
}
