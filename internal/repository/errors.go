package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNoRoomsLeft is returned when the conditional room hold matched no row.
	ErrNoRoomsLeft = errors.New("no rooms left")
	// ErrStatusConflict is returned when a booking is not in a state the transition accepts.
	ErrStatusConflict = errors.New("booking status conflict")
)

// IsUniqueViolation recognises duplicate key errors from every supported dialect.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}

	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "SQLSTATE 23505")
}
