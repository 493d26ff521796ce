package attendance

import (
	"errors"

	attendanceerrors "go-attendance/internal/attendance/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapRepositoryError translates driver-level constraint violations into
// domain errors. The (employee, date, type) unique index is the backstop
// for the one-IN-one-OUT-per-day rule.
func mapRepositoryError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return attendanceerrors.ErrDuplicateRecord
	}
	return err
}
