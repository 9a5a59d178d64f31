// Package store defines the typed outcomes surfaced by the data store so
// that handlers can map constraint violations to distinct response codes.
package store

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate indicates a unique-key violation.
	ErrDuplicate = errors.New("duplicate key")
	// ErrForeignKey indicates a referential-integrity violation, e.g. an
	// equipment assignment naming a missing personnel row or a
	// specialization row inserted without its logistics parent.
	ErrForeignKey = errors.New("referenced record does not exist")
	// ErrCheck indicates a declared value constraint was violated, e.g. a
	// non-positive salary, pension or cost.
	ErrCheck = errors.New("value constraint violated")
	// ErrAgeRange indicates the serving-personnel age trigger rejected an
	// insert because the computed age falls outside [18, 60).
	ErrAgeRange = errors.New("age must be at least 18 and under 60")
	// ErrLastAdmin indicates a mutation was rejected because it would leave
	// the system without any admin account.
	ErrLastAdmin = errors.New("cannot remove the last admin")
)

// Postgres SQLSTATE codes surfaced by lib/pq.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeRaiseException      = "P0001"
)

// MapError translates driver-level failures into the typed sentinel errors
// above. Errors that match no known SQLSTATE are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case codeUniqueViolation:
			return ErrDuplicate
		case codeForeignKeyViolation:
			return ErrForeignKey
		case codeCheckViolation:
			return ErrCheck
		case codeRaiseException:
			// The only RAISE in the schema is the serving-age trigger.
			return ErrAgeRange
		}
	}
	return err
}
