package catalog

import (
	"errors"
	"fmt"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Sentinel errors for the catalog's failure modes. Lookups that find
// nothing return (nil, nil) or an empty slice, never an error.
var (
	// ErrValidation indicates malformed input rejected before it reached storage
	ErrValidation = errors.New("validation failed")

	// ErrConstraint indicates a primary-key or foreign-key violation
	ErrConstraint = errors.New("constraint violated")

	// ErrStorage indicates an engine-level I/O or lock failure
	ErrStorage = errors.New("storage failure")
)

// classify maps a driver error onto the catalog's error taxonomy.
// Constraint violations (extended result codes whose primary code is
// SQLITE_CONSTRAINT) become ErrConstraint; everything else is ErrStorage.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var se *sqlite.Error
	if errors.As(err, &se) && se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return fmt.Errorf("%w: %s: %v", ErrConstraint, op, err)
	}

	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}
