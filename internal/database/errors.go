package database

import (
	"errors"

	"github.com/lib/pq"
)

// PostgreSQL SQLSTATE codes the services care about.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNumericOutOfRange   = "22003"
)

func hasCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == code
	}
	return false
}

// IsUniqueViolation reports a unique constraint failure.
func IsUniqueViolation(err error) bool { return hasCode(err, codeUniqueViolation) }

// IsForeignKeyViolation reports a reference to a missing row.
func IsForeignKeyViolation(err error) bool { return hasCode(err, codeForeignKeyViolation) }

// IsCheckViolation reports a CHECK constraint failure, e.g. a negative price.
func IsCheckViolation(err error) bool { return hasCode(err, codeCheckViolation) }

// IsNumericOutOfRange reports a value too large for its column type.
func IsNumericOutOfRange(err error) bool { return hasCode(err, codeNumericOutOfRange) }

// IsInvalidValue reports a value the schema rejects: a failed CHECK or a
// number outside the column's range.
func IsInvalidValue(err error) bool { return IsCheckViolation(err) || IsNumericOutOfRange(err) }
