package db

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether the provided error is a unique
// constraint violation. When constraintName is given, the constraint
// must match; otherwise any unique violation qualifies. Covers the
// pgx and lib/pq drivers plus the sqlite error text used in tests.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		if pgxErr.Code != uniqueViolationCode {
			return false
		}
		return constraintName == "" || pgxErr.ConstraintName == constraintName
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if string(pqErr.Code) != uniqueViolationCode {
			return false
		}
		return constraintName == "" || pqErr.Constraint == constraintName
	}

	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") {
		return constraintName == "" || sqliteConstraintMatches(msg, constraintName)
	}
	if !strings.Contains(msg, "duplicate key value") {
		return false
	}
	return constraintName == "" || strings.Contains(msg, constraintName)
}

// sqliteConstraintMatches maps an index name onto sqlite's duplicate
// message, which reports "UNIQUE constraint failed: <table>.<column>"
// and never the index name. uq_<table>_<column> is rewritten into the
// dotted form, trying every underscore as the table/column split since
// both halves may themselves contain underscores.
func sqliteConstraintMatches(msg, constraintName string) bool {
	if strings.Contains(msg, constraintName) {
		return true
	}
	rest, ok := strings.CutPrefix(constraintName, "uq_")
	if !ok {
		return false
	}
	for i := 1; i < len(rest)-1; i++ {
		if rest[i] != '_' {
			continue
		}
		if strings.Contains(msg, rest[:i]+"."+rest[i+1:]) {
			return true
		}
	}
	return false
}

// IsUnavailable reports whether the error looks like a transient store
// failure a caller may retry, including an exceeded deadline.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "broken pipe")
}
