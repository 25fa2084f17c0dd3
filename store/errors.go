package store

import (
	"errors"

	"github.com/jackc/pgconn"
)

// Error taxonomy shared by the managers and the HTTP layer. Everything a
// manager returns is classified into one of these sentinels (or left as an
// opaque internal error); callers match with errors.Is.
var (
	// ErrNotFound: a Client/NewsBoard/News/Subscription lookup came up empty.
	ErrNotFound = errors.New("record not found")
	// ErrConstraintViolation: duplicate subscription pair or dangling foreign
	// key, raised by the database at commit time.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrConcurrencyConflict: a guarded update lost against a newer version.
	ErrConcurrencyConflict = errors.New("concurrency conflict")
	// ErrStorageUnavailable: a container or object operation against the
	// asset store failed. Never retried.
	ErrStorageUnavailable = errors.New("asset storage unavailable")
)

// Postgres SQLSTATE codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation, e.g. inserting the same (client, board) subscription pair twice.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsForeignKeyViolation reports whether err is a Postgres foreign key
// violation, e.g. subscribing a client that does not exist.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}
