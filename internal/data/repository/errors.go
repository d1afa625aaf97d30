package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicate         = errors.New("duplicate record")
	ErrReferenced        = errors.New("record is referenced by other records")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrOutOfRange        = errors.New("value out of range")
)

// Postgres SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNumericOutOfRange   = "22003"
)

// mapPgError converts constraint violations into repository sentinels and
// leaves every other error untouched.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return errors.Join(ErrDuplicate, err)
	case pgForeignKeyViolation:
		return errors.Join(ErrReferenced, err)
	case pgNumericOutOfRange:
		return errors.Join(ErrOutOfRange, err)
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching term anywhere, with the
// LIKE wildcards inside term escaped.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

type scanner interface {
	Scan(dest ...any) error
}
