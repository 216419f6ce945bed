package repository

import (
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	apperrors "twi-speech/internal/app/errors"
)

// ErrDuplicateSpeaker is returned when a speaker insert violates the participant code constraint
var ErrDuplicateSpeaker = apperrors.NewKind(apperrors.KindMetadata, "speaker already exists")

// utc normalises t before it is written. SQLite stores timestamps as text, so
// mixed offsets would break ORDER BY.
func utc(t time.Time) time.Time {
	return t.UTC()
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// CommonDB provides shared database functionality
type CommonDB struct {
	db           *sql.DB
	driverName   string
	placeholders PlaceholderFunc
}

// PlaceholderFunc generates parameter placeholders for different SQL dialects
type PlaceholderFunc func(n int) string

// NewCommonDB creates a new CommonDB instance
func NewCommonDB(db *sql.DB, driverName string) *CommonDB {
	var placeholders PlaceholderFunc

	switch driverName {
	case "sqlite3":
		placeholders = func(n int) string { return "?" }
	case "postgres":
		placeholders = func(n int) string { return fmt.Sprintf("$%d", n) }
	default:
		placeholders = func(n int) string { return "?" }
	}

	return &CommonDB{
		db:           db,
		driverName:   driverName,
		placeholders: placeholders,
	}
}

// placeholderList returns placeholders for parameters from..from+n-1
func (c *CommonDB) placeholderList(from, n int) string {
	params := make([]string, n)
	for i := 0; i < n; i++ {
		params[i] = c.placeholders(from + i)
	}
	return strings.Join(params, ", ")
}

// pageClause renders LIMIT/OFFSET. A non-positive limit means all rows.
func (c *CommonDB) pageClause(skip, limit int) string {
	if skip < 0 {
		skip = 0
	}
	switch {
	case limit > 0:
		return fmt.Sprintf(" LIMIT %d OFFSET %d", limit, skip)
	case skip == 0:
		return ""
	case c.driverName == "postgres":
		return fmt.Sprintf(" OFFSET %d", skip)
	default:
		return fmt.Sprintf(" LIMIT -1 OFFSET %d", skip)
	}
}

// Close closes the database connection
func (c *CommonDB) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// DB returns the underlying database connection
func (c *CommonDB) DB() *sql.DB {
	return c.db
}

// DriverName returns the SQL dialect in use
func (c *CommonDB) DriverName() string {
	return c.driverName
}

// IsUniqueViolation reports whether err is a unique constraint failure from either driver
func IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if stderrors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// IsDuplicate reports whether err is ErrDuplicateSpeaker
func IsDuplicate(err error) bool {
	return stderrors.Is(err, ErrDuplicateSpeaker)
}
