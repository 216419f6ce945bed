package pg

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"twi-speech/internal/app/repository"
)

// DriverName is the database/sql driver registered for this dialect
const DriverName = "postgres"

// NewPostgresDB opens a PostgreSQL metadata store
func NewPostgresDB(connectionString string) (*repository.CommonDB, error) {
	db, err := sql.Open(DriverName, connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return repository.NewCommonDB(db, DriverName), nil
}
