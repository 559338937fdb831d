package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/blogem/clocklog/models"
)

// LogRepository persists submitted log entries. It is insert-only.
type LogRepository interface {
	Create(ctx context.Context, entry *models.LogEntry) error
}

type sqliteLogRepository struct {
	db *sql.DB
}

// NewLogRepository creates a new log repository
func NewLogRepository(db *sql.DB) LogRepository {
	return &sqliteLogRepository{db: db}
}

// Create inserts a new log entry and fills in the store-assigned ID. The
// insert is the only statement, so a nil error means the row is stored.
func (r *sqliteLogRepository) Create(ctx context.Context, entry *models.LogEntry) error {
	query := `INSERT INTO log_entries (name, age) VALUES (?, ?)`

	var age sql.NullInt64
	if entry.Age != nil {
		age = sql.NullInt64{Int64: *entry.Age, Valid: true}
	}

	result, err := r.db.ExecContext(ctx, query, entry.Name, age)
	if err != nil {
		return fmt.Errorf("failed to insert log entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get log entry ID: %w", err)
	}
	entry.ID = id

	return nil
}
