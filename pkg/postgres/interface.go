package postgres

import (
	"context"

	"gorm.io/gorm"
)

// Client is the database contract application code depends on, kept to the
// operations the worker actually issues. The Postgres type implements it;
// tests substitute fakes.
type Client interface {
	First(ctx context.Context, dest interface{}, conditions ...interface{}) error
	UpdateColumn(ctx context.Context, model interface{}, columnName string, value interface{}) (int64, error)
	Exec(ctx context.Context, sql string, values ...interface{}) (int64, error)

	// Raw GORM access for advanced use cases
	DB() *gorm.DB

	// Lifecycle management
	GracefulShutdown() error
}
