package postgres

import (
	"context"

	"gorm.io/gorm"
)

// DB returns the active *gorm.DB. The pointer is snapshotted atomically, so
// a reconnect never hands callers a half-swapped connection.
func (p *Postgres) DB() *gorm.DB {
	return p.client.Load()
}

// First retrieves the first record matching the given conditions into dest.
// Returns gorm.ErrRecordNotFound if no record matches.
func (p *Postgres) First(ctx context.Context, dest interface{}, conditions ...interface{}) error {
	return p.DB().WithContext(ctx).First(dest, conditions...).Error
}

// UpdateColumn updates a single column on the records matching model.
// Returns the number of affected rows.
func (p *Postgres) UpdateColumn(ctx context.Context, model interface{}, columnName string, value interface{}) (int64, error) {
	res := p.DB().WithContext(ctx).Model(model).Update(columnName, value)
	return res.RowsAffected, res.Error
}

// Exec runs a raw SQL statement. Returns the number of affected rows.
func (p *Postgres) Exec(ctx context.Context, sql string, values ...interface{}) (int64, error) {
	res := p.DB().WithContext(ctx).Exec(sql, values...)
	return res.RowsAffected, res.Error
}
