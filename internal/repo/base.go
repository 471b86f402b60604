package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base is embedded by the users, profiles, and interventions repositories
// so they share one connection-and-context access pattern.
type Base struct {
	db *gorm.DB
}

// NewBase wraps a GORM connection for embedding into a domain repository.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the connection bound to ctx so cancellation and request
// deadlines propagate into queries. A nil ctx yields the raw connection.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}
