// Package storage declares the persistence the services depend on. Each
// entity gets its own interface (users, portfolio, notifications, chats,
// delivery jobs) and postgres implements all of them.
//
// Lookups return a nil entity and a nil error when nothing matches. Unique
// violations surface as *ConflictError.
//
//go:generate mockgen -package mockstorage -destination=mock/mockstorage.go . AllStorage,TxStorage,Storage
package storage

import "context"

// AllStorage is what a service may touch inside or outside a transaction.
type AllStorage interface {
	UserStorage
	PortfolioStorage
	NotificationStorage
	ChatStorage
	JobStorage
}

// TxStorage is bound to one transaction and is unusable after Commit or
// Rollback.
type TxStorage interface {
	AllStorage

	Commit() error
	Rollback() error
}

// Storage owns the connection pool.
type Storage interface {
	AllStorage

	Close() error

	// Begin fails with ErrAlreadyInTx on a transactional handle.
	Begin(ctx context.Context) (TxStorage, error)
	// WithTx commits when cb returns nil and rolls back otherwise. Jobs added
	// through the handle passed to cb are only picked up after the commit,
	// so a rejected registration never sends an OTP.
	WithTx(ctx context.Context, cb func(storage AllStorage) error) error
}
