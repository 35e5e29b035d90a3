// Package storage provides abstractions for persistent ledger storage.
package storage

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/sobanhassan/hisaabkitaab/internal/models"
)

var (
	// ErrFriendNotFound is returned when a friend id does not resolve
	// under the given owner.
	ErrFriendNotFound = errors.New("friend not found")
)

// Store defines the persistence operations the ledger needs. The
// abstraction allows swapping backends (SQLite, PostgreSQL, ...) without
// touching the service layer.
//
// Every friend and transaction operation is scoped by owner id; a store
// must never return another user's records.
type Store interface {
	// CreateFriend persists a new friend. ID and CreatedAt are assigned
	// by the store if unset.
	CreateFriend(ctx context.Context, friend *models.Friend) error

	// GetFriend retrieves one friend by id.
	// Returns ErrFriendNotFound if it does not exist under ownerID.
	GetFriend(ctx context.Context, ownerID, friendID string) (*models.Friend, error)

	// ListFriends returns all friends owned by ownerID in a stable
	// order. An empty slice is not an error.
	ListFriends(ctx context.Context, ownerID string) ([]*models.Friend, error)

	// DeleteFriend removes the friend and every transaction it owns.
	// Both phases run in one atomic batch; deleting transactions that
	// are already gone is a no-op, so a retried delete completes
	// cleanly. Returns ErrFriendNotFound if the friend record is absent.
	DeleteFriend(ctx context.Context, ownerID, friendID string) error

	// AppendTransaction persists txn and applies its signed amount to
	// the friend's cached balance in the same atomic batch, so
	// concurrent posts cannot lose a balance update. On return
	// txn.ID/CreatedAt are populated and friend balances reflect the
	// append. Returns ErrFriendNotFound if the friend is absent.
	AppendTransaction(ctx context.Context, ownerID string, txn *models.Transaction) error

	// ListTransactions returns the friend's transactions ordered by
	// CreatedAt descending, insertion order breaking ties.
	ListTransactions(ctx context.Context, ownerID, friendID string) ([]*models.Transaction, error)

	// SetFriendBalance overwrites the cached balance. Used by
	// reconciliation only; the regular posting path goes through
	// AppendTransaction.
	SetFriendBalance(ctx context.Context, ownerID, friendID string, balance decimal.Decimal) error

	// Close releases any resources held by the store.
	Close() error
}
