// Package ledger implements the balance ledger: friends, their
// transaction logs, and the invariant that a friend's cached balance
// equals the signed sum of their transactions.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sobanhassan/hisaabkitaab/internal/models"
	"github.com/sobanhassan/hisaabkitaab/internal/storage"
)

// Service orchestrates friend creation, transaction posting, balance
// maintenance and cascading friend deletion on top of a storage.Store.
//
// Every method requires the authenticated owner id; the service performs
// no work without one.
type Service struct {
	store storage.Store
}

// NewService creates a ledger service backed by the given store.
func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// ListFriends returns all of the owner's friends. An empty ledger yields
// an empty slice, not an error.
func (s *Service) ListFriends(ctx context.Context, ownerID string) ([]*models.Friend, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	return s.store.ListFriends(ctx, ownerID)
}

// GetFriend looks up one friend by id.
func (s *Service) GetFriend(ctx context.Context, ownerID, friendID string) (*models.Friend, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	return s.store.GetFriend(ctx, ownerID, friendID)
}

// AddFriend creates a friend with a zero balance and an empty transaction
// log. The name is trimmed; a blank name is rejected.
func (s *Service) AddFriend(ctx context.Context, ownerID, name string) (*models.Friend, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: friend name must not be empty", ErrInvalidInput)
	}

	friend := &models.Friend{
		OwnerID: ownerID,
		Name:    name,
		Balance: decimal.Zero,
	}
	if err := s.store.CreateFriend(ctx, friend); err != nil {
		return nil, err
	}

	slog.Info("Friend added", "owner_id", ownerID, "friend_id", friend.ID, "name", friend.Name)
	return friend, nil
}

// DeleteFriend removes the friend and every transaction it owns. The
// store runs both phases atomically and the transaction phase is
// idempotent, so a retry after a partial failure converges to the same
// terminal state: friend absent, zero transactions remaining.
func (s *Service) DeleteFriend(ctx context.Context, ownerID, friendID string) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	if err := s.store.DeleteFriend(ctx, ownerID, friendID); err != nil {
		return err
	}
	slog.Info("Friend deleted", "owner_id", ownerID, "friend_id", friendID)
	return nil
}

// PostTransaction validates and appends a transaction to the friend's
// log. The append and the balance update happen in one atomic store
// operation, so the balance invariant holds immediately afterwards.
// Rejected input never reaches the store.
func (s *Service) PostTransaction(ctx context.Context, ownerID, friendID string, amount decimal.Decimal, description string, direction models.Direction) (*models.Transaction, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidInput, amount)
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("%w: description must not be empty", ErrInvalidInput)
	}
	if !direction.Valid() {
		return nil, fmt.Errorf("%w: unknown direction %q", ErrInvalidInput, direction)
	}

	txn := &models.Transaction{
		FriendID:    friendID,
		Amount:      amount,
		Description: description,
		Direction:   direction,
	}
	if err := s.store.AppendTransaction(ctx, ownerID, txn); err != nil {
		return nil, err
	}

	slog.Info("Transaction posted",
		"owner_id", ownerID,
		"friend_id", friendID,
		"transaction_id", txn.ID,
		"direction", txn.Direction,
		"amount", txn.Amount,
	)
	return txn, nil
}

// ListTransactions returns the friend's transactions ordered newest
// first. A deleted or unknown friend yields ErrFriendNotFound rather
// than an empty log.
func (s *Service) ListTransactions(ctx context.Context, ownerID, friendID string) ([]*models.Transaction, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	if _, err := s.store.GetFriend(ctx, ownerID, friendID); err != nil {
		return nil, err
	}
	return s.store.ListTransactions(ctx, ownerID, friendID)
}

// ReconcileResult reports the outcome of a balance reconciliation.
type ReconcileResult struct {
	FriendID string `json:"friendId"`

	// CachedBalance is the balance stored on the friend before
	// reconciliation ran.
	CachedBalance decimal.Decimal `json:"cachedBalance"`

	// Balance is the log-derived balance, authoritative by definition.
	Balance decimal.Decimal `json:"balance"`

	// Drifted is true when the cached value disagreed with the log and
	// was overwritten.
	Drifted bool `json:"drifted"`

	// TransactionCount is how many transactions were summed.
	TransactionCount int `json:"transactionCount"`
}

// Reconcile recomputes the friend's balance from the transaction log and
// overwrites the cached value if it drifted. The log always wins. This is
// a maintenance operation, not part of the posting hot path: the regular
// post path cannot drift on its own, but direct store writes can.
func (s *Service) Reconcile(ctx context.Context, ownerID, friendID string) (*ReconcileResult, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	friend, err := s.store.GetFriend(ctx, ownerID, friendID)
	if err != nil {
		return nil, err
	}
	txns, err := s.store.ListTransactions(ctx, ownerID, friendID)
	if err != nil {
		return nil, err
	}

	sum := decimal.Zero
	for _, txn := range txns {
		sum = sum.Add(txn.SignedAmount())
	}

	result := &ReconcileResult{
		FriendID:         friendID,
		CachedBalance:    friend.Balance,
		Balance:          sum,
		Drifted:          !sum.Equal(friend.Balance),
		TransactionCount: len(txns),
	}
	if result.Drifted {
		if err := s.store.SetFriendBalance(ctx, ownerID, friendID, sum); err != nil {
			return nil, err
		}
		slog.Warn("Balance drift corrected",
			"owner_id", ownerID,
			"friend_id", friendID,
			"cached", friend.Balance,
			"recomputed", sum,
		)
	}
	return result, nil
}

func requireOwner(ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("%w: owner id required", ErrInvalidInput)
	}
	return nil
}
