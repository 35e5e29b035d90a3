package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sobanhassan/hisaabkitaab/internal/models"
	"github.com/sobanhassan/hisaabkitaab/internal/storage"
)

// AppendTransaction inserts the transaction and applies its signed amount
// to the friend's cached balance inside one SQL transaction. The balance
// read and write are serialized by the database, so two concurrent posts
// against the same friend cannot lose an update.
func (s *SQLiteStore) AppendTransaction(ctx context.Context, ownerID string, txn *models.Transaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	if txn.CreatedAt == 0 {
		txn.CreatedAt = time.Now().UnixMilli()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var balanceStr string
	err = tx.QueryRowContext(ctx,
		"SELECT balance FROM friends WHERE owner_id = ? AND id = ?",
		ownerID, txn.FriendID,
	).Scan(&balanceStr)
	if err == sql.ErrNoRows {
		return storage.ErrFriendNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load balance: %w", err)
	}
	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return fmt.Errorf("corrupt balance %q: %w", balanceStr, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO transactions (id, owner_id, friend_id, amount, description, direction, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		txn.ID, ownerID, txn.FriendID, txn.Amount.String(), txn.Description, string(txn.Direction), txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	newBalance := balance.Add(txn.SignedAmount())
	_, err = tx.ExecContext(ctx,
		"UPDATE friends SET balance = ? WHERE owner_id = ? AND id = ?",
		newBalance.String(), ownerID, txn.FriendID,
	)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListTransactions returns the friend's transactions newest first. Rows
// sharing a created_at keep insertion order via the seq column.
func (s *SQLiteStore) ListTransactions(ctx context.Context, ownerID, friendID string) ([]*models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, friend_id, amount, description, direction, created_at
		 FROM transactions
		 WHERE owner_id = ? AND friend_id = ?
		 ORDER BY created_at DESC, seq DESC`,
		ownerID, friendID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txns := []*models.Transaction{}
	for rows.Next() {
		txn := &models.Transaction{}
		var amount, direction string
		if err := rows.Scan(&txn.ID, &txn.FriendID, &amount, &txn.Description, &direction, &txn.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		a, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("corrupt amount %q: %w", amount, err)
		}
		txn.Amount = a
		txn.Direction = models.Direction(direction)
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return txns, nil
}
