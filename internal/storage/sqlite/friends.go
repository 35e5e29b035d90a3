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

// CreateFriend persists a new friend with a zero balance.
func (s *SQLiteStore) CreateFriend(ctx context.Context, friend *models.Friend) error {
	if friend.ID == "" {
		friend.ID = uuid.New().String()
	}
	if friend.CreatedAt == 0 {
		friend.CreatedAt = time.Now().UnixMilli()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO friends (owner_id, id, name, balance, created_at) VALUES (?, ?, ?, ?, ?)",
		friend.OwnerID, friend.ID, friend.Name, friend.Balance.String(), friend.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert friend: %w", err)
	}
	return nil
}

// GetFriend retrieves a friend by id under the given owner.
func (s *SQLiteStore) GetFriend(ctx context.Context, ownerID, friendID string) (*models.Friend, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT owner_id, id, name, balance, created_at FROM friends WHERE owner_id = ? AND id = ?",
		ownerID, friendID,
	)
	friend, err := scanFriend(row)
	if err == sql.ErrNoRows {
		return nil, storage.ErrFriendNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get friend: %w", err)
	}
	return friend, nil
}

// ListFriends returns all friends owned by ownerID, ordered by name for a
// stable enumeration.
func (s *SQLiteStore) ListFriends(ctx context.Context, ownerID string) ([]*models.Friend, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT owner_id, id, name, balance, created_at FROM friends WHERE owner_id = ? ORDER BY name, id",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	defer rows.Close()

	friends := []*models.Friend{}
	for rows.Next() {
		friend, err := scanFriend(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan friend: %w", err)
		}
		friends = append(friends, friend)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate friends: %w", err)
	}
	return friends, nil
}

// DeleteFriend removes all of the friend's transactions and then the
// friend record in one transaction. The per-row transaction delete is a
// no-op for rows that are already gone, so retries converge to the same
// terminal state.
func (s *SQLiteStore) DeleteFriend(ctx context.Context, ownerID, friendID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM transactions WHERE owner_id = ? AND friend_id = ?",
		ownerID, friendID,
	); err != nil {
		return fmt.Errorf("failed to delete transactions: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		"DELETE FROM friends WHERE owner_id = ? AND id = ?",
		ownerID, friendID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete friend: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return storage.ErrFriendNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SetFriendBalance overwrites the cached balance for a friend.
func (s *SQLiteStore) SetFriendBalance(ctx context.Context, ownerID, friendID string, balance decimal.Decimal) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE friends SET balance = ? WHERE owner_id = ? AND id = ?",
		balance.String(), ownerID, friendID,
	)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return storage.ErrFriendNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanFriend(row scanner) (*models.Friend, error) {
	friend := &models.Friend{}
	var balance string
	if err := row.Scan(&friend.OwnerID, &friend.ID, &friend.Name, &balance, &friend.CreatedAt); err != nil {
		return nil, err
	}
	b, err := decimal.NewFromString(balance)
	if err != nil {
		return nil, fmt.Errorf("corrupt balance %q: %w", balance, err)
	}
	friend.Balance = b
	return friend, nil
}
