package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Direction records which party advanced the money in a transaction.
type Direction string

const (
	// PaidForFriend means the owner paid on the friend's behalf; the
	// friend's balance decreases by the amount.
	PaidForFriend Direction = "paid_for_friend"

	// PaidByFriend means the friend paid on the owner's behalf; the
	// friend's balance increases by the amount.
	PaidByFriend Direction = "paid_by_friend"
)

// Valid reports whether d is one of the two known directions.
func (d Direction) Valid() bool {
	return d == PaidForFriend || d == PaidByFriend
}

// ParseDirection converts a wire string into a Direction.
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if !d.Valid() {
		return "", fmt.Errorf("unknown direction %q", s)
	}
	return d, nil
}

// Transaction is an immutable record of one payment event affecting a
// friend's balance. There is no update operation: corrections are posted
// as a new transaction in the opposite direction.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string `json:"id"`

	// FriendID is the friend this transaction belongs to. Transactions
	// are never reassigned.
	FriendID string `json:"friendId"`

	// Amount is the positive amount of money that changed hands.
	Amount decimal.Decimal `json:"amount"`

	// Description says what the money was for (e.g. "lunch").
	Description string `json:"description"`

	// Direction records who paid.
	Direction Direction `json:"direction"`

	// CreatedAt is the server-assigned Unix timestamp in milliseconds.
	// Used only for display ordering, newest first.
	CreatedAt int64 `json:"createdAt"`
}

// SignedAmount returns the amount with the sign the direction implies:
// negative for paid_for_friend, positive for paid_by_friend.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Direction == PaidForFriend {
		return t.Amount.Neg()
	}
	return t.Amount
}
