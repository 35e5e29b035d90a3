package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Friend represents a counterparty the owner exchanges money with.
//
// Balance is a cached value maintained alongside the transaction log: it
// must always equal the sum of SignedAmount over the friend's
// transactions. Reconciliation recomputes it from the log if the two ever
// diverge.
type Friend struct {
	// ID is the unique identifier for the friend (UUID format).
	ID string `json:"id"`

	// OwnerID is the user this friend belongs to. Friends are never
	// shared between users.
	OwnerID string `json:"-"`

	// Name is the friend's display name.
	Name string `json:"name"`

	// Balance is the signed net amount between owner and friend.
	// Negative: the friend owes the owner. Positive: the owner owes the
	// friend.
	Balance decimal.Decimal `json:"balance"`

	// CreatedAt is the Unix timestamp in milliseconds when the friend
	// was added.
	CreatedAt int64 `json:"createdAt"`
}

// DisplayBalance renders the balance the way the ledger UI shows it:
// "+$12.50" for non-negative, "-$20.00" for negative.
func (f *Friend) DisplayBalance() string {
	sign := "+"
	if f.Balance.IsNegative() {
		sign = "-"
	}
	return fmt.Sprintf("%s$%s", sign, f.Balance.Abs().StringFixed(2))
}
