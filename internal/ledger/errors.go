package ledger

import (
	"errors"

	"github.com/sobanhassan/hisaabkitaab/internal/storage"
)

var (
	// ErrInvalidInput covers rejected user input: a blank friend name or
	// description, a non-positive amount, or an unknown direction.
	// Validation happens before any write, so a rejected call never
	// leaves partial state.
	ErrInvalidInput = errors.New("invalid input")

	// ErrFriendNotFound is returned when a friend id does not resolve
	// under the calling owner.
	ErrFriendNotFound = storage.ErrFriendNotFound
)
