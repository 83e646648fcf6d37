package seotda

import "context"

// Bank holds the balances of the players outside of the game
type Bank interface {
	// Balance returns the current balance of the player
	Balance(ctx context.Context, playerID int64) (int, error)

	// ApplyDelta atomically adds delta to the player's balance and returns the new balance.
	// A delta that would make the balance negative must fail without changing anything
	ApplyDelta(ctx context.Context, playerID int64, delta int, reason string) (int, error)
}
