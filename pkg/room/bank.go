package room

import (
	"context"
	"errors"
	"fmt"

	"seotda-server/pkg/model"
	"seotda-server/pkg/playable/seotda"
)

// roomBank adapts the model bank to the game
type roomBank struct {
	*model.Bank
}

func (r roomBank) ApplyDelta(ctx context.Context, playerID int64, delta int, reason string) (int, error) {
	balance, err := r.Bank.ApplyDelta(ctx, playerID, delta, reason)
	if errors.Is(err, model.ErrInsufficientFunds) {
		return balance, fmt.Errorf("%w: %v", seotda.ErrInsufficientFunds, err)
	}

	return balance, err
}
