package seotda

import "time"

// Options are options for creating a new seotda game
type Options struct {
	BaseStake int // Default: 100

	// TurnTimeout will act on behalf of a stalled player. Zero disables it
	TurnTimeout time.Duration

	// Seed seeds the dealer selection and every shuffle. Zero picks a random seed
	Seed int64

	WinnerExp int // Default: 100
	LoserExp  int // Default: 30
}

// DefaultOptions returns the default options for a seotda game
func DefaultOptions() Options {
	return Options{
		BaseStake: 100,
		WinnerExp: 100,
		LoserExp:  30,
	}
}

func (o Options) validate() error {
	if o.BaseStake <= 0 {
		return ErrInvalidBaseStake
	}

	if o.TurnTimeout < 0 || o.WinnerExp < 0 || o.LoserExp < 0 {
		return ErrInvalidOptions
	}

	return nil
}
