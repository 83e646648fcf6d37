package seotda

import (
	"errors"
	"fmt"
)

// ErrPlayerNotFound is returned when a player is not found in the game
var ErrPlayerNotFound = errors.New("player not found")

// ErrPlayerFolded is returned when a player who has folded tries to act
var ErrPlayerFolded = errors.New("player has folded")

// ErrGameIsOver is returned when an action is attempted on an ended game
var ErrGameIsOver = errors.New("game is over")

// ErrWrongPhase is returned when an action is not permitted in the current phase
var ErrWrongPhase = errors.New("action is not permitted in the current phase")

// ErrNotYourTurn is returned when a betting action comes from a player other than the current player
var ErrNotYourTurn = errors.New("it is not your turn")

// ErrInvalidCard is returned when a player selects a card that is not in their hand
var ErrInvalidCard = errors.New("card is not in your hand")

// ErrInvalidSelection is returned when a showdown selection is not two distinct cards
var ErrInvalidSelection = errors.New("select exactly two different cards")

// ErrAlreadySelected is returned when a player selects a card a second time
var ErrAlreadySelected = errors.New("you have already made your selection")

// ErrOpeningActionOnly is returned when check or bbing is used after the round has been opened
var ErrOpeningActionOnly = errors.New("action is only permitted as the opening action of a round")

// ErrInsufficientFunds is returned when a player cannot afford an action
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrUnknownAction is returned for an unrecognized message action
var ErrUnknownAction = errors.New("unknown action")

// PlayerCountError is an error on the number of players in the game
type PlayerCountError struct {
	Min int
	Max int
	Got int
}

func (p PlayerCountError) Error() string {
	return fmt.Sprintf("expected %d–%d players, got %d", p.Min, p.Max, p.Got)
}

// StakeError is returned when the base stake could not be collected from a player
type StakeError struct {
	PlayerID int64
	Err      error
}

func (s StakeError) Error() string {
	return fmt.Sprintf("could not collect the base stake from player %d: %v", s.PlayerID, s.Err)
}

// Unwrap returns the underlying error
func (s StakeError) Unwrap() error {
	return s.Err
}

// ErrInvalidBaseStake is returned when the base stake is not positive
var ErrInvalidBaseStake = errors.New("base stake must be greater than zero")

// ErrInvalidOptions is returned for negative option values
var ErrInvalidOptions = errors.New("options cannot be negative")
