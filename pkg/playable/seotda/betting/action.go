package betting

import (
	"encoding/json"
	"fmt"
)

// Action represents a betting action a player can take
type Action string

// action constants
const (
	Fold    Action = "fold"
	Call    Action = "call"
	Ddadang Action = "ddadang"
	Half    Action = "half"
	Bbing   Action = "bbing"
	Check   Action = "check"
	AllIn   Action = "allin"
)

var allowedActions = map[Action]bool{
	Fold:    true,
	Call:    true,
	Ddadang: true,
	Half:    true,
	Bbing:   true,
	Check:   true,
	AllIn:   true,
}

// FromString returns an action for the given string
func FromString(s string) (Action, error) {
	if _, ok := allowedActions[Action(s)]; ok {
		return Action(s), nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnknownAction, s)
}

func (a Action) String() string {
	switch a {
	case Fold:
		return "Die"
	case Call:
		return "Call"
	case Ddadang:
		return "Ddadang"
	case Half:
		return "Half"
	case Bbing:
		return "Bbing"
	case Check:
		return "Check"
	case AllIn:
		return "All-in"
	}

	panic("unknown action")
}

// MarshalJSON encodes the action into JSON
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}{
		ID:   string(a),
		Name: a.String(),
	})
}

// IsValid returns true if the action is permitted
func (a Action) IsValid() bool {
	_, ok := allowedActions[a]
	return ok
}

// IsRaise returns true if the action can raise the current bet
func (a Action) IsRaise() bool {
	switch a {
	case Ddadang, Half, Bbing, AllIn:
		return true
	}

	return false
}

// OpeningOnly returns true if the action is only permitted to the first actor of a round
func (a Action) OpeningOnly() bool {
	return a == Check || a == Bbing
}

// LogMessage returns a message formatted for the log
func (a Action) LogMessage(amount int) string {
	switch a {
	case Fold:
		return "folded"
	case Check:
		return "checked"
	case Call:
		return fmt.Sprintf("called ${%d}", amount)
	case Ddadang:
		return fmt.Sprintf("doubled the bet with ${%d}", amount)
	case Half:
		return fmt.Sprintf("raised half the pot with ${%d}", amount)
	case Bbing:
		return fmt.Sprintf("bet the base stake with ${%d}", amount)
	case AllIn:
		return fmt.Sprintf("went all-in with ${%d}", amount)
	}

	return ""
}
