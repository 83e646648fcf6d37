package room

import (
	"time"
)

// pendingGame is a game that starts after a countdown
type pendingGame struct {
	Start    time.Time `json:"start"`
	PlayerID int64     `json:"playerId"`
	context  string
	timer    *time.Timer
}

func newPendingGame(c *Client, ctx string, delay time.Duration) *pendingGame {
	start := time.Now().Add(delay)

	return &pendingGame{
		Start:    start,
		PlayerID: c.player.ID,
		context:  ctx,
		timer:    time.NewTimer(delay),
	}
}

func (p *pendingGame) cancel() {
	p.timer.Stop()
}
