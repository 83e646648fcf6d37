package model

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"seotda-server/pkg/db"
	"seotda-server/pkg/playable"
)

// SettleGame pays out the game and records player stats in a single transaction.
// Stakes and bets were already debited while the game was played, so only payouts are credited.
// Aborted games refund contributions and do not count towards stats
func (b *Bank) SettleGame(ctx context.Context, details *playable.GameOverDetails, expPerLevel int) error {
	tx, err := db.Instance().BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	commit := false
	defer func() {
		if !commit {
			rollback(tx)
		}
	}()

	reason := "payout"
	if details.Aborted {
		reason = "refund"
	}

	for _, playerID := range sortedIDs(details.Payouts) {
		amount := details.Payouts[playerID]
		if amount == 0 {
			continue
		}

		if _, err := b.applyDelta(ctx, tx, playerID, amount, reason); err != nil {
			return err
		}
	}

	if !details.Aborted {
		for _, playerID := range sortedIDs(details.BalanceAdjustments) {
			win := 0
			if playerID == details.WinnerID {
				win = 1
			}

			if err := addGameStats(ctx, tx, playerID, win, details.Experience[playerID], expPerLevel); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	commit = true
	logrus.WithFields(logrus.Fields{
		"room":     b.RoomUUID,
		"winnerId": details.WinnerID,
		"aborted":  details.Aborted,
	}).Info("game settled")

	return nil
}

func addGameStats(ctx context.Context, tx db.Querier, playerID int64, win, exp, expPerLevel int) error {
	const query = `SELECT experience, level FROM players WHERE id = ?`

	var experience, level int
	if err := tx.QueryRowContext(ctx, db.Rebind(query), playerID).Scan(&experience, &level); err != nil {
		return err
	}

	level, experience = LevelUp(level, experience+exp, expPerLevel)

	const update = `
UPDATE players
SET games_played = games_played + 1, wins = wins + ?, experience = ?, level = ?, updated = ?
WHERE id = ?`
	_, err := tx.ExecContext(ctx, db.Rebind(update), win, experience, level, time.Now().UTC(), playerID)
	return err
}

func sortedIDs(m map[int64]int) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
