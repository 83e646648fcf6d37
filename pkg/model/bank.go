package model

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"seotda-server/pkg/db"
)

// Bank moves money in and out of player balances
// Every change is recorded in the `balance_adjustments` table
type Bank struct {
	// RoomUUID is recorded with each adjustment. Empty for adjustments outside of a room
	RoomUUID string
}

// Balance returns the current balance of the player
func (b *Bank) Balance(ctx context.Context, playerID int64) (int, error) {
	const query = `SELECT balance FROM players WHERE id = ?`

	var balance int
	if err := db.Instance().QueryRowContext(ctx, db.Rebind(query), playerID).Scan(&balance); err != nil {
		return 0, err
	}

	return balance, nil
}

// ApplyDelta atomically adds delta to the balance of the player and returns the new balance
// ErrInsufficientFunds is returned if the balance would become negative
func (b *Bank) ApplyDelta(ctx context.Context, playerID int64, delta int, reason string) (int, error) {
	tx, err := db.Instance().BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	balance, err := b.applyDelta(ctx, tx, playerID, delta, reason)
	if err != nil {
		rollback(tx)
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return balance, nil
}

func (b *Bank) applyDelta(ctx context.Context, tx *sql.Tx, playerID int64, delta int, reason string) (int, error) {
	const query = `
UPDATE players
SET balance = balance + ?, updated = ?
WHERE id = ? AND balance + ? >= 0
RETURNING balance`

	var balance int
	row := tx.QueryRowContext(ctx, db.Rebind(query), delta, time.Now().UTC(), playerID, delta)
	if err := row.Scan(&balance); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return 0, err
		}

		// either the player does not exist or cannot afford it
		const existsQuery = `SELECT balance FROM players WHERE id = ?`
		if err := tx.QueryRowContext(ctx, db.Rebind(existsQuery), playerID).Scan(&balance); err != nil {
			return 0, err
		}

		return balance, fmt.Errorf("%w: balance of %d cannot cover %d", ErrInsufficientFunds, balance, -delta)
	}

	var roomUUID *string
	if b.RoomUUID != "" {
		roomUUID = &b.RoomUUID
	}

	const auditQuery = `
INSERT INTO balance_adjustments (player_id, room_uuid, amount, balance, reason)
VALUES (?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, db.Rebind(auditQuery), playerID, roomUUID, delta, balance, reason); err != nil {
		return 0, err
	}

	logrus.WithFields(logrus.Fields{
		"playerId": playerID,
		"room":     b.RoomUUID,
		"delta":    delta,
		"balance":  balance,
	}).Debug(reason)

	return balance, nil
}

// BalanceAdjustment is a record in the `balance_adjustments` table
type BalanceAdjustment struct {
	ID       int64     `json:"id"`
	PlayerID int64     `json:"playerId"`
	RoomUUID string    `json:"roomUuid,omitempty"`
	Amount   int       `json:"amount"`
	Balance  int       `json:"balance"`
	Reason   string    `json:"reason"`
	Created  time.Time `json:"created"`
}

// GetBalanceAdjustments returns the most recent adjustments of the player, newest first
func (p *Player) GetBalanceAdjustments(ctx context.Context, offset int64, limit int) ([]*BalanceAdjustment, error) {
	const query = `
SELECT id, player_id, room_uuid, amount, balance, reason, created
FROM balance_adjustments
WHERE player_id = ?
ORDER BY id DESC
LIMIT ? OFFSET ?`

	rows, err := db.Instance().QueryContext(ctx, db.Rebind(query), p.ID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*BalanceAdjustment, 0)
	for rows.Next() {
		var ba BalanceAdjustment
		var roomUUID sql.NullString
		if err := rows.Scan(&ba.ID, &ba.PlayerID, &roomUUID, &ba.Amount, &ba.Balance, &ba.Reason, &ba.Created); err != nil {
			return nil, err
		}

		ba.RoomUUID = roomUUID.String
		records = append(records, &ba)
	}

	return records, rows.Err()
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		logrus.WithError(err).Error("could not rollback transaction")
	}
}
