package model

import (
	"context"
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"
	"seotda-server/pkg/db"
)

const playerColumns = `
players.id,
players.display_name,
players.balance,
players.games_played,
players.wins,
players.experience,
players.level,
players.created,
players.updated`

// Player is a record in the `players` table
type Player struct {
	ID          int64     `json:"id"`
	DisplayName string    `json:"displayName"`
	Balance     int       `json:"balance"`
	GamesPlayed int       `json:"gamesPlayed"`
	Wins        int       `json:"wins"`
	Experience  int       `json:"experience"`
	Level       int       `json:"level"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

func getPlayerByRow(row db.Scanner) (*Player, error) {
	var p Player
	if err := row.Scan(&p.ID, &p.DisplayName, &p.Balance, &p.GamesPlayed, &p.Wins, &p.Experience, &p.Level, &p.Created, &p.Updated); err != nil {
		return nil, err
	}

	return &p, nil
}

// CreatePlayer creates a new player with a starting balance
func CreatePlayer(ctx context.Context, displayName string, balance int) (*Player, error) {
	const query = `
INSERT INTO players (display_name, balance)
VALUES (?, ?)
RETURNING id`

	var id int64
	if err := db.Instance().QueryRowContext(ctx, db.Rebind(query), displayName, balance).Scan(&id); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateKey
		}

		return nil, err
	}

	player, err := GetPlayerByID(ctx, id)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"playerId": player.ID, "balance": balance}).Info("created player")
	return player, nil
}

// GetPlayerByID returns player based on the ID
func GetPlayerByID(ctx context.Context, id int64) (*Player, error) {
	const query = `
SELECT ` + playerColumns + `
FROM players
WHERE id = ?`

	row := db.Instance().QueryRowContext(ctx, db.Rebind(query), id)
	return getPlayerByRow(row)
}

// Reload will refresh the data from the database
func (p *Player) Reload(ctx context.Context) error {
	player, err := GetPlayerByID(ctx, p.ID)
	if err != nil {
		return err
	}

	*p = *player
	return nil
}

func getPlayers(rows *sql.Rows, err error) ([]*Player, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*Player, 0)
	for rows.Next() {
		player, err := getPlayerByRow(rows)
		if err != nil {
			return nil, err
		}

		players = append(players, player)
	}

	return players, rows.Err()
}

// GetPlayers returns a list of players
func GetPlayers(ctx context.Context, offset int64, limit int) ([]*Player, error) {
	const query = `
SELECT ` + playerColumns + `
FROM players
ORDER BY id ASC
LIMIT ? OFFSET ?`

	return getPlayers(db.Instance().QueryContext(ctx, db.Rebind(query), limit, offset))
}

// LevelUp returns the level and remaining experience after spending experience on levels.
// Reaching the next level costs level * expPerLevel
func LevelUp(level, exp, expPerLevel int) (int, int) {
	if expPerLevel <= 0 {
		return level, exp
	}

	for exp >= level*expPerLevel {
		exp -= level * expPerLevel
		level++
	}

	return level, exp
}
