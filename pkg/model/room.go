package model

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"seotda-server/pkg/db"
)

// MaxSeats is the number of seats in a room
const MaxSeats = 6

const roomColumns = `
rooms.uuid,
rooms.name,
rooms.host_id,
rooms.base_stake,
rooms.created`

const seatColumns = `
room_seats.id,
room_seats.room_uuid,
room_seats.player_id,
room_seats.seat,
room_seats.ready,
room_seats.created`

// Room represents a seotda room
// A room has many seated players and plays one game at a time
type Room struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
	// HostID is who created the room
	HostID    int64     `json:"hostId"`
	BaseStake int       `json:"baseStake"`
	Created   time.Time `json:"created"`
}

// Seat is a record in the `room_seats` table
type Seat struct {
	Player   *Player   `json:"player"`
	ID       int64     `json:"id"`
	RoomUUID string    `json:"roomUuid"`
	PlayerID int64     `json:"playerId"`
	Seat     int       `json:"seat"`
	Ready    bool      `json:"ready"`
	Created  time.Time `json:"created"`
}

func getRoomByRow(row db.Scanner) (*Room, error) {
	var r Room
	if err := row.Scan(&r.UUID, &r.Name, &r.HostID, &r.BaseStake, &r.Created); err != nil {
		return nil, err
	}

	return &r, nil
}

func getSeatByRow(row db.Scanner) (*Seat, error) {
	var p Player
	var s Seat

	if err := row.Scan(&p.ID, &p.DisplayName, &p.Balance, &p.GamesPlayed, &p.Wins, &p.Experience, &p.Level, &p.Created, &p.Updated,
		&s.ID, &s.RoomUUID, &s.PlayerID, &s.Seat, &s.Ready, &s.Created); err != nil {
		return nil, err
	}

	s.Player = &p
	return &s, nil
}

// CreateRoom creates a new room and seats the player as its host
func (p *Player) CreateRoom(ctx context.Context, name string, baseStake int) (*Room, error) {
	tx, err := db.Instance().BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	u := uuid.New().String()
	const query = `
INSERT INTO rooms (uuid, name, host_id, base_stake)
VALUES (?, ?, ?, ?)`

	if _, err := tx.ExecContext(ctx, db.Rebind(query), u, name, p.ID, baseStake); err != nil {
		rollback(tx)
		return nil, err
	}

	const query2 = `
INSERT INTO room_seats (room_uuid, player_id, seat)
VALUES (?, ?, 0)`
	if _, err = tx.ExecContext(ctx, db.Rebind(query2), u, p.ID); err != nil {
		rollback(tx)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return GetRoomByUUID(ctx, u)
}

// GetRoomByUUID returns a room by its UUID
func GetRoomByUUID(ctx context.Context, roomUUID string) (*Room, error) {
	const query = `
SELECT ` + roomColumns + `
FROM rooms
WHERE uuid = ?`

	row := db.Instance().QueryRowContext(ctx, db.Rebind(query), roomUUID)
	return getRoomByRow(row)
}

// GetSeats returns the seated players in seat order
func (r *Room) GetSeats(ctx context.Context) ([]*Seat, error) {
	const query = `
SELECT ` + playerColumns + `, ` + seatColumns + `
FROM room_seats
INNER JOIN players ON room_seats.player_id = players.id
WHERE room_seats.room_uuid = ?
ORDER BY room_seats.seat`

	rows, err := db.Instance().QueryContext(ctx, db.Rebind(query), r.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*Seat, 0)
	for rows.Next() {
		s, err := getSeatByRow(rows)
		if err != nil {
			return nil, err
		}

		records = append(records, s)
	}

	return records, rows.Err()
}

// Sit takes the next free seat in the room
func (p *Player) Sit(ctx context.Context, room *Room) (*Seat, error) {
	seats, err := room.GetSeats(ctx)
	if err != nil {
		return nil, err
	}

	next := 0
	for _, s := range seats {
		if s.PlayerID == p.ID {
			return nil, ErrDuplicateKey
		}

		if s.Seat >= next {
			next = s.Seat + 1
		}
	}

	if len(seats) >= MaxSeats {
		return nil, ErrRoomFull
	}

	const query = `
INSERT INTO room_seats (room_uuid, player_id, seat)
VALUES (?, ?, ?)`
	if _, err := db.Instance().ExecContext(ctx, db.Rebind(query), room.UUID, p.ID, next); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateKey
		}

		return nil, err
	}

	return p.GetSeat(ctx, room)
}

// GetSeat returns the seat of the player in the room
func (p *Player) GetSeat(ctx context.Context, room *Room) (*Seat, error) {
	const query = `
SELECT ` + playerColumns + `, ` + seatColumns + `
FROM room_seats
INNER JOIN players ON room_seats.player_id = players.id
WHERE room_seats.player_id = ? AND room_seats.room_uuid = ?`

	row := db.Instance().QueryRowContext(ctx, db.Rebind(query), p.ID, room.UUID)
	s, err := getSeatByRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotSeated
		}

		return nil, err
	}

	return s, nil
}

// SetReady sets the ready flag of the seat
func (s *Seat) SetReady(ctx context.Context, ready bool) error {
	const query = `UPDATE room_seats SET ready = ? WHERE id = ?`
	if _, err := db.Instance().ExecContext(ctx, db.Rebind(query), ready, s.ID); err != nil {
		return err
	}

	s.Ready = ready
	return nil
}

// ResetReady clears the ready flag of every seat in the room
func (r *Room) ResetReady(ctx context.Context) error {
	const query = `UPDATE room_seats SET ready = ? WHERE room_uuid = ?`
	_, err := db.Instance().ExecContext(ctx, db.Rebind(query), false, r.UUID)
	return err
}
