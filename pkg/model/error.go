package model

import (
	"errors"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// UserError is an error that is safe to return in a response
type UserError string

func (u UserError) Error() string {
	return string(u)
}

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

// ErrDuplicateKey happens if a unique constraint is violated
var ErrDuplicateKey = errors.New("duplicate key constraint violation")

// ErrInsufficientFunds is returned when a debit would make a balance negative
var ErrInsufficientFunds = UserError("insufficient funds")

// ErrRoomFull is returned when every seat of a room is taken
var ErrRoomFull = UserError("the room is full")

// ErrPlayerNotSeated happens when a player is not seated in the room
var ErrPlayerNotSeated = errors.New("player is not seated in the room")

func isDuplicateKey(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqDuplicateKeyErrorCode
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}

	return false
}
