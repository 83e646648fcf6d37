package mux

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gorilla/mux"
	"seotda-server/internal/config"
	"seotda-server/internal/util"
	"seotda-server/pkg/model"
)

type postRoomPayload struct {
	Name      string `json:"name"`
	BaseStake int    `json:"baseStake"`
}

func (m *Mux) postRoom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postRoomPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		name := strings.TrimSpace(payload.Name)
		if name == "" {
			name = util.GetRandomRoomName()
		}

		if n := utf8.RuneCountInString(name); n < 3 || n > 40 {
			writeJSONError(w, http.StatusBadRequest, errors.New("name must be 3-40 characters"))
			return
		}

		baseStake := payload.BaseStake
		if baseStake == 0 {
			baseStake = config.Instance().Game.BaseStake
		}

		if baseStake < 0 {
			writeJSONError(w, http.StatusBadRequest, errors.New("base stake must be greater than zero"))
			return
		}

		rm, err := playerFromContext(r).CreateRoom(r.Context(), name, baseStake)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, rm)
	}
}

type getRoomUUIDResponse struct {
	*model.Room
	Seats      []*model.Seat `json:"seats"`
	InProgress bool          `json:"inProgress"`
}

func (m *Mux) getRoomUUID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rm := roomFromContext(r)
		seats, err := rm.GetSeats(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		_, inProgress := m.registry.Get(rm.UUID)
		writeJSON(w, http.StatusOK, getRoomUUIDResponse{
			Room:       rm,
			Seats:      seats,
			InProgress: inProgress,
		})
	}
}

func (m *Mux) postRoomUUIDSeat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seat, err := playerFromContext(r).Sit(r.Context(), roomFromContext(r))
		if err != nil {
			if errors.Is(err, model.ErrDuplicateKey) {
				writeJSONError(w, http.StatusBadRequest, errors.New("player is already seated"))
				return
			}

			writeModelError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, seat)
	}
}

func (m *Mux) roomMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rm, err := model.GetRoomByUUID(r.Context(), strings.ToLower(mux.Vars(r)["uuid"]))
		if err != nil {
			writeModelError(w, err)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxRoomKey, rm)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}
