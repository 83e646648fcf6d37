package mux

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"seotda-server/pkg/model"
)

func (m *Mux) getPlayer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, playerFromContext(r))
	}
}

func (m *Mux) getPlayerID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// ParseInt will always succeed
		playerID, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

		player, err := model.GetPlayerByID(r.Context(), playerID)
		if err != nil {
			writeModelError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, player)
	}
}

func (m *Mux) getPlayerIDBalanceAdjustments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

		// a player can only see their own history
		player := playerFromContext(r)
		if player.ID != playerID {
			writeJSONError(w, http.StatusForbidden, nil)
			return
		}

		start, rows, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		adjustments, err := player.GetBalanceAdjustments(r.Context(), start, rows)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, adjustments)
	}
}
