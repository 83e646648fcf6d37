package mux

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	gmux "github.com/gorilla/mux"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"seotda-server/internal/jwt"
	"seotda-server/pkg/model"
	"seotda-server/pkg/room"
)

type ctxKey int

const (
	ctxPlayerKey ctxKey = iota
	ctxRoomKey
)

// validated tokens are remembered so the signature is not checked on every request
const (
	tokenCacheSize = 1024
	tokenCacheTTL  = time.Minute * 5
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version  string
	options  room.Options
	registry *room.Registry
	pitBoss  *room.PitBoss
	tokens   *expirable.LRU[string, int64]

	// store for testing purposes
	authRouter *gmux.Router
}

// NewMux returns a new HTTP mux
func NewMux(version string, options room.Options) *Mux {
	registry := room.NewRegistry()
	pitBoss := room.NewPitBoss(registry, options)
	pitBoss.StartShift()

	this := &Mux{
		Router:   gmux.NewRouter(),
		version:  version,
		options:  options,
		registry: registry,
		pitBoss:  pitBoss,
		tokens:   expirable.NewLRU[string, int64](tokenCacheSize, nil, tokenCacheTTL),
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	}

	// requires bearer authorization
	{
		r := this.authRouter

		r.Methods(http.MethodGet).Path("/player").Handler(this.getPlayer())
		r.Methods(http.MethodGet).Path("/player/{id:[0-9]+}").Handler(this.getPlayerID())
		r.Methods(http.MethodGet).Path("/player/{id:[0-9]+}/balance-adjustments").Handler(this.getPlayerIDBalanceAdjustments())

		r.Methods(http.MethodPost).Path("/room").Handler(this.postRoom())

		rr := r.PathPrefix("/room/{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
		rr.Use(this.roomMiddleware)

		rr.Methods(http.MethodGet).Path("").Handler(this.getRoomUUID())
		rr.Methods(http.MethodGet).Path("/ws").Handler(this.getRoomUUIDWS())
		rr.Methods(http.MethodPost).Path("/seat").Handler(this.postRoomUUIDSeat())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		id, ok := m.tokens.Get(token)
		if !ok {
			var err error
			id, err = jwt.ValidUserID(token)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			m.tokens.Add(token, id)
		}

		player, err := model.GetPlayerByID(r.Context(), id)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxPlayerKey, player)
		w.Header().Set("Seotda-UserID", strconv.FormatInt(player.ID, 10))
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

func playerFromContext(r *http.Request) *model.Player {
	return r.Context().Value(ctxPlayerKey).(*model.Player)
}

func roomFromContext(r *http.Request) *model.Room {
	return r.Context().Value(ctxRoomKey).(*model.Room)
}
