package server

import (
	"context"
	"net/http"

	"github.com/packarr/packarr/pkg/logger"
	"github.com/packarr/packarr/pkg/progress"
)

// Websocket upgrades an observer connection and attaches it to the hub.
// Identity comes from the user_id query parameter since browsers cannot set
// headers on websocket dials.
func (s Server) Websocket() http.HandlerFunc {
	upgrader := progress.Upgrader()
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		user := userID(r)
		if user == "" {
			http.Error(w, "missing user identity", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Debugw("websocket upgrade failed", "error", err)
			return
		}

		// the request context dies when this handler returns; the pumps
		// outlive it and stop on their own when the connection closes
		client := progress.NewClient(s.hub, conn, user)
		client.StartPumps(logger.WithCtx(context.Background(), log))
	}
}
