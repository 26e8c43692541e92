package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/packarr/packarr/pkg/logger"
)

func (s Server) LogMiddleware() mux.MiddlewareFunc {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := s.baseLogger.With("request_path", r.URL.Path).With("id", uuid.New().String())
			h.ServeHTTP(w, r.WithContext(logger.WithCtx(r.Context(), log)))
		})
	}
}

// userID extracts the caller identity. Authentication happens upstream, the
// server only needs to know who to address events and operations to.
func userID(r *http.Request) string {
	if id := r.Header.Get("X-User-ID"); id != "" {
		return id
	}
	return r.URL.Query().Get("user_id")
}
