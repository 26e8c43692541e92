package server

import (
	"net/http"
	"strconv"

	"github.com/packarr/packarr/pkg/logger"
)

// ListActivity returns the caller's activity log history, newest first
func (s Server) ListActivity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		user := userID(r)
		if user == "" {
			http.Error(w, "missing user identity", http.StatusUnauthorized)
			return
		}

		var limit, offset int64
		qp := r.URL.Query()

		if limitStr := qp.Get("limit"); limitStr != "" {
			parsed, err := strconv.ParseInt(limitStr, 10, 64)
			if err != nil || parsed < 1 {
				http.Error(w, "invalid limit parameter: must be positive integer", http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		if offsetStr := qp.Get("offset"); offsetStr != "" {
			parsed, err := strconv.ParseInt(offsetStr, 10, 64)
			if err != nil || parsed < 0 {
				http.Error(w, "invalid offset parameter: must be non-negative integer", http.StatusBadRequest)
				return
			}
			offset = parsed
		}

		entries, err := s.manager.ListActivity(r.Context(), user, limit, offset)
		if err != nil {
			log.Errorw("failed to list activity", "error", err)
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: entries})
	}
}
