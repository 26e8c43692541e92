package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/packarr/packarr/pkg/logger"
	"github.com/packarr/packarr/pkg/manager"
)

// SeasonItRequest kicks off a single acquisition run
type SeasonItRequest struct {
	Instance               string `json:"instance"`
	ShowID                 int64  `json:"showId" validate:"required"`
	SeasonNumber           *int   `json:"seasonNumber"`
	DisableSeasonPackCheck bool   `json:"disableSeasonPackCheck"`
	SkipEpisodeDeletion    bool   `json:"skipEpisodeDeletion"`
}

// BulkSeasonItRequest kicks off a sequential run over several targets
type BulkSeasonItRequest struct {
	Items                  []BulkItem `json:"items" validate:"required,min=1,dive"`
	DisableSeasonPackCheck bool       `json:"disableSeasonPackCheck"`
	SkipEpisodeDeletion    bool       `json:"skipEpisodeDeletion"`
}

type BulkItem struct {
	Instance     string `json:"instance"`
	ShowID       int64  `json:"showId" validate:"required"`
	SeasonNumber *int   `json:"seasonNumber"`
}

// SearchRequest asks for ranked season pack candidates
type SearchRequest struct {
	Instance     string `json:"instance"`
	ShowID       int64  `json:"showId" validate:"required"`
	SeasonNumber int    `json:"seasonNumber" validate:"required"`
}

// DownloadRequest grabs one previously returned candidate
type DownloadRequest struct {
	Instance  string `json:"instance"`
	GUID      string `json:"guid" validate:"required"`
	IndexerID int32  `json:"indexerId" validate:"required"`
}

// OperationAccepted acknowledges an accepted run
type OperationAccepted struct {
	OperationID string `json:"operation_id"`
}

func (s Server) decode(r *http.Request, into any) error {
	b, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(b, into); err != nil {
		return err
	}

	return s.validate.Struct(into)
}

var errMissingIdentity = errors.New("missing user identity")

func statusForError(err error) int {
	switch {
	case errors.Is(err, errMissingIdentity):
		return http.StatusUnauthorized
	case errors.Is(err, manager.ErrAlreadyRunning):
		return http.StatusConflict
	case errors.Is(err, manager.ErrUnknownInstance):
		return http.StatusBadRequest
	case errors.Is(err, manager.ErrOperationNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// SeasonIt accepts a single show or season run
func (s Server) SeasonIt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		user := userID(r)
		if user == "" {
			http.Error(w, "missing user identity", http.StatusUnauthorized)
			return
		}

		var request SeasonItRequest
		if err := s.decode(r, &request); err != nil {
			log.Debugw("invalid request body", "error", err)
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		id, err := s.manager.StartSeasonIt(r.Context(), user, manager.Target{
			Instance:     request.Instance,
			ShowID:       request.ShowID,
			SeasonNumber: request.SeasonNumber,
		}, manager.RunOptions{
			DisableSeasonPackCheck: request.DisableSeasonPackCheck,
			SkipEpisodeDeletion:    request.SkipEpisodeDeletion,
		})
		if err != nil {
			log.Warnw("season it rejected", "error", err)
			writeErrorResponse(w, statusForError(err), err)
			return
		}

		writeResponse(w, http.StatusAccepted, GenericResponse{Response: OperationAccepted{OperationID: id}})
	}
}

// BulkSeasonIt accepts a run over several targets
func (s Server) BulkSeasonIt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		user := userID(r)
		if user == "" {
			http.Error(w, "missing user identity", http.StatusUnauthorized)
			return
		}

		var request BulkSeasonItRequest
		if err := s.decode(r, &request); err != nil {
			log.Debugw("invalid request body", "error", err)
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		targets := make([]manager.Target, 0, len(request.Items))
		for _, item := range request.Items {
			targets = append(targets, manager.Target{
				Instance:     item.Instance,
				ShowID:       item.ShowID,
				SeasonNumber: item.SeasonNumber,
			})
		}

		id, err := s.manager.StartBulk(r.Context(), user, targets, manager.RunOptions{
			DisableSeasonPackCheck: request.DisableSeasonPackCheck,
			SkipEpisodeDeletion:    request.SkipEpisodeDeletion,
		})
		if err != nil {
			log.Warnw("bulk season it rejected", "error", err)
			writeErrorResponse(w, statusForError(err), err)
			return
		}

		writeResponse(w, http.StatusAccepted, GenericResponse{Response: OperationAccepted{OperationID: id}})
	}
}

// ownedOperation resolves an operation id for the caller. Another user's
// operation reads as not found rather than forbidden so ids don't leak.
func (s Server) ownedOperation(r *http.Request) (manager.OperationStatus, error) {
	user := userID(r)
	if user == "" {
		return manager.OperationStatus{}, errMissingIdentity
	}

	snap, err := s.manager.Get(mux.Vars(r)["id"])
	if err != nil {
		return manager.OperationStatus{}, err
	}
	if snap.UserID != user {
		return manager.OperationStatus{}, manager.ErrOperationNotFound
	}

	return snap, nil
}

// CancelOperation requests a cooperative stop of a running operation
func (s Server) CancelOperation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		snap, err := s.ownedOperation(r)
		if err != nil {
			log.Debugw("cancel failed", "operation", mux.Vars(r)["id"], "error", err)
			writeErrorResponse(w, statusForError(err), err)
			return
		}

		if err := s.manager.Cancel(snap.ID); err != nil {
			log.Debugw("cancel failed", "operation", snap.ID, "error", err)
			writeErrorResponse(w, statusForError(err), err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: "cancelling"})
	}
}

// GetOperation returns the current snapshot of one operation. Reconnecting
// observers use this to re-derive state they missed while offline.
func (s Server) GetOperation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := s.ownedOperation(r)
		if err != nil {
			writeErrorResponse(w, statusForError(err), err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: snap})
	}
}

// ListOperations returns the caller's retained operations
func (s Server) ListOperations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userID(r)
		if user == "" {
			http.Error(w, "missing user identity", http.StatusUnauthorized)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: s.manager.ListByUser(user)})
	}
}

// Search returns ranked season pack candidates without side effects
func (s Server) Search() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		var request SearchRequest
		if err := s.decode(r, &request); err != nil {
			log.Debugw("invalid request body", "error", err)
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		candidates, err := s.manager.ManualSearch(r.Context(), request.Instance, request.ShowID, request.SeasonNumber)
		if err != nil {
			log.Warnw("manual search failed", "show", request.ShowID, "season", request.SeasonNumber, "error", err)
			writeErrorResponse(w, statusForError(err), err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: candidates})
	}
}

// Download grabs a specific candidate chosen by the caller
func (s Server) Download() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		var request DownloadRequest
		if err := s.decode(r, &request); err != nil {
			log.Debugw("invalid request body", "error", err)
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		err := s.manager.ManualDownload(r.Context(), request.Instance, request.GUID, request.IndexerID)
		if err != nil {
			log.Warnw("manual download failed", "guid", request.GUID, "error", err)
			writeErrorResponse(w, statusForError(err), err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: "grabbed"})
	}
}
