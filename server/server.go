package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/packarr/packarr/pkg/manager"
	"github.com/packarr/packarr/pkg/progress"
	"go.uber.org/zap"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

type GenericResponse struct {
	Error    *string `json:"error,omitempty"`
	Response any     `json:"response"`
}

// Server houses all dependencies for the season pack server to work such as loggers, the manager, and the progress hub
type Server struct {
	baseLogger *zap.SugaredLogger
	manager    manager.MediaManager
	hub        progress.Hub
	validate   *validator.Validate
}

// New creates a new season pack server
func New(logger *zap.SugaredLogger, manager manager.MediaManager, hub progress.Hub) Server {
	return Server{
		baseLogger: logger,
		manager:    manager,
		hub:        hub,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, err error) error {
	msg := err.Error()
	return writeResponse(w, status, GenericResponse{
		Error: &msg,
	})
}

func writeResponse(w http.ResponseWriter, status int, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	w.Header().Set("content-type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}

	w.Write(b)
	return nil
}

// Handler builds the full route table for the server
func (s Server) Handler() http.Handler {
	rtr := mux.NewRouter()
	rtr.Use(s.LogMiddleware())
	rtr.HandleFunc("/healthz", s.Healthz()).Methods(http.MethodGet)
	rtr.HandleFunc("/ws", s.Websocket()).Methods(http.MethodGet)

	api := rtr.PathPrefix("/api").Subrouter()

	v1 := api.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/seasonit", s.SeasonIt()).Methods(http.MethodPost)
	v1.HandleFunc("/seasonit/bulk", s.BulkSeasonIt()).Methods(http.MethodPost)

	v1.HandleFunc("/operations", s.ListOperations()).Methods(http.MethodGet)
	v1.HandleFunc("/operations/{id}", s.GetOperation()).Methods(http.MethodGet)
	v1.HandleFunc("/operations/{id}/cancel", s.CancelOperation()).Methods(http.MethodPost)

	v1.HandleFunc("/search", s.Search()).Methods(http.MethodPost)
	v1.HandleFunc("/download", s.Download()).Methods(http.MethodPost)

	v1.HandleFunc("/activity", s.ListActivity()).Methods(http.MethodGet)

	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedHeaders([]string{"content-type", "x-user-id"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost}),
	)(rtr)
}

// Serve starts the http server and is a blocking call
func (s Server) Serve(port int) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Handler(),
	}

	go func() {
		s.baseLogger.Infow("serving...", "port", port)
		if err := srv.ListenAndServe(); err != nil {
			s.baseLogger.Error(err.Error())
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	return srv.Shutdown(ctx)
}

// Healthz is an endpoint that can be used for probes
func (s Server) Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := GenericResponse{
			Response: "ok",
		}
		writeResponse(w, http.StatusOK, response)
	}
}
