package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/packarr/packarr/pkg/manager"
	"github.com/packarr/packarr/pkg/progress"
	"github.com/packarr/packarr/pkg/sonarr"
	"github.com/packarr/packarr/pkg/sonarr/mocks"
	storageMocks "github.com/packarr/packarr/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

// noopHub satisfies progress.Hub for handler tests
type noopHub struct{}

func (noopHub) Run(ctx context.Context)                     {}
func (noopHub) Publish(userID string, event progress.Event) {}
func (noopHub) RegisterClient(client *progress.Client)      {}
func (noopHub) UnregisterClient(client *progress.Client)    {}

type serverDeps struct {
	client *mocks.MockClientInterface
	store  *storageMocks.MockStorage
}

func newTestServer(t *testing.T) (Server, serverDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)

	deps := serverDeps{
		client: mocks.NewMockClientInterface(ctrl),
		store:  storageMocks.NewMockStorage(ctrl),
	}

	m := manager.New(map[string]sonarr.ClientInterface{"default": deps.client}, deps.store, noopHub{}, manager.Options{
		InterItemDelay: time.Millisecond,
	})

	return New(zap.NewNop().Sugar(), m, noopHub{}), deps
}

func TestServer_Healthz(t *testing.T) {
	s, _ := newTestServer(t)

	req, err := http.NewRequest("GET", "/healthz", nil)
	assert.NoError(t, err)

	rr := httptest.NewRecorder()

	handler := s.Healthz()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("content-type"))

	var response GenericResponse
	err = json.Unmarshal(rr.Body.Bytes(), &response)

	assert.NoError(t, err)
	assert.Equal(t, "ok", response.Response)
}

func TestServer_SeasonIt(t *testing.T) {
	t.Run("missing identity", func(t *testing.T) {
		s, _ := newTestServer(t)

		req := httptest.NewRequest("POST", "/api/v1/seasonit", strings.NewReader(`{"showId":42}`))
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		s, _ := newTestServer(t)

		req := httptest.NewRequest("POST", "/api/v1/seasonit", strings.NewReader(`{"seasonNumber":2}`))
		req.Header.Set("X-User-ID", "alice")
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown instance", func(t *testing.T) {
		s, _ := newTestServer(t)

		req := httptest.NewRequest("POST", "/api/v1/seasonit", strings.NewReader(`{"showId":42,"instance":"missing"}`))
		req.Header.Set("X-User-ID", "alice")
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("accepted", func(t *testing.T) {
		s, deps := newTestServer(t)

		// a season with nothing missing finishes as a quick warning run
		aired := time.Now().Add(-24 * time.Hour)
		deps.client.EXPECT().GetSeries(gomock.Any(), int64(42)).Return(&sonarr.Series{
			ID:      42,
			Title:   "Some Show",
			Seasons: []sonarr.Season{{SeasonNumber: 2, Monitored: true}},
		}, nil)
		deps.client.EXPECT().ListEpisodes(gomock.Any(), int64(42)).Return([]sonarr.Episode{
			{ID: 1, SeasonNumber: 2, EpisodeNumber: 1, Monitored: true, HasFile: true, AirDateUTC: &aired},
		}, nil)
		deps.store.EXPECT().CreateActivityLog(gomock.Any(), gomock.Any()).Return(int64(1), nil)
		deps.store.EXPECT().FinishActivityLog(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		req := httptest.NewRequest("POST", "/api/v1/seasonit", strings.NewReader(`{"showId":42,"seasonNumber":2}`))
		req.Header.Set("X-User-ID", "alice")
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, req)

		require.Equal(t, http.StatusAccepted, rr.Code)

		var response GenericResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		id := response.Response.(map[string]any)["operation_id"].(string)
		require.NotEmpty(t, id)

		waitFinished(t, s, id)
	})
}

// waitFinished polls the status endpoint until the run reaches a terminal state
func waitFinished(t *testing.T, s Server, id string) map[string]any {
	t.Helper()
	handler := s.Handler()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		req := httptest.NewRequest("GET", "/api/v1/operations/"+id, nil)
		req.Header.Set("X-User-ID", "alice")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var response GenericResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		snap := response.Response.(map[string]any)
		if _, ok := snap["finished_at"]; ok {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("operation never finished")
	return nil
}

func TestServer_BulkSeasonIt(t *testing.T) {
	t.Run("empty items rejected", func(t *testing.T) {
		s, _ := newTestServer(t)

		req := httptest.NewRequest("POST", "/api/v1/seasonit/bulk", strings.NewReader(`{"items":[]}`))
		req.Header.Set("X-User-ID", "alice")
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("overlapping targets conflict", func(t *testing.T) {
		s, _ := newTestServer(t)

		body := `{"items":[{"showId":42,"seasonNumber":2},{"showId":42,"seasonNumber":2}]}`
		req := httptest.NewRequest("POST", "/api/v1/seasonit/bulk", strings.NewReader(body))
		req.Header.Set("X-User-ID", "alice")
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestServer_Operations(t *testing.T) {
	s, _ := newTestServer(t)
	handler := s.Handler()

	req := httptest.NewRequest("GET", "/api/v1/operations/nope", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req = httptest.NewRequest("GET", "/api/v1/operations/nope", nil)
	req.Header.Set("X-User-ID", "alice")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	req = httptest.NewRequest("POST", "/api/v1/operations/nope/cancel", nil)
	req.Header.Set("X-User-ID", "alice")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	req = httptest.NewRequest("GET", "/api/v1/operations", nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req = httptest.NewRequest("GET", "/api/v1/operations", nil)
	req.Header.Set("X-User-ID", "alice")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestServer_OperationScopedToOwner(t *testing.T) {
	s, deps := newTestServer(t)
	handler := s.Handler()

	aired := time.Now().Add(-24 * time.Hour)
	deps.client.EXPECT().GetSeries(gomock.Any(), int64(42)).Return(&sonarr.Series{
		ID:      42,
		Title:   "Some Show",
		Seasons: []sonarr.Season{{SeasonNumber: 2, Monitored: true}},
	}, nil)
	deps.client.EXPECT().ListEpisodes(gomock.Any(), int64(42)).Return([]sonarr.Episode{
		{ID: 1, SeasonNumber: 2, EpisodeNumber: 1, Monitored: true, HasFile: true, AirDateUTC: &aired},
	}, nil)
	deps.store.EXPECT().CreateActivityLog(gomock.Any(), gomock.Any()).Return(int64(1), nil)
	deps.store.EXPECT().FinishActivityLog(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	req := httptest.NewRequest("POST", "/api/v1/seasonit", strings.NewReader(`{"showId":42,"seasonNumber":2}`))
	req.Header.Set("X-User-ID", "alice")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusAccepted, rr.Code)

	var response GenericResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	id := response.Response.(map[string]any)["operation_id"].(string)

	waitFinished(t, s, id)

	// someone else's operation id reads and cancels as not found
	req = httptest.NewRequest("GET", "/api/v1/operations/"+id, nil)
	req.Header.Set("X-User-ID", "bob")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	req = httptest.NewRequest("POST", "/api/v1/operations/"+id+"/cancel", nil)
	req.Header.Set("X-User-ID", "bob")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// the owner still sees it
	req = httptest.NewRequest("GET", "/api/v1/operations/"+id, nil)
	req.Header.Set("X-User-ID", "alice")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestServer_Search(t *testing.T) {
	s, deps := newTestServer(t)

	deps.client.EXPECT().ListEpisodes(gomock.Any(), int64(42)).Return(nil, nil)
	deps.client.EXPECT().SearchSeasonReleases(gomock.Any(), int64(42), 2).Return([]sonarr.Release{
		{
			GUID:       "pack-1",
			Title:      "Some.Show.S02.1080p.WEB-DL",
			Size:       8 << 30,
			Seeders:    40,
			IndexerID:  3,
			FullSeason: true,
			Quality:    sonarr.ReleaseQuality{Quality: sonarr.QualityDetail{Source: "web", Resolution: 1080}},
		},
	}, nil)

	req := httptest.NewRequest("POST", "/api/v1/search", strings.NewReader(`{"showId":42,"seasonNumber":2}`))
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var response GenericResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	candidates := response.Response.([]any)
	require.Len(t, candidates, 1)
	assert.Equal(t, "pack-1", candidates[0].(map[string]any)["guid"])
}

func TestServer_Download(t *testing.T) {
	s, deps := newTestServer(t)

	t.Run("missing guid rejected", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/download", strings.NewReader(`{"indexerId":3}`))
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("grab", func(t *testing.T) {
		deps.client.EXPECT().GrabRelease(gomock.Any(), "pack-1", int32(3)).Return(nil)

		req := httptest.NewRequest("POST", "/api/v1/download", strings.NewReader(`{"guid":"pack-1","indexerId":3}`))
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
