package manager

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/packarr/packarr/pkg/progress"
	"github.com/packarr/packarr/pkg/sonarr"
	"github.com/packarr/packarr/pkg/sonarr/mocks"
	storageMocks "github.com/packarr/packarr/pkg/storage/mocks"
	"go.uber.org/mock/gomock"
)

// recordingHub captures published events for assertions
type recordingHub struct {
	mu     sync.Mutex
	events []progress.Event
	ch     chan progress.Event
}

func newRecordingHub() *recordingHub {
	return &recordingHub{ch: make(chan progress.Event, 256)}
}

func (h *recordingHub) Run(ctx context.Context) {}

func (h *recordingHub) Publish(userID string, event progress.Event) {
	h.mu.Lock()
	h.events = append(h.events, event)
	h.mu.Unlock()

	select {
	case h.ch <- event:
	default:
	}
}

func (h *recordingHub) RegisterClient(client *progress.Client)   {}
func (h *recordingHub) UnregisterClient(client *progress.Client) {}

func (h *recordingHub) all() []progress.Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]progress.Event(nil), h.events...)
}

// waitEvent blocks until an event satisfying match arrives
func waitEvent(t *testing.T, h *recordingHub, match func(progress.Event) bool) progress.Event {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case e := <-h.ch:
			if match(e) {
				return e
			}
		case <-deadline:
			t.Fatal("timed out waiting for event")
			return nil
		}
	}
}

// waitTerminal polls until the operation reaches a terminal state
func waitTerminal(t *testing.T, m MediaManager, id string) OperationStatus {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		snap, err := m.Get(id)
		if err == nil && snap.FinishedAt != nil {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("operation never finished")
	return OperationStatus{}
}

type testDeps struct {
	client *mocks.MockClientInterface
	store  *storageMocks.MockStorage
	hub    *recordingHub
}

func newTestManager(t *testing.T, opts Options) (MediaManager, testDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)

	deps := testDeps{
		client: mocks.NewMockClientInterface(ctrl),
		store:  storageMocks.NewMockStorage(ctrl),
		hub:    newRecordingHub(),
	}

	if opts.InterItemDelay == 0 {
		opts.InterItemDelay = time.Millisecond
	}

	m := New(map[string]sonarr.ClientInterface{"default": deps.client}, deps.store, deps.hub, opts)
	return m, deps
}

func seriesFixture() *sonarr.Series {
	return &sonarr.Series{
		ID:    42,
		Title: "Some Show",
		Seasons: []sonarr.Season{
			{SeasonNumber: 1, Monitored: true},
			{SeasonNumber: 2, Monitored: true},
		},
		Images: []sonarr.Image{
			{CoverType: "poster", RemoteURL: "https://img/poster.jpg"},
		},
	}
}

// season 1 complete, season 2 aired with one missing monitored episode
func episodesFixture() []sonarr.Episode {
	aired := time.Now().Add(-30 * 24 * time.Hour)
	return []sonarr.Episode{
		{ID: 1, SeasonNumber: 1, EpisodeNumber: 1, Monitored: true, HasFile: true, AirDateUTC: tp(aired)},
		{ID: 2, SeasonNumber: 1, EpisodeNumber: 2, Monitored: true, HasFile: true, AirDateUTC: tp(aired)},
		{ID: 3, SeasonNumber: 2, EpisodeNumber: 1, Monitored: true, HasFile: true, AirDateUTC: tp(aired)},
		{ID: 4, SeasonNumber: 2, EpisodeNumber: 2, Monitored: true, HasFile: false, AirDateUTC: tp(aired)},
	}
}

func releasesFixture() []sonarr.Release {
	return []sonarr.Release{packRelease()}
}

func packRelease() sonarr.Release {
	return sonarr.Release{
		GUID:       "pack-1",
		Title:      "Some.Show.S02.1080p.WEB-DL",
		Size:       8 << 30,
		Seeders:    40,
		IndexerID:  3,
		FullSeason: true,
		Quality:    sonarr.ReleaseQuality{Quality: sonarr.QualityDetail{Source: "web", Resolution: 1080}},
	}
}
