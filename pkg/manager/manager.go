package manager

import (
	"context"
	"time"

	"github.com/packarr/packarr/pkg/cache"
	"github.com/packarr/packarr/pkg/logger"
	"github.com/packarr/packarr/pkg/progress"
	"github.com/packarr/packarr/pkg/sonarr"
	"github.com/packarr/packarr/pkg/storage"
	"github.com/packarr/packarr/pkg/storage/sqlite/schema/gen/model"
)

const (
	// the original workflow pauses between bulk items to avoid hammering
	// the media manager's indexers
	DefaultInterItemDelay = 3 * time.Second
	// how long terminal operations stay queryable before garbage collection
	DefaultRetention = time.Hour
)

// Options tune the orchestration engine
type Options struct {
	InterItemDelay     time.Duration
	Retention          time.Duration
	MinBytesPerEpisode int64
}

// MediaManager orchestrates season pack acquisition against one or more
// media manager instances
type MediaManager struct {
	clients map[string]sonarr.ClientInterface
	store   storage.Storage
	hub     progress.Hub
	targets *targetRegistry
	ops     *cache.Cache[string, *BulkOperation]

	interItemDelay     time.Duration
	retention          time.Duration
	minBytesPerEpisode int64
}

// New creates a MediaManager over the given media manager clients, keyed by
// instance name
func New(clients map[string]sonarr.ClientInterface, store storage.Storage, hub progress.Hub, opts Options) MediaManager {
	if opts.InterItemDelay <= 0 {
		opts.InterItemDelay = DefaultInterItemDelay
	}
	if opts.Retention <= 0 {
		opts.Retention = DefaultRetention
	}
	if opts.MinBytesPerEpisode <= 0 {
		opts.MinBytesPerEpisode = DefaultMinBytesPerEpisode
	}

	return MediaManager{
		clients:            clients,
		store:              store,
		hub:                hub,
		targets:            newTargetRegistry(),
		ops:                cache.New[string, *BulkOperation](),
		interItemDelay:     opts.InterItemDelay,
		retention:          opts.Retention,
		minBytesPerEpisode: opts.MinBytesPerEpisode,
	}
}

// client resolves an instance name. An empty name resolves when exactly one
// instance is configured.
func (m MediaManager) client(instance string) (sonarr.ClientInterface, error) {
	if instance == "" && len(m.clients) == 1 {
		for _, c := range m.clients {
			return c, nil
		}
	}

	c, ok := m.clients[instance]
	if !ok {
		return nil, ErrUnknownInstance
	}

	return c, nil
}

// TestConnections pings every configured instance. Failures are logged but
// not fatal; an instance may simply be down at startup.
func (m MediaManager) TestConnections(ctx context.Context) {
	log := logger.FromCtx(ctx)

	for name, client := range m.clients {
		if err := client.Ping(ctx); err != nil {
			log.Warnw("media manager connection test failed", "instance", name, "error", err)
			continue
		}
		log.Infow("media manager connection ok", "instance", name)
	}
}

// ManualSearch returns ranked season pack candidates for a caller-driven
// selection flow
func (m MediaManager) ManualSearch(ctx context.Context, instance string, showID int64, seasonNumber int) ([]Candidate, error) {
	client, err := m.client(instance)
	if err != nil {
		return nil, err
	}

	episodes, err := client.ListEpisodes(ctx, showID)
	if err != nil {
		return nil, err
	}

	return m.searchCandidates(ctx, client, showID, seasonNumber, seasonEpisodeCount(episodes, seasonNumber))
}

// ManualDownload grabs a caller-chosen candidate by its opaque handle
func (m MediaManager) ManualDownload(ctx context.Context, instance, guid string, indexerID int32) error {
	client, err := m.client(instance)
	if err != nil {
		return err
	}

	return client.GrabRelease(ctx, guid, indexerID)
}

// ListActivity returns a page of the user's activity log history
func (m MediaManager) ListActivity(ctx context.Context, userID string, limit, offset int64) ([]*model.ActivityLog, error) {
	return m.store.ListActivityLogs(ctx, userID, limit, offset)
}
