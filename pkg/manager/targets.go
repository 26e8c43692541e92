package manager

import "sync"

// seasonWildcard marks a whole-show run, which conflicts with every season
// of that show
const seasonWildcard = -1

type targetKey struct {
	instance string
	showID   int64
	season   int
}

func keyFor(t Target) targetKey {
	season := seasonWildcard
	if t.SeasonNumber != nil {
		season = *t.SeasonNumber
	}
	return targetKey{instance: t.Instance, showID: t.ShowID, season: season}
}

// targetRegistry enforces the one-running-operation-per-target invariant.
// A second request for a held target is rejected, never queued, since a
// queued run would act on stale eligibility data.
type targetRegistry struct {
	mu   sync.Mutex
	held map[targetKey]bool
}

func newTargetRegistry() *targetRegistry {
	return &targetRegistry{held: make(map[targetKey]bool)}
}

// acquire claims a target, failing with ErrAlreadyRunning on any overlap.
// A whole-show claim conflicts with every season claim of that show and
// vice versa.
func (r *targetRegistry) acquire(t Target) error {
	key := keyFor(t)

	r.mu.Lock()
	defer r.mu.Unlock()

	if key.season == seasonWildcard {
		for held := range r.held {
			if held.instance == key.instance && held.showID == key.showID {
				return ErrAlreadyRunning
			}
		}
	} else {
		if r.held[key] {
			return ErrAlreadyRunning
		}
		wildcard := key
		wildcard.season = seasonWildcard
		if r.held[wildcard] {
			return ErrAlreadyRunning
		}
	}

	r.held[key] = true
	return nil
}

func (r *targetRegistry) release(t Target) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.held, keyFor(t))
}
