package manager

import (
	"time"

	"github.com/packarr/packarr/pkg/sonarr"
)

// Reason explains why a season does or does not qualify for replacement
type Reason string

const (
	ReasonOK                     Reason = "OK"
	ReasonNoMissingEpisodes      Reason = "NO_MISSING_EPISODES"
	ReasonSeasonNotMonitored     Reason = "SEASON_NOT_MONITORED"
	ReasonSeasonIncompleteUnaird Reason = "SEASON_INCOMPLETE_UNAIRED"
	ReasonNoSeasonPacksFound     Reason = "NO_SEASON_PACKS_FOUND"
)

// EligibilityResult is computed fresh per invocation and never persisted
type EligibilityResult struct {
	Qualifies bool
	Reason    Reason
}

func eligible() EligibilityResult {
	return EligibilityResult{Qualifies: true, Reason: ReasonOK}
}

func notEligible(reason Reason) EligibilityResult {
	return EligibilityResult{Qualifies: false, Reason: reason}
}

// ValidateSeason decides whether a season qualifies for the
// replace-with-pack workflow. Rules are evaluated in order, first match wins.
// The unaired guard cannot be disabled by configuration: acquiring a pack for
// an unaired season is impossible and must not trigger deletion.
func ValidateSeason(season sonarr.Season, episodes []sonarr.Episode, now time.Time) EligibilityResult {
	missing := 0
	for _, ep := range episodes {
		if ep.SeasonNumber != season.SeasonNumber {
			continue
		}
		if ep.Monitored && !ep.HasFile {
			missing++
		}
	}

	if missing == 0 {
		return notEligible(ReasonNoMissingEpisodes)
	}

	if !season.Monitored {
		return notEligible(ReasonSeasonNotMonitored)
	}

	for _, ep := range episodes {
		if ep.SeasonNumber != season.SeasonNumber {
			continue
		}
		if ep.Monitored && ep.AirDateUTC != nil && ep.AirDateUTC.After(now) {
			return notEligible(ReasonSeasonIncompleteUnaird)
		}
	}

	return eligible()
}

// seasonEpisodeCount counts the episodes of one season, used by the
// legitimacy filter's plausible-size check
func seasonEpisodeCount(episodes []sonarr.Episode, seasonNumber int) int {
	count := 0
	for _, ep := range episodes {
		if ep.SeasonNumber == seasonNumber {
			count++
		}
	}
	return count
}
