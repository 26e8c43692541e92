package manager

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/packarr/packarr/pkg/logger"
	"github.com/packarr/packarr/pkg/sonarr"
	"golang.org/x/text/cases"
)

// DefaultMinBytesPerEpisode is the legitimacy filter's plausibility floor:
// a real season pack should carry at least this much data per episode.
const DefaultMinBytesPerEpisode int64 = 25 << 20

var (
	// S01 / Season 1 / Complete, without an episode marker
	seasonTagPattern    = regexp.MustCompile(`(?i)\bs(\d{1,2})\b`)
	seasonWordPattern   = regexp.MustCompile(`(?i)\bseason[ ._-]?(\d{1,2})\b`)
	completePattern     = regexp.MustCompile(`(?i)\bcomplete\b`)
	episodeMarkPattern  = regexp.MustCompile(`(?i)\bs\d{1,2}[ ._-]?e\d{1,3}\b`)
	episodeCrossPattern = regexp.MustCompile(`(?i)\b\d{1,2}x\d{2,3}\b`)
)

// isLikelySeasonPack checks whether a release title encodes a full-season
// pack for the given season. It is a bias, not a guarantee.
func isLikelySeasonPack(title string, seasonNumber int) bool {
	// a Caser is stateful and can't be shared between goroutines
	folded := cases.Fold().String(title)

	// an explicit episode marker disqualifies immediately
	if episodeMarkPattern.MatchString(folded) || episodeCrossPattern.MatchString(folded) {
		return false
	}

	if m := seasonTagPattern.FindStringSubmatch(folded); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n == seasonNumber {
			return true
		}
	}

	if m := seasonWordPattern.FindStringSubmatch(folded); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n == seasonNumber {
			return true
		}
	}

	return completePattern.MatchString(folded)
}

// searchCandidates queries the media manager for season releases and returns
// scored candidates, best first. A transport failure is reported as
// ErrSearchFailed so callers can tell "couldn't ask" from "nothing found".
func (m MediaManager) searchCandidates(ctx context.Context, client sonarr.ClientInterface, seriesID int64, seasonNumber, episodeCount int) ([]Candidate, error) {
	log := logger.FromCtx(ctx)

	releases, err := client.SearchSeasonReleases(ctx, seriesID, seasonNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	minSize := m.minBytesPerEpisode * int64(episodeCount)

	candidates := make([]Candidate, 0, len(releases))
	for _, r := range releases {
		if r.Rejected {
			continue
		}
		if !r.FullSeason && !isLikelySeasonPack(r.Title, seasonNumber) {
			continue
		}
		if episodeCount > 0 && r.Size < minSize {
			log.Debugw("discarding implausibly small season pack", "title", r.Title, "size", r.Size, "min", minSize)
			continue
		}

		candidates = append(candidates, candidateFromRelease(r))
	}

	sortCandidates(candidates)
	return candidates, nil
}
