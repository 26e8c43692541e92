package manager

import (
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/packarr/packarr/pkg/sonarr"
)

// Candidate is a normalized season pack release, scored and comparable.
// Candidates are ephemeral; only the chosen one's summary reaches the logs.
type Candidate struct {
	GUID       string `json:"guid"`
	Title      string `json:"title"`
	Size       int64  `json:"size"`
	SizeHuman  string `json:"size_human"`
	Seeders    int32  `json:"seeders"`
	Leechers   int32  `json:"leechers"`
	AgeDays    int32  `json:"age_days"`
	Resolution int    `json:"resolution"`
	Source     string `json:"source"`
	Indexer    string `json:"indexer"`
	IndexerID  int32  `json:"indexer_id"`
	Score      int    `json:"score"`
}

func candidateFromRelease(r sonarr.Release) Candidate {
	c := Candidate{
		GUID:       r.GUID,
		Title:      r.Title,
		Size:       r.Size,
		SizeHuman:  humanize.IBytes(uint64(r.Size)),
		Seeders:    r.Seeders,
		Leechers:   r.Leechers,
		AgeDays:    r.Age,
		Resolution: r.Quality.Quality.Resolution,
		Source:     r.Quality.Quality.Source,
		Indexer:    r.Indexer,
		IndexerID:  r.IndexerID,
	}
	c.Score = Score(c)
	return c
}

// suspicious naming markers that flag likely-fake or mis-titled releases
var suspiciousMarkers = []string{
	"cam", "camrip", "hdcam", "ts", "telesync", "telecine",
	"screener", "dvdscr", "workprint", "korsub", "hc ", "hardsub",
	"fake", "password", "wmv",
}

const (
	suspiciousPenalty = 30
	seederBonusCap    = 20
	staleAgeDays      = 730
	staleMinSeeders   = 5
	stalePenalty      = 10
)

// Score ranks a candidate in [0,100]. It is pure and deterministic: the only
// time input is the candidate's own age field.
func Score(c Candidate) int {
	score := resolutionScore(c.Resolution)
	score += sourceScore(c.Source)

	if hasSuspiciousMarker(c.Title) {
		score -= suspiciousPenalty
	}

	// diminishing-returns seeder bonus, saturating toward the cap
	s := int(c.Seeders)
	if s > 0 {
		score += seederBonusCap * s / (s + seederBonusCap)
	}

	// very old listings with few seeders have uncertain availability
	if c.AgeDays > staleAgeDays && c.Seeders < staleMinSeeders {
		score -= stalePenalty
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func resolutionScore(resolution int) int {
	switch {
	case resolution >= 2160:
		return 40
	case resolution >= 1080:
		return 35
	case resolution >= 720:
		return 25
	case resolution >= 480:
		return 15
	default:
		return 10
	}
}

func sourceScore(source string) int {
	switch strings.ToLower(source) {
	case "remux", "bluray-remux":
		return 25
	case "bluray":
		return 20
	case "web", "webdl", "web-dl", "webrip":
		return 15
	case "hdtv", "television":
		return 8
	default:
		return 0
	}
}

func hasSuspiciousMarker(title string) bool {
	lower := strings.ToLower(title)
	for _, marker := range suspiciousMarkers {
		if containsToken(lower, marker) {
			return true
		}
	}
	return false
}

// containsToken matches a marker only on word boundaries so that e.g.
// "BluRayTS" or "artscam" don't trip the filter
func containsToken(title, marker string) bool {
	if strings.HasSuffix(marker, " ") {
		return strings.Contains(title, marker)
	}

	idx := 0
	for {
		i := strings.Index(title[idx:], marker)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(marker)

		beforeOK := start == 0 || isSeparator(title[start-1])
		afterOK := end == len(title) || isSeparator(title[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isSeparator(b byte) bool {
	switch b {
	case '.', ' ', '-', '_', '[', ']', '(', ')':
		return true
	}
	return false
}

// sortCandidates orders by score descending, breaking ties by seeders then size
func sortCandidates(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		if candidates[i].Seeders != candidates[j].Seeders {
			return candidates[i].Seeders > candidates[j].Seeders
		}
		return candidates[i].Size > candidates[j].Size
	})
}
