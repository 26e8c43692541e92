package manager

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_Deterministic(t *testing.T) {
	c := Candidate{
		Title:      "Some.Show.S01.1080p.BluRay.x264-GROUP",
		Size:       20 << 30,
		Seeders:    50,
		AgeDays:    100,
		Resolution: 1080,
		Source:     "bluray",
	}

	first := Score(c)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(c))
	}
}

func TestScore_ResolutionOrdering(t *testing.T) {
	base := Candidate{Source: "web", Seeders: 10}

	resolutions := []int{2160, 1080, 720, 480, 0}
	scores := make([]int, 0, len(resolutions))
	for _, r := range resolutions {
		c := base
		c.Resolution = r
		scores = append(scores, Score(c))
	}

	for i := 1; i < len(scores); i++ {
		assert.Greater(t, scores[i-1], scores[i], "resolution %d should outscore %d", resolutions[i-1], resolutions[i])
	}
}

func TestScore_SourceTiers(t *testing.T) {
	base := Candidate{Resolution: 1080, Seeders: 10}

	remux := base
	remux.Source = "remux"
	bluray := base
	bluray.Source = "bluray"
	web := base
	web.Source = "web"
	hdtv := base
	hdtv.Source = "hdtv"
	unknown := base

	assert.Greater(t, Score(remux), Score(bluray))
	assert.Greater(t, Score(bluray), Score(web))
	assert.Greater(t, Score(web), Score(hdtv))
	assert.Greater(t, Score(hdtv), Score(unknown))
}

func TestScore_SuspiciousMarkers(t *testing.T) {
	clean := Candidate{Title: "Some.Show.S01.1080p.WEB-DL", Resolution: 1080, Source: "web", Seeders: 10}
	cam := clean
	cam.Title = "Some.Show.S01.1080p.HDCAM"

	assert.Equal(t, Score(clean)-suspiciousPenalty, Score(cam))

	// markers only match on token boundaries
	notCam := clean
	notCam.Title = "Some.Showcame.S01.1080p.WEB-DL"
	assert.Equal(t, Score(clean), Score(notCam))
}

func TestScore_SeederBonusSaturates(t *testing.T) {
	base := Candidate{Resolution: 1080, Source: "web"}

	none := base
	few := base
	few.Seeders = 5
	many := base
	many.Seeders = 10000

	assert.Greater(t, Score(few), Score(none))
	assert.Greater(t, Score(many), Score(few))
	// the bonus saturates at its cap
	assert.LessOrEqual(t, Score(many)-Score(none), seederBonusCap)
}

func TestScore_StalePenalty(t *testing.T) {
	fresh := Candidate{Resolution: 1080, Source: "web", Seeders: 2, AgeDays: 30}
	stale := fresh
	stale.AgeDays = 1000

	assert.Equal(t, Score(fresh)-stalePenalty, Score(stale))

	// plenty of seeders, no penalty regardless of age
	staleButSeeded := stale
	staleButSeeded.Seeders = 100
	freshSeeded := fresh
	freshSeeded.Seeders = 100
	assert.Equal(t, Score(freshSeeded), Score(staleButSeeded))
}

func TestScore_Clamped(t *testing.T) {
	junk := Candidate{Title: "Some.Show.S01.HDCAM.FAKE", Resolution: 0, Source: ""}
	assert.GreaterOrEqual(t, Score(junk), 0)

	perfect := Candidate{Title: "Some.Show.S01.2160p.Remux", Resolution: 2160, Source: "remux", Seeders: 100000}
	assert.LessOrEqual(t, Score(perfect), 100)
}

func TestSortCandidates(t *testing.T) {
	candidates := []Candidate{
		{Title: "low", Score: 40, Seeders: 100, Size: 10},
		{Title: "high", Score: 80, Seeders: 1, Size: 10},
		{Title: "tie-more-seeders", Score: 60, Seeders: 50, Size: 10},
		{Title: "tie-fewer-seeders", Score: 60, Seeders: 10, Size: 10},
		{Title: "tie-all-but-bigger", Score: 60, Seeders: 10, Size: 99},
	}

	sortCandidates(candidates)

	titles := make([]string, 0, len(candidates))
	for _, c := range candidates {
		titles = append(titles, c.Title)
	}

	assert.Equal(t, []string{"high", "tie-more-seeders", "tie-all-but-bigger", "tie-fewer-seeders", "low"}, titles)
}
