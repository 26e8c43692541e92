package manager

import (
	"context"
	"fmt"
	"time"

	"github.com/packarr/packarr/pkg/logger"
	"github.com/packarr/packarr/pkg/progress"
	"github.com/packarr/packarr/pkg/sonarr"
	"github.com/packarr/packarr/pkg/storage"
	"github.com/packarr/packarr/pkg/storage/sqlite/schema/gen/model"
)

const operationTypeSeasonIt = "season_it"

// emitStep pushes one enhanced progress event for a step transition
func (m MediaManager) emitStep(userID string, series *sonarr.Series, seasonNumber int, step Step, status Status, message string) {
	m.hub.Publish(userID, progress.EnhancedProgressUpdate{
		Type:          progress.EventTypeEnhancedProgress,
		Message:       message,
		Progress:      stepProgress[step],
		Status:        string(status),
		ShowTitle:     series.Title,
		OperationType: operationTypeSeasonIt,
		CurrentStep:   string(step),
		Details: progress.Details{
			PosterURL:    sonarr.PosterURL(series),
			SeasonNumber: seasonNumber,
		},
		Timestamp: time.Now(),
	})
}

// runItem executes one item of a bulk operation end to end: fetch state,
// write the activity log row, run the per-season sequence, finalize the row.
// All failures are converted into a terminal itemResult; nothing propagates
// to the bulk loop.
func (m MediaManager) runItem(ctx context.Context, op *BulkOperation, target Target) itemResult {
	name := target.String()

	client, err := m.client(target.Instance)
	if err != nil {
		return itemResult{status: StatusError, name: name, message: err.Error()}
	}

	series, err := client.GetSeries(ctx, target.ShowID)
	if err != nil {
		return itemResult{status: StatusError, name: name, message: fmt.Sprintf("failed to fetch show: %v", err)}
	}

	episodes, err := client.ListEpisodes(ctx, target.ShowID)
	if err != nil {
		return itemResult{status: StatusError, name: name, message: fmt.Sprintf("failed to fetch episodes: %v", err)}
	}

	name = series.Title
	if target.SeasonNumber != nil {
		name = fmt.Sprintf("%s S%02d", series.Title, *target.SeasonNumber)
	}

	logID := m.createLogEntry(ctx, op, target, series)

	var res itemResult
	if target.SeasonNumber != nil {
		res = m.processSeason(ctx, op, client, series, episodes, *target.SeasonNumber)
	} else {
		res = m.processShow(ctx, op, client, series, episodes)
	}
	res.name = name
	res.posterURL = sonarr.PosterURL(series)

	m.finishLogEntry(ctx, logID, res)
	return res
}

// processSeason is the single-item state machine: validate, search, check
// availability, delete, download. Strictly forward, one progress event per
// transition.
func (m MediaManager) processSeason(ctx context.Context, op *BulkOperation, client sonarr.ClientInterface, series *sonarr.Series, episodes []sonarr.Episode, seasonNumber int) itemResult {
	log := logger.FromCtx(ctx)
	userID := op.UserID
	sm := stepMachine()

	season, ok := findSeason(series, seasonNumber)
	if !ok {
		msg := fmt.Sprintf("%s has no season %d", series.Title, seasonNumber)
		m.emitStep(userID, series, seasonNumber, StepDone, StatusError, msg)
		return itemResult{status: StatusError, message: msg}
	}

	m.emitStep(userID, series, seasonNumber, StepValidating, StatusRunning, fmt.Sprintf("Validating %s season %d", series.Title, seasonNumber))

	eligibility := ValidateSeason(season, episodes, time.Now())
	if !eligibility.Qualifies {
		msg := skipMessage(eligibility.Reason, series.Title, seasonNumber)
		m.emitStep(userID, series, seasonNumber, StepDone, StatusWarning, msg)
		return itemResult{status: StatusWarning, message: msg}
	}

	fail := func(step Step, msg string) itemResult {
		m.emitStep(userID, series, seasonNumber, StepDone, StatusError, msg)
		log.Errorw("season run failed", "show", series.Title, "season", seasonNumber, "step", step, "message", msg)
		return itemResult{status: StatusError, message: msg}
	}

	var candidates []Candidate
	if !op.Options.DisableSeasonPackCheck {
		if err := sm.Transition(StepSearching); err != nil {
			return fail(StepSearching, err.Error())
		}
		m.emitStep(userID, series, seasonNumber, StepSearching, StatusRunning, fmt.Sprintf("Searching for %s season %d packs", series.Title, seasonNumber))

		var err error
		candidates, err = m.searchCandidates(ctx, client, series.ID, seasonNumber, seasonEpisodeCount(episodes, seasonNumber))
		if err != nil {
			return fail(StepSearching, err.Error())
		}

		if err := sm.Transition(StepCheckingAvailability); err != nil {
			return fail(StepCheckingAvailability, err.Error())
		}

		if len(candidates) == 0 {
			msg := skipMessage(ReasonNoSeasonPacksFound, series.Title, seasonNumber)
			m.emitStep(userID, series, seasonNumber, StepDone, StatusWarning, msg)
			return itemResult{status: StatusWarning, message: msg}
		}

		m.emitStep(userID, series, seasonNumber, StepCheckingAvailability, StatusRunning, fmt.Sprintf("Found %d season packs, best: %s (%s)", len(candidates), candidates[0].Title, candidates[0].SizeHuman))
	} else {
		// the media manager's own search discovers availability later
		if err := sm.Transition(StepSearching); err != nil {
			return fail(StepSearching, err.Error())
		}
		if err := sm.Transition(StepCheckingAvailability); err != nil {
			return fail(StepCheckingAvailability, err.Error())
		}
		m.emitStep(userID, series, seasonNumber, StepCheckingAvailability, StatusRunning, "Season pack check disabled, deferring to the media manager's search")
	}

	if err := sm.Transition(StepDeleting); err != nil {
		return fail(StepDeleting, err.Error())
	}

	deleted := false
	if !op.Options.SkipEpisodeDeletion {
		m.emitStep(userID, series, seasonNumber, StepDeleting, StatusRunning, fmt.Sprintf("Deleting existing episode files for %s season %d", series.Title, seasonNumber))

		count, err := client.DeleteSeasonEpisodeFiles(ctx, series.ID, seasonNumber)
		if err != nil {
			return fail(StepDeleting, fmt.Sprintf("%v: %v", ErrDeletionFailed, err))
		}

		deleted = count > 0
		log.Debugw("removed episode files", "show", series.Title, "season", seasonNumber, "count", count)
	}

	if err := sm.Transition(StepDownloading); err != nil {
		return fail(StepDownloading, err.Error())
	}

	var downloadErr error
	var successMsg string
	if len(candidates) > 0 {
		best := candidates[0]
		m.emitStep(userID, series, seasonNumber, StepDownloading, StatusRunning, fmt.Sprintf("Downloading %s (%s, %d seeders)", best.Title, best.SizeHuman, best.Seeders))
		downloadErr = client.GrabRelease(ctx, best.GUID, best.IndexerID)
		successMsg = fmt.Sprintf("Season pack download started: %s (%s)", best.Title, best.SizeHuman)
	} else {
		m.emitStep(userID, series, seasonNumber, StepDownloading, StatusRunning, fmt.Sprintf("Triggering season search for %s season %d", series.Title, seasonNumber))
		_, downloadErr = client.TriggerSeasonSearch(ctx, series.ID, seasonNumber)
		successMsg = fmt.Sprintf("Season search triggered for %s season %d", series.Title, seasonNumber)
	}

	if downloadErr != nil {
		msg := fmt.Sprintf("%v: %v", ErrDownloadFailed, downloadErr)
		if deleted {
			// the one accepted partial-failure state. No compensation is
			// attempted; the note makes the condition visible.
			msg += "; existing episode files were already removed"
		}
		return fail(StepDownloading, msg)
	}

	if err := sm.Transition(StepDone); err != nil {
		return fail(StepDone, err.Error())
	}
	m.emitStep(userID, series, seasonNumber, StepDone, StatusSuccess, successMsg)

	return itemResult{status: StatusSuccess, message: successMsg}
}

// processShow runs the per-season sequence for every monitored season that
// individually qualifies. Non-qualifying seasons are skipped, not failed.
func (m MediaManager) processShow(ctx context.Context, op *BulkOperation, client sonarr.ClientInterface, series *sonarr.Series, episodes []sonarr.Episode) itemResult {
	log := logger.FromCtx(ctx)
	now := time.Now()

	processed := 0
	skipped := 0
	failures := make([]string, 0)

	for _, season := range series.Seasons {
		if op.Cancelled() {
			break
		}
		if !season.Monitored || season.SeasonNumber == 0 {
			continue
		}

		eligibility := ValidateSeason(season, episodes, now)
		if !eligibility.Qualifies {
			log.Infow("skipping season", "show", series.Title, "season", season.SeasonNumber, "reason", eligibility.Reason)
			skipped++
			continue
		}

		res := m.processSeason(ctx, op, client, series, episodes, season.SeasonNumber)
		switch res.status {
		case StatusError:
			failures = append(failures, res.message)
		case StatusWarning:
			skipped++
		default:
			processed++
		}
	}

	if len(failures) > 0 {
		return itemResult{status: StatusError, message: fmt.Sprintf("%d of %d seasons failed: %s", len(failures), processed+skipped+len(failures), failures[0])}
	}
	if processed == 0 {
		return itemResult{status: StatusWarning, message: fmt.Sprintf("no seasons of %s qualified for a season pack", series.Title)}
	}

	return itemResult{status: StatusSuccess, message: fmt.Sprintf("%d seasons processed, %d skipped", processed, skipped)}
}

func findSeason(series *sonarr.Series, seasonNumber int) (sonarr.Season, bool) {
	for _, s := range series.Seasons {
		if s.SeasonNumber == seasonNumber {
			return s, true
		}
	}
	return sonarr.Season{}, false
}

func skipMessage(reason Reason, title string, seasonNumber int) string {
	switch reason {
	case ReasonNoMissingEpisodes:
		return fmt.Sprintf("%s season %d has no missing monitored episodes", title, seasonNumber)
	case ReasonSeasonNotMonitored:
		return fmt.Sprintf("%s season %d is not monitored", title, seasonNumber)
	case ReasonSeasonIncompleteUnaird:
		return fmt.Sprintf("%s season %d has unaired episodes, skipping to protect existing files", title, seasonNumber)
	case ReasonNoSeasonPacksFound:
		return fmt.Sprintf("no season packs found for %s season %d", title, seasonNumber)
	default:
		return fmt.Sprintf("%s season %d was skipped (%s)", title, seasonNumber, reason)
	}
}

func (m MediaManager) createLogEntry(ctx context.Context, op *BulkOperation, target Target, series *sonarr.Series) int64 {
	log := logger.FromCtx(ctx)

	entry := model.ActivityLog{
		UserID:        op.UserID,
		OperationID:   op.ID,
		OperationType: operationTypeSeasonIt,
		ShowID:        int32(target.ShowID),
		ShowTitle:     series.Title,
		Status:        storage.ActivityStatusInProgress,
		CreatedAt:     time.Now().UTC(),
	}
	if target.SeasonNumber != nil {
		season := int32(*target.SeasonNumber)
		entry.SeasonNumber = &season
	}

	id, err := m.store.CreateActivityLog(ctx, entry)
	if err != nil {
		// the run is more important than its log row
		log.Warnw("failed to create activity log entry", "show", series.Title, "error", err)
		return 0
	}

	return id
}

func (m MediaManager) finishLogEntry(ctx context.Context, id int64, res itemResult) {
	if id == 0 {
		return
	}

	log := logger.FromCtx(ctx)

	status := storage.ActivityStatusSuccess
	switch res.status {
	case StatusError:
		status = storage.ActivityStatusError
	case StatusWarning:
		status = storage.ActivityStatusWarning
	case StatusCancelled:
		status = storage.ActivityStatusCancelled
	}

	if err := m.store.FinishActivityLog(ctx, id, status, res.message); err != nil {
		log.Warnw("failed to finalize activity log entry", "id", id, "error", err)
	}
}
