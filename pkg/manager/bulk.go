package manager

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/packarr/packarr/pkg/logger"
	"github.com/packarr/packarr/pkg/progress"
)

// StartSeasonIt accepts a single-item run. It is a bulk operation of size
// one: same lifecycle, same events, same bookkeeping.
func (m MediaManager) StartSeasonIt(ctx context.Context, userID string, target Target, opts RunOptions) (string, error) {
	return m.StartBulk(ctx, userID, []Target{target}, opts)
}

// StartBulk accepts a bulk run and returns its operation id immediately.
// Every target is claimed up front; any overlap with an in-flight run
// rejects the whole request rather than silently queueing stale work.
func (m MediaManager) StartBulk(ctx context.Context, userID string, targets []Target, opts RunOptions) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("user id is required")
	}
	if len(targets) == 0 {
		return "", fmt.Errorf("no items to process")
	}

	for _, t := range targets {
		if _, err := m.client(t.Instance); err != nil {
			return "", fmt.Errorf("%w: %q", ErrUnknownInstance, t.Instance)
		}
	}

	acquired := make([]Target, 0, len(targets))
	for _, t := range targets {
		if err := m.targets.acquire(t); err != nil {
			for _, a := range acquired {
				m.targets.release(a)
			}
			return "", fmt.Errorf("%w: %s", ErrAlreadyRunning, t)
		}
		acquired = append(acquired, t)
	}

	op := &BulkOperation{
		ID:      uuid.NewString(),
		UserID:  userID,
		Items:   targets,
		Options: opts,
		status:  StatusRunning,
	}
	op.createdAt = time.Now()

	m.gcExpired()
	m.ops.Set(op.ID, op)

	// the job outlives the request that started it
	jobCtx := logger.WithCtx(context.Background(), logger.FromCtx(ctx))
	go m.run(jobCtx, op)

	return op.ID, nil
}

// run processes the operation's items sequentially, emitting aggregate
// events after every item and exactly one terminal event at the end.
func (m MediaManager) run(ctx context.Context, op *BulkOperation) {
	log := logger.FromCtx(ctx)

	items := make([]progress.BulkItem, 0, len(op.Items))
	for _, t := range op.Items {
		item := progress.BulkItem{ShowID: t.ShowID, Name: t.String()}
		if t.SeasonNumber != nil {
			item.SeasonNumber = *t.SeasonNumber
		}
		items = append(items, item)
	}

	m.hub.Publish(op.UserID, progress.BulkOperationStart{
		Type:          progress.EventTypeBulkOperationStart,
		OperationID:   op.ID,
		OperationType: operationTypeSeasonIt,
		TotalItems:    len(op.Items),
		Items:         items,
		Message:       fmt.Sprintf("Processing %d items", len(op.Items)),
		Timestamp:     time.Now(),
	})

	attempted := 0
	for i, target := range op.Items {
		// cooperative cancellation, checked at item boundaries only so an
		// in-flight delete or download always runs to completion
		if op.Cancelled() {
			m.releaseRemaining(op.Items[i:])
			break
		}

		attempted++
		op.setCurrentItem(i + 1)

		res := m.runItem(ctx, op, target)
		m.targets.release(target)
		op.recordResult(res)

		log.Infow("bulk item finished", "operation", op.ID, "item", res.name, "status", res.status, "message", res.message)

		snap := op.Snapshot()
		m.hub.Publish(op.UserID, progress.BulkOperationUpdate{
			Type:                progress.EventTypeBulkOperationUpdate,
			OperationID:         op.ID,
			OverallProgress:     snap.OverallProgress,
			CurrentItem:         i + 1,
			CurrentItemName:     res.name,
			CurrentItemProgress: 100,
			CompletedItems:      len(snap.CompletedItems),
			FailedItems:         len(snap.FailedItems),
			PosterURL:           res.posterURL,
			Timestamp:           time.Now(),
		})

		if i < len(op.Items)-1 && !op.Cancelled() {
			select {
			case <-time.After(m.interItemDelay):
			case <-ctx.Done():
			}
		}
	}

	snap := op.Snapshot()

	status := StatusSuccess
	message := fmt.Sprintf("Processed %d items: %d succeeded, %d failed", attempted, len(snap.CompletedItems), len(snap.FailedItems))
	switch {
	case op.Cancelled():
		status = StatusCancelled
		message = fmt.Sprintf("Cancelled after %d of %d items", attempted, len(op.Items))
	case len(snap.FailedItems) > 0 && len(snap.CompletedItems) == 0:
		status = StatusError
	case len(snap.FailedItems) > 0:
		status = StatusWarning
	}

	op.finish(status)

	m.hub.Publish(op.UserID, progress.BulkOperationComplete{
		Type:           progress.EventTypeBulkOperationComplete,
		OperationID:    op.ID,
		Status:         string(status),
		Message:        message,
		CompletedItems: snap.CompletedItems,
		FailedItems:    snap.FailedItems,
		SuccessCount:   len(snap.CompletedItems),
		FailureCount:   len(snap.FailedItems),
		Timestamp:      time.Now(),
	})

	log.Infow("bulk operation finished", "operation", op.ID, "status", status, "succeeded", len(snap.CompletedItems), "failed", len(snap.FailedItems))
}

func (m MediaManager) releaseRemaining(targets []Target) {
	for _, t := range targets {
		m.targets.release(t)
	}
}

// Cancel requests a cooperative stop of a running operation. Items not yet
// started will never start; the in-flight item finishes.
func (m MediaManager) Cancel(operationID string) error {
	op, ok := m.ops.Get(operationID)
	if !ok {
		return ErrOperationNotFound
	}

	if op.Cancel() {
		m.hub.Publish(op.UserID, progress.ClearProgress{
			Type:    progress.EventTypeClearProgress,
			Message: "Operation cancelled",
		})
	}

	return nil
}

// Get returns a snapshot of an operation, letting reconnecting observers
// re-derive state they missed
func (m MediaManager) Get(operationID string) (OperationStatus, error) {
	op, ok := m.ops.Get(operationID)
	if !ok {
		return OperationStatus{}, ErrOperationNotFound
	}

	return op.Snapshot(), nil
}

// ListByUser returns the user's operations, newest first
func (m MediaManager) ListByUser(userID string) []OperationStatus {
	statuses := make([]OperationStatus, 0)
	for _, op := range m.ops.Values() {
		if op.UserID != userID {
			continue
		}
		statuses = append(statuses, op.Snapshot())
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].CreatedAt.After(statuses[j].CreatedAt)
	})

	return statuses
}

// gcExpired drops terminal operations older than the retention window
func (m MediaManager) gcExpired() {
	cutoff := time.Now().Add(-m.retention)
	for _, op := range m.ops.Values() {
		finished := op.finishedAtOrNil()
		if finished != nil && finished.Before(cutoff) {
			m.ops.Delete(op.ID)
		}
	}
}
