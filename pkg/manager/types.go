package manager

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/packarr/packarr/pkg/machine"
)

// Step is one stage of a single-item run. Transitions are strictly forward.
type Step string

const (
	StepValidating           Step = "validating"
	StepSearching            Step = "searching"
	StepCheckingAvailability Step = "checking_availability"
	StepDeleting             Step = "deleting"
	StepDownloading          Step = "downloading"
	StepDone                 Step = "done"
)

// progress milestones per step
var stepProgress = map[Step]int{
	StepValidating:           10,
	StepSearching:            30,
	StepCheckingAvailability: 50,
	StepDeleting:             70,
	StepDownloading:          90,
	StepDone:                 100,
}

// stepMachine builds the forward-only state machine for one run.
// A failure at any step moves directly to done.
func stepMachine() *machine.StateMachine[Step] {
	return machine.New(StepValidating,
		machine.From(StepValidating).To(StepSearching, StepDone),
		machine.From(StepSearching).To(StepCheckingAvailability, StepDone),
		machine.From(StepCheckingAvailability).To(StepDeleting, StepDone),
		machine.From(StepDeleting).To(StepDownloading, StepDone),
		machine.From(StepDownloading).To(StepDone),
	)
}

// Status is the lifecycle status of an operation or one of its items
type Status string

const (
	StatusRunning   Status = "running"
	StatusSuccess   Status = "success"
	StatusError     Status = "error"
	StatusWarning   Status = "warning"
	StatusCancelled Status = "cancelled"
)

// Target identifies one show/season on one media manager instance.
// A nil SeasonNumber means every monitored season of the show.
type Target struct {
	Instance     string `json:"instance"`
	ShowID       int64  `json:"show_id"`
	SeasonNumber *int   `json:"season_number,omitempty"`
}

func (t Target) String() string {
	if t.SeasonNumber == nil {
		return fmt.Sprintf("%s/show %d", t.Instance, t.ShowID)
	}
	return fmt.Sprintf("%s/show %d season %d", t.Instance, t.ShowID, *t.SeasonNumber)
}

// RunOptions are the per-request knobs of a run
type RunOptions struct {
	// DisableSeasonPackCheck skips the interactive search; the media manager's
	// own automatic season search is triggered after deletion instead
	DisableSeasonPackCheck bool `json:"disable_season_pack_check"`
	// SkipEpisodeDeletion leaves existing episode files in place
	SkipEpisodeDeletion bool `json:"skip_episode_deletion"`
}

// itemResult is the terminal outcome of one item of a bulk operation
type itemResult struct {
	status    Status
	name      string
	message   string
	posterURL string
}

// BulkOperation tracks one logical job of N single-item runs
type BulkOperation struct {
	ID      string
	UserID  string
	Items   []Target
	Options RunOptions

	cancelled atomic.Bool

	mu          sync.Mutex
	status      Status
	currentItem int
	completed   []string
	failed      []string
	createdAt   time.Time
	finishedAt  *time.Time
}

// OperationStatus is an immutable snapshot of a bulk operation for callers
type OperationStatus struct {
	ID              string     `json:"operation_id"`
	UserID          string     `json:"user_id"`
	Status          Status     `json:"status"`
	TotalItems      int        `json:"total_items"`
	CurrentItem     int        `json:"current_item"`
	OverallProgress int        `json:"overall_progress"`
	CompletedItems  []string   `json:"completed_items"`
	FailedItems     []string   `json:"failed_items"`
	CreatedAt       time.Time  `json:"created_at"`
	FinishedAt      *time.Time `json:"finished_at,omitempty"`
}

// Cancel requests a cooperative stop. It reports whether the request was new.
func (op *BulkOperation) Cancel() bool {
	return op.cancelled.CompareAndSwap(false, true)
}

// Cancelled reports whether a cancellation has been requested
func (op *BulkOperation) Cancelled() bool {
	return op.cancelled.Load()
}

func (op *BulkOperation) recordResult(res itemResult) {
	op.mu.Lock()
	defer op.mu.Unlock()
	switch res.status {
	case StatusError:
		op.failed = append(op.failed, res.name)
	default:
		op.completed = append(op.completed, res.name)
	}
}

func (op *BulkOperation) setCurrentItem(i int) {
	op.mu.Lock()
	defer op.mu.Unlock()
	op.currentItem = i
}

func (op *BulkOperation) finish(status Status) {
	now := time.Now()
	op.mu.Lock()
	defer op.mu.Unlock()
	op.status = status
	op.finishedAt = &now
}

func (op *BulkOperation) finishedAtOrNil() *time.Time {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.finishedAt
}

// Snapshot returns the current state of the operation
func (op *BulkOperation) Snapshot() OperationStatus {
	op.mu.Lock()
	defer op.mu.Unlock()

	finished := len(op.completed) + len(op.failed)
	progress := 0
	if len(op.Items) > 0 {
		progress = 100 * finished / len(op.Items)
	}

	status := op.status
	if op.cancelled.Load() && status == StatusRunning {
		status = StatusCancelled
	}

	return OperationStatus{
		ID:              op.ID,
		UserID:          op.UserID,
		Status:          status,
		TotalItems:      len(op.Items),
		CurrentItem:     op.currentItem,
		OverallProgress: progress,
		CompletedItems:  append([]string(nil), op.completed...),
		FailedItems:     append([]string(nil), op.failed...),
		CreatedAt:       op.createdAt,
		FinishedAt:      op.finishedAt,
	}
}
