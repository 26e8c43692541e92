package storage

import (
	"context"
	"errors"

	"github.com/packarr/packarr/pkg/storage/sqlite/schema/gen/model"
)

var ErrNotFound = errors.New("not found in storage")

// Activity log terminal statuses. A row is created in progress and finalized
// exactly once.
const (
	ActivityStatusInProgress = "in_progress"
	ActivityStatusSuccess    = "success"
	ActivityStatusWarning    = "warning"
	ActivityStatusError      = "error"
	ActivityStatusCancelled  = "cancelled"
)

type Storage interface {
	Init(ctx context.Context) error
	ActivityLogStorage
}

type ActivityLogStorage interface {
	CreateActivityLog(ctx context.Context, entry model.ActivityLog) (int64, error)
	FinishActivityLog(ctx context.Context, id int64, status, message string) error
	GetActivityLog(ctx context.Context, id int64) (*model.ActivityLog, error)
	ListActivityLogs(ctx context.Context, userID string, limit, offset int64) ([]*model.ActivityLog, error)
}
