package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/packarr/packarr/pkg/storage"
	"github.com/packarr/packarr/pkg/storage/sqlite/schema/gen/model"
	"github.com/packarr/packarr/pkg/storage/sqlite/schema/gen/table"
)

// CreateActivityLog stores a new activity log entry and returns its id
func (s *SQLite) CreateActivityLog(ctx context.Context, entry model.ActivityLog) (int64, error) {
	if entry.Status == "" {
		entry.Status = storage.ActivityStatusInProgress
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	stmt := table.ActivityLog.
		INSERT(table.ActivityLog.MutableColumns).
		MODEL(entry)

	result, err := stmt.ExecContext(ctx, s.db)
	if err != nil {
		return 0, fmt.Errorf("failed to create activity log: %w", err)
	}

	return result.LastInsertId()
}

// FinishActivityLog finalizes an entry with its terminal status and message
func (s *SQLite) FinishActivityLog(ctx context.Context, id int64, status, message string) error {
	now := time.Now().UTC()

	stmt := table.ActivityLog.
		UPDATE(table.ActivityLog.Status, table.ActivityLog.Message, table.ActivityLog.CompletedAt).
		MODEL(model.ActivityLog{
			Status:      status,
			Message:     &message,
			CompletedAt: &now,
		}).
		WHERE(table.ActivityLog.ID.EQ(sqlite.Int64(id)))

	result, err := stmt.ExecContext(ctx, s.db)
	if err != nil {
		return fmt.Errorf("failed to finish activity log: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// GetActivityLog retrieves a single activity log entry by id
func (s *SQLite) GetActivityLog(ctx context.Context, id int64) (*model.ActivityLog, error) {
	stmt := table.ActivityLog.
		SELECT(table.ActivityLog.AllColumns).
		FROM(table.ActivityLog).
		WHERE(table.ActivityLog.ID.EQ(sqlite.Int64(id)))

	entry := new(model.ActivityLog)
	err := stmt.QueryContext(ctx, s.db, entry)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get activity log: %w", err)
	}

	return entry, nil
}

// ListActivityLogs lists a user's activity log entries, most recent first
func (s *SQLite) ListActivityLogs(ctx context.Context, userID string, limit, offset int64) ([]*model.ActivityLog, error) {
	if limit <= 0 {
		limit = 50
	}

	stmt := table.ActivityLog.
		SELECT(table.ActivityLog.AllColumns).
		FROM(table.ActivityLog).
		WHERE(table.ActivityLog.UserID.EQ(sqlite.String(userID))).
		ORDER_BY(table.ActivityLog.CreatedAt.DESC(), table.ActivityLog.ID.DESC()).
		LIMIT(limit).
		OFFSET(offset)

	entries := make([]*model.ActivityLog, 0)
	err := stmt.QueryContext(ctx, s.db, &entries)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}

	return entries, nil
}
