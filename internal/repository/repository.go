// Package repository provides database abstraction for the graphkit service.
package repository

import (
	"context"

	"github.com/parascale/graphkit/pkg/model"
)

// RunRepository defines the interface for graph-run database operations.
type RunRepository interface {
	// GetPendingRuns retrieves runs that are pending execution.
	GetPendingRuns(ctx context.Context, limit int) ([]*model.RunRecord, error)

	// GetRunByID retrieves a run by its ID.
	GetRunByID(ctx context.Context, id int64) (*model.RunRecord, error)

	// GetRunByUUID retrieves a run by its UUID.
	GetRunByUUID(ctx context.Context, runUUID string) (*model.RunRecord, error)

	// UpdateRunStatus updates the status of a run.
	UpdateRunStatus(ctx context.Context, id int64, status model.RunStatus) error

	// UpdateRunStatusWithInfo updates the status with additional info.
	UpdateRunStatusWithInfo(ctx context.Context, id int64, status model.RunStatus, info string) error

	// LockRunForExecution attempts to lock a run for execution (prevents concurrent processing).
	LockRunForExecution(ctx context.Context, id int64) (bool, error)
}

// PartitionRepository defines the interface for BiPart partition result operations.
type PartitionRepository interface {
	// SavePartitionResult saves a partition result to the database.
	SavePartitionResult(ctx context.Context, result *model.PartitionResult) error

	// GetPartitionResultByRunUUID retrieves the partition result for a run.
	GetPartitionResultByRunUUID(ctx context.Context, runUUID string) (*model.PartitionResult, error)

	// UpdatePartitionResult updates an existing partition result.
	UpdatePartitionResult(ctx context.Context, result *model.PartitionResult) error
}
