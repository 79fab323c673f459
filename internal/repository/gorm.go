package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/parascale/graphkit/pkg/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRunRepository implements RunRepository using GORM.
type GormRunRepository struct {
	db *gorm.DB
}

// NewGormRunRepository creates a new GormRunRepository.
func NewGormRunRepository(db *gorm.DB) *GormRunRepository {
	return &GormRunRepository{db: db}
}

// GetPendingRuns retrieves runs that are pending execution.
func (r *GormRunRepository) GetPendingRuns(ctx context.Context, limit int) ([]*model.RunRecord, error) {
	var runs []GraphRun

	err := r.db.WithContext(ctx).
		Where("status = ?", model.RunStatusPending).
		Order("id DESC").
		Limit(limit).
		Find(&runs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to query pending runs: %w", err)
	}

	result := make([]*model.RunRecord, len(runs))
	for i, run := range runs {
		result[i] = run.ToModel()
	}

	return result, nil
}

// GetRunByID retrieves a run by its ID.
func (r *GormRunRepository) GetRunByID(ctx context.Context, id int64) (*model.RunRecord, error) {
	var run GraphRun

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("run not found: %d", id)
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return run.ToModel(), nil
}

// GetRunByUUID retrieves a run by its UUID.
func (r *GormRunRepository) GetRunByUUID(ctx context.Context, runUUID string) (*model.RunRecord, error) {
	var run GraphRun

	err := r.db.WithContext(ctx).Where("run_id = ?", runUUID).First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("run not found: %s", runUUID)
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return run.ToModel(), nil
}

// UpdateRunStatus updates the status of a run.
func (r *GormRunRepository) UpdateRunStatus(ctx context.Context, id int64, status model.RunStatus) error {
	result := r.db.WithContext(ctx).
		Model(&GraphRun{}).
		Where("id = ?", id).
		Update("status", status)

	if result.Error != nil {
		return fmt.Errorf("failed to update run status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("run not found: %d", id)
	}

	return nil
}

// UpdateRunStatusWithInfo updates the status with additional info.
func (r *GormRunRepository) UpdateRunStatusWithInfo(ctx context.Context, id int64, status model.RunStatus, info string) error {
	result := r.db.WithContext(ctx).
		Model(&GraphRun{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"status_info": info,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update run status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("run not found: %d", id)
	}

	return nil
}

// LockRunForExecution attempts to lock a run for execution using FOR UPDATE.
func (r *GormRunRepository) LockRunForExecution(ctx context.Context, id int64) (bool, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var run GraphRun

		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND status = ?", id, model.RunStatusPending).
			First(&run).Error

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return gorm.ErrRecordNotFound
			}
			return err
		}

		return tx.Model(&GraphRun{}).
			Where("id = ?", id).
			Update("status", model.RunStatusRunning).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to lock run: %w", err)
	}

	return true, nil
}

// GormPartitionRepository implements PartitionRepository using GORM.
type GormPartitionRepository struct {
	db *gorm.DB
}

// NewGormPartitionRepository creates a new GormPartitionRepository.
func NewGormPartitionRepository(db *gorm.DB) *GormPartitionRepository {
	return &GormPartitionRepository{db: db}
}

// SavePartitionResult saves a partition result to the database.
func (r *GormPartitionRepository) SavePartitionResult(ctx context.Context, result *model.PartitionResult) error {
	sizesJSON, err := json.Marshal(result.PartitionSizes)
	if err != nil {
		return fmt.Errorf("failed to marshal partition sizes: %w", err)
	}

	weightJSON, err := json.Marshal(result.PartitionWeight)
	if err != nil {
		return fmt.Errorf("failed to marshal partition weight: %w", err)
	}

	record := &PartitionResultRecord{
		RunUUID:         result.RunUUID,
		NumPartitions:   result.NumPartitions,
		EdgeCut:         result.EdgeCut,
		PartitionSizes:  sizesJSON,
		PartitionWeight: weightJSON,
	}

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to save partition result: %w", err)
	}

	return nil
}

// GetPartitionResultByRunUUID retrieves the partition result for a run.
func (r *GormPartitionRepository) GetPartitionResultByRunUUID(ctx context.Context, runUUID string) (*model.PartitionResult, error) {
	var record PartitionResultRecord

	err := r.db.WithContext(ctx).Where("run_id = ?", runUUID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("partition result not found for run: %s", runUUID)
		}
		return nil, fmt.Errorf("failed to get partition result: %w", err)
	}

	return record.ToModel()
}

// UpdatePartitionResult updates an existing partition result.
func (r *GormPartitionRepository) UpdatePartitionResult(ctx context.Context, result *model.PartitionResult) error {
	sizesJSON, err := json.Marshal(result.PartitionSizes)
	if err != nil {
		return fmt.Errorf("failed to marshal partition sizes: %w", err)
	}

	weightJSON, err := json.Marshal(result.PartitionWeight)
	if err != nil {
		return fmt.Errorf("failed to marshal partition weight: %w", err)
	}

	res := r.db.WithContext(ctx).
		Model(&PartitionResultRecord{}).
		Where("run_id = ?", result.RunUUID).
		Updates(map[string]interface{}{
			"num_partitions":   result.NumPartitions,
			"edge_cut":         result.EdgeCut,
			"partition_sizes":  sizesJSON,
			"partition_weight": weightJSON,
		})

	if res.Error != nil {
		return fmt.Errorf("failed to update partition result: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("partition result not found for run: %s", result.RunUUID)
	}

	return nil
}
