package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/parascale/graphkit/pkg/model"
)

// MySQLRunRepository implements RunRepository for MySQL.
type MySQLRunRepository struct {
	db *sql.DB
}

// NewMySQLRunRepository creates a new MySQLRunRepository.
func NewMySQLRunRepository(db *sql.DB) *MySQLRunRepository {
	return &MySQLRunRepository{db: db}
}

// GetPendingRuns retrieves runs that are pending execution.
func (r *MySQLRunRepository) GetPendingRuns(ctx context.Context, limit int) ([]*model.RunRecord, error) {
	query := `
		SELECT id, run_id, algorithm, status, COALESCE(status_info, ''),
			   COALESCE(topology_key, ''), COALESCE(result_key, ''),
			   params, num_nodes, num_edges, create_time, begin_time, end_time
		FROM graph_run
		WHERE status = ?
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, model.RunStatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending runs: %w", err)
	}
	defer rows.Close()

	return r.scanRuns(rows)
}

// GetRunByID retrieves a run by its ID.
func (r *MySQLRunRepository) GetRunByID(ctx context.Context, id int64) (*model.RunRecord, error) {
	query := `
		SELECT id, run_id, algorithm, status, COALESCE(status_info, ''),
			   COALESCE(topology_key, ''), COALESCE(result_key, ''),
			   params, num_nodes, num_edges, create_time, begin_time, end_time
		FROM graph_run
		WHERE id = ?
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, id), fmt.Sprintf("%d", id))
}

// GetRunByUUID retrieves a run by its UUID.
func (r *MySQLRunRepository) GetRunByUUID(ctx context.Context, runUUID string) (*model.RunRecord, error) {
	query := `
		SELECT id, run_id, algorithm, status, COALESCE(status_info, ''),
			   COALESCE(topology_key, ''), COALESCE(result_key, ''),
			   params, num_nodes, num_edges, create_time, begin_time, end_time
		FROM graph_run
		WHERE run_id = ?
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, runUUID), runUUID)
}

func (r *MySQLRunRepository) scanOne(row *sql.Row, ident string) (*model.RunRecord, error) {
	run := &model.RunRecord{}
	var paramsJSON []byte
	var beginTime, endTime sql.NullTime

	err := row.Scan(
		&run.ID, &run.RunUUID, &run.Algorithm, &run.Status, &run.StatusInfo,
		&run.TopologyKey, &run.ResultKey, &paramsJSON, &run.NumNodes, &run.NumEdges,
		&run.CreateTime, &beginTime, &endTime,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run not found: %s", ident)
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	if beginTime.Valid {
		run.BeginTime = &beginTime.Time
	}
	if endTime.Valid {
		run.EndTime = &endTime.Time
	}

	if paramsJSON != nil {
		if err := json.Unmarshal(paramsJSON, &run.Params); err != nil {
			return nil, fmt.Errorf("failed to parse run params: %w", err)
		}
	}

	return run, nil
}

// UpdateRunStatus updates the status of a run.
func (r *MySQLRunRepository) UpdateRunStatus(ctx context.Context, id int64, status model.RunStatus) error {
	query := `UPDATE graph_run SET status = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update run status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("run not found: %d", id)
	}

	return nil
}

// UpdateRunStatusWithInfo updates the status with additional info.
func (r *MySQLRunRepository) UpdateRunStatusWithInfo(ctx context.Context, id int64, status model.RunStatus, info string) error {
	query := `UPDATE graph_run SET status = ?, status_info = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, status, info, id)
	if err != nil {
		return fmt.Errorf("failed to update run status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("run not found: %d", id)
	}

	return nil
}

// LockRunForExecution attempts to lock a run for execution using FOR UPDATE.
func (r *MySQLRunRepository) LockRunForExecution(ctx context.Context, id int64) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var status model.RunStatus
	query := `SELECT status FROM graph_run WHERE id = ? AND status = ? FOR UPDATE`
	err = tx.QueryRowContext(ctx, query, id, model.RunStatusPending).Scan(&status)
	if err != nil {
		if err == sql.ErrNoRows || strings.Contains(err.Error(), "lock wait timeout") {
			return false, nil
		}
		return false, fmt.Errorf("failed to lock run: %w", err)
	}

	updateQuery := `UPDATE graph_run SET status = ? WHERE id = ?`
	_, err = tx.ExecContext(ctx, updateQuery, model.RunStatusRunning, id)
	if err != nil {
		return false, fmt.Errorf("failed to update status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return true, nil
}

// scanRuns scans multiple runs from rows.
func (r *MySQLRunRepository) scanRuns(rows *sql.Rows) ([]*model.RunRecord, error) {
	var runs []*model.RunRecord

	for rows.Next() {
		run := &model.RunRecord{}
		var paramsJSON []byte
		var beginTime, endTime sql.NullTime

		err := rows.Scan(
			&run.ID, &run.RunUUID, &run.Algorithm, &run.Status, &run.StatusInfo,
			&run.TopologyKey, &run.ResultKey, &paramsJSON, &run.NumNodes, &run.NumEdges,
			&run.CreateTime, &beginTime, &endTime,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}

		if beginTime.Valid {
			run.BeginTime = &beginTime.Time
		}
		if endTime.Valid {
			run.EndTime = &endTime.Time
		}

		if paramsJSON != nil {
			if err := json.Unmarshal(paramsJSON, &run.Params); err != nil {
				return nil, fmt.Errorf("failed to parse run params: %w", err)
			}
		}

		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return runs, nil
}

// MySQLPartitionRepository implements PartitionRepository for MySQL.
type MySQLPartitionRepository struct {
	db *sql.DB
}

// NewMySQLPartitionRepository creates a new MySQLPartitionRepository.
func NewMySQLPartitionRepository(db *sql.DB) *MySQLPartitionRepository {
	return &MySQLPartitionRepository{db: db}
}

// SavePartitionResult saves a partition result to the database.
func (r *MySQLPartitionRepository) SavePartitionResult(ctx context.Context, result *model.PartitionResult) error {
	sizesJSON, err := json.Marshal(result.PartitionSizes)
	if err != nil {
		return fmt.Errorf("failed to marshal partition sizes: %w", err)
	}

	weightJSON, err := json.Marshal(result.PartitionWeight)
	if err != nil {
		return fmt.Errorf("failed to marshal partition weight: %w", err)
	}

	query := `
		INSERT INTO partition_result (run_id, num_partitions, edge_cut, partition_sizes, partition_weight)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query, result.RunUUID, result.NumPartitions, result.EdgeCut, sizesJSON, weightJSON)
	if err != nil {
		return fmt.Errorf("failed to save partition result: %w", err)
	}

	return nil
}

// GetPartitionResultByRunUUID retrieves the partition result for a run.
func (r *MySQLPartitionRepository) GetPartitionResultByRunUUID(ctx context.Context, runUUID string) (*model.PartitionResult, error) {
	query := `
		SELECT id, run_id, num_partitions, edge_cut, partition_sizes, partition_weight, create_time
		FROM partition_result
		WHERE run_id = ?
	`

	var sizesJSON, weightJSON []byte
	result := &model.PartitionResult{}

	err := r.db.QueryRowContext(ctx, query, runUUID).Scan(
		&result.ID, &result.RunUUID, &result.NumPartitions, &result.EdgeCut,
		&sizesJSON, &weightJSON, &result.CreateTime,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("partition result not found for run: %s", runUUID)
		}
		return nil, fmt.Errorf("failed to get partition result: %w", err)
	}

	if sizesJSON != nil {
		if err := json.Unmarshal(sizesJSON, &result.PartitionSizes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal partition sizes: %w", err)
		}
	}

	if weightJSON != nil {
		if err := json.Unmarshal(weightJSON, &result.PartitionWeight); err != nil {
			return nil, fmt.Errorf("failed to unmarshal partition weight: %w", err)
		}
	}

	return result, nil
}

// UpdatePartitionResult updates an existing partition result.
func (r *MySQLPartitionRepository) UpdatePartitionResult(ctx context.Context, result *model.PartitionResult) error {
	sizesJSON, err := json.Marshal(result.PartitionSizes)
	if err != nil {
		return fmt.Errorf("failed to marshal partition sizes: %w", err)
	}

	weightJSON, err := json.Marshal(result.PartitionWeight)
	if err != nil {
		return fmt.Errorf("failed to marshal partition weight: %w", err)
	}

	query := `
		UPDATE partition_result
		SET num_partitions = ?, edge_cut = ?, partition_sizes = ?, partition_weight = ?
		WHERE run_id = ?
	`

	res, err := r.db.ExecContext(ctx, query, result.NumPartitions, result.EdgeCut, sizesJSON, weightJSON, result.RunUUID)
	if err != nil {
		return fmt.Errorf("failed to update partition result: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("partition result not found for run: %s", result.RunUUID)
	}

	return nil
}
