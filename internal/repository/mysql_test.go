package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parascale/graphkit/pkg/model"
)

func TestMySQLRunRepository_GetPendingRuns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMySQLRunRepository(db)

	t.Run("GetPendingRuns_Success", func(t *testing.T) {
		params := model.RunParams{SourceNode: 1}
		paramsJSON, _ := json.Marshal(params)

		rows := sqlmock.NewRows([]string{
			"id", "run_id", "algorithm", "status", "status_info",
			"topology_key", "result_key", "params", "num_nodes", "num_edges",
			"create_time", "begin_time", "end_time",
		}).AddRow(
			int64(1), "run-uuid-1", model.AlgorithmBFS, model.RunStatusPending,
			"", "topology/graph-1.bin", "", paramsJSON, int64(100), int64(200),
			time.Now(), nil, nil,
		)

		mock.ExpectQuery("SELECT id, run_id, algorithm").WillReturnRows(rows)

		runs, err := repo.GetPendingRuns(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, int64(1), runs[0].ID)
	})
}

func TestMySQLRunRepository_GetRunByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMySQLRunRepository(db)

	t.Run("GetRunByID_Success", func(t *testing.T) {
		params := model.RunParams{K: 3}
		paramsJSON, _ := json.Marshal(params)

		rows := sqlmock.NewRows([]string{
			"id", "run_id", "algorithm", "status", "status_info",
			"topology_key", "result_key", "params", "num_nodes", "num_edges",
			"create_time", "begin_time", "end_time",
		}).AddRow(
			int64(1), "run-uuid-1", model.AlgorithmKCore, model.RunStatusCompleted,
			"", "topology/graph-1.bin", "results/run-uuid-1.bin", paramsJSON,
			int64(100), int64(200), time.Now(), time.Now(), time.Now(),
		)

		mock.ExpectQuery("SELECT id, run_id, algorithm").WithArgs(int64(1)).WillReturnRows(rows)

		run, err := repo.GetRunByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "run-uuid-1", run.RunUUID)
	})

	t.Run("GetRunByID_NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, run_id, algorithm").WithArgs(int64(999)).WillReturnError(sql.ErrNoRows)

		run, err := repo.GetRunByID(context.Background(), 999)
		assert.Error(t, err)
		assert.Nil(t, run)
		assert.Contains(t, err.Error(), "run not found")
	})
}

func TestMySQLRunRepository_UpdateRunStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMySQLRunRepository(db)

	t.Run("UpdateStatus_Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE graph_run").
			WithArgs(model.RunStatusCompleted, int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateRunStatus(context.Background(), 1, model.RunStatusCompleted)
		require.NoError(t, err)
	})

	t.Run("UpdateStatus_NotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE graph_run").
			WithArgs(model.RunStatusCompleted, int64(999)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateRunStatus(context.Background(), 999, model.RunStatusCompleted)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "run not found")
	})
}

func TestMySQLRunRepository_LockRunForExecution(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMySQLRunRepository(db)

	t.Run("Lock_Success", func(t *testing.T) {
		mock.ExpectBegin()

		rows := sqlmock.NewRows([]string{"status"}).AddRow(model.RunStatusPending)
		mock.ExpectQuery("SELECT status FROM graph_run").
			WithArgs(int64(1), model.RunStatusPending).
			WillReturnRows(rows)

		mock.ExpectExec("UPDATE graph_run").
			WithArgs(model.RunStatusRunning, int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		mock.ExpectCommit()

		locked, err := repo.LockRunForExecution(context.Background(), 1)
		require.NoError(t, err)
		assert.True(t, locked)
	})

	t.Run("Lock_AlreadyLocked", func(t *testing.T) {
		mock.ExpectBegin()

		mock.ExpectQuery("SELECT status FROM graph_run").
			WithArgs(int64(1), model.RunStatusPending).
			WillReturnError(sql.ErrNoRows)

		mock.ExpectRollback()

		locked, err := repo.LockRunForExecution(context.Background(), 1)
		require.NoError(t, err)
		assert.False(t, locked)
	})
}

func TestMySQLPartitionRepository_SavePartitionResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMySQLPartitionRepository(db)

	t.Run("SavePartitionResult_Success", func(t *testing.T) {
		result := &model.PartitionResult{
			RunUUID:         "run-uuid-1",
			NumPartitions:   4,
			EdgeCut:         50,
			PartitionSizes:  []int64{5, 5, 5, 5},
			PartitionWeight: []int64{50, 50, 50, 50},
		}

		mock.ExpectExec("INSERT INTO partition_result").
			WithArgs(result.RunUUID, result.NumPartitions, result.EdgeCut, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.SavePartitionResult(context.Background(), result)
		require.NoError(t, err)
	})
}

func TestMySQLPartitionRepository_GetPartitionResultByRunUUID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMySQLPartitionRepository(db)

	t.Run("GetPartitionResult_Success", func(t *testing.T) {
		sizes, _ := json.Marshal([]int64{5, 5})
		weight, _ := json.Marshal([]int64{50, 50})

		rows := sqlmock.NewRows([]string{
			"id", "run_id", "num_partitions", "edge_cut", "partition_sizes", "partition_weight", "create_time",
		}).AddRow(int64(1), "run-uuid-1", 2, 10, sizes, weight, time.Now())

		mock.ExpectQuery("SELECT id, run_id, num_partitions").
			WithArgs("run-uuid-1").
			WillReturnRows(rows)

		result, err := repo.GetPartitionResultByRunUUID(context.Background(), "run-uuid-1")
		require.NoError(t, err)
		assert.Equal(t, "run-uuid-1", result.RunUUID)
		assert.Equal(t, []int64{5, 5}, result.PartitionSizes)
	})

	t.Run("GetPartitionResult_NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, run_id, num_partitions").
			WithArgs("nonexistent").
			WillReturnError(sql.ErrNoRows)

		result, err := repo.GetPartitionResultByRunUUID(context.Background(), "nonexistent")
		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "partition result not found")
	})
}

func TestMySQLPartitionRepository_UpdatePartitionResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMySQLPartitionRepository(db)

	t.Run("UpdatePartitionResult_Success", func(t *testing.T) {
		result := &model.PartitionResult{
			RunUUID:         "run-uuid-1",
			NumPartitions:   2,
			EdgeCut:         8,
			PartitionSizes:  []int64{6, 4},
			PartitionWeight: []int64{60, 40},
		}

		mock.ExpectExec("UPDATE partition_result").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdatePartitionResult(context.Background(), result)
		require.NoError(t, err)
	})

	t.Run("UpdatePartitionResult_NotFound", func(t *testing.T) {
		result := &model.PartitionResult{RunUUID: "nonexistent", NumPartitions: 2, EdgeCut: 1}

		mock.ExpectExec("UPDATE partition_result").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdatePartitionResult(context.Background(), result)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "partition result not found")
	})
}
