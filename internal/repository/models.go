// Package repository provides database abstraction for the graphkit service.
package repository

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/parascale/graphkit/pkg/model"
)

// GraphRun represents the graph_run table.
type GraphRun struct {
	ID          int64               `gorm:"column:id;primaryKey;autoIncrement"`
	RunUUID     string              `gorm:"column:run_id;type:varchar(64);uniqueIndex"`
	Algorithm   model.AlgorithmKind `gorm:"column:algorithm"`
	Status      model.RunStatus     `gorm:"column:status"`
	StatusInfo  string              `gorm:"column:status_info;type:text"`
	TopologyKey string              `gorm:"column:topology_key;type:varchar(512)"`
	ResultKey   string              `gorm:"column:result_key;type:varchar(512)"`
	Params      JSONField           `gorm:"column:params;type:json"`
	NumNodes    int64               `gorm:"column:num_nodes"`
	NumEdges    int64               `gorm:"column:num_edges"`
	CreateTime  time.Time           `gorm:"column:create_time;autoCreateTime"`
	BeginTime   *time.Time          `gorm:"column:begin_time"`
	EndTime     *time.Time          `gorm:"column:end_time"`
}

// TableName returns the table name for GraphRun.
func (GraphRun) TableName() string {
	return "graph_run"
}

// ToModel converts GraphRun to model.RunRecord.
func (r *GraphRun) ToModel() *model.RunRecord {
	run := &model.RunRecord{
		ID:          r.ID,
		RunUUID:     r.RunUUID,
		Algorithm:   r.Algorithm,
		Status:      r.Status,
		StatusInfo:  r.StatusInfo,
		TopologyKey: r.TopologyKey,
		ResultKey:   r.ResultKey,
		NumNodes:    r.NumNodes,
		NumEdges:    r.NumEdges,
		CreateTime:  r.CreateTime,
		BeginTime:   r.BeginTime,
		EndTime:     r.EndTime,
	}

	if r.Params != nil {
		_ = json.Unmarshal(r.Params, &run.Params)
	}

	return run
}

// PartitionResultRecord represents the partition_result table.
type PartitionResultRecord struct {
	ID              int64     `gorm:"column:id;primaryKey;autoIncrement"`
	RunUUID         string    `gorm:"column:run_id;type:varchar(64);index"`
	NumPartitions   int       `gorm:"column:num_partitions"`
	EdgeCut         int       `gorm:"column:edge_cut"`
	PartitionSizes  JSONField `gorm:"column:partition_sizes;type:json"`
	PartitionWeight JSONField `gorm:"column:partition_weight;type:json"`
	CreateTime      time.Time `gorm:"column:create_time;autoCreateTime"`
}

// TableName returns the table name for PartitionResultRecord.
func (PartitionResultRecord) TableName() string {
	return "partition_result"
}

// ToModel converts PartitionResultRecord to model.PartitionResult.
func (p *PartitionResultRecord) ToModel() (*model.PartitionResult, error) {
	result := &model.PartitionResult{
		ID:            p.ID,
		RunUUID:       p.RunUUID,
		NumPartitions: p.NumPartitions,
		EdgeCut:       p.EdgeCut,
		CreateTime:    p.CreateTime,
	}

	if p.PartitionSizes != nil {
		if err := json.Unmarshal(p.PartitionSizes, &result.PartitionSizes); err != nil {
			return nil, err
		}
	}

	if p.PartitionWeight != nil {
		if err := json.Unmarshal(p.PartitionWeight, &result.PartitionWeight); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// JSONField is a custom type for handling JSON fields in GORM.
type JSONField []byte

// Value implements driver.Valuer interface.
func (j JSONField) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return []byte(j), nil
}

// Scan implements sql.Scanner interface.
func (j *JSONField) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		*j = append((*j)[0:0], v...)
		return nil
	case string:
		*j = []byte(v)
		return nil
	default:
		return errors.New("unsupported type for JSONField")
	}
}

// MarshalJSON implements json.Marshaler interface.
func (j JSONField) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (j *JSONField) UnmarshalJSON(data []byte) error {
	if data == nil || string(data) == "null" {
		*j = nil
		return nil
	}
	*j = append((*j)[0:0], data...)
	return nil
}
