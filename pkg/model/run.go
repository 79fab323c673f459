package model

import (
	"time"

	"github.com/google/uuid"
)

// AlgorithmKind identifies which graph algorithm a run executed.
type AlgorithmKind int

const (
	AlgorithmConnectedComponents AlgorithmKind = 0
	AlgorithmBFS                 AlgorithmKind = 1
	AlgorithmPageRank            AlgorithmKind = 2
	AlgorithmKCore               AlgorithmKind = 3
	AlgorithmBiPart              AlgorithmKind = 4
)

// String returns the string representation of AlgorithmKind.
func (a AlgorithmKind) String() string {
	switch a {
	case AlgorithmConnectedComponents:
		return "connected_components"
	case AlgorithmBFS:
		return "bfs"
	case AlgorithmPageRank:
		return "pagerank"
	case AlgorithmKCore:
		return "kcore"
	case AlgorithmBiPart:
		return "bipart"
	default:
		return "unknown"
	}
}

// RunStatus represents the lifecycle status of a graph analysis run.
type RunStatus int

const (
	RunStatusPending   RunStatus = 0
	RunStatusRunning   RunStatus = 1
	RunStatusCompleted RunStatus = 2
	RunStatusFailed    RunStatus = 3
)

// String returns the string representation of RunStatus.
func (s RunStatus) String() string {
	switch s {
	case RunStatusPending:
		return "pending"
	case RunStatusRunning:
		return "running"
	case RunStatusCompleted:
		return "completed"
	case RunStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RunRecord represents one execution of a graph algorithm against a stored
// topology, persisted for later retrieval and comparison.
type RunRecord struct {
	ID            int64         `json:"id" db:"id"`
	RunUUID       string        `json:"run_id" db:"run_id"`
	Algorithm     AlgorithmKind `json:"algorithm" db:"algorithm"`
	Status        RunStatus     `json:"status" db:"status"`
	StatusInfo    string        `json:"status_info" db:"status_info"`
	TopologyKey   string        `json:"topology_key" db:"topology_key"`
	ResultKey     string        `json:"result_key" db:"result_key"`
	Params        RunParams     `json:"params" db:"params"`
	NumNodes      int64         `json:"num_nodes" db:"num_nodes"`
	NumEdges      int64         `json:"num_edges" db:"num_edges"`
	CreateTime    time.Time     `json:"create_time" db:"create_time"`
	BeginTime     *time.Time    `json:"begin_time" db:"begin_time"`
	EndTime       *time.Time    `json:"end_time" db:"end_time"`
}

// RunParams holds the algorithm-specific parameters a run was launched with.
type RunParams struct {
	SourceNode     uint32  `json:"source_node,omitempty"`
	K              int     `json:"k,omitempty"`
	Damping        float64 `json:"damping,omitempty"`
	MaxIterations  int     `json:"max_iterations,omitempty"`
	Tolerance      float64 `json:"tolerance,omitempty"`
	NumPartitions  int     `json:"num_partitions,omitempty"`
	MatchingPolicy string  `json:"matching_policy,omitempty"`
}

// IsTerminal returns true if the run has reached a final status.
func (r *RunRecord) IsTerminal() bool {
	return r.Status == RunStatusCompleted || r.Status == RunStatusFailed
}

// Duration returns the elapsed time between begin and end, or zero if either
// is unset.
func (r *RunRecord) Duration() time.Duration {
	if r.BeginTime == nil || r.EndTime == nil {
		return 0
	}
	return r.EndTime.Sub(*r.BeginTime)
}

// NewRunRecord creates a new pending RunRecord with a freshly generated UUID.
func NewRunRecord(algorithm AlgorithmKind, topologyKey string, params RunParams) *RunRecord {
	return &RunRecord{
		RunUUID:     uuid.NewString(),
		Algorithm:   algorithm,
		Status:      RunStatusPending,
		TopologyKey: topologyKey,
		Params:      params,
		CreateTime:  time.Now(),
	}
}

// PartitionResult is the persisted summary of a BiPart k-way partitioning
// run: the edge cut achieved and the per-partition weight distribution,
// stored alongside the full assignment blob referenced by ResultKey on the
// owning RunRecord.
type PartitionResult struct {
	ID              int64     `json:"id" db:"id"`
	RunUUID         string    `json:"run_id" db:"run_id"`
	NumPartitions   int       `json:"num_partitions" db:"num_partitions"`
	EdgeCut         int       `json:"edge_cut" db:"edge_cut"`
	PartitionSizes  []int64   `json:"partition_sizes" db:"partition_sizes"`
	PartitionWeight []int64   `json:"partition_weight" db:"partition_weight"`
	CreateTime      time.Time `json:"create_time" db:"create_time"`
}

// IsBalanced reports whether every partition's weight is within tolerance of
// the mean partition weight.
func (p *PartitionResult) IsBalanced(tolerance float64) bool {
	if len(p.PartitionWeight) == 0 {
		return true
	}
	var total int64
	for _, w := range p.PartitionWeight {
		total += w
	}
	mean := float64(total) / float64(len(p.PartitionWeight))
	if mean == 0 {
		return true
	}
	for _, w := range p.PartitionWeight {
		deviation := (float64(w) - mean) / mean
		if deviation < 0 {
			deviation = -deviation
		}
		if deviation > tolerance {
			return false
		}
	}
	return true
}

// NewPartitionResult creates a new PartitionResult for the given run.
func NewPartitionResult(runUUID string, numPartitions, edgeCut int, partitionWeight []int64) *PartitionResult {
	return &PartitionResult{
		RunUUID:         runUUID,
		NumPartitions:   numPartitions,
		EdgeCut:         edgeCut,
		PartitionWeight: partitionWeight,
		CreateTime:      time.Now(),
	}
}
