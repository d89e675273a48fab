package common

import (
	"sync"
	"time"
)

// DirectoryMetrics tracks totals across folder walks
type DirectoryMetrics struct {
	mu sync.RWMutex

	TotalTraversals int64
	FailedOps       int64
	TotalFiles      int64
	TotalBytes      int64
	AverageTime     time.Duration
	LastOperation   time.Time
}

// UpdateMetrics records one walk that started at start
func (dm *DirectoryMetrics) UpdateMetrics(start time.Time, success bool, files, bytes int64) {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	dm.TotalTraversals++
	if !success {
		dm.FailedOps++
	}
	dm.TotalFiles += files
	dm.TotalBytes += bytes

	duration := time.Since(start)

	// Rolling average
	if dm.TotalTraversals == 1 {
		dm.AverageTime = duration
	} else {
		dm.AverageTime = (dm.AverageTime*time.Duration(dm.TotalTraversals-1) + duration) / time.Duration(dm.TotalTraversals)
	}

	dm.LastOperation = time.Now()
}

// GetMetrics returns directory metrics as a map
func (dm *DirectoryMetrics) GetMetrics() map[string]interface{} {
	dm.mu.RLock()
	defer dm.mu.RUnlock()

	return map[string]interface{}{
		"total_traversals": dm.TotalTraversals,
		"failed_ops":       dm.FailedOps,
		"total_files":      dm.TotalFiles,
		"total_bytes":      dm.TotalBytes,
		"average_time":     dm.AverageTime,
		"last_operation":   dm.LastOperation,
	}
}
