package types

import "time"

// Kind distinguishes the two shapes of scoped temp resources
type Kind string

const (
	KindFile      Kind = "file"
	KindDirectory Kind = "directory"
)

// SizeReport contains the outcome of a folder size walk
type SizeReport struct {
	Root     string        `json:"root"`
	Bytes    int64         `json:"bytes"`
	Files    int64         `json:"files"`    // regular files counted
	Ignored  int64         `json:"ignored"`  // regular files excluded by ignore rules
	Skipped  int64         `json:"skipped"`  // unreadable entries passed over
	Symlinks int64         `json:"symlinks"` // symlinks seen below the root, never counted
	Duration time.Duration `json:"duration"`
}
