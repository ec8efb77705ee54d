// Package model defines the data structures shared by the sjv layers.
package model

// Path represents a file system path.
type Path string

// Source is one s-Java file selected for verification.
type Source struct {
	Path Path
	Hash string
}

// SourceSummary describes the shape of a source without checking it: how many
// logical lines it has and how its blocks nest.
type SourceSummary struct {
	Source     Source
	Lines      int
	Methods    int
	Conditions int
	Depth      int
	// Err is set when the source could not be read or partitioned.
	Err error
}
