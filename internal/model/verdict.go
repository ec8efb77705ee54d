package model

import "time"

// Status is the outcome of verifying one source.
type Status string

const (
	// StatusValid means the source is well-formed.
	StatusValid Status = "valid"
	// StatusInvalid means the source violates at least one rule.
	StatusInvalid Status = "invalid"
	// StatusIOError means the source could not be read.
	StatusIOError Status = "io-error"
)

// Defect is the first rule violation found in a source.
type Defect struct {
	Kind     string
	Category string
	Message  string
	// Line is the physical 1-based line number, 0 when unknown.
	Line int
	// Text is the normalized logical line being checked.
	Text string
}

// Verdict is the result of verifying one source.
type Verdict struct {
	Status   Status
	Defect   *Defect
	Err      string
	Duration time.Duration
}
