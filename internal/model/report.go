package model

import "time"

// Report is the persisted verdict for one source.
type Report struct {
	Source    Source
	Verdict   Verdict
	CheckedAt time.Time
}

// Summary counts verdicts by status.
type Summary struct {
	Files    int
	Valid    int
	Invalid  int
	IOErrors int
}

// Summarize counts the verdicts of reports.
func Summarize(reports []Report) Summary {
	s := Summary{Files: len(reports)}

	for _, r := range reports {
		switch r.Verdict.Status {
		case StatusValid:
			s.Valid++
		case StatusInvalid:
			s.Invalid++
		case StatusIOError:
			s.IOErrors++
		}
	}

	return s
}

// Worst returns the most severe status in s: I/O errors, then invalid sources.
func (s Summary) Worst() Status {
	switch {
	case s.IOErrors > 0:
		return StatusIOError
	case s.Invalid > 0:
		return StatusInvalid
	default:
		return StatusValid
	}
}
