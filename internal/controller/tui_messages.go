package controller

import (
	"time"

	m "github.com/mouse-blink/sjv/internal/model"
)

// Message types.
type tickMsg time.Time

type concurrencyMsg struct {
	threads int
	count   int
}

type startVerificationMsg struct {
	worker int
	path   string
}

type completedVerificationMsg struct {
	report m.Report
}

type summaryMsg struct {
	summary m.Summary
}
