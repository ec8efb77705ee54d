// Package controller provides the terminal front ends that display
// verification progress and results.
package controller

import (
	m "github.com/mouse-blink/sjv/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeVerify StartMode = iota
	ModeList
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithVerifyMode sets the UI to verification mode.
func WithVerifyMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeVerify
	}
}

// WithListMode sets the UI to listing mode.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

func newStartConfig(options []StartOption) StartConfig {
	cfg := StartConfig{}
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// UI displays sources, verification progress and verdicts.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(options ...StartOption) error
	Close()
	Wait() // Wait for UI to finish (user closes it)
	DisplaySources(summaries []m.SourceSummary) error
	DisplayConcurrencyInfo(threads int, count int)
	DisplayStartingVerification(source m.Source, workerID int)
	DisplayCompletedVerification(report m.Report)
	DisplaySummary(reports []m.Report) error
}
