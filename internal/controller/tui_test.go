package controller

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/sjv/internal/model"
)

func TestTUI_ListModeIsStatic(t *testing.T) {
	var buf bytes.Buffer

	ui := NewTUI(&buf)
	require.NoError(t, ui.Start(WithListMode()))

	// no program: these must not block
	ui.DisplayConcurrencyInfo(1, 1)
	ui.DisplayStartingVerification(m.Source{Path: "a.sjava"}, 1)
	ui.Close()
	ui.Wait()

	require.NoError(t, ui.DisplaySources([]m.SourceSummary{
		{Source: m.Source{Path: "a.sjava"}, Lines: 4, Methods: 1, Conditions: 2, Depth: 3},
		{Source: m.Source{Path: "b.sjava"}, Err: errors.New("unbalanced braces")},
	}))

	out := buf.String()
	assert.Contains(t, out, "a.sjava")
	assert.Contains(t, out, "b.sjava")
	assert.Contains(t, out, "unbalanced braces")
	assert.Contains(t, out, "2 files, 4 lines")
}

func TestTUI_DisplaySummaryStatic(t *testing.T) {
	var buf bytes.Buffer

	ui := NewTUI(&buf)

	err := ui.DisplaySummary([]m.Report{
		{Source: m.Source{Path: "ok.sjava"}, Verdict: m.Verdict{Status: m.StatusValid}},
		invalidReport(),
	})

	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ok.sjava")
	assert.Contains(t, out, "valid 1")
	assert.Contains(t, out, "invalid 1")
	assert.Contains(t, out, "x = 1.5;")
}
