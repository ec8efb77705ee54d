package controller

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	m "github.com/mouse-blink/sjv/internal/model"
)

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	kindStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
	validStyle   = color.New(color.FgGreen, color.Bold)
)

// FormatDefect renders the defect of an invalid or unreadable report the way
// compilers print diagnostics:
//
//	error: AssignmentError
//	 --> prog.sjava:3
//	  |
//	3 | x = 1.5;
//	  | ^^^^^^^^ invalid assignment in variable: x
//
// Valid reports render as an empty string.
func FormatDefect(report m.Report) string {
	path := string(report.Source.Path)

	switch report.Verdict.Status {
	case m.StatusIOError:
		return errorStyle.Sprint("error: ") + kindStyle.Sprintln("io") +
			lineStyle.Sprint(" --> ") + fileStyle.Sprintln(path) +
			lineStyle.Sprint("  = ") + messageStyle.Sprintln(report.Verdict.Err)
	case m.StatusInvalid:
	default:
		return ""
	}

	d := report.Verdict.Defect
	if d == nil {
		return errorStyle.Sprint("error: ") + kindStyle.Sprintln("invalid") +
			lineStyle.Sprint(" --> ") + fileStyle.Sprintln(path)
	}

	var b strings.Builder

	width := len(fmt.Sprint(d.Line))
	padding := strings.Repeat(" ", width+1)

	b.WriteString(errorStyle.Sprint("error: "))
	b.WriteString(kindStyle.Sprintln(d.Kind))
	b.WriteString(lineStyle.Sprintf("%s--> ", strings.Repeat(" ", width)))

	if d.Line > 0 {
		b.WriteString(fileStyle.Sprintf("%s:%d\n", path, d.Line))
	} else {
		b.WriteString(fileStyle.Sprintln(path))
	}

	if d.Text == "" {
		b.WriteString(lineStyle.Sprintf("%s= ", padding))
		b.WriteString(messageStyle.Sprintln(d.Message))

		return b.String()
	}

	b.WriteString(lineStyle.Sprintf("%s|\n", padding))
	b.WriteString(lineStyle.Sprintf("%*d | ", width, d.Line))
	b.WriteString(d.Text + "\n")
	b.WriteString(lineStyle.Sprintf("%s| ", padding))
	b.WriteString(messageStyle.Sprint(strings.Repeat("^", len(d.Text))))
	b.WriteString(" " + messageStyle.Sprintln(d.Message))

	return b.String()
}

// statusLabel returns the upper-case colored label for a status.
func statusLabel(status m.Status) string {
	switch status {
	case m.StatusValid:
		return validStyle.Sprint("VALID")
	case m.StatusInvalid:
		return errorStyle.Sprint("INVALID")
	default:
		return kindStyle.Sprint("IO-ERROR")
	}
}
