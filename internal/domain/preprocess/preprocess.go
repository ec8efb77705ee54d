// Package preprocess turns raw s-Java source text into the normalized logical
// lines the checker consumes.
package preprocess

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mouse-blink/sjv/internal/domain/sjava"
)

// maxLineSize bounds a single physical line.
const maxLineSize = 1 << 20

// Normalize reads r, strips comments and blank lines and validates the
// terminators and brackets of every remaining line.
//
// Each returned line is trimmed, carries its 1-based physical line number and
// ends in exactly one of ";", "{" or "}". Malformed lines are reported as a
// SyntaxError; failures reading r are returned wrapped.
func Normalize(r io.Reader) ([]sjava.Line, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		lines []sjava.Line
		depth int
		no    int
	)

	for scanner.Scan() {
		no++

		text := strings.TrimSpace(stripComment(scanner.Text()))
		if text == "" {
			continue
		}

		line := sjava.Line{No: no, Text: text}

		delta, ok := checkLine(text)
		if !ok {
			return nil, sjava.NewSyntaxError(line)
		}

		depth += delta
		if depth < 0 {
			return nil, sjava.NewSyntaxError(line)
		}

		lines = append(lines, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}

	if depth != 0 {
		last := sjava.Line{No: no}
		if len(lines) > 0 {
			last = lines[len(lines)-1]
		}

		return nil, sjava.NewSyntaxError(last)
	}

	return lines, nil
}

// stripComment drops everything from the first "//" that is not inside a
// string or char literal.
func stripComment(text string) string {
	var quote byte

	for i := 0; i < len(text); i++ {
		b := text[i]

		switch {
		case quote != 0:
			if b == quote {
				quote = 0
			}
		case b == '"' || b == '\'':
			quote = b
		case b == '/' && i+1 < len(text) && text[i+1] == '/':
			return text[:i]
		}
	}

	return text
}

// checkLine validates one trimmed, non-empty line and returns its effect on
// the brace depth.
func checkLine(text string) (int, bool) {
	last := len(text) - 1
	parens := 0
	delta := 0

	var quote byte

	for i := 0; i < len(text); i++ {
		b := text[i]

		if quote != 0 {
			if b == quote {
				quote = 0
			}

			continue
		}

		switch b {
		case '"', '\'':
			quote = b
		case '(':
			parens++
		case ')':
			parens--
			if parens < 0 {
				return 0, false
			}
		case '{':
			if i != last {
				return 0, false
			}

			delta++
		case '}':
			if len(text) != 1 {
				return 0, false
			}

			delta--
		case ';':
			if i != last {
				return 0, false
			}
		}
	}

	if quote != 0 || parens != 0 {
		return 0, false
	}

	switch text[last] {
	case ';', '{', '}':
		return delta, true
	default:
		return 0, false
	}
}
