package domain

import (
	"bytes"
	"time"

	"github.com/mouse-blink/sjv/internal/domain/preprocess"
	"github.com/mouse-blink/sjv/internal/domain/sjava"
	m "github.com/mouse-blink/sjv/internal/model"
)

// Verifier checks the content of a single s-Java source.
type Verifier interface {
	// Verify runs the full pipeline and reports the first violation found.
	Verify(content []byte) m.Verdict
	// Inspect partitions content into its scope tree without checking
	// statements and returns the tree's shape.
	Inspect(content []byte) (sjava.Stats, error)
}

type verifier struct {
	opts sjava.Options
}

// NewVerifier returns a Verifier applying opts to every source.
func NewVerifier(opts sjava.Options) Verifier {
	return &verifier{opts: opts}
}

func (v *verifier) Verify(content []byte) m.Verdict {
	start := time.Now()

	verdict := m.Verdict{Status: m.StatusValid}
	if err := v.check(content); err != nil {
		verdict = verdictFor(err)
	}

	verdict.Duration = time.Since(start)

	return verdict
}

func (v *verifier) Inspect(content []byte) (sjava.Stats, error) {
	lines, err := preprocess.Normalize(bytes.NewReader(content))
	if err != nil {
		return sjava.Stats{}, err
	}

	root, err := sjava.Build(lines, v.opts)
	if err != nil {
		return sjava.Stats{}, err
	}

	return root.Stats(), nil
}

func (v *verifier) check(content []byte) error {
	lines, err := preprocess.Normalize(bytes.NewReader(content))
	if err != nil {
		return err
	}

	return sjava.Check(lines, v.opts)
}

// verdictFor converts a checker error into a verdict. Anything that is not a
// rule violation means the source could not be read.
func verdictFor(err error) m.Verdict {
	serr, ok := sjava.AsError(err)
	if !ok {
		return m.Verdict{Status: m.StatusIOError, Err: err.Error()}
	}

	return m.Verdict{
		Status: m.StatusInvalid,
		Defect: &m.Defect{
			Kind:     serr.Kind.String(),
			Category: string(serr.Kind.Category()),
			Message:  serr.Detail,
			Line:     serr.Line.No,
			Text:     serr.Line.Text,
		},
	}
}
