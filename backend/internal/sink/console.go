package sink

import (
	"fmt"
	"io"

	"github.com/latticefold/hpfold/backend/internal/lattice"
)

// ConsoleSink prints one progress line every Stride steps.
type ConsoleSink struct {
	Out    io.Writer
	Stride int
}

// NewConsoleSink returns a ConsoleSink printing every stride steps (at
// least 1).
func NewConsoleSink(out io.Writer, stride int) *ConsoleSink {
	if stride < 1 {
		stride = 1
	}
	return &ConsoleSink{Out: out, Stride: stride}
}

func (s *ConsoleSink) OnStep(outcome StepOutcome, _ lattice.Snapshot) {
	if outcome.Step%s.Stride != 0 {
		return
	}
	verdict := "rejected"
	if outcome.Accepted {
		verdict = "accepted"
	}
	fmt.Fprintf(s.Out, "step %6d: residue %3d %-9s energy %d -> %d (best %d)\n",
		outcome.Step, outcome.ResidueIndex, verdict, outcome.EnergyBefore, outcome.EnergyAfter, outcome.BestSoFar)
}

func (s *ConsoleSink) Close() error { return nil }
