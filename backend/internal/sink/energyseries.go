package sink

import (
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/latticefold/hpfold/backend/internal/lattice"
)

// EnergySeriesSink accumulates the accepted-step energy trace and
// renders it as a PNG line chart on Close. It also exposes the trace's
// Mean (computed with gonum/stat) and Min; cmd/hpfold's run summary does
// not print either.
type EnergySeriesSink struct {
	Path   string
	trace  []float64
}

// NewEnergySeriesSink returns a sink that writes its chart to path on Close.
func NewEnergySeriesSink(path string) *EnergySeriesSink {
	return &EnergySeriesSink{Path: path}
}

func (s *EnergySeriesSink) OnStep(outcome StepOutcome, _ lattice.Snapshot) {
	if outcome.Accepted {
		s.trace = append(s.trace, float64(outcome.EnergyAfter))
	}
}

// Mean returns the mean of the accepted-step energy trace, 0 if empty.
func (s *EnergySeriesSink) Mean() float64 {
	if len(s.trace) == 0 {
		return 0
	}
	return stat.Mean(s.trace, nil)
}

// Min returns the lowest recorded energy, 0 if the trace is empty.
func (s *EnergySeriesSink) Min() float64 {
	min := 0.0
	for i, v := range s.trace {
		if i == 0 || v < min {
			min = v
		}
	}
	return min
}

func (s *EnergySeriesSink) Close() error {
	if len(s.trace) == 0 {
		return nil
	}

	p := plot.New()
	p.Title.Text = "Energy over accepted steps"
	p.X.Label.Text = "accepted step"
	p.Y.Label.Text = "energy"

	xys := make(plotter.XYs, len(s.trace))
	for i, e := range s.trace {
		xys[i] = plotter.XY{X: float64(i), Y: e}
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	p.Add(line)

	return p.Save(16*vg.Centimeter, 10*vg.Centimeter, s.Path)
}
