package sink

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/latticefold/hpfold/backend/internal/lattice"
)

// FrameSink buffers up to four accepted-move snapshots and renders each
// as a PNG lattice-path drawing, the idiomatic Go replacement for the
// source's matplotlib visualize_molecule: a polyline backbone plus a
// scatter overlay distinguishing H from P residues.
type FrameSink struct {
	Dir     string
	frames  int
	maxN    int
}

// NewFrameSink returns a FrameSink that stops capturing after max
// accepted-move frames (--sample captures the first four by default).
func NewFrameSink(dir string, max int) *FrameSink {
	if max < 1 {
		max = 4
	}
	return &FrameSink{Dir: dir, maxN: max}
}

func (s *FrameSink) OnStep(outcome StepOutcome, snapshot lattice.Snapshot) {
	if !outcome.Accepted || s.frames >= s.maxN {
		return
	}
	s.frames++
	name := fmt.Sprintf("Frame_%d.png", s.frames)
	if err := renderConformation(snapshot, filepath.Join(s.Dir, name)); err != nil {
		// Rendering failures must not abort the Monte Carlo run itself.
		fmt.Printf("hpfold: failed to render %s: %v\n", name, err)
	}
}

func (s *FrameSink) Close() error { return nil }

// renderConformation draws snapshot's backbone as a connected polyline
// with H/P residues distinguished by glyph, and saves it as a PNG.
func renderConformation(snapshot lattice.Snapshot, path string) error {
	p := plot.New()
	p.Title.Text = "HP lattice conformation"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	backbone := make(plotter.XYs, len(snapshot.Positions))
	var hydrophobic, polar plotter.XYs
	for i, pos := range snapshot.Positions {
		backbone[i] = plotter.XY{X: float64(pos.X), Y: float64(pos.Y)}
		if lattice.Class(snapshot.HP[i]) == lattice.H {
			hydrophobic = append(hydrophobic, backbone[i])
		} else {
			polar = append(polar, backbone[i])
		}
	}

	line, err := plotter.NewLine(backbone)
	if err != nil {
		return err
	}
	p.Add(line)

	if len(hydrophobic) > 0 {
		hScatter, err := plotter.NewScatter(hydrophobic)
		if err != nil {
			return err
		}
		p.Add(hScatter)
		p.Legend.Add("H", hScatter)
	}
	if len(polar) > 0 {
		pScatter, err := plotter.NewScatter(polar)
		if err != nil {
			return err
		}
		p.Add(pScatter)
		p.Legend.Add("P", pScatter)
	}

	return p.Save(12*vg.Centimeter, 12*vg.Centimeter, path)
}
