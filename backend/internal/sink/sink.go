// Package sink defines the observer contract the Monte Carlo driver
// publishes step outcomes through, and the concrete sinks that render
// them: a console progress printer, lattice-path PNG snapshots, an
// energy-vs-step PNG chart, and a live websocket feed.
package sink

import (
	"github.com/latticefold/hpfold/backend/internal/lattice"
	"github.com/latticefold/hpfold/backend/internal/moves"
)

// StepOutcome is what the driver reports to every sink after each step,
// accepted or not — sinks that want full trajectories (e.g. a live
// websocket view) need the rejects too, even though Result.EnergyTrace
// only records accepted-step energies.
type StepOutcome struct {
	Step          int
	ResidueIndex  int
	Kind          moves.Kind
	Accepted      bool
	EnergyBefore  int
	EnergyAfter   int
	BestSoFar     int
}

// Sink receives a StepOutcome plus an immutable snapshot of the chain
// after the step resolved (committed or reverted). OnStep must return
// promptly; slow sinks are responsible for decoupling their own I/O
// (WebSocketSink does this with a buffered channel).
type Sink interface {
	OnStep(outcome StepOutcome, snapshot lattice.Snapshot)
	Close() error
}
