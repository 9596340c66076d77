// Command hpfold runs Monte Carlo folding of a protein chain under the
// two-dimensional HP lattice model: read a FASTA sequence, build a
// self-avoiding-walk chain (or an ensemble of them), run the Metropolis
// driver, and write the requested rendering artifacts.
package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/latticefold/hpfold/backend/internal/apperr"
	"github.com/latticefold/hpfold/backend/internal/config"
	"github.com/latticefold/hpfold/backend/internal/hp"
	"github.com/latticefold/hpfold/backend/internal/lattice"
	"github.com/latticefold/hpfold/backend/internal/mc"
	"github.com/latticefold/hpfold/backend/internal/sink"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags, err := config.ParseFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hpfold:", err)
		return apperr.ExitCode(apperr.Invalid("%v", err))
	}

	params, err := config.Load(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hpfold:", err)
		return apperr.ExitCode(err)
	}

	if params.FastaPath == "" {
		err := apperr.Invalid("no --fasta path given")
		fmt.Fprintln(os.Stderr, "hpfold:", err)
		return apperr.ExitCode(err)
	}

	classify := hp.Classify
	if params.HPAlphabet == "narrow" {
		classify = hp.ClassifyNarrow
	}

	sequence, err := readSequence(params.FastaPath, classify)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hpfold:", err)
		return apperr.ExitCode(err)
	}

	if err := os.MkdirAll(params.ResultsDir, 0o755); err != nil {
		wrapped := apperr.IO("creating results directory", err)
		fmt.Fprintln(os.Stderr, "hpfold:", wrapped)
		return apperr.ExitCode(wrapped)
	}

	sinks, closeSinks, err := buildSinks(params)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hpfold:", err)
		return apperr.ExitCode(err)
	}
	defer closeSinks()

	cfg := mc.DefaultConfig()
	cfg.Iterations = params.Iterations
	cfg.Seed = params.Seed
	cfg.Temperature = params.Temperature
	cfg.Sinks = sinks

	fmt.Printf("hpfold: sequence length %d, %d iterations, init=%s\n", len(sequence), params.Iterations, params.InitMethod)

	var code int
	if params.EnsembleRuns > 1 {
		code = runEnsemble(sequence, params, cfg)
	} else {
		code = runSingle(sequence, params, cfg)
	}
	if code == 0 && params.Sample {
		fmt.Printf("hpfold: sample frames: %s\n", filepath.Join(params.ResultsDir, "Frame_*.png"))
	}
	if code == 0 && params.EnergySeries {
		fmt.Printf("hpfold: energy series: %s\n", filepath.Join(params.ResultsDir, "energy.png"))
	}
	return code
}

func runSingle(sequence string, params config.RunParams, cfg mc.Config) int {
	chain, err := lattice.NewChain(sequence, params.InitMethod, rand.New(rand.NewSource(params.Seed)))
	if err != nil {
		fmt.Fprintln(os.Stderr, "hpfold:", err)
		return apperr.ExitCode(err)
	}

	result, err := mc.Run(chain, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hpfold:", err)
		return apperr.ExitCode(err)
	}

	printSummary(result)
	return 0
}

func runEnsemble(sequence string, params config.RunParams, cfg mc.Config) int {
	results, best, err := mc.RunEnsemble(sequence, params.InitMethod, cfg, params.EnsembleRuns)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hpfold:", err)
		return apperr.ExitCode(err)
	}

	fmt.Printf("hpfold: %d of %d ensemble runs completed\n", len(results), params.EnsembleRuns)
	printSummary(best)
	return 0
}

func printSummary(result *mc.Result) {
	fmt.Printf("hpfold: initial energy %d, final energy %d, best energy %d (step %d)\n",
		result.InitialEnergy, result.FinalEnergy, result.BestEnergy, result.BestStep)
	fmt.Printf("hpfold: accepted %d, rejected %d, acceptance rate %.3f\n",
		result.AcceptedSteps, result.RejectedSteps, result.AcceptanceRate)
	if result.Cancelled {
		fmt.Println("hpfold: run was cancelled before completion")
	}
}

func readSequence(path string, classify func(byte) lattice.Class) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", apperr.IO("opening FASTA file "+path, err)
	}
	defer f.Close()
	return hp.ReadFasta(f, classify)
}

func buildSinks(params config.RunParams) ([]sink.Sink, func(), error) {
	var sinks []sink.Sink
	sinks = append(sinks, sink.NewConsoleSink(os.Stdout, 100))

	if params.Sample {
		sinks = append(sinks, sink.NewFrameSink(params.ResultsDir, 4))
	}
	if params.EnergySeries {
		sinks = append(sinks, sink.NewEnergySeriesSink(filepath.Join(params.ResultsDir, "energy.png")))
	}
	if params.LiveAddr != "" {
		wsSink, err := sink.NewWebSocketSink(params.LiveAddr)
		if err != nil {
			// Rendering collaborators are thin and optional: a bind
			// failure here is reported but does not abort the run.
			log.Printf("hpfold: could not start live websocket sink: %v", err)
		} else {
			sinks = append(sinks, wsSink)
		}
	}

	closeAll := func() {
		for _, s := range sinks {
			if err := s.Close(); err != nil {
				log.Printf("hpfold: error closing sink: %v", err)
			}
		}
	}
	return sinks, closeAll, nil
}
