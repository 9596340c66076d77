// Package hp reads a FASTA-formatted amino-acid sequence and projects
// it onto the two-letter HP alphabet the lattice model works in.
//
// BIOCHEMIST: hydrophobic residues under the HP model pull the chain
// into compact, water-excluding cores; everything else is polar.
package hp

import (
	"bufio"
	"io"
	"strings"

	"github.com/latticefold/hpfold/backend/internal/apperr"
	"github.com/latticefold/hpfold/backend/internal/lattice"
)

// authoritativeHydrophobic is the authoritative HP projection: a
// residue letter in this set maps to H, everything else to P.
var authoritativeHydrophobic = map[byte]bool{
	'V': true, 'I': true, 'F': true, 'L': true, 'M': true,
	'C': true, 'W': true, 'G': true, 'P': true, 'A': true,
}

// narrowHydrophobic is the draft source's secondary, narrower
// projection, kept as an opt-in alternative rather than discarded.
var narrowHydrophobic = map[byte]bool{
	'V': true, 'I': true, 'F': true, 'L': true, 'M': true,
	'C': true, 'W': true,
}

// Classify projects an amino-acid letter to its HP class using the
// authoritative alphabet.
func Classify(residue byte) lattice.Class {
	if authoritativeHydrophobic[residue] {
		return lattice.H
	}
	return lattice.P
}

// ClassifyNarrow projects using the superseded narrower alphabet,
// available via --hp-alphabet narrow.
func ClassifyNarrow(residue byte) lattice.Class {
	if narrowHydrophobic[residue] {
		return lattice.H
	}
	return lattice.P
}

// ReadFasta scans r line by line, discards header lines (starting with
// '>') and blank lines, concatenates the remaining non-whitespace
// residue letters, and projects them to an HP string using classify.
// A plain line-at-a-time scan with skip-and-continue on anything
// irrelevant; no streaming residue-by-residue API since the whole
// sequence is needed before a Chain can be built.
func ReadFasta(r io.Reader, classify func(byte) lattice.Class) (string, error) {
	var seq strings.Builder
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ">") {
			continue
		}
		for i := 0; i < len(line); i++ {
			if line[i] == ' ' || line[i] == '\t' {
				continue
			}
			seq.WriteByte(line[i])
		}
	}
	if err := scanner.Err(); err != nil {
		return "", apperr.IO("reading FASTA input", err)
	}

	if seq.Len() == 0 {
		return "", apperr.Invalid("FASTA input contained no residues")
	}

	hp := make([]byte, seq.Len())
	raw := seq.String()
	for i := 0; i < len(raw); i++ {
		hp[i] = byte(classify(raw[i]))
	}
	return string(hp), nil
}
