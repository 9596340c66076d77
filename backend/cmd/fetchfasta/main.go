// Command fetchfasta downloads real protein sequences from RCSB as FASTA
// files, for use as hpfold input: same fetch-and-save loop as a PDB
// structure downloader, pointed at RCSB's FASTA endpoint instead of its
// coordinate-file endpoint, since hpfold only ever needs a sequence,
// not 3D coordinates.
//
// Usage: fetchfasta 1UBQ 1CRN 2KXA
//
// Downloads sequences into testdata/fasta/.
package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	fastaBaseURL = "https://www.rcsb.org/fasta/entry/"
	outputDir    = "testdata/fasta/"
)

func main() {
	ids := []string{"1UBQ", "1CRN", "1VII", "1L2Y"}
	if len(os.Args) > 1 {
		ids = os.Args[1:]
	}

	fmt.Println("hpfold FASTA fetcher")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Fetching %d sequences...\n\n", len(ids))

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "fetchfasta: %v\n", err)
		os.Exit(1)
	}

	successCount := 0
	for _, id := range ids {
		id = strings.ToUpper(strings.TrimSpace(id))
		if fetchFasta(id) {
			successCount++
		}
		time.Sleep(500 * time.Millisecond)
	}

	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Fetch complete: %d/%d sequences downloaded\n", successCount, len(ids))
	if successCount < len(ids) {
		os.Exit(1)
	}
}

func fetchFasta(id string) bool {
	url := fastaBaseURL + id
	outputFile := filepath.Join(outputDir, strings.ToLower(id)+".fasta")

	fmt.Printf("Fetching %s... ", id)

	if _, err := os.Stat(outputFile); err == nil {
		fmt.Println("already exists")
		return true
	}

	resp, err := http.Get(url)
	if err != nil {
		fmt.Printf("failed: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("failed: HTTP %d\n", resp.StatusCode)
		return false
	}

	out, err := os.Create(outputFile)
	if err != nil {
		fmt.Printf("failed to create file: %v\n", err)
		return false
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		fmt.Printf("failed to write file: %v\n", err)
		return false
	}

	fmt.Println("done")
	return true
}
