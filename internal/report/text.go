package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/gendiv/internal/model"
)

func diversityText(w io.Writer, rep *model.DiversityReport) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Analyzing %d Java test files for input diversity...\n\n", rep.Chunks)
	fmt.Fprintln(bw, "--- Diversity Analysis Results ---")
	fmt.Fprintf(bw, "%-25s | %-20s | %-25s\n", "Input Category", "# of Unique Inputs", "Average Pairwise Distance")
	fmt.Fprintln(bw, strings.Repeat("-", 75))

	for _, res := range rep.Results {
		fmt.Fprintf(bw, "%-25s | %-20d | %-25s\n", res.Category, res.UniqueCount, fmt.Sprintf("%.4f", res.AvgDistance))
	}

	return bw.Flush()
}

func signaturesText(w io.Writer, rep *model.SignatureReport) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Found %d Java test files to analyze.\n\n", len(rep.Chunks))

	for _, c := range rep.Chunks {
		if c.Tally.Semantic == 0 {
			continue
		}
		fmt.Fprintf(bw, "-> Analyzing %s: Found %d semantic inputs, %d of which are mutated.\n",
			c.ID, c.Tally.Semantic, c.Tally.Mutated)
	}

	fmt.Fprintln(bw, "\n--- Analysis Complete ---")
	if rep.Total.Semantic == 0 {
		fmt.Fprintln(bw, "No semantic inputs were found across all files.")
	}
	fmt.Fprintf(bw, "Total Semantic Inputs: %d\n", rep.Total.Semantic)
	fmt.Fprintf(bw, "GI Mutated Inputs:     %d\n", rep.Total.Mutated)
	fmt.Fprintf(bw, "Percentage:            %.2f%%\n", rep.Total.Percentage())

	return bw.Flush()
}
