package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/gendiv/internal/model"
)

func diversityMarkdown(w io.Writer, rep *model.DiversityReport) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# Input Diversity\n\n")
	fmt.Fprintf(bw, "**Source:** `%s`  \n", rep.Source)
	fmt.Fprintf(bw, "**Files analyzed:** %d\n\n", rep.Chunks)

	if len(rep.Results) == 0 {
		fmt.Fprintf(bw, "_No category inputs were found._\n")
		return bw.Flush()
	}

	fmt.Fprintf(bw, "| Input Category | # of Unique Inputs | Average Pairwise Distance | Metric |\n")
	fmt.Fprintf(bw, "|---|---:|---:|---|\n")
	for _, res := range rep.Results {
		fmt.Fprintf(bw, "| %s | %d | %.4f | %s |\n", res.Category, res.UniqueCount, res.AvgDistance, res.Kind)
	}

	for _, res := range rep.Results {
		if res.Numeric == nil {
			continue
		}
		n := res.Numeric
		fmt.Fprintf(bw, "\n## %s\n\n", res.Category)
		fmt.Fprintf(bw, "- Parsed values: %d of %d\n", n.Parsed, res.UniqueCount)
		fmt.Fprintf(bw, "- Range: %g (min %g, max %g)\n", n.Range, n.Min, n.Max)
		fmt.Fprintf(bw, "- Divisor: %d\n", n.Divisor)
		fmt.Fprintf(bw, "- Formula: `%s`\n", n.Formula)
	}

	return bw.Flush()
}

func signaturesMarkdown(w io.Writer, rep *model.SignatureReport) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# Mutation Signatures\n\n")
	fmt.Fprintf(bw, "**Source:** `%s`  \n", rep.Source)
	fmt.Fprintf(bw, "**Files analyzed:** %d\n\n", len(rep.Chunks))

	fmt.Fprintf(bw, "| File | Semantic Inputs | Mutated Inputs |\n")
	fmt.Fprintf(bw, "|---|---:|---:|\n")
	for _, c := range rep.Chunks {
		if c.Tally.Semantic == 0 {
			continue
		}
		fmt.Fprintf(bw, "| %s | %d | %d |\n", c.ID, c.Tally.Semantic, c.Tally.Mutated)
	}
	fmt.Fprintf(bw, "| **Total** | **%d** | **%d** |\n\n", rep.Total.Semantic, rep.Total.Mutated)
	fmt.Fprintf(bw, "**Percentage mutated:** %.2f%%\n", rep.Total.Percentage())

	var matched bool
	for _, c := range rep.Chunks {
		if len(c.Matches) == 0 {
			continue
		}
		if !matched {
			fmt.Fprintf(bw, "\n## Matches\n\n")
			matched = true
		}
		for _, m := range c.Matches {
			fmt.Fprintf(bw, "- %s `%s` = `%s` (%s)\n", c.ID, m.Name, escapeCode(m.Value), m.Signature)
		}
	}

	return bw.Flush()
}

// escapeCode keeps a value from closing its inline code span
func escapeCode(s string) string {
	return strings.ReplaceAll(s, "`", "'")
}
