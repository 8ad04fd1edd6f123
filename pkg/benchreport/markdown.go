package benchreport

import (
	"fmt"
	"strings"
)

// Markdown renders the report as a summary table plus a collapsible
// per-sample prediction table. With no successful results the body is the
// placeholder line; failed models are always listed.
func (r *Report) Markdown() string {
	var b strings.Builder

	b.WriteString("## Mini-Benchmark (CPU)\n")
	fmt.Fprintf(&b, "*Samples:* %d  ·  *Runs/sample:* %d\n\n", r.SampleCount, r.RunsPerSample)

	if len(r.Results) == 0 {
		b.WriteString("_No results._\n")
	} else {
		b.WriteString("| Model | Avg ms | Median | p95 | Min | Max | Accuracy |\n")
		b.WriteString("|---|---:|---:|---:|---:|---:|---:|\n")
		for _, res := range r.Results {
			fmt.Fprintf(&b, "| %s | %.1f | %.1f | %.1f | %.1f | %.1f | %.0f%% |\n",
				EscapeCell(res.DisplayName()),
				res.Latency.AvgMS,
				res.Latency.MedianMS,
				res.Latency.P95MS,
				res.Latency.MinMS,
				res.Latency.MaxMS,
				res.Accuracy*100,
			)
		}

		b.WriteString("\n<details><summary>Per-sample predictions</summary>\n\n")
		b.WriteString("| Model | Text | Expected | Predicted | Confidence |\n")
		b.WriteString("|---|---|---|---|---:|\n")
		for _, res := range r.Results {
			for _, p := range res.Predictions {
				fmt.Fprintf(&b, "| %s | %s | %s | %s | %.4f |\n",
					EscapeCell(res.DisplayName()),
					EscapeCell(p.Text),
					p.Expected,
					p.Predicted,
					p.Confidence,
				)
			}
		}
		b.WriteString("\n</details>\n")
	}

	if len(r.Failures) > 0 {
		b.WriteString("\n**Skipped models:**\n\n")
		for _, f := range r.Failures {
			fmt.Fprintf(&b, "- %s (`%s`): %s\n", f.DisplayName(), f.Model, f.Err)
		}
	}

	return b.String()
}

// EscapeCell escapes Markdown table delimiters in a cell value so free-form
// text cannot break row structure.
func EscapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
