package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/farukalpay/xml-lib-sub000/internal/benchmark"
	"github.com/farukalpay/xml-lib-sub000/internal/model"
)

var (
	passStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	failStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// RenderTerminal renders a compact, colored run summary for interactive use
// — a pass/fail banner plus per-violation detail.
func RenderTerminal(result model.ValidationResult) string {
	var b strings.Builder

	if result.IsValid {
		fmt.Fprintln(&b, passStyle.Render("✓ valid"))
	} else {
		fmt.Fprintln(&b, failStyle.Render("✗ invalid"))
	}

	fmt.Fprintln(&b, dimStyle.Render(fmt.Sprintf(
		"%d file(s), %d error(s), %d warning(s), streaming=%t",
		len(result.ValidatedFiles), len(result.Errors), len(result.Warnings), result.UsedStreaming,
	)))

	if len(result.Errors) > 0 {
		fmt.Fprintln(&b, headingStyle.Render("Errors"))
		for _, e := range result.Errors {
			fmt.Fprintln(&b, failStyle.Render("  "+e.Error()))
		}
	}
	if len(result.Warnings) > 0 {
		fmt.Fprintln(&b, headingStyle.Render("Warnings"))
		for _, w := range result.Warnings {
			fmt.Fprintln(&b, warnStyle.Render("  "+w.Error()))
		}
	}

	return b.String()
}

// RenderBenchmarkReport renders a boxed streaming-vs-tree comparison table
// using lipgloss's border styling in place of hand-drawn box characters.
func RenderBenchmarkReport(comp benchmark.Comparison) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	rows := []string{
		headingStyle.Render(fmt.Sprintf("Benchmark: %s (%d bytes)", comp.File, comp.Bytes)),
		methodLine("streaming", comp.Streaming),
		methodLine("tree", comp.Tree),
	}

	return box.Render(strings.Join(rows, "\n"))
}

func methodLine(name string, r benchmark.Result) string {
	if r.Error != "" {
		return failStyle.Render(fmt.Sprintf("%-10s FAILED: %s", name, r.Error))
	}
	return fmt.Sprintf("%-10s %8.2fms  %8.2f MB/s  peak %s",
		name, float64(r.Duration.Microseconds())/1000, r.ThroughputMBps, formatBytes(r.PeakMemoryBytes))
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := uint64(unit), 0
	for n/div >= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
