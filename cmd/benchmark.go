package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/farukalpay/xml-lib-sub000/internal/benchmark"
	"github.com/farukalpay/xml-lib-sub000/internal/report"
)

func init() {
	benchmarkCmd.Flags().Int("timeout-seconds", 300, "per-method timeout in seconds")

	rootCmd.AddCommand(benchmarkCmd)
}

var benchmarkCmd = &cobra.Command{ //nolint:gochecknoglobals // Cobra command
	Use:     "benchmark [file]",
	Short:   "Compare streaming vs in-memory tree validation for one file",
	GroupID: "utility",
	Long: `The 'benchmark' command times and measures peak memory for two validation
methods over the same file: streaming validation and an in-memory tree
method, reporting throughput, duration, peak memory, and success/failure
for each.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		timeoutSeconds, _ := cmd.Flags().GetInt("timeout-seconds")

		comp, err := benchmark.Run(ctx, args[0], time.Duration(timeoutSeconds)*time.Second)
		if err != nil {
			return fmt.Errorf("benchmark: %w", err)
		}

		fmt.Println(report.RenderBenchmarkReport(comp))
		return nil
	},
}
