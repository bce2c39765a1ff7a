package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/farukalpay/xml-lib-sub000/internal/orchestrator"
	"github.com/farukalpay/xml-lib-sub000/internal/report"
)

func init() {
	validateCmd.Flags().Int("max-depth", 0, "maximum element nesting depth (0 uses the engine default)")
	validateCmd.Flags().Bool("parallel", false, "process files concurrently, guarded by the shared cross-file index")
	validateCmd.Flags().Int("max-workers", 4, "maximum concurrent file workers when --parallel is set")
	validateCmd.Flags().String("checkpoint-dir", "", "directory to write periodic checkpoints to (disabled if empty)")
	validateCmd.Flags().Int64("checkpoint-interval-bytes", 0, "bytes between checkpoints (0 uses the engine default)")
	validateCmd.Flags().Int("max-checkpoints", -1, "checkpoints retained per file (0 unlimited, -1 uses the engine default)")
	validateCmd.Flags().String("format", "terminal", "output format: terminal, markdown, ndjson")
	validateCmd.Flags().String("output", "", "write the rendered report to this file instead of stdout")
	validateCmd.Flags().String("schema", "", "path to a YAML Relax NG/Schematron-style schema definition")
	validateCmd.Flags().Int64("schema-threshold-bytes", 0, "max file size to buffer for schema validation (0 uses the engine default)")

	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{ //nolint:gochecknoglobals // Cobra command
	Use:     "validate [file ...]",
	Short:   "Validate one or more XML documents",
	GroupID: "utility",
	Long: `The 'validate' command stream-validates one or more XML files for
well-formedness, structural invariants, and cross-file identifier
consistency, reporting a single aggregated result.

Examples:
  xml-validate validate document.xml
  xml-validate validate --parallel a.xml b.xml c.xml
  xml-validate validate --checkpoint-dir ./checkpoints huge.xml
`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		maxDepth, _ := cmd.Flags().GetInt("max-depth")
		parallel, _ := cmd.Flags().GetBool("parallel")
		maxWorkers, _ := cmd.Flags().GetInt("max-workers")
		checkpointDir, _ := cmd.Flags().GetString("checkpoint-dir")
		checkpointInterval, _ := cmd.Flags().GetInt64("checkpoint-interval-bytes")
		maxCheckpoints, _ := cmd.Flags().GetInt("max-checkpoints")
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		schemaPath, _ := cmd.Flags().GetString("schema")
		schemaThreshold, _ := cmd.Flags().GetInt64("schema-threshold-bytes")
		quiet, _ := cmd.Flags().GetBool("quiet")

		orch := orchestrator.New(orchestrator.Config{
			Files:                      args,
			MaxDepth:                   maxDepth,
			Parallel:                   parallel,
			MaxWorkers:                 maxWorkers,
			CheckpointDir:              checkpointDir,
			CheckpointIntervalBytes:    checkpointInterval,
			MaxCheckpoints:             maxCheckpoints,
			SchemaPath:                 schemaPath,
			SchemaBufferThresholdBytes: schemaThreshold,
		}, logger)

		prog := newValidateProgress(args, quiet)
		prog.Start()
		run, err := orch.Execute(ctx)
		prog.Stop()
		if err != nil {
			return fmt.Errorf("validate: %w", err)
		}

		if err := renderResult(run, format, output); err != nil {
			return err
		}

		if !run.Result.IsValid {
			os.Exit(1)
		}
		return nil
	},
}

// newValidateProgress returns a spinner for a single-file validate run, or a
// no-op Progress when quiet is set, output isn't a terminal, or more than one
// file is being validated (a spinner's single label doesn't fit a multi-file
// run well; that case relies on the per-file log lines instead).
func newValidateProgress(files []string, quiet bool) *report.Progress {
	if quiet || len(files) != 1 || !isatty.IsTerminal(os.Stdout.Fd()) {
		return report.NewProgress(nil, "")
	}
	return report.NewProgress(os.Stdout, "validating "+files[0])
}

func renderResult(run orchestrator.Run, format, outputPath string) error {
	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath) // #nosec G304 -- operator-supplied output path
		if err != nil {
			return fmt.Errorf("validate: open output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "ndjson":
		return report.WriteNDJSON(out, run.Result)
	case "markdown":
		md, err := report.ToMarkdown(run.Result)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, md)
		return err
	default:
		_, err := fmt.Fprintln(out, report.RenderTerminal(run.Result))
		return err
	}
}
