package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/farukalpay/xml-lib-sub000/internal/checkpoint"
)

func init() {
	checkpointListCmd.Flags().String("dir", "", "checkpoint directory (required)")
	checkpointListCmd.MarkFlagRequired("dir") //nolint:errcheck
	checkpointCmd.AddCommand(checkpointListCmd)

	checkpointDeleteCmd.Flags().String("dir", "", "checkpoint directory (required)")
	checkpointDeleteCmd.MarkFlagRequired("dir") //nolint:errcheck
	checkpointCmd.AddCommand(checkpointDeleteCmd)

	rootCmd.AddCommand(checkpointCmd)
}

var checkpointCmd = &cobra.Command{ //nolint:gochecknoglobals // Cobra command
	Use:     "checkpoint",
	Short:   "Inspect and manage validation checkpoints",
	GroupID: "utility",
}

var checkpointListCmd = &cobra.Command{ //nolint:gochecknoglobals // Cobra command
	Use:   "list [file]",
	Short: "List checkpoints recorded for a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		mgr := checkpoint.NewManager(dir, -1)

		listing, err := mgr.FormatCheckpointList(args[0])
		if err != nil {
			return fmt.Errorf("checkpoint list: %w", err)
		}
		fmt.Println(listing)
		return nil
	},
}

var checkpointDeleteCmd = &cobra.Command{ //nolint:gochecknoglobals // Cobra command
	Use:   "delete [file]",
	Short: "Delete every checkpoint recorded for a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		mgr := checkpoint.NewManager(dir, -1)

		if err := mgr.DeleteCheckpoints(args[0]); err != nil {
			return fmt.Errorf("checkpoint delete: %w", err)
		}
		fmt.Printf("deleted checkpoints for %s\n", args[0])
		return nil
	},
}
