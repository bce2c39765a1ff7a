// Package cmd provides the command-line interface for the streaming XML
// validation engine.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	applog "github.com/farukalpay/xml-lib-sub000/internal/log"
)

var cfgFile string

var logger *applog.Logger //nolint:gochecknoglobals // shared across commands, initialized once in PersistentPreRunE

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{ //nolint:gochecknoglobals // Cobra command
	Use:   "xml-validate",
	Short: "Stream-validate large XML documents with exact position reporting.",
	Long: `xml-validate is a streaming XML validation engine: it checks well-formedness,
structural invariants, cross-file identifier references, and optional
Relax NG/Schematron-style schema constraints without materializing a DOM,
so it scales to documents far larger than available memory.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		format, _ := cmd.Flags().GetString("log-format")
		quiet, _ := cmd.Flags().GetBool("quiet")

		if quiet {
			level = "error"
		}

		l, err := applog.New(applog.Config{Level: level, Format: format})
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		logger = l
		return nil
	},
}

// GetRootCmd returns the root command, for use by main and tests.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.xml-validate.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")

	rootCmd.AddGroup(&cobra.Group{ID: "utility", Title: "Utility Commands:"})
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".xml-validate")
	}

	viper.SetEnvPrefix("XMLVALIDATE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
