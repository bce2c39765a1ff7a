// Package config provides application configuration management: loading
// from a YAML file, environment variables (prefix XMLVALIDATE), and CLI
// flags, with viper-based precedence and validator.v10-style field
// validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/farukalpay/xml-lib-sub000/internal/constants"
)

// Config holds the configuration for the streaming XML validation engine.
type Config struct {
	InputFiles []string `mapstructure:"input_files"`
	OutputFile string   `mapstructure:"output_file"`
	Verbose    bool     `mapstructure:"verbose"`
	Quiet      bool     `mapstructure:"quiet"`
	LogLevel   string   `mapstructure:"log_level"   validate:"oneof=debug info warn warning error"`
	LogFormat  string   `mapstructure:"log_format"  validate:"oneof=text json"`

	// Output rendering.
	Format   string `mapstructure:"format" validate:"oneof=ndjson markdown terminal"`
	Template string `mapstructure:"template"`

	// Validator behavior.
	MaxDepth      int  `mapstructure:"max_depth"      validate:"gte=0"`
	ParallelFiles bool `mapstructure:"parallel_files"`
	MaxWorkers    int  `mapstructure:"max_workers"    validate:"gte=0"`

	// Checkpointing.
	CheckpointDir           string `mapstructure:"checkpoint_dir"`
	CheckpointIntervalBytes int64  `mapstructure:"checkpoint_interval_bytes" validate:"gte=0"`
	MaxCheckpoints          int    `mapstructure:"max_checkpoints"           validate:"gte=0"`

	// Schema validation.
	SchemaPath                 string `mapstructure:"schema_path"`
	SchemaBufferThresholdBytes int64  `mapstructure:"schema_buffer_threshold_bytes" validate:"gte=0"`

	// Synthetic-document generation.
	GeneratorShape      string `mapstructure:"generator_shape"       validate:"omitempty,oneof=simple complex nested realistic"`
	GeneratorTargetSize int64  `mapstructure:"generator_target_size" validate:"gte=0"`
	GeneratorSeed       int64  `mapstructure:"generator_seed"`
	GeneratorRecordKind string `mapstructure:"generator_record_kind" validate:"omitempty,oneof=user product transaction log"`

	// Benchmark harness.
	BenchmarkTimeoutSeconds int `mapstructure:"benchmark_timeout_seconds" validate:"gte=0"`
}

// LoadConfig loads application configuration from the specified YAML file,
// environment variables, and defaults, using a new Viper instance.
func LoadConfig(cfgFile string) (*Config, error) {
	return LoadConfigWithViper(cfgFile, viper.New())
}

// LoadConfigWithFlags loads configuration with CLI flag binding for proper
// precedence: flag values override environment variables and the config
// file.
func LoadConfigWithFlags(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	return LoadConfigWithViper(cfgFile, v)
}

// LoadConfigWithViper loads application configuration using the provided
// Viper instance, merging values from a config file, XMLVALIDATE_-prefixed
// environment variables, and defaults. A missing config file is not an
// error; environment variables and defaults still apply.
func LoadConfigWithViper(cfgFile string, v *viper.Viper) (*Config, error) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("format", "terminal")
	v.SetDefault("max_depth", constants.DefaultMaxDepth)
	v.SetDefault("max_workers", 4)
	v.SetDefault("checkpoint_interval_bytes", constants.DefaultCheckpointIntervalBytes)
	v.SetDefault("max_checkpoints", constants.DefaultMaxCheckpoints)
	v.SetDefault("schema_buffer_threshold_bytes", constants.DefaultSchemaBufferThresholdBytes)
	v.SetDefault("generator_shape", constants.ShapeSimple)
	v.SetDefault("generator_target_size", int64(1024*1024))
	v.SetDefault("benchmark_timeout_seconds", int(constants.DefaultHarnessTimeout.Seconds()))

	v.SetEnvPrefix("XMLVALIDATE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}

		v.AddConfigPath(home)
		v.SetConfigType("yaml")
		v.SetConfigName(".xml-validate")
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

var structValidator = validator.New()

// Validate validates the configuration for consistency and correctness: the
// struct-tag rules above via go-playground/validator, plus filesystem checks
// that validator tags alone cannot express.
func (c *Config) Validate() error {
	var validationErrors []ValidationError

	if err := structValidator.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				validationErrors = append(validationErrors, ValidationError{
					Field:   fe.Field(),
					Message: fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
				})
			}
		} else {
			return fmt.Errorf("validate config: %w", err)
		}
	}

	validateInputFiles(c, &validationErrors)
	validateOutputFile(c, &validationErrors)

	if len(validationErrors) > 0 {
		return combineValidationErrors(validationErrors)
	}
	return nil
}

func validateInputFiles(c *Config, validationErrors *[]ValidationError) {
	for _, f := range c.InputFiles {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			*validationErrors = append(*validationErrors, ValidationError{
				Field:   "input_files",
				Message: "input file does not exist: " + f,
			})
		} else if err != nil {
			*validationErrors = append(*validationErrors, ValidationError{
				Field:   "input_files",
				Message: fmt.Sprintf("failed to check input file %s: %v", f, err),
			})
		}
	}
}

func validateOutputFile(c *Config, validationErrors *[]ValidationError) {
	if c.OutputFile == "" {
		return
	}
	dir := filepath.Dir(c.OutputFile)
	if dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			*validationErrors = append(*validationErrors, ValidationError{
				Field:   "output_file",
				Message: "output directory does not exist: " + dir,
			})
		}
	}
}

func combineValidationErrors(validationErrors []ValidationError) error {
	var errMsg string
	for i, err := range validationErrors {
		if i > 0 {
			errMsg += "; "
		}
		errMsg += err.Error()
	}
	return &ValidationError{Field: "config", Message: errMsg}
}

// GetLogLevel returns the configured log level.
func (c *Config) GetLogLevel() string { return c.LogLevel }

// GetLogFormat returns the configured log format.
func (c *Config) GetLogFormat() string { return c.LogFormat }

// IsVerbose returns true if verbose logging is enabled.
func (c *Config) IsVerbose() bool { return c.Verbose }

// IsQuiet returns true if quiet mode is enabled.
func (c *Config) IsQuiet() bool { return c.Quiet }

// GetFormat returns the configured output rendering format.
func (c *Config) GetFormat() string { return c.Format }

// GetTemplate returns the configured custom report template path.
func (c *Config) GetTemplate() string { return c.Template }
