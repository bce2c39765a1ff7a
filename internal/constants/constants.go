// Package constants defines shared constants used across the validation engine.
package constants

import "time"

// Version is the build version, overwritten at link time via -ldflags.
var Version = "dev" //nolint:gochecknoglobals // injected by the build

// Stable rule_id identifiers exposed on ValidationError records. These are
// the external contract; internal rule implementations (structure.start,
// structure.end, id.unique, ...) all collapse onto one of these strings.
const (
	RuleXMLSyntax            = "xml-syntax"
	RuleStructure            = "structure"
	RuleCrossFileID          = "cross-file-id"
	RuleCrossFileReference   = "cross-file-reference"
	RuleTemporalMonotonicity = "temporal-monotonicity"
	RuleTemporal             = "temporal"
	RulePhaseOrder           = "phase-order"
	RuleRelaxNG              = "relaxng"
	RuleSchematron           = "schematron"
	RuleStreaming            = "streaming"
	RuleIO                   = "io"
	RuleCheckpointCorrupt    = "checkpoint-corrupt"
	RuleInternal             = "internal"
)

// Severity values for ValidationError.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Phase ordering enforced by rule=phase.order.
var PhaseOrder = []string{"begin", "start", "iteration", "end", "continuum"} //nolint:gochecknoglobals // fixed canonical sequence

// Checkpoint format.
const (
	CheckpointFormatVersion = "2.0"
	DefaultMaxCheckpoints   = 10
)

// Structural limits and defaults.
const (
	DefaultMaxDepth                   = 1000
	DefaultSchemaBufferThresholdBytes = 10 * 1024 * 1024
	DefaultCheckpointIntervalBytes    = 50 * 1024 * 1024
	DefaultHarnessTimeout             = 300 * time.Second
)

// Generator shape presets.
const (
	ShapeSimple    = "simple"
	ShapeComplex   = "complex"
	ShapeNested    = "nested"
	ShapeRealistic = "realistic"
)

// Realistic-dataset record kinds.
const (
	RecordKindUser        = "user"
	RecordKindProduct     = "product"
	RecordKindTransaction = "transaction"
	RecordKindLog         = "log"
)

// Benchmark method identifiers.
const (
	MethodStreaming = "streaming"
	MethodTree      = "tree"
)
