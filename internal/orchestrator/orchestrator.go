// Package orchestrator coordinates a multi-file validation run: it iterates
// files in deterministic (lexicographic, unless the caller supplies an
// explicit order) order, shares one internal/crossfile.Index and one
// internal/aggregate.Aggregator across the whole run, drives one
// internal/rules.Engine per file, and honors a cooperative cancellation
// signal between files.
//
// The per-file goroutine / sync.WaitGroup / error-channel shape generalizes
// a fixed two-stage CLI command into a reusable run coordinator that the
// CLI, a library caller, or a future service front-end can all drive.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/farukalpay/xml-lib-sub000/internal/aggregate"
	"github.com/farukalpay/xml-lib-sub000/internal/checkpoint"
	"github.com/farukalpay/xml-lib-sub000/internal/checksum"
	"github.com/farukalpay/xml-lib-sub000/internal/constants"
	"github.com/farukalpay/xml-lib-sub000/internal/crossfile"
	"github.com/farukalpay/xml-lib-sub000/internal/events"
	"github.com/farukalpay/xml-lib-sub000/internal/log"
	"github.com/farukalpay/xml-lib-sub000/internal/model"
	"github.com/farukalpay/xml-lib-sub000/internal/rules"
	"github.com/farukalpay/xml-lib-sub000/internal/schema"
)

// Config parameterizes one run.
type Config struct {
	Files []string // processed in this order if non-empty and PreserveOrder is set

	PreserveOrder bool // skip the default lexicographic sort

	MaxDepth int

	CheckpointDir           string // empty disables checkpointing
	CheckpointIntervalBytes int64
	MaxCheckpoints          int

	Parallel   bool // files may be processed concurrently; crossfile.Index and aggregate.Aggregator are both mutex-protected
	MaxWorkers int

	// SchemaPath, if set, additionally runs the buffered schema.relaxng/
	// schema.schematron pass (internal/schema) over every file below
	// SchemaBufferThresholdBytes (default constants.DefaultSchemaBufferThresholdBytes).
	SchemaPath                 string
	SchemaBufferThresholdBytes int64
}

// Run is one coordinated execution: a stable ID plus the folded result.
type Run struct {
	ID     string
	Result model.ValidationResult
}

// Orchestrator drives a run over a set of files.
type Orchestrator struct {
	cfg         Config
	logger      *log.Logger
	schemaCache *schema.Cache
}

// New returns an Orchestrator for cfg. logger may be nil.
func New(cfg Config, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger, _ = log.New(log.Config{Level: "error", Format: "text"})
	}

	var cache *schema.Cache
	if cfg.SchemaPath != "" {
		cache, _ = schema.NewCache(16)
	}
	if cfg.SchemaBufferThresholdBytes <= 0 {
		cfg.SchemaBufferThresholdBytes = constants.DefaultSchemaBufferThresholdBytes
	}

	return &Orchestrator{cfg: cfg, logger: logger, schemaCache: cache}
}

// Execute runs validation over every configured file, returning once all
// files are processed or ctx is cancelled. Cancellation discards the
// in-flight file's partial result and leaves previously written checkpoints
// untouched.
func (o *Orchestrator) Execute(ctx context.Context) (Run, error) {
	files := o.orderedFiles()
	if len(files) == 0 {
		return Run{}, fmt.Errorf("orchestrator: no files to validate")
	}

	runID := uuid.NewString()
	crossFileIndex := crossfile.New()
	agg := aggregate.New()

	var mgr *checkpoint.Manager
	if o.cfg.CheckpointDir != "" {
		mgr = checkpoint.NewManager(o.cfg.CheckpointDir, o.cfg.MaxCheckpoints)
	}

	if o.cfg.Parallel {
		o.executeParallel(ctx, files, crossFileIndex, agg, mgr)
	} else {
		o.executeSequential(ctx, files, crossFileIndex, agg, mgr)
	}

	agg.AddCrossFileViolations(crossFileIndex.Finalize())

	return Run{ID: runID, Result: agg.Finish()}, nil
}

func (o *Orchestrator) orderedFiles() []string {
	files := append([]string(nil), o.cfg.Files...)
	if !o.cfg.PreserveOrder {
		sort.Strings(files)
	}
	return files
}

func (o *Orchestrator) executeSequential(ctx context.Context, files []string, idx *crossfile.Index, agg *aggregate.Aggregator, mgr *checkpoint.Manager) {
	for _, file := range files {
		if ctx.Err() != nil {
			o.logger.WithContext(ctx).Warn("run cancelled, stopping before next file", "file", file)
			return
		}
		o.processFile(ctx, file, idx, agg, mgr)
	}
}

func (o *Orchestrator) executeParallel(ctx context.Context, files []string, idx *crossfile.Index, agg *aggregate.Aggregator, mgr *checkpoint.Manager) {
	workers := o.cfg.MaxWorkers
	if workers <= 0 {
		workers = 4
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for _, file := range files {
		if ctx.Err() != nil {
			break
		}
		file := file
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			o.processFile(ctx, file, idx, agg, mgr)
		}()
	}

	wg.Wait()
}

func (o *Orchestrator) processFile(ctx context.Context, file string, idx *crossfile.Index, agg *aggregate.Aggregator, mgr *checkpoint.Manager) {
	ctxLogger := o.logger.WithContext(ctx).WithFields("file", file)

	f, err := os.Open(file) // #nosec G304 -- operator-supplied validation input
	if err != nil {
		agg.AddFile(file, "", rules.Fragment{
			Errors:  []model.ValidationError{{File: file, Message: err.Error(), Severity: constants.SeverityError, RuleID: constants.RuleIO}},
			IsValid: false,
		}, false)
		ctxLogger.Error("failed to open file", "error", err)
		return
	}
	defer f.Close()

	sum, err := checksum.Of(f)
	if err != nil {
		ctxLogger.Error("failed to checksum file", "error", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		ctxLogger.Error("failed to rewind file", "error", err)
		return
	}

	parser := events.NewParser(f)
	engineCfg := rules.Config{File: file, MaxDepth: o.cfg.MaxDepth, CrossFile: idx}
	if mgr != nil {
		engineCfg.Checkpointer = mgr
		engineCfg.CheckpointIntervalBytes = o.cfg.CheckpointIntervalBytes
		if engineCfg.CheckpointIntervalBytes <= 0 {
			engineCfg.CheckpointIntervalBytes = constants.DefaultCheckpointIntervalBytes
		}
	}

	engine := rules.New(engineCfg)
	frag := engine.RunParser(parser)
	if ctx.Err() != nil {
		ctxLogger.Warn("run cancelled, discarding in-flight file result")
		return
	}

	if o.schemaCache != nil {
		if schemaViolations, ok := o.runSchema(file, ctxLogger); ok {
			for _, v := range schemaViolations {
				if v.IsError() {
					frag.Errors = append(frag.Errors, v)
				} else {
					frag.Warnings = append(frag.Warnings, v)
				}
			}
			frag.IsValid = frag.IsValid && !hasError(schemaViolations)
		}
	}

	agg.AddFile(file, sum, frag, true)
	ctxLogger.Info("validated file", "is_valid", frag.IsValid, "errors", len(frag.Errors), "warnings", len(frag.Warnings))
}

// runSchema buffers file and evaluates it against the configured schema, but
// only when file is below SchemaBufferThresholdBytes — larger files skip
// this pass rather than risk materializing an unbounded tree in memory.
func (o *Orchestrator) runSchema(file string, ctxLogger *log.Logger) ([]model.ValidationError, bool) {
	info, err := os.Stat(file)
	if err != nil {
		return nil, false
	}
	if info.Size() > o.cfg.SchemaBufferThresholdBytes {
		ctxLogger.Info("skipping schema validation", "reason", schema.ErrTooLargeToBuffer, "size", info.Size(), "threshold", o.cfg.SchemaBufferThresholdBytes)
		return nil, false
	}

	compiled, err := o.schemaCache.Get(o.cfg.SchemaPath)
	if err != nil {
		ctxLogger.Error("failed to load schema", "error", err)
		return nil, false
	}

	sf, err := os.Open(file) // #nosec G304 -- operator-supplied validation input
	if err != nil {
		ctxLogger.Error("failed to reopen file for schema validation", "error", err)
		return nil, false
	}
	defer sf.Close()

	violations, err := schema.Validate(sf, file, compiled)
	if err != nil {
		ctxLogger.Error("schema validation failed", "error", err)
		return nil, false
	}
	return violations, true
}

func hasError(violations []model.ValidationError) bool {
	for _, v := range violations {
		if v.IsError() {
			return true
		}
	}
	return false
}
