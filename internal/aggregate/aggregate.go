// Package aggregate implements the result aggregator: it folds each file's
// rules.Fragment plus the run's cross-file violations into one
// model.ValidationResult, deduplicating identical error records and
// deriving is_valid as the conjunction of per-file validity and the absence
// of cross-file errors.
package aggregate

import (
	"sync"
	"time"

	"github.com/farukalpay/xml-lib-sub000/internal/model"
	"github.com/farukalpay/xml-lib-sub000/internal/rules"
)

// Aggregator accumulates file results for one run. Safe for concurrent use
// by distinct per-file workers, so long as each worker's writes come through
// AddFile/AddCrossFileViolations rather than touching the result fields directly.
type Aggregator struct {
	mu sync.Mutex

	errors         []model.ValidationError
	warnings       []model.ValidationError
	validatedFiles []string
	checksums      map[string]string
	usedStreaming  bool

	seen map[dedupKey]bool
}

type dedupKey struct {
	file, message, ruleID string
	line, column          int
}

// New returns an empty Aggregator.
func New() *Aggregator {
	return &Aggregator{
		checksums: map[string]string{},
		seen:      map[dedupKey]bool{},
	}
}

// AddFile folds one file's Fragment into the run, recording its checksum
// and whether streaming mode was used for it.
func (a *Aggregator) AddFile(file, contentChecksum string, frag rules.Fragment, usedStreaming bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.validatedFiles = append(a.validatedFiles, file)
	a.checksums[file] = contentChecksum
	if usedStreaming {
		a.usedStreaming = true
	}

	for _, e := range frag.Errors {
		a.addLocked(e, true)
	}
	for _, w := range frag.Warnings {
		a.addLocked(w, false)
	}
}

// AddCrossFileViolations folds run-scoped violations (dangling references)
// produced by internal/crossfile.Index.Finalize.
func (a *Aggregator) AddCrossFileViolations(violations []model.ValidationError) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, v := range violations {
		a.addLocked(v, v.IsError())
	}
}

func (a *Aggregator) addLocked(e model.ValidationError, isError bool) {
	key := dedupKey{file: e.File, line: e.Line, column: e.Column, message: e.Message, ruleID: e.RuleID}
	if a.seen[key] {
		return
	}
	a.seen[key] = true

	if isError {
		a.errors = append(a.errors, e)
	} else {
		a.warnings = append(a.warnings, e)
	}
}

// Finish freezes the accumulated state into a ValidationResult, stamped
// with the current time.
func (a *Aggregator) Finish() model.ValidationResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	result := model.ValidationResult{
		Errors:         append([]model.ValidationError(nil), a.errors...),
		Warnings:       append([]model.ValidationError(nil), a.warnings...),
		ValidatedFiles: append([]string(nil), a.validatedFiles...),
		Checksums:      copyChecksums(a.checksums),
		Timestamp:      time.Now().UTC(),
		UsedStreaming:  a.usedStreaming,
	}
	result.Recompute()
	return result
}

func copyChecksums(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
