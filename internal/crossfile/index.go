// Package crossfile implements the cross-document ID/reference index:
// duplicate-ID detection and dangling-reference resolution across every file
// in one validation run.
package crossfile

import (
	"sync"

	"github.com/farukalpay/xml-lib-sub000/internal/constants"
	"github.com/farukalpay/xml-lib-sub000/internal/model"
)

// Index accumulates identifiers and pending references across a run. All
// mutating operations are safe for concurrent use by distinct per-file
// workers: every method takes the same mutex before touching shared state.
type Index struct {
	mu sync.Mutex

	seenIDs           map[string]string // id -> first-seen file
	pendingReferences []model.Reference
}

// New returns an empty cross-file index, scoped to one validation run.
func New() *Index {
	return &Index{seenIDs: map[string]string{}}
}

// ObserveID records id as seen in file at position. If id was already
// recorded (in this file or any other), it returns a duplicate-ID
// ValidationError attributed to the second occurrence (this call), carrying
// the first-seen file in the message, and duplicate is true. Otherwise id is
// recorded as first-seen in file and duplicate is false.
func (idx *Index) ObserveID(file, id string, pos model.Position) (violation model.ValidationError, duplicate bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if firstFile, exists := idx.seenIDs[id]; exists {
		return model.ValidationError{
			File:     file,
			Line:     pos.Line,
			Column:   pos.Column,
			Message:  "duplicate id '" + id + "' (first seen in " + firstFile + ")",
			Severity: constants.SeverityError,
			RuleID:   constants.RuleCrossFileID,
		}, true
	}

	idx.seenIDs[id] = file
	return model.ValidationError{}, false
}

// ObserveReference enqueues a reference for dangling-reference checking at
// Finalize.
func (idx *Index) ObserveReference(file, targetID, kind string, pos model.Position) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.pendingReferences = append(idx.pendingReferences, model.Reference{
		SourceFile: file,
		TargetID:   targetID,
		Kind:       kind,
		Position:   pos,
	})
}

// Finalize resolves every pending reference against the id table and
// returns one dangling-reference error per reference whose target was never
// observed, in enqueue order (the orchestrator's file-iteration order).
func (idx *Index) Finalize() []model.ValidationError {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	var violations []model.ValidationError
	for _, ref := range idx.pendingReferences {
		if _, ok := idx.seenIDs[ref.TargetID]; ok {
			continue
		}
		violations = append(violations, model.ValidationError{
			File:     ref.SourceFile,
			Line:     ref.Position.Line,
			Column:   ref.Position.Column,
			Message:  "dangling reference to id '" + ref.TargetID + "' (kind " + ref.Kind + ")",
			Severity: constants.SeverityError,
			RuleID:   constants.RuleCrossFileReference,
		})
	}
	return violations
}

// Snapshot returns a plain-data copy of the index's current contents.
func (idx *Index) Snapshot() model.CrossFileIndexData {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	ids := make(map[string]string, len(idx.seenIDs))
	for k, v := range idx.seenIDs {
		ids[k] = v
	}
	return model.CrossFileIndexData{
		SeenIDs:           ids,
		PendingReferences: append([]model.Reference(nil), idx.pendingReferences...),
	}
}
