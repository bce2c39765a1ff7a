// Package checkpoint implements the checkpoint manager: durable,
// integrity-checked snapshots of validator state, written atomically and
// retained/rotated by sequence number.
//
// The atomic write path — temp file in the same directory, fsync, chmod,
// rename — avoids ever leaving a half-written checkpoint visible under its
// final name, the same recipe any atomic-file-write helper uses regardless
// of payload.
package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/farukalpay/xml-lib-sub000/internal/checksum"
	"github.com/farukalpay/xml-lib-sub000/internal/constants"
	"github.com/farukalpay/xml-lib-sub000/internal/model"
)

// DefaultFilePermissions restricts checkpoint files to owner-only: they may
// carry sensitive document fragments (element names, ids).
const DefaultFilePermissions = 0o600

// ErrIntegrityMismatch is returned by Load when the stored integrity_hash
// disagrees with the hash recomputed from the checkpoint's other fields —
// a corruption error distinct from plain I/O failure.
var ErrIntegrityMismatch = errors.New("checkpoint: integrity hash mismatch")

// Manager saves and restores ValidationCheckpoints under one directory.
type Manager struct {
	dir            string
	maxCheckpoints int // 0 = unlimited, matching constants.DefaultMaxCheckpoints semantics
}

// NewManager returns a Manager rooted at dir, retaining at most
// maxCheckpoints per file (0 = unlimited). If maxCheckpoints < 0 the default
// (constants.DefaultMaxCheckpoints) is used.
func NewManager(dir string, maxCheckpoints int) *Manager {
	if maxCheckpoints < 0 {
		maxCheckpoints = constants.DefaultMaxCheckpoints
	}
	return &Manager{dir: dir, maxCheckpoints: maxCheckpoints}
}

var sanitizePattern = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func sanitizeFileName(file string) string {
	base := filepath.Base(file)
	return sanitizePattern.ReplaceAllString(base, "_")
}

func checkpointFileName(file string, sequenceNumber int) string {
	return fmt.Sprintf("%s.seq%06d.checkpoint.json", sanitizeFileName(file), sequenceNumber)
}

// Save serializes state into a ValidationCheckpoint, computes its integrity
// hash, and atomically writes it to disk, enforcing retention afterward.
func (m *Manager) Save(
	forFile string,
	state model.ParserState,
	errorsCount, warningsCount int,
	sequenceNumber int,
) (*model.ValidationCheckpoint, string, error) {
	cp := &model.ValidationCheckpoint{
		FormatVersion:     constants.CheckpointFormatVersion,
		CreatedAt:         timeNow().UTC().Format(time.RFC3339),
		FilePath:          forFile,
		ByteOffset:        state.ByteOffset,
		ElementStack:      append([]string(nil), state.ElementStack...),
		NamespaceBindings: state.NamespaceBindings,
		ErrorsCount:       errorsCount,
		WarningsCount:     warningsCount,
		ElementsValidated: state.ElementsSeen,
		BytesProcessed:    state.BytesProcessed,
		SequenceNumber:    sequenceNumber,
	}

	hash, err := integrityHash(cp)
	if err != nil {
		return nil, "", fmt.Errorf("checkpoint: compute integrity hash: %w", err)
	}
	cp.IntegrityHash = hash

	payload, err := json.Marshal(cp)
	if err != nil {
		return nil, "", fmt.Errorf("checkpoint: marshal: %w", err)
	}

	if err := os.MkdirAll(m.dir, 0o700); err != nil {
		return nil, "", fmt.Errorf("checkpoint: create directory: %w", err)
	}

	path := filepath.Join(m.dir, checkpointFileName(forFile, sequenceNumber))
	if err := writeFileAtomic(path, payload); err != nil {
		return nil, "", fmt.Errorf("checkpoint: write %s: %w", path, err)
	}

	if err := m.enforceRetention(forFile); err != nil {
		return cp, path, fmt.Errorf("checkpoint: enforce retention: %w", err)
	}

	return cp, path, nil
}

// timeNow is indirected so resume tests can fix the clock if needed; in
// normal operation it is time.Now.
var timeNow = time.Now //nolint:gochecknoglobals // test seam

// Load reads and verifies a checkpoint file, refusing to return state whose
// stored integrity_hash disagrees with the recomputed value.
func (m *Manager) Load(path string) (*model.ValidationCheckpoint, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- path is produced by this package or the caller's own checkpoint directory listing
	if err != nil {
		return nil, fmt.Errorf("checkpoint: read %s: %w", path, err)
	}

	var cp model.ValidationCheckpoint
	if err := json.Unmarshal(raw, &cp); err != nil {
		return nil, fmt.Errorf("checkpoint: parse %s: %w", path, err)
	}

	want, err := integrityHash(&cp)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: recompute hash: %w", err)
	}
	if want != cp.IntegrityHash {
		return nil, fmt.Errorf("%w: %s", ErrIntegrityMismatch, path)
	}

	return &cp, nil
}

// ListFor returns the checkpoint file paths for file, ordered by ascending
// sequence_number.
func (m *Manager) ListFor(file string) ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("checkpoint: list %s: %w", m.dir, err)
	}

	prefix := sanitizeFileName(file) + ".seq"
	type seqPath struct {
		seq  int
		path string
	}
	var found []seqPath
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		seq, ok := parseSequence(entry.Name())
		if !ok {
			continue
		}
		found = append(found, seqPath{seq: seq, path: filepath.Join(m.dir, entry.Name())})
	}

	sort.Slice(found, func(i, j int) bool { return found[i].seq < found[j].seq })

	paths := make([]string, 0, len(found))
	for _, f := range found {
		paths = append(paths, f.path)
	}
	return paths, nil
}

// Latest returns the highest-sequence_number checkpoint for file, or ok=false
// if none exists.
func (m *Manager) Latest(file string) (path string, ok bool, err error) {
	paths, err := m.ListFor(file)
	if err != nil {
		return "", false, err
	}
	if len(paths) == 0 {
		return "", false, nil
	}
	return paths[len(paths)-1], true, nil
}

// DeleteCheckpoints removes every checkpoint for file.
func (m *Manager) DeleteCheckpoints(file string) error {
	paths, err := m.ListFor(file)
	if err != nil {
		return err
	}
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("checkpoint: remove %s: %w", p, err)
		}
	}
	return nil
}

// FormatCheckpointList renders a human-readable listing of file's
// checkpoints, one line per sequence number.
func (m *Manager) FormatCheckpointList(file string) (string, error) {
	paths, err := m.ListFor(file)
	if err != nil {
		return "", err
	}
	if len(paths) == 0 {
		return "no checkpoints for " + file, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "checkpoints for %s:\n", file)
	for _, p := range paths {
		cp, loadErr := m.Load(p)
		if loadErr != nil {
			fmt.Fprintf(&b, "  %s: CORRUPT (%v)\n", filepath.Base(p), loadErr)
			continue
		}
		fmt.Fprintf(&b, "  seq %d: offset=%d elements=%d errors=%d warnings=%d at %s\n",
			cp.SequenceNumber, cp.ByteOffset, cp.ElementsValidated, cp.ErrorsCount, cp.WarningsCount, cp.CreatedAt)
	}
	return b.String(), nil
}

func parseSequence(name string) (int, bool) {
	idx := strings.Index(name, ".seq")
	if idx < 0 {
		return 0, false
	}
	rest := name[idx+len(".seq"):]
	end := strings.IndexByte(rest, '.')
	if end < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(rest[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func (m *Manager) enforceRetention(file string) error {
	if m.maxCheckpoints == 0 {
		return nil
	}
	paths, err := m.ListFor(file)
	if err != nil {
		return err
	}
	excess := len(paths) - m.maxCheckpoints
	for i := 0; i < excess; i++ {
		if err := os.Remove(paths[i]); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("checkpoint: prune %s: %w", paths[i], err)
		}
	}
	return nil
}

// integrityHash computes SHA-256 over the canonical serialization of cp's
// fields excluding integrity_hash itself: sorted keys, compact separators,
// UTF-8 JSON.
func integrityHash(cp *model.ValidationCheckpoint) (string, error) {
	canonical := map[string]any{
		"version":            cp.FormatVersion,
		"timestamp":          cp.CreatedAt,
		"file_path":          cp.FilePath,
		"byte_offset":        cp.ByteOffset,
		"element_stack":      cp.ElementStack,
		"namespace_bindings": cp.NamespaceBindings,
		"errors_count":       cp.ErrorsCount,
		"warnings_count":     cp.WarningsCount,
		"elements_validated": cp.ElementsValidated,
		"bytes_processed":    cp.BytesProcessed,
		"sequence_number":    cp.SequenceNumber,
	}

	// json.Marshal on a map[string]any sorts keys ascending and already
	// produces compact ",", ":" separators, satisfying the canonical form
	// without a hand-rolled encoder.
	payload, err := json.Marshal(canonical)
	if err != nil {
		return "", err
	}

	return checksum.OfBytes(payload), nil
}

// writeFileAtomic writes content to path via a sibling temp file, fsync,
// chmod, then rename, so a crash mid-write never leaves a truncated
// checkpoint visible under its final name.
func writeFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".tmp_*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	defer func() {
		if tempFile != nil {
			_ = tempFile.Close()
		}
		if _, statErr := os.Stat(tempPath); statErr == nil {
			_ = os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	tempFile = nil

	if err := os.Chmod(tempPath, DefaultFilePermissions); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
