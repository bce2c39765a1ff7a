// Package generator implements the synthetic-document generator: it emits
// well-formed XML of a requested byte size with a chosen shape, writing with
// constant auxiliary memory and stopping as soon as the target byte count is
// first met or exceeded, after closing every open element.
//
// The four named shapes (simple/complex/nested/realistic) and the
// record-oriented "realistic" generation (user/product/transaction/log
// record kinds) are built as small, explicitly-seeded helper functions
// rather than a stateful generator object, so every shape is independently
// testable and the output is reproducible from a seed.
package generator

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"

	"github.com/farukalpay/xml-lib-sub000/internal/constants"
)

// Shape selects one of the four generation presets.
type Shape string

// The four generation presets.
const (
	ShapeSimple    Shape = constants.ShapeSimple
	ShapeComplex   Shape = constants.ShapeComplex
	ShapeNested    Shape = constants.ShapeNested
	ShapeRealistic Shape = constants.ShapeRealistic
)

// Config parameterizes one generation run. Generation is deterministic given
// the same Config, so a fixed seed reproduces byte-identical output —
// needed for regression fixtures, not just well-formedness.
type Config struct {
	Shape       Shape
	TargetBytes int64
	Seed        int64
	MaxDepth    int    // 0 uses constants.DefaultMaxDepth; Generate caps it at 64
	RecordKind  string // ShapeRealistic only; constants.RecordKind*, "" picks randomly per record
}

// countingWriter tracks total bytes written so Generate can stop exactly
// once the target is first met or exceeded.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Generate writes one well-formed XML document to w matching cfg.
func Generate(w io.Writer, cfg Config) error {
	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = constants.DefaultMaxDepth
	}
	if maxDepth > 64 {
		// A generator producing documents for test/benchmark use has no
		// reason to approach the structural depth limit itself.
		maxDepth = 64
	}

	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // deterministic test-fixture generation, not cryptographic

	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)
	defer bw.Flush() //nolint:errcheck

	g := &writer{bw: bw, cw: cw, rng: rng, maxDepth: maxDepth, target: cfg.TargetBytes}

	if _, err := fmt.Fprint(bw, xmlDeclaration); err != nil {
		return err
	}

	switch cfg.Shape {
	case ShapeRealistic:
		return g.generateRealistic(cfg.RecordKind)
	case ShapeComplex:
		return g.generateShaped(complexVocabulary, 4, true)
	case ShapeNested:
		return g.generateShaped(nestedVocabulary, 1, false)
	default:
		return g.generateShaped(simpleVocabulary, 2, false)
	}
}

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"
