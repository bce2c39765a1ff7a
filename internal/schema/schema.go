// Package schema implements the schema.relaxng/schema.schematron validation
// pass: once a document is below a configured buffering threshold, it is
// parsed into an in-memory node tree and checked against a set of XPath
// assertions, re-parsed fresh on every run rather than cached as a tree.
//
// Full Relax NG compact-syntax compilation has no viable Go ecosystem
// library in this corpus (see DESIGN.md); schemas here are expressed as an
// assertion list — an XPath selecting nodes that violate a rule, paired with
// a message and severity — which covers both a Relax NG-style structural
// subset and genuine Schematron content equally. This shape and its YAML
// configuration are grounded in the netex-validator reference snippet's use
// of antchfx/xmlquery + antchfx/xpath with a YAML-configurable rule set.
package schema

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	lru "github.com/hashicorp/golang-lru/v2"
	"gopkg.in/yaml.v3"

	"github.com/farukalpay/xml-lib-sub000/internal/constants"
	"github.com/farukalpay/xml-lib-sub000/internal/model"
)

// Kind names the schema language an assertion set represents, purely for
// selecting the external rule_id attached to its diagnostics.
type Kind string

// The two schema kinds, each mapped to a stable external rule_id.
const (
	KindRelaxNG    Kind = "relaxng"
	KindSchematron Kind = "schematron"
)

// Assertion is one XPath-expressed constraint: Select must evaluate to an
// empty node-set for the document to satisfy the assertion. Each matched
// node produces one violation.
type Assertion struct {
	Select   string `yaml:"select"`
	Message  string `yaml:"message"`
	Severity string `yaml:"severity"` // "error" (default) or "warning"
}

// Definition is the on-disk (YAML) shape of a schema file.
type Definition struct {
	Kind       Kind        `yaml:"kind"`
	Assertions []Assertion `yaml:"assertions"`
}

// LoadDefinition reads and parses a YAML schema definition from path.
func LoadDefinition(path string) (*Definition, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- operator-supplied schema path
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}

	var def Definition
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("schema: parse %s: %w", path, err)
	}
	if def.Kind == "" {
		def.Kind = KindSchematron
	}
	return &def, nil
}

// Compiled is a Definition with every assertion's XPath expression
// pre-parsed, ready for repeated evaluation.
type Compiled struct {
	Kind       Kind
	assertions []compiledAssertion
}

type compiledAssertion struct {
	expr     *xpath.Expr
	message  string
	severity string
}

// Compile parses every assertion's Select expression once.
func Compile(def *Definition) (*Compiled, error) {
	out := &Compiled{Kind: def.Kind, assertions: make([]compiledAssertion, 0, len(def.Assertions))}
	for i, a := range def.Assertions {
		expr, err := xpath.Compile(a.Select)
		if err != nil {
			return nil, fmt.Errorf("schema: assertion %d: compile %q: %w", i, a.Select, err)
		}
		severity := a.Severity
		if severity == "" {
			severity = constants.SeverityError
		}
		out.assertions = append(out.assertions, compiledAssertion{expr: expr, message: a.Message, severity: severity})
	}
	return out, nil
}

// RuleID returns the stable external rule_id for this schema's kind.
func (c *Compiled) RuleID() string {
	if c.Kind == KindRelaxNG {
		return constants.RuleRelaxNG
	}
	return constants.RuleSchematron
}

// Cache is a bounded LRU of compiled schemas keyed by file path, so a long
// multi-file run compiles each distinct schema file at most once.
type Cache struct {
	lru *lru.Cache[string, *Compiled]
}

// NewCache returns a Cache holding at most size compiled schemas.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = 16
	}
	l, err := lru.New[string, *Compiled](size)
	if err != nil {
		return nil, fmt.Errorf("schema: new cache: %w", err)
	}
	return &Cache{lru: l}, nil
}

// Get returns the compiled schema for path, compiling and caching it on
// first use.
func (c *Cache) Get(path string) (*Compiled, error) {
	if cached, ok := c.lru.Get(path); ok {
		return cached, nil
	}

	def, err := LoadDefinition(path)
	if err != nil {
		return nil, err
	}
	compiled, err := Compile(def)
	if err != nil {
		return nil, err
	}

	c.lru.Add(path, compiled)
	return compiled, nil
}

// ErrTooLargeToBuffer names the reason a document above the buffering
// threshold is skipped. Validate itself does not check size; the caller
// compares the file size against the threshold before calling it.
var ErrTooLargeToBuffer = errors.New("schema: document exceeds buffering threshold")

// Validate buffers r into an in-memory node tree (via antchfx/xmlquery) and
// evaluates every assertion's pre-compiled *xpath.Expr directly against a
// navigator over that tree, translating matches into ValidationErrors that
// carry the line number xmlquery reports for each matched node (Column is
// left zero).
func Validate(r io.Reader, file string, cs *Compiled) ([]model.ValidationError, error) {
	root, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("schema: parse document tree: %w", err)
	}

	var violations []model.ValidationError
	for _, a := range cs.assertions {
		for _, n := range evaluateNodes(root, a.expr) {
			violations = append(violations, model.ValidationError{
				File:        file,
				Line:        n.LineNumber,
				Message:     a.message,
				Severity:    a.severity,
				RuleID:      cs.RuleID(),
				ElementName: n.Data,
			})
		}
	}
	return violations, nil
}

// evaluateNodes runs a pre-compiled assertion expression against root via an
// xmlquery navigator, so Compile's one-time parse is actually reused on every
// document instead of being re-derived from its string form.
func evaluateNodes(root *xmlquery.Node, expr *xpath.Expr) []*xmlquery.Node {
	nav := xmlquery.CreateXPathNavigator(root)
	v := expr.Evaluate(nav)

	iter, ok := v.(*xpath.NodeIterator)
	if !ok {
		return nil
	}

	var nodes []*xmlquery.Node
	for iter.MoveNext() {
		if n, ok := iter.Current().(*xmlquery.NodeNavigator); ok {
			nodes = append(nodes, n.Current())
		}
	}
	return nodes
}
