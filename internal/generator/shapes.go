package generator

import (
	"bufio"
	"fmt"
	"math/rand"
)

// writer holds the mutable state threaded through one generation run: the
// buffered output, the byte counter it wraps, the seeded RNG, and the
// currently-open element stack (for well-formed closing at the end).
type writer struct {
	bw       *bufio.Writer
	cw       *countingWriter
	rng      *rand.Rand
	maxDepth int
	target   int64

	open []string
}

// attr is one name/value attribute pair, kept as an ordered slice rather
// than a map so output attribute order is a pure function of the seed.
type attr struct {
	Name  string
	Value string
}

func (g *writer) doneWriting() bool {
	return g.cw.n+int64(g.bw.Buffered()) >= g.target
}

func (g *writer) startElement(name string, attrs []attr) error {
	if _, err := fmt.Fprintf(g.bw, "<%s", name); err != nil {
		return err
	}
	for _, a := range attrs {
		if _, err := fmt.Fprintf(g.bw, " %s=%q", a.Name, a.Value); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(g.bw, ">"); err != nil {
		return err
	}
	g.open = append(g.open, name)
	return nil
}

func (g *writer) endElement() error {
	if len(g.open) == 0 {
		return nil
	}
	name := g.open[len(g.open)-1]
	g.open = g.open[:len(g.open)-1]
	_, err := fmt.Fprintf(g.bw, "</%s>", name)
	return err
}

func (g *writer) text(s string) error {
	_, err := g.bw.WriteString(escapeText(s))
	return err
}

func (g *writer) closeAll() error {
	for len(g.open) > 0 {
		if err := g.endElement(); err != nil {
			return err
		}
	}
	return nil
}

func escapeText(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			out = append(out, "&lt;"...)
		case '>':
			out = append(out, "&gt;"...)
		case '&':
			out = append(out, "&amp;"...)
		default:
			out = append(out, s[i])
		}
	}
	return string(out)
}

// vocabulary describes one shape's bounded element/attribute surface — a
// fixed, small pool rather than arbitrary generated names, so output stays
// recognizable and diffable across runs.
type vocabulary struct {
	elements   []string
	attributes []string
	textWords  []string
}

var simpleVocabulary = vocabulary{
	elements:   []string{"item", "value", "note"},
	attributes: []string{"id", "kind"},
	textWords:  []string{"alpha", "beta", "gamma", "delta"},
}

var complexVocabulary = vocabulary{
	elements:   []string{"section", "entry", "field", "metadata", "reference", "tag"},
	attributes: []string{"id", "kind", "ref", "lang", "version"},
	textWords:  []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta"},
}

var nestedVocabulary = vocabulary{
	elements:   []string{"node"},
	attributes: []string{"id", "depth"},
	textWords:  []string{"leaf"},
}

// generateShaped drives the bulk of non-realistic generation: a root
// element containing repeated children drawn from vocab, recursing up to
// the configured max depth when allowNesting is set.
func (g *writer) generateShaped(vocab vocabulary, branchFactor int, allowNesting bool) error {
	if err := g.startElement("document", []attr{{"generator", "synthetic"}}); err != nil {
		return err
	}

	seq := 0
	for !g.doneWriting() {
		if err := g.emitNode(vocab, 1, branchFactor, allowNesting, &seq); err != nil {
			return err
		}
	}

	return g.closeAll()
}

func (g *writer) emitNode(vocab vocabulary, depth, branchFactor int, allowNesting bool, seq *int) error {
	name := vocab.elements[g.rng.Intn(len(vocab.elements))]
	*seq++
	attrs := []attr{{vocab.attributes[0], fmt.Sprintf("%d", *seq)}}
	if len(vocab.attributes) > 1 {
		attrs = append(attrs, attr{vocab.attributes[1%len(vocab.attributes)], vocab.textWords[g.rng.Intn(len(vocab.textWords))]})
	}

	if err := g.startElement(name, attrs); err != nil {
		return err
	}

	canNest := allowNesting && depth < g.maxDepth
	switch {
	case canNest && g.rng.Intn(2) == 0:
		children := 1 + g.rng.Intn(branchFactor)
		for i := 0; i < children && !g.doneWriting(); i++ {
			if err := g.emitNode(vocab, depth+1, branchFactor, allowNesting, seq); err != nil {
				return err
			}
		}
	case vocab.elements[0] == "node" && depth < g.maxDepth && !g.doneWriting():
		// Nested shape: a single deep chain rather than branching siblings.
		if err := g.emitNode(vocab, depth+1, branchFactor, allowNesting, seq); err != nil {
			return err
		}
	default:
		if err := g.text(randomSentence(g.rng, vocab.textWords)); err != nil {
			return err
		}
	}

	return g.endElement()
}

func randomSentence(rng *rand.Rand, words []string) string {
	n := 2 + rng.Intn(4)
	s := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			s += " "
		}
		s += words[rng.Intn(len(words))]
	}
	return s
}
