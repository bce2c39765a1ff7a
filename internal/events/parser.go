// Package events implements the streaming event parser: a lazy,
// restartable-from-checkpoint sequence of model.ParserEvent values with
// exact positions and resolved namespaces.
//
// An encoding/xml.Decoder drives a dispatch loop over tokens for an
// arbitrary document, not a fixed schema. The lazy sequence is expressed as
// iter.Seq2, Go's range-over-func idiom, so a caller can stop consuming
// mid-document without the parser doing unnecessary work ahead of the
// consumer.
package events

import (
	"encoding/xml"
	"errors"
	"io"
	"iter"
	"strings"

	"github.com/farukalpay/xml-lib-sub000/internal/model"
	"github.com/farukalpay/xml-lib-sub000/internal/xmlpos"
)

// Parser produces ParserEvents from an XML byte stream.
type Parser struct {
	pos *xmlpos.Reader
	dec *xml.Decoder

	elementStack []string
	depth        int
	elementsSeen int

	nsStack []nsFrame
	nsFlat  map[string]string // prefix -> uri, "" key is the default namespace

	lastPos model.Position
	done    bool
}

// nsFrame records, per StartElement, the prefix bindings it introduced and
// whatever value each overrode, so EndElement can restore the outer scope.
type nsFrame struct {
	overrides map[string]overridden
}

type overridden struct {
	had   bool
	value string
}

// NewParser wraps r (position-tracked via internal/xmlpos) for streaming
// parse. External entities and DTD loading are never enabled — Go's
// encoding/xml does not resolve external entities or load DTDs by default,
// so XXE is not reachable through this parser without extra code to add it.
func NewParser(r io.Reader) *Parser {
	pr := xmlpos.New(r)
	dec := xml.NewDecoder(pr)
	// CharsetReader left nil: unsupported encodings surface as a decode
	// error, reported as a ParseError like any other syntactic failure.
	return &Parser{
		pos:    pr,
		dec:    dec,
		nsFlat: map[string]string{},
	}
}

// Events returns the lazy sequence of (ParserEvent, error) pairs. A
// StartDocument event is produced first; EndDocument last, unless a fatal
// error intervenes, in which case the last yielded pair carries the error
// and no further events follow. The consumer may stop iteration early (the
// yield function returning false) to abandon the remainder of the stream.
func (p *Parser) Events() iter.Seq2[model.ParserEvent, error] {
	return func(yield func(model.ParserEvent, error) bool) {
		if p.done {
			return
		}

		if !yield(model.ParserEvent{Kind: model.EventStartDocument}, nil) {
			return
		}

		for {
			startPos := p.pos.Position()
			// After character data the decoder has already read the next
			// '<' and holds it back; step back over it so the position
			// names the start of the next construct.
			if lag := startPos.ByteOffset - p.dec.InputOffset(); lag > 0 {
				startPos.ByteOffset -= lag
				startPos.Column -= int(lag)
			}

			tok, err := p.dec.Token()
			if err == io.EOF {
				p.done = true
				yield(model.ParserEvent{Kind: model.EventEndDocument, Position: p.pos.Position()}, nil)
				return
			}
			if err != nil {
				p.done = true
				yield(model.ParserEvent{}, p.wrapError(err, startPos))
				return
			}

			ev, ok, translateErr := p.translate(tok, startPos)
			if translateErr != nil {
				p.done = true
				yield(model.ParserEvent{}, translateErr)
				return
			}
			if !ok {
				continue // suppressed whitespace-only top-level Characters
			}

			if !yield(ev, nil) {
				return
			}
		}
	}
}

// State returns a deep-copyable snapshot of the parser's position, usable by
// the checkpoint manager.
func (p *Parser) State() model.ParserState {
	flat := make(map[string]string, len(p.nsFlat))
	for k, v := range p.nsFlat {
		flat[k] = v
	}
	return model.ParserState{
		ByteOffset:        p.pos.Position().ByteOffset,
		Line:              p.pos.Position().Line,
		Column:            p.pos.Position().Column,
		ElementStack:      append([]string(nil), p.elementStack...),
		NamespaceBindings: flat,
		ElementsSeen:      p.elementsSeen,
		BytesProcessed:    p.pos.Position().ByteOffset,
		Depth:             p.depth,
	}
}

func (p *Parser) wrapError(err error, pos model.Position) error {
	var synErr *xml.SyntaxError
	if errors.As(err, &synErr) {
		return &ParseError{Line: synErr.Line, Column: pos.Column, Offset: pos.ByteOffset, Message: synErr.Msg}
	}
	return &ParseError{Line: pos.Line, Column: pos.Column, Offset: pos.ByteOffset, Message: "XML error: " + err.Error()}
}

// translate converts one xml.Token into a model.ParserEvent. The bool return
// is false for suppressed whitespace-only top-level character data.
func (p *Parser) translate(tok xml.Token, pos model.Position) (model.ParserEvent, bool, error) {
	switch t := tok.(type) {
	case xml.StartElement:
		return p.translateStart(t, pos)
	case xml.EndElement:
		return p.translateEnd(t, pos)
	case xml.CharData:
		text := string(t)
		if p.depth == 0 && strings.TrimSpace(text) == "" {
			return model.ParserEvent{}, false, nil
		}
		return model.ParserEvent{Kind: model.EventCharacters, Text: text, Position: pos}, true, nil
	case xml.ProcInst:
		return model.ParserEvent{Kind: model.EventProcessingInstruction, Target: t.Target, Data: string(t.Inst), Position: pos}, true, nil
	case xml.Comment:
		return model.ParserEvent{Kind: model.EventComment, Text: string(t), Position: pos}, true, nil
	default:
		// Directive, other token kinds: not part of the event contract.
		return model.ParserEvent{}, false, nil
	}
}

func (p *Parser) translateStart(t xml.StartElement, pos model.Position) (model.ParserEvent, bool, error) {
	if dup := firstDuplicateAttr(t.Attr); dup != "" {
		return model.ParserEvent{}, false, &ParseError{
			Line: pos.Line, Column: pos.Column, Offset: pos.ByteOffset,
			Message: "duplicate attribute: " + dup,
		}
	}

	p.pushNamespaceFrame(t.Attr)

	qname := p.qualify(t.Name)
	attrs := make([]model.Attribute, 0, len(t.Attr))
	for _, a := range t.Attr {
		if isNamespaceDecl(a.Name) {
			continue
		}
		attrs = append(attrs, model.Attribute{Name: p.qualify(a.Name), Value: a.Value})
	}

	p.elementStack = append(p.elementStack, qname)
	p.depth++
	p.elementsSeen++

	return model.ParserEvent{
		Kind:          model.EventStartElement,
		QualifiedName: qname,
		LocalName:     t.Name.Local,
		NamespaceURI:  t.Name.Space,
		Attributes:    attrs,
		Position:      pos,
	}, true, nil
}

func (p *Parser) translateEnd(t xml.EndElement, pos model.Position) (model.ParserEvent, bool, error) {
	qname := p.qualify(t.Name)

	if len(p.elementStack) > 0 {
		p.elementStack = p.elementStack[:len(p.elementStack)-1]
	}
	if p.depth > 0 {
		p.depth--
	}
	p.popNamespaceFrame()

	return model.ParserEvent{
		Kind:          model.EventEndElement,
		QualifiedName: qname,
		LocalName:     t.Name.Local,
		NamespaceURI:  t.Name.Space,
		Position:      pos,
	}, true, nil
}

// qualify rebuilds a prefixed qualified name from a resolved xml.Name by
// finding, in the active namespace stack, which prefix currently maps to
// Name.Space. encoding/xml resolves Name.Space to the namespace URI but
// discards the original prefix text, so this reconstructs it.
func (p *Parser) qualify(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	if prefix, ok := p.resolvePrefixForURI(name.Space); ok && prefix != "" {
		return prefix + ":" + name.Local
	}
	return name.Local
}

func (p *Parser) resolvePrefixForURI(uri string) (string, bool) {
	for prefix, u := range p.nsFlat {
		if u == uri {
			return prefix, true
		}
	}
	return "", false
}

func isNamespaceDecl(name xml.Name) bool {
	return name.Space == "xmlns" || (name.Space == "" && name.Local == "xmlns")
}

func (p *Parser) pushNamespaceFrame(attrs []xml.Attr) {
	frame := nsFrame{overrides: map[string]overridden{}}
	for _, a := range attrs {
		var prefix string
		switch {
		case a.Name.Space == "xmlns":
			prefix = a.Name.Local
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			prefix = ""
		default:
			continue
		}

		prev, had := p.nsFlat[prefix]
		if _, exists := frame.overrides[prefix]; !exists {
			frame.overrides[prefix] = overridden{had: had, value: prev}
		}
		p.nsFlat[prefix] = a.Value
	}
	p.nsStack = append(p.nsStack, frame)
}

func (p *Parser) popNamespaceFrame() {
	if len(p.nsStack) == 0 {
		return
	}
	frame := p.nsStack[len(p.nsStack)-1]
	p.nsStack = p.nsStack[:len(p.nsStack)-1]

	for prefix, prev := range frame.overrides {
		if prev.had {
			p.nsFlat[prefix] = prev.value
		} else {
			delete(p.nsFlat, prefix)
		}
	}
}

func firstDuplicateAttr(attrs []xml.Attr) string {
	seen := make(map[xml.Name]bool, len(attrs))
	for _, a := range attrs {
		if seen[a.Name] {
			return a.Name.Local
		}
		seen[a.Name] = true
	}
	return ""
}
