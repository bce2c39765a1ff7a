// Package rules implements the validator state machine: it consumes a
// ParserEvent sequence, maintains the element stack, and dispatches every
// event to a registry of Checkers (structure, names, identity, phase,
// temporal), collecting the violations they emit.
//
// Checkers register once and are dispatched in order on every event, each
// contributing independently to the folded Fragment — the same
// register-then-broadcast shape as any plugin-registry validator, just with
// rule_id-tagged streaming checks instead of compliance plugins.
package rules

import (
	"io"
	"iter"

	"github.com/farukalpay/xml-lib-sub000/internal/checkpoint"
	"github.com/farukalpay/xml-lib-sub000/internal/constants"
	"github.com/farukalpay/xml-lib-sub000/internal/crossfile"
	"github.com/farukalpay/xml-lib-sub000/internal/events"
	"github.com/farukalpay/xml-lib-sub000/internal/model"
	"github.com/farukalpay/xml-lib-sub000/internal/rules/identity"
	"github.com/farukalpay/xml-lib-sub000/internal/rules/names"
	"github.com/farukalpay/xml-lib-sub000/internal/rules/phase"
	"github.com/farukalpay/xml-lib-sub000/internal/rules/rule"
	"github.com/farukalpay/xml-lib-sub000/internal/rules/structure"
	"github.com/farukalpay/xml-lib-sub000/internal/rules/temporal"
)

// Config parameterizes one Engine run over a single file.
type Config struct {
	File      string
	MaxDepth  int // 0 uses constants.DefaultMaxDepth
	CrossFile *crossfile.Index

	// Checkpointer and CheckpointIntervalBytes are optional: when both are
	// set, RunParser invokes the checkpoint manager at the configured byte
	// interval as the file is consumed.
	Checkpointer            *checkpoint.Manager
	CheckpointIntervalBytes int64
}

// Fragment is one file's contribution to a ValidationResult, folded
// together with every other file's Fragment by internal/aggregate.
type Fragment struct {
	Errors            []model.ValidationError
	Warnings          []model.ValidationError
	ElementsValidated int
	MaxDepthObserved  int
	IsValid           bool
}

// Engine drives the built-in rule registry over one file's event stream.
type Engine struct {
	checkers []rule.Checker
	ctx      *rule.Context
	cfg      Config
}

// New returns an Engine configured with the full built-in rule set.
func New(cfg Config) *Engine {
	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = constants.DefaultMaxDepth
	}
	cfg.MaxDepth = maxDepth

	return &Engine{
		checkers: []rule.Checker{
			structure.New(),
			names.New(),
			identity.New(),
			phase.New(),
			temporal.New(),
		},
		ctx: &rule.Context{File: cfg.File, CrossFile: cfg.CrossFile, MaxDepth: maxDepth},
		cfg: cfg,
	}
}

// Run consumes events, an iter.Seq2 as produced by internal/events.Parser,
// and returns the file's Fragment. A fatal violation (from any checker)
// halts consumption immediately after recording it — structural errors end
// validation of the current file rather than letting later events pile on
// more diagnostics atop an already-broken document. An error from the event
// sequence itself (a syntactic/I-O failure) is translated into a single
// ValidationError of the matching rule_id.
func (e *Engine) Run(events iter.Seq2[model.ParserEvent, error]) Fragment {
	return e.run(events, nil)
}

// RunParser drives the engine over parser's event stream, additionally
// invoking the configured checkpoint manager (if any) every
// CheckpointIntervalBytes of progress, using parser.State() to capture the
// resumable snapshot.
func (e *Engine) RunParser(parser *events.Parser) Fragment {
	return e.run(parser.Events(), parser)
}

func (e *Engine) run(evs iter.Seq2[model.ParserEvent, error], parser *events.Parser) Fragment {
	var frag Fragment
	var stack []string
	depth := 0
	sequenceNumber := 0
	var lastCheckpointOffset int64

	for ev, err := range evs {
		if err != nil {
			frag.Errors = append(frag.Errors, translateStreamError(e.ctx.File, err))
			frag.IsValid = false
			return finalize(frag)
		}

		stackBefore := stack
		depthBefore := depth

		stopped := false
		for _, checker := range e.checkers {
			res := checker.Check(e.ctx, ev, stackBefore, depthBefore)
			appendResult(&frag, res)
			if res.Fatal {
				stopped = true
			}
		}

		switch ev.Kind {
		case model.EventStartElement:
			stack = append(stack, ev.QualifiedName)
			depth++
			frag.ElementsValidated++
			if depth > frag.MaxDepthObserved {
				frag.MaxDepthObserved = depth
			}
		case model.EventEndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			if depth > 0 {
				depth--
			}
		case model.EventEndDocument:
			for _, checker := range e.checkers {
				for _, v := range checker.Finalize(e.ctx, stack) {
					if v.IsError() {
						frag.Errors = append(frag.Errors, v)
					} else {
						frag.Warnings = append(frag.Warnings, v)
					}
				}
			}
		}

		if parser != nil && e.cfg.Checkpointer != nil && e.cfg.CheckpointIntervalBytes > 0 {
			state := parser.State()
			if state.BytesProcessed-lastCheckpointOffset >= e.cfg.CheckpointIntervalBytes {
				sequenceNumber++
				if _, _, saveErr := e.cfg.Checkpointer.Save(e.cfg.File, state, len(frag.Errors), len(frag.Warnings), sequenceNumber); saveErr != nil {
					frag.Errors = append(frag.Errors, model.ValidationError{
						File: e.cfg.File, Message: saveErr.Error(),
						Severity: constants.SeverityError, RuleID: constants.RuleIO,
					})
				}
				lastCheckpointOffset = state.BytesProcessed
			}
		}

		if stopped {
			break
		}
	}

	return finalize(frag)
}

func appendResult(frag *Fragment, res rule.Result) {
	for _, v := range res.Violations {
		if v.IsError() {
			frag.Errors = append(frag.Errors, v)
		} else {
			frag.Warnings = append(frag.Warnings, v)
		}
	}
}

func finalize(frag Fragment) Fragment {
	frag.IsValid = true
	for _, e := range frag.Errors {
		if e.IsError() {
			frag.IsValid = false
			break
		}
	}
	return frag
}

func translateStreamError(file string, err error) model.ValidationError {
	if err == io.EOF {
		return model.ValidationError{File: file, Message: "unexpected end of file", Severity: constants.SeverityError, RuleID: constants.RuleXMLSyntax}
	}
	if pe := events.AsParseError(err); pe != nil {
		return model.ValidationError{
			File: file, Line: pe.Line, Column: pe.Column,
			Message: pe.Message, Severity: constants.SeverityError, RuleID: constants.RuleXMLSyntax,
		}
	}
	return model.ValidationError{File: file, Message: err.Error(), Severity: constants.SeverityError, RuleID: constants.RuleXMLSyntax}
}
