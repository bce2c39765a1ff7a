package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/farukalpay/xml-lib-sub000/internal/model"
)

// ndjsonEvent is one line of the NDJSON stream: one object per event, of
// type validation_result, error, or warning, each carrying only the fields
// relevant to its type.
type ndjsonEvent struct {
	Type string `json:"type"`

	// validation_result
	IsValid        *bool             `json:"is_valid,omitempty"`
	ValidatedFiles []string          `json:"validated_files,omitempty"`
	Checksums      map[string]string `json:"checksums,omitempty"`
	UsedStreaming  *bool             `json:"used_streaming,omitempty"`
	Timestamp      string            `json:"timestamp,omitempty"`

	// error / warning
	File        string `json:"file,omitempty"`
	Line        int    `json:"line,omitempty"`
	Column      int    `json:"column,omitempty"`
	Message     string `json:"message,omitempty"`
	RuleID      string `json:"rule_id,omitempty"`
	ElementName string `json:"element_name,omitempty"`
}

// WriteNDJSON writes result to w as line-delimited JSON: one
// "validation_result" summary line followed by one line per error, then one
// line per warning, in the order they were aggregated.
func WriteNDJSON(w io.Writer, result model.ValidationResult) error {
	bw := bufio.NewWriter(w)

	isValid := result.IsValid
	usedStreaming := result.UsedStreaming
	summary := ndjsonEvent{
		Type:           "validation_result",
		IsValid:        &isValid,
		ValidatedFiles: result.ValidatedFiles,
		Checksums:      result.Checksums,
		UsedStreaming:  &usedStreaming,
		Timestamp:      result.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
	}
	if err := writeLine(bw, summary); err != nil {
		return err
	}

	for _, e := range result.Errors {
		if err := writeLine(bw, violationEvent("error", e)); err != nil {
			return err
		}
	}
	for _, wv := range result.Warnings {
		if err := writeLine(bw, violationEvent("warning", wv)); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func violationEvent(kind string, v model.ValidationError) ndjsonEvent {
	return ndjsonEvent{
		Type: kind, File: v.File, Line: v.Line, Column: v.Column,
		Message: v.Message, RuleID: v.RuleID, ElementName: v.ElementName,
	}
}

func writeLine(w *bufio.Writer, ev ndjsonEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("report: marshal ndjson event: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return err
	}
	return w.WriteByte('\n')
}
