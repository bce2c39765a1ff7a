// Package report renders a ValidationResult/benchmark.Comparison for three
// audiences: a line-delimited JSON stream for machine consumption, a
// Markdown summary for archival/CI artifacts, and a colored terminal
// summary for interactive use.
//
// The Markdown path is built on github.com/nao1215/markdown
// (markdown.NewMarkdown/H1/H2/Table/BulletList/Build). A user-supplied
// template may additionally be rendered with text/template plus
// Masterminds/sprig/v3 helpers.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/nao1215/markdown"

	"github.com/farukalpay/xml-lib-sub000/internal/model"
)

// ToMarkdown renders result as a Markdown report: a pass/fail header,
// summary counts, per-file checksums, and tables of errors and warnings.
func ToMarkdown(result model.ValidationResult) (string, error) {
	var buf strings.Builder
	md := markdown.NewMarkdown(&buf)

	md.H1("XML Validation Report")
	md.PlainTextf("Generated: %s", result.Timestamp.Format(time.RFC3339))
	md.LF()

	status := "PASS"
	if !result.IsValid {
		status = "FAIL"
	}
	md.H2("Summary")
	md.BulletList(
		fmt.Sprintf("%s: %s", markdown.Bold("Status"), status),
		fmt.Sprintf("%s: %d", markdown.Bold("Files validated"), len(result.ValidatedFiles)),
		fmt.Sprintf("%s: %d", markdown.Bold("Errors"), len(result.Errors)),
		fmt.Sprintf("%s: %d", markdown.Bold("Warnings"), len(result.Warnings)),
		fmt.Sprintf("%s: %t", markdown.Bold("Used streaming"), result.UsedStreaming),
	)
	md.LF()

	addChecksumTable(md, result)
	addViolationTable(md, "Errors", result.Errors)
	addViolationTable(md, "Warnings", result.Warnings)

	if err := md.Build(); err != nil {
		return "", fmt.Errorf("report: build markdown: %w", err)
	}
	return buf.String(), nil
}

func addChecksumTable(md *markdown.Markdown, result model.ValidationResult) {
	if len(result.ValidatedFiles) == 0 {
		return
	}
	md.H2("Files")
	table := markdown.TableSet{Header: []string{"File", "SHA-256"}}
	for _, f := range result.ValidatedFiles {
		table.Rows = append(table.Rows, []string{f, result.Checksums[f]})
	}
	md.Table(table)
	md.LF()
}

func addViolationTable(md *markdown.Markdown, title string, violations []model.ValidationError) {
	if len(violations) == 0 {
		return
	}
	md.H2(title)
	table := markdown.TableSet{Header: []string{"File", "Line", "Column", "Rule", "Message"}}
	for _, v := range violations {
		line, col := "-", "-"
		if v.HasPosition() {
			line = strconv.Itoa(v.Line)
			col = strconv.Itoa(v.Column)
		}
		table.Rows = append(table.Rows, []string{v.File, line, col, v.RuleID, v.Message})
	}
	md.Table(table)
	md.LF()
}

// RenderTemplate renders result through a user-supplied Markdown/text
// template, with Masterminds/sprig/v3's helper functions available to it —
// e.g. {{ .Errors | len }} errors across {{ .ValidatedFiles | len }} files,
// generated {{ now | date "2006-01-02" }}.
func RenderTemplate(tmplText string, result model.ValidationResult) (string, error) {
	tmpl, err := template.New("report").Funcs(sprig.TxtFuncMap()).Parse(tmplText)
	if err != nil {
		return "", fmt.Errorf("report: parse template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, result); err != nil {
		return "", fmt.Errorf("report: execute template: %w", err)
	}
	return buf.String(), nil
}
