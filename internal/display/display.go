// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package display renders a ConfigDocument for the terminal.
package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/pdiddy/configexport/pkg/types"
)

const maxValueWidth = 60

var sectionColor = color.New(color.FgCyan, color.Bold)

// List writes each section as a heading followed by "- key: value" lines,
// in document order.
func List(w io.Writer, doc *types.ConfigDocument) {
	for _, name := range doc.Sections() {
		fmt.Fprintf(w, "\n%s:\n", sectionColor.Sprint(name))
		body, _ := doc.Section(name)
		for _, k := range body.Keys() {
			v, _ := body.Get(k)
			fmt.Fprintf(w, "- %s: %s\n", k, v)
		}
	}
}

// Table writes the document as a SECTION / KEY / VALUE table. Sections
// without keys get a single row with empty key and value.
func Table(w io.Writer, doc *types.ConfigDocument) {
	table := uitable.New()
	table.MaxColWidth = maxValueWidth
	table.Wrap = true
	table.AddRow("SECTION", "KEY", "VALUE")

	for _, name := range doc.Sections() {
		body, _ := doc.Section(name)
		if body.Len() == 0 {
			table.AddRow(sectionColor.Sprint(name), "", "")
			continue
		}
		for i, k := range body.Keys() {
			v, _ := body.Get(k)
			label := ""
			if i == 0 {
				label = sectionColor.Sprint(name)
			}
			table.AddRow(label, k, v)
		}
	}
	fmt.Fprintln(w, table)
}

// Summary returns a one-line count of sections and keys.
func Summary(doc *types.ConfigDocument) string {
	keys := 0
	for _, name := range doc.Sections() {
		body, _ := doc.Section(name)
		keys += body.Len()
	}
	return fmt.Sprintf("%d section(s), %d key(s)", doc.Len(), keys)
}
