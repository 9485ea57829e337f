package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/coolbeans/bookindex/pkg/entry"
	"github.com/coolbeans/bookindex/pkg/group"
)

var (
	// titleStyle for section headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("75"))

	// labelStyle for group labels
	labelStyle = lipgloss.NewStyle().
			Bold(true)

	// dimStyle for keys, members and tree guides
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// countStyle for entry counts
	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// warnStyle for unclassified terms
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	// errorStyle for fatal errors
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))
)

// printGroupTree writes one line per group, nested groups indented below
// their parent. With counts, the number of entries held directly by each
// group is appended.
func printGroupTree(w io.Writer, groups []*group.Group, counts bool) {
	for _, g := range groups {
		g.Walk(func(g *group.Group, depth int) {
			var line strings.Builder
			if depth > 0 {
				line.WriteString(dimStyle.Render(strings.Repeat("  ", depth-1) + "└─ "))
			}
			line.WriteString(labelStyle.Render(g.Label))

			def := g.Definition
			line.WriteString(" " + dimStyle.Render("["+def.Key+"]"))
			if len(def.Members) > 0 {
				line.WriteString(" " + dimStyle.Render("members: "+strings.Join(def.Members, " ")))
			}
			for _, r := range def.Ranges {
				line.WriteString(" " + dimStyle.Render(fmt.Sprintf("range: (%s, %s)", r.Start, r.End)))
			}
			if len(def.Members) == 0 && len(def.Ranges) == 0 && !def.IsSpecials() {
				line.WriteString(" " + dimStyle.Render("alphabetic"))
			}
			if counts {
				line.WriteString(" " + countStyle.Render(fmt.Sprintf("%d", len(g.Entries))))
			}
			fmt.Fprintln(w, line.String())
		})
	}
}

func printUnclassified(w io.Writer, store *entry.Store, ids []entry.ID) {
	if len(ids) == 0 {
		return
	}
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Unclassified terms (%d)", len(ids))))
	for _, id := range ids {
		fmt.Fprintln(w, "  "+warnStyle.Render(store.Get(id).String()))
	}
}
