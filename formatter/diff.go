// Package formatter renders formatting results for terminal output:
// unified diffs of pending changes and per-literal change listings.
package formatter

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/unifylabs/unify/format"
	tt "github.com/unifylabs/unify/internal/types"
)

var (
	headerStyle  = color.New(color.FgWhite, color.Bold)
	hunkStyle    = color.New(color.FgCyan)
	addedStyle   = color.New(color.FgGreen)
	removedStyle = color.New(color.FgRed)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
)

// Diff renders a unified diff between a result's source and formatted
// text. The labels follow the original tool: before/<path>, after/<path>.
// An empty string means the file needs no changes.
func Diff(r *format.Result) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        splitLines(r.Source),
		B:        splitLines(r.Formatted),
		FromFile: "before/" + r.Path,
		ToFile:   "after/" + r.Path,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}

// splitLines splits on newlines keeping them attached, without inventing
// a line for text that already ends in one. A missing final newline is
// added so the diff body stays well formed.
func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	last := len(lines) - 1
	if lines[last] == "" {
		return lines[:last]
	}
	lines[last] += "\n"
	return lines
}

// Colorize applies diff colors line by line: file headers bold, hunk
// markers cyan, additions green, removals red.
func Colorize(diff string) string {
	if diff == "" {
		return ""
	}
	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = headerStyle.Sprint(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = hunkStyle.Sprint(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = addedStyle.Sprint(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = removedStyle.Sprint(line)
		}
	}
	return strings.Join(lines, "\n")
}

// FormatChanges renders one line per rewritten literal in
// file:line:col: original -> replacement form.
func FormatChanges(changes []tt.Change) string {
	var builder strings.Builder
	for _, c := range changes {
		builder.WriteString(fmt.Sprintf("%s:%s %s -> %s\n",
			fileStyle.Sprint(c.Filename),
			lineStyle.Sprintf("%d:%d:", c.Start.Line, c.Start.Column),
			removedStyle.Sprint(c.Original),
			addedStyle.Sprint(c.Replacement)))
	}
	return builder.String()
}
