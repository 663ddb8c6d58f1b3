// Output helpers shared by the diary commands.
package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/mesh-intelligence/diary/internal/sqlite"
	"github.com/mesh-intelligence/diary/pkg/types"
)

// entryView is the JSON shape of one record in command output.
type entryView struct {
	Position int `json:"position"`
	types.Record
}

func hitViews(hits []sqlite.Hit) []entryView {
	views := make([]entryView, 0, len(hits))
	for _, h := range hits {
		views = append(views, entryView{Position: h.Position, Record: h.Record})
	}
	return views
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError("marshal output: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// writeSummary prints one line per entry: position, date and the first line
// of the note.
func writeSummary(w io.Writer, entries []entryView) {
	for _, e := range entries {
		fmt.Fprintf(w, "%4d  %-10s  %s\n", e.Position, e.Date.String(), firstLine(e.Note))
	}
}

// writeEntry prints a full record the way the interactive session shows it.
func writeEntry(w io.Writer, e entryView) {
	fmt.Fprintf(w, "#%d  %s\n\n%s", e.Position, e.Date.String(), e.Note)
	if !strings.HasSuffix(e.Note, "\n") {
		fmt.Fprintln(w)
	}
}

func firstLine(note string) string {
	line, _, _ := strings.Cut(note, "\n")
	return line
}

// parsePosition parses a 1-based record position argument.
func parsePosition(arg string) (int, error) {
	pos, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || pos < 1 {
		return 0, userError("invalid position %q: must be a positive integer", arg)
	}
	return pos, nil
}
