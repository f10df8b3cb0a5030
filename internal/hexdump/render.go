package hexdump

import (
	"fmt"
	"strings"
)

// RunMarker replaces a run of rows identical to the one printed above it.
const RunMarker = "*"

// Lines renders d one line per entry. Each run of adjacent byte-identical
// rows keeps its first row and collapses the rest into a single RunMarker.
func Lines(d Dump) []string {
	lines := make([]string, 0, len(d))
	width := rowWidth(d)

	inRun := false
	for i, row := range d {
		if i > 0 && row.Equal(d[i-1]) {
			if !inRun {
				lines = append(lines, RunMarker)
				inRun = true
			}
			continue
		}
		inRun = false
		lines = append(lines, FormatRow(row, width))
	}
	return lines
}

// Render returns Lines joined with newlines, each line terminated.
func Render(d Dump) string {
	lines := Lines(d)
	if len(lines) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRow renders a single row, padding the hex column to width bytes so
// the ASCII column of a short final row stays aligned.
func FormatRow(row Row, width int) string {
	hexWidth := width*3 - 1
	return fmt.Sprintf("%08X  %-*s  %s", row.Offset, hexWidth, row.Hex(), row.ASCII())
}

func rowWidth(d Dump) int {
	if len(d) == 0 || len(d[0].Bytes) == 0 {
		return RowWidth
	}
	return len(d[0].Bytes)
}
