// Package render prints tables to the terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const columnGap = "  "

var headerStyle = lipgloss.NewStyle().Bold(true)

// Table writes rows as left-aligned columns sized by display width, so
// accented names line up. The first row is the header.
func Table(w io.Writer, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	var widths []int
	for _, row := range rows {
		for i, c := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}

	for n, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = padRight(c, widths[i])
		}
		line := strings.TrimRight(strings.Join(cells, columnGap), " ")
		if n == 0 {
			line = headerStyle.Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
