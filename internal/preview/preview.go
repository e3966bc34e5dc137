// Package preview extracts and renders the color swatches embedded in
// the generator's preview output.
package preview

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// swatchPattern matches 24-bit background escapes of the form
// ESC[48;2;R;G;Bm, one per swatch.
var swatchPattern = regexp.MustCompile(`\x1b\[48;2;(\d{1,3});(\d{1,3});(\d{1,3})m`)

// Colors extracts swatch colors from raw preview output as lowercase
// #rrggbb strings, in order of first appearance. Repeated colors are
// collapsed; components above 255 are ignored as malformed.
func Colors(raw string) []string {
	var colors []string
	seen := make(map[string]bool)

	for _, m := range swatchPattern.FindAllStringSubmatch(raw, -1) {
		r, _ := strconv.Atoi(m[1])
		g, _ := strconv.Atoi(m[2])
		b, _ := strconv.Atoi(m[3])
		if r > 255 || g > 255 || b > 255 {
			continue
		}
		hex := fmt.Sprintf("#%02x%02x%02x", r, g, b)
		if seen[hex] {
			continue
		}
		seen[hex] = true
		colors = append(colors, hex)
	}

	return colors
}

// Strip renders the colors as a horizontal swatch row, each block
// labeled with its hex value. width is the rendered width per block.
func Strip(colors []string, width int) string {
	if width < 7 {
		width = 9
	}
	blocks := make([]string, 0, len(colors))
	for _, hex := range colors {
		style := lipgloss.NewStyle().
			Background(lipgloss.Color(hex)).
			Foreground(lipgloss.Color(labelColor(hex))).
			Width(width).
			Align(lipgloss.Center)
		blocks = append(blocks, style.Render(hex))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

// labelColor picks black or white for the hex label, whichever reads
// better on the swatch background.
func labelColor(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "#ffffff"
	}
	_, _, l := c.Hsl()
	if l > 0.5 {
		return "#000000"
	}
	return "#ffffff"
}
