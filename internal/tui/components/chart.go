package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/studioplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline scaled between the series minimum
// and maximum.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := 0
		if span > 0 {
			idx = int((v - lo) / span * float64(len(sparkBlocks)-1))
		}
		buf.WriteRune(sparkBlocks[max(0, min(idx, len(sparkBlocks)-1))])
	}

	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// sampleColumns picks at most n evenly spaced indices from a series of
// length total, always keeping the last one.
func sampleColumns(total, n int) []int {
	if total <= n {
		idx := make([]int, total)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i * (total - 1) / (n - 1)
	}
	return idx
}

// NetChart renders monthly amounts as columns around a zero line: gains
// grow up in green, losses grow down in red. Each half is height/2 rows.
func NetChart(values []float64, labels []string, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	half := max(height/2, 1)

	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, math.Abs(v))
	}
	if peak == 0 {
		peak = 1
	}

	axisW := len(formatChartLabel(peak)) + 2
	barW := 2
	cols := sampleColumns(len(values), max((width-axisW)/(barW+1), 1))

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	gainStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	lossStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", barW))
	gap := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	// cell returns how much of a row, in eighths, a bar of size v covers.
	cell := func(v float64, row int) int {
		filled := math.Abs(v) / peak * float64(half) * 8
		return max(0, min(8, int(filled)-row*8))
	}

	var b strings.Builder
	for row := half - 1; row >= 0; row-- {
		label := ""
		if row == half-1 {
			label = formatChartLabel(peak)
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", axisW-1, label)))
		for i, c := range cols {
			if i > 0 {
				b.WriteString(gap)
			}
			v := values[c]
			if v > 0 && cell(v, row) > 0 {
				b.WriteString(gainStyle.Render(strings.Repeat(string(barGlyph(cell(v, row))), barW)))
			} else {
				b.WriteString(blank)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s┼", axisW-1, "0")))
	b.WriteString(axisStyle.Render(strings.Repeat("─", len(cols)*(barW+1)-1)))
	b.WriteString("\n")

	for row := 0; row < half; row++ {
		label := ""
		if row == half-1 {
			label = "-" + formatChartLabel(peak)
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", axisW-1, label)))
		for i, c := range cols {
			if i > 0 {
				b.WriteString(gap)
			}
			v := values[c]
			if v < 0 && cell(v, row) > 0 {
				// Losses hang from the axis, so partial cells fill from the top.
				glyph := "█"
				if cell(v, row) < 8 {
					glyph = "▀"
				}
				b.WriteString(lossStyle.Render(strings.Repeat(glyph, barW)))
			} else {
				b.WriteString(blank)
			}
		}
		b.WriteString("\n")
	}

	if len(labels) == len(values) {
		b.WriteString(axisStyle.Render(strings.Repeat(" ", axisW)))
		b.WriteString(axisStyle.Render(axisLabels(labels, cols, barW)))
	}

	return strings.TrimRight(b.String(), "\n")
}

func barGlyph(eighths int) rune {
	if eighths >= 8 {
		return '█'
	}
	return sparkBlocks[max(eighths-1, 0)]
}

// axisLabels places a label under the first column and then under every
// column that has room for it.
func axisLabels(labels []string, cols []int, barW int) string {
	total := len(cols)*(barW+1) - 1
	buf := []rune(strings.Repeat(" ", total))
	next := 0
	for i, c := range cols {
		pos := i * (barW + 1)
		lbl := []rune(labels[c])
		if pos < next || pos+len(lbl) > total {
			continue
		}
		copy(buf[pos:], lbl)
		next = pos + len(lbl) + 1
	}
	return strings.TrimRight(string(buf), " ")
}

// formatChartLabel abbreviates an axis amount, e.g. 45000 -> "45k".
func formatChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		return trimZero(fmt.Sprintf("%.1f", v/1e6)) + "M"
	case v >= 1e3:
		return trimZero(fmt.Sprintf("%.1f", v/1e3)) + "k"
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}
