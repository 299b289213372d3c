package viz

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/algoviz/internal/timing"
)

const sidebarWidth = 34

type styles struct {
	panel   lipgloss.Style
	header  lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	running lipgloss.Style
	idle    lipgloss.Style
	message lipgloss.Style
	muted   lipgloss.Style
	gauge   lipgloss.Style
	spark   lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(0, 2).
			Width(sidebarWidth),
		header:  lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		running: lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		idle:    lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		message: lipgloss.NewStyle().Foreground(t.Accent).Italic(true),
		muted:   lipgloss.NewStyle().Foreground(t.Muted),
		gauge:   lipgloss.NewStyle().Foreground(t.Primary),
		spark:   lipgloss.NewStyle().Foreground(t.Success),
	}
}

// gradientText colors each rune along a linear blend from start to end.
func gradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	sr, sg, sb := parseHex(string(start))
	er, eg, eb := parseHex(string(end))

	var b strings.Builder
	for i, c := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		col := hexColor(
			sr+int(t*float64(er-sr)),
			sg+int(t*float64(eg-sg)),
			sb+int(t*float64(eb-sb)),
		)
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(col)).Bold(true).Render(string(c)))
	}
	return b.String()
}

// speedGauge draws the multiplier on a bar spanning MinSpeed..MaxSpeed.
func speedGauge(speed float64, width int) string {
	ratio := (speed - timing.MinSpeed) / (timing.MaxSpeed - timing.MinSpeed)
	filled := int(ratio*float64(width) + 0.5)
	filled = max(0, min(width, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// sparkline renders values as block heights, sampled down to width.
func sparkline(values []int, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	step := max(1, (len(values)+width-1)/width)
	var b strings.Builder
	for i := 0; i < len(values); i += step {
		idx := (values[i] - lo) * (len(chars) - 1) / span
		b.WriteRune(chars[idx])
	}
	return b.String()
}

func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 255, 255, 255
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}

func hexColor(r, g, b int) string {
	clamp := func(v int) int { return max(0, min(255, v)) }
	return "#" + hexByte(clamp(r)) + hexByte(clamp(g)) + hexByte(clamp(b))
}

func hexByte(v int) string {
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
