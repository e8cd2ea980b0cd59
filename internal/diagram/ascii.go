package diagram

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Bar is one labelled value of a bar chart, typically a load combination.
type Bar struct {
	Label     string
	Value     float64
	Highlight bool // drawn with a marker, e.g. the governing case
}

// ProfilePoint is one sample of a load profile along a roof.
type ProfilePoint struct {
	X     float64 // distance from the step (m)
	Value float64
}

const barWidth = 40

// DrawASCIIBarChart draws horizontal bars scaled to the largest value.
func DrawASCIIBarChart(title, unit string, bars []Bar) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s\n", title))
	sb.WriteString(fmt.Sprintf("  %s\n\n", strings.Repeat("─", utf8.RuneCountInString(title))))

	labelWidth := 0
	maxValue := 0.0
	for _, b := range bars {
		labelWidth = max(labelWidth, utf8.RuneCountInString(b.Label))
		maxValue = max(maxValue, b.Value)
	}

	for _, b := range bars {
		n := scale(b.Value, maxValue, barWidth)
		fill := strings.Repeat("█", n) + strings.Repeat("░", barWidth-n)
		mark := ""
		if b.Highlight {
			mark = " ◄ governs"
		}
		sb.WriteString(fmt.Sprintf("  %s │%s│ %7.2f %s%s\n", padRight(b.Label, labelWidth), fill, b.Value, unit, mark))
	}

	return sb.String()
}

// DrawDriftProfile draws the accumulation factor along a lower roof, one
// row per sample.
func DrawDriftProfile(points []ProfilePoint) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("  DRIFT PROFILE (Ca along the lower roof)\n")
	sb.WriteString("  ───────────────────────────────────────\n\n")

	maxValue := 0.0
	for _, p := range points {
		maxValue = max(maxValue, p.Value)
	}

	for i, p := range points {
		edge := "│"
		if i == 0 {
			edge = "┤"
		}
		sb.WriteString(fmt.Sprintf("  x=%6.2f m %s%s %.3f\n", p.X, edge, strings.Repeat("▓", scale(p.Value, maxValue, barWidth)), p.Value))
	}
	sb.WriteString("             └── step of the upper roof at x = 0\n")

	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := utf8.RuneCountInString(title)
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", padRight(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", padRight(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

func scale(v, maxValue float64, width int) int {
	if maxValue <= 0 || v <= 0 {
		return 0
	}
	n := int(v / maxValue * float64(width))
	return min(n, width)
}

// padRight pads by runes; %-*s counts bytes and misaligns γ, ², and the like.
func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
