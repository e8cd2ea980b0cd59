package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ulsBars = []Bar{
	{Label: "1", Value: 0.75},
	{Label: "2", Value: 6.95},
	{Label: "3", Value: 11.4, Highlight: true},
	{Label: "4", Value: 6.65},
	{Label: "5", Value: 6.8},
}

func TestDrawASCIIBarChart(t *testing.T) {
	out := DrawASCIIBarChart("ULS combinations", "kPa", ulsBars)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3+len(ulsBars))
	assert.Contains(t, lines[0], "ULS combinations")

	governing := lines[3+2]
	assert.Contains(t, governing, "◄ governs")
	assert.Contains(t, governing, strings.Repeat("█", barWidth))
	assert.Contains(t, governing, "11.40 kPa")
	assert.NotContains(t, lines[3], "governs")
	assert.Equal(t, 1, strings.Count(out, "governs"))
}

func TestDrawASCIIBarChart_AllZero(t *testing.T) {
	out := DrawASCIIBarChart("SLS combinations", "kPa", []Bar{{Label: "1"}, {Label: "2"}})
	assert.NotContains(t, out, "█")
	assert.Contains(t, out, strings.Repeat("░", barWidth))
}

func TestDrawDriftProfile(t *testing.T) {
	out := DrawDriftProfile([]ProfilePoint{{X: 0, Value: 2.5}, {X: 1, Value: 1.75}, {X: 2, Value: 1}})
	assert.Contains(t, out, "x=  0.00 m ┤"+strings.Repeat("▓", barWidth)+" 2.500")
	assert.Contains(t, out, "1.000")
}

func TestDrawSummaryBox_AlignsMultibyteText(t *testing.T) {
	out := DrawSummaryBox("SNOW LOAD", []string{"γ = 4.00 kN/m³", "S = 2.61 kPa"})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)

	width := len([]rune(lines[0]))
	for _, l := range lines {
		assert.Equal(t, width, len([]rune(l)), l)
	}
}

func TestExportBarChart(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"uls.png", "uls.svg", "nested/uls.pdf"} {
		path, err := ExportBarChart("ULS", "kPa", ulsBars, filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, name), path)
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	path, err := ExportBarChart("ULS", "kPa", ulsBars, filepath.Join(dir, "chart"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "chart.png"), path)
	assert.FileExists(t, path)

	_, err = ExportBarChart("ULS", "kPa", nil, filepath.Join(dir, "empty.png"))
	assert.Error(t, err)
}

func TestExportDriftProfile(t *testing.T) {
	path, err := ExportDriftProfile([]ProfilePoint{{X: 0, Value: 2.5}, {X: 3, Value: 1}}, filepath.Join(t.TempDir(), "drift.svg"))
	require.NoError(t, err)
	assert.FileExists(t, path)
}
