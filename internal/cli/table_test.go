package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"Role", "Hex"})
	table.AddRow("Base", "#ff0000")
	table.AddRow("Complementary", "#00ffff")

	want := "" +
		"Role           Hex\n" +
		"-------------  -------\n" +
		"Base           #ff0000\n" +
		"Complementary  #00ffff\n"

	if got := table.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableAddRowNormalisesColumns(t *testing.T) {
	table := NewTable([]string{"A", "B"})
	table.AddRow("only")
	table.AddRow("x", "y", "extra")

	if len(table.rows[0]) != 2 || table.rows[0][1] != "" {
		t.Errorf("short row not padded: %q", table.rows[0])
	}
	if len(table.rows[1]) != 2 {
		t.Errorf("long row not truncated: %q", table.rows[1])
	}
}

func TestTableAlignRight(t *testing.T) {
	table := NewTable([]string{"Hex", "Count"})
	table.AlignRight(1)
	table.AddRow("#000000", "5")
	table.AddRow("#ffffff", "120")

	lines := strings.Split(strings.TrimRight(table.Render(), "\n"), "\n")
	if lines[2] != "#000000      5" {
		t.Errorf("row = %q", lines[2])
	}
	if lines[3] != "#ffffff    120" {
		t.Errorf("row = %q", lines[3])
	}
}

func TestTableWithoutHeaders(t *testing.T) {
	table := NewTable(nil)
	table.AddRow("Ratio", "21.00:1")
	table.AddRow("Level", "AAA")

	want := "Ratio  21.00:1\nLevel  AAA\n"
	if got := table.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestTableMeasuresStyledCells(t *testing.T) {
	r := lipgloss.NewRenderer(&strings.Builder{})
	r.SetColorProfile(termenv.TrueColor)
	styled := r.NewStyle().Background(lipgloss.Color("#ff0000")).Render("   ")

	table := NewTable([]string{"Swatch", "Hex"})
	table.AddRow(styled, "#ff0000")

	lines := strings.Split(table.Render(), "\n")
	if got := lipgloss.Width(lines[2]); got != lipgloss.Width(lines[1]) {
		t.Errorf("styled row width = %d, separator width = %d", got, lipgloss.Width(lines[1]))
	}
}

func TestTableEmpty(t *testing.T) {
	if got := NewTable(nil).Render(); got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}
}
