package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/jmylchreest/swatch/internal/colour"
)

const (
	defaultTerminalWidth = 80
	swatchWidth          = 6
)

// previewer renders colour swatches for the writer it was created for, so
// ANSI colour is only emitted when that writer is a colour terminal.
type previewer struct {
	r     *lipgloss.Renderer
	width int
}

func newPreviewer(w io.Writer) *previewer {
	return &previewer{r: lipgloss.NewRenderer(w), width: terminalWidth(w)}
}

// terminalWidth returns the column count of w when it is a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultTerminalWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultTerminalWidth
	}
	return width
}

func (p *previewer) swatch(c colour.RGB) string {
	return p.r.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Render(strings.Repeat(" ", swatchWidth))
}

// chip renders label on c in black or white, whichever reads better.
func (p *previewer) chip(c colour.RGB, label string) string {
	return p.r.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Foreground(lipgloss.Color(colour.ReadableOn(c).Hex())).
		Padding(0, 1).
		Render(label)
}

// palette lists each colour with its swatch, values and share of samples.
func (p *previewer) palette(pal *colour.Palette) string {
	total := 0
	for _, e := range pal.Colours {
		total += e.Count
	}

	table := NewTable([]string{"", "Hex", "RGB", "HSL", "Count", "Share"})
	table.AlignRight(4)
	table.AlignRight(5)
	for _, e := range pal.Colours {
		table.AddRow(
			p.swatch(e.Colour),
			e.Colour.Hex(),
			e.Colour.String(),
			e.Colour.HSL().String(),
			fmt.Sprintf("%d", e.Count),
			fmt.Sprintf("%.1f%%", 100*float64(e.Count)/float64(total)),
		)
	}
	return table.Render()
}

// scheme draws the entries as a row of labelled chips, wrapped to the
// terminal width.
func (p *previewer) scheme(s *colour.Scheme) string {
	title := p.r.NewStyle().Bold(true).Render(fmt.Sprintf("%s (%s)", s.Kind, s.Base.Hex()))

	var lines []string
	var line []string
	lineWidth := 0
	for _, e := range s.Entries {
		chip := p.chip(e.Colour, fmt.Sprintf("%s %s", e.Role, e.Hex()))
		w := lipgloss.Width(chip) + 1
		if lineWidth > 0 && lineWidth+w > p.width {
			lines = append(lines, strings.Join(line, " "))
			line, lineWidth = nil, 0
		}
		line = append(line, chip)
		lineWidth += w
	}
	if len(line) > 0 {
		lines = append(lines, strings.Join(line, " "))
	}

	return lipgloss.JoinVertical(lipgloss.Left, append([]string{title}, lines...)...) + "\n"
}

// contrast renders sample text in fg on bg at normal weight and bold.
func (p *previewer) contrast(fg, bg colour.RGB) string {
	base := p.r.NewStyle().
		Foreground(lipgloss.Color(fg.Hex())).
		Background(lipgloss.Color(bg.Hex())).
		Padding(0, 2)

	normal := base.Render("The quick brown fox")
	large := base.Bold(true).Render("LARGE TEXT")
	return lipgloss.JoinHorizontal(lipgloss.Top, normal, " ", large) + "\n"
}
