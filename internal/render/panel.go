package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

const (
	panelTitle    = "Wikipedia Text"
	panelSubtitle = "Monochrome · Precision · Clarity"
	defaultWidth  = 80
	minWidth      = 40
)

// Panel draws a monochrome bordered panel: header with the copy control,
// a statistics grid and the wrapped text.
type Panel struct {
	Width int
}

func (p Panel) Render(w io.Writer, v View) error {
	width := p.Width
	if width <= 0 {
		width = defaultWidth
	}
	if width < minWidth {
		width = minWidth
	}
	inner := width - 4

	title := lipgloss.NewStyle().Bold(true).Render(panelTitle)
	subtitle := lipgloss.NewStyle().Faint(true).Render(panelSubtitle)
	control := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).Render(string(v.CopyLabel))
	titleBlock := lipgloss.JoinVertical(lipgloss.Left, title, subtitle)
	gap := inner - lipgloss.Width(titleBlock) - lipgloss.Width(control)
	if gap < 1 {
		gap = 1
	}
	header := lipgloss.JoinHorizontal(lipgloss.Center, titleBlock, lipgloss.NewStyle().Width(gap).Render(""), control)

	cellWidth := inner/3 - 2
	cell := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).Width(cellWidth)
	meta := lipgloss.JoinHorizontal(lipgloss.Top,
		cell.Render("PARAGRAPHS\n"+strconv.Itoa(v.Stats.Paragraphs)),
		cell.Render("CHARACTERS\n"+strconv.Itoa(v.Stats.Characters)),
		cell.Render("WORDS\n"+strconv.Itoa(v.Stats.Words)),
	)

	rows := []string{header}
	if v.Doc.Title != "" {
		rows = append(rows, "", lipgloss.NewStyle().Bold(true).Underline(true).Render(v.Doc.Title))
	}
	rows = append(rows, meta, "", lipgloss.NewStyle().Width(inner).Render(v.Doc.Text))

	frame := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).Width(width - 2)
	_, err := fmt.Fprintln(w, frame.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
	return err
}
