package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"dunkest-picker/internal/player"
)

var (
	colorAccent = lipgloss.Color("99")
	colorSubtle = lipgloss.Color("238")
	colorGray   = lipgloss.Color("245")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numStyle    = cellStyle.Align(lipgloss.Right)
	borderStyle = lipgloss.NewStyle().Foreground(colorSubtle)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorGray)
)

// Printer renders ranked lists on the console. Styled output uses rounded
// lipgloss tables; plain output is tab-aligned text suitable for pipes.
type Printer struct {
	Out     io.Writer
	MaxRows int
	Styled  bool
}

// NewPrinter styles output only when f is a terminal.
func NewPrinter(f *os.File, maxRows int) *Printer {
	return &Printer{
		Out:     f,
		MaxRows: maxRows,
		Styled:  term.IsTerminal(int(f.Fd())),
	}
}

func consoleCells(p player.Player) []string {
	return []string{
		p.Name, string(p.Pos), p.TeamCode,
		fmt.Sprintf("%.1f", p.Credits),
		fmt.Sprintf("%.1f", p.PDK),
		fmt.Sprintf("%.2f", p.EffPerCredit),
		fmt.Sprintf("%.2f", p.EffPerGame),
		fmt.Sprintf("%.0f", p.GP),
		fmt.Sprintf("%.2f", p.MinPerGame),
	}
}

// Players prints the first MaxRows players under title.
func (p *Printer) Players(title string, players []player.Player) {
	if p.MaxRows > 0 && len(players) > p.MaxRows {
		players = players[:p.MaxRows]
	}
	rows := make([][]string, 0, len(players))
	for _, pl := range players {
		rows = append(rows, consoleCells(pl))
	}
	p.Table(title, RecapColumns, rows)
}

func (p *Printer) Table(title string, headers []string, rows [][]string) {
	if p.Styled {
		fmt.Fprintf(p.Out, "\n%s\n", titleStyle.Render(title))
		fmt.Fprintln(p.Out, styledTable(headers, rows))
		return
	}

	fmt.Fprintf(p.Out, "\n=== %s ===\n", title)
	if len(rows) == 0 {
		fmt.Fprintln(p.Out, "(no rows)")
		return
	}
	tw := tabwriter.NewWriter(p.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	tw.Flush()
}

func (p *Printer) Line(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.Styled {
		msg = mutedStyle.Render(msg)
	}
	fmt.Fprintln(p.Out, msg)
}

func styledTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return mutedStyle.Render("  (no rows)")
	}
	t := table.New().
		Headers(headers...).
		Rows(rows...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			// name, pos and team are text; the rest are numbers.
			if col >= 3 {
				return numStyle
			}
			return cellStyle
		})
	return t.Render()
}
