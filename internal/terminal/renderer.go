// Package terminal draws the LuxOS screen buffer onto a terminal.
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"luxos/internal/screen"
)

// DefaultWidth is the number of columns of screen text.
const DefaultWidth = 64

// Options configures a Renderer.
type Options struct {
	// Lines is the screen height. Shorter screens are padded.
	Lines int
	// Width truncates longer lines. Defaults to DefaultWidth.
	Width int
	// ForceColor draws colors and clears even when w is not a terminal,
	// as needed for SSH sessions.
	ForceColor bool
}

// Renderer redraws the whole screen on every frame.
type Renderer struct {
	w        io.Writer
	out      *termenv.Output
	lines    int
	width    int
	frame    lipgloss.Style
	title    lipgloss.Style
	interact bool
}

// New creates a renderer writing to w.
func New(w io.Writer, opts Options) *Renderer {
	var outOpts []termenv.OutputOption
	if opts.ForceColor {
		outOpts = append(outOpts, termenv.WithProfile(termenv.ANSI256), termenv.WithTTY(true))
	}
	out := termenv.NewOutput(w, outOpts...)
	lr := lipgloss.NewRenderer(w, outOpts...)

	if opts.Lines <= 0 {
		opts.Lines = screen.DefaultLines
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	return &Renderer{
		w:     w,
		out:   out,
		lines: opts.Lines,
		width: opts.Width,
		frame: lr.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 1),
		title:    lr.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		interact: opts.ForceColor || out.ColorProfile() != termenv.Ascii,
	}
}

// Frame lays out screen text as a fixed-size bordered panel.
func (r *Renderer) Frame(text string) string {
	var rows []string
	if text != "" {
		rows = strings.Split(text, "\n")
	}
	if len(rows) > r.lines {
		rows = rows[len(rows)-r.lines:]
	}
	for i, row := range rows {
		rows[i] = ansi.Truncate(row, r.width, "…")
	}
	for len(rows) < r.lines {
		rows = append(rows, "")
	}

	body := lipgloss.NewStyle().Width(r.width).Render(strings.Join(rows, "\n"))
	return r.title.Render("LuxOS") + "\n" + r.frame.Render(body)
}

// Render redraws the terminal. Its signature matches console.RenderFunc.
// On a plain writer the frame is printed without clearing.
func (r *Renderer) Render(text string) {
	if r.interact {
		r.out.ClearScreen()
	}
	_, _ = fmt.Fprintln(r.w, r.Frame(text))
}
