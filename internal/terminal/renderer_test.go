package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_FramePadsAndTruncates(t *testing.T) {
	r := New(&bytes.Buffer{}, Options{Lines: 3, Width: 10})

	frame := ansi.Strip(r.Frame("short\nthis line is far too long for the frame"))
	rows := strings.Split(frame, "\n")

	// title, top border, 3 rows, bottom border
	require.Len(t, rows, 6)
	assert.Equal(t, "LuxOS", rows[0])
	assert.Contains(t, rows[2], "short")
	assert.Contains(t, rows[3], "this line…")
	assert.NotContains(t, frame, "far too long")
	for _, row := range rows[1:] {
		assert.Equal(t, ansi.StringWidth(rows[1]), ansi.StringWidth(row))
	}
}

func TestRenderer_FrameKeepsNewestLines(t *testing.T) {
	r := New(&bytes.Buffer{}, Options{Lines: 2, Width: 20})

	frame := ansi.Strip(r.Frame("one\ntwo\nthree"))
	assert.NotContains(t, frame, "one")
	assert.Contains(t, frame, "two")
	assert.Contains(t, frame, "three")
}

func TestRenderer_RenderPlainWriter(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, Options{Lines: 2, Width: 20})

	r.Render("> ls\nNo files found.")

	out := buf.String()
	assert.Contains(t, out, "No files found.")
	assert.NotContains(t, out, "\x1b[2J", "plain writers are not cleared")
}

func TestRenderer_RenderForcedColorClears(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, Options{Lines: 2, Width: 20, ForceColor: true})

	r.Render("hello")
	assert.Contains(t, buf.String(), "\x1b[2J")
	assert.Contains(t, ansi.Strip(buf.String()), "hello")
}
