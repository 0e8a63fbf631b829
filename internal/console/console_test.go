package console

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxos/internal/apps"
	"luxos/internal/testutils"
)

type harness struct {
	console *Console
	clock   *testutils.FakeClock
	frames  *testutils.RenderRecorder
	host    afero.Fs
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		clock:  testutils.NewFakeClock(),
		frames: &testutils.RenderRecorder{},
		host:   afero.NewMemMapFs(),
	}
	h.console = New(Options{
		Clock:    h.clock,
		Render:   h.frames.Render,
		HostFs:   h.host,
		TestMode: true,
	})
	return h
}

func (h *harness) wait(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, h.console.Wait(ctx))
}

func TestConsole_WriteThenRead(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, `File 'notes.txt' created with content: "hello"`, h.console.Submit("write notes.txt hello"))
	assert.Equal(t, "Contents of 'notes.txt':\nhello", h.console.Submit("read notes.txt"))

	assert.Equal(t, []string{
		"> write notes.txt hello",
		`File 'notes.txt' created with content: "hello"`,
		"> read notes.txt",
		"Contents of 'notes.txt':",
		"hello",
	}, h.console.Lines())
	assert.Equal(t, 2, h.frames.Count())
	assert.Equal(t, h.console.Screen(), h.frames.Last())
}

func TestConsole_UnknownCommand(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, "Unknown command: frobnicate", h.console.Submit("frobnicate now"))
	assert.Equal(t, "Unknown command: ", h.console.Dispatch(""))
	assert.Equal(t, "Unknown command: ", h.console.Dispatch("   "))
	assert.Equal(t, "Unknown command: HELP", h.console.Dispatch("HELP"))
}

func TestConsole_SplitsOnSingleSpaces(t *testing.T) {
	h := newHarness(t)
	h.console.RegisterFunc("args", func(args ...string) string {
		return fmt.Sprintf("%q", args)
	})

	assert.Equal(t, `["a" "" "b"]`, h.console.Dispatch("  args a  b  "))
	assert.Equal(t, `[]`, h.console.Dispatch("args"))
}

func TestConsole_RegisteredCommandOverridesBuiltin(t *testing.T) {
	h := newHarness(t)
	before := h.console.Registry().Len()

	h.console.RegisterFunc("help", func(_ ...string) string { return "custom help" })

	assert.Equal(t, "custom help", h.console.Dispatch("help"))
	assert.Equal(t, before, h.console.Registry().Len())
}

func TestConsole_HelpListsCommands(t *testing.T) {
	h := newHarness(t)

	out := h.console.Dispatch("help")
	assert.True(t, strings.HasPrefix(out, "Available commands: "))
	for _, name := range []string{"help", "ls", "mkdir", "write", "read", "clear", "install", "listapps", "fax", "email", "readmodule"} {
		assert.Contains(t, out, name)
	}
}

func TestConsole_ScreenKeepsLastLines(t *testing.T) {
	h := newHarness(t)

	for i := 0; i < 20; i++ {
		h.console.Submit(fmt.Sprintf("write f%d x", i))
	}

	lines := h.console.Lines()
	require.Len(t, lines, 24)
	assert.Equal(t, "> write f8 x", lines[0])
	assert.Equal(t, `File 'f19' created with content: "x"`, lines[23])
}

func TestConsole_ClearKeepsEcho(t *testing.T) {
	h := newHarness(t)
	h.console.Submit("write a b")
	h.console.Submit("ls")

	assert.Equal(t, "Screen cleared.", h.console.Submit("clear"))
	assert.Equal(t, []string{"> clear", "Screen cleared."}, h.console.Lines())
}

func TestConsole_MkdirConflictLeavesStoreUnchanged(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, "Directory 'docs' created.", h.console.Dispatch("mkdir docs"))
	h.console.Dispatch("write notes.txt hi")
	before := h.console.Files().Entries()

	assert.Equal(t, "Directory already exists.", h.console.Dispatch("mkdir docs"))
	assert.Equal(t, "Directory already exists.", h.console.Dispatch("mkdir notes.txt"))
	assert.Equal(t, before, h.console.Files().Entries())
	assert.Equal(t, "docs/\nnotes.txt", h.console.Dispatch("ls"))
}

func TestConsole_InstallCompletesAfterDelay(t *testing.T) {
	h := newHarness(t)

	ack := h.console.Submit("install LuxText")
	assert.Equal(t, "Installation of LuxText started.", ack)
	assert.Equal(t, []string{
		"> install LuxText",
		"Installation of LuxText started.",
		"Installing LuxText v1.2.0...",
	}, h.console.Lines())
	assert.Equal(t, "No apps installed.", h.console.Dispatch("listapps"))
	assert.Equal(t, "LuxText is already being installed.", h.console.Dispatch("install LuxText"))
	assert.Equal(t, "Cannot install LuxCalc: LuxText is currently installing.", h.console.Dispatch("install LuxCalc"))

	h.clock.Advance(1999 * time.Millisecond)
	assert.Equal(t, "No apps installed.", h.console.Dispatch("listapps"))

	frames := h.frames.Count()
	h.clock.Advance(time.Millisecond)
	assert.Equal(t, frames+1, h.frames.Count(), "completion re-renders")

	lines := h.console.Lines()
	assert.Equal(t, "LuxText installed successfully.", lines[len(lines)-1])
	assert.Equal(t, "LuxText", h.console.Dispatch("listapps"))
	assert.Equal(t, "LuxText is already installed.", h.console.Dispatch("install LuxText"))
	h.wait(t)
}

func TestConsole_InstallErrors(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, "Usage: install <app_name>", h.console.Dispatch("install"))
	assert.Equal(t, "Unknown app: Doom", h.console.Dispatch("install Doom"))
}

func TestConsole_OpenWithInstalledApp(t *testing.T) {
	h := newHarness(t)
	h.console.Dispatch("write notes.txt dear diary")
	h.console.Dispatch("write image.pix 0101")

	assert.Equal(t, "LuxText is not installed.", h.console.Dispatch("open LuxText notes.txt"))

	h.console.Dispatch("install LuxText")
	h.clock.Advance(2 * time.Second)

	assert.Equal(t, "LuxText opened 'notes.txt':\ndear diary", h.console.Dispatch("open LuxText notes.txt"))
	assert.Equal(t, "LuxText can only open .txt files.", h.console.Dispatch("open LuxText image.pix"))
	assert.Equal(t, "File not found.", h.console.Dispatch("open LuxText missing.txt"))
}

func TestConsole_ThrowingModuleLeavesRegistryUnchanged(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, afero.WriteFile(h.host, "/disks/bad.star", []byte(`
def help():
    return "hijacked"

commands = {"help": help}
fail("boom")
`), 0644))

	before := h.console.Registry().Names()
	helpBefore := h.console.Dispatch("help")

	assert.Equal(t, "Insert disk: reading '/disks/bad.star'...", h.console.Submit("readmodule /disks/bad.star"))
	h.wait(t)

	lines := h.console.Lines()
	last := lines[len(lines)-1]
	assert.True(t, strings.HasPrefix(last, "Error loading module 'bad.star': "), last)
	assert.Contains(t, last, "boom")
	assert.Equal(t, before, h.console.Registry().Names())
	assert.Equal(t, helpBefore, h.console.Dispatch("help"))
	assert.False(t, h.console.Loader().Busy())
}

func TestConsole_ModuleCommandsBecomeAvailable(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, afero.WriteFile(h.host, "/disks/games.star", []byte(`
name = "games"
version = "0.1.0"

def roll(*args):
    return "You rolled a 4"

commands = {"roll": roll, "clear": roll}
`), 0644))

	h.console.Submit("readmodule /disks/games.star")
	h.wait(t)

	lines := h.console.Lines()
	assert.Equal(t, "Module 'games' loaded: 2 command(s) added.", lines[len(lines)-1])
	assert.Equal(t, "You rolled a 4", h.console.Submit("roll"))
	assert.Equal(t, "You rolled a 4", h.console.Dispatch("clear"))
	assert.Equal(t, "games v0.1.0 (games.star): roll, clear", h.console.Dispatch("modules"))
}

func TestConsole_ReadModuleBusyAndMissing(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, "No disk inserted.", h.console.Dispatch("readmodule"))

	h.console.Dispatch("readmodule /nowhere.star")
	h.wait(t)
	lines := h.console.Lines()
	assert.Equal(t, "No disk inserted.", lines[len(lines)-1])
}

func TestConsole_PanickingCommandIsReported(t *testing.T) {
	h := newHarness(t)
	h.console.RegisterFunc("crash", func(_ ...string) string {
		panic("kaboom")
	})

	assert.Equal(t, "Error: crash: kaboom", h.console.Submit("crash"))
	assert.Equal(t, "Unknown command: nope", h.console.Submit("nope"))
}

func TestConsole_StartPrintsWelcome(t *testing.T) {
	h := newHarness(t)
	h.console.Start()

	assert.Equal(t, Welcome, h.console.Lines())
	assert.Equal(t, 1, h.frames.Count())
}

func TestConsole_ConcurrentSubmits(t *testing.T) {
	h := newHarness(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				h.console.Submit(fmt.Sprintf("write f%d-%d x", i, j))
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 80, h.console.Files().Len())
	assert.Len(t, h.console.Lines(), 24)
	assert.Equal(t, 80, h.frames.Count())
}

func TestConsole_WaitHonoursContext(t *testing.T) {
	h := newHarness(t)
	h.console.Dispatch("install LuxPaint")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, h.console.Wait(ctx), context.DeadlineExceeded)

	h.clock.Advance(apps.DefaultDelay)
	h.wait(t)
}
