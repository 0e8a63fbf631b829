package builtin

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxos/internal/apps"
	"luxos/internal/commands"
	"luxos/internal/loader"
	"luxos/internal/screen"
	"luxos/internal/testutils"
	"luxos/internal/version"
	"luxos/internal/vfs"
)

type testEnv struct {
	*Env
	sched *testutils.FakeScheduler
	host  afero.Fs
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	sched := testutils.NewFakeScheduler()
	registry := commands.NewRegistry()
	host := afero.NewMemMapFs()
	env := &Env{
		Registry:  registry,
		Files:     vfs.New(),
		Screen:    screen.New(screen.DefaultLines),
		Installer: apps.NewInstaller(apps.DefaultCatalog(), sched, apps.DefaultDelay),
		Loader:    loader.New(registry, sched, loader.Options{Fs: host}),
	}
	RegisterAll(env)
	return &testEnv{Env: env, sched: sched, host: host}
}

func (e *testEnv) run(line string) string {
	parts := strings.Split(line, " ")
	out, ok := e.Registry.Execute(parts[0], parts[1:])
	if !ok {
		return "Unknown command: " + parts[0]
	}
	return out
}

func TestRegisterAll(t *testing.T) {
	env := newTestEnv(t)

	expected := []string{
		"apps", "clear", "diff", "email", "fax", "help", "install", "listapps",
		"ls", "mkdir", "modules", "open", "read", "readmodule", "version", "write",
	}
	assert.Equal(t, expected, env.Registry.Names())

	for _, cmd := range env.Registry.GetAll() {
		info := cmd.HelpInfo()
		assert.Equal(t, cmd.Name(), info.Command)
		assert.NotEmpty(t, info.Description, cmd.Name())
		assert.True(t, strings.HasPrefix(cmd.Usage(), cmd.Name()), cmd.Name())
	}
}

func TestHelpCommand(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, "Available commands: "+strings.Join(env.Registry.Names(), ", "), env.run("help"))

	detail := env.run("help write")
	assert.Contains(t, detail, "Command: write")
	assert.Contains(t, detail, "Usage: write <file_name> <content>")
	assert.Contains(t, detail, "Examples:")

	assert.Equal(t, "Unknown command: nope", env.run("help nope"))

	env.Registry.RegisterFunc("zap", func(_ ...string) string { return "" })
	assert.Contains(t, env.run("help"), ", zap")
	assert.Contains(t, env.run("help zap"), "Usage: zap [args...]")
}

func TestFileCommands(t *testing.T) {
	tests := []struct {
		name     string
		setup    []string
		line     string
		expected string
	}{
		{"ls empty", nil, "ls", "No files found."},
		{"ls order", []string{"write b x", "mkdir a", "write c y", "write b z"}, "ls", "b\na/\nc"},
		{"ls glob", []string{"write a.txt x", "write b.pix y", "write c.txt z"}, "ls *.txt", "a.txt\nc.txt"},
		{"ls glob no match", []string{"write a.txt x"}, "ls *.pix", "No files found."},
		{"mkdir usage", nil, "mkdir", "Usage: mkdir <directory_name>"},
		{"mkdir", nil, "mkdir docs", "Directory 'docs' created."},
		{"mkdir exists", []string{"mkdir docs"}, "mkdir docs", "Directory already exists."},
		{"write usage", nil, "write", "Usage: write <file_name> <content>"},
		{"write missing content", nil, "write notes.txt", "Usage: write <file_name> <content>"},
		{"write joins words", nil, "write notes.txt hello big world", `File 'notes.txt' created with content: "hello big world"`},
		{"write over dir", []string{"mkdir docs"}, "write docs hi", "'docs' is a directory."},
		{"write overwrite", []string{"write n a"}, "write n b", `File 'n' created with content: "b"`},
		{"read usage", nil, "read", "Usage: read <file_name>"},
		{"read missing", nil, "read ghost", "File not found."},
		{"read dir", []string{"mkdir docs"}, "read docs", "'docs' is a directory."},
		{"read", []string{"write n a", "write n b"}, "read n", "Contents of 'n':\nb"},
		{"diff usage", nil, "diff a", "Usage: diff <file_a> <file_b>"},
		{"diff missing", []string{"write a x"}, "diff a b", "File not found."},
		{"diff identical", []string{"write a x", "write b x"}, "diff a b", "Files 'a' and 'b' are identical."},
		{"diff changed", []string{"write a old", "write b new"}, "diff a b", "- old\n+ new"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			for _, line := range tt.setup {
				env.run(line)
			}
			assert.Equal(t, tt.expected, env.run(tt.line))
		})
	}
}

func TestClearCommand(t *testing.T) {
	env := newTestEnv(t)
	env.Screen.Append("one")
	env.Screen.Append("two")

	assert.Equal(t, "Screen cleared.", env.run("clear"))
	assert.Equal(t, 0, env.Screen.Len())
}

func TestMessageCommands(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, "Usage: fax <number> <message>", env.run("fax"))
	assert.Equal(t, "Usage: fax <number> <message>", env.run("fax 555-0100"))
	assert.Equal(t, "Fax sent to 555-0100: hello there", env.run("fax 555-0100 hello there"))

	assert.Equal(t, "Usage: email <address> <subject> <body>", env.run("email ada@lux.os Hi"))
	assert.Equal(t, "Email sent to ada@lux.os with subject 'Hi': see you soon", env.run("email ada@lux.os Hi see you soon"))
}

func TestAppCommands(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, "No apps installed.", env.run("listapps"))
	assert.Equal(t, "Installation of LuxCalc started.", env.run("install LuxCalc"))
	assert.Equal(t, []string{"Installing LuxCalc v2.0.0..."}, env.sched.Emitted())

	catalog := env.run("apps")
	assert.Contains(t, catalog, "LuxText v1.2.0 [not installed] - Plain text viewer for the virtual disk")
	assert.Contains(t, catalog, "LuxCalc v2.0.0 [installing]")

	env.sched.Clock().Advance(apps.DefaultDelay)
	assert.Equal(t, "LuxCalc", env.run("listapps"))
	assert.Contains(t, env.run("apps"), "LuxCalc v2.0.0 [installed]")

	env.run("install LuxText")
	env.sched.Clock().Advance(apps.DefaultDelay)
	assert.Equal(t, "LuxText\nLuxCalc", env.run("listapps"))
}

func TestOpenCommand(t *testing.T) {
	env := newTestEnv(t)
	env.run("write memo.txt buy milk")
	env.run("install LuxCalc")
	env.sched.Clock().Advance(apps.DefaultDelay)

	assert.Equal(t, "Usage: open <app_name> <file_name>", env.run("open LuxCalc"))
	assert.Equal(t, "Unknown app: Doom", env.run("open Doom memo.txt"))
	assert.Equal(t, "LuxText is not installed.", env.run("open LuxText memo.txt"))
	assert.Equal(t, "LuxCalc opened 'memo.txt':\nbuy milk", env.run("open LuxCalc memo.txt"))
}

func TestReadModuleCommands(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, afero.WriteFile(env.host, "/greet.json", []byte(`{"name":"greet","version":"1.0.0","commands":{"hi":"hi {0}"}}`), 0644))

	assert.Equal(t, "No modules loaded.", env.run("modules"))
	assert.Equal(t, "No disk inserted.", env.run("readmodule"))
	assert.Equal(t, "Insert disk: reading '/greet.json'...", env.run("readmodule /greet.json"))
	assert.Equal(t, "Disk drive busy. Please wait.", env.run("readmodule /greet.json"))

	env.sched.RunPending()
	assert.Equal(t, []string{"Module 'greet' loaded: 1 command(s) added."}, env.sched.Emitted())
	assert.Equal(t, "hi Ada", env.run("hi Ada"))
	assert.Equal(t, "greet v1.0.0 (greet.json): hi", env.run("modules"))
}

func TestVersionCommand(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, version.GetFormattedVersion(), env.run("version"))
}
