package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"luxos/internal/console"
	"luxos/internal/logger"
	"luxos/internal/terminal"
	"luxos/internal/version"
)

func runShell(_ *cobra.Command, _ []string) error {
	logger.Info("Starting LuxOS", "version", version.GetVersion())

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "lux> ",
		HistoryFile:     historyPath(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = rl.Close()
	}()

	renderer := terminal.New(rl.Stdout(), terminal.Options{Lines: cfg.ScreenLines})
	opts := consoleOptions(cfg)
	opts.Render = renderer.Render
	c := console.New(opts)
	c.Start()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch strings.TrimSpace(line) {
		case "exit", "quit":
			return nil
		}
		c.Submit(line)
	}
}

// historyPath keeps readline history next to the user config, or nowhere
// in test mode.
func historyPath() string {
	if cfg.TestMode {
		return ""
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	dir := filepath.Join(home, ".config", "luxos")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ""
	}
	return filepath.Join(dir, "history")
}
