package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"luxos/internal/config"
	"luxos/internal/console"
	"luxos/internal/logger"
)

func runBatch(cmd *cobra.Command, args []string) error {
	scriptPath := args[0]
	timeout, _ := cmd.Flags().GetDuration("wait-timeout")

	logger.Info("Starting LuxOS batch mode", "script", scriptPath)
	if err := validateScriptFile(scriptPath); err != nil {
		return err
	}
	return runBatchScript(cmd.Context(), os.Stdout, scriptPath, cfg, timeout)
}

func validateScriptFile(scriptPath string) error {
	info, err := os.Stat(scriptPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("script file does not exist: %s", scriptPath)
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("script path is a directory: %s", scriptPath)
	}
	if ext := filepath.Ext(scriptPath); ext != ".lux" {
		return fmt.Errorf("script file must have .lux extension, got: %s", ext)
	}
	return nil
}

// runBatchScript starts a fresh console, submits every script line, waits for
// pending work and writes the final screen to w.
func runBatchScript(ctx context.Context, w io.Writer, scriptPath string, c *config.Config, timeout time.Duration) error {
	file, err := os.Open(scriptPath)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	con := console.New(consoleOptions(c))
	con.Start()

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "%%") {
			continue
		}
		logger.Debug("Batch line", "line", lineNum, "input", line)
		con.Submit(line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := con.Wait(waitCtx); err != nil {
		return fmt.Errorf("pending work did not finish: %w", err)
	}

	_, err = fmt.Fprintln(w, con.Screen())
	return err
}
