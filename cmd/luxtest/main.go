// Package main provides luxtest, a golden file runner for LuxOS batch scripts.
package main

import (
	"os"

	"luxos/cmd/luxtest/internal/cli"
)

func main() {
	app := cli.NewApp()
	if err := app.CreateRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
