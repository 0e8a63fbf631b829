// Package cli provides command-line interface setup for luxtest.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"luxos/cmd/luxtest/internal/golden"
	"luxos/internal/version"
)

// App represents the luxtest CLI application.
type App struct {
	Config *golden.Config
}

// NewApp creates a new luxtest CLI application.
func NewApp() *App {
	return &App{Config: golden.NewConfig()}
}

// CreateRootCommand creates and configures the root command.
func (app *App) CreateRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "luxtest",
		Short: "Golden file testing tool for LuxOS",
		Long: `luxtest runs .lux scripts through luxos batch mode and compares
the final screen with recorded .expected files.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&app.Config.Verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&app.Config.TestDir, "test-dir", golden.DefaultTestDir, "Test directory")
	rootCmd.PersistentFlags().StringVar(&app.Config.LuxosCmd, "luxos-cmd", golden.DefaultLuxosCmd, "LuxOS command to test (tries ./bin/luxos, then PATH)")
	rootCmd.PersistentFlags().IntVar(&app.Config.TestTimeout, "timeout", golden.DefaultTestTimeout, "Test timeout in seconds")

	app.addGoldenFileCommands(rootCmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			if detailed, _ := cmd.Flags().GetBool("detailed"); detailed {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "luxtest %s\n", version.GetDetailedVersion())
				return
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "luxtest %s\n", version.GetVersion())
		},
	}
	versionCmd.Flags().Bool("detailed", false, "Show detailed version information")
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}
