// Package main provides the LuxOS CLI entry point. LuxOS is a simulated
// single-user console with a virtual disk, installable apps and commands
// loaded at runtime from module disks.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"luxos/internal/config"
	"luxos/internal/console"
	"luxos/internal/logger"
	"luxos/internal/version"
)

var (
	configFile string
	cfg        *config.Config
	v          = config.NewViper()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "luxos",
	Short: "LuxOS - a simulated 8-bit console",
	Long: `LuxOS is a simulated single-user console. It keeps files on a virtual
disk, installs apps from a catalog and loads new commands from module disks.`,
	SilenceUsage: true,
	RunE:         runShell,
}

// shellCmd represents the shell command (explicit version of default behavior)
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive console",
	RunE:  runShell,
}

// batchCmd runs a script of console lines non-interactively
var batchCmd = &cobra.Command{
	Use:   "batch <script.lux>",
	Short: "Run a .lux script and print the final screen",
	Long: `Run every line of a .lux script through a fresh console, wait for
installs and module loads to finish, then print the screen.
Blank lines and lines starting with %% are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

// serveCmd serves consoles over SSH
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve LuxOS consoles over SSH",
	RunE:  runServe,
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		if detailed, _ := cmd.Flags().GetBool("detailed"); detailed {
			fmt.Println(version.GetDetailedVersion())
			return
		}
		fmt.Println(version.GetFormattedVersion())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file (default: luxos.yaml in . or ~/.config/luxos)")
	flags.String("log-level", "", "Set log level (debug|info|warn|error)")
	flags.String("log-file", "", "Write logs to file instead of stderr")
	flags.Bool("test-mode", false, "Run in deterministic test mode")
	flags.String("drive", "", "Directory watched by readmodule without a path")
	flags.Int("lines", 0, "Screen height in lines")
	flags.Duration("install-delay", 0, "How long app installs take")

	batchCmd.Flags().Duration("wait-timeout", 30*time.Second, "Maximum time to wait for pending installs and module loads")
	serveCmd.Flags().String("addr", "", "SSH listen address")
	serveCmd.Flags().String("host-key", "", "SSH host key path, created when missing")
	versionCmd.Flags().Bool("detailed", false, "Show build details")

	bindFlag(flags.Lookup("log-level"), config.KeyLogLevel)
	bindFlag(flags.Lookup("log-file"), config.KeyLogFile)
	bindFlag(flags.Lookup("test-mode"), config.KeyTestMode)
	bindFlag(flags.Lookup("drive"), config.KeyDriveDir)
	bindFlag(flags.Lookup("lines"), config.KeyScreenLines)
	bindFlag(flags.Lookup("install-delay"), config.KeyInstallDelay)
	bindFlag(serveCmd.Flags().Lookup("addr"), config.KeySSHAddr)
	bindFlag(serveCmd.Flags().Lookup("host-key"), config.KeySSHHostKey)

	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	loaded, err := config.Load(v, config.Paths{ConfigFile: configFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	cfg = loaded

	if err := logger.Configure(cfg.LogLevel, cfg.LogFile, cfg.TestMode); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
}

func consoleOptions(c *config.Config) console.Options {
	return console.Options{
		Lines:             c.ScreenLines,
		InstallDelay:      c.InstallDelay,
		AllowedExtensions: c.AllowedExtensions,
		MaxSteps:          c.MaxSteps,
		DriveDir:          c.DriveDir,
		TestMode:          c.TestMode,
	}
}
