package cli

import (
	"github.com/spf13/cobra"

	"luxos/cmd/luxtest/internal/golden"
)

func (app *App) executor() golden.Executor {
	return golden.CommandExecutor(app.Config)
}

func (app *App) addGoldenFileCommands(rootCmd *cobra.Command) {
	recordCmd := &cobra.Command{
		Use:   "record <testname>",
		Short: "Record a new test case",
		Long: `Record a new test case by running a .lux script and capturing the final screen.
The output is saved as a golden file for future comparisons.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return golden.NewRecorder(app.Config, app.executor(), cmd.OutOrStdout()).RecordTest(cmd.Context(), args[0])
		},
	}

	runCmd := &cobra.Command{
		Use:   "run <testname>",
		Short: "Run a specific test case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return golden.NewRunner(app.Config, app.executor(), cmd.OutOrStdout()).RunTest(cmd.Context(), args[0])
		},
	}

	runAllCmd := &cobra.Command{
		Use:   "run-all",
		Short: "Run all test cases",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return golden.NewRunner(app.Config, app.executor(), cmd.OutOrStdout()).RunAllTests(cmd.Context())
		},
	}

	acceptCmd := &cobra.Command{
		Use:   "accept <testname>",
		Short: "Accept current output as golden",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return golden.NewRecorder(app.Config, app.executor(), cmd.OutOrStdout()).AcceptTest(cmd.Context(), args[0])
		},
	}

	diffCmd := &cobra.Command{
		Use:   "diff <testname>",
		Short: "Show differences between expected and actual output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return golden.NewDiffer(app.Config, app.executor(), cmd.OutOrStdout()).ShowDiff(cmd.Context(), args[0])
		},
	}

	rootCmd.AddCommand(recordCmd, runCmd, runAllCmd, acceptCmd, diffCmd)
}
