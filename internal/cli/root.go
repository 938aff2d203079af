package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/revetci/revet/internal/config"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes are a CI contract: workflows branch on them, so each failure
// class gets its own value.
const (
	ExitSuccess      = 0 // review completed, no gate tripped
	ExitFindings     = 1 // review completed and --fail-on matched
	ExitUsageError   = 2 // bad flags or arguments
	ExitConfigError  = 3 // missing credentials or required settings
	ExitRuntimeError = 4 // collection, model, or GitHub failure
)

var rootCmd = &cobra.Command{
	Use:   "revet",
	Short: "LLM code review for codebases and pull requests",
	Long: "Revet bundles source files or PR diffs, sends them to an " +
		"OpenAI-compatible model, and renders the review as Markdown, " +
		"JSON, a GitHub issue, or a PR comment.",
}

// Run executes the root command and returns the process exit code.
func Run() int {
	// A repo-local .env supplies OPENAI_API_KEY and friends outside CI.
	_ = godotenv.Load()

	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

// fail prints the error and records the exit code for it. Missing
// credentials are a configuration problem; everything else that reaches
// here is a runtime failure.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	var miss *config.MissingError
	if errors.As(err, &miss) {
		exitCode = ExitConfigError
		return
	}
	exitCode = ExitRuntimeError
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print revet version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "revet version %s\n", version)
	},
}
