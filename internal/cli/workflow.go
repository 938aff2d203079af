package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const workflowPath = ".github/workflows/revet.yml"

// workflowTemplate is the generated Actions workflow. The %s slot is the
// --fail-on threshold for scheduled codebase reviews. GITHUB_REPOSITORY is
// provided by the Actions runtime.
const workflowTemplate = `name: Revet Code Review

on:
  pull_request:
    types: [opened, synchronize, reopened]
  workflow_dispatch:

permissions:
  contents: read
  issues: write
  pull-requests: write

jobs:
  review:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4

      - uses: actions/setup-go@v5
        with:
          go-version: stable

      - name: Install revet
        run: go install github.com/revetci/revet/cmd/revet@latest

      - name: Review pull request
        if: github.event_name == 'pull_request'
        env:
          OPENAI_API_KEY: ${{ secrets.OPENAI_API_KEY }}
          GITHUB_TOKEN: ${{ secrets.GITHUB_TOKEN }}
          PR_NUMBER: ${{ github.event.pull_request.number }}
        run: revet review pr --publish

      - name: Review codebase
        if: github.event_name == 'workflow_dispatch'
        env:
          OPENAI_API_KEY: ${{ secrets.OPENAI_API_KEY }}
          GITHUB_TOKEN: ${{ secrets.GITHUB_TOKEN }}
        run: revet review codebase --publish --fail-on %s
`

var (
	initDir    string
	initForce  bool
	initFailOn string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a GitHub Actions workflow for automated reviews",
	Long: "Write .github/workflows/revet.yml with two triggers: pull requests " +
		"get a diff review posted as a comment, and manual dispatches get a " +
		"full codebase review filed as an issue.",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := filepath.Join(initDir, filepath.FromSlash(workflowPath))

		if _, err := os.Stat(path); err == nil && !initForce {
			fmt.Fprintf(os.Stderr, "Workflow already exists at %s (use --force to overwrite)\n", path)
			return nil
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating workflows directory: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		content := fmt.Sprintf(workflowTemplate, initFailOn)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing workflow file: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		fmt.Fprintf(os.Stdout, "Created %s\n", path)
		fmt.Fprintln(os.Stdout, "Add the OPENAI_API_KEY secret to the repository before the first run.")
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initDir, "dir", ".", "Repository root to write the workflow into")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing workflow file")
	initCmd.Flags().StringVar(&initFailOn, "fail-on", "none", "Severity threshold for the codebase review job")
}
