package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/revetci/revet/internal/config"
	"github.com/revetci/revet/internal/llm"
	"github.com/spf13/cobra"
)

// checkSnippet is a small TypeScript sample with a couple of obvious review
// hooks, enough to prove the endpoint returns a sensible reply without
// spending real tokens.
const checkSnippet = "### src/example.ts\n" +
	"```typescript\n" +
	"interface User {\n" +
	"  id: string;\n" +
	"  name: string;\n" +
	"  email: string;\n" +
	"}\n" +
	"\n" +
	"function greetUser(user: User): string {\n" +
	"  return `Hello, ${user.name}!`;\n" +
	"}\n" +
	"\n" +
	"// TODO: Add validation\n" +
	"function createUser(name: string, email: string): User {\n" +
	"  return {\n" +
	"    id: crypto.randomUUID(),\n" +
	"    name,\n" +
	"    email,\n" +
	"  };\n" +
	"}\n" +
	"```"

const checkPrompt = "Review this small code snippet. Identify any issues or improvements.\n\n" +
	"%s\n\n" +
	"Keep your response brief (2-3 bullet points max)."

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify model API connectivity with a tiny review",
	Long:  "Send a small fixed snippet to the configured model and print the reply. Useful for validating credentials and base URL before wiring revet into CI.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(".", nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitConfigError
			return nil
		}
		if err := cfg.Require(false, false); err != nil {
			fail(err)
			return nil
		}
		runCheck(cfg)
		return nil
	},
}

func runCheck(cfg config.Config) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = llm.DefaultBaseURL
	}
	fmt.Fprintln(os.Stdout, "Configuration:")
	fmt.Fprintf(os.Stdout, "  Model:    %s\n", cfg.Model)
	fmt.Fprintf(os.Stdout, "  Base URL: %s\n", baseURL)
	fmt.Fprintf(os.Stdout, "  Timeout:  %ds\n", cfg.TimeoutSeconds)
	fmt.Fprintf(os.Stdout, "  Retries:  %d\n", llm.DefaultPolicy().MaxAttempts)
	fmt.Fprintln(os.Stdout)

	prompt := fmt.Sprintf(checkPrompt, checkSnippet)
	fmt.Fprintf(os.Stdout, "Prompt size: %d chars (~%d tokens)\n", len(prompt), len(prompt)/4)
	fmt.Fprintln(os.Stdout)

	client := llm.NewClient(cfg.APIKey, cfg.Model, cfg.BaseURL, time.Duration(cfg.TimeoutSeconds)*time.Second)
	resp, err := client.Complete(context.Background(), llm.Request{
		Prompt:      prompt,
		MaxTokens:   500,
		Temperature: cfg.Temperature,
	})
	if err != nil {
		fmt.Fprintln(os.Stdout)
		fmt.Fprintln(os.Stdout, "All retries exhausted.")
		exitCode = ExitRuntimeError
		return
	}

	sep := strings.Repeat("-", 40)
	fmt.Fprintln(os.Stdout)
	fmt.Fprintln(os.Stdout, "Response:")
	fmt.Fprintln(os.Stdout, sep)
	fmt.Fprintln(os.Stdout, resp.Content)
	fmt.Fprintln(os.Stdout, sep)
	fmt.Fprintln(os.Stdout)
	fmt.Fprintf(os.Stdout, "Usage: %d in / %d out\n", resp.PromptTokens, resp.CompletionTokens)
}
