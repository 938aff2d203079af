package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/revetci/revet/internal/bundle"
	"github.com/revetci/revet/internal/collect"
	"github.com/revetci/revet/internal/config"
	"github.com/revetci/revet/internal/github"
	"github.com/revetci/revet/internal/output"
	"github.com/revetci/revet/internal/redact"
	"github.com/revetci/revet/internal/review"
	"github.com/spf13/cobra"
)

// Shared review flags
var (
	flagDir      string
	flagPatterns string
	flagBudget   int
	flagModel    string
	flagFormat   string
	flagOut      string
	flagFailOn   string
	flagRepo     string
	flagPublish  bool
	flagFreeform bool
	flagNoRedact bool
	flagNoCache  bool
)

func addReviewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagDir, "dir", ".", "Directory to review (also where .revet.json is read)")
	cmd.Flags().StringVar(&flagPatterns, "patterns", "", "Include file path globs (comma-separated)")
	cmd.Flags().IntVar(&flagBudget, "budget", 0, "Maximum content bytes sent to the model")
	cmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format (markdown, json)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&flagFailOn, "fail-on", "", "Fail on severity threshold (none, low, medium, high, critical)")
	cmd.Flags().StringVar(&flagRepo, "repo", "", "GitHub repository as owner/name (default: detect from git remote)")
	cmd.Flags().BoolVar(&flagPublish, "publish", false, "Publish the review to GitHub instead of writing it locally")
	cmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Bypass the response cache")
}

// buildOverrides turns set flags into config overrides. budgetKey names the
// config field --budget maps to, which differs between codebase and PR
// reviews.
func buildOverrides(budgetKey string) map[string]string {
	m := make(map[string]string)
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagFailOn != "" {
		m["failOn"] = flagFailOn
	}
	if flagRepo != "" {
		m["repo"] = flagRepo
	}
	if flagBudget > 0 {
		m[budgetKey] = strconv.Itoa(flagBudget)
	}
	return m
}

func splitComma(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func loadConfig(budgetKey string) (config.Config, error) {
	cfg, err := config.Load(flagDir, buildOverrides(budgetKey))
	if err != nil {
		return config.Config{}, err
	}
	if flagNoRedact {
		cfg.Redact = false
		fmt.Fprintln(os.Stderr, "WARNING: secret redaction is disabled")
	}
	if flagNoCache {
		cfg.Cache.Enabled = false
	}
	return cfg, nil
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Run an LLM review",
	Long:  "Review a codebase snapshot or a pull request diff. Use subcommands to pick the scope.",
}

var reviewCodebaseCmd = &cobra.Command{
	Use:   "codebase",
	Short: "Review source files under a directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig("budget")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitConfigError
			return nil
		}
		runCodebaseReview(cfg)
		return nil
	},
}

func runCodebaseReview(cfg config.Config) {
	patterns := cfg.Include
	if flagPatterns != "" {
		patterns = splitComma(flagPatterns)
	}

	filter := collect.NewFilter(flagDir, cfg.ExcludeDirs, cfg.SkipFiles)
	files, err := collect.Collect(flagDir, patterns, filter)
	if err != nil {
		fail(fmt.Errorf("collecting files: %w", err))
		return
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stdout, "No files found.")
		return
	}

	fmt.Fprintf(os.Stderr, "Model: %s\n\n", cfg.Model)
	fmt.Fprintf(os.Stderr, "Found %d files:\n", len(files))
	for i, f := range files {
		if i == 10 {
			fmt.Fprintf(os.Stderr, "  ... and %d more\n", len(files)-10)
			break
		}
		fmt.Fprintf(os.Stderr, "  - %s\n", f.Path)
	}
	fmt.Fprintln(os.Stderr)

	// Whole-file redaction by path policy happens before bundling so the
	// manifest never carries secret-bearing content. The engine still runs
	// its pattern pass over the assembled payload.
	if cfg.Redact {
		for i := range files {
			files[i].Content = redact.Content(files[i].Content, files[i].Path, cfg.RedactPaths)
		}
	}

	mode := review.ModeStructured
	format := bundle.FormatAnnotated
	if flagFreeform {
		mode = review.ModeFreeform
		format = bundle.FormatPlain
	}
	b := bundle.Build(files, cfg.ContentBudget, format)
	fmt.Fprintf(os.Stderr, "Content: %s chars (~%s tokens)\n",
		output.GroupDigits(len(b.Text)), output.GroupDigits(len(b.Text)/4))
	if b.Omitted > 0 {
		fmt.Fprintf(os.Stderr, "Omitted %d files over the content budget\n", b.Omitted)
	}
	fmt.Fprintln(os.Stderr)

	if flagPublish && cfg.Repository == "" {
		if repo, derr := github.DetectRepo(); derr == nil {
			cfg.Repository = repo
		}
	}
	if err := cfg.Require(flagPublish, false); err != nil {
		fail(err)
		return
	}

	if mode == review.ModeStructured {
		fmt.Fprintln(os.Stderr, "Getting structured review...")
	} else {
		fmt.Fprintf(os.Stderr, "Sending to %s...\n", cfg.Model)
	}

	rep, err := review.Run(context.Background(), cfg, review.Request{
		Mode:    mode,
		Content: b.Text,
		Files:   b.Total,
		Omitted: b.Omitted,
	})
	if err != nil {
		fail(err)
		return
	}
	if rep.Cached {
		fmt.Fprintln(os.Stderr, "Using cached response.")
	}
	if rep.Result != nil {
		fmt.Fprintln(os.Stderr)
		fmt.Fprintf(os.Stderr, "Found %d improvements\n", len(rep.Result.Improvements))
		fmt.Fprintf(os.Stderr, "Risk score: %d/100\n", rep.Result.RiskScore)
		fmt.Fprintln(os.Stderr)
	}

	if flagPublish {
		if err := publishIssue(cfg, rep); err != nil {
			fail(err)
			return
		}
	} else if err := output.WriteReport(rep, cfg.Format, flagOut); err != nil {
		fail(fmt.Errorf("writing output: %w", err))
		return
	}

	checkFailOn(cfg, rep)
}

func publishIssue(cfg config.Config, rep *review.Report) error {
	body, err := output.Render(rep)
	if err != nil {
		return err
	}
	gh, err := github.NewClient(cfg.GitHubToken, cfg.GitHubAPIURL)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "Creating issue...")
	issue, err := gh.CreateIssue(context.Background(), cfg.Repository, output.IssueTitle(rep), body, cfg.Labels)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "✓ Done! %s\n", issue.HTMLURL)
	return nil
}

func checkFailOn(cfg config.Config, rep *review.Report) {
	if cfg.FailOn == "none" || cfg.FailOn == "" || rep.Result == nil {
		return
	}
	for _, imp := range rep.Result.Improvements {
		if review.MeetsThreshold(imp.Severity, cfg.FailOn) {
			exitCode = ExitFindings
			return
		}
	}
}

var reviewPRCmd = &cobra.Command{
	Use:   "pr [number]",
	Short: "Review a pull request diff and optionally comment on it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig("diffBudget")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitConfigError
			return nil
		}
		if len(args) == 1 {
			n, aerr := strconv.Atoi(args[0])
			if aerr != nil || n <= 0 {
				fmt.Fprintf(os.Stderr, "Error: invalid PR number: %s\n", args[0])
				exitCode = ExitUsageError
				return nil
			}
			cfg.PRNumber = n
		}
		runPRReview(cfg)
		return nil
	},
}

func runPRReview(cfg config.Config) {
	if cfg.Repository == "" {
		if repo, derr := github.DetectRepo(); derr == nil {
			cfg.Repository = repo
		}
	}
	// Fetching the diff already needs the token and repo, publish or not.
	if err := cfg.Require(true, true); err != nil {
		fail(err)
		return
	}

	gh, err := github.NewClient(cfg.GitHubToken, cfg.GitHubAPIURL)
	if err != nil {
		fail(err)
		return
	}

	ctx := context.Background()
	fmt.Fprintf(os.Stderr, "Reviewing PR #%d in %s...\n", cfg.PRNumber, cfg.Repository)

	files, err := gh.PRFiles(ctx, cfg.Repository, cfg.PRNumber)
	if err != nil {
		fail(err)
		return
	}

	filter := collect.NewFilter(flagDir, cfg.ExcludeDirs, cfg.SkipFiles)
	kept := github.FilterFiles(files, filter.Include)
	if len(kept) == 0 {
		fmt.Fprintln(os.Stdout, "No changes to review.")
		return
	}

	added, deleted := github.DiffStats(kept)
	fmt.Fprintf(os.Stderr, "Changed files: %d (+%d/-%d)\n", len(kept), added, deleted)

	diff := github.AssembleDiff(kept, cfg.DiffBudget)
	fmt.Fprintf(os.Stderr, "Diff size: %d characters\n", len(diff))
	fmt.Fprintf(os.Stderr, "Sending to %s...\n", cfg.Model)

	rep, err := review.Run(ctx, cfg, review.Request{
		Mode:    review.ModeDiff,
		Content: diff,
		Files:   len(kept),
	})
	if err != nil {
		fail(err)
		return
	}
	if rep.Cached {
		fmt.Fprintln(os.Stderr, "Using cached response.")
	}

	if flagPublish {
		body, rerr := output.Render(rep)
		if rerr != nil {
			fail(rerr)
			return
		}
		fmt.Fprintln(os.Stderr, "Posting review comment...")
		if err := gh.PostIssueComment(ctx, cfg.Repository, cfg.PRNumber, body); err != nil {
			fail(err)
			return
		}
		fmt.Fprintln(os.Stderr, "Done!")
	} else if err := output.WriteReport(rep, cfg.Format, flagOut); err != nil {
		fail(fmt.Errorf("writing output: %w", err))
		return
	}
}

func init() {
	reviewCmd.AddCommand(reviewCodebaseCmd)
	reviewCmd.AddCommand(reviewPRCmd)

	for _, cmd := range []*cobra.Command{reviewCodebaseCmd, reviewPRCmd} {
		addReviewFlags(cmd)
	}

	// Codebase-specific flags
	reviewCodebaseCmd.Flags().BoolVar(&flagFreeform, "freeform", false, "Narrative review instead of structured JSON")
}
