package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// FileName is the repository-local config file revet reads from the review
// root.
const FileName = ".revet.json"

// Config is the merged configuration the pipeline runs with.
type Config struct {
	Model          string      `json:"model,omitempty"`
	BaseURL        string      `json:"baseURL,omitempty"`
	Include        []string    `json:"include,omitempty"`
	ExcludeDirs    []string    `json:"excludeDirs,omitempty"`
	SkipFiles      []string    `json:"skipFiles,omitempty"`
	ContentBudget  int         `json:"contentBudget,omitempty"`
	DiffBudget     int         `json:"diffBudget,omitempty"`
	Temperature    float64     `json:"temperature,omitempty"`
	TimeoutSeconds int         `json:"timeoutSeconds,omitempty"`
	Format         string      `json:"format,omitempty"`
	FailOn         string      `json:"failOn,omitempty"`
	Labels         []string    `json:"labels,omitempty"`
	Redact         bool        `json:"redact"`
	RedactPaths    []string    `json:"redactPaths,omitempty"`
	Cache          CacheConfig `json:"cache"`

	// Credentials and CI identity come from the environment only and are
	// never written to the config file.
	APIKey       string `json:"-"`
	GitHubToken  string `json:"-"`
	GitHubAPIURL string `json:"-"`
	Repository   string `json:"-"`
	PRNumber     int    `json:"-"`
}

// CacheConfig controls response caching.
type CacheConfig struct {
	Enabled    bool   `json:"enabled"`
	Dir        string `json:"dir,omitempty"`
	TTLSeconds int    `json:"ttlSeconds"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Model: "gpt-5.2-codex-medium",
		Include: []string{
			"**/*.go", "**/*.rs", "**/*.py",
			"**/*.ts", "**/*.tsx", "**/*.js", "**/*.jsx", "**/*.mjs",
		},
		ExcludeDirs: []string{
			"node_modules", "target", "dist", "build", ".git",
			"__pycache__", ".venv", "venv", ".next", ".turbo",
		},
		SkipFiles:      []string{"vite-env.d.ts", "auto-imports.d.ts", "components.d.ts"},
		ContentBudget:  120000,
		DiffBudget:     100000,
		Temperature:    0.3,
		TimeoutSeconds: 420,
		Format:         "markdown",
		FailOn:         "none",
		Labels:         []string{"review"},
		Redact:         true,
		RedactPaths:    []string{"**/.env", "**/*secrets*", "**/*.pem"},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: 86400,
		},
	}
}

// Path returns the config file path under the given review root.
func Path(root string) string {
	if root == "" {
		root = "."
	}
	return filepath.Join(root, FileName)
}

// LoadFile loads config from root's .revet.json. A missing file returns a
// zero Config and nil error.
func LoadFile(root string) (Config, error) {
	data, err := os.ReadFile(Path(root))
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to root's .revet.json.
func Save(root string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(Path(root), append(data, '\n'), 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <-
// overrides. The overrides map comes from CLI flags; only non-zero flag
// values should be present in it.
func Load(root string, overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile(root)
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.BaseURL != "" {
		dst.BaseURL = src.BaseURL
	}
	if len(src.Include) > 0 {
		dst.Include = src.Include
	}
	if len(src.ExcludeDirs) > 0 {
		dst.ExcludeDirs = src.ExcludeDirs
	}
	if len(src.SkipFiles) > 0 {
		dst.SkipFiles = src.SkipFiles
	}
	if src.ContentBudget > 0 {
		dst.ContentBudget = src.ContentBudget
	}
	if src.DiffBudget > 0 {
		dst.DiffBudget = src.DiffBudget
	}
	if src.Temperature > 0 {
		dst.Temperature = src.Temperature
	}
	if src.TimeoutSeconds > 0 {
		dst.TimeoutSeconds = src.TimeoutSeconds
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.FailOn != "" {
		dst.FailOn = src.FailOn
	}
	if len(src.Labels) > 0 {
		dst.Labels = src.Labels
	}
	if len(src.RedactPaths) > 0 {
		dst.RedactPaths = src.RedactPaths
	}
	if src.Cache.Dir != "" {
		dst.Cache.Dir = src.Cache.Dir
	}
	if src.Cache.TTLSeconds > 0 {
		dst.Cache.TTLSeconds = src.Cache.TTLSeconds
	}
	// JSON cannot distinguish an explicit false from an unset bool, so the
	// file can only turn these on; the --no-redact and --no-cache flags
	// turn them off.
	dst.Redact = src.Redact || dst.Redact
	dst.Cache.Enabled = src.Cache.Enabled || dst.Cache.Enabled
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.GitHubToken = os.Getenv("GITHUB_TOKEN")
	cfg.GitHubAPIURL = os.Getenv("GITHUB_API_URL")
	if v := os.Getenv("GITHUB_REPOSITORY"); v != "" {
		cfg.Repository = v
	}
	if v := os.Getenv("PR_NUMBER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.PRNumber = n
		}
	}
	if v := os.Getenv("REVET_FAIL_ON"); v != "" {
		cfg.FailOn = v
	}
	if v := os.Getenv("REVET_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("REVET_CONTENT_BUDGET"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ContentBudget = n
		}
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if overrides == nil {
		return
	}
	if v, ok := overrides["model"]; ok && v != "" {
		cfg.Model = v
	}
	if v, ok := overrides["format"]; ok && v != "" {
		cfg.Format = v
	}
	if v, ok := overrides["failOn"]; ok && v != "" {
		cfg.FailOn = v
	}
	if v, ok := overrides["repo"]; ok && v != "" {
		cfg.Repository = v
	}
	if v, ok := overrides["budget"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ContentBudget = n
		}
	}
	if v, ok := overrides["diffBudget"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DiffBudget = n
		}
	}
}

// MissingError reports required settings that are absent for the requested
// operations.
type MissingError struct {
	Names []string
}

func (e *MissingError) Error() string {
	return "missing required configuration: " + strings.Join(e.Names, ", ")
}

// Require checks that every setting the selected operations need is present.
// It runs before any network activity so misconfiguration fails fast.
// publish covers GitHub writes (issues, comments); pr additionally needs a
// pull request number.
func (c Config) Require(publish, pr bool) error {
	var missing []string
	if c.APIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if publish {
		if c.GitHubToken == "" {
			missing = append(missing, "GITHUB_TOKEN")
		}
		if c.Repository == "" {
			missing = append(missing, "GITHUB_REPOSITORY")
		}
	}
	if pr && c.PRNumber == 0 {
		missing = append(missing, "PR_NUMBER")
	}
	if len(missing) > 0 {
		return &MissingError{Names: missing}
	}
	return nil
}

// SetField sets a single config field by key name. Returns an error if the
// key is unknown or the value does not parse.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "model":
		cfg.Model = value
	case "baseURL":
		cfg.BaseURL = value
	case "format":
		cfg.Format = value
	case "failOn":
		cfg.FailOn = value
	case "contentBudget":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("contentBudget must be an integer: %w", err)
		}
		cfg.ContentBudget = n
	case "diffBudget":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("diffBudget must be an integer: %w", err)
		}
		cfg.DiffBudget = n
	case "timeoutSeconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("timeoutSeconds must be an integer: %w", err)
		}
		cfg.TimeoutSeconds = n
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
