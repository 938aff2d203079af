package review

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/revetci/revet/internal/cache"
	"github.com/revetci/revet/internal/config"
	"github.com/revetci/revet/internal/llm"
	"github.com/revetci/revet/internal/redact"
)

// Request is one assembled review invocation. Content is the budgeted
// source bundle or the assembled PR diff; the scope fields carry what
// collection found so reports can state it.
type Request struct {
	Mode    Mode
	Content string
	Files   int
	Omitted int
}

// Report is the outcome of a review run.
type Report struct {
	Mode    Mode
	Model   string
	Files   int
	Chars   int
	Omitted int
	// Raw is the model's reply as returned, or as cached.
	Raw string
	// Result is set in structured mode only.
	Result  *ReviewResult
	Cached  bool
	LLMMs   int64
	TotalMs int64
}

// Run executes the pipeline for an assembled request: redact, build the
// prompt, consult the response cache, call the model, and in structured
// mode extract and validate the JSON result. Extraction runs once per
// transport success; a malformed reply comes back as an error without
// another model call.
func Run(ctx context.Context, cfg config.Config, req Request) (*Report, error) {
	start := time.Now()

	content := req.Content
	if cfg.Redact {
		content = redact.Secrets(content)
	}

	prompt := BuildPrompt(req.Mode, content)

	c, err := cache.New(cfg.Cache.Enabled, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	rep := &Report{
		Mode:    req.Mode,
		Model:   cfg.Model,
		Files:   req.Files,
		Chars:   len(req.Content),
		Omitted: req.Omitted,
	}

	key := cache.Key(cfg.Model, prompt)
	raw, hit := c.Get(key)
	if hit {
		rep.Cached = true
	} else {
		client := llm.NewClient(cfg.APIKey, cfg.Model, cfg.BaseURL,
			time.Duration(cfg.TimeoutSeconds)*time.Second)
		llmStart := time.Now()
		resp, err := client.Complete(ctx, llm.Request{
			Prompt:      prompt,
			MaxTokens:   maxTokensFor(req.Mode),
			Temperature: cfg.Temperature,
		})
		if err != nil {
			return nil, err
		}
		rep.LLMMs = time.Since(llmStart).Milliseconds()
		raw = resp.Content
		if err := c.Put(key, raw); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cache write failed: %v\n", err)
		}
	}

	rep.Raw = raw
	if req.Mode == ModeStructured {
		result, err := ExtractResult(raw)
		if err != nil {
			return nil, err
		}
		rep.Result = result
	}

	rep.TotalMs = time.Since(start).Milliseconds()
	return rep, nil
}
