package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultBaseURL is used when no endpoint is configured.
const DefaultBaseURL = "https://api.openai.com/v1"

// TransportError wraps a model call failure that survived the retry budget.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "model call failed: " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// Client calls the chat completions endpoint of an OpenAI-compatible API.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	httpCli *http.Client
	policy  Policy
	logw    io.Writer
}

// NewClient builds a Client for one model behind an OpenAI-compatible base
// URL (without the /chat/completions suffix). An empty baseURL selects
// [DefaultBaseURL]. Attempt telemetry goes to stderr.
func NewClient(apiKey, model, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCli: &http.Client{Timeout: timeout},
		policy:  DefaultPolicy(),
		logw:    os.Stderr,
	}
	c.policy.Logw = c.logw
	return c
}

// Request is a single chat completion call.
type Request struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Response carries the assistant text and token accounting.
type Response struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// Complete sends the prompt and returns the reply, retrying every transport
// failure under the client's policy. Each attempt logs a telemetry line.
// When the budget is spent the last error comes back wrapped in a
// *TransportError.
func (c *Client) Complete(ctx context.Context, req Request) (Response, error) {
	body := chatRequest{
		Model:     c.model,
		Messages:  []chatMessage{{Role: "user", Content: req.Prompt}},
		MaxTokens: req.MaxTokens,
	}
	if req.Temperature > 0 {
		t := req.Temperature
		body.Temperature = &t
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return Response{}, fmt.Errorf("marshaling request: %w", err)
	}

	var resp Response
	err = c.policy.Do(ctx, func(attempt int) error {
		fmt.Fprintf(c.logw, "  Attempt %d/%d...\n", attempt, c.policy.MaxAttempts)
		start := time.Now()
		r, sendErr := c.send(ctx, payload)
		elapsed := time.Since(start).Seconds()
		if sendErr != nil {
			fmt.Fprintf(c.logw, "  ✗ Failed after %.1fs: %v\n", elapsed, sendErr)
			return sendErr
		}
		fmt.Fprintf(c.logw, "  ✓ Success in %.1fs (%d in / %d out)\n",
			elapsed, r.PromptTokens, r.CompletionTokens)
		resp = r
		return nil
	})
	if err != nil {
		return Response{}, &TransportError{Err: err}
	}
	return resp, nil
}

func (c *Client) send(ctx context.Context, payload []byte) (Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return Response{}, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	httpResp, err := c.httpCli.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("sending request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return Response{}, fmt.Errorf("API error (status %d): %s", httpResp.StatusCode, string(respBody))
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return Response{}, fmt.Errorf("parsing response: %w", err)
	}
	if len(result.Choices) == 0 {
		return Response{}, fmt.Errorf("no choices in response")
	}
	content := result.Choices[0].Message.Content
	if content == "" {
		return Response{}, fmt.Errorf("empty text content in API response")
	}

	return Response{
		Content:          content,
		PromptTokens:     result.Usage.PromptTokens,
		CompletionTokens: result.Usage.CompletionTokens,
	}, nil
}
