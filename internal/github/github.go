package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

const defaultAPIURL = "https://api.github.com"

// Client provides access to the GitHub REST API.
type Client struct {
	token   string
	apiURL  string
	httpCli *http.Client
}

// NewClient creates a new GitHub client. The token is required; an empty
// apiURL falls back to api.github.com.
func NewClient(token, apiURL string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("GitHub token is not set")
	}
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	return &Client{
		token:   token,
		apiURL:  strings.TrimRight(apiURL, "/"),
		httpCli: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// do sends one API request. A non-nil payload is marshaled as the JSON body;
// a non-nil out receives the unmarshaled response.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return fmt.Errorf("calling GitHub: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == 401 || resp.StatusCode == 403 {
		return fmt.Errorf("authentication failed: %s", string(data))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("GitHub API error (status %d): %s", resp.StatusCode, string(data))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("parsing response: %w", err)
		}
	}
	return nil
}

// Issue is the subset of the created-issue response the caller reports.
type Issue struct {
	Number  int    `json:"number"`
	HTMLURL string `json:"html_url"`
}

// CreateIssue opens an issue in repo ("owner/name" form).
func (c *Client) CreateIssue(ctx context.Context, repo, title, body string, labels []string) (*Issue, error) {
	payload := map[string]any{
		"title":  title,
		"body":   body,
		"labels": labels,
	}
	var issue Issue
	if err := c.do(ctx, "POST", fmt.Sprintf("/repos/%s/issues", repo), payload, &issue); err != nil {
		return nil, fmt.Errorf("creating issue: %w", err)
	}
	return &issue, nil
}

// PostIssueComment comments on an issue or pull request. PR comments are
// issue comments in the GitHub API.
func (c *Client) PostIssueComment(ctx context.Context, repo string, number int, body string) error {
	payload := map[string]string{"body": body}
	path := fmt.Sprintf("/repos/%s/issues/%d/comments", repo, number)
	if err := c.do(ctx, "POST", path, payload, nil); err != nil {
		return fmt.Errorf("posting comment on #%d: %w", number, err)
	}
	return nil
}

// PRFile is one changed file in a pull request. Patch is empty for binary
// files and for files GitHub considers too large to inline.
type PRFile struct {
	Filename string `json:"filename"`
	Status   string `json:"status"`
	Patch    string `json:"patch"`
}

// PRFiles fetches every changed file in a pull request, following
// pagination.
func (c *Client) PRFiles(ctx context.Context, repo string, number int) ([]PRFile, error) {
	var all []PRFile
	for page := 1; ; page++ {
		path := fmt.Sprintf("/repos/%s/pulls/%d/files?per_page=100&page=%d", repo, number, page)
		var batch []PRFile
		if err := c.do(ctx, "GET", path, nil, &batch); err != nil {
			return nil, fmt.Errorf("fetching files for PR #%d: %w", number, err)
		}
		all = append(all, batch...)
		if len(batch) < 100 {
			return all, nil
		}
	}
}

var (
	httpsRemoteRe = regexp.MustCompile(`https?://[^/]+/([^/]+)/([^/.\s]+)`)
	sshRemoteRe   = regexp.MustCompile(`[^@]+@[^:]+:([^/]+)/([^/.\s]+)`)
)

// DetectRepo parses "owner/name" from the git remote origin URL.
func DetectRepo() (string, error) {
	out, err := exec.Command("git", "remote", "get-url", "origin").Output()
	if err != nil {
		return "", fmt.Errorf("cannot detect repo: git remote get-url origin failed: %w", err)
	}
	return ParseRemoteURL(strings.TrimSpace(string(out)))
}

// ParseRemoteURL extracts "owner/name" from a git remote URL.
func ParseRemoteURL(url string) (string, error) {
	url = strings.TrimSuffix(url, ".git")

	if m := httpsRemoteRe.FindStringSubmatch(url); len(m) == 3 {
		return m[1] + "/" + m[2], nil
	}
	if m := sshRemoteRe.FindStringSubmatch(url); len(m) == 3 {
		return m[1] + "/" + m[2], nil
	}
	return "", fmt.Errorf("cannot parse owner/repo from remote URL: %s", url)
}
