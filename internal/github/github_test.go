package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(server *httptest.Server) *Client {
	return &Client{
		token:   "test-token",
		apiURL:  server.URL,
		httpCli: server.Client(),
	}
}

func TestCreateIssue(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Method = %q, want POST", r.Method)
		}
		if r.URL.Path != "/repos/owner/repo/issues" {
			t.Errorf("Path = %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
		}

		var payload struct {
			Title  string   `json:"title"`
			Body   string   `json:"body"`
			Labels []string `json:"labels"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if payload.Title != "🟢 Code Review: 3 improvements identified" {
			t.Errorf("title = %q", payload.Title)
		}
		if payload.Body != "## body" {
			t.Errorf("body = %q", payload.Body)
		}
		if len(payload.Labels) != 1 || payload.Labels[0] != "review" {
			t.Errorf("labels = %v", payload.Labels)
		}

		w.WriteHeader(201)
		w.Write([]byte(`{"number": 7, "html_url": "https://github.com/owner/repo/issues/7"}`))
	}))
	defer server.Close()

	issue, err := testClient(server).CreateIssue(context.Background(),
		"owner/repo", "🟢 Code Review: 3 improvements identified", "## body", []string{"review"})
	if err != nil {
		t.Fatalf("CreateIssue error: %v", err)
	}
	if issue.Number != 7 {
		t.Errorf("Number = %d, want 7", issue.Number)
	}
	if issue.HTMLURL != "https://github.com/owner/repo/issues/7" {
		t.Errorf("HTMLURL = %q", issue.HTMLURL)
	}
}

func TestCreateIssue_AuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(401)
		w.Write([]byte(`{"message":"Bad credentials"}`))
	}))
	defer server.Close()

	_, err := testClient(server).CreateIssue(context.Background(), "owner/repo", "t", "b", nil)
	if err == nil {
		t.Fatal("expected error for 401")
	}
	if got := err.Error(); got != `creating issue: authentication failed: {"message":"Bad credentials"}` {
		t.Errorf("error = %q", got)
	}
}

func TestPostIssueComment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/owner/repo/issues/42/comments" {
			t.Errorf("Path = %q", r.URL.Path)
		}
		var payload struct {
			Body string `json:"body"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if payload.Body != "## AI Code Review" {
			t.Errorf("body = %q", payload.Body)
		}
		w.WriteHeader(201)
		w.Write([]byte(`{"id": 1}`))
	}))
	defer server.Close()

	err := testClient(server).PostIssueComment(context.Background(), "owner/repo", 42, "## AI Code Review")
	if err != nil {
		t.Fatalf("PostIssueComment error: %v", err)
	}
}

func TestPRFiles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/owner/repo/pulls/42/files" {
			t.Errorf("Path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("per_page") != "100" {
			t.Errorf("per_page = %q", r.URL.Query().Get("per_page"))
		}
		files := []PRFile{
			{Filename: "main.go", Status: "modified", Patch: "@@ -1 +1 @@\n-a\n+b"},
			{Filename: "image.png", Status: "added"},
		}
		json.NewEncoder(w).Encode(files)
	}))
	defer server.Close()

	files, err := testClient(server).PRFiles(context.Background(), "owner/repo", 42)
	if err != nil {
		t.Fatalf("PRFiles error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("files count = %d, want 2", len(files))
	}
	if files[0].Filename != "main.go" || files[1].Filename != "image.png" {
		t.Errorf("files = %v", files)
	}
	if files[1].Patch != "" {
		t.Errorf("binary file should have no patch, got %q", files[1].Patch)
	}
}

func TestPRFiles_Pagination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		var files []PRFile
		switch page {
		case "1":
			for i := 0; i < 100; i++ {
				files = append(files, PRFile{Filename: fmt.Sprintf("file%03d.go", i)})
			}
		case "2":
			files = []PRFile{{Filename: "last.go"}}
		default:
			t.Errorf("unexpected page %q", page)
		}
		json.NewEncoder(w).Encode(files)
	}))
	defer server.Close()

	files, err := testClient(server).PRFiles(context.Background(), "owner/repo", 1)
	if err != nil {
		t.Fatalf("PRFiles error: %v", err)
	}
	if len(files) != 101 {
		t.Fatalf("files count = %d, want 101", len(files))
	}
	if files[100].Filename != "last.go" {
		t.Errorf("last file = %q", files[100].Filename)
	}
}

func TestPRFiles_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
		w.Write([]byte(`{"message":"Not Found"}`))
	}))
	defer server.Close()

	_, err := testClient(server).PRFiles(context.Background(), "owner/repo", 99)
	if err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestNewClient(t *testing.T) {
	c, err := NewClient("tok", "")
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	if c.apiURL != defaultAPIURL {
		t.Errorf("apiURL = %q, want %q", c.apiURL, defaultAPIURL)
	}

	c, err = NewClient("tok", "https://ghe.example.com/api/v3/")
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	if c.apiURL != "https://ghe.example.com/api/v3" {
		t.Errorf("apiURL = %q, trailing slash should be trimmed", c.apiURL)
	}

	if _, err := NewClient("", ""); err == nil {
		t.Error("NewClient should fail without a token")
	}
}

func TestParseRemoteURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{name: "HTTPS", url: "https://github.com/revetci/revet.git", want: "revetci/revet"},
		{name: "HTTPS no .git", url: "https://github.com/revetci/revet", want: "revetci/revet"},
		{name: "SSH", url: "git@github.com:revetci/revet.git", want: "revetci/revet"},
		{name: "SSH no .git", url: "git@github.com:revetci/revet", want: "revetci/revet"},
		{name: "invalid", url: "not-a-url", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRemoteURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr = %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got != tt.want {
				t.Errorf("repo = %q, want %q", got, tt.want)
			}
		})
	}
}
