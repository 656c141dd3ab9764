package app

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/hitoshi/podfeed/internal/config"
)

// mockSSRFGuard はテストサーバーへの接続を許可するSSRFGuard。
type mockSSRFGuard struct{}

func (mockSSRFGuard) ValidateURL(string) error { return nil }

func (mockSSRFGuard) NewSafeClient(timeout time.Duration, _ int64) *http.Client {
	return &http.Client{Timeout: timeout}
}

const runFeed = `<?xml version="1.0"?>
<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
  <channel>
    <title>Run Show</title>
    <itunes:explicit>yes</itunes:explicit>
    <item><title>Episode 1</title></item>
  </channel>
</rss>`

func newLintConfig(t *testing.T, feeds ...string) *config.Config {
	t.Helper()
	t.Setenv("LINT_FEEDS", strings.Join(feeds, ","))
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load() がエラーを返した: %v", err)
	}
	return cfg
}

func TestRun_LintWithoutFeeds_ReturnsError(t *testing.T) {
	t.Setenv("LINT_FEEDS", "")

	var buf bytes.Buffer
	err := Run(&buf, []string{"lint"})
	if err == nil || !strings.Contains(err.Error(), "LINT_FEEDS") {
		t.Fatalf("LINT_FEEDS未設定はエラーになるべき: %v", err)
	}
}

func TestRun_WorkerWithoutFeeds_ReturnsError(t *testing.T) {
	t.Setenv("LINT_FEEDS", "")

	var buf bytes.Buffer
	if err := Run(&buf, []string{"worker"}); err == nil {
		t.Fatal("LINT_FEEDS未設定はエラーになるべき")
	}
}

func TestRun_WithInvalidEnv_ReturnsError(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")

	var buf bytes.Buffer
	if err := Run(&buf, []string{"serve"}); err == nil {
		t.Fatal("Run with invalid env should return error")
	}
}

func TestRunLint_ReportsEachFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, runFeed)
	}))
	defer server.Close()

	cfg := newLintConfig(t, server.URL+"/feed.xml")

	var out bytes.Buffer
	if err := runLint(context.Background(), cfg, mockSSRFGuard{}, &out); err != nil {
		t.Fatalf("runLint() がエラーを返した: %v", err)
	}

	report := out.String()
	for _, want := range []string{server.URL + "/feed.xml", "active", "Fallbacks"} {
		if !strings.Contains(report, want) {
			t.Errorf("レポートに %q が含まれるべき:\n%s", want, report)
		}
	}
}

func TestRunLint_FailedFeedReturnsError(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, runFeed)
	}))
	defer ok.Close()
	gone := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	}))
	defer gone.Close()

	cfg := newLintConfig(t, ok.URL, gone.URL)

	var out bytes.Buffer
	err := runLint(context.Background(), cfg, mockSSRFGuard{}, &out)
	if err == nil || !strings.Contains(err.Error(), "1 of 2") {
		t.Fatalf("失敗したフィードがあればエラーを返すべき: %v", err)
	}
	if !strings.Contains(out.String(), "stopped") {
		t.Errorf("停止したフィードがレポートに含まれるべき:\n%s", out.String())
	}
}

func TestRunServe_ShutsDownOnCancel(t *testing.T) {
	t.Setenv("SERVER_PORT", "0")
	t.Setenv("LINT_FEEDS", "")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load() がエラーを返した: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := runServe(ctx, cfg, mockSSRFGuard{}); err != nil {
		t.Errorf("キャンセル時は正常終了するべき: %v", err)
	}
}

func TestRunHealthcheck(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()

	if err := runHealthcheck(portOf(t, healthy.URL)); err != nil {
		t.Errorf("正常なサーバーではnilを返すべき: %v", err)
	}

	unhealthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer unhealthy.Close()

	if err := runHealthcheck(portOf(t, unhealthy.URL)); err == nil {
		t.Error("503ではエラーを返すべき")
	}
}

func portOf(t *testing.T, rawURL string) string {
	t.Helper()
	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("url.Parse: %v", err)
	}
	_, port, err := net.SplitHostPort(u.Host)
	if err != nil {
		t.Fatalf("SplitHostPort: %v", err)
	}
	return port
}
