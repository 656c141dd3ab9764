package lint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/podfeed/internal/audit"
	"github.com/hitoshi/podfeed/internal/inspect"
	"github.com/hitoshi/podfeed/internal/metrics"
	"github.com/hitoshi/podfeed/internal/model"
	"github.com/hitoshi/podfeed/internal/security"
)

// Analyzer はフィード本文をデコードして検査するインターフェース。
type Analyzer interface {
	Analyze(ctx context.Context, source inspect.Source, sourceURL string, body []byte) (*inspect.Result, error)
}

// SSRFValidator はSSRF検証のインターフェース。
type SSRFValidator interface {
	ValidateURL(rawURL string) error
	NewSafeClient(timeout time.Duration, maxResponseSize int64) *http.Client
}

// Fetcher は検査対象フィードを条件付きGETで取得し、フォールバックを検査する。
// 結果に応じて対象の状態（次回検査時刻、連続エラー数、停止）を更新する。
type Fetcher struct {
	analyzer    Analyzer
	ssrfGuard   SSRFValidator
	metrics     metrics.MetricsCollector
	logger      *slog.Logger
	timeout     time.Duration
	maxBodySize int64
	interval    time.Duration
	now         func() time.Time
}

// NewFetcher はFetcherの新しいインスタンスを生成する。
// intervalは成功時およびパース失敗時の再検査間隔。
func NewFetcher(
	analyzer Analyzer,
	ssrfGuard SSRFValidator,
	collector metrics.MetricsCollector,
	logger *slog.Logger,
	timeout time.Duration,
	maxBodySize int64,
	interval time.Duration,
) *Fetcher {
	return &Fetcher{
		analyzer:    analyzer,
		ssrfGuard:   ssrfGuard,
		metrics:     collector,
		logger:      logger,
		timeout:     timeout,
		maxBodySize: maxBodySize,
		interval:    interval,
		now:         time.Now,
	}
}

// Lint は対象フィードを取得して検査し、結果に応じて対象の状態を更新する。
// HTTPステータスやパース失敗は状態に反映してnilを返す。SSRF検証とリクエスト自体の失敗はエラーを返す。
func (f *Fetcher) Lint(ctx context.Context, target *model.LintTarget) error {
	start := time.Now()

	if err := f.ssrfGuard.ValidateURL(target.FeedURL); err != nil {
		f.logger.Error("SSRF検証に失敗しました",
			slog.String("feed_url", target.FeedURL),
			slog.String("error", err.Error()),
		)
		ApplyStop(target, fmt.Sprintf("SSRF検証失敗: %s", err.Error()))
		f.metrics.RecordFetchFailure("ssrf")
		return fmt.Errorf("SSRF検証に失敗: %w", err)
	}

	client := f.ssrfGuard.NewSafeClient(f.timeout, f.maxBodySize)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.FeedURL, nil)
	if err != nil {
		return fmt.Errorf("リクエスト作成に失敗: %w", err)
	}

	req.Header.Set("User-Agent", inspect.UserAgent)
	req.Header.Set("Accept", inspect.AcceptHeader)

	// 条件付きGET
	if target.ETag != "" {
		req.Header.Set("If-None-Match", target.ETag)
	}
	if target.LastModified != "" {
		req.Header.Set("If-Modified-Since", target.LastModified)
	}

	resp, err := client.Do(req)
	if err != nil {
		f.logger.Error("HTTPリクエストに失敗しました",
			slog.String("feed_url", target.FeedURL),
			slog.String("error", err.Error()),
		)
		f.metrics.RecordFetchFailure("request")
		ApplyBackoff(target, fmt.Sprintf("HTTPリクエスト失敗: %s", err.Error()), f.now())
		return fmt.Errorf("HTTPリクエスト失敗: %w", err)
	}
	defer resp.Body.Close()

	duration := time.Since(start)
	f.metrics.RecordFetchLatency(duration)
	f.metrics.RecordHTTPStatus(resp.StatusCode)

	result := ClassifyHTTPStatus(resp.StatusCode)
	switch result {
	case FetchResultNotModified:
		f.logger.Info("フィードは未変更です（304）",
			slog.String("feed_url", target.FeedURL),
			slog.Int("http_status", resp.StatusCode),
			slog.Float64("duration_ms", float64(duration.Milliseconds())),
		)
		f.metrics.RecordFetchSuccess()
		ApplySuccess(target, f.interval, f.now())
		return nil

	case FetchResultStop:
		reason := fmt.Sprintf("HTTPステータス %d により検査を停止しました", resp.StatusCode)
		f.logger.Warn("フィード検査を停止します",
			slog.String("feed_url", target.FeedURL),
			slog.Int("http_status", resp.StatusCode),
			slog.String("reason", reason),
		)
		f.metrics.RecordFetchFailure("status")
		ApplyStop(target, reason)
		return nil

	case FetchResultBackoff:
		f.logger.Warn("フィード検査にバックオフを適用します",
			slog.String("feed_url", target.FeedURL),
			slog.Int("http_status", resp.StatusCode),
			slog.Int("consecutive_errors", target.ConsecutiveErrors+1),
		)
		f.metrics.RecordFetchFailure("status")
		ApplyBackoff(target, fmt.Sprintf("HTTPステータス %d によりバックオフを適用しました", resp.StatusCode), f.now())
		return nil

	case FetchResultOK:
		// 以下で処理を続行
	default:
		f.logger.Warn("予期しないHTTPステータスコード",
			slog.String("feed_url", target.FeedURL),
			slog.Int("http_status", resp.StatusCode),
		)
		f.metrics.RecordFetchFailure("status")
		ApplyBackoff(target, fmt.Sprintf("予期しないHTTPステータス: %d", resp.StatusCode), f.now())
		return nil
	}

	body, err := inspect.ReadLimited(resp.Body, f.maxBodySize)
	if err != nil {
		f.logger.Error("レスポンスボディの読み取りに失敗しました",
			slog.String("feed_url", target.FeedURL),
			slog.String("error", err.Error()),
		)
		if errors.Is(err, security.ErrResponseTooLarge) {
			f.metrics.RecordFetchFailure("too_large")
			ApplyParseFailure(target, fmt.Sprintf("レスポンスが上限 %d バイトを超えています", f.maxBodySize), f.interval, f.now())
			return nil
		}
		f.metrics.RecordFetchFailure("read")
		ApplyBackoff(target, fmt.Sprintf("レスポンス読み取り失敗: %s", err.Error()), f.now())
		return nil
	}
	f.metrics.RecordFetchSuccess()

	if etag := resp.Header.Get("ETag"); etag != "" {
		target.ETag = etag
	}
	if lastMod := resp.Header.Get("Last-Modified"); lastMod != "" {
		target.LastModified = lastMod
	}

	analysis, err := f.analyzer.Analyze(ctx, inspect.SourceLint, target.FeedURL, body)
	if err != nil {
		var apiErr *model.APIError
		if !errors.As(err, &apiErr) {
			return fmt.Errorf("フィードの検査に失敗: %w", err)
		}
		// パース失敗はカウントして継続する
		ApplyParseFailure(target, apiErr.Message, f.interval, f.now())
		return nil
	}

	target.LastFallbacks = analysis.Summary.Total
	target.LastItemCount = analysis.ItemCount
	ApplySuccess(target, f.interval, f.now())

	f.logger.Info("フィード検査が完了しました",
		slog.String("inspection_id", analysis.ID.String()),
		slog.String("feed_url", target.FeedURL),
		slog.Int("http_status", resp.StatusCode),
		slog.Int("items", analysis.ItemCount),
		slog.Int("fallbacks", analysis.Summary.Total),
		summaryGroup(analysis.Summary),
		slog.Float64("duration_ms", float64(duration.Milliseconds())),
	)

	return nil
}

// summaryGroup は種類別のフォールバック件数をログ属性のグループにする。
func summaryGroup(s audit.Summary) slog.Attr {
	attrs := make([]any, 0, len(s.ByKind))
	for _, k := range audit.Kinds() {
		attrs = append(attrs, slog.Int(string(k), s.ByKind[k]))
	}
	return slog.Group("by_kind", attrs...)
}
