// Package inspect はフィードの取得・デコード・フォールバック検査をまとめて行う。
package inspect

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/podfeed/internal/audit"
	"github.com/hitoshi/podfeed/internal/feed"
	"github.com/hitoshi/podfeed/internal/metrics"
	"github.com/hitoshi/podfeed/internal/model"
	"github.com/hitoshi/podfeed/internal/security"
	"github.com/hitoshi/podfeed/internal/xmltree"
)

// Source は検査対象の入力元。
type Source string

const (
	// SourceBody はリクエストボディで渡されたフィード。
	SourceBody Source = "body"
	// SourceURL はURL指定で取得したフィード。
	SourceURL Source = "url"
	// SourceLint は定期検査ワーカーが取得したフィード。
	SourceLint Source = "lint"
)

// UserAgent はフィード取得時に送るUser-Agent。
const UserAgent = "Podfeed/1.0 Feed Inspector"

// AcceptHeader はフィード取得時に送るAcceptヘッダー。
const AcceptHeader = "application/rss+xml, application/xml, text/xml, text/html;q=0.8, */*;q=0.5"

// Result は1回の検査結果。
type Result struct {
	ID        uuid.UUID
	Source    Source
	SourceURL string
	Feed      feed.Feed
	Findings  []audit.Finding
	Summary   audit.Summary
	ItemCount int
	DecodedAt time.Time
}

// SSRFValidator はSSRF検証のインターフェース。
type SSRFValidator interface {
	ValidateURL(rawURL string) error
	NewSafeClient(timeout time.Duration, maxResponseSize int64) *http.Client
}

// Inspector はフィード検査サービス。
type Inspector struct {
	detector    *Detector
	ssrfGuard   SSRFValidator
	metrics     metrics.MetricsCollector
	logger      *slog.Logger
	timeout     time.Duration
	maxBodySize int64
	now         func() time.Time
}

// NewInspector はInspectorの新しいインスタンスを生成する。
func NewInspector(
	ssrfGuard SSRFValidator,
	collector metrics.MetricsCollector,
	logger *slog.Logger,
	timeout time.Duration,
	maxBodySize int64,
) *Inspector {
	return &Inspector{
		detector:    NewDetector(),
		ssrfGuard:   ssrfGuard,
		metrics:     collector,
		logger:      logger,
		timeout:     timeout,
		maxBodySize: maxBodySize,
		now:         time.Now,
	}
}

// MaxBodySize は受け付けるフィード本文の上限バイト数を返す。
func (i *Inspector) MaxBodySize() int64 {
	return i.maxBodySize
}

// InspectBody はリクエストボディで渡されたフィードを検査する。
func (i *Inspector) InspectBody(ctx context.Context, contentType string, body []byte) (*Result, error) {
	if len(body) == 0 {
		return nil, model.NewEmptyBodyError()
	}
	if int64(len(body)) > i.maxBodySize {
		return nil, model.NewBodyTooLargeError(i.maxBodySize)
	}
	if !i.detector.IsDirectFeed(contentType, body) {
		return nil, model.NewFeedNotDetectedError("リクエストボディ")
	}
	return i.Analyze(ctx, SourceBody, "", body)
}

// InspectURL はURLからフィードを取得して検査する。
// HTMLページが返った場合はheadのフィードリンクをたどる。
func (i *Inspector) InspectURL(ctx context.Context, rawURL string) (*Result, error) {
	if rawURL == "" {
		return nil, model.NewInvalidURLError("URLが入力されていません")
	}
	feedURL := security.NormalizeFeedURL(rawURL)

	contentType, body, err := i.fetch(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	if i.detector.IsDirectFeed(contentType, body) {
		return i.Analyze(ctx, SourceURL, feedURL, body)
	}
	if !i.detector.IsHTML(contentType) {
		return nil, model.NewFeedNotDetectedError(feedURL)
	}

	// HTMLからフィードリンクを検出
	best := i.detector.SelectBestFeed(i.detector.ParseFeedLinksFromHTML(body, feedURL), feedURL)
	if best == nil {
		return nil, model.NewFeedNotDetectedError(feedURL)
	}

	i.logger.Info("HTMLからフィードリンクを検出しました",
		slog.String("page_url", feedURL),
		slog.String("feed_url", best.URL),
		slog.String("feed_type", string(best.FeedType)),
	)

	contentType, body, err = i.fetch(ctx, best.URL)
	if err != nil {
		return nil, err
	}
	if !i.detector.IsDirectFeed(contentType, body) {
		return nil, model.NewFeedNotDetectedError(best.URL)
	}
	return i.Analyze(ctx, SourceURL, best.URL, body)
}

// fetch はSSRF検証の後にURLを取得し、Content-Typeとボディを返す。
func (i *Inspector) fetch(ctx context.Context, rawURL string) (string, []byte, error) {
	if err := i.ssrfGuard.ValidateURL(rawURL); err != nil {
		i.logger.Warn("SSRF検証に失敗しました",
			slog.String("url", rawURL),
			slog.String("error", err.Error()),
		)
		return "", nil, model.NewSSRFBlockedError()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", nil, model.NewInvalidURLError(err.Error())
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", AcceptHeader)

	start := time.Now()
	client := i.ssrfGuard.NewSafeClient(i.timeout, i.maxBodySize)
	resp, err := client.Do(req)
	if err != nil {
		i.metrics.RecordFetchFailure("request")
		i.logger.Error("HTTPリクエストに失敗しました",
			slog.String("url", rawURL),
			slog.String("error", err.Error()),
		)
		return "", nil, model.NewFetchFailedError(err.Error())
	}
	defer resp.Body.Close()

	i.metrics.RecordFetchLatency(time.Since(start))
	i.metrics.RecordHTTPStatus(resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		i.metrics.RecordFetchFailure("status")
		return "", nil, model.NewFetchFailedError(fmt.Sprintf("HTTPステータス %d", resp.StatusCode))
	}

	body, err := ReadLimited(resp.Body, i.maxBodySize)
	if err != nil {
		if errors.Is(err, security.ErrResponseTooLarge) {
			i.metrics.RecordFetchFailure("too_large")
			return "", nil, model.NewBodyTooLargeError(i.maxBodySize)
		}
		i.metrics.RecordFetchFailure("read")
		return "", nil, model.NewFetchFailedError(fmt.Sprintf("レスポンスの読み取りに失敗: %v", err))
	}

	i.metrics.RecordFetchSuccess()
	return resp.Header.Get("Content-Type"), body, nil
}

// ReadLimited はlimitバイトまで読み込む。超えた場合は security.ErrResponseTooLarge を返す。
func ReadLimited(r io.Reader, limit int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, security.ErrResponseTooLarge
	}
	return body, nil
}

// Analyze はフィード本文をデコードし、フォールバックを検査する。
// sourceURLはボディ入力の場合は空になる。
func (i *Inspector) Analyze(ctx context.Context, source Source, sourceURL string, body []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	i.metrics.RecordInspection(string(source))

	f, err := feed.Parse(bytes.NewReader(body))
	if err != nil {
		i.metrics.RecordParseFailure(string(source))
		i.logger.Warn("フィードのデコードに失敗しました",
			slog.String("source", string(source)),
			slog.String("source_url", sourceURL),
			slog.String("error", err.Error()),
		)
		if errors.Is(err, xmltree.ErrNotRSS) {
			return nil, model.NewNotRSSError()
		}
		return nil, model.NewParseFailedError(err.Error())
	}

	findings := audit.Audit(f)
	summary := audit.Summarize(findings)
	itemCount := 0
	if f.RSS.Channel != nil {
		itemCount = len(f.RSS.Channel.Items)
	}

	for kind, count := range summary.ByKind {
		i.metrics.RecordFallbacks(string(kind), count)
	}
	i.metrics.RecordItemsDecoded(itemCount)

	result := &Result{
		ID:        uuid.New(),
		Source:    source,
		SourceURL: sourceURL,
		Feed:      f,
		Findings:  findings,
		Summary:   summary,
		ItemCount: itemCount,
		DecodedAt: i.now(),
	}

	i.logger.Info("フィードを検査しました",
		slog.String("inspection_id", result.ID.String()),
		slog.String("source", string(source)),
		slog.String("source_url", sourceURL),
		slog.Int("items", itemCount),
		slog.Int("fallbacks", summary.Total),
	)

	return result, nil
}
