// Package lint は設定されたフィードを定期的に取得し、フォールバックを検査するワーカーを提供する。
// スケジューラ、フェッチャー、リトライ/バックオフ戦略を含む。
package lint

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hitoshi/podfeed/internal/model"
)

// TargetLister は検査対象の一覧を取得するインターフェース。
type TargetLister interface {
	ListDue(now time.Time) []*model.LintTarget
}

// Linter は検査対象1件の検査を実行するインターフェース。
type Linter interface {
	// Lint は対象を取得・検査し、結果に応じて対象の状態を更新する。
	Lint(ctx context.Context, target *model.LintTarget) error
}

// Scheduler は検査のスケジューリングと並列制御を行う。
// ティッカーごとに検査時刻に達した対象を取得し、
// semaphoreパターンで最大並列数を制御しながら検査を実行する。
type Scheduler struct {
	targets        TargetLister
	linter         Linter
	logger         *slog.Logger
	maxConcurrency int
	now            func() time.Time
}

// NewScheduler はSchedulerの新しいインスタンスを生成する。
// maxConcurrencyが0以下の場合はデフォルト値4を使用する。
func NewScheduler(targets TargetLister, linter Linter, logger *slog.Logger, maxConcurrency int) *Scheduler {
	if maxConcurrency <= 0 {
		maxConcurrency = 4
	}
	return &Scheduler{
		targets:        targets,
		linter:         linter,
		logger:         logger,
		maxConcurrency: maxConcurrency,
		now:            time.Now,
	}
}

// DefaultInterval はintervalが0以下の場合に使用する検査間隔。
const DefaultInterval = 15 * time.Minute

// Start はinterval間隔のティッカーでスケジューラを起動する。
// 起動直後に1回実行し、コンテキストがキャンセルされるまで実行を継続する。
// intervalが0以下の場合はDefaultIntervalを使用する。
func (s *Scheduler) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("検査スケジューラを開始しました",
		slog.Duration("interval", interval),
		slog.Int("max_concurrency", s.maxConcurrency),
	)

	if err := s.RunOnce(ctx); err != nil {
		s.logger.Error("検査サイクルの実行に失敗しました", slog.String("error", err.Error()))
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("検査スケジューラを停止しました")
			return
		case <-ticker.C:
			if err := s.RunOnce(ctx); err != nil {
				s.logger.Error("検査サイクルの実行に失敗しました", slog.String("error", err.Error()))
			}
		}
	}
}

// RunOnce は検査時刻に達した対象を取得し、並列で検査を実行する。
// 個別の検査エラーはログに記録し、サイクル自体のエラーにはしない。
func (s *Scheduler) RunOnce(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	targets := s.targets.ListDue(s.now())
	if len(targets) == 0 {
		s.logger.Info("検査対象のフィードはありません")
		return nil
	}

	s.logger.Info("検査サイクルを開始します", slog.Int("feed_count", len(targets)))

	sem := make(chan struct{}, s.maxConcurrency)
	var wg sync.WaitGroup

	for _, target := range targets {
		wg.Add(1)
		sem <- struct{}{}

		go func(t *model.LintTarget) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := s.linter.Lint(ctx, t); err != nil {
				s.logger.Error("フィード検査に失敗しました",
					slog.String("feed_url", t.FeedURL),
					slog.String("error", err.Error()),
				)
			}
		}(target)
	}

	wg.Wait()

	s.logger.Info("検査サイクルが完了しました",
		slog.Int("feed_count", len(targets)),
		slog.Float64("duration_ms", float64(time.Since(start).Milliseconds())),
	)

	return nil
}
