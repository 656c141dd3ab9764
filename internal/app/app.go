package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/hitoshi/podfeed/internal/config"
	"github.com/hitoshi/podfeed/internal/handler"
	"github.com/hitoshi/podfeed/internal/inspect"
	"github.com/hitoshi/podfeed/internal/logger"
	"github.com/hitoshi/podfeed/internal/metrics"
	"github.com/hitoshi/podfeed/internal/middleware"
	"github.com/hitoshi/podfeed/internal/security"
	"github.com/hitoshi/podfeed/internal/worker/lint"
)

// SSRFGuard はURL取得に使うSSRF対策のインターフェース。
type SSRFGuard interface {
	ValidateURL(rawURL string) error
	NewSafeClient(timeout time.Duration, maxResponseSize int64) *http.Client
}

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w, slog.LevelInfo)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 3. LOG_LEVELを反映する
	logger.SetupDefault(w, cfg.LogLevel)

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.Int("lint_feeds", len(cfg.LintFeeds)),
	)

	// SIGINTまたはSIGTERMでキャンセルされるコンテキスト
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	guard := security.NewSSRFGuard()

	switch cmd {
	case CommandWorker:
		return runWorker(ctx, cfg, guard)
	case CommandLint:
		return runLint(ctx, cfg, guard, w)
	default:
		return runServe(ctx, cfg, guard)
	}
}

// newInspector は設定に従ってInspectorを構築する。
func newInspector(cfg *config.Config, guard SSRFGuard, collector metrics.MetricsCollector) *inspect.Inspector {
	return inspect.NewInspector(guard, collector, slog.Default(), cfg.FetchTimeout, cfg.InspectMaxBody)
}

// newLintScheduler は検査対象ストアとスケジューラを構築する。
func newLintScheduler(cfg *config.Config, guard SSRFGuard, collector metrics.MetricsCollector, insp *inspect.Inspector) (*lint.Store, *lint.Scheduler) {
	store := lint.NewStore(cfg.LintFeeds, time.Now())
	fetcher := lint.NewFetcher(
		insp, guard, collector, slog.Default(),
		cfg.FetchTimeout, cfg.FetchMaxSize, cfg.LintInterval,
	)
	scheduler := lint.NewScheduler(store, fetcher, slog.Default(), cfg.LintMaxConcurrent)
	return store, scheduler
}

// runServe はAPIサーバーモードで起動する。
// LINT_FEEDSが設定されている場合は検査スケジューラを同じプロセスで起動する。
// コンテキストがキャンセルされるとグレースフルシャットダウンを行う。
func runServe(ctx context.Context, cfg *config.Config, guard SSRFGuard) error {
	// 1. メトリクスの初期化
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(reg)

	// 2. サービスの初期化
	insp := newInspector(cfg, guard, collector)

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfigPerMinute(cfg.RateLimitPerMinute))
	defer rateLimiter.Stop()

	// 3. ルーターの構築
	router := handler.NewRouter(&handler.RouterDeps{
		Logger:         slog.Default(),
		RateLimiter:    rateLimiter,
		Inspector:      insp,
		Sanitizer:      security.NewContentSanitizer(),
		MetricsHandler: metrics.Handler(reg),
	})

	// 4. 検査スケジューラの起動
	if len(cfg.LintFeeds) > 0 {
		_, scheduler := newLintScheduler(cfg, guard, collector, insp)
		go scheduler.Start(ctx, cfg.LintInterval)
	}

	// 5. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.FetchTimeout*2 + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("API server starting", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server listen error: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down API server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runWorker はワーカーモードで起動する。
// LINT_FEEDSをLINT_INTERVAL間隔で検査し、コンテキストがキャンセルされるまで継続する。
func runWorker(ctx context.Context, cfg *config.Config, guard SSRFGuard) error {
	if err := cfg.ValidateLint(); err != nil {
		return err
	}

	collector := metrics.NewCollector(prometheus.NewRegistry())
	insp := newInspector(cfg, guard, collector)
	_, scheduler := newLintScheduler(cfg, guard, collector, insp)

	slog.Info("worker starting",
		slog.Duration("lint_interval", cfg.LintInterval),
		slog.Int("max_concurrent", cfg.LintMaxConcurrent),
	)

	// スケジューラをメインgoroutineで実行（ブロッキング）
	scheduler.Start(ctx, cfg.LintInterval)

	slog.Info("worker stopped gracefully")
	return nil
}

// runLint はLINT_FEEDSを1回検査し、結果の表をoutに書き出す。
// 取得またはパースに失敗したフィードがある場合はエラーを返す。
func runLint(ctx context.Context, cfg *config.Config, guard SSRFGuard, out io.Writer) error {
	if err := cfg.ValidateLint(); err != nil {
		return err
	}

	collector := metrics.NewCollector(prometheus.NewRegistry())
	insp := newInspector(cfg, guard, collector)
	store, scheduler := newLintScheduler(cfg, guard, collector, insp)

	if err := scheduler.RunOnce(ctx); err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}

	targets := store.Targets()
	fmt.Fprintln(out, renderLintReport(targets))

	if failed := countFailed(targets); failed > 0 {
		return fmt.Errorf("%d of %d feeds failed lint", failed, len(targets))
	}
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}
