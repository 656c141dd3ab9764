package lint

import (
	"fmt"
	"time"

	"github.com/hitoshi/podfeed/internal/model"
)

// FetchResult はHTTPステータスコードに基づくフェッチ結果の分類。
type FetchResult int

const (
	// FetchResultOK はフェッチ成功（200）。
	FetchResultOK FetchResult = iota
	// FetchResultNotModified はコンテンツ未変更（304）。
	FetchResultNotModified
	// FetchResultStop は検査停止が必要なステータス（404/410/401/403）。
	FetchResultStop
	// FetchResultBackoff はバックオフが必要なステータス（429/5xx）。
	FetchResultBackoff
	// FetchResultUnknown は未知のステータスコード。
	FetchResultUnknown
)

// String はログ出力用の名前を返す。
func (r FetchResult) String() string {
	switch r {
	case FetchResultOK:
		return "ok"
	case FetchResultNotModified:
		return "not_modified"
	case FetchResultStop:
		return "stop"
	case FetchResultBackoff:
		return "backoff"
	default:
		return "unknown"
	}
}

const (
	// initialBackoff は指数バックオフの初回遅延（30分）。
	initialBackoff = 30 * time.Minute
	// maxBackoff は指数バックオフの最大遅延（12時間）。
	maxBackoff = 12 * time.Hour
	// parseFailureThreshold はパース失敗による検査停止の閾値。
	parseFailureThreshold = 10
)

// ClassifyHTTPStatus はHTTPステータスコードをフェッチ結果に分類する。
func ClassifyHTTPStatus(statusCode int) FetchResult {
	switch {
	case statusCode == 200:
		return FetchResultOK
	case statusCode == 304:
		return FetchResultNotModified
	case statusCode == 404 || statusCode == 410:
		return FetchResultStop
	case statusCode == 401 || statusCode == 403:
		return FetchResultStop
	case statusCode == 429:
		return FetchResultBackoff
	case statusCode >= 500:
		return FetchResultBackoff
	default:
		return FetchResultUnknown
	}
}

// CalculateBackoff は連続エラー回数に基づいて指数バックオフ遅延を計算する。
// 初回30分、2倍ずつ増加、最大12時間。
func CalculateBackoff(consecutiveErrors int) time.Duration {
	delay := initialBackoff
	for i := 0; i < consecutiveErrors; i++ {
		delay *= 2
		if delay > maxBackoff {
			return maxBackoff
		}
	}
	return delay
}

// ApplyStop は検査対象を停止状態にし、理由を記録する。
func ApplyStop(target *model.LintTarget, reason string) {
	target.FetchStatus = model.FetchStatusStopped
	target.ErrorMessage = reason
}

// ApplyBackoff は連続エラー回数をインクリメントし、指数バックオフで次回検査時刻を設定する。
func ApplyBackoff(target *model.LintTarget, reason string, now time.Time) {
	target.ConsecutiveErrors++
	target.ErrorMessage = reason
	target.NextFetchAt = now.Add(CalculateBackoff(target.ConsecutiveErrors - 1))
}

// ApplySuccess は連続エラー回数とエラーメッセージをリセットし、interval後に次回検査を設定する。
func ApplySuccess(target *model.LintTarget, interval time.Duration, now time.Time) {
	target.ConsecutiveErrors = 0
	target.ErrorMessage = ""
	target.NextFetchAt = now.Add(interval)
	target.LastCheckedAt = now
}

// CheckParseFailureThreshold はパース失敗回数が閾値に達しているかを確認する。
func CheckParseFailureThreshold(target *model.LintTarget) bool {
	return target.ConsecutiveErrors >= parseFailureThreshold
}

// ApplyParseFailure はパース失敗時に連続エラー回数をインクリメントする。
// 閾値に達した場合はエラー状態で検査を停止する。それ以外は通常間隔で再検査する。
func ApplyParseFailure(target *model.LintTarget, reason string, interval time.Duration, now time.Time) {
	target.ConsecutiveErrors++
	target.ErrorMessage = fmt.Sprintf("パース失敗 (%d回連続): %s", target.ConsecutiveErrors, reason)
	target.NextFetchAt = now.Add(interval)
	target.LastCheckedAt = now

	if CheckParseFailureThreshold(target) {
		target.FetchStatus = model.FetchStatusError
		target.ErrorMessage = fmt.Sprintf("パース失敗が%d回連続したため検査を停止しました: %s", target.ConsecutiveErrors, reason)
	}
}
