package model

import "time"

// LintTarget は定期検査の対象フィードとそのフェッチ状態を表す。
type LintTarget struct {
	FeedURL           string
	ETag              string
	LastModified      string
	FetchStatus       FetchStatus
	ConsecutiveErrors int
	ErrorMessage      string
	NextFetchAt       time.Time
	LastFallbacks     int
	LastItemCount     int
	LastCheckedAt     time.Time
}

// FetchStatus はフィードのフェッチ状態を表す。
type FetchStatus string

const (
	// FetchStatusActive はアクティブなフェッチ状態。
	FetchStatusActive FetchStatus = "active"
	// FetchStatusStopped は停止されたフェッチ状態。
	FetchStatusStopped FetchStatus = "stopped"
	// FetchStatusError はエラーによるフェッチ停止状態。
	FetchStatusError FetchStatus = "error"
)

// NewLintTarget はアクティブ状態の検査対象を生成する。
func NewLintTarget(feedURL string, now time.Time) *LintTarget {
	return &LintTarget{
		FeedURL:     feedURL,
		FetchStatus: FetchStatusActive,
		NextFetchAt: now,
	}
}

// IsDue は指定時刻の時点で検査すべきかを返す。
func (t *LintTarget) IsDue(now time.Time) bool {
	return t.FetchStatus == FetchStatusActive && !t.NextFetchAt.After(now)
}
