// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: validation, feed, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeFeedNotDetected = "FEED_NOT_DETECTED"
	ErrCodeInvalidURL      = "INVALID_URL"
	ErrCodeSSRFBlocked     = "SSRF_BLOCKED"
	ErrCodeFetchFailed     = "FETCH_FAILED"
	ErrCodeParseFailed     = "PARSE_FAILED"
	ErrCodeNotRSS          = "NOT_RSS"
	ErrCodeBodyTooLarge    = "BODY_TOO_LARGE"
	ErrCodeEmptyBody       = "EMPTY_BODY"
)

// NewFeedNotDetectedError はフィード未検出エラーを生成する。sourceはURLまたは入力元の説明。
func NewFeedNotDetectedError(source string) *APIError {
	return &APIError{
		Code:     ErrCodeFeedNotDetected,
		Message:  fmt.Sprintf("RSSフィードを検出できませんでした: %s", source),
		Category: "feed",
		Action:   "RSSフィードのURLを直接入力するか、フィードが公開されているページのURLを確認してください。",
	}
}

// NewInvalidURLError は無効なURLエラーを生成する。
func NewInvalidURLError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidURL,
		Message:  fmt.Sprintf("無効なURLです: %s", reason),
		Category: "validation",
		Action:   "正しいURL形式（http:// または https:// で始まるURL）を入力してください。",
	}
}

// NewSSRFBlockedError はSSRFブロックエラーを生成する。
func NewSSRFBlockedError() *APIError {
	return &APIError{
		Code:     ErrCodeSSRFBlocked,
		Message:  "セキュリティポリシーにより、指定されたURLへのアクセスがブロックされました。",
		Category: "validation",
		Action:   "公開されているWebサイトのURLを入力してください。ローカルネットワークやプライベートIPへのアクセスは許可されていません。",
	}
}

// NewFetchFailedError はフェッチ失敗エラーを生成する。
func NewFetchFailedError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeFetchFailed,
		Message:  fmt.Sprintf("URLの取得に失敗しました: %s", reason),
		Category: "feed",
		Action:   "URLが正しいか確認し、しばらく待ってから再度お試しください。",
	}
}

// NewParseFailedError はXMLとして解析できなかった場合のエラーを生成する。
func NewParseFailedError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeParseFailed,
		Message:  fmt.Sprintf("フィードの解析に失敗しました: %s", reason),
		Category: "feed",
		Action:   "XMLの構造（閉じタグや文字コード宣言）が正しいか確認してください。",
	}
}

// NewNotRSSError はAtomやJSON Feedなど、RSS以外の文書が渡された場合のエラーを生成する。
func NewNotRSSError() *APIError {
	return &APIError{
		Code:     ErrCodeNotRSS,
		Message:  "RSSフィードではありません。",
		Category: "feed",
		Action:   "ポッドキャストのRSSフィードを指定してください。AtomやJSON Feedには対応していません。",
	}
}

// NewBodyTooLargeError はリクエストボディが上限を超えた場合のエラーを生成する。
func NewBodyTooLargeError(limit int64) *APIError {
	return &APIError{
		Code:     ErrCodeBodyTooLarge,
		Message:  fmt.Sprintf("フィードのサイズが上限（%dバイト）を超えています。", limit),
		Category: "validation",
		Action:   "URL指定での検査を利用するか、フィードを分割してください。",
	}
}

// NewEmptyBodyError はリクエストボディが空の場合のエラーを生成する。
func NewEmptyBodyError() *APIError {
	return &APIError{
		Code:     ErrCodeEmptyBody,
		Message:  "フィードの本文が空です。",
		Category: "validation",
		Action:   "リクエストボディにRSSフィードのXMLを指定してください。",
	}
}
