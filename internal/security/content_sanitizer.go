// Package security はアプリケーションのセキュリティ機能を提供する。
//
// ContentSanitizerService は番組やエピソードのショーノート（channel/itemのdescription）を
// APIレスポンスのdescription_htmlとして安全に表示できるHTMLに変換する。
// bluemondayライブラリを使用した許可リストベースのポリシーで、
// 安全なタグと属性のみを通過させる。
package security

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ContentSanitizerService はショーノートのサニタイズ機能のインターフェースを定義する。
// 検査結果のAPI応答を組み立てる際に使用される。
type ContentSanitizerService interface {
	// Sanitize はショーノートを安全なHTMLに変換する。
	// HTMLとして書かれたショーノートは許可タグ以外を除去する。
	// タグを含まないプレーンテキストのショーノートは改行を<br>に、URLをリンクに変換する。
	// 空文字列の入力には空文字列を返す。
	Sanitize(rawHTML string) string
}

// contentSanitizer はContentSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type contentSanitizer struct {
	policy *bluemonday.Policy
}

// httpsOnly はimgのsrcに許可するURL。
var httpsOnly = regexp.MustCompile(`^https://`)

// bareURL はプレーンテキスト中のURL。末尾の句読点と閉じ括弧はURLに含めない。
var bareURL = regexp.MustCompile(`https?://[^\s<>"]*[^\s<>".,;:!?)\]']`)

// NewContentSanitizer はContentSanitizerServiceの新しいインスタンスを生成する。
// ポリシーの内容:
//   - 許可タグ: p, br, a, ul, ol, li, blockquote, pre, code, strong, em, b, i, h2-h4, hr, img
//   - リンク: http, https, mailto のみ。外部リンクはnofollowと新しいタブで開く
//   - 画像: httpsのみ（混在コンテンツを避ける）
func NewContentSanitizer() *contentSanitizer {
	p := bluemonday.NewPolicy()

	// script, iframe, style等は許可リストに含めないことで除去される
	p.AllowElements(
		"p", "br", "ul", "ol", "li",
		"blockquote", "pre", "code",
		"strong", "em", "b", "i",
		"h2", "h3", "h4", "hr",
	)

	// 番組への問い合わせ先としてmailtoリンクがよく書かれる
	p.AllowAttrs("href", "title").OnElements("a")
	p.AllowURLSchemes("http", "https", "mailto")
	p.AllowRelativeURLs(false)
	p.RequireParseableURLs(true)

	// フィード提供者のリンクは信頼できないため評価を渡さない
	p.RequireNoFollowOnFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	p.AllowAttrs("src").Matching(httpsOnly).OnElements("img")
	p.AllowAttrs("alt").OnElements("img")

	return &contentSanitizer{
		policy: p,
	}
}

// Sanitize はショーノートを安全なHTMLに変換する。
func (s *contentSanitizer) Sanitize(rawHTML string) string {
	if !strings.Contains(rawHTML, "<") {
		rawHTML = plainTextToHTML(rawHTML)
	}
	return s.policy.Sanitize(rawHTML)
}

// plainTextToHTML はプレーンテキストのショーノートをHTMLにする。
// 文字はエスケープし、改行は<br>、URLは<a>にする。
func plainTextToHTML(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var b strings.Builder
	last := 0
	for _, loc := range bareURL.FindAllStringIndex(text, -1) {
		b.WriteString(escapeLines(text[last:loc[0]]))
		u := html.EscapeString(text[loc[0]:loc[1]])
		b.WriteString(`<a href="` + u + `">` + u + `</a>`)
		last = loc[1]
	}
	b.WriteString(escapeLines(text[last:]))
	return b.String()
}

func escapeLines(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), "\n", "<br>")
}
