package inspect

import (
	"bytes"
	"mime"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// FeedType はフィードの種類（RSS/Atom）を表す。
type FeedType string

const (
	// FeedTypeRSS はRSSフィード。
	FeedTypeRSS FeedType = "rss"
	// FeedTypeAtom はAtomフィード。
	FeedTypeAtom FeedType = "atom"
)

// FeedCandidate はHTMLから検出されたフィード候補を表す。
type FeedCandidate struct {
	URL      string
	FeedType FeedType
	Title    string
}

// Detector はレスポンスがフィードかどうかの判定と、HTMLからのフィードリンク検出を行う。
type Detector struct{}

// NewDetector はDetectorの新しいインスタンスを生成する。
func NewDetector() *Detector {
	return &Detector{}
}

// feedContentTypes はフィードとして認識するContent-Typeのリスト。
var feedContentTypes = []string{
	"application/rss+xml",
	"application/atom+xml",
}

// xmlContentTypes はXMLとして認識するContent-Type（ボディ解析が必要）。
var xmlContentTypes = []string{
	"text/xml",
	"application/xml",
}

// sniffContentTypes はContent-Typeが当てにならないため、ボディだけで判定する種類。
// ポッドキャストのホスティングでは音声配信向けの設定のままフィードを返すことがある。
var sniffContentTypes = []string{
	"",
	"text/plain",
	"application/octet-stream",
	"binary/octet-stream",
}

// IsDirectFeed はContent-Typeとボディを解析して、
// 指定されたレスポンスがRSS/Atomフィードかどうかを判定する。
func (d *Detector) IsDirectFeed(contentType string, body []byte) bool {
	mediaType := mediaTypeOf(contentType)

	// RSS/Atom固有のContent-Typeの場合は直接判定
	for _, feedCT := range feedContentTypes {
		if mediaType == feedCT {
			return true
		}
	}

	// 汎用XML Content-Typeの場合はボディ解析が必要
	isXML := false
	for _, xmlCT := range xmlContentTypes {
		if mediaType == xmlCT {
			isXML = true
			break
		}
	}
	if !isXML {
		for _, ct := range sniffContentTypes {
			if mediaType == ct {
				isXML = true
				break
			}
		}
	}

	if !isXML || len(body) == 0 {
		return false
	}

	// ボディの先頭部分を解析してRSS/Atomか判定
	return isRSSOrAtomXML(body)
}

// IsHTML はContent-TypeがHTMLかどうかを返す。
func (d *Detector) IsHTML(contentType string) bool {
	return strings.Contains(mediaTypeOf(contentType), "html")
}

// mediaTypeOf はContent-Typeからcharsetなどのパラメータを除いたメディアタイプを返す。
func mediaTypeOf(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.TrimSpace(strings.Split(contentType, ";")[0])
	}
	return strings.ToLower(mediaType)
}

// isRSSOrAtomXML はXMLボディの先頭部分を解析してRSS/Atomフィードかを判定する。
func isRSSOrAtomXML(body []byte) bool {
	// 先頭4KBを検査（XMLプロローグ + ルート要素が含まれるのに十分）
	checkSize := 4096
	if len(body) < checkSize {
		checkSize = len(body)
	}
	prefix := strings.ToLower(string(body[:checkSize]))

	// RSSの判定: <rss タグまたは <rdf:RDF タグ
	if strings.Contains(prefix, "<rss") {
		return true
	}
	if strings.Contains(prefix, "<rdf:rdf") {
		return true
	}

	// Atomの判定: <feed タグ（Atom namespaceを含む）
	if strings.Contains(prefix, "<feed") && strings.Contains(prefix, "http://www.w3.org/2005/atom") {
		return true
	}

	return false
}

// ParseFeedLinksFromHTML はHTMLのheadタグからRSS/Atomフィードリンクを解析・検出する。
// 相対URLはbaseURLを基準に絶対URLに解決される。
func (d *Detector) ParseFeedLinksFromHTML(htmlBody []byte, baseURL string) []FeedCandidate {
	var candidates []FeedCandidate

	baseU, err := url.Parse(baseURL)
	if err != nil {
		return candidates
	}

	tokenizer := html.NewTokenizer(bytes.NewReader(htmlBody))
	inHead := false

	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return candidates

		case html.StartTagToken, html.SelfClosingTagToken:
			tn, hasAttr := tokenizer.TagName()
			tagName := string(tn)

			if tagName == "head" {
				inHead = true
				continue
			}

			if tagName == "body" {
				// bodyに入ったらheadの解析を終了
				return candidates
			}

			if !inHead || tagName != "link" || !hasAttr {
				continue
			}

			// link要素の属性を解析
			var rel, linkType, href, title string
			for {
				key, val, more := tokenizer.TagAttr()
				v := string(val)
				switch strings.ToLower(string(key)) {
				case "rel":
					rel = strings.ToLower(v)
				case "type":
					linkType = strings.ToLower(v)
				case "href":
					href = v
				case "title":
					title = v
				}
				if !more {
					break
				}
			}

			// rel="alternate" かつ RSS/Atom Content-Type のリンクのみ対象
			if !hasToken(rel, "alternate") || href == "" {
				continue
			}

			var feedType FeedType
			switch linkType {
			case "application/rss+xml":
				feedType = FeedTypeRSS
			case "application/atom+xml":
				feedType = FeedTypeAtom
			default:
				continue
			}

			// 相対URLを絶対URLに解決
			resolvedURL := resolveURL(baseU, href)
			if resolvedURL == "" {
				continue
			}

			candidates = append(candidates, FeedCandidate{
				URL:      resolvedURL,
				FeedType: feedType,
				Title:    title,
			})

		case html.EndTagToken:
			tn, _ := tokenizer.TagName()
			if string(tn) == "head" {
				return candidates
			}
		}
	}
}

// hasToken は空白区切りのrel属性に指定したトークンが含まれるかを返す。
func hasToken(rel, token string) bool {
	for _, f := range strings.Fields(rel) {
		if f == token {
			return true
		}
	}
	return false
}

// resolveURL は相対URLをベースURLを基準に絶対URLに解決する。
func resolveURL(base *url.URL, rawRef string) string {
	ref, err := url.Parse(rawRef)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// SelectBestFeed は複数のフィード候補から優先順位に従って最適なフィードを選択する。
// 優先順位: 同一ホスト > RSS > Atom > 先頭
// ポッドキャストの拡張はRSSにしか載らないため、AtomよりRSSを優先する。
func (d *Detector) SelectBestFeed(candidates []FeedCandidate, inputURL string) *FeedCandidate {
	if len(candidates) == 0 {
		return nil
	}

	inputHost := extractHost(inputURL)

	bestIdx := 0
	bestScore := -1

	for i, c := range candidates {
		score := 0

		if extractHost(c.URL) == inputHost {
			score += 100
		}
		if c.FeedType == FeedTypeRSS {
			score += 10
		}

		// 同スコアの場合はインデックスが小さい方を優先する
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	return &candidates[bestIdx]
}

// extractHost はURLからホスト名を抽出する。
func extractHost(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
