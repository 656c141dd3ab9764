package xmltree

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mmcdole/gofeed"
	xpp "github.com/mmcdole/goxpp"
	"golang.org/x/net/html/charset"
)

// ErrNotRSS はRSS以外（Atom、JSON Feed、HTML等）の文書が渡された場合のエラー。
var ErrNotRSS = errors.New("document is not an RSS feed")

// Parse はXML文書を読み込み、ルート要素のノードを返す。
// encoding宣言がUTF-8以外の場合は文字コードを変換してから解析する。
func Parse(r io.Reader) (*Node, error) {
	p := xpp.NewXMLPullParser(r, false, charset.NewReaderLabel)

	// ルート要素より前のテキスト（BOM等）は読み飛ばす
	for {
		event, err := p.Next()
		if err != nil {
			return nil, fmt.Errorf("failed to find root element: %w", err)
		}
		if event == xpp.StartTag {
			break
		}
		if event == xpp.EndDocument {
			return nil, errors.New("failed to find root element: empty document")
		}
	}

	root, err := readElement(p)
	if err != nil {
		return nil, err
	}
	return root, nil
}

// ParseFeed はRSSフィードであることを確認してから解析する。
func ParseFeed(r io.Reader) (*Node, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	if gofeed.DetectFeedType(bytes.NewReader(body)) != gofeed.FeedTypeRSS {
		return nil, ErrNotRSS
	}

	return Parse(bytes.NewReader(body))
}

// readElement はStartTag上にあるパーサーから対応するEndTagまでを読み、ノードを構築する。
func readElement(p *xpp.XMLPullParser) (*Node, error) {
	n := &Node{Name: Name{Space: p.Space, Local: p.Name}}
	for _, a := range p.Attrs {
		n.Attrs = append(n.Attrs, Attr{
			Name:  Name{Space: a.Name.Space, Local: a.Name.Local},
			Value: a.Value,
		})
	}

	var text strings.Builder
	for {
		event, err := p.Next()
		if err != nil {
			return nil, fmt.Errorf("failed to parse <%s>: %w", n.Name.Local, err)
		}

		switch event {
		case xpp.StartTag:
			child, err := readElement(p)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		case xpp.Text:
			text.WriteString(p.Text)
		case xpp.EndTag:
			s := text.String()
			if len(n.Children) == 0 || strings.TrimSpace(s) != "" {
				n.Text = &s
			}
			return n, nil
		case xpp.EndDocument:
			return nil, fmt.Errorf("failed to parse <%s>: unexpected end of document", n.Name.Local)
		}
	}
}
