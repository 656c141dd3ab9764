package xmltree

import (
	"errors"
	"strings"
	"testing"
)

func TestParse_ResolvesNamespaces(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:it="http://www.itunes.com/dtds/podcast-1.0.dtd">
  <channel>
    <it:author>Jane Doe</it:author>
  </channel>
</rss>`

	root, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if root.Name.Local != "rss" {
		t.Errorf("root = %q, want rss", root.Name.Local)
	}
	channel := root.Child("", "channel")
	if channel == nil {
		t.Fatal("channel が見つからない")
	}
	// 接頭辞が itunes 以外でも名前空間URIで参照できること
	author, ok := channel.ChildText(NSITunes, "author")
	if !ok || author != "Jane Doe" {
		t.Errorf("author = (%q, %v), want (%q, true)", author, ok, "Jane Doe")
	}
}

func TestParse_Attributes(t *testing.T) {
	root, err := Parse(strings.NewReader(`<rss version="2.0"><enclosure url="http://example.com/a.mp3" length="100"/></rss>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v, ok := root.Attr("version"); !ok || v != "2.0" {
		t.Errorf("version = (%q, %v)", v, ok)
	}
	enc := root.Child("", "enclosure")
	if v, ok := enc.Attr("length"); !ok || v != "100" {
		t.Errorf("length = (%q, %v)", v, ok)
	}
	if _, ok := enc.Attr("type"); ok {
		t.Error("存在しない属性は false を返すべき")
	}
}

// TestParse_CDATAIsText はCDATAが加工されずにテキストとして扱われることを検証する。
func TestParse_CDATAIsText(t *testing.T) {
	root, err := Parse(strings.NewReader(`<rss><description><![CDATA[<p><strong>HTML</strong></p>]]></description></rss>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := root.ChildText("", "description")
	if !ok || got != "<p><strong>HTML</strong></p>" {
		t.Errorf("description = (%q, %v)", got, ok)
	}
}

func TestParse_EntitiesDecoded(t *testing.T) {
	root, err := Parse(strings.NewReader(`<rss><c text="Society &amp; Culture">&lt;b&gt;</c></rss>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := root.Child("", "c")
	if v, _ := c.Attr("text"); v != "Society & Culture" {
		t.Errorf("text attr = %q", v)
	}
	if v, _ := c.TextValue(); v != "<b>" {
		t.Errorf("text = %q", v)
	}
}

// TestParse_TextPresence は空要素は空文字列、子要素だけの要素はテキストなしになることを検証する。
func TestParse_TextPresence(t *testing.T) {
	root, err := Parse(strings.NewReader(`<rss><empty/><blank></blank><parent>
    <child>x</child>
  </parent></rss>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v, ok := root.ChildText("", "empty"); !ok || v != "" {
		t.Errorf("empty = (%q, %v), want (\"\", true)", v, ok)
	}
	if v, ok := root.ChildText("", "blank"); !ok || v != "" {
		t.Errorf("blank = (%q, %v), want (\"\", true)", v, ok)
	}
	if _, ok := root.ChildText("", "parent"); ok {
		t.Error("子要素だけの要素はテキストを持たないべき")
	}
	if _, ok := root.ChildText("", "missing"); ok {
		t.Error("存在しない要素は false を返すべき")
	}
}

func TestParse_KeepsWhitespaceVerbatim(t *testing.T) {
	root, err := Parse(strings.NewReader("<rss><t>  padded\n</t></rss>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := root.ChildText("", "t"); v != "  padded\n" {
		t.Errorf("t = %q, want %q", v, "  padded\n")
	}
}

func TestParse_ChildrenNamedKeepsOrder(t *testing.T) {
	root, err := Parse(strings.NewReader(`<channel><item>1</item><title>t</title><item>2</item><item>3</item></channel>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items := root.ChildrenNamed("", "item")
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}
	for i, want := range []string{"1", "2", "3"} {
		if got, _ := items[i].TextValue(); got != want {
			t.Errorf("items[%d] = %q, want %q", i, got, want)
		}
	}
}

func TestParse_Malformed(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"<rss><channel>",
		"<rss><title>unterminated",
	}
	for _, in := range inputs {
		if _, err := Parse(strings.NewReader(in)); err == nil {
			t.Errorf("Parse(%q) はエラーを返すべき", in)
		}
	}
}

func TestParse_Charset(t *testing.T) {
	// ISO-8859-1 の "é" (0xE9)
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><rss><title>caf\xe9</title></rss>"
	root, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := root.ChildText("", "title"); v != "café" {
		t.Errorf("title = %q, want %q", v, "café")
	}
}

func TestParseFeed_RejectsAtom(t *testing.T) {
	doc := `<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom"><title>x</title></feed>`
	_, err := ParseFeed(strings.NewReader(doc))
	if !errors.Is(err, ErrNotRSS) {
		t.Errorf("err = %v, want ErrNotRSS", err)
	}
}

func TestParseFeed_RejectsJSON(t *testing.T) {
	_, err := ParseFeed(strings.NewReader(`{"version":"https://jsonfeed.org/version/1.1","title":"x"}`))
	if !errors.Is(err, ErrNotRSS) {
		t.Errorf("err = %v, want ErrNotRSS", err)
	}
}

func TestParseFeed_AcceptsRSS(t *testing.T) {
	root, err := ParseFeed(strings.NewReader(`<?xml version="1.0"?><rss version="2.0"><channel/></rss>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.Child("", "channel") == nil {
		t.Error("channel が見つからない")
	}
}

func TestNode_NilSafe(t *testing.T) {
	var n *Node
	if n.Child("", "x") != nil {
		t.Error("nil ノードの Child は nil を返すべき")
	}
	if len(n.ChildrenNamed("", "x")) != 0 {
		t.Error("nil ノードの ChildrenNamed は空を返すべき")
	}
	if _, ok := n.Attr("x"); ok {
		t.Error("nil ノードの Attr は false を返すべき")
	}
	if _, ok := n.TextValue(); ok {
		t.Error("nil ノードの TextValue は false を返すべき")
	}
}
