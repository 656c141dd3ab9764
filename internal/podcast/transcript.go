package podcast

import (
	"github.com/hitoshi/podfeed/internal/permissive"
	"github.com/hitoshi/podfeed/internal/xmltree"
)

// RelKind は podcast:transcript の rel 属性の値。
type RelKind int

const (
	Captions RelKind = iota + 1
)

// Rel は rel 属性。
type Rel = permissive.Enum[RelKind]

// パースは "Captions" のみ。表示は小文字の "captions"。
var rels = permissive.NewEnumTable(
	permissive.Literal[RelKind]{Variant: Captions, Text: "Captions", Display: "captions"},
)

// ParseRel は rel 属性のテキストをデコードする。
func ParseRel(s string) Rel {
	return rels.Decode(s)
}

// Transcript は podcast:transcript。
type Transcript struct {
	URL      *string
	Type     *string
	Language *string
	Rel      *Rel
}

// DecodeTranscripts は親要素直下の podcast:transcript を文書順にデコードする。
func DecodeTranscripts(parent *xmltree.Node) []Transcript {
	nodes := parent.ChildrenNamed(xmltree.NSPodcast, "transcript")
	out := make([]Transcript, 0, len(nodes))
	for _, n := range nodes {
		t := Transcript{
			URL:      n.OptionalAttr("url"),
			Type:     n.OptionalAttr("type"),
			Language: n.OptionalAttr("language"),
		}
		if s, ok := n.Attr("rel"); ok {
			rel := ParseRel(s)
			t.Rel = &rel
		}
		out = append(out, t)
	}
	return out
}
