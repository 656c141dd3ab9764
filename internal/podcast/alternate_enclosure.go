package podcast

import (
	"github.com/hitoshi/podfeed/internal/permissive"
	"github.com/hitoshi/podfeed/internal/xmltree"
)

// IntegrityKind は podcast:integrity の type 属性の値。
type IntegrityKind int

const (
	SRI IntegrityKind = iota + 1
	PGPSignature
)

// IntegrityType は podcast:integrity の type 属性。
type IntegrityType = permissive.Enum[IntegrityKind]

var integrityTypes = permissive.NewEnumTable(
	permissive.Literal[IntegrityKind]{Variant: SRI, Text: "sri"},
	permissive.Literal[IntegrityKind]{Variant: PGPSignature, Text: "pgp-signature"},
)

// ParseIntegrityType は type 属性のテキストをデコードする。
func ParseIntegrityType(s string) IntegrityType {
	return integrityTypes.Decode(s)
}

// Integrity は podcast:integrity。
type Integrity struct {
	Type  *IntegrityType
	Value *string
}

// Source は podcast:source。
type Source struct {
	URI         *string
	ContentType *string
}

// AlternateEnclosure は podcast:alternateEnclosure。
type AlternateEnclosure struct {
	Type      *string
	Length    *permissive.Scalar[uint64]
	Bitrate   *permissive.Scalar[float32]
	Height    *permissive.Scalar[uint64]
	Lang      *string
	Title     *string
	Rel       *string
	Codecs    *string
	Default   *permissive.Scalar[bool]
	Sources   []Source
	Integrity *Integrity
}

// DecodeAlternateEnclosures は親要素直下の podcast:alternateEnclosure を文書順にデコードする。
func DecodeAlternateEnclosures(parent *xmltree.Node) []AlternateEnclosure {
	nodes := parent.ChildrenNamed(xmltree.NSPodcast, "alternateEnclosure")
	out := make([]AlternateEnclosure, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, decodeAlternateEnclosure(n))
	}
	return out
}

func decodeAlternateEnclosure(n *xmltree.Node) AlternateEnclosure {
	e := AlternateEnclosure{
		Type:      n.OptionalAttr("type"),
		Length:    permissive.Option(n.OptionalAttr("length"), permissive.DecodeU64),
		Bitrate:   permissive.Option(n.OptionalAttr("bitrate"), permissive.DecodeFloat),
		Height:    permissive.Option(n.OptionalAttr("height"), permissive.DecodeU64),
		Lang:      n.OptionalAttr("lang"),
		Title:     n.OptionalAttr("title"),
		Rel:       n.OptionalAttr("rel"),
		Codecs:    n.OptionalAttr("codecs"),
		Default:   permissive.Option(n.OptionalAttr("default"), permissive.DecodeBool),
		Integrity: decodeIntegrity(n.Child(xmltree.NSPodcast, "integrity")),
	}

	sources := n.ChildrenNamed(xmltree.NSPodcast, "source")
	e.Sources = make([]Source, 0, len(sources))
	for _, s := range sources {
		e.Sources = append(e.Sources, Source{
			URI:         s.OptionalAttr("uri"),
			ContentType: s.OptionalAttr("contentType"),
		})
	}
	return e
}

func decodeIntegrity(n *xmltree.Node) *Integrity {
	if n == nil {
		return nil
	}
	i := &Integrity{Value: n.OptionalAttr("value")}
	if s, ok := n.Attr("type"); ok {
		t := ParseIntegrityType(s)
		i.Type = &t
	}
	return i
}
