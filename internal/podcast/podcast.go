// Package podcast は Podcast Index の podcast: 名前空間の要素を表す型とデコーダを提供する。
//
// どの値も形が合わない場合は元のテキストを保持したままフォールバックになり、
// 文書全体のデコードを止めることはない。
package podcast

import (
	"github.com/google/uuid"

	"github.com/hitoshi/podfeed/internal/permissive"
	"github.com/hitoshi/podfeed/internal/xmltree"
)

// Guid は podcast:guid。UUID形式でない値はOtherとして保持する。
type Guid struct {
	permissive.Identifier
}

// ParseGuid はテキストをGuidとしてデコードする。
func ParseGuid(s string) Guid {
	return Guid{Identifier: permissive.DecodeIdentifier(s)}
}

// UUID はValidなGuidをUUIDとして返す。
func (g Guid) UUID() (uuid.UUID, bool) {
	s, ok := g.Valid()
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Locked は podcast:locked。Valueは "no" と "yes" をどちらも false として読む。
type Locked struct {
	Owner *string
	Value *permissive.Scalar[bool]
}

// Funding は podcast:funding。
type Funding struct {
	URL  *string
	Text *string
}

// Episode は podcast:episode。
type Episode struct {
	Display *string
	Number  *permissive.Scalar[permissive.Number]
}

// Season は podcast:season。
type Season struct {
	Name   *string
	Number *permissive.Scalar[uint64]
}

// Chapters は podcast:chapters。
type Chapters struct {
	URL  *string
	Type *string
}

// Soundbite は podcast:soundbite。時刻と長さは秒。
type Soundbite struct {
	StartTime *permissive.Scalar[float64]
	Duration  *permissive.Scalar[float64]
	Title     *string
}

// DecodeGuid は podcast:guid 要素をデコードする。
func DecodeGuid(n *xmltree.Node) *Guid {
	s, ok := n.TextValue()
	if !ok {
		return nil
	}
	g := ParseGuid(s)
	return &g
}

// DecodeLocked は podcast:locked 要素をデコードする。
func DecodeLocked(n *xmltree.Node) *Locked {
	if n == nil {
		return nil
	}
	return &Locked{
		Owner: n.OptionalAttr("owner"),
		Value: permissive.Option(n.OptionalText(), permissive.DecodeBoolYN),
	}
}

// DecodeFundings は親要素直下の podcast:funding を文書順にデコードする。
func DecodeFundings(parent *xmltree.Node) []Funding {
	nodes := parent.ChildrenNamed(xmltree.NSPodcast, "funding")
	out := make([]Funding, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, Funding{URL: n.OptionalAttr("url"), Text: n.OptionalText()})
	}
	return out
}

// DecodeEpisode は podcast:episode 要素をデコードする。
func DecodeEpisode(n *xmltree.Node) *Episode {
	if n == nil {
		return nil
	}
	return &Episode{
		Display: n.OptionalAttr("display"),
		Number:  permissive.Option(n.OptionalText(), permissive.DecodeNonNegNumber),
	}
}

// DecodeSeason は podcast:season 要素をデコードする。
func DecodeSeason(n *xmltree.Node) *Season {
	if n == nil {
		return nil
	}
	return &Season{
		Name:   n.OptionalAttr("name"),
		Number: permissive.Option(n.OptionalText(), permissive.DecodeU64),
	}
}

// DecodeChapters は podcast:chapters 要素をデコードする。
func DecodeChapters(n *xmltree.Node) *Chapters {
	if n == nil {
		return nil
	}
	return &Chapters{URL: n.OptionalAttr("url"), Type: n.OptionalAttr("type")}
}

// DecodeSoundbites は親要素直下の podcast:soundbite を文書順にデコードする。
func DecodeSoundbites(parent *xmltree.Node) []Soundbite {
	nodes := parent.ChildrenNamed(xmltree.NSPodcast, "soundbite")
	out := make([]Soundbite, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, Soundbite{
			StartTime: permissive.Option(n.OptionalAttr("startTime"), permissive.DecodeNonNegF64),
			Duration:  permissive.Option(n.OptionalAttr("duration"), permissive.DecodeNonNegF64),
			Title:     n.OptionalText(),
		})
	}
	return out
}
