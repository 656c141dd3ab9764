// Package itunes はApple Podcastsの itunes: 名前空間の要素を表す型とデコーダを提供する。
package itunes

import (
	"github.com/hitoshi/podfeed/internal/permissive"
	"github.com/hitoshi/podfeed/internal/xmltree"
)

// Flag は itunes:block や itunes:complete のように "Yes" だけが意味を持つ値。
type Flag int

const (
	FlagYes Flag = iota + 1
)

// Yes は "Yes" 以外の値をOtherとして保持する。
type Yes = permissive.Enum[Flag]

var yesValues = permissive.NewEnumTable(
	permissive.Literal[Flag]{Variant: FlagYes, Text: "Yes"},
)

// ParseYes は itunes:block / itunes:complete のテキストをデコードする。
func ParseYes(s string) Yes {
	return yesValues.Decode(s)
}

// PodcastKind は番組の配信形態。
type PodcastKind int

const (
	Episodic PodcastKind = iota + 1
	Serial
)

// PodcastType は itunes:type の値。
type PodcastType = permissive.Enum[PodcastKind]

var podcastTypes = permissive.NewEnumTable(
	permissive.Literal[PodcastKind]{Variant: Episodic, Text: "episodic"},
	permissive.Literal[PodcastKind]{Variant: Serial, Text: "serial"},
)

// ParsePodcastType は itunes:type のテキストをデコードする。
func ParsePodcastType(s string) PodcastType {
	return podcastTypes.Decode(s)
}

// EpisodeKind はエピソードの種別。
type EpisodeKind int

const (
	Full EpisodeKind = iota + 1
	Trailer
	Bonus
)

// EpisodeType は itunes:episodeType の値。
type EpisodeType = permissive.Enum[EpisodeKind]

var episodeTypes = permissive.NewEnumTable(
	permissive.Literal[EpisodeKind]{Variant: Full, Text: "full"},
	permissive.Literal[EpisodeKind]{Variant: Trailer, Text: "trailer"},
	permissive.Literal[EpisodeKind]{Variant: Bonus, Text: "bonus"},
)

// ParseEpisodeType は itunes:episodeType のテキストをデコードする。
func ParseEpisodeType(s string) EpisodeType {
	return episodeTypes.Decode(s)
}

// Image は itunes:image。
type Image struct {
	Href *string
}

// Owner は itunes:owner。
type Owner struct {
	Email *string
	Name  *string
}

// Category は itunes:category。サブカテゴリは最初の1つだけを保持する。
type Category struct {
	Text        *CategoryName
	Subcategory *Subcategory
}

// Subcategory は itunes:category の中に入れ子になった itunes:category。
type Subcategory struct {
	Text *SubcategoryName
}

// DecodeImage は itunes:image 要素をデコードする。nが nil の場合は nil を返す。
func DecodeImage(n *xmltree.Node) *Image {
	if n == nil {
		return nil
	}
	return &Image{Href: n.OptionalAttr("href")}
}

// DecodeOwner は itunes:owner 要素をデコードする。
func DecodeOwner(n *xmltree.Node) *Owner {
	if n == nil {
		return nil
	}
	return &Owner{
		Email: n.OptionalChildText(xmltree.NSITunes, "email"),
		Name:  n.OptionalChildText(xmltree.NSITunes, "name"),
	}
}

// DecodeCategories は親要素直下の itunes:category を文書順にデコードする。
// 1つもない場合は空のスライスを返す。
func DecodeCategories(parent *xmltree.Node) []Category {
	nodes := parent.ChildrenNamed(xmltree.NSITunes, "category")
	categories := make([]Category, 0, len(nodes))
	for _, n := range nodes {
		c := Category{}
		if s, ok := n.Attr("text"); ok {
			name := ParseCategoryName(s)
			c.Text = &name
		}
		if sub := n.Child(xmltree.NSITunes, "category"); sub != nil {
			c.Subcategory = &Subcategory{}
			if s, ok := sub.Attr("text"); ok {
				name := ParseSubcategoryName(s)
				c.Subcategory.Text = &name
			}
		}
		categories = append(categories, c)
	}
	return categories
}

// DecodeYes は要素のテキストを Yes としてデコードする。
func DecodeYes(n *xmltree.Node) *Yes {
	s, ok := n.TextValue()
	if !ok {
		return nil
	}
	v := ParseYes(s)
	return &v
}

// DecodePodcastType は itunes:type 要素をデコードする。
func DecodePodcastType(n *xmltree.Node) *PodcastType {
	s, ok := n.TextValue()
	if !ok {
		return nil
	}
	v := ParsePodcastType(s)
	return &v
}

// DecodeEpisodeType は itunes:episodeType 要素をデコードする。
func DecodeEpisodeType(n *xmltree.Node) *EpisodeType {
	s, ok := n.TextValue()
	if !ok {
		return nil
	}
	v := ParseEpisodeType(s)
	return &v
}
