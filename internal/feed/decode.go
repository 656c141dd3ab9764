package feed

import (
	"fmt"
	"io"

	"github.com/hitoshi/podfeed/internal/itunes"
	"github.com/hitoshi/podfeed/internal/permissive"
	"github.com/hitoshi/podfeed/internal/podcast"
	"github.com/hitoshi/podfeed/internal/xmltree"
)

// Parse はRSS文書を読み込んでデコードする。
// RSS以外の文書は xmltree.ErrNotRSS を返す。
func Parse(r io.Reader) (Feed, error) {
	root, err := xmltree.ParseFeed(r)
	if err != nil {
		return Feed{}, fmt.Errorf("failed to parse feed: %w", err)
	}
	return Decode(root), nil
}

// Decode はrss要素のノードからフィードを組み立てる。失敗することはない。
func Decode(root *xmltree.Node) Feed {
	return Feed{
		RSS: RSS{
			Version: root.OptionalAttr("version"),
			Channel: decodeChannel(root.Child("", "channel")),
		},
	}
}

func decodeChannel(n *xmltree.Node) *Channel {
	if n == nil {
		return nil
	}

	itemNodes := n.ChildrenNamed("", "item")
	items := make([]Item, 0, len(itemNodes))
	for _, in := range itemNodes {
		items = append(items, decodeItem(in))
	}

	return &Channel{
		Title:       n.OptionalChildText("", "title"),
		Link:        n.OptionalChildText("", "link"),
		Description: n.OptionalChildText("", "description"),
		Language:    n.OptionalChildText("", "language"),
		Copyright:   n.OptionalChildText("", "copyright"),
		Generator:   n.OptionalChildText("", "generator"),

		ContentEncoded: n.OptionalChildText(xmltree.NSContent, "encoded"),

		ITunesAuthor:     n.OptionalChildText(xmltree.NSITunes, "author"),
		ITunesBlock:      itunes.DecodeYes(n.Child(xmltree.NSITunes, "block")),
		ITunesCategories: itunes.DecodeCategories(n),
		ITunesComplete:   itunes.DecodeYes(n.Child(xmltree.NSITunes, "complete")),
		ITunesExplicit:   permissive.Option(n.OptionalChildText(xmltree.NSITunes, "explicit"), permissive.DecodeBool),
		ITunesImage:      itunes.DecodeImage(n.Child(xmltree.NSITunes, "image")),
		ITunesNewFeedURL: n.OptionalChildText(xmltree.NSITunes, "new-feed-url"),
		ITunesOwner:      itunes.DecodeOwner(n.Child(xmltree.NSITunes, "owner")),
		ITunesType:       itunes.DecodePodcastType(n.Child(xmltree.NSITunes, "type")),

		PodcastGuid:    podcast.DecodeGuid(n.Child(xmltree.NSPodcast, "guid")),
		PodcastLocked:  podcast.DecodeLocked(n.Child(xmltree.NSPodcast, "locked")),
		PodcastFunding: podcast.DecodeFundings(n),

		Items: items,
	}
}

func decodeItem(n *xmltree.Node) Item {
	return Item{
		Title:       n.OptionalChildText("", "title"),
		Link:        n.OptionalChildText("", "link"),
		Description: n.OptionalChildText("", "description"),
		Enclosure:   decodeEnclosure(n.Child("", "enclosure")),
		GUID:        decodeGUID(n.Child("", "guid")),
		PubDate:     permissive.Option(n.OptionalChildText("", "pubDate"), permissive.DecodeTimestamp),

		ITunesDuration:    n.OptionalChildText(xmltree.NSITunes, "duration"),
		ITunesEpisode:     permissive.Option(n.OptionalChildText(xmltree.NSITunes, "episode"), permissive.DecodeU64),
		ITunesSeason:      permissive.Option(n.OptionalChildText(xmltree.NSITunes, "season"), permissive.DecodeU64),
		ITunesEpisodeType: itunes.DecodeEpisodeType(n.Child(xmltree.NSITunes, "episodeType")),
		ITunesExplicit:    permissive.Option(n.OptionalChildText(xmltree.NSITunes, "explicit"), permissive.DecodeBool),

		PodcastEpisode:             podcast.DecodeEpisode(n.Child(xmltree.NSPodcast, "episode")),
		PodcastSeason:              podcast.DecodeSeason(n.Child(xmltree.NSPodcast, "season")),
		PodcastTranscripts:         podcast.DecodeTranscripts(n),
		PodcastChapters:            podcast.DecodeChapters(n.Child(xmltree.NSPodcast, "chapters")),
		PodcastSoundbites:          podcast.DecodeSoundbites(n),
		PodcastAlternateEnclosures: podcast.DecodeAlternateEnclosures(n),
	}
}

func decodeEnclosure(n *xmltree.Node) *Enclosure {
	if n == nil {
		return nil
	}
	return &Enclosure{
		URL:    n.OptionalAttr("url"),
		Length: permissive.Option(n.OptionalAttr("length"), permissive.DecodeU64),
		Type:   n.OptionalAttr("type"),
	}
}

func decodeGUID(n *xmltree.Node) *GUID {
	if n == nil {
		return nil
	}
	return &GUID{
		IsPermaLink: permissive.Option(n.OptionalAttr("isPermaLink"), permissive.DecodeBool),
		Value:       n.OptionalText(),
	}
}
