// Package feed はRSSフィード全体のスキーマと、正規化済みのXML木からのデコードを提供する。
//
// 各フィールドはノードが存在しなければnil、繰り返し要素は存在しなければ空のスライスになる。
// 値の形が合わない場合はpermissiveパッケージのフォールバックとして元のテキストを保持する。
// デコード後の値は変更しない。
package feed

import (
	"github.com/hitoshi/podfeed/internal/itunes"
	"github.com/hitoshi/podfeed/internal/permissive"
	"github.com/hitoshi/podfeed/internal/podcast"
)

// Feed はフィード文書のルート。
type Feed struct {
	RSS RSS
}

// RSS は rss 要素。
type RSS struct {
	Version *string
	Channel *Channel
}

// Channel は channel 要素。
type Channel struct {
	Title       *string
	Link        *string
	Description *string
	Language    *string
	Copyright   *string
	Generator   *string

	ContentEncoded *string

	ITunesAuthor     *string
	ITunesBlock      *itunes.Yes
	ITunesCategories []itunes.Category
	ITunesComplete   *itunes.Yes
	ITunesExplicit   *permissive.Scalar[bool]
	ITunesImage      *itunes.Image
	ITunesNewFeedURL *string
	ITunesOwner      *itunes.Owner
	ITunesType       *itunes.PodcastType

	PodcastGuid    *podcast.Guid
	PodcastLocked  *podcast.Locked
	PodcastFunding []podcast.Funding

	Items []Item
}

// Item は item 要素。1エピソードに相当する。
type Item struct {
	Title       *string
	Link        *string
	Description *string
	Enclosure   *Enclosure
	GUID        *GUID
	PubDate     *permissive.Timestamp

	ITunesDuration    *string
	ITunesEpisode     *permissive.Scalar[uint64]
	ITunesSeason      *permissive.Scalar[uint64]
	ITunesEpisodeType *itunes.EpisodeType
	ITunesExplicit    *permissive.Scalar[bool]

	PodcastEpisode             *podcast.Episode
	PodcastSeason              *podcast.Season
	PodcastTranscripts         []podcast.Transcript
	PodcastChapters            *podcast.Chapters
	PodcastSoundbites          []podcast.Soundbite
	PodcastAlternateEnclosures []podcast.AlternateEnclosure
}

// Enclosure はエピソードのメディアファイルへの参照。
type Enclosure struct {
	URL    *string
	Length *permissive.Scalar[uint64]
	Type   *string
}

// GUID は item の guid 要素。
type GUID struct {
	IsPermaLink *permissive.Scalar[bool]
	Value       *string
}
