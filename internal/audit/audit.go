// Package audit はデコード済みフィードからフォールバックになったフィールドを列挙する。
package audit

import (
	"fmt"

	"github.com/hitoshi/podfeed/internal/feed"
	"github.com/hitoshi/podfeed/internal/itunes"
	"github.com/hitoshi/podfeed/internal/permissive"
	"github.com/hitoshi/podfeed/internal/podcast"
)

// Kind はフォールバックになった値の種類。
type Kind string

const (
	KindScalar     Kind = "scalar"
	KindEnum       Kind = "enum"
	KindIdentifier Kind = "identifier"
	KindTimestamp  Kind = "timestamp"
)

// Kinds は全ての種類を返す。
func Kinds() []Kind {
	return []Kind{KindScalar, KindEnum, KindIdentifier, KindTimestamp}
}

// Finding はフォールバックになったフィールド1つ分。
// Pathは "channel.items[0].enclosure.length" の形式で、Rawは元のテキスト。
type Finding struct {
	Path string
	Kind Kind
	Raw  string
}

// Summary は種類別の件数。
type Summary struct {
	Total  int
	ByKind map[Kind]int
}

// Audit はフィード内のフォールバックを列挙する。
// 順序はフィールドの宣言順で、繰り返し要素は文書順になる。
func Audit(f feed.Feed) []Finding {
	a := &auditor{findings: []Finding{}}
	if ch := f.RSS.Channel; ch != nil {
		a.channel("channel", ch)
	}
	return a.findings
}

// Summarize は検出結果を種類別に集計する。
func Summarize(findings []Finding) Summary {
	s := Summary{ByKind: make(map[Kind]int, len(Kinds()))}
	for _, k := range Kinds() {
		s.ByKind[k] = 0
	}
	for _, f := range findings {
		s.Total++
		s.ByKind[f.Kind]++
	}
	return s
}

type auditor struct {
	findings []Finding
}

func (a *auditor) add(path string, kind Kind, raw string) {
	a.findings = append(a.findings, Finding{Path: path, Kind: kind, Raw: raw})
}

func scalar[T any](a *auditor, path string, kind Kind, s *permissive.Scalar[T]) {
	if s == nil {
		return
	}
	if raw, ok := s.Raw(); ok {
		a.add(path, kind, raw)
	}
}

func enum[V comparable](a *auditor, path string, e *permissive.Enum[V]) {
	if e == nil {
		return
	}
	if raw, ok := e.Other(); ok {
		a.add(path, KindEnum, raw)
	}
}

func (a *auditor) channel(path string, ch *feed.Channel) {
	enum(a, path+".itunes:block", ch.ITunesBlock)
	for i, c := range ch.ITunesCategories {
		a.category(fmt.Sprintf("%s.itunes:category[%d]", path, i), c)
	}
	enum(a, path+".itunes:complete", ch.ITunesComplete)
	scalar(a, path+".itunes:explicit", KindScalar, ch.ITunesExplicit)
	enum(a, path+".itunes:type", ch.ITunesType)

	if g := ch.PodcastGuid; g != nil {
		if raw, ok := g.Other(); ok {
			a.add(path+".podcast:guid", KindIdentifier, raw)
		}
	}
	if l := ch.PodcastLocked; l != nil {
		scalar(a, path+".podcast:locked", KindScalar, l.Value)
	}

	for i, item := range ch.Items {
		a.item(fmt.Sprintf("%s.items[%d]", path, i), item)
	}
}

func (a *auditor) category(path string, c itunes.Category) {
	enum(a, path+".text", c.Text)
	if c.Subcategory != nil {
		enum(a, path+".itunes:category.text", c.Subcategory.Text)
	}
}

func (a *auditor) item(path string, it feed.Item) {
	if e := it.Enclosure; e != nil {
		scalar(a, path+".enclosure.length", KindScalar, e.Length)
	}
	if g := it.GUID; g != nil {
		scalar(a, path+".guid.isPermaLink", KindScalar, g.IsPermaLink)
	}
	scalar(a, path+".pubDate", KindTimestamp, it.PubDate)

	scalar(a, path+".itunes:episode", KindScalar, it.ITunesEpisode)
	scalar(a, path+".itunes:season", KindScalar, it.ITunesSeason)
	enum(a, path+".itunes:episodeType", it.ITunesEpisodeType)
	scalar(a, path+".itunes:explicit", KindScalar, it.ITunesExplicit)

	if ep := it.PodcastEpisode; ep != nil {
		scalar(a, path+".podcast:episode", KindScalar, ep.Number)
	}
	if s := it.PodcastSeason; s != nil {
		scalar(a, path+".podcast:season", KindScalar, s.Number)
	}
	for i, t := range it.PodcastTranscripts {
		enum(a, fmt.Sprintf("%s.podcast:transcript[%d].rel", path, i), t.Rel)
	}
	for i, sb := range it.PodcastSoundbites {
		p := fmt.Sprintf("%s.podcast:soundbite[%d]", path, i)
		scalar(a, p+".startTime", KindScalar, sb.StartTime)
		scalar(a, p+".duration", KindScalar, sb.Duration)
	}
	for i, ae := range it.PodcastAlternateEnclosures {
		a.alternateEnclosure(fmt.Sprintf("%s.podcast:alternateEnclosure[%d]", path, i), ae)
	}
}

func (a *auditor) alternateEnclosure(path string, ae podcast.AlternateEnclosure) {
	scalar(a, path+".length", KindScalar, ae.Length)
	scalar(a, path+".bitrate", KindScalar, ae.Bitrate)
	scalar(a, path+".height", KindScalar, ae.Height)
	scalar(a, path+".default", KindScalar, ae.Default)
	if in := ae.Integrity; in != nil {
		enum(a, path+".podcast:integrity.type", in.Type)
	}
}
