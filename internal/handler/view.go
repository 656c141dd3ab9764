package handler

import (
	"math"
	"strconv"
	"time"

	"github.com/hitoshi/podfeed/internal/audit"
	"github.com/hitoshi/podfeed/internal/feed"
	"github.com/hitoshi/podfeed/internal/inspect"
	"github.com/hitoshi/podfeed/internal/itunes"
	"github.com/hitoshi/podfeed/internal/permissive"
	"github.com/hitoshi/podfeed/internal/podcast"
)

// Sanitizer はHTMLをサニタイズするインターフェース。
type Sanitizer interface {
	Sanitize(rawHTML string) string
}

// valueView はpermissiveな値のJSON表現。
// 有効な値は {"valid":true,"value":...}、フォールバックは {"valid":false,"raw":"..."} になる。
type valueView struct {
	Valid bool    `json:"valid"`
	Value any     `json:"value,omitempty"`
	Raw   *string `json:"raw,omitempty"`
}

func scalarView[T any](s *permissive.Scalar[T], conv func(T) any) *valueView {
	if s == nil {
		return nil
	}
	if v, ok := s.Get(); ok {
		return &valueView{Valid: true, Value: conv(v)}
	}
	raw, _ := s.Raw()
	return &valueView{Raw: &raw}
}

func enumView[V comparable](e *permissive.Enum[V]) *valueView {
	if e == nil {
		return nil
	}
	text := e.String()
	if e.IsOther() {
		return &valueView{Raw: &text}
	}
	return &valueView{Valid: true, Value: text}
}

func identity[T any](v T) any { return v }

// floatValue はJSONで表現できない無限大とNaNを文字列（"+Inf", "-Inf", "NaN"）にする。
func floatValue(f float64) any {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return f
}

func float32Value(f float32) any { return floatValue(float64(f)) }

func numberValue(n permissive.Number) any {
	if n.Kind == permissive.NumberU64 {
		return n.U64
	}
	return floatValue(n.F64)
}

func timeValue(t time.Time) any {
	return t.Format(time.RFC3339)
}

// inspectionResponse は検査結果のAPIレスポンス。
type inspectionResponse struct {
	ID        string        `json:"id"`
	Source    string        `json:"source"`
	SourceURL string        `json:"source_url,omitempty"`
	DecodedAt string        `json:"decoded_at"`
	ItemCount int           `json:"item_count"`
	Summary   summaryView   `json:"summary"`
	Findings  []findingView `json:"findings"`
	Feed      rssView       `json:"feed"`
}

type summaryView struct {
	Total  int            `json:"total"`
	ByKind map[string]int `json:"by_kind"`
}

type findingView struct {
	Path string `json:"path"`
	Kind string `json:"kind"`
	Raw  string `json:"raw"`
}

type rssView struct {
	Version *string      `json:"version"`
	Channel *channelView `json:"channel"`
}

type channelView struct {
	Title           *string `json:"title"`
	Link            *string `json:"link"`
	Description     *string `json:"description"`
	DescriptionHTML *string `json:"description_html,omitempty"`
	Language        *string `json:"language"`
	Copyright       *string `json:"copyright"`
	Generator       *string `json:"generator"`
	ContentEncoded  *string `json:"content_encoded"`

	ITunesAuthor     *string        `json:"itunes_author"`
	ITunesBlock      *valueView     `json:"itunes_block"`
	ITunesCategories []categoryView `json:"itunes_categories"`
	ITunesComplete   *valueView     `json:"itunes_complete"`
	ITunesExplicit   *valueView     `json:"itunes_explicit"`
	ITunesImage      *string        `json:"itunes_image"`
	ITunesNewFeedURL *string        `json:"itunes_new_feed_url"`
	ITunesOwner      *ownerView     `json:"itunes_owner"`
	ITunesType       *valueView     `json:"itunes_type"`

	PodcastGuid    *valueView    `json:"podcast_guid"`
	PodcastLocked  *lockedView   `json:"podcast_locked"`
	PodcastFunding []fundingView `json:"podcast_funding"`

	Items []itemView `json:"items"`
}

type categoryView struct {
	Text        *valueView `json:"text"`
	Subcategory *valueView `json:"subcategory"`
}

type ownerView struct {
	Email *string `json:"email"`
	Name  *string `json:"name"`
}

type lockedView struct {
	Owner *string    `json:"owner"`
	Value *valueView `json:"value"`
}

type fundingView struct {
	URL  *string `json:"url"`
	Text *string `json:"text"`
}

type itemView struct {
	Title           *string        `json:"title"`
	Link            *string        `json:"link"`
	Description     *string        `json:"description"`
	DescriptionHTML *string        `json:"description_html,omitempty"`
	Enclosure       *enclosureView `json:"enclosure"`
	GUID            *guidView      `json:"guid"`
	PubDate         *valueView     `json:"pub_date"`

	ITunesDuration    *string    `json:"itunes_duration"`
	ITunesEpisode     *valueView `json:"itunes_episode"`
	ITunesSeason      *valueView `json:"itunes_season"`
	ITunesEpisodeType *valueView `json:"itunes_episode_type"`
	ITunesExplicit    *valueView `json:"itunes_explicit"`

	PodcastEpisode             *episodeView             `json:"podcast_episode"`
	PodcastSeason              *seasonView              `json:"podcast_season"`
	PodcastTranscripts         []transcriptView         `json:"podcast_transcripts"`
	PodcastChapters            *chaptersView            `json:"podcast_chapters"`
	PodcastSoundbites          []soundbiteView          `json:"podcast_soundbites"`
	PodcastAlternateEnclosures []alternateEnclosureView `json:"podcast_alternate_enclosures"`
}

type enclosureView struct {
	URL    *string    `json:"url"`
	Length *valueView `json:"length"`
	Type   *string    `json:"type"`
}

type guidView struct {
	IsPermaLink *valueView `json:"is_perma_link"`
	Value       *string    `json:"value"`
}

type episodeView struct {
	Display *string    `json:"display"`
	Number  *valueView `json:"number"`
}

type seasonView struct {
	Name   *string    `json:"name"`
	Number *valueView `json:"number"`
}

type transcriptView struct {
	URL      *string    `json:"url"`
	Type     *string    `json:"type"`
	Language *string    `json:"language"`
	Rel      *valueView `json:"rel"`
}

type chaptersView struct {
	URL  *string `json:"url"`
	Type *string `json:"type"`
}

type soundbiteView struct {
	StartTime *valueView `json:"start_time"`
	Duration  *valueView `json:"duration"`
	Title     *string    `json:"title"`
}

type alternateEnclosureView struct {
	Type      *string        `json:"type"`
	Length    *valueView     `json:"length"`
	Bitrate   *valueView     `json:"bitrate"`
	Height    *valueView     `json:"height"`
	Lang      *string        `json:"lang"`
	Title     *string        `json:"title"`
	Rel       *string        `json:"rel"`
	Codecs    *string        `json:"codecs"`
	Default   *valueView     `json:"default"`
	Sources   []sourceView   `json:"sources"`
	Integrity *integrityView `json:"integrity"`
}

type sourceView struct {
	URI         *string `json:"uri"`
	ContentType *string `json:"content_type"`
}

type integrityView struct {
	Type  *valueView `json:"type"`
	Value *string    `json:"value"`
}

// viewBuilder は検査結果をAPIレスポンスに変換する。
type viewBuilder struct {
	sanitizer Sanitizer
}

func (b viewBuilder) inspection(r *inspect.Result) inspectionResponse {
	findings := make([]findingView, 0, len(r.Findings))
	for _, f := range r.Findings {
		findings = append(findings, findingView{Path: f.Path, Kind: string(f.Kind), Raw: f.Raw})
	}

	byKind := make(map[string]int, len(r.Summary.ByKind))
	for _, k := range audit.Kinds() {
		byKind[string(k)] = r.Summary.ByKind[k]
	}

	return inspectionResponse{
		ID:        r.ID.String(),
		Source:    string(r.Source),
		SourceURL: r.SourceURL,
		DecodedAt: r.DecodedAt.UTC().Format(time.RFC3339),
		ItemCount: r.ItemCount,
		Summary:   summaryView{Total: r.Summary.Total, ByKind: byKind},
		Findings:  findings,
		Feed:      b.rss(r.Feed.RSS),
	}
}

func (b viewBuilder) rss(r feed.RSS) rssView {
	v := rssView{Version: r.Version}
	if r.Channel != nil {
		ch := b.channel(r.Channel)
		v.Channel = &ch
	}
	return v
}

// sanitize は説明文をサニタイズしたHTMLを返す。説明文がなければnil。
func (b viewBuilder) sanitize(s *string) *string {
	if s == nil || b.sanitizer == nil {
		return nil
	}
	out := b.sanitizer.Sanitize(*s)
	return &out
}

func (b viewBuilder) channel(ch *feed.Channel) channelView {
	v := channelView{
		Title:           ch.Title,
		Link:            ch.Link,
		Description:     ch.Description,
		DescriptionHTML: b.sanitize(ch.Description),
		Language:        ch.Language,
		Copyright:       ch.Copyright,
		Generator:       ch.Generator,
		ContentEncoded:  ch.ContentEncoded,

		ITunesAuthor:     ch.ITunesAuthor,
		ITunesBlock:      enumView(ch.ITunesBlock),
		ITunesCategories: make([]categoryView, 0, len(ch.ITunesCategories)),
		ITunesComplete:   enumView(ch.ITunesComplete),
		ITunesExplicit:   scalarView(ch.ITunesExplicit, identity[bool]),
		ITunesNewFeedURL: ch.ITunesNewFeedURL,
		ITunesType:       enumView(ch.ITunesType),

		PodcastFunding: make([]fundingView, 0, len(ch.PodcastFunding)),
		Items:          make([]itemView, 0, len(ch.Items)),
	}

	for _, c := range ch.ITunesCategories {
		v.ITunesCategories = append(v.ITunesCategories, categoryOf(c))
	}
	if ch.ITunesImage != nil {
		v.ITunesImage = ch.ITunesImage.Href
	}
	if o := ch.ITunesOwner; o != nil {
		v.ITunesOwner = &ownerView{Email: o.Email, Name: o.Name}
	}
	if g := ch.PodcastGuid; g != nil {
		v.PodcastGuid = identifierView(g.Identifier)
	}
	if l := ch.PodcastLocked; l != nil {
		v.PodcastLocked = &lockedView{Owner: l.Owner, Value: scalarView(l.Value, identity[bool])}
	}
	for _, f := range ch.PodcastFunding {
		v.PodcastFunding = append(v.PodcastFunding, fundingView{URL: f.URL, Text: f.Text})
	}
	for _, it := range ch.Items {
		v.Items = append(v.Items, b.item(it))
	}
	return v
}

func categoryOf(c itunes.Category) categoryView {
	v := categoryView{Text: enumView(c.Text)}
	if c.Subcategory != nil {
		v.Subcategory = enumView(c.Subcategory.Text)
	}
	return v
}

func identifierView(id permissive.Identifier) *valueView {
	text := id.String()
	if !id.IsValid() {
		return &valueView{Raw: &text}
	}
	return &valueView{Valid: true, Value: text}
}

func (b viewBuilder) item(it feed.Item) itemView {
	v := itemView{
		Title:           it.Title,
		Link:            it.Link,
		Description:     it.Description,
		DescriptionHTML: b.sanitize(it.Description),
		PubDate:         scalarView(it.PubDate, timeValue),

		ITunesDuration:    it.ITunesDuration,
		ITunesEpisode:     scalarView(it.ITunesEpisode, identity[uint64]),
		ITunesSeason:      scalarView(it.ITunesSeason, identity[uint64]),
		ITunesEpisodeType: enumView(it.ITunesEpisodeType),
		ITunesExplicit:    scalarView(it.ITunesExplicit, identity[bool]),

		PodcastTranscripts:         make([]transcriptView, 0, len(it.PodcastTranscripts)),
		PodcastSoundbites:          make([]soundbiteView, 0, len(it.PodcastSoundbites)),
		PodcastAlternateEnclosures: make([]alternateEnclosureView, 0, len(it.PodcastAlternateEnclosures)),
	}

	if e := it.Enclosure; e != nil {
		v.Enclosure = &enclosureView{URL: e.URL, Length: scalarView(e.Length, identity[uint64]), Type: e.Type}
	}
	if g := it.GUID; g != nil {
		v.GUID = &guidView{IsPermaLink: scalarView(g.IsPermaLink, identity[bool]), Value: g.Value}
	}
	if ep := it.PodcastEpisode; ep != nil {
		v.PodcastEpisode = &episodeView{Display: ep.Display, Number: scalarView(ep.Number, numberValue)}
	}
	if s := it.PodcastSeason; s != nil {
		v.PodcastSeason = &seasonView{Name: s.Name, Number: scalarView(s.Number, identity[uint64])}
	}
	for _, t := range it.PodcastTranscripts {
		v.PodcastTranscripts = append(v.PodcastTranscripts, transcriptView{
			URL: t.URL, Type: t.Type, Language: t.Language, Rel: enumView(t.Rel),
		})
	}
	if c := it.PodcastChapters; c != nil {
		v.PodcastChapters = &chaptersView{URL: c.URL, Type: c.Type}
	}
	for _, sb := range it.PodcastSoundbites {
		v.PodcastSoundbites = append(v.PodcastSoundbites, soundbiteView{
			StartTime: scalarView(sb.StartTime, floatValue),
			Duration:  scalarView(sb.Duration, floatValue),
			Title:     sb.Title,
		})
	}
	for _, ae := range it.PodcastAlternateEnclosures {
		v.PodcastAlternateEnclosures = append(v.PodcastAlternateEnclosures, alternateEnclosureOf(ae))
	}
	return v
}

func alternateEnclosureOf(ae podcast.AlternateEnclosure) alternateEnclosureView {
	v := alternateEnclosureView{
		Type:    ae.Type,
		Length:  scalarView(ae.Length, identity[uint64]),
		Bitrate: scalarView(ae.Bitrate, float32Value),
		Height:  scalarView(ae.Height, identity[uint64]),
		Lang:    ae.Lang,
		Title:   ae.Title,
		Rel:     ae.Rel,
		Codecs:  ae.Codecs,
		Default: scalarView(ae.Default, identity[bool]),
		Sources: make([]sourceView, 0, len(ae.Sources)),
	}
	for _, s := range ae.Sources {
		v.Sources = append(v.Sources, sourceView{URI: s.URI, ContentType: s.ContentType})
	}
	if in := ae.Integrity; in != nil {
		v.Integrity = &integrityView{Type: enumView(in.Type), Value: in.Value}
	}
	return v
}
