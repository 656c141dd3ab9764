package podcast

import (
	"strings"
	"testing"

	"github.com/hitoshi/podfeed/internal/permissive"
	"github.com/hitoshi/podfeed/internal/xmltree"
)

const fixture = `<item xmlns:podcast="https://podcastindex.org/namespace/1.0">
  <podcast:guid>917393e3-1b1e-5cef-ace4-edaa54e1f810</podcast:guid>
  <podcast:locked owner="jane@example.com">yes</podcast:locked>
  <podcast:funding url="https://example.com/donate">Support the show</podcast:funding>
  <podcast:funding url="https://example.com/member"/>
  <podcast:episode display="Ch.3">3.5</podcast:episode>
  <podcast:season name="Race for the Whitehouse">-1</podcast:season>
  <podcast:chapters url="https://example.com/chapters.json" type="application/json+chapters"/>
  <podcast:soundbite startTime="73.0" duration="60.0">Why the Podcast Namespace Matters</podcast:soundbite>
  <podcast:soundbite startTime="-5" duration="abc"/>
  <podcast:transcript url="https://example.com/ep3.vtt" type="text/vtt" language="es" rel="Captions"/>
  <podcast:transcript url="https://example.com/ep3.html" type="text/html" rel="chapters"/>
  <podcast:alternateEnclosure type="audio/opus" length="32400000" bitrate="96000.5" height="1080" title="Opus" default="true">
    <podcast:source uri="https://example.com/ep3.opus"/>
    <podcast:source uri="ipfs://QmdwGqd3d2gFPGeJNLLCshdiPert45fMu84552Y4XHTy4y" contentType="audio/opus"/>
    <podcast:integrity type="sri" value="sha384-ExVqijgYHm15PqQqdXfW95x+Rs6C+d6E/ICxyQOeFevnxNLR/wtJNrNYTjIysUBo"/>
  </podcast:alternateEnclosure>
  <podcast:alternateEnclosure length="big" bitrate="fast" default="yes">
    <podcast:integrity type="md5" value="x"/>
  </podcast:alternateEnclosure>
</item>`

func parseFixture(t *testing.T) *xmltree.Node {
	t.Helper()
	root, err := xmltree.Parse(strings.NewReader(fixture))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return root
}

func TestParseGuid(t *testing.T) {
	g := ParseGuid("917393e3-1b1e-5cef-ace4-edaa54e1f810")
	id, ok := g.UUID()
	if !ok {
		t.Fatal("UUID形式の値は UUID() で取得できるべき")
	}
	if id.String() != "917393e3-1b1e-5cef-ace4-edaa54e1f810" {
		t.Errorf("UUID = %s", id)
	}

	other := ParseGuid("not-a-guid")
	if _, ok := other.UUID(); ok {
		t.Error("Other の UUID() は false を返すべき")
	}
	if s, ok := other.Other(); !ok || s != "not-a-guid" {
		t.Errorf("Other() = (%q, %v)", s, ok)
	}
}

func TestDecodeGuid(t *testing.T) {
	root := parseFixture(t)
	g := DecodeGuid(root.Child(xmltree.NSPodcast, "guid"))
	if g == nil || !g.IsValid() {
		t.Fatalf("guid = %v", g)
	}
	if DecodeGuid(nil) != nil {
		t.Error("要素がない場合は nil を返すべき")
	}
}

// TestDecodeLocked_YesIsFalse は "yes" が false として読まれる既存の挙動を検証する。
func TestDecodeLocked_YesIsFalse(t *testing.T) {
	root := parseFixture(t)
	locked := DecodeLocked(root.Child(xmltree.NSPodcast, "locked"))
	if locked == nil {
		t.Fatal("locked が nil")
	}
	if locked.Owner == nil || *locked.Owner != "jane@example.com" {
		t.Errorf("Owner = %v", locked.Owner)
	}
	v, ok := locked.Value.Get()
	if !ok || v {
		t.Errorf("Value = (%v, %v), want (false, true)", v, ok)
	}
}

func TestDecodeFundings(t *testing.T) {
	fundings := DecodeFundings(parseFixture(t))
	if len(fundings) != 2 {
		t.Fatalf("len(fundings) = %d, want 2", len(fundings))
	}
	if fundings[0].Text == nil || *fundings[0].Text != "Support the show" {
		t.Errorf("fundings[0].Text = %v", fundings[0].Text)
	}
	if fundings[1].URL == nil || *fundings[1].URL != "https://example.com/member" {
		t.Errorf("fundings[1].URL = %v", fundings[1].URL)
	}
	if fundings[1].Text == nil || *fundings[1].Text != "" {
		t.Errorf("空要素のテキストは空文字列になるべき: %v", fundings[1].Text)
	}
}

func TestDecodeEpisodeAndSeason(t *testing.T) {
	root := parseFixture(t)

	ep := DecodeEpisode(root.Child(xmltree.NSPodcast, "episode"))
	n, ok := ep.Number.Get()
	if !ok || n.Kind != permissive.NumberF64 || n.F64 != 3.5 {
		t.Errorf("episode = (%v, %v), want 3.5", n, ok)
	}
	if ep.Display == nil || *ep.Display != "Ch.3" {
		t.Errorf("Display = %v", ep.Display)
	}

	season := DecodeSeason(root.Child(xmltree.NSPodcast, "season"))
	if raw, ok := season.Number.Raw(); !ok || raw != "-1" {
		t.Errorf("負の season は Fallback(-1) になるべき: %v", season.Number)
	}
	if season.Name == nil || *season.Name != "Race for the Whitehouse" {
		t.Errorf("Name = %v", season.Name)
	}
}

func TestDecodeChapters(t *testing.T) {
	ch := DecodeChapters(parseFixture(t).Child(xmltree.NSPodcast, "chapters"))
	if ch == nil || ch.Type == nil || *ch.Type != "application/json+chapters" {
		t.Errorf("chapters = %+v", ch)
	}
}

func TestDecodeSoundbites(t *testing.T) {
	sbs := DecodeSoundbites(parseFixture(t))
	if len(sbs) != 2 {
		t.Fatalf("len(soundbites) = %d, want 2", len(sbs))
	}
	if v, ok := sbs[0].StartTime.Get(); !ok || v != 73 {
		t.Errorf("startTime = (%v, %v)", v, ok)
	}
	if raw, ok := sbs[1].StartTime.Raw(); !ok || raw != "-5" {
		t.Errorf("負の startTime は Fallback になるべき: %v", sbs[1].StartTime)
	}
	if raw, ok := sbs[1].Duration.Raw(); !ok || raw != "abc" {
		t.Errorf("duration = %v", sbs[1].Duration)
	}
	if sbs[1].Title != nil {
		t.Error("テキストのない soundbite の Title は nil になるべき")
	}
}

func TestDecodeTranscripts(t *testing.T) {
	ts := DecodeTranscripts(parseFixture(t))
	if len(ts) != 2 {
		t.Fatalf("len(transcripts) = %d, want 2", len(ts))
	}
	if ts[0].Rel == nil || !ts[0].Rel.Is(Captions) {
		t.Errorf("rel=Captions は Captions になるべき: %v", ts[0].Rel)
	}
	if got := ts[0].Rel.String(); got != "captions" {
		t.Errorf("Captions の String() = %q, want captions", got)
	}
	if other, ok := ts[1].Rel.Other(); !ok || other != "chapters" {
		t.Errorf("rel = %v, want Other(chapters)", ts[1].Rel)
	}
	if ts[1].Language != nil {
		t.Error("language 属性がない場合は nil になるべき")
	}
}

// TestParseRel は rel が "Captions" との完全一致のみでバリアントになることを検証する。
// 表示形式の "captions" をそのまま入力してもOtherとして保持される。
func TestParseRel(t *testing.T) {
	if !ParseRel("Captions").Is(Captions) {
		t.Error("ParseRel(Captions) は Captions になるべき")
	}
	for _, raw := range []string{"captions", "CAPTIONS", " Captions"} {
		r := ParseRel(raw)
		if other, ok := r.Other(); !ok || other != raw {
			t.Errorf("ParseRel(%q) = %v, want Other(%q)", raw, r, raw)
		}
	}
}

func TestDecodeAlternateEnclosures(t *testing.T) {
	encs := DecodeAlternateEnclosures(parseFixture(t))
	if len(encs) != 2 {
		t.Fatalf("len(alternateEnclosures) = %d, want 2", len(encs))
	}

	opus := encs[0]
	if v, ok := opus.Length.Get(); !ok || v != 32400000 {
		t.Errorf("length = (%v, %v)", v, ok)
	}
	if v, ok := opus.Bitrate.Get(); !ok || v != 96000.5 {
		t.Errorf("bitrate = (%v, %v)", v, ok)
	}
	if v, ok := opus.Default.Get(); !ok || !v {
		t.Errorf("default = (%v, %v)", v, ok)
	}
	if len(opus.Sources) != 2 {
		t.Fatalf("len(sources) = %d, want 2", len(opus.Sources))
	}
	if opus.Sources[0].ContentType != nil {
		t.Error("contentType がない場合は nil になるべき")
	}
	if opus.Integrity == nil || opus.Integrity.Type == nil || !opus.Integrity.Type.Is(SRI) {
		t.Errorf("integrity = %+v", opus.Integrity)
	}
	if opus.Lang != nil {
		t.Error("lang 属性がない場合は nil になるべき")
	}

	broken := encs[1]
	if raw, _ := broken.Length.Raw(); raw != "big" {
		t.Errorf("length = %v, want Fallback(big)", broken.Length)
	}
	if raw, _ := broken.Bitrate.Raw(); raw != "fast" {
		t.Errorf("bitrate = %v, want Fallback(fast)", broken.Bitrate)
	}
	if raw, _ := broken.Default.Raw(); raw != "yes" {
		t.Errorf("default = %v, want Fallback(yes)", broken.Default)
	}
	if broken.Type != nil || broken.Height != nil {
		t.Error("属性がない場合は nil になるべき")
	}
	if broken.Sources == nil || len(broken.Sources) != 0 {
		t.Errorf("source がない場合は空のスライスになるべき: %#v", broken.Sources)
	}
	if other, ok := broken.Integrity.Type.Other(); !ok || other != "md5" {
		t.Errorf("integrity type = %v, want Other(md5)", broken.Integrity.Type)
	}
}

func TestDecodeRepeated_Empty(t *testing.T) {
	root, err := xmltree.Parse(strings.NewReader(`<item/>`))
	if err != nil {
		t.Fatal(err)
	}
	if got := DecodeTranscripts(root); got == nil || len(got) != 0 {
		t.Errorf("transcripts = %#v", got)
	}
	if got := DecodeSoundbites(root); got == nil || len(got) != 0 {
		t.Errorf("soundbites = %#v", got)
	}
	if got := DecodeAlternateEnclosures(root); got == nil || len(got) != 0 {
		t.Errorf("alternateEnclosures = %#v", got)
	}
	if got := DecodeFundings(root); got == nil || len(got) != 0 {
		t.Errorf("fundings = %#v", got)
	}
}
