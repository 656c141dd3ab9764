package itunes

import (
	"strings"
	"testing"

	"github.com/hitoshi/podfeed/internal/xmltree"
)

func parse(t *testing.T, doc string) *xmltree.Node {
	t.Helper()
	root, err := xmltree.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return root
}

func TestParseYes(t *testing.T) {
	if !ParseYes("Yes").Is(FlagYes) {
		t.Error(`"Yes" は FlagYes になるべき`)
	}
	for _, raw := range []string{"yes", "YES", "No", "true", ""} {
		v := ParseYes(raw)
		other, ok := v.Other()
		if !ok || other != raw {
			t.Errorf("ParseYes(%q) = %v, want Other(%q)", raw, v, raw)
		}
	}
}

func TestParsePodcastType(t *testing.T) {
	tests := []struct {
		raw  string
		want PodcastKind
	}{
		{"episodic", Episodic},
		{"serial", Serial},
	}
	for _, tt := range tests {
		if !ParsePodcastType(tt.raw).Is(tt.want) {
			t.Errorf("ParsePodcastType(%q) は %v になるべき", tt.raw, tt.want)
		}
	}
	if !ParsePodcastType("Serial").IsOther() {
		t.Error("大文字始まりの Serial は Other になるべき")
	}
}

func TestParseEpisodeType(t *testing.T) {
	for raw, want := range map[string]EpisodeKind{"full": Full, "trailer": Trailer, "bonus": Bonus} {
		v := ParseEpisodeType(raw)
		if !v.Is(want) {
			t.Errorf("ParseEpisodeType(%q) は %v になるべき", raw, want)
		}
		if v.String() != raw {
			t.Errorf("String() = %q, want %q", v.String(), raw)
		}
	}
	if got := ParseEpisodeType("extra").String(); got != "extra" {
		t.Errorf("Other の String() = %q", got)
	}
}

// TestCategoryRoundTrip は宣言順の全カテゴリ名が同じバリアントに戻り、同じ表記で表示されることを検証する。
func TestCategoryRoundTrip(t *testing.T) {
	wantCategories := []string{
		"Arts", "Business", "Comedy", "Education", "Fiction", "Government", "History",
		"Health & Fitness", "Kids & Family", "Leisure", "Music", "News", "Religion & Spirituality",
		"Science", "Society & Culture", "Sports", "Technology", "True Crime", "TV & Film",
	}
	ids := Categories()
	if len(ids) != len(wantCategories) {
		t.Fatalf("len(Categories()) = %d, want %d", len(ids), len(wantCategories))
	}
	for i, text := range wantCategories {
		got := ParseCategoryName(text)
		if !got.Is(ids[i]) || got.String() != text {
			t.Errorf("ParseCategoryName(%q) = %v, want variant %d", text, got, ids[i])
		}
	}

	wantSubcategories := []string{
		"Books", "Design", "Fashion & Beauty", "Food", "Performing Arts", "Visual Arts", "Careers",
		"Entrepreneurship", "Investing", "Management", "Marketing", "Non-Profit", "Comedy Interviews",
		"Improv", "Stand-Up", "Courses", "How To", "Language Learning", "Self-Improvement",
		"Comedy Fiction", "Drama", "Science Fiction", "Alternative Health", "Fitness", "Medicine",
		"Mental Health", "Nutrition", "Sexuality", "Education for Kids", "Parenting", "Pets & Animals",
		"Stories for Kids", "Animation & Manga", "Automotive", "Aviation", "Crafts", "Games", "Hobbies",
		"Home & Garden", "Video Games", "Music Commentary", "Music History", "Music Interviews",
		"Business News", "Daily News", "Entertainment News", "News Commentary", "Politics",
		"Sports News", "Tech News", "Buddhism", "Christianity", "Hinduism", "Islam", "Judaism",
		"Religion", "Spirituality", "Astronomy", "Chemistry", "Earth Sciences", "Life Sciences",
		"Mathematics", "Natural Sciences", "Nature", "Physics", "Social Sciences", "Documentary",
		"Personal Journals", "Philosophy", "Places & Travel", "Relationships", "Baseball", "Basketball",
		"Cricket", "Fantasy Sports", "Football", "Golf", "Hockey", "Rugby", "Running", "Soccer",
		"Swimming", "Tennis", "Volleyball", "Wilderness", "Wrestling", "After Shows", "Film History",
		"Film Interviews", "Film Reviews", "TV Reviews",
	}
	subIDs := Subcategories()
	if len(subIDs) != len(wantSubcategories) {
		t.Fatalf("len(Subcategories()) = %d, want %d", len(subIDs), len(wantSubcategories))
	}
	for i, text := range wantSubcategories {
		got := ParseSubcategoryName(text)
		if !got.Is(subIDs[i]) || got.String() != text {
			t.Errorf("ParseSubcategoryName(%q) = %v, want variant %d", text, got, subIDs[i])
		}
	}
}

func TestParseCategoryName_Unknown(t *testing.T) {
	v := ParseCategoryName("Society and Culture")
	if other, ok := v.Other(); !ok || other != "Society and Culture" {
		t.Errorf("未知のカテゴリ名は Other になるべき: %v", v)
	}
}

func TestDecodeCategories(t *testing.T) {
	root := parse(t, `<channel xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
  <itunes:category text="Society &amp; Culture">
    <itunes:category text="Documentary"/>
    <itunes:category text="Philosophy"/>
  </itunes:category>
  <itunes:category text="Podcasting"/>
  <itunes:category/>
</channel>`)

	categories := DecodeCategories(root)
	if len(categories) != 3 {
		t.Fatalf("len(categories) = %d, want 3", len(categories))
	}

	first := categories[0]
	if first.Text == nil || !first.Text.Is(CategorySocietyAndCulture) {
		t.Errorf("categories[0].Text = %v", first.Text)
	}
	if first.Subcategory == nil || first.Subcategory.Text == nil || !first.Subcategory.Text.Is(SubcategoryDocumentary) {
		t.Errorf("サブカテゴリは最初の Documentary になるべき: %+v", first.Subcategory)
	}

	if other, ok := categories[1].Text.Other(); !ok || other != "Podcasting" {
		t.Errorf("categories[1].Text = %v, want Other(Podcasting)", categories[1].Text)
	}
	if categories[1].Subcategory != nil {
		t.Error("サブカテゴリがない場合は nil になるべき")
	}

	if categories[2].Text != nil {
		t.Error("text 属性がない場合は nil になるべき")
	}
}

func TestDecodeCategories_Empty(t *testing.T) {
	categories := DecodeCategories(parse(t, `<channel/>`))
	if categories == nil || len(categories) != 0 {
		t.Errorf("カテゴリがない場合は空のスライスを返すべき: %#v", categories)
	}
}

func TestDecodeOwner(t *testing.T) {
	root := parse(t, `<channel xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
  <itunes:owner><itunes:name>Jane Doe</itunes:name></itunes:owner>
</channel>`)

	owner := DecodeOwner(root.Child(xmltree.NSITunes, "owner"))
	if owner == nil {
		t.Fatal("owner が nil")
	}
	if owner.Name == nil || *owner.Name != "Jane Doe" {
		t.Errorf("Name = %v", owner.Name)
	}
	if owner.Email != nil {
		t.Errorf("Email = %q, want nil", *owner.Email)
	}
	if DecodeOwner(nil) != nil {
		t.Error("要素がない場合は nil を返すべき")
	}
}

func TestDecodeImage(t *testing.T) {
	root := parse(t, `<channel xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
  <itunes:image href="https://example.com/cover.jpg"/>
</channel>`)
	img := DecodeImage(root.Child(xmltree.NSITunes, "image"))
	if img == nil || img.Href == nil || *img.Href != "https://example.com/cover.jpg" {
		t.Errorf("image = %+v", img)
	}
}

func TestDecodeYes_Absent(t *testing.T) {
	root := parse(t, `<channel xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd"><itunes:block>No</itunes:block></channel>`)
	if DecodeYes(root.Child(xmltree.NSITunes, "complete")) != nil {
		t.Error("要素がない場合は nil を返すべき")
	}
	block := DecodeYes(root.Child(xmltree.NSITunes, "block"))
	if block == nil || !block.IsOther() {
		t.Errorf("block = %v, want Other(No)", block)
	}
}
