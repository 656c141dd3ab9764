package xmltree

// フィードのスキーマが参照する名前空間URI。
const (
	NSITunes  = "http://www.itunes.com/dtds/podcast-1.0.dtd"
	NSPodcast = "https://podcastindex.org/namespace/1.0"
	NSContent = "http://purl.org/rss/1.0/modules/content/"
)
