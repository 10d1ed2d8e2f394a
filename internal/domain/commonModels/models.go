package commonModels

// Source is one configured page to crawl, identified by a human label.
type Source struct {
	Label string
	URL   string
}

// Chunk is a bounded window of words cut from a source's normalized text.
// Chunks are never persisted on their own; they exist only long enough to be
// embedded and upserted as a vector record.
type Chunk struct {
	Text  string
	Order int
}
