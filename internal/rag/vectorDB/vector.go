package vectorDB

import "context"

// Record is one embedding vector with its attached metadata. Id is derived
// from the record's content, so upserting the same (url, text) pair again
// overwrites instead of duplicating.
type Record struct {
	Id     string
	Vector []float32
	URL    string
	Text   string
}

// Match is one query hit, ranked by cosine similarity descending.
type Match struct {
	Id    string
	Score float32
	URL   string
	Text  string
}

type Index interface {
	Upsert(ctx context.Context, records []Record) error
	Query(ctx context.Context, vector []float32, k int) ([]Match, error)
}
