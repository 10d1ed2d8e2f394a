// Package identity derives stable ids for embedding records.
package identity

import "github.com/google/uuid"

// ChunkID hashes (url, chunk text) into a UUID-shaped content id. The hash is
// MD5 (UUID version 3), which keeps ids stable across runs: unchanged content
// always maps to the same id, so re-ingestion overwrites rather than
// duplicates. Changed text yields a new id; the old vector is orphaned until
// the collection is rebuilt.
func ChunkID(url string, text string) string {
	return uuid.NewMD5(uuid.NameSpaceURL, []byte(url+text)).String()
}
