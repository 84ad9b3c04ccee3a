// Package pointid derives deterministic vector point IDs from article links.
package pointid

import (
	"crypto/md5"

	"github.com/google/uuid"
)

// ForLink returns the point ID for an article link: the MD5 digest of the link rendered as a
// UUID string. The same link always yields the same ID, so re-indexing overwrites the point.
func ForLink(link string) string {
	sum := md5.Sum([]byte(link))
	// FromBytes only fails on a slice that is not 16 bytes long.
	id, _ := uuid.FromBytes(sum[:])
	return id.String()
}
