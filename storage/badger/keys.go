package badger

import (
	"encoding/binary"

	"github.com/poiesic/finanswer/core"
)

// Key prefixes for different data types
const (
	snapshotPrefix = "idxsnap"
)

// makeSnapshotKey generates a composite key for an index snapshot.
// Format: prefix:dimension:fingerprint
func makeSnapshotKey(dimension int, fingerprint core.ID) []byte {
	prefix := snapshotPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for dimension + 8 bytes for fingerprint
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(dimension))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(fingerprint))
	return buf
}
