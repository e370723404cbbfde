package badger

import (
	"encoding/binary"
)

// Key prefixes for different data types
const (
	rawRecordPrefix = "rawrec:"
	snapshotInfoKey = "snapinfo"
)

// makeRawRecordKey generates a key for the record at position pos of the snapshot.
// Format: prefix + pos
func makeRawRecordKey(pos int) []byte {
	prefixBytes := []byte(rawRecordPrefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort matches input order
	binary.BigEndian.PutUint64(buf[offset:], uint64(pos))
	return buf
}

// parseRawRecordKey extracts the position from a raw record key.
func parseRawRecordKey(key []byte) (int, bool) {
	if len(key) != len(rawRecordPrefix)+8 || string(key[:len(rawRecordPrefix)]) != rawRecordPrefix {
		return 0, false
	}
	return int(binary.BigEndian.Uint64(key[len(rawRecordPrefix):])), true
}
