package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// Fingerprint hashes a record list in order with 64-bit BLAKE2b.
// Two lists with the same records in the same order share a fingerprint.
func Fingerprint(records []RawRecord) ID {
	h, _ := blake2b.New(8, nil)
	for _, r := range records {
		for _, field := range []string{r.Code, r.Name, r.Sector, r.Delay, r.Description, r.Price} {
			h.Write([]byte(field))
			h.Write([]byte{0x1f})
		}
		h.Write([]byte{0x1e})
	}
	return ID(binary.LittleEndian.Uint64(h.Sum(nil)))
}
