package project

import (
	"crypto/sha256"
	"encoding/binary"
)

// Digest - ключ артефакта в кэше (sha256)
type Digest [32]byte

// Combine hashes len(p)||p for each part in order, so neighbouring parts
// cannot be shifted into one another.
func Combine(parts ...[]byte) Digest {
	h := sha256.New()
	var n [8]byte
	for _, p := range parts {
		binary.LittleEndian.PutUint64(n[:], uint64(len(p)))
		_, _ = h.Write(n[:])
		_, _ = h.Write(p)
	}
	var out Digest
	h.Sum(out[:0])
	return out
}
