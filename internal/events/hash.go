package events

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainEventList is the domain prefix for event-list content hashes.
// The version suffix enables future algorithm migration.
const DomainEventList = "lumeq/eventlist/v1"

// HashList computes the content hash of an event list:
// SHA256(domain + 0x00 + canonical JSON). The null separator prevents
// domain/data boundary ambiguity. Two lists hash equal iff their canonical
// serializations are byte-identical.
func HashList(l List) (string, error) {
	canonical, err := MarshalListCanonical(l)
	if err != nil {
		return "", fmt.Errorf("HashList: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(DomainEventList))
	h.Write([]byte{0x00})
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// MustHashList is like HashList but panics on error.
// Use only in tests or when the list is known to be hashable.
func MustHashList(l List) string {
	hash, err := HashList(l)
	if err != nil {
		panic(err)
	}
	return hash
}
