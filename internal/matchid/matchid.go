// Package matchid generates match identifiers: UUIDv7 values encoded as
// 26-character Crockford base32 strings.
//
// When a RandSource is provided, every byte including the timestamp field
// is derived from it, so a seeded session produces the same match id on
// every replay. Without a source, ids use the wall clock and crypto/rand.
package matchid

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// RandSource is the randomness a deterministic generator draws from.
type RandSource interface {
	Intn(n int) int
}

// Generator produces match ids with configurable randomness.
type Generator struct {
	randSource RandSource
}

// NewGenerator creates a generator. A nil randSource means wall-clock
// timestamps and crypto/rand bytes.
func NewGenerator(randSource RandSource) *Generator {
	return &Generator{randSource: randSource}
}

// Generate creates a new non-deterministic match id.
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new match id using the generator's RandSource.
func (g *Generator) Generate() string {
	return encodeBase32(g.generateUUIDv7())
}

func (g *Generator) generateUUIDv7() [16]byte {
	var uuid [16]byte

	if g.randSource != nil {
		// Fully deterministic: the timestamp field comes from the source
		// too, trading v7 time-ordering for replayable ids.
		for i := range uuid {
			uuid[i] = byte(g.randSource.Intn(256))
		}
	} else {
		now := time.Now().UnixMilli()
		uuid[0] = byte(now >> 40)
		uuid[1] = byte(now >> 32)
		uuid[2] = byte(now >> 24)
		uuid[3] = byte(now >> 16)
		uuid[4] = byte(now >> 8)
		uuid[5] = byte(now)
		if _, err := rand.Read(uuid[6:]); err != nil {
			panic("failed to generate random bytes: " + err.Error())
		}
	}

	// Version 7, variant 10.
	uuid[6] = (uuid[6] & 0x0f) | 0x70
	uuid[8] = (uuid[8] & 0x3f) | 0x80

	return uuid
}

// encodeBase32 encodes 128 bits as 26 base32 characters, 5 bits at a time.
func encodeBase32(data [16]byte) string {
	result := make([]byte, 26)
	for i := 0; i < 26; i++ {
		bitOffset := i * 5
		byteIndex := bitOffset / 8
		bitIndex := bitOffset % 8

		var value uint8
		if byteIndex < 16 {
			if bitIndex <= 3 {
				value = (data[byteIndex] >> (3 - bitIndex)) & 0x1f
			} else {
				value = (data[byteIndex] << (bitIndex - 3)) & 0x1f
				if byteIndex+1 < 16 {
					value |= data[byteIndex+1] >> (11 - bitIndex)
				}
			}
		}
		result[i] = alphabet[value]
	}
	return string(result)
}

// Validate checks that an id is 26 characters of valid base32 with a first
// character small enough to represent 128 bits.
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("match id must be exactly 26 characters, got %d", len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("match id first character must be 0-7, got %c", id[0])
	}
	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}
