package crypto

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"

	"github.com/alder-network/alder/lib"
	"golang.org/x/crypto/blake2b"
)

const (
	HashSize = sha256.Size
)

// recognized hash algorithm names
const (
	SHA256     = "sha256"
	SHA512     = "sha512"
	BLAKE2b256 = "blake2b-256"
)

/*
	Hash is a function that takes an input message and returns a fixed-size string of bytes that is unique to the input
	to produce a short, fixed-length representation of the data. The tree treats the algorithm as a black box: any
	deterministic, collision-resistant digest of fixed output length works, and the algorithm is selected by name
	through the Hasher so the digest length is configuration, not a hard-coded constant.
*/

// Hasher binds a named digest algorithm to its one-way function and output size
type Hasher struct {
	algorithm string
	size      int
	sum       func(msg []byte) []byte
}

// NewHasher() resolves an algorithm name into a Hasher; an empty name selects sha256
func NewHasher(algorithm string) (*Hasher, lib.ErrorI) {
	switch algorithm {
	case "", SHA256:
		return &Hasher{algorithm: SHA256, size: sha256.Size, sum: func(msg []byte) []byte {
			h := sha256.Sum256(msg)
			return h[:]
		}}, nil
	case SHA512:
		return &Hasher{algorithm: SHA512, size: sha512.Size, sum: func(msg []byte) []byte {
			h := sha512.Sum512(msg)
			return h[:]
		}}, nil
	case BLAKE2b256:
		return &Hasher{algorithm: BLAKE2b256, size: blake2b.Size256, sum: func(msg []byte) []byte {
			h := blake2b.Sum256(msg)
			return h[:]
		}}, nil
	default:
		return nil, ErrUnknownHashAlgorithm(algorithm)
	}
}

// Hash() executes the hashing algorithm on input bytes
func (h *Hasher) Hash(msg []byte) []byte { return h.sum(msg) }

// Size() returns the fixed digest length in bytes
func (h *Hasher) Size() int { return h.size }

// Algorithm() returns the registered name of the algorithm
func (h *Hasher) Algorithm() string { return h.algorithm }

// Empty() returns the digest of the empty byte sequence
func (h *Hasher) Empty() []byte { return h.sum(nil) }

// Hash() executes the default (sha256) hashing algorithm on input bytes
func Hash(msg []byte) []byte {
	h := sha256.Sum256(msg)
	return h[:]
}

// HashString() returns the hex byte version of a hash
func HashString(msg []byte) string { return hex.EncodeToString(Hash(msg)) }
