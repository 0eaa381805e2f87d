package crypto

import (
	"fmt"

	"github.com/alder-network/alder/lib"
)

func ErrUnknownHashAlgorithm(name string) lib.ErrorI {
	return lib.NewError(lib.CodeUnknownHashAlgorithm, lib.CryptoModule, fmt.Sprintf("unknown hash algorithm %q", name))
}

func ErrUnknownOddNodePolicy(name string) lib.ErrorI {
	return lib.NewError(lib.CodeUnknownOddNodePolicy, lib.CryptoModule, fmt.Sprintf("unknown odd node policy %q", name))
}

func ErrNilHasher() lib.ErrorI {
	return lib.NewError(lib.CodeNilHasher, lib.CryptoModule, "hasher is nil")
}

func ErrEmptyTree() lib.ErrorI {
	return lib.NewError(lib.CodeEmptyTree, lib.CryptoModule, "operation requires a tree with at least one leaf")
}

func ErrInvalidLeafIndex(index, leafCount uint64) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidLeafIndex, lib.CryptoModule, fmt.Sprintf("leaf index %d is out of range for %d leaves", index, leafCount))
}

func ErrMalformedProof(reason string) lib.ErrorI {
	return lib.NewError(lib.CodeMalformedProof, lib.CryptoModule, fmt.Sprintf("malformed proof: %s", reason))
}
