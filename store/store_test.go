package store

import (
	"fmt"
	"strings"
	"testing"

	"github.com/alder-network/alder/lib"
	"github.com/alder-network/alder/lib/crypto"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	s, err := New(lib.DefaultTestConfig(), lib.NewNullLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// testValues generates distinct payloads for commitments
func testValues(t *testing.T, n int) (values [][]byte) {
	for i := 0; i < n; i++ {
		values = append(values, []byte(fmt.Sprintf("commitment payload %d", i)))
	}
	return
}

func TestStoreCommit(t *testing.T) {
	s := testStore(t)
	values := testValues(t, 5)
	var lastRoot lib.HexBytes
	for i, value := range values {
		commitment, err := s.Commit(value)
		require.NoError(t, err)
		require.EqualValues(t, i, commitment.Index)
		require.Equal(t, lib.HexBytes(value), commitment.Value)
		require.NotEqual(t, lastRoot, commitment.Root, "root must change on every commit")
		require.Equal(t, s.Root(), commitment.Root)
		lastRoot = commitment.Root
	}
	require.EqualValues(t, len(values), s.Count())
}

func TestStoreCommitRejectsBadValues(t *testing.T) {
	s := testStore(t)
	_, err := s.Commit(nil)
	require.Error(t, err)
	require.Equal(t, lib.CodeEmptyValue, err.Code())
	_, err = s.Commit([]byte(strings.Repeat("x", MaxValueBytes+1)))
	require.Error(t, err)
	require.Equal(t, lib.CodeValueTooLarge, err.Code())
	require.EqualValues(t, 0, s.Count())
}

func TestStoreGetCommitment(t *testing.T) {
	s := testStore(t)
	values := testValues(t, 3)
	for _, value := range values {
		_, err := s.Commit(value)
		require.NoError(t, err)
	}
	got, err := s.GetCommitment(1)
	require.NoError(t, err)
	require.EqualValues(t, 1, got.Index)
	require.Equal(t, lib.HexBytes(values[1]), got.Value)
	_, err = s.GetCommitment(3)
	require.Error(t, err)
	require.Equal(t, lib.CodeCommitmentNotFound, err.Code())
}

func TestStoreGetCommitmentsOrdered(t *testing.T) {
	s := testStore(t)
	values := testValues(t, 4)
	for _, value := range values {
		_, err := s.Commit(value)
		require.NoError(t, err)
	}
	list, err := s.GetCommitments()
	require.NoError(t, err)
	require.Len(t, list, len(values))
	for i, commitment := range list {
		require.EqualValues(t, i, commitment.Index)
		require.Equal(t, lib.HexBytes(values[i]), commitment.Value)
	}
}

func TestStoreEmptyRoot(t *testing.T) {
	s := testStore(t)
	require.EqualValues(t, 0, s.Count())
	// the root of an empty ledger is the digest of no bytes
	hasher, err := crypto.NewHasher(s.HashAlgorithm())
	require.NoError(t, err)
	require.Equal(t, lib.HexBytes(hasher.Empty()), s.Root())
}

func TestStoreProofRoundTrip(t *testing.T) {
	s := testStore(t)
	values := testValues(t, 7)
	for _, value := range values {
		_, err := s.Commit(value)
		require.NoError(t, err)
	}
	for i := uint64(0); i < uint64(len(values)); i++ {
		proof, value, root, err := s.Proof(i)
		require.NoError(t, err)
		require.Equal(t, lib.HexBytes(values[i]), value)
		require.Equal(t, s.Root(), root)
		valid, err := s.VerifyProof(value, proof, root)
		require.NoError(t, err)
		require.True(t, valid)
	}
	// a proof never authenticates a different payload
	proof, _, root, err := s.Proof(2)
	require.NoError(t, err)
	valid, err := s.VerifyProof([]byte("forged"), proof, root)
	require.NoError(t, err)
	require.False(t, valid)
}

func TestStoreProofStaleRoot(t *testing.T) {
	s := testStore(t)
	values := testValues(t, 4)
	for _, value := range values {
		_, err := s.Commit(value)
		require.NoError(t, err)
	}
	proof, value, root, err := s.Proof(1)
	require.NoError(t, err)
	// the proof stays valid against the root it was generated under
	_, err = s.Commit([]byte("one more"))
	require.NoError(t, err)
	valid, err := s.VerifyProof(value, proof, root)
	require.NoError(t, err)
	require.True(t, valid)
	// but not against the new root, whose tree has a different shape
	valid, err = s.VerifyProof(value, proof, s.Root())
	require.NoError(t, err)
	require.False(t, valid)
}

func TestStoreReload(t *testing.T) {
	config := lib.DefaultConfig()
	config.StoreConfig.DataDirPath = t.TempDir()
	s, err := New(config, lib.NewNullLogger())
	require.NoError(t, err)
	values := testValues(t, 6)
	for _, value := range values {
		_, e := s.Commit(value)
		require.NoError(t, e)
	}
	root := s.Root()
	require.NoError(t, s.Close())
	// reopening replays the commitment log and rebuilds the same tree
	s, err = New(config, lib.NewNullLogger())
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	require.EqualValues(t, len(values), s.Count())
	require.Equal(t, root, s.Root())
	got, err := s.GetCommitment(5)
	require.NoError(t, err)
	require.Equal(t, lib.HexBytes(values[5]), got.Value)
	proof, value, proofRoot, err := s.Proof(3)
	require.NoError(t, err)
	valid, err := s.VerifyProof(value, proof, proofRoot)
	require.NoError(t, err)
	require.True(t, valid)
}
