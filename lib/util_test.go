package lib

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHexBytesJSON(t *testing.T) {
	original := HexBytes{0xde, 0xad, 0xbe, 0xef}
	bz, err := MarshalJSON(original)
	require.NoError(t, err)
	require.Equal(t, `"deadbeef"`, string(bz))
	var got HexBytes
	require.NoError(t, UnmarshalJSON(bz, &got))
	require.Equal(t, original, got)
}

func TestHexBytesFromString(t *testing.T) {
	got, err := NewHexBytesFromString("cafe01")
	require.NoError(t, err)
	require.Equal(t, HexBytes{0xca, 0xfe, 0x01}, got)
	require.Equal(t, "cafe01", got.String())
	_, err = NewHexBytesFromString("not hex")
	require.Error(t, err)
	require.Equal(t, CodeStringToBytes, err.Code())
}

func TestHexBytesEquals(t *testing.T) {
	a := HexBytes{1, 2, 3}
	require.True(t, a.Equals(HexBytes{1, 2, 3}))
	require.False(t, a.Equals(HexBytes{1, 2}))
	require.True(t, HexBytes(nil).Equals(HexBytes{}))
}

func TestUint64ToBytesOrdering(t *testing.T) {
	// big-endian keys keep numeric and lexicographic order aligned
	previous := Uint64ToBytes(0)
	for _, u := range []uint64{1, 2, 255, 256, 1 << 16, 1 << 32} {
		current := Uint64ToBytes(u)
		require.Negative(t, bytes.Compare(previous, current))
		require.Equal(t, u, BytesToUint64(current))
		previous = current
	}
}

func TestJSONFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := NewCommitment(3, []byte("payload"), []byte("root"))
	require.NoError(t, SaveJSONToFile(original, dir, "commitment.json"))
	got := new(Commitment)
	require.NoError(t, NewJSONFromFile(got, dir, "commitment.json"))
	require.Equal(t, original, got)
}
