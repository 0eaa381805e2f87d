package crypto

import (
	"crypto/sha256"
	"fmt"
	"testing"

	"github.com/alder-network/alder/lib"
	"github.com/stretchr/testify/require"
)

func testBlocks(n int) (blocks [][]byte) {
	for i := 0; i < n; i++ {
		blocks = append(blocks, []byte(fmt.Sprintf("block-%d", i)))
	}
	return
}

func TestMerkleTreeDeterministic(t *testing.T) {
	blocks := testBlocks(7)
	a, err := NewMerkleTree(blocks)
	require.NoError(t, err)
	b, err := NewMerkleTree(blocks)
	require.NoError(t, err)
	require.Equal(t, a.Root(), b.Root())
}

func TestMerkleTreeOrderSensitive(t *testing.T) {
	blocks := testBlocks(4)
	a, err := NewMerkleTree(blocks)
	require.NoError(t, err)
	swapped := [][]byte{blocks[1], blocks[0], blocks[2], blocks[3]}
	b, err := NewMerkleTree(swapped)
	require.NoError(t, err)
	require.NotEqual(t, a.Root(), b.Root())
}

func TestMerkleTreeSingleLeaf(t *testing.T) {
	block := []byte("only")
	tree, err := NewMerkleTree([][]byte{block})
	require.NoError(t, err)
	// a single leaf tree has one layer and its root is the leaf digest itself
	require.Equal(t, 1, tree.Height())
	require.Equal(t, Hash(block), tree.Root())
}

func TestMerkleTreeEmpty(t *testing.T) {
	tree, err := NewMerkleTree(nil)
	require.NoError(t, err)
	require.EqualValues(t, 0, tree.LeafCount())
	empty := sha256.Sum256(nil)
	require.Equal(t, empty[:], tree.Root())
	_, err = tree.Proof(0)
	require.Error(t, err)
	require.Equal(t, lib.CodeEmptyTree, err.Code())
}

// hashPair computes the parent digest of two child digests the way the tree folds a layer
func hashPair(l, r []byte) []byte {
	h := sha256.Sum256(append(append([]byte{}, l...), r...))
	return h[:]
}

func TestMerkleTreeOddLayerDuplicatesLast(t *testing.T) {
	blocks := testBlocks(3)
	tree, err := NewMerkleTree(blocks)
	require.NoError(t, err)
	// recompute by hand: the lone third leaf is paired with itself
	l0, l1, l2 := Hash(blocks[0]), Hash(blocks[1]), Hash(blocks[2])
	p0, p1 := hashPair(l0, l1), hashPair(l2, l2)
	require.Equal(t, hashPair(p0, p1), tree.Root())
}

func TestMerkleTreeKnownRoot(t *testing.T) {
	// four leaves, recomputed from first principles
	blocks := [][]byte{[]byte("A"), []byte("B"), []byte("C"), []byte("D")}
	tree, err := NewMerkleTree(blocks)
	require.NoError(t, err)
	p0 := hashPair(Hash(blocks[0]), Hash(blocks[1]))
	p1 := hashPair(Hash(blocks[2]), Hash(blocks[3]))
	require.Equal(t, hashPair(p0, p1), tree.Root())
	require.Equal(t, 3, tree.Height())
}

func TestMerkleProofRoundTrip(t *testing.T) {
	for n := 1; n <= 9; n++ {
		t.Run(fmt.Sprintf("%d leaves", n), func(t *testing.T) {
			blocks := testBlocks(n)
			tree, err := NewMerkleTree(blocks)
			require.NoError(t, err)
			for i := uint64(0); i < uint64(n); i++ {
				proof, err := tree.Proof(i)
				require.NoError(t, err)
				require.Len(t, proof.Steps, ProofLength(uint64(n)))
				valid, err := VerifyProof(blocks[i], proof, tree.Root())
				require.NoError(t, err)
				require.True(t, valid)
			}
		})
	}
}

func TestMerkleProofRejectsTamperedBlock(t *testing.T) {
	blocks := testBlocks(5)
	tree, err := NewMerkleTree(blocks)
	require.NoError(t, err)
	proof, err := tree.Proof(2)
	require.NoError(t, err)
	valid, err := VerifyProof([]byte("tampered"), proof, tree.Root())
	require.NoError(t, err)
	require.False(t, valid)
}

func TestMerkleProofRejectsWrongIndexProof(t *testing.T) {
	blocks := testBlocks(6)
	tree, err := NewMerkleTree(blocks)
	require.NoError(t, err)
	proof, err := tree.Proof(3)
	require.NoError(t, err)
	// a proof generated for another index does not authenticate this block
	valid, err := VerifyProof(blocks[4], proof, tree.Root())
	require.NoError(t, err)
	require.False(t, valid)
}

func TestMerkleProofOutOfRange(t *testing.T) {
	tree, err := NewMerkleTree(testBlocks(4))
	require.NoError(t, err)
	_, err = tree.Proof(4)
	require.Error(t, err)
	require.Equal(t, lib.CodeInvalidLeafIndex, err.Code())
}

func TestVerifyProofMalformed(t *testing.T) {
	blocks := testBlocks(4)
	tree, err := NewMerkleTree(blocks)
	require.NoError(t, err)
	proof, err := tree.Proof(0)
	require.NoError(t, err)
	tests := []struct {
		name  string
		proof *MerkleProof
		root  []byte
	}{
		{
			name:  "nil proof",
			proof: nil,
			root:  tree.Root(),
		},
		{
			name:  "truncated root",
			proof: proof,
			root:  tree.Root()[:8],
		},
		{
			name: "truncated sibling",
			proof: &MerkleProof{
				Index:     proof.Index,
				LeafCount: proof.LeafCount,
				Steps:     []ProofStep{{Sibling: proof.Steps[0].Sibling[:4]}, proof.Steps[1]},
			},
			root: tree.Root(),
		},
		{
			name: "index beyond declared leaf count",
			proof: &MerkleProof{
				Index:     9,
				LeafCount: 4,
				Steps:     proof.Steps,
			},
			root: tree.Root(),
		},
		{
			name: "step count inconsistent with leaf count",
			proof: &MerkleProof{
				Index:     proof.Index,
				LeafCount: proof.LeafCount,
				Steps:     proof.Steps[:1],
			},
			root: tree.Root(),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := VerifyProof(blocks[0], test.proof, test.root)
			require.Error(t, err)
			require.Equal(t, lib.CodeMalformedProof, err.Code())
		})
	}
}

func TestProofLength(t *testing.T) {
	tests := []struct {
		leaves uint64
		steps  int
	}{
		{leaves: 0, steps: 0},
		{leaves: 1, steps: 0},
		{leaves: 2, steps: 1},
		{leaves: 3, steps: 2},
		{leaves: 4, steps: 2},
		{leaves: 5, steps: 3},
		{leaves: 8, steps: 3},
		{leaves: 9, steps: 4},
	}
	for _, test := range tests {
		require.Equal(t, test.steps, ProofLength(test.leaves), "leaves=%d", test.leaves)
	}
}

func TestMerkleTreeAlternateHasher(t *testing.T) {
	h, err := NewHasher(SHA512)
	require.NoError(t, err)
	tree, err := NewMerkleTree(testBlocks(5), WithHasher(h))
	require.NoError(t, err)
	require.Len(t, tree.Root(), h.Size())
	proof, err := tree.Proof(1)
	require.NoError(t, err)
	valid, err := VerifyProof([]byte("block-1"), proof, tree.Root(), WithHasher(h))
	require.NoError(t, err)
	require.True(t, valid)
	// verifying with the default hasher must refuse the oversized digests
	_, err = VerifyProof([]byte("block-1"), proof, tree.Root())
	require.Error(t, err)
	require.Equal(t, lib.CodeMalformedProof, err.Code())
}

func TestMerkleTreeLargeParallelBuild(t *testing.T) {
	// enough leaves to cross the parallel hashing threshold
	n := minParallelHashes + 100
	blocks := testBlocks(n)
	tree, err := NewMerkleTree(blocks)
	require.NoError(t, err)
	require.EqualValues(t, n, tree.LeafCount())
	for _, i := range []uint64{0, uint64(n / 2), uint64(n - 1)} {
		proof, err := tree.Proof(i)
		require.NoError(t, err)
		valid, err := VerifyProof(blocks[i], proof, tree.Root())
		require.NoError(t, err)
		require.True(t, valid)
	}
}
