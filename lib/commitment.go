package lib

/*
	A Commitment is one entry of the append-only ledger: the opaque value a client
	committed to, its assigned position, and the Merkle root summarizing the entire
	ledger at the moment the value was added. The root pins the commitment to a
	specific tree snapshot; a proof generated later is only valid against the root
	of the snapshot it was generated from.
*/

// Commitment pairs a committed value with its ledger position and the root at commitment time
type Commitment struct {
	Index uint64   `json:"index"` // the zero-based, sequential position in the ledger
	Value HexBytes `json:"value"` // the opaque committed data block
	Root  HexBytes `json:"root"`  // the Merkle root over the ledger when this value was added
}

// NewCommitment() constructs a Commitment from its parts
func NewCommitment(index uint64, value, root []byte) *Commitment {
	return &Commitment{Index: index, Value: value, Root: root}
}
