package store

import (
	"path/filepath"
	"sync"

	"github.com/alder-network/alder/lib"
	"github.com/alder-network/alder/lib/crypto"
	"github.com/alecthomas/units"
	"github.com/dgraph-io/badger/v4"
)

/*
	The Store is the append-only commitment ledger. It persists each Commitment under a
	big-endian index key in a single BadgerDB instance (disk or in-memory) and keeps the
	current Merkle tree snapshot in memory. Every Commit() rebuilds the tree over all
	committed values and atomically writes the new commitment together with the latest
	root; on reopen the tree is rebuilt from the persisted ledger and cross-checked
	against that stored root.

	The tree snapshot is immutable once built, so reads (root, proofs, lookups) share a
	read lock and never block each other; only Commit() takes the write lock and swaps
	in the next snapshot.
*/

var (
	commitmentPrefix = []byte("c/") // prefix designated for commitments keyed by big-endian index
	latestRootKey    = []byte("r/") // key holding the root of the latest tree snapshot

	// MaxValueBytes caps an individual committed value
	MaxValueBytes = int(units.MB)
)

// Store is the badger-backed commitment ledger holding the current tree snapshot
type Store struct {
	db     *badger.DB
	config lib.Config
	hasher *crypto.Hasher
	policy crypto.OddNodePolicy
	log    lib.LoggerI

	mu     sync.RWMutex
	values [][]byte           // ordered committed values; the tree is rebuilt from these
	tree   *crypto.MerkleTree // the current immutable tree snapshot
}

// New() creates a Store either in memory or as an actual disk DB per the config
func New(config lib.Config, log lib.LoggerI) (*Store, lib.ErrorI) {
	hasher, err := crypto.NewHasher(config.HashAlgorithm)
	if err != nil {
		return nil, err
	}
	policy, err := crypto.NewOddNodePolicy(config.OddNodePolicy)
	if err != nil {
		return nil, err
	}
	opts := badger.DefaultOptions(filepath.Join(config.DataDirPath, config.DBName)).
		WithLoggingLevel(badger.ERROR)
	if config.StoreConfig.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR)
	}
	db, e := badger.Open(opts)
	if e != nil {
		return nil, ErrOpenDB(e)
	}
	s := &Store{db: db, config: config, hasher: hasher, policy: policy, log: log}
	if err = s.load(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// load() rebuilds the tree snapshot from the persisted ledger and cross-checks the stored root
func (s *Store) load() lib.ErrorI {
	var values [][]byte
	var storedRoot []byte
	e := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: commitmentPrefix, PrefetchValues: true, PrefetchSize: 128})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			bz, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			c := new(lib.Commitment)
			if err = lib.UnmarshalJSON(bz, c); err != nil {
				return err
			}
			values = append(values, c.Value)
		}
		item, err := txn.Get(latestRootKey)
		if err == nil {
			storedRoot, err = item.ValueCopy(nil)
		}
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	})
	if e != nil {
		return ErrStoreIterate(e)
	}
	tree, err := crypto.NewMerkleTree(values, s.treeOptions()...)
	if err != nil {
		return err
	}
	if len(values) != 0 && !lib.HexBytes(storedRoot).Equals(tree.Root()) {
		return ErrRootConflict(storedRoot, tree.Root())
	}
	s.values, s.tree = values, tree
	s.log.Infof("Opened commitment ledger with %d commitments, root %s", len(values), lib.HexBytes(tree.Root()))
	return nil
}

// treeOptions() returns the configured hasher and odd node policy as tree options
func (s *Store) treeOptions() []crypto.MerkleOption {
	return []crypto.MerkleOption{crypto.WithHasher(s.hasher), crypto.WithOddNodePolicy(s.policy)}
}

// Commit() appends a value to the ledger: assigns the next index, rebuilds the tree over all
// values, and atomically persists the commitment with the new root
func (s *Store) Commit(value []byte) (*lib.Commitment, lib.ErrorI) {
	if len(value) == 0 {
		return nil, lib.ErrEmptyValue()
	}
	if len(value) > MaxValueBytes {
		return nil, lib.ErrValueTooLarge(len(value), MaxValueBytes)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	values := append(s.values, value)
	tree, err := crypto.NewMerkleTree(values, s.treeOptions()...)
	if err != nil {
		return nil, err
	}
	commitment := lib.NewCommitment(uint64(len(values)-1), value, tree.Root())
	bz, err := lib.MarshalJSON(commitment)
	if err != nil {
		return nil, err
	}
	if e := s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(lib.Append(commitmentPrefix, lib.Uint64ToBytes(commitment.Index)), bz); err != nil {
			return err
		}
		return txn.Set(latestRootKey, tree.Root())
	}); e != nil {
		return nil, ErrStoreSet(e)
	}
	s.values, s.tree = values, tree
	s.log.Debugf("Committed value at index %d, new root %s", commitment.Index, commitment.Root)
	return commitment, nil
}

// GetCommitment() retrieves a single commitment from the database by its index
func (s *Store) GetCommitment(index uint64) (*lib.Commitment, lib.ErrorI) {
	commitment := new(lib.Commitment)
	e := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(lib.Append(commitmentPrefix, lib.Uint64ToBytes(index)))
		if err != nil {
			return err
		}
		bz, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		return lib.UnmarshalJSON(bz, commitment)
	})
	if e == badger.ErrKeyNotFound {
		return nil, ErrCommitmentNotFound(index)
	}
	if e != nil {
		return nil, ErrStoreGet(e)
	}
	return commitment, nil
}

// GetCommitments() retrieves every commitment in ledger order
func (s *Store) GetCommitments() ([]*lib.Commitment, lib.ErrorI) {
	var commitments []*lib.Commitment
	e := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: commitmentPrefix, PrefetchValues: true, PrefetchSize: 128})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			bz, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			c := new(lib.Commitment)
			if err = lib.UnmarshalJSON(bz, c); err != nil {
				return err
			}
			commitments = append(commitments, c)
		}
		return nil
	})
	if e != nil {
		return nil, ErrStoreIterate(e)
	}
	return commitments, nil
}

// Count() returns the number of commitments in the ledger
func (s *Store) Count() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.values))
}

// Root() returns the root of the current tree snapshot
func (s *Store) Root() lib.HexBytes {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Root()
}

// Proof() generates an inclusion proof for the commitment at the given index against the
// current snapshot, returning the committed value and the root the proof verifies against
func (s *Store) Proof(index uint64) (proof *crypto.MerkleProof, value, root lib.HexBytes, err lib.ErrorI) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	proof, err = s.tree.Proof(index)
	if err != nil {
		return nil, nil, nil, err
	}
	return proof, s.values[index], s.tree.Root(), nil
}

// VerifyProof() checks a standalone proof against a trusted root using the ledger's
// configured hasher and odd node policy
func (s *Store) VerifyProof(value []byte, proof *crypto.MerkleProof, root []byte) (bool, lib.ErrorI) {
	return crypto.VerifyProof(value, proof, root, s.treeOptions()...)
}

// HashAlgorithm() returns the configured digest algorithm name
func (s *Store) HashAlgorithm() string { return s.hasher.Algorithm() }

// Close() closes the underlying database
func (s *Store) Close() lib.ErrorI {
	if err := s.db.Close(); err != nil {
		return ErrCloseDB(err)
	}
	return nil
}
