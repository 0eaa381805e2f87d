package store

import (
	"fmt"

	"github.com/alder-network/alder/lib"
)

func ErrOpenDB(err error) lib.ErrorI {
	return lib.NewError(lib.CodeOpenDB, lib.StorageModule, fmt.Sprintf("openDB() failed with err: %s", err.Error()))
}

func ErrCloseDB(err error) lib.ErrorI {
	return lib.NewError(lib.CodeCloseDB, lib.StorageModule, fmt.Sprintf("closeDB() failed with err: %s", err.Error()))
}

func ErrStoreSet(err error) lib.ErrorI {
	return lib.NewError(lib.CodeStoreSet, lib.StorageModule, fmt.Sprintf("store.set() failed with err: %s", err.Error()))
}

func ErrStoreGet(err error) lib.ErrorI {
	return lib.NewError(lib.CodeStoreGet, lib.StorageModule, fmt.Sprintf("store.get() failed with err: %s", err.Error()))
}

func ErrStoreIterate(err error) lib.ErrorI {
	return lib.NewError(lib.CodeStoreIterate, lib.StorageModule, fmt.Sprintf("store.iterate() failed with err: %s", err.Error()))
}

func ErrCommitmentNotFound(index uint64) lib.ErrorI {
	return lib.NewError(lib.CodeCommitmentNotFound, lib.StorageModule, fmt.Sprintf("commitment with index %d not found", index))
}

func ErrRootConflict(stored, computed lib.HexBytes) lib.ErrorI {
	return lib.NewError(lib.CodeRootConflict, lib.StorageModule,
		fmt.Sprintf("stored root %s conflicts with the root %s rebuilt from the ledger", stored, computed))
}
