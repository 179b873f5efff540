package treasurytest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/store/badgerdb"
)

// CommitKVStore returns a store instance that is using a filesystem backend
// engine to store the data.
// This implementation should be used instead of MemStore when you want the
// exact same storage implementation as the production instance is using.
func CommitKVStore(t testing.TB) (db treasury.CommitKVStore, cleanup func()) {
	dbpath, err := ioutil.TempDir("", "treasurytest")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}

	cs, err := badgerdb.NewCommitStore(dbpath, treasury.DefaultLogger)
	if err != nil {
		os.RemoveAll(dbpath)
		t.Fatalf("cannot open commit store: %s", err)
	}
	return cs, func() {
		cs.Close()
		os.RemoveAll(dbpath)
	}
}
