package badgerdb

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/iov-one/treasury"
	"github.com/iov-one/treasury/errors"
	"github.com/iov-one/treasury/store"
	"github.com/tendermint/tendermint/libs/log"
)

// versionKey holds the last committed version. It lives outside of any
// bucket prefix used by the extensions.
var versionKey = []byte("\x00commit:version")

// CommitStore keeps all changes in memory until Commit is called. Commit
// writes them together with the new version in a single badger batch.
type CommitStore struct {
	db      *DB
	working store.BTreeCacheWrap
	version int64
	hash    []byte
}

var _ treasury.CommitKVStore = (*CommitStore)(nil)

// NewCommitStore opens a commit store in the given directory and loads the
// latest version.
func NewCommitStore(dir string, logger log.Logger) (*CommitStore, error) {
	db, err := Open(dir, logger)
	if err != nil {
		return nil, err
	}
	s := &CommitStore{db: db}
	if err := s.LoadLatestVersion(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Get returns the value at last committed state.
func (s *CommitStore) Get(key []byte) ([]byte, error) {
	return s.db.Get(key)
}

// CacheWrap returns a cache over the not yet committed state. Writing it
// makes the changes part of the next commit.
func (s *CommitStore) CacheWrap() treasury.KVCacheWrap {
	return s.working.CacheWrap()
}

// Commit persists all written changes together with the next version.
func (s *CommitStore) Commit() (treasury.CommitID, error) {
	next := s.version + 1
	h := sha256.New()
	h.Write(s.hash)

	// Every change is already collected by the working batch, the
	// version is appended so both are flushed at once.
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], uint64(next))
	h.Write(raw[:])
	if err := s.working.Set(versionKey, append(raw[:], h.Sum(nil)...)); err != nil {
		return treasury.CommitID{}, err
	}
	if err := s.working.Write(); err != nil {
		return treasury.CommitID{}, errors.Wrap(err, "write changes")
	}
	if err := s.LoadLatestVersion(); err != nil {
		return treasury.CommitID{}, err
	}
	return s.LatestVersion()
}

// LoadLatestVersion reads the version from disk and drops any not
// committed changes.
func (s *CommitStore) LoadLatestVersion() error {
	raw, err := s.db.Get(versionKey)
	if err != nil {
		return err
	}
	switch len(raw) {
	case 0:
		s.version, s.hash = 0, nil
	case 8 + sha256.Size:
		s.version = int64(binary.BigEndian.Uint64(raw[:8]))
		s.hash = raw[8:]
	default:
		return errors.Wrap(errors.ErrDatabase, "malformed version")
	}
	s.working = store.NewBTreeCacheWrap(s.db, s.db.NewBatch(), nil)
	return nil
}

// LatestVersion returns the last committed version.
func (s *CommitStore) LatestVersion() (treasury.CommitID, error) {
	return treasury.CommitID{Version: s.version, Hash: s.hash}, nil
}

// Close releases the database.
func (s *CommitStore) Close() error {
	return s.db.Close()
}
