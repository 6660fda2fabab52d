package content

import (
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
	"gorm.io/datatypes"
)

// SnapshotStore keeps the last successfully fetched remote document per
// section in a local Badger database, so a content API outage can still serve
// the last known copy.
type SnapshotStore struct {
	db *badger.DB
}

// snapshotRecord is the value stored per section.
type snapshotRecord struct {
	Doc     []byte    `msgpack:"doc"`
	SavedAt time.Time `msgpack:"saved_at"`
}

// NewSnapshotStore opens (or creates) the snapshot database at path.
func NewSnapshotStore(path string) (*SnapshotStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "content: open snapshot store failed")
	}

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
		again:
			err := db.RunValueLogGC(0.7)
			if err == nil {
				goto again
			}
		}
	}()

	return &SnapshotStore{db: db}, nil
}

// Get returns the snapshotted document for a section, or (nil, nil) when the
// section was never snapshotted.
func (s *SnapshotStore) Get(section string) (datatypes.JSON, error) {
	var rec snapshotRecord
	err := s.db.View(
		func(txn *badger.Txn) error {
			item, err := txn.Get([]byte(section))
			if err != nil {
				return err
			}
			return item.Value(
				func(val []byte) error {
					return msgpack.Unmarshal(val, &rec)
				},
			)
		},
	)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "content: snapshot read failed")
	}
	return rec.Doc, nil
}

// Put stores the document as the current snapshot for a section.
func (s *SnapshotStore) Put(section string, doc datatypes.JSON) error {
	rec := snapshotRecord{
		Doc:     doc,
		SavedAt: time.Now(),
	}
	data, err := msgpack.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, "content: snapshot encode failed")
	}
	err = s.db.Update(
		func(txn *badger.Txn) error {
			return txn.Set([]byte(section), data)
		},
	)
	return errors.Wrap(err, "content: snapshot write failed")
}

// Close closes the underlying database.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}
