package storage

import (
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	lerrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var recordPrefix = []byte("wallet/")

// LevelDBBackend stores records in a leveldb database
type LevelDBBackend struct {
	file string
	db   *leveldb.DB
}

// NewLevelDBBackend opens or creates the database at file, recovering it if
// the manifest is corrupted
func NewLevelDBBackend(file string) (*LevelDBBackend, error) {
	db, err := leveldb.OpenFile(file, &opt.Options{
		Filter: filter.NewBloomFilter(10),
	})
	if _, corrupted := err.(*lerrors.ErrCorrupted); corrupted {
		db, err = leveldb.RecoverFile(file, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open leveldb: %w", err)
	}
	return &LevelDBBackend{file: file, db: db}, nil
}

func recordKey(name string) []byte {
	return append(append([]byte{}, recordPrefix...), name...)
}

func (b *LevelDBBackend) Get(name string) ([]byte, error) {
	data, err := b.db.Get(recordKey(name), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read record: %w", err)
	}
	return data, nil
}

func (b *LevelDBBackend) Put(name string, data []byte) error {
	if err := b.db.Put(recordKey(name), data, &opt.WriteOptions{Sync: true}); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

func (b *LevelDBBackend) Delete(name string) error {
	if err := b.db.Delete(recordKey(name), nil); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

func (b *LevelDBBackend) List() ([]string, error) {
	it := b.db.NewIterator(util.BytesPrefix(recordPrefix), nil)
	defer it.Release()

	var names []string
	for it.Next() {
		names = append(names, string(it.Key()[len(recordPrefix):]))
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return names, nil
}

// Clean deletes every record in one batch
func (b *LevelDBBackend) Clean() error {
	it := b.db.NewIterator(util.BytesPrefix(recordPrefix), nil)
	batch := new(leveldb.Batch)
	for it.Next() {
		batch.Delete(append([]byte{}, it.Key()...))
	}
	it.Release()
	if err := it.Error(); err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}
	if err := b.db.Write(batch, &opt.WriteOptions{Sync: true}); err != nil {
		return fmt.Errorf("failed to delete records: %w", err)
	}
	return nil
}

func (b *LevelDBBackend) Close() error {
	return b.db.Close()
}
