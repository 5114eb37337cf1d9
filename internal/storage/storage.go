package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when no record has the name
var ErrNotFound = errors.New("record not found")

// Backend stores named JSON records. Names are wallet ids or fixed record
// names such as the identity; they never contain path separators.
type Backend interface {
	Get(name string) ([]byte, error)
	Put(name string, data []byte) error
	Delete(name string) error
	// List returns the names of all records in lexical order
	List() ([]string, error)
	// Clean removes every record
	Clean() error
	Close() error
}

// Kind selects a Backend implementation
type Kind string

const (
	KindFile    Kind = "file"
	KindMemory  Kind = "memory"
	KindLevelDB Kind = "leveldb"
)

// Open creates the backend of kind rooted at dir. dir is ignored by the
// memory backend.
func Open(kind Kind, dir string) (Backend, error) {
	switch kind {
	case KindFile, "":
		return NewFileBackend(dir)
	case KindMemory:
		return NewMemoryBackend(), nil
	case KindLevelDB:
		return NewLevelDBBackend(dir)
	default:
		return nil, fmt.Errorf("unknown storage kind %q", kind)
	}
}
