package categorical

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Statement types.
const (
	StatementAdd uint8 = iota
	StatementRemove
	StatementCompact
	statementUnknown
)

// A Statement represents an operation to perform on a store.
type Statement struct {
	Key   string
	Type  uint8
	Event int
	Value *Value
}

// A Store represents a collection of named series. A Store can be used
// simultaneously from multiple goroutines.
type Store struct {
	m  map[string]*Data
	mu sync.RWMutex
}

// NewStore creates and initializes a new Store.
func NewStore() *Store {
	return &Store{m: make(map[string]*Data)}
}

// Set adds a copy of d to the store using key as its identifier. If a series
// already exists for the identifier it is silently replaced with the new one.
func (s *Store) Set(key string, d *Data) {
	s.mu.Lock()
	s.m[key] = d.clone()
	s.mu.Unlock()
}

// Get returns a copy of the series associated to key. The second return
// value is true if the key exists in the store and false if not.
func (s *Store) Get(key string) (*Data, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	x, ok := s.m[key]
	if !ok {
		return nil, false
	}
	return x.clone(), true
}

// Keys returns the identifiers known in the store.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	return keys
}

// Execute executes a statement against the store, returning an error if the
// statement cannot be executed or if the underlying operation returned an
// error.
func (s *Store) Execute(statement Statement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.executeUnsafe(statement)
}

// Batch executes multiple statements against the store. Individual errors
// are non blocking but if one or more statements could not be executed or
// induced an error the method will return a global error and a slice holding
// information about each individual error.
func (s *Store) Batch(statements []Statement) (error, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var report []string
	for i, v := range statements {
		if err := s.executeUnsafe(v); err != nil {
			report = append(report, fmt.Sprintf("%s, at index %d", err, i))
		}
	}
	if len(report) > 0 {
		return fmt.Errorf("some operations could not be completed"), report
	}
	return nil, report
}

// Dump allows to export the store as a slice of bytes. The encoding is a
// zstd-compressed stream of varint-framed key and series records.
func (s *Store) Dump() ([]byte, error) {
	var buf bytes.Buffer
	s.mu.RLock()
	container := make([]byte, binary.MaxVarintLen64)
	for k, v := range s.m {
		for _, data := range [][]byte{[]byte(k), v.Bytes()} {
			n := binary.PutVarint(container, int64(len(data)))
			_, err := buf.Write(container[:n])
			if err != nil {
				s.mu.RUnlock()
				return nil, err
			}
			_, err = buf.Write(data)
			if err != nil {
				s.mu.RUnlock()
				return nil, err
			}
		}
	}
	s.mu.RUnlock()
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(buf.Bytes(), nil), nil
}

// Load loads the content of a store previously exported using the Dump
// method.
func (s *Store) Load(data []byte) error {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return err
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return err
	}
	m := make(map[string]*Data)
	i := 0
	for i < len(raw) {
		v, n := binary.Varint(raw[i:])
		if n <= 0 || v < 0 || v > int64(len(raw)-i-n) {
			return errDecode
		}
		i += n
		key := string(raw[i : i+int(v)])
		i += int(v)
		v, n = binary.Varint(raw[i:])
		if n <= 0 || v < 0 || v > int64(len(raw)-i-n) {
			return errDecode
		}
		i += n
		m[key], err = DataFromBytes(raw[i : i+int(v)])
		if err != nil {
			return err
		}
		i += int(v)
	}
	s.mu.Lock()
	s.m = m
	s.mu.Unlock()
	return nil
}

// executeUnsafe executes a statement against the store. This method is not
// goroutine-safe. The caller is responsible for properly acquiring /
// releasing the lock on the store.
func (s *Store) executeUnsafe(statement Statement) error {
	if statement.Type >= statementUnknown {
		return errors.New("unknown statement type")
	}
	x, ok := s.m[statement.Key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrKeyNotFound, statement.Key)
	}
	switch statement.Type {
	case StatementAdd:
		return x.Add(statement.Event, statement.Value)
	case StatementRemove:
		if statement.Value == nil {
			return errors.New("remove statement requires a value")
		}
		x.Remove(*statement.Value)
	case StatementCompact:
		x.RemoveRepeats()
	}
	return nil
}
