// Package state persists the last observed battery percentage between
// invocations as 4 little-endian bytes.
package state

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bn-notify/bn/internal/domain"
)

const (
	// FileName is the state file's name inside the temp directory.
	FileName = "bn_state"

	// DefaultPercentage is assumed when no usable state exists.
	DefaultPercentage uint32 = domain.MaxPercentage

	recordSize = 4
)

// DefaultPath returns the state file location in the system temp directory.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), FileName)
}

// ─── File Store ─────────────────────────────────────────────────────────────

// FileStore is the on-disk StateStore. It assumes a single writer.
type FileStore struct {
	Path string
}

// NewFileStore creates a store at path, or at DefaultPath when path is empty.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultPath()
	}
	return &FileStore{Path: path}
}

// Load returns the persisted percentage. A missing, unreadable, short or
// out-of-range file yields DefaultPercentage.
func (s *FileStore) Load() uint32 {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return DefaultPercentage
	}
	pct, ok := Decode(data)
	if !ok {
		return DefaultPercentage
	}
	return pct
}

// Save overwrites the file with pct.
func (s *FileStore) Save(pct uint32) error {
	if err := os.WriteFile(s.Path, Encode(pct), 0o644); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrStateWrite, s.Path, err)
	}
	return nil
}

// Encode returns the 4-byte record for pct.
func Encode(pct uint32) []byte {
	buf := make([]byte, recordSize)
	binary.LittleEndian.PutUint32(buf, pct)
	return buf
}

// Decode parses the first 4 bytes of data. Bytes past the record are ignored.
func Decode(data []byte) (uint32, bool) {
	if len(data) < recordSize {
		return 0, false
	}
	pct := binary.LittleEndian.Uint32(data[:recordSize])
	if pct > domain.MaxPercentage {
		return 0, false
	}
	return pct, true
}

// ─── Memory Store ───────────────────────────────────────────────────────────

// MemoryStore is an in-memory StateStore for tests and dry runs.
type MemoryStore struct {
	mu      sync.Mutex
	value   *uint32
	saves   []uint32
	SaveErr error
}

// NewMemoryStore creates a store. With no argument it starts empty and
// loads DefaultPercentage.
func NewMemoryStore(initial ...uint32) *MemoryStore {
	s := &MemoryStore{}
	if len(initial) > 0 {
		v := initial[0]
		s.value = &v
	}
	return s
}

// Load returns the stored value or DefaultPercentage.
func (s *MemoryStore) Load() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.value == nil {
		return DefaultPercentage
	}
	return *s.value
}

// Save records pct unless SaveErr is set.
func (s *MemoryStore) Save(pct uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return fmt.Errorf("%w: %w", domain.ErrStateWrite, s.SaveErr)
	}
	s.value = &pct
	s.saves = append(s.saves, pct)
	return nil
}

// Saves returns every value saved so far.
func (s *MemoryStore) Saves() []uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]uint32(nil), s.saves...)
}
