package config

import (
	"fmt"
	"sync/atomic"

	"github.com/rpgo/pension-simulator/internal/calculation"
)

// Store publishes the current reference tables. Readers take a snapshot with
// Load; Reload builds a complete new *Tables before swapping it in, so an
// in-flight simulation never sees a half-loaded tax year.
type Store struct {
	loader          *Loader
	taxFile         string
	coefficientFile string
	current         atomic.Pointer[calculation.Tables]
}

// NewStore loads the tables once and returns a store serving them
func NewStore(loader *Loader, taxFile, coefficientFile string) (*Store, error) {
	s := &Store{loader: loader, taxFile: taxFile, coefficientFile: coefficientFile}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStaticStore serves fixed tables; Reload is a no-op
func NewStaticStore(tables *calculation.Tables) *Store {
	s := &Store{}
	s.current.Store(tables)
	return s
}

// Load returns the current tables snapshot
func (s *Store) Load() *calculation.Tables {
	return s.current.Load()
}

// Reload reads both documents again. On failure the previous tables stay in place.
func (s *Store) Reload() error {
	if s.loader == nil {
		return nil
	}
	tables, err := s.loader.LoadTables(s.taxFile, s.coefficientFile)
	if err != nil {
		return fmt.Errorf("reload tables: %w", err)
	}
	s.Swap(tables)
	return nil
}

// Swap replaces the published tables and returns the previous ones
func (s *Store) Swap(tables *calculation.Tables) *calculation.Tables {
	return s.current.Swap(tables)
}
