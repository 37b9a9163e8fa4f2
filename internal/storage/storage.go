// Package storage reads and writes template banks and observation files.
//
// Files are JSON or YAML, chosen by extension. Writes go to a temporary file
// that is renamed into place, so a crash never leaves a half-written bank.
// Parsed banks are cached per path; every caller receives its own clone, so
// appending to a loaded bank never leaks into the cache.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rewired-gh/nlgen/internal/logger"
	"github.com/rewired-gh/nlgen/internal/models"
	"github.com/rewired-gh/nlgen/internal/nlg"
	"gopkg.in/yaml.v3"
)

// Store loads and saves bank files
type Store struct {
	cache *gocache.Cache
	mu    sync.RWMutex

	// Configuration
	filePermissions os.FileMode
	dirPermissions  os.FileMode
}

// New creates a Store. Parsed banks stay cached for cacheTTL; a zero TTL
// disables caching.
func New(cacheTTL time.Duration, filePermissions, dirPermissions os.FileMode) *Store {
	var cache *gocache.Cache
	if cacheTTL > 0 {
		cache = gocache.New(cacheTTL, 2*cacheTTL)
	}
	return &Store{
		cache:           cache,
		filePermissions: filePermissions,
		dirPermissions:  dirPermissions,
	}
}

// LoadBank reads and validates the bank at path
func (s *Store) LoadBank(path string) (nlg.Bank, error) {
	key := cacheKey(path)
	if s.cache != nil {
		if cached, found := s.cache.Get(key); found {
			logger.Debug("Template bank %s served from cache", path)
			return cached.(nlg.Bank).Clone(), nil
		}
	}

	s.mu.RLock()
	data, err := os.ReadFile(path)
	s.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("failed to read bank file: %w", err)
	}

	var bank nlg.Bank
	if err := decode(path, data, &bank); err != nil {
		return nil, fmt.Errorf("failed to decode bank file %s: %w", path, err)
	}
	if bank == nil {
		bank = nlg.Bank{}
	}
	if err := bank.Validate(); err != nil {
		return nil, fmt.Errorf("invalid bank file %s: %w", path, err)
	}

	if s.cache != nil {
		s.cache.SetDefault(key, bank.Clone())
	}
	logger.Debug("Loaded template bank %s with %d data types", path, len(bank))
	return bank, nil
}

// SaveBank persists bank to path and refreshes the cache
func (s *Store) SaveBank(path string, bank nlg.Bank) error {
	if err := bank.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid bank: %w", err)
	}

	data, err := encode(path, bank)
	if err != nil {
		return fmt.Errorf("failed to encode bank: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeAtomic(path, data); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.SetDefault(cacheKey(path), bank.Clone())
	}
	return nil
}

// invalidate drops any cached copy of the bank at path
func (s *Store) invalidate(path string) {
	if s.cache != nil {
		s.cache.Delete(cacheKey(path))
	}
}

// LoadObservations reads a list of observations. Entries are not validated
// here; report.Builder rejects bad ones individually so one bad entry never
// sinks the whole file.
func (s *Store) LoadObservations(path string) ([]models.Observation, error) {
	s.mu.RLock()
	data, err := os.ReadFile(path)
	s.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("failed to read observations file: %w", err)
	}

	var observations []models.Observation
	if err := decode(path, data, &observations); err != nil {
		return nil, fmt.Errorf("failed to decode observations file %s: %w", path, err)
	}
	return observations, nil
}

func (s *Store) writeAtomic(path string, data []byte) error {
	// Create data directory if needed
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, s.dirPermissions); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// Write to temporary file first (atomic write)
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, s.filePermissions); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath) // Clean up temp file on rename failure
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}

func cacheKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return "nlgen:bank:" + path
}

type format int

const (
	formatJSON format = iota
	formatYAML
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	default:
		return 0, fmt.Errorf("unsupported file extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

func decode(path string, data []byte, out interface{}) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}
	if f == formatYAML {
		return yaml.Unmarshal(data, out)
	}
	return json.Unmarshal(data, out)
}

func encode(path string, v interface{}) ([]byte, error) {
	f, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	if f == formatYAML {
		return yaml.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}
