// Package storage persists calculator state as one JSON document per logical
// key so restarts keep prices, wages and history.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Store maps document keys to JSON files under a single data directory.
type Store struct {
	dir    string
	logger *zap.Logger
}

// NewStore creates a document store rooted at dir.
func NewStore(dir string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create data dir")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{dir: dir, logger: logger}, nil
}

type loadOutcome int

const (
	loadOK loadOutcome = iota
	loadMissing
	loadCorrupt
)

// tryLoad reads the raw document under key and tags why it may be unusable.
// The tag is what makes the fallback-to-defaults policy an explicit branch
// instead of a swallowed error.
func (s *Store) tryLoad(key string) ([]byte, loadOutcome) {
	payload, err := os.ReadFile(s.path(key))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("document unreadable, using defaults", zap.String("key", key), zap.Error(err))
			return nil, loadCorrupt
		}
		return nil, loadMissing
	}
	if len(payload) == 0 {
		return nil, loadMissing
	}
	return payload, loadOK
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load returns the document stored under key, or def when the document is
// absent or unparseable. Corruption is masked by defaulting: this is a
// single-user tool where availability wins over surfacing I/O noise.
func Load[T any](s *Store, key string, def T) T {
	payload, outcome := s.tryLoad(key)
	if outcome != loadOK {
		return cloneDefault(def)
	}

	var doc T
	if err := json.Unmarshal(payload, &doc); err != nil {
		s.logger.Warn("document corrupt, using defaults", zap.String("key", key), zap.Error(err))
		return cloneDefault(def)
	}
	return doc
}

// cloneDefault hands out an independent copy of the default so callers can
// mutate what Load returns without corrupting their fallback value.
func cloneDefault[T any](def T) T {
	payload, err := json.Marshal(def)
	if err != nil {
		return def
	}
	var out T
	if err := json.Unmarshal(payload, &out); err != nil {
		return def
	}
	return out
}

// Save writes the document under key atomically via a temp file. Write
// failures are logged and swallowed; callers never observe save errors.
func Save[T any](s *Store, key string, doc T) {
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		s.logger.Warn("encode document failed", zap.String("key", key), zap.Error(err))
		return
	}

	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		s.logger.Warn("write document temp file failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := os.Rename(tmp, path); err != nil {
		s.logger.Warn("persist document failed", zap.String("key", key), zap.Error(err))
	}
}
