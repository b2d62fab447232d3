// Package store persists fetched feed pages in bbolt so a restarted
// session replays pages without hitting the network.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/caldwell/strand/internal/domain"
)

var bucketPages = []byte("pages")

// PageStore implements domain.PageStore using BoltDB, with an in-memory
// byte cache promoted on access for hot-path reads.
type PageStore struct {
	db     *bolt.DB
	logger *slog.Logger
	mu     sync.RWMutex // protects cache

	cache map[int][]byte
}

// NewPageStore opens (or creates) the cache database under baseCacheDir,
// namespaced by feed URL so switching feeds never mixes pages. An empty
// baseCacheDir yields a memory-only store.
func NewPageStore(baseCacheDir, feedURL string, logger *slog.Logger) (*PageStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if baseCacheDir == "" {
		return &PageStore{logger: logger, cache: make(map[int][]byte)}, nil
	}

	dir := baseCacheDir
	if feedURL != "" {
		dir = filepath.Join(baseCacheDir, hashFeedURL(feedURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "strand.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPages)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &PageStore{db: db, logger: logger, cache: make(map[int][]byte)}, nil
}

func hashFeedURL(feedURL string) string {
	normalized := strings.TrimRight(strings.ToLower(feedURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *PageStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetPage returns a cached page if present.
func (s *PageStore) GetPage(page int) (domain.Page, bool) {
	s.mu.RLock()
	data, ok := s.cache[page]
	s.mu.RUnlock()

	if !ok && s.db != nil {
		err := s.db.View(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucketPages)
			if b == nil {
				return nil
			}
			if v := b.Get(pageKey(page)); v != nil {
				data = make([]byte, len(v))
				copy(data, v)
			}
			return nil
		})
		if err != nil {
			// A failed read is just a cache miss.
			s.logger.Warn("page cache read failed", "page", page, "error", err)
			data = nil
		}
		if data != nil {
			// Promote to memory cache
			s.mu.Lock()
			s.cache[page] = data
			s.mu.Unlock()
		}
	}

	if data == nil {
		return domain.Page{}, false
	}

	var p domain.Page
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.Page{}, false
	}
	return p, true
}

// SavePage stores a fetched page.
func (s *PageStore) SavePage(p domain.Page) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cache[p.Number] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPages).Put(pageKey(p.Number), data)
	})
}

// InvalidateAll drops every cached page.
func (s *PageStore) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[int][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPages)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("failed to clear on-disk page cache", "error", err)
	}
}

func pageKey(page int) []byte {
	return []byte(strconv.Itoa(page))
}
