// Package store is the durable client-side cache: board and brand lists
// for instant panel paint, the first search page per filter signature, and
// small persisted state such as the activity last-seen timestamp.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/adlens/adlens/internal/domain"
)

// Bucket names
var (
	bucketBoards   = []byte("boards")
	bucketBrands   = []byte("brands")
	bucketSearches = []byte("searches")
	bucketState    = []byte("state")
)

const lastSeenKey = "activity_last_seen"

// CachedSearch is the persisted first page of a search session.
type CachedSearch struct {
	Items   []domain.Ad `json:"items"`
	Total   int         `json:"total"`
	HasNext bool        `json:"has_next"`
	SavedAt time.Time   `json:"saved_at"`
}

// Cache implements the durable key/value store on BoltDB with an
// in-memory promotion layer for hot-path reads.
type Cache struct {
	db *bolt.DB
	mu sync.RWMutex // protects mem

	mem map[string][]byte
}

// NewCache opens (or creates) the cache under baseDir. The directory is
// namespaced by a hash of the server URL so switching backends never shows
// another account's data. An empty baseDir gives a memory-only cache.
func NewCache(baseDir, serverURL string) (*Cache, error) {
	if baseDir == "" {
		return &Cache{mem: make(map[string][]byte)}, nil
	}

	dir := baseDir
	if serverURL != "" {
		dir = filepath.Join(baseDir, hashServerURL(serverURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "adlens.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketBoards, bucketBrands, bucketSearches, bucketState} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{db: db, mem: make(map[string][]byte)}, nil
}

func hashServerURL(serverURL string) string {
	normalized := strings.TrimRight(strings.ToLower(serverURL), "/")
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:6])
}

func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (c *Cache) get(bucket []byte, key string, dest any) bool {
	memKey := string(bucket) + ":" + key

	c.mu.RLock()
	if data, ok := c.mem[memKey]; ok {
		c.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	c.mu.RUnlock()

	if c.db == nil {
		return false
	}

	var data []byte
	c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if data == nil {
		return false
	}

	// Promote to the memory layer
	c.mu.Lock()
	c.mem[memKey] = data
	c.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (c *Cache) set(bucket []byte, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	memKey := string(bucket) + ":" + key
	c.mu.Lock()
	c.mem[memKey] = data
	c.mu.Unlock()

	if c.db == nil {
		return nil // memory-only mode
	}

	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

func (c *Cache) delete(bucket []byte, key string) {
	memKey := string(bucket) + ":" + key
	c.mu.Lock()
	delete(c.mem, memKey)
	c.mu.Unlock()

	if c.db == nil {
		return
	}

	c.db.Update(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucket); b != nil {
			b.Delete([]byte(key))
		}
		return nil
	})
}

func (c *Cache) clearBucket(bucket []byte) {
	prefix := string(bucket) + ":"
	c.mu.Lock()
	for k := range c.mem {
		if strings.HasPrefix(k, prefix) {
			delete(c.mem, k)
		}
	}
	c.mu.Unlock()

	if c.db == nil {
		return
	}

	c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		cur := b.Cursor()
		for k, _ := cur.First(); k != nil; k, _ = cur.Next() {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// === Boards ===

func (c *Cache) GetBoards() ([]domain.Board, bool) {
	var boards []domain.Board
	ok := c.get(bucketBoards, "list", &boards)
	return boards, ok
}

func (c *Cache) SaveBoards(boards []domain.Board) error {
	return c.set(bucketBoards, "list", boards)
}

func (c *Cache) InvalidateBoards() {
	c.delete(bucketBoards, "list")
}

// === Brands ===

func (c *Cache) GetBrands() ([]domain.Brand, bool) {
	var brands []domain.Brand
	ok := c.get(bucketBrands, "list", &brands)
	return brands, ok
}

func (c *Cache) SaveBrands(brands []domain.Brand) error {
	return c.set(bucketBrands, "list", brands)
}

func (c *Cache) InvalidateBrands() {
	c.delete(bucketBrands, "list")
}

// === Search pages (first page per filter signature) ===

func (c *Cache) GetSearch(filters domain.SearchFilters) (CachedSearch, bool) {
	var cached CachedSearch
	ok := c.get(bucketSearches, searchKey(filters), &cached)
	return cached, ok
}

func (c *Cache) SaveSearch(filters domain.SearchFilters, cached CachedSearch) error {
	return c.set(bucketSearches, searchKey(filters), cached)
}

// searchKey builds a stable signature for a filter combination.
func searchKey(filters domain.SearchFilters) string {
	f := filters.Normalize()
	return strings.Join([]string{
		f.Keyword, string(f.Platform), string(f.Format), f.Sort,
		f.DateFrom, f.DateTo, f.Industry,
	}, "|")
}

// === Activity last-seen ===

// LastSeen returns the persisted last-seen timestamp for the activity
// panel; ok is false when none has been recorded yet.
func (c *Cache) LastSeen() (time.Time, bool) {
	var raw string
	if !c.get(bucketState, lastSeenKey, &raw) {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// SetLastSeen persists the last-seen timestamp as RFC 3339.
func (c *Cache) SetLastSeen(ts time.Time) error {
	return c.set(bucketState, lastSeenKey, ts.UTC().Format(time.RFC3339))
}

// === Invalidation ===

// InvalidateAll wipes every bucket. Called on logout so the next account
// never sees this one's data.
func (c *Cache) InvalidateAll() {
	for _, bucket := range [][]byte{bucketBoards, bucketBrands, bucketSearches, bucketState} {
		c.clearBucket(bucket)
	}
}
