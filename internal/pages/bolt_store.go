package pages

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	bolt "go.etcd.io/bbolt"
)

const pageBucket = "pages"

// boltStore implements a Store backed by BoltDB.
type boltStore struct {
	db              *bolt.DB
	cleanupMu       sync.Mutex
	lastCleanup     atomic.Int64
	pageTTL         time.Duration
	cleanupInterval time.Duration
	now             func() time.Time
}

// openBolt initializes a BoltDB-backed Store.
func openBolt(path string, opts Options) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(pageBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	store := &boltStore{
		db:              db,
		pageTTL:         opts.PageTTL,
		cleanupInterval: opts.CleanupInterval,
		now:             time.Now,
	}
	store.lastCleanup.Store(store.now().Unix())
	return store, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Save stores p under its name, replacing any previous page with that name.
func (b *boltStore) Save(p Page) (Page, error) {
	if b == nil || b.db == nil {
		return p, nil
	}
	if p.Name == "" {
		return p, fmt.Errorf("page name is required")
	}

	now := b.now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return p, err
	}

	p.SavedAt = now.UTC()
	p.ExpiresAt = now.Add(b.pageTTL).UTC()
	raw, err := encodeJSON(p)
	if err != nil {
		return p, fmt.Errorf("encode page: %w", err)
	}

	err = b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(pageBucket))
		if bucket == nil {
			return fmt.Errorf("page bucket missing")
		}
		return bucket.Put([]byte(p.Name), raw)
	})
	return p, err
}

// Get returns the page stored under name. Expired pages are removed and reported missing.
func (b *boltStore) Get(name string) (Page, bool, error) {
	if b == nil || b.db == nil {
		return Page{}, false, nil
	}

	now := b.now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return Page{}, false, err
	}

	var (
		page  Page
		found bool
	)
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(pageBucket))
		if bucket == nil {
			return fmt.Errorf("page bucket missing")
		}

		key := []byte(name)
		value := bucket.Get(key)
		if value == nil {
			return nil
		}

		p, ok := decodePage(value)
		if !ok || !p.ExpiresAt.After(now) {
			return bucket.Delete(key)
		}
		page, found = p, true
		return nil
	})
	return page, found, err
}

// List returns all live pages ordered by name.
func (b *boltStore) List() ([]Page, error) {
	if b == nil || b.db == nil {
		return nil, nil
	}

	now := b.now()
	var out []Page
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(pageBucket))
		if bucket == nil {
			return fmt.Errorf("page bucket missing")
		}
		return bucket.ForEach(func(_, v []byte) error {
			p, ok := decodePage(v)
			if ok && p.ExpiresAt.After(now) {
				out = append(out, p)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes the page stored under name; missing pages are not an error.
func (b *boltStore) Delete(name string) error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(pageBucket))
		if bucket == nil {
			return fmt.Errorf("page bucket missing")
		}
		return bucket.Delete([]byte(name))
	})
}

// maybeCleanupExpired removes expired pages on a fixed cadence to avoid unbounded growth.
func (b *boltStore) maybeCleanupExpired(now time.Time) error {
	if b == nil || b.db == nil {
		return nil
	}

	last := time.Unix(b.lastCleanup.Load(), 0)
	if now.Sub(last) < b.cleanupInterval {
		return nil
	}

	b.cleanupMu.Lock()
	defer b.cleanupMu.Unlock()

	last = time.Unix(b.lastCleanup.Load(), 0)
	if now.Sub(last) < b.cleanupInterval {
		return nil
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(pageBucket))
		if bucket == nil {
			return fmt.Errorf("page bucket missing")
		}

		cursor := bucket.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			p, ok := decodePage(v)
			if !ok || !p.ExpiresAt.After(now) {
				if err := cursor.Delete(); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err == nil {
		b.lastCleanup.Store(now.Unix())
	}
	return err
}

func decodePage(value []byte) (Page, bool) {
	var p Page
	if err := json.Unmarshal(value, &p); err != nil {
		return Page{}, false
	}
	if p.ExpiresAt.IsZero() {
		return Page{}, false
	}
	return p, true
}
