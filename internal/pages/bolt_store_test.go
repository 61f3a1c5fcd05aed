package pages

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T, opts Options) *boltStore {
	t.Helper()
	storeRaw, err := openBolt(filepath.Join(t.TempDir(), "nested", "pages.db"), normalizeOptions(opts))
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestBoltStoreSavesAndExpiresPages(t *testing.T) {
	store := openTestStore(t, Options{PageTTL: time.Minute, CleanupInterval: time.Hour})
	clock := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	if _, found, err := store.Get("top-films"); err != nil || found {
		t.Fatalf("expected missing page, found=%v err=%v", found, err)
	}

	saved, err := store.Save(Page{Name: "top-films", DataType: "films", Payload: []byte(`{"html":"<h1>x</h1>"}`)})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !saved.ExpiresAt.Equal(clock.Add(time.Minute)) {
		t.Fatalf("unexpected expiry %s", saved.ExpiresAt)
	}

	got, found, err := store.Get("top-films")
	if err != nil || !found {
		t.Fatalf("expected stored page, found=%v err=%v", found, err)
	}
	if got.DataType != "films" || string(got.Payload) != `{"html":"<h1>x</h1>"}` {
		t.Fatalf("unexpected page %#v", got)
	}

	clock = clock.Add(2 * time.Minute)
	if _, found, err := store.Get("top-films"); err != nil || found {
		t.Fatalf("expected expired page to be gone, found=%v err=%v", found, err)
	}
}

func TestBoltStoreCleanupSweepsExpired(t *testing.T) {
	store := openTestStore(t, Options{PageTTL: time.Minute, CleanupInterval: time.Minute})
	clock := time.Now()
	store.now = func() time.Time { return clock }

	if _, err := store.Save(Page{Name: "old"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	clock = clock.Add(5 * time.Minute)
	store.lastCleanup.Store(clock.Add(-2 * time.Minute).Unix())
	if _, err := store.Save(Page{Name: "new"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	pages, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(pages) != 1 || pages[0].Name != "new" {
		t.Fatalf("expected only the fresh page, got %#v", pages)
	}
}

func TestBoltStoreListSortedAndDelete(t *testing.T) {
	store := openTestStore(t, Options{})
	for _, name := range []string{"revenue", "actors", "films"} {
		if _, err := store.Save(Page{Name: name}); err != nil {
			t.Fatalf("Save %s: %v", name, err)
		}
	}

	pages, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(pages) != 3 || pages[0].Name != "actors" || pages[2].Name != "revenue" {
		t.Fatalf("unexpected order %#v", pages)
	}

	if err := store.Delete("films"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete("missing"); err != nil {
		t.Fatalf("Delete missing: %v", err)
	}
	if _, found, _ := store.Get("films"); found {
		t.Fatalf("expected deleted page to be gone")
	}
}

func TestBoltStoreRejectsUnnamedPage(t *testing.T) {
	store := openTestStore(t, Options{})
	if _, err := store.Save(Page{}); err == nil {
		t.Fatalf("expected error for empty name")
	}
}

func TestNewStoreSupportsNoop(t *testing.T) {
	store, err := NewStore("none", "", Options{})
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if _, err := store.Save(Page{Name: "x"}); !errors.Is(err, ErrStorageDisabled) {
		t.Fatalf("noop store Save should report disabled storage, got %v", err)
	}
	if _, found, _ := store.Get("x"); found {
		t.Fatalf("noop store should never find pages")
	}
}

func TestNewStoreRejectsUnknownType(t *testing.T) {
	if _, err := NewStore("redis", "", Options{}); err == nil {
		t.Fatalf("expected error for unsupported storage type")
	}
	if _, err := NewStore("bbolt", " ", Options{}); err == nil {
		t.Fatalf("expected error for missing bbolt path")
	}
}

func TestBoltStoreKeepsMarkupUnescaped(t *testing.T) {
	store := openTestStore(t, Options{})
	p, err := NewPage("report", "", "films", map[string]any{"html": `<h1>Films & "Actors"</h1>`})
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	if strings.Contains(string(p.Payload), `\u003c`) || strings.Contains(string(p.Payload), `\u0026`) {
		t.Fatalf("payload escaped: %s", p.Payload)
	}
	if _, err := store.Save(p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(store.db.Path())
	if err != nil {
		t.Fatalf("read db: %v", err)
	}
	if !strings.Contains(string(raw), `<h1>Films & \"Actors\"</h1>`) {
		t.Fatalf("stored record does not carry the markup verbatim")
	}

	got, _, err := store.Get("report")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got.Payload) != string(p.Payload) {
		t.Fatalf("payload changed on round trip: %s != %s", got.Payload, p.Payload)
	}
}

func TestCheckType(t *testing.T) {
	for _, typ := range []string{"", "none", "Disabled"} {
		if err := CheckType(typ, ""); err != nil {
			t.Fatalf("CheckType(%q): %v", typ, err)
		}
	}
	if err := CheckType("bbolt", "x.db"); err != nil {
		t.Fatalf("CheckType bbolt: %v", err)
	}
	if err := CheckType("bbolt", ""); err == nil {
		t.Fatalf("expected error for bbolt without path")
	}
	if err := CheckType("redis", "x"); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
}
