package storage

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/eugenenazirov/envprops/internal/properties"
)

func TestNewMemoryStorageSeedsOverrides(t *testing.T) {
	t.Parallel()

	store, err := NewMemoryStorage(map[string]string{"FOO": "a", "BAR": "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v, ok := store.Lookup("FOO"); !ok || v != "a" {
		t.Fatalf("expected FOO=a, got %q (found=%v)", v, ok)
	}
	if store.Name() != properties.SourceOverride {
		t.Fatalf("unexpected source name %q", store.Name())
	}
}

func TestNewMemoryStorageRejectsInvalidSeed(t *testing.T) {
	t.Parallel()

	if _, err := NewMemoryStorage(map[string]string{"foo.bar": "x"}); !errors.Is(err, properties.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}

func TestSetAndUnset(t *testing.T) {
	t.Parallel()

	store, err := NewMemoryStorage(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Set("FOO", "a"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set("FOO", "b"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if v, _ := store.Lookup("FOO"); v != "b" {
		t.Fatalf("expected overwritten value b, got %q", v)
	}

	if err := store.Unset("FOO"); err != nil {
		t.Fatalf("Unset failed: %v", err)
	}
	if _, ok := store.Lookup("FOO"); ok {
		t.Fatalf("expected FOO to be removed")
	}
	if err := store.Unset("FOO"); err != nil {
		t.Fatalf("expected Unset of absent key to succeed, got %v", err)
	}
}

func TestSetRejectsInvalidKeys(t *testing.T) {
	t.Parallel()

	store, _ := NewMemoryStorage(nil)
	for idx, key := range []string{"", "A.B", "1A", "lower", "A-B"} {
		key := key
		t.Run(fmt.Sprintf("case_%d", idx), func(t *testing.T) {
			if err := store.Set(key, "x"); !errors.Is(err, properties.ErrInvalidKey) {
				t.Fatalf("expected ErrInvalidKey for Set(%q), got %v", key, err)
			}
			if err := store.Unset(key); !errors.Is(err, properties.ErrInvalidKey) {
				t.Fatalf("expected ErrInvalidKey for Unset(%q), got %v", key, err)
			}
		})
	}
}

func TestAllReturnsDefensiveCopy(t *testing.T) {
	t.Parallel()

	store, _ := NewMemoryStorage(map[string]string{"FOO": "a"})

	all := store.All()
	all["FOO"] = "mutated"
	all["BAR"] = "added"

	if v, _ := store.Lookup("FOO"); v != "a" {
		t.Fatalf("expected stored value to be unchanged, got %q", v)
	}
	if _, ok := store.Lookup("BAR"); ok {
		t.Fatalf("expected BAR to be absent")
	}
}

func TestMemoryStorageConcurrentAccess(t *testing.T) {
	store, _ := NewMemoryStorage(nil)
	var wg sync.WaitGroup

	for i := 0; i < 32; i++ {
		wg.Add(2)

		go func(offset int) {
			defer wg.Done()
			if err := store.Set(fmt.Sprintf("KEY_%d", offset%4), "v"); err != nil {
				t.Errorf("Set failed: %v", err)
			}
		}(i)

		go func() {
			defer wg.Done()
			store.Lookup("KEY_0")
			_ = store.All()
		}()
	}

	wg.Wait()

	if got := len(store.All()); got != 4 {
		t.Fatalf("expected 4 overrides, got %d", got)
	}
}
