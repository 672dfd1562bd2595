// Package cachetest holds a behavioral suite shared by cache adapters.
package cachetest

import (
	"context"
	"testing"
	"time"

	"github.com/Strob0t/animalfarm/internal/port/cache"
)

// Run exercises the contract every cache.Cache must honor. settle is called
// after writes for backends that apply them asynchronously; pass nil when
// writes are immediately visible.
func Run(t *testing.T, c cache.Cache, settle func()) {
	t.Helper()
	ctx := context.Background()
	wait := func() {
		if settle != nil {
			settle()
		}
	}

	t.Run("SetAndGet", func(t *testing.T) {
		if err := c.Set(ctx, "farm.set", []byte(`{"status":201}`), time.Minute); err != nil {
			t.Fatal(err)
		}
		wait()
		val, found, err := c.Get(ctx, "farm.set")
		if err != nil {
			t.Fatal(err)
		}
		if !found {
			t.Fatal("expected hit after Set")
		}
		if string(val) != `{"status":201}` {
			t.Fatalf("unexpected value %s", val)
		}
	})

	t.Run("GetMiss", func(t *testing.T) {
		_, found, err := c.Get(ctx, "farm.missing")
		if err != nil {
			t.Fatal(err)
		}
		if found {
			t.Fatal("expected miss for unknown key")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		_ = c.Set(ctx, "farm.del", []byte("x"), time.Minute)
		wait()
		if err := c.Delete(ctx, "farm.del"); err != nil {
			t.Fatal(err)
		}
		wait()
		if _, found, _ := c.Get(ctx, "farm.del"); found {
			t.Fatal("expected miss after Delete")
		}
	})

	t.Run("DeleteUnknown", func(t *testing.T) {
		if err := c.Delete(ctx, "farm.never"); err != nil {
			t.Fatalf("Delete of unknown key should not error: %v", err)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		_ = c.Set(ctx, "farm.ow", []byte("v1"), time.Minute)
		wait()
		_ = c.Set(ctx, "farm.ow", []byte("v2"), time.Minute)
		wait()
		val, found, err := c.Get(ctx, "farm.ow")
		if err != nil {
			t.Fatal(err)
		}
		if !found || string(val) != "v2" {
			t.Fatalf("expected v2 after overwrite, got %q found=%v", val, found)
		}
	})
}
