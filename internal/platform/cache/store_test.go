package cache

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestStore_GetOrLoad_MemoizesValue(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	loads := 0
	loader := func(context.Context) (any, error) {
		loads++
		return "St Louis Blues", nil
	}

	for i := 0; i < 3; i++ {
		got, err := store.GetOrLoad(ctx, "team:19", loader)
		if err != nil {
			t.Fatalf("GetOrLoad error: %v", err)
		}
		if got != "St Louis Blues" {
			t.Fatalf("unexpected value: %v", got)
		}
	}

	if loads != 1 {
		t.Fatalf("expected one load, got %d", loads)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	loads := 0
	loader := func(context.Context) (any, error) {
		loads++
		if loads == 1 {
			return nil, fmt.Errorf("upstream unavailable")
		}
		return 42, nil
	}

	if _, err := store.GetOrLoad(ctx, "player:8478402", loader); err == nil {
		t.Fatal("expected first load to fail")
	}
	got, err := store.GetOrLoad(ctx, "player:8478402", loader)
	if err != nil {
		t.Fatalf("second load error: %v", err)
	}
	if got != 42 {
		t.Fatalf("unexpected value: %v", got)
	}
	if loads != 2 {
		t.Fatalf("expected two loads, got %d", loads)
	}
}

func TestStore_ZeroTTLNeverExpires(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	ctx := context.Background()

	store.Set(ctx, "season", "20252026")
	if _, ok := store.Get(ctx, "season"); !ok {
		t.Fatal("expected value to stay cached with zero TTL")
	}
}
