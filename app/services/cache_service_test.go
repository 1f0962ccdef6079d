package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/contact-parser/app/models"
)

func sampleResult(raw string) *models.ParseResult {
	return &models.ParseResult{
		Raw:            raw,
		Kind:           models.KindName,
		Status:         models.StatusOK,
		RawFingerprint: CacheKey(models.KindName, raw),
	}
}

func TestCacheService_SetGet(t *testing.T) {
	ctx := context.Background()
	cs := NewCacheService(time.Minute)

	if _, found, err := cs.Get(ctx, "missing"); err != nil || found {
		t.Fatalf("Get(missing) = found=%v err=%v, want miss", found, err)
	}

	want := sampleResult("John Doe")
	if err := cs.Set(ctx, want.RawFingerprint, want); err != nil {
		t.Fatal(err)
	}

	got, found, err := cs.Get(ctx, want.RawFingerprint)
	if err != nil || !found {
		t.Fatalf("Get = found=%v err=%v, want hit", found, err)
	}
	if got.Raw != want.Raw {
		t.Errorf("Raw = %q, want %q", got.Raw, want.Raw)
	}

	exists, err := cs.Exists(ctx, want.RawFingerprint)
	if err != nil || !exists {
		t.Errorf("Exists = %v err=%v, want true", exists, err)
	}
}

func TestCacheService_Expiry(t *testing.T) {
	ctx := context.Background()
	cs := NewCacheService(10 * time.Millisecond)

	result := sampleResult("stale")
	if err := cs.Set(ctx, "k", result); err != nil {
		t.Fatal(err)
	}

	time.Sleep(25 * time.Millisecond)

	if _, found, _ := cs.Get(ctx, "k"); found {
		t.Error("expired entry should not be returned")
	}
	if exists, _ := cs.Exists(ctx, "k"); exists {
		t.Error("expired entry should not exist")
	}
}

func TestCacheService_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	cs := NewCacheService(time.Minute)

	cs.Set(ctx, "a", sampleResult("a"))
	cs.Set(ctx, "b", sampleResult("b"))

	if err := cs.Delete(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := cs.Get(ctx, "a"); found {
		t.Error("deleted entry should be gone")
	}
	if _, found, _ := cs.Get(ctx, "b"); !found {
		t.Error("other entries should survive Delete")
	}

	if err := cs.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := cs.Get(ctx, "b"); found {
		t.Error("Clear should drop everything")
	}
}

func TestCacheService_Stats(t *testing.T) {
	ctx := context.Background()
	cs := NewCacheService(time.Minute)

	cs.Set(ctx, "k", sampleResult("k"))
	cs.Get(ctx, "k")       // hit
	cs.Get(ctx, "absent")  // miss
	cs.Get(ctx, "absent2") // miss

	stats, err := cs.GetStats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalHits != 1 || stats.TotalMiss != 2 {
		t.Errorf("hits/misses = %d/%d, want 1/2", stats.TotalHits, stats.TotalMiss)
	}
	if stats.TotalItems != 1 {
		t.Errorf("TotalItems = %d, want 1", stats.TotalItems)
	}
	if stats.HitRate <= 0.3 || stats.HitRate >= 0.4 {
		t.Errorf("HitRate = %f, want ~0.33", stats.HitRate)
	}
}

func TestCacheService_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	cs := NewCacheService(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", n%4)
			for j := 0; j < 100; j++ {
				cs.Set(ctx, key, sampleResult(key))
				cs.Get(ctx, key)
				cs.Exists(ctx, key)
			}
		}(i)
	}
	wg.Wait()

	if stats, _ := cs.GetStats(ctx); stats.TotalItems != 4 {
		t.Errorf("TotalItems = %d, want 4", stats.TotalItems)
	}
}
