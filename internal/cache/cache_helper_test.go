package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type counts struct {
	Total int64 `json:"total"`
}

func newTestManager(t *testing.T) (*CacheManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCacheManager(client, time.Minute), mr
}

func TestCacheOrExecute_HitAfterMiss(t *testing.T) {
	cm, mr := newTestManager(t)
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return counts{Total: 7}, nil
	}

	for i := 0; i < 3; i++ {
		var got counts
		if err := cm.Stats.CacheOrExecute(ctx, AdminStatsKey, &got, cm.StatsTTL, fetch); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if got.Total != 7 {
			t.Fatalf("call %d: got %+v", i, got)
		}
	}

	if calls != 1 {
		t.Errorf("fetch called %d times, want 1", calls)
	}
	if !mr.Exists("stats:admin") {
		t.Error("expected stats:admin key in redis")
	}
	if ttl := mr.TTL("stats:admin"); ttl != time.Minute {
		t.Errorf("ttl = %v, want 1m", ttl)
	}
}

func TestCacheOrExecute_FetchErrorNotCached(t *testing.T) {
	cm, mr := newTestManager(t)
	boom := errors.New("db down")

	var got counts
	err := cm.Stats.CacheOrExecute(context.Background(), "teacher:t1", &got, time.Minute, func() (interface{}, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if mr.Exists("stats:teacher:t1") {
		t.Error("failed fetch must not be cached")
	}
}

func TestCacheOrExecute_WithoutRedis(t *testing.T) {
	cm := NewCacheManager(nil, 0)
	if cm.Enabled() {
		t.Fatal("manager without client should be disabled")
	}
	if cm.StatsTTL != StatsCacheConfig.TTL {
		t.Errorf("default ttl = %v", cm.StatsTTL)
	}

	calls := 0
	for i := 0; i < 2; i++ {
		var got counts
		err := cm.Stats.CacheOrExecute(context.Background(), AdminStatsKey, &got, cm.StatsTTL, func() (interface{}, error) {
			calls++
			return counts{Total: int64(calls)}, nil
		})
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if got.Total != int64(calls) {
			t.Errorf("call %d: got %+v", i, got)
		}
	}
	if calls != 2 {
		t.Errorf("fetch called %d times, want 2", calls)
	}

	if err := cm.HealthCheck(context.Background()); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("health check = %v", err)
	}
}

func TestInvalidateStats(t *testing.T) {
	cm, mr := newTestManager(t)
	ctx := context.Background()

	for _, key := range []string{AdminStatsKey, TeacherStatsKey("t1"), TeacherStatsKey("t2"), StudentStatsKey("s1")} {
		if err := cm.Stats.Set(ctx, key, counts{Total: 1}, time.Minute); err != nil {
			t.Fatalf("set %s: %v", key, err)
		}
	}

	InvalidateTeacherStats(ctx, cm, "t1", "s1")
	if mr.Exists("stats:teacher:t1") || mr.Exists("stats:student:s1") {
		t.Error("teacher and student keys should be gone")
	}
	if !mr.Exists("stats:teacher:t2") || !mr.Exists("stats:admin") {
		t.Error("unrelated keys should remain")
	}

	InvalidateAdminStats(ctx, cm)
	if mr.Exists("stats:admin") {
		t.Error("admin key should be gone")
	}

	InvalidateAllStats(ctx, cm)
	if mr.Exists("stats:teacher:t2") {
		t.Error("all stats keys should be gone")
	}
}

func TestHealthCheck(t *testing.T) {
	cm, mr := newTestManager(t)
	if err := cm.HealthCheck(context.Background()); err != nil {
		t.Fatalf("health check: %v", err)
	}

	mr.Close()
	if err := cm.HealthCheck(context.Background()); err == nil {
		t.Error("expected failure after redis shutdown")
	}
}
