package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedisCache(mr.Addr())
	if err != nil {
		t.Fatalf("NewRedisCache() error = %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisCacheGetMissingKey(t *testing.T) {
	c, _ := newTestCache(t)
	val, err := c.Get(context.Background(), "nope")
	if err != nil || val != "" {
		t.Fatalf("Get() = %q, %v; want empty, nil", val, err)
	}
}

func TestRedisCacheSetWithTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatal(err)
	}
	if got, _ := c.Get(ctx, "k"); got != "v" {
		t.Fatalf("Get() = %q", got)
	}
	mr.FastForward(2 * time.Minute)
	if got, _ := c.Get(ctx, "k"); got != "" {
		t.Fatalf("key should have expired, Get() = %q", got)
	}
}

func TestRedisCacheIncrAndDel(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := c.Incr(ctx, "counter")
		if err != nil || got != want {
			t.Fatalf("Incr() = %d, %v; want %d", got, err, want)
		}
	}
	if err := c.Expire(ctx, "counter", time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := c.Del(ctx, "counter"); err != nil {
		t.Fatal(err)
	}
	if got, _ := c.Get(ctx, "counter"); got != "" {
		t.Fatalf("Get() = %q after Del", got)
	}
}

func TestRedisCacheSetNX(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	ok, err := c.SetNX(ctx, "lock", "1", time.Minute)
	if err != nil || !ok {
		t.Fatalf("first SetNX() = %v, %v", ok, err)
	}
	ok, _ = c.SetNX(ctx, "lock", "2", time.Minute)
	if ok {
		t.Fatal("second SetNX() should fail")
	}
}

func TestNewRedisCacheRequiresAddr(t *testing.T) {
	if _, err := NewRedisCache(""); err == nil {
		t.Fatal("expected error for empty addr")
	}
}

func TestJitterTTL(t *testing.T) {
	ttl := 10 * time.Second
	for i := 0; i < 20; i++ {
		got := JitterTTL(ttl)
		if got > ttl || got < 9*time.Second {
			t.Fatalf("JitterTTL() = %v out of range", got)
		}
	}
	if JitterTTL(0) != 0 {
		t.Fatal("zero ttl must stay zero")
	}
}
