package cache

import (
	"testing"
	"time"
)

func TestTTL_HitBeforeExpiry(t *testing.T) {
	now := time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC)
	c := NewTTL[int](5 * time.Minute)
	c.SetClock(func() time.Time { return now })

	c.Set("k", 42)

	now = now.Add(4 * time.Minute)
	v, ok := c.Get("k")
	if !ok || v != 42 {
		t.Errorf("Get = %v %v, want 42 true", v, ok)
	}
}

func TestTTL_MissAfterExpiry(t *testing.T) {
	now := time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC)
	c := NewTTL[int](5 * time.Minute)
	c.SetClock(func() time.Time { return now })

	c.Set("k", 42)

	now = now.Add(5 * time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Error("entry should be stale at exactly the TTL boundary")
	}
}

func TestTTL_SetResetsLifetime(t *testing.T) {
	now := time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC)
	c := NewTTL[string](5 * time.Minute)
	c.SetClock(func() time.Time { return now })

	c.Set("k", "old")
	now = now.Add(4 * time.Minute)
	c.Set("k", "new")
	now = now.Add(4 * time.Minute)

	v, ok := c.Get("k")
	if !ok || v != "new" {
		t.Errorf("Get = %v %v, want new true", v, ok)
	}
}

func TestTTL_CachesNilAsNegativeResult(t *testing.T) {
	c := NewTTL[*float64](5 * time.Minute)
	c.Set("no-data", nil)

	v, ok := c.Get("no-data")
	if !ok {
		t.Fatal("negative entry should hit")
	}
	if v != nil {
		t.Errorf("value = %v, want nil", v)
	}
}

func TestTTL_MissOnUnknownKey(t *testing.T) {
	c := NewTTL[int](time.Minute)
	if _, ok := c.Get("missing"); ok {
		t.Error("unknown key should miss")
	}
}
