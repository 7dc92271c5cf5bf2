package cache

import (
	"bytes"
	"testing"
	"time"
)

func TestCache_SetGetDelete(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	if _, ok := c.Get("k"); ok {
		t.Error("hit on empty cache")
	}
	c.Set("k", []byte("v"))
	got, ok := c.Get("k")
	if !ok || !bytes.Equal(got, []byte("v")) {
		t.Fatalf("got %q ok=%v", got, ok)
	}
	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("hit after delete")
	}
}

func TestCache_Expiry(t *testing.T) {
	c := New(20 * time.Millisecond)
	defer c.Stop()

	c.Set("k", []byte("v"))
	time.Sleep(50 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("hit after TTL elapsed")
	}
}

func TestCache_Overwrite(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	c.Set("k", []byte("v1"))
	c.Set("k", []byte("v2"))
	got, _ := c.Get("k")
	if !bytes.Equal(got, []byte("v2")) {
		t.Errorf("got %q", got)
	}
}
