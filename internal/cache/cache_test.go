package cache

import (
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := New[string](time.Minute)
	defer c.Close()

	if _, ok := c.Get("missing"); ok {
		t.Error("Expected a miss for an unset key")
	}

	c.Set("a", "one")
	v, ok := c.Get("a")
	if !ok || v != "one" {
		t.Errorf("Expected hit with %q, got %q (hit=%v)", "one", v, ok)
	}
}

func TestExpiry(t *testing.T) {
	c := New[int](20 * time.Millisecond)
	defer c.Close()

	c.Set("n", 42)
	time.Sleep(40 * time.Millisecond)

	if _, ok := c.Get("n"); ok {
		t.Error("Expected the entry to have expired")
	}
}

func TestDelete(t *testing.T) {
	c := New[int](time.Minute)
	defer c.Close()

	c.Set("n", 1)
	c.Delete("n")
	if _, ok := c.Get("n"); ok {
		t.Error("Expected the entry to be gone after Delete")
	}
}
