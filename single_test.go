package chanq

import (
	"testing"
	"time"
)

// Basic sanity: one value through a single-slot channel.
func TestSingleSlotPutTake(t *testing.T) {
	c, err := New[int](1, 1)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if c.IsReady() {
		t.Fatalf("fresh channel unexpectedly ready")
	}

	v, err := c.Put(5)
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if v != 5 {
		t.Fatalf("put returned %d, expected 5", v)
	}
	if !c.IsReady() || c.Len() != 1 {
		t.Fatalf("expected ready channel with len=1, got ready=%v len=%d", c.IsReady(), c.Len())
	}

	v, err = c.Take()
	if err != nil {
		t.Fatalf("take failed: %v", err)
	}
	if v != 5 {
		t.Fatalf("take returned %d, expected 5", v)
	}
	if c.IsReady() {
		t.Fatalf("channel still ready after take")
	}
	if c.Len() != 0 {
		t.Fatalf("expected len=0 after take, got %d", c.Len())
	}
	if c.Cap() != 1 {
		t.Fatalf("expected cap=1, got %d", c.Cap())
	}
}

// A second put must block while the slot is occupied, and proceed once
// a take frees it. Take order is a then b.
func TestSingleSlotSecondPutBlocks(t *testing.T) {
	c, err := New[int](1, 1)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := c.Put(1); err != nil {
		t.Fatalf("first put failed: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := c.Put(2)
		done <- err
	}()

	select {
	case <-done:
		t.Fatalf("second put returned while the slot was still occupied")
	case <-time.After(50 * time.Millisecond):
	}

	v, err := c.Take()
	if err != nil {
		t.Fatalf("take failed: %v", err)
	}
	if v != 1 {
		t.Fatalf("take returned %d, expected 1", v)
	}

	if err := <-done; err != nil {
		t.Fatalf("unblocked put failed: %v", err)
	}

	v, err = c.Take()
	if err != nil {
		t.Fatalf("second take failed: %v", err)
	}
	if v != 2 {
		t.Fatalf("second take returned %d, expected 2", v)
	}

	// slot is empty again, a further take must suspend
	took := make(chan error, 1)
	go func() {
		_, err := c.Take()
		took <- err
	}()
	select {
	case <-took:
		t.Fatalf("take returned on an empty channel")
	case <-time.After(50 * time.Millisecond):
	}
	c.Close()
	if err := <-took; err != ErrClosed {
		t.Fatalf("expected ErrClosed for the parked take, got %v", err)
	}
}

// Fetch must suspend on an empty slot (never return a default), and be
// idempotent once a value is present.
func TestSingleSlotFetch(t *testing.T) {
	c, err := New[string](1, 1)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	fetched := make(chan string, 1)
	go func() {
		v, err := c.Fetch()
		if err != nil {
			t.Errorf("fetch failed: %v", err)
		}
		fetched <- v
	}()

	select {
	case v := <-fetched:
		t.Fatalf("fetch returned %q on an empty channel", v)
	case <-time.After(50 * time.Millisecond):
	}

	if _, err := c.Put("x"); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if v := <-fetched; v != "x" {
		t.Fatalf("fetch returned %q, expected %q", v, "x")
	}

	// repeated fetches do not consume
	for i := 0; i < 10; i++ {
		v, err := c.Fetch()
		if err != nil {
			t.Fatalf("fetch %d failed: %v", i, err)
		}
		if v != "x" {
			t.Fatalf("fetch %d returned %q, expected %q", i, v, "x")
		}
	}
	if c.Len() != 1 {
		t.Fatalf("len changed by fetch: %d", c.Len())
	}

	v, err := c.Take()
	if err != nil || v != "x" {
		t.Fatalf("take after fetches got (%q, %v)", v, err)
	}
}

// The occupied flag, not the value, carries emptiness: a stored zero
// value must come back as a real element.
func TestSingleSlotZeroValue(t *testing.T) {
	c, err := New[int](1, 1)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := c.Put(0); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if !c.IsReady() {
		t.Fatalf("channel holding a zero value reports not ready")
	}
	v, err := c.Take()
	if err != nil || v != 0 {
		t.Fatalf("take got (%d, %v), expected (0, nil)", v, err)
	}
	if c.IsReady() {
		t.Fatalf("channel ready after taking the only value")
	}
}
