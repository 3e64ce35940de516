package cache

import (
	"testing"
	"time"
)

func TestWindowCounterHit(t *testing.T) {
	c := NewCounter(100, time.Minute)

	for want := 1; want <= 3; want++ {
		if got := c.Hit("a"); got != want {
			t.Errorf("Hit #%d returned %d", want, got)
		}
	}
	if got := c.Hit("b"); got != 1 {
		t.Errorf("Expected independent key to start at 1, got %d", got)
	}

	stats := c.Stats()
	if stats.Hits != 4 || stats.Size != 2 {
		t.Errorf("Unexpected stats %+v", stats)
	}
}

func TestWindowCounterExpires(t *testing.T) {
	c := NewCounter(100, 50*time.Millisecond)

	c.Hit("a")
	c.Hit("a")
	time.Sleep(80 * time.Millisecond)

	if got := c.Hit("a"); got != 1 {
		t.Errorf("Expected window to reset, got %d", got)
	}
}

func TestWindowCounterEvictsAtCapacity(t *testing.T) {
	c := NewCounter(2, time.Minute)

	c.Hit("first")
	time.Sleep(5 * time.Millisecond)
	c.Hit("second")
	time.Sleep(5 * time.Millisecond)
	c.Hit("third")

	if size := c.Stats().Size; size != 2 {
		t.Errorf("Expected size capped at 2, got %d", size)
	}
	if got := c.Hit("first"); got != 1 {
		t.Errorf("Expected evicted key to restart at 1, got %d", got)
	}
}

func TestWindowCounterReject(t *testing.T) {
	c := NewCounter(10, time.Minute)

	c.Hit("a")
	c.Reject()
	c.Reject()

	if stats := c.Stats(); stats.Hits != 1 || stats.Rejections != 2 {
		t.Errorf("Unexpected stats %+v", stats)
	}
}

func TestClientKey(t *testing.T) {
	if got := ClientKey("search", "10.0.0.1"); got != "rate:search:10.0.0.1" {
		t.Errorf("Unexpected key %q", got)
	}
}
