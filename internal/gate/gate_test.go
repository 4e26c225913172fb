package gate

import (
	"sync"
	"testing"
	"time"
)

func TestAcquireSerializesPerKey(t *testing.T) {
	g := New()
	var counter, max int
	var mu sync.Mutex

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := g.Acquire("venue-1")
			defer release()
			mu.Lock()
			counter++
			if counter > max {
				max = counter
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			counter--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if max != 1 {
		t.Fatalf("expected at most one holder per key, saw %d", max)
	}
}

func TestDifferentKeysDoNotBlock(t *testing.T) {
	g := New()
	r1 := g.Acquire("venue-1")
	defer r1()

	done := make(chan struct{})
	go func() {
		r2 := g.Acquire("venue-2")
		r2()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("independent keys must not block each other")
	}
}

func TestOverlappingSwapPairsDoNotDeadlock(t *testing.T) {
	g := New()

	var wg sync.WaitGroup
	// A<->B and B<->C acquired concurrently many times; sorted multi-key
	// acquisition must prevent lock-order inversion.
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			release := g.Acquire("a", "b")
			time.Sleep(time.Microsecond)
			release()
		}()
		go func() {
			defer wg.Done()
			release := g.Acquire("c", "b")
			time.Sleep(time.Microsecond)
			release()
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("overlapping pairs deadlocked")
	}
}

func TestDuplicateAndEmptyKeysCollapsed(t *testing.T) {
	g := New()
	release := g.Acquire("x", "x", "", "x")
	release()
	release() // releasing twice must be harmless

	g.mu.Lock()
	remaining := len(g.entries)
	g.mu.Unlock()
	if remaining != 0 {
		t.Fatalf("expected entries to be reclaimed, %d left", remaining)
	}
}
