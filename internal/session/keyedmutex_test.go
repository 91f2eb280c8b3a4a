package session

import (
	"sync"
	"testing"
	"time"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	t.Parallel()

	km := NewKeyedMutex()

	const workers = 8

	counter := 0

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			unlock := km.Lock("visitor-1")
			defer unlock()

			// Unsynchronized read-modify-write; only safe if the keyed
			// mutex actually serializes the critical section.
			v := counter
			time.Sleep(time.Millisecond)
			counter = v + 1
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Errorf("counter = %d, want %d", counter, workers)
	}
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	t.Parallel()

	km := NewKeyedMutex()

	unlockA := km.Lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := km.Lock("b")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Lock(b) blocked behind a held Lock(a)")
	}
}

func TestKeyedMutexCleansUpEntries(t *testing.T) {
	t.Parallel()

	km := NewKeyedMutex()

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			unlock := km.Lock(string(rune('a' + i)))
			unlock()
		}(i)
	}
	wg.Wait()

	if got := km.ActiveCount(); got != 0 {
		t.Errorf("ActiveCount() = %d after all unlocks, want 0", got)
	}
}
