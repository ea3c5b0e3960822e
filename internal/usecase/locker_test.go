package usecase

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyedLocker(t *testing.T) {
	t.Run("Exclusive lock serializes holders of the same key", func(t *testing.T) {
		// Given: a locker and a counter guarded only by it
		locker := newKeyedLocker()
		counter := 0

		// When: many goroutines increment under the same key
		var wg sync.WaitGroup
		for range 100 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock := locker.Lock("g1")
				counter++
				unlock()
			}()
		}
		wg.Wait()

		// Then: no increment is lost and no entry is left behind
		assert.Equal(t, 100, counter)
		assert.Zero(t, locker.size())
	})

	t.Run("Different keys do not contend", func(t *testing.T) {
		// Given: g1 is held exclusively
		locker := newKeyedLocker()
		unlockG1 := locker.Lock("g1")
		defer unlockG1()

		// When: g2 is locked
		done := make(chan struct{})
		go func() {
			unlock := locker.Lock("g2")
			unlock()
			close(done)
		}()

		// Then: it is acquired right away
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("lock on g2 blocked behind g1")
		}
	})

	t.Run("Readers share, writers wait", func(t *testing.T) {
		// Given: g1 is held by a reader
		locker := newKeyedLocker()
		unlockRead := locker.RLock("g1")

		// When: a second reader arrives
		readDone := make(chan struct{})
		go func() {
			unlock := locker.RLock("g1")
			unlock()
			close(readDone)
		}()

		// Then: it proceeds
		select {
		case <-readDone:
		case <-time.After(time.Second):
			t.Fatal("second reader blocked")
		}

		// When: a writer arrives
		writeDone := make(chan struct{})
		go func() {
			unlock := locker.Lock("g1")
			unlock()
			close(writeDone)
		}()

		// Then: it waits for the first reader
		select {
		case <-writeDone:
			t.Fatal("writer acquired the lock while a reader held it")
		case <-time.After(50 * time.Millisecond):
		}

		unlockRead()

		select {
		case <-writeDone:
		case <-time.After(time.Second):
			t.Fatal("writer never acquired the lock")
		}
		assert.Zero(t, locker.size())
	})
}
