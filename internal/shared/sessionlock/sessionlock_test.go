package sessionlock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLockReleasesEntryAfterUnlock(t *testing.T) {
	var locks Locks
	for i := 0; i < 100; i++ {
		unlock := locks.Lock(string(rune('a' + i%26)))
		unlock()
	}
	require.Zero(t, locks.Len())
}

func TestLockSerializesSameSession(t *testing.T) {
	var (
		locks   Locks
		wg      sync.WaitGroup
		counter int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("s")
			defer unlock()
			current := counter
			time.Sleep(time.Microsecond)
			counter = current + 1
		}()
	}
	wg.Wait()
	require.Equal(t, 50, counter)
	require.Zero(t, locks.Len())
}

func TestLockKeepsEntryWhileWaiterQueued(t *testing.T) {
	var locks Locks
	unlock := locks.Lock("s")

	acquired := make(chan func())
	go func() { acquired <- locks.Lock("s") }()
	require.Eventually(t, func() bool {
		locks.mu.Lock()
		defer locks.mu.Unlock()
		return locks.entries["s"] != nil && locks.entries["s"].refs == 2
	}, time.Second, time.Millisecond)

	unlock()
	second := <-acquired
	require.Equal(t, 1, locks.Len())
	second()
	require.Zero(t, locks.Len())
}

func TestLockDifferentSessionsDoNotBlock(t *testing.T) {
	var locks Locks
	unlockA := locks.Lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		locks.Lock("b")()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different session blocked")
	}
}
