package keylock

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestAcquireRelease(t *testing.T) {
	k := New(time.Second)
	ctx := context.Background()

	if err := k.Acquire(ctx, "user-a"); err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}
	k.Release("user-a")
	if err := k.Acquire(ctx, "user-a"); err != nil {
		t.Fatalf("acquire after release failed: %v", err)
	}
	k.Release("user-a")
}

func TestAcquireTimesOutWhenHeld(t *testing.T) {
	k := New(50 * time.Millisecond)
	ctx := context.Background()

	if err := k.Acquire(ctx, "user-a"); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	defer k.Release("user-a")

	err := k.Acquire(ctx, "user-a")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("second acquire = %v, want ErrTimeout", err)
	}
}

func TestDifferentKeysDoNotBlock(t *testing.T) {
	k := New(100 * time.Millisecond)
	ctx := context.Background()

	if err := k.Acquire(ctx, "user-a"); err != nil {
		t.Fatalf("acquire a failed: %v", err)
	}
	defer k.Release("user-a")
	if err := k.Acquire(ctx, "user-b"); err != nil {
		t.Fatalf("acquire b failed: %v", err)
	}
	k.Release("user-b")
}

func TestAcquireHonorsContextCancel(t *testing.T) {
	k := New(10 * time.Second)
	ctx, cancel := context.WithCancel(context.Background())

	if err := k.Acquire(ctx, "user-a"); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	defer k.Release("user-a")

	done := make(chan error, 1)
	go func() {
		done <- k.Acquire(ctx, "user-a")
	}()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("acquire = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("acquire did not return after cancel")
	}
}

func TestAcquireAllReleasesOnFailure(t *testing.T) {
	k := New(50 * time.Millisecond)
	ctx := context.Background()

	// hold "b" so AcquireAll([a b c]) fails midway
	if err := k.Acquire(ctx, "b"); err != nil {
		t.Fatalf("acquire b failed: %v", err)
	}

	err := k.AcquireAll(ctx, []string{"c", "a", "b"})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("AcquireAll = %v, want ErrTimeout", err)
	}

	// "a" and "c" must have been released again
	if err := k.Acquire(ctx, "a"); err != nil {
		t.Errorf("a still held after failed AcquireAll: %v", err)
	}
	if err := k.Acquire(ctx, "c"); err != nil {
		t.Errorf("c still held after failed AcquireAll: %v", err)
	}
}

func TestSerializesConcurrentMutators(t *testing.T) {
	k := New(5 * time.Second)
	ctx := context.Background()

	var current, maxSeen int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := k.Acquire(ctx, "user-a"); err != nil {
				t.Errorf("acquire failed: %v", err)
				return
			}
			mu.Lock()
			current++
			if current > maxSeen {
				maxSeen = current
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			current--
			mu.Unlock()
			k.Release("user-a")
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Errorf("max concurrent holders = %d, want 1", maxSeen)
	}
}
