package common

import (
	"sync"
	"testing"
)

func TestRWLatchVariants(t *testing.T) {
	for _, latch := range []ReaderWriterLatch{NewRWLatch(), NewRWLatchDeadlockDetect()} {
		counter := 0
		wg := new(sync.WaitGroup)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					latch.WLock()
					counter++
					latch.WUnlock()
					latch.RLock()
					_ = counter
					latch.RUnlock()
				}
			}()
		}
		wg.Wait()
		if counter != 800 {
			t.Fatalf("counter = %d, want 800", counter)
		}
	}
}

func TestRWLatchForConfig(t *testing.T) {
	EnableDebug = true
	defer func() { EnableDebug = false }()
	if _, ok := NewRWLatchForConfig().(*readerWriterLatchDeadlockDetect); !ok {
		t.Fatal("debug latch should detect deadlocks")
	}
	EnableDebug = false
	if _, ok := NewRWLatchForConfig().(*readerWriterLatch); !ok {
		t.Fatal("plain latch expected")
	}
}
