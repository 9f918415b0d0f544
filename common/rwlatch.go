// this code is from https://github.com/pzhzqt/goostub
// there is license and copyright notice in licenses/goostub dir

package common

import (
	"sync"

	"github.com/sasha-s/go-deadlock"
)

type ReaderWriterLatch interface {
	WLock()
	WUnlock()
	RLock()
	RUnlock()
}

type readerWriterLatch struct {
	mutex *sync.RWMutex
}

func NewRWLatch() ReaderWriterLatch {
	latch := readerWriterLatch{}
	latch.mutex = new(sync.RWMutex)

	return &latch
}

func (l *readerWriterLatch) WLock() {
	l.mutex.Lock()
}

func (l *readerWriterLatch) WUnlock() {
	l.mutex.Unlock()
}

func (l *readerWriterLatch) RLock() {
	l.mutex.RLock()
}

func (l *readerWriterLatch) RUnlock() {
	l.mutex.RUnlock()
}

// reports lock order inversions and long waits through go-deadlock
type readerWriterLatchDeadlockDetect struct {
	mutex *deadlock.RWMutex
}

func NewRWLatchDeadlockDetect() ReaderWriterLatch {
	return &readerWriterLatchDeadlockDetect{new(deadlock.RWMutex)}
}

func (l *readerWriterLatchDeadlockDetect) WLock() {
	l.mutex.Lock()
}

func (l *readerWriterLatchDeadlockDetect) WUnlock() {
	l.mutex.Unlock()
}

func (l *readerWriterLatchDeadlockDetect) RLock() {
	l.mutex.RLock()
}

func (l *readerWriterLatchDeadlockDetect) RUnlock() {
	l.mutex.RUnlock()
}

// NewRWLatchForConfig returns the deadlock detecting latch while debugging
func NewRWLatchForConfig() ReaderWriterLatch {
	if EnableDebug {
		return NewRWLatchDeadlockDetect()
	}
	return NewRWLatch()
}
