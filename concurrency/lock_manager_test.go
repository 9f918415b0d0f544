package concurrency

import (
	"sync"
	"testing"
	"time"

	"github.com/ryogrid/HeapDB/common"
	"github.com/ryogrid/HeapDB/errors"
	"github.com/ryogrid/HeapDB/storage/page"
	testingpkg "github.com/ryogrid/HeapDB/testing/testing_assert"
	"github.com/ryogrid/HeapDB/types"
)

func withLockWaitTimeout(t *testing.T, d time.Duration) {
	saved := common.LockWaitTimeout
	common.LockWaitTimeout = d
	t.Cleanup(func() { common.LockWaitTimeout = saved })
}

func TestSharedLocks(t *testing.T) {
	lm := NewLockManager()
	pid := page.NewPageID(1, types.PageID(0))

	testingpkg.Ok(t, lm.AcquireLock(types.TxnID(1), pid, READ_ONLY))
	testingpkg.Ok(t, lm.AcquireLock(types.TxnID(2), pid, READ_ONLY))
	testingpkg.Assert(t, lm.HoldsLock(types.TxnID(1), pid, READ_ONLY), "txn 1 shares the page")
	testingpkg.Assert(t, lm.HoldsLock(types.TxnID(2), pid, READ_ONLY), "txn 2 shares the page")
	testingpkg.Assert(t, !lm.HoldsLock(types.TxnID(1), pid, READ_WRITE), "shared lock does not cover writes")
}

func TestExclusiveLockAbortsWaiter(t *testing.T) {
	withLockWaitTimeout(t, 20*time.Millisecond)
	lm := NewLockManager()
	pid := page.NewPageID(1, types.PageID(3))

	testingpkg.Ok(t, lm.AcquireLock(types.TxnID(1), pid, READ_WRITE))
	// reentrant in both modes
	testingpkg.Ok(t, lm.AcquireLock(types.TxnID(1), pid, READ_ONLY))
	testingpkg.Ok(t, lm.AcquireLock(types.TxnID(1), pid, READ_WRITE))

	err := lm.AcquireLock(types.TxnID(2), pid, READ_ONLY)
	testingpkg.Assert(t, errors.Is(err, errors.ErrTxnAborted), "expected abort, got %v", err)

	lm.ReleaseAllLocks(types.TxnID(1))
	testingpkg.Ok(t, lm.AcquireLock(types.TxnID(2), pid, READ_ONLY))
	testingpkg.Equals(t, 0, len(lm.LockedPages(types.TxnID(1))))
}

func TestUpgrade(t *testing.T) {
	withLockWaitTimeout(t, 20*time.Millisecond)
	lm := NewLockManager()
	pid := page.NewPageID(2, types.PageID(0))

	testingpkg.Ok(t, lm.AcquireLock(types.TxnID(1), pid, READ_ONLY))
	testingpkg.Ok(t, lm.AcquireLock(types.TxnID(1), pid, READ_WRITE))
	testingpkg.Assert(t, lm.HoldsLock(types.TxnID(1), pid, READ_WRITE), "sole sharer upgrades")

	other := page.NewPageID(2, types.PageID(1))
	testingpkg.Ok(t, lm.AcquireLock(types.TxnID(1), other, READ_ONLY))
	testingpkg.Ok(t, lm.AcquireLock(types.TxnID(2), other, READ_ONLY))
	err := lm.AcquireLock(types.TxnID(1), other, READ_WRITE)
	testingpkg.Assert(t, errors.Is(err, errors.ErrTxnAborted), "upgrade with another sharer must abort, got %v", err)
	testingpkg.Equals(t, 2, len(lm.LockedPages(types.TxnID(1))))
}

func TestWaiterIsGrantedAfterRelease(t *testing.T) {
	withLockWaitTimeout(t, 2*time.Second)
	lm := NewLockManager()
	pid := page.NewPageID(5, types.PageID(0))

	testingpkg.Ok(t, lm.AcquireLock(types.TxnID(1), pid, READ_WRITE))

	wg := new(sync.WaitGroup)
	wg.Add(1)
	var err error
	go func() {
		defer wg.Done()
		err = lm.AcquireLock(types.TxnID(2), pid, READ_WRITE)
	}()

	time.Sleep(20 * time.Millisecond)
	lm.ReleaseLock(types.TxnID(1), pid)
	wg.Wait()

	testingpkg.Ok(t, err)
	testingpkg.Assert(t, lm.HoldsLock(types.TxnID(2), pid, READ_WRITE), "waiter owns the page")
}
