package concurrency

import (
	"fmt"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ryogrid/HeapDB/common"
	"github.com/ryogrid/HeapDB/errors"
	"github.com/ryogrid/HeapDB/storage/page"
	"github.com/ryogrid/HeapDB/types"
	"github.com/sasha-s/go-deadlock"
)

/**
 * LockManager handles transactions asking for locks on pages.
 * strict two-phase locking: locks are held until ReleaseAllLocks at commit or abort.
 * a request which can not be granted is retried until common.LockWaitTimeout elapses
 * and then the requesting transaction is told to abort.
 */
type LockManager struct {
	mutex *deadlock.Mutex

	shared_lock_table    map[page.PageID]mapset.Set[types.TxnID]
	exclusive_lock_table map[page.PageID]types.TxnID
	// pages locked by each transaction
	txn_lock_table map[types.TxnID]mapset.Set[page.PageID]
}

func NewLockManager() *LockManager {
	ret := new(LockManager)
	ret.mutex = new(deadlock.Mutex)
	ret.shared_lock_table = make(map[page.PageID]mapset.Set[types.TxnID])
	ret.exclusive_lock_table = make(map[page.PageID]types.TxnID)
	ret.txn_lock_table = make(map[types.TxnID]mapset.Set[page.PageID])
	return ret
}

// AcquireLock blocks until txnID holds pageID with perm. Returns ErrTxnAborted when the wait times out.
func (lock_manager *LockManager) AcquireLock(txnID types.TxnID, pageID page.PageID, perm Permissions) error {
	if common.EnableDebug {
		common.ShPrintf(common.RDB_OP_FUNC_CALL, "AcquireLock called. txnID:%d pageID:%s perm:%s\n", txnID, pageID, perm)
	}
	deadline := time.Now().Add(common.LockWaitTimeout)
	for {
		if lock_manager.tryLock(txnID, pageID, perm) {
			return nil
		}
		if time.Now().After(deadline) {
			common.ShPrintf(common.WARN, "lock wait timeout. txnID:%d pageID:%s perm:%s\n", txnID, pageID, perm)
			if common.EnableDebug {
				common.RuntimeStack()
			}
			return fmt.Errorf("txn %d waiting %s lock on page %s: %w", txnID, perm, pageID, errors.ErrTxnAborted)
		}
		time.Sleep(common.LockWaitPollInterval)
	}
}

func (lock_manager *LockManager) tryLock(txnID types.TxnID, pageID page.PageID, perm Permissions) bool {
	lock_manager.mutex.Lock()
	defer lock_manager.mutex.Unlock()

	if holder, ok := lock_manager.exclusive_lock_table[pageID]; ok {
		// exclusive lock covers both modes
		return holder == txnID
	}

	sharers, ok := lock_manager.shared_lock_table[pageID]
	if perm == READ_ONLY {
		if !ok {
			sharers = mapset.NewThreadUnsafeSet[types.TxnID]()
			lock_manager.shared_lock_table[pageID] = sharers
		}
		sharers.Add(txnID)
		lock_manager.addToTxn(txnID, pageID)
		return true
	}

	// READ_WRITE. upgrade is possible only when txnID is the sole sharer
	if ok && sharers.Cardinality() > 0 {
		if !(sharers.Cardinality() == 1 && sharers.Contains(txnID)) {
			return false
		}
		delete(lock_manager.shared_lock_table, pageID)
	}
	lock_manager.exclusive_lock_table[pageID] = txnID
	lock_manager.addToTxn(txnID, pageID)
	return true
}

func (lock_manager *LockManager) addToTxn(txnID types.TxnID, pageID page.PageID) {
	pages, ok := lock_manager.txn_lock_table[txnID]
	if !ok {
		pages = mapset.NewThreadUnsafeSet[page.PageID]()
		lock_manager.txn_lock_table[txnID] = pages
	}
	pages.Add(pageID)
}

// ReleaseLock releases whatever lock txnID holds on pageID
func (lock_manager *LockManager) ReleaseLock(txnID types.TxnID, pageID page.PageID) {
	lock_manager.mutex.Lock()
	defer lock_manager.mutex.Unlock()
	lock_manager.releaseLock(txnID, pageID)
}

func (lock_manager *LockManager) releaseLock(txnID types.TxnID, pageID page.PageID) {
	if holder, ok := lock_manager.exclusive_lock_table[pageID]; ok && holder == txnID {
		delete(lock_manager.exclusive_lock_table, pageID)
	}
	if sharers, ok := lock_manager.shared_lock_table[pageID]; ok {
		sharers.Remove(txnID)
		if sharers.Cardinality() == 0 {
			delete(lock_manager.shared_lock_table, pageID)
		}
	}
	if pages, ok := lock_manager.txn_lock_table[txnID]; ok {
		pages.Remove(pageID)
		if pages.Cardinality() == 0 {
			delete(lock_manager.txn_lock_table, txnID)
		}
	}
}

// ReleaseAllLocks is called at commit and abort
func (lock_manager *LockManager) ReleaseAllLocks(txnID types.TxnID) {
	lock_manager.mutex.Lock()
	defer lock_manager.mutex.Unlock()

	pages, ok := lock_manager.txn_lock_table[txnID]
	if !ok {
		return
	}
	for _, pageID := range pages.ToSlice() {
		lock_manager.releaseLock(txnID, pageID)
	}
}

// HoldsLock reports whether txnID holds a lock on pageID which covers perm
func (lock_manager *LockManager) HoldsLock(txnID types.TxnID, pageID page.PageID, perm Permissions) bool {
	lock_manager.mutex.Lock()
	defer lock_manager.mutex.Unlock()

	if holder, ok := lock_manager.exclusive_lock_table[pageID]; ok && holder == txnID {
		return true
	}
	if perm == READ_WRITE {
		return false
	}
	sharers, ok := lock_manager.shared_lock_table[pageID]
	return ok && sharers.Contains(txnID)
}

// LockedPages returns the pages txnID holds locks on
func (lock_manager *LockManager) LockedPages(txnID types.TxnID) []page.PageID {
	lock_manager.mutex.Lock()
	defer lock_manager.mutex.Unlock()

	pages, ok := lock_manager.txn_lock_table[txnID]
	if !ok {
		return []page.PageID{}
	}
	return pages.ToSlice()
}
