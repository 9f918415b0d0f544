// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package buffer

import (
	"fmt"

	"github.com/golang-collections/collections/queue"
	"github.com/ryogrid/HeapDB/common"
	"github.com/ryogrid/HeapDB/concurrency"
	"github.com/ryogrid/HeapDB/errors"
	"github.com/ryogrid/HeapDB/storage/disk"
	"github.com/ryogrid/HeapDB/storage/page"
	"github.com/ryogrid/HeapDB/types"
	"github.com/sasha-s/go-deadlock"
)

// BufferPoolManager represents the buffer pool manager
type BufferPoolManager struct {
	diskManagers map[uint32]disk.DiskManager // backing file of each table
	pages        []*page.Page
	replacer     *ClockReplacer
	freeList     *queue.Queue
	pageTable    map[page.PageID]FrameID
	lockManager  *concurrency.LockManager
	mutex        *deadlock.Mutex
}

// RegisterDiskManager makes pages of tableID readable through dm
func (b *BufferPoolManager) RegisterDiskManager(tableID uint32, dm disk.DiskManager) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.diskManagers[tableID] = dm
}

func (b *BufferPoolManager) GetDiskManager(tableID uint32) (disk.DiskManager, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.getDiskManager(tableID)
}

func (b *BufferPoolManager) getDiskManager(tableID uint32) (disk.DiskManager, error) {
	dm, ok := b.diskManagers[tableID]
	if !ok {
		return nil, fmt.Errorf("table %d: %w", tableID, errors.ErrUnknownTable)
	}
	return dm, nil
}

func (b *BufferPoolManager) GetLockManager() *concurrency.LockManager {
	return b.lockManager
}

// FetchPage locks pageID for txnID with perm and returns the pinned page.
// The call blocks while another transaction holds a conflicting lock.
func (b *BufferPoolManager) FetchPage(txnID types.TxnID, pageID page.PageID, perm concurrency.Permissions) (*page.Page, error) {
	if common.EnableDebug {
		common.ShPrintf(common.RDB_OP_FUNC_CALL, "FetchPage called. txnID:%d pageID:%s\n", txnID, pageID)
	}
	if err := b.lockManager.AcquireLock(txnID, pageID, perm); err != nil {
		return nil, err
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()

	// if it is on buffer pool return it
	if frameID, ok := b.pageTable[pageID]; ok {
		pg := b.pages[frameID]
		pg.IncPinCount()
		b.replacer.Pin(frameID)
		return pg, nil
	}

	dm, err := b.getDiskManager(pageID.TableID)
	if err != nil {
		return nil, err
	}

	// get the id from free list or from replacer
	frameID, err := b.getFrameID()
	if err != nil {
		return nil, err
	}

	var pageData [common.PageSize]byte
	if err := dm.ReadPage(pageID.PageNo, pageData[:]); err != nil {
		b.freeList.Enqueue(*frameID)
		return nil, err
	}
	pg := page.New(pageID, false, &pageData)
	b.pageTable[pageID] = *frameID
	b.pages[*frameID] = pg

	return pg, nil
}

// UnpinPage unpins the target page from the buffer pool.
func (b *BufferPoolManager) UnpinPage(pageID page.PageID, isDirty bool) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if frameID, ok := b.pageTable[pageID]; ok {
		pg := b.pages[frameID]
		pg.DecPinCount()

		if pg.PinCount() <= 0 {
			b.replacer.Unpin(frameID)
		}

		if pg.IsDirty() || isDirty {
			pg.SetIsDirty(true)
		} else {
			pg.SetIsDirty(false)
		}

		return nil
	}

	return fmt.Errorf("could not find page %s: %w", pageID, errors.ErrNotFound)
}

// FlushPage Flushes the target page to disk.
func (b *BufferPoolManager) FlushPage(pageID page.PageID) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.flushPage(pageID)
}

func (b *BufferPoolManager) flushPage(pageID page.PageID) error {
	frameID, ok := b.pageTable[pageID]
	if !ok {
		return nil
	}
	pg := b.pages[frameID]
	if !pg.IsDirty() {
		return nil
	}
	dm, err := b.getDiskManager(pageID.TableID)
	if err != nil {
		return err
	}
	data := pg.Data()
	if err := dm.WritePage(pageID.PageNo, data[:]); err != nil {
		return err
	}
	pg.SetIsDirty(false)
	return nil
}

// FlushAllPages flushes all the dirty pages in the buffer pool to disk.
func (b *BufferPoolManager) FlushAllPages() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	for pageID := range b.pageTable {
		if err := b.flushPage(pageID); err != nil {
			return err
		}
	}
	return nil
}

// FlushTxnPages flushes the dirty pages txnID holds locks on
func (b *BufferPoolManager) FlushTxnPages(txnID types.TxnID) error {
	lockedPages := b.lockManager.LockedPages(txnID)

	b.mutex.Lock()
	defer b.mutex.Unlock()
	for _, pageID := range lockedPages {
		if err := b.flushPage(pageID); err != nil {
			return err
		}
	}
	return nil
}

// DiscardDirtyPages reverts the cached pages txnID dirtied to their on-disk contents
func (b *BufferPoolManager) DiscardDirtyPages(txnID types.TxnID) error {
	lockedPages := b.lockManager.LockedPages(txnID)

	b.mutex.Lock()
	defer b.mutex.Unlock()
	for _, pageID := range lockedPages {
		frameID, ok := b.pageTable[pageID]
		if !ok || !b.pages[frameID].IsDirty() {
			continue
		}
		pg := b.pages[frameID]
		dm, err := b.getDiskManager(pageID.TableID)
		if err != nil {
			return err
		}
		data := pg.Data()
		if err := dm.ReadPage(pageID.PageNo, data[:]); err != nil {
			return err
		}
		pg.SetIsDirty(false)
	}
	return nil
}

// ReleasePage releases the lock txnID holds on pageID before the transaction ends
func (b *BufferPoolManager) ReleasePage(txnID types.TxnID, pageID page.PageID) {
	b.lockManager.ReleaseLock(txnID, pageID)
}

// HoldsLock reports whether txnID can access pageID with perm without waiting
func (b *BufferPoolManager) HoldsLock(txnID types.TxnID, pageID page.PageID, perm concurrency.Permissions) bool {
	return b.lockManager.HoldsLock(txnID, pageID, perm)
}

func (b *BufferPoolManager) getFrameID() (*FrameID, error) {
	if b.freeList.Len() > 0 {
		frameID := b.freeList.Dequeue().(FrameID)
		return &frameID, nil
	}

	// dirty frames hold uncommitted changes and stay cached until commit or abort
	frameID := b.replacer.Victim()
	skipped := make([]FrameID, 0)
	for frameID != nil && b.pages[*frameID] != nil && b.pages[*frameID].IsDirty() {
		skipped = append(skipped, *frameID)
		frameID = b.replacer.Victim()
	}
	for _, dirtyID := range skipped {
		b.replacer.Unpin(dirtyID)
	}
	if frameID == nil {
		return nil, errors.ErrNoFreeFrame
	}

	// remove page from current frame
	if currentPage := b.pages[*frameID]; currentPage != nil {
		delete(b.pageTable, currentPage.GetPageId())
		b.pages[*frameID] = nil
	}
	return frameID, nil
}

// NewBufferPoolManager returns a empty buffer pool manager
func NewBufferPoolManager(poolSize uint32, lockManager *concurrency.LockManager) *BufferPoolManager {
	freeList := queue.New()
	pages := make([]*page.Page, poolSize)
	for i := uint32(0); i < poolSize; i++ {
		freeList.Enqueue(FrameID(i))
		pages[i] = nil
	}

	replacer := NewClockReplacer(poolSize)
	return &BufferPoolManager{make(map[uint32]disk.DiskManager), pages, replacer, freeList, make(map[page.PageID]FrameID), lockManager, new(deadlock.Mutex)}
}
