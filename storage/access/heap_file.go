package access

import (
	"fmt"
	"sync"

	"github.com/ryogrid/HeapDB/common"
	"github.com/ryogrid/HeapDB/concurrency"
	"github.com/ryogrid/HeapDB/errors"
	"github.com/ryogrid/HeapDB/storage/buffer"
	"github.com/ryogrid/HeapDB/storage/disk"
	"github.com/ryogrid/HeapDB/storage/page"
	"github.com/ryogrid/HeapDB/storage/table/schema"
	"github.com/ryogrid/HeapDB/storage/tuple"
	"github.com/ryogrid/HeapDB/types"
	"github.com/spaolacci/murmur3"
)

// HeapFile stores the tuples of one table in unordered heap pages.
// All page accesses go through the buffer pool under the requesting transaction's locks.
type HeapFile struct {
	id     uint32
	dm     disk.DiskManager
	schema *schema.Schema
	bpm    *buffer.BufferPoolManager
	// serializes appending of new pages
	appendMutex *sync.Mutex
}

// NewHeapFile registers dm with bpm. The file id is the murmur3 hash of the file name.
func NewHeapFile(dm disk.DiskManager, schema_ *schema.Schema, bpm *buffer.BufferPoolManager) *HeapFile {
	id := murmur3.Sum32([]byte(dm.GetFileName()))
	bpm.RegisterDiskManager(id, dm)
	return &HeapFile{id, dm, schema_, bpm, new(sync.Mutex)}
}

func (hf *HeapFile) GetId() uint32 {
	return hf.id
}

func (hf *HeapFile) GetTupleDesc() *schema.Schema {
	return hf.schema
}

func (hf *HeapFile) GetFileName() string {
	return hf.dm.GetFileName()
}

func (hf *HeapFile) NumPages() int32 {
	return hf.dm.NumPages()
}

// ReadPage fetches page pageNo with perm and decodes it. The frame is unpinned before return,
// the returned HeapPage is a private copy.
func (hf *HeapFile) ReadPage(txnID types.TxnID, pageNo types.PageID, perm concurrency.Permissions) (*HeapPage, error) {
	pid := page.NewPageID(hf.id, pageNo)
	pg, err := hf.bpm.FetchPage(txnID, pid, perm)
	if err != nil {
		return nil, err
	}
	pg.RLatch()
	data := pg.Data()
	hp, err := NewHeapPage(pid, data[:], hf.schema)
	pg.RUnlatch()
	hf.bpm.UnpinPage(pid, false)
	return hp, err
}

// WritePage stores hp into its cached frame and marks the frame dirty
func (hf *HeapFile) WritePage(txnID types.TxnID, hp *HeapPage) error {
	data, err := hp.GetPageData()
	if err != nil {
		return err
	}
	pid := hp.GetPageId()
	pg, err := hf.bpm.FetchPage(txnID, pid, concurrency.READ_WRITE)
	if err != nil {
		return err
	}
	pg.WLatch()
	pg.Copy(0, data)
	pg.WUnlatch()
	return hf.bpm.UnpinPage(pid, true)
}

func (hf *HeapFile) abortOnLockFailure(txn *Transaction, err error) error {
	if errors.Is(err, errors.ErrTxnAborted) {
		txn.SetState(ABORTED)
	}
	return err
}

// InsertTuple places tuple_ in the first page with an empty slot, appending a page when all are full
func (hf *HeapFile) InsertTuple(txn *Transaction, tuple_ *tuple.Tuple) (*page.RID, error) {
	if common.EnableDebug {
		common.ShPrintf(common.RDB_OP_FUNC_CALL, "HeapFile::InsertTuple called. txn:%d file:%s\n", txn.GetTransactionId(), hf.GetFileName())
	}
	if !hf.schema.Equals(tuple_.GetSchema()) {
		return nil, fmt.Errorf("insert of %s into %s: %w", tuple_.GetSchema(), hf.schema, errors.ErrSchemaMismatch)
	}
	txnID := txn.GetTransactionId()

	for pageNo := int32(0); pageNo < hf.NumPages(); pageNo++ {
		hp, err := hf.ReadPage(txnID, types.PageID(pageNo), concurrency.READ_ONLY)
		if err != nil {
			return nil, hf.abortOnLockFailure(txn, err)
		}
		if hp.GetNumEmptySlots() == 0 {
			continue
		}
		// upgrade and read again. the page may have changed while only shared lock was held
		hp, err = hf.ReadPage(txnID, types.PageID(pageNo), concurrency.READ_WRITE)
		if err != nil {
			return nil, hf.abortOnLockFailure(txn, err)
		}
		if hp.GetNumEmptySlots() == 0 {
			continue
		}
		if err = hp.InsertTuple(tuple_); err != nil {
			return nil, err
		}
		if err = hf.WritePage(txnID, hp); err != nil {
			return nil, hf.abortOnLockFailure(txn, err)
		}
		return tuple_.GetRID(), nil
	}

	hf.appendMutex.Lock()
	pageNo, err := hf.dm.AllocatePage()
	hf.appendMutex.Unlock()
	if err != nil {
		return nil, err
	}
	hp, err := hf.ReadPage(txnID, pageNo, concurrency.READ_WRITE)
	if err != nil {
		return nil, hf.abortOnLockFailure(txn, err)
	}
	if err = hp.InsertTuple(tuple_); err != nil {
		return nil, err
	}
	if err = hf.WritePage(txnID, hp); err != nil {
		return nil, hf.abortOnLockFailure(txn, err)
	}
	return tuple_.GetRID(), nil
}

// DeleteTuple frees the slot recorded in tuple_'s RID
func (hf *HeapFile) DeleteTuple(txn *Transaction, tuple_ *tuple.Tuple) error {
	rid := tuple_.GetRID()
	if rid == nil || rid.GetPageId().GetTableId() != hf.id {
		return fmt.Errorf("tuple is not stored in %s: %w", hf.GetFileName(), errors.ErrNotFound)
	}
	txnID := txn.GetTransactionId()
	hp, err := hf.ReadPage(txnID, rid.GetPageId().GetPageNo(), concurrency.READ_WRITE)
	if err != nil {
		return hf.abortOnLockFailure(txn, err)
	}
	// the decoded page holds its own tuple objects
	stored := tuple.NewTuple(hf.schema)
	stored.SetRID(page.NewRID(rid.GetPageId(), rid.GetSlotNum()))
	if err = hp.DeleteTuple(stored); err != nil {
		return err
	}
	if err = hf.WritePage(txnID, hp); err != nil {
		return hf.abortOnLockFailure(txn, err)
	}
	tuple_.SetRID(nil)
	return nil
}

// Iterator returns a closed READ_ONLY cursor over the file for txnID
func (hf *HeapFile) Iterator(txnID types.TxnID) DbFileIterator {
	return NewHeapFileIterator(hf, txnID, concurrency.READ_ONLY)
}
