package access

import (
	"github.com/ryogrid/HeapDB/concurrency"
	"github.com/ryogrid/HeapDB/errors"
	"github.com/ryogrid/HeapDB/storage/tuple"
	"github.com/ryogrid/HeapDB/types"
)

// HeapFileIterator chains the page iterators of every page of a heap file.
// The current page is fetched on first use after Open or Rewind and the cursor
// switches its held page iterator when a page is exhausted.
type HeapFileIterator struct {
	file     *HeapFile
	txnID    types.TxnID
	perm     concurrency.Permissions
	pageNo   int32
	pageIter *HeapPageIterator
	isOpen   bool
}

func NewHeapFileIterator(file *HeapFile, txnID types.TxnID, perm concurrency.Permissions) *HeapFileIterator {
	return &HeapFileIterator{file, txnID, perm, 0, nil, false}
}

func (it *HeapFileIterator) Open() error {
	it.isOpen = true
	return nil
}

func (it *HeapFileIterator) loadPage() error {
	hp, err := it.file.ReadPage(it.txnID, types.PageID(it.pageNo), it.perm)
	if err != nil {
		return err
	}
	it.pageIter = hp.Iterator()
	return nil
}

// HasNext is always false while closed. Errors of page fetch (ErrTxnAborted included) are returned as is.
func (it *HeapFileIterator) HasNext() (bool, error) {
	if !it.isOpen {
		return false, nil
	}
	for {
		if it.pageIter == nil {
			if it.pageNo >= it.file.NumPages() {
				return false, nil
			}
			if err := it.loadPage(); err != nil {
				return false, err
			}
		}
		if it.pageIter.HasNext() {
			return true, nil
		}
		it.pageNo++
		it.pageIter = nil
	}
}

func (it *HeapFileIterator) Next() (*tuple.Tuple, error) {
	hasNext, err := it.HasNext()
	if err != nil {
		return nil, err
	}
	if !hasNext {
		return nil, errors.ErrNoSuchElement
	}
	return it.pageIter.Next()
}

// Rewind repositions the cursor at the first page. The open state is unchanged.
func (it *HeapFileIterator) Rewind() error {
	it.pageNo = 0
	it.pageIter = nil
	if it.isOpen && it.file.NumPages() > 0 {
		return it.loadPage()
	}
	return nil
}

func (it *HeapFileIterator) Close() {
	it.isOpen = false
	it.pageIter = nil
}
