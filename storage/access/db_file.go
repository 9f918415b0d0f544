package access

import (
	"github.com/ryogrid/HeapDB/storage/page"
	"github.com/ryogrid/HeapDB/storage/table/schema"
	"github.com/ryogrid/HeapDB/storage/tuple"
	"github.com/ryogrid/HeapDB/types"
)

// DbFile is the backing file of a table
type DbFile interface {
	GetId() uint32
	GetTupleDesc() *schema.Schema
	NumPages() int32
	InsertTuple(txn *Transaction, tuple_ *tuple.Tuple) (*page.RID, error)
	DeleteTuple(txn *Transaction, tuple_ *tuple.Tuple) error
	Iterator(txnID types.TxnID) DbFileIterator
}

// DbFileIterator is a cursor over the tuples of a DbFile.
// it is closed when created and must be opened before traversal.
type DbFileIterator interface {
	Open() error
	HasNext() (bool, error)
	Next() (*tuple.Tuple, error)
	Rewind() error
	Close()
}
