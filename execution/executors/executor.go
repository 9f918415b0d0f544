package executors

import (
	"github.com/ryogrid/HeapDB/storage/table/schema"
	"github.com/ryogrid/HeapDB/storage/tuple"
)

// Executor executes a plan
//
// Open must be called before HasNext/Next. HasNext reports false while closed.
// Next fails with errors.ErrNoSuchElement when no tuple remains.
// Rewind restarts the sequence from its first tuple.
type Executor interface {
	Open() error
	HasNext() (bool, error)
	Next() (*tuple.Tuple, error)
	Rewind() error
	Close()
	GetTupleDesc() *schema.Schema
}
