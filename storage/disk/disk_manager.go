package disk

import (
	"github.com/ryogrid/HeapDB/types"
)

// DiskManager is responsible for interacting with the backing file of one table
type DiskManager interface {
	ReadPage(types.PageID, []byte) error
	WritePage(types.PageID, []byte) error
	// AllocatePage extends the file by one zeroed page and returns its number
	AllocatePage() (types.PageID, error)
	NumPages() int32
	GetNumWrites() uint64
	GetFileName() string
	ShutDown()
	RemoveDBFile()
	Size() int64
}
