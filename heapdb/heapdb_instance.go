package heapdb

import (
	"github.com/google/uuid"
	"github.com/ryogrid/HeapDB/catalog"
	"github.com/ryogrid/HeapDB/common"
	"github.com/ryogrid/HeapDB/concurrency"
	"github.com/ryogrid/HeapDB/storage/access"
	"github.com/ryogrid/HeapDB/storage/buffer"
	"github.com/ryogrid/HeapDB/storage/disk"
	"github.com/ryogrid/HeapDB/storage/table/schema"
)

type HeapDBInstance struct {
	lock_manager        *concurrency.LockManager
	bpm                 *buffer.BufferPoolManager
	transaction_manager *access.TransactionManager
	catalog             *catalog.Catalog
}

func NewHeapDBInstanceForTesting() *HeapDBInstance {
	return NewHeapDBInstance(common.BufferPoolMaxFrameNumForTest)
}

// bpoolSize: usable buffer size in frame(=page) num
func NewHeapDBInstance(bpoolSize int) *HeapDBInstance {
	lock_manager := concurrency.NewLockManager()
	bpm := buffer.NewBufferPoolManager(uint32(bpoolSize), lock_manager)
	transaction_manager := access.NewTransactionManager(bpm)
	return &HeapDBInstance{lock_manager, bpm, transaction_manager, catalog.NewCatalog()}
}

func (hi *HeapDBInstance) GetLockManager() *concurrency.LockManager {
	return hi.lock_manager
}

func (hi *HeapDBInstance) GetBufferPoolManager() *buffer.BufferPoolManager {
	return hi.bpm
}

func (hi *HeapDBInstance) GetTransactionManager() *access.TransactionManager {
	return hi.transaction_manager
}

func (hi *HeapDBInstance) GetCatalog() *catalog.Catalog {
	return hi.catalog
}

// LoadSchema registers every table of a schema description file
func (hi *HeapDBInstance) LoadSchema(catalogFile string) ([]uint32, error) {
	return hi.catalog.LoadSchema(catalogFile, hi.bpm)
}

// CreateTable registers a table backed by fileName. An empty fileName keeps the table in memory,
// an empty name registers the table under a generated name.
func (hi *HeapDBInstance) CreateTable(name string, schema_ *schema.Schema, fileName string) (*catalog.TableMetadata, error) {
	var dm disk.DiskManager
	if fileName == "" {
		dm = disk.NewVirtualDiskManagerImpl(uuid.New().String() + ".dat")
	} else {
		var err error
		if dm, err = disk.NewDiskManagerImpl(fileName); err != nil {
			return nil, err
		}
	}
	hf := access.NewHeapFile(dm, schema_, hi.bpm)
	if name == "" {
		name = hi.catalog.AddAnonymousTable(hf)
	} else {
		hi.catalog.AddTableWithoutPKey(hf, name)
	}
	common.ShPrintf(common.DEBUG_INFO, "CreateTable: %s on %s\n", name, dm.GetFileName())
	return hi.catalog.GetTableByOID(hf.GetId()), nil
}

// Shutdown flushes dirty pages and closes every backing file. The catalog is empty afterwards.
func (hi *HeapDBInstance) Shutdown(IsRemoveFiles bool) error {
	flushErr := hi.bpm.FlushAllPages()
	it := hi.catalog.TableIdIterator()
	for it.HasNext() {
		oid, _ := it.Next()
		dm, err := hi.bpm.GetDiskManager(oid)
		if err != nil {
			continue
		}
		dm.ShutDown()
		if IsRemoveFiles {
			dm.RemoveDBFile()
		}
	}
	hi.catalog.Clear()
	return flushErr
}
