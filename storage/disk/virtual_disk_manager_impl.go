package disk

import (
	"fmt"
	"sync"

	"github.com/dsnet/golib/memfile"
	"github.com/ryogrid/HeapDB/common"
	"github.com/ryogrid/HeapDB/errors"
	"github.com/ryogrid/HeapDB/types"
)

// VirtualDiskManagerImpl keeps the whole backing file in memory
type VirtualDiskManagerImpl struct {
	db          *memfile.File
	fileName    string
	numWrites   uint64
	size        int64
	dbFileMutex *sync.Mutex
}

func NewVirtualDiskManagerImpl(dbFilename string) DiskManager {
	file := memfile.New(make([]byte, 0))
	return &VirtualDiskManagerImpl{file, dbFilename, 0, 0, new(sync.Mutex)}
}

// ShutDown closes of the database file
func (d *VirtualDiskManagerImpl) ShutDown() {
	// do nothing
}

// Write a page to the database file
func (d *VirtualDiskManagerImpl) WritePage(pageId types.PageID, pageData []byte) error {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()
	return d.writePage(pageId, pageData)
}

func (d *VirtualDiskManagerImpl) writePage(pageId types.PageID, pageData []byte) error {
	offset := int64(pageId) * int64(common.PageSize)
	if _, err := d.db.WriteAt(pageData, offset); err != nil {
		return err
	}

	if offset >= d.size {
		d.size = offset + int64(len(pageData))
	}
	d.numWrites++

	return nil
}

// Read a page from the database file
func (d *VirtualDiskManagerImpl) ReadPage(pageID types.PageID, pageData []byte) error {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()

	offset := int64(pageID) * int64(common.PageSize)
	if pageID < 0 || offset+int64(len(pageData)) > d.size {
		return fmt.Errorf("page %d of %s: %w", pageID, d.fileName, errors.ErrPastEndOfFile)
	}

	_, err := d.db.ReadAt(pageData, offset)
	return err
}

// AllocatePage appends a zeroed page at the end of the file
func (d *VirtualDiskManagerImpl) AllocatePage() (types.PageID, error) {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()

	ret := types.PageID(d.size / common.PageSize)
	if err := d.writePage(ret, make([]byte, common.PageSize)); err != nil {
		return types.InvalidPageID, err
	}
	return ret, nil
}

func (d *VirtualDiskManagerImpl) NumPages() int32 {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()
	return int32(d.size / common.PageSize)
}

// GetNumWrites returns the number of disk writes
func (d *VirtualDiskManagerImpl) GetNumWrites() uint64 {
	return d.numWrites
}

func (d *VirtualDiskManagerImpl) GetFileName() string {
	return d.fileName
}

// Size returns the size of the file in disk
func (d *VirtualDiskManagerImpl) Size() int64 {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()
	return d.size
}

// ATTENTION: this method can be call after calling of Shutdown method
func (d *VirtualDiskManagerImpl) RemoveDBFile() {
	// do nothing
}
