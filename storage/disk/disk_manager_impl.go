// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package disk

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ryogrid/HeapDB/common"
	"github.com/ryogrid/HeapDB/errors"
	"github.com/ryogrid/HeapDB/types"
)

// DiskManagerImpl is the disk implementation of DiskManager
type DiskManagerImpl struct {
	db          *os.File
	fileName    string
	numWrites   uint64
	size        int64
	dbFileMutex *sync.Mutex
}

// NewDiskManagerImpl opens (or creates) dbFilename
func NewDiskManagerImpl(dbFilename string) (DiskManager, error) {
	file, err := os.OpenFile(dbFilename, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		return nil, fmt.Errorf("can't open db file %s: %w", dbFilename, err)
	}

	fileInfo, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("file info error %s: %w", dbFilename, err)
	}

	return &DiskManagerImpl{file, dbFilename, 0, fileInfo.Size(), new(sync.Mutex)}, nil
}

// ShutDown closes of the database file
func (d *DiskManagerImpl) ShutDown() {
	d.db.Close()
}

// Write a page to the database file
func (d *DiskManagerImpl) WritePage(pageId types.PageID, pageData []byte) error {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()
	return d.writePage(pageId, pageData)
}

func (d *DiskManagerImpl) writePage(pageId types.PageID, pageData []byte) error {
	offset := int64(pageId) * int64(common.PageSize)
	bytesWritten, err := d.db.WriteAt(pageData, offset)
	if err != nil {
		return err
	}

	if bytesWritten != common.PageSize {
		return fmt.Errorf("bytes written not equals page size: %d", bytesWritten)
	}

	if offset >= d.size {
		d.size = offset + int64(bytesWritten)
	}
	d.numWrites++

	return d.db.Sync()
}

// Read a page from the database file
func (d *DiskManagerImpl) ReadPage(pageID types.PageID, pageData []byte) error {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()

	offset := int64(pageID) * int64(common.PageSize)
	if pageID < 0 || offset >= d.size {
		return fmt.Errorf("page %d of %s: %w", pageID, d.fileName, errors.ErrPastEndOfFile)
	}

	bytesRead, err := d.db.ReadAt(pageData, offset)
	if err != nil && err != io.EOF {
		return fmt.Errorf("I/O error while reading %s: %w", d.fileName, err)
	}

	if bytesRead < common.PageSize {
		for i := bytesRead; i < common.PageSize; i++ {
			pageData[i] = 0
		}
	}
	return nil
}

// AllocatePage appends a zeroed page at the end of the file
func (d *DiskManagerImpl) AllocatePage() (types.PageID, error) {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()

	ret := types.PageID(d.numPages())
	if err := d.writePage(ret, make([]byte, common.PageSize)); err != nil {
		return types.InvalidPageID, err
	}
	return ret, nil
}

func (d *DiskManagerImpl) numPages() int32 {
	return int32((d.size + common.PageSize - 1) / common.PageSize)
}

func (d *DiskManagerImpl) NumPages() int32 {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()
	return d.numPages()
}

// GetNumWrites returns the number of disk writes
func (d *DiskManagerImpl) GetNumWrites() uint64 {
	return d.numWrites
}

func (d *DiskManagerImpl) GetFileName() string {
	return d.fileName
}

// Size returns the size of the file in disk
func (d *DiskManagerImpl) Size() int64 {
	d.dbFileMutex.Lock()
	defer d.dbFileMutex.Unlock()
	return d.size
}

// ATTENTION: this method can be call after calling of Shutdown method
func (d *DiskManagerImpl) RemoveDBFile() {
	os.Remove(d.fileName)
}
