package disk

import (
	"testing"

	"github.com/ryogrid/HeapDB/common"
	"github.com/ryogrid/HeapDB/errors"
	testingpkg "github.com/ryogrid/HeapDB/testing/testing_assert"
	"github.com/ryogrid/HeapDB/types"
)

func testReadWritePage(t *testing.T, dm DiskManager) {
	data := make([]byte, common.PageSize)
	buffer := make([]byte, common.PageSize)

	testingpkg.Equals(t, int32(0), dm.NumPages())
	err := dm.ReadPage(0, buffer)
	testingpkg.Assert(t, errors.Is(err, errors.ErrPastEndOfFile), "expected past end of file, got %v", err)

	pageNo, err := dm.AllocatePage()
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, types.PageID(0), pageNo)
	testingpkg.Equals(t, int32(1), dm.NumPages())

	copy(data, "A test string.")
	testingpkg.Ok(t, dm.WritePage(0, data))
	testingpkg.Ok(t, dm.ReadPage(0, buffer))
	testingpkg.Equals(t, data, buffer)

	memset(buffer, 0)
	copy(data, "Another test string.")

	testingpkg.Ok(t, dm.WritePage(5, data))
	testingpkg.Equals(t, int32(6), dm.NumPages())
	testingpkg.Ok(t, dm.ReadPage(5, buffer))
	testingpkg.Equals(t, data, buffer)

	pageNo, err = dm.AllocatePage()
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, types.PageID(6), pageNo)
	testingpkg.Ok(t, dm.ReadPage(6, buffer))
	testingpkg.Equals(t, make([]byte, common.PageSize), buffer)
	testingpkg.Equals(t, int64(7*common.PageSize), dm.Size())
	testingpkg.Assert(t, dm.GetNumWrites() >= 4, "writes must be counted")
}

func TestReadWritePage(t *testing.T) {
	dm := NewDiskManagerTest()
	defer dm.ShutDown()

	testReadWritePage(t, dm)
}

func TestVirtualReadWritePage(t *testing.T) {
	dm := NewVirtualDiskManagerImpl("virtual.dat")
	defer dm.ShutDown()

	testingpkg.Equals(t, "virtual.dat", dm.GetFileName())
	testReadWritePage(t, dm)
}

func TestReopenKeepsPages(t *testing.T) {
	dm := NewDiskManagerTest()
	path := dm.GetFileName()
	data := make([]byte, common.PageSize)
	copy(data, "persisted")
	_, err := dm.AllocatePage()
	testingpkg.Ok(t, err)
	testingpkg.Ok(t, dm.WritePage(0, data))
	dm.(*DiskManagerTest).DiskManager.ShutDown()

	reopened, err := NewDiskManagerImpl(path)
	testingpkg.Ok(t, err)
	defer reopened.RemoveDBFile()
	defer reopened.ShutDown()

	testingpkg.Equals(t, int32(1), reopened.NumPages())
	buffer := make([]byte, common.PageSize)
	testingpkg.Ok(t, reopened.ReadPage(0, buffer))
	testingpkg.Equals(t, data, buffer)
}

func memset(buffer []byte, value int) {
	for i := range buffer {
		buffer[i] = byte(value)
	}
}
