package catalog

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/ryogrid/HeapDB/common"
	"github.com/ryogrid/HeapDB/concurrency"
	"github.com/ryogrid/HeapDB/errors"
	"github.com/ryogrid/HeapDB/storage/access"
	"github.com/ryogrid/HeapDB/storage/buffer"
	"github.com/ryogrid/HeapDB/storage/disk"
	"github.com/ryogrid/HeapDB/storage/table/schema"
	testingpkg "github.com/ryogrid/HeapDB/testing/testing_assert"
	"github.com/ryogrid/HeapDB/types"
)

func newTestBPM() *buffer.BufferPoolManager {
	return buffer.NewBufferPoolManager(common.BufferPoolMaxFrameNumForTest, concurrency.NewLockManager())
}

func newTestFile(bpm *buffer.BufferPoolManager, name string) *access.HeapFile {
	s := schema.NewSchemaFromTypes([]types.TypeID{types.Integer, types.Varchar}, []string{"id", "name"})
	return access.NewHeapFile(disk.NewVirtualDiskManagerImpl(name), s, bpm)
}

func TestAddAndLookup(t *testing.T) {
	bpm := newTestBPM()
	c := NewCatalog()
	f := newTestFile(bpm, "people.dat")

	c.AddTable(f, "people", "id")

	oid, err := c.GetTableId("people")
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, f.GetId(), oid)

	td, err := c.GetTupleDesc(oid)
	testingpkg.Ok(t, err)
	testingpkg.Assert(t, td.Equals(f.GetTupleDesc()), "schema of the file")

	file, err := c.GetDatabaseFile(oid)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, f.GetId(), file.GetId())

	pkey, err := c.GetPrimaryKey(oid)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, "id", pkey)

	name, err := c.GetTableName(oid)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, "people", name)

	testingpkg.Equals(t, "people", c.GetTableByName("people").Name())
	testingpkg.Equals(t, oid, c.GetTableByOID(oid).OID())
}

func TestDefaultsAndAnonymousTable(t *testing.T) {
	bpm := newTestBPM()
	c := NewCatalog()
	f1 := newTestFile(bpm, "nopk.dat")
	f2 := newTestFile(bpm, "anon.dat")

	c.AddTableWithoutPKey(f1, "nopk")
	pkey, err := c.GetPrimaryKey(f1.GetId())
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, "", pkey)

	generated := c.AddAnonymousTable(f2)
	_, err = uuid.Parse(generated)
	testingpkg.Ok(t, err)
	oid, err := c.GetTableId(generated)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, f2.GetId(), oid)

	other := c.AddAnonymousTable(newTestFile(bpm, "anon2.dat"))
	testingpkg.Assert(t, generated != other, "generated names are unique")
}

func TestLastAddedNameWins(t *testing.T) {
	bpm := newTestBPM()
	c := NewCatalog()
	f1 := newTestFile(bpm, "a1.dat")
	f2 := newTestFile(bpm, "a2.dat")

	c.AddTableWithoutPKey(f1, "A")
	c.AddTableWithoutPKey(f2, "A")

	oid, err := c.GetTableId("A")
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, f2.GetId(), oid)

	// the former binding stays reachable by id
	name, err := c.GetTableName(f1.GetId())
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, "A", name)
}

func TestNotFound(t *testing.T) {
	c := NewCatalog()
	c.AddTableWithoutPKey(newTestFile(newTestBPM(), "x.dat"), "x")

	_, err := c.GetTableId("y")
	testingpkg.Assert(t, errors.Is(err, errors.ErrNotFound), "expected not found, got %v", err)
	_, err = c.GetTableId("")
	testingpkg.Assert(t, errors.Is(err, errors.ErrNotFound), "expected not found, got %v", err)

	unknown := uint32(12345)
	_, err = c.GetDatabaseFile(unknown)
	testingpkg.Assert(t, errors.Is(err, errors.ErrNotFound), "expected not found, got %v", err)
	_, err = c.GetTupleDesc(unknown)
	testingpkg.Assert(t, errors.Is(err, errors.ErrNotFound), "expected not found, got %v", err)
	_, err = c.GetPrimaryKey(unknown)
	testingpkg.Assert(t, errors.Is(err, errors.ErrNotFound), "expected not found, got %v", err)
	_, err = c.GetTableName(unknown)
	testingpkg.Assert(t, errors.Is(err, errors.ErrNotFound), "expected not found, got %v", err)
	testingpkg.Assert(t, c.GetTableByOID(unknown) == nil, "no metadata")
	testingpkg.Assert(t, c.GetTableByName("y") == nil, "no metadata")
}

func TestTableIdIteratorAndClear(t *testing.T) {
	bpm := newTestBPM()
	c := NewCatalog()
	expected := make(map[uint32]bool)
	for i := 0; i < 5; i++ {
		f := newTestFile(bpm, fmt.Sprintf("t%d.dat", i))
		c.AddTableWithoutPKey(f, fmt.Sprintf("t%d", i))
		expected[f.GetId()] = true
	}

	seen := make(map[uint32]bool)
	it := c.TableIdIterator()
	for it.HasNext() {
		oid, err := it.Next()
		testingpkg.Ok(t, err)
		seen[oid] = true
	}
	testingpkg.Equals(t, expected, seen)
	_, err := it.Next()
	testingpkg.Assert(t, errors.Is(err, errors.ErrNoSuchElement), "expected exhausted, got %v", err)

	c.Clear()
	c.Clear()
	testingpkg.Assert(t, !c.TableIdIterator().HasNext(), "cleared catalog is empty")
	_, err = c.GetTableId("t0")
	testingpkg.Assert(t, errors.Is(err, errors.ErrNotFound), "expected not found, got %v", err)
}

func TestConcurrentLookupAndAdd(t *testing.T) {
	bpm := newTestBPM()
	c := NewCatalog()
	base := newTestFile(bpm, "base.dat")
	c.AddTableWithoutPKey(base, "base")

	files := make([]*access.HeapFile, 20)
	for i := range files {
		files[i] = newTestFile(bpm, fmt.Sprintf("c%d.dat", i))
	}

	wg := new(sync.WaitGroup)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				oid, err := c.GetTableId("base")
				if err != nil || oid != base.GetId() {
					t.Errorf("lookup of base failed: %v", err)
					return
				}
				if _, err = c.GetTupleDesc(oid); err != nil {
					t.Errorf("schema of base: %v", err)
					return
				}
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i, f := range files {
			c.AddTableWithoutPKey(f, fmt.Sprintf("c%d", i))
		}
	}()
	wg.Wait()

	testingpkg.Equals(t, 1+len(files), len(c.ListTables()))
}

func TestListTables(t *testing.T) {
	bpm := newTestBPM()
	c := NewCatalog()
	c.AddTable(newTestFile(bpm, "b.dat"), "b", "id")
	c.AddTableWithoutPKey(newTestFile(bpm, "a.dat"), "a")

	rows := c.ListTables()
	testingpkg.Equals(t, 2, len(rows))
	testingpkg.Equals(t, "a", rows[0].GetValue(1).ToVarchar())
	testingpkg.Equals(t, "", rows[0].GetValue(2).ToVarchar())
	testingpkg.Equals(t, "b", rows[1].GetValue(1).ToVarchar())
	testingpkg.Equals(t, "id", rows[1].GetValue(2).ToVarchar())
	testingpkg.Equals(t, "INT_TYPE(id)STRING_TYPE(name)", rows[1].GetValue(3).ToVarchar())
	testingpkg.Assert(t, TableCatalogSchema().Equals(rows[0].GetSchema()), "rows use the table catalog schema")
}
