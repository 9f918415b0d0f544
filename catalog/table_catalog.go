// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package catalog

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/ryogrid/HeapDB/common"
	"github.com/ryogrid/HeapDB/errors"
	"github.com/ryogrid/HeapDB/storage/access"
	"github.com/ryogrid/HeapDB/storage/table/schema"
)

// Catalog is a non-persistent registry of the tables of a database instance.
// The id of a table is the id of its backing file.
// A later table added with an existing name takes the name over.
type Catalog struct {
	tableIds   map[uint32]*TableMetadata
	tableNames map[string]uint32
	latch      common.ReaderWriterLatch
}

func NewCatalog() *Catalog {
	return &Catalog{make(map[uint32]*TableMetadata), make(map[string]uint32), common.NewRWLatchForConfig()}
}

// AddTable registers file under name. pkeyField may be empty.
func (c *Catalog) AddTable(file access.DbFile, name string, pkeyField string) {
	common.SH_Assert(file != nil, "AddTable: file is nil")
	common.SH_Assert(name != "", "AddTable: table name is empty")

	c.latch.WLock()
	defer c.latch.WUnlock()
	c.tableIds[file.GetId()] = &TableMetadata{file, name, pkeyField}
	c.tableNames[name] = file.GetId()
}

func (c *Catalog) AddTableWithoutPKey(file access.DbFile, name string) {
	c.AddTable(file, name, "")
}

// AddAnonymousTable registers file under a generated unique name and returns the name
func (c *Catalog) AddAnonymousTable(file access.DbFile) string {
	name := uuid.New().String()
	c.AddTableWithoutPKey(file, name)
	return name
}

func (c *Catalog) GetTableId(name string) (uint32, error) {
	c.latch.RLock()
	defer c.latch.RUnlock()
	if oid, ok := c.tableNames[name]; ok {
		return oid, nil
	}
	return 0, fmt.Errorf("table %s: %w", name, errors.ErrNotFound)
}

func (c *Catalog) getTable(oid uint32) (*TableMetadata, error) {
	c.latch.RLock()
	defer c.latch.RUnlock()
	if table, ok := c.tableIds[oid]; ok {
		return table, nil
	}
	return nil, fmt.Errorf("table id %d: %w", oid, errors.ErrNotFound)
}

func (c *Catalog) GetTupleDesc(oid uint32) (*schema.Schema, error) {
	table, err := c.getTable(oid)
	if err != nil {
		return nil, err
	}
	return table.Schema(), nil
}

func (c *Catalog) GetDatabaseFile(oid uint32) (access.DbFile, error) {
	table, err := c.getTable(oid)
	if err != nil {
		return nil, err
	}
	return table.Table(), nil
}

func (c *Catalog) GetPrimaryKey(oid uint32) (string, error) {
	table, err := c.getTable(oid)
	if err != nil {
		return "", err
	}
	return table.PrimaryKey(), nil
}

func (c *Catalog) GetTableName(oid uint32) (string, error) {
	table, err := c.getTable(oid)
	if err != nil {
		return "", err
	}
	return table.Name(), nil
}

func (c *Catalog) GetTableByOID(oid uint32) *TableMetadata {
	table, err := c.getTable(oid)
	if err != nil {
		return nil
	}
	return table
}

func (c *Catalog) GetTableByName(name string) *TableMetadata {
	oid, err := c.GetTableId(name)
	if err != nil {
		return nil
	}
	return c.GetTableByOID(oid)
}

// TableIdIterator iterates over the ids registered when it was created. The order is unspecified.
func (c *Catalog) TableIdIterator() *TableIdIterator {
	c.latch.RLock()
	defer c.latch.RUnlock()
	ids := make([]uint32, 0, len(c.tableIds))
	for oid := range c.tableIds {
		ids = append(ids, oid)
	}
	return &TableIdIterator{ids, 0}
}

// Clear removes every table
func (c *Catalog) Clear() {
	c.latch.WLock()
	defer c.latch.WUnlock()
	c.tableIds = make(map[uint32]*TableMetadata)
	c.tableNames = make(map[string]uint32)
}

type TableIdIterator struct {
	ids    []uint32
	cursor int
}

func (it *TableIdIterator) HasNext() bool {
	return it.cursor < len(it.ids)
}

func (it *TableIdIterator) Next() (uint32, error) {
	if !it.HasNext() {
		return 0, errors.ErrNoSuchElement
	}
	ret := it.ids[it.cursor]
	it.cursor++
	return ret, nil
}
