package catalog

import (
	"github.com/ryogrid/HeapDB/storage/access"
	"github.com/ryogrid/HeapDB/storage/table/schema"
)

type TableMetadata struct {
	file access.DbFile
	name string
	pkey string
}

func (t *TableMetadata) Schema() *schema.Schema {
	return t.file.GetTupleDesc()
}

func (t *TableMetadata) OID() uint32 {
	return t.file.GetId()
}

func (t *TableMetadata) Table() access.DbFile {
	return t.file
}

func (t *TableMetadata) Name() string {
	return t.name
}

// PrimaryKey is empty when the table declares no primary key
func (t *TableMetadata) PrimaryKey() string {
	return t.pkey
}
