// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package catalog

import (
	"sort"

	"github.com/ryogrid/HeapDB/storage/table/column"
	"github.com/ryogrid/HeapDB/storage/table/schema"
	"github.com/ryogrid/HeapDB/storage/tuple"
	"github.com/ryogrid/HeapDB/types"
)

// TableCatalogSchema is the schema of the rows returned by ListTables
func TableCatalogSchema() *schema.Schema {
	oidColumn := column.NewColumn("oid", types.Integer)
	nameColumn := column.NewColumn("name", types.Varchar)
	pkeyColumn := column.NewColumn("primary_key", types.Varchar)
	schemaColumn := column.NewColumn("schema", types.Varchar)
	return schema.NewSchema([]*column.Column{oidColumn, nameColumn, pkeyColumn, schemaColumn})
}

// ListTables returns one row per registered table ordered by name
func (c *Catalog) ListTables() []*tuple.Tuple {
	tables := make([]*TableMetadata, 0)
	it := c.TableIdIterator()
	for it.HasNext() {
		oid, _ := it.Next()
		if table := c.GetTableByOID(oid); table != nil {
			tables = append(tables, table)
		}
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].Name() < tables[j].Name() })

	ret := make([]*tuple.Tuple, 0, len(tables))
	for _, table := range tables {
		row := make([]types.Value, 0)
		row = append(row, types.NewInteger(int32(table.OID())))
		row = append(row, types.NewVarchar(table.Name()))
		row = append(row, types.NewVarchar(table.PrimaryKey()))
		row = append(row, types.NewVarchar(table.Schema().String()))
		ret = append(ret, tuple.NewTupleFromSchema(row, TableCatalogSchema()))
	}
	return ret
}
