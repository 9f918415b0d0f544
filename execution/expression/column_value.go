// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package expression

import (
	"github.com/ryogrid/HeapDB/storage/tuple"
	"github.com/ryogrid/HeapDB/types"
)

/**
 * ColumnValue maintains the column index relative to the schema of the tuple.
 * e.g. schema {A,B,C} has indexes {0,1,2}
 */
type ColumnValue struct {
	colIndex uint32
	colType  types.TypeID
}

func NewColumnValue(colIndex uint32, colType types.TypeID) *ColumnValue {
	return &ColumnValue{colIndex, colType}
}

func (c *ColumnValue) Evaluate(tuple_ *tuple.Tuple) *types.Value {
	return tuple_.GetValue(c.colIndex)
}

func (c *ColumnValue) GetColIndex() uint32 { return c.colIndex }

func (c *ColumnValue) GetReturnType() types.TypeID { return c.colType }
