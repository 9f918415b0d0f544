// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package column

import (
	"github.com/ryogrid/HeapDB/types"
)

// Column is one field of a schema. An empty name means the field is unnamed.
type Column struct {
	columnName   string
	columnType   types.TypeID
	fixedLength  uint32 // byte width of the field in a serialized tuple
	columnOffset uint32 // Column offset in the tuple
}

func NewColumn(name string, columnType types.TypeID) *Column {
	return &Column{name, columnType, columnType.Size(), 0}
}

func (c *Column) GetType() types.TypeID {
	return c.columnType
}

func (c *Column) GetOffset() uint32 {
	return c.columnOffset
}

func (c *Column) SetOffset(offset uint32) {
	c.columnOffset = offset
}

func (c *Column) FixedLength() uint32 {
	return c.fixedLength
}

func (c *Column) GetColumnName() string {
	return c.columnName
}

func (c *Column) HasName() bool {
	return c.columnName != ""
}
