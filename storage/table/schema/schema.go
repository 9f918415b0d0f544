// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package schema

import (
	"fmt"
	"strings"

	"github.com/ryogrid/HeapDB/common"
	"github.com/ryogrid/HeapDB/errors"
	"github.com/ryogrid/HeapDB/storage/table/column"
	"github.com/ryogrid/HeapDB/types"
)

// Schema describes the fields of a tuple. It is not modified after construction
// and may be shared by any number of tuples.
type Schema struct {
	length  uint32           // the number of bytes used by one serialized tuple
	columns []*column.Column // All the columns in the schema
}

// NewSchema copies the passed columns so that offsets assigned here
// never leak into another schema holding the same column objects
func NewSchema(columns []*column.Column) *Schema {
	schema := &Schema{}

	var currentOffset uint32
	currentOffset = 0
	for i := uint32(0); i < uint32(len(columns)); i++ {
		col := *columns[i]
		col.SetOffset(currentOffset)
		currentOffset += col.FixedLength()

		schema.columns = append(schema.columns, &col)
	}
	schema.length = currentOffset
	return schema
}

// NewSchemaFromTypes builds a schema from parallel type and name arrays.
// names may be nil (every field unnamed) or contain empty strings and duplicates.
func NewSchemaFromTypes(typeIds []types.TypeID, names []string) *Schema {
	common.SH_Assert(names == nil || len(names) == len(typeIds), "types and names differ in length")
	columns := make([]*column.Column, 0, len(typeIds))
	for i, typeId := range typeIds {
		name := ""
		if names != nil {
			name = names[i]
		}
		columns = append(columns, column.NewColumn(name, typeId))
	}
	return NewSchema(columns)
}

func (s *Schema) GetColumn(colIndex uint32) *column.Column {
	return s.columns[colIndex]
}

func (s *Schema) GetColumnCount() uint32 {
	return uint32(len(s.columns))
}

func (s *Schema) Length() uint32 {
	return s.length
}

func (s *Schema) GetFieldType(colIndex uint32) (types.TypeID, error) {
	if colIndex >= s.GetColumnCount() {
		return types.Invalid, fmt.Errorf("field %d of %d: %w", colIndex, s.GetColumnCount(), errors.ErrFieldIndexOutOfRange)
	}
	return s.columns[colIndex].GetType(), nil
}

func (s *Schema) GetFieldName(colIndex uint32) (string, error) {
	if colIndex >= s.GetColumnCount() {
		return "", fmt.Errorf("field %d of %d: %w", colIndex, s.GetColumnCount(), errors.ErrFieldIndexOutOfRange)
	}
	return s.columns[colIndex].GetColumnName(), nil
}

// GetColIndex returns the index of the first field named columnName
func (s *Schema) GetColIndex(columnName string) (uint32, error) {
	if columnName == "" {
		return 0, fmt.Errorf("empty field name: %w", errors.ErrNotFound)
	}
	for i := uint32(0); i < s.GetColumnCount(); i++ {
		if s.columns[i].GetColumnName() == columnName {
			return i, nil
		}
	}

	return 0, fmt.Errorf("field %s: %w", columnName, errors.ErrNotFound)
}

func (s *Schema) GetColumns() []*column.Column {
	return s.columns
}

func (s *Schema) GetTypes() []types.TypeID {
	ret := make([]types.TypeID, 0, len(s.columns))
	for _, col := range s.columns {
		ret = append(ret, col.GetType())
	}
	return ret
}

func (s *Schema) GetNames() []string {
	ret := make([]string, 0, len(s.columns))
	for _, col := range s.columns {
		ret = append(ret, col.GetColumnName())
	}
	return ret
}

// Merge returns a new schema with the fields of left followed by the fields of right
func Merge(left *Schema, right *Schema) *Schema {
	columns := make([]*column.Column, 0, len(left.columns)+len(right.columns))
	columns = append(columns, left.columns...)
	columns = append(columns, right.columns...)
	return NewSchema(columns)
}

// Equals compares field types only. Names are ignored.
func (s *Schema) Equals(other *Schema) bool {
	if other == nil || s.GetColumnCount() != other.GetColumnCount() {
		return false
	}
	for i, col := range s.columns {
		if col.GetType() != other.columns[i].GetType() {
			return false
		}
	}
	return true
}

// String renders type0(name0)type1(name1)...
func (s *Schema) String() string {
	var sb strings.Builder
	for _, col := range s.columns {
		name := "null"
		if col.HasName() {
			name = col.GetColumnName()
		}
		sb.WriteString(fmt.Sprintf("%s(%s)", col.GetType().String(), name))
	}
	return sb.String()
}
