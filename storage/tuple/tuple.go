// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package tuple

import (
	"fmt"
	"strings"

	"github.com/ryogrid/HeapDB/errors"
	"github.com/ryogrid/HeapDB/storage/page"
	"github.com/ryogrid/HeapDB/storage/table/schema"
	"github.com/ryogrid/HeapDB/types"
)

/**
 * Tuple format (serialized):
 * -------------------------------------------------
 * | FIELD 0 | FIELD 1 | ... | FIELD n-1 |
 * -------------------------------------------------
 * each field is encoded at the fixed width of its type
 */
type Tuple struct {
	schema *schema.Schema
	fields []*types.Value
	rid    *page.RID
}

// NewTuple allocates a tuple whose fields are all unset
func NewTuple(schema_ *schema.Schema) *Tuple {
	return &Tuple{schema_, make([]*types.Value, schema_.GetColumnCount()), nil}
}

// NewTupleFromSchema creates a new tuple based on input value
func NewTupleFromSchema(values []types.Value, schema_ *schema.Schema) *Tuple {
	tuple_ := NewTuple(schema_)
	for i := range values {
		tuple_.SetValue(uint32(i), values[i])
	}
	return tuple_
}

func (t *Tuple) GetSchema() *schema.Schema {
	return t.schema
}

// ResetSchema binds the tuple to another schema. The field array is kept as is.
func (t *Tuple) ResetSchema(schema_ *schema.Schema) {
	t.schema = schema_
}

func (t *Tuple) GetRID() *page.RID {
	return t.rid
}

func (t *Tuple) SetRID(rid *page.RID) {
	t.rid = rid
}

// GetValue returns nil when the field is unset or colIndex is out of range
func (t *Tuple) GetValue(colIndex uint32) *types.Value {
	if colIndex >= uint32(len(t.fields)) {
		return nil
	}
	return t.fields[colIndex]
}

// SetValue does nothing when colIndex is out of range
func (t *Tuple) SetValue(colIndex uint32, value types.Value) {
	if colIndex >= uint32(len(t.fields)) {
		return
	}
	t.fields[colIndex] = &value
}

func (t *Tuple) FieldCount() uint32 {
	return uint32(len(t.fields))
}

// String joins field values with a tab and terminates with a newline
func (t *Tuple) String() string {
	var sb strings.Builder
	for i, field := range t.fields {
		if i > 0 {
			sb.WriteString("\t")
		}
		if field == nil {
			sb.WriteString("null")
		} else {
			sb.WriteString(field.ToString())
		}
	}
	sb.WriteString("\n")
	return sb.String()
}

// Fields returns a single pass iterator over the field values in schema order
func (t *Tuple) Fields() *FieldIterator {
	return &FieldIterator{t.fields, 0}
}

// SerializeTo writes every field at its column offset. buf must hold schema.Length() bytes.
func (t *Tuple) SerializeTo(buf []byte) error {
	if uint32(len(buf)) < t.schema.Length() {
		return fmt.Errorf("buffer of %d bytes for tuple of %d bytes: %w", len(buf), t.schema.Length(), errors.ErrSchemaMismatch)
	}
	for i := uint32(0); i < t.schema.GetColumnCount(); i++ {
		col := t.schema.GetColumn(i)
		value := t.GetValue(i)
		if value == nil {
			return fmt.Errorf("field %d: %w", i, errors.ErrIncompleteTuple)
		}
		if value.ValueType() != col.GetType() {
			return fmt.Errorf("field %d is %s, column is %s: %w", i, value.ValueType(), col.GetType(), errors.ErrSchemaMismatch)
		}
		copy(buf[col.GetOffset():col.GetOffset()+col.FixedLength()], value.Serialize())
	}
	return nil
}

// DeserializeFrom decodes a tuple of schema_ from data
func DeserializeFrom(data []byte, schema_ *schema.Schema) (*Tuple, error) {
	if uint32(len(data)) < schema_.Length() {
		return nil, fmt.Errorf("%d bytes for tuple of %d bytes: %w", len(data), schema_.Length(), errors.ErrSchemaMismatch)
	}
	ret := NewTuple(schema_)
	for i := uint32(0); i < schema_.GetColumnCount(); i++ {
		col := schema_.GetColumn(i)
		value := types.NewValueFromBytes(data[col.GetOffset():col.GetOffset()+col.FixedLength()], col.GetType())
		if value == nil {
			return nil, fmt.Errorf("field %d is not a valid %s: %w", i, col.GetType(), errors.ErrSchemaMismatch)
		}
		ret.fields[i] = value
	}
	return ret, nil
}

type FieldIterator struct {
	fields []*types.Value
	cursor int
}

func (it *FieldIterator) HasNext() bool {
	return it.cursor < len(it.fields)
}

// Next returns the next field value. it may be nil for an unset field
func (it *FieldIterator) Next() (*types.Value, error) {
	if !it.HasNext() {
		return nil, errors.ErrNoSuchElement
	}
	ret := it.fields[it.cursor]
	it.cursor++
	return ret, nil
}
