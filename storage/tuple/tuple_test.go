// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package tuple

import (
	"strconv"
	"strings"
	"testing"

	"github.com/ryogrid/HeapDB/errors"
	"github.com/ryogrid/HeapDB/storage/page"
	"github.com/ryogrid/HeapDB/storage/table/schema"
	testingpkg "github.com/ryogrid/HeapDB/testing/testing_assert"
	"github.com/ryogrid/HeapDB/types"
)

func newTestSchema() *schema.Schema {
	return schema.NewSchemaFromTypes([]types.TypeID{types.Integer, types.Varchar, types.Integer}, []string{"a", "b", "c"})
}

func TestTupleFieldAccess(t *testing.T) {
	tuple_ := NewTuple(newTestSchema())

	for i := uint32(0); i < 3; i++ {
		testingpkg.Assert(t, tuple_.GetValue(i) == nil, "field %d should be unset", i)
	}

	tuple_.SetValue(0, types.NewInteger(20))
	tuple_.SetValue(1, types.NewVarchar("hello"))
	testingpkg.Equals(t, int32(20), tuple_.GetValue(0).ToInteger())
	testingpkg.Equals(t, "hello", tuple_.GetValue(1).ToVarchar())
	testingpkg.Assert(t, tuple_.GetValue(2) == nil, "field 2 should still be unset")

	// out of range access is a no-op
	tuple_.SetValue(3, types.NewInteger(1))
	tuple_.SetValue(100, types.NewInteger(1))
	testingpkg.Assert(t, tuple_.GetValue(3) == nil, "out of range read must return nil")
	testingpkg.Equals(t, uint32(3), tuple_.FieldCount())
}

func TestTupleRID(t *testing.T) {
	tuple_ := NewTuple(newTestSchema())
	testingpkg.Assert(t, tuple_.GetRID() == nil, "rid is unset before placement")

	tuple_.SetRID(page.NewRID(page.NewPageID(1, types.PageID(2)), 3))
	testingpkg.Equals(t, uint32(3), tuple_.GetRID().GetSlotNum())
	tuple_.SetRID(page.NewRID(page.NewPageID(1, types.PageID(4)), 0))
	testingpkg.Equals(t, types.PageID(4), tuple_.GetRID().GetPageId().GetPageNo())
}

func TestResetSchema(t *testing.T) {
	tuple_ := NewTupleFromSchema([]types.Value{types.NewInteger(1), types.NewVarchar("x"), types.NewInteger(2)}, newTestSchema())
	other := schema.NewSchemaFromTypes([]types.TypeID{types.Integer}, []string{"only"})

	tuple_.ResetSchema(other)
	testingpkg.Equals(t, other, tuple_.GetSchema())
	testingpkg.Equals(t, uint32(3), tuple_.FieldCount())
	testingpkg.Equals(t, "x", tuple_.GetValue(1).ToVarchar())
}

func TestTupleStringRoundTrip(t *testing.T) {
	tuple_ := NewTupleFromSchema([]types.Value{types.NewInteger(-7), types.NewVarchar("foo bar"), types.NewInteger(99)}, newTestSchema())

	text := tuple_.String()
	testingpkg.Assert(t, strings.HasSuffix(text, "\n"), "rendering must end with a newline")

	parts := strings.Split(strings.TrimSuffix(text, "\n"), "\t")
	testingpkg.Equals(t, 3, len(parts))
	testingpkg.Equals(t, strconv.Itoa(-7), parts[0])
	testingpkg.Equals(t, "foo bar", parts[1])
	testingpkg.Equals(t, "99", parts[2])

	empty := NewTuple(newTestSchema())
	testingpkg.Equals(t, "null\tnull\tnull\n", empty.String())
}

func TestFieldIterator(t *testing.T) {
	tuple_ := NewTupleFromSchema([]types.Value{types.NewInteger(1), types.NewVarchar("two"), types.NewInteger(3)}, newTestSchema())

	it := tuple_.Fields()
	got := make([]string, 0)
	for it.HasNext() {
		v, err := it.Next()
		testingpkg.Ok(t, err)
		got = append(got, v.ToString())
	}
	testingpkg.Equals(t, []string{"1", "two", "3"}, got)

	_, err := it.Next()
	testingpkg.Assert(t, errors.Is(err, errors.ErrNoSuchElement), "expected exhausted iterator, got %v", err)
}

func TestSerializeDeserialize(t *testing.T) {
	s := newTestSchema()
	tuple_ := NewTupleFromSchema([]types.Value{types.NewInteger(42), types.NewVarchar("payload"), types.NewInteger(-1)}, s)

	buf := make([]byte, s.Length())
	testingpkg.Ok(t, tuple_.SerializeTo(buf))

	decoded, err := DeserializeFrom(buf, s)
	testingpkg.Ok(t, err)
	for i := uint32(0); i < s.GetColumnCount(); i++ {
		testingpkg.Assert(t, tuple_.GetValue(i).CompareEquals(*decoded.GetValue(i)), "field %d differs", i)
	}
}

func TestSerializeRejectsBadTuples(t *testing.T) {
	s := newTestSchema()
	buf := make([]byte, s.Length())

	incomplete := NewTuple(s)
	incomplete.SetValue(0, types.NewInteger(1))
	err := incomplete.SerializeTo(buf)
	testingpkg.Assert(t, errors.Is(err, errors.ErrIncompleteTuple), "expected incomplete tuple, got %v", err)

	mistyped := NewTupleFromSchema([]types.Value{types.NewVarchar("a"), types.NewVarchar("b"), types.NewInteger(1)}, s)
	err = mistyped.SerializeTo(buf)
	testingpkg.Assert(t, errors.Is(err, errors.ErrSchemaMismatch), "expected schema mismatch, got %v", err)

	err = NewTupleFromSchema([]types.Value{types.NewInteger(1), types.NewVarchar("b"), types.NewInteger(1)}, s).SerializeTo(buf[:10])
	testingpkg.Assert(t, errors.Is(err, errors.ErrSchemaMismatch), "expected short buffer error, got %v", err)
}
