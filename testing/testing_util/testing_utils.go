// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package testing_util

import (
	"github.com/ryogrid/HeapDB/storage/table/schema"
	"github.com/ryogrid/HeapDB/types"
)

func GetValue(data interface{}) (value types.Value) {
	switch v := data.(type) {
	case int:
		value = types.NewInteger(int32(v))
	case int32:
		value = types.NewInteger(v)
	case string:
		value = types.NewVarchar(v)
	case *types.Value:
		return *v
	case types.Value:
		return v
	default:
		panic("not implemented")
	}
	return
}

func GetValueType(data interface{}) (value types.TypeID) {
	switch v := data.(type) {
	case int, int32:
		return types.Integer
	case string:
		return types.Varchar
	case *types.Value:
		return v.ValueType()
	case types.Value:
		return v.ValueType()
	}
	panic("not implemented")
}

// MakeRow converts Go values to a row of field values
func MakeRow(data ...interface{}) []types.Value {
	row := make([]types.Value, 0, len(data))
	for _, d := range data {
		row = append(row, GetValue(d))
	}
	return row
}

// MakeSchema builds a schema named names whose field types are those of samples
func MakeSchema(names []string, samples ...interface{}) *schema.Schema {
	typeIds := make([]types.TypeID, 0, len(samples))
	for _, s := range samples {
		typeIds = append(typeIds, GetValueType(s))
	}
	return schema.NewSchemaFromTypes(typeIds, names)
}
