// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package expression

import (
	"github.com/ryogrid/HeapDB/storage/tuple"
	"github.com/ryogrid/HeapDB/types"
)

type ConstantValue struct {
	value types.Value
}

func NewConstantValue(value types.Value) *ConstantValue {
	return &ConstantValue{value}
}

func (c *ConstantValue) Evaluate(_ *tuple.Tuple) *types.Value {
	ret := c.value
	return &ret
}
