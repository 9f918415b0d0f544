// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package expression

import (
	"github.com/ryogrid/HeapDB/storage/tuple"
	"github.com/ryogrid/HeapDB/types"
)

type ComparisonType int

/** ComparisonType represents the type of comparison that we want to perform. */
const (
	Equal ComparisonType = iota
	NotEqual
	LessThan
	GreaterThan
)

func (c ComparisonType) String() string {
	switch c {
	case Equal:
		return "="
	case NotEqual:
		return "!="
	case LessThan:
		return "<"
	case GreaterThan:
		return ">"
	}
	return "?"
}

/**
 * Comparison represents a column being compared with another expression.
 */
type Comparison struct {
	comparisonType ComparisonType
	childrenLeft   *ColumnValue
	childrenRight  Expression
}

func NewComparison(left *ColumnValue, right Expression, comparisonType ComparisonType) *Comparison {
	return &Comparison{comparisonType, left, right}
}

// Matches is false when either side has no value
func (c *Comparison) Matches(tuple_ *tuple.Tuple) bool {
	lhs := c.childrenLeft.Evaluate(tuple_)
	rhs := c.childrenRight.Evaluate(tuple_)
	if lhs == nil || rhs == nil {
		return false
	}
	return c.performComparison(*lhs, *rhs)
}

func (c *Comparison) performComparison(lhs types.Value, rhs types.Value) bool {
	switch c.comparisonType {
	case Equal:
		return lhs.CompareEquals(rhs)
	case NotEqual:
		return lhs.CompareNotEquals(rhs)
	case LessThan:
		return lhs.CompareLessThan(rhs)
	case GreaterThan:
		return lhs.CompareGreaterThan(rhs)
	}
	return false
}

func (c *Comparison) GetLeftSideColIdx() uint32 {
	return c.childrenLeft.colIndex
}

func (c *Comparison) GetComparisonType() ComparisonType {
	return c.comparisonType
}
