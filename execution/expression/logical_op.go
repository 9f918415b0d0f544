package expression

import (
	"fmt"

	"github.com/ryogrid/HeapDB/storage/tuple"
)

type LogicalOpType int

const (
	AND LogicalOpType = iota
	OR
	NOT
)

/**
 * LogicalOp represents two predicates or one predicate being evaluated with logical operator.
 */
type LogicalOp struct {
	logicalOpType LogicalOpType
	childrenLeft  Predicate
	childrenRight Predicate
}

// if logicalOpType is "NOT", right must be nil
func NewLogicalOp(left Predicate, right Predicate, logicalOpType LogicalOpType) *LogicalOp {
	return &LogicalOp{logicalOpType, left, right}
}

func (c *LogicalOp) Matches(tuple_ *tuple.Tuple) bool {
	switch c.logicalOpType {
	case AND:
		return c.childrenLeft.Matches(tuple_) && c.childrenRight.Matches(tuple_)
	case OR:
		return c.childrenLeft.Matches(tuple_) || c.childrenRight.Matches(tuple_)
	case NOT:
		return !c.childrenLeft.Matches(tuple_)
	default:
		panic(fmt.Sprintf("unknown logicalOpType is passed! %d", c.logicalOpType))
	}
}

func (c *LogicalOp) GetLogicalOpType() LogicalOpType {
	return c.logicalOpType
}
