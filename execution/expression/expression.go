// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package expression

import (
	"github.com/ryogrid/HeapDB/storage/tuple"
	"github.com/ryogrid/HeapDB/types"
)

/**
 * Expression interface is the base of all the expressions in the system.
 * Evaluate returns nil when the tuple has no value for the expression.
 */
type Expression interface {
	Evaluate(tuple_ *tuple.Tuple) *types.Value
}

// Predicate is a boolean expression over a tuple
type Predicate interface {
	Matches(tuple_ *tuple.Tuple) bool
}
