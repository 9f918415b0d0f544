package executors

import (
	"github.com/ryogrid/HeapDB/errors"
	"github.com/ryogrid/HeapDB/execution/expression"
	"github.com/ryogrid/HeapDB/storage/table/schema"
	"github.com/ryogrid/HeapDB/storage/tuple"
)

// do filtering according to WHERE clause for Plan(Executor) which has no filtering feature

type FilterExecutor struct {
	predicate expression.Predicate
	child     Executor
	// next matching tuple already pulled from child
	lookahead *tuple.Tuple
}

func NewFilterExecutor(predicate expression.Predicate, child Executor) *FilterExecutor {
	return &FilterExecutor{predicate, child, nil}
}

func (e *FilterExecutor) Open() error {
	e.lookahead = nil
	return e.child.Open()
}

func (e *FilterExecutor) HasNext() (bool, error) {
	if e.lookahead != nil {
		return true, nil
	}
	for {
		ok, err := e.child.HasNext()
		if err != nil || !ok {
			return false, err
		}
		t, err := e.child.Next()
		if err != nil {
			return false, err
		}
		if e.selects(t) {
			e.lookahead = t
			return true, nil
		}
	}
}

func (e *FilterExecutor) Next() (*tuple.Tuple, error) {
	ok, err := e.HasNext()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.ErrNoSuchElement
	}
	ret := e.lookahead
	e.lookahead = nil
	return ret, nil
}

func (e *FilterExecutor) Rewind() error {
	e.lookahead = nil
	return e.child.Rewind()
}

func (e *FilterExecutor) Close() {
	e.lookahead = nil
	e.child.Close()
}

func (e *FilterExecutor) GetTupleDesc() *schema.Schema {
	return e.child.GetTupleDesc()
}

func (e *FilterExecutor) selects(tuple_ *tuple.Tuple) bool {
	return e.predicate == nil || e.predicate.Matches(tuple_)
}
