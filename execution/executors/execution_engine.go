package executors

import (
	"fmt"

	"github.com/ryogrid/HeapDB/execution/plans"
	"github.com/ryogrid/HeapDB/storage/tuple"
)

type ExecutionEngine struct {
}

// Execute runs plan to completion and returns every produced tuple
func (e *ExecutionEngine) Execute(plan plans.Plan, context *ExecutorContext) ([]*tuple.Tuple, error) {
	executor, err := e.CreateExecutor(plan, context)
	if err != nil {
		return nil, err
	}

	if err = executor.Open(); err != nil {
		return nil, err
	}
	defer executor.Close()

	tuples := make([]*tuple.Tuple, 0)
	for {
		ok, err := executor.HasNext()
		if err != nil {
			return tuples, err
		}
		if !ok {
			break
		}
		t, err := executor.Next()
		if err != nil {
			return tuples, err
		}
		tuples = append(tuples, t)
	}

	return tuples, nil
}

func (e *ExecutionEngine) CreateExecutor(plan plans.Plan, context *ExecutorContext) (Executor, error) {
	switch p := plan.(type) {
	case *plans.InsertPlanNode:
		if p.IsRawInsert() {
			return NewInsertExecutor(context, p, nil), nil
		}
		child, err := e.CreateExecutor(p.GetChildAt(0), context)
		if err != nil {
			return nil, err
		}
		return NewInsertExecutor(context, p, child), nil
	case *plans.SeqScanPlanNode:
		return NewSeqScanExecutorFromPlan(context, p)
	case *plans.FilterPlanNode:
		child, err := e.CreateExecutor(p.GetChildAt(0), context)
		if err != nil {
			return nil, err
		}
		return NewFilterExecutor(p.GetPredicate(), child), nil
	}
	return nil, fmt.Errorf("unsupported plan %T", plan)
}
