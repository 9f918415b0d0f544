package executors

import (
	"fmt"

	"github.com/ryogrid/HeapDB/catalog"
	"github.com/ryogrid/HeapDB/common"
	"github.com/ryogrid/HeapDB/errors"
	"github.com/ryogrid/HeapDB/execution/plans"
	"github.com/ryogrid/HeapDB/storage/table/schema"
	"github.com/ryogrid/HeapDB/storage/tuple"
	"github.com/ryogrid/HeapDB/types"
)

// InsertExecutor inserts the raw values of its plan, or every tuple of child, on the first Next.
// It yields a single tuple holding the number of inserted tuples.
type InsertExecutor struct {
	context       *ExecutorContext
	plan          *plans.InsertPlanNode
	tableMetadata *catalog.TableMetadata
	child         Executor
	inserted      bool
	emitted       bool
	count         int32
}

var insertCountSchema = schema.NewSchemaFromTypes([]types.TypeID{types.Integer}, []string{"count"})

// child is nil for a raw insert
func NewInsertExecutor(context *ExecutorContext, plan *plans.InsertPlanNode, child Executor) *InsertExecutor {
	tableMetadata := context.GetCatalog().GetTableByOID(plan.GetTableOID())
	return &InsertExecutor{context, plan, tableMetadata, child, false, false, 0}
}

func (e *InsertExecutor) Open() error {
	if e.tableMetadata == nil {
		return fmt.Errorf("table %d: %w", e.plan.GetTableOID(), errors.ErrNotFound)
	}
	e.emitted = false
	if e.child != nil {
		return e.child.Open()
	}
	return nil
}

func (e *InsertExecutor) HasNext() (bool, error) {
	return !e.emitted, nil
}

func (e *InsertExecutor) Next() (*tuple.Tuple, error) {
	if e.emitted {
		return nil, errors.ErrNoSuchElement
	}
	if !e.inserted {
		if err := e.insertAll(); err != nil {
			return nil, err
		}
		e.inserted = true
	}
	e.emitted = true
	return tuple.NewTupleFromSchema([]types.Value{types.NewInteger(e.count)}, insertCountSchema), nil
}

func (e *InsertExecutor) insertAll() error {
	txn := e.context.GetTransaction()
	file := e.tableMetadata.Table()

	insert := func(t *tuple.Tuple) error {
		if _, err := file.InsertTuple(txn, t); err != nil {
			return err
		}
		e.count++
		return nil
	}

	if e.plan.IsRawInsert() {
		for _, values := range e.plan.GetRawValues() {
			if err := insert(tuple.NewTupleFromSchema(values, e.tableMetadata.Schema())); err != nil {
				return err
			}
		}
	} else {
		for {
			ok, err := e.child.HasNext()
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			t, err := e.child.Next()
			if err != nil {
				return err
			}
			if err = insert(t); err != nil {
				return err
			}
		}
	}
	common.ShPrintf(common.DEBUG_INFO, "InsertExecutor: %d tuples into %s\n", e.count, e.tableMetadata.Name())
	return nil
}

// Rewind yields the count again without inserting twice
func (e *InsertExecutor) Rewind() error {
	e.emitted = false
	return nil
}

func (e *InsertExecutor) Close() {
	if e.child != nil {
		e.child.Close()
	}
}

func (e *InsertExecutor) GetTupleDesc() *schema.Schema {
	return insertCountSchema
}
