// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package executors

import (
	"fmt"

	"github.com/ryogrid/HeapDB/common"
	"github.com/ryogrid/HeapDB/errors"
	"github.com/ryogrid/HeapDB/execution/plans"
	"github.com/ryogrid/HeapDB/storage/access"
	"github.com/ryogrid/HeapDB/storage/table/schema"
	"github.com/ryogrid/HeapDB/storage/tuple"
)

/**
 * SeqScanExecutor executes a sequential scan over a table.
 * Tuples are returned with the aliased tuple desc: field names are "alias.field".
 */
type SeqScanExecutor struct {
	context   *ExecutorContext
	tableOID  uint32
	tableName string
	alias     string
	file      access.DbFile
	it        access.DbFileIterator
	desc      *schema.Schema
}

// NewSeqScanExecutor creates a new sequential executor over table tableOID
func NewSeqScanExecutor(context *ExecutorContext, tableOID uint32, alias string) (*SeqScanExecutor, error) {
	e := &SeqScanExecutor{context: context}
	if err := e.Reset(tableOID, alias); err != nil {
		return nil, err
	}
	return e, nil
}

// NewSeqScanExecutorWithTableName uses the registered table name as the alias
func NewSeqScanExecutorWithTableName(context *ExecutorContext, tableOID uint32) (*SeqScanExecutor, error) {
	name, err := context.GetCatalog().GetTableName(tableOID)
	if err != nil {
		return nil, err
	}
	return NewSeqScanExecutor(context, tableOID, name)
}

func NewSeqScanExecutorFromPlan(context *ExecutorContext, plan *plans.SeqScanPlanNode) (*SeqScanExecutor, error) {
	if plan.GetAlias() == "" {
		return NewSeqScanExecutorWithTableName(context, plan.GetTableOID())
	}
	return NewSeqScanExecutor(context, plan.GetTableOID(), plan.GetAlias())
}

// AliasedTupleDesc copies sc with every field name prefixed by alias.
// an empty alias or field name is rendered as "null"
func AliasedTupleDesc(sc *schema.Schema, alias string) *schema.Schema {
	if alias == "" {
		alias = "null"
	}
	names := make([]string, 0, sc.GetColumnCount())
	for _, col := range sc.GetColumns() {
		name := "null"
		if col.HasName() {
			name = col.GetColumnName()
		}
		names = append(names, alias+"."+name)
	}
	return schema.NewSchemaFromTypes(sc.GetTypes(), names)
}

// Reset makes the executor scan table tableOID under alias. The previous cursor is closed.
func (e *SeqScanExecutor) Reset(tableOID uint32, alias string) error {
	catalog := e.context.GetCatalog()
	file, err := catalog.GetDatabaseFile(tableOID)
	if err != nil {
		return fmt.Errorf("table %d: %w", tableOID, err)
	}
	name, err := catalog.GetTableName(tableOID)
	if err != nil {
		return fmt.Errorf("table %d: %w", tableOID, err)
	}
	if e.it != nil {
		e.it.Close()
	}

	e.tableOID = tableOID
	e.tableName = name
	e.alias = alias
	e.file = file
	e.it = file.Iterator(e.context.GetTransaction().GetTransactionId())
	e.desc = AliasedTupleDesc(file.GetTupleDesc(), alias)
	return nil
}

func (e *SeqScanExecutor) GetTableName() string {
	return e.tableName
}

func (e *SeqScanExecutor) GetAlias() string {
	return e.alias
}

func (e *SeqScanExecutor) GetTupleDesc() *schema.Schema {
	return e.desc
}

func (e *SeqScanExecutor) Open() error {
	if e.file == nil || e.it == nil {
		return errors.ErrTxnAborted
	}
	return e.it.Open()
}

// HasNext reports false instead of an error when the transaction is aborted while fetching pages.
// the transaction is marked ABORTED so the caller can roll it back
func (e *SeqScanExecutor) HasNext() (bool, error) {
	ok, err := e.it.HasNext()
	if err != nil {
		if errors.Is(err, errors.ErrTxnAborted) {
			txn := e.context.GetTransaction()
			common.ShPrintf(common.WARN, "SeqScanExecutor: scan of %s ended by abort of txn %d: %v\n", e.tableName, txn.GetTransactionId(), err)
			txn.SetState(access.ABORTED)
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

func (e *SeqScanExecutor) Next() (*tuple.Tuple, error) {
	t, err := e.it.Next()
	if err != nil {
		return nil, err
	}
	t.ResetSchema(e.desc)
	return t, nil
}

func (e *SeqScanExecutor) Rewind() error {
	return e.it.Rewind()
}

func (e *SeqScanExecutor) Close() {
	e.it.Close()
}
