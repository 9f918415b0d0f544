package heapdb

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ryogrid/HeapDB/common"
	"github.com/ryogrid/HeapDB/errors"
	"github.com/ryogrid/HeapDB/execution/executors"
	"github.com/ryogrid/HeapDB/execution/expression"
	"github.com/ryogrid/HeapDB/execution/plans"
	"github.com/ryogrid/HeapDB/heapdb/heapdb_util"
	"github.com/ryogrid/HeapDB/storage/access"
	"github.com/ryogrid/HeapDB/storage/table/schema"
	"github.com/ryogrid/HeapDB/storage/tuple"
	"github.com/ryogrid/HeapDB/types"
)

type HeapDB struct {
	hi_          *HeapDBInstance
	exec_engine_ *executors.ExecutionEngine
}

// NewHeapDB opens the tables of catalogFile. bpoolPages is the buffer pool size in pages.
func NewHeapDB(catalogFile string, bpoolPages int) (*HeapDB, error) {
	if !heapdb_util.FileExists(catalogFile) {
		return nil, fmt.Errorf("catalog file %s: %w", catalogFile, errors.ErrNotFound)
	}
	hi := NewHeapDBInstance(bpoolPages)
	if _, err := hi.LoadSchema(catalogFile); err != nil {
		hi.Shutdown(false)
		return nil, err
	}
	return NewHeapDBFromInstance(hi), nil
}

func NewHeapDBFromInstance(hi *HeapDBInstance) *HeapDB {
	return &HeapDB{hi, &executors.ExecutionEngine{}}
}

func (hdb *HeapDB) GetInstance() *HeapDBInstance {
	return hdb.hi_
}

// ExecutePlan runs plan in its own transaction. The transaction commits unless execution failed
// or a lock wait aborted it.
func (hdb *HeapDB) ExecutePlan(plan plans.Plan) ([]*tuple.Tuple, error) {
	txnMgr := hdb.hi_.GetTransactionManager()
	txn := txnMgr.Begin(nil)

	context := executors.NewExecutorContext(hdb.hi_.GetCatalog(), hdb.hi_.GetBufferPoolManager(), txn)
	result, err := hdb.exec_engine_.Execute(plan, context)

	if err == nil && txn.GetState() == access.ABORTED {
		err = fmt.Errorf("txn %d: %w", txn.GetTransactionId(), errors.ErrTxnAborted)
	}
	if err != nil {
		if abortErr := txnMgr.Abort(txn); abortErr != nil {
			common.ShPrintf(common.ERROR, "abort of txn %d failed: %v\n", txn.GetTransactionId(), abortErr)
		}
		return nil, err
	}
	if err = txnMgr.Commit(txn); err != nil {
		return nil, err
	}
	return result, nil
}

func (hdb *HeapDB) tableOID(tableName string) (uint32, error) {
	return hdb.hi_.GetCatalog().GetTableId(tableName)
}

// Scan returns every tuple of tableName matching where, and their tuple desc.
// An empty alias means the table name, an empty where matches everything.
func (hdb *HeapDB) Scan(tableName string, alias string, where string) ([]*tuple.Tuple, *schema.Schema, error) {
	oid, err := hdb.tableOID(tableName)
	if err != nil {
		return nil, nil, err
	}
	if alias == "" {
		alias = tableName
	}
	fileDesc, err := hdb.hi_.GetCatalog().GetTupleDesc(oid)
	if err != nil {
		return nil, nil, err
	}
	desc := executors.AliasedTupleDesc(fileDesc, alias)

	plan := plans.NewSeqScanPlanNode(oid, alias)
	if where != "" {
		pred, err := expression.ParsePredicate(desc, where)
		if err != nil {
			return nil, nil, err
		}
		plan = plans.NewFilterPlanNode(plan, pred)
	}
	result, err := hdb.ExecutePlan(plan)
	if err != nil {
		return nil, nil, err
	}
	return result, desc, nil
}

// LoadRows inserts one tuple per comma separated line of r into tableName, all in one transaction.
// Blank lines are skipped.
func (hdb *HeapDB) LoadRows(tableName string, r io.Reader) (int32, error) {
	oid, err := hdb.tableOID(tableName)
	if err != nil {
		return 0, err
	}
	desc, err := hdb.hi_.GetCatalog().GetTupleDesc(oid)
	if err != nil {
		return 0, err
	}

	rows := make([][]types.Value, 0)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		row, err := heapdb_util.ParseRow(line, desc)
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", lineNo, err)
		}
		rows = append(rows, row)
	}
	if err = scanner.Err(); err != nil {
		return 0, err
	}

	result, err := hdb.ExecutePlan(plans.NewInsertPlanNode(rows, oid))
	if err != nil {
		return 0, err
	}
	return result[0].GetValue(0).ToInteger(), nil
}

// Generate inserts numRows generated rows into tableName: serial values for the first field,
// uniform values in [0, 1000) for the others.
func (hdb *HeapDB) Generate(tableName string, numRows uint32, seed int64) error {
	info := hdb.hi_.GetCatalog().GetTableByName(tableName)
	if info == nil {
		return fmt.Errorf("table %s: %w", tableName, errors.ErrNotFound)
	}
	colMeta := executors.ColumnInsertMetasFor(info)
	for i, sc := 1, info.Schema(); i < len(colMeta); i++ {
		col := sc.GetColumn(uint32(i))
		colMeta[i] = executors.NewColumnInsertMeta(col.GetColumnName(), col.GetType(), executors.DistUniform, 0, 1000)
	}

	txnMgr := hdb.hi_.GetTransactionManager()
	txn := txnMgr.Begin(nil)
	if err := executors.FillTable(info, executors.NewTableInsertMeta(tableName, numRows, colMeta), txn, seed); err != nil {
		txnMgr.Abort(txn)
		return err
	}
	return txnMgr.Commit(txn)
}

// Tables lists the registered tables, rows follow catalog.TableCatalogSchema
func (hdb *HeapDB) Tables() []*tuple.Tuple {
	return hdb.hi_.GetCatalog().ListTables()
}

func (hdb *HeapDB) Shutdown() error {
	return hdb.hi_.Shutdown(false)
}

func ConvTupleListToValues(schema_ *schema.Schema, result []*tuple.Tuple) [][]*types.Value {
	retVals := make([][]*types.Value, 0)
	for _, tuple_ := range result {
		rowVals := make([]*types.Value, 0)
		colNum := int(schema_.GetColumnCount())
		for idx := 0; idx < colNum; idx++ {
			rowVals = append(rowVals, tuple_.GetValue(uint32(idx)))
		}
		retVals = append(retVals, rowVals)
	}
	return retVals
}
