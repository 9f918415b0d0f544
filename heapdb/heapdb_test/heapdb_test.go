package heapdb_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ryogrid/HeapDB/common"
	"github.com/ryogrid/HeapDB/errors"
	"github.com/ryogrid/HeapDB/heapdb"
	"github.com/ryogrid/HeapDB/storage/tuple"
	testingpkg "github.com/ryogrid/HeapDB/testing/testing_assert"
	"github.com/ryogrid/HeapDB/testing/testing_util"
)

func writeCatalog(t *testing.T, lines ...string) string {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.txt")
	testingpkg.Ok(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))
	return path
}

func TestLoadScanAndReopen(t *testing.T) {
	catalogFile := writeCatalog(t, "name_age_list(name string, age int pk)", "", "empty(a int)")

	db, err := heapdb.NewHeapDB(catalogFile, 64)
	testingpkg.Ok(t, err)

	count, err := db.LoadRows("name_age_list", strings.NewReader("suzuki, 20\naoki,22\n\nyamada,25\nkato,18\nkimura,18\n"))
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, int32(5), count)

	result, desc, err := db.Scan("name_age_list", "", "age > 19")
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, []string{"name_age_list.name", "name_age_list.age"}, desc.GetNames())
	testingpkg.Equals(t, 3, len(result))
	testingpkg.Equals(t, "suzuki", result[0].GetValue(0).ToVarchar())

	result, _, err = db.Scan("name_age_list", "n", `(n.age = 18 OR age > 21) AND n.age < 25`)
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 3, len(result))

	tables := db.Tables()
	testingpkg.Equals(t, 2, len(tables))
	testingpkg.Equals(t, "empty", tables[0].GetValue(1).ToVarchar())
	testingpkg.Equals(t, "age", tables[1].GetValue(2).ToVarchar())
	testingpkg.Ok(t, db.Shutdown())

	// committed rows are on disk
	db, err = heapdb.NewHeapDB(catalogFile, 8)
	testingpkg.Ok(t, err)
	result, desc, err = db.Scan("name_age_list", "", "")
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 5, len(result))
	values := heapdb.ConvTupleListToValues(desc, result)
	testingpkg.Equals(t, "kimura", values[4][0].ToVarchar())
	testingpkg.Equals(t, int32(18), values[4][1].ToInteger())

	result, _, err = db.Scan("empty", "", "")
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 0, len(result))
	testingpkg.Ok(t, db.Shutdown())
}

func TestLoadRowsRejectsBadLine(t *testing.T) {
	catalogFile := writeCatalog(t, "t(a int, b int)")
	db, err := heapdb.NewHeapDB(catalogFile, 16)
	testingpkg.Ok(t, err)
	defer db.Shutdown()

	_, err = db.LoadRows("t", strings.NewReader("1,2\n3\n"))
	testingpkg.Assert(t, errors.Is(err, errors.ErrSchemaMismatch), "short row must fail, got %v", err)
	_, err = db.LoadRows("t", strings.NewReader("1,x\n"))
	testingpkg.Assert(t, errors.Is(err, errors.ErrSchemaMismatch), "bad int must fail, got %v", err)
	_, err = db.LoadRows("nothing", strings.NewReader("1,2\n"))
	testingpkg.Assert(t, errors.Is(err, errors.ErrNotFound), "unknown table, got %v", err)

	// nothing was inserted by the failed loads
	result, _, err := db.Scan("t", "", "")
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 0, len(result))
}

func TestNewHeapDBErrors(t *testing.T) {
	_, err := heapdb.NewHeapDB(filepath.Join(t.TempDir(), "missing.txt"), 16)
	testingpkg.Assert(t, errors.Is(err, errors.ErrNotFound), "missing catalog, got %v", err)

	_, err = heapdb.NewHeapDB(writeCatalog(t, "t(a float)"), 16)
	testingpkg.Assert(t, errors.Is(err, errors.ErrInvalidCatalogEntry), "bad type, got %v", err)
}

func TestInMemoryTableAndGenerate(t *testing.T) {
	hi := heapdb.NewHeapDBInstanceForTesting()
	sc := testing_util.MakeSchema([]string{"id", "label"}, 0, "")
	info, err := hi.CreateTable("gen", sc, "")
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, "gen", info.Name())

	db := heapdb.NewHeapDBFromInstance(hi)
	testingpkg.Ok(t, db.Generate("gen", 40, 7))

	result, _, err := db.Scan("gen", "g", "g.id > 35")
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 4, len(result))
	testingpkg.Assert(t, strings.HasPrefix(result[0].GetValue(1).ToVarchar(), "label_"), "generated label")

	testingpkg.Assert(t, errors.Is(db.Generate("none", 1, 0), errors.ErrNotFound), "unknown table")
	testingpkg.Ok(t, hi.Shutdown(true))
	testingpkg.Equals(t, 0, len(db.Tables()))
}

func TestExecutePlanReportsAbort(t *testing.T) {
	saved := common.LockWaitTimeout
	common.LockWaitTimeout = 20 * time.Millisecond
	defer func() { common.LockWaitTimeout = saved }()

	hi := heapdb.NewHeapDBInstanceForTesting()
	sc := testing_util.MakeSchema([]string{"a"}, 0)
	info, err := hi.CreateTable("locked", sc, "")
	testingpkg.Ok(t, err)
	db := heapdb.NewHeapDBFromInstance(hi)

	writer := hi.GetTransactionManager().Begin(nil)
	_, err = info.Table().InsertTuple(writer, tuple.NewTupleFromSchema(testing_util.MakeRow(1), sc))
	testingpkg.Ok(t, err)

	_, _, err = db.Scan("locked", "", "")
	testingpkg.Assert(t, errors.Is(err, errors.ErrTxnAborted), "scan blocked by writer must abort, got %v", err)

	testingpkg.Ok(t, hi.GetTransactionManager().Commit(writer))
	result, _, err := db.Scan("locked", "", "")
	testingpkg.Ok(t, err)
	testingpkg.Equals(t, 1, len(result))
	testingpkg.Ok(t, hi.Shutdown(false))
}

func TestCreateAnonymousTable(t *testing.T) {
	hi := heapdb.NewHeapDBInstanceForTesting()
	sc := testing_util.MakeSchema([]string{"a"}, 0)
	first, err := hi.CreateTable("", sc, "")
	testingpkg.Ok(t, err)
	second, err := hi.CreateTable("", sc, "")
	testingpkg.Ok(t, err)
	testingpkg.Assert(t, first.Name() != "" && first.Name() != second.Name(), "generated names are unique")
	testingpkg.Assert(t, first.OID() != second.OID(), "in memory files are distinct")
	testingpkg.Equals(t, 2, len(heapdb.NewHeapDBFromInstance(hi).Tables()))
}
