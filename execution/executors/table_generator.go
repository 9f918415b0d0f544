package executors

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/ryogrid/HeapDB/catalog"
	"github.com/ryogrid/HeapDB/storage/access"
	"github.com/ryogrid/HeapDB/storage/tuple"
	"github.com/ryogrid/HeapDB/types"
)

type ColumnInsertMeta struct {
	name_ string
	type_ types.TypeID
	// distribution of values
	dist_ int32
	// uniform values are in [min_, max_)
	min_ int32
	max_ int32
	// counter to generate serial data
	serial_counter_ int32
}

func NewColumnInsertMeta(name string, typeId types.TypeID, dist int32, min int32, max int32) *ColumnInsertMeta {
	return &ColumnInsertMeta{name, typeId, dist, min, max, min}
}

type TableInsertMeta struct {
	name_     string
	num_rows_ uint32
	col_meta_ []*ColumnInsertMeta
}

func NewTableInsertMeta(name string, numRows uint32, colMeta []*ColumnInsertMeta) *TableInsertMeta {
	return &TableInsertMeta{name, numRows, colMeta}
}

const DistSerial int32 = 0
const DistUniform int32 = 1

func GenNumericValues(col_meta *ColumnInsertMeta, count uint32, rng *rand.Rand) []types.Value {
	var values []types.Value
	if col_meta.dist_ == DistSerial {
		for i := 0; i < int(count); i++ {
			values = append(values, types.NewInteger(col_meta.serial_counter_))
			col_meta.serial_counter_ += 1
		}
		return values
	}

	for i := 0; i < int(count); i++ {
		values = append(values, types.NewInteger(col_meta.min_+rng.Int31n(col_meta.max_-col_meta.min_)))
	}
	return values
}

// GenVarcharValues renders the numeric values of col_meta as "<column name>_<n>"
func GenVarcharValues(col_meta *ColumnInsertMeta, count uint32, rng *rand.Rand) []types.Value {
	var values []types.Value
	for _, num := range GenNumericValues(col_meta, count, rng) {
		values = append(values, types.NewVarchar(fmt.Sprintf("%s_%d", col_meta.name_, num.ToInteger())))
	}
	return values
}

func MakeValues(col_meta *ColumnInsertMeta, count uint32, rng *rand.Rand) []types.Value {
	switch col_meta.type_ {
	case types.Integer:
		return GenNumericValues(col_meta, count, rng)
	case types.Varchar:
		return GenVarcharValues(col_meta, count, rng)
	default:
		panic("Not yet implemented")
	}
}

// FillTable inserts table_meta.num_rows_ generated rows into info. seed fixes the uniform values.
func FillTable(info *catalog.TableMetadata, table_meta *TableInsertMeta, txn *access.Transaction, seed int64) error {
	rng := rand.New(rand.NewSource(seed))
	var num_inserted uint32 = 0
	var batch_size uint32 = 128
	for num_inserted < table_meta.num_rows_ {
		var values [][]types.Value
		var num_values = uint32(math.Min(float64(batch_size), float64(table_meta.num_rows_-num_inserted)))
		for _, col_meta := range table_meta.col_meta_ {
			values = append(values, MakeValues(col_meta, num_values, rng))
		}

		for i := 0; i < int(num_values); i++ {
			var entry []types.Value
			for idx := range table_meta.col_meta_ {
				entry = append(entry, values[idx][i])
			}
			_, err := info.Table().InsertTuple(txn, tuple.NewTupleFromSchema(entry, info.Schema()))
			if err != nil {
				return fmt.Errorf("FillTable %s: row %d: %w", table_meta.name_, num_inserted, err)
			}
			num_inserted++
		}
	}
	return nil
}

// ColumnInsertMetasFor builds serial column metas for every field of info
func ColumnInsertMetasFor(info *catalog.TableMetadata) []*ColumnInsertMeta {
	ret := make([]*ColumnInsertMeta, 0)
	sc := info.Schema()
	for i := uint32(0); i < sc.GetColumnCount(); i++ {
		col := sc.GetColumn(i)
		ret = append(ret, NewColumnInsertMeta(col.GetColumnName(), col.GetType(), DistSerial, 0, 0))
	}
	return ret
}
