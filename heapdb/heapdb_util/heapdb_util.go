package heapdb_util

import (
	"encoding/binary"
	"fmt"
	"os"
	"strings"

	"github.com/ryogrid/HeapDB/errors"
	"github.com/ryogrid/HeapDB/storage/page"
	"github.com/ryogrid/HeapDB/storage/table/schema"
	"github.com/ryogrid/HeapDB/types"
)

func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// PackRIDtoUint64 packs page number and slot of value. the table id is not kept,
// UnpackUint64toRID takes it from the caller. page 0 slot 0 packs to 0
func PackRIDtoUint64(value *page.RID) uint64 {
	pack_buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(pack_buf[:4], uint32(value.GetPageId().GetPageNo()))
	binary.LittleEndian.PutUint32(pack_buf[4:], value.GetSlotNum())
	return binary.LittleEndian.Uint64(pack_buf)
}

func UnpackUint64toRID(tableID uint32, value uint64) page.RID {
	packed_buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(packed_buf, value)
	pageNo := types.PageID(binary.LittleEndian.Uint32(packed_buf[:4]))
	slotNum := binary.LittleEndian.Uint32(packed_buf[4:])
	return *page.NewRID(page.NewPageID(tableID, pageNo), slotNum)
}

// ParseRow converts one comma separated text line into values of schema_. Fields are trimmed.
func ParseRow(line string, schema_ *schema.Schema) ([]types.Value, error) {
	fields := strings.Split(line, ",")
	if uint32(len(fields)) != schema_.GetColumnCount() {
		return nil, fmt.Errorf("%d fields for %s: %w", len(fields), schema_, errors.ErrSchemaMismatch)
	}
	row := make([]types.Value, 0, len(fields))
	for i, field := range fields {
		colType, _ := schema_.GetFieldType(uint32(i))
		val, err := types.NewValueFromString(strings.TrimSpace(field), colType)
		if err != nil {
			return nil, fmt.Errorf("field %d: %v: %w", i, err, errors.ErrSchemaMismatch)
		}
		row = append(row, val)
	}
	return row, nil
}
