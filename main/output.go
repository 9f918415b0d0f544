package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/ugorji/go/codec"

	"github.com/ryogrid/HeapDB/heapdb"
	"github.com/ryogrid/HeapDB/heapdb/heapdb_util"
	"github.com/ryogrid/HeapDB/storage/table/schema"
	"github.com/ryogrid/HeapDB/storage/tuple"
	"github.com/ryogrid/HeapDB/types"
)

// Field is one named value of a Row. Names may repeat within a row.
type Field struct {
	Name  string      `codec:"name"`
	Value interface{} `codec:"value"`
}

// Row is the encoded form of a scanned tuple. Rid is absent for tuples that are not stored in a file.
type Row struct {
	Rid    *uint64 `codec:"rid,omitempty"`
	Fields []Field `codec:"fields"`
}

func jsonHandle() codec.Handle {
	h := new(codec.JsonHandle)
	h.Canonical = true
	h.Indent = 2
	return h
}

func msgpackHandle() codec.Handle {
	h := new(codec.MsgpackHandle)
	h.Canonical = true
	return h
}

func toRows(desc *schema.Schema, result []*tuple.Tuple) []Row {
	names := desc.GetNames()
	rows := make([]Row, 0, len(result))
	for i, vals := range heapdb.ConvTupleListToValues(desc, result) {
		row := Row{Fields: make([]Field, len(vals))}
		if rid := result[i].GetRID(); rid != nil {
			packed := heapdb_util.PackRIDtoUint64(rid)
			row.Rid = &packed
		}
		for j, val := range vals {
			row.Fields[j].Name = names[j]
			if val == nil {
				continue
			}
			switch val.ValueType() {
			case types.Integer:
				row.Fields[j].Value = val.ToInteger()
			default:
				row.Fields[j].Value = val.ToVarchar()
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func writeRowsEncoded(w io.Writer, desc *schema.Schema, result []*tuple.Tuple, h codec.Handle) error {
	enc := codec.NewEncoder(w, h)
	if err := enc.Encode(toRows(desc, result)); err != nil {
		return err
	}
	if _, ok := h.(*codec.JsonHandle); ok {
		_, err := fmt.Fprintln(w)
		return err
	}
	return nil
}

// writeRowsText prints a header of field names, then one tab separated line per tuple
func writeRowsText(w io.Writer, desc *schema.Schema, result []*tuple.Tuple) error {
	if _, err := fmt.Fprintln(w, strings.Join(desc.GetNames(), "\t")); err != nil {
		return err
	}
	for _, t := range result {
		if _, err := io.WriteString(w, t.String()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "(%d rows)\n", len(result))
	return err
}

func writeTables(w io.Writer, tables []*tuple.Tuple) error {
	for _, t := range tables {
		pkey := t.GetValue(2).ToVarchar()
		if pkey != "" {
			pkey = " pk=" + pkey
		}
		if _, err := fmt.Fprintf(w, "%s\t%s%s\n", t.GetValue(1).ToVarchar(), t.GetValue(3).ToVarchar(), pkey); err != nil {
			return err
		}
	}
	return nil
}
