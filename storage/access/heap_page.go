package access

import (
	"fmt"

	"github.com/ryogrid/HeapDB/common"
	"github.com/ryogrid/HeapDB/errors"
	"github.com/ryogrid/HeapDB/storage/page"
	"github.com/ryogrid/HeapDB/storage/table/schema"
	"github.com/ryogrid/HeapDB/storage/tuple"
)

/**
 * Heap page format:
 * ----------------------------------------------------------
 * | HEADER (occupancy bitmap) | SLOT 0 | SLOT 1 | ... | SLOT n-1 |
 * ----------------------------------------------------------
 * every slot holds one fixed width tuple of the file schema.
 * bit (i % 8) of header byte (i / 8) is set when slot i is used.
 */
type HeapPage struct {
	pid      page.PageID
	schema   *schema.Schema
	header   []byte
	tuples   []*tuple.Tuple
	numSlots uint32
}

// NumSlotsOf returns how many tuples of schema_ fit on one page
func NumSlotsOf(schema_ *schema.Schema) uint32 {
	return (common.PageSize * 8) / (schema_.Length()*8 + 1)
}

func headerSizeOf(numSlots uint32) uint32 {
	return (numSlots + 7) / 8
}

// NewEmptyHeapPageData returns the bytes of a page with no used slot
func NewEmptyHeapPageData() []byte {
	return make([]byte, common.PageSize)
}

// NewHeapPage decodes data read from page pid of a file with schema_
func NewHeapPage(pid page.PageID, data []byte, schema_ *schema.Schema) (*HeapPage, error) {
	common.SH_Assert(len(data) == common.PageSize, "heap page data must be one page")

	numSlots := NumSlotsOf(schema_)
	headerSize := headerSizeOf(numSlots)
	hp := &HeapPage{pid, schema_, make([]byte, headerSize), make([]*tuple.Tuple, numSlots), numSlots}
	copy(hp.header, data[:headerSize])

	tupleSize := schema_.Length()
	for slot := uint32(0); slot < numSlots; slot++ {
		if !hp.IsSlotUsed(slot) {
			continue
		}
		offset := headerSize + slot*tupleSize
		tuple_, err := tuple.DeserializeFrom(data[offset:offset+tupleSize], schema_)
		if err != nil {
			return nil, fmt.Errorf("page %s slot %d: %w", pid, slot, err)
		}
		tuple_.SetRID(page.NewRID(pid, slot))
		hp.tuples[slot] = tuple_
	}
	return hp, nil
}

func (hp *HeapPage) GetPageId() page.PageID {
	return hp.pid
}

// GetPageData encodes the page. unused slots are zero filled
func (hp *HeapPage) GetPageData() ([]byte, error) {
	data := make([]byte, common.PageSize)
	headerSize := uint32(len(hp.header))
	copy(data, hp.header)

	tupleSize := hp.schema.Length()
	for slot, tuple_ := range hp.tuples {
		if tuple_ == nil {
			continue
		}
		offset := headerSize + uint32(slot)*tupleSize
		if err := tuple_.SerializeTo(data[offset : offset+tupleSize]); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func (hp *HeapPage) GetNumSlots() uint32 {
	return hp.numSlots
}

func (hp *HeapPage) GetNumEmptySlots() uint32 {
	ret := uint32(0)
	for slot := uint32(0); slot < hp.numSlots; slot++ {
		if !hp.IsSlotUsed(slot) {
			ret++
		}
	}
	return ret
}

func (hp *HeapPage) IsSlotUsed(slot uint32) bool {
	if slot >= hp.numSlots {
		return false
	}
	return hp.header[slot/8]&(1<<(slot%8)) != 0
}

func (hp *HeapPage) markSlotUsed(slot uint32, used bool) {
	if used {
		hp.header[slot/8] |= 1 << (slot % 8)
	} else {
		hp.header[slot/8] &^= 1 << (slot % 8)
	}
}

// InsertTuple places tuple_ in the first empty slot and sets its RID
func (hp *HeapPage) InsertTuple(tuple_ *tuple.Tuple) error {
	if !hp.schema.Equals(tuple_.GetSchema()) {
		return fmt.Errorf("insert of %s into %s: %w", tuple_.GetSchema(), hp.schema, errors.ErrSchemaMismatch)
	}
	for slot := uint32(0); slot < hp.numSlots; slot++ {
		if hp.IsSlotUsed(slot) {
			continue
		}
		// rejects unset or mistyped fields before the slot is taken
		if err := tuple_.SerializeTo(make([]byte, hp.schema.Length())); err != nil {
			return err
		}
		hp.markSlotUsed(slot, true)
		hp.tuples[slot] = tuple_
		tuple_.SetRID(page.NewRID(hp.pid, slot))
		return nil
	}
	return fmt.Errorf("page %s: %w", hp.pid, errors.ErrPageFull)
}

// DeleteTuple frees the slot tuple_ occupies on this page
func (hp *HeapPage) DeleteTuple(tuple_ *tuple.Tuple) error {
	rid := tuple_.GetRID()
	if rid == nil || rid.GetPageId() != hp.pid || !hp.IsSlotUsed(rid.GetSlotNum()) {
		return fmt.Errorf("tuple is not on page %s: %w", hp.pid, errors.ErrNotFound)
	}
	hp.markSlotUsed(rid.GetSlotNum(), false)
	hp.tuples[rid.GetSlotNum()] = nil
	tuple_.SetRID(nil)
	return nil
}

// Iterator returns the tuples in used slots in increasing slot order
func (hp *HeapPage) Iterator() *HeapPageIterator {
	return &HeapPageIterator{hp, 0}
}

// HeapPageIterator must not be used after the page it was derived from is modified
type HeapPageIterator struct {
	hp   *HeapPage
	slot uint32
}

func (it *HeapPageIterator) HasNext() bool {
	for it.slot < it.hp.numSlots && !it.hp.IsSlotUsed(it.slot) {
		it.slot++
	}
	return it.slot < it.hp.numSlots
}

func (it *HeapPageIterator) Next() (*tuple.Tuple, error) {
	if !it.HasNext() {
		return nil, errors.ErrNoSuchElement
	}
	ret := it.hp.tuples[it.slot]
	it.slot++
	return ret, nil
}
