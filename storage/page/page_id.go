package page

import (
	"fmt"

	"github.com/ryogrid/HeapDB/types"
)

// PageID identifies a page of a heap file: the table (file) id and the page number inside the file
type PageID struct {
	TableID uint32
	PageNo  types.PageID
}

func NewPageID(tableID uint32, pageNo types.PageID) PageID {
	return PageID{tableID, pageNo}
}

func (id PageID) GetTableId() uint32 {
	return id.TableID
}

func (id PageID) GetPageNo() types.PageID {
	return id.PageNo
}

func (id PageID) String() string {
	return fmt.Sprintf("%d:%d", id.TableID, id.PageNo)
}
