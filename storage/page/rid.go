// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package page

// RID is the record identifier for the given page identifier and slot number
type RID struct {
	PageId  PageID
	SlotNum uint32
}

func NewRID(pageId PageID, slot uint32) *RID {
	return &RID{pageId, slot}
}

// Set sets the recod identifier
func (r *RID) Set(pageId PageID, slot uint32) {
	r.PageId = pageId
	r.SlotNum = slot
}

// GetPageId gets the page id
func (r *RID) GetPageId() PageID {
	return r.PageId
}

// GetSlotNum gets the slot number
func (r *RID) GetSlotNum() uint32 {
	return r.SlotNum
}
