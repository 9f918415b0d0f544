package concurrency

// Permissions is the access mode a transaction requests when it fetches a page
type Permissions int32

const (
	READ_ONLY Permissions = iota
	READ_WRITE
)

func (p Permissions) String() string {
	if p == READ_WRITE {
		return "READ_WRITE"
	}
	return "READ_ONLY"
}
