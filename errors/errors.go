package errors

import goerrors "errors"

// Error is a constant error type so sentinels can be declared with const.
type Error string

func (e Error) Error() string {
	return string(e)
}

const ErrNotFound = Error("not found")
const ErrNoSuchElement = Error("no such element")
const ErrTxnAborted = Error("transaction aborted")
const ErrFieldIndexOutOfRange = Error("field index out of range")
const ErrPageFull = Error("page has no empty slot")
const ErrSchemaMismatch = Error("tuple schema does not match the file schema")
const ErrIncompleteTuple = Error("tuple has unset fields")
const ErrNoFreeFrame = Error("no free frame in buffer pool")
const ErrPastEndOfFile = Error("I/O error past end of file")
const ErrInvalidCatalogEntry = Error("invalid catalog entry")
const ErrUnknownTable = Error("unknown table in page id")
const ErrInvalidPredicate = Error("invalid predicate")

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return goerrors.Is(err, target)
}
