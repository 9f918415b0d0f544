// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package types

// TxnID is the type of the transaction identifier
type TxnID int32

const InvalidTxnID = TxnID(-1)
