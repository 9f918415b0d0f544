package access

import (
	"github.com/ryogrid/HeapDB/common"
	"github.com/ryogrid/HeapDB/types"
)

/**
 * Transaction states:
 *
 * GROWING -> COMMITTED
 *    |
 *    +-----> ABORTED
 *
 **/

type TransactionState int32

const (
	GROWING TransactionState = iota
	COMMITTED
	ABORTED
)

func (s TransactionState) String() string {
	switch s {
	case GROWING:
		return "GROWING"
	case COMMITTED:
		return "COMMITTED"
	}
	return "ABORTED"
}

/**
 * Transaction tracks information related to a transaction.
 */
type Transaction struct {
	/** The current transaction state. */
	state TransactionState
	/** The id of this transaction. */
	txn_id types.TxnID
}

func NewTransaction(txn_id types.TxnID) *Transaction {
	return &Transaction{GROWING, txn_id}
}

/** @return the id of this transaction */
func (txn *Transaction) GetTransactionId() types.TxnID { return txn.txn_id }

/** @return the current state of the transaction */
func (txn *Transaction) GetState() TransactionState { return txn.state }

/**
* Set the state of the transaction.
* @param state new state
 */
func (txn *Transaction) SetState(state TransactionState) {
	if common.EnableDebug {
		if state == ABORTED {
			common.ShPrintf(common.RDB_OP_FUNC_CALL, "Transaction::SetState called. txn.txn_id:%d state:ABORTED\n", txn.txn_id)
		}
	}
	txn.state = state
}
