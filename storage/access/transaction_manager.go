package access

import (
	"sync"

	"github.com/ryogrid/HeapDB/common"
	"github.com/ryogrid/HeapDB/storage/buffer"
	"github.com/ryogrid/HeapDB/types"
)

/**
 * TransactionManager keeps track of all the transactions running in the system.
 */
type TransactionManager struct {
	next_txn_id types.TxnID
	bpm         *buffer.BufferPoolManager
	txn_map     map[types.TxnID]*Transaction
	mutex       *sync.Mutex
}

func NewTransactionManager(bpm *buffer.BufferPoolManager) *TransactionManager {
	return &TransactionManager{0, bpm, make(map[types.TxnID]*Transaction), new(sync.Mutex)}
}

// Begin registers txn. A new transaction is created when txn is nil.
func (transaction_manager *TransactionManager) Begin(txn *Transaction) *Transaction {
	transaction_manager.mutex.Lock()
	defer transaction_manager.mutex.Unlock()

	var txn_ret *Transaction = txn
	if txn_ret == nil {
		transaction_manager.next_txn_id += 1
		txn_ret = NewTransaction(transaction_manager.next_txn_id)
	}

	transaction_manager.txn_map[txn_ret.GetTransactionId()] = txn_ret
	return txn_ret
}

// Commit writes the pages txn dirtied back to their files and releases its locks
func (transaction_manager *TransactionManager) Commit(txn *Transaction) error {
	txn.SetState(COMMITTED)

	err := transaction_manager.bpm.FlushTxnPages(txn.GetTransactionId())
	if err != nil {
		common.ShPrintf(common.ERROR, "commit of txn %d failed to flush: %v\n", txn.GetTransactionId(), err)
	}

	transaction_manager.releaseLocks(txn)
	return err
}

// Abort drops the changes txn made to cached pages and releases its locks
func (transaction_manager *TransactionManager) Abort(txn *Transaction) error {
	txn.SetState(ABORTED)

	err := transaction_manager.bpm.DiscardDirtyPages(txn.GetTransactionId())
	if err != nil {
		common.ShPrintf(common.ERROR, "abort of txn %d failed to discard pages: %v\n", txn.GetTransactionId(), err)
	}

	transaction_manager.releaseLocks(txn)
	return err
}

func (transaction_manager *TransactionManager) releaseLocks(txn *Transaction) {
	transaction_manager.bpm.GetLockManager().ReleaseAllLocks(txn.GetTransactionId())

	transaction_manager.mutex.Lock()
	delete(transaction_manager.txn_map, txn.GetTransactionId())
	transaction_manager.mutex.Unlock()
}

// GetTransaction returns nil when txn_id is not running
func (transaction_manager *TransactionManager) GetTransaction(txn_id types.TxnID) *Transaction {
	transaction_manager.mutex.Lock()
	defer transaction_manager.mutex.Unlock()
	return transaction_manager.txn_map[txn_id]
}
