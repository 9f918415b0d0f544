// this code is from https://github.com/pzhzqt/goostub
// there is license and copyright notice in licenses/goostub dir

package common

import (
	"time"
)

// prints RDB_OP_FUNC_CALL traces and dumps goroutine stacks on lock wait abort
var EnableDebug bool = false

// bit mask of LogLevel values printed by ShPrintf
var LogLevelSetting = INFO | WARN | ERROR | FATAL

const (
	// invalid page number
	InvalidPageID                = -1
	// invalid transaction id
	InvalidTxnID                 = -1
	// size of a data page in byte
	PageSize                     = 4096
	// number of frames of buffer pool when not specified
	DefaultBufferPoolSize        = 50
	// frame num of buffer pool used by tests
	BufferPoolMaxFrameNumForTest = 32
	// fixed byte width of a string field (length prefix included)
	StringFieldSize              = 128
	// max payload length of a string field
	StringMaxLength              = StringFieldSize - 4
)

// how long a transaction waits for a page lock before it is aborted
var LockWaitTimeout = 500 * time.Millisecond

// interval of lock grant retry while waiting
var LockWaitPollInterval = 2 * time.Millisecond
