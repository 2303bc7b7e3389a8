package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError

	// Session errors
	SessionAcquireError
	SessionSwitchError
	SessionRestoreError
	SessionTxError

	// Schema errors
	SchemaExistsCheckError
	SchemaCleanError
	SchemaDropError
	SchemaDropUnsupportedError
	SchemaInventoryError

	// Clean workflow errors
	CleanDisabledError
	CleanHookError

	// Schema history errors
	HistoryQueryError
	HistoryExistsCheckError
	HistoryBaselineError

	// Callback errors
	CallbackDirError
	CallbackScriptError
)
