package importer

import (
	"fmt"
)

// ErrorCode identifies an importer failure. The set is closed: every error
// surfaced to callers carries one of these codes alongside a human-readable
// message, so UI boundaries can match exhaustively.
type ErrorCode string

const (
	// Precondition errors abort the whole operation before any records run.
	CodeSecurityCheckFailed ErrorCode = "security_check_failed"
	CodeMissingData         ErrorCode = "missing_data"
	CodeNoFile              ErrorCode = "no_file"
	CodeUploadError         ErrorCode = "upload_error"
	CodeInvalidFileType     ErrorCode = "invalid_file_type"
	CodeInvalidMimeType     ErrorCode = "invalid_mime_type"
	CodeUnsupportedFileType ErrorCode = "unsupported_file_type"
	CodeInvalidPostType     ErrorCode = "invalid_post_type"
	CodeFileReadError       ErrorCode = "file_read_error"
	CodeJSONDecodeError     ErrorCode = "json_decode_error"
	CodeInvalidStructure    ErrorCode = "invalid_structure"
	CodeEmptyArray          ErrorCode = "empty_array"
	CodeInvalidItems        ErrorCode = "invalid_items"
	CodeInvalidCSVHeaders   ErrorCode = "invalid_csv_headers"
	CodeEmptyCSV            ErrorCode = "empty_csv"
	CodeExpiredData         ErrorCode = "expired_data"
	CodePostTypeMismatch    ErrorCode = "post_type_mismatch"

	// Per-item errors are isolated to a single record and never abort the batch.
	CodeMissingTitle      ErrorCode = "missing_title"
	CodeInvalidItemFormat ErrorCode = "invalid_item_format"
	CodePostInsertFailed  ErrorCode = "post_insert_failed"
)

// Error is a coded importer error. The message is safe to show to the operator.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewError builds a coded error with a formatted message.
func NewError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
