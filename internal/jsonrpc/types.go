package jsonrpc

import "encoding/json"

// Version is the only protocol version the server accepts.
const Version = "2.0"

// Request is a JSON-RPC 2.0 request. A request with no "id" member is a
// notification; an explicit null id decodes to the literal null and is not.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
}

// Notification reports whether the caller expects no response.
func (r *Request) Notification() bool {
	return r.ID == nil
}

// Response is a JSON-RPC 2.0 response. Result holds the already encoded
// method result so that encoding failures surface as errors, not as a
// half-written line.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
	ID      json.RawMessage `json:"id"`
}

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// Protocol error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Scoring error codes. Clients can tell a request they must fix
// (CodeInvalidInput) from one worth retrying later (CodeScorerUnavailable,
// CodeCanceled).
const (
	CodeInvalidInput      = -32001
	CodeScorerUnavailable = -32002
	CodeScoringFailed     = -32003
	CodeCanceled          = -32004
)

var messages = map[int]string{
	CodeParseError:        "Parse error",
	CodeInvalidRequest:    "Invalid request",
	CodeMethodNotFound:    "Method not found",
	CodeInvalidParams:     "Invalid params",
	CodeInternalError:     "Internal error",
	CodeInvalidInput:      "Invalid input",
	CodeScorerUnavailable: "Scorer unavailable",
	CodeScoringFailed:     "Scoring failed",
	CodeCanceled:          "Request canceled",
}

func newError(code int, data any) *Error {
	return &Error{Code: code, Message: messages[code], Data: data}
}

func ErrParseError(data any) *Error { return newError(CodeParseError, data) }
func ErrInvalidRequest(data any) *Error { return newError(CodeInvalidRequest, data) }
func ErrMethodNotFound(method string) *Error { return newError(CodeMethodNotFound, method) }
func ErrInvalidParams(data any) *Error { return newError(CodeInvalidParams, data) }
func ErrInternalError(data any) *Error { return newError(CodeInternalError, data) }
func ErrScorerUnavailable(data any) *Error { return newError(CodeScorerUnavailable, data) }
func ErrScoringFailed(data any) *Error { return newError(CodeScoringFailed, data) }
func ErrCanceled(data any) *Error { return newError(CodeCanceled, data) }

// InvalidInputData is the error data of a CodeInvalidInput error.
type InvalidInputData struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func ErrInvalidInput(field, reason string) *Error {
	return newError(CodeInvalidInput, InvalidInputData{Field: field, Reason: reason})
}
