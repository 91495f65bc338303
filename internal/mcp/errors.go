package mcp

import "errors"

// JSON-RPC error codes
const (
	ErrCodeParseError     = -32700
	ErrCodeInvalidRequest = -32600
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternalError  = -32603
)

// Error message constants
const (
	ErrMsgParseError     = "Parse error"
	ErrMsgInvalidRequest = "Invalid Request"
	ErrMsgMethodNotFound = "Method not found"
	ErrMsgInvalidParams  = "Invalid params"
	ErrMsgInternalError  = "Internal error"
)

// Lifecycle errors returned by handlers when a request arrives in the
// wrong protocol state
var (
	errNotInitialized     = errors.New("server not initialized")
	errAlreadyInitialized = errors.New("server already initialized")
)

// errorResponseFor classifies a handler error into a JSON-RPC error
// response. Lifecycle violations are Invalid Request; everything else a
// handler rejects is a parameter problem.
func errorResponseFor(err error, id interface{}) JSONRPCErrorResponse {
	if errors.Is(err, errNotInitialized) || errors.Is(err, errAlreadyInitialized) {
		return createErrorResponse(ErrCodeInvalidRequest, ErrMsgInvalidRequest, err.Error(), id)
	}
	return createErrorResponse(ErrCodeInvalidParams, ErrMsgInvalidParams, err.Error(), id)
}
