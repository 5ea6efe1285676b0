/*
 * SCSGraph
 *
 * Copyright 2026 SCSGraph Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package gremlin contains a client for Gremlin compatible graph databases.

Wire protocol

The client talks to a Gremlin server over a websocket. Every request is sent
as a binary frame which starts with the length of the mime type, followed by
the mime type itself and the JSON encoded request message. Request and
response messages are encoded in GraphSON v2 (application/vnd.gremlin-v2.0+json).

A request result may be split into several response messages. Messages with
status 206 (partial content) are collected until a message with status 200
(success) or 204 (no content) ends the request.

Traversals

Traversals are built with a Source object and the fluent step methods of the
Traversal object. The steps are collected into a Bytecode object which is sent
to the server by one of the terminal methods (ToList, Next, HasNext, Iterate).
Anonymous traversals (used as arguments for steps like by() or coalesce())
are created with T__.

Transactions

A Transaction binds traversals to a server side session. Nothing is visible to
other connections before Commit() is called. Rollback() discards all changes.
*/
package gremlin

import (
	"errors"
	"fmt"
	"log"
	"strings"
)

/*
MimeType is the mime type of all request and response messages
*/
const MimeType = "application/vnd.gremlin-v2.0+json"

/*
Known request operations
*/
const (
	OpBytecode       = "bytecode"
	OpEval           = "eval"
	OpClose          = "close"
	OpAuthentication = "authentication"
)

/*
Known request processors
*/
const (
	ProcessorTraversal = "traversal"
	ProcessorSession   = "session"
)

/*
Known response status codes
*/
const (
	StatusSuccess                  = 200
	StatusNoContent                = 204
	StatusPartialContent           = 206
	StatusUnauthorized             = 401
	StatusForbidden                = 403
	StatusAuthenticate             = 407
	StatusRequestSerialization     = 497
	StatusMalformedRequest         = 498
	StatusInvalidRequestArguments  = 499
	StatusServerError              = 500
	StatusScriptEvaluationError    = 597
	StatusServerTimeout            = 598
	StatusServerSerializationError = 599
)

// Logging
// =======

/*
Logger is a function which processes log messages from the client
*/
type Logger func(v ...interface{})

/*
LogInfo is called if an info message is logged in the client code
*/
var LogInfo = Logger(log.Print)

/*
LogDebug is called if a debug message is logged in the client code
(by default disabled)
*/
var LogDebug = Logger(LogNull)

/*
LogNull is a discarding logger to be used for disabling loggers
*/
var LogNull = func(v ...interface{}) {
}

// Errors
// ======

/*
Error is a client related error
*/
type Error struct {
	Type   error  // Error type (to be used for equal checks)
	Detail string // Details of this error
}

/*
Error returns a human-readable string representation of this error.
*/
func (ge *Error) Error() string {
	if ge.Detail != "" {
		return fmt.Sprintf("GremlinError: %v (%v)", ge.Type, ge.Detail)
	}

	return fmt.Sprintf("GremlinError: %v", ge.Type)
}

/*
Unwrap returns the error type.
*/
func (ge *Error) Unwrap() error {
	return ge.Type
}

/*
Client related error types
*/
var (
	ErrConnecting       = errors.New("Could not connect")
	ErrNotOpen          = errors.New("WebSocket is not open")
	ErrConnectionClosed = errors.New("Connection closed")
	ErrSerialization    = errors.New("Serialization error")
	ErrProtocol         = errors.New("Protocol error")
	ErrTransaction      = errors.New("Transaction error")
	ErrNoRemote         = errors.New("Traversal has no remote connection")
)

/*
HandshakeError is returned if the server rejected the websocket handshake.
*/
type HandshakeError struct {
	StatusCode int    // HTTP status code of the handshake response
	Status     string // HTTP status line of the handshake response
}

/*
Error returns a human-readable string representation of this error.
*/
func (he *HandshakeError) Error() string {
	return fmt.Sprintf("Unexpected server response: %v", he.StatusCode)
}

/*
ResponseError is returned if the server answered a request with an error status.
*/
type ResponseError struct {
	RequestID  string   // ID of the failed request
	Code       int      // Status code of the response
	Message    string   // Status message of the response
	Exceptions []string // Exception names reported by the server
}

/*
Error returns a human-readable string representation of this error.
*/
func (re *ResponseError) Error() string {
	return fmt.Sprintf("Server error: %v (%v)", re.Message, re.Code)
}

/*
HasException checks if the server reported a given exception. The reported
exception names are checked first, the status message second.
*/
func (re *ResponseError) HasException(name string) bool {

	for _, e := range re.Exceptions {
		if e == name || strings.HasSuffix(e, "."+name) {
			return true
		}
	}

	return strings.Contains(re.Message, name)
}
