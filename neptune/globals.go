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
Package neptune contains the connection layer to a Neptune (or any other
Gremlin compatible) graph database.

Connection resolver

A ConnectionResolver produces the URL and the handshake headers for a
connection. With IAM authentication the headers are signed with AWS SigV4
(service neptune-db). Credentials are resolved through the AWS default
credential chain and cached until a refresh is requested.

Session

A Session owns a single Gremlin client and at most one open transaction. The
connection is opened lazily on first use and can be reopened after a failure.

Executor

The Executor runs query functions against traversal sources of a Session. A
failed attempt is classified and then either retried (possibly after
reconnecting or refreshing the credentials) or reported to the caller.
*/
package neptune

import (
	"errors"
	"fmt"
	"log"
)

/*
Logger is a function which processes log messages
*/
type Logger func(v ...interface{})

/*
LogInfo is called if an info message is logged
*/
var LogInfo = Logger(log.Print)

/*
LogDebug is called if a debug message is logged
(by default disabled)
*/
var LogDebug = Logger(LogNull)

/*
LogNull is a discarding logger to be used for disabling loggers
*/
var LogNull = func(v ...interface{}) {
}

/*
MetricsHeaderKey is the header which carries the solution id
*/
const MetricsHeaderKey = "x-amz-user-agent"

/*
Error is a connection layer related error
*/
type Error struct {
	Type   error  // Error type (to be used for equal checks)
	Detail string // Details of this error
}

/*
Error returns a human-readable string representation of this error.
*/
func (ne *Error) Error() string {
	if ne.Detail != "" {
		return fmt.Sprintf("NeptuneError: %v (%v)", ne.Type, ne.Detail)
	}

	return fmt.Sprintf("NeptuneError: %v", ne.Type)
}

/*
Unwrap returns the error type.
*/
func (ne *Error) Unwrap() error {
	return ne.Type
}

/*
Connection layer related error types
*/
var (
	ErrConfig      = errors.New("Invalid configuration")
	ErrCredentials = errors.New("Could not resolve credentials")
	ErrSession     = errors.New("Session error")
)
