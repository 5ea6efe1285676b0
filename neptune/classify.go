/*
 * SCSGraph
 *
 * Copyright 2026 SCSGraph Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package neptune

import (
	"errors"
	"strings"

	"devt.de/krotik/scsgraph/gremlin"
)

/*
Class is the category of a failed query attempt.
*/
type Class int

/*
Known failure classes
*/
const (
	ClassNone Class = iota
	ClassAuthExpired
	ClassConnection
	ClassConcurrentModification
	ClassReadOnly
	ClassConfig
	ClassUnrecoverable
)

/*
String returns a string representation of this class.
*/
func (c Class) String() string {
	switch c {
	case ClassNone:
		return "none"
	case ClassAuthExpired:
		return "auth_expired"
	case ClassConnection:
		return "connection"
	case ClassConcurrentModification:
		return "concurrent_modification"
	case ClassReadOnly:
		return "read_only"
	case ClassConfig:
		return "config"
	}
	return "unrecoverable"
}

/*
Action is the reaction to a failed query attempt.
*/
type Action int

/*
Known actions
*/
const (
	ActionFail               Action = iota // Report the error to the caller
	ActionRetry                            // Run the query again
	ActionReopen                           // Reconnect and run the query again
	ActionRefreshCredentials               // Refresh the credentials, reconnect and run the query again
)

/*
String returns a string representation of this action.
*/
func (a Action) String() string {
	switch a {
	case ActionRetry:
		return "retry"
	case ActionReopen:
		return "reopen"
	case ActionRefreshCredentials:
		return "refresh_credentials"
	}
	return "fail"
}

/*
Decision is the outcome of classifying a failed query attempt.
*/
type Decision struct {
	Class  Class
	Action Action
}

/*
Exception names which Neptune reports for recoverable conflicts
*/
const (
	ExceptionConcurrentModification = "ConcurrentModificationException"
	ExceptionReadOnlyViolation      = "ReadOnlyViolationException"
)

/*
Classify determines the class of an error. Structured error information is
checked first; the error message is used as a fallback.
*/
func Classify(err error) Class {

	if err == nil {
		return ClassNone
	}

	var ne *Error
	var he *gremlin.HandshakeError
	var re *gremlin.ResponseError

	if errors.As(err, &ne) {
		if ne.Type == ErrSession {
			return ClassConnection
		}
		return ClassConfig
	}

	if errors.As(err, &he) {
		if he.StatusCode == 401 || he.StatusCode == 403 {
			return ClassAuthExpired
		}
		return ClassUnrecoverable
	}

	if errors.As(err, &re) {
		switch {
		case re.Code == gremlin.StatusUnauthorized || re.Code == gremlin.StatusAuthenticate:
			return ClassAuthExpired
		case re.HasException(ExceptionConcurrentModification):
			return ClassConcurrentModification
		case re.HasException(ExceptionReadOnlyViolation):
			return ClassReadOnly
		}
		return ClassUnrecoverable
	}

	if errors.Is(err, gremlin.ErrNotOpen) || errors.Is(err, gremlin.ErrConnectionClosed) ||
		errors.Is(err, gremlin.ErrConnecting) {
		return ClassConnection
	}

	// Fall back to the error message

	msg := err.Error()

	switch {
	case strings.HasPrefix(msg, "Unexpected server response: 403"):
		return ClassAuthExpired
	case strings.Contains(msg, gremlin.ErrNotOpen.Error()):
		return ClassConnection
	case strings.Contains(msg, ExceptionConcurrentModification):
		return ClassConcurrentModification
	case strings.Contains(msg, ExceptionReadOnlyViolation):
		return ClassReadOnly
	}

	return ClassUnrecoverable
}

/*
Decide determines how the executor reacts to an error. Connection errors of
transactional calls are not recoverable since the transaction is lost with
its connection.
*/
func Decide(err error, transactional bool) Decision {
	class := Classify(err)

	switch class {
	case ClassAuthExpired:
		return Decision{class, ActionRefreshCredentials}

	case ClassConnection:
		if transactional {
			return Decision{class, ActionFail}
		}
		return Decision{class, ActionReopen}

	case ClassConcurrentModification, ClassReadOnly:
		return Decision{class, ActionRetry}
	}

	return Decision{class, ActionFail}
}
