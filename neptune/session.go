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
	"context"
	"net/http"
	"sync"

	"devt.de/krotik/common/errorutil"
	"devt.de/krotik/scsgraph/gremlin"
)

/*
State is the lifecycle state of a session.
*/
type State int

/*
Known session states
*/
const (
	StateUninitialized State = iota
	StateConnecting
	StateReady
	StateTransacting
	StateClosed
)

/*
String returns a string representation of this state.
*/
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateConnecting:
		return "Connecting"
	case StateReady:
		return "Ready"
	case StateTransacting:
		return "Transacting"
	case StateClosed:
		return "Closed"
	}
	return "Unknown"
}

/*
DialFunc opens a Gremlin client.
*/
type DialFunc func(ctx context.Context, url string, header http.Header) (*gremlin.Client, error)

/*
Session owns a single connection to the graph database and at most one open
transaction. A session can be used concurrently.
*/
type Session struct {
	resolver Resolver
	dial     DialFunc
	mutex    *sync.Mutex
	info     *ConnectionInfo      // Cached connection information
	client   *gremlin.Client      // Open client (nil if not connected)
	tx       *gremlin.Transaction // Open transaction (nil if there is none)
	txSource *gremlin.Source      // Traversal source of the open transaction
	txLost   bool                 // Flag if the open transaction was lost with its connection
	state    State
}

/*
NewSession creates a new session which gets its connection information from
a given resolver.
*/
func NewSession(resolver Resolver) *Session {
	return NewSessionWithDialer(resolver, gremlin.Dial)
}

/*
NewSessionWithDialer creates a new session which uses a custom dial function.
*/
func NewSessionWithDialer(resolver Resolver, dial DialFunc) *Session {
	return &Session{
		resolver: resolver,
		dial:     dial,
		mutex:    &sync.Mutex{},
		state:    StateUninitialized,
	}
}

/*
State returns the current state of this session.
*/
func (s *Session) State() State {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.state
}

/*
InTransaction checks if this session has an open transaction.
*/
func (s *Session) InTransaction() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.tx != nil && s.tx.IsOpen()
}

/*
Source returns a traversal source. The connection is opened if necessary.
If transactional is set then the source of the open transaction is returned;
a transaction is started if there is none.
*/
func (s *Session) Source(ctx context.Context, transactional bool) (*gremlin.Source, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.tx != nil && s.client != nil && !s.client.IsOpen() {

		// The transaction died with its connection

		LogInfo("Connection of transaction ", s.tx.Session(), " was closed")

		s.dropTransaction()
		s.state = StateClosed
	}

	if transactional && s.txLost {
		return nil, errTransactionLost()
	}

	if err := s.connect(ctx, false); err != nil {
		return nil, err
	}

	if !transactional {
		return s.client.Traversal(), nil
	}

	if s.tx != nil && s.tx.IsOpen() {
		return s.txSource, nil
	}

	tx := s.client.Tx()

	src, err := tx.Begin()
	if err != nil {
		return nil, err
	}

	s.tx = tx
	s.txSource = src
	s.state = StateTransacting

	LogDebug("Started transaction ", tx.Session())

	return src, nil
}

/*
Reopen drops the current connection and connects again. Cached connection
information is discarded and credentials are refreshed if refresh is set. An
open transaction is lost; transactional calls fail until Rollback or Close
is called.
*/
func (s *Session) Reopen(ctx context.Context, refresh bool) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.client != nil {
		if err := s.client.Close(); err != nil {
			LogDebug("Error while closing connection: ", err)
		}
	}

	if s.tx != nil && s.tx.IsOpen() {
		LogInfo("Transaction ", s.tx.Session(), " was lost while reopening the connection")
		s.dropTransaction()
	}

	s.client = nil
	s.tx = nil
	s.txSource = nil
	s.state = StateClosed

	if refresh {
		s.info = nil
	}

	return s.connect(ctx, refresh)
}

/*
connect opens the client if it is not open. The caller must hold the lock.
*/
func (s *Session) connect(ctx context.Context, refresh bool) error {

	if s.client != nil && s.client.IsOpen() {
		return nil
	}

	prevState := s.state
	s.state = StateConnecting

	if s.info == nil {
		info, err := s.resolver.Resolve(ctx, refresh)
		if err != nil {
			s.state = prevState
			return err
		}

		s.info = info
	}

	client, err := s.dial(ctx, s.info.URL, s.info.Header)
	if err != nil {
		s.state = StateClosed
		return err
	}

	LogDebug("Connected to ", s.info.URL)

	s.client = client
	s.state = StateReady

	return nil
}

/*
Commit commits the open transaction and closes the connection. Does nothing
if there is no open transaction. Fails if the transaction was lost with its
connection.
*/
func (s *Session) Commit(ctx context.Context) error {
	return s.finish(ctx, true)
}

/*
Rollback rolls back the open transaction and closes the connection. Does
nothing if there is no open transaction. A lost transaction is discarded.
*/
func (s *Session) Rollback(ctx context.Context) error {
	return s.finish(ctx, false)
}

/*
finish ends the open transaction.
*/
func (s *Session) finish(ctx context.Context, commit bool) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.txLost {
		if commit {
			return errTransactionLost()
		}

		s.txLost = false

		return nil
	}

	if s.tx == nil || !s.tx.IsOpen() {
		return nil
	}

	cerr := errorutil.NewCompositeError()

	if commit {
		addError(cerr, s.tx.Commit(ctx))
	} else {
		addError(cerr, s.tx.Rollback(ctx))
	}

	addError(cerr, s.tx.Close(ctx))
	addError(cerr, s.closeClient())

	return compositeOrNil(cerr)
}

/*
Close rolls back an open transaction and closes the connection.
*/
func (s *Session) Close(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cerr := errorutil.NewCompositeError()

	if s.tx != nil && s.tx.IsOpen() {
		addError(cerr, s.tx.Rollback(ctx))
		addError(cerr, s.tx.Close(ctx))
	}

	addError(cerr, s.closeClient())

	s.txLost = false

	return compositeOrNil(cerr)
}

/*
dropTransaction forgets the open transaction and marks it as lost. The
caller must hold the lock.
*/
func (s *Session) dropTransaction() {
	s.tx = nil
	s.txSource = nil
	s.txLost = true
}

/*
errTransactionLost returns the error for calls on a lost transaction.
*/
func errTransactionLost() error {
	return &Error{ErrSession, "Connection of the open transaction was closed and the transaction was lost"}
}

/*
closeClient closes the client. The caller must hold the lock.
*/
func (s *Session) closeClient() error {
	var err error

	if s.client != nil {
		err = s.client.Close()
	}

	s.client = nil
	s.tx = nil
	s.txSource = nil
	s.state = StateClosed

	return err
}

/*
addError adds an error to a composite error if it is not nil.
*/
func addError(cerr *errorutil.CompositeError, err error) {
	if err != nil {
		cerr.Add(err)
	}
}

/*
compositeOrNil returns nil if a composite error has no errors.
*/
func compositeOrNil(cerr *errorutil.CompositeError) error {
	if cerr.HasErrors() {
		return cerr
	}
	return nil
}
