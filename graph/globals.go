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
Package graph contains an in-memory graph store which can run Gremlin traversals.

Manager API

The main API is provided by a Manager object which can be created with the
NewManager() constructor function. The manager holds the committed state of
the graph: vertices and edges with their properties and the adjacency lists
which connect them. Vertex and edge ids are generated UUIDs.

Transactions

All reads and writes happen in a transaction. A transaction works on a
private copy of the graph; nothing is visible to other transactions before
calling Commit(). Rollback() discards all changes.

Transactions are optimistic. Commit fails with a ConcurrentModificationException
error if an element which was written in the transaction was also written by
another transaction which committed after this transaction started. Adding an
edge counts as a write to both of its vertices.

A read-only manager rejects all writes with a ReadOnlyViolationException error.

Traversals

Eval() runs Gremlin bytecode in a transaction. The evaluator supports the
steps which are produced by the gremlin package traversal builder. Results
contain gremlin package types (vertex and edge references, paths) and plain
values.
*/
package graph

import (
	"errors"
	"fmt"
)

/*
MaxRepeatDepth is the maximum number of iterations of a repeat step
*/
var MaxRepeatDepth = 100

/*
GraphError is a graph related error
*/
type GraphError struct {
	Type   error  // Error type (to be used for equal checks)
	Detail string // Details of this error
}

/*
Error returns a human-readable string representation of this error.
*/
func (ge *GraphError) Error() string {
	if ge.Detail != "" {
		return fmt.Sprintf("GraphError: %v (%v)", ge.Type, ge.Detail)
	}

	return fmt.Sprintf("GraphError: %v", ge.Type)
}

/*
Unwrap returns the error type.
*/
func (ge *GraphError) Unwrap() error {
	return ge.Type
}

/*
Graph storage related error types
*/
var (
	ErrConcurrentModification = errors.New("ConcurrentModificationException")
	ErrReadOnly               = errors.New("ReadOnlyViolationException")
	ErrTransClosed            = errors.New("Transaction is closed")
)

/*
Graph related error types
*/
var (
	ErrInvalidData      = errors.New("Invalid data")
	ErrUnknownStep      = errors.New("Unknown traversal step")
	ErrInvalidTraversal = errors.New("Invalid traversal")
)
