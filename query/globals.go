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
Package query contains the parametrised Gremlin traversals of the supply
chain graph.

A Library runs every traversal through an executor so recoverable failures
are retried. Write operations take a transactional flag; transactional writes
stay invisible to other callers until the transaction is committed.

Vertices and edges are returned as element maps. Lookups which find nothing
return a nil map and no error. Deletes report success with a boolean flag.
*/
package query

import (
	"context"
	"fmt"

	"devt.de/krotik/scsgraph/gremlin"
	"devt.de/krotik/scsgraph/model"
	"devt.de/krotik/scsgraph/neptune"
)

/*
Executor runs query functions.
*/
type Executor interface {

	/*
		Query runs a query function with the retry rules of the executor.
	*/
	Query(ctx context.Context, transactional bool, fn neptune.QueryFunc) (gremlin.Result, error)
}

/*
Error is a query related error
*/
type Error struct {
	Type   error  // Error type (to be used for equal checks)
	Detail string // Details of this error
}

/*
Error returns a human-readable string representation of this error.
*/
func (qe *Error) Error() string {
	if qe.Detail != "" {
		return fmt.Sprintf("QueryError: %v (%v)", qe.Type, qe.Detail)
	}

	return fmt.Sprintf("QueryError: %v", qe.Type)
}

/*
Unwrap returns the error type.
*/
func (qe *Error) Unwrap() error {
	return qe.Type
}

/*
Query related error types
*/
var (
	ErrInvalidDirection = model.ErrInvalidDirection
)

// Direction dispatch
// ==================

type stepFunc func(t *gremlin.Traversal, labels ...string) *gremlin.Traversal

/*
vertexSteps contains the steps from a vertex to its adjacent vertices.
*/
var vertexSteps = map[model.Direction]stepFunc{
	model.In:  (*gremlin.Traversal).In,
	model.Out: (*gremlin.Traversal).Out,
}

/*
edgeSteps contains the steps from a vertex to its edges.
*/
var edgeSteps = map[model.Direction]stepFunc{
	model.In:  (*gremlin.Traversal).InE,
	model.Out: (*gremlin.Traversal).OutE,
}

/*
edgeVertexSteps contains the steps from an edge to one of its vertices.
*/
var edgeVertexSteps = map[model.Direction]func(t *gremlin.Traversal) *gremlin.Traversal{
	model.In:  (*gremlin.Traversal).InV,
	model.Out: (*gremlin.Traversal).OutV,
}

/*
checkDirection checks a direction before any traversal is built.
*/
func checkDirection(dirs ...model.Direction) error {
	for _, d := range dirs {
		if !d.Valid() {
			return &Error{ErrInvalidDirection, d.String()}
		}
	}
	return nil
}

/*
checkHops checks the directions of a list of hops.
*/
func checkHops(hops []model.Hop) error {
	for _, h := range hops {
		if err := checkDirection(h.Direction); err != nil {
			return err
		}
	}
	return nil
}
