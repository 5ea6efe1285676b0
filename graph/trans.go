/*
 * SCSGraph
 *
 * Copyright 2026 SCSGraph Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package graph

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

/*
Trans is a transaction object which groups vertex and edge operations. This
object is not thread safe.
*/
type Trans struct {
	id      string          // Unique transaction ID
	gm      *Manager        // Graph manager which created this transaction
	base    uint64          // Commit version when the transaction started
	st      *store          // Private state of the transaction
	written map[string]bool // Ids of all written elements
	done    bool            // Flag if the transaction was committed or rolled back
}

/*
idCounter is a simple counter for ids
*/
var idCounter uint64
var idCounterLock = &sync.Mutex{}

/*
NewTrans creates a new transaction.
*/
func (gm *Manager) NewTrans() *Trans {
	idCounterLock.Lock()
	idCounter++
	id := fmt.Sprint(idCounter)
	idCounterLock.Unlock()

	gm.mutex.RLock()
	defer gm.mutex.RUnlock()

	return &Trans{id, gm, gm.version, gm.st.clone(), make(map[string]bool), false}
}

/*
ID returns a unique transaction ID.
*/
func (gt *Trans) ID() string {
	return gt.id
}

/*
IsEmpty returns if this transaction has no writes.
*/
func (gt *Trans) IsEmpty() bool {
	return len(gt.written) == 0
}

/*
String returns a string representation of this transatction.
*/
func (gt *Trans) String() string {
	return fmt.Sprintf("Transaction %v - Written elements: %v",
		gt.id, len(gt.written))
}

/*
Commit writes the transaction to the graph. The transaction cannot be used
after this call.
*/
func (gt *Trans) Commit() error {

	// Take writer lock

	gt.gm.mutex.Lock()
	defer gt.gm.mutex.Unlock()

	if gt.done {
		return &GraphError{ErrTransClosed, gt.id}
	}

	gt.done = true

	// Return if there is nothing to do

	if gt.IsEmpty() {
		return nil
	}

	if gt.gm.readonly {
		return &GraphError{ErrReadOnly, "Graph is read-only"}
	}

	for id := range gt.written {
		if gt.gm.versions[id] > gt.base {
			return &GraphError{ErrConcurrentModification,
				fmt.Sprintf("Element %v was modified by another transaction", id)}
		}
	}

	gt.gm.version++

	gs := gt.gm.st

	var removedVertices, removedEdges []string

	// Write vertices first so edges can connect to them

	for id := range gt.written {
		gt.gm.versions[id] = gt.gm.version

		if v, ok := gt.st.vertices[id]; ok {
			gs.putVertex(v)
		} else if _, ok := gt.st.edges[id]; !ok {
			if _, ok := gs.vertices[id]; ok {
				removedVertices = append(removedVertices, id)
			} else {
				removedEdges = append(removedEdges, id)
			}
		}
	}

	for id := range gt.written {
		if e, ok := gt.st.edges[id]; ok {
			gs.putEdge(e)
		}
	}

	for _, id := range removedEdges {
		gs.removeEdge(id)
	}

	for _, id := range removedVertices {
		for _, eid := range gs.removeVertex(id) {
			gt.gm.versions[eid] = gt.gm.version
		}
	}

	gt.st = nil

	return nil
}

/*
Rollback discards all changes of the transaction. The transaction cannot be
used after this call.
*/
func (gt *Trans) Rollback() {
	gt.done = true
	gt.st = nil
	gt.written = make(map[string]bool)
}

/*
checkWrite checks if the transaction can be written to.
*/
func (gt *Trans) checkWrite() error {
	if err := gt.checkRead(); err != nil {
		return err
	}

	if gt.gm.IsReadOnly() {
		return &GraphError{ErrReadOnly, "Graph is read-only"}
	}

	return nil
}

/*
checkRead checks if the transaction can be read from.
*/
func (gt *Trans) checkRead() error {
	if gt.done {
		return &GraphError{ErrTransClosed, gt.id}
	}
	return nil
}

// Read operations
// ===============

/*
Vertices returns all vertices in creation order.
*/
func (gt *Trans) Vertices() []*Vertex {
	if gt.done {
		return nil
	}
	return gt.st.sortedVertices()
}

/*
Vertex returns a single vertex. Returns nil if the vertex does not exist.
*/
func (gt *Trans) Vertex(id string) *Vertex {
	if gt.done {
		return nil
	}
	return gt.st.vertices[id]
}

/*
Edges returns all edges in creation order.
*/
func (gt *Trans) Edges() []*Edge {
	if gt.done {
		return nil
	}
	return gt.st.sortedEdges()
}

/*
Edge returns a single edge. Returns nil if the edge does not exist.
*/
func (gt *Trans) Edge(id string) *Edge {
	if gt.done {
		return nil
	}
	return gt.st.edges[id]
}

/*
OutEdges returns all edges which start at a given vertex.
*/
func (gt *Trans) OutEdges(vid string) []*Edge {
	if gt.done {
		return nil
	}
	return gt.st.adjacentEdges(gt.st.out, vid)
}

/*
InEdges returns all edges which end at a given vertex.
*/
func (gt *Trans) InEdges(vid string) []*Edge {
	if gt.done {
		return nil
	}
	return gt.st.adjacentEdges(gt.st.in, vid)
}

// Write operations
// ================

/*
AddVertex adds a new vertex.
*/
func (gt *Trans) AddVertex(label string) (*Vertex, error) {
	if err := gt.checkWrite(); err != nil {
		return nil, err
	}

	if label == "" {
		return nil, &GraphError{ErrInvalidData, "Vertex is missing a label"}
	}

	v := &Vertex{uuid.NewString(), label, map[string]interface{}{}, gt.gm.nextSeq()}

	gt.st.putVertex(v)
	gt.written[v.id] = true

	return v, nil
}

/*
AddEdge adds a new edge between two existing vertices.
*/
func (gt *Trans) AddEdge(label string, outV string, inV string) (*Edge, error) {
	if err := gt.checkWrite(); err != nil {
		return nil, err
	}

	if label == "" {
		return nil, &GraphError{ErrInvalidData, "Edge is missing a label"}
	}

	out, ok1 := gt.st.vertices[outV]
	in, ok2 := gt.st.vertices[inV]

	if !ok1 || !ok2 {
		return nil, &GraphError{ErrInvalidData,
			fmt.Sprintf("Edge endpoint does not exist: %v -> %v", outV, inV)}
	}

	e := &Edge{uuid.NewString(), label, out.id, out.label, in.id, in.label,
		map[string]interface{}{}, gt.gm.nextSeq()}

	gt.st.putEdge(e)

	gt.written[e.id] = true
	gt.written[out.id] = true
	gt.written[in.id] = true

	return e, nil
}

/*
SetVertexProperty sets a property of a vertex. Returns the updated vertex.
*/
func (gt *Trans) SetVertexProperty(vid string, key string, val interface{}) (*Vertex, error) {
	if err := gt.checkWrite(); err != nil {
		return nil, err
	}

	v, ok := gt.st.vertices[vid]
	if !ok {
		return nil, &GraphError{ErrInvalidData, fmt.Sprintf("Vertex %v does not exist", vid)}
	} else if key == "" {
		return nil, &GraphError{ErrInvalidData, "Property key is empty"}
	}

	v = v.withProperty(key, val)

	gt.st.putVertex(v)
	gt.written[vid] = true

	return v, nil
}

/*
SetEdgeProperty sets a property of an edge. Returns the updated edge.
*/
func (gt *Trans) SetEdgeProperty(eid string, key string, val interface{}) (*Edge, error) {
	if err := gt.checkWrite(); err != nil {
		return nil, err
	}

	e, ok := gt.st.edges[eid]
	if !ok {
		return nil, &GraphError{ErrInvalidData, fmt.Sprintf("Edge %v does not exist", eid)}
	} else if key == "" {
		return nil, &GraphError{ErrInvalidData, "Property key is empty"}
	}

	e = e.withProperty(key, val)

	gt.st.putEdge(e)
	gt.written[eid] = true

	return e, nil
}

/*
RemoveVertex removes a vertex and all its edges. Removing a vertex which does
not exist is not an error.
*/
func (gt *Trans) RemoveVertex(vid string) error {
	if err := gt.checkWrite(); err != nil {
		return err
	}

	if _, ok := gt.st.vertices[vid]; !ok {
		return nil
	}

	for _, eid := range gt.st.removeVertex(vid) {
		gt.written[eid] = true
	}

	gt.written[vid] = true

	return nil
}

/*
RemoveEdge removes an edge. Removing an edge which does not exist is not an error.
*/
func (gt *Trans) RemoveEdge(eid string) error {
	if err := gt.checkWrite(); err != nil {
		return err
	}

	e, ok := gt.st.edges[eid]
	if !ok {
		return nil
	}

	gt.st.removeEdge(eid)

	gt.written[eid] = true
	gt.written[e.outV] = true
	gt.written[e.inV] = true

	return nil
}
