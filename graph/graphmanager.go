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
	"sort"
	"sync"
	"sync/atomic"
)

/*
Manager data structure
*/
type Manager struct {
	mutex    *sync.RWMutex     // Mutex to protect the committed state
	st       *store            // Committed state
	versions map[string]uint64 // Commit version of the last write of each element
	version  uint64            // Current commit version
	seq      uint64            // Element sequence counter
	readonly bool              // Flag if all writes should be rejected
}

/*
NewManager returns a new in-memory graph manager.
*/
func NewManager() *Manager {
	return &Manager{&sync.RWMutex{}, newStore(), make(map[string]uint64), 0, 0, false}
}

/*
SetReadOnly sets the read-only flag of this manager.
*/
func (gm *Manager) SetReadOnly(readonly bool) {
	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	gm.readonly = readonly
}

/*
IsReadOnly returns the read-only flag of this manager.
*/
func (gm *Manager) IsReadOnly() bool {
	gm.mutex.RLock()
	defer gm.mutex.RUnlock()

	return gm.readonly
}

/*
VertexCount returns the number of committed vertices.
*/
func (gm *Manager) VertexCount() int {
	gm.mutex.RLock()
	defer gm.mutex.RUnlock()

	return len(gm.st.vertices)
}

/*
EdgeCount returns the number of committed edges.
*/
func (gm *Manager) EdgeCount() int {
	gm.mutex.RLock()
	defer gm.mutex.RUnlock()

	return len(gm.st.edges)
}

/*
FetchVertex fetches a committed vertex. Returns nil if the vertex does not exist.
*/
func (gm *Manager) FetchVertex(id string) *Vertex {
	gm.mutex.RLock()
	defer gm.mutex.RUnlock()

	return gm.st.vertices[id]
}

/*
FetchEdge fetches a committed edge. Returns nil if the edge does not exist.
*/
func (gm *Manager) FetchEdge(id string) *Edge {
	gm.mutex.RLock()
	defer gm.mutex.RUnlock()

	return gm.st.edges[id]
}

/*
nextSeq returns the next element sequence number.
*/
func (gm *Manager) nextSeq() uint64 {
	return atomic.AddUint64(&gm.seq, 1)
}

// Store
// =====

/*
store holds vertices, edges and their adjacency lists.
*/
type store struct {
	vertices map[string]*Vertex
	edges    map[string]*Edge
	out      map[string]map[string]bool // Vertex id to outgoing edge ids
	in       map[string]map[string]bool // Vertex id to incoming edge ids
}

/*
newStore creates a new empty store.
*/
func newStore() *store {
	return &store{
		make(map[string]*Vertex),
		make(map[string]*Edge),
		make(map[string]map[string]bool),
		make(map[string]map[string]bool),
	}
}

/*
clone returns a copy of this store. Elements are shared.
*/
func (s *store) clone() *store {
	ret := &store{
		make(map[string]*Vertex, len(s.vertices)),
		make(map[string]*Edge, len(s.edges)),
		make(map[string]map[string]bool, len(s.out)),
		make(map[string]map[string]bool, len(s.in)),
	}

	for k, v := range s.vertices {
		ret.vertices[k] = v
	}
	for k, e := range s.edges {
		ret.edges[k] = e
	}

	copyAdjacency := func(src, dst map[string]map[string]bool) {
		for k, m := range src {
			cm := make(map[string]bool, len(m))
			for ek := range m {
				cm[ek] = true
			}
			dst[k] = cm
		}
	}

	copyAdjacency(s.out, ret.out)
	copyAdjacency(s.in, ret.in)

	return ret
}

/*
putVertex stores a vertex.
*/
func (s *store) putVertex(v *Vertex) {
	s.vertices[v.id] = v
}

/*
putEdge stores an edge and updates the adjacency lists.
*/
func (s *store) putEdge(e *Edge) {
	s.edges[e.id] = e

	add := func(adj map[string]map[string]bool, vid string) {
		m, ok := adj[vid]
		if !ok {
			m = make(map[string]bool)
			adj[vid] = m
		}
		m[e.id] = true
	}

	add(s.out, e.outV)
	add(s.in, e.inV)
}

/*
removeEdge removes an edge and updates the adjacency lists.
*/
func (s *store) removeEdge(id string) {
	if e, ok := s.edges[id]; ok {
		delete(s.out[e.outV], id)
		delete(s.in[e.inV], id)
		delete(s.edges, id)
	}
}

/*
removeVertex removes a vertex and all its edges. Returns the ids of the
removed edges.
*/
func (s *store) removeVertex(id string) []string {
	var removed []string

	for _, adj := range []map[string]map[string]bool{s.out, s.in} {
		for eid := range adj[id] {
			removed = append(removed, eid)
		}
	}

	for _, eid := range removed {
		s.removeEdge(eid)
	}

	delete(s.vertices, id)
	delete(s.out, id)
	delete(s.in, id)

	return removed
}

/*
sortedVertices returns all vertices in creation order.
*/
func (s *store) sortedVertices() []*Vertex {
	ret := make([]*Vertex, 0, len(s.vertices))
	for _, v := range s.vertices {
		ret = append(ret, v)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].seq < ret[j].seq })
	return ret
}

/*
sortedEdges returns all edges in creation order.
*/
func (s *store) sortedEdges() []*Edge {
	ret := make([]*Edge, 0, len(s.edges))
	for _, e := range s.edges {
		ret = append(ret, e)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].seq < ret[j].seq })
	return ret
}

/*
adjacentEdges returns the edges of an adjacency list in creation order.
*/
func (s *store) adjacentEdges(adj map[string]map[string]bool, vid string) []*Edge {
	ret := make([]*Edge, 0, len(adj[vid]))
	for eid := range adj[vid] {
		ret = append(ret, s.edges[eid])
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].seq < ret[j].seq })
	return ret
}
