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

	"devt.de/krotik/scsgraph/gremlin"
)

/*
Vertex is a labeled vertex with properties. Vertex objects are never changed
after they were stored; updates replace the object.
*/
type Vertex struct {
	id    string
	label string
	props map[string]interface{}
	seq   uint64 // Creation sequence number for stable ordering
}

/*
ID returns the id of this vertex.
*/
func (v *Vertex) ID() string {
	return v.id
}

/*
Label returns the label of this vertex.
*/
func (v *Vertex) Label() string {
	return v.label
}

/*
Property returns a property value of this vertex.
*/
func (v *Vertex) Property(key string) (interface{}, bool) {
	val, ok := v.props[key]
	return val, ok
}

/*
PropertyKeys returns all property keys of this vertex in alphabetical order.
*/
func (v *Vertex) PropertyKeys() []string {
	return sortedKeys(v.props)
}

/*
withProperty returns a copy of this vertex with a changed property.
*/
func (v *Vertex) withProperty(key string, val interface{}) *Vertex {
	return &Vertex{v.id, v.label, copyProps(v.props, key, val), v.seq}
}

/*
Edge is a labeled directed edge with properties. Edge objects are never
changed after they were stored; updates replace the object.
*/
type Edge struct {
	id       string
	label    string
	outV     string
	outLabel string
	inV      string
	inLabel  string
	props    map[string]interface{}
	seq      uint64
}

/*
ID returns the id of this edge.
*/
func (e *Edge) ID() string {
	return e.id
}

/*
Label returns the label of this edge.
*/
func (e *Edge) Label() string {
	return e.label
}

/*
OutV returns the id of the vertex where the edge starts.
*/
func (e *Edge) OutV() string {
	return e.outV
}

/*
InV returns the id of the vertex where the edge ends.
*/
func (e *Edge) InV() string {
	return e.inV
}

/*
Property returns a property value of this edge.
*/
func (e *Edge) Property(key string) (interface{}, bool) {
	val, ok := e.props[key]
	return val, ok
}

/*
PropertyKeys returns all property keys of this edge in alphabetical order.
*/
func (e *Edge) PropertyKeys() []string {
	return sortedKeys(e.props)
}

/*
withProperty returns a copy of this edge with a changed property.
*/
func (e *Edge) withProperty(key string, val interface{}) *Edge {
	ret := *e
	ret.props = copyProps(e.props, key, val)
	return &ret
}

// Export
// ======

/*
Export converts evaluation results into gremlin package types. Vertices and
edges are exported as references without properties.
*/
func Export(o interface{}) interface{} {

	switch v := o.(type) {
	case *Vertex:
		return &gremlin.Vertex{ID: v.id, Label: v.label}

	case *Edge:
		return &gremlin.Edge{
			ID:        v.id,
			Label:     v.label,
			InV:       v.inV,
			InVLabel:  v.inLabel,
			OutV:      v.outV,
			OutVLabel: v.outLabel,
		}

	case *gremlin.Path:
		objects := make([]interface{}, len(v.Objects))
		for i, po := range v.Objects {
			objects[i] = Export(po)
		}
		return &gremlin.Path{Labels: v.Labels, Objects: objects}

	case []interface{}:
		ret := make([]interface{}, len(v))
		for i, lo := range v {
			ret[i] = Export(lo)
		}
		return ret

	case map[string]interface{}:
		ret := make(map[string]interface{}, len(v))
		for k, mo := range v {
			ret[k] = Export(mo)
		}
		return ret
	}

	return o
}

// Helper functions
// ================

/*
copyProps copies a property map and sets a value.
*/
func copyProps(props map[string]interface{}, key string, val interface{}) map[string]interface{} {
	ret := make(map[string]interface{}, len(props)+1)
	for k, v := range props {
		ret[k] = v
	}
	ret[key] = val
	return ret
}

/*
sortedKeys returns the keys of a map in alphabetical order.
*/
func sortedKeys(m map[string]interface{}) []string {
	ret := make([]string, 0, len(m))
	for k := range m {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}
