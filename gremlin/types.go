/*
 * SCSGraph
 *
 * Copyright 2026 SCSGraph Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package gremlin

/*
T is a token for element attributes which are not properties.
*/
type T string

/*
Known tokens
*/
const (
	TID    T = "id"
	TLabel T = "label"
	TKey   T = "key"
	TValue T = "value"
)

/*
Cardinality of a vertex property.
*/
type Cardinality string

/*
Known cardinalities
*/
const (
	Single Cardinality = "single"
	List   Cardinality = "list"
	Set    Cardinality = "set"
)

/*
Direction of an edge.
*/
type Direction string

/*
Known directions
*/
const (
	DirOut  Direction = "OUT"
	DirIn   Direction = "IN"
	DirBoth Direction = "BOTH"
)

/*
Column selects the keys or the values of a map.
*/
type Column string

/*
Known columns
*/
const (
	Keys   Column = "keys"
	Values Column = "values"
)

/*
Predicate is a comparison which can be used in steps like has() or where().
*/
type Predicate struct {
	Operator string
	Value    interface{}
}

/*
Eq creates an equal predicate.
*/
func Eq(v interface{}) *Predicate {
	return &Predicate{"eq", v}
}

/*
Neq creates a not equal predicate.
*/
func Neq(v interface{}) *Predicate {
	return &Predicate{"neq", v}
}

/*
Gt creates a greater than predicate.
*/
func Gt(v interface{}) *Predicate {
	return &Predicate{"gt", v}
}

/*
Gte creates a greater than or equal predicate.
*/
func Gte(v interface{}) *Predicate {
	return &Predicate{"gte", v}
}

/*
Lt creates a less than predicate.
*/
func Lt(v interface{}) *Predicate {
	return &Predicate{"lt", v}
}

/*
Lte creates a less than or equal predicate.
*/
func Lte(v interface{}) *Predicate {
	return &Predicate{"lte", v}
}

/*
Within creates a predicate which checks if a value is in a given list.
*/
func Within(v ...interface{}) *Predicate {
	return &Predicate{"within", v}
}

// Graph elements
// ==============

/*
Vertex is a vertex reference returned by the server.
*/
type Vertex struct {
	ID         interface{}
	Label      string
	Properties map[string]interface{} // Only set if the server sent properties
}

/*
Edge is an edge reference returned by the server.
*/
type Edge struct {
	ID        interface{}
	Label     string
	InV       interface{}
	InVLabel  string
	OutV      interface{}
	OutVLabel string
}

/*
VertexProperty is a vertex property returned by the server.
*/
type VertexProperty struct {
	ID    interface{}
	Label string
	Value interface{}
}

/*
Property is an edge property returned by the server.
*/
type Property struct {
	Key   string
	Value interface{}
}

/*
Path is the history of a traverser.
*/
type Path struct {
	Labels  [][]string
	Objects []interface{}
}

/*
Traverser is a result object with a bulk count.
*/
type Traverser struct {
	Bulk  int64
	Value interface{}
}
