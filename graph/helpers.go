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
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"time"

	"devt.de/krotik/scsgraph/gremlin"
)

// Helper functions for the evaluator
// ==================================

/*
firstArg returns the first argument or nil.
*/
func firstArg(args []interface{}) interface{} {
	if len(args) == 0 {
		return nil
	}
	return args[0]
}

/*
flatten flattens list arguments.
*/
func flatten(args []interface{}) []interface{} {
	var ret []interface{}

	for _, a := range args {
		if l, ok := a.([]interface{}); ok {
			ret = append(ret, l...)
		} else {
			ret = append(ret, a)
		}
	}

	return ret
}

/*
stringList converts arguments into strings.
*/
func stringList(args []interface{}) []string {
	var ret []string

	for _, a := range flatten(args) {
		ret = append(ret, fmt.Sprint(a))
	}

	return ret
}

/*
contains checks if a list contains a string.
*/
func contains(l []string, s string) bool {
	for _, i := range l {
		if i == s {
			return true
		}
	}
	return false
}

/*
idString returns the string id of an id argument.
*/
func idString(id interface{}) string {
	switch v := id.(type) {
	case *gremlin.Vertex:
		return fmt.Sprint(v.ID)
	case *gremlin.Edge:
		return fmt.Sprint(v.ID)
	}
	return fmt.Sprint(id)
}

/*
propertyKeys returns the property keys of an element or nil if the object
is not an element.
*/
func propertyKeys(o interface{}) []string {
	switch el := o.(type) {
	case *Vertex:
		return el.PropertyKeys()
	case *Edge:
		return el.PropertyKeys()
	}
	return nil
}

/*
toInt converts a number argument.
*/
func toInt(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}
	return 0, false
}

/*
toFloat converts a numeric value.
*/
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

/*
keyOf returns a key which identifies a value. Elements are identified by
their id.
*/
func keyOf(o interface{}) string {
	var buf bytes.Buffer

	switch v := o.(type) {
	case *Vertex:
		return "v:" + v.id
	case *Edge:
		return "e:" + v.id

	case map[string]interface{}:
		buf.WriteString("{")
		for _, k := range sortedKeys(v) {
			buf.WriteString(fmt.Sprintf("%q:%v,", k, keyOf(v[k])))
		}
		buf.WriteString("}")
		return buf.String()

	case []interface{}:
		buf.WriteString("[")
		for _, item := range v {
			buf.WriteString(keyOf(item))
			buf.WriteString(",")
		}
		buf.WriteString("]")
		return buf.String()

	case time.Time:
		return fmt.Sprintf("t:%v", v.UnixNano())
	}

	if f, ok := toFloat(o); ok {
		return fmt.Sprintf("n:%v", f)
	}

	return fmt.Sprintf("%T:%v", o, o)
}

// Predicates
// ==========

/*
matchesAny checks if a value matches any of the given values or predicates.
*/
func matchesAny(tests []interface{}, val interface{}) bool {
	for _, t := range tests {
		if p, ok := t.(*gremlin.Predicate); ok {
			if testPredicate(p, val) {
				return true
			}
		} else if valuesEqual(t, val) {
			return true
		}
	}
	return false
}

/*
testPredicate tests a predicate on a value.
*/
func testPredicate(p *gremlin.Predicate, val interface{}) bool {

	switch strings.ToLower(p.Operator) {
	case "eq":
		return valuesEqual(val, p.Value)

	case "neq":
		return !valuesEqual(val, p.Value)

	case "gt", "gte", "lt", "lte":
		c, ok := compareValues(val, p.Value)
		if !ok {
			return false
		}

		switch strings.ToLower(p.Operator) {
		case "gt":
			return c > 0
		case "gte":
			return c >= 0
		case "lt":
			return c < 0
		}
		return c <= 0

	case "within", "without":
		found := false
		for _, item := range flatten([]interface{}{p.Value}) {
			if valuesEqual(val, item) {
				found = true
				break
			}
		}
		return found == (strings.ToLower(p.Operator) == "within")
	}

	return false
}

/*
valuesEqual checks if two values are equal. Numbers are compared by value and
elements by id.
*/
func valuesEqual(a, b interface{}) bool {

	if af, ok := toFloat(a); ok {
		bf, ok := toFloat(b)
		return ok && af == bf
	}

	switch av := a.(type) {
	case *Vertex:
		bv, ok := b.(*Vertex)
		return ok && av.id == bv.id
	case *Edge:
		bv, ok := b.(*Edge)
		return ok && av.id == bv.id
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	}

	return reflect.DeepEqual(a, b)
}

/*
compareValues compares two numbers, strings or times.
*/
func compareValues(a, b interface{}) (int, bool) {

	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			switch {
			case af < bf:
				return -1, true
			case af > bf:
				return 1, true
			}
			return 0, true
		}
		return 0, false
	}

	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv), true
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			switch {
			case av.Before(bv):
				return -1, true
			case av.After(bv):
				return 1, true
			}
			return 0, true
		}
	}

	return 0, false
}
