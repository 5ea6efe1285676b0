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

import (
	"fmt"
	"strconv"
	"time"
)

/*
Result is the result of a traversal.
*/
type Result []interface{}

/*
IsEmpty checks if the result has no objects.
*/
func (r Result) IsEmpty() bool {
	return len(r) == 0
}

/*
First returns the first object of the result or nil.
*/
func (r Result) First() interface{} {
	if len(r) == 0 {
		return nil
	}
	return r[0]
}

/*
PropertyMaps returns all result objects which can be represented as a
property map. Maps, vertices and edges nested in maps are converted as well.
*/
func (r Result) PropertyMaps() []PropertyMap {
	var ret []PropertyMap

	for _, o := range r {
		if pm := ToPropertyMap(o); pm != nil {
			ret = append(ret, pm)
		}
	}

	return ret
}

/*
FirstPropertyMap returns the first result object as a property map or nil.
*/
func (r Result) FirstPropertyMap() PropertyMap {
	if len(r) == 0 {
		return nil
	}
	return ToPropertyMap(r[0])
}

/*
PropertyMap is a map of element properties. Element maps of vertices and edges
contain the keys "id" and "label"; edges also contain "IN" and "OUT".
*/
type PropertyMap map[string]interface{}

/*
ToPropertyMap converts a result object into a property map. Returns nil if the
object cannot be converted.
*/
func ToPropertyMap(o interface{}) PropertyMap {

	switch v := o.(type) {
	case PropertyMap:
		return v

	case map[string]interface{}:
		ret := make(PropertyMap, len(v))
		for k, val := range v {
			if pm := ToPropertyMap(val); pm != nil {
				val = pm
			}
			ret[k] = val
		}
		return ret

	case *Vertex:
		ret := PropertyMap{"id": v.ID, "label": v.Label}
		for k, val := range v.Properties {
			ret[k] = val
		}
		return ret

	case *Edge:
		return PropertyMap{
			"id":    v.ID,
			"label": v.Label,
			"IN":    PropertyMap{"id": v.InV, "label": v.InVLabel},
			"OUT":   PropertyMap{"id": v.OutV, "label": v.OutVLabel},
		}
	}

	return nil
}

/*
ID returns the id of the element.
*/
func (pm PropertyMap) ID() string {
	return pm.Str("id")
}

/*
Label returns the label of the element.
*/
func (pm PropertyMap) Label() string {
	return pm.Str("label")
}

/*
Has checks if the map contains a given key.
*/
func (pm PropertyMap) Has(key string) bool {
	_, ok := pm[key]
	return ok
}

/*
Str returns a value as string. Returns an empty string if the value does not exist.
*/
func (pm PropertyMap) Str(key string) string {
	v, ok := pm[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

/*
Int returns a value as int64. Returns 0 if the value does not exist or is not a number.
*/
func (pm PropertyMap) Int(key string) int64 {
	switch v := pm[key].(type) {
	case int32:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	case float32:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		i, _ := strconv.ParseInt(v, 10, 64)
		return i
	}
	return 0
}

/*
Float returns a value as float64. Returns 0 if the value does not exist or is not a number.
*/
func (pm PropertyMap) Float(key string) float64 {
	switch v := pm[key].(type) {
	case float32:
		return float64(v)
	case float64:
		return v
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	}
	return float64(pm.Int(key))
}

/*
Bool returns a value as bool.
*/
func (pm PropertyMap) Bool(key string) bool {
	switch v := pm[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return false
}

/*
Time returns a value as time. Returns the zero time if the value does not
exist or cannot be converted.
*/
func (pm PropertyMap) Time(key string) time.Time {
	switch v := pm[key].(type) {
	case time.Time:
		return v
	case string:
		t, _ := time.Parse(time.RFC3339, v)
		return t
	case int64:
		return time.UnixMilli(v).UTC()
	}
	return time.Time{}
}

/*
Map returns a nested property map. Returns nil if the value is not a map.
*/
func (pm PropertyMap) Map(key string) PropertyMap {
	return ToPropertyMap(pm[key])
}
