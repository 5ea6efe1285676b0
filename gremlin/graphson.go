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
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

/*
Keys of typed GraphSON values
*/
const (
	typeKey  = "@type"
	valueKey = "@value"
)

/*
MarshalGraphSON encodes a given value as GraphSON v2.
*/
func MarshalGraphSON(v interface{}) ([]byte, error) {
	gv, err := ToGraphSON(v)
	if err != nil {
		return nil, err
	}

	return json.Marshal(gv)
}

/*
UnmarshalGraphSON decodes a GraphSON v2 document.
*/
func UnmarshalGraphSON(data []byte) (interface{}, error) {
	var raw interface{}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := dec.Decode(&raw); err != nil {
		return nil, &Error{ErrSerialization, err.Error()}
	}

	return FromGraphSON(raw)
}

/*
typed creates a typed GraphSON value.
*/
func typed(t string, v interface{}) map[string]interface{} {
	return map[string]interface{}{typeKey: t, valueKey: v}
}

/*
ToGraphSON converts a given value into a structure which can be marshalled
into GraphSON v2.
*/
func ToGraphSON(v interface{}) (interface{}, error) {
	var err error

	switch val := v.(type) {
	case nil:
		return nil, nil

	case string, bool:
		return val, nil

	case int:
		if val >= math.MinInt32 && val <= math.MaxInt32 {
			return typed("g:Int32", val), nil
		}
		return typed("g:Int64", val), nil

	case int8:
		return typed("g:Int32", val), nil
	case int16:
		return typed("g:Int32", val), nil
	case int32:
		return typed("g:Int32", val), nil
	case uint8:
		return typed("g:Int32", val), nil
	case uint16:
		return typed("g:Int32", val), nil
	case int64:
		return typed("g:Int64", val), nil
	case uint32:
		return typed("g:Int64", val), nil
	case uint:
		return typed("g:Int64", val), nil
	case uint64:
		return typed("g:Int64", val), nil

	case float32:
		return typed("g:Float", val), nil
	case float64:
		return typed("g:Double", val), nil

	case time.Time:
		return typed("g:Date", val.UnixMilli()), nil

	case uuid.UUID:
		return typed("g:UUID", val.String()), nil

	case T:
		return typed("g:T", string(val)), nil
	case Cardinality:
		return typed("g:Cardinality", string(val)), nil
	case Direction:
		return typed("g:Direction", string(val)), nil
	case Column:
		return typed("g:Column", string(val)), nil

	case *Predicate:
		var pv interface{}
		if pv, err = ToGraphSON(val.Value); err == nil {
			return typed("g:P", map[string]interface{}{
				"predicate": val.Operator,
				"value":     pv,
			}), nil
		}

	case *Traversal:
		return bytecodeToGraphSON(val.Bytecode)
	case *Bytecode:
		return bytecodeToGraphSON(val)

	case *Vertex:
		var id interface{}
		if id, err = ToGraphSON(val.ID); err == nil {
			return typed("g:Vertex", map[string]interface{}{
				"id":    id,
				"label": val.Label,
			}), nil
		}

	case *Edge:
		var id, inV, outV interface{}
		if id, err = ToGraphSON(val.ID); err == nil {
			if inV, err = ToGraphSON(val.InV); err == nil {
				if outV, err = ToGraphSON(val.OutV); err == nil {
					return typed("g:Edge", map[string]interface{}{
						"id":        id,
						"label":     val.Label,
						"inV":       inV,
						"inVLabel":  val.InVLabel,
						"outV":      outV,
						"outVLabel": val.OutVLabel,
					}), nil
				}
			}
		}

	case *VertexProperty:
		var id, pv interface{}
		if id, err = ToGraphSON(val.ID); err == nil {
			if pv, err = ToGraphSON(val.Value); err == nil {
				return typed("g:VertexProperty", map[string]interface{}{
					"id":    id,
					"label": val.Label,
					"value": pv,
				}), nil
			}
		}

	case *Property:
		var pv interface{}
		if pv, err = ToGraphSON(val.Value); err == nil {
			return typed("g:Property", map[string]interface{}{
				"key":   val.Key,
				"value": pv,
			}), nil
		}

	case *Path:
		var objects interface{}
		if objects, err = ToGraphSON(val.Objects); err == nil {
			labels := val.Labels
			if labels == nil {
				labels = make([][]string, len(val.Objects))
				for i := range labels {
					labels[i] = []string{}
				}
			}
			return typed("g:Path", map[string]interface{}{
				"labels":  labels,
				"objects": objects,
			}), nil
		}

	case *Traverser:
		var tv interface{}
		if tv, err = ToGraphSON(val.Value); err == nil {
			return typed("g:Traverser", map[string]interface{}{
				"bulk":  typed("g:Int64", val.Bulk),
				"value": tv,
			}), nil
		}

	case []string:
		return val, nil

	case []interface{}:
		ret := make([]interface{}, len(val))
		for i, item := range val {
			if ret[i], err = ToGraphSON(item); err != nil {
				return nil, err
			}
		}
		return ret, nil

	case PropertyMap:
		return ToGraphSON(map[string]interface{}(val))

	case map[string]interface{}:
		ret := make(map[string]interface{}, len(val))
		for k, item := range val {
			if ret[k], err = ToGraphSON(item); err != nil {
				return nil, err
			}
		}
		return ret, nil

	default:
		err = &Error{ErrSerialization, fmt.Sprintf("Unsupported type %T", v)}
	}

	return nil, err
}

/*
bytecodeToGraphSON converts a bytecode object into a GraphSON v2 structure.
*/
func bytecodeToGraphSON(bc *Bytecode) (interface{}, error) {

	convert := func(instructions []Instruction) ([]interface{}, error) {
		ret := make([]interface{}, 0, len(instructions))

		for _, ins := range instructions {
			entry := []interface{}{ins.Operator}

			for _, arg := range ins.Arguments {
				garg, err := ToGraphSON(arg)
				if err != nil {
					return nil, err
				}
				entry = append(entry, garg)
			}

			ret = append(ret, entry)
		}

		return ret, nil
	}

	val := make(map[string]interface{})

	if len(bc.StepInstructions) > 0 {
		steps, err := convert(bc.StepInstructions)
		if err != nil {
			return nil, err
		}
		val["step"] = steps
	}

	if len(bc.SourceInstructions) > 0 {
		sources, err := convert(bc.SourceInstructions)
		if err != nil {
			return nil, err
		}
		val["source"] = sources
	}

	return typed("g:Bytecode", val), nil
}

/*
FromGraphSON converts an unmarshalled GraphSON v2 structure into Go values.
JSON numbers should be decoded as json.Number.
*/
func FromGraphSON(v interface{}) (interface{}, error) {
	var err error

	switch val := v.(type) {
	case map[string]interface{}:

		if t, ok := val[typeKey].(string); ok {
			if raw, ok := val[valueKey]; ok {
				return fromTypedGraphSON(t, raw)
			}
		}

		ret := make(map[string]interface{}, len(val))
		for k, item := range val {
			if ret[k], err = FromGraphSON(item); err != nil {
				return nil, err
			}
		}
		return ret, nil

	case []interface{}:
		ret := make([]interface{}, len(val))
		for i, item := range val {
			if ret[i], err = FromGraphSON(item); err != nil {
				return nil, err
			}
		}
		return ret, nil

	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i, nil
		}
		return val.Float64()
	}

	return v, nil
}

/*
fromTypedGraphSON converts a typed GraphSON value.
*/
func fromTypedGraphSON(t string, raw interface{}) (interface{}, error) {
	var err error

	switch t {
	case "g:Int32":
		var i int64
		if i, err = toInt64(raw); err == nil {
			return int32(i), nil
		}

	case "g:Int64":
		return toInt64(raw)

	case "g:Double":
		return toFloat64(raw)

	case "g:Float":
		var f float64
		if f, err = toFloat64(raw); err == nil {
			return float32(f), nil
		}

	case "g:Date", "g:Timestamp":
		var ms int64
		if ms, err = toInt64(raw); err == nil {
			return time.UnixMilli(ms).UTC(), nil
		}

	case "g:UUID":
		var u uuid.UUID
		if u, err = uuid.Parse(fmt.Sprint(raw)); err == nil {
			return u, nil
		}

	case "g:T":
		return T(fmt.Sprint(raw)), nil
	case "g:Cardinality":
		return Cardinality(fmt.Sprint(raw)), nil
	case "g:Direction":
		return Direction(fmt.Sprint(raw)), nil
	case "g:Column":
		return Column(fmt.Sprint(raw)), nil

	case "g:List", "g:Set":
		return FromGraphSON(raw)

	case "g:Map":
		return mapFromGraphSON(raw)

	case "g:P":
		var m map[string]interface{}
		if m, err = objectFromGraphSON(t, raw); err == nil {
			var pv interface{}
			if pv, err = FromGraphSON(m["value"]); err == nil {
				return &Predicate{fmt.Sprint(m["predicate"]), pv}, nil
			}
		}

	case "g:Bytecode":
		return bytecodeFromGraphSON(raw)

	case "g:Vertex":
		return vertexFromGraphSON(raw)

	case "g:Edge":
		var m map[string]interface{}
		if m, err = objectFromGraphSON(t, raw); err == nil {
			return &Edge{
				ID:        m["id"],
				Label:     fmt.Sprint(m["label"]),
				InV:       m["inV"],
				InVLabel:  stringOf(m["inVLabel"]),
				OutV:      m["outV"],
				OutVLabel: stringOf(m["outVLabel"]),
			}, nil
		}

	case "g:VertexProperty":
		var m map[string]interface{}
		if m, err = objectFromGraphSON(t, raw); err == nil {
			return &VertexProperty{m["id"], stringOf(m["label"]), m["value"]}, nil
		}

	case "g:Property":
		var m map[string]interface{}
		if m, err = objectFromGraphSON(t, raw); err == nil {
			return &Property{stringOf(m["key"]), m["value"]}, nil
		}

	case "g:Path":
		var m map[string]interface{}
		if m, err = objectFromGraphSON(t, raw); err == nil {
			p := &Path{}

			if labels, ok := m["labels"].([]interface{}); ok {
				for _, l := range labels {
					var ls []string
					if lsl, ok := l.([]interface{}); ok {
						for _, s := range lsl {
							ls = append(ls, fmt.Sprint(s))
						}
					}
					p.Labels = append(p.Labels, ls)
				}
			}

			if objects, ok := m["objects"].([]interface{}); ok {
				p.Objects = objects
			}

			return p, nil
		}

	case "g:Traverser":
		var m map[string]interface{}
		if m, err = objectFromGraphSON(t, raw); err == nil {
			var bulk int64 = 1
			if b, ok := m["bulk"]; ok {
				if bulk, err = toInt64(b); err != nil {
					return nil, err
				}
			}
			return &Traverser{bulk, m["value"]}, nil
		}

	default:
		err = &Error{ErrSerialization, fmt.Sprintf("Unsupported GraphSON type %v", t)}
	}

	if _, ok := err.(*Error); !ok && err != nil {
		err = &Error{ErrSerialization, fmt.Sprintf("Invalid value for %v: %v", t, err)}
	}

	return nil, err
}

/*
objectFromGraphSON decodes the value of a typed GraphSON object.
*/
func objectFromGraphSON(t string, raw interface{}) (map[string]interface{}, error) {
	res, err := FromGraphSON(raw)

	if err == nil {
		if m, ok := res.(map[string]interface{}); ok {
			return m, nil
		}
		err = &Error{ErrSerialization, fmt.Sprintf("Expected object for %v", t)}
	}

	return nil, err
}

/*
mapFromGraphSON decodes a g:Map which is a list of alternating keys and values.
*/
func mapFromGraphSON(raw interface{}) (interface{}, error) {
	res, err := FromGraphSON(raw)
	if err != nil {
		return nil, err
	}

	if m, ok := res.(map[string]interface{}); ok {
		return m, nil
	}

	l, ok := res.([]interface{})
	if !ok || len(l)%2 != 0 {
		return nil, &Error{ErrSerialization, "Invalid g:Map value"}
	}

	ret := make(map[string]interface{}, len(l)/2)
	for i := 0; i < len(l); i += 2 {
		ret[fmt.Sprint(l[i])] = l[i+1]
	}

	return ret, nil
}

/*
vertexFromGraphSON decodes a vertex. Only the first value of multi-valued
properties is kept.
*/
func vertexFromGraphSON(raw interface{}) (interface{}, error) {
	m, err := objectFromGraphSON("g:Vertex", raw)
	if err != nil {
		return nil, err
	}

	v := &Vertex{ID: m["id"], Label: stringOf(m["label"])}

	if props, ok := m["properties"].(map[string]interface{}); ok {
		v.Properties = make(map[string]interface{}, len(props))

		for k, p := range props {
			if pl, ok := p.([]interface{}); ok && len(pl) > 0 {
				p = pl[0]
			}
			if vp, ok := p.(*VertexProperty); ok {
				p = vp.Value
			}
			v.Properties[k] = p
		}
	}

	return v, nil
}

/*
bytecodeFromGraphSON decodes a bytecode object.
*/
func bytecodeFromGraphSON(raw interface{}) (interface{}, error) {
	m, err := objectFromGraphSON("g:Bytecode", raw)
	if err != nil {
		return nil, err
	}

	convert := func(v interface{}) ([]Instruction, error) {
		var ret []Instruction

		if v == nil {
			return ret, nil
		}

		l, ok := v.([]interface{})
		if !ok {
			return nil, &Error{ErrSerialization, "Invalid bytecode instructions"}
		}

		for _, e := range l {
			el, ok := e.([]interface{})
			if !ok || len(el) == 0 {
				return nil, &Error{ErrSerialization, "Invalid bytecode instruction"}
			}

			op, ok := el[0].(string)
			if !ok {
				return nil, &Error{ErrSerialization, "Invalid bytecode operator"}
			}

			ret = append(ret, Instruction{op, el[1:]})
		}

		return ret, nil
	}

	bc := NewBytecode()

	if bc.StepInstructions, err = convert(m["step"]); err == nil {
		bc.SourceInstructions, err = convert(m["source"])
	}

	return bc, err
}

// Number helpers
// ==============

/*
toInt64 converts a decoded number into an int64.
*/
func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		f, err := n.Float64()
		return int64(f), err
	case int64:
		return n, nil
	case float64:
		return int64(n), nil
	}

	return 0, fmt.Errorf("not a number: %v", v)
}

/*
toFloat64 converts a decoded number into a float64.
*/
func toFloat64(v interface{}) (float64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Float64()
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	case string:
		// Special double values are sent as strings

		switch n {
		case "NaN":
			return math.NaN(), nil
		case "Infinity":
			return math.Inf(1), nil
		case "-Infinity":
			return math.Inf(-1), nil
		}
	}

	return 0, fmt.Errorf("not a number: %v", v)
}

/*
stringOf returns the string value of an optional value.
*/
func stringOf(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
