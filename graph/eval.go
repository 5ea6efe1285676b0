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

	"devt.de/krotik/scsgraph/gremlin"
)

/*
knownSteps is a lookup for all supported steps (excluding modulators)
*/
var knownSteps = map[string]bool{
	"V": true, "E": true, "addV": true, "addE": true, "property": true,
	"has": true, "hasLabel": true, "hasId": true,
	"out": true, "in": true, "both": true, "outE": true, "inE": true, "bothE": true,
	"inV": true, "outV": true, "otherV": true, "bothV": true,
	"as": true, "select": true, "project": true, "where": true, "not": true,
	"dedup": true, "drop": true,
	"elementMap": true, "valueMap": true, "values": true, "id": true, "label": true,
	"limit": true, "count": true, "fold": true, "unfold": true, "coalesce": true,
	"constant": true, "identity": true, "repeat": true, "simplePath": true,
	"path": true, "none": true,
}

/*
Eval runs a traversal in a given transaction and returns its results.
*/
func Eval(trans *Trans, bc *gremlin.Bytecode) ([]interface{}, error) {

	if err := trans.checkRead(); err != nil {
		return nil, err
	}

	ret := make([]interface{}, 0)

	if len(bc.StepInstructions) == 0 {
		return ret, nil
	}

	e := &evaluator{trans}

	trs, err := e.run(bc, []*traverser{{labels: map[string]interface{}{}}})
	if err != nil {
		return nil, err
	}

	for _, tr := range trs {
		ret = append(ret, Export(tr.obj))
	}

	return ret, nil
}

/*
traverser is a single object moving through a traversal.
*/
type traverser struct {
	obj    interface{}            // Current object
	path   []interface{}          // History of objects
	labels map[string]interface{} // Objects of labeled steps
}

/*
split creates a traverser for a new object.
*/
func (tr *traverser) split(obj interface{}) *traverser {
	path := make([]interface{}, len(tr.path), len(tr.path)+1)
	copy(path, tr.path)

	return &traverser{obj, append(path, obj), tr.labels}
}

/*
replace creates a traverser where the current object was replaced.
*/
func (tr *traverser) replace(obj interface{}) *traverser {
	path := make([]interface{}, len(tr.path))
	copy(path, tr.path)

	if len(path) > 0 {
		path[len(path)-1] = obj
	}

	return &traverser{obj, path, tr.labels}
}

/*
bind creates a traverser with additional step labels for the current object.
*/
func (tr *traverser) bind(names []interface{}) *traverser {
	labels := make(map[string]interface{}, len(tr.labels)+len(names))

	for k, v := range tr.labels {
		labels[k] = v
	}

	for _, n := range names {
		labels[fmt.Sprint(n)] = tr.obj
	}

	return &traverser{tr.obj, tr.path, labels}
}

/*
step is a compiled traversal step with its modulators.
*/
type step struct {
	op    string
	args  []interface{}
	by    []interface{}
	from  interface{}
	to    interface{}
	until *gremlin.Bytecode
}

/*
compile converts bytecode into a list of steps.
*/
func compile(bc *gremlin.Bytecode) ([]*step, error) {
	var steps []*step

	for _, ins := range bc.StepInstructions {

		switch ins.Operator {
		case "by", "from", "to", "until":

			if len(steps) == 0 {
				return nil, &GraphError{ErrInvalidTraversal,
					fmt.Sprintf("%v() must follow a step", ins.Operator)}
			}

			last := steps[len(steps)-1]

			var arg interface{}
			if len(ins.Arguments) > 0 {
				arg = ins.Arguments[0]
			}

			switch ins.Operator {
			case "by":
				last.by = append(last.by, arg)
			case "from":
				last.from = arg
			case "to":
				last.to = arg
			case "until":
				child, ok := arg.(*gremlin.Bytecode)
				if !ok {
					return nil, &GraphError{ErrInvalidTraversal, "until() requires a traversal"}
				}
				last.until = child
			}

		default:

			if !knownSteps[ins.Operator] {
				return nil, &GraphError{ErrUnknownStep, ins.Operator}
			}

			steps = append(steps, &step{op: ins.Operator, args: ins.Arguments})
		}
	}

	return steps, nil
}

/*
evaluator runs steps in a transaction.
*/
type evaluator struct {
	trans *Trans
}

/*
run runs a traversal for a list of traversers.
*/
func (e *evaluator) run(bc *gremlin.Bytecode, in []*traverser) ([]*traverser, error) {
	steps, err := compile(bc)

	for i := 0; err == nil && i < len(steps); i++ {
		in, err = e.apply(steps[i], in)
	}

	return in, err
}

/*
runChild runs an anonymous traversal for a single traverser.
*/
func (e *evaluator) runChild(arg interface{}, tr *traverser) ([]*traverser, error) {
	bc, ok := arg.(*gremlin.Bytecode)
	if !ok {
		return nil, &GraphError{ErrInvalidTraversal,
			fmt.Sprintf("Expected anonymous traversal not: %v", arg)}
	}

	return e.run(bc, []*traverser{tr})
}

/*
current returns the latest version of an element within the transaction.
*/
func (e *evaluator) current(o interface{}) interface{} {
	switch el := o.(type) {
	case *Vertex:
		if cv := e.trans.Vertex(el.id); cv != nil {
			return cv
		}
	case *Edge:
		if ce := e.trans.Edge(el.id); ce != nil {
			return ce
		}
	}
	return o
}

/*
apply applies a single step to a list of traversers.
*/
func (e *evaluator) apply(s *step, in []*traverser) ([]*traverser, error) {
	var out []*traverser
	var err error

	switch s.op {

	// Start and mutation steps

	case "V":
		for _, tr := range in {
			for _, v := range e.vertices(flatten(s.args)) {
				out = append(out, tr.split(v))
			}
		}

	case "E":
		for _, tr := range in {
			for _, ed := range e.edges(flatten(s.args)) {
				out = append(out, tr.split(ed))
			}
		}

	case "addV":
		label := "vertex"
		if len(s.args) > 0 {
			label = fmt.Sprint(s.args[0])
		}

		for _, tr := range in {
			var v *Vertex
			if v, err = e.trans.AddVertex(label); err != nil {
				return nil, err
			}
			out = append(out, tr.split(v))
		}

	case "addE":
		if len(s.args) == 0 {
			return nil, &GraphError{ErrInvalidTraversal, "addE() requires a label"}
		}

		for _, tr := range in {
			var from, to *Vertex
			var ed *Edge

			if from, err = e.endpoint(s.from, tr); err == nil {
				if to, err = e.endpoint(s.to, tr); err == nil {
					ed, err = e.trans.AddEdge(fmt.Sprint(s.args[0]), from.id, to.id)
				}
			}

			if err != nil {
				return nil, err
			}

			out = append(out, tr.split(ed))
		}

	case "property":
		out, err = e.property(s, in)

	case "drop":
		for _, tr := range in {
			switch el := e.current(tr.obj).(type) {
			case *Vertex:
				err = e.trans.RemoveVertex(el.id)
			case *Edge:
				err = e.trans.RemoveEdge(el.id)
			}

			if err != nil {
				return nil, err
			}
		}

	// Filter steps

	case "has":
		for _, tr := range in {
			var ok bool
			if ok, err = e.has(tr.obj, s.args); err != nil {
				return nil, err
			} else if ok {
				out = append(out, tr)
			}
		}

	case "hasLabel", "hasId":
		key := gremlin.TLabel
		if s.op == "hasId" {
			key = gremlin.TID
		}

		for _, tr := range in {
			if val, ok := e.value(tr.obj, key); ok && matchesAny(flatten(s.args), val) {
				out = append(out, tr)
			}
		}

	case "where":
		for _, tr := range in {
			var ok bool
			if ok, err = e.where(s.args, tr); err != nil {
				return nil, err
			} else if ok {
				out = append(out, tr)
			}
		}

	case "not":
		for _, tr := range in {
			var res []*traverser
			if res, err = e.runChild(firstArg(s.args), tr); err != nil {
				return nil, err
			} else if len(res) == 0 {
				out = append(out, tr)
			}
		}

	case "dedup":
		seen := make(map[string]bool)
		for _, tr := range in {
			if k := keyOf(tr.obj); !seen[k] {
				seen[k] = true
				out = append(out, tr)
			}
		}

	case "simplePath":
		for _, tr := range in {
			seen := make(map[string]bool)
			simple := true

			for _, po := range tr.path {
				k := keyOf(po)
				if seen[k] {
					simple = false
					break
				}
				seen[k] = true
			}

			if simple {
				out = append(out, tr)
			}
		}

	case "limit":
		n, ok := toInt(firstArg(s.args))
		if !ok {
			return nil, &GraphError{ErrInvalidTraversal, "limit() requires a number"}
		}

		out = in
		if n >= 0 && int64(len(in)) > n {
			out = in[:n]
		}

	case "identity":
		out = in

	case "none":

	// Traversal steps

	case "out", "in", "both", "outE", "inE", "bothE":
		out, err = e.adjacent(s, in)

	case "inV", "outV", "otherV", "bothV":
		for _, tr := range in {
			ed, ok := e.current(tr.obj).(*Edge)
			if !ok {
				return nil, &GraphError{ErrInvalidTraversal, s.op + "() requires an edge"}
			}

			var vids []string

			switch s.op {
			case "inV":
				vids = []string{ed.inV}
			case "outV":
				vids = []string{ed.outV}
			case "bothV":
				vids = []string{ed.outV, ed.inV}
			case "otherV":
				vids = []string{ed.outV}
				if len(tr.path) > 1 {
					if pv, ok := tr.path[len(tr.path)-2].(*Vertex); ok && pv.id == ed.outV {
						vids = []string{ed.inV}
					}
				}
			}

			for _, vid := range vids {
				if v := e.trans.Vertex(vid); v != nil {
					out = append(out, tr.split(v))
				}
			}
		}

	case "repeat":
		out, err = e.repeat(s, in)

	case "coalesce":
		for _, tr := range in {
			for _, arg := range s.args {
				var res []*traverser
				if res, err = e.runChild(arg, tr); err != nil {
					return nil, err
				} else if len(res) > 0 {
					out = append(out, res...)
					break
				}
			}
		}

	// Map steps

	case "as":
		for _, tr := range in {
			out = append(out, tr.bind(s.args))
		}

	case "select":
		out, err = e.selectStep(s, in)

	case "project":
		for _, tr := range in {
			m := make(map[string]interface{})

			for i, k := range s.args {
				var by interface{}
				if i < len(s.by) {
					by = s.by[i]
				}

				var val interface{}
				var ok bool

				if val, ok, err = e.modulate(by, tr, tr.obj); err != nil {
					return nil, err
				} else if ok {
					m[fmt.Sprint(k)] = val
				}
			}

			out = append(out, tr.split(m))
		}

	case "elementMap", "valueMap":
		for _, tr := range in {
			var m map[string]interface{}

			if s.op == "elementMap" {
				m, err = e.elementMap(tr.obj, s.args)
			} else {
				m, err = e.valueMap(tr.obj, s.args)
			}

			if err != nil {
				return nil, err
			}

			out = append(out, tr.split(m))
		}

	case "values":
		for _, tr := range in {
			el := e.current(tr.obj)

			keys := stringList(s.args)
			if len(keys) == 0 {
				keys = propertyKeys(el)
			}

			for _, k := range keys {
				if val, ok := e.value(el, k); ok {
					out = append(out, tr.split(val))
				}
			}
		}

	case "id", "label":
		key := gremlin.TID
		if s.op == "label" {
			key = gremlin.TLabel
		}

		for _, tr := range in {
			val, ok := e.value(tr.obj, key)
			if !ok {
				return nil, &GraphError{ErrInvalidTraversal, s.op + "() requires an element"}
			}
			out = append(out, tr.split(val))
		}

	case "constant":
		for _, tr := range in {
			out = append(out, tr.split(firstArg(s.args)))
		}

	case "path":
		for _, tr := range in {
			objects := make([]interface{}, len(tr.path))
			copy(objects, tr.path)
			out = append(out, tr.split(&gremlin.Path{Objects: objects}))
		}

	case "unfold":
		for _, tr := range in {
			if l, ok := tr.obj.([]interface{}); ok {
				for _, item := range l {
					out = append(out, tr.split(item))
				}
				continue
			}
			out = append(out, tr)
		}

	// Reducing steps

	case "count":
		c := int64(len(in))
		out = []*traverser{{c, []interface{}{c}, map[string]interface{}{}}}

	case "fold":
		l := make([]interface{}, len(in))
		for i, tr := range in {
			l[i] = tr.obj
		}
		out = []*traverser{{l, []interface{}{l}, map[string]interface{}{}}}
	}

	return out, err
}

/*
vertices returns vertices by id or all vertices if no id is given.
*/
func (e *evaluator) vertices(ids []interface{}) []*Vertex {
	if len(ids) == 0 {
		return e.trans.Vertices()
	}

	var ret []*Vertex
	for _, id := range ids {
		if v := e.trans.Vertex(idString(id)); v != nil {
			ret = append(ret, v)
		}
	}

	return ret
}

/*
edges returns edges by id or all edges if no id is given.
*/
func (e *evaluator) edges(ids []interface{}) []*Edge {
	if len(ids) == 0 {
		return e.trans.Edges()
	}

	var ret []*Edge
	for _, id := range ids {
		if ed := e.trans.Edge(idString(id)); ed != nil {
			ret = append(ret, ed)
		}
	}

	return ret
}

/*
endpoint resolves an endpoint of an addE step.
*/
func (e *evaluator) endpoint(spec interface{}, tr *traverser) (*Vertex, error) {
	var o interface{}

	switch v := spec.(type) {
	case nil:
		o = tr.obj

	case string:
		lo, ok := tr.labels[v]
		if !ok {
			return nil, &GraphError{ErrInvalidTraversal, fmt.Sprintf("Unknown step label %v", v)}
		}
		o = lo

	case *gremlin.Bytecode:
		res, err := e.run(v, []*traverser{tr})
		if err != nil {
			return nil, err
		} else if len(res) == 0 {
			return nil, &GraphError{ErrInvalidTraversal, "addE() endpoint traversal has no result"}
		}
		o = res[0].obj
	}

	vertex, ok := e.current(o).(*Vertex)
	if !ok || vertex == nil {
		return nil, &GraphError{ErrInvalidTraversal, "addE() endpoint is not a vertex"}
	}

	return vertex, nil
}

/*
property runs a property step.
*/
func (e *evaluator) property(s *step, in []*traverser) ([]*traverser, error) {
	var out []*traverser

	args := s.args

	if len(args) > 0 {
		if _, ok := args[0].(gremlin.Cardinality); ok {
			args = args[1:]
		}
	}

	if len(args) < 2 {
		return nil, &GraphError{ErrInvalidTraversal, "property() requires a key and a value"}
	}

	key, ok := args[0].(string)
	if !ok {
		return nil, &GraphError{ErrInvalidTraversal,
			fmt.Sprintf("Property key must be a string not: %v", args[0])}
	}

	for _, tr := range in {
		val := args[1]

		if _, ok := val.(*gremlin.Bytecode); ok {
			res, err := e.runChild(val, tr)
			if err != nil {
				return nil, err
			} else if len(res) == 0 {
				return nil, &GraphError{ErrInvalidTraversal, "property() value traversal has no result"}
			}
			val = res[0].obj
		}

		if val == nil {
			return nil, &GraphError{ErrInvalidData, fmt.Sprintf("Value of property %v is null", key)}
		}

		switch el := e.current(tr.obj).(type) {
		case *Vertex:
			v, err := e.trans.SetVertexProperty(el.id, key, val)
			if err != nil {
				return nil, err
			}
			out = append(out, tr.replace(v))

		case *Edge:
			ed, err := e.trans.SetEdgeProperty(el.id, key, val)
			if err != nil {
				return nil, err
			}
			out = append(out, tr.replace(ed))

		default:
			return nil, &GraphError{ErrInvalidTraversal, "property() requires an element"}
		}
	}

	return out, nil
}

/*
has checks a has step for a given object.
*/
func (e *evaluator) has(o interface{}, args []interface{}) (bool, error) {
	var key, test interface{}

	switch len(args) {
	case 1:
		key = args[0]
	case 2:
		key, test = args[0], args[1]
	case 3:
		if label, ok := e.value(o, gremlin.TLabel); !ok || !matchesAny(args[:1], label) {
			return false, nil
		}
		key, test = args[1], args[2]
	default:
		return false, &GraphError{ErrInvalidTraversal, "has() requires one to three arguments"}
	}

	val, ok := e.value(o, key)

	if !ok {
		return false, nil
	} else if len(args) == 1 {
		return true, nil
	}

	return matchesAny([]interface{}{test}, val), nil
}

/*
where checks a where step for a given traverser.
*/
func (e *evaluator) where(args []interface{}, tr *traverser) (bool, error) {

	labeled := func(p *gremlin.Predicate, val interface{}) bool {
		other, ok := tr.labels[fmt.Sprint(p.Value)]
		return ok && testPredicate(&gremlin.Predicate{Operator: p.Operator, Value: e.current(other)}, e.current(val))
	}

	switch len(args) {
	case 1:
		if p, ok := args[0].(*gremlin.Predicate); ok {
			return labeled(p, tr.obj), nil
		}

		res, err := e.runChild(args[0], tr)
		return len(res) > 0, err

	case 2:
		p, ok := args[1].(*gremlin.Predicate)
		if !ok {
			return false, &GraphError{ErrInvalidTraversal, "where() requires a predicate"}
		}

		start, ok := tr.labels[fmt.Sprint(args[0])]
		return ok && labeled(p, start), nil
	}

	return false, &GraphError{ErrInvalidTraversal, "where() requires one or two arguments"}
}

/*
adjacent runs vertex to vertex and vertex to edge steps.
*/
func (e *evaluator) adjacent(s *step, in []*traverser) ([]*traverser, error) {
	var out []*traverser

	labels := stringList(s.args)
	toEdge := s.op == "outE" || s.op == "inE" || s.op == "bothE"
	useOut := s.op != "in" && s.op != "inE"
	useIn := s.op != "out" && s.op != "outE"

	matches := func(ed *Edge) bool {
		if len(labels) == 0 {
			return true
		}
		for _, l := range labels {
			if l == ed.label {
				return true
			}
		}
		return false
	}

	for _, tr := range in {
		v, ok := e.current(tr.obj).(*Vertex)
		if !ok {
			return nil, &GraphError{ErrInvalidTraversal, s.op + "() requires a vertex"}
		}

		emit := func(edges []*Edge, outgoing bool) {
			for _, ed := range edges {
				if !matches(ed) {
					continue
				}

				if toEdge {
					out = append(out, tr.split(ed))
					continue
				}

				vid := ed.outV
				if outgoing {
					vid = ed.inV
				}

				if ov := e.trans.Vertex(vid); ov != nil {
					out = append(out, tr.split(ov))
				}
			}
		}

		if useOut {
			emit(e.trans.OutEdges(v.id), true)
		}
		if useIn {
			emit(e.trans.InEdges(v.id), false)
		}
	}

	return out, nil
}

/*
repeat runs a repeat step. Traversers are emitted once they satisfy the
until condition.
*/
func (e *evaluator) repeat(s *step, in []*traverser) ([]*traverser, error) {
	var out []*traverser

	child, ok := firstArg(s.args).(*gremlin.Bytecode)
	if !ok {
		return nil, &GraphError{ErrInvalidTraversal, "repeat() requires a traversal"}
	} else if s.until == nil {
		return nil, &GraphError{ErrInvalidTraversal, "repeat() requires until()"}
	}

	cur := in

	for i := 0; len(cur) > 0 && i < MaxRepeatDepth; i++ {

		next, err := e.run(child, cur)
		if err != nil {
			return nil, err
		}

		cur = nil

		for _, tr := range next {
			res, err := e.run(s.until, []*traverser{tr})
			if err != nil {
				return nil, err
			}

			if len(res) > 0 {
				out = append(out, tr)
			} else {
				cur = append(cur, tr)
			}
		}
	}

	return out, nil
}

/*
selectStep runs a select step.
*/
func (e *evaluator) selectStep(s *step, in []*traverser) ([]*traverser, error) {
	var out []*traverser

	keys := stringList(s.args)

	lookup := func(tr *traverser, key string) (interface{}, bool) {
		if val, ok := tr.labels[key]; ok {
			return val, true
		}
		if m, ok := tr.obj.(map[string]interface{}); ok {
			val, ok := m[key]
			return val, ok
		}
		return nil, false
	}

	for _, tr := range in {
		m := make(map[string]interface{})
		complete := true

		for i, k := range keys {
			val, ok := lookup(tr, k)
			if !ok {
				complete = false
				break
			}

			var by interface{}
			if len(s.by) > 0 {
				by = s.by[i%len(s.by)]
			}

			val, ok, err := e.modulate(by, tr, val)
			if err != nil {
				return nil, err
			} else if !ok {
				complete = false
				break
			}

			m[k] = val
		}

		if !complete {
			continue
		}

		if len(keys) == 1 {
			out = append(out, tr.split(m[keys[0]]))
		} else {
			out = append(out, tr.split(m))
		}
	}

	return out, nil
}

/*
modulate applies a by() modulator to a value.
*/
func (e *evaluator) modulate(by interface{}, tr *traverser, val interface{}) (interface{}, bool, error) {

	switch b := by.(type) {
	case nil:
		return val, true, nil

	case string, gremlin.T:
		res, ok := e.value(val, b)
		return res, ok, nil

	case *gremlin.Bytecode:
		res, err := e.run(b, []*traverser{{val, []interface{}{val}, tr.labels}})
		if err != nil || len(res) == 0 {
			return nil, false, err
		}
		return res[0].obj, true, nil
	}

	return nil, false, &GraphError{ErrInvalidTraversal, fmt.Sprintf("Unsupported by() modulator: %v", by)}
}

/*
value returns a property, the id or the label of an element or a map value.
*/
func (e *evaluator) value(o interface{}, key interface{}) (interface{}, bool) {

	switch el := e.current(o).(type) {
	case *Vertex:
		switch key {
		case gremlin.TID:
			return el.id, true
		case gremlin.TLabel:
			return el.label, true
		}
		return el.Property(fmt.Sprint(key))

	case *Edge:
		switch key {
		case gremlin.TID:
			return el.id, true
		case gremlin.TLabel:
			return el.label, true
		}
		return el.Property(fmt.Sprint(key))

	case map[string]interface{}:
		val, ok := el[fmt.Sprint(key)]
		return val, ok
	}

	return nil, false
}

/*
elementMap creates the element map of an element.
*/
func (e *evaluator) elementMap(o interface{}, keys []interface{}) (map[string]interface{}, error) {
	var m map[string]interface{}
	var props map[string]interface{}

	switch el := e.current(o).(type) {
	case *Vertex:
		m = map[string]interface{}{"id": el.id, "label": el.label}
		props = el.props

	case *Edge:
		m = map[string]interface{}{
			"id":    el.id,
			"label": el.label,
			"IN":    map[string]interface{}{"id": el.inV, "label": el.inLabel},
			"OUT":   map[string]interface{}{"id": el.outV, "label": el.outLabel},
		}
		props = el.props

	default:
		return nil, &GraphError{ErrInvalidTraversal, "elementMap() requires an element"}
	}

	filter := stringList(keys)

	for k, v := range props {
		if len(filter) == 0 || contains(filter, k) {
			m[k] = v
		}
	}

	return m, nil
}

/*
valueMap creates the value map of an element. Property values are lists.
*/
func (e *evaluator) valueMap(o interface{}, args []interface{}) (map[string]interface{}, error) {
	var filter []string
	withTokens := false

	for _, a := range args {
		if b, ok := a.(bool); ok {
			withTokens = b
		} else {
			filter = append(filter, fmt.Sprint(a))
		}
	}

	el := e.current(o)

	keys := propertyKeys(el)
	if keys == nil {
		return nil, &GraphError{ErrInvalidTraversal, "valueMap() requires an element"}
	}

	m := make(map[string]interface{})

	if withTokens {
		m["id"], _ = e.value(el, gremlin.TID)
		m["label"], _ = e.value(el, gremlin.TLabel)
	}

	for _, k := range keys {
		if len(filter) == 0 || contains(filter, k) {
			val, _ := e.value(el, k)
			m[k] = []interface{}{val}
		}
	}

	return m, nil
}
