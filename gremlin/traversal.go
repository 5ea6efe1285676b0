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

import "context"

/*
RemoteConnection executes bytecode on a server.
*/
type RemoteConnection interface {

	/*
		Submit sends a bytecode object to the server and waits for the result.
	*/
	Submit(ctx context.Context, bc *Bytecode) (Result, error)
}

/*
Source is a traversal source which spawns new traversals.
*/
type Source struct {
	remote   RemoteConnection
	bytecode *Bytecode
}

/*
NewSource creates a new traversal source for a given remote connection.
*/
func NewSource(remote RemoteConnection) *Source {
	return &Source{remote, NewBytecode()}
}

/*
Tx returns a new transaction for this source. Returns nil if the source is
not connected through a client.
*/
func (g *Source) Tx() *Transaction {
	if r, ok := g.remote.(*clientRemote); ok {
		return r.client.Tx()
	}
	return nil
}

/*
traversal creates a new traversal from this source.
*/
func (g *Source) traversal() *Traversal {
	return &Traversal{g.remote, g.bytecode.Copy()}
}

/*
V starts a traversal over vertices.
*/
func (g *Source) V(ids ...interface{}) *Traversal {
	return g.traversal().add("V", ids...)
}

/*
E starts a traversal over edges.
*/
func (g *Source) E(ids ...interface{}) *Traversal {
	return g.traversal().add("E", ids...)
}

/*
AddV starts a traversal by adding a vertex.
*/
func (g *Source) AddV(label string) *Traversal {
	return g.traversal().add("addV", label)
}

/*
AddE starts a traversal by adding an edge.
*/
func (g *Source) AddE(label string) *Traversal {
	return g.traversal().add("addE", label)
}

/*
Traversal is a sequence of steps which is executed on the server.
*/
type Traversal struct {
	remote   RemoteConnection
	Bytecode *Bytecode
}

/*
NewAnonymousTraversal creates a traversal which is not bound to a source. Use
anonymous traversals as step arguments.
*/
func NewAnonymousTraversal() *Traversal {
	return &Traversal{nil, NewBytecode()}
}

/*
add adds a step to this traversal.
*/
func (t *Traversal) add(op string, args ...interface{}) *Traversal {
	t.Bytecode.AddStep(op, args...)
	return t
}

/*
stringArgs converts string arguments.
*/
func stringArgs(s []string) []interface{} {
	ret := make([]interface{}, len(s))
	for i, v := range s {
		ret[i] = v
	}
	return ret
}

// Terminal steps
// ==============

/*
ToList executes this traversal and returns all results.
*/
func (t *Traversal) ToList(ctx context.Context) (Result, error) {
	if t.remote == nil {
		return nil, &Error{ErrNoRemote, t.Bytecode.String()}
	}

	LogDebug("Submit: ", t.Bytecode)

	return t.remote.Submit(ctx, t.Bytecode)
}

/*
Next executes this traversal and returns the first result (or nil).
*/
func (t *Traversal) Next(ctx context.Context) (interface{}, error) {
	res, err := t.ToList(ctx)
	return res.First(), err
}

/*
HasNext executes this traversal and checks if there is any result.
*/
func (t *Traversal) HasNext(ctx context.Context) (bool, error) {
	res, err := t.ToList(ctx)
	return !res.IsEmpty(), err
}

/*
Iterate executes this traversal and discards all results.
*/
func (t *Traversal) Iterate(ctx context.Context) error {
	_, err := t.add("none").ToList(ctx)
	return err
}

// Steps
// =====

/*
V adds a vertex step.
*/
func (t *Traversal) V(ids ...interface{}) *Traversal {
	return t.add("V", ids...)
}

/*
AddV adds a step which creates a vertex.
*/
func (t *Traversal) AddV(label string) *Traversal {
	return t.add("addV", label)
}

/*
AddE adds a step which creates an edge.
*/
func (t *Traversal) AddE(label string) *Traversal {
	return t.add("addE", label)
}

/*
From sets the out vertex of an addE step. The argument is a step label or
an anonymous traversal.
*/
func (t *Traversal) From(v interface{}) *Traversal {
	return t.add("from", v)
}

/*
To sets the in vertex of an addE step. The argument is a step label or
an anonymous traversal.
*/
func (t *Traversal) To(v interface{}) *Traversal {
	return t.add("to", v)
}

/*
Property adds a property step. An optional cardinality can be given as first
argument.
*/
func (t *Traversal) Property(args ...interface{}) *Traversal {
	return t.add("property", args...)
}

/*
Has adds a filter step for properties.
*/
func (t *Traversal) Has(args ...interface{}) *Traversal {
	return t.add("has", args...)
}

/*
HasLabel adds a filter step for labels.
*/
func (t *Traversal) HasLabel(labels ...string) *Traversal {
	return t.add("hasLabel", stringArgs(labels)...)
}

/*
HasID adds a filter step for ids.
*/
func (t *Traversal) HasID(ids ...interface{}) *Traversal {
	return t.add("hasId", ids...)
}

/*
Out adds a step to the out vertices.
*/
func (t *Traversal) Out(labels ...string) *Traversal {
	return t.add("out", stringArgs(labels)...)
}

/*
In adds a step to the in vertices.
*/
func (t *Traversal) In(labels ...string) *Traversal {
	return t.add("in", stringArgs(labels)...)
}

/*
Both adds a step to all adjacent vertices.
*/
func (t *Traversal) Both(labels ...string) *Traversal {
	return t.add("both", stringArgs(labels)...)
}

/*
OutE adds a step to the outgoing edges.
*/
func (t *Traversal) OutE(labels ...string) *Traversal {
	return t.add("outE", stringArgs(labels)...)
}

/*
InE adds a step to the incoming edges.
*/
func (t *Traversal) InE(labels ...string) *Traversal {
	return t.add("inE", stringArgs(labels)...)
}

/*
BothE adds a step to all edges.
*/
func (t *Traversal) BothE(labels ...string) *Traversal {
	return t.add("bothE", stringArgs(labels)...)
}

/*
InV adds a step to the in vertex of an edge.
*/
func (t *Traversal) InV() *Traversal {
	return t.add("inV")
}

/*
OutV adds a step to the out vertex of an edge.
*/
func (t *Traversal) OutV() *Traversal {
	return t.add("outV")
}

/*
OtherV adds a step to the vertex of an edge which was not the previous step.
*/
func (t *Traversal) OtherV() *Traversal {
	return t.add("otherV")
}

/*
As labels the current step.
*/
func (t *Traversal) As(labels ...string) *Traversal {
	return t.add("as", stringArgs(labels)...)
}

/*
Select selects labeled steps.
*/
func (t *Traversal) Select(keys ...string) *Traversal {
	return t.add("select", stringArgs(keys)...)
}

/*
By adds a modulator for the previous step.
*/
func (t *Traversal) By(args ...interface{}) *Traversal {
	return t.add("by", args...)
}

/*
Project creates a map for each object.
*/
func (t *Traversal) Project(keys ...string) *Traversal {
	return t.add("project", stringArgs(keys)...)
}

/*
Where adds a filter step with a predicate or an anonymous traversal.
*/
func (t *Traversal) Where(args ...interface{}) *Traversal {
	return t.add("where", args...)
}

/*
Not adds a filter step which removes objects for which the given traversal
has results.
*/
func (t *Traversal) Not(tr *Traversal) *Traversal {
	return t.add("not", tr)
}

/*
Dedup removes duplicate objects.
*/
func (t *Traversal) Dedup() *Traversal {
	return t.add("dedup")
}

/*
Drop removes elements.
*/
func (t *Traversal) Drop() *Traversal {
	return t.add("drop")
}

/*
ElementMap returns a map of all element properties including id and label.
*/
func (t *Traversal) ElementMap(keys ...string) *Traversal {
	return t.add("elementMap", stringArgs(keys)...)
}

/*
ValueMap returns a map of element property values.
*/
func (t *Traversal) ValueMap(args ...interface{}) *Traversal {
	return t.add("valueMap", args...)
}

/*
Values returns element property values.
*/
func (t *Traversal) Values(keys ...string) *Traversal {
	return t.add("values", stringArgs(keys)...)
}

/*
ID returns element ids.
*/
func (t *Traversal) ID() *Traversal {
	return t.add("id")
}

/*
Label returns element labels.
*/
func (t *Traversal) Label() *Traversal {
	return t.add("label")
}

/*
Limit limits the number of objects.
*/
func (t *Traversal) Limit(n int64) *Traversal {
	return t.add("limit", n)
}

/*
Count counts objects.
*/
func (t *Traversal) Count() *Traversal {
	return t.add("count")
}

/*
Fold folds all objects into a list.
*/
func (t *Traversal) Fold() *Traversal {
	return t.add("fold")
}

/*
Unfold unfolds lists.
*/
func (t *Traversal) Unfold() *Traversal {
	return t.add("unfold")
}

/*
Coalesce returns the results of the first given traversal which has results.
*/
func (t *Traversal) Coalesce(trs ...*Traversal) *Traversal {
	args := make([]interface{}, len(trs))
	for i, tr := range trs {
		args[i] = tr
	}
	return t.add("coalesce", args...)
}

/*
Constant replaces objects with a constant value.
*/
func (t *Traversal) Constant(v interface{}) *Traversal {
	return t.add("constant", v)
}

/*
Identity passes objects through.
*/
func (t *Traversal) Identity() *Traversal {
	return t.add("identity")
}

/*
Repeat repeats a given traversal.
*/
func (t *Traversal) Repeat(tr *Traversal) *Traversal {
	return t.add("repeat", tr)
}

/*
Until sets the break condition of a repeat step.
*/
func (t *Traversal) Until(tr *Traversal) *Traversal {
	return t.add("until", tr)
}

/*
SimplePath removes traversers which visited an object more than once.
*/
func (t *Traversal) SimplePath() *Traversal {
	return t.add("simplePath")
}

/*
Path returns the history of each traverser.
*/
func (t *Traversal) Path() *Traversal {
	return t.add("path")
}

// Anonymous traversals
// ====================

/*
AnonymousTraversal spawns anonymous traversals.
*/
type AnonymousTraversal struct {
}

/*
T__ spawns anonymous traversals (e.g. T__.Out("knows")).
*/
var T__ = AnonymousTraversal{}

/*
Out spawns an anonymous out step.
*/
func (AnonymousTraversal) Out(labels ...string) *Traversal {
	return NewAnonymousTraversal().Out(labels...)
}

/*
In spawns an anonymous in step.
*/
func (AnonymousTraversal) In(labels ...string) *Traversal {
	return NewAnonymousTraversal().In(labels...)
}

/*
OutE spawns an anonymous outE step.
*/
func (AnonymousTraversal) OutE(labels ...string) *Traversal {
	return NewAnonymousTraversal().OutE(labels...)
}

/*
InE spawns an anonymous inE step.
*/
func (AnonymousTraversal) InE(labels ...string) *Traversal {
	return NewAnonymousTraversal().InE(labels...)
}

/*
InV spawns an anonymous inV step.
*/
func (AnonymousTraversal) InV() *Traversal {
	return NewAnonymousTraversal().InV()
}

/*
OutV spawns an anonymous outV step.
*/
func (AnonymousTraversal) OutV() *Traversal {
	return NewAnonymousTraversal().OutV()
}

/*
OtherV spawns an anonymous otherV step.
*/
func (AnonymousTraversal) OtherV() *Traversal {
	return NewAnonymousTraversal().OtherV()
}

/*
Has spawns an anonymous has step.
*/
func (AnonymousTraversal) Has(args ...interface{}) *Traversal {
	return NewAnonymousTraversal().Has(args...)
}

/*
HasLabel spawns an anonymous hasLabel step.
*/
func (AnonymousTraversal) HasLabel(labels ...string) *Traversal {
	return NewAnonymousTraversal().HasLabel(labels...)
}

/*
HasID spawns an anonymous hasId step.
*/
func (AnonymousTraversal) HasID(ids ...interface{}) *Traversal {
	return NewAnonymousTraversal().HasID(ids...)
}

/*
AddV spawns an anonymous addV step.
*/
func (AnonymousTraversal) AddV(label string) *Traversal {
	return NewAnonymousTraversal().AddV(label)
}

/*
Unfold spawns an anonymous unfold step.
*/
func (AnonymousTraversal) Unfold() *Traversal {
	return NewAnonymousTraversal().Unfold()
}

/*
ElementMap spawns an anonymous elementMap step.
*/
func (AnonymousTraversal) ElementMap(keys ...string) *Traversal {
	return NewAnonymousTraversal().ElementMap(keys...)
}

/*
Values spawns an anonymous values step.
*/
func (AnonymousTraversal) Values(keys ...string) *Traversal {
	return NewAnonymousTraversal().Values(keys...)
}

/*
SimplePath spawns an anonymous simplePath step.
*/
func (AnonymousTraversal) SimplePath() *Traversal {
	return NewAnonymousTraversal().SimplePath()
}

/*
Identity spawns an anonymous identity step.
*/
func (AnonymousTraversal) Identity() *Traversal {
	return NewAnonymousTraversal().Identity()
}

/*
Constant spawns an anonymous constant step.
*/
func (AnonymousTraversal) Constant(v interface{}) *Traversal {
	return NewAnonymousTraversal().Constant(v)
}
