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
	"errors"
	"fmt"
	"testing"

	"devt.de/krotik/common/errorutil"
	"devt.de/krotik/scsgraph/gremlin"
)

/*
g returns a new traversal for building test bytecode.
*/
func g() *gremlin.Traversal {
	return gremlin.NewAnonymousTraversal()
}

/*
evalOk runs a traversal and panics on errors.
*/
func evalOk(trans *Trans, t *gremlin.Traversal) []interface{} {
	res, err := Eval(trans, t.Bytecode)
	errorutil.AssertOk(err)
	return res
}

/*
createTestGraph creates a small supply chain graph:

	item1 -resides-> loc1, item2 -resides-> loc2, loc1 -transfer-> loc2
*/
func createTestGraph() (*Manager, map[string]string) {
	gm := NewManager()
	trans := gm.NewTrans()
	ids := make(map[string]string)

	addV := func(name, label string, props ...interface{}) {
		t := g().AddV(label).Property(gremlin.Single, "name", name)
		for i := 0; i < len(props); i += 2 {
			t.Property(gremlin.Single, props[i], props[i+1])
		}
		res := evalOk(trans, t.ElementMap())
		ids[name] = res[0].(map[string]interface{})["id"].(string)
	}

	addE := func(label, from, to string) {
		evalOk(trans, g().V(ids[from]).As("a").V(ids[to]).As("b").
			AddE(label).From("a").To("b"))
	}

	addV("loc1", "location", "description", "Berlin")
	addV("loc2", "location", "description", "Hamburg")
	addV("item1", "item", "sku", "sku1", "amount", 10)
	addV("item2", "item", "sku", "sku2", "amount", 20)

	addE("resides", "item1", "loc1")
	addE("resides", "item2", "loc2")
	addE("transfer", "loc1", "loc2")

	errorutil.AssertOk(trans.Commit())

	return gm, ids
}

func TestEvalBasicSteps(t *testing.T) {
	gm, ids := createTestGraph()
	trans := gm.NewTrans()

	if res := evalOk(trans, g().V().Count()); fmt.Sprint(res) != "[4]" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := evalOk(trans, g().V().HasLabel("location").Values("description")); fmt.Sprint(res) != "[Berlin Hamburg]" {
		t.Error("Unexpected result:", res)
		return
	}

	res := evalOk(trans, g().V(ids["item1"]).HasLabel("item").ElementMap())
	pm := gremlin.ToPropertyMap(res[0])

	if pm.ID() != ids["item1"] || pm.Label() != "item" || pm.Str("sku") != "sku1" || pm.Int("amount") != 10 {
		t.Error("Unexpected result:", pm)
		return
	}

	// Wrong label gives no result

	if res := evalOk(trans, g().V(ids["item1"]).HasLabel("location").ElementMap()); len(res) != 0 {
		t.Error("Unexpected result:", res)
		return
	}

	if res := evalOk(trans, g().V().Has("item", "sku", "sku2").Values("amount")); fmt.Sprint(res) != "[20]" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := evalOk(trans, g().V().Has("amount", gremlin.Gt(15)).Values("name")); fmt.Sprint(res) != "[item2]" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := evalOk(trans, g().V().HasID(gremlin.Within(ids["loc1"], ids["loc2"])).Values("name")); fmt.Sprint(res) != "[loc1 loc2]" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := evalOk(trans, g().V(ids["loc1"]).In("resides").Values("name")); fmt.Sprint(res) != "[item1]" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := evalOk(trans, g().V(ids["loc1"]).Both().Values("name")); fmt.Sprint(res) != "[loc2 item1]" {
		t.Error("Unexpected result:", res)
		return
	}

	res = evalOk(trans, g().V(ids["loc1"]).OutE("transfer").ElementMap())
	pm = gremlin.ToPropertyMap(res[0])

	if pm.Label() != "transfer" || pm.Map("OUT").ID() != ids["loc1"] || pm.Map("IN").ID() != ids["loc2"] {
		t.Error("Unexpected result:", pm)
		return
	}

	if res := evalOk(trans, g().V(ids["loc2"]).InE().OtherV().Values("name")); fmt.Sprint(res) != "[item2 loc1]" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := evalOk(trans, g().V().HasLabel("item").Values("sku").Fold()); fmt.Sprint(res) != "[[sku1 sku2]]" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := evalOk(trans, g().V().HasLabel("item").Limit(1).Values("sku")); fmt.Sprint(res) != "[sku1]" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := evalOk(trans, g().V().Out().In().Dedup().Values("name")); fmt.Sprint(res) != "[item2 loc1 item1]" {
		t.Error("Unexpected result:", res)
		return
	}

	res = evalOk(trans, g().V(ids["item1"]).ValueMap(true, "sku"))
	if m := res[0].(map[string]interface{}); fmt.Sprint(m["sku"]) != "[sku1]" || m["label"] != "item" {
		t.Error("Unexpected result:", m)
		return
	}

	if res := evalOk(trans, g().V(ids["item1"]).Label()); fmt.Sprint(res) != "[item]" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := evalOk(trans, g().V(ids["item1"]).ID()); fmt.Sprint(res) != "["+ids["item1"]+"]" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := evalOk(trans, g().V().Not(gremlin.T__.InE()).Values("name")); fmt.Sprint(res) != "[item1 item2]" {
		t.Error("Unexpected result:", res)
		return
	}

	// Vertices are exported as references

	res = evalOk(trans, g().V(ids["item1"]))
	if v, ok := res[0].(*gremlin.Vertex); !ok || v.ID != ids["item1"] || v.Label != "item" {
		t.Error("Unexpected result:", res[0])
		return
	}
}

func TestEvalSelectProject(t *testing.T) {
	gm, ids := createTestGraph()
	trans := gm.NewTrans()

	res := evalOk(trans, g().V(ids["loc1"]).As("location").
		InE("resides").OutV().HasLabel("item").As("item").
		Select("location", "item").By(gremlin.T__.ElementMap()))

	if len(res) != 1 {
		t.Error("Unexpected result:", res)
		return
	}

	pm := gremlin.ToPropertyMap(res[0])

	if pm.Map("location").Str("description") != "Berlin" || pm.Map("item").Str("sku") != "sku1" {
		t.Error("Unexpected result:", pm)
		return
	}

	res = evalOk(trans, g().V(ids["loc1"]).OutE("transfer").
		Project("from", "edge", "to").By(gremlin.T__.OutV()).By(gremlin.T__.ElementMap()).By(gremlin.T__.InV()))

	m := res[0].(map[string]interface{})

	if v := m["from"].(*gremlin.Vertex); v.ID != ids["loc1"] {
		t.Error("Unexpected result:", m)
		return
	}

	if v := m["to"].(*gremlin.Vertex); v.ID != ids["loc2"] {
		t.Error("Unexpected result:", m)
		return
	}

	if em := m["edge"].(map[string]interface{}); em["label"] != "transfer" {
		t.Error("Unexpected result:", m)
		return
	}

	// Select with a property key modulator

	if res := evalOk(trans, g().V(ids["item1"]).As("i").Select("i").By("sku")); fmt.Sprint(res) != "[sku1]" {
		t.Error("Unexpected result:", res)
		return
	}

	// Unknown labels filter traversers

	if res := evalOk(trans, g().V().Select("x")); len(res) != 0 {
		t.Error("Unexpected result:", res)
		return
	}

	// Where with two labels

	res = evalOk(trans, g().V(ids["loc1"]).As("a").Out("transfer").As("b").
		Where("a", gremlin.Neq("b")).Values("name"))

	if fmt.Sprint(res) != "[loc2]" {
		t.Error("Unexpected result:", res)
		return
	}

	res = evalOk(trans, g().V(ids["loc1"]).As("a").Out("transfer").As("b").
		Where("a", gremlin.Eq("b")).Values("name"))

	if len(res) != 0 {
		t.Error("Unexpected result:", res)
		return
	}

	res = evalOk(trans, g().V().HasLabel("location").
		Where(gremlin.T__.OutE("transfer")).Values("name"))

	if fmt.Sprint(res) != "[loc1]" {
		t.Error("Unexpected result:", res)
		return
	}
}

func TestEvalRepeatPath(t *testing.T) {
	gm, ids := createTestGraph()
	trans := gm.NewTrans()

	res := evalOk(trans, g().V(ids["item1"]).HasLabel("item").
		Repeat(gremlin.T__.Out().SimplePath()).
		Until(gremlin.T__.HasID(ids["loc2"]).HasLabel("location")).
		Path().Limit(1))

	p, ok := res[0].(*gremlin.Path)
	if !ok || len(p.Objects) != 3 {
		t.Error("Unexpected result:", res)
		return
	}

	if v := p.Objects[2].(*gremlin.Vertex); v.ID != ids["loc2"] {
		t.Error("Unexpected result:", p.Objects)
		return
	}

	// No path in the other direction

	res = evalOk(trans, g().V(ids["loc2"]).
		Repeat(gremlin.T__.Out().SimplePath()).
		Until(gremlin.T__.HasID(ids["item1"])).
		Path().Limit(1))

	if len(res) != 0 {
		t.Error("Unexpected result:", res)
		return
	}

	if _, err := Eval(trans, g().V().Repeat(gremlin.T__.Out()).Bytecode); err == nil ||
		err.Error() != "GraphError: Invalid traversal (repeat() requires until())" {
		t.Error("Unexpected result:", err)
		return
	}
}

func TestEvalMutations(t *testing.T) {
	gm, ids := createTestGraph()
	trans := gm.NewTrans()

	// Coalesce based unique create

	unique := func(desc string) []interface{} {
		return evalOk(trans, g().V().HasLabel("location").Has("description", desc).Fold().
			Coalesce(gremlin.T__.Unfold(), gremlin.T__.AddV("location").
				Property(gremlin.Single, "description", desc)).ElementMap())
	}

	res := unique("Berlin")
	if pm := gremlin.ToPropertyMap(res[0]); pm.ID() != ids["loc1"] {
		t.Error("Unexpected result:", pm)
		return
	}

	res = unique("Munich")
	res2 := unique("Munich")

	if gremlin.ToPropertyMap(res[0]).ID() != gremlin.ToPropertyMap(res2[0]).ID() {
		t.Error("Unexpected result:", res, res2)
		return
	}

	if res := evalOk(trans, g().V().HasLabel("location").Count()); fmt.Sprint(res) != "[3]" {
		t.Error("Unexpected result:", res)
		return
	}

	// Update is visible in the same traversal

	res = evalOk(trans, g().V(ids["item1"]).Property(gremlin.Single, "amount", 11).ElementMap())
	if pm := gremlin.ToPropertyMap(res[0]); pm.Int("amount") != 11 {
		t.Error("Unexpected result:", pm)
		return
	}

	// Edge properties

	res = evalOk(trans, g().V(ids["loc1"]).OutE("transfer").Property("leadTime", 5).ElementMap())
	if pm := gremlin.ToPropertyMap(res[0]); pm.Int("leadTime") != 5 {
		t.Error("Unexpected result:", pm)
		return
	}

	// Drop edges and vertices

	evalOk(trans, g().V(ids["loc1"]).InE("resides").Drop())

	if res := evalOk(trans, g().V(ids["loc1"]).InE("resides").Count()); fmt.Sprint(res) != "[0]" {
		t.Error("Unexpected result:", res)
		return
	}

	evalOk(trans, g().V().HasLabel("item").Drop())

	if res := evalOk(trans, g().E().Count()); fmt.Sprint(res) != "[1]" {
		t.Error("Unexpected result:", res)
		return
	}

	// Nothing was committed yet

	if res := gm.VertexCount(); res != 4 {
		t.Error("Unexpected result:", res)
		return
	}

	errorutil.AssertOk(trans.Commit())

	if res := gm.VertexCount(); res != 3 {
		t.Error("Unexpected result:", res)
		return
	}

	// Anonymous endpoint traversals for addE

	trans = gm.NewTrans()

	res = evalOk(trans, g().V(ids["loc2"]).AddE("transfer").To(gremlin.T__.V(ids["loc1"])).ElementMap())
	if pm := gremlin.ToPropertyMap(res[0]); pm.Map("OUT").ID() != ids["loc2"] || pm.Map("IN").ID() != ids["loc1"] {
		t.Error("Unexpected result:", pm)
		return
	}

	// Missing endpoints produce no edge

	if res := evalOk(trans, g().V("unknown").As("a").V(ids["loc1"]).As("b").AddE("transfer").From("a").To("b")); len(res) != 0 {
		t.Error("Unexpected result:", res)
		return
	}
}

func TestEvalErrors(t *testing.T) {
	gm, _ := createTestGraph()
	trans := gm.NewTrans()

	check := func(tr *gremlin.Traversal, expected error) {
		t.Helper()

		if _, err := Eval(trans, tr.Bytecode); !errors.Is(err, expected) {
			t.Error("Unexpected result:", err)
		}
	}

	unknown := g().V()
	unknown.Bytecode.AddStep("foo")

	check(unknown, ErrUnknownStep)
	check(g().By("x"), ErrInvalidTraversal)
	check(g().V().Property("x"), ErrInvalidTraversal)
	check(g().V().Count().Out(), ErrInvalidTraversal)
	check(g().V().ElementMap().ElementMap(), ErrInvalidTraversal)
	check(g().AddE("x"), ErrInvalidTraversal)

	gm.SetReadOnly(true)

	check(g().AddV("item"), ErrReadOnly)

	if res, err := Eval(trans, gremlin.NewBytecode()); err != nil || len(res) != 0 {
		t.Error("Unexpected result:", res, err)
		return
	}

	trans.Rollback()

	check(g().V(), ErrTransClosed)
}
