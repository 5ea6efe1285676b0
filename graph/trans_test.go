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
	"testing"

	"devt.de/krotik/common/errorutil"
)

func TestTransCommitRollback(t *testing.T) {
	gm := NewManager()

	trans := gm.NewTrans()

	v1, err := trans.AddVertex("location")
	errorutil.AssertOk(err)
	v2, err := trans.AddVertex("item")
	errorutil.AssertOk(err)

	_, err = trans.SetVertexProperty(v1.ID(), "description", "Berlin")
	errorutil.AssertOk(err)

	e, err := trans.AddEdge("resides", v2.ID(), v1.ID())
	errorutil.AssertOk(err)

	// Nothing is visible before commit

	if res := gm.VertexCount(); res != 0 {
		t.Error("Unexpected result:", res)
		return
	}

	if res := trans.String(); res != "Transaction "+trans.ID()+" - Written elements: 3" {
		t.Error("Unexpected result:", res)
		return
	}

	if err := trans.Commit(); err != nil {
		t.Error(err)
		return
	}

	if res := gm.VertexCount(); res != 2 {
		t.Error("Unexpected result:", res)
		return
	}

	if res := gm.EdgeCount(); res != 1 {
		t.Error("Unexpected result:", res)
		return
	}

	if res, _ := gm.FetchVertex(v1.ID()).Property("description"); res != "Berlin" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := gm.FetchEdge(e.ID()); res.OutV() != v2.ID() || res.InV() != v1.ID() {
		t.Error("Unexpected result:", res)
		return
	}

	if err := trans.Commit(); err == nil || !errors.Is(err, ErrTransClosed) {
		t.Error("Unexpected result:", err)
		return
	}

	// Rollback discards changes

	trans = gm.NewTrans()
	errorutil.AssertOk(trans.RemoveVertex(v1.ID()))

	if res := trans.Vertex(v1.ID()); res != nil {
		t.Error("Unexpected result:", res)
		return
	}

	if res := trans.Edge(e.ID()); res != nil {
		t.Error("Edge should be removed with its vertex:", res)
		return
	}

	trans.Rollback()

	if res := gm.VertexCount(); res != 2 {
		t.Error("Unexpected result:", res)
		return
	}

	// Removing a vertex removes its edges

	trans = gm.NewTrans()
	errorutil.AssertOk(trans.RemoveVertex(v1.ID()))
	errorutil.AssertOk(trans.Commit())

	if res := gm.VertexCount(); res != 1 {
		t.Error("Unexpected result:", res)
		return
	}

	if res := gm.EdgeCount(); res != 0 {
		t.Error("Unexpected result:", res)
		return
	}

	if res := len(gm.NewTrans().InEdges(v1.ID())); res != 0 {
		t.Error("Unexpected result:", res)
		return
	}
}

func TestTransConflict(t *testing.T) {
	gm := NewManager()

	trans := gm.NewTrans()
	v, _ := trans.AddVertex("item")
	errorutil.AssertOk(trans.Commit())

	t1 := gm.NewTrans()
	t2 := gm.NewTrans()

	_, err := t1.SetVertexProperty(v.ID(), "sku", "a")
	errorutil.AssertOk(err)
	_, err = t2.SetVertexProperty(v.ID(), "sku", "b")
	errorutil.AssertOk(err)

	errorutil.AssertOk(t1.Commit())

	err = t2.Commit()

	if ge, ok := err.(*GraphError); !ok || ge.Type != ErrConcurrentModification {
		t.Error("Unexpected result:", err)
		return
	}

	if res, _ := gm.FetchVertex(v.ID()).Property("sku"); res != "a" {
		t.Error("Unexpected result:", res)
		return
	}

	// Transactions which write different elements do not conflict

	t1 = gm.NewTrans()
	t2 = gm.NewTrans()

	t1.AddVertex("item")
	t2.AddVertex("item")

	errorutil.AssertOk(t1.Commit())
	errorutil.AssertOk(t2.Commit())

	if res := gm.VertexCount(); res != 3 {
		t.Error("Unexpected result:", res)
		return
	}
}

func TestTransReadOnly(t *testing.T) {
	gm := NewManager()
	gm.SetReadOnly(true)

	trans := gm.NewTrans()

	if _, err := trans.AddVertex("item"); !errors.Is(err, ErrReadOnly) {
		t.Error("Unexpected result:", err)
		return
	}

	if err := trans.Commit(); err != nil {
		t.Error("Empty transactions should commit:", err)
		return
	}

	gm.SetReadOnly(false)

	trans = gm.NewTrans()
	trans.AddVertex("item")

	gm.SetReadOnly(true)

	if err := trans.Commit(); err == nil || err.Error() !=
		"GraphError: ReadOnlyViolationException (Graph is read-only)" {
		t.Error("Unexpected result:", err)
		return
	}

	if gm.VertexCount() != 0 || !gm.IsReadOnly() {
		t.Error("Unexpected state")
		return
	}
}

func TestTransErrors(t *testing.T) {
	gm := NewManager()
	trans := gm.NewTrans()

	if _, err := trans.AddVertex(""); err == nil || err.Error() !=
		"GraphError: Invalid data (Vertex is missing a label)" {
		t.Error("Unexpected result:", err)
		return
	}

	if _, err := trans.AddEdge("resides", "a", "b"); err == nil || err.Error() !=
		"GraphError: Invalid data (Edge endpoint does not exist: a -> b)" {
		t.Error("Unexpected result:", err)
		return
	}

	if _, err := trans.SetVertexProperty("a", "x", 1); !errors.Is(err, ErrInvalidData) {
		t.Error("Unexpected result:", err)
		return
	}

	if _, err := trans.SetEdgeProperty("a", "x", 1); !errors.Is(err, ErrInvalidData) {
		t.Error("Unexpected result:", err)
		return
	}

	if err := trans.RemoveEdge("a"); err != nil {
		t.Error(err)
		return
	}

	trans.Rollback()

	if _, err := trans.AddVertex("item"); !errors.Is(err, ErrTransClosed) {
		t.Error("Unexpected result:", err)
		return
	}

	if res := trans.Vertices(); res != nil {
		t.Error("Unexpected result:", res)
		return
	}
}
