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
	"context"
	"testing"
	"time"

	"devt.de/krotik/common/errorutil"
)

/*
recordingRemote records submitted bytecode and returns a fixed result.
*/
type recordingRemote struct {
	submitted []string
	result    Result
}

func (r *recordingRemote) Submit(ctx context.Context, bc *Bytecode) (Result, error) {
	r.submitted = append(r.submitted, bc.String())
	return r.result, nil
}

func TestTraversalBytecode(t *testing.T) {
	g := NewSource(nil)

	tr := g.V().HasLabel("item").Has("sku", Eq("A")).
		Fold().Coalesce(T__.Unfold(), T__.AddV("item").Property(Single, "sku", "A")).
		ElementMap()

	if res := tr.Bytecode.String(); res != `g.V().hasLabel("item").has("sku",eq("A")).fold().`+
		`coalesce(__.unfold(),__.addV("item").property(single,"sku","A")).elementMap()` {
		t.Error("Unexpected result:", res)
		return
	}

	date := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)

	tr = g.V("l1").As("a").OutE("transfer").Where(T__.InV().HasID("l2")).
		Property("shipDate", date).Limit(1).Select("a").By(TID)

	if res := tr.Bytecode.String(); res != `g.V("l1").as("a").outE("transfer").where(__.inV().hasId("l2")).`+
		`property("shipDate",datetime("2023-05-01T00:00:00Z")).limit(1).select("a").by(T.id)` {
		t.Error("Unexpected result:", res)
		return
	}

	// Traversals of a source do not share their steps

	tr1 := g.V().Out()
	tr2 := g.V().In()

	if tr1.Bytecode.String() != "g.V().out()" || tr2.Bytecode.String() != "g.V().in()" {
		t.Error("Unexpected result:", tr1.Bytecode, tr2.Bytecode)
		return
	}

	if _, err := NewAnonymousTraversal().Out().ToList(context.Background()); err == nil ||
		err.Error() != "GremlinError: Traversal has no remote connection (g.out())" {
		t.Error("Unexpected result:", err)
		return
	}
}

func TestTerminalSteps(t *testing.T) {
	ctx := context.Background()
	remote := &recordingRemote{result: Result{"a", "b"}}
	g := NewSource(remote)

	res, err := g.V().Values("sku").ToList(ctx)
	if err != nil || len(res) != 2 {
		t.Error("Unexpected result:", res, err)
		return
	}

	next, err := g.V().Values("sku").Next(ctx)
	if err != nil || next != "a" {
		t.Error("Unexpected result:", next, err)
		return
	}

	ok, err := g.V().Count().HasNext(ctx)
	if err != nil || !ok {
		t.Error("Unexpected result:", ok, err)
		return
	}

	errorutil.AssertOk(g.V("x").Drop().Iterate(ctx))

	if last := remote.submitted[len(remote.submitted)-1]; last != `g.V("x").drop().none()` {
		t.Error("Unexpected result:", last)
		return
	}

	remote.result = nil

	if ok, err := g.V().HasNext(ctx); err != nil || ok {
		t.Error("Unexpected result:", ok, err)
		return
	}

	if g.Tx() != nil {
		t.Error("Source without client should not provide transactions")
		return
	}
}

func TestRequestFrame(t *testing.T) {
	bc := NewSource(nil).V().HasLabel("item").Bytecode

	req := NewBytecodeRequest(bc, "s1")

	frame, err := req.Frame()
	errorutil.AssertOk(err)

	if int(frame[0]) != len(MimeType) || string(frame[1:len(MimeType)+1]) != MimeType {
		t.Error("Unexpected result:", string(frame))
		return
	}

	parsed, err := ParseRequestFrame(frame)
	errorutil.AssertOk(err)

	if parsed.RequestID != req.RequestID || parsed.Op != OpBytecode ||
		parsed.Processor != ProcessorSession || parsed.Args["session"] != "s1" {
		t.Error("Unexpected result:", parsed)
		return
	}

	if pbc, ok := parsed.Args["gremlin"].(*Bytecode); !ok || pbc.String() != `g.V().hasLabel("item")` {
		t.Error("Unexpected result:", parsed.Args["gremlin"])
		return
	}

	if req := NewBytecodeRequest(bc, ""); req.Processor != ProcessorTraversal || req.Args["session"] != nil {
		t.Error("Unexpected result:", req)
		return
	}

	if _, err := ParseRequestFrame([]byte{}); err == nil ||
		err.Error() != "GremlinError: Protocol error (Empty request)" {
		t.Error("Unexpected result:", err)
		return
	}

	if _, err := ParseRequestFrame(append([]byte{4}, "text{}"...)); err == nil ||
		err.Error() != "GremlinError: Protocol error (Unsupported mime type: text)" {
		t.Error("Unexpected result:", err)
		return
	}

	if _, err := ParseRequestFrame([]byte(`{"op":"eval"}`)); err == nil ||
		err.Error() != "GremlinError: Protocol error (Request has no id)" {
		t.Error("Unexpected result:", err)
		return
	}
}

func TestResponseMessages(t *testing.T) {

	msg, err := (&Response{RequestID: "r1", Code: StatusSuccess, Data: []interface{}{int64(1)}}).Marshal()
	errorutil.AssertOk(err)

	res, err := ParseResponse(msg)
	if err != nil || res.RequestID != "r1" || res.Code != StatusSuccess || len(res.Data) != 1 ||
		res.Data[0] != int64(1) {
		t.Error("Unexpected result:", res, err)
		return
	}

	res, err = ParseResponse([]byte(`{"requestId":"r2","status":{"code":500,
		"message":"{\"code\":\"ConcurrentModificationException\",\"detailedMessage\":\"Conflict\"}",
		"attributes":{"exceptions":["org.apache.tinkerpop.gremlin.driver.exception.ResponseException"]}},
		"result":{"data":null}}`))
	errorutil.AssertOk(err)

	rerr := newResponseError(res)

	if rerr.Code != StatusServerError || len(rerr.Exceptions) != 2 ||
		!rerr.HasException("ConcurrentModificationException") ||
		!rerr.HasException("ResponseException") || rerr.HasException("ConstraintViolationException") {
		t.Error("Unexpected result:", rerr)
		return
	}

	if _, err := ParseResponse([]byte(`{"requestId":"r3"}`)); err == nil ||
		err.Error() != "GremlinError: Protocol error (Response has no status)" {
		t.Error("Unexpected result:", err)
		return
	}
}
