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
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"devt.de/krotik/common/errorutil"
	"github.com/gorilla/websocket"
)

/*
scriptedServer is a websocket server which answers requests with a given
function.
*/
type scriptedServer struct {
	*httptest.Server
	mutex    *sync.Mutex
	requests []*Request
	respond  func(conn *websocket.Conn, req *Request)
}

func newScriptedServer(respond func(conn *websocket.Conn, req *Request)) *scriptedServer {
	ss := &scriptedServer{mutex: &sync.Mutex{}, respond: respond}

	upgrader := websocket.Upgrader{}

	ss.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for {
			_, frame, err := conn.ReadMessage()
			if err != nil {
				return
			}

			req, err := ParseRequestFrame(frame)
			errorutil.AssertOk(err)

			ss.mutex.Lock()
			ss.requests = append(ss.requests, req)
			ss.mutex.Unlock()

			ss.respond(conn, req)
		}
	}))

	return ss
}

func (ss *scriptedServer) wsURL() string {
	return "ws" + strings.TrimPrefix(ss.URL, "http")
}

func (ss *scriptedServer) lastRequest() *Request {
	ss.mutex.Lock()
	defer ss.mutex.Unlock()

	return ss.requests[len(ss.requests)-1]
}

func sendResponse(conn *websocket.Conn, res *Response) {
	msg, err := res.Marshal()
	errorutil.AssertOk(err)
	errorutil.AssertOk(conn.WriteMessage(websocket.TextMessage, msg))
}

func TestClientPartialResponses(t *testing.T) {
	ctx := context.Background()

	ss := newScriptedServer(func(conn *websocket.Conn, req *Request) {
		sendResponse(conn, &Response{RequestID: req.RequestID, Code: StatusPartialContent,
			Data: []interface{}{int64(1)}})
		sendResponse(conn, &Response{RequestID: "unknown", Code: StatusSuccess})
		sendResponse(conn, &Response{RequestID: req.RequestID, Code: StatusPartialContent,
			Data: []interface{}{&Traverser{2, "x"}}})
		sendResponse(conn, &Response{RequestID: req.RequestID, Code: StatusSuccess,
			Data: []interface{}{int64(3)}})
	})
	defer ss.Close()

	c, err := Dial(ctx, ss.wsURL(), nil)
	errorutil.AssertOk(err)
	defer c.Close()

	if c.URL() != ss.wsURL() || !c.IsOpen() {
		t.Error("Unexpected result:", c.URL(), c.IsOpen())
		return
	}

	res, err := c.Traversal().V().Values("amount").ToList(ctx)
	errorutil.AssertOk(err)

	if len(res) != 4 || res[0] != int64(1) || res[1] != "x" || res[2] != "x" || res[3] != int64(3) {
		t.Error("Unexpected result:", res)
		return
	}

	if req := ss.lastRequest(); req.Processor != ProcessorTraversal || req.Op != OpBytecode {
		t.Error("Unexpected result:", req)
		return
	}
}

func TestClientErrors(t *testing.T) {
	ctx := context.Background()

	ss := newScriptedServer(func(conn *websocket.Conn, req *Request) {
		sendResponse(conn, &Response{RequestID: req.RequestID, Code: StatusServerError,
			Message: "Conflict", Attributes: map[string]interface{}{
				"exceptions": []interface{}{"ConcurrentModificationException"},
			}})
	})
	defer ss.Close()

	c, err := Dial(ctx, ss.wsURL(), nil)
	errorutil.AssertOk(err)
	defer c.Close()

	_, err = c.Traversal().V().ToList(ctx)

	var rerr *ResponseError

	if !errors.As(err, &rerr) || rerr.Code != StatusServerError ||
		!rerr.HasException("ConcurrentModificationException") ||
		err.Error() != "Server error: Conflict (500)" {
		t.Error("Unexpected result:", err)
		return
	}

	// The connection stays usable after an error response

	if !c.IsOpen() {
		t.Error("Connection should still be open")
		return
	}
}

func TestClientConnectionLoss(t *testing.T) {
	ctx := context.Background()

	ss := newScriptedServer(func(conn *websocket.Conn, req *Request) {
		conn.UnderlyingConn().Close()
	})
	defer ss.Close()

	c, err := Dial(ctx, ss.wsURL(), nil)
	errorutil.AssertOk(err)

	_, err = c.Traversal().V().ToList(ctx)

	if !errors.Is(err, ErrConnectionClosed) ||
		err.Error() != "GremlinError: Connection closed (Connection closed prematurely (1006))" {
		t.Error("Unexpected result:", err)
		return
	}

	if c.IsOpen() {
		t.Error("Connection should be closed")
		return
	}

	if _, err = c.Traversal().V().ToList(ctx); !errors.Is(err, ErrNotOpen) {
		t.Error("Unexpected result:", err)
		return
	}

	errorutil.AssertOk(c.Close())
}

func TestClientCancel(t *testing.T) {

	ss := newScriptedServer(func(conn *websocket.Conn, req *Request) {
	})
	defer ss.Close()

	c, err := Dial(context.Background(), ss.wsURL(), nil)
	errorutil.AssertOk(err)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := c.Traversal().V().ToList(ctx); err != context.DeadlineExceeded {
		t.Error("Unexpected result:", err)
		return
	}

	errorutil.AssertOk(c.Close())

	if _, err := c.Traversal().V().ToList(context.Background()); !errors.Is(err, ErrNotOpen) ||
		err.Error() != "GremlinError: WebSocket is not open (GremlinError: Connection closed (Connection closed by client))" {
		t.Error("Unexpected result:", err)
		return
	}
}

func TestClientHandshake(t *testing.T) {
	ctx := context.Background()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		http.Error(w, "Not here", http.StatusNotFound)
	}))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")

	_, err := Dial(ctx, url, nil)

	var herr *HandshakeError

	if !errors.As(err, &herr) || herr.StatusCode != http.StatusForbidden ||
		err.Error() != "Unexpected server response: 403" {
		t.Error("Unexpected result:", err)
		return
	}

	_, err = Dial(ctx, url, http.Header{"Authorization": []string{"sig"}})

	if !errors.As(err, &herr) || herr.StatusCode != http.StatusNotFound {
		t.Error("Unexpected result:", err)
		return
	}

	if _, err = Dial(ctx, "ws://127.0.0.1:1", nil); !errors.Is(err, ErrConnecting) {
		t.Error("Unexpected result:", err)
		return
	}
}

func TestTransaction(t *testing.T) {
	ctx := context.Background()

	ss := newScriptedServer(func(conn *websocket.Conn, req *Request) {
		sendResponse(conn, &Response{RequestID: req.RequestID, Code: StatusNoContent})
	})
	defer ss.Close()

	c, err := Dial(ctx, ss.wsURL(), nil)
	errorutil.AssertOk(err)
	defer c.Close()

	tx := c.Traversal().Tx()

	g, err := tx.Begin()
	errorutil.AssertOk(err)

	if _, err := tx.Begin(); err == nil ||
		err.Error() != "GremlinError: Transaction error (Transaction already started)" {
		t.Error("Unexpected result:", err)
		return
	}

	errorutil.AssertOk(g.AddV("item").Property("sku", "A").Iterate(ctx))

	if req := ss.lastRequest(); req.Processor != ProcessorSession || req.Args["session"] != tx.Session() {
		t.Error("Unexpected result:", req)
		return
	}

	errorutil.AssertOk(tx.Commit(ctx))

	req := ss.lastRequest()

	if bc, ok := req.Args["gremlin"].(*Bytecode); !ok || bc.String() != `g.tx("commit")` ||
		req.Args["session"] != tx.Session() {
		t.Error("Unexpected result:", req)
		return
	}

	if tx.IsOpen() {
		t.Error("Transaction should not be open")
		return
	}

	if err := tx.Rollback(ctx); err == nil ||
		err.Error() != "GremlinError: Transaction error (Transaction is not open)" {
		t.Error("Unexpected result:", err)
		return
	}

	errorutil.AssertOk(tx.Close(ctx))

	if req := ss.lastRequest(); req.Op != OpClose || req.Args["session"] != tx.Session() {
		t.Error("Unexpected result:", req)
		return
	}
}
