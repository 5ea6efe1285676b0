/*
 * SCSGraph
 *
 * Copyright 2026 SCSGraph Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"devt.de/krotik/common/datautil"
	"devt.de/krotik/scsgraph/graph"
	"devt.de/krotik/scsgraph/gremlin"
	"github.com/gorilla/websocket"
)

/*
ResultBatchSize is the maximum number of results in a single response message
*/
var ResultBatchSize = 64

/*
GremlinEndpoint is the path of the Gremlin websocket endpoint
*/
const GremlinEndpoint = "/gremlin"

/*
GremlinServer serves Gremlin bytecode requests over websockets on top of an
in-memory graph. Requests outside of a session run in their own transaction
which is committed immediately. Requests of a session share one transaction
until the client sends a commit or rollback instruction.
*/
type GremlinServer struct {
	gm       *graph.Manager
	sessions *datautil.MapCache // Open session transactions
	upgrader websocket.Upgrader

	/*
		CheckHeader is an optional check for the handshake headers. The
		handshake is rejected with 403 if the check fails.
	*/
	CheckHeader func(header http.Header) bool
}

/*
NewGremlinServer creates a new Gremlin server for a given graph. Session
transactions which are idle for longer than sessionTimeout seconds are
discarded.
*/
func NewGremlinServer(gm *graph.Manager, sessionTimeout int64) *GremlinServer {
	return &GremlinServer{
		gm:       gm,
		sessions: datautil.NewMapCache(0, sessionTimeout),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

/*
ServeHTTP upgrades a request to a websocket and serves requests until the
connection is closed.
*/
func (gs *GremlinServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {

	if gs.CheckHeader != nil && !gs.CheckHeader(r.Header) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	conn, err := gs.upgrader.Upgrade(w, r, nil)
	if err != nil {
		print("Could not upgrade connection: ", err)
		return
	}

	sc := &serverConn{gs, conn, &sync.Mutex{}}

	sc.serve()
}

/*
serverConn is a single websocket connection of the Gremlin server.
*/
type serverConn struct {
	gs     *GremlinServer
	conn   *websocket.Conn
	wmutex *sync.Mutex
}

/*
serve reads and processes request frames until the connection is closed.
*/
func (sc *serverConn) serve() {
	defer sc.conn.Close()

	for {
		_, frame, err := sc.conn.ReadMessage()
		if err != nil {
			return
		}

		req, err := gremlin.ParseRequestFrame(frame)
		if err != nil {
			sc.send(&gremlin.Response{Code: gremlin.StatusMalformedRequest,
				Message: err.Error()})
			continue
		}

		sc.handle(req)
	}
}

/*
handle processes a single request.
*/
func (sc *serverConn) handle(req *gremlin.Request) {
	session, _ := req.Args["session"].(string)

	switch req.Op {

	case gremlin.OpClose:
		sc.gs.closeSession(session)
		sc.send(&gremlin.Response{RequestID: req.RequestID, Code: gremlin.StatusNoContent})
		return

	case gremlin.OpBytecode:
		break

	default:
		sc.send(&gremlin.Response{RequestID: req.RequestID,
			Code:    gremlin.StatusInvalidRequestArguments,
			Message: fmt.Sprintf("Unsupported operation: %v", req.Op)})
		return
	}

	bc, ok := req.Args["gremlin"].(*gremlin.Bytecode)
	if !ok {
		sc.send(&gremlin.Response{RequestID: req.RequestID,
			Code:    gremlin.StatusInvalidRequestArguments,
			Message: "Request has no bytecode"})
		return
	}

	res, err := sc.gs.run(session, bc)

	if err != nil {
		sc.sendError(req.RequestID, err)
		return
	}

	sc.sendResult(req.RequestID, res)
}

/*
sendResult sends a result in batches of partial content messages.
*/
func (sc *serverConn) sendResult(id string, res []interface{}) {

	if len(res) == 0 {
		sc.send(&gremlin.Response{RequestID: id, Code: gremlin.StatusNoContent})
		return
	}

	for start := 0; start < len(res); start += ResultBatchSize {
		end := start + ResultBatchSize
		code := gremlin.StatusPartialContent

		if end >= len(res) {
			end = len(res)
			code = gremlin.StatusSuccess
		}

		data := make([]interface{}, 0, end-start)
		for _, r := range res[start:end] {
			data = append(data, &gremlin.Traverser{Bulk: 1, Value: r})
		}

		if !sc.send(&gremlin.Response{RequestID: id, Code: code, Data: data}) {
			return
		}
	}
}

/*
sendError sends an error response. Graph conflicts are reported the way
Neptune reports them: status 500 with a JSON status message which contains the
exception name.
*/
func (sc *serverConn) sendError(id string, err error) {
	var ge *graph.GraphError

	if errors.As(err, &ge) && (ge.Type == graph.ErrConcurrentModification ||
		ge.Type == graph.ErrReadOnly) {

		name := ge.Type.Error()

		msg, _ := json.Marshal(map[string]interface{}{
			"requestId":       id,
			"code":            name,
			"detailedMessage": ge.Detail,
		})

		sc.send(&gremlin.Response{
			RequestID:  id,
			Code:       gremlin.StatusServerError,
			Message:    string(msg),
			Attributes: map[string]interface{}{"exceptions": []interface{}{name}},
		})

		return
	}

	sc.send(&gremlin.Response{RequestID: id, Code: gremlin.StatusScriptEvaluationError,
		Message: err.Error()})
}

/*
send writes a response message. Returns false if the message could not be sent.
*/
func (sc *serverConn) send(res *gremlin.Response) bool {
	msg, err := res.Marshal()

	if err != nil {
		msg, _ = (&gremlin.Response{RequestID: res.RequestID,
			Code:    gremlin.StatusServerSerializationError,
			Message: err.Error()}).Marshal()
	}

	sc.wmutex.Lock()
	defer sc.wmutex.Unlock()

	return sc.conn.WriteMessage(websocket.TextMessage, msg) == nil
}

// Request evaluation
// ==================

/*
run evaluates a bytecode object either in its own transaction or in the
transaction of a session.
*/
func (gs *GremlinServer) run(session string, bc *gremlin.Bytecode) ([]interface{}, error) {

	if op, ok := txInstruction(bc); ok {
		return nil, gs.finishSession(session, op)
	}

	if session == "" {
		trans := gs.gm.NewTrans()

		res, err := graph.Eval(trans, bc)
		if err != nil {
			trans.Rollback()
			return nil, err
		}

		return res, trans.Commit()
	}

	trans := gs.sessionTrans(session)

	res, err := graph.Eval(trans, bc)
	if err != nil {

		// A failed traversal invalidates the whole session transaction

		gs.closeSession(session)
	}

	return res, err
}

/*
sessionTrans returns the transaction of a session. A new transaction is
started if the session has none.
*/
func (gs *GremlinServer) sessionTrans(session string) *graph.Trans {

	var trans *graph.Trans

	if t, ok := gs.sessions.Get(session); ok {
		trans = t.(*graph.Trans)
	} else {
		trans = gs.gm.NewTrans()
	}

	// Putting the transaction again resets its age

	gs.sessions.Put(session, trans)

	return trans
}

/*
finishSession commits or rolls back the transaction of a session.
*/
func (gs *GremlinServer) finishSession(session string, op string) error {

	if session == "" {
		return fmt.Errorf("Transaction instruction %v outside of a session", op)
	}

	t, ok := gs.sessions.Get(session)
	gs.sessions.Remove(session)

	if !ok {
		return nil
	}

	trans := t.(*graph.Trans)

	if op == "commit" {
		return trans.Commit()
	}

	trans.Rollback()

	return nil
}

/*
closeSession discards the transaction of a session.
*/
func (gs *GremlinServer) closeSession(session string) {
	if t, ok := gs.sessions.Get(session); ok {
		t.(*graph.Trans).Rollback()
		gs.sessions.Remove(session)
	}
}

/*
txInstruction returns the transaction operation of a bytecode object.
*/
func txInstruction(bc *gremlin.Bytecode) (string, bool) {
	for _, ins := range bc.SourceInstructions {
		if ins.Operator == "tx" && len(ins.Arguments) > 0 {
			return fmt.Sprint(ins.Arguments[0]), true
		}
	}
	return "", false
}
