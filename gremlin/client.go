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
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

/*
DialTimeout is the timeout for the websocket handshake
*/
var DialTimeout = 10 * time.Second

/*
CloseTimeout is the time the client waits for the close message to be sent
*/
var CloseTimeout = time.Second

/*
Client is a websocket connection to a Gremlin server. A client can be used
concurrently; requests are matched to responses by their request id.
*/
type Client struct {
	url      string
	conn     *websocket.Conn
	wmutex   *sync.Mutex                // Mutex for writing to the websocket
	pmutex   *sync.Mutex                // Mutex for the pending requests and the closed state
	pending  map[string]*pendingRequest // Requests which wait for a response
	closed   bool
	closeErr error
	done     chan struct{}
}

/*
pendingRequest is a request which waits for its response messages.
*/
type pendingRequest struct {
	data   []interface{}
	result chan error
}

/*
Dial connects to a Gremlin server. The given headers are sent with the
websocket handshake.
*/
func Dial(ctx context.Context, url string, header http.Header) (*Client, error) {

	dialer := &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: DialTimeout,
	}

	conn, resp, err := dialer.DialContext(ctx, url, header)

	if err != nil {
		if resp != nil {
			return nil, &HandshakeError{resp.StatusCode, resp.Status}
		}
		return nil, &Error{ErrConnecting, err.Error()}
	}

	c := &Client{
		url:     url,
		conn:    conn,
		wmutex:  &sync.Mutex{},
		pmutex:  &sync.Mutex{},
		pending: make(map[string]*pendingRequest),
		done:    make(chan struct{}),
	}

	go c.readLoop()

	LogDebug("Connected to ", url)

	return c, nil
}

/*
URL returns the server URL of this client.
*/
func (c *Client) URL() string {
	return c.url
}

/*
Traversal returns a traversal source which runs traversals outside of a session.
*/
func (c *Client) Traversal() *Source {
	return NewSource(&clientRemote{c, ""})
}

/*
Tx returns a new transaction for this client.
*/
func (c *Client) Tx() *Transaction {
	return &Transaction{client: c, mutex: &sync.Mutex{}}
}

/*
IsOpen checks if the connection is still open.
*/
func (c *Client) IsOpen() bool {
	c.pmutex.Lock()
	defer c.pmutex.Unlock()

	return !c.closed
}

/*
Submit sends a request to the server and waits for all its response messages.
Cancelling the context stops waiting for the response but does not
cancel the request on the server.
*/
func (c *Client) Submit(ctx context.Context, req *Request) (Result, error) {

	frame, err := req.Frame()
	if err != nil {
		return nil, err
	}

	p := &pendingRequest{result: make(chan error, 1)}

	c.pmutex.Lock()

	if c.closed {
		closeErr := c.closeErr
		c.pmutex.Unlock()
		return nil, &Error{ErrNotOpen, closeErr.Error()}
	}

	c.pending[req.RequestID] = p

	c.pmutex.Unlock()

	c.wmutex.Lock()
	err = c.conn.WriteMessage(websocket.BinaryMessage, frame)
	c.wmutex.Unlock()

	if err != nil {
		c.removePending(req.RequestID)
		return nil, &Error{ErrNotOpen, err.Error()}
	}

	select {
	case err := <-p.result:
		if err != nil {
			return nil, err
		}
		return Result(p.data), nil

	case <-ctx.Done():
		c.removePending(req.RequestID)
		return nil, ctx.Err()
	}
}

/*
Close closes the connection. All pending requests fail.
*/
func (c *Client) Close() error {

	c.pmutex.Lock()
	closed := c.closed
	c.pmutex.Unlock()

	if closed {
		return nil
	}

	err := c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(CloseTimeout))

	if cerr := c.conn.Close(); err == nil {
		err = cerr
	}

	c.shutdown(&Error{ErrConnectionClosed, "Connection closed by client"})

	if err == websocket.ErrCloseSent {
		err = nil
	}

	return err
}

/*
removePending removes a pending request.
*/
func (c *Client) removePending(id string) {
	c.pmutex.Lock()
	delete(c.pending, id)
	c.pmutex.Unlock()
}

/*
shutdown marks the client as closed and fails all pending requests.
*/
func (c *Client) shutdown(err error) {
	c.pmutex.Lock()
	defer c.pmutex.Unlock()

	if c.closed {
		return
	}

	c.closed = true
	c.closeErr = err

	for id, p := range c.pending {
		p.result <- err
		delete(c.pending, id)
	}

	LogDebug("Connection to ", c.url, " closed: ", err)
}

/*
readLoop reads response messages until the connection is closed.
*/
func (c *Client) readLoop() {
	defer close(c.done)

	for {
		_, msg, err := c.conn.ReadMessage()

		if err != nil {
			c.shutdown(closeError(err))
			return
		}

		res, err := ParseResponse(msg)

		if err != nil {
			LogDebug("Discarding unreadable response: ", err)
			continue
		}

		c.dispatch(res)
	}
}

/*
dispatch hands a response message to its pending request.
*/
func (c *Client) dispatch(res *Response) {
	c.pmutex.Lock()

	p, ok := c.pending[res.RequestID]

	if !ok {
		c.pmutex.Unlock()
		LogDebug("Discarding response for unknown request: ", res.RequestID)
		return
	}

	var err error

	switch res.Code {
	case StatusPartialContent:
		p.data = append(p.data, expandTraversers(res.Data)...)
		c.pmutex.Unlock()
		return

	case StatusSuccess, StatusNoContent:
		p.data = append(p.data, expandTraversers(res.Data)...)

	default:
		err = newResponseError(res)
	}

	delete(c.pending, res.RequestID)

	c.pmutex.Unlock()

	p.result <- err
}

/*
expandTraversers replaces traversers with their values according to their bulk.
*/
func expandTraversers(data []interface{}) []interface{} {
	ret := make([]interface{}, 0, len(data))

	for _, d := range data {
		if t, ok := d.(*Traverser); ok {
			for i := int64(0); i < t.Bulk; i++ {
				ret = append(ret, t.Value)
			}
			continue
		}
		ret = append(ret, d)
	}

	return ret
}

/*
closeError creates the error for pending requests of a closed connection.
*/
func closeError(err error) error {

	if ce, ok := err.(*websocket.CloseError); ok {
		if ce.Code == websocket.CloseAbnormalClosure {
			return &Error{ErrConnectionClosed,
				fmt.Sprintf("Connection closed prematurely (%v)", ce.Code)}
		}
		return &Error{ErrConnectionClosed,
			fmt.Sprintf("Connection closed (%v) %v", ce.Code, ce.Text)}
	}

	return &Error{ErrConnectionClosed, err.Error()}
}

/*
clientRemote submits bytecode through a client, optionally bound to a session.
*/
type clientRemote struct {
	client  *Client
	session string
}

/*
Submit sends a bytecode object to the server and waits for the result.
*/
func (r *clientRemote) Submit(ctx context.Context, bc *Bytecode) (Result, error) {
	return r.client.Submit(ctx, NewBytecodeRequest(bc, r.session))
}
