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
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

/*
Request is a request message which is sent to the server.
*/
type Request struct {
	RequestID string
	Op        string
	Processor string
	Args      map[string]interface{}
}

/*
NewBytecodeRequest creates a request which runs a given bytecode. The request
is bound to a session if a session id is given.
*/
func NewBytecodeRequest(bc *Bytecode, session string) *Request {
	args := map[string]interface{}{
		"gremlin": bc,
		"aliases": map[string]interface{}{"g": "g"},
	}

	processor := ProcessorTraversal

	if session != "" {
		processor = ProcessorSession
		args["session"] = session
	}

	return &Request{uuid.NewString(), OpBytecode, processor, args}
}

/*
NewCloseRequest creates a request which closes a server side session.
*/
func NewCloseRequest(session string) *Request {
	return &Request{uuid.NewString(), OpClose, ProcessorSession,
		map[string]interface{}{"session": session}}
}

/*
Frame returns the binary websocket frame of this request.
*/
func (r *Request) Frame() ([]byte, error) {
	var id interface{} = r.RequestID

	if u, err := uuid.Parse(r.RequestID); err == nil {
		id = u
	}

	data, err := MarshalGraphSON(map[string]interface{}{
		"requestId": id,
		"op":        r.Op,
		"processor": r.Processor,
		"args":      r.Args,
	})

	if err != nil {
		return nil, err
	}

	frame := make([]byte, 0, len(MimeType)+len(data)+1)
	frame = append(frame, byte(len(MimeType)))
	frame = append(frame, MimeType...)

	return append(frame, data...), nil
}

/*
ParseRequestFrame parses a request frame. Frames without a mime type prefix
are accepted if they contain a JSON object.
*/
func ParseRequestFrame(frame []byte) (*Request, error) {

	if len(frame) == 0 {
		return nil, &Error{ErrProtocol, "Empty request"}
	}

	if frame[0] != '{' {
		l := int(frame[0])

		if len(frame) < l+1 {
			return nil, &Error{ErrProtocol, "Invalid mime type header"}
		}

		if mt := string(frame[1 : l+1]); mt != MimeType {
			return nil, &Error{ErrProtocol, fmt.Sprintf("Unsupported mime type: %v", mt)}
		}

		frame = frame[l+1:]
	}

	res, err := UnmarshalGraphSON(frame)
	if err != nil {
		return nil, err
	}

	m, ok := res.(map[string]interface{})
	if !ok {
		return nil, &Error{ErrProtocol, "Request is not an object"}
	}

	req := &Request{
		RequestID: stringOf(m["requestId"]),
		Op:        stringOf(m["op"]),
		Processor: stringOf(m["processor"]),
		Args:      map[string]interface{}{},
	}

	if args, ok := m["args"].(map[string]interface{}); ok {
		req.Args = args
	}

	if req.RequestID == "" {
		return nil, &Error{ErrProtocol, "Request has no id"}
	}

	return req, nil
}

/*
Response is a response message which is sent by the server.
*/
type Response struct {
	RequestID  string
	Code       int
	Message    string
	Attributes map[string]interface{}
	Data       []interface{}
}

/*
Marshal encodes this response as JSON.
*/
func (r *Response) Marshal() ([]byte, error) {
	var data interface{}

	if r.Data != nil {
		data = r.Data
	}

	attrs := r.Attributes
	if attrs == nil {
		attrs = map[string]interface{}{}
	}

	gattrs, err := ToGraphSON(attrs)
	if err != nil {
		return nil, err
	}

	gdata, err := ToGraphSON(data)
	if err != nil {
		return nil, err
	}

	return json.Marshal(map[string]interface{}{
		"requestId": r.RequestID,
		"status": map[string]interface{}{
			"code":       r.Code,
			"message":    r.Message,
			"attributes": gattrs,
		},
		"result": map[string]interface{}{
			"data": gdata,
			"meta": map[string]interface{}{},
		},
	})
}

/*
ParseResponse parses a response message.
*/
func ParseResponse(msg []byte) (*Response, error) {
	res, err := UnmarshalGraphSON(msg)
	if err != nil {
		return nil, err
	}

	m, ok := res.(map[string]interface{})
	if !ok {
		return nil, &Error{ErrProtocol, "Response is not an object"}
	}

	status, _ := m["status"].(map[string]interface{})
	if status == nil {
		return nil, &Error{ErrProtocol, "Response has no status"}
	}

	code, err := toInt64(status["code"])
	if err != nil {
		return nil, &Error{ErrProtocol, "Response has no status code"}
	}

	ret := &Response{
		RequestID: stringOf(m["requestId"]),
		Code:      int(code),
		Message:   stringOf(status["message"]),
	}

	ret.Attributes, _ = status["attributes"].(map[string]interface{})

	if result, ok := m["result"].(map[string]interface{}); ok {
		switch data := result["data"].(type) {
		case nil:
		case []interface{}:
			ret.Data = data
		default:
			ret.Data = []interface{}{data}
		}
	}

	return ret, nil
}

/*
newResponseError creates an error object from an error response.
*/
func newResponseError(res *Response) *ResponseError {
	ret := &ResponseError{
		RequestID: res.RequestID,
		Code:      res.Code,
		Message:   res.Message,
	}

	if excs, ok := res.Attributes["exceptions"].([]interface{}); ok {
		for _, e := range excs {
			ret.Exceptions = append(ret.Exceptions, fmt.Sprint(e))
		}
	}

	// Some servers send a JSON object with an error code as status message

	var detail struct {
		Code string `json:"code"`
	}

	if err := json.Unmarshal([]byte(res.Message), &detail); err == nil && detail.Code != "" {
		ret.Exceptions = append(ret.Exceptions, detail.Code)
	}

	return ret
}
