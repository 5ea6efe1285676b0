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
	"sync"

	"github.com/google/uuid"
)

/*
Transaction is a server side session. All traversals of the source returned
by Begin are part of the transaction.
*/
type Transaction struct {
	client  *Client
	session string
	open    bool
	mutex   *sync.Mutex
}

/*
Begin starts the transaction and returns a source for traversals within the
transaction.
*/
func (tx *Transaction) Begin() (*Source, error) {
	tx.mutex.Lock()
	defer tx.mutex.Unlock()

	if tx.open {
		return nil, &Error{ErrTransaction, "Transaction already started"}
	}

	tx.session = uuid.NewString()
	tx.open = true

	return NewSource(&clientRemote{tx.client, tx.session}), nil
}

/*
Session returns the session id of this transaction.
*/
func (tx *Transaction) Session() string {
	tx.mutex.Lock()
	defer tx.mutex.Unlock()

	return tx.session
}

/*
IsOpen checks if the transaction is started and was not committed or rolled back.
*/
func (tx *Transaction) IsOpen() bool {
	tx.mutex.Lock()
	defer tx.mutex.Unlock()

	return tx.open
}

/*
Commit commits all changes of the transaction.
*/
func (tx *Transaction) Commit(ctx context.Context) error {
	return tx.finish(ctx, "commit")
}

/*
Rollback discards all changes of the transaction.
*/
func (tx *Transaction) Rollback(ctx context.Context) error {
	return tx.finish(ctx, "rollback")
}

/*
finish sends a commit or rollback instruction.
*/
func (tx *Transaction) finish(ctx context.Context, op string) error {
	tx.mutex.Lock()
	defer tx.mutex.Unlock()

	if !tx.open {
		return &Error{ErrTransaction, "Transaction is not open"}
	}

	tx.open = false

	bc := NewBytecode()
	bc.AddSource("tx", op)

	_, err := tx.client.Submit(ctx, NewBytecodeRequest(bc, tx.session))

	return err
}

/*
Close closes the server side session. An open transaction is rolled back
first.
*/
func (tx *Transaction) Close(ctx context.Context) error {

	if tx.IsOpen() {
		if err := tx.Rollback(ctx); err != nil {
			return err
		}
	}

	tx.mutex.Lock()
	session := tx.session
	tx.mutex.Unlock()

	if session == "" {
		return nil
	}

	_, err := tx.client.Submit(ctx, NewCloseRequest(session))

	return err
}
