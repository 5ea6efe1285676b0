/*
 * SCSGraph
 *
 * Copyright 2026 SCSGraph Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package dataaccess

import (
	"errors"
	"fmt"
)

/*
Error is a data access related error
*/
type Error struct {
	Type   error  // Error type (to be used for equal checks)
	Detail string // Details of this error
}

/*
Error returns a human-readable string representation of this error.
*/
func (de *Error) Error() string {
	if de.Detail != "" {
		return fmt.Sprintf("DataAccessError: %v (%v)", de.Type, de.Detail)
	}

	return fmt.Sprintf("DataAccessError: %v", de.Type)
}

/*
Unwrap returns the error type.
*/
func (de *Error) Unwrap() error {
	return de.Type
}

/*
Data access related error types
*/
var (
	ErrDuplicateSKU = errors.New("An item with same SKU already resides in this location")
	ErrRelationship = errors.New("Item to Location relationship failed")
)
