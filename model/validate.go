/*
 * SCSGraph
 *
 * Copyright 2026 SCSGraph Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package model

import (
	"fmt"
	"sort"
	"time"
)

/*
check is a value check for a single property.
*/
type check struct {
	required bool
	valid    func(v interface{}) bool
}

func isString(v interface{}) bool {
	_, ok := v.(string)
	return ok
}

func isDate(v interface{}) bool {
	switch v.(type) {
	case time.Time, string:
		return true
	}
	return false
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func isNumber(v interface{}) bool {
	_, ok := number(v)
	return ok
}

func isPositive(v interface{}) bool {
	n, ok := number(v)
	return ok && n > 0
}

func isHour(v interface{}) bool {
	n, ok := number(v)
	return ok && n >= 0 && n <= 23
}

func enum(name string) func(v interface{}) bool {
	return func(v interface{}) bool {
		return isEnum(name, v)
	}
}

var customFieldChecks = map[string]check{
	"fieldName": {true, isString},
	"fieldType": {true, enum("CustomFieldType")},
}

/*
checks contains the property checks of all vertex kinds.
*/
var checks = map[VertexLabel]map[string]check{
	LabelLocation: {
		"description":       {true, isString},
		"type":              {true, enum("LocationType")},
		"userDefinedFields": {true, isString},
	},
	LabelItem: {
		"amount":            {true, isNumber},
		"sku":               {true, isString},
		"userDefinedFields": {true, isString},
		"dateEntered":       {false, isDate},
	},
	LabelInventoryPlan: {
		"startDate":    {true, isDate},
		"endDate":      {true, isDate},
		"turnoverHour": {true, isHour},
		"planType":     {true, enum("InventoryPlanType")},
		"dailyRate":    {true, isPositive},
		"itemId":       {false, isString},
	},
	LabelTransferPlan: {
		"shipDate":       {true, isDate},
		"arrivalDate":    {true, isDate},
		"transferAmount": {true, isPositive},
		"fromItemId":     {false, isString},
		"toItemId":       {false, isString},
		"status":         {false, enum("TransferPlanStatus")},
	},
	LabelItemRecord: {
		"dateFrom":   {true, isDate},
		"dateTo":     {true, isDate},
		"fromAmount": {true, isNumber},
		"toAmount":   {true, isNumber},
		"planId":     {true, isString},
	},
	LabelFutureDate: {
		"date":    {true, isDate},
		"daysOut": {true, isNumber},
	},
	LabelRule: {
		"name":       {true, isString},
		"minAllowed": {true, isNumber},
		"maxAllowed": {true, isNumber},
	},
	LabelLocationCustomField: customFieldChecks,
	LabelItemCustomField:     customFieldChecks,
}

/*
Validate checks the properties of a vertex which should be written. If
complete is set then all required properties must be present (create
requests), otherwise only the given properties are checked (update and delete
requests). If hasID is set then the properties must contain a string id,
otherwise they must not contain an id.
*/
func Validate(label VertexLabel, props map[string]interface{}, complete bool, hasID bool) error {

	kindChecks, ok := checks[label]
	if !ok {
		return &Error{ErrUnknownLabel, string(label)}
	}

	id, ok := props["id"]
	if ok != hasID {
		if hasID {
			return &Error{ErrInvalidVertex, "Missing id"}
		}
		return &Error{ErrInvalidVertex, "Unexpected id"}
	} else if hasID && (!isString(id) || id == "") {
		return &Error{ErrInvalidVertex, fmt.Sprint("Invalid id: ", id)}
	}

	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if k == "id" {
			continue
		}

		c, ok := kindChecks[k]
		if !ok {
			return &Error{ErrInvalidVertex, fmt.Sprintf("Unknown property %v of %v", k, label)}
		} else if !c.valid(props[k]) {
			return &Error{ErrInvalidVertex, fmt.Sprintf("Invalid value for %v: %v", k, props[k])}
		}
	}

	if complete {
		required := make([]string, 0, len(kindChecks))
		for k, c := range kindChecks {
			if c.required {
				required = append(required, k)
			}
		}
		sort.Strings(required)

		for _, k := range required {
			if _, ok := props[k]; !ok {
				return &Error{ErrInvalidVertex, fmt.Sprintf("Missing property %v of %v", k, label)}
			}
		}
	}

	return nil
}
