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
	"errors"
	"fmt"
	"testing"
	"time"

	"devt.de/krotik/scsgraph/gremlin"
)

func TestLabels(t *testing.T) {

	if l, err := ParseVertexLabel("inventory-plan"); err != nil || l != LabelInventoryPlan {
		t.Error("Unexpected result:", l, err)
		return
	}

	if _, err := ParseVertexLabel("foo"); err == nil || err.Error() != "ModelError: Unknown label (foo)" {
		t.Error("Unexpected result:", err)
		return
	}

	if l, err := ParseEdgeLabel("has-future-date"); err != nil || l != EdgeHasFutureDate {
		t.Error("Unexpected result:", l, err)
		return
	}

	if _, err := ParseEdgeLabel("location"); !errors.Is(err, ErrUnknownLabel) {
		t.Error("Unexpected result:", err)
		return
	}

	if len(VertexLabels) != 9 || len(EdgeLabels) != 13 {
		t.Error("Unexpected result:", len(VertexLabels), len(EdgeLabels))
		return
	}
}

func TestDirection(t *testing.T) {

	if d, err := ParseDirection("in"); err != nil || d != In || !d.Valid() {
		t.Error("Unexpected result:", d, err)
		return
	}

	if d, err := ParseDirection("out"); err != nil || d != Out || d.String() != "out" {
		t.Error("Unexpected result:", d, err)
		return
	}

	if _, err := ParseDirection("both"); !errors.Is(err, ErrInvalidDirection) {
		t.Error("Unexpected result:", err)
		return
	}

	var d Direction

	if d.Valid() || Direction(5).Valid() || fmt.Sprint(Direction(5)) != "Direction(5)" {
		t.Error("Unexpected result:", d)
		return
	}
}

func TestDecode(t *testing.T) {
	entered := time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)

	pm := gremlin.PropertyMap{
		"id":          "i1",
		"label":       "item",
		"amount":      int32(12),
		"sku":         "SKU-1",
		"dateEntered": entered,
		"colour":      "red",
	}

	item, ok := Decode(pm).(*Item)

	if !ok || item.ID != "i1" || item.Amount != 12 || item.SKU != "SKU-1" ||
		!item.DateEntered.Equal(entered) || item.Custom["colour"] != "red" || len(item.Custom) != 1 {
		t.Error("Unexpected result:", item)
		return
	}

	// Properties never contain the id and keep custom values

	props := item.Properties()

	if props.Has("id") || props.Int("amount") != 12 || props.Str("colour") != "red" ||
		props.Has("userDefinedFields") {
		t.Error("Unexpected result:", props)
		return
	}

	if Decode(nil) != nil || Decode(gremlin.PropertyMap{"label": "foo"}) != nil {
		t.Error("Unknown labels should not be decoded")
		return
	}

	cf, ok := Decode(gremlin.PropertyMap{"id": "c1", "label": "item-custom-field",
		"fieldName": "colour", "fieldType": "text"}).(*CustomField)

	if !ok || !cf.ForItems || cf.Label() != LabelItemCustomField || cf.FieldType != FieldText {
		t.Error("Unexpected result:", cf)
		return
	}

	loc := &Location{Description: "Berlin", Type: LocationSeller}

	if res := fmt.Sprint(loc.Properties()); res != "map[description:Berlin type:seller]" {
		t.Error("Unexpected result:", res)
		return
	}

	inv := DecodeInvalidItem(gremlin.PropertyMap{"id": "i2", "label": "item",
		"sku": "SKU-2", "description": "Berlin"})

	if inv.SKU != "SKU-2" || inv.Description != "Berlin" || len(inv.Custom) != 0 {
		t.Error("Unexpected result:", inv)
		return
	}
}

func TestDecodeComposite(t *testing.T) {

	edge := DecodeEdge(gremlin.PropertyMap{
		"id":     "e1",
		"label":  "violates",
		"IN":     map[string]interface{}{"id": "r1", "label": "rule"},
		"OUT":    map[string]interface{}{"id": "i1", "label": "item"},
		"amount": int64(3),
	})

	if edge.From != "i1" || edge.To != "r1" || edge.Label != EdgeViolates ||
		fmt.Sprint(edge.Properties) != "map[amount:3]" {
		t.Error("Unexpected result:", edge)
		return
	}

	le := DecodeLabeledEdge(gremlin.PropertyMap{
		"from": &gremlin.Vertex{ID: "i1", Label: "item"},
		"edge": map[string]interface{}{"id": "e1", "label": "violates"},
		"to":   &gremlin.Vertex{ID: "r1", Label: "rule"},
	})

	if le.From != "i1" || le.To != "r1" || le.Edge.ID != "e1" {
		t.Error("Unexpected result:", le)
		return
	}

	day := time.Date(2023, 5, 2, 0, 0, 0, 0, time.UTC)

	p := DecodeProjection(gremlin.PropertyMap{
		"futureDate": map[string]interface{}{"id": "f1", "label": "future-date",
			"date": day, "daysOut": int32(1)},
		"projection": map[string]interface{}{"id": "e2", "label": "projects",
			"inventoryEndingOnHand": int64(7), "supplyPlanned": int32(2)},
	})

	if p.ID != "e2" || p.FutureDateID != "f1" || !p.Date.Equal(day) || p.DaysOut != 1 ||
		p.InventoryEndingOnHand != 7 || p.SupplyPlanned != 2 {
		t.Error("Unexpected result:", p)
		return
	}

	if DecodeProjection(gremlin.PropertyMap{"futureDate": nil}) != nil {
		t.Error("Incomplete projections should not be decoded")
		return
	}

	tp := DecodeTransferPlanInfo(gremlin.PropertyMap{
		"fromLocation": map[string]interface{}{"id": "l1", "description": "Berlin"},
		"toLocation":   map[string]interface{}{"id": "l2", "description": "Paris"},
		"item":         map[string]interface{}{"id": "i1", "sku": "SKU-1"},
		"transferPlan": map[string]interface{}{"id": "t1", "transferAmount": int32(5), "status": "new"},
	})

	if tp.FromLocation.Description != "Berlin" || tp.ToLocation.Description != "Paris" ||
		tp.Item.SKU != "SKU-1" || tp.TransferPlan.TransferAmount != 5 || tp.TransferPlan.Status != TransferNew {
		t.Error("Unexpected result:", tp)
		return
	}

	ip := DecodeInventoryPlanInfo(gremlin.PropertyMap{
		"location":      map[string]interface{}{"id": "l1"},
		"item":          map[string]interface{}{"id": "i1"},
		"inventoryPlan": map[string]interface{}{"id": "p1", "planType": "sales", "dailyRate": int32(4)},
	})

	if ip.Location.ID != "l1" || ip.Item.ID != "i1" || ip.InventoryPlan.PlanType != PlanSales ||
		ip.InventoryPlan.DailyRate != 4 {
		t.Error("Unexpected result:", ip)
		return
	}
}

func TestValidate(t *testing.T) {

	loc := map[string]interface{}{
		"description":       "Berlin",
		"type":              "seller",
		"userDefinedFields": "{}",
	}

	if err := Validate(LabelLocation, loc, true, false); err != nil {
		t.Error(err)
		return
	}

	if err := Validate(LabelLocation, loc, true, true); err == nil ||
		err.Error() != "ModelError: Invalid vertex (Missing id)" {
		t.Error("Unexpected result:", err)
		return
	}

	loc["type"] = "warehouse"

	if err := Validate(LabelLocation, loc, true, false); err == nil ||
		err.Error() != "ModelError: Invalid vertex (Invalid value for type: warehouse)" {
		t.Error("Unexpected result:", err)
		return
	}

	// Partial updates only check the given properties

	if err := Validate(LabelItem, map[string]interface{}{"id": "i1", "amount": 3}, false, true); err != nil {
		t.Error(err)
		return
	}

	if err := Validate(LabelItem, map[string]interface{}{"amount": 3}, true, false); err == nil ||
		err.Error() != "ModelError: Invalid vertex (Missing property sku of item)" {
		t.Error("Unexpected result:", err)
		return
	}

	if err := Validate(LabelItem, map[string]interface{}{"id": "i1", "colour": 3}, false, true); err == nil ||
		err.Error() != "ModelError: Invalid vertex (Unknown property colour of item)" {
		t.Error("Unexpected result:", err)
		return
	}

	plan := map[string]interface{}{
		"startDate":    "2023-05-01T00:00:00Z",
		"endDate":      time.Now(),
		"turnoverHour": 24,
		"planType":     "sales",
		"dailyRate":    5,
	}

	if err := Validate(LabelInventoryPlan, plan, true, false); err == nil ||
		err.Error() != "ModelError: Invalid vertex (Invalid value for turnoverHour: 24)" {
		t.Error("Unexpected result:", err)
		return
	}

	plan["turnoverHour"] = 23

	if err := Validate(LabelInventoryPlan, plan, true, false); err != nil {
		t.Error(err)
		return
	}

	if err := Validate(LabelTransferPlan, map[string]interface{}{"id": "t1",
		"transferAmount": 0.0}, false, true); err == nil {
		t.Error("Transfer amount must be positive")
		return
	}

	if err := Validate("foo", nil, false, false); !errors.Is(err, ErrUnknownLabel) {
		t.Error("Unexpected result:", err)
		return
	}
}
