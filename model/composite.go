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
	"time"

	"devt.de/krotik/scsgraph/gremlin"
)

/*
Edge is an edge of the supply chain graph.
*/
type Edge struct {
	ID         string
	Label      EdgeLabel
	From       string // Id of the out vertex
	To         string // Id of the in vertex
	Properties map[string]interface{}
}

/*
DecodeEdge decodes an edge from an element map.
*/
func DecodeEdge(pm gremlin.PropertyMap) *Edge {
	if pm == nil {
		return nil
	}

	return &Edge{
		ID:         pm.ID(),
		Label:      EdgeLabel(pm.Label()),
		From:       pm.Map("OUT").ID(),
		To:         pm.Map("IN").ID(),
		Properties: custom(pm, "IN", "OUT"),
	}
}

/*
LabeledEdge is an edge with the ids of both of its vertices.
*/
type LabeledEdge struct {
	From string
	Edge *Edge
	To   string
}

/*
DecodeLabeledEdge decodes a projection with the keys "from", "edge" and "to".
*/
func DecodeLabeledEdge(pm gremlin.PropertyMap) *LabeledEdge {
	if pm == nil {
		return nil
	}

	return &LabeledEdge{
		From: pm.Map("from").ID(),
		Edge: DecodeEdge(pm.Map("edge")),
		To:   pm.Map("to").ID(),
	}
}

/*
TransferPlanInfo is a transfer plan with its item and both locations.
*/
type TransferPlanInfo struct {
	FromLocation *Location
	ToLocation   *Location
	Item         *Item
	TransferPlan *TransferPlan
}

/*
DecodeTransferPlanInfo decodes a selection with the keys "fromLocation",
"toLocation", "item" and "transferPlan".
*/
func DecodeTransferPlanInfo(pm gremlin.PropertyMap) *TransferPlanInfo {
	if pm == nil {
		return nil
	}

	return &TransferPlanInfo{
		FromLocation: DecodeLocation(pm.Map("fromLocation")),
		ToLocation:   DecodeLocation(pm.Map("toLocation")),
		Item:         DecodeItem(pm.Map("item")),
		TransferPlan: DecodeTransferPlan(pm.Map("transferPlan")),
	}
}

/*
InventoryPlanInfo is an inventory plan with its item and location.
*/
type InventoryPlanInfo struct {
	Location      *Location
	Item          *Item
	InventoryPlan *InventoryPlan
}

/*
DecodeInventoryPlanInfo decodes a selection with the keys "location", "item"
and "inventoryPlan".
*/
func DecodeInventoryPlanInfo(pm gremlin.PropertyMap) *InventoryPlanInfo {
	if pm == nil {
		return nil
	}

	return &InventoryPlanInfo{
		Location:      DecodeLocation(pm.Map("location")),
		Item:          DecodeItem(pm.Map("item")),
		InventoryPlan: DecodeInventoryPlan(pm.Map("inventoryPlan")),
	}
}

/*
Projection is the projected stock of an item at a future date. Projections
are stored as properties of the edge between item and future date.
*/
type Projection struct {
	ID                       string // Id of the projection edge
	FutureDateID             string
	Date                     time.Time
	DaysOut                  int64
	InventoryBeginningOnHand int64
	InventoryEndingOnHand    int64
	SupplyInTransit          int64
	SupplyPlanned            int64
	DemandPlanned            int64
	DateGenerated            time.Time
}

/*
DecodeProjection decodes a selection with the keys "futureDate" and "projection".
*/
func DecodeProjection(pm gremlin.PropertyMap) *Projection {
	if pm == nil {
		return nil
	}

	fd := pm.Map("futureDate")
	p := pm.Map("projection")

	if fd == nil || p == nil {
		return nil
	}

	return &Projection{
		ID:                       p.ID(),
		FutureDateID:             fd.ID(),
		Date:                     fd.Time("date"),
		DaysOut:                  fd.Int("daysOut"),
		InventoryBeginningOnHand: p.Int("inventoryBeginningOnHand"),
		InventoryEndingOnHand:    p.Int("inventoryEndingOnHand"),
		SupplyInTransit:          p.Int("supplyInTransit"),
		SupplyPlanned:            p.Int("supplyPlanned"),
		DemandPlanned:            p.Int("demandPlanned"),
		DateGenerated:            p.Time("dateGenerated"),
	}
}
