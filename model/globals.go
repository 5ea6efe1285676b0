/*
 * SCSGraph
 *
 * Copyright 2026 SCSGraph Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package model contains the domain model of the supply chain graph.

Labels

Every vertex and edge of the graph has a label. VertexLabel and EdgeLabel
list all known labels. Traversal directions are given with the Direction type
which only allows In and Out.

Vertex kinds

Each vertex label has a typed kind (Location, Item, InventoryPlan, ...) which
implements the Vertex interface. Kinds are decoded from the property maps of
query results with the Decode functions. Properties which are not part of a
kind are kept in its Custom map.

Composite results

Queries which select several entities at once are decoded into composite
types like TransferPlanInfo or Projection.
*/
package model

import (
	"errors"
	"fmt"
)

/*
VertexLabel is the label of a vertex.
*/
type VertexLabel string

/*
Known vertex labels
*/
const (
	LabelLocation            VertexLabel = "location"
	LabelItem                VertexLabel = "item"
	LabelInventoryPlan       VertexLabel = "inventory-plan"
	LabelTransferPlan        VertexLabel = "transfer-plan"
	LabelItemRecord          VertexLabel = "item-record"
	LabelFutureDate          VertexLabel = "future-date"
	LabelRule                VertexLabel = "rule"
	LabelLocationCustomField VertexLabel = "location-custom-field"
	LabelItemCustomField     VertexLabel = "item-custom-field"
)

/*
VertexLabels is a list of all known vertex labels.
*/
var VertexLabels = []VertexLabel{
	LabelLocation, LabelItem, LabelInventoryPlan, LabelTransferPlan,
	LabelItemRecord, LabelFutureDate, LabelRule, LabelLocationCustomField,
	LabelItemCustomField,
}

/*
ParseVertexLabel converts a string into a known vertex label.
*/
func ParseVertexLabel(s string) (VertexLabel, error) {
	for _, l := range VertexLabels {
		if string(l) == s {
			return l, nil
		}
	}
	return "", &Error{ErrUnknownLabel, s}
}

/*
EdgeLabel is the label of an edge.
*/
type EdgeLabel string

/*
Known edge labels
*/
const (
	EdgeRecorded      EdgeLabel = "recorded"
	EdgeTransfer      EdgeLabel = "transfer"
	EdgeProjects      EdgeLabel = "projects"
	EdgeNewlyProjects EdgeLabel = "newly-projects"
	EdgeHasFutureDate EdgeLabel = "has-future-date"
	EdgeGives         EdgeLabel = "gives"
	EdgeReceives      EdgeLabel = "receives"
	EdgeUpdates       EdgeLabel = "updates"
	EdgeTakes         EdgeLabel = "takes"
	EdgeResides       EdgeLabel = "resides"
	EdgeFollows       EdgeLabel = "follows"
	EdgeTransfers     EdgeLabel = "transfers"
	EdgeViolates      EdgeLabel = "violates"
)

/*
EdgeLabels is a list of all known edge labels.
*/
var EdgeLabels = []EdgeLabel{
	EdgeRecorded, EdgeTransfer, EdgeProjects, EdgeNewlyProjects,
	EdgeHasFutureDate, EdgeGives, EdgeReceives, EdgeUpdates, EdgeTakes,
	EdgeResides, EdgeFollows, EdgeTransfers, EdgeViolates,
}

/*
ParseEdgeLabel converts a string into a known edge label.
*/
func ParseEdgeLabel(s string) (EdgeLabel, error) {
	for _, l := range EdgeLabels {
		if string(l) == s {
			return l, nil
		}
	}
	return "", &Error{ErrUnknownLabel, s}
}

/*
Direction is the direction in which edges are followed.
*/
type Direction int

/*
Known directions. The zero value is not a valid direction.
*/
const (
	In Direction = iota + 1
	Out
)

var directionNames = map[Direction]string{
	In:  "in",
	Out: "out",
}

/*
Valid checks if this is a known direction.
*/
func (d Direction) Valid() bool {
	_, ok := directionNames[d]
	return ok
}

/*
String returns the name of this direction.
*/
func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

/*
ParseDirection converts a string ("in" or "out") into a direction.
*/
func ParseDirection(s string) (Direction, error) {
	for d, name := range directionNames {
		if name == s {
			return d, nil
		}
	}
	return 0, &Error{ErrInvalidDirection, s}
}

/*
Hop is a single step of a multi-hop traversal.
*/
type Hop struct {
	Label     EdgeLabel
	Direction Direction
}

// Enumerations
// ============

/*
LocationType is the type of a location.
*/
type LocationType string

/*
Known location types
*/
const (
	LocationManufacturer LocationType = "manufacturer"
	LocationDistributor  LocationType = "distributor"
	LocationSeller       LocationType = "seller"
)

/*
RuleType is the type of an inventory rule.
*/
type RuleType string

/*
Known rule types
*/
const (
	RuleMinQuantity RuleType = "min-quantity"
	RuleMaxQuantity RuleType = "max-quantity"
)

/*
InventoryPlanType is the type of an inventory plan.
*/
type InventoryPlanType string

/*
Known inventory plan types
*/
const (
	PlanManufacturing InventoryPlanType = "manufacturing"
	PlanSales         InventoryPlanType = "sales"
)

/*
TransferPlanStatus is the execution status of a transfer plan.
*/
type TransferPlanStatus string

/*
Known transfer plan states
*/
const (
	TransferNew       TransferPlanStatus = "new"        // Not scheduled yet
	TransferScheduled TransferPlanStatus = "scheduled"  // Both plans are scheduled
	TransferInTransit TransferPlanStatus = "in-transit" // Shipment has left
	TransferSucceed   TransferPlanStatus = "succeed"    // Both plans were executed
	TransferFailed    TransferPlanStatus = "failed"     // One of the plans failed
)

/*
CustomFieldType is the value type of a user defined field.
*/
type CustomFieldType string

/*
Known custom field types
*/
const (
	FieldText   CustomFieldType = "text"
	FieldNumber CustomFieldType = "number"
	FieldDate   CustomFieldType = "date"
)

var enumValues = map[string][]string{
	"LocationType":       {"manufacturer", "distributor", "seller"},
	"RuleType":           {"min-quantity", "max-quantity"},
	"InventoryPlanType":  {"manufacturing", "sales"},
	"TransferPlanStatus": {"new", "scheduled", "in-transit", "succeed", "failed"},
	"CustomFieldType":    {"text", "number", "date"},
}

/*
isEnum checks if a value is a member of a given enumeration.
*/
func isEnum(enum string, v interface{}) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	for _, e := range enumValues[enum] {
		if e == s {
			return true
		}
	}
	return false
}

// Errors
// ======

/*
Error is a model related error
*/
type Error struct {
	Type   error  // Error type (to be used for equal checks)
	Detail string // Details of this error
}

/*
Error returns a human-readable string representation of this error.
*/
func (me *Error) Error() string {
	if me.Detail != "" {
		return fmt.Sprintf("ModelError: %v (%v)", me.Type, me.Detail)
	}

	return fmt.Sprintf("ModelError: %v", me.Type)
}

/*
Unwrap returns the error type.
*/
func (me *Error) Unwrap() error {
	return me.Type
}

/*
Model related error types
*/
var (
	ErrUnknownLabel     = errors.New("Unknown label")
	ErrInvalidDirection = errors.New("Invalid edge direction")
	ErrInvalidVertex    = errors.New("Invalid vertex")
)
