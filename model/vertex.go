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
Vertex is a typed vertex of the supply chain graph.
*/
type Vertex interface {

	/*
		Label returns the vertex label of this kind.
	*/
	Label() VertexLabel

	/*
		VertexID returns the id of the vertex (empty if it was not stored yet).
	*/
	VertexID() string

	/*
		Properties returns all properties which should be written for this
		vertex. The id is never part of the returned map.
	*/
	Properties() gremlin.PropertyMap
}

/*
props is a builder for property maps.
*/
type props gremlin.PropertyMap

func newProps(custom map[string]interface{}) props {
	p := make(props)
	for k, v := range custom {
		if k != "id" && k != "label" && v != nil {
			p[k] = v
		}
	}
	return p
}

func (p props) str(key string, val string) props {
	if val != "" {
		p[key] = val
	}
	return p
}

func (p props) time(key string, val time.Time) props {
	if !val.IsZero() {
		p[key] = val
	}
	return p
}

func (p props) set(key string, val interface{}) props {
	p[key] = val
	return p
}

/*
custom collects all properties of a property map which are not known to a kind.
*/
func custom(pm gremlin.PropertyMap, known ...string) map[string]interface{} {
	var ret map[string]interface{}

	for k, v := range pm {
		if k == "id" || k == "label" {
			continue
		}

		isKnown := false
		for _, kk := range known {
			if kk == k {
				isKnown = true
				break
			}
		}

		if !isKnown {
			if ret == nil {
				ret = make(map[string]interface{})
			}
			ret[k] = v
		}
	}

	return ret
}

// Location
// ========

/*
Location is a manufacturer, distributor or seller site.
*/
type Location struct {
	ID                string
	Description       string // Unique business key
	Type              LocationType
	UserDefinedFields string // Serialized JSON object
	Custom            map[string]interface{}
}

/*
Label returns the vertex label of this kind.
*/
func (l *Location) Label() VertexLabel { return LabelLocation }

/*
VertexID returns the id of the vertex.
*/
func (l *Location) VertexID() string { return l.ID }

/*
Properties returns all properties which should be written for this vertex.
*/
func (l *Location) Properties() gremlin.PropertyMap {
	return gremlin.PropertyMap(newProps(l.Custom).
		str("description", l.Description).
		str("type", string(l.Type)).
		str("userDefinedFields", l.UserDefinedFields))
}

/*
DecodeLocation decodes a location from a property map. Returns nil if the
map is nil.
*/
func DecodeLocation(pm gremlin.PropertyMap) *Location {
	if pm == nil {
		return nil
	}
	return &Location{
		ID:                pm.ID(),
		Description:       pm.Str("description"),
		Type:              LocationType(pm.Str("type")),
		UserDefinedFields: pm.Str("userDefinedFields"),
		Custom:            custom(pm, "description", "type", "userDefinedFields"),
	}
}

// Item
// ====

/*
Item is the stock of an article at a location.
*/
type Item struct {
	ID                string
	Amount            int64
	DateEntered       time.Time
	SKU               string // Unique within the location of the item
	UserDefinedFields string // Serialized JSON object
	Custom            map[string]interface{}
}

/*
Label returns the vertex label of this kind.
*/
func (i *Item) Label() VertexLabel { return LabelItem }

/*
VertexID returns the id of the vertex.
*/
func (i *Item) VertexID() string { return i.ID }

/*
Properties returns all properties which should be written for this vertex.
*/
func (i *Item) Properties() gremlin.PropertyMap {
	return gremlin.PropertyMap(newProps(i.Custom).
		set("amount", i.Amount).
		time("dateEntered", i.DateEntered).
		str("sku", i.SKU).
		str("userDefinedFields", i.UserDefinedFields))
}

/*
DecodeItem decodes an item from a property map. Returns nil if the map is nil.
*/
func DecodeItem(pm gremlin.PropertyMap) *Item {
	if pm == nil {
		return nil
	}
	return &Item{
		ID:                pm.ID(),
		Amount:            pm.Int("amount"),
		DateEntered:       pm.Time("dateEntered"),
		SKU:               pm.Str("sku"),
		UserDefinedFields: pm.Str("userDefinedFields"),
		Custom:            custom(pm, "amount", "dateEntered", "sku", "userDefinedFields"),
	}
}

/*
InvalidItem is an item which violates at least one rule.
*/
type InvalidItem struct {
	*Item
	Description string // Description of the location of the item
}

/*
DecodeInvalidItem decodes an invalid item from a property map.
*/
func DecodeInvalidItem(pm gremlin.PropertyMap) *InvalidItem {
	if pm == nil {
		return nil
	}

	item := DecodeItem(pm)
	delete(item.Custom, "description")

	return &InvalidItem{item, pm.Str("description")}
}

// InventoryPlan
// =============

/*
InventoryPlan is a recurring manufacturing or sales plan of an item.
*/
type InventoryPlan struct {
	ID           string
	StartDate    time.Time
	EndDate      time.Time
	TurnoverHour int64 // Hour of the day (0-23)
	PlanType     InventoryPlanType
	DailyRate    int64
	ItemID       string
	Custom       map[string]interface{}
}

/*
Label returns the vertex label of this kind.
*/
func (p *InventoryPlan) Label() VertexLabel { return LabelInventoryPlan }

/*
VertexID returns the id of the vertex.
*/
func (p *InventoryPlan) VertexID() string { return p.ID }

/*
Properties returns all properties which should be written for this vertex.
*/
func (p *InventoryPlan) Properties() gremlin.PropertyMap {
	return gremlin.PropertyMap(newProps(p.Custom).
		time("startDate", p.StartDate).
		time("endDate", p.EndDate).
		set("turnoverHour", p.TurnoverHour).
		str("planType", string(p.PlanType)).
		set("dailyRate", p.DailyRate).
		str("itemId", p.ItemID))
}

/*
DecodeInventoryPlan decodes an inventory plan from a property map.
*/
func DecodeInventoryPlan(pm gremlin.PropertyMap) *InventoryPlan {
	if pm == nil {
		return nil
	}
	return &InventoryPlan{
		ID:           pm.ID(),
		StartDate:    pm.Time("startDate"),
		EndDate:      pm.Time("endDate"),
		TurnoverHour: pm.Int("turnoverHour"),
		PlanType:     InventoryPlanType(pm.Str("planType")),
		DailyRate:    pm.Int("dailyRate"),
		ItemID:       pm.Str("itemId"),
		Custom: custom(pm, "startDate", "endDate", "turnoverHour", "planType",
			"dailyRate", "itemId"),
	}
}

// TransferPlan
// ============

/*
TransferPlan moves an amount of an item from one location to another.
*/
type TransferPlan struct {
	ID             string
	ShipDate       time.Time
	ArrivalDate    time.Time
	TransferAmount int64
	FromItemID     string
	ToItemID       string
	Status         TransferPlanStatus
	Custom         map[string]interface{}
}

/*
Label returns the vertex label of this kind.
*/
func (p *TransferPlan) Label() VertexLabel { return LabelTransferPlan }

/*
VertexID returns the id of the vertex.
*/
func (p *TransferPlan) VertexID() string { return p.ID }

/*
Properties returns all properties which should be written for this vertex.
*/
func (p *TransferPlan) Properties() gremlin.PropertyMap {
	return gremlin.PropertyMap(newProps(p.Custom).
		time("shipDate", p.ShipDate).
		time("arrivalDate", p.ArrivalDate).
		set("transferAmount", p.TransferAmount).
		str("fromItemId", p.FromItemID).
		str("toItemId", p.ToItemID).
		str("status", string(p.Status)))
}

/*
DecodeTransferPlan decodes a transfer plan from a property map.
*/
func DecodeTransferPlan(pm gremlin.PropertyMap) *TransferPlan {
	if pm == nil {
		return nil
	}
	return &TransferPlan{
		ID:             pm.ID(),
		ShipDate:       pm.Time("shipDate"),
		ArrivalDate:    pm.Time("arrivalDate"),
		TransferAmount: pm.Int("transferAmount"),
		FromItemID:     pm.Str("fromItemId"),
		ToItemID:       pm.Str("toItemId"),
		Status:         TransferPlanStatus(pm.Str("status")),
		Custom: custom(pm, "shipDate", "arrivalDate", "transferAmount",
			"fromItemId", "toItemId", "status"),
	}
}

// ItemRecord
// ==========

/*
ItemRecord records an amount change of an item caused by a plan.
*/
type ItemRecord struct {
	ID         string
	DateFrom   time.Time
	DateTo     time.Time
	FromAmount int64
	ToAmount   int64
	PlanID     string
	Custom     map[string]interface{}
}

/*
Label returns the vertex label of this kind.
*/
func (r *ItemRecord) Label() VertexLabel { return LabelItemRecord }

/*
VertexID returns the id of the vertex.
*/
func (r *ItemRecord) VertexID() string { return r.ID }

/*
Properties returns all properties which should be written for this vertex.
*/
func (r *ItemRecord) Properties() gremlin.PropertyMap {
	return gremlin.PropertyMap(newProps(r.Custom).
		time("dateFrom", r.DateFrom).
		time("dateTo", r.DateTo).
		set("fromAmount", r.FromAmount).
		set("toAmount", r.ToAmount).
		str("planId", r.PlanID))
}

/*
DecodeItemRecord decodes an item record from a property map.
*/
func DecodeItemRecord(pm gremlin.PropertyMap) *ItemRecord {
	if pm == nil {
		return nil
	}
	return &ItemRecord{
		ID:         pm.ID(),
		DateFrom:   pm.Time("dateFrom"),
		DateTo:     pm.Time("dateTo"),
		FromAmount: pm.Int("fromAmount"),
		ToAmount:   pm.Int("toAmount"),
		PlanID:     pm.Str("planId"),
		Custom:     custom(pm, "dateFrom", "dateTo", "fromAmount", "toAmount", "planId"),
	}
}

// FutureDate
// ==========

/*
FutureDate is a day for which projections are calculated.
*/
type FutureDate struct {
	ID      string
	Date    time.Time
	DaysOut int64
	Custom  map[string]interface{}
}

/*
Label returns the vertex label of this kind.
*/
func (f *FutureDate) Label() VertexLabel { return LabelFutureDate }

/*
VertexID returns the id of the vertex.
*/
func (f *FutureDate) VertexID() string { return f.ID }

/*
Properties returns all properties which should be written for this vertex.
*/
func (f *FutureDate) Properties() gremlin.PropertyMap {
	return gremlin.PropertyMap(newProps(f.Custom).
		time("date", f.Date).
		set("daysOut", f.DaysOut))
}

/*
DecodeFutureDate decodes a future date from a property map.
*/
func DecodeFutureDate(pm gremlin.PropertyMap) *FutureDate {
	if pm == nil {
		return nil
	}
	return &FutureDate{
		ID:      pm.ID(),
		Date:    pm.Time("date"),
		DaysOut: pm.Int("daysOut"),
		Custom:  custom(pm, "date", "daysOut"),
	}
}

// Rule
// ====

/*
Rule defines the allowed stock range of an item.
*/
type Rule struct {
	ID         string
	Name       string
	MinAllowed int64
	MaxAllowed int64
	Custom     map[string]interface{}
}

/*
Label returns the vertex label of this kind.
*/
func (r *Rule) Label() VertexLabel { return LabelRule }

/*
VertexID returns the id of the vertex.
*/
func (r *Rule) VertexID() string { return r.ID }

/*
Properties returns all properties which should be written for this vertex.
*/
func (r *Rule) Properties() gremlin.PropertyMap {
	return gremlin.PropertyMap(newProps(r.Custom).
		str("name", r.Name).
		set("minAllowed", r.MinAllowed).
		set("maxAllowed", r.MaxAllowed))
}

/*
DecodeRule decodes a rule from a property map.
*/
func DecodeRule(pm gremlin.PropertyMap) *Rule {
	if pm == nil {
		return nil
	}
	return &Rule{
		ID:         pm.ID(),
		Name:       pm.Str("name"),
		MinAllowed: pm.Int("minAllowed"),
		MaxAllowed: pm.Int("maxAllowed"),
		Custom:     custom(pm, "name", "minAllowed", "maxAllowed"),
	}
}

// CustomField
// ===========

/*
CustomField is the definition of a user defined field of locations or items.
The vertex label decides which kind the field belongs to.
*/
type CustomField struct {
	ID        string
	FieldName string
	FieldType CustomFieldType
	ForItems  bool // Field of items (otherwise of locations)
	Custom    map[string]interface{}
}

/*
Label returns the vertex label of this kind.
*/
func (f *CustomField) Label() VertexLabel {
	if f.ForItems {
		return LabelItemCustomField
	}
	return LabelLocationCustomField
}

/*
VertexID returns the id of the vertex.
*/
func (f *CustomField) VertexID() string { return f.ID }

/*
Properties returns all properties which should be written for this vertex.
*/
func (f *CustomField) Properties() gremlin.PropertyMap {
	return gremlin.PropertyMap(newProps(f.Custom).
		str("fieldName", f.FieldName).
		str("fieldType", string(f.FieldType)))
}

/*
DecodeCustomField decodes a custom field definition from a property map.
*/
func DecodeCustomField(pm gremlin.PropertyMap) *CustomField {
	if pm == nil {
		return nil
	}
	return &CustomField{
		ID:        pm.ID(),
		FieldName: pm.Str("fieldName"),
		FieldType: CustomFieldType(pm.Str("fieldType")),
		ForItems:  pm.Label() == string(LabelItemCustomField),
		Custom:    custom(pm, "fieldName", "fieldType"),
	}
}

/*
Decode decodes a property map into the vertex kind of its label. Returns nil
if the label is not known.
*/
func Decode(pm gremlin.PropertyMap) Vertex {
	if pm == nil {
		return nil
	}

	if dec, ok := decoders[VertexLabel(pm.Label())]; ok {
		return dec(pm)
	}

	return nil
}

var decoders = map[VertexLabel]func(gremlin.PropertyMap) Vertex{
	LabelLocation:            func(pm gremlin.PropertyMap) Vertex { return DecodeLocation(pm) },
	LabelItem:                func(pm gremlin.PropertyMap) Vertex { return DecodeItem(pm) },
	LabelInventoryPlan:       func(pm gremlin.PropertyMap) Vertex { return DecodeInventoryPlan(pm) },
	LabelTransferPlan:        func(pm gremlin.PropertyMap) Vertex { return DecodeTransferPlan(pm) },
	LabelItemRecord:          func(pm gremlin.PropertyMap) Vertex { return DecodeItemRecord(pm) },
	LabelFutureDate:          func(pm gremlin.PropertyMap) Vertex { return DecodeFutureDate(pm) },
	LabelRule:                func(pm gremlin.PropertyMap) Vertex { return DecodeRule(pm) },
	LabelLocationCustomField: func(pm gremlin.PropertyMap) Vertex { return DecodeCustomField(pm) },
	LabelItemCustomField:     func(pm gremlin.PropertyMap) Vertex { return DecodeCustomField(pm) },
}
