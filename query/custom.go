/*
 * SCSGraph
 *
 * Copyright 2026 SCSGraph Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package query

import (
	"context"

	"devt.de/krotik/scsgraph/gremlin"
	"devt.de/krotik/scsgraph/model"
)

/*
GetInvalidItems returns the element maps of all items which violate a rule.
The result can be restricted to a location and to a single item (empty ids
are ignored).
*/
func (l *Library) GetInvalidItems(ctx context.Context, locationID string, itemID string) ([]gremlin.PropertyMap, error) {
	return l.all(ctx, false, func(g *gremlin.Source) *gremlin.Traversal {
		t := g.V().HasLabel(string(model.LabelLocation))
		if locationID != "" {
			t = t.HasID(locationID)
		}

		t = t.InE(string(model.EdgeResides)).OutV().HasLabel(string(model.LabelItem))
		if itemID != "" {
			t = t.HasID(itemID)
		}

		return t.As("invalidItem").
			OutE(string(model.EdgeViolates)).As("invalidEdge").
			InV().HasLabel(string(model.LabelRule)).
			Select("invalidItem").By(gremlin.T__.ElementMap()).
			Dedup()
	})
}

/*
GetItemsAtLocation returns the element maps of all items which reside at a
location and have a given sku. All items of the location are returned if sku
is empty. With transactional set the lookup sees the writes of the open
transaction.
*/
func (l *Library) GetItemsAtLocation(ctx context.Context, locationID string, sku string,
	transactional bool) ([]gremlin.PropertyMap, error) {

	return l.all(ctx, transactional, func(g *gremlin.Source) *gremlin.Traversal {
		t := g.V(locationID).HasLabel(string(model.LabelLocation)).
			InE(string(model.EdgeResides)).OutV().HasLabel(string(model.LabelItem))
		if sku != "" {
			t = t.Has("sku", sku)
		}

		return t.Dedup().ElementMap()
	})
}

/*
GetTransferPlans returns all transfer plans of a location with their item and
both locations. If asFromLocation is set the location is the source of the
transfers, otherwise it is the destination. Each result has the keys
"fromLocation", "toLocation", "item" and "transferPlan".
*/
func (l *Library) GetTransferPlans(ctx context.Context, locationID string, asFromLocation bool) ([]gremlin.PropertyMap, error) {
	return l.all(ctx, false, func(g *gremlin.Source) *gremlin.Traversal {
		t := g.V().HasLabel(string(model.LabelLocation))
		if asFromLocation {
			t = t.HasID(locationID)
		}

		t = t.As("fromLocation").
			InE(string(model.EdgeResides)).OutV().HasLabel(string(model.LabelItem)).As("item").
			InE(string(model.EdgeTakes)).OutV().HasLabel(string(model.LabelTransferPlan)).As("transferPlan").
			OutE(string(model.EdgeGives)).InV().HasLabel(string(model.LabelItem)).
			OutE(string(model.EdgeResides)).InV()

		if !asFromLocation {
			t = t.HasID(locationID)
		}

		return t.HasLabel(string(model.LabelLocation)).As("toLocation").
			Select("fromLocation", "toLocation", "item", "transferPlan").
			By(gremlin.T__.ElementMap())
	})
}

/*
GetInventoryPlans returns all inventory plans of a location with their item
and the location. Each result has the keys "location", "item" and
"inventoryPlan".
*/
func (l *Library) GetInventoryPlans(ctx context.Context, locationID string) ([]gremlin.PropertyMap, error) {
	return l.all(ctx, false, func(g *gremlin.Source) *gremlin.Traversal {
		return g.V(locationID).As("location").
			InE(string(model.EdgeResides)).OutV().HasLabel(string(model.LabelItem)).As("item").
			InE(string(model.EdgeUpdates)).OutV().HasLabel(string(model.LabelInventoryPlan)).As("inventoryPlan").
			Select("location", "item", "inventoryPlan").
			By(gremlin.T__.ElementMap())
	})
}

/*
GetProjections returns all projections of an item. Each result has the keys
"futureDate" (the future date vertex) and "projection" (the projects edge).
*/
func (l *Library) GetProjections(ctx context.Context, itemID string) ([]gremlin.PropertyMap, error) {
	return l.all(ctx, false, func(g *gremlin.Source) *gremlin.Traversal {
		return g.V(itemID).OutE(string(model.EdgeProjects)).As("projection").
			InV().As("futureDate").
			Select("futureDate", "projection").
			By(gremlin.T__.ElementMap())
	})
}

/*
GetTransferPlansBetweenTransferEdge returns all transfer plans which take
from an item of one location and give to an item of another location.
*/
func (l *Library) GetTransferPlansBetweenTransferEdge(ctx context.Context, fromLocationID string,
	toLocationID string) ([]gremlin.PropertyMap, error) {

	takes := string(model.EdgeTakes)
	gives := string(model.EdgeGives)

	return l.all(ctx, false, func(g *gremlin.Source) *gremlin.Traversal {
		return g.V(fromLocationID).HasLabel(string(model.LabelLocation)).
			In(string(model.EdgeResides)).In(takes).As(takes).
			V(toLocationID).HasLabel(string(model.LabelLocation)).
			In(string(model.EdgeResides)).In(gives).As(gives).
			Select(takes).
			Where(takes, gremlin.Eq(gives)).
			ElementMap()
	})
}

/*
DeleteCustomField deletes the definition of a user defined field.
*/
func (l *Library) DeleteCustomField(ctx context.Context, label model.VertexLabel, fieldName string,
	transactional bool) (bool, error) {

	return l.iterate(ctx, transactional, func(g *gremlin.Source) *gremlin.Traversal {
		return g.V().HasLabel(string(label)).Has("fieldName", fieldName).Drop()
	})
}

/*
DeleteViolations deletes all rule violations of an item.
*/
func (l *Library) DeleteViolations(ctx context.Context, itemID string) (bool, error) {
	return l.iterate(ctx, false, func(g *gremlin.Source) *gremlin.Traversal {
		return g.V(itemID).HasLabel(string(model.LabelItem)).OutE(string(model.EdgeViolates)).Drop()
	})
}
