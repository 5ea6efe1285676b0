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
Package dataaccess contains the data access layer of the supply chain graph.

The DataAccess interface is the contract between request handlers and the
graph database. NeptuneDB implements it on top of the query library; it owns
the connection session so callers never see traversal sources or sockets.

Writes with the transactional flag are collected in one open transaction
which is ended with CommitTransaction or RollbackTransaction.
*/
package dataaccess

import (
	"context"
	"fmt"
	"sort"

	"devt.de/krotik/scsgraph/gremlin"
	"devt.de/krotik/scsgraph/model"
	"devt.de/krotik/scsgraph/neptune"
	"devt.de/krotik/scsgraph/query"
)

/*
DataAccess is the data access contract of the supply chain graph.
*/
type DataAccess interface {

	/*
		GetByID returns a vertex. Returns nil if the vertex does not exist.
	*/
	GetByID(ctx context.Context, label model.VertexLabel, id string) (gremlin.PropertyMap, error)

	/*
		GetAll returns all vertices of a label which have the given property values.
	*/
	GetAll(ctx context.Context, label model.VertexLabel, filter gremlin.PropertyMap) ([]gremlin.PropertyMap, error)

	/*
		GetAllConnected returns all vertices of the end label which are adjacent
		to a vertex in a given direction.
	*/
	GetAllConnected(ctx context.Context, startLabel model.VertexLabel, endLabel model.VertexLabel,
		id string, dir model.Direction, filter gremlin.PropertyMap) ([]gremlin.PropertyMap, error)

	/*
		DeleteByID deletes a vertex and all its edges.
	*/
	DeleteByID(ctx context.Context, label model.VertexLabel, id string, transactional bool) (bool, error)

	/*
		CreateVertex creates a new vertex.
	*/
	CreateVertex(ctx context.Context, label model.VertexLabel, props gremlin.PropertyMap,
		transactional bool) (gremlin.PropertyMap, error)

	/*
		CreateUniqueVertex returns the vertex with a given key value or creates it.
	*/
	CreateUniqueVertex(ctx context.Context, label model.VertexLabel, key string, value interface{},
		props gremlin.PropertyMap, transactional bool) (gremlin.PropertyMap, error)

	/*
		UpdateVertex sets properties of a vertex.
	*/
	UpdateVertex(ctx context.Context, label model.VertexLabel, id string, props gremlin.PropertyMap,
		transactional bool) (gremlin.PropertyMap, error)

	/*
		CreateEdge creates an edge between two vertices. Returns nil if one of
		the vertices does not exist.
	*/
	CreateEdge(ctx context.Context, startLabel model.VertexLabel, startID string,
		endLabel model.VertexLabel, endID string, edgeLabel model.EdgeLabel, props gremlin.PropertyMap,
		transactional bool) (gremlin.PropertyMap, error)

	/*
		GetInvalidItems returns all items which violate a rule.
	*/
	GetInvalidItems(ctx context.Context, locationID string, itemID string) ([]gremlin.PropertyMap, error)

	/*
		GetTransferPlans returns the transfer plans of a location.
	*/
	GetTransferPlans(ctx context.Context, locationID string, asFromLocation bool) ([]gremlin.PropertyMap, error)

	/*
		GetInventoryPlans returns the inventory plans of a location.
	*/
	GetInventoryPlans(ctx context.Context, locationID string) ([]gremlin.PropertyMap, error)

	/*
		GetProjections returns the projections of an item.
	*/
	GetProjections(ctx context.Context, itemID string) ([]gremlin.PropertyMap, error)

	/*
		GetTransferPlansBetweenTransferEdge returns the transfer plans between
		two locations.
	*/
	GetTransferPlansBetweenTransferEdge(ctx context.Context, fromLocationID string,
		toLocationID string) ([]gremlin.PropertyMap, error)

	/*
		DeleteCustomField deletes the definition of a user defined field.
	*/
	DeleteCustomField(ctx context.Context, label model.VertexLabel, fieldName string, transactional bool) (bool, error)

	/*
		DeleteViolations deletes all rule violations of an item.
	*/
	DeleteViolations(ctx context.Context, itemID string) (bool, error)

	/*
		CommitTransaction commits the open transaction.
	*/
	CommitTransaction(ctx context.Context) error

	/*
		RollbackTransaction rolls the open transaction back.
	*/
	RollbackTransaction(ctx context.Context) error

	/*
		Close rolls back an open transaction and closes the connection.
	*/
	Close(ctx context.Context) error
}

/*
NeptuneDB is the data access layer on a Neptune (or any other Gremlin)
database. All operations of the query library are available.
*/
type NeptuneDB struct {
	*query.Library
	session *neptune.Session
}

/*
NewNeptuneDB creates a new data access layer which reads its connection
parameters from config.Config. IAM authentication signs every connection
attempt.
*/
func NewNeptuneDB(useIAM bool) *NeptuneDB {
	return NewNeptuneDBWithResolver(neptune.NewConnectionResolver(useIAM))
}

/*
NewNeptuneDBWithResolver creates a new data access layer with a given
connection resolver.
*/
func NewNeptuneDBWithResolver(resolver neptune.Resolver) *NeptuneDB {
	session := neptune.NewSession(resolver)

	return &NeptuneDB{
		Library: query.NewLibrary(neptune.NewExecutor(session)),
		session: session,
	}
}

/*
CommitTransaction commits the open transaction. Does nothing if there is no
open transaction.
*/
func (db *NeptuneDB) CommitTransaction(ctx context.Context) error {
	return db.session.Commit(ctx)
}

/*
RollbackTransaction rolls the open transaction back. Does nothing if there is
no open transaction.
*/
func (db *NeptuneDB) RollbackTransaction(ctx context.Context) error {
	return db.session.Rollback(ctx)
}

/*
Close rolls back an open transaction and closes the connection.
*/
func (db *NeptuneDB) Close(ctx context.Context) error {
	return db.session.Close(ctx)
}

/*
State returns the state of the connection session.
*/
func (db *NeptuneDB) State() neptune.State {
	return db.session.State()
}

// Typed access
// ============

/*
Get returns a vertex as its typed kind. Returns nil if the vertex does not exist.
*/
func (db *NeptuneDB) Get(ctx context.Context, label model.VertexLabel, id string) (model.Vertex, error) {
	pm, err := db.GetByID(ctx, label, id)
	if err != nil || pm == nil {
		return nil, err
	}
	return model.Decode(pm), nil
}

/*
GetLocation returns a location. Returns nil if the location does not exist.
*/
func (db *NeptuneDB) GetLocation(ctx context.Context, id string) (*model.Location, error) {
	pm, err := db.GetByID(ctx, model.LabelLocation, id)
	return model.DecodeLocation(pm), err
}

/*
GetItem returns an item. Returns nil if the item does not exist.
*/
func (db *NeptuneDB) GetItem(ctx context.Context, id string) (*model.Item, error) {
	pm, err := db.GetByID(ctx, model.LabelItem, id)
	return model.DecodeItem(pm), err
}

/*
Create creates a vertex from a typed kind and returns the stored vertex.
*/
func (db *NeptuneDB) Create(ctx context.Context, v model.Vertex, transactional bool) (model.Vertex, error) {
	pm, err := db.CreateVertex(ctx, v.Label(), v.Properties(), transactional)
	if err != nil {
		return nil, err
	}
	return model.Decode(pm), nil
}

/*
Update writes all properties of a typed kind to its stored vertex. Returns nil
if the vertex does not exist.
*/
func (db *NeptuneDB) Update(ctx context.Context, v model.Vertex, transactional bool) (model.Vertex, error) {
	pm, err := db.UpdateVertex(ctx, v.Label(), v.VertexID(), v.Properties(), transactional)
	if err != nil || pm == nil {
		return nil, err
	}
	return model.Decode(pm), nil
}

/*
CreateLocation creates a location unless a location with the same
description exists. Returns the stored location.
*/
func (db *NeptuneDB) CreateLocation(ctx context.Context, loc *model.Location, transactional bool) (*model.Location, error) {
	pm, err := db.CreateUniqueVertex(ctx, model.LabelLocation, "description", loc.Description,
		loc.Properties(), transactional)
	return model.DecodeLocation(pm), err
}

/*
CreateItem creates an item and connects it to its location. The sku of an
item is unique within its location; ErrDuplicateSKU is returned if another
item with the same sku already resides there. Returns the stored item.
*/
func (db *NeptuneDB) CreateItem(ctx context.Context, item *model.Item, locationID string,
	transactional bool) (*model.Item, error) {

	if locationID == "" {
		pm, err := db.CreateVertex(ctx, model.LabelItem, item.Properties(), transactional)
		if err != nil {
			return nil, err
		}
		return model.DecodeItem(pm), nil
	}

	existing, err := db.GetItemsAtLocation(ctx, locationID, item.SKU, transactional)
	if err != nil {
		return nil, err
	}

	for _, pm := range existing {
		if pm.ID() != item.ID {
			return nil, &Error{ErrDuplicateSKU, fmt.Sprintf("sku %v at location %v", item.SKU, locationID)}
		}
	}

	pm, err := db.CreateVertex(ctx, model.LabelItem, item.Properties(), transactional)
	if err != nil {
		return nil, err
	}

	edge, err := db.CreateEdge(ctx, model.LabelItem, pm.ID(), model.LabelLocation, locationID,
		model.EdgeResides, nil, transactional)

	if err == nil && edge == nil {

		// The location does not exist; the item must not stay behind unconnected

		if _, err = db.DeleteByID(ctx, model.LabelItem, pm.ID(), transactional); err == nil {
			err = &Error{ErrRelationship, fmt.Sprintf("Location %v not found", locationID)}
		}
	}

	if err != nil {
		return nil, err
	}

	return model.DecodeItem(pm), nil
}

/*
InvalidItems returns all items which violate a rule together with the
description of their location.
*/
func (db *NeptuneDB) InvalidItems(ctx context.Context, locationID string, itemID string) ([]*model.InvalidItem, error) {
	res, err := db.GetInvalidItems(ctx, locationID, itemID)
	if err != nil {
		return nil, err
	}

	ret := make([]*model.InvalidItem, 0, len(res))

	for _, pm := range res {
		inv := model.DecodeInvalidItem(pm)

		loc, err := db.GetOutVertex(ctx, inv.ID, model.EdgeResides)
		if err != nil {
			return nil, err
		} else if loc != nil {
			inv.Description = loc.Str("description")
		}

		ret = append(ret, inv)
	}

	return ret, nil
}

/*
TransferPlans returns the transfer plans of a location.
*/
func (db *NeptuneDB) TransferPlans(ctx context.Context, locationID string, asFromLocation bool) ([]*model.TransferPlanInfo, error) {
	res, err := db.GetTransferPlans(ctx, locationID, asFromLocation)
	if err != nil {
		return nil, err
	}

	ret := make([]*model.TransferPlanInfo, 0, len(res))
	for _, pm := range res {
		ret = append(ret, model.DecodeTransferPlanInfo(pm))
	}

	return ret, nil
}

/*
InventoryPlans returns the inventory plans of a location.
*/
func (db *NeptuneDB) InventoryPlans(ctx context.Context, locationID string) ([]*model.InventoryPlanInfo, error) {
	res, err := db.GetInventoryPlans(ctx, locationID)
	if err != nil {
		return nil, err
	}

	ret := make([]*model.InventoryPlanInfo, 0, len(res))
	for _, pm := range res {
		ret = append(ret, model.DecodeInventoryPlanInfo(pm))
	}

	return ret, nil
}

/*
Projections returns the projections of an item ordered by days out.
*/
func (db *NeptuneDB) Projections(ctx context.Context, itemID string) ([]*model.Projection, error) {
	res, err := db.GetProjections(ctx, itemID)
	if err != nil {
		return nil, err
	}

	ret := make([]*model.Projection, 0, len(res))
	for _, pm := range res {
		if p := model.DecodeProjection(pm); p != nil {
			ret = append(ret, p)
		}
	}

	sort.Slice(ret, func(i, j int) bool {
		return ret[i].DaysOut < ret[j].DaysOut
	})

	return ret, nil
}
