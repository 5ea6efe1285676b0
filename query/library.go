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
	"sort"

	"devt.de/krotik/scsgraph/gremlin"
	"devt.de/krotik/scsgraph/model"
)

/*
Library runs the domain traversals of the supply chain graph.
*/
type Library struct {
	ex Executor
}

/*
NewLibrary creates a new query library which runs all traversals through a
given executor.
*/
func NewLibrary(ex Executor) *Library {
	return &Library{ex}
}

/*
toList runs a traversal built by a given function and returns all results.
*/
func (l *Library) toList(ctx context.Context, transactional bool,
	build func(g *gremlin.Source) *gremlin.Traversal) (gremlin.Result, error) {

	return l.ex.Query(ctx, transactional, func(ctx context.Context, g *gremlin.Source) (gremlin.Result, error) {
		return build(g).ToList(ctx)
	})
}

/*
first runs a traversal and returns the first result as property map.
*/
func (l *Library) first(ctx context.Context, transactional bool,
	build func(g *gremlin.Source) *gremlin.Traversal) (gremlin.PropertyMap, error) {

	res, err := l.toList(ctx, transactional, build)
	if err != nil {
		return nil, err
	}

	return res.FirstPropertyMap(), nil
}

/*
all runs a traversal and returns all results as property maps.
*/
func (l *Library) all(ctx context.Context, transactional bool,
	build func(g *gremlin.Source) *gremlin.Traversal) ([]gremlin.PropertyMap, error) {

	res, err := l.toList(ctx, transactional, build)
	if err != nil {
		return nil, err
	}

	return res.PropertyMaps(), nil
}

/*
iterate runs a traversal and discards its results.
*/
func (l *Library) iterate(ctx context.Context, transactional bool,
	build func(g *gremlin.Source) *gremlin.Traversal) (bool, error) {

	_, err := l.ex.Query(ctx, transactional, func(ctx context.Context, g *gremlin.Source) (gremlin.Result, error) {
		return nil, build(g).Iterate(ctx)
	})

	return err == nil, err
}

// Read operations
// ===============

/*
GetByID returns the element map of a vertex with a given label and id.
*/
func (l *Library) GetByID(ctx context.Context, label model.VertexLabel, id string) (gremlin.PropertyMap, error) {
	return l.first(ctx, false, func(g *gremlin.Source) *gremlin.Traversal {
		return g.V(id).HasLabel(string(label)).ElementMap()
	})
}

/*
GetFromEdge returns the element map of the out (direction out) or the in
(direction in) vertex of an edge.
*/
func (l *Library) GetFromEdge(ctx context.Context, edgeID string, dir model.Direction) (gremlin.PropertyMap, error) {
	if err := checkDirection(dir); err != nil {
		return nil, err
	}

	return l.first(ctx, false, func(g *gremlin.Source) *gremlin.Traversal {
		return edgeVertexSteps[dir](g.E(edgeID)).ElementMap()
	})
}

/*
GetPathBetweenVertices returns the vertices of the first simple path between
two vertices. Returns nil if there is no path.
*/
func (l *Library) GetPathBetweenVertices(ctx context.Context, startLabel model.VertexLabel, startID string,
	endLabel model.VertexLabel, endID string, dir model.Direction) ([]gremlin.PropertyMap, error) {

	if err := checkDirection(dir); err != nil {
		return nil, err
	}

	res, err := l.toList(ctx, false, func(g *gremlin.Source) *gremlin.Traversal {
		return g.V(startID).HasLabel(string(startLabel)).
			Repeat(vertexSteps[dir](gremlin.NewAnonymousTraversal()).SimplePath()).
			Until(gremlin.T__.HasID(endID).HasLabel(string(endLabel))).
			Path().Limit(1)
	})

	if err != nil {
		return nil, err
	}

	path, ok := res.First().(*gremlin.Path)
	if !ok {
		return nil, nil
	}

	ret := make([]gremlin.PropertyMap, 0, len(path.Objects))
	for _, o := range path.Objects {
		if pm := gremlin.ToPropertyMap(o); pm != nil {
			ret = append(ret, pm)
		}
	}

	return ret, nil
}

/*
GetAll returns all vertices of a label which have the given property values.
*/
func (l *Library) GetAll(ctx context.Context, label model.VertexLabel, filter gremlin.PropertyMap) ([]gremlin.PropertyMap, error) {
	return l.all(ctx, false, func(g *gremlin.Source) *gremlin.Traversal {
		return withFilter(g.V().HasLabel(string(label)), filter).ElementMap()
	})
}

/*
GetAllConnected returns all vertices of the end label which are adjacent to a
given vertex in a given direction and have the given property values.
*/
func (l *Library) GetAllConnected(ctx context.Context, startLabel model.VertexLabel, endLabel model.VertexLabel,
	id string, dir model.Direction, filter gremlin.PropertyMap) ([]gremlin.PropertyMap, error) {

	if err := checkDirection(dir); err != nil {
		return nil, err
	}

	return l.all(ctx, false, func(g *gremlin.Source) *gremlin.Traversal {
		t := vertexSteps[dir](g.V(id).HasLabel(string(startLabel))).HasLabel(string(endLabel))
		return withFilter(t, filter).ElementMap()
	})
}

/*
GetAllConnectedKHop returns all vertices of the end label which can be reached
from a given vertex by following a list of hops.
*/
func (l *Library) GetAllConnectedKHop(ctx context.Context, startLabel model.VertexLabel, endLabel model.VertexLabel,
	id string, hops []model.Hop, filter gremlin.PropertyMap) ([]gremlin.PropertyMap, error) {

	if err := checkHops(hops); err != nil {
		return nil, err
	}

	return l.all(ctx, false, func(g *gremlin.Source) *gremlin.Traversal {
		t := withHops(g.V(id).HasLabel(string(startLabel)), hops).HasLabel(string(endLabel))
		return withFilter(t, filter).ElementMap()
	})
}

/*
GetAllLabelConnectedEdgesKHop follows a list of hops from all vertices of the
start label and returns the final edges of a given label. Each result has the
keys "from" (out vertex), "edge" (element map of the edge) and "to" (in vertex).
*/
func (l *Library) GetAllLabelConnectedEdgesKHop(ctx context.Context, startLabel model.VertexLabel,
	edgeLabel model.EdgeLabel, finalDir model.Direction, hops []model.Hop) ([]gremlin.PropertyMap, error) {

	if err := checkHops(hops); err != nil {
		return nil, err
	} else if err := checkDirection(finalDir); err != nil {
		return nil, err
	}

	return l.all(ctx, false, func(g *gremlin.Source) *gremlin.Traversal {
		t := withHops(g.V().HasLabel(string(startLabel)), hops)
		return edgeSteps[finalDir](t, string(edgeLabel)).
			Project("from", "edge", "to").
			By(gremlin.T__.OutV()).
			By(gremlin.T__.ElementMap()).
			By(gremlin.T__.InV())
	})
}

/*
GetEdgeVertex returns all vertices which are adjacent to a vertex through
edges of a given label.
*/
func (l *Library) GetEdgeVertex(ctx context.Context, id string, edgeLabel model.EdgeLabel,
	dir model.Direction) ([]gremlin.PropertyMap, error) {

	if err := checkDirection(dir); err != nil {
		return nil, err
	}

	return l.all(ctx, false, func(g *gremlin.Source) *gremlin.Traversal {
		return vertexSteps[dir](g.V(id), string(edgeLabel)).ElementMap()
	})
}

/*
GetEdgeBetweenVertices returns the first edge of a given label between two
vertices (in either direction) which has the given property values.
*/
func (l *Library) GetEdgeBetweenVertices(ctx context.Context, edgeLabel model.EdgeLabel, fromID string,
	toID string, filter gremlin.PropertyMap) (gremlin.PropertyMap, error) {

	return l.first(ctx, false, func(g *gremlin.Source) *gremlin.Traversal {
		t := g.V(fromID).BothE(string(edgeLabel)).Where(gremlin.T__.OtherV().HasID(toID))
		return withFilter(t, filter).ElementMap()
	})
}

/*
GetOutVertex returns the first vertex which is reached by following an
outgoing edge of a given label.
*/
func (l *Library) GetOutVertex(ctx context.Context, startID string, edgeLabel model.EdgeLabel) (gremlin.PropertyMap, error) {
	return l.first(ctx, false, func(g *gremlin.Source) *gremlin.Traversal {
		return g.V(startID).Out(string(edgeLabel)).ElementMap()
	})
}

/*
GetAllEdges returns all edges between two vertices. Direction out returns the
edges from the start vertex to the end vertex; direction in the reverse.
*/
func (l *Library) GetAllEdges(ctx context.Context, startLabel model.VertexLabel, startID string,
	endLabel model.VertexLabel, endID string, dir model.Direction) ([]gremlin.PropertyMap, error) {

	if err := checkDirection(dir); err != nil {
		return nil, err
	}

	other := map[model.Direction]model.Direction{model.In: model.Out, model.Out: model.In}[dir]

	return l.all(ctx, false, func(g *gremlin.Source) *gremlin.Traversal {
		t := edgeSteps[dir](g.V(startID).HasLabel(string(startLabel))).As("edge")
		return edgeVertexSteps[other](t).HasID(endID).HasLabel(string(endLabel)).
			Select("edge").ElementMap()
	})
}

// Write operations
// ================

/*
CreateVertex creates a new vertex and returns its element map.
*/
func (l *Library) CreateVertex(ctx context.Context, label model.VertexLabel, props gremlin.PropertyMap,
	transactional bool) (gremlin.PropertyMap, error) {

	return l.first(ctx, transactional, func(g *gremlin.Source) *gremlin.Traversal {
		return withProperties(g.AddV(string(label)), props, true).ElementMap()
	})
}

/*
CreateUniqueVertex returns the vertex of a label which has a given key value.
The vertex is created with the given properties if it does not exist. Lookup
and creation happen in one traversal.
*/
func (l *Library) CreateUniqueVertex(ctx context.Context, label model.VertexLabel, key string, value interface{},
	props gremlin.PropertyMap, transactional bool) (gremlin.PropertyMap, error) {

	create := props
	if create.Has(key) {
		create = make(gremlin.PropertyMap, len(props))
		for k, v := range props {
			if k != key {
				create[k] = v
			}
		}
	}

	return l.first(ctx, transactional, func(g *gremlin.Source) *gremlin.Traversal {
		return g.V().HasLabel(string(label)).Has(key, value).Fold().
			Coalesce(
				gremlin.T__.Unfold(),
				withProperties(gremlin.T__.AddV(string(label)).Property(gremlin.Single, key, value), create, true),
			).ElementMap()
	})
}

/*
UpdateVertex sets properties of a vertex and returns its element map. The id
of the vertex is never written.
*/
func (l *Library) UpdateVertex(ctx context.Context, label model.VertexLabel, id string, props gremlin.PropertyMap,
	transactional bool) (gremlin.PropertyMap, error) {

	return l.first(ctx, transactional, func(g *gremlin.Source) *gremlin.Traversal {
		return withProperties(g.V(id).HasLabel(string(label)), props, true).ElementMap()
	})
}

/*
UpdateEdge sets properties of an edge and returns its element map.
*/
func (l *Library) UpdateEdge(ctx context.Context, label model.EdgeLabel, id string, props gremlin.PropertyMap,
	transactional bool) (gremlin.PropertyMap, error) {

	return l.first(ctx, transactional, func(g *gremlin.Source) *gremlin.Traversal {
		return withProperties(g.E(id).HasLabel(string(label)), props, false).ElementMap()
	})
}

/*
CreateEdge creates an edge between two vertices which are given by label and
id. Returns nil if one of the vertices does not exist.
*/
func (l *Library) CreateEdge(ctx context.Context, startLabel model.VertexLabel, startID string,
	endLabel model.VertexLabel, endID string, edgeLabel model.EdgeLabel, props gremlin.PropertyMap,
	transactional bool) (gremlin.PropertyMap, error) {

	return l.first(ctx, transactional, func(g *gremlin.Source) *gremlin.Traversal {
		t := g.V(startID).HasLabel(string(startLabel)).As("startVertex").
			V(endID).HasLabel(string(endLabel)).As("endVertex").
			AddE(string(edgeLabel)).From("startVertex").To("endVertex")
		return withProperties(t, props, false).ElementMap()
	})
}

/*
CreateEdgeForAll creates an edge from a given vertex to every vertex of the
end label.
*/
func (l *Library) CreateEdgeForAll(ctx context.Context, startLabel model.VertexLabel, startID string,
	endLabel model.VertexLabel, edgeLabel model.EdgeLabel, props gremlin.PropertyMap,
	transactional bool) (bool, error) {

	return l.iterate(ctx, transactional, func(g *gremlin.Source) *gremlin.Traversal {
		t := g.V(startID).HasLabel(string(startLabel)).As("startVertex").
			V().HasLabel(string(endLabel)).As("endVertex").
			AddE(string(edgeLabel)).From("startVertex").To("endVertex")
		return withProperties(t, props, false)
	})
}

// Delete operations
// =================

/*
DeleteEdge deletes all edges of a given label from a start vertex to an end
vertex.
*/
func (l *Library) DeleteEdge(ctx context.Context, startLabel model.VertexLabel, startID string,
	endLabel model.VertexLabel, endID string, edgeLabel model.EdgeLabel, transactional bool) (bool, error) {

	return l.iterate(ctx, transactional, func(g *gremlin.Source) *gremlin.Traversal {
		return g.V(startID).HasLabel(string(startLabel)).OutE(string(edgeLabel)).As("e").
			InV().HasID(endID).HasLabel(string(endLabel)).
			Select("e").Drop()
	})
}

/*
DeleteAllInEdgesFromVertex deletes all incoming edges of a given label of a
vertex.
*/
func (l *Library) DeleteAllInEdgesFromVertex(ctx context.Context, startLabel model.VertexLabel, startID string,
	edgeLabel model.EdgeLabel, transactional bool) (bool, error) {

	return l.iterate(ctx, transactional, func(g *gremlin.Source) *gremlin.Traversal {
		return g.V(startID).HasLabel(string(startLabel)).InE(string(edgeLabel)).Drop()
	})
}

/*
DeleteByID deletes a vertex and all its edges.
*/
func (l *Library) DeleteByID(ctx context.Context, label model.VertexLabel, id string, transactional bool) (bool, error) {
	return l.iterate(ctx, transactional, func(g *gremlin.Source) *gremlin.Traversal {
		return g.V(id).HasLabel(string(label)).Drop()
	})
}

/*
DropAllVerticesByLabel deletes all vertices of a label.
*/
func (l *Library) DropAllVerticesByLabel(ctx context.Context, label model.VertexLabel, transactional bool) (bool, error) {
	return l.iterate(ctx, transactional, func(g *gremlin.Source) *gremlin.Traversal {
		return g.V().HasLabel(string(label)).Drop()
	})
}

// Helper functions
// ================

/*
sortedKeys returns the keys of a property map in alphabetical order.
*/
func sortedKeys(pm gremlin.PropertyMap) []string {
	keys := make([]string, 0, len(pm))
	for k := range pm {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

/*
withFilter adds a has step for every given property value.
*/
func withFilter(t *gremlin.Traversal, filter gremlin.PropertyMap) *gremlin.Traversal {
	for _, k := range sortedKeys(filter) {
		t = t.Has(k, filter[k])
	}
	return t
}

/*
withProperties adds a property step for every given property. Vertex
properties are written with single cardinality. Ids, labels and nil values
are skipped.
*/
func withProperties(t *gremlin.Traversal, props gremlin.PropertyMap, vertex bool) *gremlin.Traversal {
	for _, k := range sortedKeys(props) {
		v := props[k]

		if k == "id" || k == "label" || v == nil {
			continue
		}

		if vertex {
			t = t.Property(gremlin.Single, k, v)
		} else {
			t = t.Property(k, v)
		}
	}
	return t
}

/*
withHops adds a vertex step for every hop.
*/
func withHops(t *gremlin.Traversal, hops []model.Hop) *gremlin.Traversal {
	for _, h := range hops {
		t = vertexSteps[h.Direction](t, string(h.Label))
	}
	return t
}
