package osm

import (
	"math"

	"github.com/portscout/portscout/internal/model"
)

// Graph is an undirected road graph built from way geometry. After
// Simplify, the remaining nodes are intersections and dead ends only, so a
// node's degree counts the distinct road legs meeting there.
type Graph struct {
	nodes map[int64]Node
	adj   map[int64]map[int64]struct{}
}

// BuildGraph assembles a graph from consecutive node pairs of each way.
func BuildGraph(ways []Way) *Graph {
	g := &Graph{
		nodes: make(map[int64]Node),
		adj:   make(map[int64]map[int64]struct{}),
	}
	for _, way := range ways {
		for i, n := range way.Nodes {
			g.nodes[n.ID] = n
			if i > 0 {
				g.addEdge(way.Nodes[i-1].ID, n.ID)
			}
		}
	}
	return g
}

func (g *Graph) addEdge(a, b int64) {
	if a == b {
		return
	}
	if g.adj[a] == nil {
		g.adj[a] = make(map[int64]struct{})
	}
	if g.adj[b] == nil {
		g.adj[b] = make(map[int64]struct{})
	}
	g.adj[a][b] = struct{}{}
	g.adj[b][a] = struct{}{}
}

// Simplify contracts pass-through nodes: any node with exactly two distinct
// neighbors is removed and its neighbors joined, merging collinear segments
// into single edges. Runs until no such node remains.
func (g *Graph) Simplify() {
	for {
		contracted := false
		for id, neighbors := range g.adj {
			if len(neighbors) != 2 {
				continue
			}
			pair := make([]int64, 0, 2)
			for n := range neighbors {
				pair = append(pair, n)
			}
			a, b := pair[0], pair[1]

			delete(g.adj[a], id)
			delete(g.adj[b], id)
			delete(g.adj, id)
			delete(g.nodes, id)
			g.addEdge(a, b)
			contracted = true
		}
		if !contracted {
			return
		}
	}
}

// Degree returns the number of distinct edges at a node.
func (g *Graph) Degree(id int64) int {
	return len(g.adj[id])
}

// Len returns the number of nodes currently in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// NearestNode returns the graph node closest to the point.
func (g *Graph) NearestNode(pt model.Coordinate) (Node, bool) {
	best := math.Inf(1)
	var nearest Node
	found := false
	for _, n := range g.nodes {
		d := HaversineM(pt.Lat, pt.Lon, n.Lat, n.Lon)
		if d < best {
			best = d
			nearest = n
			found = true
		}
	}
	return nearest, found
}
