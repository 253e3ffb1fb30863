package emd

import "math"

// edge is one residual arc. Reverse arcs start with cap 0 and carry
// negative flow, so residual() = cap − flow works for both directions.
type edge struct {
	to, rev int
	cap     float64
	flow    float64
	cost    float64
}

func (e *edge) residual() float64 { return e.cap - e.flow }

// network is an index-based residual graph.
type network struct {
	adj   [][]int
	edges []edge
}

func newNetwork(nodes int) *network {
	return &network{adj: make([][]int, nodes)}
}

// addEdge inserts u→v and its reverse arc; returns the forward arc index.
func (g *network) addEdge(u, v int, capacity, cost float64) int {
	fwd := len(g.edges)
	g.edges = append(g.edges,
		edge{to: v, rev: fwd + 1, cap: capacity, cost: cost},
		edge{to: u, rev: fwd, cap: 0, cost: -cost},
	)
	g.adj[u] = append(g.adj[u], fwd)
	g.adj[v] = append(g.adj[v], fwd+1)

	return fwd
}

// minCostFlow augments along cheapest residual paths until the sink is
// unreachable, the bottleneck vanishes or maxAugment paths were used.
func (g *network) minCostFlow(source, sink, maxAugment int) {
	for it := 0; it < maxAugment; it++ {
		prev, ok := g.shortestPath(source, sink)
		if !ok {
			return
		}

		bottle := math.Inf(1)
		for v := sink; v != source; {
			e := &g.edges[prev[v]]
			bottle = math.Min(bottle, e.residual())
			v = g.edges[e.rev].to
		}
		if bottle <= flowEpsilon {
			return
		}

		for v := sink; v != source; {
			e := &g.edges[prev[v]]
			e.flow += bottle
			g.edges[e.rev].flow -= bottle
			v = g.edges[e.rev].to
		}
	}
}

// shortestPath runs queue-based Bellman–Ford from source over arcs with
// positive residual capacity. prev[v] is the arc index used to reach v.
func (g *network) shortestPath(source, sink int) ([]int, bool) {
	n := len(g.adj)
	dist := make([]float64, n)
	prev := make([]int, n)
	inQueue := make([]bool, n)
	for i := range dist {
		dist[i] = math.Inf(1)
		prev[i] = -1
	}
	dist[source] = 0

	queue := []int{source}
	inQueue[source] = true
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		inQueue[u] = false
		for _, ei := range g.adj[u] {
			e := &g.edges[ei]
			if e.to == source || e.residual() <= flowEpsilon {
				continue
			}
			if nd := dist[u] + e.cost; nd < dist[e.to]-costEpsilon {
				dist[e.to] = nd
				prev[e.to] = ei
				if !inQueue[e.to] {
					inQueue[e.to] = true
					queue = append(queue, e.to)
				}
			}
		}
	}

	return prev, prev[sink] >= 0
}
