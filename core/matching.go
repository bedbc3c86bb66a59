package core

// Computes a maximum cardinality matching of the graph with
// n nodes and edges where adjacent(i, j) is true using Edmonds'
// blossom algorithm.
//
// Returns the partner of each node or -1 for unmatched nodes.
// adjacent has to be symmetric.
func maximumMatching(n int, adjacent func(i, j int) bool) []int {
	m := &blossomMatcher{
		n:       n,
		adj:     make([][]int, n),
		match:   make([]int, n),
		parent:  make([]int, n),
		base:    make([]int, n),
		used:    make([]bool, n),
		blossom: make([]bool, n),
	}
	for i := range n {
		m.match[i] = -1
		for j := range n {
			if i != j && adjacent(i, j) {
				m.adj[i] = append(m.adj[i], j)
			}
		}
	}

	// Greedy start so that most augmentations are trivial
	for v := range n {
		if m.match[v] != -1 {
			continue
		}
		for _, u := range m.adj[v] {
			if m.match[u] == -1 {
				m.match[u] = v
				m.match[v] = u
				break
			}
		}
	}

	for root := range n {
		if m.match[root] != -1 {
			continue
		}
		v := m.findAugmentingPath(root)
		for v != -1 {
			pv := m.parent[v]
			ppv := m.match[pv]
			m.match[v] = pv
			m.match[pv] = v
			v = ppv
		}
	}

	return m.match
}

type blossomMatcher struct {
	n   int
	adj [][]int

	match  []int
	parent []int
	base   []int

	used    []bool
	blossom []bool
	queue   []int
}

// Returns the lowest common ancestor of a and b in the
// alternating tree with respect to the blossom bases
func (m *blossomMatcher) lowestCommonAncestor(a, b int) int {
	visited := make([]bool, m.n)
	for {
		a = m.base[a]
		visited[a] = true
		if m.match[a] == -1 {
			break
		}
		a = m.parent[m.match[a]]
	}
	for {
		b = m.base[b]
		if visited[b] {
			return b
		}
		b = m.parent[m.match[b]]
	}
}

func (m *blossomMatcher) markPath(v, b, child int) {
	for m.base[v] != b {
		m.blossom[m.base[v]] = true
		m.blossom[m.base[m.match[v]]] = true
		m.parent[v] = child
		child = m.match[v]
		v = m.parent[m.match[v]]
	}
}

// Searches an augmenting path from the unmatched root.
// Returns the unmatched end of the path or -1.
func (m *blossomMatcher) findAugmentingPath(root int) int {
	for i := range m.n {
		m.used[i] = false
		m.parent[i] = -1
		m.base[i] = i
	}
	m.used[root] = true
	m.queue = append(m.queue[:0], root)

	for head := 0; head < len(m.queue); head++ {
		v := m.queue[head]
		for _, to := range m.adj[v] {
			if m.base[v] == m.base[to] || m.match[v] == to {
				continue
			}

			if to == root || (m.match[to] != -1 && m.parent[m.match[to]] != -1) {
				// Odd cycle: contract the blossom
				curBase := m.lowestCommonAncestor(v, to)
				for i := range m.n {
					m.blossom[i] = false
				}
				m.markPath(v, curBase, to)
				m.markPath(to, curBase, v)
				for i := range m.n {
					if m.blossom[m.base[i]] {
						m.base[i] = curBase
						if !m.used[i] {
							m.used[i] = true
							m.queue = append(m.queue, i)
						}
					}
				}
			} else if m.parent[to] == -1 {
				m.parent[to] = v
				if m.match[to] == -1 {
					return to
				}
				next := m.match[to]
				m.used[next] = true
				m.queue = append(m.queue, next)
			}
		}
	}

	return -1
}
