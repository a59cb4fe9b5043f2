package dfs

import (
	"fmt"
	"slices"
	"strings"

	"github.com/katalvlaran/tworow/core"
)

// DetectCycles inspects g for cycles closed by back edges.
// Returns (true, cycles, nil) if any are found, (false, nil, nil) otherwise.
// Each cycle is closed ([v0, ..., v0]) and canonicalised by minimal
// rotation, so the output is deterministic. Unlike SimpleCycles it does not
// enumerate every simple cycle; it is the cheap witness finder used when a
// DAG turns out not to be one.
//
// Time Complexity: O(V + E) for the walk, plus O(L) per recorded cycle of
// L vertices for canonicalisation.
func DetectCycles(g *core.Graph) (bool, [][]string, error) {
	// 1. A nil graph has no cycles
	if g == nil {
		return false, nil, nil
	}

	// 2. Three-colour walk from every white vertex in graph order
	verts := g.Vertices()
	d := &detector{
		g:     g,
		state: make(map[string]int, len(verts)),
		path:  make([]string, 0, len(verts)),
		seen:  make(map[string]struct{}),
	}
	for _, v := range verts {
		if d.state[v] != White {
			continue
		}
		if err := d.visit(v, ""); err != nil {
			return false, nil, fmt.Errorf("dfs: DetectCycles: %w", err)
		}
	}

	// 3. Deterministic output order
	if len(d.cycles) == 0 {
		return false, nil, nil
	}
	slices.SortFunc(d.cycles, func(a, b []string) int { return slices.Compare(a, b) })

	return true, d.cycles, nil
}

type detector struct {
	g      *core.Graph
	state  map[string]int
	path   []string
	seen   map[string]struct{}
	cycles [][]string
}

func (d *detector) visit(id, parent string) error {
	d.state[id] = Gray
	d.path = append(d.path, id)

	nbrs, err := d.g.NeighborIDs(id)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrNeighborFetch, id, err)
	}
	for _, nbr := range nbrs {
		if !d.g.Directed() && nbr == parent {
			continue
		}
		switch d.state[nbr] {
		case White:
			if err = d.visit(nbr, id); err != nil {
				return err
			}
		case Gray:
			d.record(nbr)
		}
	}

	d.path = d.path[:len(d.path)-1]
	d.state[id] = Black

	return nil
}

func (d *detector) record(start string) {
	idx := slices.Index(d.path, start)
	seq := append([]string(nil), d.path[idx:]...)
	seq = append(seq, start)
	sig, canon := canonical(seq, d.g.Directed())
	if _, ok := d.seen[sig]; ok {
		return
	}
	d.seen[sig] = struct{}{}
	d.cycles = append(d.cycles, canon)
}

// canonical returns the signature and closed form of the minimal rotation
// of cycle. Undirected cycles also consider the reversed walk.
//
// Time Complexity: O(L) for a cycle of L vertices.
func canonical(cycle []string, directed bool) (string, []string) {
	base := cycle[:len(cycle)-1]
	pick := minimalRotation(base)
	if !directed {
		rev := slices.Clone(base)
		slices.Reverse(rev)
		if rev = minimalRotation(rev); slices.Compare(rev, pick) < 0 {
			pick = rev
		}
	}
	closed := append(slices.Clone(pick), pick[0])

	return strings.Join(closed, ","), closed
}

// minimalRotation returns the lexicographically smallest rotation of s
// using Booth's failure-function scan over s doubled.
//
// Time Complexity: O(n).
// Memory: O(n) for the doubled sequence and the failure table.
func minimalRotation(s []string) []string {
	n := len(s)
	if n == 0 {
		return nil
	}
	doubled := append(slices.Clone(s), s...)
	fail := make([]int, 2*n)
	for i := range fail {
		fail[i] = -1
	}
	k := 0 // start of the best rotation so far
	for j := 1; j < 2*n; j++ {
		i := fail[j-k-1]
		for i != -1 && doubled[j] != doubled[k+i+1] {
			if doubled[j] < doubled[k+i+1] {
				k = j - i - 1
			}
			i = fail[i]
		}
		if doubled[j] == doubled[k+i+1] {
			fail[j-k] = i + 1
			continue
		}
		if doubled[j] < doubled[k] {
			k = j
		}
		fail[j-k] = -1
	}

	return slices.Clone(doubled[k : k+n])
}

// SimpleCycles enumerates every simple cycle of g.
//
// Each cycle is returned closed ([v0, v1, ..., v0]) and rooted at its
// smallest vertex in graph order. Directed cycles follow edge direction.
// Undirected cycles have at least three edges (or are loops) and are
// reported once, walking towards the smaller of the root's two cycle
// neighbors first. Results are ordered by length, then by discovery.
//
// Options:
//   - WithMaxLength(n): only cycles with at most n edges.
//   - WithLimit(n): stop after n cycles.
//   - WithCycleContext(ctx): cancellation.
//
// Time Complexity: exponential in the worst case, since every simple path
// from each root is explored. With WithMaxLength(L) it is O(V·d^L) for
// maximum degree d.
func SimpleCycles(g *core.Graph, opts ...CycleOption) ([][]string, error) {
	// 1. Validate input graph
	if g == nil {
		return nil, ErrGraphNil
	}

	// 2. Apply options
	o := defaultCycleOptions()
	for _, fn := range opts {
		fn(&o)
	}

	// 3. Rank vertices so each cycle is found only from its smallest vertex
	verts := g.Vertices()
	s := &cycleSearch{
		g:      g,
		opts:   o,
		rank:   make(map[string]int, len(verts)),
		onPath: make(map[string]bool, len(verts)),
	}
	for i, v := range verts {
		s.rank[v] = i
	}

	// 4. Extend paths from every root until the limit is reached
	for _, v := range verts {
		s.start = v
		s.path = append(s.path[:0], v)
		s.onPath[v] = true
		err := s.extend(v)
		delete(s.onPath, v)
		if err != nil {
			return nil, fmt.Errorf("dfs: SimpleCycles: %w", err)
		}
		if s.full() {
			break
		}
	}

	// 5. Shortest first, discovery order within a length
	slices.SortStableFunc(s.cycles, func(a, b []string) int { return len(a) - len(b) })

	return s.cycles, nil
}

type cycleSearch struct {
	g      *core.Graph
	opts   cycleOptions
	rank   map[string]int
	start  string
	path   []string
	onPath map[string]bool
	cycles [][]string
}

func (s *cycleSearch) full() bool {
	return s.opts.limit > 0 && len(s.cycles) >= s.opts.limit
}

func (s *cycleSearch) extend(id string) error {
	select {
	case <-s.opts.ctx.Done():
		return s.opts.ctx.Err()
	default:
	}

	nbrs, err := s.g.NeighborIDs(id)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrNeighborFetch, id, err)
	}
	for _, nbr := range nbrs {
		if s.full() {
			return nil
		}
		if nbr == s.start {
			s.close()
			continue
		}
		if s.rank[nbr] < s.rank[s.start] || s.onPath[nbr] {
			continue
		}
		if s.opts.maxLen > 0 && len(s.path) >= s.opts.maxLen {
			continue
		}
		s.path = append(s.path, nbr)
		s.onPath[nbr] = true
		err = s.extend(nbr)
		s.onPath[nbr] = false
		s.path = s.path[:len(s.path)-1]
		if err != nil {
			return err
		}
	}

	return nil
}

// close records path + start as a cycle if it is one worth reporting.
func (s *cycleSearch) close() {
	n := len(s.path)
	if !s.g.Directed() && n > 1 {
		// Two vertices reuse the same undirected edge; longer walks are seen
		// in both directions, keep the one whose second vertex ranks lower.
		if n == 2 || s.rank[s.path[1]] > s.rank[s.path[n-1]] {
			return
		}
	}
	cycle := make([]string, 0, n+1)
	cycle = append(cycle, s.path...)
	cycle = append(cycle, s.start)
	s.cycles = append(s.cycles, cycle)
}
