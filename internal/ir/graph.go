package ir

import "sort"

// Node is one parsed call statement.
type Node struct {
	ID    ID     `json:"id"`
	Label string `json:"label"` // fully-qualified operator name, e.g. "algebra.join"
	Args  string `json:"args"`  // raw argument text for display
}

// Module returns the part of the label before the first '.', or "".
func (n Node) Module() string {
	for i := 0; i < len(n.Label); i++ {
		if n.Label[i] == '.' {
			return n.Label[:i]
		}
	}
	return ""
}

// Literal is a constant or pseudo-value bound directly to an argument.
type Literal struct {
	ID     ID     `json:"id"`
	Text   string `json:"text"`
	Target ID     `json:"target"`
}

// Edge connects a call node and an argument. Direction is implied by the
// accessor it came from.
type Edge struct {
	Node ID `json:"node"`
	Arg  ID `json:"arg"`
}

// Reassignment records that Dst names the same value as Src.
type Reassignment struct {
	Src ID `json:"src"`
	Dst ID `json:"dst"`
}

// Graph accumulates call nodes, argument edges, reassignments and literal
// bindings. Insertions are unvalidated; the parser has already checked that
// every referenced identifier exists.
//
// Per-node argument sets are deduplicated and keep insertion order, so
// iteration is deterministic without sorting.
type Graph struct {
	nodes    []Node
	nodeIdx  map[ID]int
	in       map[ID][]ID
	out      map[ID][]ID
	reassign map[ID]ID
	literals []Literal
	root     ID
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodeIdx:  make(map[ID]int),
		in:       make(map[ID][]ID),
		out:      make(map[ID][]ID),
		reassign: make(map[ID]ID),
	}
}

// AddNode records a call node. Adding the same id twice keeps the first.
func (g *Graph) AddNode(id ID, label, args string) {
	if _, ok := g.nodeIdx[id]; ok {
		return
	}
	g.nodeIdx[id] = len(g.nodes)
	g.nodes = append(g.nodes, Node{ID: id, Label: label, Args: args})
}

// AddInput records that node consumes arg.
func (g *Graph) AddInput(node, arg ID) {
	g.in[node] = appendUnique(g.in[node], arg)
}

// AddOutput records that node produces arg.
func (g *Graph) AddOutput(node, arg ID) {
	g.out[node] = appendUnique(g.out[node], arg)
}

// AddReassign records that dst now refers to the value of src.
// A later reassignment of the same src overwrites the earlier one.
func (g *Graph) AddReassign(src, dst ID) {
	g.reassign[src] = dst
}

// AddLiteral records a literal value bound to target.
func (g *Graph) AddLiteral(id ID, text string, target ID) {
	g.literals = append(g.literals, Literal{ID: id, Text: text, Target: target})
}

// MarkRoot records the distinguished root node. Only the first call has an
// effect; it returns false when a root was already marked.
func (g *Graph) MarkRoot(id ID) bool {
	if g.root.IsValid() {
		return false
	}
	g.root = id
	return true
}

// Root returns the distinguished root node, or NoID.
func (g *Graph) Root() ID {
	return g.root
}

// Nodes returns the call nodes in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Node looks up a call node by id.
func (g *Graph) Node(id ID) (Node, bool) {
	i, ok := g.nodeIdx[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// Inputs returns the arguments node consumes.
func (g *Graph) Inputs(node ID) []ID {
	return append([]ID(nil), g.in[node]...)
}

// Outputs returns the arguments node produces.
func (g *Graph) Outputs(node ID) []ID {
	return append([]ID(nil), g.out[node]...)
}

// InputEdges returns all argument → node edges, ordered by node insertion
// and then by argument insertion.
func (g *Graph) InputEdges() []Edge {
	return g.edges(g.in)
}

// OutputEdges returns all node → argument edges, in the same order as
// InputEdges.
func (g *Graph) OutputEdges() []Edge {
	return g.edges(g.out)
}

func (g *Graph) edges(m map[ID][]ID) []Edge {
	var edges []Edge
	for _, n := range g.nodes {
		for _, arg := range m[n.ID] {
			edges = append(edges, Edge{Node: n.ID, Arg: arg})
		}
	}
	return edges
}

// Reassignments returns the reassignment map ordered by source id.
func (g *Graph) Reassignments() []Reassignment {
	out := make([]Reassignment, 0, len(g.reassign))
	for src, dst := range g.reassign {
		out = append(out, Reassignment{Src: src, Dst: dst})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Src < out[j].Src })
	return out
}

// Reassigned returns the target src was reassigned to, if any.
func (g *Graph) Reassigned(src ID) (ID, bool) {
	dst, ok := g.reassign[src]
	return dst, ok
}

// Literals returns the literal values in insertion order.
func (g *Graph) Literals() []Literal {
	out := make([]Literal, len(g.literals))
	copy(out, g.literals)
	return out
}

// Arguments returns the argument universe: the sorted union of every id
// used as an input, an output, or a reassignment source.
func (g *Graph) Arguments() []ID {
	seen := make(map[ID]struct{})
	for _, args := range g.in {
		for _, id := range args {
			seen[id] = struct{}{}
		}
	}
	for _, args := range g.out {
		for _, id := range args {
			seen[id] = struct{}{}
		}
	}
	for src := range g.reassign {
		seen[src] = struct{}{}
	}
	return sortedIDs(seen)
}

// Excise removes every input edge that references the first output of
// root. The root node and all other edges, including root's own output
// edges, stay in place.
//
// Returns the excised argument and the number of removed edges. ok is false
// when root is not a node or produces no output; the graph is unchanged.
func (g *Graph) Excise(root ID) (arg ID, removed int, ok bool) {
	if _, isNode := g.nodeIdx[root]; !isNode {
		return NoID, 0, false
	}
	outs := g.out[root]
	if len(outs) == 0 {
		return NoID, 0, false
	}
	arg = outs[0]
	for node, args := range g.in {
		kept := args[:0]
		for _, id := range args {
			if id == arg {
				removed++
				continue
			}
			kept = append(kept, id)
		}
		if len(kept) == 0 {
			delete(g.in, node)
		} else {
			g.in[node] = kept
		}
	}
	return arg, removed, true
}

func appendUnique(ids []ID, id ID) []ID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func sortedIDs(set map[ID]struct{}) []ID {
	ids := make([]ID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
