package dot

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/brics-db/explained2dot/internal/ir"
)

// Options controls what the renderer emits.
type Options struct {
	// Style colors call nodes by module prefix. A zero Style colors nothing.
	Style Style

	// Compact tightens rank and node spacing and drops argument text from
	// node labels and types from argument labels.
	Compact bool

	// ExcludeRoot hides the root node, its output edges and any output
	// argument left without a visible reference.
	ExcludeRoot bool

	// ExcludeResult hides result-set nodes and the descriptor chains that
	// only feed them.
	ExcludeResult bool

	// ResultSetLabel is the operator of result-set nodes.
	ResultSetLabel string

	// DescriptorLabels are the operators that build result-set descriptors.
	DescriptorLabels []string
}

// DefaultOptions returns options with the stock style and MonetDB result
// set operators.
func DefaultOptions() Options {
	return Options{
		Style:            DefaultStyle(),
		ResultSetLabel:   "sql.resultSet",
		DescriptorLabels: []string{"bat.new", "bat.append"},
	}
}

// Write renders g as a Graphviz digraph named name.
//
// Output order is fixed: call nodes in discovery order, literal values,
// argument vertices by ascending id, then input, output, reassignment and
// literal edges. The graph is rendered into memory and written to w in
// one call.
func Write(w io.Writer, name string, g *ir.Graph, syms ir.Symbols, opts Options) error {
	var buf bytes.Buffer
	r := &renderer{buf: &buf, g: g, syms: syms, opts: opts}
	r.hidden = r.hiddenNodes()
	r.render(name)
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write dot output: %w", err)
	}
	return nil
}

type renderer struct {
	buf    *bytes.Buffer
	g      *ir.Graph
	syms   ir.Symbols
	opts   Options
	hidden map[ir.ID]bool
}

func (r *renderer) render(name string) {
	fmt.Fprintf(r.buf, "digraph \"%s\" {\n", escape(name))
	if r.opts.Compact {
		r.buf.WriteString("\tgraph [ranksep=0.25, nodesep=0.15];\n")
		r.buf.WriteString("\tnode [fontsize=10];\n")
	}
	r.buf.WriteString("\tnode [shape=box];\n")

	for _, n := range r.g.Nodes() {
		if r.hidden[n.ID] {
			continue
		}
		label := escape(n.Label)
		if !r.opts.Compact {
			label += `\n` + escape(n.Args)
		}
		fmt.Fprintf(r.buf, "\tN%d [label=\"%s\"%s];\n", n.ID, label, r.opts.Style.attrs(n.Module()))
	}

	literals := r.g.Literals()
	if len(literals) > 0 {
		r.buf.WriteString("\n\tnode [shape=star];\n")
		for _, lit := range literals {
			fmt.Fprintf(r.buf, "\tV%d [label=\"%s\"];\n", lit.ID, escape(lit.Text))
		}
	}

	inputs := r.visible(r.g.InputEdges())
	outputs := r.visible(r.g.OutputEdges())
	reassigns := r.g.Reassignments()

	r.buf.WriteString("\n\tnode [shape=ellipse]\n")
	for _, id := range r.arguments(inputs, outputs, reassigns, literals) {
		label := escape(r.syms.Name(id))
		if !r.opts.Compact {
			label += `\n` + escape(r.syms.Type(id))
		}
		fmt.Fprintf(r.buf, "\tA%d [label=\"%s\"];\n", id, label)
	}

	r.buf.WriteString("\n")
	for _, e := range inputs {
		fmt.Fprintf(r.buf, "\tA%d -> N%d;\n", e.Arg, e.Node)
	}
	r.buf.WriteString("\n")
	for _, e := range outputs {
		fmt.Fprintf(r.buf, "\tN%d -> A%d;\n", e.Node, e.Arg)
	}
	if len(reassigns) > 0 {
		r.buf.WriteString("\n")
		for _, ra := range reassigns {
			fmt.Fprintf(r.buf, "\tA%d -> A%d;\n", ra.Src, ra.Dst)
		}
	}
	if len(literals) > 0 {
		r.buf.WriteString("\n")
		for _, lit := range literals {
			fmt.Fprintf(r.buf, "\tV%d -> A%d;\n", lit.ID, lit.Target)
		}
	}
	r.buf.WriteString("}\n")
}

func (r *renderer) visible(edges []ir.Edge) []ir.Edge {
	if len(r.hidden) == 0 {
		return edges
	}
	kept := edges[:0:0]
	for _, e := range edges {
		if !r.hidden[e.Node] {
			kept = append(kept, e)
		}
	}
	return kept
}

// arguments returns every argument referenced by a visible edge, a
// reassignment or a literal binding, by ascending id.
func (r *renderer) arguments(inputs, outputs []ir.Edge, reassigns []ir.Reassignment, literals []ir.Literal) []ir.ID {
	set := make(map[ir.ID]struct{})
	for _, e := range inputs {
		set[e.Arg] = struct{}{}
	}
	for _, e := range outputs {
		set[e.Arg] = struct{}{}
	}
	for _, ra := range reassigns {
		set[ra.Src] = struct{}{}
		set[ra.Dst] = struct{}{}
	}
	for _, lit := range literals {
		set[lit.Target] = struct{}{}
	}
	ids := make([]ir.ID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// hiddenNodes resolves ExcludeRoot and ExcludeResult to a node set.
func (r *renderer) hiddenNodes() map[ir.ID]bool {
	hidden := make(map[ir.ID]bool)
	if r.opts.ExcludeRoot && r.g.Root().IsValid() {
		hidden[r.g.Root()] = true
	}
	if !r.opts.ExcludeResult || r.opts.ResultSetLabel == "" {
		return hidden
	}

	descriptor := make(map[string]bool, len(r.opts.DescriptorLabels))
	for _, l := range r.opts.DescriptorLabels {
		descriptor[l] = true
	}
	consumers := make(map[ir.ID][]ir.ID)
	for _, e := range r.g.InputEdges() {
		consumers[e.Arg] = append(consumers[e.Arg], e.Node)
	}

	nodes := r.g.Nodes()
	for _, n := range nodes {
		if n.Label == r.opts.ResultSetLabel {
			hidden[n.ID] = true
		}
	}
	// Walk backwards until no further descriptor node feeds only hidden ones.
	for changed := true; changed; {
		changed = false
		for i := len(nodes) - 1; i >= 0; i-- {
			n := nodes[i]
			if hidden[n.ID] || !descriptor[n.Label] {
				continue
			}
			if r.feedsOnlyHidden(n.ID, consumers, hidden) {
				hidden[n.ID] = true
				changed = true
			}
		}
	}
	return hidden
}

// feedsOnlyHidden reports whether every output of node is consumed, and only
// by hidden nodes. A reassigned output counts as a visible use.
func (r *renderer) feedsOnlyHidden(node ir.ID, consumers map[ir.ID][]ir.ID, hidden map[ir.ID]bool) bool {
	outs := r.g.Outputs(node)
	if len(outs) == 0 {
		return false
	}
	for _, arg := range outs {
		if _, reassigned := r.g.Reassigned(arg); reassigned {
			return false
		}
		users := consumers[arg]
		if len(users) == 0 {
			return false
		}
		for _, u := range users {
			if !hidden[u] {
				return false
			}
		}
	}
	return true
}

var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// escape quotes text for a DOT double-quoted string.
func escape(s string) string {
	return labelEscaper.Replace(s)
}
