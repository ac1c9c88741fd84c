// Package dot renders a parsed explain graph as a Graphviz digraph.
//
// Call nodes are boxes colored by operator module, literal values are
// stars, and arguments are ellipses labeled with their name and type.
package dot
