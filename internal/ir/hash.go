package ir

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
)

// DomainGraph prefixes graph fingerprints.
// Version suffix enables future algorithm migration.
const DomainGraph = "explained2dot/graph/v1"

// Symbols resolves identifiers to display names and types.
// *Registry implements it.
type Symbols interface {
	Name(id ID) string
	Type(id ID) string
}

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Canonical renders the graph as a line-oriented text dump in a fixed order:
// nodes, input edges, output edges, reassignments, literals, then every
// argument with its name and type. Strings are quoted with strconv.Quote so
// embedded separators cannot collide.
func (g *Graph) Canonical(syms Symbols) []byte {
	var buf bytes.Buffer
	for _, n := range g.nodes {
		fmt.Fprintf(&buf, "node %d %s %s\n", n.ID, strconv.Quote(n.Label), strconv.Quote(n.Args))
	}
	for _, e := range g.InputEdges() {
		fmt.Fprintf(&buf, "in %d %d\n", e.Arg, e.Node)
	}
	for _, e := range g.OutputEdges() {
		fmt.Fprintf(&buf, "out %d %d\n", e.Node, e.Arg)
	}
	for _, r := range g.Reassignments() {
		fmt.Fprintf(&buf, "reassign %d %d\n", r.Src, r.Dst)
	}
	for _, l := range g.literals {
		fmt.Fprintf(&buf, "literal %d %s %d\n", l.ID, strconv.Quote(l.Text), l.Target)
	}
	for _, id := range g.Arguments() {
		fmt.Fprintf(&buf, "arg %d %s %s\n", id, strconv.Quote(syms.Name(id)), strconv.Quote(syms.Type(id)))
	}
	if g.root.IsValid() {
		fmt.Fprintf(&buf, "root %d\n", g.root)
	}
	return buf.Bytes()
}

// Fingerprint returns a stable content hash of the graph. Two parses of the
// same trace produce the same fingerprint; any change in identifier
// assignment, edges, names or types changes it.
func (g *Graph) Fingerprint(syms Symbols) string {
	return hashWithDomain(DomainGraph, g.Canonical(syms))
}
