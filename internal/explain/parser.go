package explain

import (
	"io"
	"log/slog"
	"strings"

	"github.com/brics-db/explained2dot/internal/ir"
)

// Options configures a parse.
type Options struct {
	// Rules selects ignorable lines and operands and the special markers.
	Rules Rules
	// ExcludeRoot runs the excision pass on the distinguished root node.
	ExcludeRoot bool
	// Logger receives debug and warning output. Nil discards it.
	Logger *slog.Logger
}

// Result is a fully parsed trace.
type Result struct {
	Function   string
	Registry   *ir.Registry
	Graph      *ir.Graph
	Statements int
	// Excised is the root output whose input edges were removed, or NoID.
	Excised  ir.ID
	Warnings []*FormatError
}

// Parser turns normalized statements into a graph. It owns the identifier
// registry and graph of one parse session; a Parser parses one trace.
//
// Statements are processed strictly in order because identifiers are
// assigned in discovery order.
type Parser struct {
	rules    Rules
	exclude  bool
	logger   *slog.Logger
	registry *ir.Registry
	graph    *ir.Graph
	warnings []*FormatError
}

// NewParser creates a parser with an empty registry and graph.
func NewParser(opts Options) *Parser {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Parser{
		rules:    opts.Rules,
		exclude:  opts.ExcludeRoot,
		logger:   logger,
		registry: ir.NewRegistry(),
		graph:    ir.NewGraph(),
	}
}

// Parse splits, normalizes and parses a whole trace.
func Parse(content string, opts Options) (*Result, error) {
	stmts := Normalize(SplitLines(content), opts.Rules)
	return NewParser(opts).Parse(stmts)
}

// Parse parses the header and then every remaining statement. The first
// fatal error aborts the parse; no partial result is returned.
func (p *Parser) Parse(stmts []Statement) (*Result, error) {
	first := 0
	if len(stmts) > 0 && p.rules.AutoCommitMarker != "" && strings.Contains(stmts[0].Text, p.rules.AutoCommitMarker) {
		first = 1
	}
	if first >= len(stmts) {
		return nil, &FormatError{
			Code:    ErrCodeMissingHeaderMarker,
			Message: "trace contains no header statement",
		}
	}

	hdr, err := parseHeader(stmts[first])
	if err != nil {
		return nil, err
	}
	for _, v := range hdr.Vars {
		p.registry.Declare(v.Name, v.Type)
	}
	p.logger.Debug("header parsed",
		"function", hdr.Name,
		"variables", len(hdr.Vars),
		"line", stmts[first].Line)

	for _, stmt := range stmts[first+1:] {
		if err := p.apply(stmt); err != nil {
			return nil, err
		}
	}

	result := &Result{
		Function:   hdr.Name,
		Registry:   p.registry,
		Graph:      p.graph,
		Statements: len(stmts),
	}
	if p.exclude {
		result.Excised = p.exciseRoot()
	}
	result.Warnings = p.warnings

	p.logger.Debug("trace parsed",
		"function", hdr.Name,
		"statements", len(stmts),
		"nodes", len(p.graph.Nodes()),
		"warnings", len(p.warnings))
	return result, nil
}

// apply dispatches one statement to its shape-specific handler.
func (p *Parser) apply(stmt Statement) error {
	c := Classify(stmt.Text, p.rules)
	p.logger.Debug("statement classified",
		"line", stmt.Line,
		"kind", c.Kind.String(),
		"label", c.Label)

	switch c.Kind {
	case KindReassign:
		return p.applyReassign(c, stmt)
	case KindLiteral:
		return p.applyLiteral(c, stmt)
	case KindCall, KindResultSet:
		return p.applyCall(c, stmt)
	default:
		return nil
	}
}

func (p *Parser) applyReassign(c Classification, stmt Statement) error {
	source := c.Label
	if op, ok := parseOperand(source); ok {
		source = op.Name
	}
	src, err := p.registry.Resolve(source)
	if err != nil {
		return &FormatError{
			Code:    ErrCodeUnknownOperand,
			Message: "no id for argument " + quoteName(source),
			Line:    stmt.Line,
			Text:    stmt.Text,
			Err:     err,
		}
	}
	dst, err := p.declareLeft(c.Left, stmt)
	if err != nil {
		return err
	}
	p.graph.AddReassign(src, dst)
	return nil
}

func (p *Parser) applyLiteral(c Classification, stmt Statement) error {
	dst, err := p.declareLeft(c.Left, stmt)
	if err != nil {
		return err
	}
	p.graph.AddLiteral(p.registry.Allocate(), c.Label, dst)
	return nil
}

func (p *Parser) applyCall(c Classification, stmt Statement) error {
	node := p.registry.Allocate()
	p.graph.AddNode(node, c.Label, c.Args)

	if p.rules.RootMarker != "" && c.Label == p.rules.RootMarker && !p.graph.MarkRoot(node) {
		p.warn(newFormatError(ErrCodeDuplicateRootNode, stmt,
			"another %s node found, keeping node %s", p.rules.RootMarker, p.graph.Root()))
	}

	// Arguments (in) first, then return values (out).
	if err := p.parseOperands(node, c.Operands, true, stmt); err != nil {
		return err
	}
	if c.Kind == KindResultSet {
		return nil
	}
	return p.parseOperands(node, c.Left, false, stmt)
}

// declareLeft declares the single "name[:type]" target of a reassignment or
// literal binding.
func (p *Parser) declareLeft(left string, stmt Statement) (ir.ID, error) {
	ops, err := scanOperands(left)
	if err != nil {
		fe := newFormatError(ErrCodeMalformedType, stmt, "did not find finalizing ']' in %s", left)
		fe.Err = err
		return ir.NoID, fe
	}
	if len(ops) == 0 {
		return p.registry.Declare(trim(left), ""), nil
	}
	return p.registry.Declare(ops[0].Name, ops[0].Type), nil
}

// exciseRoot removes the input edges referencing the root node's output.
// A missing root is a warning, never an error.
func (p *Parser) exciseRoot() ir.ID {
	root := p.graph.Root()
	if !root.IsValid() {
		p.warn(&FormatError{
			Code:    ErrCodeMissingRootNode,
			Message: "root node shall be excluded, but no " + p.rules.RootMarker + " node found",
		})
		return ir.NoID
	}
	arg, removed, ok := p.graph.Excise(root)
	if !ok {
		p.warn(&FormatError{
			Code:    ErrCodeMissingRootNode,
			Message: "root node " + root.String() + " produces no output to exclude",
		})
		return ir.NoID
	}
	p.logger.Debug("root excised", "node", root, "arg", arg, "edges", removed)
	return arg
}

func (p *Parser) warn(fe *FormatError) {
	p.warnings = append(p.warnings, fe)
	p.logger.Warn(fe.Message, "code", string(fe.Code), "line", fe.Line)
}
