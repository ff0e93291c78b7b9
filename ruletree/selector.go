package ruletree

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/erraggy/netexval/internal/xmltree"
)

// SelectorError reports an invalid selector.
type SelectorError struct {
	Selector string
	Pos      int
	Msg      string
}

// Error implements error.
func (e *SelectorError) Error() string {
	return fmt.Sprintf("ruletree: selector %q at offset %d: %s", e.Selector, e.Pos, e.Msg)
}

// Selector is a compiled location path expression.
//
// The language is a subset of XPath 1.0 over element names:
//
//	Line                        child elements named Line
//	lines/Line | lines/FlexibleLine
//	.//TimetabledPassingTime    descendants of the context
//	/PublicationDelivery        the document root
//	..                          the parent
//	*                           any child element
//	Line[not(Name)]             Lines without a Name child
//	Line[@version]              Lines carrying a version attribute
//	Line[TransportMode='bus']   comparison against element text
//	StopPoint[ForBoarding!='true' and @order]
//	pointsInSequence/*[1]       the first child element
//
// Comparisons hold when any selected value satisfies them. Positional
// predicates count elements selected by the step for one context node.
type Selector struct {
	src   string
	paths []*locationPath
}

// Compile parses a selector.
func Compile(src string) (*Selector, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks}
	sel := &Selector{src: src}
	for {
		path, _, err := p.parsePath(false)
		if err != nil {
			return nil, err
		}
		sel.paths = append(sel.paths, path)
		if p.peek().kind != tokPipe {
			break
		}
		p.next()
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.errorf("unexpected %s", t)
	}
	return sel, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(src string) *Selector {
	sel, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return sel
}

// String returns the source text of the selector.
func (s *Selector) String() string {
	return s.src
}

// Select evaluates the selector with ctx as context node and returns the
// matched elements in document order without duplicates.
func (s *Selector) Select(ctx *xmltree.Node) []*xmltree.Node {
	if len(s.paths) == 1 {
		return s.paths[0].eval(ctx)
	}
	var out []*xmltree.Node
	for _, p := range s.paths {
		out = append(out, p.eval(ctx)...)
	}
	return documentOrder(out)
}

type axis int

const (
	axisChild axis = iota
	axisDescendant
	axisSelf
	axisParent
)

type step struct {
	axis  axis
	name  string // "*" matches any element
	preds []predicate
}

type predicate struct {
	index int // 1-based, 0 when expr is set
	expr  expr
}

type locationPath struct {
	absolute bool
	steps    []step
}

func (lp *locationPath) eval(ctx *xmltree.Node) []*xmltree.Node {
	current := []*xmltree.Node{ctx}
	if lp.absolute {
		current = []*xmltree.Node{documentNode(ctx)}
	}
	for _, st := range lp.steps {
		var next []*xmltree.Node
		for _, n := range current {
			next = append(next, st.eval(n)...)
		}
		if st.axis == axisDescendant || st.axis == axisParent || len(current) > 1 {
			next = documentOrder(next)
		}
		current = next
		if len(current) == 0 {
			return nil
		}
	}
	return current
}

func (st step) eval(n *xmltree.Node) []*xmltree.Node {
	switch st.axis {
	case axisSelf:
		return st.filter([]*xmltree.Node{n})
	case axisParent:
		if n.Parent == nil {
			return nil
		}
		return st.filter([]*xmltree.Node{n.Parent})
	case axisDescendant:
		var out []*xmltree.Node
		n.Walk(func(d *xmltree.Node) bool {
			out = append(out, st.filter(st.children(d))...)
			return true
		})
		return out
	default:
		return st.filter(st.children(n))
	}
}

func (st step) children(n *xmltree.Node) []*xmltree.Node {
	if st.name == "*" {
		return n.Children
	}
	var out []*xmltree.Node
	for _, c := range n.Children {
		if c.Name == st.name {
			out = append(out, c)
		}
	}
	return out
}

func (st step) filter(nodes []*xmltree.Node) []*xmltree.Node {
	for _, p := range st.preds {
		if len(nodes) == 0 {
			return nil
		}
		if p.index > 0 {
			if p.index > len(nodes) {
				return nil
			}
			nodes = []*xmltree.Node{nodes[p.index-1]}
			continue
		}
		kept := make([]*xmltree.Node, 0, len(nodes))
		for _, n := range nodes {
			if p.expr.eval(n) {
				kept = append(kept, n)
			}
		}
		nodes = kept
	}
	return nodes
}

// documentNode returns a parentless node whose only child is the root of the
// tree containing n.
func documentNode(n *xmltree.Node) *xmltree.Node {
	root := n
	for root.Parent != nil {
		root = root.Parent
	}
	if root.Name == "" {
		return root
	}
	return &xmltree.Node{Children: []*xmltree.Node{root}}
}

// documentOrder removes duplicates and sorts nodes by source position.
func documentOrder(nodes []*xmltree.Node) []*xmltree.Node {
	if len(nodes) < 2 {
		return nodes
	}
	seen := make(map[*xmltree.Node]bool, len(nodes))
	out := nodes[:0:0]
	for _, n := range nodes {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	slices.SortStableFunc(out, func(a, b *xmltree.Node) int {
		if a.Line != b.Line {
			return a.Line - b.Line
		}
		return a.Column - b.Column
	})
	return out
}

type expr interface {
	eval(n *xmltree.Node) bool
}

type orExpr struct{ left, right expr }

func (e orExpr) eval(n *xmltree.Node) bool { return e.left.eval(n) || e.right.eval(n) }

type andExpr struct{ left, right expr }

func (e andExpr) eval(n *xmltree.Node) bool { return e.left.eval(n) && e.right.eval(n) }

type notExpr struct{ inner expr }

func (e notExpr) eval(n *xmltree.Node) bool { return !e.inner.eval(n) }

// operand selects values relative to a node: element text, or attribute values
// when attr is set.
type operand struct {
	path *locationPath // nil selects the node itself
	attr string
}

func (o operand) values(n *xmltree.Node) []string {
	nodes := []*xmltree.Node{n}
	if o.path != nil {
		nodes = o.path.eval(n)
	}
	out := make([]string, 0, len(nodes))
	for _, m := range nodes {
		if o.attr == "" {
			out = append(out, m.Text)
			continue
		}
		if v, ok := m.Attr(o.attr); ok {
			out = append(out, v)
		}
	}
	return out
}

type existsExpr struct{ operand operand }

func (e existsExpr) eval(n *xmltree.Node) bool { return len(e.operand.values(n)) > 0 }

type compareExpr struct {
	operand operand
	negate  bool
	literal string
}

func (e compareExpr) eval(n *xmltree.Node) bool {
	for _, v := range e.operand.values(n) {
		if (v == e.literal) != e.negate {
			return true
		}
	}
	return false
}

type parser struct {
	src  string
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokenKind) (token, error) {
	t := p.next()
	if t.kind != kind {
		return t, &SelectorError{Selector: p.src, Pos: t.pos, Msg: fmt.Sprintf("expected %s, found %s", kind, t)}
	}
	return t, nil
}

func (p *parser) errorf(format string, args ...any) error {
	return &SelectorError{Selector: p.src, Pos: p.peek().pos, Msg: fmt.Sprintf(format, args...)}
}

// parsePath parses a location path. When allowAttr is set the path may end in
// an attribute step, returned separately.
func (p *parser) parsePath(allowAttr bool) (*locationPath, string, error) {
	lp := &locationPath{}
	ax := axisChild
	switch p.peek().kind {
	case tokSlash:
		p.next()
		lp.absolute = true
	case tokDoubleSlash:
		p.next()
		lp.absolute = true
		ax = axisDescendant
	}

	for {
		if p.peek().kind == tokAt {
			if !allowAttr {
				return nil, "", p.errorf("attribute steps are only allowed inside predicates")
			}
			p.next()
			name, err := p.expect(tokName)
			if err != nil {
				return nil, "", err
			}
			if len(lp.steps) == 0 && !lp.absolute {
				return nil, name.text, nil
			}
			return lp, name.text, nil
		}

		st, err := p.parseStep(ax)
		if err != nil {
			return nil, "", err
		}
		lp.steps = append(lp.steps, st)

		switch p.peek().kind {
		case tokSlash:
			p.next()
			ax = axisChild
		case tokDoubleSlash:
			p.next()
			ax = axisDescendant
		default:
			return lp, "", nil
		}
	}
}

func (p *parser) parseStep(ax axis) (step, error) {
	t := p.next()
	var st step
	switch t.kind {
	case tokDot:
		if ax == axisDescendant {
			return st, &SelectorError{Selector: p.src, Pos: t.pos, Msg: "'.' cannot follow '//'"}
		}
		st = step{axis: axisSelf, name: "*"}
	case tokDotDot:
		if ax == axisDescendant {
			return st, &SelectorError{Selector: p.src, Pos: t.pos, Msg: "'..' cannot follow '//'"}
		}
		st = step{axis: axisParent, name: "*"}
	case tokStar:
		st = step{axis: ax, name: "*"}
	case tokName:
		st = step{axis: ax, name: t.text}
	default:
		return st, &SelectorError{Selector: p.src, Pos: t.pos, Msg: fmt.Sprintf("expected element name, found %s", t)}
	}

	for p.peek().kind == tokLBracket {
		p.next()
		pred, err := p.parsePredicate()
		if err != nil {
			return st, err
		}
		if _, err := p.expect(tokRBracket); err != nil {
			return st, err
		}
		st.preds = append(st.preds, pred)
	}
	return st, nil
}

func (p *parser) parsePredicate() (predicate, error) {
	if t := p.peek(); t.kind == tokNumber {
		p.next()
		n, err := strconv.Atoi(t.text)
		if err != nil || n < 1 {
			return predicate{}, &SelectorError{Selector: p.src, Pos: t.pos, Msg: "position must be a positive integer"}
		}
		return predicate{index: n}, nil
	}
	e, err := p.parseOr()
	if err != nil {
		return predicate{}, err
	}
	return predicate{expr: e}, nil
}

func (p *parser) parseOr() (expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("or") {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = orExpr{left, right}
	}
	return left, nil
}

func (p *parser) parseAnd() (expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("and") {
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = andExpr{left, right}
	}
	return left, nil
}

func (p *parser) parseUnary() (expr, error) {
	if p.isKeyword("not") && p.toks[p.pos+1].kind == tokLParen {
		p.next()
		p.next()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return notExpr{inner}, nil
	}
	if p.peek().kind == tokLParen {
		p.next()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return inner, nil
	}

	path, attr, err := p.parsePath(true)
	if err != nil {
		return nil, err
	}
	op := operand{path: path, attr: attr}
	if path != nil && !path.absolute && len(path.steps) == 1 && path.steps[0].axis == axisSelf && len(path.steps[0].preds) == 0 {
		op.path = nil
	}

	switch p.peek().kind {
	case tokEq, tokNeq:
		negate := p.next().kind == tokNeq
		lit, err := p.expect(tokString)
		if err != nil {
			return nil, err
		}
		return compareExpr{operand: op, negate: negate, literal: lit.text}, nil
	}
	return existsExpr{operand: op}, nil
}

func (p *parser) isKeyword(word string) bool {
	t := p.peek()
	return t.kind == tokName && t.text == word
}
