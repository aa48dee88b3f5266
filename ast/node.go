// Package ast defines the minimal parse-tree contract spec.md §6 assumes an
// external collaborator provides (child list, kind, whole-span text), plus
// a small hand-written parser that produces such trees for the closed
// grammar this translator accepts: object/array literals, primitive
// literals, new-expressions, member access, and calls.
//
// The real ECMAScript lexer/parser is explicitly out of scope (spec.md §1);
// this package exists so the walker has a concrete tree to walk and the
// test suite has fixtures to drive it with.
package ast

// Kind is a parse-tree node's syntactic category.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindDecimal
	KindHex
	KindOctal
	KindBoolean
	KindNull
	KindUndefined
	KindRegex
	KindObjectLiteral
	KindArrayLiteral
	KindElision
	KindIdentifier
	KindMember
	KindNew
	KindCall
)

// Node is the contract every parse-tree node exposes to the walker.
type Node interface {
	Kind() Kind
	Children() []Node
	GetText() string
}

// Literal is a leaf node for every primitive form spec.md §4.2 lists.
type Literal struct {
	kindValue Kind
	Text      string // whole-span source text, as written
	Value     string // decoded payload: unescaped string content, the
	// numeric digits (sign and prefix included), or the regex pattern
	Flags string // regex flags only; empty for every other literal kind
}

func NewLiteral(kind Kind, text, value, flags string) *Literal {
	return &Literal{kindValue: kind, Text: text, Value: value, Flags: flags}
}

func (l *Literal) Kind() Kind       { return l.kindValue }
func (l *Literal) Children() []Node { return nil }
func (l *Literal) GetText() string  { return l.Text }

// Identifier is a bare name reference, resolved against the symbol table.
type Identifier struct {
	Name string
}

func (i *Identifier) Kind() Kind       { return KindIdentifier }
func (i *Identifier) Children() []Node { return nil }
func (i *Identifier) GetText() string  { return i.Name }

// Property is one (key, value) pair of an object literal. It is not itself
// a walkable expression kind; it appears only as a Children() entry of
// ObjectLiteral.
type Property struct {
	Key   string
	Value Node
}

func (p *Property) Kind() Kind       { return -1 }
func (p *Property) Children() []Node { return []Node{p.Value} }
func (p *Property) GetText() string  { return p.Key }

// ObjectLiteral is `{ key: value, ... }`.
type ObjectLiteral struct {
	Props []*Property
	Text  string
}

func (o *ObjectLiteral) Kind() Kind { return KindObjectLiteral }
func (o *ObjectLiteral) Children() []Node {
	out := make([]Node, len(o.Props))
	for i, p := range o.Props {
		out[i] = p
	}
	return out
}
func (o *ObjectLiteral) GetText() string { return o.Text }

// ArrayLiteral is `[ elem, , elem ]`; elided slots appear as *Elision.
type ArrayLiteral struct {
	Elements []Node
	Text     string
}

func (a *ArrayLiteral) Kind() Kind       { return KindArrayLiteral }
func (a *ArrayLiteral) Children() []Node { return a.Elements }
func (a *ArrayLiteral) GetText() string  { return a.Text }

// Elision is an empty array slot, e.g. the gap in `[1, , 3]`.
type Elision struct{}

func (e *Elision) Kind() Kind       { return KindElision }
func (e *Elision) Children() []Node { return nil }
func (e *Elision) GetText() string  { return "" }

// MemberExpr is dotted attribute access, `left.Property`.
type MemberExpr struct {
	Object   Node
	Property string
	Text     string
}

func (m *MemberExpr) Kind() Kind       { return KindMember }
func (m *MemberExpr) Children() []Node { return []Node{m.Object} }
func (m *MemberExpr) GetText() string  { return m.Text }

// NewExpr is `new Callee(Args...)`.
type NewExpr struct {
	Callee Node
	Args   []Node
	Text   string
}

func (n *NewExpr) Kind() Kind { return KindNew }
func (n *NewExpr) Children() []Node {
	return append([]Node{n.Callee}, n.Args...)
}
func (n *NewExpr) GetText() string { return n.Text }

// CallExpr is `Callee(Args...)`.
type CallExpr struct {
	Callee Node
	Args   []Node
	Text   string
}

func (c *CallExpr) Kind() Kind { return KindCall }
func (c *CallExpr) Children() []Node {
	return append([]Node{c.Callee}, c.Args...)
}
func (c *CallExpr) GetText() string { return c.Text }
