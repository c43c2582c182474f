package jsx

import "github.com/leapstack-labs/jsxlint/pkg/token"

// Node is implemented by every top-level node a traversal can visit.
type Node interface {
	Pos() token.Position
	End() token.Position
	node()
}

// File is one parsed source file. Nodes holds import declarations and opening
// elements in document order.
type File struct {
	Path     string
	Language Language
	Nodes    []Node
}

// SpecifierKind tells the binding forms of an import apart.
type SpecifierKind int

// Import specifier kinds.
const (
	// SpecifierDefault is `import hero from "./hero.png"`.
	SpecifierDefault SpecifierKind = iota
	// SpecifierNamed is `import { hero } from "./images"`.
	SpecifierNamed
	// SpecifierNamespace is `import * as images from "./images"`.
	SpecifierNamespace
)

// String returns the string representation of the specifier kind.
func (k SpecifierKind) String() string {
	switch k {
	case SpecifierDefault:
		return "default"
	case SpecifierNamed:
		return "named"
	case SpecifierNamespace:
		return "namespace"
	default:
		return "unknown"
	}
}

// ImportSpecifier is one binding introduced by an import declaration.
type ImportSpecifier struct {
	Kind     SpecifierKind
	Local    string // local binding name
	Imported string // exported name for named specifiers; empty otherwise
}

// ImportDeclaration is `import ... from "source"`.
type ImportDeclaration struct {
	Source     string // module specifier without quotes
	Specifiers []ImportSpecifier
	Span       token.Span
}

// Pos returns the start of the declaration.
func (d *ImportDeclaration) Pos() token.Position { return d.Span.Start }

// End returns the position just past the declaration.
func (d *ImportDeclaration) End() token.Position { return d.Span.End }
func (*ImportDeclaration) node()                 {}

// OpeningElement is the start tag of a JSX element, or a self-closing tag.
type OpeningElement struct {
	// Name is the tag name when it is a plain identifier (`<Image>`).
	// Member (`<ui.Image>`) and namespaced (`<svg:image>`) tags leave it empty.
	Name string
	// RawName is the tag name exactly as written. Empty for fragments.
	RawName     string
	Attributes  []*Attribute
	SelfClosing bool
	Span        token.Span
}

// Pos returns the position of the opening `<`.
func (e *OpeningElement) Pos() token.Position { return e.Span.Start }

// End returns the position just past the closing `>` of the tag.
func (e *OpeningElement) End() token.Position { return e.Span.End }
func (*OpeningElement) node()                 {}

// Attribute returns the first attribute with the given simple name, or nil.
func (e *OpeningElement) Attribute(name string) *Attribute {
	for _, attr := range e.Attributes {
		if attr != nil && attr.Name != "" && attr.Name == name {
			return attr
		}
	}
	return nil
}

// Attribute is one JSX attribute.
type Attribute struct {
	// Name is the attribute name; empty for spread and namespaced attributes.
	Name string
	// Value is nil for valueless attributes (`<input disabled />`) and spreads.
	Value  Expr
	Spread bool
	Span   token.Span
}

// =============================================================================
// Expressions
// =============================================================================

// Expr is the closed set of expression variants: *Literal, *Identifier,
// *MemberAccess, *Container and *Other.
type Expr interface {
	Pos() token.Position
	End() token.Position
	expr()
}

// Literal is a string literal, either a bare attribute value or inside a container.
type Literal struct {
	Value string
	Span  token.Span
}

// Identifier is a plain reference to a binding.
type Identifier struct {
	Name string
	Span token.Span
}

// MemberAccess is `object.property`, or `object[property]` when Computed is set.
type MemberAccess struct {
	Object   Expr
	Property string // property name; for computed access, the source text of the key
	Computed bool
	Optional bool // accessed with `?.`
	Span     token.Span
}

// Container is a JSX expression container, `{expression}`. Expression is nil for `{}`.
type Container struct {
	Expression Expr
	Span       token.Span
}

// Other is any expression the model does not describe. Kind is the syntax kind it
// was parsed from, e.g. "call_expression" or "template_string".
type Other struct {
	Kind string
	Span token.Span
}

func (l *Literal) Pos() token.Position      { return l.Span.Start }
func (i *Identifier) Pos() token.Position   { return i.Span.Start }
func (m *MemberAccess) Pos() token.Position { return m.Span.Start }
func (c *Container) Pos() token.Position    { return c.Span.Start }
func (o *Other) Pos() token.Position        { return o.Span.Start }

func (l *Literal) End() token.Position      { return l.Span.End }
func (i *Identifier) End() token.Position   { return i.Span.End }
func (m *MemberAccess) End() token.Position { return m.Span.End }
func (c *Container) End() token.Position    { return c.Span.End }
func (o *Other) End() token.Position        { return o.Span.End }

func (*Literal) expr()      {}
func (*Identifier) expr()   {}
func (*MemberAccess) expr() {}
func (*Container) expr()    {}
func (*Other) expr()        {}
