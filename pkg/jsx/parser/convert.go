package parser

import (
	"html"
	"strings"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/leapstack-labs/jsxlint/pkg/jsx"
	"github.com/leapstack-labs/jsxlint/pkg/token"
)

// Tree-sitter node kinds shared by the javascript, typescript and tsx grammars.
const (
	kindImportStatement   = "import_statement"
	kindImportClause      = "import_clause"
	kindNamedImports      = "named_imports"
	kindImportSpecifier   = "import_specifier"
	kindNamespaceImport   = "namespace_import"
	kindOpeningElement    = "jsx_opening_element"
	kindSelfClosing       = "jsx_self_closing_element"
	kindAttribute         = "jsx_attribute"
	kindExpression        = "jsx_expression"
	kindNamespaceName     = "jsx_namespace_name"
	kindIdentifier        = "identifier"
	kindPropertyID        = "property_identifier"
	kindPrivatePropertyID = "private_property_identifier"
	kindMemberExpression  = "member_expression"
	kindSubscript         = "subscript_expression"
	kindParenthesized     = "parenthesized_expression"
	kindString            = "string"
	kindSpread            = "spread_element"
	kindComment           = "comment"
)

// converter walks a tree-sitter CST in document order and collects the nodes the
// jsx model describes.
type converter struct {
	src      []byte
	nodes    []jsx.Node
	imports  int
	elements int
}

func (c *converter) visit(n sitter.Node) {
	if n.IsNull() {
		return
	}

	switch n.Type() {
	case kindImportStatement:
		if decl := c.importDeclaration(n); decl != nil {
			c.nodes = append(c.nodes, decl)
			c.imports++
		}
		return
	case kindOpeningElement, kindSelfClosing:
		c.nodes = append(c.nodes, c.openingElement(n))
		c.elements++
		// Attribute values may hold nested elements; keep descending.
	}

	for idx := range n.NamedChildCount() {
		c.visit(n.NamedChild(idx))
	}
}

// =============================================================================
// Imports
// =============================================================================

func (c *converter) importDeclaration(n sitter.Node) *jsx.ImportDeclaration {
	source := n.ChildByFieldName("source")
	if source.IsNull() || source.Type() != kindString {
		// `import x = require("...")` and other forms without a module string.
		return nil
	}

	decl := &jsx.ImportDeclaration{
		Source: unquote(c.text(source)),
		Span:   span(n),
	}

	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)
		if child.Type() == kindImportClause {
			decl.Specifiers = c.importClause(child)
		}
	}

	return decl
}

func (c *converter) importClause(n sitter.Node) []jsx.ImportSpecifier {
	var specs []jsx.ImportSpecifier

	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)
		switch child.Type() {
		case kindIdentifier:
			specs = append(specs, jsx.ImportSpecifier{
				Kind:  jsx.SpecifierDefault,
				Local: c.text(child),
			})
		case kindNamespaceImport:
			if id := firstNamedOfType(child, kindIdentifier); !id.IsNull() {
				specs = append(specs, jsx.ImportSpecifier{
					Kind:  jsx.SpecifierNamespace,
					Local: c.text(id),
				})
			}
		case kindNamedImports:
			specs = append(specs, c.namedImports(child)...)
		}
	}

	return specs
}

func (c *converter) namedImports(n sitter.Node) []jsx.ImportSpecifier {
	var specs []jsx.ImportSpecifier

	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)
		if child.Type() != kindImportSpecifier {
			continue
		}

		name := child.ChildByFieldName("name")
		if name.IsNull() {
			continue
		}
		imported := c.text(name)
		if name.Type() == kindString {
			imported = unquote(imported)
		}

		local := imported
		if alias := child.ChildByFieldName("alias"); !alias.IsNull() {
			local = c.text(alias)
		}

		specs = append(specs, jsx.ImportSpecifier{
			Kind:     jsx.SpecifierNamed,
			Local:    local,
			Imported: imported,
		})
	}

	return specs
}

// =============================================================================
// Elements
// =============================================================================

func (c *converter) openingElement(n sitter.Node) *jsx.OpeningElement {
	el := &jsx.OpeningElement{
		SelfClosing: n.Type() == kindSelfClosing,
		Span:        span(n),
	}

	if name := n.ChildByFieldName("name"); !name.IsNull() {
		el.RawName = c.text(name)
		if name.Type() == kindIdentifier {
			el.Name = el.RawName
		}
	}

	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)
		switch child.Type() {
		case kindAttribute:
			el.Attributes = append(el.Attributes, c.attribute(child))
		case kindExpression:
			// Only `{...props}` appears as a bare expression in attribute position.
			el.Attributes = append(el.Attributes, &jsx.Attribute{
				Spread: true,
				Value:  c.container(child),
				Span:   span(child),
			})
		}
	}

	return el
}

func (c *converter) attribute(n sitter.Node) *jsx.Attribute {
	attr := &jsx.Attribute{Span: span(n)}

	var parts []sitter.Node
	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)
		if child.Type() == kindComment {
			continue
		}
		parts = append(parts, child)
	}
	if len(parts) == 0 {
		return attr
	}

	switch parts[0].Type() {
	case kindPropertyID, kindIdentifier:
		attr.Name = c.text(parts[0])
	case kindNamespaceName:
		// `xlink:href` never matches a simple attribute name.
	}

	if len(parts) < 2 {
		return attr
	}

	value := parts[1]
	switch value.Type() {
	case kindString:
		attr.Value = &jsx.Literal{Value: attributeString(c.text(value)), Span: span(value)}
	case kindExpression:
		attr.Value = c.container(value)
	default:
		attr.Value = &jsx.Other{Kind: value.Type(), Span: span(value)}
	}

	return attr
}

func (c *converter) container(n sitter.Node) *jsx.Container {
	cont := &jsx.Container{Span: span(n)}

	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)
		if child.Type() == kindComment {
			continue
		}
		cont.Expression = c.expression(child)
		break
	}

	return cont
}

// =============================================================================
// Expressions
// =============================================================================

func (c *converter) expression(n sitter.Node) jsx.Expr {
	switch n.Type() {
	case kindIdentifier:
		return &jsx.Identifier{Name: c.text(n), Span: span(n)}

	case kindString:
		return &jsx.Literal{Value: unquote(c.text(n)), Span: span(n)}

	case kindParenthesized:
		// Parentheses are not part of the expression's shape.
		for idx := range n.NamedChildCount() {
			child := n.NamedChild(idx)
			if child.Type() != kindComment {
				return c.expression(child)
			}
		}

	case kindMemberExpression:
		object := n.ChildByFieldName("object")
		property := n.ChildByFieldName("property")
		if object.IsNull() || property.IsNull() {
			break
		}
		if !isPropertyName(property.Type()) {
			break
		}
		return &jsx.MemberAccess{
			Object:   c.expression(object),
			Property: c.text(property),
			Optional: !n.ChildByFieldName("optional_chain").IsNull(),
			Span:     span(n),
		}

	case kindSubscript:
		object := n.ChildByFieldName("object")
		index := n.ChildByFieldName("index")
		if object.IsNull() {
			break
		}
		return &jsx.MemberAccess{
			Object:   c.expression(object),
			Property: c.text(index),
			Computed: true,
			Optional: !n.ChildByFieldName("optional_chain").IsNull(),
			Span:     span(n),
		}

	case kindSpread:
		return &jsx.Other{Kind: kindSpread, Span: span(n)}
	}

	return &jsx.Other{Kind: n.Type(), Span: span(n)}
}

// =============================================================================
// Helpers
// =============================================================================

func (c *converter) text(n sitter.Node) string {
	if n.IsNull() {
		return ""
	}
	start, end := int(n.StartByte()), int(n.EndByte())
	if start < 0 || end > len(c.src) || start > end {
		return ""
	}
	return string(c.src[start:end])
}

func isPropertyName(kind string) bool {
	switch kind {
	case kindPropertyID, kindPrivatePropertyID, kindIdentifier:
		return true
	}
	return false
}

func firstNamedOfType(n sitter.Node, typ string) sitter.Node {
	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)
		if child.Type() == typ {
			return child
		}
	}
	return sitter.Node{}
}

func span(n sitter.Node) token.Span {
	start := n.StartPoint()
	end := n.EndPoint()

	return token.Span{
		Start: token.Position{
			Line:   int(start.Row) + 1,
			Column: int(start.Column) + 1,
			Offset: int(n.StartByte()),
		},
		End: token.Position{
			Line:   int(end.Row) + 1,
			Column: int(end.Column) + 1,
			Offset: int(n.EndByte()),
		},
	}
}

// attributeString is the value of a JSX attribute string. JSX has no backslash
// escapes there, only HTML character references such as &amp; or &#46;.
func attributeString(s string) string {
	return html.UnescapeString(unquote(s))
}

// unquote strips the delimiters of a string literal. Escape sequences are kept as written.
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'' || first == '`') && first == last {
			return s[1 : len(s)-1]
		}
	}
	return strings.TrimSpace(s)
}
