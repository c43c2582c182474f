package jsx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/jsxlint/pkg/token"
)

func at(line, col int) token.Span {
	return token.Span{
		Start: token.Position{Line: line, Column: col},
		End:   token.Position{Line: line, Column: col + 1},
	}
}

func sampleFile() *File {
	return &File{
		Path:     "page.tsx",
		Language: LanguageTSX,
		Nodes: []Node{
			&ImportDeclaration{Source: "./a.png", Span: at(1, 1)},
			&OpeningElement{Name: "Image", Span: at(2, 1)},
			&ImportDeclaration{Source: "./b.png", Span: at(3, 1)},
			&OpeningElement{Name: "div", Span: at(4, 1)},
		},
	}
}

func TestWalk_DocumentOrder(t *testing.T) {
	var seen []string
	Walk(sampleFile(), Visitor{
		ImportDeclaration: func(d *ImportDeclaration) { seen = append(seen, "import "+d.Source) },
		OpeningElement:    func(e *OpeningElement) { seen = append(seen, "element "+e.Name) },
	})

	assert.Equal(t, []string{
		"import ./a.png",
		"element Image",
		"import ./b.png",
		"element div",
	}, seen)
}

func TestWalk_NilCallbacksAndFile(t *testing.T) {
	assert.NotPanics(t, func() { Walk(sampleFile(), Visitor{}) })
	assert.NotPanics(t, func() { Walk(nil, Visitor{}) })
}

func TestMerge(t *testing.T) {
	var order []string
	a := Visitor{
		ImportDeclaration: func(*ImportDeclaration) { order = append(order, "a.import") },
		OpeningElement:    func(*OpeningElement) { order = append(order, "a.element") },
	}
	b := Visitor{
		OpeningElement: func(*OpeningElement) { order = append(order, "b.element") },
	}

	Walk(&File{Nodes: []Node{
		&ImportDeclaration{Span: at(1, 1)},
		&OpeningElement{Span: at(2, 1)},
	}}, Merge(a, b))

	assert.Equal(t, []string{"a.import", "a.element", "b.element"}, order)
}

func TestMerge_Empty(t *testing.T) {
	merged := Merge(Visitor{}, Visitor{})
	assert.Nil(t, merged.ImportDeclaration)
	assert.Nil(t, merged.OpeningElement)
}

func TestImportsAndElements(t *testing.T) {
	f := sampleFile()

	imports := Imports(f)
	require.Len(t, imports, 2)
	assert.Equal(t, "./a.png", imports[0].Source)
	assert.Equal(t, "./b.png", imports[1].Source)

	elements := Elements(f)
	require.Len(t, elements, 2)
	assert.Equal(t, "Image", elements[0].Name)
	assert.Equal(t, "div", elements[1].Name)
}

func TestOpeningElement_Attribute(t *testing.T) {
	el := &OpeningElement{
		Name: "Image",
		Attributes: []*Attribute{
			{Spread: true},
			{Name: "src", Value: &Literal{Value: "/first.png"}},
			{Name: "src", Value: &Literal{Value: "/second.png"}},
		},
	}

	attr := el.Attribute("src")
	require.NotNil(t, attr)
	assert.Equal(t, "/first.png", attr.Value.(*Literal).Value)
	assert.Nil(t, el.Attribute("alt"))
	assert.Nil(t, el.Attribute(""))
}

func TestSpecifierKind_String(t *testing.T) {
	assert.Equal(t, "default", SpecifierDefault.String())
	assert.Equal(t, "named", SpecifierNamed.String())
	assert.Equal(t, "namespace", SpecifierNamespace.String())
	assert.Equal(t, "unknown", SpecifierKind(42).String())
}
