package next

import (
	"regexp"

	"github.com/leapstack-labs/jsxlint/pkg/core"
	"github.com/leapstack-labs/jsxlint/pkg/jsx"
	"github.com/leapstack-labs/jsxlint/pkg/lint"
)

func init() {
	lint.Register(NonSVGImage)
}

// MessageNonSVGImage is the message id reported by NX01.
const MessageNonSVGImage = "noNonSvgImages"

var (
	rasterImage = regexp.MustCompile(`(?i)\.(png|jpg|jpeg|gif|bmp|webp)$`)
	svgImage    = regexp.MustCompile(`(?i)\.(svg)$`)
)

// imageComponents are the tag names next/image is usually bound to.
var imageComponents = map[string]bool{
	"Image":     true,
	"NextImage": true,
}

// NonSVGImage flags next/image elements whose src resolves to a raster image.
var NonSVGImage = lint.RuleDef{
	ID:       "NX01",
	Name:     "no-non-svg-in-next-image",
	Group:    "next",
	Severity: core.SeverityError,
	Meta: lint.RuleMeta{
		Type: lint.TypeProblem,
		Docs: lint.RuleDocs{
			Description: "Disallow usage of next/image with non-SVG images",
			Category:    "Best Practices",
			Recommended: false,
		},
		Messages: map[string]string{
			MessageNonSVGImage: "Using next/image with non-SVG images is not allowed. Only SVGs are allowed.",
		},
		Schema: []any{},
	},
	Create: createNonSVGImage,

	Rationale: `Projects adopting this rule reserve next/image for SVG assets and render raster
images another way. A PNG or JPEG passed to next/image breaks that convention.`,
	BadExample: `import hero from "./hero.png";

<Image src={hero} alt="" />
<Image src="/photo.jpg" alt="" />`,
	GoodExample: `import logo from "./logo.svg";

<Image src={logo} alt="" />
<img src="/photo.jpg" alt="" />`,
	Fix: "Use an SVG asset, or render raster images with the component the project uses for them.",
}

func createNonSVGImage(ctx *lint.RuleContext) jsx.Visitor {
	// Local default-import name -> raster module path. Lives for one file.
	images := make(map[string]string)

	return jsx.Visitor{
		ImportDeclaration: func(decl *jsx.ImportDeclaration) {
			if decl.Source == "" || !rasterImage.MatchString(decl.Source) {
				return
			}
			for _, spec := range decl.Specifiers {
				if spec.Kind == jsx.SpecifierDefault {
					images[spec.Local] = decl.Source
				}
			}
		},

		OpeningElement: func(el *jsx.OpeningElement) {
			if !imageComponents[el.Name] {
				return
			}

			src := el.Attribute("src")
			if src == nil {
				return
			}

			path, ok := resolveSource(src.Value, images)
			if !ok || path == "" {
				return
			}

			if !svgImage.MatchString(path) {
				ctx.Report(lint.Descriptor{
					Node:      el,
					MessageID: MessageNonSVGImage,
				})
			}
		},
	}
}

// resolveSource traces a src value back to a path string: a literal directly,
// or `{name}` / `{name.src}` through a tracked default import. Optional chains
// (`{name?.src}`) do not resolve.
func resolveSource(value jsx.Expr, images map[string]string) (string, bool) {
	switch v := value.(type) {
	case *jsx.Literal:
		return v.Value, true

	case *jsx.Container:
		switch e := v.Expression.(type) {
		case *jsx.MemberAccess:
			obj, ok := e.Object.(*jsx.Identifier)
			if !ok || e.Computed || e.Optional || e.Property != "src" {
				return "", false
			}
			path, ok := images[obj.Name]
			return path, ok

		case *jsx.Identifier:
			path, ok := images[e.Name]
			return path, ok
		}
	}

	return "", false
}
