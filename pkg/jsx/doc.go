// Package jsx models the parts of a JavaScript/TypeScript module that lint rules inspect:
// import declarations and JSX opening elements.
//
// The model is deliberately small. Expressions form a closed set of variants
// (Literal, Identifier, MemberAccess, Container, Other) so rules resolve them with an
// exhaustive type switch; anything the model does not describe is an *Other and carries
// only the syntax kind it came from.
//
// Rules never walk a File themselves. They hand a Visitor to the host, which drives a
// single document-order traversal with Walk:
//
//	jsx.Walk(file, jsx.Visitor{
//		ImportDeclaration: func(decl *jsx.ImportDeclaration) { ... },
//		OpeningElement:    func(el *jsx.OpeningElement) { ... },
//	})
package jsx
