package jsx

// Visitor holds the callbacks a traversal invokes, keyed by node type.
// Nil callbacks are skipped.
type Visitor struct {
	ImportDeclaration func(*ImportDeclaration)
	OpeningElement    func(*OpeningElement)
}

// Walk visits every node of file in document order.
func Walk(file *File, v Visitor) {
	if file == nil {
		return
	}
	for _, n := range file.Nodes {
		switch n := n.(type) {
		case *ImportDeclaration:
			if n != nil && v.ImportDeclaration != nil {
				v.ImportDeclaration(n)
			}
		case *OpeningElement:
			if n != nil && v.OpeningElement != nil {
				v.OpeningElement(n)
			}
		}
	}
}

// Merge combines visitors so one traversal feeds all of them.
// For each node, callbacks run in the order the visitors were given.
func Merge(visitors ...Visitor) Visitor {
	var imports []func(*ImportDeclaration)
	var elements []func(*OpeningElement)
	for _, v := range visitors {
		if v.ImportDeclaration != nil {
			imports = append(imports, v.ImportDeclaration)
		}
		if v.OpeningElement != nil {
			elements = append(elements, v.OpeningElement)
		}
	}

	var merged Visitor
	if len(imports) > 0 {
		merged.ImportDeclaration = func(d *ImportDeclaration) {
			for _, fn := range imports {
				fn(d)
			}
		}
	}
	if len(elements) > 0 {
		merged.OpeningElement = func(e *OpeningElement) {
			for _, fn := range elements {
				fn(e)
			}
		}
	}
	return merged
}

// Imports returns the import declarations of file in document order.
func Imports(file *File) []*ImportDeclaration {
	var out []*ImportDeclaration
	Walk(file, Visitor{ImportDeclaration: func(d *ImportDeclaration) { out = append(out, d) }})
	return out
}

// Elements returns the opening elements of file in document order.
func Elements(file *File) []*OpeningElement {
	var out []*OpeningElement
	Walk(file, Visitor{OpeningElement: func(e *OpeningElement) { out = append(out, e) }})
	return out
}
