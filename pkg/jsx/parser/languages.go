package parser

import (
	"sync"
	"unsafe"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/alexaandru/go-sitter-forest/javascript"
	"github.com/alexaandru/go-sitter-forest/tsx"
	"github.com/alexaandru/go-sitter-forest/typescript"

	"github.com/leapstack-labs/jsxlint/pkg/jsx"
)

// languageFuncs maps languages to their tree-sitter GetLanguage functions.
var languageFuncs = map[jsx.Language]func() unsafe.Pointer{
	jsx.LanguageJavaScript: javascript.GetLanguage,
	jsx.LanguageTypeScript: typescript.GetLanguage,
	jsx.LanguageTSX:        tsx.GetLanguage,
}

var languageCache sync.Map

// grammar returns the tree-sitter Language for lang, or nil if not supported.
func grammar(lang jsx.Language) (result *sitter.Language) {
	if cached, ok := languageCache.Load(lang); ok {
		if l, castOK := cached.(*sitter.Language); castOK {
			return l
		}
	}

	fn, ok := languageFuncs[lang]
	if !ok {
		return nil
	}

	defer func() {
		if recover() != nil {
			result = nil
		}
	}()

	l := sitter.NewLanguage(fn())
	languageCache.Store(lang, l)

	return l
}
