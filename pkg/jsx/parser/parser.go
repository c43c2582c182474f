// Package parser builds jsx.File values from source text using tree-sitter grammars.
package parser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/leapstack-labs/jsxlint/pkg/jsx"
)

var (
	errPoolType   = errors.New("parser pool returned unexpected type")
	errNoRootNode = errors.New("parse produced no root node")
)

// Parser parses JavaScript, TypeScript and TSX sources. It is safe for concurrent use;
// tree-sitter parsers are pooled per language.
type Parser struct {
	mu     sync.Mutex
	pools  map[jsx.Language]*sync.Pool
	logger *slog.Logger
}

// New creates a Parser. A nil logger discards log output.
func New(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Parser{
		pools:  make(map[jsx.Language]*sync.Pool),
		logger: logger,
	}
}

// Parse picks the grammar from the file extension and parses content.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*jsx.File, error) {
	lang, err := jsx.LanguageForPath(path)
	if err != nil {
		return nil, err
	}
	return p.ParseLanguage(ctx, path, lang, content)
}

// ParseLanguage parses content with an explicit grammar.
// Shapes the model does not describe never fail the parse; they become *jsx.Other.
func (p *Parser) ParseLanguage(ctx context.Context, path string, lang jsx.Language, content []byte) (*jsx.File, error) {
	pool, err := p.pool(lang)
	if err != nil {
		return nil, err
	}

	tsParser, ok := pool.Get().(*sitter.Parser)
	if !ok {
		return nil, errPoolType
	}
	defer pool.Put(tsParser)

	tree, err := tsParser.ParseString(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.IsNull() {
		return nil, fmt.Errorf("parse %s: %w", path, errNoRootNode)
	}

	c := &converter{src: content}
	c.visit(root)

	p.logger.Debug("parsed file",
		"path", path,
		"language", string(lang),
		"imports", c.imports,
		"elements", c.elements,
	)

	return &jsx.File{
		Path:     path,
		Language: lang,
		Nodes:    c.nodes,
	}, nil
}

func (p *Parser) pool(lang jsx.Language) (*sync.Pool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pool, ok := p.pools[lang]; ok {
		return pool, nil
	}

	g := grammar(lang)
	if g == nil {
		return nil, fmt.Errorf("%w: %s", jsx.ErrUnsupportedLanguage, lang)
	}

	pool := &sync.Pool{
		New: func() any {
			tsParser := sitter.NewParser()
			tsParser.SetLanguage(g)
			return tsParser
		},
	}
	p.pools[lang] = pool
	return pool, nil
}
