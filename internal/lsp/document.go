package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf16"
)

// Document represents an open text document in the editor.
type Document struct {
	URI     string // Document URI (file:///path/to/page.tsx)
	Content string // Full document content
	Version int32  // Version number, incremented on each change
	Lines   []int  // Byte offsets of line starts for fast position lookups
}

// DocumentStore manages open documents in memory.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]*Document
}

// NewDocumentStore creates a new document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]*Document),
	}
}

// Set adds or replaces a document and returns a snapshot of it.
func (s *DocumentStore) Set(uri, content string, version int32) *Document {
	doc := &Document{
		URI:     uri,
		Content: content,
		Version: version,
		Lines:   computeLineOffsets(content),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[uri] = doc
	return doc
}

// Close removes a document from the store.
func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.documents, uri)
}

// Get retrieves a document by URI. Documents are replaced, never mutated,
// so the result is safe to read without holding the lock.
func (s *DocumentStore) Get(uri string) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[uri]
	return doc, ok
}

// Len returns the number of open documents.
func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

// computeLineOffsets calculates byte offsets for each line start.
func computeLineOffsets(content string) []int {
	offsets := []int{0} // First line starts at offset 0

	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}

	return offsets
}

// line returns the text of a 0-based line without its terminator.
func (d *Document) line(n int) string {
	if d == nil || n < 0 || n >= len(d.Lines) {
		return ""
	}

	start := d.Lines[n]
	end := len(d.Content)
	if n+1 < len(d.Lines) {
		end = d.Lines[n+1] - 1
	}
	return strings.TrimSuffix(d.Content[start:end], "\r")
}

// UTF16Column converts a 0-based byte column on a 0-based line into the UTF-16
// code unit column LSP clients expect.
func (d *Document) UTF16Column(line, byteCol int) int {
	text := d.line(line)
	if byteCol > len(text) {
		byteCol = len(text)
	}
	if byteCol <= 0 {
		return 0
	}

	units := 0
	for _, r := range text[:byteCol] {
		units += utf16.RuneLen(r)
	}
	return units
}

// URIToPath converts a file:// URI to a file system path.
func URIToPath(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return strings.TrimPrefix(uri, "file://")
	}
	return filepath.FromSlash(u.Path)
}
