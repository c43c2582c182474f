package jsx

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// ErrUnsupportedLanguage is returned for files whose extension is not JavaScript or TypeScript.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Language identifies the grammar a file is parsed with.
type Language string

// Supported languages.
const (
	LanguageJavaScript Language = "javascript" // .js .jsx .mjs .cjs
	LanguageTypeScript Language = "typescript" // .ts .mts .cts, no JSX
	LanguageTSX        Language = "tsx"        // .tsx
)

var extensionLanguages = map[string]Language{
	".js":  LanguageJavaScript,
	".jsx": LanguageJavaScript,
	".mjs": LanguageJavaScript,
	".cjs": LanguageJavaScript,
	".ts":  LanguageTypeScript,
	".mts": LanguageTypeScript,
	".cts": LanguageTypeScript,
	".tsx": LanguageTSX,
}

// LanguageForPath picks the language from a file extension (case-insensitive).
func LanguageForPath(path string) (Language, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := extensionLanguages[ext]; ok {
		return lang, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, path)
}

// IsSupported reports whether path has a lintable extension.
func IsSupported(path string) bool {
	_, ok := extensionLanguages[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Extensions returns the supported file extensions.
func Extensions() []string {
	out := make([]string, 0, len(extensionLanguages))
	for ext := range extensionLanguages {
		out = append(out, ext)
	}
	slices.Sort(out)
	return out
}
