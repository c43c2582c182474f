package jsx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguageForPath(t *testing.T) {
	tests := []struct {
		path string
		want Language
	}{
		{"app/page.tsx", LanguageTSX},
		{"app/page.TSX", LanguageTSX},
		{"lib/util.ts", LanguageTypeScript},
		{"lib/util.mts", LanguageTypeScript},
		{"components/Hero.jsx", LanguageJavaScript},
		{"next.config.mjs", LanguageJavaScript},
		{"server.cjs", LanguageJavaScript},
		{"index.js", LanguageJavaScript},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := LanguageForPath(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, IsSupported(tt.path))
		})
	}
}

func TestLanguageForPath_Unsupported(t *testing.T) {
	for _, path := range []string{"styles.css", "README.md", "Makefile", "image.png"} {
		_, err := LanguageForPath(path)
		require.ErrorIs(t, err, ErrUnsupportedLanguage, path)
		assert.False(t, IsSupported(path))
	}
}

func TestExtensions(t *testing.T) {
	exts := Extensions()
	assert.Equal(t, []string{".cjs", ".cts", ".js", ".jsx", ".mjs", ".mts", ".ts", ".tsx"}, exts)
}
