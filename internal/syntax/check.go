// Package syntax reports hard syntax errors with esbuild before the rules run.
//
// The tree-sitter grammars used for linting recover from errors silently, so a file
// that does not compile would otherwise lint clean.
package syntax

import (
	"github.com/evanw/esbuild/pkg/api"

	"github.com/leapstack-labs/jsxlint/pkg/core"
	"github.com/leapstack-labs/jsxlint/pkg/jsx"
	"github.com/leapstack-labs/jsxlint/pkg/lint"
	"github.com/leapstack-labs/jsxlint/pkg/token"
)

// Diagnostic identifiers for syntax errors.
const (
	RuleID    = "syntax"
	MessageID = "syntaxError"
)

// Check transforms src with esbuild and turns every error message into a diagnostic.
// Files with an unsupported extension produce no diagnostics.
func Check(path string, src []byte) []lint.Diagnostic {
	lang, err := jsx.LanguageForPath(path)
	if err != nil {
		return nil
	}

	result := api.Transform(string(src), api.TransformOptions{
		Loader:     loaderFor(lang),
		Sourcefile: path,
		LogLevel:   api.LogLevelSilent,
	})

	if len(result.Errors) == 0 {
		return nil
	}

	diags := make([]lint.Diagnostic, 0, len(result.Errors))
	for _, msg := range result.Errors {
		diags = append(diags, toDiagnostic(path, msg))
	}
	return diags
}

func loaderFor(lang jsx.Language) api.Loader {
	switch lang {
	case jsx.LanguageTypeScript:
		return api.LoaderTS
	case jsx.LanguageTSX:
		return api.LoaderTSX
	default:
		// Next.js projects put JSX in plain .js files.
		return api.LoaderJSX
	}
}

func toDiagnostic(path string, msg api.Message) lint.Diagnostic {
	d := lint.Diagnostic{
		RuleID:    RuleID,
		MessageID: MessageID,
		Severity:  core.SeverityError,
		Message:   msg.Text,
		FilePath:  path,
	}
	if loc := msg.Location; loc != nil {
		// esbuild lines are 1-based, columns 0-based.
		d.Pos = token.Position{Line: loc.Line, Column: loc.Column + 1}
		d.EndPos = token.Position{Line: loc.Line, Column: loc.Column + 1 + loc.Length}
	}
	return d
}
