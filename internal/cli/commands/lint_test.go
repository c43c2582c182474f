package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/jsxlint/internal/cli/config"
	"github.com/leapstack-labs/jsxlint/internal/cli/output"
	"github.com/leapstack-labs/jsxlint/internal/cli/testutil"
	"github.com/leapstack-labs/jsxlint/internal/engine"
	"github.com/leapstack-labs/jsxlint/pkg/core"
	"github.com/leapstack-labs/jsxlint/pkg/lint"
	"github.com/leapstack-labs/jsxlint/pkg/token"
)

func TestNewLintCommand(t *testing.T) {
	cmd := NewLintCommand()

	assert.Equal(t, "lint [path...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	// Verify flags exist
	flags := []string{"format", "disable", "severity", "rule", "watch", "no-cache", "no-syntax-check", "concurrency"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestBuildLintConfig(t *testing.T) {
	t.Run("empty options", func(t *testing.T) {
		cfg, err := buildLintConfig(nil, &LintOptions{})
		require.NoError(t, err)
		assert.False(t, cfg.IsDisabled("NX01"))
	})

	t.Run("disable by id or name", func(t *testing.T) {
		cfg, err := buildLintConfig(nil, &LintOptions{Disable: []string{" nx01 "}})
		require.NoError(t, err)
		assert.True(t, cfg.IsDisabled("NX01"))

		cfg, err = buildLintConfig(nil, &LintOptions{Disable: []string{"no-non-svg-in-next-image"}})
		require.NoError(t, err)
		assert.True(t, cfg.IsDisabled("NX01"))
	})

	t.Run("only specific rules", func(t *testing.T) {
		cfg, err := buildLintConfig(nil, &LintOptions{Rules: []string{"NX01"}})
		require.NoError(t, err)
		assert.False(t, cfg.IsDisabled("NX01"))
		for _, r := range lint.GetAllRules() {
			if r.ID() != "NX01" {
				assert.True(t, cfg.IsDisabled(r.ID()), "rule %q should be disabled", r.ID())
			}
		}
	})

	t.Run("unknown rule", func(t *testing.T) {
		_, err := buildLintConfig(nil, &LintOptions{Rules: []string{"XX99"}})
		assert.ErrorContains(t, err, `unknown rule "XX99"`)
	})

	t.Run("project config", func(t *testing.T) {
		projectCfg := &config.Config{
			Lint: &config.LintConfig{
				Severity: map[string]string{"nx01": "hint"},
				Rules:    map[string]config.RuleOptions{"NX01": {"strict": true}},
			},
		}
		cfg, err := buildLintConfig(projectCfg, &LintOptions{})
		require.NoError(t, err)
		assert.Equal(t, core.SeverityHint, cfg.GetSeverity("NX01", core.SeverityError))
		assert.Equal(t, map[string]any{"strict": true}, cfg.GetRuleOptions("NX01"))
	})

	t.Run("CLI disable on top of project config", func(t *testing.T) {
		projectCfg := &config.Config{Lint: &config.LintConfig{Disabled: []string{"OTHER"}}}
		cfg, err := buildLintConfig(projectCfg, &LintOptions{Disable: []string{"NX01"}})
		require.NoError(t, err)
		assert.True(t, cfg.IsDisabled("OTHER"))
		assert.True(t, cfg.IsDisabled("NX01"))
	})
}

func TestLintCommand_JSON(t *testing.T) {
	noCache(t)
	dir := testutil.SetupTestProject(t)

	out, err := executeCommand(t, NewLintCommand(), dir, "--format", "json")
	require.ErrorIs(t, err, ErrLintIssues)

	var result output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	assert.Equal(t, 2, result.Summary.FilesAnalyzed, "node_modules must be skipped")
	assert.Equal(t, 1, result.Summary.TotalIssues)
	assert.Equal(t, 1, result.Summary.Errors)

	require.Len(t, result.Files, 1)
	assert.True(t, strings.HasSuffix(result.Files[0].Path, filepath.Join("app", "page.tsx")))
	require.Len(t, result.Files[0].Diagnostics, 1)

	d := result.Files[0].Diagnostics[0]
	assert.Equal(t, "NX01", d.RuleID)
	assert.Equal(t, "error", d.Severity)
	assert.Equal(t, 8, d.Line)
	assert.Equal(t, 7, d.Column)
	assert.Equal(t, "Using next/image with non-SVG images is not allowed. Only SVGs are allowed.", d.Message)
	assert.Equal(t, lint.BuildDocURL("NX01"), d.DocumentationURL)
}

func TestLintCommand_Text(t *testing.T) {
	noCache(t)
	dir := testutil.SetupTestProject(t)

	out, err := executeCommand(t, NewLintCommand(), dir, "--format", "text")
	require.ErrorIs(t, err, ErrLintIssues)

	testutil.AssertNoANSI(t, out)
	testutil.AssertContains(t, out, "page.tsx")
	testutil.AssertContains(t, out, "8:7")
	testutil.AssertContains(t, out, "error")
	testutil.AssertContains(t, out, "NX01")
	testutil.AssertContains(t, out, "Summary: 1 issues, 1 errors in 2 files")
	testutil.AssertNotContains(t, out, "clean.jsx")
}

func TestLintCommand_NoIssues(t *testing.T) {
	noCache(t)
	dir := testutil.SetupTestProject(t)

	out, err := executeCommand(t, NewLintCommand(), filepath.Join(dir, "app", "clean.jsx"))
	require.NoError(t, err)
	assert.Contains(t, out, "No lint issues found in 1 files")
}

func TestLintCommand_Filters(t *testing.T) {
	noCache(t)
	dir := testutil.SetupTestProject(t)

	t.Run("disabled rule", func(t *testing.T) {
		_, err := executeCommand(t, NewLintCommand(), dir, "--disable", "NX01")
		assert.NoError(t, err)
	})

	t.Run("error threshold keeps errors", func(t *testing.T) {
		_, err := executeCommand(t, NewLintCommand(), dir, "--severity", "error")
		assert.ErrorIs(t, err, ErrLintIssues)
	})

	t.Run("invalid severity", func(t *testing.T) {
		_, err := executeCommand(t, NewLintCommand(), dir, "--severity", "fatal")
		assert.ErrorContains(t, err, "invalid severity")
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := executeCommand(t, NewLintCommand(), dir, "--format", "xml")
		assert.ErrorContains(t, err, "unknown output mode")
	})

	t.Run("unsupported file", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# hi"), 0o600))
		_, err := executeCommand(t, NewLintCommand(), filepath.Join(dir, "README.md"))
		assert.Error(t, err)
	})
}

func TestFilterAndRender(t *testing.T) {
	results := []engine.FileResult{
		{Path: "a.tsx", Diagnostics: []lint.Diagnostic{
			{RuleID: "NX01", Severity: core.SeverityError, Message: "bad", Pos: token.Position{Line: 1, Column: 2}},
			{RuleID: "T01", Severity: core.SeverityHint, Message: "meh", Pos: token.Position{Line: 3, Column: 1}},
		}},
		{Path: "b.tsx"},
	}

	tr := testutil.NewTestRendererMarkdown()
	assert.True(t, renderLintResults(tr.Renderer, engine.FilterBySeverity(results, core.SeverityWarning)))
	testutil.AssertContains(t, tr.Output(), "NX01")
	testutil.AssertNotContains(t, tr.Output(), "T01")
	testutil.AssertContains(t, tr.Output(), "Summary: 1 issues, 1 errors in 2 files")

	tr = testutil.NewTestRendererMarkdown()
	assert.True(t, renderLintResults(tr.Renderer, results))
	testutil.AssertContains(t, tr.Output(), "2 issues, 1 errors, 1 hints")

	tr = testutil.NewTestRendererJSON()
	assert.False(t, renderLintResults(tr.Renderer, engine.FilterBySeverity(results, core.SeverityError)[1:]))
	testutil.AssertContains(t, tr.Output(), `"files": []`)
}

func TestRenderLintResults_Modes(t *testing.T) {
	results := []engine.FileResult{
		{Path: "a.tsx", Diagnostics: []lint.Diagnostic{
			{RuleID: "NX01", Severity: core.SeverityError, Message: "bad", Pos: token.Position{Line: 4, Column: 2}},
		}},
	}

	tests := []struct {
		name     string
		tr       *testutil.TestRenderer
		wantMode output.Mode
	}{
		{"auto without a terminal", testutil.NewTestRendererAuto(), output.ModeMarkdown},
		{"text on a terminal", testutil.NewTestRendererText(), output.ModeText},
		{"markdown", testutil.NewTestRendererMarkdown(), output.ModeMarkdown},
		{"json", testutil.NewTestRendererJSON(), output.ModeJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMode, tt.tr.EffectiveMode())
			assert.True(t, renderLintResults(tt.tr.Renderer, results))
			testutil.AssertOutputMode(t, tt.tr, tt.wantMode)
			testutil.AssertContains(t, tt.tr.Output(), "NX01")
		})
	}
}

func TestSeverityStyle(t *testing.T) {
	tr := testutil.NewTestRendererMarkdown()

	tests := []struct {
		sev  core.Severity
		want string
	}{
		{core.SeverityError, "error  "},
		{core.SeverityWarning, "warning"},
		{core.SeverityInfo, "info   "},
		{core.SeverityHint, "hint   "},
		{core.Severity(42), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, severityStyle(tr.Renderer, tt.sev))
	}
}

func TestExistingFiles(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	page := filepath.Join(dir, "app", "page.tsx")

	got := existingFiles([]string{page, filepath.Join(dir, "gone.tsx"), filepath.Join(dir, "app")})
	assert.Equal(t, []string{page}, got)
}
