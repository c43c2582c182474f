package output_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/jsxlint/internal/cli/output"
)

func newRenderer(mode output.Mode, tty bool) (*output.Renderer, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return output.NewRendererWithTTY(out, errOut, tty, mode), out, errOut
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		mode output.Mode
		tty  bool
		want output.Mode
	}{
		{output.ModeAuto, true, output.ModeText},
		{output.ModeAuto, false, output.ModeMarkdown},
		{"", false, output.ModeMarkdown},
		{output.ModeJSON, true, output.ModeJSON},
		{output.ModeText, false, output.ModeText},
		{output.ModeMarkdown, true, output.ModeMarkdown},
	}

	for _, tt := range tests {
		r, _, _ := newRenderer(tt.mode, tt.tty)
		assert.Equal(t, tt.want, r.EffectiveMode(), "mode=%q tty=%v", tt.mode, tt.tty)
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"", "auto", "text", "markdown", "json"} {
		_, err := output.ParseMode(s)
		assert.NoError(t, err, s)
	}
	_, err := output.ParseMode("yaml")
	assert.Error(t, err)
}

func TestRenderer_Markdown(t *testing.T) {
	r, out, errOut := newRenderer(output.ModeMarkdown, false)

	r.Header(1, "Rules")
	r.StatusLine(".jsxlint.yaml", "success", "")
	r.StatusLine("cache", "error", "locked")
	r.Success("done")
	r.Muted("quiet")
	r.Warning("careful")

	assert.Equal(t, "# Rules\n\n- ✓ .jsxlint.yaml\n- ✗ cache (locked)\n**done**\n_quiet_\n", out.String())
	assert.Equal(t, "> **Warning:** careful\n", errOut.String())
}

func TestRenderer_TextWithoutColorWhenNotTTY(t *testing.T) {
	r, out, _ := newRenderer(output.ModeText, false)

	r.Success("ok")
	r.Println(r.Styles().Muted.Render("boom"))

	assert.Equal(t, "✓ ok\nboom\n", out.String())
}

func TestRenderer_JSON(t *testing.T) {
	r, out, _ := newRenderer(output.ModeJSON, false)

	require.NoError(t, r.JSON(output.LintOutput{
		Summary: output.LintSummary{FilesAnalyzed: 1, TotalIssues: 1, Errors: 1},
		Files: []output.LintFileResult{{
			Path:        "app/page.tsx",
			Diagnostics: []output.LintDiagnostic{{RuleID: "NX01", Severity: "error", Line: 3, Column: 5}},
		}},
	}))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	summary := decoded["summary"].(map[string]any)
	assert.InDelta(t, 1, summary["errors"], 0)
	assert.Contains(t, out.String(), `"rule_id": "NX01"`)
	assert.NotContains(t, out.String(), "documentation_url")
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "## Next\n\n", output.FormatHeader(2, "Next"))
	assert.Equal(t, "# Top\n\n", output.FormatHeader(0, "Top"))
	assert.Equal(t, "- **ID:** NX01\n", output.FormatKeyValue("ID", "NX01"))
	assert.Equal(t, "```tsx\n<Image />\n```\n", output.FormatCodeBlock("tsx", "<Image />\n"))
}
