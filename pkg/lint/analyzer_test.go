package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/jsxlint/pkg/core"
	"github.com/leapstack-labs/jsxlint/pkg/jsx"
	"github.com/leapstack-labs/jsxlint/pkg/lint"
	"github.com/leapstack-labs/jsxlint/pkg/token"
)

func spanAt(line, col int) token.Span {
	return token.Span{
		Start: token.Position{Line: line, Column: col},
		End:   token.Position{Line: line, Column: col + 10},
	}
}

// elementRule reports every opening element whose name matches tag.
func elementRule(id, tag string, sev core.Severity) lint.Rule {
	return lint.WrapRuleDef(lint.RuleDef{
		ID:       id,
		Name:     "no-" + tag,
		Group:    "test",
		Severity: sev,
		Meta: lint.RuleMeta{
			Type:     lint.TypeSuggestion,
			Messages: map[string]string{"found": "Found <{{tag}}>."},
		},
		Create: func(ctx *lint.RuleContext) jsx.Visitor {
			return jsx.Visitor{
				OpeningElement: func(el *jsx.OpeningElement) {
					if el.Name == tag {
						ctx.Report(lint.Descriptor{
							Node:      el,
							MessageID: "found",
							Data:      map[string]string{"tag": tag},
						})
					}
				},
			}
		},
	})
}

func testFile() *jsx.File {
	return &jsx.File{
		Path: "app/page.tsx",
		Nodes: []jsx.Node{
			&jsx.ImportDeclaration{Source: "./a.png", Span: spanAt(1, 1)},
			&jsx.OpeningElement{Name: "div", Span: spanAt(3, 5)},
			&jsx.OpeningElement{Name: "span", Span: spanAt(2, 1)},
			&jsx.OpeningElement{Name: "div", Span: spanAt(2, 9)},
		},
	}
}

func TestAnalyzer_Analyze(t *testing.T) {
	analyzer := lint.NewAnalyzerWithRules(nil,
		elementRule("T02", "span", core.SeverityWarning),
		elementRule("T01", "div", core.SeverityError),
	)

	diags := analyzer.Analyze(testFile())
	require.Len(t, diags, 3)

	// Sorted by position, not by rule or visit order.
	assert.Equal(t, "T02", diags[0].RuleID)
	assert.Equal(t, token.Position{Line: 2, Column: 1}, diags[0].Pos)
	assert.Equal(t, "T01", diags[1].RuleID)
	assert.Equal(t, 9, diags[1].Pos.Column)
	assert.Equal(t, "T01", diags[2].RuleID)
	assert.Equal(t, 3, diags[2].Pos.Line)

	assert.Equal(t, "Found <div>.", diags[1].Message)
	assert.Equal(t, "found", diags[1].MessageID)
	assert.Equal(t, core.SeverityError, diags[1].Severity)
	assert.Equal(t, "app/page.tsx", diags[1].FilePath)
	assert.Equal(t, 19, diags[1].EndPos.Column)
	assert.Equal(t, lint.ImpactMedium.Int(), diags[1].ImpactScore)
}

func TestAnalyzer_ConfigOverrides(t *testing.T) {
	cfg := lint.NewConfig().
		Disable("T02").
		SetSeverity("T01", core.SeverityHint)

	analyzer := lint.NewAnalyzerWithRules(cfg,
		elementRule("T01", "div", core.SeverityError),
		elementRule("T02", "span", core.SeverityWarning),
	)

	require.Len(t, analyzer.Rules(), 1)

	diags := analyzer.Analyze(testFile())
	require.Len(t, diags, 2)
	for _, d := range diags {
		assert.Equal(t, "T01", d.RuleID)
		assert.Equal(t, core.SeverityHint, d.Severity)
	}
}

func TestAnalyzer_FreshStatePerFile(t *testing.T) {
	creates := 0
	rule := lint.WrapRuleDef(lint.RuleDef{
		ID: "T03",
		Create: func(ctx *lint.RuleContext) jsx.Visitor {
			creates++
			seen := 0
			return jsx.Visitor{
				OpeningElement: func(el *jsx.OpeningElement) {
					seen++
					if seen == 1 {
						ctx.Report(lint.Descriptor{Node: el, Message: "first element"})
					}
				},
			}
		},
	})

	analyzer := lint.NewAnalyzerWithRules(nil, rule)
	assert.Len(t, analyzer.Analyze(testFile()), 1)
	assert.Len(t, analyzer.Analyze(testFile()), 1)
	assert.Equal(t, 2, creates)
}

func TestAnalyzer_NilFile(t *testing.T) {
	analyzer := lint.NewAnalyzerWithRules(nil, elementRule("T01", "div", core.SeverityError))
	assert.Nil(t, analyzer.Analyze(nil))
}

func TestAnalyzer_UsesRegistry(t *testing.T) {
	lint.Clear()
	t.Cleanup(lint.Clear)

	lint.RegisterRule(elementRule("T01", "div", core.SeverityError))

	analyzer := lint.NewAnalyzer(nil)
	require.Len(t, analyzer.Rules(), 1)
	assert.Len(t, analyzer.Analyze(testFile()), 2)
}

func TestSortDiagnostics(t *testing.T) {
	diags := []lint.Diagnostic{
		{FilePath: "b.tsx", RuleID: "A", Pos: token.Position{Line: 1, Column: 1}},
		{FilePath: "a.tsx", RuleID: "B", Pos: token.Position{Line: 2, Column: 1}},
		{FilePath: "a.tsx", RuleID: "A", Pos: token.Position{Line: 2, Column: 1}},
		{FilePath: "a.tsx", RuleID: "C", Pos: token.Position{Line: 1, Column: 4}},
	}

	lint.SortDiagnostics(diags)

	var got []string
	for _, d := range diags {
		got = append(got, d.FilePath+":"+d.Pos.String()+":"+d.RuleID)
	}
	assert.Equal(t, []string{
		"a.tsx:1:4:C",
		"a.tsx:2:1:A",
		"a.tsx:2:1:B",
		"b.tsx:1:1:A",
	}, got)
}
