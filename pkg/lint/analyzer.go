package lint

import (
	"cmp"
	"slices"
	"strings"

	"github.com/leapstack-labs/jsxlint/pkg/jsx"
)

// Analyzer runs lint rules against parsed files.
type Analyzer struct {
	config *Config
	rules  []Rule // nil means every registered rule
}

// NewAnalyzer creates an analyzer over the global registry with optional configuration.
func NewAnalyzer(config *Config) *Analyzer {
	if config == nil {
		config = NewConfig()
	}
	return &Analyzer{config: config}
}

// NewAnalyzerWithRules creates an analyzer that runs only the given rules.
func NewAnalyzerWithRules(config *Config, rules ...Rule) *Analyzer {
	a := NewAnalyzer(config)
	a.rules = rules
	sortRules(a.rules)
	return a
}

// Config returns the analyzer's configuration.
func (a *Analyzer) Config() *Config {
	return a.config
}

// Rules returns the enabled rules in the order they run.
func (a *Analyzer) Rules() []Rule {
	rules := a.rules
	if rules == nil {
		rules = GetAllRules()
	}

	enabled := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		if a.config.IsDisabled(rule.ID()) {
			continue
		}
		enabled = append(enabled, rule)
	}
	return enabled
}

// Analyze runs every enabled rule over file in a single traversal and returns the
// diagnostics sorted by position.
func (a *Analyzer) Analyze(file *jsx.File) []Diagnostic {
	if file == nil {
		return nil
	}

	rules := a.Rules()
	contexts := make([]*RuleContext, 0, len(rules))
	visitors := make([]jsx.Visitor, 0, len(rules))

	for _, rule := range rules {
		ctx := NewRuleContext(rule, file, a.config)
		contexts = append(contexts, ctx)
		visitors = append(visitors, rule.Create(ctx))
	}

	jsx.Walk(file, jsx.Merge(visitors...))

	var diagnostics []Diagnostic
	for _, ctx := range contexts {
		diagnostics = append(diagnostics, ctx.Diagnostics()...)
	}

	SortDiagnostics(diagnostics)
	return diagnostics
}

// SortDiagnostics orders diagnostics by file, position and rule ID.
func SortDiagnostics(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		return cmp.Or(
			strings.Compare(a.FilePath, b.FilePath),
			cmp.Compare(a.Pos.Line, b.Pos.Line),
			cmp.Compare(a.Pos.Column, b.Pos.Column),
			strings.Compare(a.RuleID, b.RuleID),
		)
	})
}
