package lint

import (
	"regexp"

	"github.com/leapstack-labs/jsxlint/pkg/core"
	"github.com/leapstack-labs/jsxlint/pkg/jsx"
)

// Descriptor is what a rule passes to RuleContext.Report.
type Descriptor struct {
	// Node is the offending node; its span becomes the diagnostic range.
	Node jsx.Node
	// MessageID selects a template from the rule's Meta().Messages.
	MessageID string
	// Message is used verbatim when MessageID is empty.
	Message string
	// Data fills {{name}} placeholders in the template.
	Data map[string]string
}

// RuleContext is handed to Rule.Create once per file. It exposes the file being
// linted and collects the rule's reports.
type RuleContext struct {
	rule        Rule
	file        *jsx.File
	options     map[string]any
	severity    core.Severity
	diagnostics []Diagnostic
}

// NewRuleContext creates the context one rule uses while linting one file.
// The Analyzer builds these itself; rule tests may use it directly.
func NewRuleContext(rule Rule, file *jsx.File, config *Config) *RuleContext {
	return &RuleContext{
		rule:     rule,
		file:     file,
		options:  config.GetRuleOptions(rule.ID()),
		severity: config.GetSeverity(rule.ID(), rule.DefaultSeverity()),
	}
}

// Filename returns the path of the file being linted.
func (c *RuleContext) Filename() string {
	if c.file == nil {
		return ""
	}
	return c.file.Path
}

// File returns the file being linted.
func (c *RuleContext) File() *jsx.File {
	return c.file
}

// Options returns the rule's configured options, or nil.
func (c *RuleContext) Options() map[string]any {
	return c.options
}

// Report records a diagnostic for d.Node.
func (c *RuleContext) Report(d Descriptor) {
	meta := c.rule.Meta()

	message := d.Message
	if d.MessageID != "" {
		tmpl, ok := meta.Messages[d.MessageID]
		if !ok {
			tmpl = d.MessageID
		}
		message = interpolate(tmpl, d.Data)
	}

	diag := Diagnostic{
		RuleID:           c.rule.ID(),
		MessageID:        d.MessageID,
		Severity:         c.severity,
		Message:          message,
		FilePath:         c.Filename(),
		DocumentationURL: BuildDocURL(c.rule.ID()),
		ImpactScore:      c.rule.Impact().Int(),
	}
	if d.Node != nil {
		diag.Pos = d.Node.Pos()
		diag.EndPos = d.Node.End()
	}

	c.diagnostics = append(c.diagnostics, diag)
}

// Diagnostics returns everything reported so far.
func (c *RuleContext) Diagnostics() []Diagnostic {
	return c.diagnostics
}

var placeholder = regexp.MustCompile(`\{\{\s*([^{}\s]+)\s*\}\}`)

// interpolate replaces {{name}} with data[name]. Unknown names are left as written.
func interpolate(tmpl string, data map[string]string) string {
	if len(data) == 0 {
		return tmpl
	}
	return placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		key := placeholder.FindStringSubmatch(m)[1]
		if v, ok := data[key]; ok {
			return v
		}
		return m
	})
}
