package lint

import (
	"github.com/leapstack-labs/jsxlint/pkg/core"
	"github.com/leapstack-labs/jsxlint/pkg/jsx"
	"github.com/leapstack-labs/jsxlint/pkg/token"
)

// =============================================================================
// Rule Definitions
// =============================================================================

// RuleDef is a data-driven rule definition.
// Per-file state belongs in the closure returned by Create, never in the RuleDef.
type RuleDef struct {
	ID          string        // Unique identifier, e.g., "NX01"
	Name        string        // Human-readable name, e.g., "no-non-svg-in-next-image"
	Group       string        // Category, e.g., "next"
	Description string        // Human-readable description; defaults to Meta.Docs.Description
	Severity    core.Severity // Default severity
	Meta        RuleMeta      // Rule type, docs, messages and option schema
	Create      CreateFunc    // Builds the per-file visitor
	ConfigKeys  []string      // Configuration keys this rule accepts (for rule-specific options)
	Impact      ImpactLevel   // Weight of a violation; defaults to ImpactForType(Meta.Type)

	// Documentation fields for richer rule documentation
	Rationale   string // Why this rule exists, what problems it prevents
	BadExample  string // Code showing the anti-pattern
	GoodExample string // Code showing the correct pattern
	Fix         string // How to fix violations (when not obvious)
}

// CreateFunc builds the visitor a rule contributes to one traversal.
type CreateFunc func(ctx *RuleContext) jsx.Visitor

// RuleMeta describes a rule the way rule documentation and editors consume it.
type RuleMeta struct {
	// Type is "problem", "suggestion" or "layout".
	Type string
	Docs RuleDocs
	// Messages maps message ids to templates. Templates may contain {{name}} placeholders.
	Messages map[string]string
	// Schema lists the accepted options; empty means the rule takes none.
	Schema []any
}

// RuleDocs is the documentation block of a rule's metadata.
type RuleDocs struct {
	Description string
	Category    string
	Recommended bool
}

// Rule types.
const (
	TypeProblem    = "problem"
	TypeSuggestion = "suggestion"
	TypeLayout     = "layout"
)

// =============================================================================
// Diagnostics
// =============================================================================

// Diagnostic represents a lint finding.
type Diagnostic struct {
	RuleID    string         `json:"rule_id"`
	MessageID string         `json:"message_id,omitempty"`
	Severity  core.Severity  `json:"severity"`
	Message   string         `json:"message"`
	FilePath  string         `json:"file_path,omitempty"`
	Pos       token.Position `json:"pos"`
	EndPos    token.Position `json:"end_pos"` // Optional: end of the problematic range

	// Remediation metadata
	DocumentationURL string `json:"documentation_url,omitempty"` // e.g., "https://jsxlint.dev/docs/rules/nx01"
	ImpactScore      int    `json:"impact_score,omitempty"`      // 0-100
}

// =============================================================================
// Rule Interface
// =============================================================================

// Rule is the interface all lint rules implement.
type Rule interface {
	// ID returns the unique identifier, e.g., "NX01"
	ID() string

	// Name returns the human-readable name, e.g., "no-non-svg-in-next-image"
	Name() string

	// Group returns the category, e.g., "next"
	Group() string

	// Description returns a human-readable description
	Description() string

	// DefaultSeverity returns the default severity for this rule
	DefaultSeverity() core.Severity

	// ConfigKeys returns configuration keys this rule accepts
	ConfigKeys() []string

	// Impact returns the weight attached to every diagnostic of this rule
	Impact() ImpactLevel

	// Meta returns the rule's type, docs, messages and option schema
	Meta() RuleMeta

	// Create returns the callbacks this rule contributes to one file's traversal.
	// It is called once per file; state captured by the callbacks lives for that file only.
	Create(ctx *RuleContext) jsx.Visitor

	// Documentation methods for richer rule documentation
	Rationale() string   // Why this rule exists, what problems it prevents
	BadExample() string  // Code showing the anti-pattern
	GoodExample() string // Code showing the correct pattern
	Fix() string         // How to fix violations (when not obvious)
}

// GetRuleInfo extracts metadata from a Rule for documentation/tooling.
func GetRuleInfo(r Rule) core.RuleInfo {
	meta := r.Meta()

	return core.RuleInfo{
		ID:              r.ID(),
		Name:            r.Name(),
		Group:           r.Group(),
		Description:     r.Description(),
		DefaultSeverity: r.DefaultSeverity(),
		ConfigKeys:      r.ConfigKeys(),
		Type:            meta.Type,
		Category:        meta.Docs.Category,
		Recommended:     meta.Docs.Recommended,
		Messages:        meta.Messages,
		Rationale:       r.Rationale(),
		BadExample:      r.BadExample(),
		GoodExample:     r.GoodExample(),
		Fix:             r.Fix(),
	}
}

// =============================================================================
// Wrapped RuleDef
// =============================================================================

// wrappedRuleDef wraps a RuleDef to implement Rule.
type wrappedRuleDef struct {
	def RuleDef
}

// WrapRuleDef wraps a RuleDef to implement the Rule interface.
func WrapRuleDef(def RuleDef) Rule {
	return &wrappedRuleDef{def: def}
}

func (w *wrappedRuleDef) ID() string                     { return w.def.ID }
func (w *wrappedRuleDef) Name() string                   { return w.def.Name }
func (w *wrappedRuleDef) Group() string                  { return w.def.Group }
func (w *wrappedRuleDef) DefaultSeverity() core.Severity { return w.def.Severity }
func (w *wrappedRuleDef) ConfigKeys() []string           { return w.def.ConfigKeys }
func (w *wrappedRuleDef) Meta() RuleMeta                 { return w.def.Meta }

func (w *wrappedRuleDef) Description() string {
	if w.def.Description != "" {
		return w.def.Description
	}
	return w.def.Meta.Docs.Description
}

func (w *wrappedRuleDef) Impact() ImpactLevel {
	if w.def.Impact == 0 {
		return ImpactForType(w.def.Meta.Type)
	}
	return w.def.Impact
}

// Documentation methods
func (w *wrappedRuleDef) Rationale() string   { return w.def.Rationale }
func (w *wrappedRuleDef) BadExample() string  { return w.def.BadExample }
func (w *wrappedRuleDef) GoodExample() string { return w.def.GoodExample }
func (w *wrappedRuleDef) Fix() string         { return w.def.Fix }

func (w *wrappedRuleDef) Create(ctx *RuleContext) jsx.Visitor {
	if w.def.Create == nil {
		return jsx.Visitor{}
	}
	return w.def.Create(ctx)
}

// Unwrap returns the underlying RuleDef.
func (w *wrappedRuleDef) Unwrap() RuleDef {
	return w.def
}
