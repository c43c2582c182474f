package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/leapstack-labs/jsxlint/pkg/core"
	"github.com/leapstack-labs/jsxlint/pkg/lint"
	"github.com/leapstack-labs/jsxlint/pkg/token"
)

// diagnosticSource is reported as the origin of every diagnostic.
const diagnosticSource = "jsxlint"

// toLSPDiagnostics converts lint diagnostics to LSP diagnostics positioned in doc.
func toLSPDiagnostics(doc *Document, diags []lint.Diagnostic) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		start := toLSPPosition(doc, d.Pos)
		end := start
		if d.EndPos.IsValid() {
			end = toLSPPosition(doc, d.EndPos)
		}

		severity := toLSPSeverity(d.Severity)
		source := diagnosticSource
		diag := protocol.Diagnostic{
			Range:    protocol.Range{Start: start, End: end},
			Severity: &severity,
			Code:     &protocol.IntegerOrString{Value: d.RuleID},
			Source:   &source,
			Message:  d.Message,
		}
		if d.DocumentationURL != "" {
			diag.CodeDescription = &protocol.CodeDescription{HRef: d.DocumentationURL}
		}
		out = append(out, diag)
	}
	return out
}

// toLSPPosition maps a 1-based line and byte column to a 0-based UTF-16 position.
func toLSPPosition(doc *Document, pos token.Position) protocol.Position {
	if !pos.IsValid() {
		return protocol.Position{}
	}
	line := pos.Line - 1
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(doc.UTF16Column(line, pos.Column-1)),
	}
}

// toLSPSeverity converts core.Severity to LSP DiagnosticSeverity.
func toLSPSeverity(s core.Severity) protocol.DiagnosticSeverity {
	switch s {
	case core.SeverityError:
		return protocol.DiagnosticSeverityError
	case core.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	case core.SeverityInfo:
		return protocol.DiagnosticSeverityInformation
	case core.SeverityHint:
		return protocol.DiagnosticSeverityHint
	default:
		return protocol.DiagnosticSeverityWarning
	}
}
