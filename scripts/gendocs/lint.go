package main

import (
	"fmt"
	"log"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/jsxlint/pkg/lint"
	_ "github.com/leapstack-labs/jsxlint/pkg/lint/rules"
)

// groupDescriptions provides human-readable descriptions for rule groups.
var groupDescriptions = map[string]string{
	"next": "Rules about Next.js components and their constraints.",
}

// generateLintDocs generates all lint documentation files.
func generateLintDocs(outDir string) error {
	log.Printf("Generating lint docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := generateLintIndex(outDir); err != nil {
		return err
	}
	log.Printf("  Generated index.md")

	// One page per rule, so diagnostics can link to <docs_url>/<id>.
	for _, rule := range lint.GetAllRules() {
		if err := generateRulePage(outDir, rule); err != nil {
			return err
		}
		log.Printf("  Generated %s.md", strings.ToLower(rule.ID()))
	}

	return nil
}

// generateLintIndex generates the rules overview page.
func generateLintIndex(outDir string) error {
	w := NewMarkdownWriter()
	title := cases.Title(language.English)

	w.Frontmatter("Lint Rules", "Lint rules for jsxlint")
	w.GeneratedMarker()

	w.Header(1, "Lint Rules")
	w.Paragraph(fmt.Sprintf("jsxlint includes %s.", Bold(fmt.Sprintf("%d rules", lint.Count()))))

	w.Header(2, "Severity Levels")
	w.Table(
		[]string{"Severity", "Description"},
		[][]string{
			{InlineCode("error"), "Critical issue that should be fixed"},
			{InlineCode("warning"), "Potential issue that should be reviewed"},
			{InlineCode("info"), "Informational feedback"},
			{InlineCode("hint"), "Suggestion for improvement"},
		},
	)

	w.Header(2, "Configuration")
	w.Paragraph("Rules can be configured in `.jsxlint.yaml`:")
	w.CodeBlock("yaml", `lint:
  disabled:
    - NX01                 # disable rule
  severity:
    NX01: warning          # override severity`)

	for _, group := range lint.Groups() {
		w.Line(fmt.Sprintf("## %s {#%s}", title.String(group), group))
		w.Newline()

		if desc, ok := groupDescriptions[group]; ok {
			w.Paragraph(desc)
		}

		var rows [][]string
		for _, rule := range lint.GetRulesByGroup(group) {
			id := strings.ToLower(rule.ID())
			rows = append(rows, []string{
				fmt.Sprintf("[%s](./%s)", rule.ID(), id),
				InlineCode(rule.Name()),
				InlineCode(rule.DefaultSeverity().String()),
				cleanDescription(rule.Description()),
			})
		}
		w.Table([]string{"Rule", "Name", "Severity", "Description"}, rows)
	}

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

// generateRulePage generates the documentation page for a single rule.
func generateRulePage(outDir string, rule lint.Rule) error {
	w := NewMarkdownWriter()

	w.Frontmatter(rule.ID(), cleanDescription(rule.Description()))
	w.GeneratedMarker()

	writeRuleDoc(w, rule)

	filename := filepath.Join(outDir, strings.ToLower(rule.ID())+".md")
	return os.WriteFile(filename, w.Bytes(), 0600)
}

// writeRuleDoc writes detailed documentation for a single rule.
func writeRuleDoc(w *MarkdownWriter, rule lint.Rule) {
	w.Header(1, fmt.Sprintf("%s - %s", rule.ID(), rule.Name()))

	meta := rule.Meta()
	w.Line(fmt.Sprintf("**Severity:** %s", InlineCode(rule.DefaultSeverity().String())))
	w.Line(fmt.Sprintf("**Type:** %s", InlineCode(meta.Type)))
	if meta.Docs.Category != "" {
		w.Line(fmt.Sprintf("**Category:** %s", meta.Docs.Category))
	}
	w.Newline()

	w.Paragraph(cleanDescription(rule.Description()))

	if rationale := rule.Rationale(); rationale != "" {
		w.Header(2, "Why This Matters")
		w.Paragraph(rationale)
	}

	if badExample := rule.BadExample(); badExample != "" {
		w.Header(2, "Bad")
		w.CodeBlock("tsx", badExample)
	}

	if goodExample := rule.GoodExample(); goodExample != "" {
		w.Header(2, "Good")
		w.CodeBlock("tsx", goodExample)
	}

	if fix := rule.Fix(); fix != "" {
		w.Header(2, "How to Fix")
		w.Paragraph(fix)
	}

	if len(meta.Messages) > 0 {
		w.Header(2, "Messages")
		var rows [][]string
		for _, id := range slices.Sorted(maps.Keys(meta.Messages)) {
			rows = append(rows, []string{InlineCode(id), meta.Messages[id]})
		}
		w.Table([]string{"Message ID", "Text"}, rows)
	}

	if configKeys := rule.ConfigKeys(); len(configKeys) > 0 {
		w.Header(2, "Configuration")
		w.Paragraph(fmt.Sprintf("This rule accepts the following configuration options: %s",
			InlineCode(strings.Join(configKeys, ", "))))
	}
}
