package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/jsxlint/internal/cli/output"
	"github.com/leapstack-labs/jsxlint/pkg/core"
	"github.com/leapstack-labs/jsxlint/pkg/lint"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group   string // Filter by group
	Type    string // Filter by type: problem, suggestion, layout
	Verbose bool   // Show full documentation
	Format  string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available lint rules",
		Long: `List all available lint rules with their documentation.

Rules are organized by group (e.g., next). A rule can be looked up by ID
or by name. Use --verbose to see descriptions in the listing.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all rules
  jsxlint rules

  # Show details for a specific rule
  jsxlint rules NX01
  jsxlint rules no-non-svg-in-next-image

  # List rules in the next group
  jsxlint rules --group next

  # Output as JSON
  jsxlint rules --format json`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return completeRuleIDs(cmd, args, toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().StringVar(&opts.Type, "type", "", "Filter by type: problem, suggestion, layout")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show full documentation")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	_ = cmd.RegisterFlagCompletionFunc("group", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return lint.Groups(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func rulesRenderer(cmd *cobra.Command, format string) (*output.Renderer, error) {
	cmdCtx := NewCommandContextWithoutEngine(cmd)
	if format == "" {
		return cmdCtx.Renderer, nil
	}
	mode, err := output.ParseMode(format)
	if err != nil {
		return nil, err
	}
	return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode), nil
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	r, err := rulesRenderer(cmd, opts.Format)
	if err != nil {
		return err
	}

	rules := filterRulesByOptions(lint.AllRules(), opts)

	// Sort by group, then ID
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Group != rules[j].Group {
			return rules[i].Group < rules[j].Group
		}
		return rules[i].ID < rules[j].ID
	})

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return listRulesJSON(r, rules)
	case output.ModeMarkdown:
		return listRulesMarkdown(r, rules, opts.Verbose)
	default:
		return listRulesText(r, rules, opts.Verbose)
	}
}

func filterRulesByOptions(rules []core.RuleInfo, opts *RulesOptions) []core.RuleInfo {
	if opts.Group == "" && opts.Type == "" {
		return rules
	}

	var filtered []core.RuleInfo
	for _, r := range rules {
		if opts.Group != "" && !strings.EqualFold(r.Group, opts.Group) {
			continue
		}
		if opts.Type != "" && !strings.EqualFold(r.Type, opts.Type) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

func showRule(cmd *cobra.Command, query string, opts *RulesOptions) error {
	r, err := rulesRenderer(cmd, opts.Format)
	if err != nil {
		return err
	}

	found, ok := lint.Lookup(strings.TrimSpace(query))
	if !ok {
		return fmt.Errorf("rule %q not found", query)
	}
	rule := lint.GetRuleInfo(found)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(toRuleOutput(rule))
	case output.ModeMarkdown:
		showRuleMarkdown(r, rule)
	default:
		showRuleText(r, rule)
	}
	return nil
}

// listRulesText outputs one table per group.
func listRulesText(r *output.Renderer, rules []core.RuleInfo, verbose bool) error {
	styles := r.Styles()
	titleCaser := cases.Title(language.English)

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Lint Rules (%d)", len(rules))))
	r.Println("")

	if len(rules) == 0 {
		r.Muted("No rules match the given filters")
		return nil
	}

	for i := 0; i < len(rules); {
		group := rules[i].Group
		r.Println(styles.Header2.Render(titleCaser.String(group)))

		t := table.NewWriter()
		t.SetOutputMirror(r.Writer())
		t.SetStyle(table.StyleLight)
		header := table.Row{"ID", "Name", "Severity", "Type"}
		if verbose {
			header = append(header, "Description")
		}
		t.AppendHeader(header)

		for ; i < len(rules) && rules[i].Group == group; i++ {
			rule := rules[i]
			row := table.Row{
				rule.ID,
				rule.Name,
				getSeverityStyle(styles, rule.DefaultSeverity).Render(rule.DefaultSeverity.String()),
				rule.Type,
			}
			if verbose {
				row = append(row, truncateOneLine(rule.Description, 60))
			}
			t.AppendRow(row)
		}
		t.Render()
		r.Println("")
	}

	r.Println(styles.Muted.Render("Use 'jsxlint rules <rule-id>' for detailed documentation"))
	return nil
}

// listRulesMarkdown outputs rules in markdown format.
func listRulesMarkdown(r *output.Renderer, rules []core.RuleInfo, verbose bool) error {
	titleCaser := cases.Title(language.English)
	r.Print(output.FormatHeader(1, "Lint Rules"))

	currentGroup := ""
	for _, rule := range rules {
		if rule.Group != currentGroup {
			if currentGroup != "" {
				r.Println("")
			}
			currentGroup = rule.Group
			r.Print(output.FormatHeader(2, titleCaser.String(currentGroup)))
		}

		r.Printf("- **%s** - %s (`%s`)\n", rule.ID, rule.Name, rule.DefaultSeverity.String())
		if verbose {
			r.Println("  " + rule.Description)
		}
	}

	r.Println("")
	return nil
}

// listRulesJSON outputs rules in JSON format.
func listRulesJSON(r *output.Renderer, rules []core.RuleInfo) error {
	out := output.RulesOutput{Rules: make([]output.RuleInfo, 0, len(rules))}
	for _, rule := range rules {
		out.Rules = append(out.Rules, toRuleOutput(rule))
	}
	return r.JSON(out)
}

func toRuleOutput(rule core.RuleInfo) output.RuleInfo {
	return output.RuleInfo{
		ID:               rule.ID,
		Name:             rule.Name,
		Group:            rule.Group,
		Description:      rule.Description,
		Severity:         rule.DefaultSeverity.String(),
		Type:             rule.Type,
		Category:         rule.Category,
		Recommended:      rule.Recommended,
		Messages:         rule.Messages,
		DocumentationURL: lint.BuildDocURL(rule.ID),
	}
}

// showRuleText displays detailed rule info in text format.
func showRuleText(r *output.Renderer, rule core.RuleInfo) {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("%s - %s", rule.ID, rule.Name)))
	r.Println("")

	r.Printf("  %s: %s\n", styles.Bold.Render("Group"), rule.Group)
	r.Printf("  %s: %s\n", styles.Bold.Render("Type"), rule.Type)
	r.Printf("  %s: %s\n", styles.Bold.Render("Severity"), rule.DefaultSeverity.String())
	if rule.Category != "" {
		r.Printf("  %s: %s\n", styles.Bold.Render("Category"), rule.Category)
	}
	r.Printf("  %s: %s\n", styles.Bold.Render("Docs"), lint.BuildDocURL(rule.ID))
	r.Println("")

	r.Println(styles.Bold.Render("Description"))
	r.Println("  " + rule.Description)
	r.Println("")

	if rule.Rationale != "" {
		r.Println(styles.Bold.Render("Why This Matters"))
		r.Println("  " + rule.Rationale)
		r.Println("")
	}

	if rule.BadExample != "" {
		r.Println(styles.Bold.Render("Bad Example"))
		for _, line := range strings.Split(rule.BadExample, "\n") {
			r.Println(styles.Muted.Render("  " + line))
		}
		r.Println("")
	}

	if rule.GoodExample != "" {
		r.Println(styles.Bold.Render("Good Example"))
		for _, line := range strings.Split(rule.GoodExample, "\n") {
			r.Println(styles.Success.Render("  " + line))
		}
		r.Println("")
	}

	if rule.Fix != "" {
		r.Println(styles.Bold.Render("How to Fix"))
		r.Println("  " + rule.Fix)
		r.Println("")
	}

	if len(rule.ConfigKeys) > 0 {
		r.Println(styles.Bold.Render("Configuration"))
		r.Printf("  Options: %s\n", strings.Join(rule.ConfigKeys, ", "))
		r.Println("")
	}
}

// showRuleMarkdown displays detailed rule info in markdown format.
func showRuleMarkdown(r *output.Renderer, rule core.RuleInfo) {
	r.Print(output.FormatHeader(1, fmt.Sprintf("%s - %s", rule.ID, rule.Name)))
	r.Print(output.FormatKeyValue("Group", rule.Group))
	r.Print(output.FormatKeyValue("Type", rule.Type))
	r.Print(output.FormatKeyValue("Severity", "`"+rule.DefaultSeverity.String()+"`"))
	r.Print(output.FormatKeyValue("Docs", lint.BuildDocURL(rule.ID)))
	r.Println("")
	r.Println(rule.Description)
	r.Println("")

	if rule.Rationale != "" {
		r.Print(output.FormatHeader(2, "Why This Matters"))
		r.Println(rule.Rationale)
		r.Println("")
	}

	if rule.BadExample != "" {
		r.Print(output.FormatHeader(2, "Bad Example"))
		r.Print(output.FormatCodeBlock("tsx", rule.BadExample))
		r.Println("")
	}

	if rule.GoodExample != "" {
		r.Print(output.FormatHeader(2, "Good Example"))
		r.Print(output.FormatCodeBlock("tsx", rule.GoodExample))
		r.Println("")
	}

	if rule.Fix != "" {
		r.Print(output.FormatHeader(2, "How to Fix"))
		r.Println(rule.Fix)
		r.Println("")
	}

	if len(rule.ConfigKeys) > 0 {
		r.Print(output.FormatHeader(2, "Configuration"))
		r.Printf("Options: `%s`\n", strings.Join(rule.ConfigKeys, "`, `"))
		r.Println("")
	}
}

// Helper functions

func getSeverityStyle(styles *output.Styles, sev core.Severity) lipgloss.Style {
	switch sev {
	case core.SeverityError:
		return styles.Error
	case core.SeverityWarning:
		return styles.Warning
	case core.SeverityInfo:
		return styles.Info
	default:
		return styles.Hint
	}
}

func truncateOneLine(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
