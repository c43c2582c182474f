package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/jsxlint/internal/cli/config"
	"github.com/leapstack-labs/jsxlint/internal/cli/output"
	"github.com/leapstack-labs/jsxlint/internal/engine"
	"github.com/leapstack-labs/jsxlint/internal/source"
	"github.com/leapstack-labs/jsxlint/internal/watch"
	"github.com/leapstack-labs/jsxlint/pkg/core"
	"github.com/leapstack-labs/jsxlint/pkg/lint"
)

// ErrLintIssues is returned when a lint run reports at least one diagnostic.
var ErrLintIssues = errors.New("lint issues found")

// LintOptions holds options for the lint command.
type LintOptions struct {
	Paths    []string // Files or directories; defaults to the project root
	Format   string   // Output format: text, markdown, json
	Disable  []string // Rule IDs or names to disable
	Severity string   // Minimum severity: error, warning, info, hint
	Rules    []string // Run only specific rules
	Watch    bool     // Re-lint on file changes
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [path...]",
		Short: "Run lint rules on JavaScript and TypeScript files",
		Long: `Analyze .js, .jsx, .ts and .tsx files for framework-specific issues.

Directories are walked recursively. node_modules, .next, dist, build, out,
coverage and .git are always skipped; more globs can be ignored in .jsxlint.yaml.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Lint the whole project
  jsxlint lint

  # Lint specific paths
  jsxlint lint ./app ./components/Hero.tsx

  # Output as JSON
  jsxlint lint --format json

  # Disable specific rules
  jsxlint lint --disable NX01

  # Only report errors
  jsxlint lint --severity error

  # Re-lint whenever a file changes
  jsxlint lint --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			return runLint(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringVar(&opts.Severity, "severity", "warning", "Minimum severity: error, warning, info, hint")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch for changes and re-lint")
	cmd.Flags().Bool("no-cache", false, "Do not read or write the result cache")
	cmd.Flags().Bool("no-syntax-check", false, "Skip the esbuild syntax check")
	cmd.Flags().Int("concurrency", 0, "Files linted in parallel (default: number of CPUs)")

	_ = cmd.RegisterFlagCompletionFunc("rule", completeRuleIDs)
	_ = cmd.RegisterFlagCompletionFunc("disable", completeRuleIDs)

	return cmd
}

func completeRuleIDs(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	var ids []string
	for _, r := range lint.GetAllRules() {
		ids = append(ids, r.ID()+"\t"+r.Name())
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

func runLint(cmd *cobra.Command, opts *LintOptions) error {
	threshold, ok := core.ParseSeverity(opts.Severity)
	if !ok {
		return fmt.Errorf("invalid severity %q: want error, warning, info or hint", opts.Severity)
	}

	cfg := getConfig()
	lintCfg, err := buildLintConfig(cfg, opts)
	if err != nil {
		return err
	}

	cmdCtx, cleanup, err := NewCommandContext(cmd, engineOptions{Lint: lintCfg})
	if err != nil {
		return err
	}
	defer cleanup()

	r := cmdCtx.Renderer
	// Override renderer if format flag is set
	if opts.Format != "" {
		mode, err := output.ParseMode(opts.Format)
		if err != nil {
			return err
		}
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)
	}

	roots := opts.Paths
	if len(roots) == 0 {
		roots = []string{cmdCtx.Cfg.ProjectRoot}
	}
	srcOpts := source.Options{Include: cmdCtx.Cfg.Include, Ignore: cmdCtx.Cfg.Ignore}

	files, err := source.Discover(roots, srcOpts)
	if err != nil {
		return err
	}
	cmdCtx.Logger.Debug("discovered files", "count", len(files), "roots", roots)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.Watch {
		return watchLint(ctx, cmdCtx, r, roots, files, threshold)
	}

	results, err := cmdCtx.Engine.LintFiles(ctx, files)
	if err != nil {
		return err
	}

	if renderLintResults(r, engine.FilterBySeverity(results, threshold)) {
		return ErrLintIssues
	}
	return nil
}

// watchLint lints once, then re-lints changed files until interrupted.
func watchLint(ctx context.Context, cmdCtx *CommandContext, r *output.Renderer, roots, files []string, threshold core.Severity) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	lintAndRender := func(ctx context.Context, paths []string) {
		results, err := cmdCtx.Engine.LintFiles(ctx, paths)
		if err != nil {
			if ctx.Err() == nil {
				cmdCtx.Logger.Error("lint failed", "error", err)
			}
			return
		}
		renderLintResults(r, engine.FilterBySeverity(results, threshold))
	}

	lintAndRender(ctx, files)

	w, err := watch.New(watch.Config{
		Roots:   roots,
		Include: cmdCtx.Cfg.Include,
		Ignore:  cmdCtx.Cfg.Ignore,
		Logger:  cmdCtx.Logger,
		OnChange: func(ctx context.Context, paths []string) {
			existing := existingFiles(paths)
			if len(existing) == 0 {
				return
			}
			r.Println("")
			r.Muted(fmt.Sprintf("Changed: %s", strings.Join(displayPaths(existing), ", ")))
			lintAndRender(ctx, existing)
		},
	})
	if err != nil {
		return err
	}

	r.Muted("Watching for changes (Ctrl+C to stop)")
	return w.Run(ctx)
}

// existingFiles drops paths that were removed or renamed away.
func existingFiles(paths []string) []string {
	var out []string
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			out = append(out, p)
		}
	}
	return out
}

// buildLintConfig merges the project lint config with CLI flags. CLI flags win.
func buildLintConfig(cfg *config.Config, opts *LintOptions) (*lint.Config, error) {
	lintCfg := projectLintConfig(cfg)

	for _, id := range opts.Disable {
		if id = strings.TrimSpace(id); id != "" {
			lintCfg.Disable(canonicalRuleID(id))
		}
	}

	// If --rule specified, disable all others
	if len(opts.Rules) > 0 {
		enabledSet := make(map[string]bool)
		for _, id := range opts.Rules {
			rule, ok := lint.Lookup(strings.TrimSpace(id))
			if !ok {
				return nil, fmt.Errorf("unknown rule %q", id)
			}
			enabledSet[rule.ID()] = true
		}
		for _, rule := range lint.GetAllRules() {
			if !enabledSet[rule.ID()] {
				lintCfg.Disable(rule.ID())
			}
		}
	}

	return lintCfg, nil
}

func renderLintResults(r *output.Renderer, results []engine.FileResult) bool {
	summary := engine.Summarize(results)

	if r.EffectiveMode() == output.ModeJSON {
		_ = r.JSON(toLintOutput(results, summary))
		return summary.Total > 0
	}

	if summary.Total == 0 {
		r.Success(fmt.Sprintf("No lint issues found in %d files", summary.Files))
		return false
	}

	for _, res := range results {
		if len(res.Diagnostics) == 0 {
			continue
		}
		r.Println(r.Styles().FilePath.Render(displayPath(res.Path)))
		for _, d := range res.Diagnostics {
			r.Printf("  %s  %s  %s  %s\n",
				r.Styles().Muted.Render(fmt.Sprintf("%-7s", d.Pos.String())),
				severityStyle(r, d.Severity),
				r.Styles().Bold.Render(d.RuleID),
				d.Message,
			)
		}
		r.Println("")
	}

	// Print summary
	summaryParts := []string{fmt.Sprintf("%d issues", summary.Total)}
	if summary.Errors > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d errors", summary.Errors))
	}
	if summary.Warnings > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d warnings", summary.Warnings))
	}
	if summary.Info > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d info", summary.Info))
	}
	if summary.Hints > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d hints", summary.Hints))
	}
	r.Printf("Summary: %s in %d files\n", strings.Join(summaryParts, ", "), summary.Files)

	return true
}

func toLintOutput(results []engine.FileResult, summary engine.Summary) output.LintOutput {
	out := output.LintOutput{
		Summary: output.LintSummary{
			FilesAnalyzed: summary.Files,
			FilesCached:   summary.Cached,
			TotalIssues:   summary.Total,
			Errors:        summary.Errors,
			Warnings:      summary.Warnings,
			Info:          summary.Info,
			Hints:         summary.Hints,
		},
		Files: []output.LintFileResult{},
	}
	for _, res := range results {
		if len(res.Diagnostics) == 0 {
			continue
		}
		fileResult := output.LintFileResult{Path: displayPath(res.Path)}
		for _, d := range res.Diagnostics {
			fileResult.Diagnostics = append(fileResult.Diagnostics, output.LintDiagnostic{
				RuleID:           d.RuleID,
				MessageID:        d.MessageID,
				Severity:         d.Severity.String(),
				Message:          d.Message,
				Line:             d.Pos.Line,
				Column:           d.Pos.Column,
				EndLine:          d.EndPos.Line,
				EndColumn:        d.EndPos.Column,
				DocumentationURL: d.DocumentationURL,
			})
		}
		out.Files = append(out.Files, fileResult)
	}
	return out
}

func severityStyle(r *output.Renderer, sev core.Severity) string {
	switch sev {
	case core.SeverityError:
		return r.Styles().Error.Render("error  ")
	case core.SeverityWarning:
		return r.Styles().Warning.Render("warning")
	case core.SeverityInfo:
		return r.Styles().Info.Render("info   ")
	case core.SeverityHint:
		return r.Styles().Hint.Render("hint   ")
	default:
		return r.Styles().Muted.Render("unknown")
	}
}

// displayPath shortens path to be relative to the working directory when it is inside it.
func displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func displayPaths(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = displayPath(p)
	}
	return out
}
