package engine

import "github.com/leapstack-labs/jsxlint/pkg/core"

// Summary counts diagnostics by severity.
type Summary struct {
	Files    int
	Total    int
	Errors   int
	Warnings int
	Info     int
	Hints    int
	Cached   int
}

// Summarize tallies results.
func Summarize(results []FileResult) Summary {
	s := Summary{Files: len(results)}
	for _, r := range results {
		if r.Cached {
			s.Cached++
		}
		for _, d := range r.Diagnostics {
			s.Total++
			switch d.Severity {
			case core.SeverityError:
				s.Errors++
			case core.SeverityWarning:
				s.Warnings++
			case core.SeverityInfo:
				s.Info++
			case core.SeverityHint:
				s.Hints++
			}
		}
	}
	return s
}

// FilterBySeverity keeps diagnostics at or above threshold. Severities are ordered
// error < warning < info < hint, so "at or above" means a value <= threshold.
// Files keep their entry even when all diagnostics are filtered out.
func FilterBySeverity(results []FileResult, threshold core.Severity) []FileResult {
	out := make([]FileResult, len(results))
	for i, r := range results {
		out[i] = FileResult{Path: r.Path, Cached: r.Cached}
		for _, d := range r.Diagnostics {
			if d.Severity <= threshold {
				out[i].Diagnostics = append(out[i].Diagnostics, d)
			}
		}
	}
	return out
}
