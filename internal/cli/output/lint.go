package output

// LintOutput is the JSON document produced by the lint command.
type LintOutput struct {
	Summary LintSummary      `json:"summary"`
	Files   []LintFileResult `json:"files"`
}

// LintSummary counts lint findings across all analyzed files.
type LintSummary struct {
	FilesAnalyzed int `json:"files_analyzed"`
	FilesCached   int `json:"files_cached"`
	TotalIssues   int `json:"total_issues"`
	Errors        int `json:"errors"`
	Warnings      int `json:"warnings"`
	Info          int `json:"info"`
	Hints         int `json:"hints"`
}

// LintFileResult holds the diagnostics of one file.
type LintFileResult struct {
	Path        string           `json:"path"`
	Diagnostics []LintDiagnostic `json:"diagnostics"`
}

// LintDiagnostic is a single finding.
type LintDiagnostic struct {
	RuleID           string `json:"rule_id"`
	MessageID        string `json:"message_id,omitempty"`
	Severity         string `json:"severity"`
	Message          string `json:"message"`
	Line             int    `json:"line"`
	Column           int    `json:"column"`
	EndLine          int    `json:"end_line,omitempty"`
	EndColumn        int    `json:"end_column,omitempty"`
	DocumentationURL string `json:"documentation_url,omitempty"`
}

// RulesOutput is the JSON document produced by the rules command.
type RulesOutput struct {
	Rules []RuleInfo `json:"rules"`
}

// RuleInfo describes one registered rule.
type RuleInfo struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Group            string            `json:"group"`
	Description      string            `json:"description"`
	Severity         string            `json:"severity"`
	Type             string            `json:"type,omitempty"`
	Category         string            `json:"category,omitempty"`
	Recommended      bool              `json:"recommended"`
	Messages         map[string]string `json:"messages,omitempty"`
	DocumentationURL string            `json:"documentation_url"`
}
