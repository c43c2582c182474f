// Package engine runs the lint pipeline over files: read, cache lookup, syntax check,
// parse, analyze, cache store. Files are linted in parallel; each file gets its own
// rule state.
package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"strings"

	"github.com/leapstack-labs/jsxlint/internal/cache"
	"github.com/leapstack-labs/jsxlint/pkg/jsx/parser"
	"github.com/leapstack-labs/jsxlint/pkg/lint"
)

// hashVersion is mixed into the config hash; bump it when analysis output changes shape.
const hashVersion = "jsxlint/1"

// Engine lints JavaScript and TypeScript files.
type Engine struct {
	analyzer    *lint.Analyzer
	parser      *parser.Parser
	cache       *cache.Cache
	syntaxCheck bool
	concurrency int
	configHash  string
	logger      *slog.Logger
}

// Config holds engine configuration.
type Config struct {
	// Lint carries disabled rules, severity overrides and rule options.
	Lint *lint.Config
	// Rules overrides the global rule registry when non-empty.
	Rules []lint.Rule
	// CachePath is the SQLite result cache location; empty disables caching.
	CachePath string
	// SyntaxCheck reports esbuild syntax errors alongside rule diagnostics.
	SyntaxCheck bool
	// Concurrency caps parallel file processing; zero or less uses runtime.NumCPU().
	Concurrency int
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates an engine. When CachePath is set the cache is opened and migrated.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	lintCfg := cfg.Lint
	if lintCfg == nil {
		lintCfg = lint.NewConfig()
	}

	var analyzer *lint.Analyzer
	if len(cfg.Rules) > 0 {
		analyzer = lint.NewAnalyzerWithRules(lintCfg, cfg.Rules...)
	} else {
		analyzer = lint.NewAnalyzer(lintCfg)
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	e := &Engine{
		analyzer:    analyzer,
		parser:      parser.New(logger),
		syntaxCheck: cfg.SyntaxCheck,
		concurrency: concurrency,
		logger:      logger,
	}
	e.configHash = e.computeConfigHash()

	logger.Debug("initializing engine",
		"rules", len(analyzer.Rules()),
		"concurrency", concurrency,
		"syntax_check", cfg.SyntaxCheck,
		"cache", cfg.CachePath,
	)

	if cfg.CachePath != "" {
		c, err := cache.OpenAndMigrate(cfg.CachePath, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open lint cache: %w", err)
		}
		e.cache = c
	}

	return e, nil
}

// Close releases the cache, if any.
func (e *Engine) Close() error {
	if e.cache == nil {
		return nil
	}
	return e.cache.Close()
}

// Analyzer returns the analyzer the engine runs.
func (e *Engine) Analyzer() *lint.Analyzer {
	return e.analyzer
}

// Cache returns the result cache, or nil when caching is disabled.
func (e *Engine) Cache() *cache.Cache {
	return e.cache
}

// ConfigHash identifies the effective rule configuration.
// Cached results are reused only under the same hash.
func (e *Engine) ConfigHash() string {
	return e.configHash
}

type ruleFingerprint struct {
	ID       string         `json:"id"`
	Severity string         `json:"severity"`
	Options  map[string]any `json:"options,omitempty"`
}

func (e *Engine) computeConfigHash() string {
	cfg := e.analyzer.Config()
	rules := e.analyzer.Rules()

	prints := make([]ruleFingerprint, 0, len(rules))
	for _, r := range rules {
		prints = append(prints, ruleFingerprint{
			ID:       r.ID(),
			Severity: cfg.GetSeverity(r.ID(), r.DefaultSeverity()).String(),
			Options:  cfg.GetRuleOptions(r.ID()),
		})
	}
	slices.SortFunc(prints, func(a, b ruleFingerprint) int {
		return strings.Compare(a.ID, b.ID)
	})

	payload, err := json.Marshal(struct {
		Version     string            `json:"version"`
		SyntaxCheck bool              `json:"syntax_check"`
		DocsBaseURL string            `json:"docs_base_url"`
		Rules       []ruleFingerprint `json:"rules"`
	}{hashVersion, e.syntaxCheck, lint.DocsBaseURL, prints})
	if err != nil {
		// Unencodable rule options; never reuse cached results.
		e.logger.Warn("failed to hash lint configuration", "error", err)
		return ""
	}

	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
