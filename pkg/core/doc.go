// Package core defines the shared language of jsxlint.
//
// This package contains:
//   - Severity levels and rule metadata DTOs (Severity, RuleInfo)
//   - Configuration types shared by the CLI, the engine and the LSP (LintConfig, CacheConfig)
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// All other packages depend on core, not the reverse.
package core
