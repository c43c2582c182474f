// Package rules provides the lint rule implementations shipped with jsxlint.
//
// Rules are organized by group:
//   - next: Rules for Next.js components (NX01)
//
// To register all rules with the global lint registry, import this package
// with a blank identifier:
//
//	import _ "github.com/leapstack-labs/jsxlint/pkg/lint/rules"
//
// Individual groups can also be imported:
//
//	import _ "github.com/leapstack-labs/jsxlint/pkg/lint/rules/next"
package rules
