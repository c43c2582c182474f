// Package lint hosts lint rules for JSX and TSX sources.
//
// A rule is a stateful visitor: for every file the Analyzer calls Rule.Create with a
// fresh RuleContext, merges the returned jsx.Visitor callbacks with those of the other
// enabled rules, and walks the file once in document order. Rules report findings
// through RuleContext.Report using message ids declared in their RuleMeta.
//
// Rule implementations live in pkg/lint/rules and register themselves from init().
package lint
