package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/jsxlint/internal/cli/config"
)

// ConfigField represents a configuration field definition.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Env         string
	Description string
	Category    string // "general", "lint", "cache"
}

// generateConfigDocs generates the configuration reference.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := generateConfigurationDoc(outDir); err != nil {
		return fmt.Errorf("failed to generate configuration.md: %w", err)
	}
	log.Printf("  Generated configuration.md")

	return nil
}

// getConfigSchema returns the fields of .jsxlint.yaml.
// This is based on internal/cli/config/types.go Config.
func getConfigSchema() []ConfigField {
	def := config.Default()
	env := func(key string) string { return config.EnvPrefix + strings.ToUpper(key) }

	return []ConfigField{
		{Name: "include", Type: "[]string", Default: "-", Description: "Glob patterns a file must match to be linted", Category: "general"},
		{Name: "ignore", Type: "[]string", Default: "-", Description: "Glob patterns for files and directories to skip", Category: "general"},
		{Name: "concurrency", Type: "int", Default: "0", Env: env("concurrency"), Description: "Files linted in parallel; 0 uses the number of CPUs", Category: "general"},
		{Name: "output", Type: "string", Default: def.OutputFormat, Env: env("output"), Description: "Output format: auto, text, markdown, json", Category: "general"},
		{Name: "verbose", Type: "bool", Default: "false", Env: env("verbose"), Description: "Enable debug logging", Category: "general"},
		{Name: "log_level", Type: "string", Default: def.LogLevel, Env: env("log_level"), Description: "Log level: debug, info, warn, error", Category: "general"},
		{Name: "syntax_check", Type: "bool", Default: fmt.Sprint(def.SyntaxCheck), Env: env("syntax_check"), Description: "Report parse errors as diagnostics", Category: "general"},
		{Name: "docs_url", Type: "string", Default: "-", Env: env("docs_url"), Description: "Base URL for rule documentation links", Category: "general"},

		{Name: "disabled", Type: "[]string", Default: "-", Description: "Rule IDs or names to turn off", Category: "lint"},
		{Name: "severity", Type: "map[string]string", Default: "-", Description: "Per-rule severity: error, warning, info, hint", Category: "lint"},
		{Name: "rules", Type: "map[string]map[string]any", Default: "-", Description: "Rule-specific options keyed by rule ID", Category: "lint"},

		{Name: "enabled", Type: "bool", Default: fmt.Sprint(def.Cache.Enabled), Env: env("cache_enabled"), Description: "Reuse results for unchanged files", Category: "cache"},
		{Name: "path", Type: "string", Default: def.Cache.Path, Env: env("cache_path"), Description: "SQLite cache location, relative to the project root", Category: "cache"},
	}
}

// generateConfigurationDoc generates the configuration reference page.
func generateConfigurationDoc(outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Configuration", "jsxlint configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph(fmt.Sprintf("jsxlint reads %s from the working directory or the nearest parent. "+
		"Settings are resolved in this order: flags, environment variables, the config file, then defaults.",
		InlineCode(config.ConfigFileNames[0])))

	fields := getConfigSchema()
	sections := []struct {
		category, title, intro string
	}{
		{"general", "General Settings", "Top-level keys:"},
		{"lint", "Lint Settings", "Rule configuration lives under the `lint` key:"},
		{"cache", "Cache Settings", "The result cache lives under the `cache` key:"},
	}

	for _, sec := range sections {
		w.Header(2, sec.title)
		w.Paragraph(sec.intro)

		var rows [][]string
		for _, f := range fields {
			if f.Category != sec.category {
				continue
			}
			envVar := "-"
			if f.Env != "" {
				envVar = InlineCode(f.Env)
			}
			rows = append(rows, []string{InlineCode(f.Name), f.Type, InlineCode(f.Default), envVar, f.Description})
		}
		w.Table([]string{"Field", "Type", "Default", "Environment", "Description"}, rows)
	}

	example, err := exampleConfig()
	if err != nil {
		return err
	}
	w.Header(2, "Example")
	w.CodeBlock("yaml", example)

	return os.WriteFile(filepath.Join(outDir, "configuration.md"), w.Bytes(), 0600)
}

// exampleConfig renders a complete config file from the defaults.
func exampleConfig() (string, error) {
	cfg := config.Default()
	cfg.Ignore = config.DefaultIgnore
	cfg.Lint.Severity = map[string]string{"NX01": "warning"}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return "", fmt.Errorf("failed to encode example config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
