package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/jsxlint/internal/lsp"
)

// NewLSPCommand creates the lsp command.
func NewLSPCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start the LSP server for IDE integration.

The server communicates over stdin/stdout using JSON-RPC and publishes
diagnostics for open .js, .jsx, .ts and .tsx documents on open, change
and save. Settings come from the .jsxlint.yaml of the working directory.`,
		Example: `  # Start LSP server (usually called by an IDE)
  jsxlint lsp`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLSP(cmd, version)
		},
	}

	return cmd
}

func runLSP(cmd *cobra.Command, version string) error {
	// LintSource never consults the result cache, so it is not opened.
	cmdCtx, cleanup, err := NewCommandContext(cmd, engineOptions{Cacheless: true})
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	server := lsp.NewServer(lsp.Config{
		Linter:  cmdCtx.Engine,
		Version: version,
		Logger:  cmdCtx.Logger,
	})
	return server.Run(ctx)
}
