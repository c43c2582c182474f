package commands

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/jsxlint/internal/cli/config"
)

// executeCommand runs cmd standalone with captured output. Without a loaded
// config the commands fall back to defaults plus JSXLINT_ env vars.
func executeCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

// noCache keeps command tests from writing a cache into the package directory.
func noCache(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvPrefix+"CACHE_ENABLED", "false")
}
