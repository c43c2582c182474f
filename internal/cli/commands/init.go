package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/jsxlint/internal/cli/config"
)

const configHeader = `# jsxlint configuration
#
# Rules can be disabled or given a different severity:
#
#   lint:
#     disabled: [NX01]
#     severity:
#       NX01: warning
#
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a .jsxlint.yaml configuration file",
		Long: `Create a .jsxlint.yaml file with the default settings.

The directory holding the file becomes the project root: jsxlint lint with no
arguments lints it, and the result cache is stored beneath it.`,
		Example: `  # Initialize in current directory
  jsxlint init

  # Initialize in another directory
  jsxlint init ./web

  # Force overwrite existing config
  jsxlint init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	r := NewCommandContextWithoutEngine(cmd).Renderer

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	configPath := filepath.Join(dir, config.ConfigFileNames[0])
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", config.ConfigFileNames[0])
	}

	content, err := defaultConfigYAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(configPath, content, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	r.StatusLine(configPath, "success", "")
	r.Println("")
	r.Success("jsxlint project initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Run 'jsxlint lint' to lint the project")
	r.Println("  2. Run 'jsxlint rules' to see the available rules")
	r.Println("  3. Add " + cacheIgnoreHint() + " to .gitignore")

	return nil
}

// defaultConfigYAML renders the default config with a comment header.
func defaultConfigYAML() ([]byte, error) {
	cfg := config.Default()
	cfg.Ignore = config.DefaultIgnore

	var buf bytes.Buffer
	buf.WriteString(configHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}

	return buf.Bytes(), nil
}

func cacheIgnoreHint() string {
	return filepath.Dir(config.DefaultCacheFile) + "/"
}
