package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrison/bundler/internal/config"
	"github.com/harrison/bundler/internal/policy"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for bundler.
// Running it without a subcommand bundles the project.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundler [root]",
		Short: "Bundle a project's source files into one text document",
		Long: `Bundler walks a project directory and concatenates its source files into a
single document, each file preceded by a header naming its relative path.

Dependency directories (node_modules, .git, dist, ...), lockfiles and secret
files (.env, .env.local, .env.production) are always left out.

The root defaults to the current directory. The output is rebuilt from
scratch on every run.

Configuration is loaded from <root>/.bundler/config.yaml if present.
CLI flags override configuration file settings.

Examples:
  bundler                          # bundle . into project_bundle.txt
  bundler ./web -o web_bundle.txt  # bundle another directory
  bundler --ext .go --ext .sql     # also include Go and SQL files
  bundler --ignore-dir fixtures    # prune another directory
  bundler list                     # show what would be bundled`,
		Version: Version,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runBundle,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringP("output", "o", "", "Output file (default: project_bundle.txt)")
	flags.String("config", "", "Path to config file (default: <root>/.bundler/config.yaml)")
	flags.String("log-level", "", "Log level: trace, debug, info, warn, error")
	flags.String("log-dir", "", "Directory for per-run log files")
	flags.String("report", "", "Write a YAML run report to this path")
	flags.StringSlice("ext", nil, "Additional file extensions to include (repeatable)")
	flags.StringSlice("ignore-dir", nil, "Additional directory names to skip (repeatable)")
	flags.StringSlice("ignore-file", nil, "Additional file names to skip (repeatable)")

	cmd.AddCommand(NewListCommand())

	return cmd
}

// rootArg returns the project root from positional args.
func rootArg(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return "."
}

// loadSettings resolves configuration (defaults < file < flags) and builds
// the policy for a run rooted at root.
func loadSettings(cmd *cobra.Command, root string) (*config.Config, policy.Policy, error) {
	configFlag, _ := cmd.Flags().GetString("config")
	configPath := config.ResolveConfigPath(root, configFlag)

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, policy.Policy{}, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	cfg.MergeWithFlags(
		changedString(cmd, "output"),
		changedString(cmd, "log-level"),
		changedString(cmd, "log-dir"),
		changedString(cmd, "report"),
	)

	if err := cfg.Validate(); err != nil {
		return nil, policy.Policy{}, fmt.Errorf("invalid configuration: %w", err)
	}

	extraExt, _ := cmd.Flags().GetStringSlice("ext")
	extraDirs, _ := cmd.Flags().GetStringSlice("ignore-dir")
	extraFiles, _ := cmd.Flags().GetStringSlice("ignore-file")

	p := policy.Default(selfName(), filepath.Base(cfg.Output)).With(extraExt, extraDirs, extraFiles)
	return cfg, p, nil
}

// changedString returns a pointer to the flag value only if the user set it.
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, _ := cmd.Flags().GetString(name)
	return &value
}

// selfName is the basename of the running executable, which a run never
// bundles.
func selfName() string {
	exe, err := os.Executable()
	if err != nil {
		return filepath.Base(os.Args[0])
	}
	return filepath.Base(exe)
}
