// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/aidanlsb/projrename/internal/config"
	"github.com/aidanlsb/projrename/internal/fsys"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// Resolved values
	resolvedConfigPath string
	cfg                *config.Config
	logger             = log.New(os.Stderr)
)

// newFileSystem returns the storage the rename runs against.
var newFileSystem = func() fsys.FileSystem { return fsys.OS{} }

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "projrename [flags] [relative-path/]original-name new-name",
	Short: "Rename a project inside a Visual Studio solution",
	Long: `projrename renames a project folder, its project file, the identity
metadata inside them, and the solution entry that points at it.

Every precondition is checked before anything is touched. Nothing is rolled
back if a step fails, so make a backup first.`,
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that must work with a missing or broken config.
		switch cmd.Name() {
		case "completion", "help", "version", "path", "init":
			return nil
		}

		var err error
		cfg, resolvedConfigPath, err = loadGlobalConfigWithPath()
		if err != nil {
			return handleError(ErrConfigInvalid, fmt.Errorf("failed to load config: %w", err),
				"Run 'projrename config path' to locate the file")
		}

		logger, err = newLogger(cfg.GetLogLevel(), verbose)
		if err != nil {
			return handleError(ErrConfigInvalid, err, "Use one of debug, info, warn, error")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRename(args, renameOptions{
			skipConfirm: skipConfirm,
			dryRun:      dryRun,
		})
	},
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	reportToStderr(err)
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for script use)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every check and step")

	rootCmd.Flags().BoolVarP(&skipConfirm, "skip-confirm", "s", false, "Do not ask for a backup confirmation")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Verify and show the plan without changing anything")
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	if cfg == nil {
		return &config.Config{}
	}
	return cfg
}

// getConfigPath returns the resolved global config path.
func getConfigPath() string {
	if resolvedConfigPath == "" {
		return config.ResolveConfigPath(configPath)
	}
	return resolvedConfigPath
}

func loadGlobalConfigWithPath() (*config.Config, string, error) {
	resolvedPath := config.ResolveConfigPath(configPath)

	var loadedCfg *config.Config
	var err error
	if strings.TrimSpace(configPath) != "" {
		loadedCfg, err = config.LoadFrom(configPath)
	} else {
		loadedCfg, err = config.Load()
	}
	if err != nil {
		return nil, "", err
	}
	if loadedCfg == nil {
		loadedCfg = &config.Config{}
	}

	return loadedCfg, resolvedPath, nil
}

func newLogger(level string, verbose bool) (*log.Logger, error) {
	lvl := log.DebugLevel
	if !verbose {
		var err error
		lvl, err = log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log_level %q", level)
		}
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "projrename",
		Level:  lvl,
	}), nil
}
