// Package cmd provides the CLI commands for pubsweep.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/fluttertools/pubsweep/internal/config"
	"github.com/fluttertools/pubsweep/internal/logging"
	"github.com/fluttertools/pubsweep/internal/project"
	"github.com/fluttertools/pubsweep/internal/version"
)

// Version information - set via ldflags at build time in main.go.
// These are exported so main.go can set them before Execute().
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pubsweep",
	Short: "Clean up pubspec.yaml dependencies",
	Long: `pubsweep analyzes a Dart or Flutter project and reports which declared
dependencies are unused, declared in the wrong section, or duplicated
between dependencies and dev_dependencies.

It edits pubspec.yaml line by line, so comments, blank lines and the
order of everything it does not touch are preserved byte for byte.`,
	// pubsweep with no subcommand analyzes, same as "pubsweep analyze".
	RunE: runAnalyze,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default .pubsweep/config.yaml)")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Project directory (default: nearest pubspec.yaml upward from cwd)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
	rootCmd.SetVersionTemplate("pubsweep {{.Version}}\n")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Root returns the root command for testing purposes.
func Root() *cobra.Command {
	return rootCmd
}

// environment bundles everything a command needs to operate on a project.
type environment struct {
	Config  *config.Config
	Project *project.Info
}

// setupEnvironment resolves the project directory, loads configuration and
// initializes file logging. The logging handle is closed by the returned
// cleanup function.
func setupEnvironment(cmd *cobra.Command) (*environment, func(), error) {
	cleanup := func() {}

	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}

	detector := project.NewDetector()
	info, err := detector.FindProject(dir)
	if err != nil {
		return nil, cleanup, err
	}
	if info == nil {
		return nil, cleanup, fmt.Errorf("no pubspec.yaml found in %s or any parent directory", dir)
	}

	configPath, _ := cmd.Flags().GetString("config")
	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadFromDir(info.Path)
	}
	if err != nil {
		return nil, cleanup, err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	logLevel := logging.LevelInfo
	if verbose {
		logLevel = logging.LevelDebug
	}
	logConfig := &logging.Config{
		Level:       logLevel,
		LogDir:      filepath.Join(info.Path, ".pubsweep", "logs"),
		MaxLogFiles: 10,
		MaxLogAge:   7 * 24 * time.Hour,
		Console:     false,
		JSONFormat:  false,
	}
	if err := logging.InitGlobal(logConfig); err != nil {
		// Non-fatal: warn but continue without file logging
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to initialize logging: %v\n", err)
	} else {
		cleanup = func() { _ = logging.CloseGlobal() }
		logging.Info("pubsweep starting", "version", Version, "project", info.Name, "verbose", verbose)
	}

	return &environment{Config: cfg, Project: info}, cleanup, nil
}

// useColor reports whether styled output is wanted: the config allows it,
// --no-color is absent, and stdout looks like a terminal is not checked here
// because cobra commands may have their output redirected in tests.
func useColor(cmd *cobra.Command, cfg *config.Config) bool {
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return cfg.Output.Color && cfg.Output.Format == config.OutputFormatPretty
}

// checkUpdateBackground pings the release API at most once per day and
// prints a short notice when a newer version exists. Failures are silent.
func checkUpdateBackground(cmd *cobra.Command, projectDir string) {
	if !version.ShouldCheck(projectDir) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	checker := version.NewChecker()
	release, err := checker.CheckForUpdate(ctx, Version)
	if err != nil {
		logging.Debug("background update check failed", "error", err)
		return
	}

	latest := ""
	if release != nil {
		latest = release.TagName
		fmt.Fprintf(cmd.ErrOrStderr(), "\nA new version of pubsweep is available: %s (current: %s)\nRun 'pubsweep update' to install.\n", release.TagName, Version)
	}
	if err := version.RecordCheck(projectDir, latest); err != nil {
		logging.Debug("failed to record update check", "error", err)
	}
}
