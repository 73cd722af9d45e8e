package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fluttertools/pubsweep/internal/analyzer"
	"github.com/fluttertools/pubsweep/internal/config"
	"github.com/fluttertools/pubsweep/internal/manifest"
	"github.com/fluttertools/pubsweep/internal/scanner"
	"github.com/fluttertools/pubsweep/internal/tui"
)

// analyzeCmd represents the analyze command.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze pubspec.yaml dependency usage",
	Long: `Analyze which declared dependencies the project actually imports.

Scans lib/, test/, bin/ and tool/ for package: imports and classifies
every entry in dependencies and dev_dependencies as used, test-only or
unused. Nothing is modified; run 'pubsweep clean' to apply fixes.

Examples:
  pubsweep analyze                 # Report for the nearest project
  pubsweep analyze --dir ./app     # Analyze a specific project
  pubsweep analyze --format json   # Machine-readable output
  pubsweep analyze --strict        # Exit non-zero when fixes are needed`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringP("format", "f", "", "Output format: pretty, plain or json")
	analyzeCmd.Flags().Bool("strict", false, "Exit with status 1 when anything needs fixing (for CI)")
}

// runAnalyze handles the analyze command. Also the root command's behavior.
func runAnalyze(cmd *cobra.Command, args []string) error {
	env, cleanup, err := setupEnvironment(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	go checkUpdateBackground(cmd, env.Project.Path)

	result, _, err := analyzeProject(env)
	if err != nil {
		return err
	}

	if err := renderResult(cmd, env, result); err != nil {
		return err
	}

	if strict, _ := cmd.Flags().GetBool("strict"); strict && result.NeedsAction() {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("dependency issues found")
	}
	return nil
}

// analyzeProject loads the manifest, scans the source roots and classifies
// every declaration. Returned alongside the result so callers that edit the
// manifest can reuse the loaded line buffer.
func analyzeProject(env *environment) (*analyzer.Result, *manifest.Manifest, error) {
	m, err := manifest.Load(env.Project.ManifestPath, env.Config.Manifest.PrimarySection, env.Config.Manifest.DevSection)
	if err != nil {
		return nil, nil, err
	}

	sc := scanner.New(env.Config.Scan)
	usage, err := sc.Scan(env.Project.Path)
	if err != nil {
		return nil, nil, err
	}

	a := analyzer.New(env.Config.Scan.Exclude)
	return a.Analyze(m, usage), m, nil
}

// renderResult writes the analysis report in the configured format.
func renderResult(cmd *cobra.Command, env *environment, result *analyzer.Result) error {
	format := env.Config.Output.Format
	if f, _ := cmd.Flags().GetString("format"); f != "" {
		format = config.OutputFormat(f)
	}

	switch format {
	case config.OutputFormatJSON:
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case config.OutputFormatPlain:
		report := tui.NewReport(false)
		fmt.Fprint(cmd.OutOrStdout(), report.Render(env.Project.Name, result))
		return nil
	case config.OutputFormatPretty, "":
		report := tui.NewReport(useColor(cmd, env.Config))
		fmt.Fprint(cmd.OutOrStdout(), report.Render(env.Project.Name, result))
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
