package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fluttertools/pubsweep/internal/analyzer"
	"github.com/fluttertools/pubsweep/internal/manifest"
	"github.com/fluttertools/pubsweep/internal/tui/components"
)

// cleanCmd represents the clean command.
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove unused and fix misplaced dependencies",
	Long: `Apply the fixes reported by 'pubsweep analyze' to pubspec.yaml.

Unused dependencies are removed, test-only dependencies move to
dev_dependencies, runtime-used dev entries move to dependencies, and
duplicated declarations keep only their recommended copy. The manifest is
backed up first and every untouched line survives byte for byte.

Examples:
  pubsweep clean              # Prompt, then apply all fixes
  pubsweep clean --yes        # Apply without prompting
  pubsweep clean --dry-run    # Show the plan, change nothing
  pubsweep clean --no-moves   # Only remove, never relocate
  pubsweep clean --no-remove  # Only relocate, never remove`,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().BoolP("yes", "y", false, "Don't prompt for confirmation")
	cleanCmd.Flags().Bool("dry-run", false, "Show planned changes without applying them")
	cleanCmd.Flags().Bool("no-remove", false, "Only move misplaced entries, don't remove anything")
	cleanCmd.Flags().Bool("no-moves", false, "Only remove unused entries, don't move anything")
	cleanCmd.Flags().Bool("keep-duplicates", false, "Leave duplicated declarations alone")
}

// runClean handles the clean command.
func runClean(cmd *cobra.Command, args []string) error {
	env, cleanup, err := setupEnvironment(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	skipPrompt, _ := cmd.Flags().GetBool("yes")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	noRemove, _ := cmd.Flags().GetBool("no-remove")
	noMoves, _ := cmd.Flags().GetBool("no-moves")
	keepDups, _ := cmd.Flags().GetBool("keep-duplicates")

	result, m, err := analyzeProject(env)
	if err != nil {
		return err
	}

	opts := analyzer.PlanAll()
	opts.RemoveUnused = !noRemove
	opts.MoveMisplaced = !noMoves
	opts.ResolveDuplicates = !keepDups

	changes := analyzer.Plan(result, opts)
	if len(changes) == 0 {
		cmd.Println("✓ Nothing to clean, pubspec.yaml is in order.")
		return nil
	}

	cmd.Println("Planned changes:")
	for _, ch := range changes {
		cmd.Printf("  • %s: %s\n", ch.Kind, ch.Name)
	}

	if dryRun {
		cmd.Println("\nDry run, nothing was modified.")
		return nil
	}

	if !skipPrompt {
		message := fmt.Sprintf("Apply %d change(s) to %s?", len(changes), env.Project.ManifestPath)
		if !components.Confirm("Clean pubspec.yaml?", message, containsRemoval(changes)) {
			cmd.Println("Cancelled, nothing was modified.")
			return nil
		}
	}

	applied, err := applyChanges(env, m, changes)
	if err != nil {
		return err
	}

	cmd.Printf("\n✓ Applied %d change(s) to %s\n", applied, env.Project.ManifestPath)
	return nil
}

// applyChanges runs the edit batch under backup protection: backup first,
// restore on write failure.
func applyChanges(env *environment, m *manifest.Manifest, changes []manifest.Change) (int, error) {
	backup := manifest.NewBackup(m.Path, env.Config.Manifest.BackupSuffix)
	if !backup.Create() {
		return 0, fmt.Errorf("could not back up %s, aborting", m.Path)
	}

	editor := manifest.NewEditor(m.Lines(), m.PrimaryKey, m.DevKey)
	applied := editor.Apply(changes)

	if err := m.WriteBack(editor.Lines()); err != nil {
		if !backup.Restore() {
			return 0, fmt.Errorf("write failed and restore failed, manual copy at %s: %w", backup.Path(), err)
		}
		return 0, err
	}

	backup.Remove()
	return applied, nil
}

// containsRemoval reports whether the plan deletes anything outright, which
// makes the confirmation prompt destructive.
func containsRemoval(changes []manifest.Change) bool {
	for _, ch := range changes {
		if strings.HasPrefix(ch.Kind.String(), "remove") {
			return true
		}
	}
	return false
}
