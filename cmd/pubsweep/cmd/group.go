package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fluttertools/pubsweep/internal/category"
	"github.com/fluttertools/pubsweep/internal/manifest"
	"github.com/fluttertools/pubsweep/internal/tui/components"
)

// groupCmd represents the group command.
var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Group dependencies under category comments",
	Long: `Rewrite the dependency sections so entries are grouped under
"# Category" comment headers, sorted within each group.

Categories come from a local cache when available, then from the shared
category API, and finally from name-based heuristics, so grouping works
offline too. Running the command again regroups cleanly.

Note: any existing comments inside the dependency sections are replaced
by the generated category headers. Comments outside those sections are
untouched.

Examples:
  pubsweep group               # Group both sections
  pubsweep group --offline     # Skip the category API
  pubsweep group --yes         # Don't prompt for confirmation`,
	RunE: runGroup,
}

func init() {
	rootCmd.AddCommand(groupCmd)
	groupCmd.Flags().BoolP("yes", "y", false, "Don't prompt for confirmation")
	groupCmd.Flags().Bool("offline", false, "Resolve categories without the network")
}

// runGroup handles the group command.
func runGroup(cmd *cobra.Command, args []string) error {
	env, cleanup, err := setupEnvironment(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	offline, _ := cmd.Flags().GetBool("offline")
	skipPrompt, _ := cmd.Flags().GetBool("yes")

	m, err := manifest.Load(env.Project.ManifestPath, env.Config.Manifest.PrimarySection, env.Config.Manifest.DevSection)
	if err != nil {
		return err
	}

	names := manifest.SortedNames(append(append([]manifest.Dependency(nil), m.Primary...), m.Dev...))
	if len(names) == 0 {
		cmd.Println("No dependencies to group.")
		return nil
	}

	chain := buildCategoryChain(env, offline)

	var categories map[string]string
	resolve := func() error {
		categories = chain.Resolve(context.Background(), names)
		return nil
	}
	if useColor(cmd, env.Config) {
		// An interrupt aborts before the backup: the abandoned resolve may
		// still be writing the captured map.
		if err := components.RunWithSpinner("Resolving categories...", resolve); err != nil {
			if errors.Is(err, components.ErrInterrupted) {
				cmd.Println("Cancelled, nothing was modified.")
				return nil
			}
			return err
		}
	} else if err := resolve(); err != nil {
		return err
	}

	if !skipPrompt {
		message := fmt.Sprintf("Rewrite dependency sections of %s with category groups?", env.Project.ManifestPath)
		if !components.Confirm("Group dependencies?", message, false) {
			cmd.Println("Cancelled, nothing was modified.")
			return nil
		}
	}

	backup := manifest.NewBackup(m.Path, env.Config.Manifest.BackupSuffix)
	if !backup.Create() {
		return fmt.Errorf("could not back up %s, aborting", m.Path)
	}

	editor := manifest.NewEditor(m.Lines(), m.PrimaryKey, m.DevKey)
	grouped := 0
	if editor.GroupSection(m.PrimaryKey, categories, category.FallbackCategory) {
		grouped++
	}
	if editor.GroupSection(m.DevKey, categories, category.FallbackCategory) {
		grouped++
	}

	if grouped == 0 {
		backup.Remove()
		cmd.Println("No dependency sections found to group.")
		return nil
	}

	if err := m.WriteBack(editor.Lines()); err != nil {
		if !backup.Restore() {
			return fmt.Errorf("write failed and restore failed, manual copy at %s: %w", backup.Path(), err)
		}
		return err
	}

	backup.Remove()
	cmd.Printf("✓ Grouped %d section(s) in %s\n", grouped, env.Project.ManifestPath)
	return nil
}

// buildCategoryChain assembles the cache / remote / heuristic resolver from
// configuration. Offline mode drops the remote layer.
func buildCategoryChain(env *environment, offline bool) *category.Chain {
	cachePath := env.Config.Categories.CachePath
	if !filepath.IsAbs(cachePath) {
		cachePath = filepath.Join(env.Project.Path, cachePath)
	}
	cache := category.NewCache(cachePath)

	var remote *category.Remote
	if !offline && env.Config.Categories.APIURL != "" {
		remote = category.NewRemote(env.Config.Categories.APIURL, env.Config.Categories.Timeout, env.Config.Categories.Publish)
	}

	return category.NewChain(cache, remote, category.NewHeuristic())
}
