package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/onering/catalog"
	"github.com/s0up4200/onering/config"
	"github.com/s0up4200/onering/theoneapi"
)

var (
	listFlags pagingFlags
	preset    string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list [resource]",
	Short: "List movies, characters, books, chapters or quotes",
	Long: `List one page of a collection, or every page with --all.

Resources: movie, character, book, chapter, quote (singular or plural).

Examples:
  onering list movies --sort academyAwardWins:desc
  onering list characters --filter race=Hobbit,Elf --limit 20
  onering list characters --all --where 'hasValue(spouse) && race == "Hobbit"'
  onering list --preset hobbits`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listFlags.register(listCmd)
	listCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a saved query from config")
}

func runList(cmd *cobra.Command, args []string) error {
	name := ""
	if len(args) == 1 {
		name = args[0]
	}

	flags := listFlags
	if preset != "" {
		var err error
		name, flags, err = applyPreset(cmd, preset, name, flags)
		if err != nil {
			return err
		}
	}

	if name == "" {
		return fmt.Errorf("a resource is required, one of: movie, character, book, chapter, quote")
	}
	resource, err := catalog.ParseResource(name)
	if err != nil {
		return err
	}

	logger.Debug().Str("resource", string(resource)).Bool("all", flags.all).Msg("Listing documents")

	ctx := cmd.Context()
	page, err := flags.fetch(ctx, resource,
		func(opts *theoneapi.RequestOptions) (*catalog.Page, error) {
			return operations.List(ctx, resource, opts)
		},
		func(opts theoneapi.RequestOptions) ([]theoneapi.Document, error) {
			return operations.All(ctx, resource, opts)
		},
	)
	if err != nil {
		return fmt.Errorf("list %s: %w", resource.Plural(), err)
	}

	return printPage(cmd.OutOrStdout(), page, !flags.all)
}

// applyPreset merges a config preset under the flags set on the command line
func applyPreset(cmd *cobra.Command, name, resource string, flags pagingFlags) (string, pagingFlags, error) {
	p, ok := cfg.Presets[name]
	if !ok {
		return "", flags, fmt.Errorf("preset '%s' not found in config", name)
	}

	logger.Debug().Str("preset", name).Str("resource", p.Resource).Msg("Using preset")

	resource, flags = mergePreset(p, resource, flags, cmd.Flags().Changed)
	if !cmd.Flags().Changed("where") {
		if compiled, ok := presetFilters.GetFilter(name); ok {
			flags.compiled = compiled
		}
	}
	return resource, flags, nil
}

func mergePreset(p config.PresetConfig, resource string, flags pagingFlags, changed func(string) bool) (string, pagingFlags) {
	if resource == "" {
		resource = p.Resource
	}
	if !changed("sort") && p.Sort != "" {
		flags.sort = p.Sort
	}
	if !changed("limit") && p.Limit > 0 {
		flags.limit = p.Limit
	}
	if !changed("where") && p.Where != "" {
		flags.where = p.Where
	}

	// A key given by both is rejected by ParseFilters
	if len(p.Filter) > 0 {
		merged := make([]string, 0, len(p.Filter)+len(flags.filters))
		merged = append(merged, p.Filter...)
		flags.filters = append(merged, flags.filters...)
	}

	return resource, flags
}
