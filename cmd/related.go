package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/onering/catalog"
	"github.com/s0up4200/onering/theoneapi"
)

var (
	quotesFlags   pagingFlags
	chaptersFlags pagingFlags
)

// quotesCmd represents the quotes command
var quotesCmd = &cobra.Command{
	Use:   "quotes <movie|character> <id>",
	Short: "List quotes of a movie or character",
	Long: `List the quotes spoken in a movie or by a character.

Examples:
  onering quotes movie 5cd95395de30eff6ebccde5d --limit 10
  onering quotes character 5cd99d4bde30eff6ebccfea0 --all`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		resource, err := catalog.ParseResource(args[0])
		if err != nil {
			return err
		}
		if resource != catalog.ResourceMovie && resource != catalog.ResourceCharacter {
			return fmt.Errorf("quotes are nested under movies and characters, not %s", resource.Plural())
		}
		return runRelated(cmd, &quotesFlags, resource, args[1])
	},
}

// chaptersCmd represents the chapters command
var chaptersCmd = &cobra.Command{
	Use:   "chapters <book-id>",
	Short: "List chapters of a book",
	Long: `List the chapters of a book. Book routes do not require an API key.

Example:
  onering chapters 5cf5805fb53e011a64671582`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRelated(cmd, &chaptersFlags, catalog.ResourceBook, args[0])
	},
}

func init() {
	quotesFlags.register(quotesCmd)
	chaptersFlags.register(chaptersCmd)
}

func runRelated(cmd *cobra.Command, flags *pagingFlags, resource catalog.Resource, id string) error {
	related, _ := resource.RelatedResource()
	ctx := cmd.Context()

	page, err := flags.fetch(ctx, related,
		func(opts *theoneapi.RequestOptions) (*catalog.Page, error) {
			return operations.Related(ctx, resource, id, opts)
		},
		func(opts theoneapi.RequestOptions) ([]theoneapi.Document, error) {
			return operations.AllRelated(ctx, resource, id, opts)
		},
	)
	if err != nil {
		return fmt.Errorf("list %s of %s %s: %w", related.Plural(), resource, id, err)
	}

	return printPage(cmd.OutOrStdout(), page, !flags.all)
}
