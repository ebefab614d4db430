package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/onering/catalog"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <resource> <id>",
	Short: "Show a single document by id",
	Long: `Show a single movie, character, book, chapter or quote by its id.

Example:
  onering get movie 5cd95395de30eff6ebccde5d`,
	Args: cobra.ExactArgs(2),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	resource, err := catalog.ParseResource(args[0])
	if err != nil {
		return err
	}

	doc, err := operations.Get(cmd.Context(), resource, args[1])
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), doc)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDocument(doc))
	return err
}
