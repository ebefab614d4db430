package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/onering/theoneapi"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to The One API",
	Long: `Test the connection to The One API and check whether the API key is accepted.

Books are public, so a successful book request with a failing movie request
means the API is reachable but the key is missing or invalid.`,
	Args: cobra.NoArgs,
	RunE: runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	fmt.Fprintf(out, "Testing connection to %s...\n", client.BaseURL())

	books, err := client.ListBooks(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to reach API: %w", err)
	}
	fmt.Fprintln(out, "✓ Connection successful!")

	movies, err := client.ListMovies(ctx, &theoneapi.RequestOptions{Limit: 1})
	if err != nil {
		var apiErr *theoneapi.Error
		if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
			fmt.Fprintf(out, "✗ API key rejected: %s\n", apiErr.Message)
			return fmt.Errorf("api key is missing or invalid")
		}
		return fmt.Errorf("failed to get movies: %w", err)
	}
	fmt.Fprintln(out, "✓ API key accepted!")

	fmt.Fprintf(out, "\nThe One API Statistics:\n")
	fmt.Fprintf(out, "- Total books: %d\n", books.Total)
	fmt.Fprintf(out, "- Total movies: %d\n", movies.Total)

	return nil
}
