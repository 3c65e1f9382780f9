package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var queryJSON bool

var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Build the index and print the best sections for one query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, _, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx := cmd.Context()
		a, err := newApp(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer a.close()

		if _, err := a.indexing.Rebuild(ctx); err != nil {
			return fmt.Errorf("build index: %w", err)
		}

		sections, err := a.search.Query(ctx, strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("query: %w", err)
		}

		out := cmd.OutOrStdout()
		if queryJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string][]string{"relevant_sections": sections})
		}
		if len(sections) == 0 {
			fmt.Fprintln(out, "No matching course sections.")
			return nil
		}
		for i, s := range sections {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, s)
		}
		return nil
	},
}

func init() {
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "print the HTTP response body instead of plain text")
	rootCmd.AddCommand(queryCmd)
}
