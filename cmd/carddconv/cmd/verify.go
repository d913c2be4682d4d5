package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"carddconv/internal/adapters/sqlite"
	"carddconv/internal/application/commands"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the output tree against the newest recorded run",
	Long: `Compare the files recorded by the most recent conversion run against
what is actually on disk, reporting deleted or truncated files.

Example:
  carddconv verify --out ../dataset_cardd`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		manifest := sqlite.NewManifest()
		if err := manifest.Open(outputDir); err != nil {
			return err
		}
		defer manifest.Close()

		verify := commands.NewVerifyCommand(manifest, store, outputDir)
		result, err := verify.Execute(ctx)
		if err != nil {
			return err
		}

		counts, err := manifest.CategoryCounts(result.RunID)
		if err != nil {
			return err
		}
		keys := make([]string, 0, len(counts))
		for key := range counts {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Printf("%s: %d recorded\n", key, counts[key])
		}

		for _, path := range result.Missing {
			fmt.Printf("missing: %s\n", path)
		}
		for _, path := range result.SizeMismatch {
			fmt.Printf("size mismatch: %s\n", path)
		}
		fmt.Println(result.Message)

		if !result.OK() {
			return fmt.Errorf("output tree does not match run %s", result.RunID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
