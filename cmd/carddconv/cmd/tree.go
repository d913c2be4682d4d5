package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"carddconv/internal/application"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Display the converted dataset tree with per-category counts",
	Long: `Display the split/category structure of the converted dataset and how
many files each category directory holds.

Example:
  carddconv tree --out ../dataset_cardd`,
	RunE: func(cmd *cobra.Command, args []string) error {
		printed := false
		for _, split := range application.Splits {
			splitDir := filepath.Join(outputDir, split.String())
			categories, err := afero.ReadDir(appFs, splitDir)
			if err != nil {
				// A split that was never converted simply has no directory.
				continue
			}
			printed = true

			fmt.Println(split)
			for _, cat := range categories {
				if !cat.IsDir() {
					continue
				}
				files, err := afero.ReadDir(appFs, filepath.Join(splitDir, cat.Name()))
				if err != nil {
					return err
				}
				count := 0
				for _, f := range files {
					if !f.IsDir() {
						count++
					}
				}
				fmt.Printf("  %s %d\n", cat.Name(), count)
			}
		}

		if !printed {
			return fmt.Errorf("no converted splits found under %s", outputDir)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
