package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"carddconv/internal/application"
	"carddconv/internal/application/commands"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <split>",
	Short: "Summarize one split's annotations without copying anything",
	Long: `Summarize the annotation file of a split: its categories, image and
annotation counts, and how many images would land in each category.

Examples:
  carddconv inspect train
  carddconv inspect val --coco ../CarDD_release/CarDD_COCO`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		split, err := application.ParseSplit(args[0])
		if err != nil {
			return err
		}
		ctx := context.Background()

		inspect := commands.NewInspectCommand(loader, cocoDir, split)
		result, err := inspect.Execute(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("%s: %d images (%d annotated, %d without annotations), %d annotations\n",
			result.Split, result.Images, result.Annotated, result.Unannotated, result.Annotations)
		fmt.Printf("%d images carry more than one category\n\n", result.MultiCategory)

		for _, cat := range result.Categories {
			fmt.Printf("%4d  %-20s %d images\n", cat.ID, cat.Name, result.PrimaryCounts[cat.Name])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
