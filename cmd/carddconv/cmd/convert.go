package cmd

import (
	"context"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"carddconv/internal/adapters/filesystem"
	"carddconv/internal/adapters/sqlite"
	"carddconv/internal/application"
	"carddconv/internal/application/commands"
)

var (
	multiLabel   bool
	noManifest   bool
	showProgress bool
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Copy every annotated image into <out>/<split>/<category>/",
	Long: `Convert all three splits of the CarDD COCO dataset.

Each annotated image is copied into the category directory it is assigned
to. By default an image with several damage categories goes only to its
primary category (the alphabetically first name); --multi-label duplicates
it into every category it is annotated with.

Images without annotations are never copied. Annotated images whose file
is missing from the source folder are counted and skipped.

Examples:
  carddconv convert
  carddconv convert --coco ../CarDD_release/CarDD_COCO --out ../dataset_cardd
  carddconv convert --multi-label --progress`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		convert := commands.NewConvertCommand(loader, store, cocoDir, outputDir)
		convert.MultiLabel = multiLabel

		if !noManifest {
			manifest := sqlite.NewManifest()
			if err := manifest.Open(outputDir); err != nil {
				return err
			}
			defer manifest.Close()
			convert.Manifest = manifest
		}

		var bar *progressbar.ProgressBar
		if showProgress {
			bar = progressbar.NewOptions(-1,
				progressbar.OptionSetDescription("Copying"),
				progressbar.OptionShowIts(),
				progressbar.OptionSetItsString("images"),
				progressbar.OptionSpinnerType(14),
			)
			convert.Progress = func(split application.Split, category, fileName string) {
				bar.Add(1)
			}
		}

		result, err := convert.Execute(ctx)
		if err != nil {
			return err
		}
		if bar != nil {
			bar.Finish()
			fmt.Println()
		}

		if err := filesystem.WriteDataYAML(appFs, outputDir, result.Categories); err != nil {
			return err
		}

		for _, sr := range result.Splits {
			fmt.Printf("%s: %d annotated images, %d copied, %d missing, %d multi-category\n",
				sr.Split, sr.Images, sr.Copied, sr.SkippedMissing, sr.MultiCategory)
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().BoolVar(&multiLabel, "multi-label", false, "copy images into every annotated category instead of only the primary one")
	convertCmd.Flags().BoolVar(&noManifest, "no-manifest", false, "do not record the run in the output manifest")
	convertCmd.Flags().BoolVar(&showProgress, "progress", false, "show a progress bar while copying")
}
