package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"carddconv/internal/adapters/coco"
	"carddconv/internal/adapters/filesystem"
	"carddconv/internal/config"
	"carddconv/internal/ports"
)

var (
	cocoDir   string
	outputDir string
	verbose   bool

	appFs  afero.Fs
	loader ports.AnnotationLoader
	store  ports.ImageStore
)

var rootCmd = &cobra.Command{
	Use:   "carddconv",
	Short: "Convert the CarDD COCO dataset to a directory-per-class layout",
	Long: `carddconv reorganizes the CarDD COCO object-detection dataset into a
directory-per-class tree usable by directory-based image classification
loaders.

For each split (train, val, test) it reads the COCO instance annotations,
assigns every annotated image to a damage category, and copies the image
into <out>/<split>/<category>/.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()

		appFs = afero.NewOsFs()
		loader = coco.NewLoader(appFs)
		store = filesystem.NewStore(appFs)
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cocoDir, "coco", config.CocoDir(), "path to the CarDD_COCO root")
	rootCmd.PersistentFlags().StringVar(&outputDir, "out", config.OutputDir(), "path to the converted dataset root")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every copied file")
}
