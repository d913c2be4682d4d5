package filesystem

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"carddconv/internal/domain"
)

// DataYAML describes the converted dataset for downstream loaders
type DataYAML struct {
	Train      string   `yaml:"train"`
	Val        string   `yaml:"val"`
	Test       string   `yaml:"test"`
	NamesCount int      `yaml:"nc"`
	Names      []string `yaml:"names"`
}

// WriteDataYAML writes a data.yaml with the class list and split
// directories into the output root
func WriteDataYAML(fs afero.Fs, outputDir string, names []string) error {
	conf := DataYAML{
		Train:      domain.SplitTrain.String(),
		Val:        domain.SplitVal.String(),
		Test:       domain.SplitTest.String(),
		NamesCount: len(names),
		Names:      names,
	}

	data, err := yaml.Marshal(conf)
	if err != nil {
		return fmt.Errorf("failed to marshal data.yaml: %w", err)
	}

	if err := afero.WriteFile(fs, filepath.Join(outputDir, "data.yaml"), data, 0644); err != nil {
		return fmt.Errorf("failed to write data.yaml: %w", err)
	}
	return nil
}
