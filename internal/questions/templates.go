package questions

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed templates/*.yaml
var templateFiles embed.FS

// TemplateSet is a named starter set the questions tab offers for
// one-click add.
type TemplateSet struct {
	Name      string   `yaml:"name"`
	Title     string   `yaml:"title"`
	Questions []string `yaml:"questions"`
}

type templateFile struct {
	Sets []TemplateSet `yaml:"sets"`
}

// StarterSets loads and validates the embedded starter question sets.
func StarterSets() ([]TemplateSet, error) {
	data, err := templateFiles.ReadFile("templates/starter.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading starter templates: %w", err)
	}

	var file templateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing starter templates: %w", err)
	}

	if err := validateSets(file.Sets); err != nil {
		return nil, fmt.Errorf("invalid starter templates: %w", err)
	}
	return file.Sets, nil
}

func validateSets(sets []TemplateSet) error {
	if len(sets) == 0 {
		return fmt.Errorf("no sets defined")
	}
	seen := make(map[string]bool, len(sets))
	for i, set := range sets {
		if set.Name == "" {
			return fmt.Errorf("set %d has no name", i)
		}
		if seen[set.Name] {
			return fmt.Errorf("duplicate set name %q", set.Name)
		}
		seen[set.Name] = true
		if set.Title == "" {
			return fmt.Errorf("set %q has no title", set.Name)
		}
		if len(set.Questions) == 0 {
			return fmt.Errorf("set %q has no questions", set.Name)
		}
		for j, q := range set.Questions {
			if q == "" {
				return fmt.Errorf("set %q question %d is empty", set.Name, j)
			}
		}
	}
	return nil
}
