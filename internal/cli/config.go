package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/wicket"
)

// DefaultConfigFile is looked up in the working directory when no --config
// flag is given.
const DefaultConfigFile = "wicket.yaml"

// LoadOptions reads engine options from a YAML config file.
//
// The file carries the same loosely-typed keys the engine accepts
// (timeout, inputMode, staticPrompt); decoding and validation are delegated
// to wicket.OptionsFromMap so file and programmatic configuration cannot
// drift apart. A missing default file is not an error.
func LoadOptions(path string) ([]wicket.Option, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	opts, err := wicket.OptionsFromMap(raw)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return opts, nil
}
