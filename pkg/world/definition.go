package world

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/world.yaml
var defaultWorldYAML []byte

// Definition is the serializable form of a game world.
type Definition struct {
	Start     string               `yaml:"start"`
	Locations map[string]*Location `yaml:"locations"`
}

// DefaultDefinition returns the built-in world definition.
func DefaultDefinition() (*Definition, error) {
	return parseDefinition(defaultWorldYAML)
}

// LoadDefinition reads a world definition from a YAML file.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read world file: %w", err)
	}
	return parseDefinition(data)
}

func parseDefinition(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse world definition: %w", err)
	}
	return &def, nil
}
