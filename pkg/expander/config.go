package expander

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/spicery/structasm/pkg/flow"
)

// Config holds the options of an expansion run. Files only need to name
// the options they change; everything else keeps its default.
type Config struct {
	LabelPrefix     string   `yaml:"option-label-prefix,omitempty"`
	LabelBase       int      `yaml:"option-label-base,omitempty"`
	StackDepth      int      `yaml:"option-stack-depth,omitempty"`
	DirectivePrefix string   `yaml:"option-directive-prefix"`
	Target          string   `yaml:"option-target,omitempty"`
	Format          string   `yaml:"option-format,omitempty"`
	Checkpoints     []string `yaml:"option-checkpoints,omitempty"`

	Substitutions Substitutions `yaml:"substitutions,omitempty"`
}

// Substitutions rename construct and condition tokens before lookup, so
// sources written against another macro vocabulary can be expanded as-is.
type Substitutions struct {
	Construct map[string]string `yaml:"construct,omitempty"`
	Condition map[string]string `yaml:"condition,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		LabelPrefix:     flow.DefaultLabelPrefix,
		LabelBase:       flow.DefaultLabelBase,
		StackDepth:      flow.DefaultStackDepth,
		DirectivePrefix: "_",
		Target:          "msp430",
		Format:          "ASM",
		Checkpoints:     []string{"CS_CHECK"},
	}
}

// LoadConfig reads a YAML options file over the defaults.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename) // #nosec G304 - CLI tool reads user-specified config files
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (*Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	if c.LabelBase <= 0 {
		return fmt.Errorf("option-label-base must be positive, got %d", c.LabelBase)
	}
	if c.StackDepth < 2 {
		return fmt.Errorf("option-stack-depth must be at least 2, got %d", c.StackDepth)
	}
	if c.LabelPrefix == "" {
		return fmt.Errorf("option-label-prefix must not be empty")
	}
	return nil
}
