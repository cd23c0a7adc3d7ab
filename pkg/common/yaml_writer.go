package common

import (
	"io"

	"gopkg.in/yaml.v3"
)

func PrintUnitYAML(unit *Unit, indentDelta string, output io.Writer, options *PrintOptions) error {
	encoder := yaml.NewEncoder(output)
	defer encoder.Close()
	if len(indentDelta) > 0 {
		encoder.SetIndent(len(indentDelta))
	}
	return encoder.Encode(unit)
}
