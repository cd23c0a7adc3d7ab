package common

import (
	"encoding/json"
	"io"
)

func PrintUnitJSON(unit *Unit, indentDelta string, output io.Writer, options *PrintOptions) error {
	encoder := json.NewEncoder(output)
	if options != nil && options.Indent > 0 {
		encoder.SetIndent("", indentDelta)
	}
	return encoder.Encode(unit)
}

func ReadUnitJSON(input io.Reader) (*Unit, error) {
	var unit Unit
	decoder := json.NewDecoder(input)
	err := decoder.Decode(&unit)
	if err != nil {
		return nil, err
	}
	return &unit, nil
}
