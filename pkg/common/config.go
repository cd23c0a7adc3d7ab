package common

type PrintOptions struct {
	Format       string `yaml:"option-format,omitempty"`
	Indent       int    `yaml:"option-indent,omitempty"`
	IncludeSpans bool   `yaml:"option-include-spans,omitempty"`
	// Passthrough controls whether instruction records appear in ASCIITREE and DOT output.
	Passthrough bool `yaml:"option-passthrough,omitempty"`
}
