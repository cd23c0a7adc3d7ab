package expander

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaults(t *testing.T) {
	config, err := ParseConfig([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestParseConfigOverrides(t *testing.T) {
	config, err := ParseConfig([]byte(`
option-label-prefix: .L
option-label-base: 1
option-stack-depth: 32
substitutions:
  construct:
    BEGIN: DO
  condition:
    ZERO: Z
`))
	require.NoError(t, err)
	assert.Equal(t, ".L", config.LabelPrefix)
	assert.Equal(t, 1, config.LabelBase)
	assert.Equal(t, 32, config.StackDepth)
	assert.Equal(t, "_", config.DirectivePrefix)
	assert.Equal(t, "msp430", config.Target)
	assert.Equal(t, map[string]string{"BEGIN": "DO"}, config.Substitutions.Construct)
	assert.Equal(t, map[string]string{"ZERO": "Z"}, config.Substitutions.Condition)
}

func TestParseConfigRejects(t *testing.T) {
	tests := []string{
		"option-label-base: -1",
		"option-stack-depth: 1",
		"option-label-prefix: [",
	}
	for _, data := range tests {
		_, err := ParseConfig([]byte(data))
		assert.Error(t, err, data)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "structasm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("option-target: MSP430\n"), 0o600))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "MSP430", config.Target)

	_, err = New(config, zerolog.Nop())
	assert.NoError(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewRejectsUnknownTarget(t *testing.T) {
	config := DefaultConfig()
	config.Target = "z80"
	_, err := New(config, zerolog.Nop())
	assert.ErrorContains(t, err, "unknown target: z80")
}
