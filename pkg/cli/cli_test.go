package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintErrors(t *testing.T) {
	var buf bytes.Buffer
	PrintErrors(&buf, nil)
	assert.Empty(t, buf.String())

	PrintErrors(&buf, errors.New("a.s43:3: boom"))
	assert.Equal(t, "Error: a.s43:3: boom\n", buf.String())

	buf.Reset()
	var merr *multierror.Error
	merr = multierror.Append(merr, errors.New("first"), errors.New("second"))
	PrintErrors(&buf, merr)
	assert.Equal(t, "2 error(s):\n  [1]. first\n  [2]. second\n", buf.String())
}

func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 100, config.LabelBase)

	path := filepath.Join(t.TempDir(), "structasm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("option-label-base: 7\n"), 0o600))
	config, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7, config.LabelBase)
}
