package bundler

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spicery/structasm/pkg/common"
	"github.com/spicery/structasm/pkg/expander"
)

const loopSource = "\t_FOR #4, R5\n\t_IF NZ\n\tnop\n\t_ENDIF\n\t_NEXT_DEC R5\n"

func newTestBundler(t *testing.T) *Bundler {
	t.Helper()
	b, err := NewBundler(filepath.Join(t.TempDir(), "bundle.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func newTestExpander(t *testing.T) *expander.Expander {
	t.Helper()
	e, err := expander.New(nil, zerolog.Nop())
	require.NoError(t, err)
	return e
}

func TestMigration(t *testing.T) {
	b := newTestBundler(t)

	ok, err := b.CheckMigration()
	require.NoError(t, err)
	assert.False(t, ok, "fresh database should need migrating")

	require.NoError(t, b.Migrate())
	ok, err = b.CheckMigration()
	require.NoError(t, err)
	assert.True(t, ok)

	// Migrating twice is harmless.
	require.NoError(t, b.Migrate())
}

func TestProcessSourceStoresAndSkips(t *testing.T) {
	b := newTestBundler(t)
	require.NoError(t, b.Migrate())
	buildID, err := b.BeginBuild("test")
	require.NoError(t, err)
	assert.Len(t, buildID, 36)

	e := newTestExpander(t)
	skipped, err := b.ProcessSource("loop.s43", []byte(loopSource), e)
	require.NoError(t, err)
	assert.False(t, skipped)

	skipped, err = b.ProcessSource("loop.s43", []byte(loopSource), e)
	require.NoError(t, err)
	assert.True(t, skipped, "unchanged source should be skipped")

	var expansion Expansion
	require.NoError(t, b.db.Where("file_name = ?", "loop.s43").Take(&expansion).Error)
	assert.Equal(t, buildID, expansion.BuildID)
	assert.Equal(t, HashContents([]byte(loopSource)), expansion.Hash)
	assert.Equal(t, 2, expansion.LabelCount)
	assert.Equal(t, 2, expansion.BranchCount)
}

func TestLoadUnitAndLabelRefs(t *testing.T) {
	b := newTestBundler(t)
	require.NoError(t, b.Migrate())
	e := newTestExpander(t)

	_, err := b.ProcessSource("loop.s43", []byte(loopSource), e)
	require.NoError(t, err)

	unit, err := b.LoadUnit("loop.s43")
	require.NoError(t, err)
	assert.Equal(t, "loop.s43", unit.Src)
	assert.Equal(t, []int{100, 101}, unit.Labels())
	assert.Equal(t, common.KindInstruction, unit.Records[0].Kind)
	assert.Equal(t, common.CondZ, unit.Records[2].Cond)

	refs, err := b.LabelRefs("loop.s43")
	require.NoError(t, err)
	assert.Equal(t, []LabelRef{
		{FileName: "loop.s43", LabelName: "_L100", LabelID: 100, DefinedAt: 1, Branches: 1},
		{FileName: "loop.s43", LabelName: "_L101", LabelID: 101, DefinedAt: 4, Branches: 1},
	}, refs)
}

func TestProcessSourceReplacesChangedSource(t *testing.T) {
	b := newTestBundler(t)
	require.NoError(t, b.Migrate())
	e := newTestExpander(t)

	_, err := b.ProcessSource("a.s43", []byte(loopSource), e)
	require.NoError(t, err)
	skipped, err := b.ProcessSource("a.s43", []byte("\t_DO\n\t_AGAIN\n"), e)
	require.NoError(t, err)
	assert.False(t, skipped)

	refs, err := b.LabelRefs("a.s43")
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, 100, refs[0].LabelID)
}

func TestProcessSourceReexpandsOnConfigChange(t *testing.T) {
	b := newTestBundler(t)
	require.NoError(t, b.Migrate())

	_, err := b.ProcessSource("loop.s43", []byte(loopSource), newTestExpander(t))
	require.NoError(t, err)

	config := expander.DefaultConfig()
	config.LabelBase = 500
	config.LabelPrefix = "_X"
	e, err := expander.New(config, zerolog.Nop())
	require.NoError(t, err)

	skipped, err := b.ProcessSource("loop.s43", []byte(loopSource), e)
	require.NoError(t, err)
	assert.False(t, skipped, "a changed config must re-expand unchanged sources")

	unit, err := b.LoadUnit("loop.s43")
	require.NoError(t, err)
	assert.Equal(t, []int{500, 501}, unit.Labels())
	assert.Equal(t, "_X500", unit.Records[1].Name)

	skipped, err = b.ProcessSource("loop.s43", []byte(loopSource), e)
	require.NoError(t, err)
	assert.True(t, skipped)
}

func TestHashConfig(t *testing.T) {
	a, err := HashConfig(expander.DefaultConfig())
	require.NoError(t, err)
	same, err := HashConfig(expander.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, a, same)

	changed := expander.DefaultConfig()
	changed.Substitutions.Condition = map[string]string{"ZERO": "Z"}
	other, err := HashConfig(changed)
	require.NoError(t, err)
	assert.NotEqual(t, a, other)
}

func TestProcessSourceFailureStoresNothing(t *testing.T) {
	b := newTestBundler(t)
	require.NoError(t, b.Migrate())

	_, err := b.ProcessSource("bad.s43", []byte("\t_IF Z\n"), newTestExpander(t))
	require.Error(t, err)

	_, err = b.LoadUnit("bad.s43")
	assert.Error(t, err)
}

func TestHashContents(t *testing.T) {
	assert.Equal(t, HashContents([]byte("a")), HashContents([]byte("a")))
	assert.NotEqual(t, HashContents([]byte("a")), HashContents([]byte("b")))
}
