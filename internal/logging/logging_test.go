package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesPlainText(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.Info().Str("word", "Sum").Msg("help")

	out := buf.String()
	assert.Contains(t, out, "help")
	assert.Contains(t, out, "word=Sum")
	assert.NotContains(t, out, "\x1b[", "no colour codes")
}

func TestSetupFiltersByLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codearea.log")
	l, closer, err := Setup(path, "warn")
	require.NoError(t, err)

	l.Info().Msg("quiet")
	l.Warn().Msg("loud")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "quiet")
	assert.Contains(t, string(data), "loud")
}

func TestSetupRejectsBadLevel(t *testing.T) {
	_, _, err := Setup("", "chatty")
	assert.Error(t, err)
}

func TestSetupDefaultsToDevNull(t *testing.T) {
	_, closer, err := Setup("", "")
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
}
