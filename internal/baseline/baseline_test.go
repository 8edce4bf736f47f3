package baseline

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderString(s string) RenderFunc {
	return func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		name string
		data string
		want int
	}{
		{"empty", "", 0},
		{"single terminated", "a\n", 1},
		{"single unterminated", "a", 1},
		{"mixed", "a\nb\nc", 3},
		{"blank lines count", "\n\n", 2},
		{"five records", "1\n2\n3\n4\n5\n", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountLines([]byte(tt.data)))
		})
	}
}

func TestNew_DefaultBasePath(t *testing.T) {
	m := New("", "out/report.txt")
	assert.Equal(t, DefaultBasePath, m.BasePath)
	assert.Equal(t, "out/report.txt", m.DestPath)
}

func TestInit_CreatesOnce(t *testing.T) {
	dir := t.TempDir()
	m := New(filepath.Join(dir, "report", "csslint_base.txt"), filepath.Join(dir, "out.txt"))

	exists, err := m.Exists()
	require.NoError(t, err)
	assert.False(t, exists)

	created, err := m.Init(renderString("a\nb\n"))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "a\nb\n", readFile(t, m.BasePath))

	created, err = m.Init(renderString("changed\n"))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "a\nb\n", readFile(t, m.BasePath), "existing baseline is untouched")

	n, err := m.BaseLines()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRegenerate_Overwrites(t *testing.T) {
	dir := t.TempDir()
	m := New(filepath.Join(dir, "base.txt"), filepath.Join(dir, "out.txt"))

	require.NoError(t, m.Regenerate(renderString("old\nold\nold\n")))
	require.NoError(t, m.Regenerate(renderString("new\n")))
	assert.Equal(t, "new\n", readFile(t, m.BasePath))
}

func TestWriteDest_ReplacesPreviousReport(t *testing.T) {
	dir := t.TempDir()
	m := New(filepath.Join(dir, "base.txt"), filepath.Join(dir, "nested", "out.txt"))

	require.NoError(t, m.WriteDest(renderString("1\n2\n3\n4\n5\n6\n7\n8\n")))
	require.NoError(t, m.WriteDest(renderString("1\n2\n")))

	assert.Equal(t, "1\n2\n", readFile(t, m.DestPath))
	n, err := m.DestLines()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestWriteDest_RenderError(t *testing.T) {
	dir := t.TempDir()
	m := New(filepath.Join(dir, "base.txt"), filepath.Join(dir, "out.txt"))
	boom := errors.New("boom")

	err := m.WriteDest(func(io.Writer) error { return boom })
	require.ErrorIs(t, err, boom)

	_, err = os.Stat(m.DestPath)
	assert.True(t, os.IsNotExist(err))
}

func TestLines_MissingFile(t *testing.T) {
	m := New(filepath.Join(t.TempDir(), "missing.txt"), "")
	_, err := m.BaseLines()
	require.ErrorIs(t, err, ErrIO)
}

func TestWriteDest_UnwritableParent(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	m := New(filepath.Join(dir, "base.txt"), filepath.Join(blocker, "out.txt"))
	err := m.WriteDest(renderString("x\n"))
	require.ErrorIs(t, err, ErrIO, fmt.Sprint(err))
}
