package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratedProjectAdd(t *testing.T) {
	p := NewGeneratedProject()
	p.Add("a.ts", "one")
	p.Add("b.ts", "two")
	p.Add("a.ts", "replaced")

	assert.Equal(t, 2, p.FileCount())
	assert.Equal(t, []string{"a.ts", "b.ts"}, p.Paths())

	c, ok := p.Content("a.ts")
	require.True(t, ok)
	assert.Equal(t, "replaced", c)

	_, ok = p.Content("missing.ts")
	assert.False(t, ok)
}

func TestGeneratedProjectFilesCopy(t *testing.T) {
	p := NewGeneratedProject()
	p.Add("a.ts", "one")
	files := p.Files()
	files["a.ts"] = "mutated"
	c, _ := p.Content("a.ts")
	assert.Equal(t, "one", c)
}

func TestWriteTo(t *testing.T) {
	p := NewGeneratedProject()
	p.Add("src/index.ts", "index")
	p.Add("src/routes/index.ts", "routes")
	p.Add("package.json", "{}")

	dir := t.TempDir()
	require.NoError(t, p.WriteTo(dir))

	for path, want := range p.Files() {
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(path)))
		require.NoError(t, err, path)
		assert.Equal(t, want, string(data))
	}
}

func TestWriteToCached(t *testing.T) {
	p := NewGeneratedProject()
	p.Add("a.txt", "content")

	dir := t.TempDir()
	cache, err := OpenBuildCache(filepath.Join(dir, "cache.db"))
	require.NoError(t, err)
	defer cache.Close()

	out := filepath.Join(dir, "out")
	require.NoError(t, p.WriteToCached(out, cache))

	// A cached file is not rewritten: delete it and write again.
	require.NoError(t, os.Remove(filepath.Join(out, "a.txt")))
	require.NoError(t, p.WriteToCached(out, cache))
	_, err = os.Stat(filepath.Join(out, "a.txt"))
	assert.True(t, os.IsNotExist(err))

	// After forgetting, the file comes back.
	require.NoError(t, cache.Forget("a.txt"))
	require.NoError(t, p.WriteToCached(out, cache))
	data, err := os.ReadFile(filepath.Join(out, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}
