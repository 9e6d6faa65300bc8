package palette

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveNamedColor(t *testing.T) {
	p := New()
	assert.Equal(t, RGB{255, 241, 118}, p.Resolve("yellow"))
	assert.Equal(t, RGB{255, 241, 118}, p.Resolve("YELLOW"))
}

func TestResolveHex(t *testing.T) {
	p := New()
	assert.Equal(t, RGB{0xAB, 0xCD, 0xEF}, p.Resolve("ABCDEF"))
	assert.Equal(t, RGB{0xAB, 0xCD, 0xEF}, p.Resolve("#abcdef"))
}

func TestResolveUnknownFallsBackToDefault(t *testing.T) {
	p := New()
	assert.Equal(t, p.Resolve(DefaultName), p.Resolve("not-a-color"))
	assert.Equal(t, p.Resolve(DefaultName), p.Resolve("#zzzzzz"))
}

func TestLoadOverrideAddsAndReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "colors.toml")
	content := `
[[colors]]
name = "yellow"
hex = "000000"

[[colors]]
name = "teal"
hex = "00FFFF"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	p := New()
	require.NoError(t, p.LoadOverride(path))

	assert.Equal(t, RGB{0, 0, 0}, p.Resolve("yellow"))
	assert.Equal(t, RGB{0, 255, 255}, p.Resolve("teal"))
}

func TestResolveDeterministic(t *testing.T) {
	p := New()
	a := p.Resolve("green")
	b := p.Resolve("green")
	assert.Equal(t, a, b)
}
