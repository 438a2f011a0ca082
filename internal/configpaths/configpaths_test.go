package configpaths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(string(filepath.Separator), "home", "test", ".config"))

	dir, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(dir), appDir)
}

func TestConfigCandidatePathsRoutesUserPathByExtension(t *testing.T) {
	tests := []struct {
		name     string
		userPath string
		group    func(j, y, tm []string) []string
	}{
		{"yaml", "my.yaml", func(_, y, _ []string) []string { return y }},
		{"yml", "my.yml", func(_, y, _ []string) []string { return y }},
		{"toml", "my.toml", func(_, _, tm []string) []string { return tm }},
		{"json", "my.json", func(j, _, _ []string) []string { return j }},
		{"unknown extension falls back to json", "my.conf", func(j, _, _ []string) []string { return j }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j, y, tm := ConfigCandidatePaths(tt.userPath)
			group := tt.group(j, y, tm)
			require.NotEmpty(t, group)
			// User supplied files are tried last so they win.
			assert.Equal(t, tt.userPath, group[len(group)-1])
		})
	}
}

func TestConfigCandidatePathsWithoutUserPath(t *testing.T) {
	j, y, tm := ConfigCandidatePaths("")

	for _, p := range j {
		assert.Equal(t, "config.json", filepath.Base(p))
	}
	for _, p := range tm {
		assert.Equal(t, "config.toml", filepath.Base(p))
	}
	assert.NotEmpty(t, y)
	assert.Contains(t, filepath.Dir(j[0]), appDir)
}
