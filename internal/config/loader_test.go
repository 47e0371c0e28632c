package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	t.Setenv("EDITOR", "vim")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ks", cfg.Cmd)
	assert.Equal(t, "vim", cfg.Editor)
	assert.Equal(t, SelectorFzf, cfg.Selector)
	assert.Equal(t, "kubectl", cfg.Kube.Exec)
	assert.Equal(t, "k", cfg.Kube.Cmd)
	assert.False(t, cfg.Kube.ExportKubeconfig)
	assert.False(t, cfg.Kube.UpdateContext)
	assert.Empty(t, cfg.Path)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
cmd: kube
editor: nano
selector: builtin
kube:
  exec: kubectl
  cmd: kc
  dir: /tmp/kubeswitch-test-store
  exportKubeconfig: true
  updateContext: true
`)
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "kube", cfg.Cmd)
	assert.Equal(t, "nano", cfg.Editor)
	assert.Equal(t, SelectorBuiltin, cfg.Selector)
	assert.Equal(t, "kc", cfg.Kube.Cmd)
	assert.Equal(t, "/tmp/kubeswitch-test-store", cfg.Kube.Dir)
	assert.True(t, cfg.Kube.ExportKubeconfig)
	assert.True(t, cfg.Kube.UpdateContext)
	assert.Equal(t, path, cfg.Path)
}

func TestLoadExpandsEnvAndHome(t *testing.T) {
	home := t.TempDir()
	original := osUserHomeDir
	defer func() { osUserHomeDir = original }()
	osUserHomeDir = func() (string, error) { return home, nil }

	t.Setenv("KUBESWITCH_TEST_EDITOR", "hx")
	path := writeConfigFile(t, `
editor: $KUBESWITCH_TEST_EDITOR
kube:
  dir: ~/configs
`)
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "hx", cfg.Editor)
	assert.Equal(t, filepath.Join(home, "configs"), cfg.Kube.Dir)
}

func TestLoadRejectsDirectoryConfigPath(t *testing.T) {
	t.Setenv(EnvConfigPath, t.TempDir())

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestLoadValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "empty cmd",
			content: "cmd: ''\neditor: vim\n",
			wantErr: "`cmd` cannot be empty",
		},
		{
			name:    "bad selector",
			content: "editor: vim\nselector: dialog\n",
			wantErr: "`selector` must be",
		},
		{
			name:    "empty kube exec",
			content: "editor: vim\nkube:\n  exec: ''\n",
			wantErr: "`kube.exec` cannot be empty",
		},
		{
			name:    "alias rule without alias list",
			content: "editor: vim\nnsAlias:\n  - regex: '^prod'\n",
			wantErr: "`alias` cannot be empty",
		},
		{
			name:    "alias rule without matcher",
			content: "editor: vim\nnsAlias:\n  - alias: [default]\n",
			wantErr: "at least `regex` or `names`",
		},
		{
			name:    "alias rule with bad regex",
			content: "editor: vim\nnsAlias:\n  - regex: '['\n    alias: [default]\n",
			wantErr: "parse regex",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigPath, writeConfigFile(t, tt.content))
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
