package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"kubeswitch/pkg/logging"
)

// EnvConfigPath overrides the default config file location.
const EnvConfigPath = "KUBESWITCH_CONFIG_PATH"

const userConfigPath = ".config/kubeswitch/config.yaml"

// For mocking in tests.
var osUserHomeDir = os.UserHomeDir

// Load reads and validates the kubeswitch configuration. A missing config
// file yields the defaults; any other failure is fatal to the caller.
func Load() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, fmt.Errorf("get config path: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %q: %w", path, err)
		}
		cfg.Path = path
		logging.Debug("config", "loaded config file %q", path)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// configPath returns the config file to load, or "" when it does not exist
// and the defaults should be used.
func configPath() (string, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		home, err := osUserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, userConfigPath)
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("stat config file %q: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("config path %q is a directory, require file", path)
	}
	return path, nil
}

func (c *Config) validate() error {
	if c.Cmd == "" {
		return fmt.Errorf("`cmd` cannot be empty")
	}
	if c.Editor == "" {
		return fmt.Errorf("`editor` cannot be empty")
	}
	editor, err := expandPath(c.Editor)
	if err != nil {
		return fmt.Errorf("expand `editor`: %w", err)
	}
	if editor == "" {
		return fmt.Errorf("`editor` expands to an empty string, is $EDITOR set?")
	}
	c.Editor = editor

	switch c.Selector {
	case SelectorFzf, SelectorBuiltin:
	default:
		return fmt.Errorf("`selector` must be %q or %q, got %q", SelectorFzf, SelectorBuiltin, c.Selector)
	}

	if err := c.Kube.validate(); err != nil {
		return fmt.Errorf("validate kube: %w", err)
	}

	for i := range c.NsAlias {
		if err := c.NsAlias[i].validate(); err != nil {
			return fmt.Errorf("validate nsAlias index %d: %w", i, err)
		}
	}
	return nil
}

func (k *KubeConfig) validate() error {
	if k.Exec == "" {
		return fmt.Errorf("`kube.exec` cannot be empty")
	}
	exec, err := expandPath(k.Exec)
	if err != nil {
		return fmt.Errorf("expand `kube.exec`: %w", err)
	}
	k.Exec = exec

	if k.Cmd == "" {
		return fmt.Errorf("`kube.cmd` cannot be empty")
	}

	if k.Dir == "" {
		return fmt.Errorf("`kube.dir` cannot be empty")
	}
	dir, err := expandPath(k.Dir)
	if err != nil {
		return fmt.Errorf("expand `kube.dir`: %w", err)
	}
	k.Dir = dir
	return nil
}

func (r *AliasRule) validate() error {
	if len(r.Alias) == 0 {
		return fmt.Errorf("`alias` cannot be empty")
	}
	if r.Regex == "" && len(r.Names) == 0 {
		return fmt.Errorf("rule must have at least `regex` or `names`")
	}
	if r.Regex != "" {
		re, err := regexp.Compile(r.Regex)
		if err != nil {
			return fmt.Errorf("parse regex %q: %w", r.Regex, err)
		}
		r.re = re
	}
	return nil
}

// expandPath expands $VAR references and a leading ~ in s.
func expandPath(s string) (string, error) {
	s = os.ExpandEnv(s)
	if s == "~" || strings.HasPrefix(s, "~/") {
		home, err := osUserHomeDir()
		if err != nil {
			return "", err
		}
		s = filepath.Join(home, strings.TrimPrefix(s[1:], "/"))
	}
	return s, nil
}
