package config

import "regexp"

// Selector backend names accepted for the `selector` field.
const (
	SelectorFzf     = "fzf"
	SelectorBuiltin = "builtin"
)

// Config is the top-level kubeswitch configuration.
type Config struct {
	// Cmd is the shell alias the wrapper function is bound to.
	Cmd string `yaml:"cmd"`

	// Editor is the command used by the edit flow. Environment variables
	// and a leading ~ are expanded during validation.
	Editor string `yaml:"editor"`

	// Selector picks the interactive matcher backend.
	Selector string `yaml:"selector"`

	Kube KubeConfig `yaml:"kube"`

	// NsAlias overrides namespace listing for matching context names.
	// Rules are evaluated in order; the first match wins.
	NsAlias []AliasRule `yaml:"nsAlias"`

	// Path is the file the configuration was loaded from, empty when the
	// defaults are in effect.
	Path string `yaml:"-"`
}

// KubeConfig groups the settings for the stored kubeconfig directory and
// the external cluster tool.
type KubeConfig struct {
	// Exec is the cluster tool executable, invoked with KUBECONFIG
	// pointing at a stored credential file.
	Exec string `yaml:"exec"`

	// Cmd is the shell alias the wrapper defines for the cluster tool.
	Cmd string `yaml:"cmd"`

	// Dir is the root directory holding stored kubeconfig files.
	Dir string `yaml:"dir"`

	// ExportKubeconfig makes the shell wrapper export KUBECONFIG with the
	// full path of the switched credential file.
	ExportKubeconfig bool `yaml:"exportKubeconfig"`

	// UpdateContext persists namespace changes back into the credential
	// file via the external cluster tool. Opt-in: it mutates the file.
	UpdateContext bool `yaml:"updateContext"`
}

// AliasRule maps context names to a fixed namespace list. A rule matches
// when its regex matches the name or the name is in Names. At least one of
// the two must be set, and Alias must be non-empty.
type AliasRule struct {
	Regex string   `yaml:"regex"`
	Names []string `yaml:"names"`
	Alias []string `yaml:"alias"`

	re *regexp.Regexp
}
