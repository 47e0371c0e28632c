package config

// Default returns the built-in configuration used when no config file
// exists. Every field can be overridden by the user's file.
func Default() Config {
	return Config{
		Cmd:      "ks",
		Editor:   "$EDITOR",
		Selector: SelectorFzf,
		Kube: KubeConfig{
			Exec: "kubectl",
			Cmd:  "k",
			Dir:  "~/.kube/config",
		},
	}
}
