// Package shell renders the init and completion scripts sourced by the
// user's shell. The wrapper function defined by the init script is what
// turns the switch protocol printed on stdout into exported variables
// and aliases in the calling session.
package shell

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed wrapper.sh
var wrapperScript string

//go:embed completion.bash
var completionBash string

//go:embed completion.zsh
var completionZsh string

// cmdPlaceholder is replaced with the configured wrapper command name.
const cmdPlaceholder = "__KS_CMD__"

func supported(shell string) error {
	switch shell {
	case "bash", "zsh":
		return nil
	default:
		return fmt.Errorf("unsupported shell %q, expect bash or zsh", shell)
	}
}

// InitScript returns the wrapper script for the given shell. The
// wrapper is identical for bash and zsh, only the completion hookup
// differs.
func InitScript(shell, cmd string) (string, error) {
	if err := supported(shell); err != nil {
		return "", err
	}
	return strings.ReplaceAll(wrapperScript, cmdPlaceholder, cmd), nil
}

// CompletionScript returns the completion definitions for the given
// shell, bound to both the wrapper command and the plain binary.
func CompletionScript(shell, cmd string) (string, error) {
	if err := supported(shell); err != nil {
		return "", err
	}
	script := completionBash
	if shell == "zsh" {
		script = completionZsh
	}
	return strings.ReplaceAll(script, cmdPlaceholder, cmd), nil
}
