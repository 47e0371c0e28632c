// Package protocol serializes a switch result into the fixed line-oriented
// stdout contract consumed by the shell wrapper function. The wrapper is
// the only consumer; any change to the line order or markers breaks every
// installed wrapper script.
package protocol

import (
	"fmt"
	"io"
)

// Sentinel is the first protocol line; the wrapper ignores any output that
// does not start with it.
const Sentinel = "__switch__"

// Result is the terminal outcome of a successful resolution, kept as data
// until it crosses the process boundary. A clean result instructs the
// wrapper to unset everything.
type Result struct {
	// Cmd is the cluster tool alias the wrapper should (re)define.
	Cmd string

	// ExportKubeconfig asks the wrapper to export the full credential
	// file path as KUBECONFIG.
	ExportKubeconfig bool

	// Clean unsets the active context instead of switching.
	Clean bool

	Name      string
	Namespace string
	Display   string
	Exec      string
	Path      string
}

// Clean returns the result that unsets the active context.
func Clean(cmd string, exportKubeconfig bool) *Result {
	return &Result{Cmd: cmd, ExportKubeconfig: exportKubeconfig, Clean: true}
}

// Emit writes the protocol lines in their fixed order:
//
//	__switch__
//	<command alias>
//	<export kubeconfig: 0|1>
//	<clean: 0|1>
//
// and, unless clean, five further lines: context name, namespace, display
// string, tool executable, absolute credential path.
func (r *Result) Emit(w io.Writer) error {
	lines := []string{Sentinel, r.Cmd, flag(r.ExportKubeconfig), flag(r.Clean)}
	if !r.Clean {
		lines = append(lines, r.Name, r.Namespace, r.Display, r.Exec, r.Path)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("emit switch protocol: %w", err)
		}
	}
	return nil
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
