// Package kubectl shells out to the configured cluster tool, scoped to one
// stored credential file via the KUBECONFIG environment variable. This is
// the only way kubeswitch talks to a cluster; it never uses the Kubernetes
// API directly.
package kubectl

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"kubeswitch/pkg/logging"
)

// Runner invokes the external cluster tool.
type Runner struct {
	// Exec is the tool executable name or path, `kubectl` by default.
	Exec string
}

// NewRunner returns a runner for the given executable.
func NewRunner(executable string) *Runner {
	return &Runner{Exec: executable}
}

// ListNamespaces queries the cluster behind a credential file for its
// namespace names, one per output line, blanks trimmed.
func (r *Runner) ListNamespaces(kubeconfig string) ([]string, error) {
	out, err := r.run(kubeconfig,
		"get", "namespaces",
		"-o", "custom-columns=NAME:.metadata.name",
		"--no-headers")
	if err != nil {
		return nil, err
	}

	var namespaces []string
	for _, line := range strings.Split(out, "\n") {
		if ns := strings.TrimSpace(line); ns != "" {
			namespaces = append(namespaces, ns)
		}
	}
	return namespaces, nil
}

// SetContextNamespace persists a namespace into the credential file's
// current context. This mutates the file; callers gate it behind the
// updateContext config flag.
func (r *Runner) SetContextNamespace(kubeconfig, namespace string) error {
	_, err := r.run(kubeconfig, "config", "set-context", "--current", "--namespace="+namespace)
	return err
}

func (r *Runner) run(kubeconfig string, args ...string) (string, error) {
	logging.Debug("kubectl", "executing: %s %s", r.Exec, strings.Join(args, " "))
	cmd := exec.Command(r.Exec, args...)
	cmd.Env = append(os.Environ(), "KUBECONFIG="+kubeconfig)
	cmd.Stdin = os.Stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("execute '%s %s': %w: %s", r.Exec, strings.Join(args, " "), err, detail)
		}
		return "", fmt.Errorf("execute '%s %s': %w", r.Exec, strings.Join(args, " "), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}
