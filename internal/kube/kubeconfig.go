package kube

import (
	"fmt"
	"os"

	"k8s.io/client-go/tools/clientcmd"
)

// ReadNamespace extracts the namespace of the current context declared by
// the kubeconfig file at path. It falls back to DefaultNamespace when the
// file declares no current context or no namespace for it.
func ReadNamespace(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read kubeconfig file %q: %w", path, err)
	}
	cfg, err := clientcmd.Load(data)
	if err != nil {
		return "", fmt.Errorf("parse kubeconfig file %q: %w", path, err)
	}
	if ctx, ok := cfg.Contexts[cfg.CurrentContext]; ok && ctx.Namespace != "" {
		return ctx.Namespace, nil
	}
	return DefaultNamespace, nil
}
