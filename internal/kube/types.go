package kube

import "fmt"

// DefaultNamespace is used when a stored kubeconfig declares no namespace
// for its current context.
const DefaultNamespace = "default"

// Context is a stored kubeconfig resolved to a logical name. It is built
// transiently per invocation; only the underlying file (and optionally a
// symlink) persists on disk.
type Context struct {
	// Name is the path of the credential file relative to the store root,
	// always slash-separated.
	Name string

	// Namespace is the active namespace for this context.
	Namespace string

	// Current reports whether this context matches the one the parent
	// shell declared active.
	Current bool

	// Link is the store-relative path this context is a symlink alias of,
	// empty for plain files and for symlinks leaving the store root.
	Link string
}

// Display renders the human-readable form used in listings and in the
// switch protocol display line.
func (c *Context) Display() string {
	if c.Link != "" {
		return fmt.Sprintf("%s (%s) -> %s", c.Name, c.Link, c.Namespace)
	}
	return fmt.Sprintf("%s -> %s", c.Name, c.Namespace)
}
