// Package kube implements the credential store: a directory tree of stored
// kubeconfig files addressed by store-relative, slash-separated names.
//
// Every regular file or symlink below the store root is a context;
// directories only provide structure. Symlinks whose target stays inside
// the store root are treated as aliases and carry a link label pointing at
// the aliased context. Only two kubeconfig fields are ever extracted here:
// the current-context name and that context's namespace.
package kube
