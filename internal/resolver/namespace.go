package resolver

import (
	"errors"

	"kubeswitch/internal/kube"
)

// ListNamespaces returns the candidate namespaces for a context. Alias
// rules are consulted first and returned verbatim; only when no rule
// matches is the external cluster query executed.
func (r *Resolver) ListNamespaces(ctx *kube.Context) ([]string, error) {
	if alias := r.Cfg.MatchNsAlias(ctx.Name); alias != nil {
		return alias, nil
	}
	return r.Cluster.ListNamespaces(r.Store.Path(ctx.Name))
}

// SelectNamespace resolves a namespace query for ctx: "-" takes the most
// recent history entry for this context with a different namespace, a
// literal value is returned verbatim without existence check, and an
// empty query lists candidates (minus the active namespace) for
// interactive selection.
func (r *Resolver) SelectNamespace(ctx *kube.Context, query string) (string, error) {
	if query == "-" {
		return r.selectNamespaceByHistory(ctx)
	}
	if query != "" {
		return query, nil
	}

	namespaces, err := r.ListNamespaces(ctx)
	if err != nil {
		return "", err
	}
	// Do not filter in place: the list may alias the config rule slice.
	candidates := make([]string, 0, len(namespaces))
	for _, ns := range namespaces {
		if ns != ctx.Namespace {
			candidates = append(candidates, ns)
		}
	}
	if len(candidates) == 0 {
		return "", errors.New("no namespace to select")
	}

	idx, err := r.Selector.Select(candidates)
	if err != nil {
		return "", err
	}
	return candidates[idx], nil
}

func (r *Resolver) selectNamespaceByHistory(ctx *kube.Context) (string, error) {
	reader, err := r.Journal.Open()
	if err != nil {
		return "", err
	}
	defer reader.Close()

	for {
		entry, err := reader.Next()
		if err != nil {
			return "", err
		}
		if entry == nil {
			return "", errors.New("no namespace history to select")
		}
		if entry.Name != ctx.Name || entry.Namespace == ctx.Namespace {
			continue
		}
		return entry.Namespace, nil
	}
}

// SetNamespace updates the in-memory context and, when the updateContext
// flag is enabled, persists the namespace into the credential file via
// the external cluster tool. Persistence runs regardless of which
// selector backend produced the namespace.
func (r *Resolver) SetNamespace(ctx *kube.Context, namespace string) error {
	ctx.Namespace = namespace
	if !r.Cfg.Kube.UpdateContext {
		return nil
	}
	return r.Cluster.SetContextNamespace(r.Store.Path(ctx.Name), namespace)
}
