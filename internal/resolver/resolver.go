// Package resolver turns a user query into a resolved context and
// namespace. It orchestrates the credential store, the history journal,
// the interactive selector, and the external cluster tool; everything it
// needs from the environment is passed in explicitly.
package resolver

import (
	"errors"
	"fmt"
	"strings"

	"kubeswitch/internal/config"
	"kubeswitch/internal/history"
	"kubeswitch/internal/kube"
	"kubeswitch/internal/kubectl"
	"kubeswitch/internal/protocol"
	"kubeswitch/internal/selector"
)

// Mode controls how a context query is resolved.
type Mode int

const (
	// ModeSwitch excludes the currently active context from candidates.
	ModeSwitch Mode = iota

	// ModeGet requires the queried context to exist.
	ModeGet

	// ModeGetOrCreate synthesizes a descriptor for a missing name, used
	// by the edit flow to create new credential files.
	ModeGetOrCreate
)

// ClusterCommand is the surface of the external cluster tool the resolver
// depends on.
type ClusterCommand interface {
	ListNamespaces(kubeconfig string) ([]string, error)
	SetContextNamespace(kubeconfig, namespace string) error
}

// Resolver resolves context and namespace queries for one invocation.
type Resolver struct {
	Cfg      *config.Config
	Store    *kube.Store
	Journal  *history.Journal
	Selector selector.Selector
	Cluster  ClusterCommand
	Env      Environ
}

// New wires a resolver from the loaded configuration.
func New(cfg *config.Config, env Environ, sel selector.Selector, journal *history.Journal) *Resolver {
	return &Resolver{
		Cfg:      cfg,
		Store:    kube.NewStore(cfg.Kube.Dir),
		Journal:  journal,
		Selector: sel,
		Cluster:  kubectl.NewRunner(cfg.Kube.Exec),
		Env:      env,
	}
}

// List returns every stored context, with the environment-declared one
// marked current.
func (r *Resolver) List(subdir string) ([]*kube.Context, error) {
	ctxs, err := r.Store.List(subdir)
	if err != nil {
		return nil, err
	}
	for _, ctx := range ctxs {
		r.finalize(ctx)
	}
	return ctxs, nil
}

// Current resolves the environment-declared context against the store.
func (r *Resolver) Current() (*kube.Context, error) {
	if r.Env.Name == "" {
		return nil, errors.New("you have not switched to any context yet")
	}
	ctx, err := r.Store.Get(r.Env.Name)
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		return nil, fmt.Errorf("current context %q not found in store", r.Env.Name)
	}
	return r.finalize(ctx), nil
}

// Select resolves a context query:
//
//   - "-" returns the most recent history entry different from the
//     current context;
//   - a query ending in "/" restricts interactive selection to that store
//     subdirectory;
//   - any other non-empty query is a direct name lookup;
//   - an empty query resolves the current context when the mode permits
//     it, and falls back to interactive selection over the whole store.
func (r *Resolver) Select(query string, mode Mode) (*kube.Context, error) {
	if query == "-" {
		return r.selectByHistory()
	}
	if strings.HasSuffix(query, "/") {
		return r.selectFromList(strings.TrimSuffix(query, "/"), mode)
	}
	if query != "" {
		ctx, err := r.Store.Get(query)
		if err != nil {
			return nil, err
		}
		if ctx == nil {
			if mode == ModeGetOrCreate {
				return r.finalize(&kube.Context{Name: query, Namespace: kube.DefaultNamespace}), nil
			}
			return nil, fmt.Errorf("context %q not found", query)
		}
		return r.finalize(ctx), nil
	}

	if (mode == ModeGet || mode == ModeGetOrCreate) && r.Env.Name != "" {
		return r.Current()
	}
	return r.selectFromList("", mode)
}

// selectByHistory walks the journal newest-first for the latest entry
// naming a context other than the current one.
func (r *Resolver) selectByHistory() (*kube.Context, error) {
	reader, err := r.Journal.Open()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	for {
		entry, err := reader.Next()
		if err != nil {
			return nil, err
		}
		if entry == nil {
			return nil, errors.New("no history context to select")
		}
		if entry.Name == r.Env.Name {
			continue
		}

		ctx, err := r.Store.Get(entry.Name)
		if err != nil {
			return nil, err
		}
		if ctx == nil {
			return nil, fmt.Errorf("history context %q not found in store", entry.Name)
		}
		// The recorded namespace wins over the one stored in the file.
		ctx.Namespace = entry.Namespace
		return ctx, nil
	}
}

// selectFromList hands the candidate labels to the interactive selector.
// With a subdir the labels are shown with the directory prefix stripped.
func (r *Resolver) selectFromList(subdir string, mode Mode) (*kube.Context, error) {
	ctxs, err := r.List(subdir)
	if err != nil {
		return nil, err
	}
	if mode == ModeSwitch {
		kept := ctxs[:0]
		for _, ctx := range ctxs {
			if !ctx.Current {
				kept = append(kept, ctx)
			}
		}
		ctxs = kept
	}
	if len(ctxs) == 0 {
		if subdir != "" {
			return nil, fmt.Errorf("no context under %q", subdir)
		}
		return nil, errors.New("no context to select")
	}

	labels := make([]string, len(ctxs))
	for i, ctx := range ctxs {
		labels[i] = ctx.Name
		if subdir != "" {
			labels[i] = strings.TrimPrefix(ctx.Name, subdir+"/")
		}
	}
	idx, err := r.Selector.Select(labels)
	if err != nil {
		return nil, err
	}
	return ctxs[idx], nil
}

// Switch records ctx in the journal and builds the protocol result for
// the shell wrapper. Nothing is emitted here; emission happens at the
// outermost boundary after full success.
func (r *Resolver) Switch(ctx *kube.Context) (*protocol.Result, error) {
	if err := r.Journal.Append(ctx.Name, ctx.Namespace); err != nil {
		return nil, err
	}
	return &protocol.Result{
		Cmd:              r.Cfg.Kube.Cmd,
		ExportKubeconfig: r.Cfg.Kube.ExportKubeconfig,
		Name:             ctx.Name,
		Namespace:        ctx.Namespace,
		Display:          ctx.Display(),
		Exec:             r.Cfg.Kube.Exec,
		Path:             r.Store.Path(ctx.Name),
	}, nil
}

// Unset builds the clean protocol result.
func (r *Resolver) Unset() *protocol.Result {
	return protocol.Clean(r.Cfg.Kube.Cmd, r.Cfg.Kube.ExportKubeconfig)
}

// finalize marks ctx current when it matches the environment-declared
// name; the environment namespace, when set, overrides the stored one.
func (r *Resolver) finalize(ctx *kube.Context) *kube.Context {
	if r.Env.Name == "" || ctx.Name != r.Env.Name {
		return ctx
	}
	ctx.Current = true
	if r.Env.Namespace != "" {
		ctx.Namespace = r.Env.Namespace
	}
	return ctx
}
