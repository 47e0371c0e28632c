package resolver

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kubeswitch/internal/config"
	"kubeswitch/internal/history"
	"kubeswitch/internal/kube"
	"kubeswitch/internal/selector"
)

// fakeSelector picks the candidate with a fixed label and records what it
// was offered.
type fakeSelector struct {
	pick     string
	err      error
	gotItems []string
}

func (s *fakeSelector) Select(items []string) (int, error) {
	s.gotItems = items
	if s.err != nil {
		return 0, s.err
	}
	for i, item := range items {
		if item == s.pick {
			return i, nil
		}
	}
	return 0, fmt.Errorf("label %q not offered", s.pick)
}

type fakeCluster struct {
	namespaces []string
	listCalls  int
	setCalls   []string
}

func (c *fakeCluster) ListNamespaces(kubeconfig string) ([]string, error) {
	c.listCalls++
	return c.namespaces, nil
}

func (c *fakeCluster) SetContextNamespace(kubeconfig, namespace string) error {
	c.setCalls = append(c.setCalls, kubeconfig+"="+namespace)
	return nil
}

func newTestResolver(t *testing.T, env Environ) (*Resolver, *fakeSelector, *fakeCluster) {
	t.Helper()
	cfg := config.Default()
	cfg.Kube.Dir = filepath.Join(t.TempDir(), "store")

	sel := &fakeSelector{}
	cluster := &fakeCluster{}
	r := &Resolver{
		Cfg:      &cfg,
		Store:    kube.NewStore(cfg.Kube.Dir),
		Journal:  history.NewJournal(filepath.Join(t.TempDir(), history.FileName)),
		Selector: sel,
		Cluster:  cluster,
		Env:      env,
	}
	return r, sel, cluster
}

func addContext(t *testing.T, r *Resolver, name, namespace string) {
	t.Helper()
	content := `apiVersion: v1
kind: Config
current-context: main
contexts:
- name: main
  context:
    cluster: main
    user: main
`
	if namespace != "" {
		content += "    namespace: " + namespace + "\n"
	}
	require.NoError(t, r.Store.WriteFile(name, []byte(content)))
}

func TestSelectDashReturnsLatestDifferentContext(t *testing.T) {
	r, _, _ := newTestResolver(t, Environ{Name: "prod/a"})
	addContext(t, r, "prod/a", "")
	addContext(t, r, "prod/b", "")
	require.NoError(t, r.Journal.Append("prod/b", "staging"))
	require.NoError(t, r.Journal.Append("prod/a", "default"))

	ctx, err := r.Select("-", ModeSwitch)
	require.NoError(t, err)
	assert.Equal(t, "prod/b", ctx.Name)
	assert.Equal(t, "staging", ctx.Namespace, "history namespace wins over the stored one")
}

func TestSelectDashRoundTrip(t *testing.T) {
	r, _, _ := newTestResolver(t, Environ{Name: "other"})
	addContext(t, r, "other", "")
	addContext(t, r, "prod/a", "")
	require.NoError(t, r.Journal.Append("prod/a", "monitoring"))

	ctx, err := r.Select("-", ModeSwitch)
	require.NoError(t, err)
	assert.Equal(t, "prod/a", ctx.Name)
	assert.Equal(t, "monitoring", ctx.Namespace)
}

func TestSelectDashNoHistory(t *testing.T) {
	r, _, _ := newTestResolver(t, Environ{})

	_, err := r.Select("-", ModeSwitch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no history")
}

func TestSelectDirPrefixExcludesCurrentAndStripsLabels(t *testing.T) {
	r, sel, _ := newTestResolver(t, Environ{Name: "prod/a"})
	addContext(t, r, "prod/a", "")
	addContext(t, r, "prod/b", "")
	addContext(t, r, "dev", "")
	sel.pick = "b"

	ctx, err := r.Select("prod/", ModeSwitch)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, sel.gotItems, "candidates restricted to prod/, current excluded, prefix stripped")
	assert.Equal(t, "prod/b", ctx.Name)
}

func TestSelectDirPrefixEmpty(t *testing.T) {
	r, _, _ := newTestResolver(t, Environ{})
	addContext(t, r, "dev", "")

	_, err := r.Select("prod/", ModeSwitch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no context under "prod"`)
}

func TestSelectLiteralName(t *testing.T) {
	r, _, _ := newTestResolver(t, Environ{})
	addContext(t, r, "prod/a", "monitoring")

	ctx, err := r.Select("prod/a", ModeSwitch)
	require.NoError(t, err)
	assert.Equal(t, "prod/a", ctx.Name)
	assert.Equal(t, "monitoring", ctx.Namespace)
	assert.False(t, ctx.Current)
}

func TestSelectLiteralNotFound(t *testing.T) {
	r, _, _ := newTestResolver(t, Environ{})

	_, err := r.Select("missing", ModeGet)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `context "missing" not found`)

	ctx, err := r.Select("missing", ModeGetOrCreate)
	require.NoError(t, err)
	assert.Equal(t, "missing", ctx.Name)
	assert.Equal(t, kube.DefaultNamespace, ctx.Namespace)
	assert.False(t, ctx.Current)
}

func TestSelectEmptyResolvesCurrentWithEnvOverride(t *testing.T) {
	r, _, _ := newTestResolver(t, Environ{Name: "prod/a", Namespace: "override"})
	addContext(t, r, "prod/a", "stored")

	ctx, err := r.Select("", ModeGet)
	require.NoError(t, err)
	assert.True(t, ctx.Current)
	assert.Equal(t, "override", ctx.Namespace, "environment namespace overrides the stored one")
}

func TestSelectEmptyFallsBackToStoredNamespace(t *testing.T) {
	r, _, _ := newTestResolver(t, Environ{Name: "prod/a"})
	addContext(t, r, "prod/a", "stored")

	ctx, err := r.Select("", ModeGet)
	require.NoError(t, err)
	assert.Equal(t, "stored", ctx.Namespace)
}

func TestSelectEmptyInteractiveSwitch(t *testing.T) {
	r, sel, _ := newTestResolver(t, Environ{Name: "dev"})
	addContext(t, r, "dev", "")
	addContext(t, r, "prod/a", "")
	sel.pick = "prod/a"

	ctx, err := r.Select("", ModeSwitch)
	require.NoError(t, err)
	assert.Equal(t, []string{"prod/a"}, sel.gotItems, "switch mode excludes the current context")
	assert.Equal(t, "prod/a", ctx.Name)
}

func TestSelectEmptyStore(t *testing.T) {
	r, _, _ := newTestResolver(t, Environ{})

	_, err := r.Select("", ModeSwitch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no context to select")
}

func TestSelectorFailurePropagates(t *testing.T) {
	r, sel, _ := newTestResolver(t, Environ{})
	addContext(t, r, "prod/a", "")
	sel.err = selector.ErrCanceled

	_, err := r.Select("", ModeSwitch)
	require.Error(t, err)
	assert.ErrorIs(t, err, selector.ErrCanceled)
}

func TestCurrentWithoutEnv(t *testing.T) {
	r, _, _ := newTestResolver(t, Environ{})

	_, err := r.Current()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not switched to any context")
}

func TestSwitchRecordsHistoryAndBuildsResult(t *testing.T) {
	r, _, _ := newTestResolver(t, Environ{})
	addContext(t, r, "prod/a", "monitoring")

	ctx, err := r.Select("prod/a", ModeSwitch)
	require.NoError(t, err)

	result, err := r.Switch(ctx)
	require.NoError(t, err)
	assert.False(t, result.Clean)
	assert.Equal(t, "k", result.Cmd)
	assert.Equal(t, "prod/a", result.Name)
	assert.Equal(t, "monitoring", result.Namespace)
	assert.Equal(t, "kubectl", result.Exec)
	assert.Equal(t, r.Store.Path("prod/a"), result.Path)

	reader, err := r.Journal.Open()
	require.NoError(t, err)
	defer reader.Close()
	entry, err := reader.Next()
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, history.Entry{Name: "prod/a", Namespace: "monitoring"}, *entry)
}

func TestUnsetBuildsCleanResult(t *testing.T) {
	r, _, _ := newTestResolver(t, Environ{})

	result := r.Unset()
	assert.True(t, result.Clean)
	assert.Equal(t, "k", result.Cmd)
}

func TestHistoryErrorIsNotMaskedBySelect(t *testing.T) {
	r, _, _ := newTestResolver(t, Environ{Name: "prod/a"})
	require.NoError(t, r.Journal.Append("gone", "default"))

	_, err := r.Select("-", ModeSwitch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `history context "gone" not found`)
	assert.False(t, errors.Is(err, selector.ErrNoMatch))
}
