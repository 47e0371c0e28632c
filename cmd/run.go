package cmd

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/fatih/color"

	"kubeswitch/internal/config"
	"kubeswitch/internal/history"
	"kubeswitch/internal/resolver"
	"kubeswitch/internal/selector"
	"kubeswitch/internal/shell"
	"kubeswitch/pkg/logging"
)

var (
	currentMark = color.New(color.FgGreen, color.Bold)
	linkColor   = color.New(color.FgCyan)
	faintColor  = color.New(color.Faint)
)

type options struct {
	query string

	namespace bool
	edit      bool
	delete    bool
	list      bool
	current   bool
	unset     bool
	link      string
	initShell string
	compShell string
	compList  bool
	debug     bool
}

// run dispatches to the selected flow. Only the switch protocol and
// the generated shell scripts go to out; everything meant for human
// eyes goes to errOut, because the wrapper captures stdout.
func (o *options) run(out, errOut io.Writer, in io.Reader) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	switch {
	case o.initShell != "":
		script, err := shell.InitScript(o.initShell, cfg.Cmd)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, script)
		return err
	case o.compShell != "":
		script, err := shell.CompletionScript(o.compShell, cfg.Cmd)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, script)
		return err
	}

	r, err := newResolver(&cfg)
	if err != nil {
		return err
	}

	switch {
	case o.compList:
		return o.runCompList(r, out)
	case o.link != "":
		return o.runLink(r, errOut)
	case o.list:
		return o.runList(r, errOut)
	case o.current:
		return o.runCurrent(r, errOut)
	case o.unset:
		return r.Unset().Emit(out)
	case o.delete:
		return o.runDelete(r, out, errOut, in)
	case o.edit:
		return o.runEdit(r, errOut)
	case o.namespace:
		return o.runNamespace(r, out)
	default:
		return o.runSwitch(r, out)
	}
}

func newResolver(cfg *config.Config) (*resolver.Resolver, error) {
	sel, err := selector.New(cfg.Selector)
	if err != nil {
		return nil, err
	}
	journal, err := history.DefaultJournal()
	if err != nil {
		return nil, err
	}
	return resolver.New(cfg, resolver.EnvironFromOS(), sel, journal), nil
}

func (o *options) runSwitch(r *resolver.Resolver, out io.Writer) error {
	ctx, err := r.Select(o.query, resolver.ModeSwitch)
	if err != nil {
		return err
	}
	result, err := r.Switch(ctx)
	if err != nil {
		return err
	}
	return result.Emit(out)
}

func (o *options) runNamespace(r *resolver.Resolver, out io.Writer) error {
	ctx, err := r.Current()
	if err != nil {
		return err
	}
	ns, err := r.SelectNamespace(ctx, o.query)
	if err != nil {
		return err
	}
	if err := r.SetNamespace(ctx, ns); err != nil {
		return err
	}
	result, err := r.Switch(ctx)
	if err != nil {
		return err
	}
	return result.Emit(out)
}

func (o *options) runList(r *resolver.Resolver, errOut io.Writer) error {
	ctxs, err := r.List("")
	if err != nil {
		return err
	}
	for _, ctx := range ctxs {
		mark := "  "
		if ctx.Current {
			mark = currentMark.Sprint("* ")
		}
		name := ctx.Name
		if ctx.Current {
			name = currentMark.Sprint(name)
		}
		line := mark + name
		if ctx.Link != "" {
			line += linkColor.Sprintf(" (%s)", ctx.Link)
		}
		line += faintColor.Sprintf(" -> %s", ctx.Namespace)
		fmt.Fprintln(errOut, line)
	}
	return nil
}

func (o *options) runCurrent(r *resolver.Resolver, errOut io.Writer) error {
	ctx, err := r.Current()
	if err != nil {
		return err
	}
	fmt.Fprintln(errOut, ctx.Display())
	return nil
}

func (o *options) runCompList(r *resolver.Resolver, out io.Writer) error {
	ctxs, err := r.Store.List("")
	if err != nil {
		return err
	}
	for _, ctx := range ctxs {
		fmt.Fprintln(out, ctx.Name)
	}
	return nil
}

func (o *options) runLink(r *resolver.Resolver, errOut io.Writer) error {
	if err := r.Store.CreateLink(o.link); err != nil {
		return err
	}
	fmt.Fprintf(errOut, "created link %s\n", o.link)
	return nil
}

func (o *options) runDelete(r *resolver.Resolver, out, errOut io.Writer, in io.Reader) error {
	ctx, err := r.Select(o.query, resolver.ModeGet)
	if err != nil {
		return err
	}

	fmt.Fprintf(errOut, "delete context %q? [y/N] ", ctx.Name)
	reader := bufio.NewReader(in)
	answer, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer != "y" && answer != "yes" {
		return fmt.Errorf("canceled")
	}

	if err := r.Store.Remove(ctx.Name); err != nil {
		return err
	}
	logging.Debug("cmd", "deleted context %q", ctx.Name)

	// Deleting the active context leaves the session pointing at a
	// file that no longer exists, so reset it.
	if ctx.Current {
		return r.Unset().Emit(out)
	}
	return nil
}

func (o *options) runEdit(r *resolver.Resolver, errOut io.Writer) error {
	ctx, err := r.Select(o.query, resolver.ModeGetOrCreate)
	if err != nil {
		return err
	}

	original, err := r.Store.ReadFile(ctx.Name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp("", "kubeswitch-edit-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(original); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := runEditor(r.Cfg.Editor, tmp.Name(), errOut); err != nil {
		return err
	}

	edited, err := os.ReadFile(tmp.Name())
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(edited)) == 0 {
		return fmt.Errorf("edited content is empty, nothing saved")
	}
	if bytes.Equal(edited, original) {
		fmt.Fprintln(errOut, "content not changed, nothing to do")
		return nil
	}

	if err := r.Store.WriteFile(ctx.Name, edited); err != nil {
		return err
	}
	fmt.Fprintf(errOut, "saved context %q\n", ctx.Name)
	return nil
}

// runEditor is a package variable so tests can stub the subprocess.
var runEditor = func(editor, path string, errOut io.Writer) error {
	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	// The editor must not draw on stdout: the shell wrapper captures
	// it for the switch protocol.
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	logging.Debug("cmd", "running editor: %s %s", editor, path)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run editor %q: %w", editor, err)
	}
	return nil
}
