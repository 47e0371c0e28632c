// Package selector provides the interactive matcher used to pick one
// context or namespace from a candidate list. Two backends exist: the
// external fzf subprocess and a built-in fuzzy filter.
package selector

import (
	"errors"
	"fmt"

	"kubeswitch/internal/config"
)

// Failure modes callers may want to tell apart. All of them abort the
// current invocation; none may be masked by the resolver.
var (
	// ErrCanceled reports that the user dismissed the selection.
	ErrCanceled = errors.New("selection canceled")

	// ErrNoMatch reports that the selection finished with no candidate.
	ErrNoMatch = errors.New("no match selected")

	// ErrNotInstalled reports a missing external matcher binary.
	ErrNotInstalled = errors.New("matcher not installed")
)

// Selector picks one label from an ordered list of unique labels and
// returns its 0-based index. Selection blocks on terminal input.
type Selector interface {
	Select(items []string) (int, error)
}

// New returns the backend configured by the `selector` field. The field
// is validated at config load, so an unknown name here is a programmer
// error.
func New(backend string) (Selector, error) {
	switch backend {
	case config.SelectorFzf:
		return &Fzf{}, nil
	case config.SelectorBuiltin:
		return &Builtin{}, nil
	default:
		return nil, fmt.Errorf("unknown selector backend %q", backend)
	}
}
