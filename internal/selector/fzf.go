package selector

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Fzf runs the external fzf binary, piping the candidate labels to its
// stdin and reading the selected label back from its stdout. stderr is
// inherited so fzf can draw its interface on the terminal.
type Fzf struct{}

func (f *Fzf) Select(items []string) (int, error) {
	var input strings.Builder
	for _, item := range items {
		input.WriteString(item)
		input.WriteByte('\n')
	}

	var output bytes.Buffer
	cmd := exec.Command("fzf")
	cmd.Stdin = strings.NewReader(input.String())
	cmd.Stdout = &output
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return 0, fmt.Errorf("fzf: %w, please install it first", ErrNotInstalled)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			switch code := exitErr.ExitCode(); code {
			case 1:
				return 0, fmt.Errorf("fzf: %w", ErrNoMatch)
			case 2:
				return 0, fmt.Errorf("fzf returned an error")
			case 130:
				return 0, fmt.Errorf("fzf: %w", ErrCanceled)
			default:
				return 0, fmt.Errorf("fzf was terminated with code %d", code)
			}
		}
		return 0, fmt.Errorf("launch fzf: %w", err)
	}

	result := strings.TrimSpace(output.String())
	for idx, item := range items {
		if item == result {
			return idx, nil
		}
	}
	return 0, fmt.Errorf("cannot find %q in fzf output", result)
}
