package selector

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
	"github.com/mattn/go-runewidth"
)

func init() {
	algo.Init("default")
}

// Builtin is the embedded selector backend: a small terminal filter list
// scored with fzf's matching algorithm, drawn on stderr so stdout stays
// reserved for the switch protocol.
type Builtin struct{}

func (b *Builtin) Select(items []string) (int, error) {
	model := newFuzzyModel(items)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	final, err := program.Run()
	if err != nil {
		return 0, fmt.Errorf("run builtin selector: %w", err)
	}

	m := final.(fuzzyModel)
	switch {
	case m.canceled:
		return 0, ErrCanceled
	case m.choice < 0:
		return 0, ErrNoMatch
	default:
		return m.choice, nil
	}
}

const fuzzyListHeight = 10

var (
	fuzzyCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	fuzzyCountStyle  = lipgloss.NewStyle().Faint(true)
)

type fuzzyCandidate struct {
	index int // position in the original items slice
	label string
	score int
}

type fuzzyModel struct {
	input    textinput.Model
	items    []string
	filtered []fuzzyCandidate
	cursor   int
	width    int
	slab     *util.Slab

	choice   int
	canceled bool
}

func newFuzzyModel(items []string) fuzzyModel {
	input := textinput.New()
	input.Prompt = "> "
	input.Focus()

	m := fuzzyModel{
		input:  input,
		items:  items,
		width:  80,
		slab:   util.MakeSlab(100*1024, 2048),
		choice: -1,
	}
	m.filter("")
	return m
}

func (m fuzzyModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m fuzzyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.canceled = true
			return m, tea.Quit
		case "enter":
			if len(m.filtered) > 0 {
				m.choice = m.filtered[m.cursor].index
			}
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.filter(m.input.Value())
		m.cursor = 0
	}
	return m, cmd
}

func (m fuzzyModel) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString(fuzzyCountStyle.Render(fmt.Sprintf("  %d/%d", len(m.filtered), len(m.items))))
	b.WriteString("\n")

	for i, candidate := range m.filtered {
		if i >= fuzzyListHeight {
			break
		}
		label := runewidth.Truncate(candidate.label, m.width-4, "..")
		if i == m.cursor {
			b.WriteString(fuzzyCursorStyle.Render("> " + label))
		} else {
			b.WriteString("  " + label)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// filter recomputes the candidate list for a pattern. An empty pattern
// keeps every item in its original order; otherwise candidates are ranked
// by match score, ties keeping input order.
func (m *fuzzyModel) filter(pattern string) {
	m.filtered = m.filtered[:0]
	if pattern == "" {
		for i, item := range m.items {
			m.filtered = append(m.filtered, fuzzyCandidate{index: i, label: item})
		}
		return
	}

	runes := []rune(strings.ToLower(pattern))
	for i, item := range m.items {
		chars := util.ToChars([]byte(item))
		result, _ := algo.FuzzyMatchV2(false, true, true, &chars, runes, false, m.slab)
		if result.Score > 0 {
			m.filtered = append(m.filtered, fuzzyCandidate{index: i, label: item, score: result.Score})
		}
	}
	sort.SliceStable(m.filtered, func(a, b int) bool {
		return m.filtered[a].score > m.filtered[b].score
	})
}
