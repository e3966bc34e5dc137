// Package browse implements the interactive theme browser.
package browse

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/quick"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/tinted/internal/apply"
	"github.com/marcus/tinted/internal/catalog"
	"github.com/marcus/tinted/internal/preview"
	"github.com/marcus/tinted/internal/state"
)

// Options wires the browser to its collaborators.
type Options struct {
	Runner       apply.Runner
	Applier      *apply.Applier
	Store        *state.Store
	ArtifactPath string // dark artifact, shown by the artifact view
	SwatchWidth  int
	QuitOnApply  bool // select mode: exit after the first successful apply
}

type viewMode int

const (
	modeList viewMode = iota
	modeArtifact
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Apply    key.Binding
	Preview  key.Binding
	Refresh  key.Binding
	Artifact key.Binding
	Copy     key.Binding
	PrevHex  key.Binding
	NextHex  key.Binding
	Filter   key.Binding
	Quit     key.Binding
	Back     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		Apply:    key.NewBinding(key.WithKeys("enter")),
		Preview:  key.NewBinding(key.WithKeys("p")),
		Refresh:  key.NewBinding(key.WithKeys("r")),
		Artifact: key.NewBinding(key.WithKeys("v")),
		Copy:     key.NewBinding(key.WithKeys("y")),
		PrevHex:  key.NewBinding(key.WithKeys("left", "h")),
		NextHex:  key.NewBinding(key.WithKeys("right", "l")),
		Filter:   key.NewBinding(key.WithKeys("/")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c")),
		Back:     key.NewBinding(key.WithKeys("esc")),
	}
}

// Model is the Bubble Tea model for browsing and applying themes.
type Model struct {
	opts Options
	keys keyMap

	themes  []string // full catalog
	visible []string // catalog filtered by the search input
	cursor  int
	scroll  int

	filter    textinput.Model
	filtering bool

	previewTheme  string
	previewColors []string
	swatchIdx     int

	artifact string
	mode     viewMode

	loading   bool
	status    string
	statusErr bool

	width  int
	height int
}

// New creates a browse model. The catalog is fetched on Init.
func New(opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "filter themes"
	ti.Prompt = "/ "
	ti.CharLimit = 64

	return Model{
		opts:    opts,
		keys:    defaultKeyMap(),
		filter:  ti,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return loadCatalog(m.opts.Runner)
}

// Messages

type catalogMsg struct {
	themes []string
	err    error
}

type appliedMsg struct {
	requested string
	result    apply.Result
	err       error
}

type previewMsg struct {
	theme  string
	colors []string
	err    error
}

type artifactMsg struct {
	text string
	err  error
}

type copiedMsg struct {
	hex string
	err error
}

// Commands

func loadCatalog(r apply.Runner) tea.Cmd {
	return func() tea.Msg {
		out, err := r.Run("list")
		if err != nil {
			return catalogMsg{err: err}
		}
		return catalogMsg{themes: catalog.Parse(out)}
	}
}

func doApply(a *apply.Applier, name string) tea.Cmd {
	return func() tea.Msg {
		result, err := a.Apply(name)
		return appliedMsg{requested: name, result: result, err: err}
	}
}

func doPreview(a *apply.Applier, name string) tea.Cmd {
	return func() tea.Msg {
		out, err := a.Preview(name)
		if err != nil {
			return previewMsg{theme: name, err: err}
		}
		return previewMsg{theme: name, colors: preview.Colors(out)}
	}
}

func loadArtifact(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return artifactMsg{err: err}
		}
		return artifactMsg{text: highlight(string(data), path)}
	}
}

func copyHex(hex string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{hex: hex, err: clipboard.WriteAll(hex)}
	}
}

// highlight renders artifact source with chroma for terminal display,
// falling back to the raw text when highlighting fails.
func highlight(source, path string) string {
	lexerName := "plaintext"
	if l := lexers.Match(filepath.Base(path)); l != nil {
		lexerName = l.Config().Name
	}
	var buf strings.Builder
	if err := quick.Highlight(&buf, source, lexerName, "terminal256", "monokai"); err != nil {
		return source
	}
	return buf.String()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case catalogMsg:
		m.loading = false
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("list failed: %v", msg.err), true)
			return m, nil
		}
		m.themes = msg.themes
		m.applyFilter()
		if len(m.themes) == 0 {
			m.setStatus("no themes found", true)
		} else {
			m.setStatus(fmt.Sprintf("%d themes", len(m.themes)), false)
		}
		return m, nil

	case appliedMsg:
		m.loading = false
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("apply failed: %v", msg.err), true)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("applied %s", msg.result.Theme), false)
		if m.opts.QuitOnApply {
			return m, tea.Quit
		}
		return m, nil

	case previewMsg:
		m.loading = false
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("preview failed: %v", msg.err), true)
			return m, nil
		}
		m.previewTheme = msg.theme
		m.previewColors = msg.colors
		m.swatchIdx = 0
		if len(msg.colors) == 0 {
			m.setStatus(fmt.Sprintf("no swatches in preview of %s", msg.theme), true)
		} else {
			m.setStatus(fmt.Sprintf("previewing %s", msg.theme), false)
		}
		return m, nil

	case artifactMsg:
		m.loading = false
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("artifact: %v", msg.err), true)
			return m, nil
		}
		m.artifact = msg.text
		m.mode = modeArtifact
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("copy failed: %v", msg.err), true)
		} else {
			m.setStatus(fmt.Sprintf("copied %s", msg.hex), false)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		switch {
		case key.Matches(msg, m.keys.Back):
			m.filtering = false
			m.filter.Blur()
			m.filter.SetValue("")
			m.applyFilter()
			return m, nil
		case msg.String() == "enter":
			m.filtering = false
			m.filter.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.applyFilter()
		return m, cmd
	}

	if m.mode == modeArtifact {
		if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Quit) || key.Matches(msg, m.keys.Artifact) {
			m.mode = modeList
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.previewColors != nil {
			m.previewTheme = ""
			m.previewColors = nil
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Apply):
		if name, ok := m.selected(); ok {
			m.loading = true
			m.setStatus(fmt.Sprintf("applying %s...", name), false)
			return m, doApply(m.opts.Applier, name)
		}
		return m, nil

	case key.Matches(msg, m.keys.Preview):
		if name, ok := m.selected(); ok && name != catalog.Random {
			m.loading = true
			return m, doPreview(m.opts.Applier, name)
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, loadCatalog(m.opts.Runner)

	case key.Matches(msg, m.keys.Artifact):
		if m.opts.ArtifactPath != "" {
			m.loading = true
			return m, loadArtifact(m.opts.ArtifactPath)
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevHex):
		if m.swatchIdx > 0 {
			m.swatchIdx--
		}
		return m, nil

	case key.Matches(msg, m.keys.NextHex):
		if m.swatchIdx < len(m.previewColors)-1 {
			m.swatchIdx++
		}
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		if len(m.previewColors) > 0 {
			return m, copyHex(m.previewColors[m.swatchIdx])
		}
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filter.Focus()
		return m, textinput.Blink
	}

	return m, nil
}

// selected returns the theme under the cursor.
func (m *Model) selected() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return "", false
	}
	return m.visible[m.cursor], true
}

// applyFilter recomputes the visible list and clamps cursor position.
func (m *Model) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if query == "" {
		m.visible = m.themes
	} else {
		m.visible = nil
		for _, t := range m.themes {
			if strings.Contains(strings.ToLower(t), query) {
				m.visible = append(m.visible, t)
			}
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = max(0, len(m.visible)-1)
	}
	m.scroll = 0
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}
