package browse

import (
	"fmt"
	"strings"

	"github.com/marcus/tinted/internal/preview"
	"github.com/marcus/tinted/internal/styles"
)

const defaultVisible = 15

func (m Model) View() string {
	if m.mode == modeArtifact {
		return m.artifactView()
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("tinted"))
	b.WriteString(styles.Muted.Render("  theme browser"))
	b.WriteString("\n\n")

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}

	if m.loading && len(m.themes) == 0 {
		b.WriteString(styles.Muted.Render("loading catalog..."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.listView())
	}

	if len(m.previewColors) > 0 {
		b.WriteString("\n")
		b.WriteString(m.previewView())
	}

	b.WriteString("\n")
	if m.status != "" {
		if m.statusErr {
			b.WriteString(styles.StatusError.Render(m.status))
		} else {
			b.WriteString(styles.StatusOK.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.HelpBar.Render("enter apply · p preview · v artifact · r refresh · / filter · q quit"))
	b.WriteString("\n")
	return b.String()
}

// listView renders the scrollable catalog window, keeping the cursor
// visible and marking the currently applied theme.
func (m Model) listView() string {
	if len(m.visible) == 0 {
		return styles.Muted.Render("(no themes)") + "\n"
	}

	visibleCount := m.maxVisible()
	if visibleCount > len(m.visible) {
		visibleCount = len(m.visible)
	}

	scroll := m.scroll
	if m.cursor < scroll {
		scroll = m.cursor
	} else if m.cursor >= scroll+visibleCount {
		scroll = m.cursor - visibleCount + 1
	}

	current := m.opts.Store.Current()

	var b strings.Builder
	if scroll > 0 {
		b.WriteString(styles.Muted.Render("↑ more above"))
		b.WriteString("\n")
	}
	for i := 0; i < visibleCount; i++ {
		idx := scroll + i
		if idx >= len(m.visible) {
			break
		}
		name := m.visible[idx]

		cursor := "  "
		style := styles.ListItemNormal
		if idx == m.cursor {
			cursor = styles.ListCursor.Render("▸ ")
			style = styles.ListItemFocused
		}

		line := cursor + style.Render(name)
		if name == current && current != "" {
			line += styles.CurrentBadge.Render("  ● current")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if scroll+visibleCount < len(m.visible) {
		b.WriteString(styles.Muted.Render("↓ more below"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) previewView() string {
	strip := preview.Strip(m.previewColors, m.opts.SwatchWidth)
	selected := m.previewColors[m.swatchIdx]
	caption := fmt.Sprintf("%s  %s  (←/→ select, y copy)", m.previewTheme, selected)
	return styles.PreviewFrame.Render(strip+"\n"+styles.Muted.Render(caption)) + "\n"
}

func (m Model) artifactView() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("tinted"))
	b.WriteString(styles.Muted.Render("  " + m.opts.ArtifactPath))
	b.WriteString("\n\n")

	lines := strings.Split(m.artifact, "\n")
	maxLines := m.maxVisible() + 8
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		lines = append(lines, styles.Muted.Render("..."))
	}
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\n")
	b.WriteString(styles.HelpBar.Render("esc back"))
	b.WriteString("\n")
	return b.String()
}

// maxVisible derives the list window height from the terminal size,
// leaving room for the header, preview and footer.
func (m Model) maxVisible() int {
	if m.height == 0 {
		return defaultVisible
	}
	reserved := 8
	if len(m.previewColors) > 0 {
		reserved += 4
	}
	n := m.height - reserved
	if n < 3 {
		n = 3
	}
	return n
}
