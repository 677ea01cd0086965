package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/interlinear/pkg/render/interlinear"
	"github.com/matzehuels/interlinear/pkg/tier"
	"github.com/matzehuels/interlinear/pkg/timecode"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// TierPickerModel - Interactive tier selection
// =============================================================================

// pickerItem is one tier row in the picker.
type pickerItem struct {
	setting     interlinear.TierSetting
	annotations int
	checked     bool
}

// TierPickerModel is the bubbletea model that lets the user choose, order and
// style the tiers to render.
type TierPickerModel struct {
	Items     []pickerItem
	Cursor    int
	Height    int
	Offset    int
	Confirmed bool
}

// NewTierPickerModel creates a picker over the tiers of doc. Tiers named in
// preset start checked with their styles; without a preset every tier is
// checked.
func NewTierPickerModel(doc *tier.Document, preset []interlinear.TierSetting) TierPickerModel {
	byName := make(map[string]interlinear.TierSetting, len(preset))
	for _, s := range preset {
		byName[s.Name] = s
	}

	m := TierPickerModel{Height: 15}
	for _, t := range doc.Tiers() {
		item := pickerItem{
			setting:     interlinear.TierSetting{Name: t.Name},
			annotations: len(t.Annotations),
			checked:     len(preset) == 0,
		}
		if s, ok := byName[t.Name]; ok {
			item.setting = s
			item.checked = true
		}
		m.Items = append(m.Items, item)
	}
	return m
}

// Settings returns the checked tiers in list order.
func (m TierPickerModel) Settings() []interlinear.TierSetting {
	var out []interlinear.TierSetting
	for _, it := range m.Items {
		if it.checked {
			out = append(out, it.setting)
		}
	}
	return out
}

func (m TierPickerModel) Init() tea.Cmd {
	return nil
}

func (m TierPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "K", "shift+up":
			m.swap(-1)
		case "J", "shift+down":
			m.swap(1)
		case " ", "x":
			m.Items[m.Cursor].checked = !m.Items[m.Cursor].checked
		case "r":
			m.toggleReference()
		case "u":
			m.Items[m.Cursor].setting.Underline = !m.Items[m.Cursor].setting.Underline
		case "b":
			m.Items[m.Cursor].setting.Bold = !m.Items[m.Cursor].setting.Bold
		case "i":
			m.Items[m.Cursor].setting.Italic = !m.Items[m.Cursor].setting.Italic
		case "enter":
			if len(m.Settings()) == 0 {
				return m, nil
			}
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m *TierPickerModel) move(delta int) {
	next := m.Cursor + delta
	if next < 0 || next >= len(m.Items) {
		return
	}
	m.Cursor = next
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// swap moves the item under the cursor, changing the output order.
func (m *TierPickerModel) swap(delta int) {
	next := m.Cursor + delta
	if next < 0 || next >= len(m.Items) {
		return
	}
	m.Items[m.Cursor], m.Items[next] = m.Items[next], m.Items[m.Cursor]
	m.move(delta)
}

// toggleReference makes the current tier the only reference tier, or clears
// it when it already is.
func (m *TierPickerModel) toggleReference() {
	was := m.Items[m.Cursor].setting.Reference
	for i := range m.Items {
		m.Items[i].setting.Reference = false
	}
	if !was {
		m.Items[m.Cursor].setting.Reference = true
		m.Items[m.Cursor].checked = true
	}
}

func (m TierPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Tiers"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  J/K reorder  space toggle  r reference  u/b/i style  ⏎ render  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Items))
	for i := m.Offset; i < end; i++ {
		it := m.Items[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		box := "[ ]"
		if it.checked {
			box = "[x]"
		}

		line := fmt.Sprintf("%s%s %-20s %5d  %s", cursor, box, it.setting.Name, it.annotations, settingFlags(it.setting))
		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case it.checked:
			b.WriteString(listNormalStyle.Render(line))
		default:
			b.WriteString(listDimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] %d selected", m.Cursor+1, len(m.Items), len(m.Settings()))))
	return b.String()
}

// settingFlags summarizes the reference flag and styles of s, e.g. "ref u i".
func settingFlags(s interlinear.TierSetting) string {
	var flags []string
	if s.Reference {
		flags = append(flags, "ref")
	}
	if s.Underline {
		flags = append(flags, "u")
	}
	if s.Bold {
		flags = append(flags, "b")
	}
	if s.Italic {
		flags = append(flags, "i")
	}
	return strings.Join(flags, " ")
}

// =============================================================================
// Tier Table
// =============================================================================

// tierTable renders an overview of the tiers of doc with times in tf.
func tierTable(doc *tier.Document, tf timecode.Format) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, doc.TierCount())
	for i, t := range doc.Tiers() {
		begin, end, empty := "—", "—", 0
		if n := len(t.Annotations); n > 0 {
			begin = timecode.Millis(t.Annotations[0].Begin, tf)
			end = timecode.Millis(t.MaxEnd(), tf)
		}
		for _, a := range t.Annotations {
			if a.Value == "" {
				empty++
			}
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			t.Name,
			strconv.Itoa(len(t.Annotations)),
			strconv.Itoa(empty),
			begin,
			end,
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Tier", "Annotations", "Empty", "Begin", "End").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 1:
				return StyleHighlight
			case col == 2 || col == 3:
				return StyleNumber
			}
			return StyleDim
		}).
		Render()
}
