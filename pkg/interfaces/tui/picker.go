package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skhandal/doi/pkg/application/services/slicer"
	"github.com/skhandal/doi/pkg/domain/entities"
)

type column int

const (
	cityColumn column = iota
	productColumn
)

const maxVisibleOptions = 12

// optionList is one selectable dimension. The universe never changes;
// options shrink and grow as the other dimension narrows them.
type optionList struct {
	title    string
	universe []string
	options  []string
	cursor   int
	selected map[string]bool
}

func newOptionList(title string, universe []string) *optionList {
	l := &optionList{
		title:    title,
		universe: universe,
		selected: make(map[string]bool),
	}
	l.setOptions(universe)
	return l
}

// setOptions replaces the visible options, pinning "All" first
func (l *optionList) setOptions(values []string) {
	l.options = append([]string{entities.SelectAll}, values...)
	if l.cursor >= len(l.options) {
		l.cursor = len(l.options) - 1
	}
}

// filtered returns the options matching a case-insensitive substring
func (l *optionList) filtered(filter string) []string {
	if filter == "" {
		return l.options
	}

	needle := strings.ToLower(filter)
	var matches []string
	for _, opt := range l.options {
		if opt == entities.SelectAll || strings.Contains(strings.ToLower(opt), needle) {
			matches = append(matches, opt)
		}
	}
	return matches
}

func (l *optionList) clampCursor(filter string) {
	if visible := l.filtered(filter); l.cursor >= len(visible) {
		l.cursor = len(visible) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

// toggle flips the option under the cursor
func (l *optionList) toggle(filter string) {
	visible := l.filtered(filter)
	if len(visible) == 0 {
		return
	}
	value := visible[l.cursor]
	l.selected[value] = !l.selected[value]
}

// selectedValues returns the selection in universe order, "All" first
func (l *optionList) selectedValues() []string {
	var values []string
	if l.selected[entities.SelectAll] {
		values = append(values, entities.SelectAll)
	}
	for _, opt := range l.universe {
		if l.selected[opt] {
			values = append(values, opt)
		}
	}
	return values
}

func (l *optionList) selectionCount() int {
	return len(l.selectedValues())
}

// PickerModel is the city and product selection screen
type PickerModel struct {
	engine *slicer.Engine

	active    column
	cities    *optionList
	products  *optionList
	filter    textinput.Model
	filtering bool
	width     int
	height    int
}

// NewPickerModel creates the picker over a slicing engine
func NewPickerModel(engine *slicer.Engine) *PickerModel {
	filter := textinput.New()
	filter.Placeholder = "type to filter"
	filter.CharLimit = 40

	return &PickerModel{
		engine:   engine,
		active:   cityColumn,
		cities:   newOptionList("Cities", engine.Cities()),
		products: newOptionList("Products", engine.Products()),
		filter:   filter,
	}
}

func (p *PickerModel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Filtering reports whether the filter input owns the keyboard
func (p *PickerModel) Filtering() bool {
	return p.filtering
}

// Selection returns the raw picks for both dimensions
func (p *PickerModel) Selection() entities.Selection {
	return entities.Selection{
		Cities:   p.cities.selectedValues(),
		Products: p.products.selectedValues(),
	}
}

// activeList returns the column the cursor lives in
func (p *PickerModel) activeList() *optionList {
	if p.active == cityColumn {
		return p.cities
	}
	return p.products
}

// refreshOptions narrows each column by the other's concrete picks
func (p *PickerModel) refreshOptions() {
	sel := p.Selection()
	p.cities.setOptions(p.engine.AvailableCities(sel))
	p.products.setOptions(p.engine.AvailableProducts(sel))
	p.cities.clampCursor(p.filterFor(cityColumn))
	p.products.clampCursor(p.filterFor(productColumn))
}

// filterFor returns the filter text applied to a column. Only the
// active column is filtered.
func (p *PickerModel) filterFor(col column) string {
	if col == p.active {
		return p.filter.Value()
	}
	return ""
}

func (p *PickerModel) Update(msg tea.Msg) (*PickerModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	if p.filtering {
		switch keyMsg.String() {
		case "esc":
			p.filtering = false
			p.filter.SetValue("")
			p.filter.Blur()
			p.activeList().clampCursor("")
			return p, nil
		case "enter":
			p.filtering = false
			p.filter.Blur()
			return p, nil
		default:
			var cmd tea.Cmd
			p.filter, cmd = p.filter.Update(msg)
			p.activeList().clampCursor(p.filter.Value())
			return p, cmd
		}
	}

	switch keyMsg.String() {
	case "tab":
		p.filter.SetValue("")
		if p.active == cityColumn {
			p.active = productColumn
		} else {
			p.active = cityColumn
		}
	case "up", "k":
		if l := p.activeList(); l.cursor > 0 {
			l.cursor--
		}
	case "down", "j":
		l := p.activeList()
		if l.cursor < len(l.filtered(p.filter.Value()))-1 {
			l.cursor++
		}
	case " ":
		p.activeList().toggle(p.filter.Value())
		p.refreshOptions()
	case "/":
		p.filtering = true
		p.filter.Focus()
		return p, textinput.Blink
	case "enter":
		return p, func() tea.Msg { return showViewMsg{} }
	}

	return p, nil
}

func (p *PickerModel) View() string {
	title := titleStyle.Render("📊 Select cities and products")

	columns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		p.renderColumn(cityColumn),
		p.renderColumn(productColumn),
	)

	var filterLine string
	if p.filtering || p.filter.Value() != "" {
		filterLine = "\nFilter: " + p.filter.View()
	}

	help := helpStyle.Render(
		"Tab: Switch column • Space: Toggle • /: Filter • Enter: Show view • e: Export XLSX • q: Quit",
	)

	return lipgloss.JoinVertical(lipgloss.Left, title, columns, filterLine, help)
}

func (p *PickerModel) renderColumn(col column) string {
	list := p.cities
	if col == productColumn {
		list = p.products
	}

	visible := list.filtered(p.filterFor(col))

	start := 0
	if list.cursor >= maxVisibleOptions {
		start = list.cursor - maxVisibleOptions + 1
	}
	end := start + maxVisibleOptions
	if end > len(visible) {
		end = len(visible)
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d selected)", list.title, list.selectionCount())))
	b.WriteString("\n")

	for i := start; i < end; i++ {
		opt := visible[i]

		check := "[ ]"
		if list.selected[opt] {
			check = checkedStyle.Render("[x]")
		}

		label := itemStyle.Render(opt)
		cursor := " "
		if col == p.active && i == list.cursor {
			cursor = ">"
			label = cursorItemStyle.Render(opt)
		}

		fmt.Fprintf(&b, "%s %s %s\n", cursor, check, label)
	}

	if hidden := len(visible) - end; hidden > 0 {
		b.WriteString(helpStyle.Render(fmt.Sprintf("  and %d more", hidden)))
		b.WriteString("\n")
	}

	style := columnStyle
	if col == p.active {
		style = activeColumnStyle
	}
	return style.Render(b.String())
}
