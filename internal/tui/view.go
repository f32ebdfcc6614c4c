package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rshade/rosterview/internal/pagination"
	"github.com/rshade/rosterview/internal/render"
	"github.com/rshade/rosterview/internal/state"
)

const (
	labelAll     = "All"
	helpLine     = "←/→ page · 1-9 jump · c country · g gender · x clear · enter detail · q quit"
	detailFooter = "Press ESC to return"

	detailLabelWidth = 14
)

//nolint:gochecknoglobals // Shared title caser.
var titleCaser = cases.Title(language.English)

// label title-cases an option for display; empty means no constraint.
func label(v string) string {
	if v == "" {
		return labelAll
	}
	return titleCaser.String(v)
}

// View renders the current screen (Bubble Tea interface).
func (m Model) View() string {
	switch m.mode {
	case ViewStateQuitting:
		return ""
	case ViewStateDetail:
		return m.renderDetail()
	case ViewStateList:
		return m.renderList()
	default:
		return ""
	}
}

func (m Model) renderList() string {
	var sections []string
	sections = append(sections, HeaderStyle.Render("ROSTER"), m.renderFilterBar())

	switch m.view.Status {
	case state.StatusLoading:
		sections = append(sections, RenderLoading(m.loading))
	case state.StatusFailed:
		sections = append(sections, ErrorStyle.Render("Error: "+m.view.ErrorMessage))
	default:
		if len(m.view.Records) == 0 {
			sections = append(sections, InfoStyle.Render(render.MsgNoRecords))
		} else {
			sections = append(sections, m.table.View())
		}
		sections = append(sections, RenderPager(m.view.Pagination))
	}

	sections = append(sections, SubtleStyle.Render(helpLine))
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m Model) renderFilterBar() string {
	f := m.view.Filter
	sep := " " + SubtleStyle.Render("·") + " "
	return LabelStyle.Render("Country:") + " " + ValueStyle.Render(label(f.Country)) + sep +
		LabelStyle.Render("Gender:") + " " + ValueStyle.Render(label(f.Gender)) + sep +
		SubtleStyle.Render(fmt.Sprintf("%d matching", m.view.Pagination.TotalItems))
}

// RenderPager draws "‹ Prev 1 2 [3] Next ›". Prev is disabled on page 1 and
// Next on the last page, matching the key bindings.
func RenderPager(meta pagination.Meta) string {
	prev := "‹ Prev"
	if meta.HasPrevious {
		prev = PagerActiveStyle.Render(prev)
	} else {
		prev = PagerDisabledStyle.Render(prev)
	}

	next := "Next ›"
	if meta.HasNext {
		next = PagerActiveStyle.Render(next)
	} else {
		next = PagerDisabledStyle.Render(next)
	}

	parts := []string{prev}
	for _, n := range meta.PageNumbers() {
		if n == meta.CurrentPage {
			parts = append(parts, PagerActiveStyle.Render("["+strconv.Itoa(n)+"]"))
			continue
		}
		parts = append(parts, strconv.Itoa(n))
	}
	parts = append(parts, next)
	return strings.Join(parts, " ")
}

func (m Model) renderDetail() string {
	r := m.selected
	var content strings.Builder

	content.WriteString(HeaderStyle.Render("RECORD DETAIL"))
	content.WriteString("\n\n")

	fields := []struct{ name, value string }{
		{"ID:", strconv.Itoa(r.ID)},
		{"Name:", r.FullName()},
		{"Gender:", label(r.Gender)},
		{"Age:", strconv.Itoa(r.Age)},
		{"Location:", r.Location()},
		{"Designation:", r.Company.Title},
		{"Image:", r.Image},
	}
	for _, f := range fields {
		content.WriteString(LabelStyle.Width(detailLabelWidth).Render(f.name))
		content.WriteString(ValueStyle.Render(f.value))
		content.WriteString("\n")
	}

	content.WriteString(SubtleStyle.Render("\n" + detailFooter))
	return BoxStyle.Width(m.width-borderPadding).Render(content.String()) + "\n"
}
