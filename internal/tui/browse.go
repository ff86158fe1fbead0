package tui

import (
	"fmt"
	"strings"

	"github.com/lcrowe/marquee/internal/catalog"
	"github.com/lcrowe/marquee/internal/domain"
	"github.com/lcrowe/marquee/internal/search"
	"github.com/lcrowe/marquee/internal/tui/styles"
)

// renderBrowse renders the public catalog screen: tab bar, search input,
// result list, pagination footer, and status line
func (m *Model) renderBrowse() string {
	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderSearchBar())
	b.WriteString("\n\n")
	b.WriteString(m.renderList())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return styles.ListStyle.Render(b.String())
}

func (m *Model) renderTabs() string {
	var tabs []string
	for i, tab := range m.Tabs {
		label := tab.Name
		if i == m.TabIndex {
			tabs = append(tabs, styles.ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, styles.InactiveTabStyle.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

func (m *Model) renderSearchBar() string {
	if m.SearchFocused {
		bar := styles.AccentStyle.Render("search: ") + m.SearchInput.View()
		if hint := m.searchHint(); hint != "" {
			bar += styles.DimStyle.Render("  " + hint)
		}
		return bar
	}
	if v := m.SearchInput.Value(); v != "" {
		return styles.DimStyle.Render("search: ") + v
	}
	return styles.DimStyle.Render("press / to search")
}

// searchHint suggests the closest on-page title while typing
func (m *Model) searchHint() string {
	query := m.SearchInput.Value()
	if strings.TrimSpace(query) == "" {
		return ""
	}

	titles := make([]string, len(m.Snapshot.Items))
	for i, item := range m.Snapshot.Items {
		titles[i] = item.Title
	}
	if s := search.SuggestTitles(query, titles, 1); len(s) > 0 && !strings.EqualFold(s[0], query) {
		return "≈ " + s[0]
	}
	return ""
}

func (m *Model) renderList() string {
	snap := m.Snapshot

	if snap.Err != nil {
		msg := styles.ErrorStyle.Render("✗ " + describeError(snap.Err))
		return msg + "\n" + styles.DimStyle.Render("press r to retry")
	}

	if snap.Phase == catalog.PhaseLoading && len(snap.Items) == 0 {
		return m.Spinner.View() + " loading catalog..."
	}

	if len(snap.Items) == 0 {
		return styles.DimStyle.Render("no results. press c to clear filters")
	}

	// Fuzzy-rank the current page against the pending search text so
	// matching characters are highlighted while the debounced backend
	// query is still in flight
	matches := search.Rank(m.SearchInput.Value(), snap.Items)

	var b strings.Builder
	for i, match := range matches {
		line := m.renderItem(match, i == m.Cursor)
		b.WriteString(line)
		b.WriteString("\n")
	}
	if snap.Phase == catalog.PhaseLoading {
		b.WriteString(m.Spinner.View() + " refreshing...")
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderItem(match search.Match, selected bool) string {
	item := match.Item

	title := highlightMatches(item.Title, match.MatchedIndexes)
	meta := fmt.Sprintf("%d · %s · %s", item.ReleaseYear, item.FormattedRating(), item.FormattedDuration())

	line := fmt.Sprintf("%s  %s", title, styles.DimStyle.Render(meta))
	if selected {
		line = styles.HighlightStyle.Render("▸") + " " + line
		if m.Detail != nil && m.DetailItemID == item.ID {
			line += "\n" + styles.SubtitleStyle.Render("  "+truncate(m.Detail.Overview, 120))
		}
		return line
	}
	return "  " + line
}

// highlightMatches styles the matched character positions of a title
func highlightMatches(title string, indexes []int) string {
	if len(indexes) == 0 {
		return styles.TitleStyle.Render(title)
	}

	matched := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		matched[i] = true
	}

	var b strings.Builder
	for i, r := range []rune(title) {
		if matched[i] {
			b.WriteString(styles.MatchStyle.Render(string(r)))
		} else {
			b.WriteString(styles.TitleStyle.Render(string(r)))
		}
	}
	return b.String()
}

func (m *Model) renderFooter() string {
	snap := m.Snapshot

	page := fmt.Sprintf("page %d/%d · %d items", snap.Page.CurrentPage, snap.Page.TotalPages, snap.Page.TotalItems)
	sort := fmt.Sprintf("sort: %s %s", snap.Filter.SortField, snap.Filter.SortOrder)

	parts := []string{page, sort}

	typeID := snap.Filter.TypeID
	if typeID == "" {
		typeID = snap.Tab.TypeID
	}
	if typeID != "" && m.LookupSvc != nil {
		if name, ok := m.LookupSvc.ResolveTypeName(typeID); ok {
			parts = append(parts, "type: "+name)
		}
	}

	if snap.AdminEnabled {
		parts = append(parts, styles.AccentStyle.Render("admin"))
	}
	if m.StatusText != "" {
		status := m.StatusText
		if m.StatusIsErr {
			status = styles.ErrorStyle.Render(status)
		} else {
			status = styles.SuccessStyle.Render(status)
		}
		parts = append(parts, status)
	}

	return styles.DimStyle.Render(strings.Join(parts, "  ·  "))
}

// describeError renders the error taxonomy as a user-facing message
func describeError(err error) string {
	switch {
	case domain.IsNetworkError(err):
		return "catalog backend is unreachable"
	case domain.IsDecodeError(err):
		return "catalog backend sent an unexpected response"
	default:
		if status, ok := domain.IsHTTPError(err); ok {
			return fmt.Sprintf("catalog backend error (status %d)", status)
		}
		return err.Error()
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
