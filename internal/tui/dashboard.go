package tui

import (
	"fmt"
	"strings"

	"github.com/lcrowe/marquee/internal/domain"
	"github.com/lcrowe/marquee/internal/tui/styles"
)

// genreBarWidth is the maximum width of a distribution bar
const genreBarWidth = 30

// renderDashboard renders the admin stats screen: one card per category
// and the top-genre distribution
func (m *Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Dashboard"))
	b.WriteString("\n\n")

	if m.Summary == nil {
		b.WriteString(m.Spinner.View() + " loading stats...")
		return styles.ListStyle.Render(b.String())
	}

	var cards []string
	for _, cat := range domain.Categories() {
		cards = append(cards, m.renderStatsCard(cat))
	}
	b.WriteString(strings.Join(cards, "  "))
	b.WriteString("\n\n")

	b.WriteString(styles.SubtitleStyle.Render("Top genres"))
	b.WriteString("\n")
	b.WriteString(m.renderGenreBars())

	if !m.StatsCachedAt.IsZero() {
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render("showing cached stats from " + m.StatsCachedAt.Format("Jan 2 15:04")))
	}

	if len(m.Summary.Failed) > 0 {
		names := make([]string, len(m.Summary.Failed))
		for i, cat := range m.Summary.Failed {
			names[i] = string(cat)
		}
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render("unavailable: " + strings.Join(names, ", ")))
	}

	b.WriteString("\n\n")
	b.WriteString(styles.DimStyle.Render("r refresh · esc back"))

	return styles.ListStyle.Render(b.String())
}

func (m *Model) renderStatsCard(cat domain.Category) string {
	stats := m.Summary.ByCategory(cat)

	failed := false
	for _, f := range m.Summary.Failed {
		if f == cat {
			failed = true
			break
		}
	}

	body := fmt.Sprintf("%s\n%d total · %d active", cat, stats.Total, stats.Active)
	if failed {
		body = fmt.Sprintf("%s\n%s", cat, styles.ErrorStyle.Render("unavailable"))
	}
	return styles.CardStyle.Render(body)
}

func (m *Model) renderGenreBars() string {
	if len(m.TopGenres) == 0 {
		return styles.DimStyle.Render("no genre data")
	}

	max := m.TopGenres[0].Count
	if max == 0 {
		max = 1
	}

	var b strings.Builder
	for _, gc := range m.TopGenres {
		width := gc.Count * genreBarWidth / max
		if width < 1 {
			width = 1
		}
		bar := styles.BarStyle.Render(strings.Repeat("█", width))
		b.WriteString(fmt.Sprintf("%-14s %s %d\n", gc.Name, bar, gc.Count))
	}
	return b.String()
}

// renderLogin renders the login prompt
func (m *Model) renderLogin() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Sign in"))
	b.WriteString("\n\n")
	b.WriteString("email:    " + m.EmailInput.View())
	b.WriteString("\n")
	b.WriteString("password: " + m.PassInput.View())
	b.WriteString("\n\n")
	b.WriteString(styles.DimStyle.Render("tab switch field · enter submit · esc cancel"))

	if m.StatusText != "" && m.StatusIsErr {
		b.WriteString("\n\n")
		b.WriteString(styles.ErrorStyle.Render(m.StatusText))
	}

	return styles.ListStyle.Render(b.String())
}
