package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lcrowe/marquee/internal/auth"
	"github.com/lcrowe/marquee/internal/catalog"
	"github.com/lcrowe/marquee/internal/domain"
	"github.com/lcrowe/marquee/internal/service"
	"github.com/lcrowe/marquee/internal/tmdb"
)

// Command factories for async operations

// dashboardSampleSize is how many recent items feed the genre distribution
const dashboardSampleSize = 100

// WaitForSnapshotCmd blocks on the controller's snapshot channel and
// converts the next committed transition into a message
func WaitForSnapshotCmd(ch <-chan catalog.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return SnapshotMsg{Snapshot: snap}
	}
}

// LoadLookupsCmd loads the lookup tables and derives the tab set
func LoadLookupsCmd(svc *service.LookupService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := svc.Load(ctx); err != nil {
			return ErrMsg{Err: err, Context: "loading lookups"}
		}

		tabs := []catalog.Tab{catalog.TabAll}
		for _, mt := range svc.Types() {
			tabs = append(tabs, catalog.TabForType(mt))
		}
		return LookupsLoadedMsg{Tabs: tabs}
	}
}

// LoadDashboardCmd fetches the stats summary and a media sample for the
// genre distribution in parallel with each other's categories
func LoadDashboardCmd(stats *service.StatsService, repo domain.CatalogRepository, resolver domain.GenreResolver) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		var cachedAt time.Time
		summary, err := stats.Summary(ctx)
		if err != nil {
			// Fall back to the last persisted summary, if any
			cached, savedAt, ok := stats.CachedSummary()
			if !ok {
				return ErrMsg{Err: err, Context: "loading dashboard"}
			}
			summary = cached
			cachedAt = savedAt
		}

		sample := catalog.BuildParams(catalog.DefaultFilter(), catalog.PageState{
			CurrentPage:  1,
			ItemsPerPage: dashboardSampleSize,
		}, catalog.TabAll)

		var top []domain.GenreCount
		if page, err := repo.FetchMedia(ctx, sample); err == nil {
			top = service.TopGenres(page.Items, resolver)
		}

		return DashboardLoadedMsg{Summary: summary, TopGenres: top, CachedAt: cachedAt}
	}
}

// LoadDetailCmd fetches supplemental metadata for the selected item
func LoadDetailCmd(client *tmdb.Client, item domain.MediaSummary) tea.Cmd {
	return func() tea.Msg {
		if client == nil || !client.Enabled() || item.TMDBID == 0 {
			return DetailLoadedMsg{ItemID: item.ID, Detail: nil}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		detail, err := client.MovieDetail(ctx, item.TMDBID)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading metadata"}
		}
		return DetailLoadedMsg{ItemID: item.ID, Detail: detail}
	}
}

// LoginCmd attempts a backend login
func LoginCmd(svc *auth.Service, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return LoginResultMsg{Err: svc.Login(ctx, email, password)}
	}
}

// ClearStatusCmd clears the status message after a delay
func ClearStatusCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
