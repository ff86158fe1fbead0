package search

import (
	"sort"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"github.com/lcrowe/marquee/internal/domain"
)

// Match pairs an item with its fuzzy match metadata for highlighting.
type Match struct {
	Item           domain.MediaSummary
	Score          int   // Higher is better
	MatchedIndexes []int // Character positions in the title that matched
}

// titleSource implements sahilm/fuzzy.Source over media titles
type titleSource struct {
	titles []string
}

func (s titleSource) String(i int) string { return s.titles[i] }
func (s titleSource) Len() int            { return len(s.titles) }

// Rank orders the current result items by fuzzy match quality against
// query, with character-level match positions for highlighting. Items
// that don't match are dropped. An empty query returns every item
// unranked.
func Rank(query string, items []domain.MediaSummary) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		matches := make([]Match, len(items))
		for i, item := range items {
			matches[i] = Match{Item: item}
		}
		return matches
	}

	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = strings.ToLower(item.Title)
	}

	results := fuzzy.FindFrom(strings.ToLower(query), titleSource{titles: titles})

	matches := make([]Match, 0, len(results))
	for _, r := range results {
		matches = append(matches, Match{
			Item:           items[r.Index],
			Score:          r.Score,
			MatchedIndexes: r.MatchedIndexes,
		})
	}
	return matches
}

// SuggestTitles returns catalog titles close to query, best first, for
// the search input's completion hint. Unicode-folding and case-insensitive.
func SuggestTitles(query string, titles []string, limit int) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	ranks := lfuzzy.RankFindNormalizedFold(query, titles)
	sort.Sort(ranks)

	if limit > 0 && len(ranks) > limit {
		ranks = ranks[:limit]
	}

	suggestions := make([]string, len(ranks))
	for i, r := range ranks {
		suggestions[i] = r.Target
	}
	return suggestions
}
