// Package filter narrows a list by a typed query. Every whitespace
// separated term must occur in an item's text, case-insensitively; matches
// are ranked by how early and how cleanly the terms hit, ties keeping list
// order.
package filter

import (
	"slices"
	"strings"
	"unicode"

	"charm.land/lipgloss/v2"
)

// Match is an item that passed the filter.
type Match[T any] struct {
	Item  T
	Index int // position in the unfiltered list
	Score int
	// Runes are the rune positions of matched characters in the item text.
	Runes []int
}

// Apply filters items by query. text returns the searchable text of an
// item. An empty query keeps every item in order.
func Apply[T any](items []T, query string, text func(T) string) []Match[T] {
	terms := strings.Fields(strings.ToLower(query))
	out := make([]Match[T], 0, len(items))
	for i, item := range items {
		if len(terms) == 0 {
			out = append(out, Match[T]{Item: item, Index: i})
			continue
		}
		score, positions, ok := match(strings.ToLower(text(item)), terms)
		if !ok {
			continue
		}
		out = append(out, Match[T]{Item: item, Index: i, Score: score, Runes: positions})
	}
	if len(terms) > 0 {
		slices.SortStableFunc(out, func(a, b Match[T]) int { return b.Score - a.Score })
	}
	return out
}

// Items strips the match metadata.
func Items[T any](matches []Match[T]) []T {
	out := make([]T, len(matches))
	for i, m := range matches {
		out[i] = m.Item
	}
	return out
}

// match scores s against every term. Each term scores 100, plus 10 when it
// starts s and 5 when it starts a word, minus the noise of longer texts.
func match(s string, terms []string) (score int, positions []int, ok bool) {
	runes := []rune(s)
	for _, term := range terms {
		idx := strings.Index(s, term)
		if idx < 0 {
			return 0, nil, false
		}
		start := len([]rune(s[:idx]))
		score += 100
		switch {
		case start == 0:
			score += 10
		case !unicode.IsLetter(runes[start-1]) && !unicode.IsDigit(runes[start-1]):
			score += 5
		}
		for i := range len([]rune(term)) {
			positions = append(positions, start+i)
		}
	}
	score -= max(len(runes)-len(strings.Join(terms, "")), 0)
	slices.Sort(positions)
	return score, slices.Compact(positions), true
}

// Highlight styles the runes of s at positions with hit and the rest with
// base.
func Highlight(s string, positions []int, hit, base lipgloss.Style) string {
	if len(positions) == 0 {
		return base.Render(s)
	}
	return lipgloss.StyleRunes(s, positions, hit, base)
}

// Within returns the positions in [from, from+n), shifted to start at zero.
// It maps matches in a joined search text back onto one of its fields.
func Within(positions []int, from, n int) []int {
	var out []int
	for _, p := range positions {
		if p >= from && p < from+n {
			out = append(out, p-from)
		}
	}
	return out
}
