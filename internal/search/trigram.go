package search

import (
	"sort"
	"strings"
	"unicode"
)

// minCoverage is the fraction of a query word's trigrams that must appear
// in an item before the word counts as matched.
const minCoverage = 0.4

// substringBonus rewards items containing a query word verbatim over
// fuzzy trigram overlap alone.
const substringBonus = 0.5

// Match is one hit: the index into the matcher's item slice and its score.
type Match struct {
	Index int
	Score float64
}

// TrigramMatcher matches free-text queries against a fixed item list.
// A query is split into words and every word must match. Matching is
// case- and diacritic-insensitive.
type TrigramMatcher struct {
	items      []Item
	normalized []string
	trigrams   []map[string]struct{}
}

// NewTrigramMatcher indexes the given items.
func NewTrigramMatcher(items []Item) *TrigramMatcher {
	m := &TrigramMatcher{
		items:      items,
		normalized: make([]string, len(items)),
		trigrams:   make([]map[string]struct{}, len(items)),
	}
	for i, it := range items {
		m.normalized[i] = normalize(it.FilterValue())
		m.trigrams[i] = generateTrigrams(m.normalized[i])
	}
	return m
}

// Search returns the matching items sorted best first. An empty or
// whitespace-only query matches every item with a zero score.
func (m *TrigramMatcher) Search(query string) []Match {
	words := strings.Fields(normalize(query))
	if len(words) == 0 {
		all := make([]Match, len(m.items))
		for i := range all {
			all[i].Index = i
		}
		return all
	}

	wordTris := make([]map[string]struct{}, len(words))
	for i, w := range words {
		wordTris[i] = generateTrigrams(w)
	}

	var matches []Match
	for i := range m.items {
		total := 0.0
		for j, w := range words {
			s := scoreWord(w, wordTris[j], m.normalized[i], m.trigrams[i])
			if s == 0 {
				total = 0
				break
			}
			total += s
		}
		if total > 0 {
			matches = append(matches, Match{Index: i, Score: total / float64(len(words))})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// scoreWord rates one query word against one item; 0 means no match.
// Words too short to produce useful trigrams fall back to substring
// lookup.
func scoreWord(word string, wordTris map[string]struct{}, text string, itemTris map[string]struct{}) float64 {
	if len(word) <= 2 {
		if strings.Contains(text, word) {
			return 1
		}
		return 0
	}

	// Coverage rather than Jaccard similarity: dividing by the union
	// would punish a short query word against a long item text.
	coverage := trigramCoverage(wordTris, itemTris)
	if coverage < minCoverage {
		return 0
	}
	if strings.Contains(text, word) {
		coverage += substringBonus
	}
	return coverage
}

// generateTrigrams returns the trigram set of s. The string is padded
// with two spaces on each side so prefixes and suffixes produce
// distinctive trigrams; all-whitespace trigrams are dropped.
func generateTrigrams(s string) map[string]struct{} {
	if s == "" {
		return nil
	}

	runes := []rune("  " + s + "  ")
	tris := make(map[string]struct{}, len(runes))
	for i := 0; i+3 <= len(runes); i++ {
		tri := string(runes[i : i+3])
		if strings.TrimSpace(tri) == "" {
			continue
		}
		tris[tri] = struct{}{}
	}
	return tris
}

// trigramCoverage returns the fraction of query trigrams present in item.
func trigramCoverage(query, item map[string]struct{}) float64 {
	if len(query) == 0 {
		return 0
	}
	hits := 0
	for tri := range query {
		if _, ok := item[tri]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(query))
}

// normalize lowercases and strips diacritics so "cafe" finds "café".
func normalize(s string) string {
	return RemoveDiacritics(strings.ToLower(s))
}

// RemoveDiacritics drops Unicode combining marks from s.
func RemoveDiacritics(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
