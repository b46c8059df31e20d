package feed

import (
	"sort"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/pullfeed/internal/domain"
	subseq "github.com/sahilm/fuzzy"
)

// Match is a filtered item with the title positions that matched
type Match struct {
	Item           domain.Item
	MatchedIndexes []int // Byte offsets into Item.Title that matched (for highlighting)
}

// titleIndex implements sahilm/fuzzy.Source over lowercase titles
type titleIndex struct {
	lowerTitles []string
	offsets     [][]int // lowercase byte offset -> title byte offset
}

// lowerWithOffsets lowercases title rune by rune and records, for each byte of
// the result, the offset of the title rune it came from. Lowercasing can change
// a rune's encoded length, so match positions need mapping back.
func lowerWithOffsets(title string) (string, []int) {
	var b strings.Builder
	b.Grow(len(title))
	offsets := make([]int, 0, len(title))
	for i, r := range title {
		n, _ := b.WriteRune(unicode.ToLower(r))
		for range n {
			offsets = append(offsets, i)
		}
	}
	return b.String(), offsets
}

// titleOffsets maps match positions in lowerTitles[i] back onto the title.
func (idx titleIndex) titleOffsets(i int, matched []int) []int {
	out := make([]int, 0, len(matched))
	for _, m := range matched {
		if m < len(idx.offsets[i]) {
			out = append(out, idx.offsets[i][m])
		}
	}
	return out
}

// String returns the lowercase title at index i (implements fuzzy.Source)
func (idx titleIndex) String(i int) string { return idx.lowerTitles[i] }

// Len returns the number of items (implements fuzzy.Source)
func (idx titleIndex) Len() int { return len(idx.lowerTitles) }

// Filter returns the items whose title contains query as a subsequence,
// best match first. An empty query returns every item in feed order.
func (s *Service) Filter(query string) []Match {
	items := s.Items()
	query = strings.TrimSpace(query)
	if query == "" {
		matches := make([]Match, len(items))
		for i, it := range items {
			matches[i] = Match{Item: it}
		}
		return matches
	}

	idx := titleIndex{
		lowerTitles: make([]string, len(items)),
		offsets:     make([][]int, len(items)),
	}
	for i, it := range items {
		idx.lowerTitles[i], idx.offsets[i] = lowerWithOffsets(it.Title)
	}

	found := subseq.FindFrom(strings.ToLower(query), idx)
	matches := make([]Match, 0, len(found))
	for _, m := range found {
		matches = append(matches, Match{
			Item:           items[m.Index],
			MatchedIndexes: idx.titleOffsets(m.Index, m.MatchedIndexes),
		})
	}
	return matches
}

// Search is a looser lookup over titles and summaries that ignores case and
// diacritics, ranked by edit distance.
func (s *Service) Search(query string) []domain.Item {
	items := s.Items()
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	targets := make([]string, len(items))
	for i, it := range items {
		targets[i] = it.Title + " " + it.Summary
	}

	ranks := fuzzy.RankFindNormalizedFold(query, targets)
	sort.Stable(ranks)

	results := make([]domain.Item, 0, len(ranks))
	for _, r := range ranks {
		results = append(results, items[r.OriginalIndex])
	}
	return results
}
