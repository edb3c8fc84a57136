// Package search narrows already-fetched ads locally, without another
// backend round-trip: fuzzy matching over advertiser names and ad copy.
package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sahilm "github.com/sahilm/fuzzy"

	"github.com/adlens/adlens/internal/domain"
)

// Index is a filterable snapshot of accumulated ads. Haystack strings are
// lowercased once at build time so repeated keystrokes stay cheap.
type Index struct {
	ads       []domain.Ad
	haystacks []string
}

// NewIndex builds an index over the given ads.
func NewIndex(ads []domain.Ad) *Index {
	idx := &Index{
		ads:       ads,
		haystacks: make([]string, len(ads)),
	}
	for i, ad := range ads {
		idx.haystacks[i] = strings.ToLower(ad.AdvertiserName + " " + ad.AdCopy)
	}
	return idx
}

// String returns the haystack at i (implements sahilm/fuzzy.Source).
func (idx *Index) String(i int) string { return idx.haystacks[i] }

// Len returns the number of indexed ads (implements sahilm/fuzzy.Source).
func (idx *Index) Len() int { return len(idx.ads) }

// Result is one matching ad with highlight metadata.
type Result struct {
	Ad             domain.Ad
	Score          int   // lower is better
	MatchedIndexes []int // haystack character positions that matched
}

// Filter returns the ads matching query, best match first. Subsequence
// matching comes from sahilm/fuzzy; ranking prefers exact, prefix, and
// substring hits on the advertiser name before falling back to edit
// distance.
func Filter(query string, idx *Index) []Result {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || idx.Len() == 0 {
		return nil
	}

	matches := sahilm.FindFrom(query, idx)

	results := make([]Result, 0, len(matches))
	for _, m := range matches {
		ad := idx.ads[m.Index]
		results = append(results, Result{
			Ad:             ad,
			Score:          rankScore(strings.ToLower(ad.AdvertiserName), query),
			MatchedIndexes: m.MatchedIndexes,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})
	return results
}

// rankScore rates how well the advertiser name matches the query.
// Lower is better.
func rankScore(name, query string) int {
	switch {
	case name == query:
		return 0
	case strings.HasPrefix(name, query):
		return 10
	case strings.Contains(name, query):
		return 50
	}
	return 100 + fuzzy.LevenshteinDistance(query, name)
}
