package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/farukalways/freelancing-platform-create/internal/repository"
)

const searchCachePattern = "jobs:search:*"

type jobSearchCacheKeyInput struct {
	Search string `json:"search"`
	Filter string `json:"filter"`
	Sort   string `json:"sort"`
}

// JobsSearchCacheKey derives a stable key for one search query. Two param
// sets share a key only when they run the same SQL: the search term is
// lowercased because the title match is case-insensitive, the sort folds to
// the three orderings the store distinguishes, and the category filter stays
// verbatim because its match is exact.
func JobsSearchCacheKey(params repository.SearchParams) string {
	in := jobSearchCacheKeyInput{
		Search: strings.ToLower(params.Search),
		Filter: params.Filter,
		Sort:   normalizeSort(params.Sort),
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return "jobs:search:" + hex.EncodeToString(sum[:])
}

func normalizeSort(s string) string {
	switch strings.ToLower(s) {
	case "asc":
		return "asc"
	case "desc":
		return "desc"
	default:
		return ""
	}
}
