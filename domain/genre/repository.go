package genre

import (
	"strings"

	"catalog/domain/category"
	"catalog/domain/shared"
)

// Filter 名称子串 + 分类成员；CategoryIDs 命中任意一个即可
type Filter struct {
	Name        string
	CategoryIDs []category.CategoryID
}

func (f Filter) IsEmpty() bool {
	return strings.TrimSpace(f.Name) == "" && len(f.CategoryIDs) == 0
}

var SortableFields = []string{"name", "created_at"}

type Repository interface {
	shared.SearchableRepository[GenreID, *Genre, Filter]
}

type SearchParams = shared.SearchParams[Filter]
type SearchResult = shared.SearchResult[*Genre]

func NewSearchParams(in shared.SearchInput[Filter]) SearchParams {
	return shared.NewSearchParams(in)
}

func MatchesFilter(g *Genre, f Filter) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(g.Name()), strings.ToLower(f.Name)) {
		return false
	}
	if len(f.CategoryIDs) > 0 {
		for _, id := range f.CategoryIDs {
			if g.HasCategory(id) {
				return true
			}
		}
		return false
	}
	return true
}
