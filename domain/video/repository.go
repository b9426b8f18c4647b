package video

import (
	"strings"

	"catalog/domain/castmember"
	"catalog/domain/category"
	"catalog/domain/genre"
	"catalog/domain/shared"
)

// Filter 标题子串 + 三类关联成员；同类内命中任意一个，不同类之间取交集
type Filter struct {
	Title         string
	CategoryIDs   []category.CategoryID
	GenreIDs      []genre.GenreID
	CastMemberIDs []castmember.CastMemberID
}

func (f Filter) IsEmpty() bool {
	return strings.TrimSpace(f.Title) == "" &&
		len(f.CategoryIDs) == 0 &&
		len(f.GenreIDs) == 0 &&
		len(f.CastMemberIDs) == 0
}

var SortableFields = []string{"title", "created_at"}

type Repository interface {
	shared.SearchableRepository[VideoID, *Video, Filter]
}

type SearchParams = shared.SearchParams[Filter]
type SearchResult = shared.SearchResult[*Video]

func NewSearchParams(in shared.SearchInput[Filter]) SearchParams {
	return shared.NewSearchParams(in)
}

func MatchesFilter(v *Video, f Filter) bool {
	if f.Title != "" && !strings.Contains(strings.ToLower(v.Title()), strings.ToLower(f.Title)) {
		return false
	}
	if len(f.CategoryIDs) > 0 && !anyOf(f.CategoryIDs, v.HasCategory) {
		return false
	}
	if len(f.GenreIDs) > 0 && !anyOf(f.GenreIDs, v.HasGenre) {
		return false
	}
	if len(f.CastMemberIDs) > 0 && !anyOf(f.CastMemberIDs, v.HasCastMember) {
		return false
	}
	return true
}

func anyOf[ID any](ids []ID, has func(ID) bool) bool {
	for _, id := range ids {
		if has(id) {
			return true
		}
	}
	return false
}
