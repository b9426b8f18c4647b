package castmember

import (
	"strings"

	"catalog/domain/shared"
)

// Filter 名称子串（不区分大小写）+ 类型；两者同时给出时取交集
type Filter struct {
	Name string
	Type *Type
}

func (f Filter) IsEmpty() bool {
	return strings.TrimSpace(f.Name) == "" && f.Type == nil
}

var SortableFields = []string{"name", "created_at"}

type Repository interface {
	shared.SearchableRepository[CastMemberID, *CastMember, Filter]
}

type SearchParams = shared.SearchParams[Filter]
type SearchResult = shared.SearchResult[*CastMember]

func NewSearchParams(in shared.SearchInput[Filter]) SearchParams {
	return shared.NewSearchParams(in)
}

// MatchesFilter 内存后端使用的过滤谓词
func MatchesFilter(m *CastMember, f Filter) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(m.Name()), strings.ToLower(f.Name)) {
		return false
	}
	if f.Type != nil && m.Type() != *f.Type {
		return false
	}
	return true
}
