package category

import (
	"strings"

	"catalog/domain/shared"
)

// Filter 按名称做不区分大小写的子串匹配
type Filter = string

// SortableFields 分类仓储允许的排序字段
var SortableFields = []string{"name", "created_at"}

// Repository 分类仓储接口
type Repository interface {
	shared.SearchableRepository[CategoryID, *Category, Filter]
}

// SearchParams 分类搜索参数
type SearchParams = shared.SearchParams[Filter]

// SearchResult 分类搜索结果
type SearchResult = shared.SearchResult[*Category]

// NewSearchParams 归一化分类搜索参数
func NewSearchParams(in shared.SearchInput[Filter]) SearchParams {
	return shared.NewSearchParams(in)
}

// MatchesFilter 内存后端使用的过滤谓词
func MatchesFilter(c *Category, filter Filter) bool {
	return strings.Contains(strings.ToLower(c.Name()), strings.ToLower(filter))
}
