package shared

import (
	"strings"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 15
)

// SortDirection 排序方向
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// EmptyChecker 过滤条件可以声明自己是否为空
// 所有键都为空值的过滤条件会被归一化为 nil
type EmptyChecker interface {
	IsEmpty() bool
}

// SearchInput 搜索请求的原始输入，由 NewSearchParams 归一化
type SearchInput[F any] struct {
	Page    int
	PerPage int
	Sort    string
	SortDir string
	Filter  *F
}

// SearchParams 归一化后的分页 + 排序 + 过滤请求，与存储后端无关
type SearchParams[F any] struct {
	page    int
	perPage int
	sort    string
	sortDir SortDirection
	filter  *F
}

// NewSearchParams 归一化搜索参数:
//   - page/perPage 小于 1 时回退到默认值 1/15
//   - sort 为空时 sortDir 也为空；sortDir 不是 asc/desc 时取 asc
//   - 空过滤条件（nil、空字符串、IsEmpty() 为 true）归一化为 nil
func NewSearchParams[F any](in SearchInput[F]) SearchParams[F] {
	p := SearchParams[F]{
		page:    in.Page,
		perPage: in.PerPage,
		sort:    strings.TrimSpace(in.Sort),
	}
	if p.page < 1 {
		p.page = DefaultPage
	}
	if p.perPage < 1 {
		p.perPage = DefaultPerPage
	}
	if p.sort != "" {
		switch SortDirection(strings.ToLower(strings.TrimSpace(in.SortDir))) {
		case SortDesc:
			p.sortDir = SortDesc
		default:
			p.sortDir = SortAsc
		}
	}
	p.filter = normalizeFilter(in.Filter)
	return p
}

func normalizeFilter[F any](filter *F) *F {
	if filter == nil {
		return nil
	}
	switch v := any(*filter).(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
	case EmptyChecker:
		if v.IsEmpty() {
			return nil
		}
	}
	if v, ok := any(filter).(EmptyChecker); ok && v.IsEmpty() {
		return nil
	}
	return filter
}

func (p SearchParams[F]) Page() int              { return p.page }
func (p SearchParams[F]) PerPage() int           { return p.perPage }
func (p SearchParams[F]) Sort() string           { return p.sort }
func (p SearchParams[F]) SortDir() SortDirection { return p.sortDir }
func (p SearchParams[F]) Filter() *F             { return p.filter }
func (p SearchParams[F]) HasFilter() bool        { return p.filter != nil }
func (p SearchParams[F]) Offset() int            { return (p.page - 1) * p.perPage }
func (p SearchParams[F]) Limit() int             { return p.perPage }

// SortableBy 排序字段是否在允许列表中
func (p SearchParams[F]) SortableBy(allowed []string) bool {
	if p.sort == "" {
		return false
	}
	for _, field := range allowed {
		if field == p.sort {
			return true
		}
	}
	return false
}

// SearchResult 分页结果；LastPage 每次计算，不重复存储
type SearchResult[E any] struct {
	Items       []E
	Total       int
	CurrentPage int
	PerPage     int
}

// NewSearchResult 创建分页结果，Items 为 nil 时替换为空切片
func NewSearchResult[E any](items []E, total, currentPage, perPage int) SearchResult[E] {
	if items == nil {
		items = []E{}
	}
	return SearchResult[E]{
		Items:       items,
		Total:       total,
		CurrentPage: currentPage,
		PerPage:     perPage,
	}
}

// LastPage = ceil(total / perPage)
func (r SearchResult[E]) LastPage() int {
	if r.PerPage <= 0 {
		return 0
	}
	return (r.Total + r.PerPage - 1) / r.PerPage
}

// MapSearchResult 转换结果中的元素，分页信息保持不变
func MapSearchResult[E, T any](r SearchResult[E], fn func(E) T) SearchResult[T] {
	items := make([]T, len(r.Items))
	for i, item := range r.Items {
		items[i] = fn(item)
	}
	return NewSearchResult(items, r.Total, r.CurrentPage, r.PerPage)
}
