package shared

import (
	"catalog/domain/shared"
)

// PaginationOutput 列表用例的统一输出
type PaginationOutput[T any] struct {
	Items       []T `json:"items"`
	Total       int `json:"total"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
}

func ToPaginationOutput[E, T any](result shared.SearchResult[E], mapItem func(E) T) PaginationOutput[T] {
	mapped := shared.MapSearchResult(result, mapItem)
	return PaginationOutput[T]{
		Items:       mapped.Items,
		Total:       mapped.Total,
		CurrentPage: mapped.CurrentPage,
		LastPage:    mapped.LastPage(),
		PerPage:     mapped.PerPage,
	}
}

// SearchRequest 列表用例的分页/排序参数
type SearchRequest struct {
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
	Sort    string `json:"sort"`
	SortDir string `json:"sort_dir"`
}

// SearchInputFrom 组合成领域层的搜索输入
func SearchInputFrom[F any](req SearchRequest, filter *F) shared.SearchInput[F] {
	return shared.SearchInput[F]{
		Page:    req.Page,
		PerPage: req.PerPage,
		Sort:    req.Sort,
		SortDir: req.SortDir,
		Filter:  filter,
	}
}
