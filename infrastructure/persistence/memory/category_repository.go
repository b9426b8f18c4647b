package memory

import (
	"catalog/domain/category"
)

// CategoryRepository in-memory category.Repository
type CategoryRepository struct {
	*InMemorySearchableRepository[category.CategoryID, *category.Category, category.Filter]
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{
		InMemorySearchableRepository: NewInMemorySearchableRepository[category.CategoryID, *category.Category, category.Filter](
			category.EntityName,
			cloneCategory,
			SearchConfig[*category.Category, category.Filter]{
				Filter: category.MatchesFilter,
				Comparators: map[string]CompareFunc[*category.Category]{
					"name":       func(a, b *category.Category) int { return compareStrings(a.Name(), b.Name()) },
					"created_at": func(a, b *category.Category) int { return oldestFirst(a.CreatedAt(), b.CreatedAt()) },
				},
				DefaultOrder: func(a, b *category.Category) int { return newestFirst(a.CreatedAt(), b.CreatedAt()) },
			},
		),
	}
}

// cloneCategory 经由重建复制，副本不带通知和待发布事件
func cloneCategory(c *category.Category) *category.Category {
	return category.Rebuild(category.ReconstructionDTO{
		ID:          c.ID(),
		Name:        c.Name(),
		Description: clonePtr(c.Description()),
		IsActive:    c.IsActive(),
		CreatedAt:   c.CreatedAt(),
	})
}

var _ category.Repository = (*CategoryRepository)(nil)
