package relational

import (
	"context"

	"catalog/domain/category"
	"catalog/domain/shared"
	"catalog/infrastructure/persistence/relational/po"

	"gorm.io/gorm"
)

var categorySortFields = map[string]sortField{
	"name":       {column: "name", text: true},
	"created_at": {column: "created_at"},
}

type CategoryRepository struct {
	baseRepository
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{baseRepository{db: db, entityName: category.EntityName}}
}

func (r *CategoryRepository) Insert(ctx context.Context, c *category.Category) error {
	return r.getDB(ctx).Create(po.FromCategoryDomain(c)).Error
}

func (r *CategoryRepository) BulkInsert(ctx context.Context, categories []*category.Category) error {
	if len(categories) == 0 {
		return nil
	}
	rows := make([]*po.CategoryPO, len(categories))
	for i, c := range categories {
		rows[i] = po.FromCategoryDomain(c)
	}
	return r.getDB(ctx).Create(&rows).Error
}

func (r *CategoryRepository) Update(ctx context.Context, c *category.Category) error {
	row := po.FromCategoryDomain(c)
	return r.inTransaction(ctx, func(tx *gorm.DB) error {
		if err := r.ensureExists(tx, &po.CategoryPO{}, row.ID); err != nil {
			return err
		}
		return tx.Model(&po.CategoryPO{}).Where("id = ?", row.ID).Updates(map[string]any{
			"name":        row.Name,
			"description": row.Description,
			"is_active":   row.IsActive,
		}).Error
	})
}

func (r *CategoryRepository) Delete(ctx context.Context, id category.CategoryID) error {
	return r.deleteByID(r.getDB(ctx), &po.CategoryPO{}, id.String())
}

func (r *CategoryRepository) FindByID(ctx context.Context, id category.CategoryID) (*category.Category, error) {
	row, ok, err := first[po.CategoryPO](r.getDB(ctx), id.String())
	if err != nil || !ok {
		return nil, err
	}
	return row.ToDomain()
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]*category.Category, error) {
	var rows []po.CategoryPO
	if err := r.getDB(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.toDomain(rows)
}

func (r *CategoryRepository) FindByIDs(ctx context.Context, ids []category.CategoryID) ([]*category.Category, error) {
	if len(ids) == 0 {
		return []*category.Category{}, nil
	}
	var rows []po.CategoryPO
	if err := r.getDB(ctx).Where("id IN ?", stringIDs(ids)).Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.toDomain(rows)
}

func (r *CategoryRepository) ExistsByID(ctx context.Context, ids []category.CategoryID) (shared.ExistsResult[category.CategoryID], error) {
	return existsByID(r.getDB(ctx), &po.CategoryPO{}, r.entityName, ids)
}

func (r *CategoryRepository) SortableFields() []string {
	return category.SortableFields
}

func (r *CategoryRepository) Search(ctx context.Context, params category.SearchParams) (category.SearchResult, error) {
	var scopes []Scope
	if params.HasFilter() {
		scopes = append(scopes, ContainsIgnoreCase(r.dialect(), "name", *params.Filter()))
	}

	order := orderClause(r.dialect(), categorySortFields, params.Sort(), params.SortDir())
	rows, total, err := searchRows[po.CategoryPO](r.getDB(ctx), scopes, order, params.Offset(), params.Limit())
	if err != nil {
		return category.SearchResult{}, err
	}
	items, err := r.toDomain(rows)
	if err != nil {
		return category.SearchResult{}, err
	}
	return shared.NewSearchResult(items, total, params.Page(), params.PerPage()), nil
}

func (r *CategoryRepository) toDomain(rows []po.CategoryPO) ([]*category.Category, error) {
	out := make([]*category.Category, 0, len(rows))
	for i := range rows {
		c, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

var _ category.Repository = (*CategoryRepository)(nil)
