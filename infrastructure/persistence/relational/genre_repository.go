package relational

import (
	"context"

	"catalog/domain/genre"
	"catalog/domain/shared"
	"catalog/infrastructure/persistence/relational/po"

	"gorm.io/gorm"
)

var genreSortFields = map[string]sortField{
	"name":       {column: "name", text: true},
	"created_at": {column: "created_at"},
}

// GenreRepository genres + genre_categories
type GenreRepository struct {
	baseRepository
}

func NewGenreRepository(db *gorm.DB) *GenreRepository {
	return &GenreRepository{baseRepository{db: db, entityName: genre.EntityName}}
}

func (r *GenreRepository) Insert(ctx context.Context, g *genre.Genre) error {
	return r.BulkInsert(ctx, []*genre.Genre{g})
}

func (r *GenreRepository) BulkInsert(ctx context.Context, genres []*genre.Genre) error {
	if len(genres) == 0 {
		return nil
	}
	rows := make([]*po.GenrePO, 0, len(genres))
	var links []po.GenreCategoryPO
	for _, g := range genres {
		row, categories := po.FromGenreDomain(g)
		rows = append(rows, row)
		links = append(links, categories...)
	}

	return r.inTransaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		if len(links) == 0 {
			return nil
		}
		return tx.Create(&links).Error
	})
}

// Update 先删后插同步关联表，整个过程在同一事务中
func (r *GenreRepository) Update(ctx context.Context, g *genre.Genre) error {
	row, links := po.FromGenreDomain(g)
	return r.inTransaction(ctx, func(tx *gorm.DB) error {
		if err := r.ensureExists(tx, &po.GenrePO{}, row.ID); err != nil {
			return err
		}
		if err := tx.Model(&po.GenrePO{}).Where("id = ?", row.ID).Updates(map[string]any{
			"name":      row.Name,
			"is_active": row.IsActive,
		}).Error; err != nil {
			return err
		}
		if err := tx.Where("genre_id = ?", row.ID).Delete(&po.GenreCategoryPO{}).Error; err != nil {
			return err
		}
		if len(links) == 0 {
			return nil
		}
		return tx.Create(&links).Error
	})
}

func (r *GenreRepository) Delete(ctx context.Context, id genre.GenreID) error {
	return r.inTransaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("genre_id = ?", id.String()).Delete(&po.GenreCategoryPO{}).Error; err != nil {
			return err
		}
		return r.deleteByID(tx, &po.GenrePO{}, id.String())
	})
}

func (r *GenreRepository) FindByID(ctx context.Context, id genre.GenreID) (*genre.Genre, error) {
	db := r.getDB(ctx)
	row, ok, err := first[po.GenrePO](db, id.String())
	if err != nil || !ok {
		return nil, err
	}
	genres, err := r.toDomain(db, []po.GenrePO{*row})
	if err != nil {
		return nil, err
	}
	return genres[0], nil
}

func (r *GenreRepository) FindAll(ctx context.Context) ([]*genre.Genre, error) {
	db := r.getDB(ctx)
	var rows []po.GenrePO
	if err := db.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.toDomain(db, rows)
}

func (r *GenreRepository) FindByIDs(ctx context.Context, ids []genre.GenreID) ([]*genre.Genre, error) {
	if len(ids) == 0 {
		return []*genre.Genre{}, nil
	}
	db := r.getDB(ctx)
	var rows []po.GenrePO
	if err := db.Where("id IN ?", stringIDs(ids)).Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.toDomain(db, rows)
}

func (r *GenreRepository) ExistsByID(ctx context.Context, ids []genre.GenreID) (shared.ExistsResult[genre.GenreID], error) {
	return existsByID(r.getDB(ctx), &po.GenrePO{}, r.entityName, ids)
}

func (r *GenreRepository) SortableFields() []string {
	return genre.SortableFields
}

func (r *GenreRepository) Search(ctx context.Context, params genre.SearchParams) (genre.SearchResult, error) {
	var scopes []Scope
	if params.HasFilter() {
		filter := params.Filter()
		scopes = append(scopes,
			ContainsIgnoreCase(r.dialect(), "name", filter.Name),
			InJoinTable("id", "genre_categories", "genre_id", "category_id", stringIDs(filter.CategoryIDs)),
		)
	}

	db := r.getDB(ctx)
	order := orderClause(r.dialect(), genreSortFields, params.Sort(), params.SortDir())
	rows, total, err := searchRows[po.GenrePO](db, scopes, order, params.Offset(), params.Limit())
	if err != nil {
		return genre.SearchResult{}, err
	}
	items, err := r.toDomain(db, rows)
	if err != nil {
		return genre.SearchResult{}, err
	}
	return shared.NewSearchResult(items, total, params.Page(), params.PerPage()), nil
}

// toDomain 一次查询取回所有行的关联，按 genre_id 分组后映射
func (r *GenreRepository) toDomain(db *gorm.DB, rows []po.GenrePO) ([]*genre.Genre, error) {
	if len(rows) == 0 {
		return []*genre.Genre{}, nil
	}
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	var links []po.GenreCategoryPO
	if err := db.Where("genre_id IN ?", ids).Find(&links).Error; err != nil {
		return nil, err
	}
	byGenre := groupBy(links, func(l po.GenreCategoryPO) string { return l.GenreID })

	out := make([]*genre.Genre, 0, len(rows))
	for i := range rows {
		g, err := rows[i].ToDomain(byGenre[rows[i].ID])
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

func groupBy[T any](items []T, key func(T) string) map[string][]T {
	out := make(map[string][]T)
	for _, item := range items {
		k := key(item)
		out[k] = append(out[k], item)
	}
	return out
}

var _ genre.Repository = (*GenreRepository)(nil)
