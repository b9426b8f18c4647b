package po

import (
	"time"

	"catalog/domain/category"
	"catalog/domain/genre"
	"catalog/domain/shared"
)

// GenrePO Genre persistence object
// 关联的 Category 只存 ID，写入 genre_categories
type GenrePO struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Name      string    `gorm:"size:255;not null"`
	IsActive  bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;precision:6"`
}

func (GenrePO) TableName() string {
	return "genres"
}

// GenreCategoryPO genre_categories 关联行，(genre_id, category_id) 复合主键
type GenreCategoryPO struct {
	GenreID    string `gorm:"primaryKey;size:36"`
	CategoryID string `gorm:"primaryKey;size:36;index"`
}

func (GenreCategoryPO) TableName() string {
	return "genre_categories"
}

func FromGenreDomain(g *genre.Genre) (*GenrePO, []GenreCategoryPO) {
	genrePO := &GenrePO{
		ID:        g.ID().String(),
		Name:      g.Name(),
		IsActive:  g.IsActive(),
		CreatedAt: g.CreatedAt(),
	}

	categoryIDs := g.CategoryIDs()
	rows := make([]GenreCategoryPO, len(categoryIDs))
	for i, categoryID := range categoryIDs {
		rows[i] = GenreCategoryPO{GenreID: genrePO.ID, CategoryID: categoryID.String()}
	}
	return genrePO, rows
}

func (p *GenrePO) ToDomain(rows []GenreCategoryPO) (*genre.Genre, error) {
	structural := shared.NewNotification()
	id, err := genre.ParseGenreID(p.ID)
	if err != nil {
		structural.AddError("id", err.Error())
	}

	categoryIDs := make([]category.CategoryID, 0, len(rows))
	for _, row := range rows {
		categoryID, err := category.ParseCategoryID(row.CategoryID)
		if err != nil {
			structural.AddError("categories_id", err.Error())
			continue
		}
		categoryIDs = append(categoryIDs, categoryID)
	}
	if len(rows) == 0 {
		structural.AddError("categories_id", "categories_id should not be empty")
	}

	g := genre.Rebuild(genre.ReconstructionDTO{
		ID:          id,
		Name:        p.Name,
		CategoryIDs: categoryIDs,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt.UTC(),
	})
	g.Validate()

	if err := loadResult(genre.EntityName, structural, g.Notification()); err != nil {
		return nil, err
	}
	return g, nil
}
