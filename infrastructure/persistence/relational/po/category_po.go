package po

import (
	"time"

	"catalog/domain/category"
	"catalog/domain/shared"
)

// CategoryPO Category persistence object
type CategoryPO struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Name        string    `gorm:"size:255;not null"`
	Description *string   `gorm:"type:text"`
	IsActive    bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null;precision:6"`
}

// TableName Specify table name
func (CategoryPO) TableName() string {
	return "categories"
}

// FromCategoryDomain Convert domain model to persistence object
func FromCategoryDomain(c *category.Category) *CategoryPO {
	return &CategoryPO{
		ID:          c.ID().String(),
		Name:        c.Name(),
		Description: c.Description(),
		IsActive:    c.IsActive(),
		CreatedAt:   c.CreatedAt(),
	}
}

// ToDomain Convert persistence object to domain model
func (p *CategoryPO) ToDomain() (*category.Category, error) {
	structural := shared.NewNotification()
	id, err := category.ParseCategoryID(p.ID)
	if err != nil {
		structural.AddError("id", err.Error())
	}

	c := category.Rebuild(category.ReconstructionDTO{
		ID:          id,
		Name:        p.Name,
		Description: p.Description,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt.UTC(),
	})
	c.Validate()

	if err := loadResult(category.EntityName, structural, c.Notification()); err != nil {
		return nil, err
	}
	return c, nil
}
