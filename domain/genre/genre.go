/*
Package genre Genre 聚合

Genre 通过 ID 引用多个 Category（多对多）。
关联以 IDSet 保存：按 id 唯一、插入顺序无意义；持久化为 genre_categories 关联表。
被引用的 Category 可能属于另一个限界上下文，因此引用校验在用例层通过
category.Repository.ExistsByID 完成，而不是依赖外键。
*/
package genre

import (
	"slices"
	"time"

	"catalog/domain/category"
	"catalog/domain/shared"
)

const EntityName = "Genre"

const nameMaxLength = 255

type GenreID struct {
	shared.UUID
}

func NewGenreID() GenreID {
	return GenreID{UUID: shared.NewUUID()}
}

func ParseGenreID(value string) (GenreID, error) {
	id, err := shared.ParseUUID(value)
	if err != nil {
		return GenreID{}, err
	}
	return GenreID{UUID: id}, nil
}

// Genre 类型聚合根
type Genre struct {
	shared.BaseAggregate

	id          GenreID
	name        string
	categoryIDs shared.IDSet[category.CategoryID]
	isActive    bool
	createdAt   time.Time
}

type CreateCommand struct {
	Name        string
	CategoryIDs []category.CategoryID
	IsActive    *bool
}

func Create(cmd CreateCommand) *Genre {
	isActive := true
	if cmd.IsActive != nil {
		isActive = *cmd.IsActive
	}
	g := &Genre{
		BaseAggregate: shared.NewBaseAggregate(),
		id:            NewGenreID(),
		name:          cmd.Name,
		categoryIDs:   shared.NewIDSet(cmd.CategoryIDs...),
		isActive:      isActive,
		createdAt:     time.Now().UTC().Truncate(time.Microsecond),
	}
	g.Validate("name")
	return g
}

// ReconstructionDTO 仅供仓储/Mapper 使用
type ReconstructionDTO struct {
	ID          GenreID
	Name        string
	CategoryIDs []category.CategoryID
	IsActive    bool
	CreatedAt   time.Time
}

func Rebuild(dto ReconstructionDTO) *Genre {
	return &Genre{
		BaseAggregate: shared.NewBaseAggregate(),
		id:            dto.ID,
		name:          dto.Name,
		categoryIDs:   shared.NewIDSet(dto.CategoryIDs...),
		isActive:      dto.IsActive,
		createdAt:     dto.CreatedAt,
	}
}

func (g *Genre) ChangeName(name string) {
	g.name = name
	g.Validate("name")
}

func (g *Genre) AddCategoryID(id category.CategoryID) {
	g.categoryIDs.Add(id)
}

func (g *Genre) RemoveCategoryID(id category.CategoryID) {
	g.categoryIDs.Remove(id)
}

// SyncCategoryIDs 用给定集合整体替换关联；空集合会被拒绝
func (g *Genre) SyncCategoryIDs(ids []category.CategoryID) {
	if len(ids) == 0 {
		g.Notification().AddError("categories_id", "categories_id should not be empty")
		return
	}
	g.categoryIDs = shared.NewIDSet(ids...)
}

func (g *Genre) Activate()   { g.isActive = true }
func (g *Genre) Deactivate() { g.isActive = false }

// Validate 校验指定字段，不传字段时校验全部
func (g *Genre) Validate(fields ...string) bool {
	n := g.Notification()
	if len(fields) == 0 || slices.Contains(fields, "name") {
		if g.name == "" {
			n.AddError("name", "name should not be empty")
		}
		if len([]rune(g.name)) > nameMaxLength {
			n.AddError("name", "name must be shorter than or equal to 255 characters")
		}
	}
	return !n.HasErrors()
}

func (g *Genre) ID() GenreID                             { return g.id }
func (g *Genre) AggregateID() string                     { return g.id.String() }
func (g *Genre) Name() string                            { return g.name }
func (g *Genre) IsActive() bool                          { return g.isActive }
func (g *Genre) CreatedAt() time.Time                    { return g.createdAt }
func (g *Genre) CategoryIDs() []category.CategoryID      { return g.categoryIDs.Values() }
func (g *Genre) HasCategory(id category.CategoryID) bool { return g.categoryIDs.Has(id) }

var _ shared.AggregateRoot = (*Genre)(nil)
