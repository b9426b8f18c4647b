/*
Package category Category 聚合

分类是最简单的聚合：没有关联集合，也不产生领域事件。
校验写入 Notification，不直接返回 error；由用例层决定何时抛出校验错误。
*/
package category

import (
	"time"

	"catalog/domain/shared"
)

// EntityName 用于错误信息
const EntityName = "Category"

const nameMaxLength = 255

// CategoryID 分类标识
type CategoryID struct {
	shared.UUID
}

func NewCategoryID() CategoryID {
	return CategoryID{UUID: shared.NewUUID()}
}

func ParseCategoryID(value string) (CategoryID, error) {
	id, err := shared.ParseUUID(value)
	if err != nil {
		return CategoryID{}, err
	}
	return CategoryID{UUID: id}, nil
}

// Category 分类聚合根
type Category struct {
	shared.BaseAggregate

	id          CategoryID
	name        string
	description *string
	isActive    bool
	createdAt   time.Time
}

// CreateCommand 创建分类的参数，IsActive 为 nil 时默认激活
type CreateCommand struct {
	Name        string
	Description *string
	IsActive    *bool
}

// Create 工厂方法：创建分类并校验
// 校验失败不会返回 error，错误记录在 Notification 中
func Create(cmd CreateCommand) *Category {
	isActive := true
	if cmd.IsActive != nil {
		isActive = *cmd.IsActive
	}
	c := &Category{
		BaseAggregate: shared.NewBaseAggregate(),
		id:            NewCategoryID(),
		name:          cmd.Name,
		description:   cmd.Description,
		isActive:      isActive,
		createdAt:     now(),
	}
	c.Validate("name")
	return c
}

// ReconstructionDTO 仅供仓储/Mapper 使用，从存储重建聚合
type ReconstructionDTO struct {
	ID          CategoryID
	Name        string
	Description *string
	IsActive    bool
	CreatedAt   time.Time
}

// Rebuild 从 DTO 重建聚合，不做校验；Mapper 负责重新校验
func Rebuild(dto ReconstructionDTO) *Category {
	return &Category{
		BaseAggregate: shared.NewBaseAggregate(),
		id:            dto.ID,
		name:          dto.Name,
		description:   dto.Description,
		isActive:      dto.IsActive,
		createdAt:     dto.CreatedAt,
	}
}

func (c *Category) ChangeName(name string) {
	c.name = name
	c.Validate("name")
}

// ChangeDescription nil 表示清空描述
func (c *Category) ChangeDescription(description *string) {
	c.description = description
}

func (c *Category) Activate()   { c.isActive = true }
func (c *Category) Deactivate() { c.isActive = false }

// Validate 校验指定字段，不传字段时校验全部
func (c *Category) Validate(fields ...string) bool {
	if len(fields) == 0 || contains(fields, "name") {
		validateName(c.Notification(), c.name)
	}
	return !c.Notification().HasErrors()
}

func validateName(n *shared.Notification, name string) {
	if name == "" {
		n.AddError("name", "name should not be empty")
	}
	if len([]rune(name)) > nameMaxLength {
		n.AddError("name", "name must be shorter than or equal to 255 characters")
	}
}

func contains(fields []string, field string) bool {
	for _, f := range fields {
		if f == field {
			return true
		}
	}
	return false
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func (c *Category) ID() CategoryID       { return c.id }
func (c *Category) AggregateID() string  { return c.id.String() }
func (c *Category) Name() string         { return c.name }
func (c *Category) Description() *string { return c.description }
func (c *Category) IsActive() bool       { return c.isActive }
func (c *Category) CreatedAt() time.Time { return c.createdAt }

var _ shared.AggregateRoot = (*Category)(nil)
