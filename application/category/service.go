package category

import (
	"context"
	"time"

	appshared "catalog/application/shared"
	"catalog/domain/category"
	"catalog/domain/shared"
)

// ApplicationService 分类应用服务 - 编排分类的增删改查
type ApplicationService struct {
	app  *appshared.ApplicationService
	repo category.Repository
}

// NewApplicationService 创建分类应用服务
func NewApplicationService(app *appshared.ApplicationService, repo category.Repository) *ApplicationService {
	return &ApplicationService{app: app, repo: repo}
}

// CreateCategoryRequest 创建分类请求 DTO
type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// UpdateCategoryRequest 更新分类请求 DTO
// 只修改提供了的字段；Description 显式为 null 时清空描述
type UpdateCategoryRequest struct {
	ID          string                      `json:"id"`
	Name        *string                     `json:"name"`
	Description appshared.Optional[*string] `json:"description"`
	IsActive    *bool                       `json:"is_active"`
}

// ListCategoriesRequest 分类列表请求，Filter 按名称匹配
type ListCategoriesRequest struct {
	appshared.SearchRequest
	Filter string `json:"filter"`
}

// CategoryResponse 分类响应 DTO
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateCategory 创建分类
func (s *ApplicationService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	var c *category.Category

	err := s.app.Run(ctx, func(ctx context.Context, uow shared.UnitOfWork) error {
		c = category.Create(category.CreateCommand{
			Name:        req.Name,
			Description: req.Description,
			IsActive:    req.IsActive,
		})
		if err := appshared.EnsureValid(c.Notification()); err != nil {
			return err
		}

		if err := s.repo.Insert(ctx, c); err != nil {
			return err
		}
		uow.AddAggregateRoot(c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toResponse(c), nil
}

// UpdateCategory 更新分类
func (s *ApplicationService) UpdateCategory(ctx context.Context, req UpdateCategoryRequest) (*CategoryResponse, error) {
	id, err := category.ParseCategoryID(req.ID)
	if err != nil {
		return nil, err
	}

	var c *category.Category
	err = s.app.Run(ctx, func(ctx context.Context, uow shared.UnitOfWork) error {
		loaded, err := s.load(ctx, id)
		if err != nil {
			return err
		}
		c = loaded

		if req.Name != nil {
			c.ChangeName(*req.Name)
		}
		if req.Description.Set {
			c.ChangeDescription(req.Description.Value)
		}
		if req.IsActive != nil {
			if *req.IsActive {
				c.Activate()
			} else {
				c.Deactivate()
			}
		}
		if err := appshared.EnsureValid(c.Notification()); err != nil {
			return err
		}

		if err := s.repo.Update(ctx, c); err != nil {
			return err
		}
		uow.AddAggregateRoot(c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toResponse(c), nil
}

// DeleteCategory 删除分类，不存在时返回 NotFoundError
func (s *ApplicationService) DeleteCategory(ctx context.Context, rawID string) error {
	id, err := category.ParseCategoryID(rawID)
	if err != nil {
		return err
	}
	return s.app.Run(ctx, func(ctx context.Context, _ shared.UnitOfWork) error {
		return s.repo.Delete(ctx, id)
	})
}

// GetCategory 查询单个分类
func (s *ApplicationService) GetCategory(ctx context.Context, rawID string) (*CategoryResponse, error) {
	id, err := category.ParseCategoryID(rawID)
	if err != nil {
		return nil, err
	}
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(c), nil
}

// ListCategories 分页搜索分类
func (s *ApplicationService) ListCategories(ctx context.Context, req ListCategoriesRequest) (appshared.PaginationOutput[CategoryResponse], error) {
	params := category.NewSearchParams(appshared.SearchInputFrom(req.SearchRequest, &req.Filter))
	result, err := s.repo.Search(ctx, params)
	if err != nil {
		return appshared.PaginationOutput[CategoryResponse]{}, err
	}
	return appshared.ToPaginationOutput(result, func(c *category.Category) CategoryResponse {
		return *toResponse(c)
	}), nil
}

func (s *ApplicationService) load(ctx context.Context, id category.CategoryID) (*category.Category, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, shared.NewNotFoundError(category.EntityName, id.String())
	}
	return c, nil
}

func toResponse(c *category.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          c.ID().String(),
		Name:        c.Name(),
		Description: c.Description(),
		IsActive:    c.IsActive(),
		CreatedAt:   c.CreatedAt(),
	}
}
