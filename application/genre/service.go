package genre

import (
	"context"
	"time"

	appshared "catalog/application/shared"
	"catalog/domain/category"
	"catalog/domain/genre"
	"catalog/domain/shared"
)

const categoriesField = "categories_id"

// ApplicationService 类型应用服务
// 分类引用在写入前用 ExistsByID 校验，代替外键约束
type ApplicationService struct {
	app          *appshared.ApplicationService
	repo         genre.Repository
	categoryRepo category.Repository
}

func NewApplicationService(app *appshared.ApplicationService, repo genre.Repository, categoryRepo category.Repository) *ApplicationService {
	return &ApplicationService{app: app, repo: repo, categoryRepo: categoryRepo}
}

type CreateGenreRequest struct {
	Name        string   `json:"name"`
	CategoryIDs []string `json:"categories_id"`
	IsActive    *bool    `json:"is_active"`
}

// UpdateGenreRequest CategoryIDs 为 nil 时不修改关联
type UpdateGenreRequest struct {
	ID          string   `json:"id"`
	Name        *string  `json:"name"`
	CategoryIDs []string `json:"categories_id"`
	IsActive    *bool    `json:"is_active"`
}

type ListGenresRequest struct {
	appshared.SearchRequest
	Name        string   `json:"name"`
	CategoryIDs []string `json:"categories_id"`
}

type GenreResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CategoryIDs []string  `json:"categories_id"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateGenre 创建类型；任何分类不存在都会以 EntityValidationError 返回，不写入任何行
func (s *ApplicationService) CreateGenre(ctx context.Context, req CreateGenreRequest) (*GenreResponse, error) {
	var g *genre.Genre

	err := s.app.Run(ctx, func(ctx context.Context, uow shared.UnitOfWork) error {
		n := shared.NewNotification()
		categoryIDs, err := s.validateCategories(ctx, req.CategoryIDs, n)
		if err != nil {
			return err
		}

		g = genre.Create(genre.CreateCommand{
			Name:        req.Name,
			CategoryIDs: categoryIDs,
			IsActive:    req.IsActive,
		})
		g.Notification().CopyErrors(n)
		if err := appshared.EnsureValid(g.Notification()); err != nil {
			return err
		}

		if err := s.repo.Insert(ctx, g); err != nil {
			return err
		}
		uow.AddAggregateRoot(g)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toResponse(g), nil
}

func (s *ApplicationService) UpdateGenre(ctx context.Context, req UpdateGenreRequest) (*GenreResponse, error) {
	id, err := genre.ParseGenreID(req.ID)
	if err != nil {
		return nil, err
	}

	var g *genre.Genre
	err = s.app.Run(ctx, func(ctx context.Context, uow shared.UnitOfWork) error {
		loaded, err := s.load(ctx, id)
		if err != nil {
			return err
		}
		g = loaded

		if req.Name != nil {
			g.ChangeName(*req.Name)
		}
		if req.CategoryIDs != nil {
			categoryIDs, err := s.validateCategories(ctx, req.CategoryIDs, g.Notification())
			if err != nil {
				return err
			}
			g.SyncCategoryIDs(categoryIDs)
		}
		if req.IsActive != nil {
			if *req.IsActive {
				g.Activate()
			} else {
				g.Deactivate()
			}
		}
		if err := appshared.EnsureValid(g.Notification()); err != nil {
			return err
		}

		if err := s.repo.Update(ctx, g); err != nil {
			return err
		}
		uow.AddAggregateRoot(g)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toResponse(g), nil
}

func (s *ApplicationService) DeleteGenre(ctx context.Context, rawID string) error {
	id, err := genre.ParseGenreID(rawID)
	if err != nil {
		return err
	}
	return s.app.Run(ctx, func(ctx context.Context, _ shared.UnitOfWork) error {
		return s.repo.Delete(ctx, id)
	})
}

func (s *ApplicationService) GetGenre(ctx context.Context, rawID string) (*GenreResponse, error) {
	id, err := genre.ParseGenreID(rawID)
	if err != nil {
		return nil, err
	}
	g, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(g), nil
}

func (s *ApplicationService) ListGenres(ctx context.Context, req ListGenresRequest) (appshared.PaginationOutput[GenreResponse], error) {
	filter := genre.Filter{Name: req.Name}
	for _, raw := range req.CategoryIDs {
		id, err := category.ParseCategoryID(raw)
		if err != nil {
			return appshared.PaginationOutput[GenreResponse]{}, err
		}
		filter.CategoryIDs = append(filter.CategoryIDs, id)
	}

	result, err := s.repo.Search(ctx, genre.NewSearchParams(appshared.SearchInputFrom(req.SearchRequest, &filter)))
	if err != nil {
		return appshared.PaginationOutput[GenreResponse]{}, err
	}
	return appshared.ToPaginationOutput(result, func(g *genre.Genre) GenreResponse {
		return *toResponse(g)
	}), nil
}

// validateCategories 解析并确认分类存在，问题记在 categories_id 下
func (s *ApplicationService) validateCategories(ctx context.Context, raw []string, n *shared.Notification) ([]category.CategoryID, error) {
	ids := appshared.ParseIDs(n, categoriesField, raw, category.ParseCategoryID)
	if err := appshared.ValidateIDsExist[category.CategoryID](ctx, s.categoryRepo, category.EntityName, categoriesField, ids, n); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *ApplicationService) load(ctx context.Context, id genre.GenreID) (*genre.Genre, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, shared.NewNotFoundError(genre.EntityName, id.String())
	}
	return g, nil
}

func toResponse(g *genre.Genre) *GenreResponse {
	categoryIDs := make([]string, 0, len(g.CategoryIDs()))
	for _, id := range g.CategoryIDs() {
		categoryIDs = append(categoryIDs, id.String())
	}
	return &GenreResponse{
		ID:          g.ID().String(),
		Name:        g.Name(),
		CategoryIDs: categoryIDs,
		IsActive:    g.IsActive(),
		CreatedAt:   g.CreatedAt(),
	}
}
