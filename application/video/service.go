package video

import (
	"context"

	appshared "catalog/application/shared"
	"catalog/domain/castmember"
	"catalog/domain/category"
	"catalog/domain/genre"
	"catalog/domain/shared"
	"catalog/domain/video"
)

const (
	categoriesField  = "categories_id"
	genresField      = "genres_id"
	castMembersField = "cast_members_id"
)

// ApplicationService 视频应用服务
// 三类关联在写入前用各自仓储的 ExistsByID 校验
type ApplicationService struct {
	app            *appshared.ApplicationService
	repo           video.Repository
	categoryRepo   category.Repository
	genreRepo      genre.Repository
	castMemberRepo castmember.Repository
	storage        MediaStorage
}

// Repositories 视频用例依赖的仓储
type Repositories struct {
	Videos      video.Repository
	Categories  category.Repository
	Genres      genre.Repository
	CastMembers castmember.Repository
}

func NewApplicationService(app *appshared.ApplicationService, repos Repositories, storage MediaStorage) *ApplicationService {
	return &ApplicationService{
		app:            app,
		repo:           repos.Videos,
		categoryRepo:   repos.Categories,
		genreRepo:      repos.Genres,
		castMemberRepo: repos.CastMembers,
		storage:        storage,
	}
}

// relations 解析并校验过的关联标识
type relations struct {
	categoryIDs   []category.CategoryID
	genreIDs      []genre.GenreID
	castMemberIDs []castmember.CastMemberID
}

// CreateVideo 创建视频；关联不存在或为空时返回 EntityValidationError
func (s *ApplicationService) CreateVideo(ctx context.Context, req CreateVideoRequest) (*VideoResponse, error) {
	var v *video.Video

	err := s.app.Run(ctx, func(ctx context.Context, uow shared.UnitOfWork) error {
		n := shared.NewNotification()
		rel, err := s.validateRelations(ctx, n, req.CategoryIDs, req.GenreIDs, req.CastMemberIDs)
		if err != nil {
			return err
		}

		v = video.Create(video.CreateCommand{
			Title:         req.Title,
			Description:   req.Description,
			YearLaunched:  req.YearLaunched,
			Duration:      req.Duration,
			Rating:        video.Rating(req.Rating),
			IsOpened:      req.IsOpened,
			CategoryIDs:   rel.categoryIDs,
			GenreIDs:      rel.genreIDs,
			CastMemberIDs: rel.castMemberIDs,
		})
		v.Notification().CopyErrors(n)
		if err := appshared.EnsureValid(v.Notification()); err != nil {
			return err
		}

		if err := s.repo.Insert(ctx, v); err != nil {
			return err
		}
		uow.AddAggregateRoot(v)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toResponse(v), nil
}

func (s *ApplicationService) UpdateVideo(ctx context.Context, req UpdateVideoRequest) (*VideoResponse, error) {
	id, err := video.ParseVideoID(req.ID)
	if err != nil {
		return nil, err
	}

	var v *video.Video
	err = s.app.Run(ctx, func(ctx context.Context, uow shared.UnitOfWork) error {
		loaded, err := s.load(ctx, id)
		if err != nil {
			return err
		}
		v = loaded

		if req.Title != nil {
			v.ChangeTitle(*req.Title)
		}
		if req.Description != nil {
			v.ChangeDescription(*req.Description)
		}
		if req.YearLaunched != nil {
			v.ChangeYearLaunched(*req.YearLaunched)
		}
		if req.Duration != nil {
			v.ChangeDuration(*req.Duration)
		}
		if req.Rating != nil {
			v.ChangeRating(video.Rating(*req.Rating))
		}
		if req.IsOpened != nil {
			if *req.IsOpened {
				v.MarkAsOpened()
			} else {
				v.MarkAsNotOpened()
			}
		}
		if err := s.syncRelations(ctx, v, req); err != nil {
			return err
		}
		if err := appshared.EnsureValid(v.Notification()); err != nil {
			return err
		}

		if err := s.repo.Update(ctx, v); err != nil {
			return err
		}
		uow.AddAggregateRoot(v)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toResponse(v), nil
}

func (s *ApplicationService) DeleteVideo(ctx context.Context, rawID string) error {
	id, err := video.ParseVideoID(rawID)
	if err != nil {
		return err
	}
	return s.app.Run(ctx, func(ctx context.Context, _ shared.UnitOfWork) error {
		return s.repo.Delete(ctx, id)
	})
}

func (s *ApplicationService) GetVideo(ctx context.Context, rawID string) (*VideoResponse, error) {
	id, err := video.ParseVideoID(rawID)
	if err != nil {
		return nil, err
	}
	v, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(v), nil
}

func (s *ApplicationService) ListVideos(ctx context.Context, req ListVideosRequest) (appshared.PaginationOutput[VideoResponse], error) {
	var empty appshared.PaginationOutput[VideoResponse]

	filter := video.Filter{Title: req.Title}
	var err error
	if filter.CategoryIDs, err = parseAll(req.CategoryIDs, category.ParseCategoryID); err != nil {
		return empty, err
	}
	if filter.GenreIDs, err = parseAll(req.GenreIDs, genre.ParseGenreID); err != nil {
		return empty, err
	}
	if filter.CastMemberIDs, err = parseAll(req.CastMemberIDs, castmember.ParseCastMemberID); err != nil {
		return empty, err
	}

	result, err := s.repo.Search(ctx, video.NewSearchParams(appshared.SearchInputFrom(req.SearchRequest, &filter)))
	if err != nil {
		return empty, err
	}
	return appshared.ToPaginationOutput(result, func(v *video.Video) VideoResponse {
		return *toResponse(v)
	}), nil
}

func (s *ApplicationService) validateRelations(ctx context.Context, n *shared.Notification, categoryIDs, genreIDs, castMemberIDs []string) (relations, error) {
	var rel relations

	rel.categoryIDs = appshared.ParseIDs(n, categoriesField, categoryIDs, category.ParseCategoryID)
	if err := appshared.ValidateIDsExist[category.CategoryID](ctx, s.categoryRepo, category.EntityName, categoriesField, rel.categoryIDs, n); err != nil {
		return rel, err
	}

	rel.genreIDs = appshared.ParseIDs(n, genresField, genreIDs, genre.ParseGenreID)
	if err := appshared.ValidateIDsExist[genre.GenreID](ctx, s.genreRepo, genre.EntityName, genresField, rel.genreIDs, n); err != nil {
		return rel, err
	}

	rel.castMemberIDs = appshared.ParseIDs(n, castMembersField, castMemberIDs, castmember.ParseCastMemberID)
	if err := appshared.ValidateIDsExist[castmember.CastMemberID](ctx, s.castMemberRepo, castmember.EntityName, castMembersField, rel.castMemberIDs, n); err != nil {
		return rel, err
	}
	return rel, nil
}

// syncRelations 只替换请求中提供了的关联集合
func (s *ApplicationService) syncRelations(ctx context.Context, v *video.Video, req UpdateVideoRequest) error {
	n := v.Notification()

	if req.CategoryIDs != nil {
		ids := appshared.ParseIDs(n, categoriesField, req.CategoryIDs, category.ParseCategoryID)
		if err := appshared.ValidateIDsExist[category.CategoryID](ctx, s.categoryRepo, category.EntityName, categoriesField, ids, n); err != nil {
			return err
		}
		v.SyncCategoryIDs(ids)
	}
	if req.GenreIDs != nil {
		ids := appshared.ParseIDs(n, genresField, req.GenreIDs, genre.ParseGenreID)
		if err := appshared.ValidateIDsExist[genre.GenreID](ctx, s.genreRepo, genre.EntityName, genresField, ids, n); err != nil {
			return err
		}
		v.SyncGenreIDs(ids)
	}
	if req.CastMemberIDs != nil {
		ids := appshared.ParseIDs(n, castMembersField, req.CastMemberIDs, castmember.ParseCastMemberID)
		if err := appshared.ValidateIDsExist[castmember.CastMemberID](ctx, s.castMemberRepo, castmember.EntityName, castMembersField, ids, n); err != nil {
			return err
		}
		v.SyncCastMemberIDs(ids)
	}
	return nil
}

func (s *ApplicationService) load(ctx context.Context, id video.VideoID) (*video.Video, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, shared.NewNotFoundError(video.EntityName, id.String())
	}
	return v, nil
}

func parseAll[ID any](raw []string, parse func(string) (ID, error)) ([]ID, error) {
	ids := make([]ID, 0, len(raw))
	for _, value := range raw {
		id, err := parse(value)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
