package castmember

import (
	"context"
	"time"

	appshared "catalog/application/shared"
	"catalog/domain/castmember"
	"catalog/domain/shared"
)

// ApplicationService 演职人员应用服务
type ApplicationService struct {
	app  *appshared.ApplicationService
	repo castmember.Repository
}

func NewApplicationService(app *appshared.ApplicationService, repo castmember.Repository) *ApplicationService {
	return &ApplicationService{app: app, repo: repo}
}

// CreateCastMemberRequest 类型：1 导演，2 演员
type CreateCastMemberRequest struct {
	Name string `json:"name"`
	Type int    `json:"type"`
}

type UpdateCastMemberRequest struct {
	ID   string  `json:"id"`
	Name *string `json:"name"`
	Type *int    `json:"type"`
}

// ListCastMembersRequest 名称子串与类型可以同时给出
type ListCastMembersRequest struct {
	appshared.SearchRequest
	Name string `json:"name"`
	Type *int   `json:"type"`
}

type CastMemberResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      int       `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *ApplicationService) CreateCastMember(ctx context.Context, req CreateCastMemberRequest) (*CastMemberResponse, error) {
	var m *castmember.CastMember

	err := s.app.Run(ctx, func(ctx context.Context, uow shared.UnitOfWork) error {
		m = castmember.Create(castmember.CreateCommand{
			Name: req.Name,
			Type: castmember.Type(req.Type),
		})
		if err := appshared.EnsureValid(m.Notification()); err != nil {
			return err
		}

		if err := s.repo.Insert(ctx, m); err != nil {
			return err
		}
		uow.AddAggregateRoot(m)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toResponse(m), nil
}

func (s *ApplicationService) UpdateCastMember(ctx context.Context, req UpdateCastMemberRequest) (*CastMemberResponse, error) {
	id, err := castmember.ParseCastMemberID(req.ID)
	if err != nil {
		return nil, err
	}

	var m *castmember.CastMember
	err = s.app.Run(ctx, func(ctx context.Context, uow shared.UnitOfWork) error {
		loaded, err := s.load(ctx, id)
		if err != nil {
			return err
		}
		m = loaded

		if req.Name != nil {
			m.ChangeName(*req.Name)
		}
		if req.Type != nil {
			m.ChangeType(castmember.Type(*req.Type))
		}
		if err := appshared.EnsureValid(m.Notification()); err != nil {
			return err
		}

		if err := s.repo.Update(ctx, m); err != nil {
			return err
		}
		uow.AddAggregateRoot(m)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toResponse(m), nil
}

func (s *ApplicationService) DeleteCastMember(ctx context.Context, rawID string) error {
	id, err := castmember.ParseCastMemberID(rawID)
	if err != nil {
		return err
	}
	return s.app.Run(ctx, func(ctx context.Context, _ shared.UnitOfWork) error {
		return s.repo.Delete(ctx, id)
	})
}

func (s *ApplicationService) GetCastMember(ctx context.Context, rawID string) (*CastMemberResponse, error) {
	id, err := castmember.ParseCastMemberID(rawID)
	if err != nil {
		return nil, err
	}
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(m), nil
}

// ListCastMembers 非法的类型过滤值直接返回 InvalidArgumentError
func (s *ApplicationService) ListCastMembers(ctx context.Context, req ListCastMembersRequest) (appshared.PaginationOutput[CastMemberResponse], error) {
	filter := castmember.Filter{Name: req.Name}
	if req.Type != nil {
		t, err := castmember.ParseType(*req.Type)
		if err != nil {
			return appshared.PaginationOutput[CastMemberResponse]{}, err
		}
		filter.Type = &t
	}

	result, err := s.repo.Search(ctx, castmember.NewSearchParams(appshared.SearchInputFrom(req.SearchRequest, &filter)))
	if err != nil {
		return appshared.PaginationOutput[CastMemberResponse]{}, err
	}
	return appshared.ToPaginationOutput(result, func(m *castmember.CastMember) CastMemberResponse {
		return *toResponse(m)
	}), nil
}

func (s *ApplicationService) load(ctx context.Context, id castmember.CastMemberID) (*castmember.CastMember, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, shared.NewNotFoundError(castmember.EntityName, id.String())
	}
	return m, nil
}

func toResponse(m *castmember.CastMember) *CastMemberResponse {
	return &CastMemberResponse{
		ID:        m.ID().String(),
		Name:      m.Name(),
		Type:      int(m.Type()),
		CreatedAt: m.CreatedAt(),
	}
}
