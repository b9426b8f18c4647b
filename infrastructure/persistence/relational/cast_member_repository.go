package relational

import (
	"context"

	"catalog/domain/castmember"
	"catalog/domain/shared"
	"catalog/infrastructure/persistence/relational/po"

	"gorm.io/gorm"
)

var castMemberSortFields = map[string]sortField{
	"name":       {column: "name", text: true},
	"created_at": {column: "created_at"},
}

type CastMemberRepository struct {
	baseRepository
}

func NewCastMemberRepository(db *gorm.DB) *CastMemberRepository {
	return &CastMemberRepository{baseRepository{db: db, entityName: castmember.EntityName}}
}

func (r *CastMemberRepository) Insert(ctx context.Context, m *castmember.CastMember) error {
	return r.getDB(ctx).Create(po.FromCastMemberDomain(m)).Error
}

func (r *CastMemberRepository) BulkInsert(ctx context.Context, members []*castmember.CastMember) error {
	if len(members) == 0 {
		return nil
	}
	rows := make([]*po.CastMemberPO, len(members))
	for i, m := range members {
		rows[i] = po.FromCastMemberDomain(m)
	}
	return r.getDB(ctx).Create(&rows).Error
}

func (r *CastMemberRepository) Update(ctx context.Context, m *castmember.CastMember) error {
	row := po.FromCastMemberDomain(m)
	return r.inTransaction(ctx, func(tx *gorm.DB) error {
		if err := r.ensureExists(tx, &po.CastMemberPO{}, row.ID); err != nil {
			return err
		}
		return tx.Model(&po.CastMemberPO{}).Where("id = ?", row.ID).Updates(map[string]any{
			"name": row.Name,
			"type": row.Type,
		}).Error
	})
}

func (r *CastMemberRepository) Delete(ctx context.Context, id castmember.CastMemberID) error {
	return r.deleteByID(r.getDB(ctx), &po.CastMemberPO{}, id.String())
}

func (r *CastMemberRepository) FindByID(ctx context.Context, id castmember.CastMemberID) (*castmember.CastMember, error) {
	row, ok, err := first[po.CastMemberPO](r.getDB(ctx), id.String())
	if err != nil || !ok {
		return nil, err
	}
	return row.ToDomain()
}

func (r *CastMemberRepository) FindAll(ctx context.Context) ([]*castmember.CastMember, error) {
	var rows []po.CastMemberPO
	if err := r.getDB(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.toDomain(rows)
}

func (r *CastMemberRepository) FindByIDs(ctx context.Context, ids []castmember.CastMemberID) ([]*castmember.CastMember, error) {
	if len(ids) == 0 {
		return []*castmember.CastMember{}, nil
	}
	var rows []po.CastMemberPO
	if err := r.getDB(ctx).Where("id IN ?", stringIDs(ids)).Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.toDomain(rows)
}

func (r *CastMemberRepository) ExistsByID(ctx context.Context, ids []castmember.CastMemberID) (shared.ExistsResult[castmember.CastMemberID], error) {
	return existsByID(r.getDB(ctx), &po.CastMemberPO{}, r.entityName, ids)
}

func (r *CastMemberRepository) SortableFields() []string {
	return castmember.SortableFields
}

func (r *CastMemberRepository) Search(ctx context.Context, params castmember.SearchParams) (castmember.SearchResult, error) {
	var scopes []Scope
	if params.HasFilter() {
		filter := params.Filter()
		scopes = append(scopes, ContainsIgnoreCase(r.dialect(), "name", filter.Name))
		if filter.Type != nil {
			typ := int(*filter.Type)
			scopes = append(scopes, func(db *gorm.DB) *gorm.DB { return db.Where("type = ?", typ) })
		}
	}

	order := orderClause(r.dialect(), castMemberSortFields, params.Sort(), params.SortDir())
	rows, total, err := searchRows[po.CastMemberPO](r.getDB(ctx), scopes, order, params.Offset(), params.Limit())
	if err != nil {
		return castmember.SearchResult{}, err
	}
	items, err := r.toDomain(rows)
	if err != nil {
		return castmember.SearchResult{}, err
	}
	return shared.NewSearchResult(items, total, params.Page(), params.PerPage()), nil
}

func (r *CastMemberRepository) toDomain(rows []po.CastMemberPO) ([]*castmember.CastMember, error) {
	out := make([]*castmember.CastMember, 0, len(rows))
	for i := range rows {
		m, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

var _ castmember.Repository = (*CastMemberRepository)(nil)
