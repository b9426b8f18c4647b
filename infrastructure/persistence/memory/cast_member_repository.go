package memory

import (
	"catalog/domain/castmember"
)

type CastMemberRepository struct {
	*InMemorySearchableRepository[castmember.CastMemberID, *castmember.CastMember, castmember.Filter]
}

func NewCastMemberRepository() *CastMemberRepository {
	return &CastMemberRepository{
		InMemorySearchableRepository: NewInMemorySearchableRepository[castmember.CastMemberID, *castmember.CastMember, castmember.Filter](
			castmember.EntityName,
			cloneCastMember,
			SearchConfig[*castmember.CastMember, castmember.Filter]{
				Filter: castmember.MatchesFilter,
				Comparators: map[string]CompareFunc[*castmember.CastMember]{
					"name":       func(a, b *castmember.CastMember) int { return compareStrings(a.Name(), b.Name()) },
					"created_at": func(a, b *castmember.CastMember) int { return oldestFirst(a.CreatedAt(), b.CreatedAt()) },
				},
				DefaultOrder: func(a, b *castmember.CastMember) int { return newestFirst(a.CreatedAt(), b.CreatedAt()) },
			},
		),
	}
}

func cloneCastMember(m *castmember.CastMember) *castmember.CastMember {
	return castmember.Rebuild(castmember.ReconstructionDTO{
		ID:        m.ID(),
		Name:      m.Name(),
		Type:      m.Type(),
		CreatedAt: m.CreatedAt(),
	})
}

var _ castmember.Repository = (*CastMemberRepository)(nil)
