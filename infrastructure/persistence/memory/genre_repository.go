package memory

import (
	"catalog/domain/genre"
)

type GenreRepository struct {
	*InMemorySearchableRepository[genre.GenreID, *genre.Genre, genre.Filter]
}

func NewGenreRepository() *GenreRepository {
	return &GenreRepository{
		InMemorySearchableRepository: NewInMemorySearchableRepository[genre.GenreID, *genre.Genre, genre.Filter](
			genre.EntityName,
			cloneGenre,
			SearchConfig[*genre.Genre, genre.Filter]{
				Filter: genre.MatchesFilter,
				Comparators: map[string]CompareFunc[*genre.Genre]{
					"name":       func(a, b *genre.Genre) int { return compareStrings(a.Name(), b.Name()) },
					"created_at": func(a, b *genre.Genre) int { return oldestFirst(a.CreatedAt(), b.CreatedAt()) },
				},
				DefaultOrder: func(a, b *genre.Genre) int { return newestFirst(a.CreatedAt(), b.CreatedAt()) },
			},
		),
	}
}

func cloneGenre(g *genre.Genre) *genre.Genre {
	return genre.Rebuild(genre.ReconstructionDTO{
		ID:          g.ID(),
		Name:        g.Name(),
		CategoryIDs: g.CategoryIDs(),
		IsActive:    g.IsActive(),
		CreatedAt:   g.CreatedAt(),
	})
}

var _ genre.Repository = (*GenreRepository)(nil)
