package relational

import (
	"testing"

	"catalog/domain/category"
	"catalog/domain/genre"
	"catalog/domain/shared"
	"catalog/infrastructure/persistence/relational/po"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func countLinks(t *testing.T, db *gorm.DB, genreID genre.GenreID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&po.GenreCategoryPO{}).Where("genre_id = ?", genreID.String()).Count(&n).Error)
	return n
}

func genreNames(items []*genre.Genre) []string {
	out := make([]string, len(items))
	for i, g := range items {
		out[i] = g.Name()
	}
	return out
}

func TestGenreRepository_CategoryLinksConverge(t *testing.T) {
	db := newTestDB(t)
	repo := NewGenreRepository(db)
	c1, c2, c3 := category.NewCategoryID(), category.NewCategoryID(), category.NewCategoryID()
	g := newGenre("Drama", 0, c1, c2)
	require.NoError(t, repo.Insert(ctx, g))
	assert.Equal(t, int64(2), countLinks(t, db, g.ID()))

	g.SyncCategoryIDs([]category.CategoryID{c2, c3})
	require.NoError(t, repo.Update(ctx, g))

	found, err := repo.FindByID(ctx, g.ID())
	require.NoError(t, err)
	assert.ElementsMatch(t, []category.CategoryID{c2, c3}, found.CategoryIDs())
	assert.Equal(t, int64(2), countLinks(t, db, g.ID()))

	// 重复更新不产生重复行
	require.NoError(t, repo.Update(ctx, g))
	assert.Equal(t, int64(2), countLinks(t, db, g.ID()))
}

func TestGenreRepository_DeleteRemovesLinks(t *testing.T) {
	db := newTestDB(t)
	repo := NewGenreRepository(db)
	g := newGenre("Drama", 0, category.NewCategoryID())
	require.NoError(t, repo.Insert(ctx, g))

	require.NoError(t, repo.Delete(ctx, g.ID()))
	assert.Equal(t, int64(0), countLinks(t, db, g.ID()))

	found, err := repo.FindByID(ctx, g.ID())
	require.NoError(t, err)
	assert.Nil(t, found)

	err = repo.Delete(ctx, g.ID())
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.EqualError(t, err, "Genre Not Found using Id "+g.ID().String())
}

func TestGenreRepository_UpdateMissingLeavesNoLinks(t *testing.T) {
	db := newTestDB(t)
	repo := NewGenreRepository(db)
	g := newGenre("Ghost", 0, category.NewCategoryID())

	assert.ErrorIs(t, repo.Update(ctx, g), shared.ErrNotFound)
	assert.Equal(t, int64(0), countLinks(t, db, g.ID()))
}

func TestGenreRepository_SearchByCategory(t *testing.T) {
	repo := NewGenreRepository(newTestDB(t))
	action, comedy, horror := category.NewCategoryID(), category.NewCategoryID(), category.NewCategoryID()
	require.NoError(t, repo.BulkInsert(ctx, []*genre.Genre{
		newGenre("Action Comedy", 0, action, comedy),
		newGenre("Comedy", 1, comedy),
		newGenre("Horror", 2, horror),
		newGenre("Action", 3, action),
	}))

	result, err := repo.Search(ctx, genre.NewSearchParams(shared.SearchInput[genre.Filter]{
		Sort:   "name",
		Filter: &genre.Filter{CategoryIDs: []category.CategoryID{action, horror}},
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Action", "Action Comedy", "Horror"}, genreNames(result.Items))
	assert.Equal(t, 3, result.Total)

	result, err = repo.Search(ctx, genre.NewSearchParams(shared.SearchInput[genre.Filter]{
		Filter: &genre.Filter{Name: "comedy", CategoryIDs: []category.CategoryID{action}},
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Action Comedy"}, genreNames(result.Items))

	// 默认按创建时间倒序
	result, err = repo.Search(ctx, genre.NewSearchParams(shared.SearchInput[genre.Filter]{}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Action", "Horror", "Comedy", "Action Comedy"}, genreNames(result.Items))
	require.Len(t, result.Items, 4)
	assert.ElementsMatch(t, []category.CategoryID{action, comedy}, result.Items[3].CategoryIDs())
}

func TestGenreRepository_GenreWithoutLinksFailsToLoad(t *testing.T) {
	db := newTestDB(t)
	repo := NewGenreRepository(db)
	g := newGenre("Orphan", 0, category.NewCategoryID())
	require.NoError(t, repo.Insert(ctx, g))
	require.NoError(t, db.Where("genre_id = ?", g.ID().String()).Delete(&po.GenreCategoryPO{}).Error)

	_, err := repo.FindByID(ctx, g.ID())
	assert.ErrorIs(t, err, shared.ErrLoadEntity)
}
