package memory

import (
	"context"
	"slices"
	"testing"
	"time"

	"catalog/domain/category"
	"catalog/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// seedCategories 按顺序创建，created_at 依次递增一秒
func seedCategories(t *testing.T, repo *CategoryRepository, names ...string) []*category.Category {
	t.Helper()
	out := make([]*category.Category, 0, len(names))
	for i, name := range names {
		c := category.Rebuild(category.ReconstructionDTO{
			ID:        category.NewCategoryID(),
			Name:      name,
			IsActive:  true,
			CreatedAt: baseTime.Add(time.Duration(i) * time.Second),
		})
		out = append(out, c)
	}
	require.NoError(t, repo.BulkInsert(context.Background(), out))
	return out
}

func names(items []*category.Category) []string {
	out := make([]string, len(items))
	for i, c := range items {
		out[i] = c.Name()
	}
	return out
}

func search(t *testing.T, repo *CategoryRepository, in shared.SearchInput[category.Filter]) category.SearchResult {
	t.Helper()
	result, err := repo.Search(context.Background(), category.NewSearchParams(in))
	require.NoError(t, err)
	return result
}

func TestSearch_FilterSortPaginate(t *testing.T) {
	repo := NewCategoryRepository()
	seedCategories(t, repo, "a", "AAA", "AaA", "b", "c")

	filter := "a"
	result := search(t, repo, shared.SearchInput[category.Filter]{
		Page:    1,
		PerPage: 2,
		Sort:    "name",
		Filter:  &filter,
	})

	assert.Equal(t, []string{"AAA", "AaA"}, names(result.Items))
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.CurrentPage)
	assert.Equal(t, 2, result.PerPage)
	assert.Equal(t, 2, result.LastPage())

	second := search(t, repo, shared.SearchInput[category.Filter]{Page: 2, PerPage: 2, Sort: "name", Filter: &filter})
	assert.Equal(t, []string{"a"}, names(second.Items))
}

func TestSearch_SortDesc(t *testing.T) {
	repo := NewCategoryRepository()
	seedCategories(t, repo, "b", "a", "c")

	result := search(t, repo, shared.SearchInput[category.Filter]{Sort: "name", SortDir: "desc"})
	assert.Equal(t, []string{"c", "b", "a"}, names(result.Items))
}

func TestSearch_DefaultOrderIsNewestFirst(t *testing.T) {
	repo := NewCategoryRepository()
	seedCategories(t, repo, "first", "second", "third")

	result := search(t, repo, shared.SearchInput[category.Filter]{})
	assert.Equal(t, []string{"third", "second", "first"}, names(result.Items))
	assert.Equal(t, shared.DefaultPerPage, result.PerPage)

	unknown := search(t, repo, shared.SearchInput[category.Filter]{Sort: "description", SortDir: "asc"})
	assert.Equal(t, []string{"third", "second", "first"}, names(unknown.Items))
}

func TestSearch_PageBeyondEnd(t *testing.T) {
	repo := NewCategoryRepository()
	seedCategories(t, repo, "a", "b")

	result := search(t, repo, shared.SearchInput[category.Filter]{Page: 5, PerPage: 2})
	assert.Empty(t, result.Items)
	assert.NotNil(t, result.Items)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.LastPage())
}

func TestSortableFields(t *testing.T) {
	assert.Equal(t, []string{"created_at", "name"}, NewCategoryRepository().SortableFields())
	assert.Equal(t, []string{"created_at", "title"}, NewVideoRepository().SortableFields())
}

func TestCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository()
	items := seedCategories(t, repo, "a", "b")

	found, err := repo.FindByID(ctx, items[0].ID())
	require.NoError(t, err)
	assert.NotSame(t, items[0], found)
	assert.Equal(t, items[0].ID(), found.ID())
	assert.Equal(t, "a", found.Name())

	missing, err := repo.FindByID(ctx, category.NewCategoryID())
	require.NoError(t, err)
	assert.Nil(t, missing)

	byIDs, err := repo.FindByIDs(ctx, []category.CategoryID{items[1].ID(), category.NewCategoryID()})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, names(byIDs))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, repo.Delete(ctx, items[0].ID()))
	err = repo.Delete(ctx, items[0].ID())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = repo.Update(ctx, items[0])
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Equal(t, "Category Not Found using Id "+items[0].ID().String(), err.Error())
}

func TestExistsByID(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository()
	items := seedCategories(t, repo, "a")
	ghost := category.NewCategoryID()

	result, err := repo.ExistsByID(ctx, []category.CategoryID{items[0].ID(), ghost})
	require.NoError(t, err)
	assert.Equal(t, []category.CategoryID{items[0].ID()}, result.Exists)
	assert.Equal(t, []category.CategoryID{ghost}, result.NotExists)

	_, err = repo.ExistsByID(ctx, nil)
	assert.ErrorIs(t, err, shared.ErrInvalidArgument)
}

func TestStoredEntitiesAreCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository()
	c := category.Create(category.CreateCommand{Name: "Movie"})
	require.NoError(t, repo.Insert(ctx, c))

	// 插入后修改调用方的实例，不影响存储
	c.ChangeName("")
	stored, err := repo.FindByID(ctx, c.ID())
	require.NoError(t, err)
	assert.Equal(t, "Movie", stored.Name())
	assert.False(t, stored.Notification().HasErrors())
	assert.Empty(t, stored.PullEvents())

	// 读出的实例同样互不影响
	stored.ChangeName("Film")
	again, err := repo.FindByID(ctx, c.ID())
	require.NoError(t, err)
	assert.Equal(t, "Movie", again.Name())

	result := search(t, repo, shared.SearchInput[category.Filter]{})
	require.Len(t, result.Items, 1)
	result.Items[0].Deactivate()
	assert.True(t, repo.Items()[0].IsActive())
}

func TestSearch_TiesOrderedByID(t *testing.T) {
	repo := NewCategoryRepository()
	items := make([]*category.Category, 0, 5)
	for range 5 {
		items = append(items, category.Rebuild(category.ReconstructionDTO{
			ID:        category.NewCategoryID(),
			Name:      "same",
			IsActive:  true,
			CreatedAt: baseTime,
		}))
	}
	require.NoError(t, repo.BulkInsert(context.Background(), items))

	ids := make([]string, len(items))
	for i, c := range items {
		ids[i] = c.ID().String()
	}
	slices.Sort(ids)

	for _, in := range []shared.SearchInput[category.Filter]{{}, {Sort: "name"}, {Sort: "name", SortDir: "desc"}} {
		result := search(t, repo, in)
		got := make([]string, len(result.Items))
		for i, c := range result.Items {
			got[i] = c.ID().String()
		}
		assert.Equal(t, ids, got, "input %+v", in)
	}
}
