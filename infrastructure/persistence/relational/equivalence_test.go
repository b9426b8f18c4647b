package relational

import (
	"testing"

	"catalog/domain/castmember"
	"catalog/domain/category"
	"catalog/domain/genre"
	"catalog/domain/shared"
	"catalog/domain/video"
	"catalog/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 同一组数据、同一组搜索参数，内存和关系型实现的结果一致
func TestSearchMatchesMemoryRepository_Categories(t *testing.T) {
	items := []*category.Category{
		newCategory("a", 0),
		newCategory("AAA", 1),
		newCategory("AaA", 2),
		newCategory("b", 3),
		newCategory("Comedy", 4),
		newCategory("drama", 5),
		newCategory("Zombie", 6),
	}
	rel := NewCategoryRepository(newTestDB(t))
	mem := memory.NewCategoryRepository()
	require.NoError(t, rel.BulkInsert(ctx, items))
	require.NoError(t, mem.BulkInsert(ctx, items))

	filterA, filterO := "a", "O"
	inputs := []shared.SearchInput[category.Filter]{
		{},
		{Page: 2, PerPage: 3},
		{Sort: "name"},
		{Sort: "name", SortDir: "desc"},
		{Sort: "created_at", SortDir: "asc", PerPage: 4},
		{Sort: "name", Filter: &filterA, PerPage: 2},
		{Sort: "name", Filter: &filterA, PerPage: 2, Page: 2},
		{Filter: &filterO},
		{Sort: "unknown", Page: 9},
	}
	for _, in := range inputs {
		params := category.NewSearchParams(in)
		want, err := mem.Search(ctx, params)
		require.NoError(t, err)
		got, err := rel.Search(ctx, params)
		require.NoError(t, err)

		assert.Equal(t, categoryNames(want.Items), categoryNames(got.Items), "input %+v", in)
		assert.Equal(t, want.Total, got.Total, "input %+v", in)
		assert.Equal(t, want.LastPage(), got.LastPage(), "input %+v", in)
	}
}

func TestSearchMatchesMemoryRepository_CastMembers(t *testing.T) {
	items := []*castmember.CastMember{
		newCastMember("Keanu", castmember.TypeActor, 0),
		newCastMember("Kathryn", castmember.TypeDirector, 1),
		newCastMember("keira", castmember.TypeActor, 2),
		newCastMember("Nolan", castmember.TypeDirector, 3),
	}
	rel := NewCastMemberRepository(newTestDB(t))
	mem := memory.NewCastMemberRepository()
	require.NoError(t, rel.BulkInsert(ctx, items))
	require.NoError(t, mem.BulkInsert(ctx, items))

	actor, director := castmember.TypeActor, castmember.TypeDirector
	filters := []castmember.Filter{
		{Name: "ke"},
		{Type: &actor},
		{Name: "K", Type: &director},
		{Name: "nobody"},
	}
	for _, f := range filters {
		filter := f
		params := castmember.NewSearchParams(shared.SearchInput[castmember.Filter]{Sort: "name", Filter: &filter})
		want, err := mem.Search(ctx, params)
		require.NoError(t, err)
		got, err := rel.Search(ctx, params)
		require.NoError(t, err)

		assert.Equal(t, castMemberNames(want.Items), castMemberNames(got.Items), "filter %+v", f)
		assert.Equal(t, want.Total, got.Total)
	}
}

func castMemberNames(items []*castmember.CastMember) []string {
	out := make([]string, len(items))
	for i, m := range items {
		out[i] = m.Name()
	}
	return out
}

// 名称含非 ASCII 字符时两边的大小写折叠一致，重音不被忽略
func TestSearchMatchesMemoryRepository_NonASCII(t *testing.T) {
	items := []*category.Category{
		newCategory("AÇÃO", 0),
		newCategory("ação", 1),
		newCategory("Ñandú", 2),
		newCategory("acao", 3),
		newCategory("Ärger", 4),
	}
	rel := NewCategoryRepository(newTestDB(t))
	mem := memory.NewCategoryRepository()
	require.NoError(t, rel.BulkInsert(ctx, items))
	require.NoError(t, mem.BulkInsert(ctx, items))

	cases := map[string][]string{
		"ação":  {"ação", "AÇÃO"},
		"AÇÃO":  {"ação", "AÇÃO"},
		"ñ":     {"Ñandú"},
		"Ç":     {"ação", "AÇÃO"},
		"acao":  {"acao"},
		"ä":     {"Ärger"},
		"nandu": {},
	}
	for filter, expected := range cases {
		f := filter
		params := category.NewSearchParams(shared.SearchInput[category.Filter]{Filter: &f})
		want, err := mem.Search(ctx, params)
		require.NoError(t, err)
		got, err := rel.Search(ctx, params)
		require.NoError(t, err)

		assert.Equal(t, expected, categoryNames(want.Items), "filter %q", filter)
		assert.Equal(t, categoryNames(want.Items), categoryNames(got.Items), "filter %q", filter)
		assert.Equal(t, want.Total, got.Total, "filter %q", filter)
	}
}

// 排序键相同的行按 id 升序，两边分页切片一致
func TestSearchMatchesMemoryRepository_Ties(t *testing.T) {
	items := make([]*category.Category, 0, 6)
	for range 6 {
		items = append(items, newCategory("Same", 0))
	}
	rel := NewCategoryRepository(newTestDB(t))
	mem := memory.NewCategoryRepository()
	require.NoError(t, rel.BulkInsert(ctx, items))
	require.NoError(t, mem.BulkInsert(ctx, items))

	inputs := []shared.SearchInput[category.Filter]{
		{PerPage: 4},
		{Page: 2, PerPage: 4},
		{Sort: "name", PerPage: 4},
		{Sort: "name", SortDir: "desc", Page: 2, PerPage: 4},
		{Sort: "created_at", SortDir: "asc", Page: 2, PerPage: 3},
	}
	for _, in := range inputs {
		params := category.NewSearchParams(in)
		want, err := mem.Search(ctx, params)
		require.NoError(t, err)
		got, err := rel.Search(ctx, params)
		require.NoError(t, err)

		assert.Equal(t, categoryIDs(want.Items), categoryIDs(got.Items), "input %+v", in)
		assert.Equal(t, want.Total, got.Total, "input %+v", in)
	}
}

func TestSearchMatchesMemoryRepository_Genres(t *testing.T) {
	c1, c2, c3 := category.NewCategoryID(), category.NewCategoryID(), category.NewCategoryID()
	items := []*genre.Genre{
		newGenre("Action", 0, c1),
		newGenre("adventure", 1, c1, c2),
		newGenre("Drama", 2, c2),
		newGenre("Documentary", 3, c3),
		newGenre("Animation", 4, c1, c3),
		newGenre("Horror", 5, c2, c3),
	}
	rel := NewGenreRepository(newTestDB(t))
	mem := memory.NewGenreRepository()
	require.NoError(t, rel.BulkInsert(ctx, items))
	require.NoError(t, mem.BulkInsert(ctx, items))

	filter := func(f genre.Filter) *genre.Filter { return &f }
	inputs := []shared.SearchInput[genre.Filter]{
		{},
		{Sort: "name", SortDir: "desc"},
		{Sort: "name", Page: 2, PerPage: 4},
		{Filter: filter(genre.Filter{CategoryIDs: []category.CategoryID{c1}})},
		{Filter: filter(genre.Filter{CategoryIDs: []category.CategoryID{c2, c3}}), Sort: "name"},
		{Filter: filter(genre.Filter{Name: "a", CategoryIDs: []category.CategoryID{c1}}), Sort: "name", SortDir: "desc"},
		{Filter: filter(genre.Filter{Name: "D", CategoryIDs: []category.CategoryID{c2, c3}}), Sort: "name", PerPage: 1, Page: 2},
		{Filter: filter(genre.Filter{CategoryIDs: []category.CategoryID{category.NewCategoryID()}})},
	}
	for _, in := range inputs {
		params := genre.NewSearchParams(in)
		want, err := mem.Search(ctx, params)
		require.NoError(t, err)
		got, err := rel.Search(ctx, params)
		require.NoError(t, err)

		assert.Equal(t, genreNames(want.Items), genreNames(got.Items), "input %+v", in)
		assert.Equal(t, want.Total, got.Total, "input %+v", in)
		assert.Equal(t, want.LastPage(), got.LastPage(), "input %+v", in)
	}
}

func TestSearchMatchesMemoryRepository_Videos(t *testing.T) {
	c1, c2 := category.NewCategoryID(), category.NewCategoryID()
	g1, g2 := genre.NewGenreID(), genre.NewGenreID()
	m1, m2 := castmember.NewCastMemberID(), castmember.NewCastMemberID()
	refs := func(cs []category.CategoryID, gs []genre.GenreID, ms []castmember.CastMemberID) videoRefs {
		return videoRefs{categoryIDs: cs, genreIDs: gs, castMemberIDs: ms}
	}
	items := []*video.Video{
		newVideo("Alien", 0, refs([]category.CategoryID{c1}, []genre.GenreID{g1}, []castmember.CastMemberID{m1})),
		newVideo("Aliens", 1, refs([]category.CategoryID{c1, c2}, []genre.GenreID{g1}, []castmember.CastMemberID{m2})),
		newVideo("Brazil", 2, refs([]category.CategoryID{c2}, []genre.GenreID{g2}, []castmember.CastMemberID{m1, m2})),
		newVideo("casablanca", 3, refs([]category.CategoryID{c2}, []genre.GenreID{g1, g2}, []castmember.CastMemberID{m2})),
		newVideo("Dune", 4, refs([]category.CategoryID{c1}, []genre.GenreID{g2}, []castmember.CastMemberID{m1})),
	}
	rel := NewVideoRepository(newTestDB(t))
	mem := memory.NewVideoRepository()
	require.NoError(t, rel.BulkInsert(ctx, items))
	require.NoError(t, mem.BulkInsert(ctx, items))

	filter := func(f video.Filter) *video.Filter { return &f }
	inputs := []shared.SearchInput[video.Filter]{
		{},
		{Sort: "title", SortDir: "desc"},
		{Sort: "title", Page: 2, PerPage: 2},
		{Filter: filter(video.Filter{CategoryIDs: []category.CategoryID{c1}}), Sort: "title"},
		{Filter: filter(video.Filter{GenreIDs: []genre.GenreID{g2}}), Sort: "title", SortDir: "desc"},
		{Filter: filter(video.Filter{CastMemberIDs: []castmember.CastMemberID{m1}})},
		{Filter: filter(video.Filter{CategoryIDs: []category.CategoryID{c2}, GenreIDs: []genre.GenreID{g1}}), Sort: "title"},
		{Filter: filter(video.Filter{
			Title:         "a",
			CategoryIDs:   []category.CategoryID{c1, c2},
			GenreIDs:      []genre.GenreID{g1, g2},
			CastMemberIDs: []castmember.CastMemberID{m2},
		}), Sort: "title", PerPage: 2, Page: 2},
		{Filter: filter(video.Filter{GenreIDs: []genre.GenreID{genre.NewGenreID()}})},
	}
	for _, in := range inputs {
		params := video.NewSearchParams(in)
		want, err := mem.Search(ctx, params)
		require.NoError(t, err)
		got, err := rel.Search(ctx, params)
		require.NoError(t, err)

		assert.Equal(t, videoTitles(want.Items), videoTitles(got.Items), "input %+v", in)
		assert.Equal(t, want.Total, got.Total, "input %+v", in)
		assert.Equal(t, want.LastPage(), got.LastPage(), "input %+v", in)
	}
}

func categoryIDs(items []*category.Category) []string {
	out := make([]string, len(items))
	for i, c := range items {
		out[i] = c.ID().String()
	}
	return out
}
