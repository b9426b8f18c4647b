package relational

import (
	"context"
	"testing"
	"time"

	"catalog/domain/castmember"
	"catalog/domain/category"
	"catalog/domain/genre"
	"catalog/domain/video"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var baseTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// newTestDB 每个测试一个独立的内存 SQLite 库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := (&Config{Type: DialectSQLite, LogLevel: "silent"}).Connect()
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func at(i int) time.Time {
	return baseTime.Add(time.Duration(i) * time.Second)
}

func newCategory(name string, i int) *category.Category {
	return category.Rebuild(category.ReconstructionDTO{
		ID:        category.NewCategoryID(),
		Name:      name,
		IsActive:  true,
		CreatedAt: at(i),
	})
}

func newCastMember(name string, typ castmember.Type, i int) *castmember.CastMember {
	return castmember.Rebuild(castmember.ReconstructionDTO{
		ID:        castmember.NewCastMemberID(),
		Name:      name,
		Type:      typ,
		CreatedAt: at(i),
	})
}

func newGenre(name string, i int, categoryIDs ...category.CategoryID) *genre.Genre {
	return genre.Rebuild(genre.ReconstructionDTO{
		ID:          genre.NewGenreID(),
		Name:        name,
		CategoryIDs: categoryIDs,
		IsActive:    true,
		CreatedAt:   at(i),
	})
}

type videoRefs struct {
	categoryIDs   []category.CategoryID
	genreIDs      []genre.GenreID
	castMemberIDs []castmember.CastMemberID
}

func newRefs() videoRefs {
	return videoRefs{
		categoryIDs:   []category.CategoryID{category.NewCategoryID()},
		genreIDs:      []genre.GenreID{genre.NewGenreID()},
		castMemberIDs: []castmember.CastMemberID{castmember.NewCastMemberID()},
	}
}

func newVideo(title string, i int, refs videoRefs) *video.Video {
	return video.Rebuild(video.ReconstructionDTO{
		ID:            video.NewVideoID(),
		Title:         title,
		Description:   "description of " + title,
		YearLaunched:  2000 + i,
		Duration:      90,
		Rating:        video.Rating12,
		CategoryIDs:   refs.categoryIDs,
		GenreIDs:      refs.genreIDs,
		CastMemberIDs: refs.castMemberIDs,
		CreatedAt:     at(i),
	})
}

func categoryNames(items []*category.Category) []string {
	out := make([]string, len(items))
	for i, c := range items {
		out[i] = c.Name()
	}
	return out
}

var ctx = context.Background()
