package relational

import (
	"context"

	"catalog/domain/shared"
	"catalog/domain/video"
	"catalog/infrastructure/persistence/relational/po"

	"gorm.io/gorm"
)

var videoSortFields = map[string]sortField{
	"title":      {column: "title", text: true},
	"created_at": {column: "created_at"},
}

// videoChildTables 视频拥有的子表及其外键列
var videoChildTables = []any{
	&po.VideoCategoryPO{},
	&po.VideoGenrePO{},
	&po.VideoCastMemberPO{},
	&po.ImageMediaPO{},
	&po.AudioVideoMediaPO{},
}

// VideoRepository videos 以及三张关联表、两张媒体表
type VideoRepository struct {
	baseRepository
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{baseRepository{db: db, entityName: video.EntityName}}
}

func (r *VideoRepository) Insert(ctx context.Context, v *video.Video) error {
	return r.BulkInsert(ctx, []*video.Video{v})
}

func (r *VideoRepository) BulkInsert(ctx context.Context, videos []*video.Video) error {
	if len(videos) == 0 {
		return nil
	}
	rows := make([]*po.VideoPO, 0, len(videos))
	var children po.VideoChildren
	for _, v := range videos {
		row, c := po.FromVideoDomain(v)
		rows = append(rows, row)
		children.Categories = append(children.Categories, c.Categories...)
		children.Genres = append(children.Genres, c.Genres...)
		children.CastMembers = append(children.CastMembers, c.CastMembers...)
		children.Images = append(children.Images, c.Images...)
		children.AudioVideos = append(children.AudioVideos, c.AudioVideos...)
	}

	return r.inTransaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		return insertVideoChildren(tx, children)
	})
}

// Update 所有子表先删后插，整个过程在同一事务中
func (r *VideoRepository) Update(ctx context.Context, v *video.Video) error {
	row, children := po.FromVideoDomain(v)
	return r.inTransaction(ctx, func(tx *gorm.DB) error {
		if err := r.ensureExists(tx, &po.VideoPO{}, row.ID); err != nil {
			return err
		}
		if err := tx.Model(&po.VideoPO{}).Where("id = ?", row.ID).Updates(map[string]any{
			"title":         row.Title,
			"description":   row.Description,
			"year_launched": row.YearLaunched,
			"duration":      row.Duration,
			"rating":        row.Rating,
			"is_opened":     row.IsOpened,
			"is_published":  row.IsPublished,
		}).Error; err != nil {
			return err
		}
		if err := deleteVideoChildren(tx, row.ID); err != nil {
			return err
		}
		return insertVideoChildren(tx, children)
	})
}

func (r *VideoRepository) Delete(ctx context.Context, id video.VideoID) error {
	return r.inTransaction(ctx, func(tx *gorm.DB) error {
		if err := deleteVideoChildren(tx, id.String()); err != nil {
			return err
		}
		return r.deleteByID(tx, &po.VideoPO{}, id.String())
	})
}

func (r *VideoRepository) FindByID(ctx context.Context, id video.VideoID) (*video.Video, error) {
	db := r.getDB(ctx)
	row, ok, err := first[po.VideoPO](db, id.String())
	if err != nil || !ok {
		return nil, err
	}
	videos, err := r.toDomain(db, []po.VideoPO{*row})
	if err != nil {
		return nil, err
	}
	return videos[0], nil
}

func (r *VideoRepository) FindAll(ctx context.Context) ([]*video.Video, error) {
	db := r.getDB(ctx)
	var rows []po.VideoPO
	if err := db.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.toDomain(db, rows)
}

func (r *VideoRepository) FindByIDs(ctx context.Context, ids []video.VideoID) ([]*video.Video, error) {
	if len(ids) == 0 {
		return []*video.Video{}, nil
	}
	db := r.getDB(ctx)
	var rows []po.VideoPO
	if err := db.Where("id IN ?", stringIDs(ids)).Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.toDomain(db, rows)
}

func (r *VideoRepository) ExistsByID(ctx context.Context, ids []video.VideoID) (shared.ExistsResult[video.VideoID], error) {
	return existsByID(r.getDB(ctx), &po.VideoPO{}, r.entityName, ids)
}

func (r *VideoRepository) SortableFields() []string {
	return video.SortableFields
}

func (r *VideoRepository) Search(ctx context.Context, params video.SearchParams) (video.SearchResult, error) {
	var scopes []Scope
	if params.HasFilter() {
		filter := params.Filter()
		scopes = append(scopes,
			ContainsIgnoreCase(r.dialect(), "title", filter.Title),
			InJoinTable("id", "video_categories", "video_id", "category_id", stringIDs(filter.CategoryIDs)),
			InJoinTable("id", "video_genres", "video_id", "genre_id", stringIDs(filter.GenreIDs)),
			InJoinTable("id", "video_cast_members", "video_id", "cast_member_id", stringIDs(filter.CastMemberIDs)),
		)
	}

	db := r.getDB(ctx)
	order := orderClause(r.dialect(), videoSortFields, params.Sort(), params.SortDir())
	rows, total, err := searchRows[po.VideoPO](db, scopes, order, params.Offset(), params.Limit())
	if err != nil {
		return video.SearchResult{}, err
	}
	items, err := r.toDomain(db, rows)
	if err != nil {
		return video.SearchResult{}, err
	}
	return shared.NewSearchResult(items, total, params.Page(), params.PerPage()), nil
}

func (r *VideoRepository) toDomain(db *gorm.DB, rows []po.VideoPO) ([]*video.Video, error) {
	if len(rows) == 0 {
		return []*video.Video{}, nil
	}
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	var (
		categories  []po.VideoCategoryPO
		genres      []po.VideoGenrePO
		castMembers []po.VideoCastMemberPO
		images      []po.ImageMediaPO
		audioVideos []po.AudioVideoMediaPO
	)
	for _, dest := range []any{&categories, &genres, &castMembers, &images, &audioVideos} {
		if err := db.Where("video_id IN ?", ids).Find(dest).Error; err != nil {
			return nil, err
		}
	}

	categoriesByVideo := groupBy(categories, func(row po.VideoCategoryPO) string { return row.VideoID })
	genresByVideo := groupBy(genres, func(row po.VideoGenrePO) string { return row.VideoID })
	castMembersByVideo := groupBy(castMembers, func(row po.VideoCastMemberPO) string { return row.VideoID })
	imagesByVideo := groupBy(images, func(row po.ImageMediaPO) string { return row.VideoID })
	audioVideosByVideo := groupBy(audioVideos, func(row po.AudioVideoMediaPO) string { return row.VideoID })

	out := make([]*video.Video, 0, len(rows))
	for i := range rows {
		id := rows[i].ID
		v, err := rows[i].ToDomain(po.VideoChildren{
			Categories:  categoriesByVideo[id],
			Genres:      genresByVideo[id],
			CastMembers: castMembersByVideo[id],
			Images:      imagesByVideo[id],
			AudioVideos: audioVideosByVideo[id],
		})
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func deleteVideoChildren(tx *gorm.DB, videoID string) error {
	for _, model := range videoChildTables {
		if err := tx.Where("video_id = ?", videoID).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func insertVideoChildren(tx *gorm.DB, children po.VideoChildren) error {
	if len(children.Categories) > 0 {
		if err := tx.Create(&children.Categories).Error; err != nil {
			return err
		}
	}
	if len(children.Genres) > 0 {
		if err := tx.Create(&children.Genres).Error; err != nil {
			return err
		}
	}
	if len(children.CastMembers) > 0 {
		if err := tx.Create(&children.CastMembers).Error; err != nil {
			return err
		}
	}
	if len(children.Images) > 0 {
		if err := tx.Create(&children.Images).Error; err != nil {
			return err
		}
	}
	if len(children.AudioVideos) > 0 {
		if err := tx.Create(&children.AudioVideos).Error; err != nil {
			return err
		}
	}
	return nil
}

var _ video.Repository = (*VideoRepository)(nil)
