/*
Package video Video 聚合

Video 通过 ID 引用 Category、Genre、CastMember（三个多对多关联集合），
并拥有五个可选媒体槽位：banner、thumbnail、thumbnail_half（图片）以及
trailer、video（音视频，带编码状态）。

isPublished 是派生状态：每次替换预告片或正片都会 ApplyEvent(VideoAudioMediaReplaced)，
构造时登记的本地处理函数同步检查两者是否都已 COMPLETED，满足时置为 true。
这个机制从不把 isPublished 重置为 false。
*/
package video

import (
	"time"

	"catalog/domain/castmember"
	"catalog/domain/category"
	"catalog/domain/genre"
	"catalog/domain/shared"
)

const EntityName = "Video"

const titleMaxLength = 255

type VideoID struct {
	shared.UUID
}

func NewVideoID() VideoID {
	return VideoID{UUID: shared.NewUUID()}
}

func ParseVideoID(value string) (VideoID, error) {
	id, err := shared.ParseUUID(value)
	if err != nil {
		return VideoID{}, err
	}
	return VideoID{UUID: id}, nil
}

// Video 视频聚合根
type Video struct {
	shared.BaseAggregate

	id           VideoID
	title        string
	description  string
	yearLaunched int
	duration     int
	rating       Rating
	isOpened     bool
	isPublished  bool

	banner        *ImageMedia
	thumbnail     *ImageMedia
	thumbnailHalf *ImageMedia
	trailer       *AudioVideoMedia
	video         *AudioVideoMedia

	categoryIDs   shared.IDSet[category.CategoryID]
	genreIDs      shared.IDSet[genre.GenreID]
	castMemberIDs shared.IDSet[castmember.CastMemberID]

	createdAt time.Time
}

// CreateCommand 创建视频的参数
type CreateCommand struct {
	Title         string
	Description   string
	YearLaunched  int
	Duration      int
	Rating        Rating
	IsOpened      bool
	CategoryIDs   []category.CategoryID
	GenreIDs      []genre.GenreID
	CastMemberIDs []castmember.CastMemberID
}

// Create 工厂方法：创建视频，记录 VideoCreated 事件
func Create(cmd CreateCommand) *Video {
	v := newVideo(VideoID{}, time.Time{})
	v.id = NewVideoID()
	v.createdAt = time.Now().UTC().Truncate(time.Microsecond)
	v.title = cmd.Title
	v.description = cmd.Description
	v.yearLaunched = cmd.YearLaunched
	v.duration = cmd.Duration
	v.rating = cmd.Rating
	v.isOpened = cmd.IsOpened
	v.categoryIDs = shared.NewIDSet(cmd.CategoryIDs...)
	v.genreIDs = shared.NewIDSet(cmd.GenreIDs...)
	v.castMemberIDs = shared.NewIDSet(cmd.CastMemberIDs...)

	v.Validate("title", "rating")
	v.ApplyEvent(&VideoCreatedEvent{
		EventMeta:     shared.NewEventMeta(v.id.String()),
		Title:         v.title,
		Description:   v.description,
		YearLaunched:  v.yearLaunched,
		Duration:      v.duration,
		Rating:        v.rating,
		IsOpened:      v.isOpened,
		IsPublished:   v.isPublished,
		CategoryIDs:   v.categoryIDs.Strings(),
		GenreIDs:      v.genreIDs.Strings(),
		CastMemberIDs: v.castMemberIDs.Strings(),
	})
	return v
}

// newVideo 所有构造路径共用：登记本地事件处理函数
func newVideo(id VideoID, createdAt time.Time) *Video {
	v := &Video{
		BaseAggregate: shared.NewBaseAggregate(),
		id:            id,
		createdAt:     createdAt,
	}
	v.RegisterHandler(VideoAudioMediaReplacedEventName, v.onAudioVideoMediaReplaced)
	return v
}

// ReconstructionDTO 仅供仓储/Mapper 使用
type ReconstructionDTO struct {
	ID            VideoID
	Title         string
	Description   string
	YearLaunched  int
	Duration      int
	Rating        Rating
	IsOpened      bool
	IsPublished   bool
	Banner        *ImageMedia
	Thumbnail     *ImageMedia
	ThumbnailHalf *ImageMedia
	Trailer       *AudioVideoMedia
	Video         *AudioVideoMedia
	CategoryIDs   []category.CategoryID
	GenreIDs      []genre.GenreID
	CastMemberIDs []castmember.CastMemberID
	CreatedAt     time.Time
}

// Rebuild 从 DTO 重建聚合，不做校验；Mapper 负责重新校验
func Rebuild(dto ReconstructionDTO) *Video {
	v := newVideo(dto.ID, dto.CreatedAt)
	v.title = dto.Title
	v.description = dto.Description
	v.yearLaunched = dto.YearLaunched
	v.duration = dto.Duration
	v.rating = dto.Rating
	v.isOpened = dto.IsOpened
	v.isPublished = dto.IsPublished
	v.banner = dto.Banner
	v.thumbnail = dto.Thumbnail
	v.thumbnailHalf = dto.ThumbnailHalf
	v.trailer = dto.Trailer
	v.video = dto.Video
	v.categoryIDs = shared.NewIDSet(dto.CategoryIDs...)
	v.genreIDs = shared.NewIDSet(dto.GenreIDs...)
	v.castMemberIDs = shared.NewIDSet(dto.CastMemberIDs...)
	return v
}

// ============================================================================
// 行为方法
// ============================================================================

func (v *Video) ChangeTitle(title string) {
	v.title = title
	v.Validate("title")
}

func (v *Video) ChangeDescription(description string) { v.description = description }
func (v *Video) ChangeYearLaunched(year int)          { v.yearLaunched = year }
func (v *Video) ChangeDuration(duration int)          { v.duration = duration }

func (v *Video) ChangeRating(rating Rating) {
	v.rating = rating
	v.Validate("rating")
}

func (v *Video) MarkAsOpened()    { v.isOpened = true }
func (v *Video) MarkAsNotOpened() { v.isOpened = false }

func (v *Video) ReplaceBanner(m ImageMedia)        { v.banner = &m }
func (v *Video) ReplaceThumbnail(m ImageMedia)     { v.thumbnail = &m }
func (v *Video) ReplaceThumbnailHalf(m ImageMedia) { v.thumbnailHalf = &m }

// ReplaceTrailer 替换预告片并同步派生发布状态
func (v *Video) ReplaceTrailer(m AudioVideoMedia) {
	v.trailer = &m
	v.ApplyEvent(&VideoAudioMediaReplacedEvent{
		EventMeta: shared.NewEventMeta(v.id.String()),
		MediaType: FieldTrailer,
		Media:     m,
	})
}

// ReplaceAudioVideo 替换正片并同步派生发布状态
func (v *Video) ReplaceAudioVideo(m AudioVideoMedia) {
	v.video = &m
	v.ApplyEvent(&VideoAudioMediaReplacedEvent{
		EventMeta: shared.NewEventMeta(v.id.String()),
		MediaType: FieldVideo,
		Media:     m,
	})
}

// ReplaceImage 按槽位替换图片
func (v *Video) ReplaceImage(field MediaField, m ImageMedia) {
	switch field {
	case FieldBanner:
		v.ReplaceBanner(m)
	case FieldThumbnail:
		v.ReplaceThumbnail(m)
	case FieldThumbnailHalf:
		v.ReplaceThumbnailHalf(m)
	}
}

// ReplaceMedia 按槽位替换音视频
func (v *Video) ReplaceMedia(field MediaField, m AudioVideoMedia) {
	switch field {
	case FieldTrailer:
		v.ReplaceTrailer(m)
	case FieldVideo:
		v.ReplaceAudioVideo(m)
	}
}

// AudioVideoMedia 按槽位读取音视频
func (v *Video) AudioVideoMedia(field MediaField) *AudioVideoMedia {
	switch field {
	case FieldTrailer:
		return v.trailer
	case FieldVideo:
		return v.video
	}
	return nil
}

func (v *Video) onAudioVideoMediaReplaced(shared.DomainEvent) {
	v.tryMarkAsPublished()
}

func (v *Video) tryMarkAsPublished() {
	if v.trailer != nil && v.video != nil && v.trailer.IsCompleted() && v.video.IsCompleted() {
		v.isPublished = true
	}
}

func (v *Video) AddCategoryID(id category.CategoryID)    { v.categoryIDs.Add(id) }
func (v *Video) RemoveCategoryID(id category.CategoryID) { v.categoryIDs.Remove(id) }
func (v *Video) SyncCategoryIDs(ids []category.CategoryID) {
	if len(ids) == 0 {
		v.Notification().AddError("categories_id", "categories_id should not be empty")
		return
	}
	v.categoryIDs = shared.NewIDSet(ids...)
}

func (v *Video) AddGenreID(id genre.GenreID)    { v.genreIDs.Add(id) }
func (v *Video) RemoveGenreID(id genre.GenreID) { v.genreIDs.Remove(id) }
func (v *Video) SyncGenreIDs(ids []genre.GenreID) {
	if len(ids) == 0 {
		v.Notification().AddError("genres_id", "genres_id should not be empty")
		return
	}
	v.genreIDs = shared.NewIDSet(ids...)
}

func (v *Video) AddCastMemberID(id castmember.CastMemberID)    { v.castMemberIDs.Add(id) }
func (v *Video) RemoveCastMemberID(id castmember.CastMemberID) { v.castMemberIDs.Remove(id) }
func (v *Video) SyncCastMemberIDs(ids []castmember.CastMemberID) {
	if len(ids) == 0 {
		v.Notification().AddError("cast_members_id", "cast_members_id should not be empty")
		return
	}
	v.castMemberIDs = shared.NewIDSet(ids...)
}

// Validate 校验指定字段，不传字段时校验全部
func (v *Video) Validate(fields ...string) bool {
	n := v.Notification()
	want := make(map[string]bool, len(fields))
	for _, f := range fields {
		want[f] = true
	}
	all := len(fields) == 0

	if all || want["title"] {
		if v.title == "" {
			n.AddError("title", "title should not be empty")
		}
		if len([]rune(v.title)) > titleMaxLength {
			n.AddError("title", "title must be shorter than or equal to 255 characters")
		}
	}
	if all || want["rating"] {
		if !v.rating.Valid() {
			n.AddError("rating", ratingErrorMessage)
		}
	}
	return !n.HasErrors()
}

// ============================================================================
// Getters
// ============================================================================

func (v *Video) ID() VideoID                { return v.id }
func (v *Video) AggregateID() string        { return v.id.String() }
func (v *Video) Title() string              { return v.title }
func (v *Video) Description() string        { return v.description }
func (v *Video) YearLaunched() int          { return v.yearLaunched }
func (v *Video) Duration() int              { return v.duration }
func (v *Video) Rating() Rating             { return v.rating }
func (v *Video) IsOpened() bool             { return v.isOpened }
func (v *Video) IsPublished() bool          { return v.isPublished }
func (v *Video) Banner() *ImageMedia        { return v.banner }
func (v *Video) Thumbnail() *ImageMedia     { return v.thumbnail }
func (v *Video) ThumbnailHalf() *ImageMedia { return v.thumbnailHalf }
func (v *Video) Trailer() *AudioVideoMedia  { return v.trailer }
func (v *Video) Video() *AudioVideoMedia    { return v.video }
func (v *Video) CreatedAt() time.Time       { return v.createdAt }

func (v *Video) CategoryIDs() []category.CategoryID       { return v.categoryIDs.Values() }
func (v *Video) GenreIDs() []genre.GenreID                { return v.genreIDs.Values() }
func (v *Video) CastMemberIDs() []castmember.CastMemberID { return v.castMemberIDs.Values() }
func (v *Video) HasCategory(id category.CategoryID) bool  { return v.categoryIDs.Has(id) }
func (v *Video) HasGenre(id genre.GenreID) bool           { return v.genreIDs.Has(id) }
func (v *Video) HasCastMember(id castmember.CastMemberID) bool {
	return v.castMemberIDs.Has(id)
}

var _ shared.AggregateRoot = (*Video)(nil)
