package po

import (
	"time"

	"catalog/domain/castmember"
	"catalog/domain/category"
	"catalog/domain/genre"
	"catalog/domain/shared"
	"catalog/domain/video"
)

// VideoPO Video persistence object
type VideoPO struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Title        string    `gorm:"size:255;not null"`
	Description  string    `gorm:"type:text;not null"`
	YearLaunched int       `gorm:"not null"`
	Duration     int       `gorm:"not null"`
	Rating       string    `gorm:"size:3;not null"`
	IsOpened     bool      `gorm:"not null"`
	IsPublished  bool      `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null;precision:6"`
}

func (VideoPO) TableName() string {
	return "videos"
}

type VideoCategoryPO struct {
	VideoID    string `gorm:"primaryKey;size:36"`
	CategoryID string `gorm:"primaryKey;size:36;index"`
}

func (VideoCategoryPO) TableName() string {
	return "video_categories"
}

type VideoGenrePO struct {
	VideoID string `gorm:"primaryKey;size:36"`
	GenreID string `gorm:"primaryKey;size:36;index"`
}

func (VideoGenrePO) TableName() string {
	return "video_genres"
}

type VideoCastMemberPO struct {
	VideoID      string `gorm:"primaryKey;size:36"`
	CastMemberID string `gorm:"primaryKey;size:36;index"`
}

func (VideoCastMemberPO) TableName() string {
	return "video_cast_members"
}

// ImageMediaPO 图片媒体行，按 (video_id, video_related_field) 归属到视频的某个槽位
type ImageMediaPO struct {
	VideoID           string `gorm:"primaryKey;size:36"`
	VideoRelatedField string `gorm:"primaryKey;size:20"`
	Name              string `gorm:"size:255;not null"`
	Location          string `gorm:"size:255;not null"`
}

func (ImageMediaPO) TableName() string {
	return "image_medias"
}

// AudioVideoMediaPO 音视频媒体行
type AudioVideoMediaPO struct {
	VideoID           string `gorm:"primaryKey;size:36"`
	VideoRelatedField string `gorm:"primaryKey;size:20"`
	Name              string `gorm:"size:255;not null"`
	RawLocation       string `gorm:"size:255;not null"`
	EncodedLocation   string `gorm:"size:255"`
	Status            string `gorm:"size:20;not null"`
}

func (AudioVideoMediaPO) TableName() string {
	return "audio_video_medias"
}

// VideoChildren 一个视频的全部子行
type VideoChildren struct {
	Categories  []VideoCategoryPO
	Genres      []VideoGenrePO
	CastMembers []VideoCastMemberPO
	Images      []ImageMediaPO
	AudioVideos []AudioVideoMediaPO
}

func FromVideoDomain(v *video.Video) (*VideoPO, VideoChildren) {
	id := v.ID().String()
	videoPO := &VideoPO{
		ID:           id,
		Title:        v.Title(),
		Description:  v.Description(),
		YearLaunched: v.YearLaunched(),
		Duration:     v.Duration(),
		Rating:       string(v.Rating()),
		IsOpened:     v.IsOpened(),
		IsPublished:  v.IsPublished(),
		CreatedAt:    v.CreatedAt(),
	}

	var children VideoChildren
	for _, categoryID := range v.CategoryIDs() {
		children.Categories = append(children.Categories, VideoCategoryPO{VideoID: id, CategoryID: categoryID.String()})
	}
	for _, genreID := range v.GenreIDs() {
		children.Genres = append(children.Genres, VideoGenrePO{VideoID: id, GenreID: genreID.String()})
	}
	for _, castMemberID := range v.CastMemberIDs() {
		children.CastMembers = append(children.CastMembers, VideoCastMemberPO{VideoID: id, CastMemberID: castMemberID.String()})
	}

	images := []struct {
		field video.MediaField
		media *video.ImageMedia
	}{
		{video.FieldBanner, v.Banner()},
		{video.FieldThumbnail, v.Thumbnail()},
		{video.FieldThumbnailHalf, v.ThumbnailHalf()},
	}
	for _, image := range images {
		if image.media == nil {
			continue
		}
		children.Images = append(children.Images, ImageMediaPO{
			VideoID:           id,
			VideoRelatedField: string(image.field),
			Name:              image.media.Name(),
			Location:          image.media.Location(),
		})
	}

	for _, field := range []video.MediaField{video.FieldTrailer, video.FieldVideo} {
		media := v.AudioVideoMedia(field)
		if media == nil {
			continue
		}
		children.AudioVideos = append(children.AudioVideos, AudioVideoMediaPO{
			VideoID:           id,
			VideoRelatedField: string(field),
			Name:              media.Name(),
			RawLocation:       media.RawLocation(),
			EncodedLocation:   media.EncodedLocation(),
			Status:            string(media.Status()),
		})
	}

	return videoPO, children
}

func (p *VideoPO) ToDomain(children VideoChildren) (*video.Video, error) {
	structural := shared.NewNotification()

	id, err := video.ParseVideoID(p.ID)
	if err != nil {
		structural.AddError("id", err.Error())
	}
	rating, err := video.ParseRating(p.Rating)
	if err != nil {
		structural.AddError("rating", err.Error())
	}

	dto := video.ReconstructionDTO{
		ID:           id,
		Title:        p.Title,
		Description:  p.Description,
		YearLaunched: p.YearLaunched,
		Duration:     p.Duration,
		Rating:       rating,
		IsOpened:     p.IsOpened,
		IsPublished:  p.IsPublished,
		CreatedAt:    p.CreatedAt.UTC(),
	}

	dto.CategoryIDs = parseIDs(structural, "categories_id", children.Categories,
		func(row VideoCategoryPO) string { return row.CategoryID }, category.ParseCategoryID)
	dto.GenreIDs = parseIDs(structural, "genres_id", children.Genres,
		func(row VideoGenrePO) string { return row.GenreID }, genre.ParseGenreID)
	dto.CastMemberIDs = parseIDs(structural, "cast_members_id", children.CastMembers,
		func(row VideoCastMemberPO) string { return row.CastMemberID }, castmember.ParseCastMemberID)

	for _, row := range children.Images {
		field, err := video.ParseMediaField(row.VideoRelatedField)
		if err != nil || !field.IsImage() {
			structural.AddError("image_medias", "invalid image media field: "+row.VideoRelatedField)
			continue
		}
		media := video.NewImageMedia(row.Name, row.Location)
		switch field {
		case video.FieldBanner:
			dto.Banner = &media
		case video.FieldThumbnail:
			dto.Thumbnail = &media
		case video.FieldThumbnailHalf:
			dto.ThumbnailHalf = &media
		}
	}

	for _, row := range children.AudioVideos {
		field, err := video.ParseMediaField(row.VideoRelatedField)
		if err != nil || !field.IsAudioVideo() {
			structural.AddError("audio_video_medias", "invalid audio video media field: "+row.VideoRelatedField)
			continue
		}
		status, err := video.ParseMediaStatus(row.Status)
		if err != nil {
			structural.AddError(string(field), err.Error())
			continue
		}
		media := video.RebuildAudioVideoMedia(row.Name, row.RawLocation, row.EncodedLocation, status)
		if field == video.FieldTrailer {
			dto.Trailer = &media
		} else {
			dto.Video = &media
		}
	}

	v := video.Rebuild(dto)
	v.Validate("title")

	if err := loadResult(video.EntityName, structural, v.Notification()); err != nil {
		return nil, err
	}
	return v, nil
}

// parseIDs 解析关联行中的 ID，关联集合不能为空
func parseIDs[R any, ID any](n *shared.Notification, field string, rows []R, raw func(R) string, parse func(string) (ID, error)) []ID {
	if len(rows) == 0 {
		n.AddError(field, field+" should not be empty")
		return nil
	}
	ids := make([]ID, 0, len(rows))
	for _, row := range rows {
		id, err := parse(raw(row))
		if err != nil {
			n.AddError(field, err.Error())
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
