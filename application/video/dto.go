package video

import (
	"time"

	appshared "catalog/application/shared"
	"catalog/domain/video"
)

// CreateVideoRequest 创建视频请求 DTO
type CreateVideoRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	YearLaunched  int      `json:"year_launched"`
	Duration      int      `json:"duration"`
	Rating        string   `json:"rating"`
	IsOpened      bool     `json:"is_opened"`
	CategoryIDs   []string `json:"categories_id"`
	GenreIDs      []string `json:"genres_id"`
	CastMemberIDs []string `json:"cast_members_id"`
}

// UpdateVideoRequest 未提供的字段保持不变；关联集合为 nil 时不修改
type UpdateVideoRequest struct {
	ID            string   `json:"id"`
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	YearLaunched  *int     `json:"year_launched"`
	Duration      *int     `json:"duration"`
	Rating        *string  `json:"rating"`
	IsOpened      *bool    `json:"is_opened"`
	CategoryIDs   []string `json:"categories_id"`
	GenreIDs      []string `json:"genres_id"`
	CastMemberIDs []string `json:"cast_members_id"`
}

type ListVideosRequest struct {
	appshared.SearchRequest
	Title         string   `json:"title"`
	CategoryIDs   []string `json:"categories_id"`
	GenreIDs      []string `json:"genres_id"`
	CastMemberIDs []string `json:"cast_members_id"`
}

// UploadMediaRequest 上传媒体文件到指定槽位
type UploadMediaRequest struct {
	VideoID  string `json:"video_id"`
	Field    string `json:"field"`
	FileName string `json:"file_name"`
	MimeType string `json:"mime_type"`
	Data     []byte `json:"-"`
}

// ProcessAudioVideoMediaRequest 编码服务的回调，Status 只能是 COMPLETED 或 FAILED
type ProcessAudioVideoMediaRequest struct {
	VideoID         string `json:"video_id"`
	Field           string `json:"field"`
	Status          string `json:"status"`
	EncodedLocation string `json:"encoded_location"`
}

type ImageMediaResponse struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	URL      string `json:"url"`
}

type AudioVideoMediaResponse struct {
	Name            string `json:"name"`
	RawLocation     string `json:"raw_location"`
	EncodedLocation string `json:"encoded_location"`
	Status          string `json:"status"`
}

// VideoResponse 视频响应 DTO
type VideoResponse struct {
	ID            string                   `json:"id"`
	Title         string                   `json:"title"`
	Description   string                   `json:"description"`
	YearLaunched  int                      `json:"year_launched"`
	Duration      int                      `json:"duration"`
	Rating        string                   `json:"rating"`
	IsOpened      bool                     `json:"is_opened"`
	IsPublished   bool                     `json:"is_published"`
	Banner        *ImageMediaResponse      `json:"banner"`
	Thumbnail     *ImageMediaResponse      `json:"thumbnail"`
	ThumbnailHalf *ImageMediaResponse      `json:"thumbnail_half"`
	Trailer       *AudioVideoMediaResponse `json:"trailer"`
	Video         *AudioVideoMediaResponse `json:"video"`
	CategoryIDs   []string                 `json:"categories_id"`
	GenreIDs      []string                 `json:"genres_id"`
	CastMemberIDs []string                 `json:"cast_members_id"`
	CreatedAt     time.Time                `json:"created_at"`
}

func toResponse(v *video.Video) *VideoResponse {
	return &VideoResponse{
		ID:            v.ID().String(),
		Title:         v.Title(),
		Description:   v.Description(),
		YearLaunched:  v.YearLaunched(),
		Duration:      v.Duration(),
		Rating:        string(v.Rating()),
		IsOpened:      v.IsOpened(),
		IsPublished:   v.IsPublished(),
		Banner:        toImageResponse(v.Banner()),
		Thumbnail:     toImageResponse(v.Thumbnail()),
		ThumbnailHalf: toImageResponse(v.ThumbnailHalf()),
		Trailer:       toAudioVideoResponse(v.Trailer()),
		Video:         toAudioVideoResponse(v.Video()),
		CategoryIDs:   idStrings(v.CategoryIDs()),
		GenreIDs:      idStrings(v.GenreIDs()),
		CastMemberIDs: idStrings(v.CastMemberIDs()),
		CreatedAt:     v.CreatedAt(),
	}
}

func toImageResponse(m *video.ImageMedia) *ImageMediaResponse {
	if m == nil {
		return nil
	}
	return &ImageMediaResponse{Name: m.Name(), Location: m.Location(), URL: m.URL()}
}

func toAudioVideoResponse(m *video.AudioVideoMedia) *AudioVideoMediaResponse {
	if m == nil {
		return nil
	}
	return &AudioVideoMediaResponse{
		Name:            m.Name(),
		RawLocation:     m.RawLocation(),
		EncodedLocation: m.EncodedLocation(),
		Status:          string(m.Status()),
	}
}

func idStrings[ID interface{ String() string }](ids []ID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
