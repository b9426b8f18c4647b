package video

import "fmt"

// MediaField 媒体在视频中的槽位，也是 media 行上的 related_field 标签
type MediaField string

const (
	FieldBanner        MediaField = "banner"
	FieldThumbnail     MediaField = "thumbnail"
	FieldThumbnailHalf MediaField = "thumbnail_half"
	FieldTrailer       MediaField = "trailer"
	FieldVideo         MediaField = "video"
)

// ParseMediaField 校验槽位名称
func ParseMediaField(value string) (MediaField, error) {
	switch f := MediaField(value); f {
	case FieldBanner, FieldThumbnail, FieldThumbnailHalf, FieldTrailer, FieldVideo:
		return f, nil
	}
	return "", fmt.Errorf("invalid media field: %q", value)
}

// IsImage 图片槽位
func (f MediaField) IsImage() bool {
	return f == FieldBanner || f == FieldThumbnail || f == FieldThumbnailHalf
}

// IsAudioVideo 音视频槽位
func (f MediaField) IsAudioVideo() bool {
	return f == FieldTrailer || f == FieldVideo
}

// ImageMedia 图片值对象
type ImageMedia struct {
	name     string
	location string
}

func NewImageMedia(name, location string) ImageMedia {
	return ImageMedia{name: name, location: location}
}

func (m ImageMedia) Name() string     { return m.name }
func (m ImageMedia) Location() string { return m.location }

// URL 存储中的对象路径
func (m ImageMedia) URL() string { return m.location + "/" + m.name }

func (m ImageMedia) Equals(other ImageMedia) bool {
	return m == other
}

// MediaStatus 音视频编码状态
type MediaStatus string

const (
	StatusPending    MediaStatus = "PENDING"
	StatusProcessing MediaStatus = "PROCESSING"
	StatusCompleted  MediaStatus = "COMPLETED"
	StatusFailed     MediaStatus = "FAILED"
)

func ParseMediaStatus(value string) (MediaStatus, error) {
	switch s := MediaStatus(value); s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return s, nil
	}
	return "", fmt.Errorf("invalid media status: %q", value)
}

// AudioVideoMedia 音视频值对象，状态变更返回新值
type AudioVideoMedia struct {
	name            string
	rawLocation     string
	encodedLocation string
	status          MediaStatus
}

// NewAudioVideoMedia 刚上传的原始文件，状态 PENDING
func NewAudioVideoMedia(name, rawLocation string) AudioVideoMedia {
	return AudioVideoMedia{name: name, rawLocation: rawLocation, status: StatusPending}
}

// RebuildAudioVideoMedia 仅供 Mapper 使用
func RebuildAudioVideoMedia(name, rawLocation, encodedLocation string, status MediaStatus) AudioVideoMedia {
	return AudioVideoMedia{
		name:            name,
		rawLocation:     rawLocation,
		encodedLocation: encodedLocation,
		status:          status,
	}
}

func (m AudioVideoMedia) Process() AudioVideoMedia {
	m.status = StatusProcessing
	return m
}

func (m AudioVideoMedia) Complete(encodedLocation string) AudioVideoMedia {
	m.encodedLocation = encodedLocation
	m.status = StatusCompleted
	return m
}

func (m AudioVideoMedia) Fail() AudioVideoMedia {
	m.status = StatusFailed
	return m
}

func (m AudioVideoMedia) Name() string            { return m.name }
func (m AudioVideoMedia) RawLocation() string     { return m.rawLocation }
func (m AudioVideoMedia) EncodedLocation() string { return m.encodedLocation }
func (m AudioVideoMedia) Status() MediaStatus     { return m.status }
func (m AudioVideoMedia) IsCompleted() bool       { return m.status == StatusCompleted }
func (m AudioVideoMedia) RawURL() string          { return m.rawLocation + "/" + m.name }

func (m AudioVideoMedia) Equals(other AudioVideoMedia) bool {
	return m == other
}
