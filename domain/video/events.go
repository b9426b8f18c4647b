package video

import (
	"catalog/domain/shared"
)

const (
	VideoCreatedEventName            = "video.created"
	VideoAudioMediaReplacedEventName = "video.audio_media_replaced"

	// VideoAudioMediaUploadedIntegrationEventName 通知编码服务处理新上传的原始文件
	VideoAudioMediaUploadedIntegrationEventName = "video.audio_media_uploaded"
)

// VideoCreatedEvent 视频创建时记录的快照
type VideoCreatedEvent struct {
	shared.EventMeta

	Title         string
	Description   string
	YearLaunched  int
	Duration      int
	Rating        Rating
	IsOpened      bool
	IsPublished   bool
	CategoryIDs   []string
	GenreIDs      []string
	CastMemberIDs []string
}

func (e *VideoCreatedEvent) EventName() string { return VideoCreatedEventName }

// VideoAudioMediaReplacedEvent 预告片或正片被替换（上传、开始编码、编码完成或失败）
type VideoAudioMediaReplacedEvent struct {
	shared.EventMeta

	MediaType MediaField
	Media     AudioVideoMedia
}

func (e *VideoAudioMediaReplacedEvent) EventName() string {
	return VideoAudioMediaReplacedEventName
}

// ToIntegrationEvent 只有新上传（PENDING）的媒体才需要通知编码服务
func (e *VideoAudioMediaReplacedEvent) ToIntegrationEvent() (shared.IntegrationEvent, bool) {
	if e.Media.Status() != StatusPending {
		return shared.IntegrationEvent{}, false
	}
	return shared.IntegrationEvent{
		EventName:    VideoAudioMediaUploadedIntegrationEventName,
		AggregateID:  e.GetAggregateID(),
		OccurredOn:   e.OccurredOn(),
		EventVersion: e.EventVersion(),
		Payload: map[string]string{
			"resource_id": e.GetAggregateID() + "." + string(e.MediaType),
			"file_path":   e.Media.RawURL(),
		},
	}, true
}

var (
	_ shared.DomainEvent              = (*VideoCreatedEvent)(nil)
	_ shared.DomainEvent              = (*VideoAudioMediaReplacedEvent)(nil)
	_ shared.IntegrationEventProvider = (*VideoAudioMediaReplacedEvent)(nil)
)
