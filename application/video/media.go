package video

import (
	"context"
	"fmt"
	"path"
	"slices"
	"strings"

	appshared "catalog/application/shared"
	"catalog/domain/shared"
	"catalog/domain/video"
	"catalog/infrastructure/storage"

	"github.com/google/uuid"
)

// MediaStorage 上传用例使用的存储端口
type MediaStorage interface {
	Store(ctx context.Context, object storage.Object) error
}

const (
	kib = 1024
	mib = 1024 * kib
	gib = 1024 * mib
)

// mediaRule 每个槽位允许的文件类型与大小上限
type mediaRule struct {
	maxSize   int64
	mimeTypes []string
}

var (
	imageMimeTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/gif"}
	videoMimeTypes = []string{"video/mp4"}

	mediaRules = map[video.MediaField]mediaRule{
		video.FieldBanner:        {maxSize: 2 * mib, mimeTypes: imageMimeTypes},
		video.FieldThumbnail:     {maxSize: 2 * mib, mimeTypes: imageMimeTypes},
		video.FieldThumbnailHalf: {maxSize: 2 * mib, mimeTypes: imageMimeTypes},
		video.FieldTrailer:       {maxSize: 500 * mib, mimeTypes: videoMimeTypes},
		video.FieldVideo:         {maxSize: 50 * gib, mimeTypes: videoMimeTypes},
	}
)

// UploadMedia 把文件写入存储并替换视频上对应槽位的媒体
// 音视频槽位以 PENDING 状态写入，提交后发布 VideoAudioMediaUploaded 集成事件通知编码服务
func (s *ApplicationService) UploadMedia(ctx context.Context, req UploadMediaRequest) (*VideoResponse, error) {
	id, err := video.ParseVideoID(req.VideoID)
	if err != nil {
		return nil, err
	}
	field, err := video.ParseMediaField(req.Field)
	if err != nil {
		return nil, shared.NewInvalidArgumentError(video.EntityName, err.Error())
	}

	n := shared.NewNotification()
	validateMediaFile(n, field, req)
	if err := appshared.EnsureValid(n); err != nil {
		return nil, err
	}

	var v *video.Video
	err = s.app.Run(ctx, func(ctx context.Context, uow shared.UnitOfWork) error {
		loaded, err := s.load(ctx, id)
		if err != nil {
			return err
		}
		v = loaded

		name := uuid.NewString() + strings.ToLower(path.Ext(req.FileName))
		location := mediaLocation(v.ID(), field)
		if err := s.storage.Store(ctx, storage.Object{
			ID:       location + "/" + name,
			Data:     req.Data,
			MimeType: req.MimeType,
		}); err != nil {
			return fmt.Errorf("failed to store %s: %w", field, err)
		}

		if field.IsImage() {
			v.ReplaceImage(field, video.NewImageMedia(name, location))
		} else {
			v.ReplaceMedia(field, video.NewAudioVideoMedia(name, location))
		}

		if err := s.repo.Update(ctx, v); err != nil {
			return err
		}
		uow.AddAggregateRoot(v)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toResponse(v), nil
}

// ProcessAudioVideoMedia 编码服务回调：COMPLETED 记录编码后的位置，FAILED 标记失败
// 预告片和正片都 COMPLETED 后视频自动变为已发布
func (s *ApplicationService) ProcessAudioVideoMedia(ctx context.Context, req ProcessAudioVideoMediaRequest) (*VideoResponse, error) {
	id, err := video.ParseVideoID(req.VideoID)
	if err != nil {
		return nil, err
	}
	field, err := video.ParseMediaField(req.Field)
	if err != nil || !field.IsAudioVideo() {
		return nil, shared.NewInvalidArgumentError(video.EntityName, fmt.Sprintf("invalid audio video media field: %q", req.Field))
	}
	status, err := video.ParseMediaStatus(req.Status)
	if err != nil || (status != video.StatusCompleted && status != video.StatusFailed) {
		return nil, shared.NewInvalidArgumentError(video.EntityName, fmt.Sprintf("invalid encoding status: %q", req.Status))
	}
	if status == video.StatusCompleted && req.EncodedLocation == "" {
		return nil, shared.NewInvalidArgumentError(video.EntityName, "encoded location is required when status is COMPLETED")
	}

	var v *video.Video
	err = s.app.Run(ctx, func(ctx context.Context, uow shared.UnitOfWork) error {
		loaded, err := s.load(ctx, id)
		if err != nil {
			return err
		}
		v = loaded

		media := v.AudioVideoMedia(field)
		if media == nil {
			return shared.NewNotFoundError("AudioVideoMedia", id.String()+"."+string(field))
		}

		if status == video.StatusCompleted {
			v.ReplaceMedia(field, media.Complete(req.EncodedLocation))
		} else {
			v.ReplaceMedia(field, media.Fail())
		}

		if err := s.repo.Update(ctx, v); err != nil {
			return err
		}
		uow.AddAggregateRoot(v)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toResponse(v), nil
}

func validateMediaFile(n *shared.Notification, field video.MediaField, req UploadMediaRequest) {
	rule := mediaRules[field]
	key := string(field)

	if len(req.Data) == 0 {
		n.AddError(key, key+" should not be empty")
		return
	}
	if !slices.Contains(rule.mimeTypes, strings.ToLower(req.MimeType)) {
		n.AddError(key, fmt.Sprintf("Invalid media file mime type: %s - accepted: %s", req.MimeType, strings.Join(rule.mimeTypes, ", ")))
	}
	if int64(len(req.Data)) > rule.maxSize {
		n.AddError(key, fmt.Sprintf("Invalid media file size: %d > %d", len(req.Data), rule.maxSize))
	}
}

// mediaLocation 图片放在 videos/<id>/images，音视频放在 videos/<id>/videos
func mediaLocation(id video.VideoID, field video.MediaField) string {
	if field.IsImage() {
		return "videos/" + id.String() + "/images"
	}
	return "videos/" + id.String() + "/videos"
}
