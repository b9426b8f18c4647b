package video

import (
	"context"
	"strings"
	"testing"

	"catalog/domain/shared"
	"catalog/domain/video"
	"catalog/infrastructure/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.svc.CreateVideo(ctx, f.createRequest("Inception"))
	require.NoError(t, err)

	resp, err := f.svc.UploadMedia(ctx, UploadMediaRequest{
		VideoID:  created.ID,
		Field:    "thumbnail",
		FileName: "Poster.PNG",
		MimeType: "image/png",
		Data:     []byte("png"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Thumbnail)
	assert.True(t, strings.HasSuffix(resp.Thumbnail.Name, ".png"))
	assert.Equal(t, "videos/"+created.ID+"/images", resp.Thumbnail.Location)

	object, err := f.storage.Get(ctx, resp.Thumbnail.URL)
	require.NoError(t, err)
	assert.Equal(t, "png", string(object.Data))

	// 图片不通知编码服务
	assert.Empty(t, f.broker.Published())
}

func TestUploadMedia_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.svc.CreateVideo(ctx, f.createRequest("Inception"))
	require.NoError(t, err)

	_, err = f.svc.UploadMedia(ctx, UploadMediaRequest{VideoID: created.ID, Field: "banner", MimeType: "video/mp4", Data: []byte("x")})
	var validationErr *shared.EntityValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"Invalid media file mime type: video/mp4 - accepted: image/jpeg, image/jpg, image/png, image/gif"}, validationErr.Errors["banner"])

	_, err = f.svc.UploadMedia(ctx, UploadMediaRequest{VideoID: created.ID, Field: "banner", MimeType: "image/png", Data: make([]byte, 2*mib+1)})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"Invalid media file size: 2097153 > 2097152"}, validationErr.Errors["banner"])

	_, err = f.svc.UploadMedia(ctx, UploadMediaRequest{VideoID: created.ID, Field: "trailer", MimeType: "video/mp4"})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"trailer should not be empty"}, validationErr.Errors["trailer"])

	_, err = f.svc.UploadMedia(ctx, UploadMediaRequest{VideoID: created.ID, Field: "poster", MimeType: "image/png", Data: []byte("x")})
	assert.ErrorIs(t, err, shared.ErrInvalidArgument)
}

// 上传预告片和正片 → 发布两条集成事件；两者都编码完成后视频变为已发布
func TestUploadAndProcessAudioVideoMedia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.svc.CreateVideo(ctx, f.createRequest("Inception"))
	require.NoError(t, err)

	trailer, err := f.svc.UploadMedia(ctx, UploadMediaRequest{VideoID: created.ID, Field: "trailer", FileName: "t.mp4", MimeType: "video/mp4", Data: []byte("t")})
	require.NoError(t, err)
	require.NotNil(t, trailer.Trailer)
	assert.Equal(t, string(video.StatusPending), trailer.Trailer.Status)

	published := f.broker.Published()
	require.Len(t, published, 1)
	assert.Equal(t, video.VideoAudioMediaUploadedIntegrationEventName, published[0].EventName)
	assert.Equal(t, created.ID, published[0].AggregateID)
	assert.Equal(t, map[string]string{
		"resource_id": created.ID + ".trailer",
		"file_path":   "videos/" + created.ID + "/videos/" + trailer.Trailer.Name,
	}, published[0].Payload)

	_, err = f.svc.UploadMedia(ctx, UploadMediaRequest{VideoID: created.ID, Field: "video", FileName: "v.mp4", MimeType: "video/mp4", Data: []byte("v")})
	require.NoError(t, err)
	assert.Len(t, f.broker.Published(), 2)

	resp, err := f.svc.ProcessAudioVideoMedia(ctx, ProcessAudioVideoMediaRequest{VideoID: created.ID, Field: "trailer", Status: "COMPLETED", EncodedLocation: "encoded/t"})
	require.NoError(t, err)
	assert.False(t, resp.IsPublished)
	assert.Equal(t, "encoded/t", resp.Trailer.EncodedLocation)

	resp, err = f.svc.ProcessAudioVideoMedia(ctx, ProcessAudioVideoMediaRequest{VideoID: created.ID, Field: "video", Status: "COMPLETED", EncodedLocation: "encoded/v"})
	require.NoError(t, err)
	assert.True(t, resp.IsPublished)

	// 编码完成不再发布集成事件
	assert.Len(t, f.broker.Published(), 2)

	fetched, err := f.svc.GetVideo(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, fetched.IsPublished)
}

func TestProcessAudioVideoMedia_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.svc.CreateVideo(ctx, f.createRequest("Inception"))
	require.NoError(t, err)

	_, err = f.svc.ProcessAudioVideoMedia(ctx, ProcessAudioVideoMediaRequest{VideoID: created.ID, Field: "trailer", Status: "FAILED"})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	for _, req := range []ProcessAudioVideoMediaRequest{
		{VideoID: created.ID, Field: "banner", Status: "COMPLETED", EncodedLocation: "x"},
		{VideoID: created.ID, Field: "trailer", Status: "PENDING"},
		{VideoID: created.ID, Field: "trailer", Status: "COMPLETED"},
	} {
		_, err := f.svc.ProcessAudioVideoMedia(ctx, req)
		assert.ErrorIs(t, err, shared.ErrInvalidArgument, "request %+v", req)
	}

	_, err = f.svc.UploadMedia(ctx, UploadMediaRequest{VideoID: created.ID, Field: "trailer", FileName: "t.mp4", MimeType: "video/mp4", Data: []byte("t")})
	require.NoError(t, err)
	resp, err := f.svc.ProcessAudioVideoMedia(ctx, ProcessAudioVideoMediaRequest{VideoID: created.ID, Field: "trailer", Status: "FAILED"})
	require.NoError(t, err)
	assert.Equal(t, string(video.StatusFailed), resp.Trailer.Status)
	assert.False(t, resp.IsPublished)
}

type failingStorage struct{ err error }

func (s failingStorage) Store(context.Context, storage.Object) error { return s.err }

func TestUploadMedia_StorageFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.svc.CreateVideo(ctx, f.createRequest("Inception"))
	require.NoError(t, err)

	f.svc.storage = failingStorage{err: assert.AnError}
	_, err = f.svc.UploadMedia(ctx, UploadMediaRequest{VideoID: created.ID, Field: "trailer", FileName: "t.mp4", MimeType: "video/mp4", Data: []byte("t")})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, f.factory.Last().Rollbacks())
	assert.Empty(t, f.broker.Published())

	fetched, err := f.svc.GetVideo(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.Trailer)
}
