package storage

import (
	"context"
	"testing"

	"catalog/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStorage(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStorage()
	data := []byte("png-bytes")

	require.NoError(t, s.Store(ctx, Object{ID: "videos/1/images/a.png", Data: data, MimeType: "image/png"}))
	data[0] = 'X'

	got, err := s.Get(ctx, "videos/1/images/a.png")
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(got.Data))
	assert.Equal(t, "image/png", got.MimeType)

	got.Data[0] = 'Y'
	again, err := s.Get(ctx, "videos/1/images/a.png")
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(again.Data))

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestNew(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, config.StorageConfig{})
	require.NoError(t, err)
	assert.IsType(t, &InMemoryStorage{}, s)

	_, err = New(ctx, config.StorageConfig{Type: "s3"})
	assert.EqualError(t, err, `unsupported storage type: "s3"`)

	_, err = New(ctx, config.StorageConfig{Type: "gcs"})
	assert.EqualError(t, err, "gcs storage requires a bucket name")
}
