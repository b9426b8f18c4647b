/*
Package storage 媒体文件存储

上传用例先把文件写入 Storage，再把 ImageMedia / AudioVideoMedia 的位置记到视频聚合上。
*/
package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"catalog/config"
)

// ErrObjectNotFound 对象不存在
var ErrObjectNotFound = errors.New("storage object not found")

// Object 存储对象，ID 即对象路径（location/name）
type Object struct {
	ID       string
	Data     []byte
	MimeType string
}

type Storage interface {
	Store(ctx context.Context, object Object) error
	Get(ctx context.Context, id string) (Object, error)
}

// New 按配置创建存储：memory（默认）或 gcs
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Type {
	case "", "memory":
		return NewInMemoryStorage(), nil
	case "gcs":
		return NewGCSStorage(ctx, GCSConfig{Bucket: cfg.Bucket, CredentialsFile: cfg.CredentialsFile})
	default:
		return nil, fmt.Errorf("unsupported storage type: %q", cfg.Type)
	}
}

// InMemoryStorage 进程内存储，测试和本地开发使用
type InMemoryStorage struct {
	mu      sync.RWMutex
	objects map[string]Object
}

func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{objects: make(map[string]Object)}
}

func (s *InMemoryStorage) Store(ctx context.Context, object Object) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	object.Data = append([]byte(nil), object.Data...)
	s.objects[object.ID] = object
	return nil
}

func (s *InMemoryStorage) Get(ctx context.Context, id string) (Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	object, ok := s.objects[id]
	if !ok {
		return Object{}, fmt.Errorf("%w: %s", ErrObjectNotFound, id)
	}
	object.Data = append([]byte(nil), object.Data...)
	return object, nil
}

var _ Storage = (*InMemoryStorage)(nil)
