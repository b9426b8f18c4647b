/*
Package cmd 组装应用：配置 → 日志 → 数据库 → 迁移 → broker / storage → 用例

没有 DI 容器，所有依赖都在 AppBuilder.Build 里显式构造并注入。
*/
package cmd

import (
	"io"

	appcastmember "catalog/application/castmember"
	appcategory "catalog/application/category"
	appgenre "catalog/application/genre"
	appshared "catalog/application/shared"
	appvideo "catalog/application/video"
	"catalog/config"
	"catalog/infrastructure/messaging"
	"catalog/infrastructure/storage"
	"catalog/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 组装好的用例集合
type App struct {
	config  *config.Config
	db      *gorm.DB
	broker  messaging.MessageBroker
	storage storage.Storage

	Mediator    *appshared.DomainEventMediator
	Categories  *appcategory.ApplicationService
	CastMembers *appcastmember.ApplicationService
	Genres      *appgenre.ApplicationService
	Videos      *appvideo.ApplicationService
}

// DB 关系型连接，内存模式下为 nil
func (a *App) DB() *gorm.DB { return a.db }

// Close 释放 broker、storage 和数据库连接
func (a *App) Close() {
	if a.broker != nil {
		if err := a.broker.Close(); err != nil {
			logger.Warn("Failed to close message broker", zap.Error(err))
		}
	}
	if closer, ok := a.storage.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			logger.Warn("Failed to close media storage", zap.Error(err))
		}
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("Failed to close database", zap.Error(err))
			}
		}
	}
}
