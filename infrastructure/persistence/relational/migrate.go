package relational

import (
	"fmt"

	"catalog/infrastructure/persistence/relational/po"

	"gorm.io/gorm"
)

// Models 全部持久化对象，顺序即建表顺序
func Models() []any {
	return []any{
		&po.CategoryPO{},
		&po.CastMemberPO{},
		&po.GenrePO{},
		&po.GenreCategoryPO{},
		&po.VideoPO{},
		&po.VideoCategoryPO{},
		&po.VideoGenrePO{},
		&po.VideoCastMemberPO{},
		&po.ImageMediaPO{},
		&po.AudioVideoMediaPO{},
	}
}

// AutoMigrate 创建或补齐表结构
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
