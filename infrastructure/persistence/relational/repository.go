package relational

import (
	"context"
	"errors"
	"fmt"

	"catalog/domain/shared"
	"catalog/infrastructure/persistence"

	"gorm.io/gorm"
)

// baseRepository 各聚合仓储共用的事务解析与行级操作
type baseRepository struct {
	db         *gorm.DB
	entityName string
}

func (r *baseRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// inTransaction 有外部事务时加入，否则为本次调用单独开启事务
func (r *baseRepository) inTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return fn(tx)
	}
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *baseRepository) dialect() string {
	return r.db.Dialector.Name()
}

// ensureExists Update 之前确认目标行存在
// 不依赖 RowsAffected：MySQL 对未变化的行返回 0
func (r *baseRepository) ensureExists(tx *gorm.DB, model any, id string) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return shared.NewNotFoundError(r.entityName, id)
	}
	return nil
}

func (r *baseRepository) deleteByID(tx *gorm.DB, model any, id string) error {
	result := tx.Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError(r.entityName, id)
	}
	return nil
}

// first 按主键取一行，不存在时返回 (false, nil)
func first[P any](db *gorm.DB, id string) (*P, bool, error) {
	var row P
	err := db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &row, true, nil
}

// existsByID 查询已存在的 id 并划分输入
func existsByID[ID shared.Identifier](db *gorm.DB, model any, entityName string, ids []ID) (shared.ExistsResult[ID], error) {
	if len(ids) == 0 {
		return shared.ExistsResult[ID]{}, shared.NewInvalidArgumentError(entityName, "ids must be an array with at least one element")
	}

	var found []string
	if err := db.Model(model).Where("id IN ?", stringIDs(ids)).Pluck("id", &found).Error; err != nil {
		return shared.ExistsResult[ID]{}, fmt.Errorf("failed to check %s ids: %w", entityName, err)
	}

	existing := make(map[string]struct{}, len(found))
	for _, id := range found {
		existing[id] = struct{}{}
	}
	return shared.PartitionIDs(ids, existing), nil
}
