/*
Package po 持久化对象（Persistent Object）与聚合之间的双向映射

约定:
  - PO 只做表结构映射，不包含业务逻辑，也不定义 GORM 关联（关联表由仓储手动读写）
  - FromXxxDomain 对应 toModel；(*XxxPO).ToDomain 对应 toEntity
  - ToDomain 重建聚合后重新执行校验，数据库里的行不再满足当前规则时返回 LoadEntityError
*/
package po

import (
	"catalog/domain/shared"
)

// loadResult 汇总映射阶段的结构错误和聚合自身的校验错误
func loadResult(entity string, structural *shared.Notification, aggregate *shared.Notification) error {
	structural.CopyErrors(aggregate)
	if !structural.HasErrors() {
		return nil
	}
	return shared.NewLoadEntityError(entity, structural.Errors())
}
