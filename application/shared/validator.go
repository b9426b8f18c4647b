package shared

import (
	"context"

	"catalog/domain/shared"
)

// ExistenceChecker 仓储的 ExistsByID 能力
type ExistenceChecker[ID shared.Identifier] interface {
	ExistsByID(ctx context.Context, ids []ID) (shared.ExistsResult[ID], error)
}

// ParseIDs 把字符串 ID 解析为领域标识，非法值记到 field 下
func ParseIDs[ID any](n *shared.Notification, field string, raw []string, parse func(string) (ID, error)) []ID {
	ids := make([]ID, 0, len(raw))
	for _, value := range raw {
		id, err := parse(value)
		if err != nil {
			n.AddError(field, err.Error())
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// ValidateIDsExist 跨聚合引用校验：空集合或不存在的 ID 记到 field 下
// 消息格式与仓储的 NotFoundError 一致，例如 "Category Not Found using Id <id>"
// 只有仓储本身出错时才返回 error
func ValidateIDsExist[ID shared.Identifier](ctx context.Context, checker ExistenceChecker[ID], entityName, field string, ids []ID, n *shared.Notification) error {
	if len(ids) == 0 {
		if !n.FieldHasErrors(field) {
			n.AddError(field, field+" should not be empty")
		}
		return nil
	}

	result, err := checker.ExistsByID(ctx, ids)
	if err != nil {
		return err
	}
	for _, missing := range result.NotExists {
		n.AddError(field, shared.NotFoundMessage(entityName, missing.String()))
	}
	return nil
}
