package shared

import "context"

// ExistsResult ExistsByID 的结果：Exists ∪ NotExists = 输入，交集为空
type ExistsResult[ID Identifier] struct {
	Exists    []ID
	NotExists []ID
}

// Repository 所有后端都必须满足的聚合仓储契约
type Repository[ID Identifier, E Entity[ID]] interface {
	Insert(ctx context.Context, entity E) error
	BulkInsert(ctx context.Context, entities []E) error

	// Update 目标不存在时返回 NotFoundError
	Update(ctx context.Context, entity E) error

	// Delete 没有行受影响时返回 NotFoundError
	Delete(ctx context.Context, id ID) error

	// FindByID 不存在时返回零值和 nil error
	FindByID(ctx context.Context, id ID) (E, error)
	FindAll(ctx context.Context) ([]E, error)
	FindByIDs(ctx context.Context, ids []ID) ([]E, error)

	// ExistsByID 按实际持久化情况划分候选标识，ids 为空时返回 InvalidArgumentError；
	// 用于跨聚合引用校验，代替外键约束
	ExistsByID(ctx context.Context, ids []ID) (ExistsResult[ID], error)
}

// SearchableRepository 带有通用搜索能力的仓储
type SearchableRepository[ID Identifier, E Entity[ID], F any] interface {
	Repository[ID, E]

	// SortableFields 允许作为排序键的字段，其他字段回退到默认排序
	SortableFields() []string

	Search(ctx context.Context, params SearchParams[F]) (SearchResult[E], error)
}

// PartitionIDs 根据已存在的标识集合划分输入，保持输入顺序并去重
func PartitionIDs[ID Identifier](ids []ID, existing map[string]struct{}) ExistsResult[ID] {
	result := ExistsResult[ID]{Exists: []ID{}, NotExists: []ID{}}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		key := id.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := existing[key]; ok {
			result.Exists = append(result.Exists, id)
		} else {
			result.NotExists = append(result.NotExists, id)
		}
	}
	return result
}
