package shared

import "context"

// UnitOfWork 管理一次逻辑操作的事务边界与聚合登记表。
//
// 每个用例对应一个 UnitOfWork 实例、一个底层事务；并发用例各自持有独立实例。
// Do 是主要入口：已有活动事务时直接在其中执行 fn（加入语义，不会嵌套提交/回滚），
// 否则开启事务，fn 成功则提交，任何错误都回滚并原样返回。
// 本层不做重试。
type UnitOfWork interface {
	// Start 开启事务；已有活动事务时什么都不做
	Start(ctx context.Context) error

	// Commit 提交活动事务，没有活动事务时返回 ErrNoActiveTransaction
	Commit() error

	// Rollback 回滚活动事务，没有活动事务时返回 ErrNoActiveTransaction
	Rollback() error

	// Do 在事务中执行 fn，ctx 中携带事务句柄供仓储使用
	Do(ctx context.Context, fn func(ctx context.Context) error) error

	// AddAggregateRoot 登记本次操作触及的聚合（去重）
	AddAggregateRoot(aggregate AggregateRoot)

	// AggregateRoots 返回登记表，供提交后的集成事件发布使用
	AggregateRoots() []AggregateRoot
}

// UnitOfWorkFactory 为每次逻辑操作创建新的 UnitOfWork
type UnitOfWorkFactory interface {
	New() UnitOfWork
}

// AggregateRegistry 聚合登记表，两个 UnitOfWork 实现共用
type AggregateRegistry struct {
	order []AggregateRoot
	seen  map[AggregateRoot]struct{}
}

func (r *AggregateRegistry) Add(aggregate AggregateRoot) {
	if aggregate == nil {
		return
	}
	if r.seen == nil {
		r.seen = make(map[AggregateRoot]struct{})
	}
	if _, ok := r.seen[aggregate]; ok {
		return
	}
	r.seen[aggregate] = struct{}{}
	r.order = append(r.order, aggregate)
}

func (r *AggregateRegistry) All() []AggregateRoot {
	out := make([]AggregateRoot, len(r.order))
	copy(out, r.order)
	return out
}
