/*
Package shared 应用层公共编排

每个写用例：
 1. 从 UnitOfWorkFactory 取一个新的工作单元
 2. 在 Do 中加载/创建聚合、修改、校验（Notification 有错误时返回 EntityValidationError）、写仓储、登记聚合
 3. 提交成功后把登记表交给 DomainEventMediator，投影并发布集成事件

发布发生在提交之后，失败只记录日志：数据已经提交，不能再让调用方以为操作失败。
*/
package shared

import (
	"context"

	"catalog/domain/shared"
)

// ApplicationService 用例的工作单元执行器，各聚合的应用服务共用
type ApplicationService struct {
	uowFactory shared.UnitOfWorkFactory
	mediator   *DomainEventMediator
}

func NewApplicationService(uowFactory shared.UnitOfWorkFactory, mediator *DomainEventMediator) *ApplicationService {
	return &ApplicationService{uowFactory: uowFactory, mediator: mediator}
}

// Run 在一个新的工作单元中执行 fn，提交后发布登记聚合的集成事件
func (r *ApplicationService) Run(ctx context.Context, fn func(ctx context.Context, uow shared.UnitOfWork) error) error {
	uow := r.uowFactory.New()
	if err := uow.Do(ctx, func(ctx context.Context) error {
		return fn(ctx, uow)
	}); err != nil {
		return err
	}

	if r.mediator != nil {
		r.mediator.PublishIntegrationEvents(ctx, uow.AggregateRoots())
	}
	return nil
}

// EnsureValid Notification 有错误时返回 EntityValidationError
func EnsureValid(n *shared.Notification) error {
	if n.HasErrors() {
		return shared.NewEntityValidationError(n.Errors())
	}
	return nil
}
