package relational

import (
	"context"
	"fmt"
	"sync"

	"catalog/domain/shared"
	"catalog/infrastructure/persistence"
	"catalog/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UnitOfWork 基于 GORM 事务的工作单元
//
// 一个实例对应一次逻辑操作：Start 开启事务（已开启时什么也不做），
// Do 在已有事务中直接执行（嵌套调用共享同一事务），否则 begin → fn → commit，
// fn 返回错误或 panic 时回滚。事务通过 context 传给仓储。
// 这里不做重试：同一个工作单元重放 fn 会重复登记聚合、重复应用事件。
type UnitOfWork struct {
	db *gorm.DB

	mu          sync.Mutex
	tx          *gorm.DB
	operationID string
	registry    shared.AggregateRegistry
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Start 开启事务；已有活动事务时直接返回
func (u *UnitOfWork) Start(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.tx != nil {
		return nil
	}

	u.operationID = persistence.OperationIDFromContext(ctx)
	if u.operationID == "" {
		u.operationID = uuid.NewString()
	}
	ctx = persistence.ContextWithOperationID(ctx, u.operationID)

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	u.tx = tx
	return nil
}

func (u *UnitOfWork) Commit() error {
	tx, err := u.takeTransaction()
	if err != nil {
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (u *UnitOfWork) Rollback() error {
	tx, err := u.takeTransaction()
	if err != nil {
		return err
	}
	if err := tx.Rollback().Error; err != nil {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// takeTransaction 取出并清空当前事务，Commit/Rollback 之后工作单元回到空闲状态
func (u *UnitOfWork) takeTransaction() (*gorm.DB, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.tx == nil {
		return nil, shared.ErrNoActiveTransaction
	}
	tx := u.tx
	u.tx = nil
	return tx, nil
}

// Transaction 当前活动事务，没有时返回 nil
func (u *UnitOfWork) Transaction() *gorm.DB {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.tx
}

// Do runs fn inside the unit of work's transaction
func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx := u.Transaction(); tx != nil {
		return fn(u.bind(ctx, tx))
	}

	if err := u.Start(ctx); err != nil {
		return err
	}
	txCtx := u.bind(ctx, u.Transaction())

	defer func() {
		if r := recover(); r != nil {
			u.rollbackQuietly(txCtx, fmt.Errorf("panic: %v", r))
			panic(r)
		}
	}()

	if err := fn(txCtx); err != nil {
		u.rollbackQuietly(txCtx, err)
		return err
	}
	return u.Commit()
}

func (u *UnitOfWork) bind(ctx context.Context, tx *gorm.DB) context.Context {
	u.mu.Lock()
	operationID := u.operationID
	u.mu.Unlock()
	ctx = persistence.ContextWithOperationID(ctx, operationID)
	return persistence.ContextWithTx(ctx, tx)
}

// rollbackQuietly 回滚失败只记录日志，调用方拿到的始终是业务错误
func (u *UnitOfWork) rollbackQuietly(ctx context.Context, cause error) {
	if err := u.Rollback(); err != nil {
		logger.WithOperationID(persistence.OperationIDFromContext(ctx)).Error("Failed to rollback transaction",
			zap.Error(err),
			zap.NamedError("cause", cause),
		)
	}
}

func (u *UnitOfWork) AddAggregateRoot(aggregate shared.AggregateRoot) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.registry.Add(aggregate)
}

func (u *UnitOfWork) AggregateRoots() []shared.AggregateRoot {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.registry.All()
}

// Compile-time check that UnitOfWork implements shared.UnitOfWork
var _ shared.UnitOfWork = (*UnitOfWork)(nil)
